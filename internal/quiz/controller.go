package quiz

import (
	"context"
	"fmt"
	"math/rand/v2"

	"go.uber.org/zap"

	"quizgame/internal/entity"
)

type QuestionBank interface {
	SampleQuestions(ctx context.Context, n int) ([]entity.Question, error)
	AllQuestions(ctx context.Context) ([]entity.Question, error)
	AnswersFor(ctx context.Context, questionID int) ([]entity.Answer, error)
}

type AttemptLog interface {
	Record(ctx context.Context, attempt entity.Attempt) error
}

type Options struct {
	// Size is the number of questions sampled per attempt; 0 or less takes the whole bank.
	Size           int
	ShuffleAnswers bool
}

// QuestionView is what the question page renders.
type QuestionView struct {
	Question entity.Question
	Answers  []entity.Answer
	Index    int
	Total    int
}

// Number is the 1-based position of the question.
func (v QuestionView) Number() int {
	return v.Index + 1
}

type Outcome struct {
	Correct   bool
	Completed bool
	Session   entity.QuizSession
}

// Controller runs the quiz flow: select questions, present them one at a
// time, grade submissions and hand over the final tally.
type Controller struct {
	sessions *Manager
	bank     QuestionBank
	attempts AttemptLog
	opts     Options
	logger   *zap.Logger
}

func NewController(sessions *Manager, bank QuestionBank, attempts AttemptLog, opts Options, logger *zap.Logger) *Controller {
	return &Controller{
		sessions: sessions,
		bank:     bank,
		attempts: attempts,
		opts:     opts,
		logger:   logger,
	}
}

func (c *Controller) Start(ctx context.Context, key string, userID int) (entity.QuizSession, error) {
	var (
		questions []entity.Question
		err       error
	)
	if c.opts.Size > 0 {
		questions, err = c.bank.SampleQuestions(ctx, c.opts.Size)
	} else {
		questions, err = c.bank.AllQuestions(ctx)
	}
	if err != nil {
		return entity.QuizSession{}, fmt.Errorf("select questions: %w", err)
	}

	s, err := c.sessions.Start(key, userID, questions)
	if err != nil {
		return entity.QuizSession{}, err
	}

	c.logger.Info("quiz started",
		zap.Int("user_id", userID),
		zap.Int("questions", s.Total()),
	)
	return s, nil
}

func (c *Controller) State(key string) entity.QuizState {
	return c.sessions.State(key)
}

// Current loads the pending question together with its candidate answers.
func (c *Controller) Current(ctx context.Context, key string) (QuestionView, error) {
	s, err := c.sessions.Get(key)
	if err != nil {
		return QuestionView{}, err
	}

	q, ok := s.Current()
	if !ok {
		return QuestionView{}, ErrQuizCompleted
	}

	answers, err := c.bank.AnswersFor(ctx, q.ID)
	if err != nil {
		return QuestionView{}, fmt.Errorf("load answers for question %d: %w", q.ID, err)
	}

	if c.opts.ShuffleAnswers {
		rand.Shuffle(len(answers), func(i, j int) {
			answers[i], answers[j] = answers[j], answers[i]
		})
	}

	return QuestionView{
		Question: q,
		Answers:  answers,
		Index:    s.Index,
		Total:    s.Total(),
	}, nil
}

// Submit grades answerID against the current question and advances the
// session. Lookup failures count as a wrong answer; the question is consumed
// either way. A non-zero questionID that is no longer current yields
// ErrStaleSubmission and consumes nothing.
func (c *Controller) Submit(ctx context.Context, key string, questionID, answerID int) (Outcome, error) {
	q, err := c.sessions.Current(key)
	if err != nil {
		return Outcome{}, err
	}
	if questionID != 0 && questionID != q.ID {
		return Outcome{}, ErrStaleSubmission
	}

	correct := c.grade(ctx, q.ID, answerID)

	s, err := c.sessions.RecordAnswer(key, q.ID, correct)
	if err != nil {
		return Outcome{}, err
	}

	if err := c.attempts.Record(ctx, entity.NewAttempt(s.UserID, q.ID, answerID, correct)); err != nil {
		c.logger.Warn("failed to record attempt",
			zap.Int("user_id", s.UserID),
			zap.Int("question_id", q.ID),
			zap.Error(err),
		)
	}

	return Outcome{
		Correct:   correct,
		Completed: s.State() == entity.QuizCompleted,
		Session:   s,
	}, nil
}

func (c *Controller) grade(ctx context.Context, questionID, answerID int) bool {
	answers, err := c.bank.AnswersFor(ctx, questionID)
	if err != nil {
		c.logger.Warn("answer lookup failed, grading as incorrect",
			zap.Int("question_id", questionID),
			zap.Error(err),
		)
		return false
	}

	correctID, ok := entity.CorrectAnswerID(answers)
	if !ok {
		c.logger.Warn("question has no correct answer", zap.Int("question_id", questionID))
		return false
	}

	return answerID == correctID
}

// Results returns the final tally and ends the attempt.
func (c *Controller) Results(key string) (Result, error) {
	return c.sessions.Finish(key)
}

func (c *Controller) Abandon(key string) {
	c.sessions.Discard(key)
}
