package entity

import "time"

type QuizState int

const (
	QuizNotStarted QuizState = iota
	QuizInProgress
	QuizCompleted
)

func (s QuizState) String() string {
	switch s {
	case QuizNotStarted:
		return "not_started"
	case QuizInProgress:
		return "in_progress"
	case QuizCompleted:
		return "completed"
	}
	return "unknown"
}

// QuizSession is one in-progress quiz attempt.
// Index stays in [0, len(Questions)] and Score in [0, Index].
type QuizSession struct {
	Key          string
	UserID       int
	Questions    []Question
	Index        int
	Score        int
	StartedAt    time.Time
	LastActivity time.Time
}

func NewQuizSession(key string, userID int, questions []Question, now time.Time) *QuizSession {
	qs := make([]Question, len(questions))
	copy(qs, questions)

	return &QuizSession{
		Key:          key,
		UserID:       userID,
		Questions:    qs,
		StartedAt:    now,
		LastActivity: now,
	}
}

func (s *QuizSession) Total() int {
	return len(s.Questions)
}

func (s *QuizSession) State() QuizState {
	if s.Index >= len(s.Questions) {
		return QuizCompleted
	}
	return QuizInProgress
}

// Current returns the question at the current index. ok is false once
// every question has been answered.
func (s *QuizSession) Current() (q Question, ok bool) {
	if s.Index >= len(s.Questions) {
		return Question{}, false
	}
	return s.Questions[s.Index], true
}

// Record consumes the current question. It returns false without changing
// anything when the session is already completed.
func (s *QuizSession) Record(correct bool) bool {
	if s.State() == QuizCompleted {
		return false
	}
	if correct {
		s.Score++
	}
	s.Index++
	return true
}

func (s *QuizSession) Expired(now time.Time, ttl time.Duration) bool {
	return now.Sub(s.LastActivity) > ttl
}

// Snapshot returns a copy that is safe to hand out while the original keeps
// being mutated.
func (s *QuizSession) Snapshot() QuizSession {
	cp := *s
	cp.Questions = make([]Question, len(s.Questions))
	copy(cp.Questions, s.Questions)
	return cp
}
