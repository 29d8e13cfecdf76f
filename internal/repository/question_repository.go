package repository

import (
	"context"
	"database/sql"

	"quizgame/internal/entity"
)

type QuestionRepository struct {
	db *sql.DB
}

func NewQuestionRepository(db *sql.DB) *QuestionRepository {
	return &QuestionRepository{db: db}
}

// SampleQuestions returns up to n distinct questions in random order.
func (r *QuestionRepository) SampleQuestions(ctx context.Context, n int) ([]entity.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, text
		FROM questions
		ORDER BY random()
		LIMIT $1
	`, n)
	if err != nil {
		return nil, wrapErr("sample questions", err)
	}
	return scanQuestions("sample questions", rows)
}

func (r *QuestionRepository) AllQuestions(ctx context.Context) ([]entity.Question, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT question_id, text
		FROM questions
		ORDER BY question_id
	`)
	if err != nil {
		return nil, wrapErr("all questions", err)
	}
	return scanQuestions("all questions", rows)
}

// AnswersFor returns the candidate answers of a question in insertion order.
func (r *QuestionRepository) AnswersFor(ctx context.Context, questionID int) ([]entity.Answer, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT answer_id, question_id, text, is_correct
		FROM answers
		WHERE question_id = $1
		ORDER BY answer_id
	`, questionID)
	if err != nil {
		return nil, wrapErr("answers for question", err)
	}
	defer rows.Close()

	answers := make([]entity.Answer, 0, 4)
	for rows.Next() {
		var a entity.Answer
		if err := rows.Scan(&a.ID, &a.QuestionID, &a.Text, &a.IsCorrect); err != nil {
			return nil, wrapErr("answers for question", err)
		}
		answers = append(answers, a)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr("answers for question", err)
	}

	return answers, nil
}

func scanQuestions(op string, rows *sql.Rows) ([]entity.Question, error) {
	defer rows.Close()

	questions := make([]entity.Question, 0)
	for rows.Next() {
		var q entity.Question
		if err := rows.Scan(&q.ID, &q.Text); err != nil {
			return nil, wrapErr(op, err)
		}
		questions = append(questions, q)
	}
	if err := rows.Err(); err != nil {
		return nil, wrapErr(op, err)
	}

	return questions, nil
}
