package repository

import (
	"context"
	"database/sql"
	"time"

	"quizgame/internal/entity"
)

type AttemptRepository struct {
	db *sql.DB
}

func NewAttemptRepository(db *sql.DB) *AttemptRepository {
	return &AttemptRepository{db: db}
}

// Record appends a graded submission to the scores log.
func (a *AttemptRepository) Record(ctx context.Context, attempt entity.Attempt) error {
	answeredAt := attempt.AnsweredAt
	if answeredAt.IsZero() {
		answeredAt = time.Now()
	}

	var answerID sql.NullInt64
	if attempt.AnswerID > 0 {
		answerID = sql.NullInt64{Int64: int64(attempt.AnswerID), Valid: true}
	}

	_, err := a.db.ExecContext(ctx, `
		INSERT INTO scores (user_id, question_id, answer_id, is_correct, answered_at)
		VALUES ($1, $2, $3, $4, $5)
	`, attempt.UserID, attempt.QuestionID, answerID, attempt.IsCorrect, answeredAt)

	return wrapErr("record attempt", err)
}

type AttemptSummary struct {
	Answered int
	Correct  int
}

// SummaryByUser totals every submission the user has made across attempts.
func (a *AttemptRepository) SummaryByUser(ctx context.Context, userID int) (AttemptSummary, error) {
	var s AttemptSummary
	err := a.db.QueryRowContext(ctx, `
		SELECT COUNT(*), COUNT(*) FILTER (WHERE is_correct)
		FROM scores
		WHERE user_id = $1
	`, userID).Scan(&s.Answered, &s.Correct)

	return s, wrapErr("attempt summary", err)
}
