package entity

import "time"

// Attempt is one row of the scores audit log: a single graded submission.
type Attempt struct {
	ID         int       `json:"id"`
	UserID     int       `json:"user_id"`
	QuestionID int       `json:"question_id"`
	AnswerID   int       `json:"answer_id"`
	IsCorrect  bool      `json:"is_correct"`
	AnsweredAt time.Time `json:"answered_at"`
}

func NewAttempt(userID, questionID, answerID int, isCorrect bool) Attempt {
	return Attempt{
		UserID:     userID,
		QuestionID: questionID,
		AnswerID:   answerID,
		IsCorrect:  isCorrect,
		AnsweredAt: time.Now(),
	}
}
