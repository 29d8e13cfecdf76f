package entity

type Question struct {
	ID   int    `json:"question_id"`
	Text string `json:"text"`
}

type Answer struct {
	ID         int    `json:"answer_id"`
	QuestionID int    `json:"question_id"`
	Text       string `json:"text"`
	IsCorrect  bool   `json:"-"`
}

// CorrectAnswerID returns the id of the first answer flagged correct.
// ok is false when none of the answers is flagged.
func CorrectAnswerID(answers []Answer) (id int, ok bool) {
	for _, a := range answers {
		if a.IsCorrect {
			return a.ID, true
		}
	}
	return 0, false
}
