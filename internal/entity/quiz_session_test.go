package entity

import (
	"testing"
	"time"
)

func sampleQuestions(n int) []Question {
	qs := make([]Question, n)
	for i := range qs {
		qs[i] = Question{ID: i + 1, Text: "Question"}
	}
	return qs
}

func TestQuizSession_Transitions(t *testing.T) {
	now := time.Now()
	s := NewQuizSession("key", 1, sampleQuestions(3), now)

	if s.Index != 0 || s.Score != 0 {
		t.Fatalf("new session: index=%d score=%d, want 0 0", s.Index, s.Score)
	}
	if s.State() != QuizInProgress {
		t.Fatalf("state = %v, want in_progress", s.State())
	}

	answers := []bool{true, false, true}
	for i, correct := range answers {
		q, ok := s.Current()
		if !ok {
			t.Fatalf("step %d: no current question", i)
		}
		if q.ID != i+1 {
			t.Errorf("step %d: current question %d, want %d", i, q.ID, i+1)
		}
		if !s.Record(correct) {
			t.Fatalf("step %d: Record refused", i)
		}
		if s.Score < 0 || s.Score > s.Index {
			t.Errorf("step %d: score %d out of [0, %d]", i, s.Score, s.Index)
		}
	}

	if s.State() != QuizCompleted {
		t.Fatalf("state = %v, want completed", s.State())
	}
	if s.Score != 2 || s.Total() != 3 {
		t.Errorf("got %d/%d, want 2/3", s.Score, s.Total())
	}
	if _, ok := s.Current(); ok {
		t.Error("Current on a completed session must report ok=false")
	}
	if s.Record(true) {
		t.Error("Record on a completed session must be refused")
	}
	if s.Index != 3 || s.Score != 2 {
		t.Errorf("completed session mutated: index=%d score=%d", s.Index, s.Score)
	}
}

func TestQuizSession_Expired(t *testing.T) {
	now := time.Now()
	s := NewQuizSession("key", 1, sampleQuestions(1), now)

	if s.Expired(now.Add(29*time.Minute), 30*time.Minute) {
		t.Error("session expired before ttl")
	}
	if !s.Expired(now.Add(31*time.Minute), 30*time.Minute) {
		t.Error("session not expired after ttl")
	}
}

func TestQuizSession_SnapshotIsIndependent(t *testing.T) {
	s := NewQuizSession("key", 1, sampleQuestions(2), time.Now())
	snap := s.Snapshot()

	s.Record(true)
	s.Questions[0].Text = "changed"

	if snap.Index != 0 || snap.Score != 0 {
		t.Errorf("snapshot followed the original: index=%d score=%d", snap.Index, snap.Score)
	}
	if snap.Questions[0].Text != "Question" {
		t.Error("snapshot shares the questions slice")
	}
}

func TestCorrectAnswerID(t *testing.T) {
	answers := []Answer{
		{ID: 10, QuestionID: 1, Text: "A"},
		{ID: 11, QuestionID: 1, Text: "B", IsCorrect: true},
	}
	id, ok := CorrectAnswerID(answers)
	if !ok || id != 11 {
		t.Errorf("CorrectAnswerID = %d, %v; want 11, true", id, ok)
	}

	if _, ok := CorrectAnswerID(answers[:1]); ok {
		t.Error("expected ok=false when no answer is flagged")
	}
}
