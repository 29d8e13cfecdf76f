package handler

import (
	"context"
	"errors"
	"html/template"
	"net/http"
	"strconv"

	"go.uber.org/zap"

	"quizgame/internal/quiz"
	"quizgame/internal/repository"
	"quizgame/internal/session"
)

// History reports a user's totals across every attempt.
type History interface {
	SummaryByUser(ctx context.Context, userID int) (repository.AttemptSummary, error)
}

type QuizHandler struct {
	quiz         *quiz.Controller
	history      History
	sessions     *session.Store
	questionTmpl *template.Template
	resultsTmpl  *template.Template
	logger       *zap.Logger
}

func NewQuizHandler(quizCtl *quiz.Controller, history History, sessions *session.Store, logger *zap.Logger) *QuizHandler {
	return &QuizHandler{
		quiz:         quizCtl,
		history:      history,
		sessions:     sessions,
		questionTmpl: parsePage("question.html"),
		resultsTmpl:  parsePage("results.html"),
		logger:       logger,
	}
}

func (h *QuizHandler) identity(w http.ResponseWriter, r *http.Request) (session.Identity, bool) {
	id, ok := session.FromContext(r.Context())
	if !ok {
		http.Redirect(w, r, "/", http.StatusSeeOther)
	}
	return id, ok
}

func (h *QuizHandler) fail(w http.ResponseWriter, r *http.Request, message string) {
	_ = h.sessions.AddFlash(w, r, session.FlashDanger, message)
	http.Redirect(w, r, "/home", http.StatusSeeOther)
}

// Start serves /quiz: it picks a fresh question set and moves to the first question.
func (h *QuizHandler) Start(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	_, err := h.quiz.Start(r.Context(), id.QuizKey, id.UserID)
	switch {
	case errors.Is(err, quiz.ErrNoQuestionsAvailable):
		h.fail(w, r, "No questions available.")
		return
	case err != nil:
		h.fail(w, r, userMessage(h.logger, err))
		return
	}

	http.Redirect(w, r, "/question", http.StatusSeeOther)
}

// Question serves /question: GET shows the pending question, POST grades it.
func (h *QuizHandler) Question(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	if r.Method == http.MethodPost {
		h.submit(w, r, id)
		return
	}

	h.show(w, r, id, "")
}

func (h *QuizHandler) show(w http.ResponseWriter, r *http.Request, id session.Identity, errMsg string) {
	view, err := h.quiz.Current(r.Context(), id.QuizKey)
	switch {
	case errors.Is(err, quiz.ErrNoActiveSession):
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	case errors.Is(err, quiz.ErrQuizCompleted):
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	case err != nil:
		h.fail(w, r, userMessage(h.logger, err))
		return
	}

	data := page(w, r, h.sessions, "Question")
	data["View"] = view
	data["Error"] = errMsg
	render(w, h.logger, h.questionTmpl, http.StatusOK, data)
}

func (h *QuizHandler) submit(w http.ResponseWriter, r *http.Request, id session.Identity) {
	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	answerID, err := strconv.Atoi(r.FormValue("answer"))
	if err != nil {
		h.show(w, r, id, "Please select an answer.")
		return
	}
	questionID, _ := strconv.Atoi(r.FormValue("question_id"))

	out, err := h.quiz.Submit(r.Context(), id.QuizKey, questionID, answerID)
	switch {
	case errors.Is(err, quiz.ErrNoActiveSession):
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	case errors.Is(err, quiz.ErrStaleSubmission):
		http.Redirect(w, r, "/question", http.StatusSeeOther)
		return
	case errors.Is(err, quiz.ErrQuizCompleted):
		http.Redirect(w, r, "/results", http.StatusSeeOther)
		return
	case err != nil:
		h.fail(w, r, userMessage(h.logger, err))
		return
	}

	if out.Correct {
		_ = h.sessions.AddFlash(w, r, session.FlashSuccess, "Correct!")
	} else {
		_ = h.sessions.AddFlash(w, r, session.FlashDanger, "Incorrect.")
	}

	next := "/question"
	if out.Completed {
		next = "/results"
	}
	http.Redirect(w, r, next, http.StatusSeeOther)
}

// Results serves /results: it shows the final tally and ends the attempt.
func (h *QuizHandler) Results(w http.ResponseWriter, r *http.Request) {
	id, ok := h.identity(w, r)
	if !ok {
		return
	}

	res, err := h.quiz.Results(id.QuizKey)
	if errors.Is(err, quiz.ErrNoActiveSession) {
		http.Redirect(w, r, "/home", http.StatusSeeOther)
		return
	}
	if err != nil {
		h.fail(w, r, userMessage(h.logger, err))
		return
	}

	data := page(w, r, h.sessions, "Results")
	data["Score"] = res.Score
	data["Total"] = res.Total

	if h.history != nil {
		summary, err := h.history.SummaryByUser(r.Context(), id.UserID)
		if err != nil {
			h.logger.Warn("load attempt history", zap.Int("user_id", id.UserID), zap.Error(err))
		} else {
			data["History"] = &summary
		}
	}

	h.logger.Info("quiz finished",
		zap.Int("user_id", id.UserID),
		zap.Int("score", res.Score),
		zap.Int("total", res.Total),
	)
	render(w, h.logger, h.resultsTmpl, http.StatusOK, data)
}
