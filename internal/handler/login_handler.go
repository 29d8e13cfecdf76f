package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/quiz"
	"quizgame/internal/session"
)

type LoginHandler struct {
	auth     *auth.Service
	quiz     *quiz.Controller
	sessions *session.Store
	tmpl     *template.Template
	logger   *zap.Logger
}

func NewLoginHandler(authSvc *auth.Service, quizCtl *quiz.Controller, sessions *session.Store, logger *zap.Logger) *LoginHandler {
	return &LoginHandler{
		auth:     authSvc,
		quiz:     quizCtl,
		sessions: sessions,
		tmpl:     parsePage("login.html"),
		logger:   logger,
	}
}

func (h *LoginHandler) LoginPage(w http.ResponseWriter, r *http.Request) {
	if _, ok := session.FromContext(r.Context()); ok {
		http.Redirect(w, r, "/quiz", http.StatusSeeOther)
		return
	}

	render(w, h.logger, h.tmpl, http.StatusOK, page(w, r, h.sessions, "Login"))
}

func (h *LoginHandler) Login(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.LoginPage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	username := r.FormValue("username")
	password := r.FormValue("password")

	user, err := h.auth.Login(r.Context(), username, password)
	if err != nil {
		h.logger.Info("login failed", zap.String("username", username), zap.Error(err))

		data := page(w, r, h.sessions, "Login")
		data["Error"] = userMessage(h.logger, err)
		data["Form"] = map[string]string{"username": username}
		render(w, h.logger, h.tmpl, http.StatusOK, data)
		return
	}

	if prev, ok := session.FromContext(r.Context()); ok {
		h.quiz.Abandon(prev.QuizKey)
	}

	_, err = h.sessions.Login(w, r, user.ID, session.Flash{Kind: session.FlashSuccess, Message: "Login successful!"})
	if err != nil {
		h.logger.Error("save session", zap.Int("user_id", user.ID), zap.Error(err))
		http.Error(w, msgUnexpected, http.StatusInternalServerError)
		return
	}

	h.logger.Info("user logged in", zap.Int("user_id", user.ID))
	http.Redirect(w, r, "/quiz", http.StatusSeeOther)
}

func (h *LoginHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if id, ok := session.FromContext(r.Context()); ok {
		h.quiz.Abandon(id.QuizKey)
	}

	if err := h.sessions.Logout(w, r, session.Flash{Kind: session.FlashSuccess, Message: "Logged out successfully."}); err != nil {
		h.logger.Error("clear session", zap.Error(err))
	}

	http.Redirect(w, r, "/", http.StatusSeeOther)
}
