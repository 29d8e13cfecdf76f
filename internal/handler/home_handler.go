package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/session"
)

// HomeHandler is the landing page for logged in users; it never starts a
// quiz on its own.
type HomeHandler struct {
	sessions *session.Store
	tmpl     *template.Template
	logger   *zap.Logger
}

func NewHomeHandler(sessions *session.Store, logger *zap.Logger) *HomeHandler {
	return &HomeHandler{
		sessions: sessions,
		tmpl:     parsePage("home.html"),
		logger:   logger,
	}
}

func (h *HomeHandler) HomePage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, h.tmpl, http.StatusOK, page(w, r, h.sessions, "Home"))
}
