package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/session"
)

// IndexHandler owns "/": the login page at the root, 404 everywhere else.
type IndexHandler struct {
	login    *LoginHandler
	sessions *session.Store
	notFound *template.Template
	logger   *zap.Logger
}

func NewIndexHandler(login *LoginHandler, sessions *session.Store, logger *zap.Logger) *IndexHandler {
	return &IndexHandler{
		login:    login,
		sessions: sessions,
		notFound: parsePage("404.html"),
		logger:   logger,
	}
}

func (i *IndexHandler) IndexHandler(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		i.NotFound(w, r)
		return
	}
	i.login.Login(w, r)
}

func (i *IndexHandler) NotFound(w http.ResponseWriter, r *http.Request) {
	render(w, i.logger, i.notFound, http.StatusNotFound, page(w, r, i.sessions, "Not found"))
}
