package handler

import (
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/session"
)

type RegistrationHandler struct {
	auth     *auth.Service
	sessions *session.Store
	tmpl     *template.Template
	logger   *zap.Logger
}

func NewRegistrationHandler(authSvc *auth.Service, sessions *session.Store, logger *zap.Logger) *RegistrationHandler {
	return &RegistrationHandler{
		auth:     authSvc,
		sessions: sessions,
		tmpl:     parsePage("register.html"),
		logger:   logger,
	}
}

func (h *RegistrationHandler) RegisterPage(w http.ResponseWriter, r *http.Request) {
	render(w, h.logger, h.tmpl, http.StatusOK, page(w, r, h.sessions, "Register"))
}

func (h *RegistrationHandler) Register(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		h.RegisterPage(w, r)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	in := auth.RegisterInput{
		Username: r.FormValue("username"),
		Password: r.FormValue("password"),
		Email:    r.FormValue("email"),
	}

	if _, err := h.auth.Register(r.Context(), in); err != nil {
		data := page(w, r, h.sessions, "Register")
		data["Error"] = userMessage(h.logger, err)
		data["Form"] = map[string]string{
			"username": in.Username,
			"email":    in.Email,
		}
		render(w, h.logger, h.tmpl, http.StatusOK, data)
		return
	}

	if err := h.sessions.AddFlash(w, r, session.FlashSuccess, "Registration successful! Please login."); err != nil {
		h.logger.Error("save flash", zap.Error(err))
	}
	http.Redirect(w, r, "/", http.StatusSeeOther)
}
