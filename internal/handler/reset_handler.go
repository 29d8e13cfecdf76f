package handler

import (
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/session"
)

type ResetHandler struct {
	auth        *auth.Service
	sessions    *session.Store
	baseURL     string
	requestTmpl *template.Template
	confirmTmpl *template.Template
	logger      *zap.Logger
}

func NewResetHandler(authSvc *auth.Service, sessions *session.Store, baseURL string, logger *zap.Logger) *ResetHandler {
	return &ResetHandler{
		auth:        authSvc,
		sessions:    sessions,
		baseURL:     baseURL,
		requestTmpl: parsePage("reset_password.html"),
		confirmTmpl: parsePage("reset_password_confirm.html"),
		logger:      logger,
	}
}

// RequestReset serves /reset_password.
func (h *ResetHandler) RequestReset(w http.ResponseWriter, r *http.Request) {
	if r.Method != http.MethodPost {
		render(w, h.logger, h.requestTmpl, http.StatusOK, page(w, r, h.sessions, "Reset password"))
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	email := r.FormValue("email")
	if err := h.auth.RequestPasswordReset(r.Context(), email, h.baseURL); err != nil {
		data := page(w, r, h.sessions, "Reset password")
		data["Error"] = userMessage(h.logger, err)
		data["Form"] = map[string]string{"email": email}
		render(w, h.logger, h.requestTmpl, http.StatusOK, data)
		return
	}

	_ = h.sessions.AddFlash(w, r, session.FlashSuccess, "If an account exists, a reset link has been sent.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

// ConfirmReset serves /reset_password/{token}.
func (h *ResetHandler) ConfirmReset(w http.ResponseWriter, r *http.Request) {
	token := r.PathValue("token")

	if r.Method != http.MethodPost {
		if _, err := h.auth.CheckResetToken(r.Context(), token); err != nil {
			h.rejectToken(w, r, err)
			return
		}
		data := page(w, r, h.sessions, "Choose a new password")
		data["Token"] = token
		render(w, h.logger, h.confirmTmpl, http.StatusOK, data)
		return
	}

	if err := r.ParseForm(); err != nil {
		http.Error(w, "Invalid form", http.StatusBadRequest)
		return
	}

	err := h.auth.ResetPassword(r.Context(), token, r.FormValue("password"))
	if errors.Is(err, auth.ErrInvalidResetToken) {
		h.rejectToken(w, r, err)
		return
	}
	if err != nil {
		data := page(w, r, h.sessions, "Choose a new password")
		data["Token"] = token
		data["Error"] = userMessage(h.logger, err)
		render(w, h.logger, h.confirmTmpl, http.StatusOK, data)
		return
	}

	_ = h.sessions.AddFlash(w, r, session.FlashSuccess, "Password updated. Please login.")
	http.Redirect(w, r, "/", http.StatusSeeOther)
}

func (h *ResetHandler) rejectToken(w http.ResponseWriter, r *http.Request, err error) {
	_ = h.sessions.AddFlash(w, r, session.FlashDanger, userMessage(h.logger, err))
	http.Redirect(w, r, "/reset_password", http.StatusSeeOther)
}
