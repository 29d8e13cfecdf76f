package handler

import (
	"bytes"
	"errors"
	"html/template"
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/repository"
	"quizgame/internal/session"
	"quizgame/internal/templates"
)

const (
	msgUnavailable = "Service temporarily unavailable. Please try again later."
	msgUnexpected  = "Something went wrong. Please try again."
)

func parsePage(name string) *template.Template {
	return template.Must(template.ParseFS(templates.FS, "layout.html", name))
}

// page builds the template data shared by every page.
func page(w http.ResponseWriter, r *http.Request, store *session.Store, title string) map[string]interface{} {
	return map[string]interface{}{
		"Title":   title,
		"Flashes": store.Flashes(w, r),
		"Error":   "",
		"Form":    map[string]string{},
	}
}

func render(w http.ResponseWriter, logger *zap.Logger, tmpl *template.Template, status int, data map[string]interface{}) {
	var buf bytes.Buffer
	if err := tmpl.ExecuteTemplate(&buf, "layout", data); err != nil {
		logger.Error("render template", zap.String("template", tmpl.Name()), zap.Error(err))
		http.Error(w, msgUnexpected, http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.WriteHeader(status)
	_, _ = buf.WriteTo(w)
}

// userMessage turns an error into text that is safe to show on a form.
func userMessage(logger *zap.Logger, err error) string {
	var vErr *auth.ValidationError
	var dupErr *repository.DuplicateError

	switch {
	case errors.As(err, &vErr):
		return vErr.Message
	case errors.Is(err, auth.ErrInvalidCredentials):
		return "Invalid username or password"
	case errors.As(err, &dupErr):
		return dupErr.Error()
	case errors.Is(err, auth.ErrInvalidResetToken):
		return "Invalid or expired reset link."
	case errors.Is(err, repository.ErrDatabaseUnavailable):
		logger.Error("database unavailable", zap.Error(err))
		return msgUnavailable
	}

	logger.Error("unexpected error", zap.Error(err))
	return msgUnexpected
}
