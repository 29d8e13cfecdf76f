package handler

import (
	"net/http"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/middleware"
	"quizgame/internal/quiz"
	"quizgame/internal/session"
)

type Deps struct {
	Auth     *auth.Service
	Quiz     *quiz.Controller
	History  History
	Sessions *session.Store
	BaseURL  string
	Logger   *zap.Logger
}

// NewRouter wires every route of the web surface.
func NewRouter(d Deps) http.Handler {
	login := NewLoginHandler(d.Auth, d.Quiz, d.Sessions, d.Logger)
	registration := NewRegistrationHandler(d.Auth, d.Sessions, d.Logger)
	reset := NewResetHandler(d.Auth, d.Sessions, d.BaseURL, d.Logger)
	quizHandler := NewQuizHandler(d.Quiz, d.History, d.Sessions, d.Logger)
	home := NewHomeHandler(d.Sessions, d.Logger)
	index := NewIndexHandler(login, d.Sessions, d.Logger)

	mux := http.NewServeMux()

	mux.HandleFunc("/", index.IndexHandler)
	mux.HandleFunc("/login", login.Login)
	mux.HandleFunc("/logout", login.Logout)
	mux.HandleFunc("/register", registration.Register)
	mux.HandleFunc("/reset_password", reset.RequestReset)
	mux.HandleFunc("/reset_password/{token}", reset.ConfirmReset)
	mux.HandleFunc("/home", home.HomePage)
	mux.HandleFunc("/quiz", quizHandler.Start)
	mux.HandleFunc("/question", quizHandler.Question)
	mux.HandleFunc("/results", quizHandler.Results)

	return middleware.Chain(mux,
		middleware.Logging(d.Logger),
		middleware.Recover(d.Logger),
		middleware.RequireAuth(d.Sessions),
	)
}
