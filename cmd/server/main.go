package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"go.uber.org/zap"

	"quizgame/internal/auth"
	"quizgame/internal/config"
	"quizgame/internal/database"
	"quizgame/internal/handler"
	"quizgame/internal/logger"
	"quizgame/internal/quiz"
	"quizgame/internal/repository"
	"quizgame/internal/session"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatal(err)
	}

	lg, err := logger.New(cfg)
	if err != nil {
		log.Fatal(err)
	}
	defer lg.Sync()

	if err := run(cfg, lg); err != nil {
		lg.Fatal("server stopped", zap.Error(err))
	}
}

func run(cfg *config.Config, lg *zap.Logger) error {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	db, err := database.Open(ctx, cfg.Database, lg)
	if err != nil {
		return err
	}
	defer func() {
		db.Close()
		lg.Info("database connection closed")
	}()

	if err := database.Migrate(db, lg); err != nil {
		return err
	}

	userRepo := repository.NewUserRepository(db)
	questionRepo := repository.NewQuestionRepository(db)
	attemptRepo := repository.NewAttemptRepository(db)

	if cfg.Session.Secret == "" {
		lg.Warn("session secret not set, using a random key; sessions will not survive a restart")
	}
	sessions := session.NewStore(cfg.Session.SessionKey(), cfg.Session.TTL, cfg.Session.SecureCookie)

	manager := quiz.NewManager(cfg.Session.TTL)
	janitor, err := quiz.NewJanitor(manager, cfg.Quiz.PurgeSchedule, lg)
	if err != nil {
		return err
	}
	janitor.Start()
	defer janitor.Stop()

	controller := quiz.NewController(manager, questionRepo, attemptRepo, quiz.Options{
		Size:           cfg.Quiz.Size,
		ShuffleAnswers: cfg.Quiz.AnswerOrder == config.AnswerOrderRandom,
	}, lg)

	authSvc := auth.NewService(userRepo, auth.NewLogMailer(lg), lg)

	srv := &http.Server{
		Addr: ":" + cfg.HTTP.Port,
		Handler: handler.NewRouter(handler.Deps{
			Auth:     authSvc,
			Quiz:     controller,
			History:  attemptRepo,
			Sessions: sessions,
			BaseURL:  cfg.HTTP.BaseURL,
			Logger:   lg,
		}),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		lg.Info("server started", zap.String("addr", srv.Addr), zap.String("env", cfg.Env))
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
		lg.Info("shutdown signal received")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), cfg.HTTP.ShutdownTimeout)
	defer cancel()

	return srv.Shutdown(shutdownCtx)
}
