package config

import (
	"errors"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	t.Chdir(t.TempDir())

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.Session.TTL != 30*time.Minute {
		t.Errorf("session ttl = %v, want 30m", cfg.Session.TTL)
	}
	if cfg.Quiz.Size != 5 {
		t.Errorf("quiz size = %d, want 5", cfg.Quiz.Size)
	}
	if cfg.Quiz.AnswerOrder != AnswerOrderStored {
		t.Errorf("answer order = %q, want %q", cfg.Quiz.AnswerOrder, AnswerOrderStored)
	}
	if cfg.HTTP.Port != "8080" {
		t.Errorf("port = %q, want 8080", cfg.HTTP.Port)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("PORT", "9090")
	t.Setenv("DB_HOST", "db.internal")
	t.Setenv("DB_NAME", "quiz_test")
	t.Setenv("QUIZ_SIZE", "0")
	t.Setenv("QUIZ_ANSWER_ORDER", "random")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("Load: %v", err)
	}

	if cfg.HTTP.Port != "9090" {
		t.Errorf("port = %q, want 9090", cfg.HTTP.Port)
	}
	if cfg.Database.Host != "db.internal" || cfg.Database.Name != "quiz_test" {
		t.Errorf("database = %+v", cfg.Database)
	}
	if cfg.Quiz.Size != 0 {
		t.Errorf("quiz size = %d, want 0", cfg.Quiz.Size)
	}
	if cfg.Quiz.AnswerOrder != AnswerOrderRandom {
		t.Errorf("answer order = %q, want random", cfg.Quiz.AnswerOrder)
	}
}

func TestLoad_RejectsUnknownAnswerOrder(t *testing.T) {
	t.Chdir(t.TempDir())
	t.Setenv("QUIZ_ANSWER_ORDER", "alphabetical")

	_, err := Load()
	if !errors.Is(err, ErrInvalidConfig) {
		t.Fatalf("err = %v, want ErrInvalidConfig", err)
	}
}

func TestSessionKey(t *testing.T) {
	if got := (Session{Secret: "plain-secret"}).SessionKey(); string(got) != "plain-secret" {
		t.Errorf("plain secret = %q", got)
	}

	a := (Session{}).SessionKey()
	b := (Session{}).SessionKey()
	if len(a) != 32 || string(a) == string(b) {
		t.Error("empty secret must yield distinct random 32-byte keys")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := Database{Host: "h", Port: "1", User: "u", Password: "p", Name: "n", SSLMode: "disable"}
	want := "host=h port=1 user=u password=p dbname=n sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN = %q, want %q", got, want)
	}
}
