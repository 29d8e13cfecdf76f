package repository

import (
	"context"
	"database/sql"
	"errors"
	"os"
	"testing"

	"github.com/google/uuid"
	_ "github.com/lib/pq"
	"go.uber.org/zap"

	"quizgame/internal/database"
	"quizgame/internal/entity"
)

// openTestDB connects to TEST_DATABASE_URL and migrates it. Tests skip when
// the variable is unset.
func openTestDB(t *testing.T) *sql.DB {
	t.Helper()

	dsn := os.Getenv("TEST_DATABASE_URL")
	if dsn == "" {
		t.Skip("TEST_DATABASE_URL not set")
	}

	db, err := sql.Open("postgres", dsn)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	if err := database.Migrate(db, zap.NewNop()); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	return db
}

func TestUserRepository_Integration(t *testing.T) {
	db := openTestDB(t)
	repo := NewUserRepository(db)
	ctx := context.Background()

	username := "user-" + uuid.NewString()[:8]
	email := username + "@example.com"

	created, err := repo.Create(ctx, username, "hash", &email)
	if err != nil {
		t.Fatalf("Create: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM scores WHERE user_id = $1`, created.ID)
		db.Exec(`DELETE FROM users WHERE user_id = $1`, created.ID)
	})

	_, err = repo.Create(ctx, username, "other", nil)
	if !errors.Is(err, ErrDuplicate) {
		t.Fatalf("duplicate Create err = %v, want ErrDuplicate", err)
	}

	var count int
	if err := db.QueryRow(`SELECT COUNT(*) FROM users WHERE username = $1`, username).Scan(&count); err != nil {
		t.Fatal(err)
	}
	if count != 1 {
		t.Errorf("rows for username = %d, want 1", count)
	}

	byName, err := repo.FindByUsername(ctx, username)
	if err != nil || byName.ID != created.ID {
		t.Fatalf("FindByUsername = %+v, %v", byName, err)
	}

	byID, err := repo.GetByID(ctx, created.ID)
	if err != nil || byID.Username != username || byID.Email == nil || *byID.Email != email {
		t.Fatalf("GetByID = %+v, %v", byID, err)
	}
	if _, err := repo.GetByID(ctx, -1); !errors.Is(err, ErrNotFound) {
		t.Errorf("GetByID(-1) err = %v, want ErrNotFound", err)
	}

	byEmail, err := repo.FindByEmail(ctx, email)
	if err != nil || byEmail.ID != created.ID {
		t.Fatalf("FindByEmail = %+v, %v", byEmail, err)
	}

	token := uuid.NewString()
	if err := repo.SetResetToken(ctx, created.ID, token); err != nil {
		t.Fatalf("SetResetToken: %v", err)
	}
	byToken, err := repo.FindByResetToken(ctx, token)
	if err != nil || byToken.ID != created.ID {
		t.Fatalf("FindByResetToken = %+v, %v", byToken, err)
	}

	if err := repo.SetPassword(ctx, created.ID, "new-hash"); err != nil {
		t.Fatalf("SetPassword: %v", err)
	}
	if _, err := repo.FindByResetToken(ctx, token); !errors.Is(err, ErrNotFound) {
		t.Errorf("reset token still valid after SetPassword: %v", err)
	}

	if _, err := repo.FindByUsername(ctx, "missing-"+uuid.NewString()); !errors.Is(err, ErrNotFound) {
		t.Errorf("missing user err = %v, want ErrNotFound", err)
	}
}

func TestQuestionAndAttemptRepository_Integration(t *testing.T) {
	db := openTestDB(t)
	questions := NewQuestionRepository(db)
	attempts := NewAttemptRepository(db)
	users := NewUserRepository(db)
	ctx := context.Background()

	all, err := questions.AllQuestions(ctx)
	if err != nil {
		t.Fatalf("AllQuestions: %v", err)
	}
	if len(all) == 0 {
		t.Skip("question bank is empty")
	}

	sample, err := questions.SampleQuestions(ctx, 3)
	if err != nil {
		t.Fatalf("SampleQuestions: %v", err)
	}
	seen := make(map[int]bool)
	for _, q := range sample {
		if seen[q.ID] {
			t.Errorf("question %d sampled twice", q.ID)
		}
		seen[q.ID] = true
	}

	answers, err := questions.AnswersFor(ctx, all[0].ID)
	if err != nil {
		t.Fatalf("AnswersFor: %v", err)
	}
	correctID, ok := entity.CorrectAnswerID(answers)
	if !ok {
		t.Fatalf("question %d has no correct answer", all[0].ID)
	}

	u, err := users.Create(ctx, "scorer-"+uuid.NewString()[:8], "hash", nil)
	if err != nil {
		t.Fatalf("Create user: %v", err)
	}
	t.Cleanup(func() {
		db.Exec(`DELETE FROM scores WHERE user_id = $1`, u.ID)
		db.Exec(`DELETE FROM users WHERE user_id = $1`, u.ID)
	})

	if err := attempts.Record(ctx, entity.NewAttempt(u.ID, all[0].ID, correctID, true)); err != nil {
		t.Fatalf("Record: %v", err)
	}
	if err := attempts.Record(ctx, entity.NewAttempt(u.ID, all[0].ID, 0, false)); err != nil {
		t.Fatalf("Record: %v", err)
	}

	summary, err := attempts.SummaryByUser(ctx, u.ID)
	if err != nil {
		t.Fatalf("SummaryByUser: %v", err)
	}
	if summary.Answered != 2 || summary.Correct != 1 {
		t.Errorf("summary = %+v, want 2 answered, 1 correct", summary)
	}
}
