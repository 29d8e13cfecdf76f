package repository

import (
	"context"
	"database/sql"

	"quizgame/internal/entity"
)

type UserRepository struct {
	db *sql.DB
}

func NewUserRepository(db *sql.DB) *UserRepository {
	return &UserRepository{db: db}
}

const userColumns = `user_id, username, password, email, reset_token, created_at`

func scanUser(row interface{ Scan(...any) error }) (*entity.User, error) {
	var (
		u          entity.User
		email      sql.NullString
		resetToken sql.NullString
	)

	if err := row.Scan(&u.ID, &u.Username, &u.PasswordHash, &email, &resetToken, &u.CreatedAt); err != nil {
		return nil, err
	}
	if email.Valid {
		u.Email = &email.String
	}
	if resetToken.Valid {
		u.ResetToken = &resetToken.String
	}
	return &u, nil
}

func (r *UserRepository) GetByID(ctx context.Context, id int) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE user_id = $1`, id)
	u, err := scanUser(row)
	return u, wrapErr("get user by id", err)
}

func (r *UserRepository) FindByUsername(ctx context.Context, username string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE username = $1`, username)
	u, err := scanUser(row)
	return u, wrapErr("find user by username", err)
}

func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE email = $1`, email)
	u, err := scanUser(row)
	return u, wrapErr("find user by email", err)
}

func (r *UserRepository) FindByResetToken(ctx context.Context, token string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `SELECT `+userColumns+` FROM users WHERE reset_token = $1`, token)
	u, err := scanUser(row)
	return u, wrapErr("find user by reset token", err)
}

// Create inserts a user. A taken username or email yields a *DuplicateError.
func (r *UserRepository) Create(ctx context.Context, username, passwordHash string, email *string) (*entity.User, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO users (username, password, email)
		VALUES ($1, $2, $3)
		RETURNING `+userColumns,
		username, passwordHash, email,
	)
	u, err := scanUser(row)
	return u, wrapErr("create user", err)
}

// SetPassword stores a new hash and invalidates any pending reset token.
func (r *UserRepository) SetPassword(ctx context.Context, userID int, passwordHash string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET password = $1, reset_token = NULL WHERE user_id = $2
	`, passwordHash, userID)
	if err != nil {
		return wrapErr("set password", err)
	}
	return expectOneRow("set password", res)
}

func (r *UserRepository) SetResetToken(ctx context.Context, userID int, token string) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE users SET reset_token = $1 WHERE user_id = $2
	`, token, userID)
	if err != nil {
		return wrapErr("set reset token", err)
	}
	return expectOneRow("set reset token", res)
}

func expectOneRow(op string, res sql.Result) error {
	n, err := res.RowsAffected()
	if err != nil {
		return wrapErr(op, err)
	}
	if n == 0 {
		return wrapErr(op, sql.ErrNoRows)
	}
	return nil
}
