package auth

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"quizgame/internal/entity"
	"quizgame/internal/repository"
)

const (
	MinPasswordLength = 8
	// bcrypt rejects passwords longer than this many bytes.
	MaxPasswordBytes = 72
)

var (
	ErrInvalidCredentials = errors.New("invalid username or password")
	ErrInvalidResetToken  = errors.New("invalid or expired reset link")
)

// ValidationError carries a message meant for the person filling the form.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

type UserStore interface {
	FindByUsername(ctx context.Context, username string) (*entity.User, error)
	FindByEmail(ctx context.Context, email string) (*entity.User, error)
	FindByResetToken(ctx context.Context, token string) (*entity.User, error)
	Create(ctx context.Context, username, passwordHash string, email *string) (*entity.User, error)
	SetPassword(ctx context.Context, userID int, passwordHash string) error
	SetResetToken(ctx context.Context, userID int, token string) error
}

type Mailer interface {
	SendResetEmail(ctx context.Context, recipient, link string) error
}

type RegisterInput struct {
	Username string `validate:"required,max=64"`
	Password string `validate:"required,min=8,max=72"`
	Email    string `validate:"omitempty,email,max=255"`
}

type loginInput struct {
	Username string `validate:"required"`
	Password string `validate:"required"`
}

type resetRequestInput struct {
	Email string `validate:"required,email"`
}

type newPasswordInput struct {
	Password string `validate:"required,min=8,max=72"`
}

type Service struct {
	users     UserStore
	mailer    Mailer
	validate  *validator.Validate
	cost      int
	dummyHash []byte
	logger    *zap.Logger
}

type Option func(*Service)

// WithHashCost sets the bcrypt cost; tests use bcrypt.MinCost.
func WithHashCost(cost int) Option {
	return func(s *Service) {
		s.cost = cost
	}
}

func NewService(users UserStore, mailer Mailer, logger *zap.Logger, opts ...Option) *Service {
	s := &Service{
		users:    users,
		mailer:   mailer,
		validate: validator.New(validator.WithRequiredStructEnabled()),
		cost:     bcrypt.DefaultCost,
		logger:   logger,
	}
	for _, opt := range opts {
		opt(s)
	}

	// compared against when the username is unknown, so both paths cost the same
	s.dummyHash, _ = bcrypt.GenerateFromPassword([]byte("not-a-real-password"), s.cost)
	return s
}

func (s *Service) Register(ctx context.Context, in RegisterInput) (*entity.User, error) {
	in.Username = strings.TrimSpace(in.Username)
	in.Email = strings.TrimSpace(in.Email)

	if err := s.check(in); err != nil {
		return nil, err
	}
	if err := checkPasswordBytes(in.Password); err != nil {
		return nil, err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(in.Password), s.cost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	var email *string
	if in.Email != "" {
		email = &in.Email
	}

	user, err := s.users.Create(ctx, in.Username, string(hash), email)
	if err != nil {
		return nil, err
	}

	s.logger.Info("user registered", zap.Int("user_id", user.ID), zap.String("username", user.Username))
	return user, nil
}

// Login checks the credentials. Unknown usernames and wrong passwords both
// yield ErrInvalidCredentials.
func (s *Service) Login(ctx context.Context, username, password string) (*entity.User, error) {
	username = strings.TrimSpace(username)
	if err := s.check(loginInput{Username: username, Password: password}); err != nil {
		return nil, err
	}

	user, err := s.users.FindByUsername(ctx, username)
	if errors.Is(err, repository.ErrNotFound) {
		_ = bcrypt.CompareHashAndPassword(s.dummyHash, []byte(password))
		return nil, ErrInvalidCredentials
	}
	if err != nil {
		return nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

// RequestPasswordReset issues a reset token and mails the link when the
// email belongs to an account. Unknown emails succeed silently.
func (s *Service) RequestPasswordReset(ctx context.Context, email, baseURL string) error {
	email = strings.TrimSpace(email)
	if err := s.check(resetRequestInput{Email: email}); err != nil {
		return err
	}

	user, err := s.users.FindByEmail(ctx, email)
	if errors.Is(err, repository.ErrNotFound) {
		return nil
	}
	if err != nil {
		return err
	}

	token := uuid.NewString()
	if err := s.users.SetResetToken(ctx, user.ID, token); err != nil {
		return err
	}

	link := strings.TrimRight(baseURL, "/") + "/reset_password/" + token
	if err := s.mailer.SendResetEmail(ctx, email, link); err != nil {
		return fmt.Errorf("send reset email: %w", err)
	}

	s.logger.Info("password reset requested", zap.Int("user_id", user.ID))
	return nil
}

func (s *Service) CheckResetToken(ctx context.Context, token string) (*entity.User, error) {
	if _, err := uuid.Parse(token); err != nil {
		return nil, ErrInvalidResetToken
	}

	user, err := s.users.FindByResetToken(ctx, token)
	if errors.Is(err, repository.ErrNotFound) {
		return nil, ErrInvalidResetToken
	}
	return user, err
}

// ResetPassword sets a new password for the owner of token. The token is
// single use.
func (s *Service) ResetPassword(ctx context.Context, token, password string) error {
	user, err := s.CheckResetToken(ctx, token)
	if err != nil {
		return err
	}

	if err := s.check(newPasswordInput{Password: password}); err != nil {
		return err
	}
	if err := checkPasswordBytes(password); err != nil {
		return err
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), s.cost)
	if err != nil {
		return fmt.Errorf("hash password: %w", err)
	}

	if err := s.users.SetPassword(ctx, user.ID, string(hash)); err != nil {
		return err
	}

	s.logger.Info("password reset", zap.Int("user_id", user.ID))
	return nil
}

func (s *Service) check(in any) error {
	err := s.validate.Struct(in)
	if err == nil {
		return nil
	}

	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return err
	}
	return &ValidationError{Message: message(fieldErrs[0])}
}

// validator's max counts runes, bcrypt's limit counts bytes.
func checkPasswordBytes(password string) error {
	if len(password) > MaxPasswordBytes {
		return &ValidationError{Message: "Password is too long."}
	}
	return nil
}

func message(fe validator.FieldError) string {
	switch fe.Tag() {
	case "required":
		if fe.Field() == "Email" {
			return "Please enter an email address."
		}
		return "Please fill in all fields."
	case "min":
		return fmt.Sprintf("Password must be at least %d characters long.", MinPasswordLength)
	case "email":
		return "Please enter a valid email address."
	case "max":
		return fmt.Sprintf("%s is too long.", fe.Field())
	}
	return fmt.Sprintf("%s is invalid.", fe.Field())
}
