package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"testing"

	"github.com/lib/pq"
)

func TestWrapErr(t *testing.T) {
	tests := []struct {
		name        string
		err         error
		wantTarget  error
		wantMessage string
	}{
		{
			name:       "no rows",
			err:        sql.ErrNoRows,
			wantTarget: ErrNotFound,
		},
		{
			name:        "duplicate username",
			err:         &pq.Error{Code: "23505", Constraint: "users_username_key"},
			wantTarget:  ErrDuplicate,
			wantMessage: "Username already exists",
		},
		{
			name:        "duplicate email",
			err:         &pq.Error{Code: "23505", Constraint: "users_email_key"},
			wantTarget:  ErrDuplicate,
			wantMessage: "Email already registered",
		},
		{
			name:       "connection failure",
			err:        &pq.Error{Code: "08006"},
			wantTarget: ErrDatabaseUnavailable,
		},
		{
			name:       "admin shutdown",
			err:        &pq.Error{Code: "57P01"},
			wantTarget: ErrDatabaseUnavailable,
		},
		{
			name:       "bad connection",
			err:        fmt.Errorf("query: %w", driver.ErrBadConn),
			wantTarget: ErrDatabaseUnavailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := wrapErr("op", tt.err)
			if !errors.Is(got, tt.wantTarget) {
				t.Fatalf("wrapErr(%v) = %v, want errors.Is %v", tt.err, got, tt.wantTarget)
			}
			if tt.wantMessage != "" {
				var dup *DuplicateError
				if !errors.As(got, &dup) {
					t.Fatalf("expected *DuplicateError, got %T", got)
				}
				if dup.Error() != tt.wantMessage {
					t.Errorf("message = %q, want %q", dup.Error(), tt.wantMessage)
				}
			}
		})
	}
}

func TestWrapErr_PassThrough(t *testing.T) {
	if wrapErr("op", nil) != nil {
		t.Error("nil error must stay nil")
	}

	syntax := &pq.Error{Code: "42601"}
	got := wrapErr("op", syntax)
	if errors.Is(got, ErrDatabaseUnavailable) || errors.Is(got, ErrDuplicate) || errors.Is(got, ErrNotFound) {
		t.Errorf("syntax error classified as a sentinel: %v", got)
	}
	if !errors.Is(got, syntax) {
		t.Error("original error lost")
	}
}
