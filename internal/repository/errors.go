package repository

import (
	"database/sql"
	"database/sql/driver"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/lib/pq"
)

var (
	ErrNotFound            = errors.New("record not found")
	ErrDuplicate           = errors.New("record already exists")
	ErrDatabaseUnavailable = errors.New("database unavailable")
)

const uniqueViolation = pq.ErrorCode("23505")

// DuplicateError is returned when a unique constraint rejects a write.
// It matches ErrDuplicate with errors.Is.
type DuplicateError struct {
	Field string
}

func (e *DuplicateError) Error() string {
	switch e.Field {
	case "username":
		return "Username already exists"
	case "email":
		return "Email already registered"
	}
	return "Record already exists"
}

func (e *DuplicateError) Is(target error) bool {
	return target == ErrDuplicate
}

// wrapErr maps driver errors onto the package sentinels and adds the
// operation name.
func wrapErr(op string, err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, sql.ErrNoRows) {
		return fmt.Errorf("%s: %w", op, ErrNotFound)
	}

	var pqErr *pq.Error
	if errors.As(err, &pqErr) {
		if pqErr.Code == uniqueViolation {
			return fmt.Errorf("%s: %w", op, &DuplicateError{Field: constraintField(pqErr.Constraint)})
		}
		switch pqErr.Code.Class() {
		case "08", "53", "57":
			return fmt.Errorf("%s: %w: %w", op, ErrDatabaseUnavailable, err)
		}
		return fmt.Errorf("%s: %w", op, err)
	}

	if isConnectionError(err) {
		return fmt.Errorf("%s: %w: %w", op, ErrDatabaseUnavailable, err)
	}

	return fmt.Errorf("%s: %w", op, err)
}

func isConnectionError(err error) bool {
	if errors.Is(err, driver.ErrBadConn) || errors.Is(err, sql.ErrConnDone) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr)
}

// constraintField turns "users_username_key" into "username".
func constraintField(constraint string) string {
	name := strings.TrimPrefix(constraint, "users_")
	return strings.TrimSuffix(name, "_key")
}
