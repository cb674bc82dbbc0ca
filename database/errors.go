package database

import (
	"errors"

	"github.com/jackc/pgx/v5/pgconn"
)

var (
	// ErrInvalidHandle is returned by a handle that was closed or never
	// attached to a connection.
	ErrInvalidHandle = errors.New("database: invalid statement handle")

	// ErrMissingBind is returned when a positional placeholder has no value.
	ErrMissingBind = errors.New("database: missing bind value")

	// ErrMixedBinds is returned when a statement got both positional and
	// named values.
	ErrMixedBinds = errors.New("database: positional and named binds cannot be mixed")

	ErrInvalidPosition = errors.New("database: bind position must be >= 1")

	ErrInvalidName = errors.New("database: bind name must start with ':'")

	ErrConnectionClosed = errors.New("database: connection closed")
)

// Error carries the code and message reported by the native driver.
type Error struct {
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Code != "" {
		return e.Code + ": " + e.Message
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// translate converts driver errors into *Error. Sentinel errors of this
// package pass through.
func translate(err error) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return &Error{Code: pgErr.Code, Message: pgErr.Message, Err: err}
	}
	var nativeErr *Error
	if errors.As(err, &nativeErr) {
		return err
	}
	return &Error{Message: err.Error(), Err: err}
}
