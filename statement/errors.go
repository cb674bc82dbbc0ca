package statement

import (
	"errors"
	"strings"

	"github.com/Konsultn-Engineering/namedbind/database"
)

var (
	// ErrNoPlaceholder is wrapped by a BindError whose key does not resolve
	// to a generated placeholder.
	ErrNoPlaceholder = errors.New("statement: no placeholder for parameter")

	// ErrInvalidKey is wrapped by a BindError for negative positions and
	// names without a leading ':'.
	ErrInvalidKey = errors.New("statement: invalid parameter key")
)

// BindError reports a parameter that could not be bound. Binding stops at
// the first BindError.
type BindError struct {
	Key  Key
	Name string
	Err  error
}

func (e *BindError) Error() string {
	var sb strings.Builder
	sb.WriteString("bind parameter ")
	sb.WriteString(e.Key.String())
	if e.Name != "" && e.Name != e.Key.Name {
		sb.WriteString(" as ")
		sb.WriteString(e.Name)
	}
	sb.WriteString(": ")
	sb.WriteString(e.Err.Error())
	return sb.String()
}

func (e *BindError) Unwrap() error {
	return e.Err
}

// ExecutionError wraps a failed native execute. Code and Message come from
// the native driver when it reports them.
type ExecutionError struct {
	Query   string
	Mode    database.ExecuteMode
	Code    string
	Message string
	Err     error
}

func newExecutionError(query string, mode database.ExecuteMode, err error) *ExecutionError {
	e := &ExecutionError{Query: query, Mode: mode, Message: err.Error(), Err: err}
	var nativeErr *database.Error
	if errors.As(err, &nativeErr) {
		e.Code = nativeErr.Code
		e.Message = nativeErr.Message
	}
	return e
}

func (e *ExecutionError) Error() string {
	if e.Code != "" {
		return "execute statement: " + e.Code + ": " + e.Message
	}
	return "execute statement: " + e.Message
}

func (e *ExecutionError) Unwrap() error {
	return e.Err
}
