package placeholder

import (
	"errors"
	"fmt"
)

// ErrNonTerminatedLiteral is matched by every *SyntaxError.
var ErrNonTerminatedLiteral = errors.New("placeholder: non-terminated string literal")

// SyntaxError reports a quoted literal that is never closed. Offset is the
// 0-based byte index of the quote that opened it.
type SyntaxError struct {
	Offset  int
	Message string
}

func newSyntaxError(offset int) *SyntaxError {
	return &SyntaxError{
		Offset:  offset,
		Message: fmt.Sprintf("the statement contains non-terminated string literal starting at offset %d.", offset),
	}
}

func (e *SyntaxError) Error() string {
	return e.Message
}

func (e *SyntaxError) Is(target error) bool {
	return target == ErrNonTerminatedLiteral
}
