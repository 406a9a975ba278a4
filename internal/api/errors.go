package api

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNetwork marks transport or decode failures. Callers surface these as
// the single "Network error" message instead of raw transport detail.
var ErrNetwork = errors.New("Network error")

type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error is the normalized failure shape for every backend call: either a
// backend-reported failure (StatusCode plus message/field errors) or a
// wrapped transport error.
type Error struct {
	StatusCode int
	Message    string
	Fields     []FieldError
	Err        error
}

func (e *Error) Error() string {
	if len(e.Fields) == 0 {
		return e.Message
	}

	lines := make([]string, 0, len(e.Fields))
	for _, fe := range e.Fields {
		lines = append(lines, fmt.Sprintf("%s: %s", fe.Field, fe.Message))
	}

	return fmt.Sprintf("%s (%s)", e.Message, strings.Join(lines, ", "))
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewNetworkError(err error) *Error {
	return &Error{
		Message: "Network error",
		Err:     fmt.Errorf("%w: %v", ErrNetwork, err),
	}
}

func IsNetworkError(err error) bool {
	return errors.Is(err, ErrNetwork)
}
