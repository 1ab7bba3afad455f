package usecase

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is.
var (
	ErrValidation  = errors.New("validation failed")
	ErrNotFound    = errors.New("not found")
	ErrCapacity    = errors.New("tracking limit reached")
	ErrUpstream    = errors.New("offer lookup failed")
	ErrPersistence = errors.New("storage failed")
)

// Error is a classified failure carrying the text shown to the chat owner
type Error struct {
	Kind  error
	Reply string
	Cause error
}

func newError(kind, cause error, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Reply: fmt.Sprintf(format, args...), Cause: cause}
}

func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%v: %s: %v", e.Kind, e.Reply, e.Cause)
	}
	return fmt.Sprintf("%v: %s", e.Kind, e.Reply)
}

func (e *Error) Unwrap() []error {
	if e.Cause == nil {
		return []error{e.Kind}
	}
	return []error{e.Kind, e.Cause}
}

// ReplyFor converts any error into a short chat reply
func ReplyFor(err error) string {
	var te *Error
	if errors.As(err, &te) {
		return te.Reply
	}
	return "⚠️ Something went wrong, please try again later."
}
