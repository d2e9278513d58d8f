package email

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidAPIKey is returned when the request key does not match the
	// configured key. Comparison is plain string equality, not constant-time.
	ErrInvalidAPIKey = errors.New("invalid API key")

	// ErrInvalidAddress is returned when the sender or recipient address
	// does not contain an '@'.
	ErrInvalidAddress = errors.New("invalid email address format")
)

// MissingFieldError reports the first required field absent from a request.
type MissingFieldError struct {
	Field string
}

func (e *MissingFieldError) Error() string {
	return fmt.Sprintf("missing required field: %s", e.Field)
}

// ProviderError wraps a failure returned by the mail provider.
type ProviderError struct {
	Provider string
	Err      error
}

func (e *ProviderError) Error() string {
	return fmt.Sprintf("error sending email via %s: %v", e.Provider, e.Err)
}

func (e *ProviderError) Unwrap() error { return e.Err }
