package detection

import (
	"errors"
	"fmt"
)

// ErrorKind is a stable, machine-readable classification of request failures
type ErrorKind string

const (
	KindInvalidInput        ErrorKind = "invalid_input"
	KindUnsupportedType     ErrorKind = "unsupported_type"
	KindPayloadTooLarge     ErrorKind = "payload_too_large"
	KindUnauthorized        ErrorKind = "unauthorized"
	KindProviderUnavailable ErrorKind = "provider_unavailable"
	KindInternal            ErrorKind = "internal"
)

// ExhaustedError is returned once every provider attempt has failed
type ExhaustedError struct {
	Attempts int
	Last     error
}

func (e *ExhaustedError) Error() string {
	return fmt.Sprintf("Failed after %d attempts. Last error: %v", e.Attempts, e.Last)
}

func (e *ExhaustedError) Unwrap() error { return e.Last }

// KindError attaches an ErrorKind to an error
type KindError struct {
	Kind ErrorKind
	Err  error
}

func (e *KindError) Error() string { return e.Err.Error() }

func (e *KindError) Unwrap() error { return e.Err }

// WithKind wraps err so that KindOf reports kind.
func WithKind(kind ErrorKind, err error) error {
	if err == nil {
		return nil
	}
	return &KindError{Kind: kind, Err: err}
}

// KindOf classifies err. Unclassified errors are internal.
func KindOf(err error) ErrorKind {
	var ee *ExhaustedError
	if errors.As(err, &ee) {
		return KindProviderUnavailable
	}
	var ke *KindError
	if errors.As(err, &ke) {
		return ke.Kind
	}
	return KindInternal
}
