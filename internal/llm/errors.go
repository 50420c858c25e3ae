package llm

import (
	"errors"
	"fmt"
)

// ErrorKind classifies a gateway failure.
type ErrorKind string

const (
	KindTimeout       ErrorKind = "TIMEOUT"
	KindQuotaExceeded ErrorKind = "QUOTA_EXCEEDED"
	KindSafetyBlocked ErrorKind = "SAFETY_BLOCKED"
	KindTransport     ErrorKind = "TRANSPORT_ERROR"
)

var (
	// ErrTimeout indicates the generation request exceeded its deadline.
	ErrTimeout = errors.New("generation timed out")

	// ErrQuotaExceeded indicates the backend rejected the call for rate or quota limits.
	ErrQuotaExceeded = errors.New("generation quota exceeded")

	// ErrSafetyBlocked indicates the prompt or output was blocked by content safety filters.
	ErrSafetyBlocked = errors.New("generation blocked by safety filter")

	// ErrTransport covers connection failures, non-success statuses and empty output.
	ErrTransport = errors.New("generation transport error")

	// ErrUnknownBackend indicates the configured backend name is not supported.
	ErrUnknownBackend = errors.New("unknown generation backend")

	// ErrMissingAPIKey indicates a hosted backend was selected without credentials.
	ErrMissingAPIKey = errors.New("generation backend requires an API key")
)

func (k ErrorKind) sentinel() error {
	switch k {
	case KindTimeout:
		return ErrTimeout
	case KindQuotaExceeded:
		return ErrQuotaExceeded
	case KindSafetyBlocked:
		return ErrSafetyBlocked
	default:
		return ErrTransport
	}
}

// GatewayError is the single error type returned by Gateway implementations.
// errors.Is matches both the kind sentinel and the underlying cause.
type GatewayError struct {
	Kind    ErrorKind
	Backend string
	Err     error
}

func (e *GatewayError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Backend, e.Kind.sentinel())
	}
	return fmt.Sprintf("%s: %s: %v", e.Backend, e.Kind.sentinel(), e.Err)
}

func (e *GatewayError) Unwrap() []error {
	if e.Err == nil {
		return []error{e.Kind.sentinel()}
	}
	return []error{e.Kind.sentinel(), e.Err}
}

func newGatewayError(backend string, kind ErrorKind, err error) *GatewayError {
	return &GatewayError{Kind: kind, Backend: backend, Err: err}
}

// KindOf reports the ErrorKind carried by err, if any.
func KindOf(err error) (ErrorKind, bool) {
	var gwErr *GatewayError
	if errors.As(err, &gwErr) {
		return gwErr.Kind, true
	}
	return "", false
}
