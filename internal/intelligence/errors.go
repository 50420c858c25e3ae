package intelligence

import "errors"

var (
	// ErrValidation indicates a malformed request rejected before any work began.
	ErrValidation = errors.New("invalid analysis request")

	// ErrCancelled indicates the caller abandoned the request before generation finished.
	ErrCancelled = errors.New("analysis cancelled")
)
