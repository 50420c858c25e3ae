package llm

import (
	"context"
	"errors"
	"fmt"
)

// Image is an inline image sent alongside the prompt.
type Image struct {
	MIMEType string
	Data     []byte
}

// GenerateRequest holds the parameters for one generation call.
type GenerateRequest struct {
	Prompt string
	Images []Image
	Config GenerationConfig
	Safety []SafetySetting
}

// GenerateResponse holds the result of a generation call.
type GenerateResponse struct {
	Text      string
	Model     string
	LatencyMs int64
}

// Gateway sends a prompt to a text-generation backend. Implementations make
// exactly one round trip per call and report every failure as *GatewayError.
type Gateway interface {
	// Generate sends a prompt and returns the raw text response.
	Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error)

	// Available reports whether the backend looks usable.
	Available(ctx context.Context) bool

	// Name identifies the backend for logs and metrics.
	Name() string
}

// New builds the gateway selected by cfg.Backend.
func New(ctx context.Context, cfg Config, observer Observer) (Gateway, error) {
	switch cfg.Backend {
	case BackendGemini:
		return NewGeminiGateway(ctx, cfg, observer)
	case BackendOllama:
		return NewOllamaGateway(cfg, observer), nil
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownBackend, cfg.Backend)
	}
}

// classifyContextErr maps a finished context to a gateway error kind.
func classifyContextErr(ctx context.Context) (ErrorKind, bool) {
	switch {
	case errors.Is(ctx.Err(), context.DeadlineExceeded):
		return KindTimeout, true
	case ctx.Err() != nil:
		return KindTransport, true
	}
	return "", false
}
