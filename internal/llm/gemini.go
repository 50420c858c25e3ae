package llm

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"google.golang.org/genai"
)

// Finish reasons that indicate the candidate was withheld by a content filter.
var blockedFinishReasons = map[string]bool{
	"SAFETY":             true,
	"PROHIBITED_CONTENT": true,
	"BLOCKLIST":          true,
	"SPII":               true,
}

// geminiGateway implements Gateway using the Gemini API.
type geminiGateway struct {
	cfg      Config
	client   *genai.Client
	observer Observer
}

// NewGeminiGateway creates a Gateway backed by the Gemini API. cfg.Endpoint,
// when set, overrides the API base URL.
func NewGeminiGateway(ctx context.Context, cfg Config, observer Observer) (Gateway, error) {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("creating gemini client: %w", ErrMissingAPIKey)
	}
	cc := &genai.ClientConfig{
		APIKey:  cfg.APIKey,
		Backend: genai.BackendGeminiAPI,
	}
	if cfg.Endpoint != "" {
		cc.HTTPOptions = genai.HTTPOptions{BaseURL: cfg.Endpoint}
	}
	client, err := genai.NewClient(ctx, cc)
	if err != nil {
		return nil, fmt.Errorf("creating gemini client: %w", err)
	}
	return &geminiGateway{cfg: cfg, client: client, observer: observer}, nil
}

func (g *geminiGateway) Name() string { return string(BackendGemini) }

// Available reports whether credentials are configured. It does not call the API.
func (g *geminiGateway) Available(context.Context) bool {
	return g.cfg.APIKey != ""
}

func (g *geminiGateway) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	parts := []*genai.Part{genai.NewPartFromText(req.Prompt)}
	for _, img := range req.Images {
		parts = append(parts, genai.NewPartFromBytes(img.Data, img.MIMEType))
	}
	contents := []*genai.Content{genai.NewContentFromParts(parts, genai.RoleUser)}

	resp, err := g.client.Models.GenerateContent(ctx, g.cfg.Model, contents, toGenaiConfig(req))

	var text string
	if err == nil {
		text, err = responseText(resp)
	}
	if err != nil {
		gwErr := g.classify(ctx, err)
		g.observer.OnCallComplete(CallEvent{
			Backend:   g.Name(),
			Model:     g.cfg.Model,
			LatencyMs: time.Since(start).Milliseconds(),
			Success:   false,
			ErrorKind: gwErr.Kind,
		})
		return nil, gwErr
	}

	latency := time.Since(start).Milliseconds()
	g.observer.OnCallComplete(CallEvent{
		Backend:   g.Name(),
		Model:     g.cfg.Model,
		LatencyMs: latency,
		Success:   true,
	})
	model := resp.ModelVersion
	if model == "" {
		model = g.cfg.Model
	}
	return &GenerateResponse{Text: text, Model: model, LatencyMs: latency}, nil
}

func toGenaiConfig(req GenerateRequest) *genai.GenerateContentConfig {
	gc := &genai.GenerateContentConfig{
		Temperature:     genai.Ptr(float32(req.Config.Temperature)),
		TopK:            genai.Ptr(float32(req.Config.TopK)),
		TopP:            genai.Ptr(float32(req.Config.TopP)),
		MaxOutputTokens: int32(req.Config.MaxOutputTokens),
	}
	for _, s := range req.Safety {
		gc.SafetySettings = append(gc.SafetySettings, &genai.SafetySetting{
			Category:  genai.HarmCategory(s.Category),
			Threshold: genai.HarmBlockThreshold(s.Threshold),
		})
	}
	return gc
}

// errSafety marks a response withheld by a content filter.
type errSafety struct{ reason string }

func (e *errSafety) Error() string { return "blocked: " + e.reason }

func responseText(resp *genai.GenerateContentResponse) (string, error) {
	if resp == nil {
		return "", errors.New("nil response")
	}
	if resp.PromptFeedback != nil && resp.PromptFeedback.BlockReason != "" {
		return "", &errSafety{reason: string(resp.PromptFeedback.BlockReason)}
	}
	if len(resp.Candidates) == 0 {
		return "", errors.New("no candidates returned")
	}
	cand := resp.Candidates[0]
	if blockedFinishReasons[string(cand.FinishReason)] {
		return "", &errSafety{reason: string(cand.FinishReason)}
	}

	var b strings.Builder
	if cand.Content != nil {
		for _, p := range cand.Content.Parts {
			if p != nil {
				b.WriteString(p.Text)
			}
		}
	}
	text := b.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response")
	}
	return text, nil
}

func (g *geminiGateway) classify(ctx context.Context, err error) *GatewayError {
	if kind, done := classifyContextErr(ctx); done {
		return newGatewayError(g.Name(), kind, err)
	}
	var blocked *errSafety
	if errors.As(err, &blocked) {
		return newGatewayError(g.Name(), KindSafetyBlocked, err)
	}
	if code, status, ok := apiErrorStatus(err); ok {
		if code == http.StatusTooManyRequests || status == "RESOURCE_EXHAUSTED" {
			return newGatewayError(g.Name(), KindQuotaExceeded, err)
		}
		if code == http.StatusGatewayTimeout || status == "DEADLINE_EXCEEDED" {
			return newGatewayError(g.Name(), KindTimeout, err)
		}
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return newGatewayError(g.Name(), KindTimeout, err)
	}
	return newGatewayError(g.Name(), KindTransport, err)
}

func apiErrorStatus(err error) (int, string, bool) {
	var apiErr genai.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Code, apiErr.Status, true
	}
	var apiErrPtr *genai.APIError
	if errors.As(err, &apiErrPtr) && apiErrPtr != nil {
		return apiErrPtr.Code, apiErrPtr.Status, true
	}
	return 0, "", false
}
