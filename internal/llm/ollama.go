package llm

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net"
	"net/http"
	"strings"
	"time"
)

// ollamaGateway implements Gateway using the Ollama HTTP API.
type ollamaGateway struct {
	cfg      Config
	http     *http.Client
	observer Observer
}

// NewOllamaGateway creates a Gateway that talks to an Ollama instance.
func NewOllamaGateway(cfg Config, observer Observer) Gateway {
	if observer == nil {
		observer = NoopObserver{}
	}
	if cfg.Endpoint == "" {
		cfg.Endpoint = DefaultOllamaEndpoint
	}
	return &ollamaGateway{
		cfg: cfg,
		http: &http.Client{
			Transport: &http.Transport{
				DialContext: (&net.Dialer{
					Timeout: 5 * time.Second,
				}).DialContext,
			},
		},
		observer: observer,
	}
}

// ollamaRequest is the JSON body sent to POST /api/generate.
type ollamaRequest struct {
	Model   string        `json:"model"`
	Prompt  string        `json:"prompt"`
	Images  []string      `json:"images,omitempty"`
	Stream  bool          `json:"stream"`
	Options ollamaOptions `json:"options,omitempty"`
}

type ollamaOptions struct {
	Temperature float64 `json:"temperature,omitempty"`
	TopK        int     `json:"top_k,omitempty"`
	TopP        float64 `json:"top_p,omitempty"`
	NumPredict  int     `json:"num_predict,omitempty"`
}

// ollamaResponse is the JSON body returned by POST /api/generate (non-streaming).
type ollamaResponse struct {
	Model    string `json:"model"`
	Response string `json:"response"`
	Error    string `json:"error,omitempty"`
}

// statusError carries a non-200 HTTP status from the backend.
type statusError struct {
	Code int
	Body string
}

func (e *statusError) Error() string {
	return fmt.Sprintf("ollama returned status %d: %s", e.Code, e.Body)
}

func (g *ollamaGateway) Name() string { return string(BackendOllama) }

func (g *ollamaGateway) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	start := time.Now()

	ctx, cancel := context.WithTimeout(ctx, g.cfg.Timeout())
	defer cancel()

	body := ollamaRequest{
		Model:  g.cfg.Model,
		Prompt: req.Prompt,
		Stream: false,
		Options: ollamaOptions{
			Temperature: req.Config.Temperature,
			TopK:        req.Config.TopK,
			TopP:        req.Config.TopP,
			NumPredict:  req.Config.MaxOutputTokens,
		},
	}
	for _, img := range req.Images {
		body.Images = append(body.Images, base64.StdEncoding.EncodeToString(img.Data))
	}

	resp, err := g.doRequest(ctx, body)
	if err == nil && strings.TrimSpace(resp.Response) == "" {
		err = errors.New("empty response")
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
	model := resp.Model
	if model == "" {
		model = g.cfg.Model
	}
	return &GenerateResponse{
		Text:      resp.Response,
		Model:     model,
		LatencyMs: latency,
	}, nil
}

func (g *ollamaGateway) classify(ctx context.Context, err error) *GatewayError {
	if kind, done := classifyContextErr(ctx); done {
		return newGatewayError(g.Name(), kind, err)
	}
	var se *statusError
	if errors.As(err, &se) && se.Code == http.StatusTooManyRequests {
		return newGatewayError(g.Name(), KindQuotaExceeded, err)
	}
	return newGatewayError(g.Name(), KindTransport, err)
}

func (g *ollamaGateway) doRequest(ctx context.Context, body ollamaRequest) (*ollamaResponse, error) {
	data, err := json.Marshal(body)
	if err != nil {
		return nil, fmt.Errorf("marshaling request: %w", err)
	}

	url := g.cfg.Endpoint + "/api/generate"
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, url, bytes.NewReader(data))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	httpResp, err := g.http.Do(httpReq)
	if err != nil {
		return nil, err
	}
	defer httpResp.Body.Close()

	respBody, err := io.ReadAll(httpResp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading response: %w", err)
	}

	if httpResp.StatusCode != http.StatusOK {
		return nil, &statusError{Code: httpResp.StatusCode, Body: string(respBody)}
	}

	var resp ollamaResponse
	if err := json.Unmarshal(respBody, &resp); err != nil {
		return nil, fmt.Errorf("decoding response: %w", err)
	}
	if resp.Error != "" {
		return nil, errors.New(resp.Error)
	}

	return &resp, nil
}

func (g *ollamaGateway) Available(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 2*time.Second)
	defer cancel()

	url := g.cfg.Endpoint + "/api/tags"
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return false
	}

	resp, err := g.http.Do(req)
	if err != nil {
		return false
	}
	resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}
