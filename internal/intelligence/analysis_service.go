package intelligence

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/extract"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/alexanderramin/archsage/internal/retrieval"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"
)

// AnalysisService runs the retrieve, compose, generate and extract pipeline.
// Generation failures never surface as errors: the caller receives a fallback
// response instead.
type AnalysisService interface {
	// Analyze runs one request end to end.
	Analyze(ctx context.Context, req contract.AnalyzeRequest) (*contract.StructuredResponse, error)

	// AnalyzeBatch runs requests concurrently and returns results in input order.
	AnalyzeBatch(ctx context.Context, reqs []contract.AnalyzeRequest) ([]*contract.StructuredResponse, error)

	// Preview composes the prompt for req without calling the gateway.
	Preview(req contract.AnalyzeRequest) (*PromptPreview, error)
}

// PromptPreview is the composed prompt and routing detail for a request.
type PromptPreview struct {
	ToolType         string             `json:"toolType"`
	PersonaID        string             `json:"personaId,omitempty"`
	PersonaName      string             `json:"personaName,omitempty"`
	MatchedDomains   []knowledge.Domain `json:"matchedDomains"`
	HintApplied      bool               `json:"hintApplied"`
	MissingVariables []string           `json:"missingVariables"`
	Context          prompt.Context     `json:"context"`
	Prompt           string             `json:"prompt"`
}

// Deps are the collaborators of the analysis pipeline.
type Deps struct {
	Store     *knowledge.Store
	Personas  *persona.Registry
	Retrieval *retrieval.Engine
	Composer  *prompt.Composer
	Gateway   llm.Gateway
	Observer  AnalysisObserver
	Logger    *zap.Logger
}

// Options tune the pipeline. Zero limits disable the corresponding check.
type Options struct {
	GenerationTimeout time.Duration
	Generation        llm.GenerationConfig
	Safety            []llm.SafetySetting
	MaxImages         int
	MaxImageBytes     int
	MaxBatchSize      int

	Now   func() time.Time
	NewID func() string
}

// DefaultOptions returns the limits used when no configuration overrides them.
func DefaultOptions() Options {
	cfg := llm.DefaultConfig()
	return Options{
		GenerationTimeout: 45 * time.Second,
		Generation:        cfg.Generation,
		Safety:            cfg.Safety(),
		MaxImages:         4,
		MaxImageBytes:     5 << 20,
		MaxBatchSize:      10,
	}
}

type analysisService struct {
	store     *knowledge.Store
	personas  *persona.Registry
	retrieval *retrieval.Engine
	composer  *prompt.Composer
	gateway   llm.Gateway
	observer  AnalysisObserver
	logger    *zap.Logger
	opts      Options
}

// NewAnalysisService wires an AnalysisService. Nil observer and logger are
// replaced with no-ops, and a nil gateway with the offline gateway.
func NewAnalysisService(deps Deps, opts Options) AnalysisService {
	if deps.Gateway == nil {
		deps.Gateway = llm.NewOfflineGateway(nil, nil)
	}
	if deps.Observer == nil {
		deps.Observer = NoopAnalysisObserver{}
	}
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if opts.Now == nil {
		opts.Now = time.Now
	}
	if opts.NewID == nil {
		opts.NewID = uuid.NewString
	}
	return &analysisService{
		store:     deps.Store,
		personas:  deps.Personas,
		retrieval: deps.Retrieval,
		composer:  deps.Composer,
		gateway:   deps.Gateway,
		observer:  deps.Observer,
		logger:    deps.Logger,
		opts:      opts,
	}
}

func (s *analysisService) Analyze(ctx context.Context, req contract.AnalyzeRequest) (*contract.StructuredResponse, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	start := s.opts.Now()
	trace := newTrace(s.opts.NewID(), req.ToolType)
	trace.ImageCount = len(req.Images)
	log := s.logger.With(zap.String("analysis_id", trace.AnalysisID), zap.String("tool_type", req.ToolType))

	s.step(trace, StateRetrieving)
	retrieved := s.retrieval.Retrieve(req.UserQuery, req.ToolType)
	tk := s.store.ToolKnowledge(req.ToolType)
	trace.MatchedDomains = retrieved.MatchedDomains
	trace.EntriesRetrieved = len(retrieved.Entries)

	s.step(trace, StateComposing)
	pctx := req.PromptContext()
	var p *persona.Persona
	if found, err := s.personas.For(req.ToolType); err == nil {
		p = &found
		trace.PersonaFound = true
	} else {
		log.Debug("no persona for tool type; sending raw query")
	}
	promptText := s.composer.Compose(p, pctx, retrieved, len(req.Images))
	trace.PromptChars = len(promptText)

	s.step(trace, StateGenerating)
	text, genErr := s.generate(ctx, promptText, req.Images)

	var resp *contract.StructuredResponse
	switch {
	case genErr != nil && ctx.Err() != nil:
		trace.Duration = s.opts.Now().Sub(start)
		trace.Err = fmt.Errorf("%w: %w", ErrCancelled, ctx.Err())
		s.observer.OnAnalysisComplete(ctx, *trace)
		return nil, trace.Err
	case genErr != nil:
		kind, ok := llm.KindOf(genErr)
		if !ok {
			kind = llm.KindTransport
		}
		s.step(trace, StateFallbackComposing)
		trace.Fallback = true
		trace.FallbackKind = kind
		log.Warn("generation failed; composing fallback", zap.String("kind", string(kind)), zap.Error(genErr))
		resp = DeterministicAnalysis(req.ToolType, pctx, tk)
	default:
		s.step(trace, StateExtracting)
		extracted := extract.Extract(text, pctx, tk)
		resp = &extracted
	}
	s.step(trace, StateDone)

	resp.AnalysisID = trace.AnalysisID
	resp.ToolType = req.ToolType
	resp.GeneratedAt = s.opts.Now().UTC()

	trace.SustainabilityScore = resp.SustainabilityScore
	trace.Duration = s.opts.Now().Sub(start)
	s.observer.OnAnalysisComplete(ctx, *trace)
	return resp, nil
}

func (s *analysisService) AnalyzeBatch(ctx context.Context, reqs []contract.AnalyzeRequest) ([]*contract.StructuredResponse, error) {
	if len(reqs) == 0 {
		return nil, fmt.Errorf("%w: batch is empty", ErrValidation)
	}
	if s.opts.MaxBatchSize > 0 && len(reqs) > s.opts.MaxBatchSize {
		return nil, fmt.Errorf("%w: batch of %d exceeds limit of %d", ErrValidation, len(reqs), s.opts.MaxBatchSize)
	}
	for i, r := range reqs {
		if err := s.validate(r); err != nil {
			return nil, fmt.Errorf("request %d: %w", i, err)
		}
	}

	results := make([]*contract.StructuredResponse, len(reqs))
	eg, egCtx := errgroup.WithContext(ctx)
	for i, r := range reqs {
		eg.Go(func() error {
			resp, err := s.Analyze(egCtx, r)
			if err != nil {
				return fmt.Errorf("request %d: %w", i, err)
			}
			results[i] = resp
			return nil
		})
	}
	if err := eg.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

func (s *analysisService) Preview(req contract.AnalyzeRequest) (*PromptPreview, error) {
	if err := s.validate(req); err != nil {
		return nil, err
	}

	retrieved := s.retrieval.Retrieve(req.UserQuery, req.ToolType)
	pctx := req.PromptContext()
	preview := &PromptPreview{
		ToolType:         req.ToolType,
		MatchedDomains:   retrieved.MatchedDomains,
		HintApplied:      retrieved.HintApplied,
		MissingVariables: []string{},
		Context:          pctx,
	}

	var p *persona.Persona
	if found, err := s.personas.For(req.ToolType); err == nil {
		p = &found
		preview.PersonaID = found.ID
		preview.PersonaName = found.DisplayName
		if missing, err := s.composer.MissingVariables(found.ID, pctx); err == nil {
			preview.MissingVariables = missing
		}
	}
	preview.Prompt = s.composer.Compose(p, pctx, retrieved, len(req.Images))
	return preview, nil
}

// generate makes one gateway call bounded by the generation timeout. The
// call runs in its own goroutine so a gateway that ignores its context cannot
// hold the request past the deadline.
func (s *analysisService) generate(ctx context.Context, promptText string, images []contract.ImageAttachment) (string, error) {
	genCtx := ctx
	if s.opts.GenerationTimeout > 0 {
		var cancel context.CancelFunc
		genCtx, cancel = context.WithTimeout(ctx, s.opts.GenerationTimeout)
		defer cancel()
	}

	req := llm.GenerateRequest{
		Prompt: promptText,
		Config: s.opts.Generation,
		Safety: s.opts.Safety,
	}
	for _, img := range images {
		req.Images = append(req.Images, llm.Image{MIMEType: img.MIMEType, Data: img.Data})
	}

	type result struct {
		resp *llm.GenerateResponse
		err  error
	}
	done := make(chan result, 1)
	go func() {
		defer func() {
			if r := recover(); r != nil {
				done <- result{err: &llm.GatewayError{
					Kind:    llm.KindTransport,
					Backend: s.gateway.Name(),
					Err:     fmt.Errorf("gateway panic: %v", r),
				}}
			}
		}()
		resp, err := s.gateway.Generate(genCtx, req)
		done <- result{resp: resp, err: err}
	}()

	select {
	case r := <-done:
		if r.err != nil {
			return "", r.err
		}
		if r.resp == nil {
			return "", &llm.GatewayError{Kind: llm.KindTransport, Backend: s.gateway.Name(), Err: errors.New("nil response")}
		}
		if strings.TrimSpace(r.resp.Text) == "" {
			return "", &llm.GatewayError{Kind: llm.KindTransport, Backend: s.gateway.Name(), Err: errors.New("empty response")}
		}
		return r.resp.Text, nil
	case <-genCtx.Done():
		if ctx.Err() != nil {
			return "", ctx.Err()
		}
		return "", &llm.GatewayError{Kind: llm.KindTimeout, Backend: s.gateway.Name(), Err: genCtx.Err()}
	}
}

func (s *analysisService) validate(req contract.AnalyzeRequest) error {
	if !req.HasQuery() {
		return fmt.Errorf("%w: user query is required", ErrValidation)
	}
	if s.opts.MaxImages > 0 && len(req.Images) > s.opts.MaxImages {
		return fmt.Errorf("%w: %d images exceeds limit of %d", ErrValidation, len(req.Images), s.opts.MaxImages)
	}
	for i, img := range req.Images {
		if !contract.SupportedImageTypes[img.MIMEType] {
			return fmt.Errorf("%w: image %d has unsupported type %q", ErrValidation, i, img.MIMEType)
		}
		if len(img.Data) == 0 {
			return fmt.Errorf("%w: image %d is empty", ErrValidation, i)
		}
		if s.opts.MaxImageBytes > 0 && len(img.Data) > s.opts.MaxImageBytes {
			return fmt.Errorf("%w: image %d is %d bytes, limit is %d", ErrValidation, i, len(img.Data), s.opts.MaxImageBytes)
		}
	}
	return nil
}

func (s *analysisService) step(trace *AnalysisTrace, next State) {
	if err := trace.advance(next); err != nil {
		s.logger.Error("analysis state machine", zap.Error(err))
	}
}
