package intelligence

import (
	"context"
	"errors"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/extract"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/alexanderramin/archsage/internal/retrieval"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type mockGateway struct {
	response  string
	err       error
	delay     time.Duration
	ignoreCtx bool
	panics    bool
	respond   func(req llm.GenerateRequest) string

	mu      sync.Mutex
	prompts []string
	images  [][]llm.Image
}

func (m *mockGateway) Generate(ctx context.Context, req llm.GenerateRequest) (*llm.GenerateResponse, error) {
	m.mu.Lock()
	m.prompts = append(m.prompts, req.Prompt)
	m.images = append(m.images, req.Images)
	m.mu.Unlock()

	if m.panics {
		panic("backend exploded")
	}
	if m.delay > 0 {
		if m.ignoreCtx {
			time.Sleep(m.delay)
		} else {
			select {
			case <-time.After(m.delay):
			case <-ctx.Done():
				return nil, &llm.GatewayError{Kind: llm.KindTimeout, Backend: "mock", Err: ctx.Err()}
			}
		}
	}
	if m.err != nil {
		return nil, m.err
	}
	text := m.response
	if m.respond != nil {
		text = m.respond(req)
	}
	return &llm.GenerateResponse{Text: text, Model: "mock-model"}, nil
}

func (m *mockGateway) Available(context.Context) bool { return true }
func (m *mockGateway) Name() string                   { return "mock" }

func (m *mockGateway) lastPrompt() string {
	m.mu.Lock()
	defer m.mu.Unlock()
	if len(m.prompts) == 0 {
		return ""
	}
	return m.prompts[len(m.prompts)-1]
}

type recordingAnalysisObserver struct {
	mu     sync.Mutex
	traces []AnalysisTrace
}

func (r *recordingAnalysisObserver) OnAnalysisComplete(_ context.Context, t AnalysisTrace) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.traces = append(r.traces, t)
}

func (r *recordingAnalysisObserver) last(t *testing.T) AnalysisTrace {
	t.Helper()
	r.mu.Lock()
	defer r.mu.Unlock()
	require.NotEmpty(t, r.traces)
	return r.traces[len(r.traces)-1]
}

func newTestService(gw llm.Gateway, mutate func(*Options)) (AnalysisService, *recordingAnalysisObserver) {
	store := knowledge.NewDefaultStore()
	reg := persona.NewDefaultRegistry()
	obs := &recordingAnalysisObserver{}
	opts := DefaultOptions()
	opts.GenerationTimeout = time.Second
	opts.NewID = func() string { return "analysis-1" }
	opts.Now = func() time.Time { return time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC) }
	if mutate != nil {
		mutate(&opts)
	}
	svc := NewAnalysisService(Deps{
		Store:     store,
		Personas:  reg,
		Retrieval: retrieval.NewEngine(store),
		Composer:  prompt.NewComposer(reg),
		Gateway:   gw,
		Observer:  obs,
	}, opts)
	return svc, obs
}

const vastuQuery = "Analyze the Vastu compliance of my 3BHK apartment in Mumbai for optimal energy flow"

const vastuAnswer = `The north-east entrance supports positive energy flow.
• Keep the north-east corner open and clutter-free for morning light
• Place the master bedroom in the south-west zone for stability
1. Survey the plot orientation with a compass
2. Relocate heavy storage to the south-west walls`

func TestAnalyze_VastuScenario(t *testing.T) {
	gw := &mockGateway{response: vastuAnswer}
	svc, obs := newTestService(gw, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{
		ToolType:    "vastu",
		UserQuery:   vastuQuery,
		ProjectType: "3BHK apartment",
		Location:    "Mumbai",
	})
	require.NoError(t, err)

	sent := gw.lastPrompt()
	assert.True(t, strings.HasPrefix(sent, "You are Acharya Vikram Sharma"))
	assert.Contains(t, sent, vastuQuery)
	assert.Contains(t, sent, "RELEVANT KNOWLEDGE:")
	for _, e := range knowledge.NewDefaultStore().EntriesForDomain(knowledge.DomainVastu) {
		assert.Contains(t, sent, e.Line())
	}

	assert.False(t, resp.Fallback)
	assert.Equal(t, "analysis-1", resp.AnalysisID)
	assert.Equal(t, "vastu", resp.ToolType)
	assert.Equal(t, vastuAnswer, resp.NarrativeText)
	assert.Len(t, resp.Recommendations, 2)
	assert.Len(t, resp.ImplementationSteps, 2)
	assert.False(t, resp.GeneratedAt.IsZero())

	trace := obs.last(t)
	assert.Equal(t, []State{StateIdle, StateRetrieving, StateComposing, StateGenerating, StateExtracting, StateDone}, trace.States)
	assert.True(t, trace.PersonaFound)
	assert.Equal(t, []knowledge.Domain{knowledge.DomainVastu}, trace.MatchedDomains)
	assert.Equal(t, len(sent), trace.PromptChars)
	assert.False(t, trace.Fallback)
}

func TestAnalyze_CostScenario(t *testing.T) {
	gw := &mockGateway{response: "Plan for roughly $45,000 for foundation work."}
	svc, _ := newTestService(gw, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{
		ToolType:  "cost",
		UserQuery: "What will the foundation cost?",
	})
	require.NoError(t, err)

	dollar := extract.CostPatternSources()[0]
	assert.Equal(t, []string{"$45,000"}, resp.CostEstimates[dollar])
	assert.False(t, resp.Fallback)
}

func TestAnalyze_TimeoutFallsBack(t *testing.T) {
	gw := &mockGateway{response: "never seen", delay: 500 * time.Millisecond}
	svc, obs := newTestService(gw, func(o *Options) { o.GenerationTimeout = 20 * time.Millisecond })

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "structural", UserQuery: "Is my load path safe?"})
	require.NoError(t, err)

	assert.True(t, resp.Fallback)
	assert.True(t, strings.HasPrefix(resp.NarrativeText, FallbackNarrativePrefix))
	assert.Equal(t, fallbackRecommendations, resp.Recommendations)
	assert.Equal(t, "structural", resp.ToolType)

	trace := obs.last(t)
	assert.Equal(t, []State{StateIdle, StateRetrieving, StateComposing, StateGenerating, StateFallbackComposing, StateDone}, trace.States)
	assert.Equal(t, llm.KindTimeout, trace.FallbackKind)
}

func TestAnalyze_GatewayIgnoringContextStillTimesOut(t *testing.T) {
	gw := &mockGateway{response: "late", delay: 300 * time.Millisecond, ignoreCtx: true}
	svc, obs := newTestService(gw, func(o *Options) { o.GenerationTimeout = 20 * time.Millisecond })

	start := time.Now()
	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "interior", UserQuery: "Living room layout ideas"})
	require.NoError(t, err)

	assert.Less(t, time.Since(start), 250*time.Millisecond)
	assert.True(t, resp.Fallback)
	assert.Equal(t, llm.KindTimeout, obs.last(t).FallbackKind)
}

func TestAnalyze_EveryErrorKindFallsBack(t *testing.T) {
	kinds := []llm.ErrorKind{llm.KindTimeout, llm.KindQuotaExceeded, llm.KindSafetyBlocked, llm.KindTransport}
	for _, kind := range kinds {
		t.Run(string(kind), func(t *testing.T) {
			gw := &mockGateway{err: &llm.GatewayError{Kind: kind, Backend: "mock", Err: errors.New("boom")}}
			svc, obs := newTestService(gw, nil)

			resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "sustainability", UserQuery: "Make it green"})
			require.NoError(t, err)

			assert.True(t, resp.Fallback)
			assert.Equal(t, 50, resp.SustainabilityScore)
			assert.Empty(t, resp.CostEstimates)
			assert.NotNil(t, resp.CostEstimates)
			assert.Equal(t, kind, obs.last(t).FallbackKind)
		})
	}
}

func TestAnalyze_UnclassifiedErrorFallsBack(t *testing.T) {
	gw := &mockGateway{err: errors.New("plain failure")}
	svc, obs := newTestService(gw, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "cost", UserQuery: "estimate please"})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, llm.KindTransport, obs.last(t).FallbackKind)
}

func TestAnalyze_BlankTextFallsBack(t *testing.T) {
	for _, text := range []string{"", "   ", "\n\t \n"} {
		gw := &mockGateway{response: text}
		svc, obs := newTestService(gw, nil)

		resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "cost", UserQuery: "estimate please"})
		require.NoError(t, err)
		assert.True(t, resp.Fallback, "text %q", text)
		assert.True(t, strings.HasPrefix(resp.NarrativeText, FallbackNarrativePrefix))
		assert.NotEmpty(t, resp.Recommendations)
		assert.Equal(t, llm.KindTransport, obs.last(t).FallbackKind)
	}
}

func TestAnalyze_NilGatewayFallsBack(t *testing.T) {
	svc, obs := newTestService(nil, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "vastu", UserQuery: vastuQuery})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
	assert.Equal(t, llm.KindTransport, obs.last(t).FallbackKind)
}

func TestAnalyze_PanickingGatewayFallsBack(t *testing.T) {
	gw := &mockGateway{panics: true}
	svc, _ := newTestService(gw, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "vastu", UserQuery: vastuQuery})
	require.NoError(t, err)
	assert.True(t, resp.Fallback)
}

func TestAnalyze_FallbackKnowledgeSources(t *testing.T) {
	gw := &mockGateway{err: &llm.GatewayError{Kind: llm.KindQuotaExceeded, Backend: "mock"}}
	svc, _ := newTestService(gw, nil)

	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "vastu", UserQuery: vastuQuery})
	require.NoError(t, err)

	tk := knowledge.NewDefaultStore().ToolKnowledge("vastu")
	assert.Equal(t, extract.KnowledgeSources(tk), resp.KnowledgeSources)
}

func TestAnalyze_UnknownToolSendsRawQuery(t *testing.T) {
	gw := &mockGateway{response: "Some general advice about the building project."}
	svc, obs := newTestService(gw, nil)

	query := "Tell me about landscaping"
	resp, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{ToolType: "landscaping", UserQuery: query})
	require.NoError(t, err)

	assert.Equal(t, query, gw.lastPrompt())
	assert.False(t, resp.Fallback)
	assert.Equal(t, "landscaping", resp.ToolType)
	assert.False(t, obs.last(t).PersonaFound)
}

func TestAnalyze_ImagesForwarded(t *testing.T) {
	gw := &mockGateway{response: "The plan shows a north-facing entrance with good light."}
	svc, obs := newTestService(gw, nil)

	img := contract.ImageAttachment{MIMEType: "image/png", Data: []byte{0x89, 'P', 'N', 'G'}}
	_, err := svc.Analyze(context.Background(), contract.AnalyzeRequest{
		ToolType:  "vastu",
		UserQuery: "Review my floor plan",
		Images:    []contract.ImageAttachment{img},
	})
	require.NoError(t, err)

	require.Len(t, gw.images, 1)
	require.Len(t, gw.images[0], 1)
	assert.Equal(t, "image/png", gw.images[0][0].MIMEType)
	assert.Contains(t, gw.lastPrompt(), "ATTACHED IMAGES: 1")
	assert.Equal(t, 1, obs.last(t).ImageCount)
}

func TestAnalyze_CallerCancellation(t *testing.T) {
	gw := &mockGateway{response: "late", delay: time.Second}
	svc, obs := newTestService(gw, nil)

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		time.Sleep(20 * time.Millisecond)
		cancel()
	}()

	resp, err := svc.Analyze(ctx, contract.AnalyzeRequest{ToolType: "vastu", UserQuery: vastuQuery})
	assert.Nil(t, resp)
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrCancelled)
	assert.ErrorIs(t, err, context.Canceled)

	trace := obs.last(t)
	assert.Equal(t, StateGenerating, trace.Current())
	assert.Error(t, trace.Err)
}

func TestAnalyze_Validation(t *testing.T) {
	png := []byte{1, 2, 3}
	tests := []struct {
		name string
		req  contract.AnalyzeRequest
	}{
		{"empty query", contract.AnalyzeRequest{ToolType: "vastu"}},
		{"blank query", contract.AnalyzeRequest{ToolType: "vastu", UserQuery: "   "}},
		{"unsupported image", contract.AnalyzeRequest{UserQuery: "q", Images: []contract.ImageAttachment{{MIMEType: "image/gif", Data: png}}}},
		{"empty image", contract.AnalyzeRequest{UserQuery: "q", Images: []contract.ImageAttachment{{MIMEType: "image/png"}}}},
		{"too many images", contract.AnalyzeRequest{UserQuery: "q", Images: []contract.ImageAttachment{
			{MIMEType: "image/png", Data: png}, {MIMEType: "image/png", Data: png}, {MIMEType: "image/png", Data: png},
		}}},
		{"image too large", contract.AnalyzeRequest{UserQuery: "q", Images: []contract.ImageAttachment{{MIMEType: "image/jpeg", Data: make([]byte, 11)}}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gw := &mockGateway{response: "unused"}
			svc, _ := newTestService(gw, func(o *Options) {
				o.MaxImages = 2
				o.MaxImageBytes = 10
			})

			_, err := svc.Analyze(context.Background(), tt.req)
			assert.ErrorIs(t, err, ErrValidation)
			assert.Empty(t, gw.prompts, "gateway must not be called")
		})
	}
}

func TestAnalyzeBatch_PreservesOrder(t *testing.T) {
	gw := &mockGateway{respond: func(req llm.GenerateRequest) string {
		if strings.Contains(req.Prompt, "structural") {
			time.Sleep(30 * time.Millisecond)
		}
		return "A reasonable recommendation for this project."
	}}
	svc, _ := newTestService(gw, func(o *Options) { o.NewID = nil })

	reqs := []contract.AnalyzeRequest{
		{ToolType: "structural", UserQuery: "structural load check"},
		{ToolType: "vastu", UserQuery: vastuQuery},
		{ToolType: "cost", UserQuery: "budget estimate"},
	}
	results, err := svc.AnalyzeBatch(context.Background(), reqs)
	require.NoError(t, err)
	require.Len(t, results, len(reqs))

	ids := map[string]bool{}
	for i, r := range results {
		assert.Equal(t, reqs[i].ToolType, r.ToolType)
		ids[r.AnalysisID] = true
	}
	assert.Len(t, ids, len(reqs), "each analysis gets its own id")
}

func TestAnalyzeBatch_SharedGateway(t *testing.T) {
	gw := &mockGateway{respond: func(req llm.GenerateRequest) string {
		return "Consider natural ventilation and solar shading for comfort."
	}}
	svc, _ := newTestService(gw, nil)

	results, err := svc.AnalyzeBatch(context.Background(), []contract.AnalyzeRequest{
		{ToolType: "sustainability", UserQuery: "solar options"},
		{ToolType: "sustainability", UserQuery: "green roof"},
	})
	require.NoError(t, err)
	for _, r := range results {
		assert.False(t, r.Fallback)
	}
}

func TestAnalyzeBatch_Limits(t *testing.T) {
	svc, _ := newTestService(&mockGateway{response: "x"}, func(o *Options) { o.MaxBatchSize = 2 })

	_, err := svc.AnalyzeBatch(context.Background(), nil)
	assert.ErrorIs(t, err, ErrValidation)

	three := make([]contract.AnalyzeRequest, 3)
	for i := range three {
		three[i] = contract.AnalyzeRequest{ToolType: "vastu", UserQuery: "q"}
	}
	_, err = svc.AnalyzeBatch(context.Background(), three)
	assert.ErrorIs(t, err, ErrValidation)

	_, err = svc.AnalyzeBatch(context.Background(), []contract.AnalyzeRequest{{ToolType: "vastu", UserQuery: "q"}, {ToolType: "vastu"}})
	require.ErrorIs(t, err, ErrValidation)
	assert.Contains(t, err.Error(), "request 1")
}

func TestPreview_VastuMissingVariables(t *testing.T) {
	gw := &mockGateway{}
	svc, _ := newTestService(gw, nil)

	p, err := svc.Preview(contract.AnalyzeRequest{ToolType: "vastu", UserQuery: vastuQuery, ProjectType: "villa"})
	require.NoError(t, err)

	assert.Equal(t, "vastu", p.PersonaID)
	assert.Equal(t, []string{prompt.SlotLocation, prompt.SlotUserExperience}, p.MissingVariables)
	assert.Contains(t, p.Prompt, "villa")
	assert.Equal(t, "villa", p.Context.ProjectType)
	assert.Equal(t, []knowledge.Domain{knowledge.DomainVastu}, p.MatchedDomains)
	assert.Empty(t, gw.prompts, "preview never calls the gateway")
}

func TestPreview_UnknownTool(t *testing.T) {
	svc, _ := newTestService(&mockGateway{}, nil)

	p, err := svc.Preview(contract.AnalyzeRequest{ToolType: "feng-shui", UserQuery: "where should the desk go"})
	require.NoError(t, err)
	assert.Empty(t, p.PersonaID)
	assert.Equal(t, "where should the desk go", p.Prompt)
	assert.Empty(t, p.MissingVariables)
}

func TestDeterministicAnalysis_FreshSlices(t *testing.T) {
	tk := knowledge.NewDefaultStore().ToolKnowledge("cost")
	a := DeterministicAnalysis("cost", prompt.Context{}, tk)
	a.Recommendations[0] = "mutated"

	b := DeterministicAnalysis("cost", prompt.Context{UserQuery: "different"}, tk)
	assert.NotEqual(t, "mutated", b.Recommendations[0])
	assert.Len(t, b.Recommendations, contract.MaxRecommendations)
	assert.LessOrEqual(t, len(b.ComplianceNotes), contract.MaxComplianceNotes)
	assert.LessOrEqual(t, len(b.ImplementationSteps), contract.MaxImplementationSteps)
	assert.True(t, b.Fallback)
}

func TestTrace_RejectsInvalidTransition(t *testing.T) {
	tr := newTrace("id", "vastu")
	assert.Error(t, tr.advance(StateGenerating))
	require.NoError(t, tr.advance(StateRetrieving))
	assert.Equal(t, StateRetrieving, tr.Current())
}
