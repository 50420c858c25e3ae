package intelligence

import (
	"context"
	"strings"

	"go.uber.org/zap"
)

// AnalysisObserver receives a trace for every finished analysis.
type AnalysisObserver interface {
	OnAnalysisComplete(ctx context.Context, trace AnalysisTrace)
}

// NoopAnalysisObserver ignores all traces.
type NoopAnalysisObserver struct{}

func (NoopAnalysisObserver) OnAnalysisComplete(context.Context, AnalysisTrace) {}

type logAnalysisObserver struct {
	logger *zap.Logger
}

// NewLogAnalysisObserver writes analysis traces to logger.
func NewLogAnalysisObserver(logger *zap.Logger) AnalysisObserver {
	if logger == nil {
		return NoopAnalysisObserver{}
	}
	return &logAnalysisObserver{logger: logger}
}

func (o *logAnalysisObserver) OnAnalysisComplete(_ context.Context, t AnalysisTrace) {
	states := make([]string, len(t.States))
	for i, s := range t.States {
		states[i] = string(s)
	}
	fields := []zap.Field{
		zap.String("analysis_id", t.AnalysisID),
		zap.String("tool_type", t.ToolType),
		zap.String("states", strings.Join(states, ">")),
		zap.Bool("persona_found", t.PersonaFound),
		zap.Int("entries_retrieved", t.EntriesRetrieved),
		zap.Int("prompt_chars", t.PromptChars),
		zap.Int("images", t.ImageCount),
		zap.Bool("fallback", t.Fallback),
		zap.Int("sustainability_score", t.SustainabilityScore),
		zap.Duration("duration", t.Duration),
	}
	if t.Fallback {
		fields = append(fields, zap.String("fallback_kind", string(t.FallbackKind)))
	}
	if t.Err != nil {
		o.logger.Warn("analysis_aborted", append(fields, zap.Error(t.Err))...)
		return
	}
	o.logger.Info("analysis", fields...)
}

// MultiAnalysisObserver fans each trace out to every observer in order.
type MultiAnalysisObserver []AnalysisObserver

func (m MultiAnalysisObserver) OnAnalysisComplete(ctx context.Context, t AnalysisTrace) {
	for _, o := range m {
		if o != nil {
			o.OnAnalysisComplete(ctx, t)
		}
	}
}
