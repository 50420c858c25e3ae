package llm

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	assert.Equal(t, BackendGemini, cfg.Backend)
	assert.Equal(t, 30*time.Second, cfg.Timeout())
	assert.Equal(t, 40, cfg.Generation.TopK)
	assert.Equal(t, BlockMediumAndAbove, cfg.SafetyThreshold)
}

func TestSafetySettings_FourCategories(t *testing.T) {
	got := SafetySettings(BlockOnlyHigh)
	require.Len(t, got, 4)
	seen := map[HarmCategory]bool{}
	for _, s := range got {
		assert.Equal(t, BlockOnlyHigh, s.Threshold)
		seen[s.Category] = true
	}
	assert.Len(t, seen, 4)
}

func TestNew_UnknownBackend(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = "openai"
	_, err := New(context.Background(), cfg, nil)
	assert.ErrorIs(t, err, ErrUnknownBackend)
}

func TestNew_Ollama(t *testing.T) {
	cfg := DefaultConfig()
	cfg.Backend = BackendOllama
	gw, err := New(context.Background(), cfg, nil)
	require.NoError(t, err)
	assert.Equal(t, "ollama", gw.Name())
}

func TestGatewayError_IsKindAndCause(t *testing.T) {
	cause := errors.New("dial tcp: refused")
	err := fmt.Errorf("wrapped: %w", newGatewayError("ollama", KindTransport, cause))

	assert.ErrorIs(t, err, ErrTransport)
	assert.ErrorIs(t, err, cause)
	assert.NotErrorIs(t, err, ErrTimeout)

	kind, ok := KindOf(err)
	require.True(t, ok)
	assert.Equal(t, KindTransport, kind)
	assert.Contains(t, err.Error(), "ollama")
}

func TestKindOf_PlainError(t *testing.T) {
	_, ok := KindOf(errors.New("boom"))
	assert.False(t, ok)
}

func TestMultiObserver_FansOut(t *testing.T) {
	a, b := &recordingObserver{}, &recordingObserver{}
	MultiObserver{a, nil, b}.OnCallComplete(CallEvent{Backend: "x", Success: true})
	assert.Len(t, a.events, 1)
	assert.Len(t, b.events, 1)
}

type recordingObserver struct {
	events []CallEvent
}

func (r *recordingObserver) OnCallComplete(e CallEvent) { r.events = append(r.events, e) }
