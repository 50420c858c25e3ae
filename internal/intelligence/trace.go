package intelligence

import (
	"fmt"
	"time"

	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
)

// State is a step of the analysis pipeline.
type State string

const (
	StateIdle              State = "idle"
	StateRetrieving        State = "retrieving"
	StateComposing         State = "composing"
	StateGenerating        State = "generating"
	StateExtracting        State = "extracting"
	StateFallbackComposing State = "fallback_composing"
	StateDone              State = "done"
)

// allowedTransitions is the pipeline state machine. The only branch is after
// generation: success extracts, any gateway failure composes a fallback.
var allowedTransitions = map[State][]State{
	StateIdle:              {StateRetrieving},
	StateRetrieving:        {StateComposing},
	StateComposing:         {StateGenerating},
	StateGenerating:        {StateExtracting, StateFallbackComposing},
	StateExtracting:        {StateDone},
	StateFallbackComposing: {StateDone},
}

// AnalysisTrace records how a single analysis ran. It is emitted to an
// AnalysisObserver once the request finishes.
type AnalysisTrace struct {
	AnalysisID          string             `json:"analysis_id"`
	ToolType            string             `json:"tool_type"`
	States              []State            `json:"states"`
	PersonaFound        bool               `json:"persona_found"`
	MatchedDomains      []knowledge.Domain `json:"matched_domains"`
	EntriesRetrieved    int                `json:"entries_retrieved"`
	PromptChars         int                `json:"prompt_chars"`
	ImageCount          int                `json:"image_count"`
	Fallback            bool               `json:"fallback"`
	FallbackKind        llm.ErrorKind      `json:"fallback_kind,omitempty"`
	SustainabilityScore int                `json:"sustainability_score"`
	Duration            time.Duration      `json:"duration"`
	Err                 error              `json:"-"`
}

func newTrace(id, toolType string) *AnalysisTrace {
	return &AnalysisTrace{
		AnalysisID: id,
		ToolType:   toolType,
		States:     []State{StateIdle},
	}
}

// Current returns the latest state.
func (t *AnalysisTrace) Current() State {
	return t.States[len(t.States)-1]
}

// advance moves to next, rejecting transitions the state machine does not allow.
func (t *AnalysisTrace) advance(next State) error {
	cur := t.Current()
	for _, allowed := range allowedTransitions[cur] {
		if allowed == next {
			t.States = append(t.States, next)
			return nil
		}
	}
	return fmt.Errorf("invalid analysis state transition %s -> %s", cur, next)
}
