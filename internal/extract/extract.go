// Package extract turns raw generated text into a structured analysis.
// Every function is pure: it reads immutable input and returns new values,
// so callers may use them concurrently without coordination.
package extract

import (
	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/prompt"
)

// Extract builds a StructuredResponse from raw generated text. The same
// inputs always produce an identical result.
func Extract(raw string, ctx prompt.Context, tk knowledge.ToolKnowledge) contract.StructuredResponse {
	return contract.StructuredResponse{
		NarrativeText:       raw,
		Recommendations:     Recommendations(raw),
		CostEstimates:       CostEstimates(raw),
		ComplianceNotes:     ComplianceNotes(raw),
		SustainabilityScore: SustainabilityScore(raw),
		ImplementationSteps: ImplementationSteps(raw),
		Alternatives:        Alternatives(ctx, tk),
		KnowledgeSources:    KnowledgeSources(tk),
	}
}
