package intelligence

import (
	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/extract"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/prompt"
)

// FallbackNarrativePrefix opens every fallback narrative.
const FallbackNarrativePrefix = "I apologize, but I'm unable to generate a detailed AI analysis at the moment."

const fallbackNarrative = FallbackNarrativePrefix +
	" The analysis service is temporarily unavailable, so the guidance below is general professional practice" +
	" rather than advice tailored to your project. Please try again shortly for a personalised analysis."

var fallbackRecommendations = []string{
	"Consult a licensed architect or engineer for a site-specific assessment",
	"Verify local building codes and zoning regulations before finalising the design",
	"Prioritise energy-efficient design with good natural light and ventilation",
	"Prepare a detailed budget with a 10-15% contingency reserve",
	"Select durable, low-maintenance materials suited to the local climate",
}

var fallbackComplianceNotes = []string{
	"Ensure the design complies with the applicable national and local building codes",
	"Obtain all required permits and approvals before construction begins",
	"Follow structural safety and fire safety requirements for the occupancy type",
}

var fallbackSteps = []string{
	"Define project requirements, budget and timeline",
	"Engage qualified design and engineering professionals",
	"Develop and review detailed drawings and specifications",
	"Obtain the necessary approvals and permits",
	"Execute construction with regular quality inspections",
}

var fallbackAlternatives = []string{
	"Compare conventional construction with prefabricated or modular systems",
	"Evaluate phased construction to spread costs over time",
	"Consider renovation or adaptive reuse of an existing structure",
}

const fallbackSustainabilityScore = 50

// DeterministicAnalysis builds a structured response without the generation
// gateway. Used when generation fails for any reason. It performs no I/O and
// cannot fail. Only the knowledge-source summary depends on the inputs.
func DeterministicAnalysis(toolType string, _ prompt.Context, tk knowledge.ToolKnowledge) *contract.StructuredResponse {
	return &contract.StructuredResponse{
		ToolType:            toolType,
		Fallback:            true,
		NarrativeText:       fallbackNarrative,
		Recommendations:     clone(fallbackRecommendations),
		CostEstimates:       map[string][]string{},
		ComplianceNotes:     clone(fallbackComplianceNotes),
		SustainabilityScore: fallbackSustainabilityScore,
		ImplementationSteps: clone(fallbackSteps),
		Alternatives:        clone(fallbackAlternatives),
		KnowledgeSources:    extract.KnowledgeSources(tk),
	}
}

func clone(s []string) []string {
	out := make([]string, len(s))
	copy(out, s)
	return out
}
