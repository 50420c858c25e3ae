package formatter

import (
	"regexp"
	"strings"
	"testing"
	"time"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/extract"
	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/stretchr/testify/assert"
)

var ansiPattern = regexp.MustCompile(`\x1b\[[0-9;]*[a-zA-Z]`)

func stripANSI(s string) string {
	return ansiPattern.ReplaceAllString(s, "")
}

func sampleResponse() *contract.StructuredResponse {
	dollar := extract.CostPatternSources()[0]
	return &contract.StructuredResponse{
		AnalysisID:          "3f2a9c1e-7777-4d2b-9a10-1234567890ab",
		ToolType:            "cost",
		GeneratedAt:         time.Date(2026, 3, 1, 12, 0, 0, 0, time.UTC),
		NarrativeText:       "Budget carefully.",
		Recommendations:     []string{"Lock steel prices early with suppliers"},
		CostEstimates:       map[string][]string{dollar: {"$45,000", "$3,200"}},
		ComplianceNotes:     []string{"Follow the local building code for footings"},
		SustainabilityScore: 65,
		ImplementationSteps: []string{"Commission a soil test", "Finalise the foundation design"},
		Alternatives:        []string{"Consider adaptive reuse of an existing shell"},
		KnowledgeSources:    []string{"5 cost data points", extract.SourceBuildingCodes},
	}
}

func TestFormatAnalysis_Sections(t *testing.T) {
	out := stripANSI(FormatAnalysis(sampleResponse()))

	assert.Contains(t, out, "ANALYSIS")
	assert.Contains(t, out, "Cost")
	assert.Contains(t, out, "3f2a9c1e")
	assert.Contains(t, out, "generated")
	assert.Contains(t, out, "Budget carefully.")
	assert.Contains(t, out, "RECOMMENDATIONS")
	assert.Contains(t, out, "Lock steel prices early with suppliers")
	assert.Contains(t, out, "COST ESTIMATES")
	assert.Contains(t, out, "Dollar amounts: $45,000, $3,200")
	assert.Contains(t, out, "COMPLIANCE")
	assert.Contains(t, out, "65/100")
	assert.Contains(t, out, "1. Commission a soil test")
	assert.Contains(t, out, "2. Finalise the foundation design")
	assert.Contains(t, out, "ALTERNATIVES")
	assert.Contains(t, out, "Sources: 5 cost data points · International building codes")
	assert.NotContains(t, out, "Offline guidance")
}

func TestFormatAnalysis_FallbackBanner(t *testing.T) {
	r := intelligence.DeterministicAnalysis("vastu", testContext(), knowledge.NewDefaultStore().ToolKnowledge("vastu"))
	out := stripANSI(FormatAnalysis(r))

	assert.Contains(t, out, "Offline guidance")
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "50/100")
	assert.NotContains(t, out, "COST ESTIMATES")
}

func TestFormatSurvey(t *testing.T) {
	a := sampleResponse()
	b := sampleResponse()
	b.ToolType = "vastu"
	b.Fallback = true
	b.Recommendations = nil

	out := stripANSI(FormatSurvey("plan a green home", []*contract.StructuredResponse{a, b}))
	assert.Contains(t, out, "SURVEY")
	assert.Contains(t, out, "plan a green home")
	assert.Contains(t, out, "Domain")
	assert.Contains(t, out, "Vastu")
	assert.Contains(t, out, "fallback")
	assert.Contains(t, out, "no recommendations extracted")
}

func TestFormatPersonas(t *testing.T) {
	out := stripANSI(FormatPersonas(persona.NewDefaultRegistry().List()))
	assert.Contains(t, out, "Persona")
	assert.Contains(t, out, "Vastu")
	assert.Contains(t, out, "projectType")
	assert.Equal(t, 2+5, strings.Count(out, "\n"))
}

func TestFormatKnowledge(t *testing.T) {
	store := knowledge.NewDefaultStore()
	out := stripANSI(FormatKnowledgeSummary(store))
	assert.Contains(t, out, "Sustainability")
	assert.Contains(t, out, "entries total")

	entries := store.EntriesForDomain(knowledge.DomainSustainability)
	detail := stripANSI(FormatDomainEntries(knowledge.DomainSustainability, entries))
	assert.Contains(t, detail, "SUSTAINABILITY KNOWLEDGE")
	assert.Contains(t, detail, entries[0].Name)
}

func TestFormatPreview(t *testing.T) {
	budget := 85000.0
	out := stripANSI(FormatPreview(&intelligence.PromptPreview{
		ToolType:         "interior",
		Context:          prompt.Context{UserQuery: "q", Budget: &budget},
		PersonaName:      "Interior Designer",
		MatchedDomains:   []knowledge.Domain{knowledge.DomainInterior},
		HintApplied:      true,
		MissingVariables: []string{"style"},
		Prompt:           "You are an interior designer.",
	}))
	assert.Contains(t, out, "Interior Designer")
	assert.Contains(t, out, "(from tool type)")
	assert.Contains(t, out, "Missing: style")
	assert.Contains(t, out, "Budget:  85,000")
	assert.Contains(t, out, "You are an interior designer.")

	raw := stripANSI(FormatPreview(&intelligence.PromptPreview{ToolType: "other", Prompt: "q"}))
	assert.Contains(t, raw, "raw query is sent")
	assert.Contains(t, raw, "no knowledge matched")
	assert.Contains(t, raw, "Budget:  --")
}
