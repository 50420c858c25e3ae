package extract

import (
	"encoding/json"
	"fmt"
	"strings"
	"testing"

	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/prompt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func budget(v float64) *float64 { return &v }

const sampleAnalysis = `Here is my assessment of your project.

• Orient the main entrance towards the north-east for daylight
- Use fly-ash bricks to lower embodied carbon
* Add cross ventilation through opposite windows
- Too short
• Install rainwater harvesting sized for the roof area
- Specify low-VOC paints in all bedrooms
- Plant native shade trees on the west side

The design must follow IS 456 building code for reinforced concrete.
Fire safety exits are a mandatory requirement.
Check local regulation on setbacks.
Meet the ECBC standard for the envelope.

1. Commission a soil investigation before design
2. Short
Step 3: Finalise the structural grid with the engineer
4. Obtain municipal approvals and NOCs
5. Tender packages to at least three contractors
6. Begin excavation and foundation work

Foundation work will cost about $45,000 and finishing roughly 1,200,000 INR.
`

func TestRecommendations_BulletsOnly(t *testing.T) {
	got := Recommendations(sampleAnalysis)
	assert.Equal(t, []string{
		"Orient the main entrance towards the north-east for daylight",
		"Use fly-ash bricks to lower embodied carbon",
		"Add cross ventilation through opposite windows",
		"Install rainwater harvesting sized for the roof area",
		"Specify low-VOC paints in all bedrooms",
	}, got)
}

func TestRecommendations_ContentLengthBoundary(t *testing.T) {
	// Exactly ten characters is dropped; eleven is kept.
	got := Recommendations("- 0123456789\n- 0123456789a\n-    padded-out-item   ")
	assert.Equal(t, []string{"0123456789a", "padded-out-item"}, got)
}

func TestRecommendations_NoBulletsIsEmptyNotNil(t *testing.T) {
	got := Recommendations("No structure here at all.")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestCostEstimates_DollarScenario(t *testing.T) {
	got := CostEstimates("Expect $45,000 for foundation work.")
	assert.Equal(t, map[string][]string{`\$\d+(?:,\d{3})*(?:\.\d+)?`: {"$45,000"}}, got)
}

func TestCostEstimates_AllPatterns(t *testing.T) {
	raw := "Budget $1,500 and $20.50; 3000 USD import; 50,000 rupees labour; 1,200,000 INR finishing; 75 inr extra"
	got := CostEstimates(raw)

	sources := CostPatternSources()
	require.Len(t, sources, 4)
	assert.Equal(t, []string{"$1,500", "$20.50"}, got[sources[0]])
	assert.Equal(t, []string{"3000 USD"}, got[sources[1]])
	assert.Equal(t, []string{"50,000 rupees"}, got[sources[2]])
	assert.Equal(t, []string{"1,200,000 INR", "75 inr"}, got[sources[3]])
}

func TestCostEstimates_LakhGrouping(t *testing.T) {
	got := CostEstimates("Civil work is 12,00,000 INR and fittings 5,50,000.50 rupees.")

	sources := CostPatternSources()
	assert.Equal(t, []string{"5,50,000.50 rupees"}, got[sources[2]])
	assert.Equal(t, []string{"12,00,000 INR"}, got[sources[3]])
}

func TestCostEstimates_UnmatchedPatternsOmitted(t *testing.T) {
	got := CostEstimates("Only $900 here")
	assert.Len(t, got, 1)

	got = CostEstimates("no money mentioned")
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestComplianceNotes_FirstThree(t *testing.T) {
	got := ComplianceNotes(sampleAnalysis)
	assert.Equal(t, []string{
		"The design must follow IS 456 building code for reinforced concrete.",
		"Fire safety exits are a mandatory requirement.",
		"Check local regulation on setbacks.",
	}, got)
}

func TestComplianceNotes_CaseInsensitive(t *testing.T) {
	got := ComplianceNotes("COMPLIANCE with NBC is required\nnothing here")
	assert.Equal(t, []string{"COMPLIANCE with NBC is required"}, got)
}

func TestImplementationSteps(t *testing.T) {
	got := ImplementationSteps(sampleAnalysis)
	assert.Equal(t, []string{
		"Commission a soil investigation before design",
		"Finalise the structural grid with the engineer",
		"Obtain municipal approvals and NOCs",
		"Tender packages to at least three contractors",
		"Begin excavation and foundation work",
	}, got)
}

func TestImplementationSteps_RequiresLeadingNumber(t *testing.T) {
	got := ImplementationSteps("Phase 1. not a step line here\nstep 2: lowercase is not a step")
	assert.Empty(t, got)
}

func TestSustainabilityScore_Base(t *testing.T) {
	assert.Equal(t, 50, SustainabilityScore("A plain concrete box."))
}

func TestSustainabilityScore_KeywordCountsOnce(t *testing.T) {
	once := SustainabilityScore("sustainable")
	five := SustainabilityScore(strings.Repeat("sustainable ", 5))
	assert.Equal(t, 55, once)
	assert.Equal(t, once, five)
}

func TestSustainabilityScore_CertificationBonus(t *testing.T) {
	assert.Equal(t, 60, SustainabilityScore("Aim for LEED Gold"))
	assert.Equal(t, 80, SustainabilityScore("LEED, BREEAM or GRIHA"))
}

func TestSustainabilityScore_ClampsAt100(t *testing.T) {
	raw := strings.Join(sustainabilityKeywords, " ") + " leed breeam griha"
	assert.Equal(t, 100, SustainabilityScore(raw))
}

func TestAlternatives_RulesFireIndependently(t *testing.T) {
	ctx := prompt.Context{
		Budget:      budget(80000),
		Location:    "Bhuj, an Earthquake prone district",
		ProjectType: "Commercial",
	}
	got := Alternatives(ctx, knowledge.ToolKnowledge{})
	require.Len(t, got, 6)
	assert.Contains(t, got[0], "modular")
	assert.Contains(t, got[1], "locally")
	assert.Contains(t, got[2], "seismic")
	assert.Contains(t, got[4], "mixed-use")
	assert.Contains(t, got[5], "adaptive reuse")
}

func TestAlternatives_NoRulesApply(t *testing.T) {
	got := Alternatives(prompt.Context{Budget: budget(500000), ProjectType: "Residential"}, knowledge.ToolKnowledge{})
	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestAlternatives_AbsentBudgetSkipsBudgetRule(t *testing.T) {
	got := Alternatives(prompt.Context{}, knowledge.ToolKnowledge{})
	assert.Empty(t, got)
}

func TestAlternatives_CertificationFromToolKnowledge(t *testing.T) {
	tk := knowledge.NewDefaultStore().ToolKnowledge("sustainability")
	got := Alternatives(prompt.Context{}, tk)
	require.Len(t, got, 1)
	assert.Equal(t, "Pursue LEED certification to benchmark environmental performance", got[0])
}

func TestKnowledgeSources(t *testing.T) {
	store := knowledge.NewDefaultStore()
	tk := store.ToolKnowledge("vastu")
	c := tk.Counts()

	got := KnowledgeSources(tk)
	assert.Equal(t, []string{
		fmt.Sprintf("%d architectural principles", c.Principles),
		fmt.Sprintf("%d sustainability standards", c.SustainabilityStandards),
		fmt.Sprintf("%d cost data points", c.CostData),
		SourceBuildingCodes,
		SourceBestPractices,
	}, got)
}

func TestKnowledgeSources_EmptyBundle(t *testing.T) {
	got := KnowledgeSources(knowledge.ToolKnowledge{})
	assert.Equal(t, []string{SourceBuildingCodes, SourceBestPractices}, got)
}

func TestExtract_Limits(t *testing.T) {
	var b strings.Builder
	for i := 0; i < 20; i++ {
		b.WriteString("- a recommendation with safety code content\n")
		b.WriteString("1. an implementation step long enough\n")
	}
	resp := Extract(b.String(), prompt.Context{}, knowledge.ToolKnowledge{})

	assert.Len(t, resp.Recommendations, 5)
	assert.Len(t, resp.ComplianceNotes, 3)
	assert.Len(t, resp.ImplementationSteps, 5)
	assert.GreaterOrEqual(t, resp.SustainabilityScore, 0)
	assert.LessOrEqual(t, resp.SustainabilityScore, 100)
}

func TestExtract_Idempotent(t *testing.T) {
	ctx := prompt.Context{UserQuery: "q", Budget: budget(90000), Location: "earthquake zone", ProjectType: "Commercial"}
	tk := knowledge.NewDefaultStore().ToolKnowledge("cost")

	first, err := json.Marshal(Extract(sampleAnalysis, ctx, tk))
	require.NoError(t, err)
	second, err := json.Marshal(Extract(sampleAnalysis, ctx, tk))
	require.NoError(t, err)

	assert.Equal(t, string(first), string(second))
}

func TestExtract_NarrativeIsRawText(t *testing.T) {
	resp := Extract(sampleAnalysis, prompt.Context{}, knowledge.ToolKnowledge{})
	assert.Equal(t, sampleAnalysis, resp.NarrativeText)
	assert.False(t, resp.Fallback)
}
