package extract

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/prompt"
)

const lowBudgetThreshold = 100000

// Fixed knowledge-source entries appended to every summary.
const (
	SourceBuildingCodes = "International building codes"
	SourceBestPractices = "Professional best practices"
)

// Alternatives derives alternative approaches from the project context and
// tool knowledge. It never looks at generated text. Every applicable rule
// contributes.
func Alternatives(ctx prompt.Context, tk knowledge.ToolKnowledge) []string {
	out := []string{}

	if ctx.Budget != nil && *ctx.Budget < lowBudgetThreshold {
		out = append(out,
			"Consider modular or prefabricated construction to shorten the schedule and reduce labour cost",
			"Source materials locally to cut transport costs and support regional suppliers",
		)
	}

	if strings.Contains(strings.ToLower(ctx.Location), "earthquake") {
		out = append(out,
			"Evaluate base isolation or supplemental damping for improved seismic performance",
			"Use ductile detailing and lightweight partitions to reduce seismic mass",
		)
	}

	if strings.EqualFold(strings.TrimSpace(ctx.ProjectType), "Commercial") {
		out = append(out,
			"Explore a mixed-use programme combining retail, office and residential space",
			"Consider adaptive reuse of an existing building to lower embodied carbon and cost",
		)
	}

	if len(tk.SustainabilityStandards) > 0 {
		out = append(out, fmt.Sprintf("Pursue %s certification to benchmark environmental performance",
			tk.SustainabilityStandards[0].Name))
	}

	return out
}

// KnowledgeSources summarises the knowledge behind an analysis. Empty
// categories are left out; the two fixed sources are always present.
func KnowledgeSources(tk knowledge.ToolKnowledge) []string {
	c := tk.Counts()
	out := []string{}
	if c.Principles > 0 {
		out = append(out, fmt.Sprintf("%d architectural principles", c.Principles))
	}
	if c.SustainabilityStandards > 0 {
		out = append(out, fmt.Sprintf("%d sustainability standards", c.SustainabilityStandards))
	}
	if c.CostData > 0 {
		out = append(out, fmt.Sprintf("%d cost data points", c.CostData))
	}
	return append(out, SourceBuildingCodes, SourceBestPractices)
}
