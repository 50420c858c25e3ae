package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/alexanderramin/archsage/internal/extract"
	"github.com/charmbracelet/lipgloss"
)

const (
	narrativeWidth = 76
	scoreBarWidth  = 20
)

var narrativeStyle = lipgloss.NewStyle().Width(narrativeWidth)

// FormatAnalysis renders a structured response for terminal output.
func FormatAnalysis(r *contract.StructuredResponse) string {
	var b strings.Builder

	b.WriteString(analysisHeadline(r))
	b.WriteString("\n\n")

	if r.Fallback {
		b.WriteString(StyleYellow.Render("! Offline guidance: the generation service was unavailable."))
		b.WriteString("\n\n")
	}

	b.WriteString(narrativeStyle.Render(strings.TrimSpace(r.NarrativeText)))
	b.WriteString("\n\n")

	writeBullets(&b, "Recommendations", r.Recommendations, StyleGreen.Render("•"))

	if len(r.CostEstimates) > 0 {
		b.WriteString(Header("Cost Estimates"))
		b.WriteString("\n")
		for _, src := range extract.CostPatternSources() {
			amounts, ok := r.CostEstimates[src]
			if !ok {
				continue
			}
			fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render(costLabel(src)+":"), strings.Join(amounts, ", "))
		}
		b.WriteString("\n")
	}

	writeBullets(&b, "Compliance", r.ComplianceNotes, StyleBlue.Render("§"))

	b.WriteString(Header("Sustainability"))
	b.WriteString("\n")
	fmt.Fprintf(&b, "  %s\n\n", RenderScore(r.SustainabilityScore, scoreBarWidth))

	if len(r.ImplementationSteps) > 0 {
		b.WriteString(Header("Implementation Steps"))
		b.WriteString("\n")
		for i, s := range r.ImplementationSteps {
			fmt.Fprintf(&b, "  %s %s\n", StyleHeader.Render(fmt.Sprintf("%d.", i+1)), s)
		}
		b.WriteString("\n")
	}

	writeBullets(&b, "Alternatives", r.Alternatives, StylePurple.Render("↳"))

	if len(r.KnowledgeSources) > 0 {
		b.WriteString(Dim("  Sources: " + strings.Join(r.KnowledgeSources, " · ")))
		b.WriteString("\n")
	}

	return RenderBox("Analysis", b.String())
}

// FormatSurvey renders a side-by-side summary of one query answered by
// several personas, followed by each persona's leading recommendation.
func FormatSurvey(query string, results []*contract.StructuredResponse) string {
	var b strings.Builder

	fmt.Fprintf(&b, "%s %s\n\n", Dim("Query:"), Bold(query))

	rows := make([][]string, 0, len(results))
	for _, r := range results {
		rows = append(rows, []string{
			DomainBadge(r.ToolType),
			modeLabel(r),
			ScoreStyle(r.SustainabilityScore).Render(fmt.Sprintf("%d", r.SustainabilityScore)),
			fmt.Sprintf("%d", len(r.Recommendations)),
			fmt.Sprintf("%d", len(r.ComplianceNotes)),
		})
	}
	b.WriteString(RenderTable([]string{"Domain", "Mode", "Score", "Recs", "Compliance"}, rows))
	b.WriteString("\n")

	for _, r := range results {
		lead := Dim("no recommendations extracted")
		if len(r.Recommendations) > 0 {
			lead = r.Recommendations[0]
		}
		fmt.Fprintf(&b, "  %s %s\n", DomainBadge(r.ToolType)+":", Truncate(lead, narrativeWidth))
	}

	return RenderBox("Survey", b.String())
}

func analysisHeadline(r *contract.StructuredResponse) string {
	parts := []string{DomainBadge(r.ToolType), modeLabel(r)}
	if r.AnalysisID != "" {
		parts = append(parts, TruncID(r.AnalysisID))
	}
	if !r.GeneratedAt.IsZero() {
		parts = append(parts, Dim(r.GeneratedAt.Local().Format("Jan 2, 2006 15:04")))
	}
	return strings.Join(parts, "  ")
}

func modeLabel(r *contract.StructuredResponse) string {
	if r.Fallback {
		return StyleYellow.Render("○ fallback")
	}
	return StyleGreen.Render("● generated")
}

func writeBullets(b *strings.Builder, title string, items []string, marker string) {
	if len(items) == 0 {
		return
	}
	b.WriteString(Header(title))
	b.WriteString("\n")
	for _, it := range items {
		fmt.Fprintf(b, "  %s %s\n", marker, it)
	}
	b.WriteString("\n")
}

func costLabel(source string) string {
	switch {
	case strings.HasPrefix(source, `\$`):
		return "Dollar amounts"
	case strings.HasSuffix(source, "USD"):
		return "USD"
	case strings.HasSuffix(source, "rupees"):
		return "Rupees"
	case strings.HasSuffix(source, "INR"):
		return "INR"
	default:
		return source
	}
}
