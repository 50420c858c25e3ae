package formatter

import (
	"strconv"
	"strings"

	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/charmbracelet/lipgloss"
)

// RenderBox wraps content in a rounded-border box with an optional title.
func RenderBox(title string, content string) string {
	boxStyle := lipgloss.NewStyle().
		Border(lipgloss.RoundedBorder()).
		BorderForeground(ColorDim).
		PaddingLeft(2).
		PaddingRight(2).
		PaddingTop(1).
		PaddingBottom(1)

	if title != "" {
		titleRendered := StyleHeader.Render(strings.ToUpper(title))
		return boxStyle.Render(titleRendered + "\n\n" + content)
	}
	return boxStyle.Render(content)
}

// DomainBadge returns a capitalized domain label in the domain's accent color.
// Tool types outside the known domains are dimmed.
func DomainBadge(toolType string) string {
	if toolType == "" {
		return StyleDim.Render("--")
	}
	label := strings.ToUpper(toolType[:1]) + toolType[1:]
	d, ok := knowledge.ParseDomain(toolType)
	if !ok {
		return StyleDim.Render(label)
	}
	return DomainColor(d).Render(label)
}

// TruncID returns the first 8 characters of an ID, dimmed.
func TruncID(id string) string {
	if len(id) > 8 {
		id = id[:8]
	}
	return StyleDim.Render(id)
}

// FormatBudget renders a budget with thousands separators, or "--" when unset.
func FormatBudget(b *float64) string {
	if b == nil {
		return "--"
	}
	whole := strconv.FormatFloat(*b, 'f', 0, 64)
	neg := strings.HasPrefix(whole, "-")
	whole = strings.TrimPrefix(whole, "-")

	var out strings.Builder
	for i, r := range whole {
		if i > 0 && (len(whole)-i)%3 == 0 {
			out.WriteByte(',')
		}
		out.WriteRune(r)
	}
	if neg {
		return "-" + out.String()
	}
	return out.String()
}

// Truncate shortens s to at most n visible characters, adding an ellipsis.
func Truncate(s string, n int) string {
	r := []rune(s)
	if n <= 0 || len(r) <= n {
		return s
	}
	if n == 1 {
		return "…"
	}
	return string(r[:n-1]) + "…"
}
