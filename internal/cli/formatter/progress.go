package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archsage/internal/contract"
)

const (
	filledBlock = "█"
	emptyBlock  = "░"
)

// RenderScore renders a sustainability score as a bar like [████░░░░] 45/100.
func RenderScore(score, width int) string {
	if score < contract.MinSustainabilityScore {
		score = contract.MinSustainabilityScore
	}
	if score > contract.MaxSustainabilityScore {
		score = contract.MaxSustainabilityScore
	}
	if width < 2 {
		width = 2
	}

	filled := score * width / contract.MaxSustainabilityScore
	bar := strings.Repeat(filledBlock, filled) + strings.Repeat(emptyBlock, width-filled)
	return fmt.Sprintf("[%s] %3d/100", ScoreStyle(score).Render(bar), score)
}
