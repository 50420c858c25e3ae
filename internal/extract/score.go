package extract

import (
	"regexp"
	"strings"

	"github.com/alexanderramin/archsage/internal/contract"
)

const (
	baseSustainabilityScore = 50
	keywordBonus            = 5
	certificationBonus      = 10
)

var sustainabilityKeywords = []string{
	"sustainable",
	"green",
	"renewable",
	"recycled",
	"low-carbon",
	"energy-efficient",
	"solar",
	"rainwater",
	"natural ventilation",
	"eco-friendly",
}

var certificationTokens = []string{"leed", "breeam", "griha"}

// SustainabilityScore rates the text from 0 to 100. Each keyword counts at
// most once no matter how often it appears.
func SustainabilityScore(raw string) int {
	lower := strings.ToLower(raw)
	score := baseSustainabilityScore
	for _, kw := range sustainabilityKeywords {
		if strings.Contains(lower, kw) {
			score += keywordBonus
		}
	}
	for _, tok := range certificationTokens {
		if strings.Contains(lower, tok) {
			score += certificationBonus
		}
	}
	return clamp(score, contract.MinSustainabilityScore, contract.MaxSustainabilityScore)
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

type costPattern struct {
	source string
	re     *regexp.Regexp
}

func newCostPattern(source string, caseInsensitive bool) costPattern {
	expr := source
	if caseInsensitive {
		expr = "(?i)" + source
	}
	return costPattern{source: source, re: regexp.MustCompile(expr)}
}

const amount = `\d+(?:,\d{3})*(?:\.\d+)?`

// rupeeAmount also accepts lakh grouping such as 12,00,000.
const rupeeAmount = `\d+(?:,\d{2,3})*(?:\.\d+)?`

var costPatterns = []costPattern{
	newCostPattern(`\$`+amount, false),
	newCostPattern(amount+`\s*USD`, true),
	newCostPattern(rupeeAmount+`\s*rupees`, true),
	newCostPattern(rupeeAmount+`\s*INR`, true),
}

// CostPatternSources returns the pattern keys used by CostEstimates.
func CostPatternSources() []string {
	out := make([]string, len(costPatterns))
	for i, p := range costPatterns {
		out[i] = p.source
	}
	return out
}

// CostEstimates maps each monetary pattern's source to every substring it
// matched. Patterns without a match are omitted.
func CostEstimates(raw string) map[string][]string {
	out := map[string][]string{}
	for _, p := range costPatterns {
		if matches := p.re.FindAllString(raw, -1); len(matches) > 0 {
			out[p.source] = matches
		}
	}
	return out
}
