package extract

import (
	"regexp"
	"strings"
	"unicode/utf8"

	"github.com/alexanderramin/archsage/internal/contract"
)

const minLineContent = 10

var bulletMarkers = []string{"•", "-", "*"}

var complianceKeywords = []string{"code", "standard", "regulation", "compliance", "requirement", "safety"}

var stepPrefix = regexp.MustCompile(`^(?:\d+\.|Step \d+:)`)

// Recommendations returns up to five bulleted lines with the marker removed.
// Lines whose remaining content is ten characters or shorter are skipped.
func Recommendations(raw string) []string {
	out := []string{}
	for _, line := range splitLines(raw) {
		content, ok := debullet(line)
		if !ok || utf8.RuneCountInString(content) <= minLineContent {
			continue
		}
		out = append(out, content)
		if len(out) == contract.MaxRecommendations {
			break
		}
	}
	return out
}

// ComplianceNotes returns up to three lines that mention a code, standard,
// regulation, compliance, requirement or safety concern.
func ComplianceNotes(raw string) []string {
	out := []string{}
	for _, line := range splitLines(raw) {
		lower := strings.ToLower(line)
		if !containsAny(lower, complianceKeywords) {
			continue
		}
		out = append(out, line)
		if len(out) == contract.MaxComplianceNotes {
			break
		}
	}
	return out
}

// ImplementationSteps returns up to five numbered lines ("1." or "Step 1:")
// with the numbering removed.
func ImplementationSteps(raw string) []string {
	out := []string{}
	for _, line := range splitLines(raw) {
		loc := stepPrefix.FindStringIndex(line)
		if loc == nil {
			continue
		}
		content := strings.TrimSpace(line[loc[1]:])
		if utf8.RuneCountInString(content) <= minLineContent {
			continue
		}
		out = append(out, content)
		if len(out) == contract.MaxImplementationSteps {
			break
		}
	}
	return out
}

// splitLines returns the trimmed, non-empty lines of s.
func splitLines(s string) []string {
	var out []string
	for _, line := range strings.Split(s, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			out = append(out, line)
		}
	}
	return out
}

func debullet(line string) (string, bool) {
	for _, m := range bulletMarkers {
		if strings.HasPrefix(line, m) {
			return strings.TrimSpace(strings.TrimPrefix(line, m)), true
		}
	}
	return "", false
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
