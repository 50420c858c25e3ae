package prompt

import (
	"errors"
	"fmt"
	"strings"

	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/retrieval"
)

// ErrUnknownTemplate indicates no persona template exists for the given id.
var ErrUnknownTemplate = errors.New("unknown prompt template")

// closingInstructions is appended to every persona prompt.
const closingInstructions = `INSTRUCTIONS:
1. Address the user's query directly and specifically
2. Cite the relevant knowledge above where it applies
3. Give actionable recommendations as bullet points and implementation steps as a numbered list
4. Consider cost, sustainability and regulatory compliance in every recommendation
5. Maintain a professional, expert tone`

// Composer merges a persona, retrieved knowledge and project context into a
// single prompt.
type Composer struct {
	personas *persona.Registry
}

// NewComposer creates a Composer. The registry supplies templates for
// MissingVariables.
func NewComposer(personas *persona.Registry) *Composer {
	return &Composer{personas: personas}
}

// Compose builds the generation prompt. A nil persona degrades to the raw
// user query. attachments is the number of images sent alongside the prompt.
func (c *Composer) Compose(p *persona.Persona, ctx Context, retrieved retrieval.Result, attachments int) string {
	if p == nil {
		return ctx.UserQuery
	}

	var b strings.Builder
	b.WriteString(Render(p.Preamble, ctx))
	b.WriteString("\n\n")

	if len(retrieved.Entries) > 0 {
		b.WriteString("RELEVANT KNOWLEDGE:\n")
		for _, e := range retrieved.Entries {
			b.WriteString("- ")
			b.WriteString(e.Line())
			b.WriteString("\n")
		}
		b.WriteString("\n")
	}

	b.WriteString("USER QUERY: ")
	b.WriteString(ctx.UserQuery)
	b.WriteString("\n\n")

	b.WriteString("PROJECT CONTEXT:\n")
	fmt.Fprintf(&b, "Project Type: %s\n", ctx.ProjectType)
	fmt.Fprintf(&b, "Location: %s\n", ctx.Location)
	fmt.Fprintf(&b, "Budget: %s\n", ctx.Value(SlotBudget))
	fmt.Fprintf(&b, "Style: %s\n", ctx.Style)
	fmt.Fprintf(&b, "Requirements: %s\n", ctx.Value(SlotRequirements))
	fmt.Fprintf(&b, "Constraints: %s\n", ctx.Value(SlotConstraints))
	fmt.Fprintf(&b, "Experience Level: %s\n", ctx.UserExperience)
	b.WriteString("\n")

	if attachments > 0 {
		fmt.Fprintf(&b, "ATTACHED IMAGES: %d image(s) of the site or floor plan are attached. Analyze them together with the query.\n\n", attachments)
	}

	b.WriteString(closingInstructions)
	return b.String()
}

// MissingVariables returns the placeholders used by the template for
// templateID whose context value is empty. It is diagnostic only; Compose
// never enforces it.
func (c *Composer) MissingVariables(templateID string, ctx Context) ([]string, error) {
	p, err := c.personas.For(templateID)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrUnknownTemplate, templateID)
	}

	missing := []string{}
	for _, slot := range Variables(p.Preamble) {
		if strings.TrimSpace(ctx.Value(slot)) == "" {
			missing = append(missing, slot)
		}
	}
	return missing, nil
}
