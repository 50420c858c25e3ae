package formatter

import (
	"fmt"
	"strings"

	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/alexanderramin/archsage/internal/prompt"
)

// FormatPersonas renders the persona catalog as a table.
func FormatPersonas(list []persona.Persona) string {
	rows := make([][]string, 0, len(list))
	for _, p := range list {
		rows = append(rows, []string{
			DomainBadge(p.ID),
			Bold(p.DisplayName),
			Truncate(p.ExpertiseSummary, 48),
			Dim(strings.Join(prompt.Variables(p.Preamble), ", ")),
		})
	}
	return RenderTable([]string{"Tool", "Persona", "Expertise", "Variables"}, rows)
}

// FormatKnowledgeSummary renders entry counts for every domain in store.
func FormatKnowledgeSummary(store *knowledge.Store) string {
	rows := [][]string{}
	for _, d := range store.AllDomains() {
		entries := store.EntriesForDomain(d)
		kinds := map[knowledge.Kind]bool{}
		var kindList []string
		for _, e := range entries {
			if !kinds[e.Kind] {
				kinds[e.Kind] = true
				kindList = append(kindList, string(e.Kind))
			}
		}
		rows = append(rows, []string{
			DomainBadge(string(d)),
			fmt.Sprintf("%d", len(entries)),
			Dim(strings.Join(kindList, ", ")),
		})
	}
	return RenderTable([]string{"Domain", "Entries", "Kinds"}, rows) +
		Dim(fmt.Sprintf("%d entries total\n", store.Len()))
}

// FormatDomainEntries renders every entry of one domain.
func FormatDomainEntries(d knowledge.Domain, entries []knowledge.Entry) string {
	var b strings.Builder
	for i, e := range entries {
		if i > 0 {
			b.WriteString("\n")
		}
		fmt.Fprintf(&b, "%s %s\n", Bold(e.Name), Dim("["+string(e.Kind)+"]"))
		fmt.Fprintf(&b, "  %s\n", narrativeStyle.Render(e.Description))
		for _, k := range e.AttributeKeys() {
			fmt.Fprintf(&b, "  %s %s\n", StyleYellow.Render(k+":"), e.Attributes[k])
		}
	}
	return RenderBox(string(d)+" knowledge", b.String())
}

// FormatPreview renders a composed prompt and its routing details.
func FormatPreview(p *intelligence.PromptPreview) string {
	var b strings.Builder

	name := Dim("none (raw query is sent)")
	if p.PersonaName != "" {
		name = Bold(p.PersonaName)
	}
	fmt.Fprintf(&b, "  %s %s\n", Dim("Tool:   "), DomainBadge(p.ToolType))
	fmt.Fprintf(&b, "  %s %s\n", Dim("Persona:"), name)

	matched := make([]string, len(p.MatchedDomains))
	for i, d := range p.MatchedDomains {
		matched[i] = DomainBadge(string(d))
	}
	routing := strings.Join(matched, ", ")
	switch {
	case len(matched) == 0:
		routing = Dim("no knowledge matched")
	case p.HintApplied:
		routing += Dim(" (from tool type)")
	}
	fmt.Fprintf(&b, "  %s %s\n", Dim("Domains:"), routing)
	fmt.Fprintf(&b, "  %s %s\n", Dim("Budget: "), FormatBudget(p.Context.Budget))

	if len(p.MissingVariables) > 0 {
		fmt.Fprintf(&b, "  %s %s\n", Dim("Missing:"), StyleYellow.Render(strings.Join(p.MissingVariables, ", ")))
	}
	b.WriteString("\n")
	b.WriteString(Header("Prompt"))
	b.WriteString("\n")
	b.WriteString(p.Prompt)
	b.WriteString("\n")

	return RenderBox("Prompt Preview", b.String())
}
