package persona

import (
	"errors"
	"strings"

	"github.com/alexanderramin/archsage/internal/knowledge"
)

// ErrNotFound indicates the tool type has no specialised persona.
var ErrNotFound = errors.New("persona not found")

// Persona is a fixed expert role prepended to generation prompts.
type Persona struct {
	ID               string `json:"id"`
	DisplayName      string `json:"display_name"`
	ExpertiseSummary string `json:"expertise_summary"`
	Preamble         string `json:"preamble"`
}

// Registry maps tool types to personas. It is immutable after construction.
type Registry struct {
	byID  map[string]Persona
	order []string
}

// NewRegistry builds a registry from the given personas. IDs are matched
// case-insensitively.
func NewRegistry(personas ...Persona) *Registry {
	r := &Registry{byID: make(map[string]Persona, len(personas))}
	for _, p := range personas {
		id := normalizeID(p.ID)
		if _, exists := r.byID[id]; !exists {
			r.order = append(r.order, id)
		}
		r.byID[id] = p
	}
	return r
}

// NewDefaultRegistry returns the registry with one persona per knowledge domain.
func NewDefaultRegistry() *Registry {
	return NewRegistry(
		Persona{
			ID:               string(knowledge.DomainVastu),
			DisplayName:      "Acharya Vikram Sharma",
			ExpertiseSummary: "Vastu Shastra consultant, 25 years",
			Preamble:         vastuPreamble,
		},
		Persona{
			ID:               string(knowledge.DomainStructural),
			DisplayName:      "Dr. Meera Iyer",
			ExpertiseSummary: "Structural engineer, seismic and RCC design, 20 years",
			Preamble:         structuralPreamble,
		},
		Persona{
			ID:               string(knowledge.DomainInterior),
			DisplayName:      "Rohan Kapoor",
			ExpertiseSummary: "Senior interior designer, 15 years",
			Preamble:         interiorPreamble,
		},
		Persona{
			ID:               string(knowledge.DomainSustainability),
			DisplayName:      "Dr. Ananya Rao",
			ExpertiseSummary: "Sustainability consultant and LEED AP, 18 years",
			Preamble:         sustainabilityPreamble,
		},
		Persona{
			ID:               string(knowledge.DomainCost),
			DisplayName:      "Suresh Menon",
			ExpertiseSummary: "Chartered quantity surveyor, 22 years",
			Preamble:         costPreamble,
		},
	)
}

// For returns the persona for toolType, or ErrNotFound.
func (r *Registry) For(toolType string) (Persona, error) {
	p, ok := r.byID[normalizeID(toolType)]
	if !ok {
		return Persona{}, ErrNotFound
	}
	return p, nil
}

// List returns all personas in registration order.
func (r *Registry) List() []Persona {
	out := make([]Persona, 0, len(r.order))
	for _, id := range r.order {
		out = append(out, r.byID[id])
	}
	return out
}

func normalizeID(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
