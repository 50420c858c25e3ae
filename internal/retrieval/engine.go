package retrieval

import (
	"strings"

	"github.com/alexanderramin/archsage/internal/knowledge"
)

// defaultKeywords routes a query to a domain by substring presence.
var defaultKeywords = map[knowledge.Domain][]string{
	knowledge.DomainVastu:          {"vastu", "energy", "direction", "orientation", "entrance"},
	knowledge.DomainStructural:     {"structural", "safety", "load"},
	knowledge.DomainInterior:       {"interior", "furniture", "decor", "layout", "lighting"},
	knowledge.DomainSustainability: {"sustainab", "green", "eco-friendly", "leed", "renewable", "solar", "carbon"},
	knowledge.DomainCost:           {"cost", "budget", "price", "estimate", "expense", "afford"},
}

// Result is the ordered set of entries relevant to a query. Order follows
// the domain check order; entries are not ranked.
type Result struct {
	Entries        []knowledge.Entry  `json:"entries"`
	MatchedDomains []knowledge.Domain `json:"matched_domains"`
	// HintApplied is set when no keyword matched and the domain hint was used.
	HintApplied bool `json:"hint_applied,omitempty"`
}

// Engine performs keyword-presence routing over a knowledge store.
type Engine struct {
	store    *knowledge.Store
	keywords map[knowledge.Domain][]string
}

// NewEngine creates an Engine over store using the built-in keyword sets.
func NewEngine(store *knowledge.Store) *Engine {
	return &Engine{store: store, keywords: defaultKeywords}
}

// Keywords returns the trigger keywords for d.
func (e *Engine) Keywords(d knowledge.Domain) []string {
	kw := e.keywords[d]
	out := make([]string, len(kw))
	copy(out, kw)
	return out
}

// Retrieve returns every entry of every domain whose keyword set appears in
// the query. When nothing matches and domainHint names a known domain, that
// domain's entries are returned instead.
func (e *Engine) Retrieve(query, domainHint string) Result {
	q := strings.ToLower(query)

	var res Result
	for _, d := range knowledge.AllDomains() {
		if !containsAny(q, e.keywords[d]) {
			continue
		}
		res.MatchedDomains = append(res.MatchedDomains, d)
		res.Entries = append(res.Entries, e.store.EntriesForDomain(d)...)
	}

	if len(res.MatchedDomains) == 0 {
		if d, ok := knowledge.ParseDomain(domainHint); ok {
			res.MatchedDomains = []knowledge.Domain{d}
			res.Entries = e.store.EntriesForDomain(d)
			res.HintApplied = true
		}
	}
	return res
}

func containsAny(s string, words []string) bool {
	for _, w := range words {
		if strings.Contains(s, w) {
			return true
		}
	}
	return false
}
