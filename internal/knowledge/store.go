package knowledge

// Store is an in-memory, read-only catalog of knowledge entries grouped by
// domain. A Store is never mutated after construction, so it is safe for any
// number of concurrent readers.
type Store struct {
	byDomain map[Domain][]Entry
	byID     map[string]Entry
}

// NewStore builds a Store from entries. Entries with an unknown domain are
// ignored. Later entries with a duplicate ID replace earlier ones in ID
// lookups but both remain in their domain listing.
func NewStore(entries ...Entry) *Store {
	s := &Store{
		byDomain: make(map[Domain][]Entry, len(domainOrder)),
		byID:     make(map[string]Entry, len(entries)),
	}
	for _, e := range entries {
		if _, ok := ParseDomain(string(e.Domain)); !ok {
			continue
		}
		e = e.clone()
		s.byDomain[e.Domain] = append(s.byDomain[e.Domain], e)
		s.byID[e.ID] = e
	}
	return s
}

// NewDefaultStore returns a Store loaded with the built-in dataset.
func NewDefaultStore() *Store {
	return NewStore(defaultEntries()...)
}

// EntriesForDomain returns a copy of all entries for d in load order.
// An unknown domain yields an empty slice.
func (s *Store) EntriesForDomain(d Domain) []Entry {
	src := s.byDomain[d]
	out := make([]Entry, len(src))
	for i, e := range src {
		out[i] = e.clone()
	}
	return out
}

// AllDomains returns every domain the store knows about, in canonical order.
func (s *Store) AllDomains() []Domain {
	return AllDomains()
}

// Lookup returns the entry with the given ID.
func (s *Store) Lookup(id string) (Entry, bool) {
	e, ok := s.byID[id]
	if !ok {
		return Entry{}, false
	}
	return e.clone(), true
}

// Len reports the total number of entries.
func (s *Store) Len() int {
	n := 0
	for _, entries := range s.byDomain {
		n += len(entries)
	}
	return n
}

// ToolKnowledge is the knowledge bundle attached to one tool type. It feeds
// the knowledge-source summary and the context-driven alternatives.
type ToolKnowledge struct {
	ToolType                string  `json:"tool_type"`
	Principles              []Entry `json:"principles"`
	SustainabilityStandards []Entry `json:"sustainability_standards"`
	CostData                []Entry `json:"cost_data"`
}

// KnowledgeCounts summarises a ToolKnowledge bundle.
type KnowledgeCounts struct {
	Principles              int
	SustainabilityStandards int
	CostData                int
}

// Counts returns the size of each list in the bundle.
func (tk ToolKnowledge) Counts() KnowledgeCounts {
	return KnowledgeCounts{
		Principles:              len(tk.Principles),
		SustainabilityStandards: len(tk.SustainabilityStandards),
		CostData:                len(tk.CostData),
	}
}

// ToolKnowledge assembles the bundle for a tool type. Principles come from
// the tool's own domain; sustainability standards and cost data are shared
// by every tool. Unknown tool types get no principles.
func (s *Store) ToolKnowledge(toolType string) ToolKnowledge {
	tk := ToolKnowledge{
		ToolType:                toolType,
		SustainabilityStandards: s.EntriesForDomain(DomainSustainability),
		CostData:                s.EntriesForDomain(DomainCost),
	}
	if d, ok := ParseDomain(toolType); ok {
		tk.Principles = s.EntriesForDomain(d)
	}
	return tk
}
