package knowledge

import (
	"sort"
	"strings"
)

// Entry is a single immutable piece of domain knowledge.
type Entry struct {
	ID          string            `json:"id"`
	Domain      Domain            `json:"domain"`
	Kind        Kind              `json:"kind"`
	Name        string            `json:"name"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes,omitempty"`
}

// AttributeKeys returns the attribute keys in sorted order.
func (e Entry) AttributeKeys() []string {
	keys := make([]string, 0, len(e.Attributes))
	for k := range e.Attributes {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// Line renders the entry as a single human-readable key:value line, e.g.
//
//	[vastu/principle] Main Entrance: Face north or east... (direction: North-East; element: Water)
func (e Entry) Line() string {
	var b strings.Builder
	b.WriteString("[")
	b.WriteString(string(e.Domain))
	b.WriteString("/")
	b.WriteString(string(e.Kind))
	b.WriteString("] ")
	b.WriteString(e.Name)
	b.WriteString(": ")
	b.WriteString(e.Description)

	keys := e.AttributeKeys()
	if len(keys) > 0 {
		b.WriteString(" (")
		for i, k := range keys {
			if i > 0 {
				b.WriteString("; ")
			}
			b.WriteString(k)
			b.WriteString(": ")
			b.WriteString(e.Attributes[k])
		}
		b.WriteString(")")
	}
	return b.String()
}

// clone returns a deep copy so callers cannot mutate the stored attributes.
func (e Entry) clone() Entry {
	if e.Attributes == nil {
		return e
	}
	attrs := make(map[string]string, len(e.Attributes))
	for k, v := range e.Attributes {
		attrs[k] = v
	}
	e.Attributes = attrs
	return e
}
