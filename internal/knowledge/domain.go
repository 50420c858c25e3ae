package knowledge

import "strings"

// Domain is one of the fixed knowledge categories used for retrieval routing
// and persona selection.
type Domain string

const (
	DomainVastu          Domain = "vastu"
	DomainStructural     Domain = "structural"
	DomainInterior       Domain = "interior"
	DomainSustainability Domain = "sustainability"
	DomainCost           Domain = "cost"
)

// domainOrder is the canonical check order. Retrieval concatenates matched
// domains in exactly this order.
var domainOrder = []Domain{
	DomainVastu,
	DomainStructural,
	DomainInterior,
	DomainSustainability,
	DomainCost,
}

// AllDomains returns every domain in canonical order.
func AllDomains() []Domain {
	out := make([]Domain, len(domainOrder))
	copy(out, domainOrder)
	return out
}

// ParseDomain resolves a tool type or domain name. Matching ignores case and
// surrounding whitespace.
func ParseDomain(s string) (Domain, bool) {
	d := Domain(strings.ToLower(strings.TrimSpace(s)))
	switch d {
	case DomainVastu, DomainStructural, DomainInterior, DomainSustainability, DomainCost:
		return d, true
	}
	return "", false
}

// Kind classifies what an entry describes.
type Kind string

const (
	KindPrinciple              Kind = "principle"
	KindCode                   Kind = "code"
	KindMaterial               Kind = "material"
	KindCostData               Kind = "cost_data"
	KindSustainabilityStandard Kind = "sustainability_standard"
	KindDesignPrinciple        Kind = "design_principle"
	KindStructuralRule         Kind = "structural_rule"
)
