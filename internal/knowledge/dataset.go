package knowledge

// defaultEntries is the built-in knowledge base. It is compiled into the
// binary and loaded once at startup.
func defaultEntries() []Entry {
	return []Entry{
		// Vastu Shastra principles.
		{
			ID: "vastu-entrance", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Main Entrance",
			Description: "Place the main entrance in the north, east or north-east to welcome positive energy.",
			Attributes:  map[string]string{"direction": "North-East", "element": "Water"},
		},
		{
			ID: "vastu-kitchen", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Kitchen Placement",
			Description: "Locate the kitchen in the south-east zone governed by fire; the cook should face east.",
			Attributes:  map[string]string{"direction": "South-East", "element": "Fire"},
		},
		{
			ID: "vastu-master-bedroom", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Master Bedroom",
			Description: "The south-west zone provides stability and suits the master bedroom; sleep with the head to the south.",
			Attributes:  map[string]string{"direction": "South-West", "element": "Earth"},
		},
		{
			ID: "vastu-pooja", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Pooja Room",
			Description: "Keep the prayer space in the north-east corner, free of clutter and away from toilets.",
			Attributes:  map[string]string{"direction": "North-East", "element": "Water"},
		},
		{
			ID: "vastu-brahmasthan", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Brahmasthan",
			Description: "Leave the centre of the plan open and unobstructed to allow energy to circulate.",
			Attributes:  map[string]string{"direction": "Centre", "element": "Space"},
		},
		{
			ID: "vastu-water", Domain: DomainVastu, Kind: KindPrinciple,
			Name:        "Water Storage",
			Description: "Underground tanks belong in the north-east; overhead tanks belong in the south-west.",
			Attributes:  map[string]string{"direction": "North-East / South-West", "element": "Water"},
		},

		// Structural codes, materials and rules.
		{
			ID: "struct-is456", Domain: DomainStructural, Kind: KindCode,
			Name:        "IS 456:2000",
			Description: "Indian standard code of practice for plain and reinforced concrete.",
			Attributes:  map[string]string{"jurisdiction": "India", "scope": "RCC design"},
		},
		{
			ID: "struct-is1893", Domain: DomainStructural, Kind: KindCode,
			Name:        "IS 1893:2016",
			Description: "Criteria for earthquake resistant design of structures, including seismic zone factors.",
			Attributes:  map[string]string{"jurisdiction": "India", "scope": "Seismic design"},
		},
		{
			ID: "struct-is875", Domain: DomainStructural, Kind: KindCode,
			Name:        "IS 875",
			Description: "Design loads (dead, imposed, wind, snow) for buildings and structures.",
			Attributes:  map[string]string{"jurisdiction": "India", "scope": "Load combinations"},
		},
		{
			ID: "struct-ibc", Domain: DomainStructural, Kind: KindCode,
			Name:        "International Building Code",
			Description: "Model code covering structural design, fire safety and means of egress.",
			Attributes:  map[string]string{"jurisdiction": "International", "scope": "General building safety"},
		},
		{
			ID: "struct-m25", Domain: DomainStructural, Kind: KindMaterial,
			Name:        "M25 Concrete",
			Description: "Minimum recommended grade for reinforced concrete in moderate exposure conditions.",
			Attributes:  map[string]string{"compressive_strength": "25 MPa", "mix": "1:1:2"},
		},
		{
			ID: "struct-fe500", Domain: DomainStructural, Kind: KindMaterial,
			Name:        "Fe500D Rebar",
			Description: "High-ductility TMT reinforcement suited to seismic zones.",
			Attributes:  map[string]string{"yield_strength": "500 MPa", "elongation": "16%"},
		},
		{
			ID: "struct-column-grid", Domain: DomainStructural, Kind: KindStructuralRule,
			Name:        "Column Spacing",
			Description: "Keep typical residential column spans between 3 and 6 metres to control beam depth.",
			Attributes:  map[string]string{"min_span": "3 m", "max_span": "6 m"},
		},

		// Interior design principles and materials.
		{
			ID: "interior-balance", Domain: DomainInterior, Kind: KindDesignPrinciple,
			Name:        "Balance",
			Description: "Distribute visual weight symmetrically or asymmetrically so no area feels heavier than another.",
		},
		{
			ID: "interior-lighting", Domain: DomainInterior, Kind: KindDesignPrinciple,
			Name:        "Layered Lighting",
			Description: "Combine ambient, task and accent lighting; target 300-500 lux for work surfaces.",
			Attributes:  map[string]string{"task_lux": "300-500"},
		},
		{
			ID: "interior-circulation", Domain: DomainInterior, Kind: KindDesignPrinciple,
			Name:        "Circulation Space",
			Description: "Maintain at least 900 mm clear walkways between furniture groupings.",
			Attributes:  map[string]string{"min_clearance": "900 mm"},
		},
		{
			ID: "interior-colour", Domain: DomainInterior, Kind: KindDesignPrinciple,
			Name:        "60-30-10 Colour Rule",
			Description: "Use a dominant colour for 60%, a secondary colour for 30% and an accent for 10% of the space.",
		},
		{
			ID: "interior-bamboo", Domain: DomainInterior, Kind: KindMaterial,
			Name:        "Engineered Bamboo Flooring",
			Description: "Rapidly renewable flooring with hardness comparable to oak.",
			Attributes:  map[string]string{"renewal_cycle": "5 years", "finish": "UV-cured"},
		},

		// Sustainability standards.
		{
			ID: "sus-leed", Domain: DomainSustainability, Kind: KindSustainabilityStandard,
			Name:        "LEED",
			Description: "US Green Building Council rating system covering energy, water, materials and indoor quality.",
			Attributes:  map[string]string{"levels": "Certified, Silver, Gold, Platinum", "origin": "USA"},
		},
		{
			ID: "sus-breeam", Domain: DomainSustainability, Kind: KindSustainabilityStandard,
			Name:        "BREEAM",
			Description: "Building Research Establishment assessment method for environmental performance.",
			Attributes:  map[string]string{"levels": "Pass to Outstanding", "origin": "UK"},
		},
		{
			ID: "sus-griha", Domain: DomainSustainability, Kind: KindSustainabilityStandard,
			Name:        "GRIHA",
			Description: "Green Rating for Integrated Habitat Assessment, India's national rating system.",
			Attributes:  map[string]string{"levels": "1 to 5 stars", "origin": "India"},
		},
		{
			ID: "sus-igbc", Domain: DomainSustainability, Kind: KindSustainabilityStandard,
			Name:        "IGBC Green Homes",
			Description: "Indian Green Building Council rating for residential projects.",
			Attributes:  map[string]string{"levels": "Certified to Platinum", "origin": "India"},
		},
		{
			ID: "sus-ecbc", Domain: DomainSustainability, Kind: KindCode,
			Name:        "ECBC 2017",
			Description: "Energy Conservation Building Code setting minimum envelope and system efficiency.",
			Attributes:  map[string]string{"jurisdiction": "India"},
		},

		// Cost data points.
		{
			ID: "cost-rcc-frame", Domain: DomainCost, Kind: KindCostData,
			Name:        "RCC Frame Construction",
			Description: "Typical structure cost for a reinforced concrete frame.",
			Attributes:  map[string]string{"rate_inr_per_sqft": "1800-2200", "rate_usd_per_sqft": "22-27"},
		},
		{
			ID: "cost-finishing", Domain: DomainCost, Kind: KindCostData,
			Name:        "Standard Finishing",
			Description: "Flooring, plaster, paint, doors and windows at mid-range specification.",
			Attributes:  map[string]string{"rate_inr_per_sqft": "600-900", "share_of_budget": "25%"},
		},
		{
			ID: "cost-mep", Domain: DomainCost, Kind: KindCostData,
			Name:        "MEP Services",
			Description: "Mechanical, electrical and plumbing installations.",
			Attributes:  map[string]string{"share_of_budget": "15-20%"},
		},
		{
			ID: "cost-foundation", Domain: DomainCost, Kind: KindCostData,
			Name:        "Foundation Work",
			Description: "Isolated footing foundation including excavation and PCC.",
			Attributes:  map[string]string{"share_of_budget": "10-12%"},
		},
		{
			ID: "cost-contingency", Domain: DomainCost, Kind: KindCostData,
			Name:        "Contingency Reserve",
			Description: "Allowance for price escalation and unforeseen site conditions.",
			Attributes:  map[string]string{"share_of_budget": "5-10%"},
		},
	}
}
