package prompt

import (
	"strconv"
	"strings"
)

// Context is the caller-supplied project context for one request.
type Context struct {
	UserQuery      string   `json:"userQuery"`
	ProjectType    string   `json:"projectType,omitempty"`
	Location       string   `json:"location,omitempty"`
	Budget         *float64 `json:"budget,omitempty"`
	Style          string   `json:"style,omitempty"`
	Requirements   []string `json:"requirements,omitempty"`
	Constraints    []string `json:"constraints,omitempty"`
	UserExperience string   `json:"userExperience,omitempty"`
}

// Slot names, in the fixed order used for rendering and diagnostics.
const (
	SlotUserQuery      = "userQuery"
	SlotProjectType    = "projectType"
	SlotLocation       = "location"
	SlotBudget         = "budget"
	SlotStyle          = "style"
	SlotRequirements   = "requirements"
	SlotConstraints    = "constraints"
	SlotUserExperience = "userExperience"
)

var slotOrder = []string{
	SlotUserQuery,
	SlotProjectType,
	SlotLocation,
	SlotBudget,
	SlotStyle,
	SlotRequirements,
	SlotConstraints,
	SlotUserExperience,
}

// Value returns the rendered string for a slot. Absent fields and unknown
// slots yield "".
func (c Context) Value(slot string) string {
	switch slot {
	case SlotUserQuery:
		return c.UserQuery
	case SlotProjectType:
		return c.ProjectType
	case SlotLocation:
		return c.Location
	case SlotBudget:
		if c.Budget == nil {
			return ""
		}
		return strconv.FormatFloat(*c.Budget, 'f', -1, 64)
	case SlotStyle:
		return c.Style
	case SlotRequirements:
		return strings.Join(c.Requirements, ", ")
	case SlotConstraints:
		return strings.Join(c.Constraints, ", ")
	case SlotUserExperience:
		return c.UserExperience
	}
	return ""
}
