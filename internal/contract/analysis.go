package contract

import (
	"strings"
	"time"

	"github.com/alexanderramin/archsage/internal/prompt"
)

// ImageAttachment is an optional site photo or floor plan sent with a request.
// Data is base64-encoded in JSON.
type ImageAttachment struct {
	MIMEType string `json:"mimeType"`
	Data     []byte `json:"data"`
}

// SupportedImageTypes lists the MIME types accepted for attachments.
var SupportedImageTypes = map[string]bool{
	"image/png":  true,
	"image/jpeg": true,
	"image/webp": true,
}

// AnalyzeRequest is the transport-agnostic request for one analysis.
type AnalyzeRequest struct {
	ToolType       string            `json:"toolType"`
	UserQuery      string            `json:"userQuery"`
	ProjectType    string            `json:"projectType,omitempty"`
	Location       string            `json:"location,omitempty"`
	Budget         *float64          `json:"budget,omitempty"`
	Style          string            `json:"style,omitempty"`
	Requirements   []string          `json:"requirements,omitempty"`
	Constraints    []string          `json:"constraints,omitempty"`
	UserExperience string            `json:"userExperience,omitempty"`
	Images         []ImageAttachment `json:"images,omitempty"`
}

// PromptContext extracts the project context used for prompt composition.
func (r AnalyzeRequest) PromptContext() prompt.Context {
	return prompt.Context{
		UserQuery:      r.UserQuery,
		ProjectType:    r.ProjectType,
		Location:       r.Location,
		Budget:         r.Budget,
		Style:          r.Style,
		Requirements:   r.Requirements,
		Constraints:    r.Constraints,
		UserExperience: r.UserExperience,
	}
}

// HasQuery reports whether the request carries a non-blank user query.
func (r AnalyzeRequest) HasQuery() bool {
	return strings.TrimSpace(r.UserQuery) != ""
}

// StructuredResponse is the structured result of one analysis. It is built
// fresh per request and never mutated after it is returned.
type StructuredResponse struct {
	AnalysisID          string              `json:"analysisId,omitempty"`
	ToolType            string              `json:"toolType,omitempty"`
	Fallback            bool                `json:"fallback"`
	GeneratedAt         time.Time           `json:"generatedAt,omitempty"`
	NarrativeText       string              `json:"narrativeText"`
	Recommendations     []string            `json:"recommendations"`
	CostEstimates       map[string][]string `json:"costEstimates"`
	ComplianceNotes     []string            `json:"complianceNotes"`
	SustainabilityScore int                 `json:"sustainabilityScore"`
	ImplementationSteps []string            `json:"implementationSteps"`
	Alternatives        []string            `json:"alternatives"`
	KnowledgeSources    []string            `json:"knowledgeSources"`
}

// Field limits for extracted lists.
const (
	MaxRecommendations     = 5
	MaxComplianceNotes     = 3
	MaxImplementationSteps = 5
	MinSustainabilityScore = 0
	MaxSustainabilityScore = 100
)
