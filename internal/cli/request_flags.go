package cli

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/spf13/cobra"
)

// requestFlags are the project-context flags shared by analyze, survey and prompt.
type requestFlags struct {
	tool         string
	query        string
	projectType  string
	location     string
	budget       float64
	style        string
	requirements []string
	constraints  []string
	experience   string
	images       []string
	asJSON       bool
}

func (f *requestFlags) bind(cmd *cobra.Command, withTool bool) {
	fs := cmd.Flags()
	if withTool {
		fs.StringVarP(&f.tool, "tool", "t", "", "Tool type: vastu, structural, interior, sustainability or cost")
	}
	fs.StringVarP(&f.query, "query", "q", "", "Question to analyze (or pass it as arguments)")
	fs.StringVar(&f.projectType, "project-type", "", "Project type, e.g. Residential or Commercial")
	fs.StringVar(&f.location, "location", "", "Project location")
	fs.Float64Var(&f.budget, "budget", 0, "Project budget (omit for none)")
	fs.StringVar(&f.style, "style", "", "Design style preference")
	fs.StringArrayVar(&f.requirements, "requirement", nil, "Project requirement (repeatable)")
	fs.StringArrayVar(&f.constraints, "constraint", nil, "Project constraint (repeatable)")
	fs.StringVar(&f.experience, "experience", "", "Your experience level: beginner, intermediate or expert")
	fs.StringArrayVar(&f.images, "image", nil, "Floor plan or site photo to attach: png, jpeg or webp (repeatable)")
	fs.BoolVar(&f.asJSON, "json", false, "Print JSON instead of formatted output")
}

// request assembles an AnalyzeRequest. Positional args form the query when
// --query is not set. The budget is only set when the flag was given.
func (f *requestFlags) request(cmd *cobra.Command, args []string) (contract.AnalyzeRequest, error) {
	query := f.query
	if query == "" {
		query = strings.Join(args, " ")
	}

	req := contract.AnalyzeRequest{
		ToolType:       strings.ToLower(strings.TrimSpace(f.tool)),
		UserQuery:      query,
		ProjectType:    f.projectType,
		Location:       f.location,
		Style:          f.style,
		Requirements:   f.requirements,
		Constraints:    f.constraints,
		UserExperience: f.experience,
	}
	if cmd.Flags().Changed("budget") {
		b := f.budget
		req.Budget = &b
	}

	for _, path := range f.images {
		img, err := readImage(path)
		if err != nil {
			return contract.AnalyzeRequest{}, err
		}
		req.Images = append(req.Images, img)
	}
	return req, nil
}

// readImage loads an attachment and sniffs its MIME type from content.
func readImage(path string) (contract.ImageAttachment, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return contract.ImageAttachment{}, fmt.Errorf("reading image %s: %w", path, err)
	}
	mime := http.DetectContentType(data)
	if !contract.SupportedImageTypes[mime] {
		return contract.ImageAttachment{}, fmt.Errorf("image %s: unsupported type %s (use png, jpeg or webp)", path, mime)
	}
	return contract.ImageAttachment{MIMEType: mime, Data: data}, nil
}
