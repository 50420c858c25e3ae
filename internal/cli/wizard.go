package cli

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/charmbracelet/huh"
	"github.com/charmbracelet/lipgloss"
)

// archsageHuhTheme returns a huh theme matching the formatter palette.
func archsageHuhTheme() *huh.Theme {
	t := huh.ThemeBase()

	// Focused state: orange accent
	t.Focused.Title = lipgloss.NewStyle().Foreground(formatter.ColorHeader).Bold(true)
	t.Focused.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorGreen)
	t.Focused.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.FocusedButton = lipgloss.NewStyle().Foreground(formatter.ColorFg).Background(formatter.ColorHeader).Padding(0, 1)
	t.Focused.BlurredButton = lipgloss.NewStyle().Foreground(formatter.ColorDim).Padding(0, 1)
	t.Focused.TextInput.Cursor = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorHeader)
	t.Focused.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorFg)
	t.Focused.TextInput.Placeholder = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Focused.Description = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	// Blurred state: dimmed
	t.Blurred.Title = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectSelector = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.SelectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.UnselectedOption = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Prompt = lipgloss.NewStyle().Foreground(formatter.ColorDim)
	t.Blurred.TextInput.Text = lipgloss.NewStyle().Foreground(formatter.ColorDim)

	return t
}

// analyzeFormValues holds the string-typed form state before conversion.
type analyzeFormValues struct {
	tool         string
	query        string
	projectType  string
	location     string
	budget       string
	style        string
	requirements string
	constraints  string
	experience   string
}

func newAnalyzeFormValues(req contract.AnalyzeRequest) *analyzeFormValues {
	v := &analyzeFormValues{
		tool:         req.ToolType,
		query:        req.UserQuery,
		projectType:  req.ProjectType,
		location:     req.Location,
		style:        req.Style,
		requirements: strings.Join(req.Requirements, ", "),
		constraints:  strings.Join(req.Constraints, ", "),
		experience:   req.UserExperience,
	}
	if req.Budget != nil {
		v.budget = strconv.FormatFloat(*req.Budget, 'f', -1, 64)
	}
	return v
}

// apply copies the form state back onto req. Images are left untouched.
func (v *analyzeFormValues) apply(req *contract.AnalyzeRequest) {
	req.ToolType = v.tool
	req.UserQuery = strings.TrimSpace(v.query)
	req.ProjectType = strings.TrimSpace(v.projectType)
	req.Location = strings.TrimSpace(v.location)
	req.Style = strings.TrimSpace(v.style)
	req.Requirements = splitList(v.requirements)
	req.Constraints = splitList(v.constraints)
	req.UserExperience = v.experience
	req.Budget = nil
	if b, err := strconv.ParseFloat(strings.TrimSpace(v.budget), 64); err == nil {
		req.Budget = &b
	}
}

// analyzeForm builds the two-page analyze wizard: tool and query first,
// project context second.
func analyzeForm(app *App, v *analyzeFormValues) *huh.Form {
	personas := app.Personas.List()
	options := make([]huh.Option[string], 0, len(personas))
	for _, p := range personas {
		options = append(options, huh.NewOption(fmt.Sprintf("%s  %s", p.DisplayName, formatter.Dim(p.ID)), p.ID))
	}
	if v.tool == "" && len(personas) > 0 {
		v.tool = personas[0].ID
	}

	return huh.NewForm(
		huh.NewGroup(
			huh.NewSelect[string]().
				Title("Expert").
				Options(options...).
				Value(&v.tool),
			huh.NewText().
				Title("Question").
				Placeholder("How should I orient the entrance of my house?").
				Value(&v.query).
				Validate(requiredText("Question")),
		),
		huh.NewGroup(
			textInput("Project Type", "Residential", &v.projectType),
			textInput("Location", "Mumbai, India", &v.location),
			budgetInput(&v.budget),
			textInput("Style", "Modern minimalist", &v.style),
			listInput("Requirements", "3 bedrooms, home office", &v.requirements),
			listInput("Constraints", "narrow plot, seismic zone", &v.constraints),
			experienceSelect(&v.experience),
		),
	).WithTheme(archsageHuhTheme()).WithShowHelp(false)
}

func runAnalyzeForm(app *App, req *contract.AnalyzeRequest) error {
	v := newAnalyzeFormValues(*req)
	if err := analyzeForm(app, v).Run(); err != nil {
		return err
	}
	v.apply(req)
	return nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}

// validateOptionalBudget accepts empty or a non-negative number.
func validateOptionalBudget(s string) error {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	v, err := strconv.ParseFloat(s, 64)
	if err != nil || v < 0 {
		return fmt.Errorf("enter a non-negative number")
	}
	return nil
}

func requiredText(title string) func(string) error {
	return func(s string) error {
		if strings.TrimSpace(s) == "" {
			return fmt.Errorf("%s is required", title)
		}
		return nil
	}
}
