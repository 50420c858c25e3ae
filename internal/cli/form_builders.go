package cli

import "github.com/charmbracelet/huh"

// textInput returns an optional free-text huh.Input.
func textInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Placeholder(placeholder).
		Value(value)
}

// budgetInput returns a huh.Input for an optional non-negative budget.
func budgetInput(value *string) *huh.Input {
	return huh.NewInput().
		Title("Budget").
		Description("Leave blank if undecided").
		Placeholder("85000").
		Value(value).
		Validate(validateOptionalBudget)
}

// listInput returns a huh.Input for a comma-separated list.
func listInput(title, placeholder string, value *string) *huh.Input {
	return huh.NewInput().
		Title(title).
		Description("Comma-separated").
		Placeholder(placeholder).
		Value(value)
}

// experienceSelect returns a huh.Select for the user's experience level.
func experienceSelect(value *string) *huh.Select[string] {
	return huh.NewSelect[string]().
		Title("Experience Level").
		Options(
			huh.NewOption("Not specified", ""),
			huh.NewOption("Beginner", "beginner"),
			huh.NewOption("Intermediate", "intermediate"),
			huh.NewOption("Expert", "expert"),
		).
		Value(value)
}
