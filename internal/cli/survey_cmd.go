package cli

import (
	"errors"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/spf13/cobra"
)

// SurveyResult is the JSON shape printed by `archsage survey --json`.
type SurveyResult struct {
	Query   string                         `json:"query"`
	Results []*contract.StructuredResponse `json:"results"`
}

func newSurveyCmd(app *App) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "survey [query...]",
		Short: "Ask every expert the same question concurrently",
		RunE: func(cmd *cobra.Command, args []string) error {
			base, err := flags.request(cmd, args)
			if err != nil {
				return err
			}
			if !base.HasQuery() {
				return errors.New("a query is required: pass it as arguments or with --query")
			}

			personas := app.Personas.List()
			reqs := make([]contract.AnalyzeRequest, 0, len(personas))
			for _, p := range personas {
				r := base
				r.ToolType = p.ID
				reqs = append(reqs, r)
			}

			asJSON := app.jsonOutput(flags.asJSON)
			var results []*contract.StructuredResponse
			err = withSpinner(cmd.ErrOrStderr(), !asJSON, "Consulting every expert...", func() error {
				var err error
				results, err = app.Analysis.AnalyzeBatch(cmd.Context(), reqs)
				return err
			})
			if err != nil {
				return err
			}

			return render(cmd.OutOrStdout(), asJSON, SurveyResult{Query: base.UserQuery, Results: results}, func() string {
				return formatter.FormatSurvey(base.UserQuery, results)
			})
		},
	}

	flags.bind(cmd, false)
	return cmd
}
