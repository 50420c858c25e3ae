package cli

import (
	"errors"
	"fmt"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
	"github.com/alexanderramin/archsage/internal/contract"
	"github.com/spf13/cobra"
)

func newAnalyzeCmd(app *App) *cobra.Command {
	var flags requestFlags
	var interactive bool

	cmd := &cobra.Command{
		Use:   "analyze [query...]",
		Short: "Analyze a design question with a domain-expert persona",
		Example: `  archsage analyze --tool vastu "Is a north-east entrance good for my 3BHK?"
  archsage analyze -t cost --budget 85000 --location Pune "Estimate the foundation cost"
  archsage analyze --interactive`,
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, args)
			if err != nil {
				return err
			}
			if interactive {
				if !app.interactive() {
					return errors.New("--interactive requires a terminal")
				}
				if err := runAnalyzeForm(app, &req); err != nil {
					return err
				}
			}
			if !req.HasQuery() {
				return errors.New("a query is required: pass it as arguments, with --query, or use --interactive")
			}
			if req.ToolType == "" {
				return errors.New("--tool is required")
			}
			return runAnalyze(cmd, app, req, flags.asJSON)
		},
	}

	flags.bind(cmd, true)
	cmd.Flags().BoolVarP(&interactive, "interactive", "i", false, "Fill in the request with an interactive form")
	return cmd
}

func runAnalyze(cmd *cobra.Command, app *App, req contract.AnalyzeRequest, asJSON bool) error {
	asJSON = app.jsonOutput(asJSON)

	var resp *contract.StructuredResponse
	err := withSpinner(cmd.ErrOrStderr(), !asJSON, fmt.Sprintf("Consulting the %s expert...", req.ToolType), func() error {
		var err error
		resp, err = app.Analysis.Analyze(cmd.Context(), req)
		return err
	})
	if err != nil {
		return err
	}

	return render(cmd.OutOrStdout(), asJSON, resp, func() string {
		return formatter.FormatAnalysis(resp)
	})
}
