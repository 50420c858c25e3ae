package cli

import (
	"errors"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
	"github.com/spf13/cobra"
)

func newPromptCmd(app *App) *cobra.Command {
	var flags requestFlags

	cmd := &cobra.Command{
		Use:   "prompt [query...]",
		Short: "Show the composed prompt without calling the model",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := flags.request(cmd, args)
			if err != nil {
				return err
			}
			if req.ToolType == "" {
				return errors.New("--tool is required")
			}

			preview, err := app.Analysis.Preview(req)
			if err != nil {
				return err
			}
			return render(cmd.OutOrStdout(), app.jsonOutput(flags.asJSON), preview, func() string {
				return formatter.FormatPreview(preview)
			})
		},
	}

	flags.bind(cmd, true)
	return cmd
}
