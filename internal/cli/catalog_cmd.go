package cli

import (
	"fmt"

	"github.com/alexanderramin/archsage/internal/cli/formatter"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/spf13/cobra"
)

func newPersonasCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:   "personas",
		Short: "List the expert personas and their template variables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			list := app.Personas.List()
			return render(cmd.OutOrStdout(), app.jsonOutput(asJSON), list, func() string {
				return formatter.FormatPersonas(list)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")
	return cmd
}

func newKnowledgeCmd(app *App) *cobra.Command {
	var asJSON bool

	cmd := &cobra.Command{
		Use:       "knowledge [domain]",
		Short:     "Summarize the knowledge base, or list one domain's entries",
		Args:      cobra.MaximumNArgs(1),
		ValidArgs: domainNames(),
		RunE: func(cmd *cobra.Command, args []string) error {
			out := cmd.OutOrStdout()
			useJSON := app.jsonOutput(asJSON)
			if len(args) == 0 {
				summary := map[knowledge.Domain]int{}
				for _, d := range app.Store.AllDomains() {
					summary[d] = len(app.Store.EntriesForDomain(d))
				}
				return render(out, useJSON, summary, func() string {
					return formatter.FormatKnowledgeSummary(app.Store)
				})
			}

			d, ok := knowledge.ParseDomain(args[0])
			if !ok {
				return fmt.Errorf("unknown domain %q (valid: %v)", args[0], domainNames())
			}
			entries := app.Store.EntriesForDomain(d)
			return render(out, useJSON, entries, func() string {
				return formatter.FormatDomainEntries(d, entries)
			})
		},
	}

	cmd.Flags().BoolVar(&asJSON, "json", false, "Print JSON instead of formatted output")
	return cmd
}

func domainNames() []string {
	all := knowledge.AllDomains()
	out := make([]string, len(all))
	for i, d := range all {
		out[i] = string(d)
	}
	return out
}
