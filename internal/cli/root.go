package cli

import (
	"context"
	"fmt"

	"github.com/alexanderramin/archsage/internal/config"
	"github.com/alexanderramin/archsage/internal/intelligence"
	"github.com/alexanderramin/archsage/internal/knowledge"
	"github.com/alexanderramin/archsage/internal/llm"
	"github.com/alexanderramin/archsage/internal/metrics"
	"github.com/alexanderramin/archsage/internal/persona"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// App holds references to the services used by CLI commands.
type App struct {
	Analysis intelligence.AnalysisService
	Personas *persona.Registry
	Store    *knowledge.Store
	Gateway  llm.Gateway
	Metrics  *metrics.Metrics
	Logger   *zap.Logger
	Config   *config.Config
	Version  string

	// Setup wires the services above from a config file path. It runs once
	// before any command and may be nil when the App is already wired.
	Setup func(ctx context.Context, configPath string) error

	// IsInteractive reports whether stdin is a terminal.
	IsInteractive func() bool

	// StdoutIsTerminal reports whether styled output should be rendered.
	StdoutIsTerminal func() bool
}

// NewRootCmd creates the top-level "archsage" command and registers all
// subcommands against the provided App.
func NewRootCmd(app *App) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "archsage",
		Short:         "Domain-expert design guidance for construction projects",
		Version:       app.Version,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			if app.Setup == nil {
				return nil
			}
			if err := app.Setup(cmd.Context(), configPath); err != nil {
				return fmt.Errorf("loading configuration: %w", err)
			}
			return nil
		},
	}

	root.PersistentFlags().StringVar(&configPath, "config", "", "Path to a YAML config file (default ./archsage.yaml if present)")

	root.AddCommand(
		newAnalyzeCmd(app),
		newSurveyCmd(app),
		newPromptCmd(app),
		newPersonasCmd(app),
		newKnowledgeCmd(app),
		newServeCmd(app),
	)

	return root
}

func (a *App) interactive() bool {
	return a.IsInteractive != nil && a.IsInteractive()
}

func (a *App) styled() bool {
	return a.StdoutIsTerminal != nil && a.StdoutIsTerminal()
}

// jsonOutput reports whether a command prints JSON: when asked to, or when
// stdout is not a terminal.
func (a *App) jsonOutput(asked bool) bool {
	return asked || !a.styled()
}
