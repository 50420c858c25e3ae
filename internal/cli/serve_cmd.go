package cli

import (
	"errors"

	"github.com/alexanderramin/archsage/internal/server"
	"github.com/spf13/cobra"
)

func newServeCmd(app *App) *cobra.Command {
	var addr string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the analysis API over HTTP",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if app.Config == nil {
				return errors.New("serve requires a loaded configuration")
			}
			cfg := app.Config.Server
			if addr != "" {
				cfg.Addr = addr
			}

			srv := server.New(cfg, server.Deps{
				Analysis: app.Analysis,
				Personas: app.Personas,
				Store:    app.Store,
				Gateway:  app.Gateway,
				Metrics:  app.Metrics,
				Logger:   app.Logger,
				Version:  app.Version,
			})
			return srv.Run(cmd.Context())
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address, overrides server.addr")
	return cmd
}
