package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/alexanderramin/archsage/internal/app"
	"github.com/alexanderramin/archsage/internal/cli"
	"github.com/mattn/go-isatty"
)

// version is overridden at build time with -ldflags "-X main.version=...".
var version = "dev"

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	a := &cli.App{Version: version}

	a.IsInteractive = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}
	a.StdoutIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdout.Fd()) || isatty.IsCygwinTerminal(os.Stdout.Fd())
	}

	var rt *app.Runtime
	defer func() {
		if rt != nil {
			rt.Close()
		}
	}()

	// Wiring is deferred until flags are parsed so --config is honoured.
	a.Setup = func(ctx context.Context, configPath string) error {
		var err error
		rt, err = app.Load(ctx, configPath)
		if err != nil {
			return err
		}
		a.Analysis = rt.Analysis
		a.Personas = rt.Personas
		a.Store = rt.Store
		a.Gateway = rt.Gateway
		a.Metrics = rt.Metrics
		a.Logger = rt.Logger
		a.Config = rt.Config
		rt.WatchConfig()
		return nil
	}

	return cli.NewRootCmd(a).ExecuteContext(ctx)
}
