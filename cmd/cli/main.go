package main

import (
	"context"
	"fmt"
	"os"

	"github.com/alecthomas/kong"
	"go.uber.org/zap"

	"github.com/hamed0406/nethealth/internal/health"
	"github.com/hamed0406/nethealth/internal/history"
	"github.com/hamed0406/nethealth/internal/output"
)

var Version = "dev"

type CLI struct {
	Output  string `enum:"pretty,json" default:"pretty" help:"Output format."`
	History string `help:"Path to the sqlite history database. Empty keeps history in memory."`
	Verbose bool   `help:"Enable verbose logging."`
	Debug   bool   `help:"Enable debug logging (includes per-probe detail)."`

	Version kong.VersionFlag `help:"Print version."`
}

func main() {
	cli := CLI{}
	kong.Parse(&cli,
		kong.Name("nethealth"),
		kong.Description("Probe well-known endpoints and report whether egress looks healthy."),
		kong.Vars{"version": Version},
	)

	logger, err := newLogger(cli.Verbose, cli.Debug)
	if err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(2)
	}
	defer logger.Sync()

	var store history.Store
	if cli.History != "" {
		s, err := history.OpenSQLite(cli.History)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
		defer s.Close()
		store = s
	} else {
		store = history.NewMemory()
	}

	checker := health.New(logger, history.NewTracker(store, logger))
	result := checker.Run(context.Background())

	var rendered string
	if cli.Output == "json" {
		rendered, err = output.RenderJSON(result)
		if err != nil {
			fmt.Fprintln(os.Stderr, err)
			os.Exit(2)
		}
	} else {
		rendered = output.RenderPretty(result)
	}

	fmt.Println(rendered)
	if !result.Status {
		os.Exit(1)
	}
}

func newLogger(verbose bool, debug bool) (*zap.Logger, error) {
	if debug {
		cfg := zap.NewDevelopmentConfig()
		cfg.Level = zap.NewAtomicLevelAt(zap.DebugLevel)
		return cfg.Build()
	}
	cfg := zap.NewProductionConfig()
	if verbose {
		cfg.Level = zap.NewAtomicLevelAt(zap.InfoLevel)
	} else {
		cfg.Level = zap.NewAtomicLevelAt(zap.WarnLevel)
	}
	return cfg.Build()
}
