package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"
	"github.com/timmy/carmate/internal/config"
	"github.com/timmy/carmate/internal/logger"
)

type rootOptions struct {
	configPath string
	logLevel   string
}

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	if err := newRootCmd().ExecuteContext(ctx); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	var opts rootOptions

	cmd := &cobra.Command{
		Use:           "ingest",
		Short:         "Bulk-load car and customer CSV files",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	cmd.PersistentFlags().StringVar(&opts.configPath, "config", os.Getenv("CONFIG_PATH"), "Path to config file")
	cmd.PersistentFlags().StringVar(&opts.logLevel, "log-level", "", "Log level override (debug, info, warn, error)")

	cmd.AddCommand(newRunCmd(&opts))
	cmd.AddCommand(newPushCmd(&opts))
	cmd.AddCommand(newCompanyCmd(&opts))
	return cmd
}

// setup loads configuration and installs the default logger.
func setup(opts *rootOptions) (*config.Config, *logger.Logger, error) {
	cfg, err := config.Load(opts.configPath)
	if err != nil {
		return nil, nil, err
	}

	level := cfg.Log.Level
	if opts.logLevel != "" {
		level = opts.logLevel
	}
	appLogger := logger.New(&logger.Config{
		Level:       level,
		Format:      cfg.Log.Format,
		Output:      os.Stderr,
		ServiceName: "carmate-ingest",
	})
	logger.SetDefaultLogger(appLogger)
	return cfg, appLogger, nil
}
