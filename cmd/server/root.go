package main

import (
	"fmt"

	"freelance-match/internal/config"
	"freelance-match/internal/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

const appName = "freelance-match"

var (
	debug    bool
	jsonLogs bool

	rootCmd = &cobra.Command{
		Use:           appName,
		Short:         "freelance-match connects clients posting projects with matching freelancers",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&debug, "debug", "d", false, "verbose/debug output (overrides LOG_DEBUG)")
	rootCmd.PersistentFlags().BoolVarP(&jsonLogs, "json", "j", false, "json format for logging (overrides LOG_JSON)")

	rootCmd.AddCommand(serveCmd, migrateCmd)
}

// setup loads configuration and builds the logger shared by every command.
func setup(cmd *cobra.Command) (config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return cfg, nil, fmt.Errorf("load config: %w", err)
	}
	if cmd.Flags().Changed("debug") {
		cfg.Log.Debug = debug
	}
	if cmd.Flags().Changed("json") {
		cfg.Log.JSON = jsonLogs
	}

	log, err := logger.New(cfg.Log.JSON, cfg.Log.Debug)
	if err != nil {
		return cfg, nil, fmt.Errorf("init logger: %w", err)
	}
	return cfg, log.With(zap.String("env", cfg.App.Environment)), nil
}
