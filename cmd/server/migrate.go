package main

import (
	"context"
	"errors"
	"fmt"
	"time"

	"freelance-match/internal/app"
	dbpostgres "freelance-match/internal/database/postgres"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply database migrations and exit",
	RunE: func(cmd *cobra.Command, _ []string) error {
		return migrate(cmd)
	},
}

func migrate(cmd *cobra.Command) error {
	cfg, log, err := setup(cmd)
	if err != nil {
		return err
	}
	defer func() { _ = log.Sync() }()

	if !cfg.Database.Configured() {
		return errors.New("DB_HOST, DB_NAME and DB_USER must be set")
	}

	ctx, cancel := context.WithTimeout(cmd.Context(), 2*time.Minute)
	defer cancel()

	pool, err := dbpostgres.Connect(ctx, cfg.Database)
	if err != nil {
		return fmt.Errorf("connect database: %w", err)
	}
	defer func() { _ = pool.Close() }()

	if err := app.Migrate(ctx, pool, cfg.Database.MigrationsDir, log); err != nil {
		return err
	}
	log.Info("migrations applied")
	return nil
}
