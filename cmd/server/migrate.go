package main

import (
	"context"
	"database/sql"
	"errors"

	"github.com/spf13/cobra"

	"ploshtadka/internal/platform/config"
	"ploshtadka/internal/platform/postgres"
)

func newMigrateCmd(load func() (config.Config, error)) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Manage the PostgreSQL schema",
	}
	cmd.AddCommand(
		migrateSubcommand("up", "Apply all pending migrations", load, postgres.Migrate),
		migrateSubcommand("down", "Roll back the most recent migration", load, postgres.Rollback),
		migrateSubcommand("status", "Print the state of every migration", load, postgres.Status),
	)
	return cmd
}

func migrateSubcommand(use, short string, load func() (config.Config, error), run func(*sql.DB) error) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := load()
			if err != nil {
				return err
			}
			return withDB(cmd.Context(), cfg.Store, run)
		},
	}
}

func withDB(ctx context.Context, cfg config.StoreConfig, run func(*sql.DB) error) error {
	if cfg.DatabaseURL == "" {
		return errors.New("DATABASE_URL is required for migrations")
	}
	db, err := postgres.Open(ctx, cfg.DatabaseURL, postgres.Options{MaxOpenConns: 1})
	if err != nil {
		return err
	}
	defer db.Close()
	return run(db)
}
