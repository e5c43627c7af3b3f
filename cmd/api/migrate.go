package main

import (
	"database/sql"
	"errors"
	"fmt"

	_ "github.com/jackc/pgx/v5/stdlib" // registers "pgx" driver for database/sql
	"github.com/pressly/goose/v3"
	"github.com/spf13/cobra"

	"github.com/pkordes/trip-planner/backend/migrations"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create and seed the catalog tables in DATABASE_URL",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		cfg, logger, err := loadConfig()
		if err != nil {
			return err
		}
		if cfg.DatabaseURL == "" {
			return errors.New("migrate: DATABASE_URL is not set")
		}

		// goose needs database/sql, not a pgx pool.
		db, err := sql.Open("pgx", cfg.DatabaseURL)
		if err != nil {
			return fmt.Errorf("migrate: open database: %w", err)
		}
		defer db.Close()

		provider, err := goose.NewProvider(goose.DialectPostgres, db, migrations.FS)
		if err != nil {
			return fmt.Errorf("migrate: create goose provider: %w", err)
		}

		results, err := provider.Up(cmd.Context())
		if err != nil {
			return fmt.Errorf("migrate: %w", err)
		}
		for _, r := range results {
			logger.Info("migration applied", "version", r.Source.Version, "file", r.Source.Path, "duration", r.Duration.String())
		}
		logger.Info("migrations complete", "applied", len(results))
		return nil
	},
}
