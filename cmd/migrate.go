package main

import (
	"context"
	"database/sql"
	"fmt"
	root "linkguard"
	"linkguard/internal/config"
	"linkguard/pkg/logger"

	"github.com/pressly/goose/v3"
	"github.com/riverqueue/river/riverdriver/riverdatabasesql"
	"github.com/riverqueue/river/rivermigrate"
	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// migrateCommand constructs the 'migrate' subcommand. It applies the embedded
// goose migrations (the checks table) and then the River queue schema the
// check worker needs.
func migrateCommand(cfg *config.Config) *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Migrates the checks and job queue schema to the latest version",
		Run: func(cmd *cobra.Command, args []string) {
			ctx := context.Background()

			strg, closeStrg := getPostgres(ctx, cfg)
			defer closeStrg()

			db := strg.DB.(*sql.DB)

			version, err := migrateChecks(ctx, db)
			if err != nil {
				logger.Fatal(ctx, "could not migrate checks schema", zap.Error(err))
			}
			logger.Info(ctx, "checks schema migrated", zap.Int64("version", version))

			from, to, err := migrateQueue(ctx, db)
			if err != nil {
				logger.Fatal(ctx, "could not migrate river queue schema", zap.Error(err))
			}
			logger.Info(ctx, "river queue schema migrated", zap.Int("from", from), zap.Int("to", to))
		},
	}

	return cmd
}

// migrateChecks runs the embedded goose migrations and returns the resulting
// schema version.
func migrateChecks(ctx context.Context, db *sql.DB) (int64, error) {
	goose.SetBaseFS(root.Migrations)

	if err := goose.SetDialect("postgres"); err != nil {
		return 0, fmt.Errorf("could not set goose dialect: %w", err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return 0, fmt.Errorf("could not apply migrations: %w", err)
	}

	version, err := goose.GetDBVersionContext(ctx, db)
	if err != nil {
		return 0, fmt.Errorf("could not read schema version: %w", err)
	}

	return version, nil
}

// migrateQueue brings the River tables up to the latest version bundled with
// the driver. It returns the versions before and after; they are equal when
// nothing had to be applied.
func migrateQueue(ctx context.Context, db *sql.DB) (int, int, error) {
	migrator, err := rivermigrate.New(riverdatabasesql.New(db), nil)
	if err != nil {
		return 0, 0, fmt.Errorf("could not create river migrator: %w", err)
	}

	all := migrator.AllVersions()
	latest := all[len(all)-1].Version

	current := 0
	existing, err := migrator.ExistingVersions(ctx)
	if err != nil {
		return 0, 0, fmt.Errorf("could not read existing river migrations: %w", err)
	}
	if len(existing) > 0 {
		current = existing[len(existing)-1].Version
	}
	if current >= latest {
		return current, current, nil
	}

	_, err = migrator.Migrate(ctx, rivermigrate.DirectionUp, &rivermigrate.MigrateOpts{
		TargetVersion: latest,
	})
	if err != nil {
		return current, current, fmt.Errorf("could not apply river migrations: %w", err)
	}

	return current, latest, nil
}
