package main

import (
	"context"
	"log/slog"

	"marketplace/internal/infra/persistence/database"

	"github.com/spf13/cobra"
	"go.uber.org/fx"
	"gorm.io/gorm"
)

type migrateParams struct {
	fx.In
	fx.Lifecycle

	DB     *gorm.DB
	Logger *slog.Logger
}

func newMigrateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database schema",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runOnce(cmd.Context(), fx.Invoke(registerMigration))
		},
	}
}

// registerMigration appends its hook after the database one, so the
// connection has been pinged when it runs.
func registerMigration(params migrateParams) {
	params.Append(fx.Hook{
		OnStart: func(ctx context.Context) error {
			if err := database.Migrate(ctx, params.DB); err != nil {
				return err
			}
			params.Logger.Info("Schema migrated")

			return nil
		},
	})
}
