package commands

import (
	"errors"

	"github.com/spf13/cobra"

	"github.com/heartmarshall/knowledge-base/internal/adapter/postgres"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending PostgreSQL migrations",
	Long: `Apply every pending schema migration to the database named by
DATABASE_DSN. Only the postgres storage driver has a schema; badger and
redis need no migration.`,
	Args: cobra.NoArgs,
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadConfig()
		if err != nil {
			return failure("Cannot load configuration", err)
		}
		if cfg.Database.DSN == "" {
			return failure("No database configured", errors.New("DATABASE_DSN is empty"))
		}

		step("applying migrations")
		if err := postgres.Migrate(cmd.Context(), cfg.Database.DSN, newLogger()); err != nil {
			return failure("Migration failed", err)
		}
		success("database schema is up to date")
		return nil
	},
}
