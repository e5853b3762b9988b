package cmd

import (
	"fmt"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/quatton/authdb/pkg/authdb"
	"github.com/quatton/authdb/pkg/db"
	"github.com/spf13/cobra"
	"github.com/uptrace/bun"
)

var sqliteDSN string

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Create the tables directly, without migration bookkeeping",
	Long: `init creates the users, oauth_accounts and access_tokens tables with
their indexes and cascade foreign keys. With --sqlite it targets a sqlite
file; otherwise it connects to postgres via the DB_* environment variables.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()

		var database *bun.DB
		if sqliteDSN != "" {
			var err error
			database, err = db.NewSQLite(sqliteDSN)
			if err != nil {
				return err
			}
		} else {
			if err := godotenv.Load(); err == nil {
				log.Info("loaded .env file")
			}

			var cfg db.Config
			if err := envconfig.Process("DB", &cfg); err != nil {
				return fmt.Errorf("failed to process env vars: %w", err)
			}

			var err error
			database, err = db.New(cmd.Context(), cfg)
			if err != nil {
				return fmt.Errorf("failed to connect to database: %w", err)
			}
		}
		defer database.Close()

		if err := authdb.CreateTables[uuid.UUID](cmd.Context(), database); err != nil {
			return err
		}
		log.Info("tables created")
		return nil
	},
}

func init() {
	initCmd.Flags().StringVar(&sqliteDSN, "sqlite", "", "sqlite DSN to initialize instead of postgres")
	rootCmd.AddCommand(initCmd)
}
