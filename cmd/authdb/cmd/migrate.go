package cmd

import (
	"fmt"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/quatton/authdb/pkg/db"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply the bun migrations to the configured postgres database",
	RunE: func(cmd *cobra.Command, args []string) error {
		log := logger()

		if err := godotenv.Load(); err != nil {
			log.Info("no .env file found")
		} else {
			log.Info("loaded .env file")
		}

		var cfg db.Config
		if err := envconfig.Process("DB", &cfg); err != nil {
			return fmt.Errorf("failed to process env vars: %w", err)
		}

		database, err := db.New(cmd.Context(), cfg)
		if err != nil {
			return fmt.Errorf("failed to connect to database: %w", err)
		}
		defer database.Close()

		log.Info("running migrations", "host", cfg.Host, "database", cfg.Database)
		if err := db.Migrate(cmd.Context(), database); err != nil {
			return err
		}
		log.Info("migrations completed")
		return nil
	},
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
