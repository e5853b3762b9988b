package cmd

import (
	"os"

	"github.com/quatton/authdb/pkg/logx"
	"github.com/spf13/cobra"
)

var (
	verbose bool
	rootCmd = &cobra.Command{
		Use:   "authdb",
		Short: "Operational CLI for the authdb storage schema (migrate, init)",
		Long: `authdb is a small command-line tool for managing the database schema
behind the authdb storage adapters. Use migrate to apply the bun migrations
to a postgres database configured via DB_* environment variables (a .env
file is honored), or init to create the tables directly, which also works
against sqlite.`,
	}
)

func init() {
	rootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "enable debug logging")
}

func logger() *logx.Logger {
	if verbose {
		return logx.NewVerbose()
	}
	return logx.NewDefault()
}

func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
