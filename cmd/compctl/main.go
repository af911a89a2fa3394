package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	_ "github.com/joho/godotenv/autoload" // Autoload .env file.
	"github.com/spf13/cobra"

	"github.com/icpcsp/compreg/cmd/app"
)

var configPath string

var rootCmd = &cobra.Command{
	Use:   "compctl",
	Short: "Operate the competition registration backend",
	Long: `compctl runs and administers the competition registration API.

Available subcommands:
  serve             - Run the HTTP API
  migrate           - Create or update the database schema
  seed-universities - Insert universities that do not exist yet
  create-admin      - Create a system administrator account`,
	SilenceUsage: true,
}

// serveCmd runs the API until interrupted
var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP API",
	RunE: func(cmd *cobra.Command, args []string) error {
		return app.Run(cmd.Context(), configPath)
	},
}

func main() {
	rootCmd.PersistentFlags().StringVarP(&configPath, "config", "c", app.DefaultConfigPath, "Path to the YAML config file")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
	rootCmd.AddCommand(seedUniversitiesCmd)
	rootCmd.AddCommand(createAdminCmd)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := rootCmd.ExecuteContext(ctx); err != nil {
		stop()
		os.Exit(1)
	}
}
