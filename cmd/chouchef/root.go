package main

import (
	"context"
	"fmt"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/chouchef/chouchef-api/internal/infrastructure/config"
	"github.com/chouchef/chouchef-api/pkg/logger"
)

const serviceName = "chouchef-api"

var envFile string

var rootCmd = &cobra.Command{
	Use:   "chouchef",
	Short: "Chouchef shopping-list API",
	Long: `Chouchef serves shopping lists built from a shared food catalog,
with user accounts, text detection on receipts and image storage.

Configuration comes from the environment, optionally seeded from a .env file.

Examples:
  # Run the HTTP server
  chouchef serve

  # Create the MongoDB indexes
  chouchef migrate`,
	SilenceUsage: true,
}

func init() {
	rootCmd.PersistentFlags().StringVar(&envFile, "env-file", ".env", "Optional dotenv file loaded before reading the environment")

	rootCmd.AddCommand(serveCmd)
	rootCmd.AddCommand(migrateCmd)
}

// bootstrap loads configuration and initialises the process logger.
func bootstrap(ctx context.Context) (*config.Config, zerolog.Logger, error) {
	// A missing file is fine; real environments set variables directly.
	_ = godotenv.Load(envFile)

	cfg, err := config.Load(ctx)
	if err != nil {
		return nil, zerolog.Nop(), fmt.Errorf("load config: %w", err)
	}

	log := logger.Init(logger.Options{
		Level:   cfg.LogLevel,
		Pretty:  cfg.IsDevelopment(),
		Service: serviceName,
	})
	return cfg, log, nil
}
