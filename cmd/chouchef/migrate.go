package main

import (
	"context"

	"github.com/spf13/cobra"

	mongodb "github.com/chouchef/chouchef-api/internal/infrastructure/db/mongo"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create the MongoDB indexes",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()
		cfg, log, err := bootstrap(ctx)
		if err != nil {
			return err
		}

		client, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
		if err != nil {
			return err
		}
		defer func() { _ = client.Disconnect(context.Background()) }()

		if err := mongodb.EnsureIndexes(ctx, db); err != nil {
			return err
		}
		log.Info().Str("database", cfg.Mongo.Database).Msg("indexes ensured")
		return nil
	},
}
