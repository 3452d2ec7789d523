package main

import (
	"context"
	"errors"
	"net/http"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"github.com/chouchef/chouchef-api/internal/api"
	"github.com/chouchef/chouchef-api/internal/api/handler"
	"github.com/chouchef/chouchef-api/internal/core/ports"
	"github.com/chouchef/chouchef-api/internal/core/service"
	mongodb "github.com/chouchef/chouchef-api/internal/infrastructure/db/mongo"
	redisdb "github.com/chouchef/chouchef-api/internal/infrastructure/db/redis"
	"github.com/chouchef/chouchef-api/internal/infrastructure/mail"
	"github.com/chouchef/chouchef-api/internal/infrastructure/ocr"
	"github.com/chouchef/chouchef-api/internal/infrastructure/storage"
	"github.com/chouchef/chouchef-api/internal/pkg/token"
)

const shutdownTimeout = 10 * time.Second

var serveCmd = &cobra.Command{
	Use:   "serve",
	Short: "Run the HTTP server",
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		return serve(ctx)
	},
}

func serve(ctx context.Context) error {
	cfg, log, err := bootstrap(ctx)
	if err != nil {
		return err
	}

	mongoClient, db, err := mongodb.Connect(ctx, mongodb.Config{URI: cfg.Mongo.URI, Database: cfg.Mongo.Database})
	if err != nil {
		return err
	}
	defer func() { _ = mongoClient.Disconnect(context.Background()) }()

	if err := mongodb.EnsureIndexes(ctx, db); err != nil {
		return err
	}

	rdb, err := redisdb.Connect(ctx, redisdb.Config{Addr: cfg.Redis.Addr, Password: cfg.Redis.Password, DB: cfg.Redis.DB})
	if err != nil {
		return err
	}
	defer func() { _ = rdb.Close() }()

	images, err := storage.NewImageStore(cfg.ImageDir)
	if err != nil {
		return err
	}

	var detector ports.TextDetector
	if cfg.Gemini.APIKey != "" {
		gemini, err := ocr.NewGeminiDetector(ctx, cfg.Gemini.APIKey, cfg.Gemini.Model)
		if err != nil {
			return err
		}
		defer func() { _ = gemini.Close() }()
		detector = gemini
	} else {
		log.Warn().Msg("GEMINI_API_KEY not set, text detection disabled")
	}

	// --- Repositories ---
	users := mongodb.NewUserRepository(db)
	foods := mongodb.NewFoodRepository(db)
	shops := mongodb.NewShopRepository(db)

	// --- Auth ---
	tokens := token.NewManager(cfg.JWTSecret, cfg.TokenTTL)
	revocations := redisdb.NewRevocationStore(rdb, cfg.TokenTTL)

	// --- Services ---
	mailer := mail.NewSMTPMailer(mail.Config{
		Host:     cfg.SMTP.Host,
		Port:     cfg.SMTP.Port,
		Username: cfg.SMTP.Username,
		Password: cfg.SMTP.Password,
	})

	router := api.NewRouter(api.Deps{
		Auth:        service.NewAuthService(users, tokens, revocations, log),
		Users:       service.NewUserService(users, shops, revocations, log),
		Foods:       service.NewFoodService(foods, log),
		Shops:       service.NewShopService(shops, foods, users, log),
		Contact:     service.NewContactService(mailer, cfg.SMTP.Sender, cfg.SMTP.Inbox, log),
		Detector:    detector,
		Images:      images,
		Verifier:    tokens,
		Revocations: revocations,
		Checks: map[string]handler.Check{
			"mongodb": handler.MongoCheck(db),
			"redis":   handler.RedisCheck(rdb),
		},
		MaxUploadBytes: cfg.MaxUploadBytes,
		Log:            log,
	})

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("port", cfg.Port).Str("env", cfg.Env).Msg("server starting")
		if err := router.Start(":" + cfg.Port); err != nil && !errors.Is(err, http.ErrServerClosed) {
			errCh <- err
		}
		close(errCh)
	}()

	select {
	case err := <-errCh:
		return err
	case <-ctx.Done():
	}

	log.Info().Msg("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
	defer cancel()
	if err := router.Shutdown(shutdownCtx); err != nil {
		log.Error().Err(err).Msg("graceful shutdown failed")
		return err
	}
	return nil
}
