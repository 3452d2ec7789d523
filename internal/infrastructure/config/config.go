package config

import (
	"context"
	"fmt"
	"time"

	"github.com/sethvargo/go-envconfig"
)

type Config struct {
	Port      string        `env:"PORT,       default=8080"`
	Env       string        `env:"ENV,        default=development"`
	JWTSecret string        `env:"JWT_SECRET, required"`
	TokenTTL  time.Duration `env:"TOKEN_TTL,  default=4320h"`
	LogLevel  string        `env:"LOG_LEVEL,  default=info"`

	MaxUploadBytes int64  `env:"MAX_UPLOAD_BYTES, default=10485760"`
	ImageDir       string `env:"IMAGE_DIR,        default=./images"`

	Mongo  MongoConfig
	Redis  RedisConfig
	SMTP   SMTPConfig
	Gemini GeminiConfig
}

type MongoConfig struct {
	URI      string `env:"MONGO_URI, default=mongodb://localhost:27017"`
	Database string `env:"MONGO_DB,  default=chouchef"`
}

type RedisConfig struct {
	Addr     string `env:"REDIS_ADDR,     default=localhost:6379"`
	Password string `env:"REDIS_PASSWORD"`
	DB       int    `env:"REDIS_DB,       default=0"`
}

type SMTPConfig struct {
	Host     string `env:"SMTP_HOST,     default=smtp.gmail.com"`
	Port     int    `env:"SMTP_PORT,     default=587"`
	Username string `env:"SMTP_USER"`
	Password string `env:"SMTP_PASSWORD"`
	// Sender is the From address; it defaults to Username when empty.
	Sender string `env:"MAIL_SENDER"`
	Inbox  string `env:"MAIL_INBOX"`
}

type GeminiConfig struct {
	APIKey string `env:"GEMINI_API_KEY"`
	Model  string `env:"GEMINI_MODEL, default=gemini-1.5-flash"`
}

// Load reads configuration from environment variables using go-envconfig.
func Load(ctx context.Context) (*Config, error) {
	return load(ctx, envconfig.OsLookuper())
}

func load(ctx context.Context, lookuper envconfig.Lookuper) (*Config, error) {
	var cfg Config
	if err := envconfig.ProcessWith(ctx, &envconfig.Config{Target: &cfg, Lookuper: lookuper}); err != nil {
		return nil, fmt.Errorf("config: %w", err)
	}

	if cfg.SMTP.Sender == "" {
		cfg.SMTP.Sender = cfg.SMTP.Username
	}
	if cfg.SMTP.Inbox == "" {
		cfg.SMTP.Inbox = cfg.SMTP.Sender
	}
	if cfg.TokenTTL <= 0 {
		return nil, fmt.Errorf("config: TOKEN_TTL must be positive, got %s", cfg.TokenTTL)
	}
	if cfg.MaxUploadBytes <= 0 {
		return nil, fmt.Errorf("config: MAX_UPLOAD_BYTES must be positive, got %d", cfg.MaxUploadBytes)
	}
	return &cfg, nil
}

func (c *Config) IsDevelopment() bool {
	return c.Env == "development"
}
