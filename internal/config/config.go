package config

import (
	"context"
	"fmt"
	"time"

	"github.com/caarlos0/env/v10"
)

// App holds core runtime configuration.
type App struct {
	Name                    string        `env:"APP_NAME" envDefault:"farewell-quiz"`
	Env                     string        `env:"APP_ENV" envDefault:"development"`
	HTTPAddr                string        `env:"HTTP_ADDR" envDefault:"0.0.0.0:8080"`
	PublicURL               string        `env:"PUBLIC_URL" envDefault:"http://localhost:8080"`
	GracefulShutdownTimeout time.Duration `env:"GRACEFUL_SHUTDOWN_SECONDS" envDefault:"20s"`

	Event    Event
	Postgres Postgres
	Redis    Redis
	Fallback Fallback
	Session  Session
	Admin    Admin
}

// Event describes the occasion the quiz is held for.
type Event struct {
	// HonoreeName is substituted into question prompts.
	HonoreeName string `env:"EVENT_HONOREE_NAME" envDefault:"Our Guest of Honor"`
	Title       string `env:"EVENT_TITLE" envDefault:"Farewell Celebration"`
}

// Postgres captures connection info for the primary participant store.
type Postgres struct {
	Host     string `env:"PG_HOST,notEmpty"`
	Port     int    `env:"PG_PORT" envDefault:"5432"`
	User     string `env:"PG_USER,notEmpty"`
	Password string `env:"PG_PASSWORD,notEmpty"`
	Database string `env:"PG_DATABASE,notEmpty"`
	SSLMode  string `env:"PG_SSL_MODE" envDefault:"disable"`
}

// Redis holds session-store and change-feed configuration.
type Redis struct {
	Addr     string `env:"REDIS_ADDR,notEmpty"`
	DB       int    `env:"REDIS_DB" envDefault:"0"`
	PoolSize int    `env:"REDIS_POOL_SIZE" envDefault:"20"`
}

// Fallback locates the device-local store used when the primary tier is
// unreachable.
type Fallback struct {
	Path string `env:"FALLBACK_PATH" envDefault:"data/participants.json"`
}

// Session governs play-through session persistence.
type Session struct {
	TTL         time.Duration `env:"SESSION_TTL" envDefault:"2h"`
	FeedChannel string        `env:"FEED_CHANNEL" envDefault:"participants:updates"`
}

// Admin configures dashboard access. PasscodeHash (bcrypt) wins over the
// plaintext Passcode when both are set.
type Admin struct {
	Passcode     string        `env:"ADMIN_PASSCODE" envDefault:""`
	PasscodeHash string        `env:"ADMIN_PASSCODE_HASH" envDefault:""`
	JWTSecret    string        `env:"ADMIN_JWT_SECRET,notEmpty"`
	TokenTTL     time.Duration `env:"ADMIN_TOKEN_TTL" envDefault:"2h"`
}

// Load parses environment variables into App config.
func Load(ctx context.Context) (*App, error) {
	cfg := &App{}
	if err := env.ParseWithOptions(cfg, env.Options{RequiredIfNoDef: true}); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}
	return cfg, nil
}
