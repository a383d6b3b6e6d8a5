package app

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/admin"
	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/config"
	"github.com/farewellhq/farewell-quiz/internal/db/repository"
	"github.com/farewellhq/farewell-quiz/internal/feed"
	"github.com/farewellhq/farewell-quiz/internal/game"
	"github.com/farewellhq/farewell-quiz/internal/logging"
	"github.com/farewellhq/farewell-quiz/internal/server"
	"github.com/farewellhq/farewell-quiz/internal/share"
	"github.com/farewellhq/farewell-quiz/internal/store"
	ws "github.com/farewellhq/farewell-quiz/pkg/http/ws"
)

// Application aggregates shared infrastructure (DB, cache, HTTP server).
type Application struct {
	cfg    *config.App
	logger zerolog.Logger

	pool  *pgxpool.Pool
	redis *redis.Client
	http  *http.Server

	broadcaster *feed.Broadcaster
	bgCancels   []context.CancelFunc
}

// New bootstraps config, logger, Postgres, Redis and the HTTP server.
func New(ctx context.Context, cfg *config.App) (*Application, error) {
	logger := logging.New(cfg.Name, cfg.Env)
	logger.Info().Msg("starting application bootstrap")

	cat, err := catalog.Load(cfg.Event.HonoreeName)
	if err != nil {
		return nil, fmt.Errorf("load question catalog: %w", err)
	}

	connString := fmt.Sprintf("host=%s port=%d user=%s password=%s dbname=%s sslmode=%s pool_max_conns=10",
		cfg.Postgres.Host, cfg.Postgres.Port, cfg.Postgres.User, cfg.Postgres.Password, cfg.Postgres.Database, cfg.Postgres.SSLMode)

	pool, err := pgxpool.New(ctx, connString)
	if err != nil {
		return nil, fmt.Errorf("connect postgres: %w", err)
	}

	redisClient := redis.NewClient(&redis.Options{
		Addr:     cfg.Redis.Addr,
		DB:       cfg.Redis.DB,
		PoolSize: cfg.Redis.PoolSize,
	})

	// Persistence gateway: Postgres primary, file fallback, Redis change feed.
	participantRepo := repository.NewParticipantRepository(pool)
	fallbackStore := store.NewFileStore(cfg.Fallback.Path)
	changeFeed := store.NewRedisFeed(redisClient, cfg.Session.FeedChannel, logger)
	gatewayMetrics := store.NewMetrics(prometheus.DefaultRegisterer)
	gateway := store.NewGateway(participantRepo, fallbackStore, changeFeed, logger, gatewayMetrics)

	// Game sessions
	sessionStore := game.NewRedisSessionStore(redisClient, cfg.Session.TTL)
	gameSvc := game.NewService(sessionStore, cat, gateway, logger)
	gameHandler := game.NewHandler(gameSvc, cat, logger)

	// Admin surface
	adminSvc, err := admin.NewService(admin.Options{
		Passcode:     cfg.Admin.Passcode,
		PasscodeHash: cfg.Admin.PasscodeHash,
		JWTSecret:    []byte(cfg.Admin.JWTSecret),
		TokenTTL:     cfg.Admin.TokenTTL,
		Issuer:       cfg.Name,
	}, logger)
	if err != nil {
		return nil, fmt.Errorf("configure admin service: %w", err)
	}
	exportTitle := fmt.Sprintf("%s - %s", cfg.Event.Title, cfg.Event.HonoreeName)
	adminHandler := admin.NewHandler(adminSvc, gateway, cat, exportTitle, logger)

	// Live participant feed
	hub := ws.NewHub(logger)
	broadcaster := feed.NewBroadcaster(gateway, hub, logger)
	feedHandler := feed.NewHandler(hub, gateway, logger)

	shareHandler := share.NewHandler(cfg.PublicURL, logger)

	apiServer := server.NewHTTPServer(cfg, logger, pool, redisClient, server.Handlers{
		Game:   gameHandler,
		Admin:  adminHandler,
		Share:  shareHandler,
		FeedWS: feedHandler.HandleWebSocket,
		Count:  feedHandler.HandleCount,
	})

	return &Application{
		cfg:         cfg,
		logger:      logger,
		pool:        pool,
		redis:       redisClient,
		http:        apiServer,
		broadcaster: broadcaster,
		bgCancels:   make([]context.CancelFunc, 0, 1),
	}, nil
}

// Run starts the HTTP server and waits for termination signals.
func (a *Application) Run(ctx context.Context) error {
	errCh := make(chan error, 1)

	a.startBackgroundWorkers(ctx)

	go func() {
		a.logger.Info().Str("addr", a.cfg.HTTPAddr).Msg("http server listening")
		if err := a.http.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)

	select {
	case sig := <-sigCh:
		a.logger.Info().Str("signal", sig.String()).Msg("shutdown signal received")
	case err := <-errCh:
		return fmt.Errorf("http server error: %w", err)
	case <-ctx.Done():
		a.logger.Warn().Msg("context canceled")
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), a.cfg.GracefulShutdownTimeout)
	defer cancel()

	if err := a.http.Shutdown(shutdownCtx); err != nil {
		a.logger.Error().Err(err).Msg("http shutdown error")
	}

	for _, cancel := range a.bgCancels {
		cancel()
	}

	a.pool.Close()
	if err := a.redis.Close(); err != nil {
		a.logger.Error().Err(err).Msg("redis shutdown error")
	}

	a.logger.Info().Msg("shutdown complete")
	return nil
}

func (a *Application) startBackgroundWorkers(ctx context.Context) {
	if a.broadcaster != nil {
		bgCtx, cancel := context.WithCancel(ctx)
		a.bgCancels = append(a.bgCancels, cancel)
		go func() {
			if err := a.broadcaster.Run(bgCtx); err != nil && err != context.Canceled {
				a.logger.Warn().Err(err).Msg("feed broadcaster stopped")
			}
		}()
	}
}
