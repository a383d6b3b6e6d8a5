package server

import (
	"context"
	"net/http"

	"github.com/gorilla/websocket"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/admin"
	"github.com/farewellhq/farewell-quiz/internal/config"
	"github.com/farewellhq/farewell-quiz/internal/game"
	"github.com/farewellhq/farewell-quiz/internal/share"
)

// WSUpgrader handles WebSocket upgrades for the participant feed. The game
// URL is handed around via QR code at the event, so origins are left open.
var WSUpgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool {
		return true
	},
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
}

// Handlers collects the route handlers the server mounts.
type Handlers struct {
	Game   *game.Handler
	Admin  *admin.Handler
	Share  *share.Handler
	FeedWS http.HandlerFunc
	Count  http.HandlerFunc
}

// NewHTTPServer wires all routes for the API service.
func NewHTTPServer(cfg *config.App, logger zerolog.Logger, pool *pgxpool.Pool, redisClient *redis.Client, h Handlers) *http.Server {
	mux := http.NewServeMux()

	mux.HandleFunc("GET /healthz", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"status":"ok"}`))
	})

	mux.Handle("GET /metrics", promhttp.Handler())

	mux.HandleFunc("GET /v1/ping", func(w http.ResponseWriter, r *http.Request) {
		if err := pingDependencies(r.Context(), pool, redisClient); err != nil {
			logger.Error().Err(err).Msg("dependency ping failed")
			http.Error(w, "upstream error", http.StatusBadGateway)
			return
		}
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"pong":true}`))
	})

	// Question flow
	mux.HandleFunc("GET /v1/questions", h.Game.HandleQuestions)
	mux.HandleFunc("POST /v1/sessions", h.Game.HandleStart)
	mux.HandleFunc("GET /v1/sessions/{id}", h.Game.HandleGet)
	mux.HandleFunc("POST /v1/sessions/{id}/answers", h.Game.HandleSaveAnswer)
	mux.HandleFunc("POST /v1/sessions/{id}/next", h.Game.HandleNext)
	mux.HandleFunc("POST /v1/sessions/{id}/previous", h.Game.HandlePrevious)
	mux.HandleFunc("POST /v1/sessions/{id}/complete", h.Game.HandleComplete)
	mux.HandleFunc("POST /v1/sessions/{id}/reset", h.Game.HandleReset)
	mux.HandleFunc("DELETE /v1/sessions/{id}", h.Game.HandleEnd)

	// Live feed + public counter
	mux.HandleFunc("GET /ws/participants", h.FeedWS)
	mux.HandleFunc("GET /v1/participants/count", h.Count)

	// Admin dashboard
	mux.HandleFunc("POST /v1/admin/login", h.Admin.HandleLogin)
	mux.HandleFunc("GET /v1/admin/participants", h.Admin.RequireAuth(h.Admin.HandleParticipants))
	mux.HandleFunc("GET /v1/admin/stats", h.Admin.RequireAuth(h.Admin.HandleStats))
	mux.HandleFunc("GET /v1/admin/export.csv", h.Admin.RequireAuth(h.Admin.HandleExportCSV))
	mux.HandleFunc("GET /v1/admin/export.pdf", h.Admin.RequireAuth(h.Admin.HandleExportPDF))

	// Share
	mux.HandleFunc("GET /v1/share/qr.png", h.Share.HandleQR)

	return &http.Server{
		Addr:    cfg.HTTPAddr,
		Handler: mux,
	}
}

func pingDependencies(ctx context.Context, pool *pgxpool.Pool, redisClient *redis.Client) error {
	if err := pool.Ping(ctx); err != nil {
		return err
	}
	return redisClient.Ping(ctx).Err()
}
