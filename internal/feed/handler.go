package feed

import (
	"encoding/json"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/server"
	"github.com/farewellhq/farewell-quiz/internal/store"
	ws "github.com/farewellhq/farewell-quiz/pkg/http/ws"
)

// Handler serves the live feed endpoints.
type Handler struct {
	hub     *ws.Hub
	gateway *store.Gateway
	logger  zerolog.Logger
}

// NewHandler creates the feed HTTP handler.
func NewHandler(hub *ws.Hub, gateway *store.Gateway, logger zerolog.Logger) *Handler {
	return &Handler{
		hub:     hub,
		gateway: gateway,
		logger:  logger.With().Str("component", "feed_http").Logger(),
	}
}

// HandleWebSocket upgrades the connection and registers it with the hub. The
// client receives one snapshot immediately and one per participant-list
// change until it hangs up.
// Route: GET /ws/participants
func (h *Handler) HandleWebSocket(w http.ResponseWriter, r *http.Request) {
	conn, err := server.WSUpgrader.Upgrade(w, r, nil)
	if err != nil {
		h.logger.Warn().Err(err).Msg("websocket upgrade failed")
		return
	}

	id := uuid.New()
	c := ws.NewConnection(conn, h.logger)
	h.hub.Register(id, c)
	h.logger.Debug().Int("viewers", h.hub.Len()).Msg("feed consumer connected")
	go c.WritePump()

	if list, err := h.gateway.FetchAll(r.Context()); err == nil {
		if sendErr := c.Send(snapshotMessage(list, h.logger)); sendErr != nil {
			h.logger.Warn().Err(sendErr).Msg("initial snapshot send failed")
		}
	} else {
		h.logger.Warn().Err(err).Msg("initial snapshot fetch failed")
	}

	// Block until the peer disconnects; incoming messages are ignored.
	c.ReadPump(func(ws.Message) error { return nil })
	h.hub.Unregister(id)
	h.logger.Debug().Int("viewers", h.hub.Len()).Msg("feed consumer disconnected")
}

// HandleCount responds with the current participant count for the home-page
// counter.
// Route: GET /v1/participants/count
func (h *Handler) HandleCount(w http.ResponseWriter, r *http.Request) {
	list, err := h.gateway.FetchAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("participant count fetch failed")
		http.Error(w, "count unavailable", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(map[string]int{"count": len(list)})
}
