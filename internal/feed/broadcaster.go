// Package feed pushes live participant-list snapshots to WebSocket
// consumers: the home-page counter and the admin dashboard.
package feed

import (
	"context"
	"encoding/json"

	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/participant"
	"github.com/farewellhq/farewell-quiz/internal/store"
	ws "github.com/farewellhq/farewell-quiz/pkg/http/ws"
)

// Broadcaster owns the single gateway subscription and fans each snapshot
// out to every hub connection.
type Broadcaster struct {
	gateway *store.Gateway
	hub     *ws.Hub
	logger  zerolog.Logger
}

// NewBroadcaster creates the feed broadcaster.
func NewBroadcaster(gateway *store.Gateway, hub *ws.Hub, logger zerolog.Logger) *Broadcaster {
	return &Broadcaster{
		gateway: gateway,
		hub:     hub,
		logger:  logger.With().Str("component", "feed_broadcaster").Logger(),
	}
}

// Run subscribes to the gateway feed and blocks until ctx is cancelled. The
// subscription is released on return.
func (b *Broadcaster) Run(ctx context.Context) error {
	unsubscribe := b.gateway.Subscribe(ctx, func(list []participant.Participant) {
		b.hub.Broadcast(snapshotMessage(list, b.logger))
	})
	defer unsubscribe()

	<-ctx.Done()
	return ctx.Err()
}

func snapshotMessage(list []participant.Participant, logger zerolog.Logger) ws.Message {
	payload, err := json.Marshal(ws.ParticipantsPayload{
		Participants: list,
		Count:        len(list),
	})
	if err != nil {
		logger.Warn().Err(err).Msg("failed to marshal participants payload")
		return ws.Message{Type: ws.TypeError}
	}
	return ws.Message{Type: ws.TypeParticipants, Payload: payload}
}
