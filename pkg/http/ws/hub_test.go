package ws

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/websocket"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var testUpgrader = websocket.Upgrader{
	CheckOrigin: func(*http.Request) bool { return true },
}

// dialTestConnection spins up a server that wraps the upgraded socket in a
// Connection with both pumps running, and returns it with the client side.
func dialTestConnection(t *testing.T, pingEvery time.Duration) (*Connection, *websocket.Conn) {
	t.Helper()

	serverConns := make(chan *Connection, 1)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		raw, err := testUpgrader.Upgrade(w, r, nil)
		if err != nil {
			return
		}
		c := NewConnection(raw, zerolog.Nop())
		if pingEvery > 0 {
			c.pingEvery = pingEvery
		}
		serverConns <- c
		go c.WritePump()
		c.ReadPump(func(Message) error { return nil })
	}))
	t.Cleanup(srv.Close)

	client, _, err := websocket.DefaultDialer.Dial("ws"+strings.TrimPrefix(srv.URL, "http"), nil)
	require.NoError(t, err)
	t.Cleanup(func() { _ = client.Close() })

	select {
	case c := <-serverConns:
		return c, client
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for server connection")
		return nil, nil
	}
}

func TestIdleConnectionStaysAliveViaPings(t *testing.T) {
	server, client := dialTestConnection(t, 20*time.Millisecond)

	pings := make(chan struct{}, 16)
	client.SetPingHandler(func(string) error {
		select {
		case pings <- struct{}{}:
		default:
		}
		return client.WriteControl(websocket.PongMessage, nil, time.Now().Add(time.Second))
	})

	received := make(chan Message, 1)
	go func() {
		for {
			var msg Message
			if err := client.ReadJSON(&msg); err != nil {
				return
			}
			received <- msg
		}
	}()

	// The feed is push-only; an idle client sends nothing and must be kept
	// alive by server pings.
	for i := 0; i < 3; i++ {
		select {
		case <-pings:
		case <-time.After(2 * time.Second):
			t.Fatal("no ping received on idle connection")
		}
	}

	require.NoError(t, server.Send(Message{Type: TypeParticipants}))
	select {
	case msg := <-received:
		assert.Equal(t, TypeParticipants, msg.Type)
	case <-time.After(2 * time.Second):
		t.Fatal("message not delivered after idle period")
	}
}

func TestHubTracksConnections(t *testing.T) {
	hub := NewHub(zerolog.Nop())
	assert.Equal(t, 0, hub.Len())

	server, _ := dialTestConnection(t, 0)
	id := uuid.New()
	hub.Register(id, server)
	assert.Equal(t, 1, hub.Len())

	hub.Unregister(id)
	assert.Equal(t, 0, hub.Len())

	assert.Error(t, server.Send(Message{Type: TypeParticipants}), "send after close is rejected")
}

func TestSendQueueFull(t *testing.T) {
	// No WritePump draining the queue.
	c := &Connection{sendCh: make(chan Message, 1), pingEvery: time.Hour, logger: zerolog.Nop()}
	require.NoError(t, c.Send(Message{Type: TypeParticipants}))
	assert.ErrorIs(t, c.Send(Message{Type: TypeParticipants}), ErrSendQueueFull)
}
