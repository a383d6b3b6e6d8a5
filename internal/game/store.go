package game

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const defaultSessionTTL = 2 * time.Hour

// Session binds one play-through's state to a browsing session.
type Session struct {
	ID        uuid.UUID `json:"id"`
	State     State     `json:"state"`
	CreatedAt time.Time `json:"created_at"`
}

// SessionStore persists session state between requests. Sessions are owned by
// a single logical writer (the browsing session), so implementations need no
// cross-writer locking.
type SessionStore interface {
	// Save writes the session, refreshing its expiry.
	Save(ctx context.Context, session *Session) error
	// Get returns the session or (nil, nil) when it does not exist or expired.
	Get(ctx context.Context, id uuid.UUID) (*Session, error)
	// Delete removes the session.
	Delete(ctx context.Context, id uuid.UUID) error
}

// RedisSessionStore keeps session state as JSON values with a TTL.
type RedisSessionStore struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedisSessionStore builds a session store. A non-positive ttl selects the
// default of two hours.
func NewRedisSessionStore(client *redis.Client, ttl time.Duration) *RedisSessionStore {
	if ttl <= 0 {
		ttl = defaultSessionTTL
	}
	return &RedisSessionStore{client: client, ttl: ttl}
}

func (s *RedisSessionStore) key(id uuid.UUID) string {
	return fmt.Sprintf("game:session:%s", id.String())
}

func (s *RedisSessionStore) Save(ctx context.Context, session *Session) error {
	data, err := json.Marshal(session)
	if err != nil {
		return fmt.Errorf("marshal session: %w", err)
	}
	return s.client.Set(ctx, s.key(session.ID), data, s.ttl).Err()
}

func (s *RedisSessionStore) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	data, err := s.client.Get(ctx, s.key(id)).Bytes()
	if err == redis.Nil {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("get session: %w", err)
	}
	var session Session
	if err := json.Unmarshal(data, &session); err != nil {
		return nil, fmt.Errorf("unmarshal session: %w", err)
	}
	return &session, nil
}

func (s *RedisSessionStore) Delete(ctx context.Context, id uuid.UUID) error {
	return s.client.Del(ctx, s.key(id)).Err()
}
