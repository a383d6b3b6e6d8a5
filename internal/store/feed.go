package store

import (
	"context"

	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
)

const defaultFeedChannel = "participants:updates"

// RedisFeed signals participant-list changes over a Redis Pub/Sub channel.
type RedisFeed struct {
	client  *redis.Client
	channel string
	logger  zerolog.Logger
}

// NewRedisFeed creates a change feed on the given channel.
func NewRedisFeed(client *redis.Client, channel string, logger zerolog.Logger) *RedisFeed {
	if channel == "" {
		channel = defaultFeedChannel
	}
	return &RedisFeed{
		client:  client,
		channel: channel,
		logger:  logger.With().Str("component", "change_feed").Logger(),
	}
}

// Publish announces that the participant list changed. Subscribers re-fetch
// the full list, so the payload carries no data.
func (f *RedisFeed) Publish(ctx context.Context) error {
	return f.client.Publish(ctx, f.channel, "changed").Err()
}

// Listen subscribes to the channel and returns a tick channel. Consecutive
// changes may coalesce into one tick; consumers re-fetch the full list per
// tick, so no change is lost.
func (f *RedisFeed) Listen(ctx context.Context) (<-chan struct{}, error) {
	sub := f.client.Subscribe(ctx, f.channel)
	if _, err := sub.Receive(ctx); err != nil {
		_ = sub.Close()
		return nil, err
	}

	out := make(chan struct{}, 1)
	go func() {
		defer close(out)
		defer sub.Close()

		ch := sub.Channel()
		for {
			select {
			case <-ctx.Done():
				return
			case _, ok := <-ch:
				if !ok {
					return
				}
				select {
				case out <- struct{}{}:
				default:
				}
			}
		}
	}()
	return out, nil
}
