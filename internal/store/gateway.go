// Package store implements the persistence gateway: durable participant
// records over a primary document store with a device-local fallback tier,
// plus a live change feed over the same two tiers.
package store

import (
	"context"
	"sync"

	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/participant"
)

// Storage tier labels used in logs and metrics so operators can detect
// silent degradation. API callers cannot distinguish the tiers.
const (
	TierPrimary  = "primary"
	TierFallback = "fallback"
)

// Primary is the networked document store of record.
type Primary interface {
	Insert(ctx context.Context, p participant.Participant) error
	// List returns all participants ordered by completedAt descending.
	List(ctx context.Context) ([]participant.Participant, error)
}

// Fallback is the local durable store used when the primary tier is
// unreachable. Its list order is insertion order.
type Fallback interface {
	Append(ctx context.Context, p participant.Participant) error
	List(ctx context.Context) ([]participant.Participant, error)
}

// ChangeFeed signals that the primary participant list changed.
type ChangeFeed interface {
	Publish(ctx context.Context) error
	// Listen returns a channel that receives a tick per change. The channel
	// is closed when the feed dies or ctx is cancelled.
	Listen(ctx context.Context) (<-chan struct{}, error)
}

// Gateway durably records participants and provides read/subscribe access,
// tolerating unavailability of the primary store. There are no retries and no
// reconciliation between tiers; a failure downgrades the single call to the
// fallback tier, and a fresh call re-attempts the primary.
type Gateway struct {
	primary  Primary
	fallback Fallback
	feed     ChangeFeed
	logger   zerolog.Logger
	metrics  *Metrics
}

// NewGateway wires the two storage tiers and the change feed.
func NewGateway(primary Primary, fallback Fallback, feed ChangeFeed, logger zerolog.Logger, metrics *Metrics) *Gateway {
	return &Gateway{
		primary:  primary,
		fallback: fallback,
		feed:     feed,
		logger:   logger.With().Str("component", "gateway").Logger(),
		metrics:  metrics,
	}
}

// Submit writes the participant to the primary tier; on any primary failure
// it appends the same record to the fallback tier and returns normally. Only
// a fallback write error is surfaced to the caller.
func (g *Gateway) Submit(ctx context.Context, p participant.Participant) error {
	if err := g.primary.Insert(ctx, p); err != nil {
		g.logger.Warn().Err(err).Str("tier", TierFallback).Str("participant", p.Name).
			Msg("primary insert failed, writing to fallback")
		if err := g.fallback.Append(ctx, p); err != nil {
			return err
		}
		g.metrics.SubmissionServed(TierFallback)
		return nil
	}

	g.metrics.SubmissionServed(TierPrimary)
	if g.feed != nil {
		if err := g.feed.Publish(ctx); err != nil {
			g.logger.Warn().Err(err).Msg("change feed publish failed")
		}
	}
	return nil
}

// FetchAll returns the primary list ordered by completedAt descending, or
// the fallback list in insertion order when the primary read fails. The two
// tiers are never merged.
func (g *Gateway) FetchAll(ctx context.Context) ([]participant.Participant, error) {
	list, err := g.primary.List(ctx)
	if err != nil {
		g.logger.Warn().Err(err).Str("tier", TierFallback).Msg("primary list failed, serving fallback")
		g.metrics.FetchServed(TierFallback)
		return g.fallback.List(ctx)
	}
	g.metrics.FetchServed(TierPrimary)
	return list, nil
}

// Subscribe establishes a live feed of the full participant list. The
// callback receives one snapshot on establishment and one per change. If
// establishing or maintaining the feed fails, the callback is invoked once
// with the fallback list and the feed is not retried. Callbacks for one
// subscription are serialized. The returned unsubscribe function is safe to
// call multiple times and stops all future callbacks.
func (g *Gateway) Subscribe(ctx context.Context, callback func([]participant.Participant)) func() {
	subCtx, cancel := context.WithCancel(ctx)
	sub := &subscription{cancel: cancel, callback: callback}

	ch, err := g.feed.Listen(subCtx)
	if err != nil {
		g.logger.Warn().Err(err).Str("tier", TierFallback).Msg("change feed unavailable, serving fallback snapshot")
		g.deliverFallback(subCtx, sub)
		sub.stop()
		return sub.stop
	}

	go g.pump(subCtx, sub, ch)
	return sub.stop
}

func (g *Gateway) pump(ctx context.Context, sub *subscription, ch <-chan struct{}) {
	defer sub.stop()

	if !g.deliverSnapshot(ctx, sub) {
		return
	}
	for {
		select {
		case <-ctx.Done():
			return
		case _, ok := <-ch:
			if !ok {
				if ctx.Err() == nil {
					g.logger.Warn().Str("tier", TierFallback).Msg("change feed closed, serving fallback snapshot")
					g.deliverFallback(ctx, sub)
				}
				return
			}
			if !g.deliverSnapshot(ctx, sub) {
				return
			}
		}
	}
}

// deliverSnapshot pushes the current primary list to the subscriber. On a
// primary failure the subscription is downgraded: the fallback list is
// delivered once and the feed ends.
func (g *Gateway) deliverSnapshot(ctx context.Context, sub *subscription) bool {
	list, err := g.primary.List(ctx)
	if err != nil {
		if ctx.Err() == nil {
			g.logger.Warn().Err(err).Str("tier", TierFallback).Msg("live snapshot failed, serving fallback snapshot")
			g.deliverFallback(ctx, sub)
		}
		return false
	}
	sub.deliver(list)
	return true
}

func (g *Gateway) deliverFallback(ctx context.Context, sub *subscription) {
	list, err := g.fallback.List(ctx)
	if err != nil {
		g.logger.Error().Err(err).Msg("fallback list failed")
		list = nil
	}
	sub.deliver(list)
}

// subscription guards the callback so it never fires after unsubscribe.
type subscription struct {
	cancel   context.CancelFunc
	callback func([]participant.Participant)

	mu     sync.Mutex
	closed bool
}

func (s *subscription) deliver(list []participant.Participant) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.closed {
		return
	}
	s.callback(list)
}

func (s *subscription) stop() {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return
	}
	s.closed = true
	s.mu.Unlock()
	s.cancel()
}
