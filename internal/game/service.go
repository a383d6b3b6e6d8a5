package game

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/participant"
)

var (
	ErrSessionNotFound = errors.New("session not found")
	ErrNameRequired    = errors.New("participant name is required")
	ErrUnknownQuestion = errors.New("question does not exist")
)

// Submitter records a completed participant durably. Implemented by the
// persistence gateway.
type Submitter interface {
	Submit(ctx context.Context, p participant.Participant) error
}

// Service manages play-through sessions: creation, answer collection,
// navigation, and completion hand-off to the persistence gateway.
type Service struct {
	sessions SessionStore
	catalog  *catalog.Catalog
	gateway  Submitter
	logger   zerolog.Logger
	now      func() time.Time
}

// NewService constructs the game service.
func NewService(sessions SessionStore, cat *catalog.Catalog, gateway Submitter, logger zerolog.Logger) *Service {
	return &Service{
		sessions: sessions,
		catalog:  cat,
		gateway:  gateway,
		logger:   logger.With().Str("component", "game").Logger(),
		now:      time.Now,
	}
}

// Start creates a session for the named participant.
func (s *Service) Start(ctx context.Context, name string) (*Session, error) {
	name = strings.TrimSpace(name)
	if name == "" {
		return nil, ErrNameRequired
	}

	session := &Session{
		ID:        uuid.New(),
		State:     NewState(),
		CreatedAt: s.now().UTC(),
	}
	session.State.SetParticipantName(name)

	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info().Str("session_id", session.ID.String()).Msg("session started")
	return session, nil
}

// Get loads a session by id.
func (s *Service) Get(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.sessions.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	if session == nil {
		return nil, ErrSessionNotFound
	}
	return session, nil
}

// SaveAnswer upserts the answer for a catalog question, last write wins.
func (s *Service) SaveAnswer(ctx context.Context, id uuid.UUID, questionID int, value string) (*Session, error) {
	if _, ok := s.catalog.ByID(questionID); !ok {
		return nil, ErrUnknownQuestion
	}

	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	session.State.SaveAnswer(questionID, value)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// Advance moves the session to the next question. The index is not clamped;
// a position past the catalog end renders as "no question".
func (s *Service) Advance(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(state *State) { state.Next() })
}

// Back moves the session to the previous question, floored at the first one.
func (s *Service) Back(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(state *State) { state.Previous() })
}

// Reset restores the session to its initial state.
func (s *Service) Reset(ctx context.Context, id uuid.UUID) (*Session, error) {
	return s.mutate(ctx, id, func(state *State) { state.Reset() })
}

func (s *Service) mutate(ctx context.Context, id uuid.UUID, fn func(*State)) (*Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}
	fn(&session.State)
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	return session, nil
}

// End discards the session. Durable participant records are unaffected; only
// the browsing state is removed.
func (s *Service) End(ctx context.Context, id uuid.UUID) error {
	session, err := s.Get(ctx, id)
	if err != nil {
		return err
	}
	if err := s.sessions.Delete(ctx, session.ID); err != nil {
		return fmt.Errorf("delete session: %w", err)
	}
	s.logger.Info().Str("session_id", id.String()).Msg("session ended")
	return nil
}

// Complete snapshots the session into a participant record and hands it to
// the persistence gateway. The session reaches the completed state once the
// durable write finished, regardless of which storage tier took it; only a
// fallback-tier failure aborts the submission. Re-entrant completions are
// rejected while one is in flight.
func (s *Service) Complete(ctx context.Context, id uuid.UUID) (*Session, error) {
	session, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	if err := session.State.BeginSubmit(); err != nil {
		return nil, err
	}
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}

	record := participant.Participant{
		Name:        session.State.ParticipantName,
		Answers:     append([]participant.Answer(nil), session.State.Answers...),
		CompletedAt: s.now().UTC(),
	}
	if err := record.Validate(); err != nil {
		session.State.AbortSubmit()
		_ = s.sessions.Save(ctx, session)
		return nil, err
	}

	if err := s.gateway.Submit(ctx, record); err != nil {
		session.State.AbortSubmit()
		if saveErr := s.sessions.Save(ctx, session); saveErr != nil {
			s.logger.Error().Err(saveErr).Str("session_id", id.String()).Msg("failed to roll back submit state")
		}
		return nil, fmt.Errorf("submit participant: %w", err)
	}

	session.State.FinishSubmit()
	if err := s.sessions.Save(ctx, session); err != nil {
		return nil, fmt.Errorf("save session: %w", err)
	}
	s.logger.Info().Str("session_id", id.String()).Str("participant", record.Name).Msg("game completed")
	return session, nil
}

// View is the presentation snapshot of a session. Question is nil when the
// current index is past the catalog end.
type View struct {
	ID              uuid.UUID         `json:"id"`
	ParticipantName string            `json:"participant_name"`
	CurrentIndex    int               `json:"current_index"`
	Question        *catalog.Question `json:"question"`
	AnsweredCount   int               `json:"answered_count"`
	TotalQuestions  int               `json:"total_questions"`
	Status          string            `json:"status"`
	Completed       bool              `json:"completed"`
}

// ViewOf projects a session for the presentation layer.
func (s *Service) ViewOf(session *Session) View {
	view := View{
		ID:              session.ID,
		ParticipantName: session.State.ParticipantName,
		CurrentIndex:    session.State.CurrentIndex,
		AnsweredCount:   len(session.State.Answers),
		TotalQuestions:  s.catalog.Len(),
		Status:          session.State.Status,
		Completed:       session.State.IsCompleted(),
	}
	if q, ok := s.catalog.At(session.State.CurrentIndex); ok {
		view.Question = &q
	}
	return view
}
