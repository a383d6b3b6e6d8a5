package game

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/google/uuid"
	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	httperrors "github.com/farewellhq/farewell-quiz/pkg/http/errors"
)

// Handler exposes the question-flow REST endpoints.
type Handler struct {
	svc     *Service
	catalog *catalog.Catalog
	logger  zerolog.Logger
}

// NewHandler constructs the game HTTP handler.
func NewHandler(svc *Service, cat *catalog.Catalog, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:     svc,
		catalog: cat,
		logger:  logger.With().Str("component", "game_http").Logger(),
	}
}

// HandleQuestions responds with the full catalog in presentation order.
// Route: GET /v1/questions
func (h *Handler) HandleQuestions(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"questions": h.catalog.Questions(),
		"total":     h.catalog.Len(),
	})
}

// HandleStart creates a session for a named participant.
// Route: POST /v1/sessions
func (h *Handler) HandleStart(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Name string `json:"name"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	session, err := h.svc.Start(r.Context(), req.Name)
	if err != nil {
		if errors.Is(err, ErrNameRequired) {
			httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "name is required", "name")
			return
		}
		h.logger.Error().Err(err).Msg("start session failed")
		httperrors.RespondInternalError(w, "could not start session")
		return
	}
	writeJSON(w, http.StatusCreated, h.svc.ViewOf(session))
}

// HandleGet responds with the session view. Question is null when the
// current index is past the catalog end.
// Route: GET /v1/sessions/{id}
func (h *Handler) HandleGet(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.Get)
}

// HandleSaveAnswer upserts an answer, last write wins.
// Route: POST /v1/sessions/{id}/answers
func (h *Handler) HandleSaveAnswer(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}

	var req struct {
		QuestionID int    `json:"question_id"`
		Value      string `json:"value"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}

	session, err := h.svc.SaveAnswer(r.Context(), id, req.QuestionID, req.Value)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ViewOf(session))
}

// HandleNext advances to the next question.
// Route: POST /v1/sessions/{id}/next
func (h *Handler) HandleNext(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.Advance)
}

// HandlePrevious moves back one question.
// Route: POST /v1/sessions/{id}/previous
func (h *Handler) HandlePrevious(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.Back)
}

// HandleComplete submits the play-through to the persistence gateway.
// Route: POST /v1/sessions/{id}/complete
func (h *Handler) HandleComplete(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.Complete)
}

// HandleReset restores the session to its initial state.
// Route: POST /v1/sessions/{id}/reset
func (h *Handler) HandleReset(w http.ResponseWriter, r *http.Request) {
	h.withSession(w, r, h.svc.Reset)
}

// HandleEnd discards the session once the participant is done with it.
// Route: DELETE /v1/sessions/{id}
func (h *Handler) HandleEnd(w http.ResponseWriter, r *http.Request) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	if err := h.svc.End(r.Context(), id); err != nil {
		h.respondServiceError(w, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (h *Handler) withSession(w http.ResponseWriter, r *http.Request, op func(ctx context.Context, id uuid.UUID) (*Session, error)) {
	id, ok := sessionID(w, r)
	if !ok {
		return
	}
	session, err := op(r.Context(), id)
	if err != nil {
		h.respondServiceError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, h.svc.ViewOf(session))
}

func sessionID(w http.ResponseWriter, r *http.Request) (uuid.UUID, bool) {
	id, err := uuid.Parse(r.PathValue("id"))
	if err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidSession, "session id must be a UUID")
		return uuid.Nil, false
	}
	return id, true
}

func (h *Handler) respondServiceError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, ErrSessionNotFound):
		httperrors.RespondNotFound(w, httperrors.ErrCodeSessionNotFound, "session not found")
	case errors.Is(err, ErrUnknownQuestion):
		httperrors.RespondBadRequest(w, httperrors.ErrCodeUnknownQuestion, "question does not exist")
	case errors.Is(err, ErrSubmitInFlight):
		httperrors.RespondConflict(w, httperrors.ErrCodeSubmitInFlight, "a submission is already in flight")
	case errors.Is(err, ErrAlreadyCompleted):
		httperrors.RespondConflict(w, httperrors.ErrCodeAlreadyDone, "game is already completed")
	default:
		h.logger.Error().Err(err).Msg("session operation failed")
		httperrors.RespondInternalError(w, "session operation failed")
	}
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(body)
}
