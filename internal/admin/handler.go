package admin

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/rs/zerolog"

	"github.com/farewellhq/farewell-quiz/internal/catalog"
	"github.com/farewellhq/farewell-quiz/internal/participant"
	"github.com/farewellhq/farewell-quiz/internal/report"
	httperrors "github.com/farewellhq/farewell-quiz/pkg/http/errors"
)

// ParticipantSource provides the full participant list; implemented by the
// persistence gateway.
type ParticipantSource interface {
	FetchAll(ctx context.Context) ([]participant.Participant, error)
}

// Handler exposes the admin REST endpoints.
type Handler struct {
	svc         *Service
	source      ParticipantSource
	catalog     *catalog.Catalog
	exportTitle string
	logger      zerolog.Logger
}

// NewHandler constructs the admin HTTP handler. exportTitle heads the
// generated artifacts.
func NewHandler(svc *Service, source ParticipantSource, cat *catalog.Catalog, exportTitle string, logger zerolog.Logger) *Handler {
	return &Handler{
		svc:         svc,
		source:      source,
		catalog:     cat,
		exportTitle: exportTitle,
		logger:      logger.With().Str("component", "admin_http").Logger(),
	}
}

// HandleLogin exchanges the shared passcode for a session token.
// Route: POST /v1/admin/login
func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Passcode string `json:"passcode"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		httperrors.RespondBadRequest(w, httperrors.ErrCodeInvalidRequest, "invalid JSON body")
		return
	}
	if req.Passcode == "" {
		httperrors.RespondValidationError(w, httperrors.ErrCodeMissingField, "passcode is required", "passcode")
		return
	}

	token, err := h.svc.Login(req.Passcode)
	if err != nil {
		if errors.Is(err, ErrInvalidPasscode) {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidPasscode, "incorrect passcode")
			return
		}
		h.logger.Error().Err(err).Msg("admin login failed")
		httperrors.RespondInternalError(w, "login failed")
		return
	}

	writeJSON(w, map[string]any{
		"token":      token,
		"expires_in": int(h.svc.TokenTTL().Seconds()),
	})
}

// RequireAuth wraps an endpoint with session-token verification. The token
// is taken from the Authorization header or, for browser-initiated
// downloads, from the token query parameter.
func (h *Handler) RequireAuth(next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		token := bearerToken(r)
		if token == "" {
			token = r.URL.Query().Get("token")
		}
		if token == "" {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeUnauthorized, "missing token")
			return
		}
		if err := h.svc.VerifyToken(token); err != nil {
			httperrors.RespondUnauthorized(w, httperrors.ErrCodeInvalidToken, "invalid or expired token")
			return
		}
		next(w, r)
	}
}

// HandleParticipants lists participants, optionally filtered by a
// case-insensitive name substring. The summary always covers the full list.
// Route: GET /v1/admin/participants?q=
func (h *Handler) HandleParticipants(w http.ResponseWriter, r *http.Request) {
	list, err := h.source.FetchAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("participant fetch failed")
		httperrors.RespondInternalError(w, "could not load participants")
		return
	}

	filtered := report.FilterByName(list, r.URL.Query().Get("q"))
	writeJSON(w, map[string]any{
		"participants": filtered,
		"summary":      report.Summarize(list, h.catalog.Len()),
	})
}

// HandleStats responds with the aggregate display figures.
// Route: GET /v1/admin/stats
func (h *Handler) HandleStats(w http.ResponseWriter, r *http.Request) {
	list, err := h.source.FetchAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("stats fetch failed")
		httperrors.RespondInternalError(w, "could not load participants")
		return
	}
	writeJSON(w, report.Summarize(list, h.catalog.Len()))
}

// HandleExportCSV streams the delimited-text artifact.
// Route: GET /v1/admin/export.csv
func (h *Handler) HandleExportCSV(w http.ResponseWriter, r *http.Request) {
	list, err := h.source.FetchAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("csv export fetch failed")
		httperrors.RespondInternalError(w, "could not load participants")
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(h.exportTitle, "csv")+`"`)
	if err := report.WriteCSV(w, h.catalog, list); err != nil {
		h.logger.Error().Err(err).Msg("csv export failed")
	}
}

// HandleExportPDF streams the paginated document artifact.
// Route: GET /v1/admin/export.pdf
func (h *Handler) HandleExportPDF(w http.ResponseWriter, r *http.Request) {
	list, err := h.source.FetchAll(r.Context())
	if err != nil {
		h.logger.Error().Err(err).Msg("pdf export fetch failed")
		httperrors.RespondInternalError(w, "could not load participants")
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="`+exportFilename(h.exportTitle, "pdf")+`"`)
	if err := report.WritePDF(w, h.catalog, list, h.exportTitle); err != nil {
		h.logger.Error().Err(err).Msg("pdf export failed")
	}
}

func bearerToken(r *http.Request) string {
	auth := r.Header.Get("Authorization")
	if strings.HasPrefix(auth, "Bearer ") {
		return strings.TrimPrefix(auth, "Bearer ")
	}
	return ""
}

func exportFilename(title, ext string) string {
	name := strings.ToLower(strings.ReplaceAll(strings.TrimSpace(title), " ", "_"))
	if name == "" {
		name = "responses"
	}
	return name + "_responses." + ext
}

func writeJSON(w http.ResponseWriter, body any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(body)
}
