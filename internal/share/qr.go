// Package share renders the entry-page QR code so the game URL can be
// passed around at the event.
package share

import (
	"net/http"
	"strconv"

	"github.com/rs/zerolog"
	qrcode "github.com/skip2/go-qrcode"
)

const (
	defaultQRSize = 256
	minQRSize     = 64
	maxQRSize     = 1024
)

// Handler serves the share endpoints.
type Handler struct {
	url    string
	logger zerolog.Logger
}

// NewHandler creates the share handler for the configured public URL.
func NewHandler(publicURL string, logger zerolog.Logger) *Handler {
	return &Handler{
		url:    publicURL,
		logger: logger.With().Str("component", "share").Logger(),
	}
}

// HandleQR responds with a PNG QR code of the public game URL.
// Route: GET /v1/share/qr.png?size=
func (h *Handler) HandleQR(w http.ResponseWriter, r *http.Request) {
	size := defaultQRSize
	if raw := r.URL.Query().Get("size"); raw != "" {
		if parsed, err := strconv.Atoi(raw); err == nil {
			size = min(max(parsed, minQRSize), maxQRSize)
		}
	}

	png, err := qrcode.Encode(h.url, qrcode.Medium, size)
	if err != nil {
		h.logger.Error().Err(err).Msg("qr encode failed")
		http.Error(w, "could not render QR code", http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "image/png")
	w.Header().Set("Cache-Control", "public, max-age=3600")
	_, _ = w.Write(png)
}
