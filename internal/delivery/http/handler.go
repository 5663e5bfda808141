package http //nolint:revive // directory-based package name, imported with alias

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/vitrine/checkout-gateway/internal/domain/card"
	"github.com/vitrine/checkout-gateway/internal/domain/payment"
	"github.com/vitrine/checkout-gateway/internal/domain/pix"
	"github.com/vitrine/checkout-gateway/internal/domain/settings"
	"github.com/vitrine/checkout-gateway/internal/usecase/checkout"
	"github.com/vitrine/checkout-gateway/internal/usecase/generateqr"
	"github.com/vitrine/checkout-gateway/internal/usecase/pixsettings"
)

const maxBodyBytes = 1 << 16

type Handler struct {
	settingsUC   *pixsettings.UseCase
	generateQRUC *generateqr.UseCase
	checkoutUC   *checkout.UseCase
	cards        *card.Validator
	logger       *slog.Logger
}

func NewHandler(
	settingsUC *pixsettings.UseCase,
	generateQRUC *generateqr.UseCase,
	checkoutUC *checkout.UseCase,
	cards *card.Validator,
	logger *slog.Logger,
) *Handler {
	return &Handler{
		settingsUC:   settingsUC,
		generateQRUC: generateQRUC,
		checkoutUC:   checkoutUC,
		cards:        cards,
		logger:       logger,
	}
}

type errorResponse struct {
	Error  string             `json:"error"`
	Fields []card.FieldError `json:"fields,omitempty"`
}

func (h *Handler) HandleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

// fail maps a use case error to a status code and writes it as JSON.
func (h *Handler) fail(w http.ResponseWriter, r *http.Request, err error) {
	var verr card.ValidationError
	switch {
	case errors.As(err, &verr):
		writeJSON(w, http.StatusUnprocessableEntity, errorResponse{Error: "invalid card", Fields: verr})
	case errors.Is(err, pix.ErrMissingInstrumentKey):
		h.logger.Warn("pix charge requested without a configured key", "path", r.URL.Path)
		writeError(w, http.StatusConflict, "pix key not configured")
	case errors.Is(err, settings.ErrInvalid),
		errors.Is(err, pix.ErrInvalidAmount),
		errors.Is(err, pix.ErrValueTooLong),
		errors.Is(err, payment.ErrUnknownMethod),
		errors.Is(err, payment.ErrNegativeAmount):
		writeError(w, http.StatusBadRequest, err.Error())
	default:
		h.logger.Error("request failed", "path", r.URL.Path, "error", err)
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func decodeJSON(w http.ResponseWriter, r *http.Request, dst any) bool {
	r.Body = http.MaxBytesReader(w, r.Body, maxBodyBytes)
	if err := json.NewDecoder(r.Body).Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid json")
		return false
	}
	return true
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
