package handlers

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"energy-insights/internal/api/models"
	"energy-insights/internal/config"
	"energy-insights/internal/data"
	"energy-insights/internal/logging"
	"energy-insights/internal/normalize"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

// BackendFactory returns a backend authenticated with apiKey.
type BackendFactory func(apiKey string) data.Backend

// Handler serves the dashboard API.
type Handler struct {
	cfg     *config.Config
	backend BackendFactory
	decoder *normalize.Decoder
	logger  *zap.Logger
}

// NewHandler creates the API handler.
func NewHandler(cfg *config.Config, backend BackendFactory, logger *zap.Logger) *Handler {
	return &Handler{
		cfg:     cfg,
		backend: backend,
		decoder: normalize.NewDecoder(cfg.AliasTable()),
		logger:  logging.OrNop(logger),
	}
}

// source picks the API key from the request, falling back to the configured
// key.
func (h *Handler) source(c *gin.Context) (data.Backend, error) {
	key := strings.TrimSpace(c.GetHeader("X-API-Key"))
	if key == "" {
		key = h.cfg.Backend.APIKey
	}
	if err := validateAPIKey(key); err != nil {
		return nil, err
	}
	return h.backend(key), nil
}

// validateAPIKey performs basic validation on the API key
func validateAPIKey(apiKey string) error {
	if apiKey == "" {
		return fmt.Errorf("API key is required")
	}
	if len(apiKey) < 10 {
		return fmt.Errorf("API key appears to be invalid (too short)")
	}
	return nil
}

// windowHours returns the requested window, or the configured one when the
// request names none. Invalid values are passed on for the callers to reject.
func (h *Handler) windowHours(requested float64) float64 {
	if requested != 0 {
		return requested
	}
	return h.cfg.Trend.WindowHours
}

func validWindow(hours float64) bool {
	return !math.IsNaN(hours) && !math.IsInf(hours, 0) && hours > 0
}

func writeError(c *gin.Context, status int, code, message string, details map[string]interface{}) {
	c.JSON(status, models.ErrorResponse{
		Error: models.ErrorDetail{
			Code:    code,
			Message: message,
			Details: details,
		},
	})
}

// writeBackendError maps a failed backend call to an API error.
func writeBackendError(c *gin.Context, err error) {
	var berr *data.BackendError
	if !errors.As(err, &berr) {
		writeError(c, http.StatusBadGateway, "DATA_FETCH_ERROR", err.Error(), nil)
		return
	}
	status := http.StatusBadGateway
	switch berr.StatusCode {
	case http.StatusForbidden, http.StatusUnauthorized:
		status = http.StatusUnauthorized
	case http.StatusTooManyRequests:
		status = http.StatusTooManyRequests
	case http.StatusNotFound:
		status = http.StatusNotFound
	case 0:
		status = http.StatusBadRequest
	}
	writeError(c, status, berr.Code, berr.Message, map[string]interface{}{
		"status_code": berr.StatusCode,
		"retry_after": berr.RetryAfter,
	})
}
