package handlers

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"

	"github.com/FooleanBool/MBTools/internal/calculator"
	"github.com/FooleanBool/MBTools/internal/display"
	"github.com/FooleanBool/MBTools/internal/form"
	"github.com/FooleanBool/MBTools/pkg/models"
	"github.com/sirupsen/logrus"
)

// MetricsSource reports live session metrics
type MetricsSource interface {
	GetMetrics() map[string]interface{}
	GetSessionCount() int
}

// Handler contains dependencies for HTTP handlers
type Handler struct {
	metrics MetricsSource
	logger  logrus.FieldLogger
}

// NewHandler creates a new handler
func NewHandler(metrics MetricsSource, logger logrus.FieldLogger) *Handler {
	return &Handler{
		metrics: metrics,
		logger:  logger,
	}
}

// HealthCheck returns service health
func (h *Handler) HealthCheck(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, map[string]interface{}{
		"status":          "healthy",
		"service":         "handicap-calculator",
		"active_sessions": h.metrics.GetSessionCount(),
	})
}

// Metrics returns live session metrics
func (h *Handler) Metrics(w http.ResponseWriter, r *http.Request) {
	respondJSON(w, http.StatusOK, h.metrics.GetMetrics())
}

// Calculate runs the calculator on a JSON form body
func (h *Handler) Calculate(w http.ResponseWriter, r *http.Request) {
	var req models.CalculateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		respondError(w, http.StatusBadRequest, fmt.Sprintf("invalid request: %v", err))
		return
	}

	h.respondCalculation(w, display.InputsFromRequest(req))
}

// CalculateQuery runs the calculator on raw form values in the query string.
// Values are coerced like the page's input boxes: non-numeric text is 0.
func (h *Handler) CalculateQuery(w http.ResponseWriter, r *http.Request) {
	query := r.URL.Query()

	f := form.Form{}
	for _, field := range form.Fields {
		f[field] = query.Get(field)
	}

	h.respondCalculation(w, f.Inputs())
}

// respondCalculation calculates and writes either the result or a 422 with
// placeholders in every display box
func (h *Handler) respondCalculation(w http.ResponseWriter, in calculator.BetInputs) {
	result, err := calculator.Calculate(in)
	resp := display.Response(in, result, err)

	if err != nil {
		var invalid *calculator.InvalidInputError
		if errors.As(err, &invalid) {
			h.logger.WithField("fields", invalid.Fields).Debug(invalid.Detail())
			respondJSON(w, http.StatusUnprocessableEntity, resp)
			return
		}
		respondJSON(w, http.StatusInternalServerError, resp)
		return
	}

	if len(result.Warnings) > 0 {
		h.logger.WithField("warnings", result.Warnings).Debug("calculation produced warnings")
	}

	respondJSON(w, http.StatusOK, resp)
}

// respondJSON writes a JSON response
func respondJSON(w http.ResponseWriter, status int, data interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(data)
}

// respondError writes an error response
func respondError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{
		"error": message,
	})
}
