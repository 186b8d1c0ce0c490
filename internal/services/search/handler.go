package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"time"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/middleware"
	"restaurant-service/internal/models"
)

// Handler handles HTTP requests for search and restaurant details
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new search handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the search routes. These are public reads.
func (h *Handler) Register(mux *http.ServeMux) {
	mux.HandleFunc("GET /api/search/zipcode/{zip}", middleware.WithLogging(h.logger, h.ByZipcode))
	mux.HandleFunc("GET /api/restaurants/{restaurantId}", middleware.WithLogging(h.logger, h.RestaurantDetails))
}

// ByZipcode handles GET /api/search/zipcode/{zip}
func (h *Handler) ByZipcode(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	zipcode := r.PathValue("zip")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	restaurants, err := h.service.ByZipcode(ctx, requestID, zipcode)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurants": restaurants,
	})
}

// RestaurantDetails handles GET /api/restaurants/{restaurantId}
func (h *Handler) RestaurantDetails(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	restaurantID := r.PathValue("restaurantId")

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	details, err := h.service.RestaurantDetails(ctx, requestID, restaurantID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"restaurant": details,
	})
}

func (h *Handler) writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var ve models.ValidationError
	var nf models.NotFoundError

	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Error(), requestID)
	case errors.As(err, &nf):
		h.writeError(w, http.StatusNotFound, nf.Error(), requestID)
	default:
		h.writeError(w, http.StatusInternalServerError, "Internal server error", requestID)
	}
}

func (h *Handler) writeJSON(w http.ResponseWriter, statusCode int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	json.NewEncoder(w).Encode(payload)
}

func (h *Handler) writeError(w http.ResponseWriter, statusCode int, message, requestID string) {
	h.writeJSON(w, statusCode, map[string]interface{}{
		"error":      message,
		"timestamp":  time.Now().UTC().Format(time.RFC3339),
		"request_id": requestID,
	})
}
