package basket

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

// Handler handles HTTP requests for baskets
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new basket handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the basket routes, all customer-only
func (h *Handler) Register(mux *http.ServeMux) {
	customer := middleware.RequireRoles(h.logger, middleware.RoleCustomer)

	mux.HandleFunc("GET /api/basket", h.wrap(customer(h.GetBasket)))
	mux.HandleFunc("POST /api/basket", h.wrap(customer(h.AddItem)))
	mux.HandleFunc("PUT /api/basket", h.wrap(customer(h.UpdateItem)))
	mux.HandleFunc("DELETE /api/basket", h.wrap(customer(h.ClearBasket)))
	mux.HandleFunc("POST /api/basket/checkout", h.wrap(customer(h.Checkout)))
}

func (h *Handler) wrap(next http.HandlerFunc) http.HandlerFunc {
	return middleware.WithLogging(h.logger, next)
}

// GetBasket handles GET /api/basket?restaurantId=...
func (h *Handler) GetBasket(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		h.writeError(w, http.StatusBadRequest, "restaurantId query parameter is required", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	b, err := h.service.GetBasket(ctx, requestID, user.UserID, restaurantID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"basket": b,
	})
}

// AddItem handles POST /api/basket
func (h *Handler) AddItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())

	var req models.AddItemRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	b, err := h.service.AddItem(ctx, requestID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Menu added to basket successfully",
		"basket":  b,
	})
}

// UpdateItem handles PUT /api/basket
func (h *Handler) UpdateItem(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())

	var req models.UpdateItemRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	b, err := h.service.UpdateItem(ctx, requestID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Basket updated successfully",
		"basket":  b,
	})
}

// ClearBasket handles DELETE /api/basket?restaurantId=...
func (h *Handler) ClearBasket(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	restaurantID := r.URL.Query().Get("restaurantId")
	if restaurantID == "" {
		h.writeError(w, http.StatusBadRequest, "restaurantId query parameter is required", requestID)
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.service.ClearBasket(ctx, requestID, user.UserID, restaurantID); err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Basket cleared successfully",
	})
}

// Checkout handles POST /api/basket/checkout
func (h *Handler) Checkout(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())

	var req struct {
		RestaurantID string `json:"restaurant_id"`
	}
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := context.WithTimeout(r.Context(), 30*time.Second)
	defer cancel()

	if err := h.service.Checkout(ctx, requestID, user.UserID, req.RestaurantID); err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Order placed successfully",
	})
}

func (h *Handler) decodeBody(w http.ResponseWriter, r *http.Request, requestID string, dst interface{}) bool {
	decoder := json.NewDecoder(r.Body)
	decoder.DisallowUnknownFields()

	if err := decoder.Decode(dst); err != nil {
		h.logger.Error("validation_failed", "Failed to parse request body", requestID, err, nil)
		h.writeError(w, http.StatusBadRequest, "Invalid JSON format", requestID)
		return false
	}
	return true
}

func (h *Handler) writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var ve models.ValidationError
	var nf models.NotFoundError

	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Error(), requestID)
	case errors.Is(err, models.ErrRestaurantNotFound):
		h.writeError(w, http.StatusNotFound, err.Error(), requestID)
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
