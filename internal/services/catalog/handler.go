package catalog

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

// Handler handles HTTP requests for the catalog
type Handler struct {
	service *Service
	logger  *logger.Logger
}

// NewHandler creates a new catalog handler
func NewHandler(service *Service, log *logger.Logger) *Handler {
	return &Handler{
		service: service,
		logger:  log,
	}
}

// Register mounts the catalog routes. Mutations are restricted to the
// restaurant role; reads are open to restaurants and customers.
func (h *Handler) Register(mux *http.ServeMux) {
	restaurant := middleware.RequireRoles(h.logger, middleware.RoleRestaurant)
	reader := middleware.RequireRoles(h.logger, middleware.RoleRestaurant, middleware.RoleCustomer)

	mux.HandleFunc("POST /api/categories", h.wrap(restaurant(h.CreateCategory)))
	mux.HandleFunc("PUT /api/categories/{categoryId}", h.wrap(restaurant(h.UpdateCategory)))
	mux.HandleFunc("DELETE /api/categories/{categoryId}", h.wrap(restaurant(h.DeleteCategory)))
	mux.HandleFunc("GET /api/categories/{categoryId}", h.wrap(h.GetCategoryByID))

	mux.HandleFunc("POST /api/categories/{categoryId}/menus", h.wrap(restaurant(h.CreateMenu)))
	mux.HandleFunc("GET /api/categories/{categoryId}/menus", h.wrap(reader(h.GetMenusByCategory)))
	mux.HandleFunc("PUT /api/menus/{menuId}", h.wrap(restaurant(h.UpdateMenu)))
	mux.HandleFunc("DELETE /api/menus/{menuId}", h.wrap(restaurant(h.DeleteMenu)))
	mux.HandleFunc("GET /api/menus/{menuId}", h.wrap(h.GetMenuByID))

	mux.HandleFunc("GET /api/restaurants/{restaurantId}/categories", h.wrap(reader(h.GetCategoriesByRestaurant)))
}

func (h *Handler) wrap(next http.HandlerFunc) http.HandlerFunc {
	return middleware.WithLogging(h.logger, next)
}

// CreateCategory handles POST /api/categories
func (h *Handler) CreateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())

	var req models.CreateCategoryRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	category, err := h.service.CreateCategory(ctx, requestID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message":  "Category created successfully",
		"category": category,
	})
}

// UpdateCategory handles PUT /api/categories/{categoryId}
func (h *Handler) UpdateCategory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	categoryID := r.PathValue("categoryId")

	var req models.UpdateCategoryRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	category, err := h.service.UpdateCategory(ctx, requestID, categoryID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message":  "Category updated successfully",
		"category": category,
	})
}

// DeleteCategory handles DELETE /api/categories/{categoryId}
func (h *Handler) DeleteCategory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	categoryID := r.PathValue("categoryId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := h.service.DeleteCategory(ctx, requestID, categoryID, user.UserID); err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Category deleted successfully",
	})
}

// GetCategoryByID handles GET /api/categories/{categoryId}
func (h *Handler) GetCategoryByID(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	categoryID := r.PathValue("categoryId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	category, err := h.service.CategoryByID(ctx, categoryID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"category": category,
	})
}

// GetCategoriesByRestaurant handles GET /api/restaurants/{restaurantId}/categories
func (h *Handler) GetCategoriesByRestaurant(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	restaurantID := r.PathValue("restaurantId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	categories, err := h.service.CategoriesByRestaurant(ctx, restaurantID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"categories": categories,
	})
}

// CreateMenu handles POST /api/categories/{categoryId}/menus
func (h *Handler) CreateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	categoryID := r.PathValue("categoryId")

	var req models.CreateMenuRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	menu, err := h.service.CreateMenu(ctx, requestID, categoryID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusCreated, map[string]interface{}{
		"message": "Menu created successfully",
		"menu":    menu,
	})
}

// GetMenusByCategory handles GET /api/categories/{categoryId}/menus
func (h *Handler) GetMenusByCategory(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	categoryID := r.PathValue("categoryId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	menus, err := h.service.MenusByCategory(ctx, categoryID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	if len(menus) == 0 {
		h.writeError(w, http.StatusNotFound, "Menus not found", requestID)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"menus": menus,
	})
}

// UpdateMenu handles PUT /api/menus/{menuId}
func (h *Handler) UpdateMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	menuID := r.PathValue("menuId")

	var req models.UpdateMenuRequest
	if !h.decodeBody(w, r, requestID, &req) {
		return
	}

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	menu, err := h.service.UpdateMenu(ctx, requestID, menuID, user.UserID, &req)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Menu updated successfully",
		"menu":    menu,
	})
}

// DeleteMenu handles DELETE /api/menus/{menuId}
func (h *Handler) DeleteMenu(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	user, _ := middleware.UserFrom(r.Context())
	menuID := r.PathValue("menuId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	if err := h.service.DeleteMenu(ctx, requestID, menuID, user.UserID); err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"message": "Menu deleted successfully",
	})
}

// GetMenuByID handles GET /api/menus/{menuId}
func (h *Handler) GetMenuByID(w http.ResponseWriter, r *http.Request) {
	requestID := logger.GenerateRequestID()
	menuID := r.PathValue("menuId")

	ctx, cancel := contextWithTimeout(r)
	defer cancel()

	menu, err := h.service.MenuByID(ctx, menuID)
	if err != nil {
		h.writeDomainError(w, requestID, err)
		return
	}

	h.writeJSON(w, http.StatusOK, map[string]interface{}{
		"menu": menu,
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

// writeDomainError maps the domain error taxonomy onto HTTP status codes.
// Anything outside the taxonomy was already logged where it happened and
// surfaces as a generic failure.
func (h *Handler) writeDomainError(w http.ResponseWriter, requestID string, err error) {
	var ve models.ValidationError
	var nf models.NotFoundError
	var dup models.DuplicateTitleError

	switch {
	case errors.As(err, &ve):
		h.writeError(w, http.StatusBadRequest, ve.Error(), requestID)
	case errors.As(err, &nf):
		h.writeError(w, http.StatusNotFound, nf.Error(), requestID)
	case errors.As(err, &dup):
		h.writeError(w, http.StatusConflict, dup.Error(), requestID)
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

func contextWithTimeout(r *http.Request) (context.Context, context.CancelFunc) {
	return context.WithTimeout(r.Context(), 30*time.Second)
}
