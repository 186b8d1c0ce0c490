package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/models"
)

// EventPublisher receives catalog events. It is a collaborator, not a
// dependency of correctness: publish failures are logged and swallowed.
type EventPublisher interface {
	PublishCategoryCreated(ctx context.Context, event models.CategoryCreatedEvent) error
}

// Service orchestrates category and menu writes: ownership enforcement,
// title uniqueness, and sibling ordering.
type Service struct {
	store        Store
	events       EventPublisher
	logger       *logger.Logger
	strictBounds bool
}

// NewService creates the catalog service. events may be nil when no broker
// is wired (tests).
func NewService(store Store, events EventPublisher, log *logger.Logger, strictBounds bool) *Service {
	return &Service{
		store:        store,
		events:       events,
		logger:       log,
		strictBounds: strictBounds,
	}
}

// CreateCategory appends a category at the end of the restaurant's list
func (s *Service) CreateCategory(ctx context.Context, requestID, restaurantID string, req *models.CreateCategoryRequest) (*models.Category, error) {
	if restaurantID == "" {
		return nil, models.ValidationError{Field: "restaurant_id", Message: "restaurant_id is required"}
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	count, err := s.store.CountCategories(ctx, restaurantID)
	if err != nil {
		return nil, s.unexpected("category_create_failed", "Failed to count categories", requestID, err)
	}

	category := &models.Category{
		ID:           uuid.NewString(),
		Title:        models.StripMarkup(req.Title),
		Description:  models.StripMarkup(req.Description),
		SortOrder:    NextPosition(count),
		RestaurantID: restaurantID,
	}

	if err := s.store.CreateCategory(ctx, category); err != nil {
		var dup models.DuplicateTitleError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, s.unexpected("category_create_failed", "Failed to create category", requestID, err)
	}

	s.logger.Info("category_created", fmt.Sprintf("Created category %s", category.Title), requestID, map[string]interface{}{
		"category_id":   category.ID,
		"restaurant_id": restaurantID,
		"sort_order":    category.SortOrder,
	})

	s.publishCategoryCreated(ctx, requestID, category)

	return category, nil
}

// UpdateCategory merges the supplied fields into an existing category.
// Omitted fields keep their current value; a changed sort order repositions
// the category among its siblings atomically.
func (s *Service) UpdateCategory(ctx context.Context, requestID, categoryID, restaurantID string, req *models.UpdateCategoryRequest) (*models.Category, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.ownedCategory(ctx, requestID, categoryID, restaurantID)
	if err != nil {
		return nil, err
	}

	merged := *current

	if req.Title != nil {
		title := models.StripMarkup(*req.Title)
		if title != current.Title {
			taken, err := s.store.CategoryTitleTaken(ctx, restaurantID, title, categoryID)
			if err != nil {
				return nil, s.unexpected("category_update_failed", "Failed to check category title", requestID, err)
			}
			if taken {
				return nil, models.DuplicateTitleError{Title: title}
			}
		}
		merged.Title = title
	}

	if req.Description != nil {
		merged.Description = models.StripMarkup(*req.Description)
	}

	if req.SortOrder != nil && *req.SortOrder != current.SortOrder {
		if s.strictBounds {
			size, err := s.store.CountCategories(ctx, restaurantID)
			if err != nil {
				return nil, s.unexpected("category_update_failed", "Failed to count categories", requestID, err)
			}
			if !InBounds(*req.SortOrder, size) {
				return nil, models.ValidationError{Field: "sort_order", Message: "sort_order is out of range"}
			}
		}

		shift, _ := ShiftFor(current.SortOrder, *req.SortOrder)
		merged.SortOrder = *req.SortOrder

		if err := s.store.RepositionCategory(ctx, &merged, shift); err != nil {
			var dup models.DuplicateTitleError
			if errors.As(err, &dup) {
				return nil, dup
			}
			return nil, s.unexpected("category_update_failed", "Failed to reposition category", requestID, err)
		}
	} else {
		if err := s.store.UpdateCategory(ctx, &merged); err != nil {
			var dup models.DuplicateTitleError
			if errors.As(err, &dup) {
				return nil, dup
			}
			return nil, s.unexpected("category_update_failed", "Failed to update category", requestID, err)
		}
	}

	s.logger.Info("category_updated", fmt.Sprintf("Updated category %s", merged.ID), requestID, map[string]interface{}{
		"category_id":   merged.ID,
		"restaurant_id": restaurantID,
	})

	return &merged, nil
}

// DeleteCategory removes a category. Sibling sort orders are left alone, so
// the restaurant's ordering can keep gaps afterwards.
func (s *Service) DeleteCategory(ctx context.Context, requestID, categoryID, restaurantID string) error {
	if _, err := s.ownedCategory(ctx, requestID, categoryID, restaurantID); err != nil {
		return err
	}

	if err := s.store.DeleteCategory(ctx, categoryID); err != nil {
		return s.unexpected("category_delete_failed", "Failed to delete category", requestID, err)
	}

	s.logger.Info("category_deleted", fmt.Sprintf("Deleted category %s", categoryID), requestID, map[string]interface{}{
		"category_id":   categoryID,
		"restaurant_id": restaurantID,
	})

	return nil
}

// CreateMenu appends a menu item at the end of the category's list
func (s *Service) CreateMenu(ctx context.Context, requestID, categoryID, restaurantID string, req *models.CreateMenuRequest) (*models.MenuItem, error) {
	if _, err := s.ownedCategory(ctx, requestID, categoryID, restaurantID); err != nil {
		return nil, err
	}
	if err := req.Validate(); err != nil {
		return nil, err
	}

	count, err := s.store.CountMenus(ctx, categoryID)
	if err != nil {
		return nil, s.unexpected("menu_create_failed", "Failed to count menus", requestID, err)
	}

	menu := &models.MenuItem{
		ID:          uuid.NewString(),
		Title:       models.StripMarkup(req.Title),
		Description: models.StripMarkup(req.Description),
		Price:       req.Price,
		SortOrder:   NextPosition(count),
		CategoryID:  categoryID,
	}

	if err := s.store.CreateMenu(ctx, menu); err != nil {
		var dup models.DuplicateTitleError
		if errors.As(err, &dup) {
			return nil, dup
		}
		return nil, s.unexpected("menu_create_failed", "Failed to create menu", requestID, err)
	}

	s.logger.Info("menu_created", fmt.Sprintf("Created menu %s", menu.Title), requestID, map[string]interface{}{
		"menu_id":     menu.ID,
		"category_id": categoryID,
	})

	return menu, nil
}

// UpdateMenu merges the supplied fields into an existing menu item, with
// ownership resolved through its parent category
func (s *Service) UpdateMenu(ctx context.Context, requestID, menuID, restaurantID string, req *models.UpdateMenuRequest) (*models.MenuItem, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	current, err := s.ownedMenu(ctx, requestID, menuID, restaurantID)
	if err != nil {
		return nil, err
	}

	merged := *current

	if req.Title != nil {
		title := models.StripMarkup(*req.Title)
		if title != current.Title {
			taken, err := s.store.MenuTitleTaken(ctx, current.CategoryID, title, menuID)
			if err != nil {
				return nil, s.unexpected("menu_update_failed", "Failed to check menu title", requestID, err)
			}
			if taken {
				return nil, models.DuplicateTitleError{Title: title}
			}
		}
		merged.Title = title
	}

	if req.Description != nil {
		merged.Description = models.StripMarkup(*req.Description)
	}

	if req.Price != nil {
		merged.Price = *req.Price
	}

	if req.SortOrder != nil && *req.SortOrder != current.SortOrder {
		if s.strictBounds {
			size, err := s.store.CountMenus(ctx, current.CategoryID)
			if err != nil {
				return nil, s.unexpected("menu_update_failed", "Failed to count menus", requestID, err)
			}
			if !InBounds(*req.SortOrder, size) {
				return nil, models.ValidationError{Field: "sort_order", Message: "sort_order is out of range"}
			}
		}

		shift, _ := ShiftFor(current.SortOrder, *req.SortOrder)
		merged.SortOrder = *req.SortOrder

		if err := s.store.RepositionMenu(ctx, &merged, shift); err != nil {
			var dup models.DuplicateTitleError
			if errors.As(err, &dup) {
				return nil, dup
			}
			return nil, s.unexpected("menu_update_failed", "Failed to reposition menu", requestID, err)
		}
	} else {
		if err := s.store.UpdateMenu(ctx, &merged); err != nil {
			var dup models.DuplicateTitleError
			if errors.As(err, &dup) {
				return nil, dup
			}
			return nil, s.unexpected("menu_update_failed", "Failed to update menu", requestID, err)
		}
	}

	s.logger.Info("menu_updated", fmt.Sprintf("Updated menu %s", merged.ID), requestID, map[string]interface{}{
		"menu_id":     merged.ID,
		"category_id": merged.CategoryID,
	})

	return &merged, nil
}

// DeleteMenu removes a menu item without renumbering its siblings
func (s *Service) DeleteMenu(ctx context.Context, requestID, menuID, restaurantID string) error {
	if _, err := s.ownedMenu(ctx, requestID, menuID, restaurantID); err != nil {
		return err
	}

	if err := s.store.DeleteMenu(ctx, menuID); err != nil {
		return s.unexpected("menu_delete_failed", "Failed to delete menu", requestID, err)
	}

	s.logger.Info("menu_deleted", fmt.Sprintf("Deleted menu %s", menuID), requestID, map[string]interface{}{
		"menu_id": menuID,
	})

	return nil
}

// CategoriesByRestaurant lists a restaurant's categories in display order
func (s *Service) CategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	return s.store.CategoriesByRestaurant(ctx, restaurantID)
}

// MenusByCategory lists a category's menu items in display order
func (s *Service) MenusByCategory(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	return s.store.MenusByCategory(ctx, categoryID)
}

// CategoryByID fetches one category
func (s *Service) CategoryByID(ctx context.Context, categoryID string) (*models.Category, error) {
	return s.store.CategoryByID(ctx, categoryID)
}

// MenuByID fetches one menu item
func (s *Service) MenuByID(ctx context.Context, menuID string) (*models.MenuItem, error) {
	return s.store.MenuByID(ctx, menuID)
}

// ownedCategory loads a category and hides it from callers that do not own
// it: a mismatched restaurant reads the same as a missing row.
func (s *Service) ownedCategory(ctx context.Context, requestID, categoryID, restaurantID string) (*models.Category, error) {
	category, err := s.store.CategoryByID(ctx, categoryID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("category_load_failed", "Failed to load category", requestID, err)
	}
	if category.RestaurantID != restaurantID {
		return nil, models.NotFoundError{Resource: "category", ID: categoryID}
	}
	return category, nil
}

// ownedMenu loads a menu item and resolves ownership transitively through
// its parent category
func (s *Service) ownedMenu(ctx context.Context, requestID, menuID, restaurantID string) (*models.MenuItem, error) {
	menu, err := s.store.MenuByID(ctx, menuID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("menu_load_failed", "Failed to load menu", requestID, err)
	}

	category, err := s.store.CategoryByID(ctx, menu.CategoryID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, models.NotFoundError{Resource: "menu", ID: menuID}
		}
		return nil, s.unexpected("menu_load_failed", "Failed to load parent category", requestID, err)
	}
	if category.RestaurantID != restaurantID {
		return nil, models.NotFoundError{Resource: "menu", ID: menuID}
	}

	return menu, nil
}

func (s *Service) publishCategoryCreated(ctx context.Context, requestID string, category *models.Category) {
	if s.events == nil {
		return
	}

	event := models.CategoryCreatedEvent{
		CategoryID:   category.ID,
		RestaurantID: category.RestaurantID,
		Title:        category.Title,
		SortOrder:    category.SortOrder,
		CreatedAt:    category.CreatedAt,
	}

	if err := s.events.PublishCategoryCreated(ctx, event); err != nil {
		s.logger.Error("category_event_failed", "Failed to publish category.created event", requestID, err, map[string]interface{}{
			"category_id": category.ID,
		})
	}
}

// unexpected logs a store-level failure with its context and returns a
// wrapped error whose message is safe to surface
func (s *Service) unexpected(action, message, requestID string, err error) error {
	s.logger.Error(action, message, requestID, err, nil)
	return fmt.Errorf("%s: %w", message, err)
}
