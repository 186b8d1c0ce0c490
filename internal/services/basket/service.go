package basket

import (
	"context"
	"fmt"

	"github.com/google/uuid"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/models"
)

// Directory answers whether a restaurant exists. Backed by the remote
// restaurant directory in production.
type Directory interface {
	Exists(ctx context.Context, restaurantID string) (bool, error)
}

// Service manages the per-customer, per-restaurant basket lifecycle. A
// basket exists exactly while it holds at least one item: it is created on
// the first add and pruned as soon as it is observed empty.
type Service struct {
	store     Store
	directory Directory
	logger    *logger.Logger
}

// NewService creates the basket service
func NewService(store Store, directory Directory, log *logger.Logger) *Service {
	return &Service{
		store:     store,
		directory: directory,
		logger:    log,
	}
}

// GetBasket loads the customer's basket for a restaurant. A basket row
// found with zero items is deleted as a side effect of the read and
// reported as not found.
func (s *Service) GetBasket(ctx context.Context, requestID, customerID, restaurantID string) (*models.Basket, error) {
	b, err := s.store.BasketByPair(ctx, customerID, restaurantID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("basket_load_failed", "Failed to load basket", requestID, err)
	}

	if len(b.Items) == 0 {
		if err := s.store.DeleteBasket(ctx, b.ID); err != nil {
			return nil, s.unexpected("basket_prune_failed", "Failed to prune empty basket", requestID, err)
		}
		s.logger.Debug("basket_pruned", "Deleted empty basket on read", requestID, map[string]interface{}{
			"basket_id": b.ID,
		})
		return nil, models.NotFoundError{Resource: "basket"}
	}

	return b, nil
}

// AddItem puts a menu item into the customer's basket for the restaurant,
// creating the basket if needed. An add against an existing line replaces
// its quantity and price; a non-positive quantity removes the line.
// The restaurant must be known to the directory.
func (s *Service) AddItem(ctx context.Context, requestID, customerID string, req *models.AddItemRequest) (*models.Basket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	exists, err := s.directory.Exists(ctx, req.RestaurantID)
	if err != nil {
		// An unreachable directory reads as an unknown restaurant rather
		// than letting items pile up against an unverified one.
		s.logger.Error("directory_lookup_failed", "Failed to verify restaurant", requestID, err, map[string]interface{}{
			"restaurant_id": req.RestaurantID,
		})
		return nil, models.ErrRestaurantNotFound
	}
	if !exists {
		return nil, models.ErrRestaurantNotFound
	}

	b, err := s.store.EnsureBasket(ctx, customerID, req.RestaurantID)
	if err != nil {
		return nil, s.unexpected("basket_ensure_failed", "Failed to find or create basket", requestID, err)
	}

	existing, err := s.store.ItemByMenu(ctx, b.ID, req.MenuID)
	switch {
	case err == nil && req.Quantity > 0:
		if err := s.store.UpdateItem(ctx, existing.ID, req.Quantity, req.Price); err != nil {
			return nil, s.unexpected("basket_item_update_failed", "Failed to update basket item", requestID, err)
		}
	case err == nil:
		if err := s.store.DeleteItem(ctx, existing.ID); err != nil {
			return nil, s.unexpected("basket_item_delete_failed", "Failed to delete basket item", requestID, err)
		}
	case models.IsNotFound(err) && req.Quantity > 0:
		item := &models.BasketItem{
			ID:       uuid.NewString(),
			BasketID: b.ID,
			MenuID:   req.MenuID,
			Title:    req.Title,
			Quantity: req.Quantity,
			Price:    req.Price,
		}
		if err := s.store.InsertItem(ctx, item); err != nil {
			return nil, s.unexpected("basket_item_insert_failed", "Failed to insert basket item", requestID, err)
		}
	case models.IsNotFound(err):
		return nil, models.ValidationError{Field: "quantity", Message: "quantity must be greater than 0 for a new item"}
	default:
		return nil, s.unexpected("basket_item_load_failed", "Failed to load basket item", requestID, err)
	}

	s.logger.Info("basket_item_added", "Applied basket add", requestID, map[string]interface{}{
		"basket_id": b.ID,
		"menu_id":   req.MenuID,
		"quantity":  req.Quantity,
	})

	// Re-read through GetBasket so an add that emptied the basket prunes
	// it. A pruned basket reads back as nil, not as an error.
	updated, err := s.GetBasket(ctx, requestID, customerID, req.RestaurantID)
	if models.IsNotFound(err) {
		return nil, nil
	}
	return updated, err
}

// UpdateItem changes a basket line's quantity and price. A non-positive
// quantity removes the line, and removing the last line removes the basket.
func (s *Service) UpdateItem(ctx context.Context, requestID, customerID string, req *models.UpdateItemRequest) (*models.Basket, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	b, err := s.store.BasketByPair(ctx, customerID, req.RestaurantID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("basket_load_failed", "Failed to load basket", requestID, err)
	}

	item, err := s.store.ItemByID(ctx, b.ID, req.ItemID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("basket_item_load_failed", "Failed to load basket item", requestID, err)
	}

	if req.Quantity <= 0 {
		if err := s.store.DeleteItem(ctx, item.ID); err != nil {
			return nil, s.unexpected("basket_item_delete_failed", "Failed to delete basket item", requestID, err)
		}
	} else {
		if err := s.store.UpdateItem(ctx, item.ID, req.Quantity, req.Price); err != nil {
			return nil, s.unexpected("basket_item_update_failed", "Failed to update basket item", requestID, err)
		}
	}

	remaining, err := s.store.CountItems(ctx, b.ID)
	if err != nil {
		return nil, s.unexpected("basket_count_failed", "Failed to count basket items", requestID, err)
	}
	if remaining == 0 {
		if err := s.store.DeleteBasket(ctx, b.ID); err != nil {
			return nil, s.unexpected("basket_prune_failed", "Failed to delete emptied basket", requestID, err)
		}
		s.logger.Info("basket_emptied", "Removed basket after last item", requestID, map[string]interface{}{
			"basket_id": b.ID,
		})
		return nil, nil
	}

	updated, err := s.GetBasket(ctx, requestID, customerID, req.RestaurantID)
	if models.IsNotFound(err) {
		return nil, nil
	}
	return updated, err
}

// ClearBasket removes the basket and all its items as one atomic unit
func (s *Service) ClearBasket(ctx context.Context, requestID, customerID, restaurantID string) error {
	b, err := s.store.BasketByPair(ctx, customerID, restaurantID)
	if err != nil {
		if models.IsNotFound(err) {
			return err
		}
		return s.unexpected("basket_load_failed", "Failed to load basket", requestID, err)
	}

	if err := s.store.ClearBasket(ctx, b.ID); err != nil {
		return s.unexpected("basket_clear_failed", "Failed to clear basket", requestID, err)
	}

	s.logger.Info("basket_cleared", "Cleared basket", requestID, map[string]interface{}{
		"basket_id": b.ID,
	})

	return nil
}

// Checkout is a placeholder. Order creation, basket clearing and payment
// belong to the order pipeline, which this service does not own yet.
func (s *Service) Checkout(ctx context.Context, requestID, customerID, restaurantID string) error {
	s.logger.Info("checkout_requested", "Checkout requested", requestID, map[string]interface{}{
		"customer_id":   customerID,
		"restaurant_id": restaurantID,
	})
	return nil
}

func (s *Service) unexpected(action, message, requestID string, err error) error {
	s.logger.Error(action, message, requestID, err, nil)
	return fmt.Errorf("%s: %w", message, err)
}
