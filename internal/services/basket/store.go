package basket

import (
	"context"

	"restaurant-service/internal/models"
)

// Store is the persistence contract for baskets and their items.
// Implementations translate missing rows into models.NotFoundError.
type Store interface {
	// BasketByPair loads the basket for a (customer, restaurant) pair with
	// its items.
	BasketByPair(ctx context.Context, customerID, restaurantID string) (*models.Basket, error)
	// EnsureBasket returns the basket for the pair, creating it if absent.
	// Concurrent callers converge on the same row.
	EnsureBasket(ctx context.Context, customerID, restaurantID string) (*models.Basket, error)

	ItemByMenu(ctx context.Context, basketID, menuID string) (*models.BasketItem, error)
	ItemByID(ctx context.Context, basketID, itemID string) (*models.BasketItem, error)
	InsertItem(ctx context.Context, item *models.BasketItem) error
	UpdateItem(ctx context.Context, itemID string, quantity int, price float64) error
	DeleteItem(ctx context.Context, itemID string) error
	CountItems(ctx context.Context, basketID string) (int, error)

	DeleteBasket(ctx context.Context, basketID string) error
	// ClearBasket removes every item and the basket row as one atomic unit.
	ClearBasket(ctx context.Context, basketID string) error
}
