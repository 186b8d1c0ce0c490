package basket

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"

	"restaurant-service/internal/database"
	"restaurant-service/internal/models"
)

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

// NewRepository creates a basket repository on the shared pool
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// BasketByPair loads a basket and its items for a (customer, restaurant) pair
func (r *Repository) BasketByPair(ctx context.Context, customerID, restaurantID string) (*models.Basket, error) {
	var b models.Basket
	err := r.db.QueryRow(ctx, database.GetBasketByPairSQL, customerID, restaurantID).
		Scan(&b.ID, &b.CustomerID, &b.RestaurantID, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Resource: "basket"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load basket: %w", err)
	}

	items, err := r.listItems(ctx, b.ID)
	if err != nil {
		return nil, err
	}
	b.Items = items

	return &b, nil
}

// EnsureBasket finds or creates the basket for the pair. The insert is an
// upsert over the (customer_id, restaurant_id) unique constraint, so two
// concurrent first adds end up with the same row.
func (r *Repository) EnsureBasket(ctx context.Context, customerID, restaurantID string) (*models.Basket, error) {
	if err := r.db.Exec(ctx, database.InsertBasketSQL, uuid.NewString(), customerID, restaurantID); err != nil {
		return nil, fmt.Errorf("failed to ensure basket: %w", err)
	}

	var b models.Basket
	err := r.db.QueryRow(ctx, database.GetBasketByPairSQL, customerID, restaurantID).
		Scan(&b.ID, &b.CustomerID, &b.RestaurantID, &b.CreatedAt)
	if err != nil {
		return nil, fmt.Errorf("failed to load ensured basket: %w", err)
	}

	return &b, nil
}

// ItemByMenu finds the basket line for a menu item, if present
func (r *Repository) ItemByMenu(ctx context.Context, basketID, menuID string) (*models.BasketItem, error) {
	return r.scanItem(r.db.QueryRow(ctx, database.GetBasketItemByMenuSQL, basketID, menuID))
}

// ItemByID finds a basket line by id, scoped to its basket
func (r *Repository) ItemByID(ctx context.Context, basketID, itemID string) (*models.BasketItem, error) {
	return r.scanItem(r.db.QueryRow(ctx, database.GetBasketItemSQL, basketID, itemID))
}

// InsertItem adds a line to a basket
func (r *Repository) InsertItem(ctx context.Context, item *models.BasketItem) error {
	return r.db.Exec(ctx, database.InsertBasketItemSQL,
		item.ID, item.BasketID, item.MenuID, item.Title, item.Quantity, item.Price)
}

// UpdateItem sets a line's quantity and price
func (r *Repository) UpdateItem(ctx context.Context, itemID string, quantity int, price float64) error {
	return r.db.Exec(ctx, database.UpdateBasketItemSQL, quantity, price, itemID)
}

// DeleteItem removes a basket line
func (r *Repository) DeleteItem(ctx context.Context, itemID string) error {
	return r.db.Exec(ctx, database.DeleteBasketItemSQL, itemID)
}

// CountItems counts a basket's lines
func (r *Repository) CountItems(ctx context.Context, basketID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountBasketItemsSQL, basketID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count basket items: %w", err)
	}
	return count, nil
}

// DeleteBasket removes an (already empty) basket row
func (r *Repository) DeleteBasket(ctx context.Context, basketID string) error {
	return r.db.Exec(ctx, database.DeleteBasketSQL, basketID)
}

// ClearBasket removes every item and the basket row in one transaction
func (r *Repository) ClearBasket(ctx context.Context, basketID string) error {
	return r.db.WithTx(ctx, func(tx pgx.Tx) error {
		if _, err := tx.Exec(ctx, database.DeleteBasketItemsSQL, basketID); err != nil {
			return fmt.Errorf("failed to delete basket items: %w", err)
		}
		if _, err := tx.Exec(ctx, database.DeleteBasketSQL, basketID); err != nil {
			return fmt.Errorf("failed to delete basket: %w", err)
		}
		return nil
	})
}

func (r *Repository) listItems(ctx context.Context, basketID string) ([]models.BasketItem, error) {
	rows, err := r.db.Query(ctx, database.ListBasketItemsSQL, basketID)
	if err != nil {
		return nil, fmt.Errorf("failed to list basket items: %w", err)
	}
	defer rows.Close()

	var items []models.BasketItem
	for rows.Next() {
		var item models.BasketItem
		if err := rows.Scan(&item.ID, &item.BasketID, &item.MenuID, &item.Title, &item.Quantity, &item.Price); err != nil {
			return nil, fmt.Errorf("failed to scan basket item: %w", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *Repository) scanItem(row pgx.Row) (*models.BasketItem, error) {
	var item models.BasketItem
	err := row.Scan(&item.ID, &item.BasketID, &item.MenuID, &item.Title, &item.Quantity, &item.Price)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Resource: "basket item"}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load basket item: %w", err)
	}
	return &item, nil
}
