package catalog

import (
	"context"

	"restaurant-service/internal/models"
)

// Store is the persistence contract the catalog service works against.
// Implementations translate their own error values into the domain taxonomy:
// missing rows become models.NotFoundError, title uniqueness violations
// become models.DuplicateTitleError.
type Store interface {
	CreateCategory(ctx context.Context, category *models.Category) error
	CategoryByID(ctx context.Context, id string) (*models.Category, error)
	CategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error)
	CountCategories(ctx context.Context, restaurantID string) (int, error)
	CategoryTitleTaken(ctx context.Context, restaurantID, title, excludeID string) (bool, error)
	UpdateCategory(ctx context.Context, category *models.Category) error
	// RepositionCategory applies the sibling shift and persists the moved
	// category's own fields as one atomic unit.
	RepositionCategory(ctx context.Context, category *models.Category, shift Shift) error
	DeleteCategory(ctx context.Context, id string) error

	CreateMenu(ctx context.Context, menu *models.MenuItem) error
	MenuByID(ctx context.Context, id string) (*models.MenuItem, error)
	MenusByCategory(ctx context.Context, categoryID string) ([]models.MenuItem, error)
	CountMenus(ctx context.Context, categoryID string) (int, error)
	MenuTitleTaken(ctx context.Context, categoryID, title, excludeID string) (bool, error)
	UpdateMenu(ctx context.Context, menu *models.MenuItem) error
	RepositionMenu(ctx context.Context, menu *models.MenuItem, shift Shift) error
	DeleteMenu(ctx context.Context, id string) error
}
