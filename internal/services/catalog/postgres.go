package catalog

import (
	"context"
	"errors"
	"fmt"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"restaurant-service/internal/database"
	"restaurant-service/internal/models"
)

const uniqueViolationCode = "23505"

// Repository is the PostgreSQL implementation of Store
type Repository struct {
	db *database.DB
}

// NewRepository creates a catalog repository on the shared pool
func NewRepository(db *database.DB) *Repository {
	return &Repository{db: db}
}

// CreateCategory inserts a category row
func (r *Repository) CreateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.QueryRow(ctx, database.InsertCategorySQL,
		category.ID, category.Title, category.Description, category.SortOrder, category.RestaurantID).
		Scan(&category.CreatedAt, &category.UpdatedAt)
	if err != nil {
		return translateTitleConflict(err, category.Title)
	}
	return nil
}

// CategoryByID fetches one category
func (r *Repository) CategoryByID(ctx context.Context, id string) (*models.Category, error) {
	var c models.Category
	err := r.db.QueryRow(ctx, database.GetCategorySQL, id).
		Scan(&c.ID, &c.Title, &c.Description, &c.SortOrder, &c.RestaurantID, &c.CreatedAt, &c.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Resource: "category", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load category: %w", err)
	}
	return &c, nil
}

// CategoriesByRestaurant lists a restaurant's categories by sort order
func (r *Repository) CategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error) {
	rows, err := r.db.Query(ctx, database.ListCategoriesSQL, restaurantID)
	if err != nil {
		return nil, fmt.Errorf("failed to list categories: %w", err)
	}
	defer rows.Close()

	var categories []models.Category
	for rows.Next() {
		var c models.Category
		if err := rows.Scan(&c.ID, &c.Title, &c.Description, &c.SortOrder, &c.RestaurantID, &c.CreatedAt, &c.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan category: %w", err)
		}
		categories = append(categories, c)
	}
	return categories, rows.Err()
}

// CountCategories counts a restaurant's categories
func (r *Repository) CountCategories(ctx context.Context, restaurantID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountCategoriesSQL, restaurantID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count categories: %w", err)
	}
	return count, nil
}

// CategoryTitleTaken reports whether another category in the restaurant
// already uses the title
func (r *Repository) CategoryTitleTaken(ctx context.Context, restaurantID, title, excludeID string) (bool, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CategoryTitleTakenSQL, restaurantID, title, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check category title: %w", err)
	}
	return count > 0, nil
}

// UpdateCategory persists a category's mutable fields
func (r *Repository) UpdateCategory(ctx context.Context, category *models.Category) error {
	err := r.db.Exec(ctx, database.UpdateCategorySQL,
		category.Title, category.Description, category.SortOrder, category.ID)
	return translateTitleConflict(err, category.Title)
}

// RepositionCategory shifts the affected siblings and persists the moved
// category in a single transaction
func (r *Repository) RepositionCategory(ctx context.Context, category *models.Category, shift Shift) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, database.ShiftCategoriesSQL,
			shift.Delta, category.RestaurantID, shift.Low, shift.High, category.ID)
		if err != nil {
			return fmt.Errorf("failed to shift sibling categories: %w", err)
		}

		_, err = tx.Exec(ctx, database.UpdateCategorySQL,
			category.Title, category.Description, category.SortOrder, category.ID)
		if err != nil {
			return fmt.Errorf("failed to update category: %w", err)
		}
		return nil
	})
	return translateTitleConflict(err, category.Title)
}

// DeleteCategory removes a category. Remaining siblings keep their sort
// order, so the scope can end up with gaps.
func (r *Repository) DeleteCategory(ctx context.Context, id string) error {
	return r.db.Exec(ctx, database.DeleteCategorySQL, id)
}

// CreateMenu inserts a menu row
func (r *Repository) CreateMenu(ctx context.Context, menu *models.MenuItem) error {
	err := r.db.QueryRow(ctx, database.InsertMenuSQL,
		menu.ID, menu.Title, menu.Description, menu.Price, menu.SortOrder, menu.CategoryID).
		Scan(&menu.CreatedAt, &menu.UpdatedAt)
	if err != nil {
		return translateTitleConflict(err, menu.Title)
	}
	return nil
}

// MenuByID fetches one menu item
func (r *Repository) MenuByID(ctx context.Context, id string) (*models.MenuItem, error) {
	var m models.MenuItem
	err := r.db.QueryRow(ctx, database.GetMenuSQL, id).
		Scan(&m.ID, &m.Title, &m.Description, &m.Price, &m.SortOrder, &m.CategoryID, &m.CreatedAt, &m.UpdatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.NotFoundError{Resource: "menu", ID: id}
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load menu: %w", err)
	}
	return &m, nil
}

// MenusByCategory lists a category's menu items by sort order
func (r *Repository) MenusByCategory(ctx context.Context, categoryID string) ([]models.MenuItem, error) {
	rows, err := r.db.Query(ctx, database.ListMenusSQL, categoryID)
	if err != nil {
		return nil, fmt.Errorf("failed to list menus: %w", err)
	}
	defer rows.Close()

	var menus []models.MenuItem
	for rows.Next() {
		var m models.MenuItem
		if err := rows.Scan(&m.ID, &m.Title, &m.Description, &m.Price, &m.SortOrder, &m.CategoryID, &m.CreatedAt, &m.UpdatedAt); err != nil {
			return nil, fmt.Errorf("failed to scan menu: %w", err)
		}
		menus = append(menus, m)
	}
	return menus, rows.Err()
}

// CountMenus counts a category's menu items
func (r *Repository) CountMenus(ctx context.Context, categoryID string) (int, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.CountMenusSQL, categoryID).Scan(&count); err != nil {
		return 0, fmt.Errorf("failed to count menus: %w", err)
	}
	return count, nil
}

// MenuTitleTaken reports whether another menu item in the category already
// uses the title
func (r *Repository) MenuTitleTaken(ctx context.Context, categoryID, title, excludeID string) (bool, error) {
	var count int
	if err := r.db.QueryRow(ctx, database.MenuTitleTakenSQL, categoryID, title, excludeID).Scan(&count); err != nil {
		return false, fmt.Errorf("failed to check menu title: %w", err)
	}
	return count > 0, nil
}

// UpdateMenu persists a menu item's mutable fields
func (r *Repository) UpdateMenu(ctx context.Context, menu *models.MenuItem) error {
	err := r.db.Exec(ctx, database.UpdateMenuSQL,
		menu.Title, menu.Description, menu.Price, menu.SortOrder, menu.ID)
	return translateTitleConflict(err, menu.Title)
}

// RepositionMenu shifts the affected siblings and persists the moved menu
// item in a single transaction
func (r *Repository) RepositionMenu(ctx context.Context, menu *models.MenuItem, shift Shift) error {
	err := r.db.WithTx(ctx, func(tx pgx.Tx) error {
		_, err := tx.Exec(ctx, database.ShiftMenusSQL,
			shift.Delta, menu.CategoryID, shift.Low, shift.High, menu.ID)
		if err != nil {
			return fmt.Errorf("failed to shift sibling menus: %w", err)
		}

		_, err = tx.Exec(ctx, database.UpdateMenuSQL,
			menu.Title, menu.Description, menu.Price, menu.SortOrder, menu.ID)
		if err != nil {
			return fmt.Errorf("failed to update menu: %w", err)
		}
		return nil
	})
	return translateTitleConflict(err, menu.Title)
}

// DeleteMenu removes a menu item without renumbering its siblings
func (r *Repository) DeleteMenu(ctx context.Context, id string) error {
	return r.db.Exec(ctx, database.DeleteMenuSQL, id)
}

// translateTitleConflict converts a unique-constraint violation into the
// domain's duplicate-title error. Other errors pass through untouched.
func translateTitleConflict(err error, title string) error {
	if err == nil {
		return nil
	}
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == uniqueViolationCode {
		return models.DuplicateTitleError{Title: title}
	}
	return err
}
