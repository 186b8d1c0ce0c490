package catalog

import (
	"context"
	"errors"
	"sort"
	"testing"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/models"
)

// memStore is an in-memory Store for service tests. It mimics the database's
// observable behavior: title uniqueness per scope, sibling shifts applied
// together with the moved row, missing rows as NotFoundError.
type memStore struct {
	categories map[string]models.Category
	menus      map[string]models.MenuItem
}

func newMemStore() *memStore {
	return &memStore{
		categories: map[string]models.Category{},
		menus:      map[string]models.MenuItem{},
	}
}

func (s *memStore) CreateCategory(_ context.Context, category *models.Category) error {
	for _, c := range s.categories {
		if c.RestaurantID == category.RestaurantID && c.Title == category.Title {
			return models.DuplicateTitleError{Title: category.Title}
		}
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memStore) CategoryByID(_ context.Context, id string) (*models.Category, error) {
	c, ok := s.categories[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "category", ID: id}
	}
	out := c
	return &out, nil
}

func (s *memStore) CategoriesByRestaurant(_ context.Context, restaurantID string) ([]models.Category, error) {
	var categories []models.Category
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			categories = append(categories, c)
		}
	}
	sort.Slice(categories, func(i, j int) bool { return categories[i].SortOrder < categories[j].SortOrder })
	return categories, nil
}

func (s *memStore) CountCategories(_ context.Context, restaurantID string) (int, error) {
	count := 0
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) CategoryTitleTaken(_ context.Context, restaurantID, title, excludeID string) (bool, error) {
	for _, c := range s.categories {
		if c.RestaurantID == restaurantID && c.Title == title && c.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpdateCategory(_ context.Context, category *models.Category) error {
	if _, ok := s.categories[category.ID]; !ok {
		return models.NotFoundError{Resource: "category", ID: category.ID}
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memStore) RepositionCategory(_ context.Context, category *models.Category, shift Shift) error {
	for id, c := range s.categories {
		if id == category.ID || c.RestaurantID != category.RestaurantID {
			continue
		}
		if c.SortOrder >= shift.Low && c.SortOrder <= shift.High {
			c.SortOrder += shift.Delta
			s.categories[id] = c
		}
	}
	s.categories[category.ID] = *category
	return nil
}

func (s *memStore) DeleteCategory(_ context.Context, id string) error {
	delete(s.categories, id)
	return nil
}

func (s *memStore) CreateMenu(_ context.Context, menu *models.MenuItem) error {
	for _, m := range s.menus {
		if m.CategoryID == menu.CategoryID && m.Title == menu.Title {
			return models.DuplicateTitleError{Title: menu.Title}
		}
	}
	s.menus[menu.ID] = *menu
	return nil
}

func (s *memStore) MenuByID(_ context.Context, id string) (*models.MenuItem, error) {
	m, ok := s.menus[id]
	if !ok {
		return nil, models.NotFoundError{Resource: "menu", ID: id}
	}
	out := m
	return &out, nil
}

func (s *memStore) MenusByCategory(_ context.Context, categoryID string) ([]models.MenuItem, error) {
	var menus []models.MenuItem
	for _, m := range s.menus {
		if m.CategoryID == categoryID {
			menus = append(menus, m)
		}
	}
	sort.Slice(menus, func(i, j int) bool { return menus[i].SortOrder < menus[j].SortOrder })
	return menus, nil
}

func (s *memStore) CountMenus(_ context.Context, categoryID string) (int, error) {
	count := 0
	for _, m := range s.menus {
		if m.CategoryID == categoryID {
			count++
		}
	}
	return count, nil
}

func (s *memStore) MenuTitleTaken(_ context.Context, categoryID, title, excludeID string) (bool, error) {
	for _, m := range s.menus {
		if m.CategoryID == categoryID && m.Title == title && m.ID != excludeID {
			return true, nil
		}
	}
	return false, nil
}

func (s *memStore) UpdateMenu(_ context.Context, menu *models.MenuItem) error {
	if _, ok := s.menus[menu.ID]; !ok {
		return models.NotFoundError{Resource: "menu", ID: menu.ID}
	}
	s.menus[menu.ID] = *menu
	return nil
}

func (s *memStore) RepositionMenu(_ context.Context, menu *models.MenuItem, shift Shift) error {
	for id, m := range s.menus {
		if id == menu.ID || m.CategoryID != menu.CategoryID {
			continue
		}
		if m.SortOrder >= shift.Low && m.SortOrder <= shift.High {
			m.SortOrder += shift.Delta
			s.menus[id] = m
		}
	}
	s.menus[menu.ID] = *menu
	return nil
}

func (s *memStore) DeleteMenu(_ context.Context, id string) error {
	delete(s.menus, id)
	return nil
}

func newTestService(store Store) *Service {
	return NewService(store, nil, logger.New("test"), false)
}

func strPtr(s string) *string    { return &s }
func intPtr(i int) *int          { return &i }
func floatPtr(f float64) *float64 { return &f }

func TestCreateCategory_SequentialSortOrder(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	titles := []string{"Starters", "Mains", "Desserts"}
	for i, title := range titles {
		c, err := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: title})
		if err != nil {
			t.Fatalf("CreateCategory(%q) returned error: %v", title, err)
		}
		if c.SortOrder != i {
			t.Errorf("category %q sort order = %d, want %d", title, c.SortOrder, i)
		}
	}
}

func TestCreateCategory_Validation(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	tests := []struct {
		name         string
		restaurantID string
		req          *models.CreateCategoryRequest
	}{
		{"missing title", "r1", &models.CreateCategoryRequest{}},
		{"missing restaurant", "", &models.CreateCategoryRequest{Title: "Pizza"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := svc.CreateCategory(ctx, "req", tt.restaurantID, tt.req)
			var ve models.ValidationError
			if !errors.As(err, &ve) {
				t.Errorf("expected ValidationError, got %v", err)
			}
		})
	}
}

func TestCreateCategory_DuplicateTitle(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	if _, err := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza", Description: "desc"}); err != nil {
		t.Fatalf("first create returned error: %v", err)
	}

	_, err := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza", Description: "desc"})
	var dup models.DuplicateTitleError
	if !errors.As(err, &dup) {
		t.Fatalf("expected DuplicateTitleError, got %v", err)
	}

	// Same title under another restaurant is fine
	if _, err := svc.CreateCategory(ctx, "req", "r2", &models.CreateCategoryRequest{Title: "Pizza"}); err != nil {
		t.Errorf("create under another restaurant returned error: %v", err)
	}
}

func TestCreateCategory_StripsMarkup(t *testing.T) {
	svc := newTestService(newMemStore())

	c, err := svc.CreateCategory(context.Background(), "req", "r1", &models.CreateCategoryRequest{
		Title:       "<b>Pizza</b>",
		Description: "Wood-fired <script>alert(1)</script>classics",
	})
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}
	if c.Title != "Pizza" {
		t.Errorf("title = %q, want markup stripped", c.Title)
	}
	if c.Description != "Wood-fired alert(1)classics" {
		t.Errorf("description = %q, want markup stripped", c.Description)
	}
}

func TestUpdateCategory_PartialMerge(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	c, err := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza", Description: "old"})
	if err != nil {
		t.Fatalf("CreateCategory returned error: %v", err)
	}

	updated, err := svc.UpdateCategory(ctx, "req", c.ID, "r1", &models.UpdateCategoryRequest{
		Description: strPtr("new"),
	})
	if err != nil {
		t.Fatalf("UpdateCategory returned error: %v", err)
	}
	if updated.Title != "Pizza" {
		t.Errorf("omitted title changed to %q", updated.Title)
	}
	if updated.Description != "new" {
		t.Errorf("description = %q, want %q", updated.Description, "new")
	}
	if updated.SortOrder != c.SortOrder {
		t.Errorf("omitted sort order changed to %d", updated.SortOrder)
	}
}

func TestUpdateCategory_RepositionSwap(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	a, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "A"})
	b, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "B"})

	updated, err := svc.UpdateCategory(ctx, "req", a.ID, "r1", &models.UpdateCategoryRequest{SortOrder: intPtr(1)})
	if err != nil {
		t.Fatalf("UpdateCategory returned error: %v", err)
	}
	if updated.SortOrder != 1 {
		t.Errorf("moved category sort order = %d, want 1", updated.SortOrder)
	}

	sibling, _ := store.CategoryByID(ctx, b.ID)
	if sibling.SortOrder != 0 {
		t.Errorf("sibling sort order = %d, want 0", sibling.SortOrder)
	}
}

func TestUpdateCategory_DuplicateTitle(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	_, _ = svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})
	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pasta"})

	_, err := svc.UpdateCategory(ctx, "req", c.ID, "r1", &models.UpdateCategoryRequest{Title: strPtr("Pizza")})
	var dup models.DuplicateTitleError
	if !errors.As(err, &dup) {
		t.Errorf("expected DuplicateTitleError, got %v", err)
	}

	// Re-submitting the current title is not a conflict
	if _, err := svc.UpdateCategory(ctx, "req", c.ID, "r1", &models.UpdateCategoryRequest{Title: strPtr("Pasta")}); err != nil {
		t.Errorf("update with unchanged title returned error: %v", err)
	}
}

func TestUpdateCategory_OwnershipMismatch(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})

	_, err := svc.UpdateCategory(ctx, "req", c.ID, "r2", &models.UpdateCategoryRequest{Title: strPtr("Hijacked")})
	if !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError for foreign restaurant, got %v", err)
	}
}

func TestUpdateCategory_StrictBounds(t *testing.T) {
	store := newMemStore()
	svc := NewService(store, nil, logger.New("test"), true)
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "A"})
	_, _ = svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "B"})

	_, err := svc.UpdateCategory(ctx, "req", c.ID, "r1", &models.UpdateCategoryRequest{SortOrder: intPtr(5)})
	var ve models.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for out-of-range target, got %v", err)
	}

	if _, err := svc.UpdateCategory(ctx, "req", c.ID, "r1", &models.UpdateCategoryRequest{SortOrder: intPtr(1)}); err != nil {
		t.Errorf("in-range reposition returned error: %v", err)
	}
}

func TestDeleteCategory_LeavesGaps(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	_, _ = svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "A"})
	b, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "B"})
	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "C"})

	if err := svc.DeleteCategory(ctx, "req", b.ID, "r1"); err != nil {
		t.Fatalf("DeleteCategory returned error: %v", err)
	}

	// Remaining siblings keep their sort order; the gap at 1 persists
	remaining, _ := svc.CategoriesByRestaurant(ctx, "r1")
	if len(remaining) != 2 {
		t.Fatalf("expected 2 categories after delete, got %d", len(remaining))
	}
	if remaining[0].SortOrder != 0 || remaining[1].SortOrder != 2 {
		t.Errorf("sort orders = %d, %d, want 0, 2", remaining[0].SortOrder, remaining[1].SortOrder)
	}

	survivor, _ := store.CategoryByID(ctx, c.ID)
	if survivor.SortOrder != 2 {
		t.Errorf("survivor sort order = %d, want 2", survivor.SortOrder)
	}
}

func TestCreateMenu_TransitiveOwnership(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})

	req := &models.CreateMenuRequest{Title: "Margherita", Description: "Classic", Price: 10}
	if _, err := svc.CreateMenu(ctx, "req", c.ID, "r2", req); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError for foreign category, got %v", err)
	}

	m, err := svc.CreateMenu(ctx, "req", c.ID, "r1", req)
	if err != nil {
		t.Fatalf("CreateMenu returned error: %v", err)
	}
	if m.SortOrder != 0 {
		t.Errorf("first menu sort order = %d, want 0", m.SortOrder)
	}
}

func TestCreateMenu_InvalidPrice(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})

	_, err := svc.CreateMenu(ctx, "req", c.ID, "r1", &models.CreateMenuRequest{Title: "Free", Description: "d", Price: 0})
	var ve models.ValidationError
	if !errors.As(err, &ve) {
		t.Errorf("expected ValidationError for non-positive price, got %v", err)
	}
}

func TestUpdateMenu_RepositionWithinCategory(t *testing.T) {
	store := newMemStore()
	svc := newTestService(store)
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})
	m1, _ := svc.CreateMenu(ctx, "req", c.ID, "r1", &models.CreateMenuRequest{Title: "Margherita", Description: "d", Price: 10})
	m2, _ := svc.CreateMenu(ctx, "req", c.ID, "r1", &models.CreateMenuRequest{Title: "Pepperoni", Description: "d", Price: 12})

	updated, err := svc.UpdateMenu(ctx, "req", m1.ID, "r1", &models.UpdateMenuRequest{SortOrder: intPtr(1)})
	if err != nil {
		t.Fatalf("UpdateMenu returned error: %v", err)
	}
	if updated.SortOrder != 1 {
		t.Errorf("moved menu sort order = %d, want 1", updated.SortOrder)
	}

	sibling, _ := store.MenuByID(ctx, m2.ID)
	if sibling.SortOrder != 0 {
		t.Errorf("sibling sort order = %d, want 0", sibling.SortOrder)
	}
}

func TestUpdateMenu_MergesPrice(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})
	m, _ := svc.CreateMenu(ctx, "req", c.ID, "r1", &models.CreateMenuRequest{Title: "Margherita", Description: "d", Price: 10})

	updated, err := svc.UpdateMenu(ctx, "req", m.ID, "r1", &models.UpdateMenuRequest{Price: floatPtr(11.5)})
	if err != nil {
		t.Fatalf("UpdateMenu returned error: %v", err)
	}
	if updated.Price != 11.5 {
		t.Errorf("price = %v, want 11.5", updated.Price)
	}
	if updated.Title != "Margherita" {
		t.Errorf("omitted title changed to %q", updated.Title)
	}
}

func TestDeleteMenu_OwnershipMismatch(t *testing.T) {
	svc := newTestService(newMemStore())
	ctx := context.Background()

	c, _ := svc.CreateCategory(ctx, "req", "r1", &models.CreateCategoryRequest{Title: "Pizza"})
	m, _ := svc.CreateMenu(ctx, "req", c.ID, "r1", &models.CreateMenuRequest{Title: "Margherita", Description: "d", Price: 10})

	if err := svc.DeleteMenu(ctx, "req", m.ID, "r2"); !models.IsNotFound(err) {
		t.Errorf("expected NotFoundError for foreign menu, got %v", err)
	}

	if err := svc.DeleteMenu(ctx, "req", m.ID, "r1"); err != nil {
		t.Errorf("DeleteMenu returned error: %v", err)
	}
}
