package database

// Category queries
const (
	InsertCategorySQL = `
		INSERT INTO categories (id, title, description, sort_order, restaurant_id)
		VALUES ($1, $2, $3, $4, $5)
		RETURNING created_at, updated_at`

	GetCategorySQL = `
		SELECT id, title, description, sort_order, restaurant_id, created_at, updated_at
		FROM categories WHERE id = $1`

	ListCategoriesSQL = `
		SELECT id, title, description, sort_order, restaurant_id, created_at, updated_at
		FROM categories
		WHERE restaurant_id = $1
		ORDER BY sort_order ASC`

	CountCategoriesSQL = `
		SELECT COUNT(*) FROM categories WHERE restaurant_id = $1`

	CategoryTitleTakenSQL = `
		SELECT COUNT(*) FROM categories
		WHERE restaurant_id = $1 AND title = $2 AND id <> $3`

	UpdateCategorySQL = `
		UPDATE categories
		SET title = $1, description = $2, sort_order = $3, updated_at = NOW()
		WHERE id = $4`

	ShiftCategoriesSQL = `
		UPDATE categories
		SET sort_order = sort_order + $1, updated_at = NOW()
		WHERE restaurant_id = $2 AND sort_order BETWEEN $3 AND $4 AND id <> $5`

	DeleteCategorySQL = `
		DELETE FROM categories WHERE id = $1`
)

// Menu queries
const (
	InsertMenuSQL = `
		INSERT INTO menus (id, title, description, price, sort_order, category_id)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING created_at, updated_at`

	GetMenuSQL = `
		SELECT id, title, description, price, sort_order, category_id, created_at, updated_at
		FROM menus WHERE id = $1`

	ListMenusSQL = `
		SELECT id, title, description, price, sort_order, category_id, created_at, updated_at
		FROM menus
		WHERE category_id = $1
		ORDER BY sort_order ASC`

	CountMenusSQL = `
		SELECT COUNT(*) FROM menus WHERE category_id = $1`

	MenuTitleTakenSQL = `
		SELECT COUNT(*) FROM menus
		WHERE category_id = $1 AND title = $2 AND id <> $3`

	UpdateMenuSQL = `
		UPDATE menus
		SET title = $1, description = $2, price = $3, sort_order = $4, updated_at = NOW()
		WHERE id = $5`

	ShiftMenusSQL = `
		UPDATE menus
		SET sort_order = sort_order + $1, updated_at = NOW()
		WHERE category_id = $2 AND sort_order BETWEEN $3 AND $4 AND id <> $5`

	DeleteMenuSQL = `
		DELETE FROM menus WHERE id = $1`
)

// Basket queries
const (
	InsertBasketSQL = `
		INSERT INTO baskets (id, customer_id, restaurant_id)
		VALUES ($1, $2, $3)
		ON CONFLICT (customer_id, restaurant_id) DO NOTHING`

	GetBasketByPairSQL = `
		SELECT id, customer_id, restaurant_id, created_at
		FROM baskets
		WHERE customer_id = $1 AND restaurant_id = $2`

	ListBasketItemsSQL = `
		SELECT id, basket_id, menu_id, title, quantity, price
		FROM basket_items
		WHERE basket_id = $1
		ORDER BY created_at ASC`

	GetBasketItemByMenuSQL = `
		SELECT id, basket_id, menu_id, title, quantity, price
		FROM basket_items
		WHERE basket_id = $1 AND menu_id = $2`

	GetBasketItemSQL = `
		SELECT id, basket_id, menu_id, title, quantity, price
		FROM basket_items
		WHERE basket_id = $1 AND id = $2`

	InsertBasketItemSQL = `
		INSERT INTO basket_items (id, basket_id, menu_id, title, quantity, price)
		VALUES ($1, $2, $3, $4, $5, $6)`

	UpdateBasketItemSQL = `
		UPDATE basket_items SET quantity = $1, price = $2 WHERE id = $3`

	DeleteBasketItemSQL = `
		DELETE FROM basket_items WHERE id = $1`

	CountBasketItemsSQL = `
		SELECT COUNT(*) FROM basket_items WHERE basket_id = $1`

	DeleteBasketItemsSQL = `
		DELETE FROM basket_items WHERE basket_id = $1`

	DeleteBasketSQL = `
		DELETE FROM baskets WHERE id = $1`
)
