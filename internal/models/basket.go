package models

import "time"

// Basket holds a customer's pending items for one restaurant. A basket with
// zero items is treated as nonexistent and pruned on read.
type Basket struct {
	ID           string       `json:"id" db:"id"`
	CustomerID   string       `json:"customer_id" db:"customer_id"`
	RestaurantID string       `json:"restaurant_id" db:"restaurant_id"`
	Items        []BasketItem `json:"items"`
	CreatedAt    time.Time    `json:"created_at,omitempty" db:"created_at"`
}

// BasketItem is one line of a basket. Title and price are snapshots taken at
// add or update time, not live references into the menu.
type BasketItem struct {
	ID       string  `json:"id" db:"id"`
	BasketID string  `json:"basket_id,omitempty" db:"basket_id"`
	MenuID   string  `json:"menu_id" db:"menu_id"`
	Title    string  `json:"title" db:"title"`
	Quantity int     `json:"quantity" db:"quantity"`
	Price    float64 `json:"price" db:"price"`
}

// AddItemRequest represents the request to add a menu item to a basket
type AddItemRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	MenuID       string  `json:"menu_id"`
	Title        string  `json:"title"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Validate checks the add-to-basket request. A non-positive quantity is legal
// here; the basket engine uses it to remove an existing line.
func (req *AddItemRequest) Validate() error {
	if req.RestaurantID == "" {
		return ValidationError{Field: "restaurant_id", Message: "restaurant_id is required"}
	}
	if req.MenuID == "" {
		return ValidationError{Field: "menu_id", Message: "menu_id is required"}
	}
	if req.Title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if req.Price < 0 {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}

// UpdateItemRequest represents the request to change a basket line
type UpdateItemRequest struct {
	RestaurantID string  `json:"restaurant_id"`
	ItemID       string  `json:"item_id"`
	Quantity     int     `json:"quantity"`
	Price        float64 `json:"price"`
}

// Validate checks the update-basket request
func (req *UpdateItemRequest) Validate() error {
	if req.RestaurantID == "" {
		return ValidationError{Field: "restaurant_id", Message: "restaurant_id is required"}
	}
	if req.ItemID == "" {
		return ValidationError{Field: "item_id", Message: "item_id is required"}
	}
	if req.Price < 0 {
		return ValidationError{Field: "price", Message: "price must not be negative"}
	}
	return nil
}
