package models

import (
	"time"
)

const (
	maxTitleLen       = 55
	maxDescriptionLen = 255
)

// Category is an ordered group of menu items owned by a restaurant
type Category struct {
	ID           string    `json:"id" db:"id"`
	Title        string    `json:"title" db:"title"`
	Description  string    `json:"description" db:"description"`
	SortOrder    int       `json:"sort_order" db:"sort_order"`
	RestaurantID string    `json:"restaurant_id,omitempty" db:"restaurant_id"`
	CreatedAt    time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt    time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// MenuItem is a purchasable entry inside a category. Restaurant ownership is
// transitive through the category.
type MenuItem struct {
	ID          string    `json:"id" db:"id"`
	Title       string    `json:"title" db:"title"`
	Description string    `json:"description" db:"description"`
	Price       float64   `json:"price" db:"price"`
	SortOrder   int       `json:"sort_order" db:"sort_order"`
	CategoryID  string    `json:"category_id,omitempty" db:"category_id"`
	CreatedAt   time.Time `json:"created_at,omitempty" db:"created_at"`
	UpdatedAt   time.Time `json:"updated_at,omitempty" db:"updated_at"`
}

// CreateCategoryRequest represents the request to create a category
type CreateCategoryRequest struct {
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`
}

// Validate checks the create category request
func (req *CreateCategoryRequest) Validate() error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	return validateDescription(req.Description, false)
}

// UpdateCategoryRequest carries a partial category update. Nil fields keep
// their current value.
type UpdateCategoryRequest struct {
	Title       *string `json:"title,omitempty"`
	Description *string `json:"description,omitempty"`
	SortOrder   *int    `json:"sort_order,omitempty"`
}

// Validate checks the supplied fields of a partial category update
func (req *UpdateCategoryRequest) Validate() error {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description, true); err != nil {
			return err
		}
	}
	if req.SortOrder != nil && *req.SortOrder < 0 {
		return ValidationError{Field: "sort_order", Message: "sort_order must not be negative"}
	}
	return nil
}

// CreateMenuRequest represents the request to create a menu item
type CreateMenuRequest struct {
	Title       string  `json:"title"`
	Description string  `json:"description"`
	Price       float64 `json:"price"`
}

// Validate checks the create menu request
func (req *CreateMenuRequest) Validate() error {
	if err := validateTitle(req.Title); err != nil {
		return err
	}
	if err := validateDescription(req.Description, true); err != nil {
		return err
	}
	return validatePrice(req.Price)
}

// UpdateMenuRequest carries a partial menu item update
type UpdateMenuRequest struct {
	Title       *string  `json:"title,omitempty"`
	Description *string  `json:"description,omitempty"`
	Price       *float64 `json:"price,omitempty"`
	SortOrder   *int     `json:"sort_order,omitempty"`
}

// Validate checks the supplied fields of a partial menu update
func (req *UpdateMenuRequest) Validate() error {
	if req.Title != nil {
		if err := validateTitle(*req.Title); err != nil {
			return err
		}
	}
	if req.Description != nil {
		if err := validateDescription(*req.Description, true); err != nil {
			return err
		}
	}
	if req.Price != nil {
		if err := validatePrice(*req.Price); err != nil {
			return err
		}
	}
	if req.SortOrder != nil && *req.SortOrder < 0 {
		return ValidationError{Field: "sort_order", Message: "sort_order must not be negative"}
	}
	return nil
}

// CategoryCreatedEvent is published after a category is created
type CategoryCreatedEvent struct {
	CategoryID   string    `json:"category_id"`
	RestaurantID string    `json:"restaurant_id"`
	Title        string    `json:"title"`
	SortOrder    int       `json:"sort_order"`
	CreatedAt    time.Time `json:"created_at"`
}

func validateTitle(title string) error {
	if title == "" {
		return ValidationError{Field: "title", Message: "title is required"}
	}
	if len(title) > maxTitleLen {
		return ValidationError{Field: "title", Message: "title must not exceed 55 characters"}
	}
	return nil
}

func validateDescription(description string, required bool) error {
	if required && description == "" {
		return ValidationError{Field: "description", Message: "description is required"}
	}
	if len(description) > maxDescriptionLen {
		return ValidationError{Field: "description", Message: "description must not exceed 255 characters"}
	}
	return nil
}

func validatePrice(price float64) error {
	if price <= 0 {
		return ValidationError{Field: "price", Message: "price must be greater than 0"}
	}
	return nil
}
