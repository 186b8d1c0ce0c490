package models

import (
	"errors"
	"fmt"
)

// ErrRestaurantNotFound is returned by basket operations when the restaurant
// directory does not know the restaurant, or cannot be reached.
var ErrRestaurantNotFound = errors.New("restaurant not found")

// ValidationError describes a rejected input field
type ValidationError struct {
	Field   string
	Message string
}

func (e ValidationError) Error() string {
	return fmt.Sprintf("%s: %s", e.Field, e.Message)
}

// NotFoundError is returned when a record is absent or owned by someone else.
// Ownership mismatches are deliberately indistinguishable from missing rows.
type NotFoundError struct {
	Resource string
	ID       string
}

func (e NotFoundError) Error() string {
	if e.ID == "" {
		return fmt.Sprintf("%s not found", e.Resource)
	}
	return fmt.Sprintf("%s %s not found", e.Resource, e.ID)
}

// DuplicateTitleError is the translation of a unique-constraint violation on
// a title column.
type DuplicateTitleError struct {
	Title string
}

func (e DuplicateTitleError) Error() string {
	return fmt.Sprintf("a record with title %q already exists", e.Title)
}

// IsNotFound reports whether err is a NotFoundError.
func IsNotFound(err error) bool {
	var nf NotFoundError
	return errors.As(err, &nf)
}
