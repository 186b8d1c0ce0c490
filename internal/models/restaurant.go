package models

import "time"

// Restaurant is the directory's view of a restaurant. This service does not
// own restaurant data; it only reads it from the directory.
type Restaurant struct {
	ID        string    `json:"id"`
	Name      string    `json:"name"`
	Email     string    `json:"email"`
	Phone     string    `json:"phone"`
	Address   Address   `json:"address"`
	CreatedAt time.Time `json:"created_at"`
}

// Address is a restaurant's postal address as reported by the directory
type Address struct {
	Street string `json:"street"`
	City   string `json:"city"`
	State  string `json:"state"`
	Zip    string `json:"zip"`
}

// RestaurantDetails combines directory data with the restaurant's catalog
type RestaurantDetails struct {
	Restaurant
	Categories []Category `json:"categories"`
}

// RestaurantSummary is one entry of a zipcode search result
type RestaurantSummary struct {
	Name       string   `json:"name"`
	Email      string   `json:"email"`
	Phone      string   `json:"phone"`
	Categories []string `json:"categories"`
}
