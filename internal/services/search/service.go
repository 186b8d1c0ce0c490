// Package search joins directory data with this service's catalog: zipcode
// search results and full restaurant detail views.
package search

import (
	"context"
	"fmt"
	"regexp"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/models"
)

// Danish zip codes are exactly four digits
var zipcodePattern = regexp.MustCompile(`^\d{4}$`)

// Directory is the slice of the restaurant directory this service reads
type Directory interface {
	Restaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error)
	RestaurantsByZipcode(ctx context.Context, zipcode string) ([]models.Restaurant, error)
}

// CategoryLister provides a restaurant's ordered categories
type CategoryLister interface {
	CategoriesByRestaurant(ctx context.Context, restaurantID string) ([]models.Category, error)
}

// Service answers search and detail queries
type Service struct {
	directory Directory
	catalog   CategoryLister
	logger    *logger.Logger
}

// NewService creates the search service
func NewService(directory Directory, catalog CategoryLister, log *logger.Logger) *Service {
	return &Service{
		directory: directory,
		catalog:   catalog,
		logger:    log,
	}
}

// ValidateZipcode checks a Danish zip code
func ValidateZipcode(zipcode string) error {
	if !zipcodePattern.MatchString(zipcode) {
		return models.ValidationError{Field: "zipcode", Message: "invalid Danish zip code"}
	}
	return nil
}

// ByZipcode lists the restaurants in a zipcode together with their category
// titles
func (s *Service) ByZipcode(ctx context.Context, requestID, zipcode string) ([]models.RestaurantSummary, error) {
	if err := ValidateZipcode(zipcode); err != nil {
		return nil, err
	}

	restaurants, err := s.directory.RestaurantsByZipcode(ctx, zipcode)
	if err != nil {
		return nil, s.unexpected("zipcode_search_failed", "Failed to search directory by zipcode", requestID, err)
	}

	summaries := make([]models.RestaurantSummary, 0, len(restaurants))
	for _, restaurant := range restaurants {
		categories, err := s.catalog.CategoriesByRestaurant(ctx, restaurant.ID)
		if err != nil {
			return nil, s.unexpected("zipcode_search_failed", "Failed to load categories", requestID, err)
		}

		titles := make([]string, 0, len(categories))
		for _, category := range categories {
			titles = append(titles, category.Title)
		}

		summaries = append(summaries, models.RestaurantSummary{
			Name:       restaurant.Name,
			Email:      restaurant.Email,
			Phone:      restaurant.Phone,
			Categories: titles,
		})
	}

	return summaries, nil
}

// RestaurantDetails merges a restaurant's directory record with its ordered
// catalog
func (s *Service) RestaurantDetails(ctx context.Context, requestID, restaurantID string) (*models.RestaurantDetails, error) {
	restaurant, err := s.directory.Restaurant(ctx, restaurantID)
	if err != nil {
		if models.IsNotFound(err) {
			return nil, err
		}
		return nil, s.unexpected("restaurant_details_failed", "Failed to load restaurant from directory", requestID, err)
	}

	categories, err := s.catalog.CategoriesByRestaurant(ctx, restaurantID)
	if err != nil {
		return nil, s.unexpected("restaurant_details_failed", "Failed to load categories", requestID, err)
	}

	return &models.RestaurantDetails{
		Restaurant: *restaurant,
		Categories: categories,
	}, nil
}

func (s *Service) unexpected(action, message, requestID string, err error) error {
	s.logger.Error(action, message, requestID, err, nil)
	return fmt.Errorf("%s: %w", message, err)
}
