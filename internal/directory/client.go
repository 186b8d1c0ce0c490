// Package directory is the client for the restaurant directory service, the
// external owner of restaurant data. This service never writes to it.
package directory

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"restaurant-service/internal/logger"
	"restaurant-service/internal/models"
)

// Client looks up restaurants in the remote directory over HTTP
type Client struct {
	baseURL    string
	httpClient *http.Client
	logger     *logger.Logger
}

// New creates a directory client against the given base URL
func New(baseURL string, log *logger.Logger) *Client {
	return &Client{
		baseURL: baseURL,
		httpClient: &http.Client{
			Timeout: 5 * time.Second,
		},
		logger: log,
	}
}

// Exists reports whether the directory knows the restaurant
func (c *Client) Exists(ctx context.Context, restaurantID string) (bool, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/api/restaurants/%s", restaurantID))
	if err != nil {
		return false, err
	}
	defer resp.Body.Close()

	switch resp.StatusCode {
	case http.StatusOK:
		return true, nil
	case http.StatusNotFound:
		return false, nil
	default:
		return false, fmt.Errorf("directory returned unexpected status %d", resp.StatusCode)
	}
}

// Restaurant fetches a restaurant's directory record
func (c *Client) Restaurant(ctx context.Context, restaurantID string) (*models.Restaurant, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/api/restaurants/%s", restaurantID))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return nil, models.NotFoundError{Resource: "restaurant", ID: restaurantID}
	}
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Restaurant models.Restaurant `json:"restaurant"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	return &payload.Restaurant, nil
}

// RestaurantsByZipcode lists the restaurants the directory knows in a zipcode
func (c *Client) RestaurantsByZipcode(ctx context.Context, zipcode string) ([]models.Restaurant, error) {
	resp, err := c.get(ctx, fmt.Sprintf("/api/restaurants/zipcode/%s", zipcode))
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("directory returned unexpected status %d", resp.StatusCode)
	}

	var payload struct {
		Restaurants []models.Restaurant `json:"restaurants"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&payload); err != nil {
		return nil, fmt.Errorf("failed to decode directory response: %w", err)
	}

	return payload.Restaurants, nil
}

func (c *Client) get(ctx context.Context, path string) (*http.Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build directory request: %w", err)
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to reach directory: %w", err)
	}

	return resp, nil
}
