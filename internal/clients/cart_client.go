package clients

import (
	"fmt"
	"net/http"

	"orderhub/internal/models"
)

// HTTPCartClient talks to the external cart service over REST.
type HTTPCartClient struct {
	baseURL string
	client  httpDoer
}

// NewHTTPCartClient creates a cart client for the given base URL.
func NewHTTPCartClient(baseURL string) *HTTPCartClient {
	return &HTTPCartClient{
		baseURL: baseURL,
		client:  defaultHTTPClient(),
	}
}

// GetCartItems fetches the user's current cart contents.
func (c *HTTPCartClient) GetCartItems(userID int64) ([]models.CartItem, error) {
	var items []models.CartItem
	endpoint := fmt.Sprintf("%s/cart/user/%d", c.baseURL, userID)
	if err := getJSON(c.client, endpoint, &items); err != nil {
		return nil, err
	}
	return items, nil
}

// ClearCart removes all items from the user's cart.
func (c *HTTPCartClient) ClearCart(userID int64) error {
	endpoint := fmt.Sprintf("%s/cart/clear/%d", c.baseURL, userID)
	return send(c.client, http.MethodDelete, endpoint, nil)
}
