package clients

import (
	"fmt"
	"net/http"
	"net/url"
	"strconv"

	"orderhub/internal/models"
)

// HTTPProductClient talks to the external product service over REST.
type HTTPProductClient struct {
	baseURL string
	client  httpDoer
}

// NewHTTPProductClient creates a product client for the given base URL,
// e.g. "http://localhost:8082".
func NewHTTPProductClient(baseURL string) *HTTPProductClient {
	return &HTTPProductClient{
		baseURL: baseURL,
		client:  defaultHTTPClient(),
	}
}

// GetProductByID fetches a product's current price, name and stock.
func (c *HTTPProductClient) GetProductByID(productID int64) (*models.Product, error) {
	var product models.Product
	endpoint := fmt.Sprintf("%s/products/%d", c.baseURL, productID)
	if err := getJSON(c.client, endpoint, &product); err != nil {
		return nil, err
	}
	return &product, nil
}

// UpdateStockForOrder decrements a product's stock by the ordered quantity.
func (c *HTTPProductClient) UpdateStockForOrder(productID int64, quantity int) error {
	endpoint := fmt.Sprintf("%s/products/order/updateStockQuantity/%d", c.baseURL, productID)
	params := url.Values{"quantity": {strconv.Itoa(quantity)}}
	return send(c.client, http.MethodPut, endpoint, params)
}
