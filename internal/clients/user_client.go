package clients

import (
	"fmt"

	"orderhub/internal/models"
)

// HTTPUserClient talks to the external user service over REST.
type HTTPUserClient struct {
	baseURL string
	client  httpDoer
}

// NewHTTPUserClient creates a user directory client for the given base URL.
func NewHTTPUserClient(baseURL string) *HTTPUserClient {
	return &HTTPUserClient{
		baseURL: baseURL,
		client:  defaultHTTPClient(),
	}
}

// GetUserByID resolves a user id to an email and display name.
func (c *HTTPUserClient) GetUserByID(userID int64) (*models.User, error) {
	var user models.User
	endpoint := fmt.Sprintf("%s/auth/user/%d", c.baseURL, userID)
	if err := getJSON(c.client, endpoint, &user); err != nil {
		return nil, err
	}
	return &user, nil
}
