package clients

import (
	"net/http"
	"net/url"
)

// HTTPNotificationClient talks to the external notification service over
// REST. The notification service renders and delivers the actual emails;
// this client only fires the triggers.
type HTTPNotificationClient struct {
	baseURL string
	client  httpDoer
}

// NewHTTPNotificationClient creates a notification client for the given
// base URL.
func NewHTTPNotificationClient(baseURL string) *HTTPNotificationClient {
	return &HTTPNotificationClient{
		baseURL: baseURL,
		client:  defaultHTTPClient(),
	}
}

func (c *HTTPNotificationClient) post(path string, params url.Values) error {
	return send(c.client, http.MethodPost, c.baseURL+path, params)
}

// SendOrderConfirmation triggers the order confirmation email to a customer.
func (c *HTTPNotificationClient) SendOrderConfirmation(email, orderID, totalAmount string) error {
	return c.post("/notifications/order-confirmation", url.Values{
		"email":       {email},
		"orderId":     {orderID},
		"totalAmount": {totalAmount},
	})
}

// SendOrderShipped triggers the shipping notification email.
func (c *HTTPNotificationClient) SendOrderShipped(email, orderID, trackingNumber, carrier string) error {
	return c.post("/notifications/order-shipped", url.Values{
		"email":          {email},
		"orderId":        {orderID},
		"trackingNumber": {trackingNumber},
		"carrier":        {carrier},
	})
}

// SendOrderDelivered triggers the delivery notification email.
func (c *HTTPNotificationClient) SendOrderDelivered(email, orderID string) error {
	return c.post("/notifications/order-delivered", url.Values{
		"email":   {email},
		"orderId": {orderID},
	})
}

// SendNewOrderToAdmin notifies the configured admin address of a new order.
func (c *HTTPNotificationClient) SendNewOrderToAdmin(adminEmail, orderID, customerEmail, totalAmount, customerName string) error {
	return c.post("/notifications/admin/new-order", url.Values{
		"adminEmail":    {adminEmail},
		"orderId":       {orderID},
		"customerEmail": {customerEmail},
		"totalAmount":   {totalAmount},
		"customerName":  {customerName},
	})
}

// SendStatusUpdateToAdmin notifies the admin of an order status change.
func (c *HTTPNotificationClient) SendStatusUpdateToAdmin(adminEmail, orderID, status, customerEmail string) error {
	return c.post("/notifications/admin/order-status-update", url.Values{
		"adminEmail":    {adminEmail},
		"orderId":       {orderID},
		"status":        {status},
		"customerEmail": {customerEmail},
	})
}
