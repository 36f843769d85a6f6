package clients

import (
	"errors"

	"orderhub/internal/models"
)

// ErrNotFound is returned when a collaborator reports that the requested
// resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ProductClient is the inventory gateway: product lookups for validation
// and stock decrements after an order is placed. The product service owns
// the catalog; no coordination beyond these two calls is provided, so two
// concurrent orders can both pass the stock check before either decrements.
type ProductClient interface {
	GetProductByID(productID int64) (*models.Product, error)
	UpdateStockForOrder(productID int64, quantity int) error
}

// CartClient is the cart gateway: reads a user's cart at checkout and
// clears it afterwards.
type CartClient interface {
	GetCartItems(userID int64) ([]models.CartItem, error)
	ClearCart(userID int64) error
}

// UserClient is the user directory gateway, used to resolve an email and
// display name for order notifications.
type UserClient interface {
	GetUserByID(userID int64) (*models.User, error)
}

// NotificationClient is the notification gateway. Every call is
// best-effort from the orchestrator's point of view: failures are logged
// and never affect the order outcome.
type NotificationClient interface {
	SendOrderConfirmation(email, orderID, totalAmount string) error
	SendOrderShipped(email, orderID, trackingNumber, carrier string) error
	SendOrderDelivered(email, orderID string) error
	SendNewOrderToAdmin(adminEmail, orderID, customerEmail, totalAmount, customerName string) error
	SendStatusUpdateToAdmin(adminEmail, orderID, status, customerEmail string) error
}
