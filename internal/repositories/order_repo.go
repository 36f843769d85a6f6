package repositories

import (
	"orderhub/internal/models"
)

// OrderRepository defines the interface for order data access. An order
// and its items form one aggregate: Create and Delete act on both.
type OrderRepository interface {
	Create(order *models.Order) error
	Save(order *models.Order) error
	GetByID(orderID uint) (*models.Order, error)
	GetByUserID(userID int64) ([]models.Order, error)
	GetAll() ([]models.Order, error)
	Delete(orderID uint) error
	Count() (int64, error)
}
