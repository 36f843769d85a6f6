package models

import "time"

// OrderItem represents a single line item owned by an order. Price and
// product name are snapshots taken when the order was placed, not live
// catalog references.
type OrderItem struct {
	ID          uint    `json:"id" gorm:"primaryKey;autoIncrement"`
	OrderID     uint    `json:"-" gorm:"index"`
	ProductID   int64   `json:"product_id"`
	ProductName string  `json:"product_name"`
	Price       float64 `json:"price"` // Unit price at the time of order
	Quantity    int     `json:"quantity"`
	TotalPrice  float64 `json:"total_price"` // Price * Quantity
}

// Order represents a customer order. It is the aggregate root: its items
// are persisted and deleted together with it.
type Order struct {
	OrderID            uint        `json:"order_id" gorm:"primaryKey;autoIncrement"`
	UserID             int64       `json:"user_id" gorm:"index"`
	TotalPrice         float64     `json:"total_price"`
	ShippingAddress    string      `json:"shipping_address"`
	OrderStatus        string      `json:"order_status"` // e.g. "PENDING", "SHIPPED", "DELIVERED"
	PaymentStatus      string      `json:"payment_status"`
	PaymentMethod      string      `json:"payment_method"`
	TransactionID      string      `json:"transaction_id"`
	TrackingNumber     string      `json:"tracking_number"`
	Carrier            string      `json:"carrier"`
	EstimatedDelivery  *time.Time  `json:"estimated_delivery"`
	ShippedAt          *time.Time  `json:"shipped_at"`
	DeliveredAt        *time.Time  `json:"delivered_at"`
	PaymentProcessedAt *time.Time  `json:"payment_processed_at"`
	UserEmail          string      `json:"user_email"`    // Snapshot captured at creation, may be empty
	CustomerName       string      `json:"customer_name"` // Snapshot captured at creation
	CreatedAt          time.Time   `json:"created_at"`
	UpdatedAt          time.Time   `json:"updated_at"`
	Items              []OrderItem `json:"items" gorm:"foreignKey:OrderID;constraint:OnDelete:CASCADE"`
}
