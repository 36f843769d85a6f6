package models

import "time"

// OrderItemRequest is a line item supplied explicitly with an order request.
type OrderItemRequest struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}

// OrderRequest is the payload for placing an order. Items are optional:
// when absent the user's cart is used instead.
type OrderRequest struct {
	ShippingAddress string             `json:"shipping_address" validate:"required"`
	PaymentInfo     *PaymentInfo       `json:"payment_info"`
	Items           []OrderItemRequest `json:"items,omitempty"`
}

// OrderResponse is the API view of a persisted order.
type OrderResponse struct {
	OrderID            uint        `json:"order_id"`
	UserID             int64       `json:"user_id"`
	TotalPrice         float64     `json:"total_price"`
	OrderStatus        string      `json:"order_status"`
	PaymentStatus      string      `json:"payment_status"`
	ShippingAddress    string      `json:"shipping_address"`
	TrackingNumber     string      `json:"tracking_number"`
	Carrier            string      `json:"carrier"`
	EstimatedDelivery  *time.Time  `json:"estimated_delivery"`
	ShippedAt          *time.Time  `json:"shipped_at"`
	DeliveredAt        *time.Time  `json:"delivered_at"`
	PaymentMethod      string      `json:"payment_method"`
	TransactionID      string      `json:"transaction_id"`
	PaymentProcessedAt *time.Time  `json:"payment_processed_at"`
	CreatedAt          time.Time   `json:"created_at"`
	Items              []OrderItem `json:"items"`
}

// NewOrderResponse builds an OrderResponse from a persisted order.
func NewOrderResponse(order *Order) *OrderResponse {
	return &OrderResponse{
		OrderID:            order.OrderID,
		UserID:             order.UserID,
		TotalPrice:         order.TotalPrice,
		OrderStatus:        order.OrderStatus,
		PaymentStatus:      order.PaymentStatus,
		ShippingAddress:    order.ShippingAddress,
		TrackingNumber:     order.TrackingNumber,
		Carrier:            order.Carrier,
		EstimatedDelivery:  order.EstimatedDelivery,
		ShippedAt:          order.ShippedAt,
		DeliveredAt:        order.DeliveredAt,
		PaymentMethod:      order.PaymentMethod,
		TransactionID:      order.TransactionID,
		PaymentProcessedAt: order.PaymentProcessedAt,
		CreatedAt:          order.CreatedAt,
		Items:              order.Items,
	}
}
