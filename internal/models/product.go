package models

// Product is the catalog view of a product as served by the external
// product service. This service never owns or mutates catalog data.
type Product struct {
	ID            int64   `json:"id"`
	Name          string  `json:"name"`
	Price         float64 `json:"price"`
	StockQuantity int     `json:"stock_quantity"`
}

// CartItem is a single entry of a user's cart as served by the external
// cart service.
type CartItem struct {
	ProductID int64 `json:"product_id"`
	Quantity  int   `json:"quantity"`
}
