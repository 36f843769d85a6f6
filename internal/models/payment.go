package models

import "time"

// PaymentMethod identifies how the customer chose to pay.
type PaymentMethod string

const (
	PaymentMethodCOD        PaymentMethod = "COD"
	PaymentMethodUPI        PaymentMethod = "UPI"
	PaymentMethodCard       PaymentMethod = "CARD"
	PaymentMethodNetBanking PaymentMethod = "NET_BANKING"
)

// PaymentInfo carries the payment details submitted with an order request.
// Only the fields for the chosen method are required; the rest are ignored.
type PaymentInfo struct {
	PaymentMethod  PaymentMethod `json:"payment_method"`
	UPIID          string        `json:"upi_id,omitempty"`
	CardNumber     string        `json:"card_number,omitempty"`
	CardHolderName string        `json:"card_holder_name,omitempty"`
	ExpiryDate     string        `json:"expiry_date,omitempty"`
	CVV            string        `json:"cvv,omitempty"`
	BankName       string        `json:"bank_name,omitempty"`
}

// PaymentResult is the outcome of a single payment attempt. It is never
// persisted on its own; on success its fields are folded into the order.
type PaymentResult struct {
	Success       bool      `json:"success"`
	PaymentStatus string    `json:"payment_status"`
	TransactionID string    `json:"transaction_id"`
	Message       string    `json:"message"`
	ProcessedAt   time.Time `json:"processed_at"`
}
