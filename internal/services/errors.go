package services

// ValidationError reports missing or malformed request input. It is never
// retried and always surfaces before anything is persisted.
type ValidationError struct {
	Message string
}

func (e *ValidationError) Error() string { return e.Message }

// StockError reports that a requested item is unavailable or its stock is
// insufficient. The whole order is rejected; no partial order is created.
type StockError struct {
	Message string
}

func (e *StockError) Error() string { return e.Message }

// PaymentError reports that every payment attempt failed. It carries the
// processor's last message.
type PaymentError struct {
	Message string
}

func (e *PaymentError) Error() string { return e.Message }

// NotFoundError reports that a referenced order does not exist.
type NotFoundError struct {
	Message string
}

func (e *NotFoundError) Error() string { return e.Message }
