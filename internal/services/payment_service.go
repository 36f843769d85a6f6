package services

import (
	"math/rand"
	"strings"
	"time"

	"orderhub/internal/models"

	"github.com/google/uuid"
)

// PaymentService simulates a payment gateway. It is a pure function of its
// inputs plus the injected randomness source: no I/O, no shared state, and
// no retries (retrying is the caller's job).
type PaymentService struct {
	rand func() float64
	now  func() time.Time
}

// NewPaymentService creates a PaymentService backed by the global random
// source and wall clock.
func NewPaymentService() *PaymentService {
	return &PaymentService{
		rand: rand.Float64,
		now:  time.Now,
	}
}

// NewPaymentServiceWithSources creates a PaymentService with injected
// randomness and clock, so tests can force success or failure.
func NewPaymentServiceWithSources(randFn func() float64, now func() time.Time) *PaymentService {
	return &PaymentService{
		rand: randFn,
		now:  now,
	}
}

// ProcessPayment runs a single payment attempt for the chosen method.
func (s *PaymentService) ProcessPayment(info models.PaymentInfo, amount float64) models.PaymentResult {
	switch info.PaymentMethod {
	case models.PaymentMethodCOD:
		return s.processCOD(amount)
	case models.PaymentMethodUPI:
		return s.processUPI(info, amount)
	case models.PaymentMethodCard:
		return s.processCard(info, amount)
	case models.PaymentMethodNetBanking:
		return s.processNetBanking(info, amount)
	default:
		return models.PaymentResult{
			Success: false,
			Message: "Invalid payment method",
		}
	}
}

// processCOD always succeeds; payment is collected on delivery so the
// payment status stays PENDING.
func (s *PaymentService) processCOD(amount float64) models.PaymentResult {
	return models.PaymentResult{
		Success:       true,
		PaymentStatus: "PENDING",
		TransactionID: "COD-" + s.generateTransactionID(),
		Message:       "Cash on Delivery - Payment will be collected upon delivery",
		ProcessedAt:   s.now(),
	}
}

func (s *PaymentService) processUPI(info models.PaymentInfo, amount float64) models.PaymentResult {
	if strings.TrimSpace(info.UPIID) == "" {
		return models.PaymentResult{
			Success: false,
			Message: "UPI ID is required",
		}
	}

	if !s.simulateSuccess() {
		return models.PaymentResult{
			Success: false,
			Message: "UPI payment failed - Please try again",
		}
	}
	return models.PaymentResult{
		Success:       true,
		PaymentStatus: "PAID",
		TransactionID: "UPI-" + s.generateTransactionID(),
		Message:       "UPI payment successful",
		ProcessedAt:   s.now(),
	}
}

func (s *PaymentService) processCard(info models.PaymentInfo, amount float64) models.PaymentResult {
	// Required fields are checked in order; the first missing one decides
	// the error message.
	switch {
	case strings.TrimSpace(info.CardNumber) == "":
		return models.PaymentResult{Success: false, Message: "Card number is required"}
	case strings.TrimSpace(info.CardHolderName) == "":
		return models.PaymentResult{Success: false, Message: "Card holder name is required"}
	case strings.TrimSpace(info.ExpiryDate) == "":
		return models.PaymentResult{Success: false, Message: "Card expiry date is required"}
	case strings.TrimSpace(info.CVV) == "":
		return models.PaymentResult{Success: false, Message: "CVV is required"}
	}

	if !s.simulateSuccess() {
		return models.PaymentResult{
			Success: false,
			Message: "Card payment failed - Please check your card details",
		}
	}
	return models.PaymentResult{
		Success:       true,
		PaymentStatus: "PAID",
		TransactionID: "CARD-" + s.generateTransactionID(),
		Message:       "Card payment successful",
		ProcessedAt:   s.now(),
	}
}

func (s *PaymentService) processNetBanking(info models.PaymentInfo, amount float64) models.PaymentResult {
	if strings.TrimSpace(info.BankName) == "" {
		return models.PaymentResult{
			Success: false,
			Message: "Bank name is required",
		}
	}

	if !s.simulateSuccess() {
		return models.PaymentResult{
			Success: false,
			Message: "Net banking payment failed - Please try again",
		}
	}
	return models.PaymentResult{
		Success:       true,
		PaymentStatus: "PAID",
		TransactionID: "NET-" + s.generateTransactionID(),
		Message:       "Net banking payment successful",
		ProcessedAt:   s.now(),
	}
}

// generateTransactionID combines an 8-char uppercase random token with a
// second-resolution timestamp. Unique in practice without a central counter.
func (s *PaymentService) generateTransactionID() string {
	token := strings.ToUpper(uuid.New().String()[:8])
	return token + s.now().Format("20060102150405")
}

// simulateSuccess models the upstream gateway: roughly 95% of attempts
// succeed.
func (s *PaymentService) simulateSuccess() bool {
	return s.rand() > 0.05
}
