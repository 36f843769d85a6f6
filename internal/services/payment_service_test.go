package services_test

import (
	"strings"
	"testing"
	"time"

	"orderhub/internal/models"
	"orderhub/internal/services"

	"github.com/stretchr/testify/assert"
)

var fixedTime = time.Date(2025, 3, 14, 10, 30, 0, 0, time.UTC)

func alwaysSucceed() float64 { return 1.0 }
func alwaysFail() float64    { return 0.0 }

func fixedClock() time.Time { return fixedTime }

func TestPaymentService_COD(t *testing.T) {
	// COD must succeed regardless of the simulated gateway outcome.
	service := services.NewPaymentServiceWithSources(alwaysFail, fixedClock)

	result := service.ProcessPayment(models.PaymentInfo{PaymentMethod: models.PaymentMethodCOD}, 100.0)

	assert.True(t, result.Success)
	assert.Equal(t, "PENDING", result.PaymentStatus)
	assert.True(t, strings.HasPrefix(result.TransactionID, "COD-"))
	assert.Equal(t, "Cash on Delivery - Payment will be collected upon delivery", result.Message)
	assert.Equal(t, fixedTime, result.ProcessedAt)
}

func TestPaymentService_UPI(t *testing.T) {
	service := services.NewPaymentServiceWithSources(alwaysSucceed, fixedClock)

	// Missing UPI ID fails before the simulated gateway runs.
	result := service.ProcessPayment(models.PaymentInfo{PaymentMethod: models.PaymentMethodUPI}, 50.0)
	assert.False(t, result.Success)
	assert.Equal(t, "UPI ID is required", result.Message)
	assert.Empty(t, result.TransactionID)

	// Valid UPI ID with a succeeding gateway.
	result = service.ProcessPayment(models.PaymentInfo{
		PaymentMethod: models.PaymentMethodUPI,
		UPIID:         "someone@upi",
	}, 50.0)
	assert.True(t, result.Success)
	assert.Equal(t, "PAID", result.PaymentStatus)
	assert.True(t, strings.HasPrefix(result.TransactionID, "UPI-"))
	assert.Equal(t, "UPI payment successful", result.Message)

	// Gateway failure.
	service = services.NewPaymentServiceWithSources(alwaysFail, fixedClock)
	result = service.ProcessPayment(models.PaymentInfo{
		PaymentMethod: models.PaymentMethodUPI,
		UPIID:         "someone@upi",
	}, 50.0)
	assert.False(t, result.Success)
	assert.Equal(t, "UPI payment failed - Please try again", result.Message)
}

func TestPaymentService_CardFieldValidationOrder(t *testing.T) {
	service := services.NewPaymentServiceWithSources(alwaysSucceed, fixedClock)

	info := models.PaymentInfo{PaymentMethod: models.PaymentMethodCard}
	result := service.ProcessPayment(info, 10.0)
	assert.Equal(t, "Card number is required", result.Message)

	info.CardNumber = "4111111111111111"
	result = service.ProcessPayment(info, 10.0)
	assert.Equal(t, "Card holder name is required", result.Message)

	info.CardHolderName = "Jane Roe"
	result = service.ProcessPayment(info, 10.0)
	assert.Equal(t, "Card expiry date is required", result.Message)

	info.ExpiryDate = "12/27"
	result = service.ProcessPayment(info, 10.0)
	assert.Equal(t, "CVV is required", result.Message)

	info.CVV = "123"
	result = service.ProcessPayment(info, 10.0)
	assert.True(t, result.Success)
	assert.Equal(t, "PAID", result.PaymentStatus)
	assert.True(t, strings.HasPrefix(result.TransactionID, "CARD-"))

	service = services.NewPaymentServiceWithSources(alwaysFail, fixedClock)
	result = service.ProcessPayment(info, 10.0)
	assert.False(t, result.Success)
	assert.Equal(t, "Card payment failed - Please check your card details", result.Message)
}

func TestPaymentService_NetBanking(t *testing.T) {
	service := services.NewPaymentServiceWithSources(alwaysSucceed, fixedClock)

	result := service.ProcessPayment(models.PaymentInfo{PaymentMethod: models.PaymentMethodNetBanking}, 75.0)
	assert.False(t, result.Success)
	assert.Equal(t, "Bank name is required", result.Message)

	result = service.ProcessPayment(models.PaymentInfo{
		PaymentMethod: models.PaymentMethodNetBanking,
		BankName:      "First National",
	}, 75.0)
	assert.True(t, result.Success)
	assert.True(t, strings.HasPrefix(result.TransactionID, "NET-"))
	assert.Equal(t, "Net banking payment successful", result.Message)
}

func TestPaymentService_InvalidMethod(t *testing.T) {
	service := services.NewPaymentServiceWithSources(alwaysSucceed, fixedClock)

	result := service.ProcessPayment(models.PaymentInfo{PaymentMethod: "CRYPTO"}, 10.0)
	assert.False(t, result.Success)
	assert.Equal(t, "Invalid payment method", result.Message)
}

func TestPaymentService_TransactionIDFormat(t *testing.T) {
	service := services.NewPaymentServiceWithSources(alwaysSucceed, fixedClock)

	result := service.ProcessPayment(models.PaymentInfo{PaymentMethod: models.PaymentMethodCOD}, 10.0)

	// Format: prefix + 8-char uppercase token + second-resolution timestamp.
	token := strings.TrimPrefix(result.TransactionID, "COD-")
	assert.Len(t, token, 8+len("20060102150405"))
	assert.True(t, strings.HasSuffix(token, fixedTime.Format("20060102150405")))
	randomPart := token[:8]
	assert.Equal(t, strings.ToUpper(randomPart), randomPart)

	// Two ids generated in the same second still differ.
	other := service.ProcessPayment(models.PaymentInfo{PaymentMethod: models.PaymentMethodCOD}, 10.0)
	assert.NotEqual(t, result.TransactionID, other.TransactionID)
}
