package clients_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"orderhub/internal/clients"
	"orderhub/internal/models"

	"github.com/stretchr/testify/assert"
)

func TestProductClientGetProductByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodGet, r.Method)
		assert.Equal(t, "/products/10", r.URL.Path)
		json.NewEncoder(w).Encode(models.Product{ID: 10, Name: "Laptop", Price: 25.0, StockQuantity: 5})
	}))
	defer server.Close()

	client := clients.NewHTTPProductClient(server.URL)
	product, err := client.GetProductByID(10)

	assert.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.Equal(t, 25.0, product.Price)
	assert.Equal(t, 5, product.StockQuantity)
}

func TestProductClientNotFound(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	client := clients.NewHTTPProductClient(server.URL)
	_, err := client.GetProductByID(99)

	assert.ErrorIs(t, err, clients.ErrNotFound)
}

func TestProductClientUpdateStockForOrder(t *testing.T) {
	var gotPath, gotQuantity string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPut, r.Method)
		gotPath = r.URL.Path
		gotQuantity = r.URL.Query().Get("quantity")
	}))
	defer server.Close()

	client := clients.NewHTTPProductClient(server.URL)
	assert.NoError(t, client.UpdateStockForOrder(10, 2))
	assert.Equal(t, "/products/order/updateStockQuantity/10", gotPath)
	assert.Equal(t, "2", gotQuantity)
}

func TestCartClientGetCartItems(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/cart/user/42", r.URL.Path)
		json.NewEncoder(w).Encode([]models.CartItem{{ProductID: 10, Quantity: 2}})
	}))
	defer server.Close()

	client := clients.NewHTTPCartClient(server.URL)
	items, err := client.GetCartItems(42)

	assert.NoError(t, err)
	if assert.Len(t, items, 1) {
		assert.Equal(t, int64(10), items[0].ProductID)
		assert.Equal(t, 2, items[0].Quantity)
	}
}

func TestCartClientClearCart(t *testing.T) {
	var gotMethod, gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotMethod = r.Method
		gotPath = r.URL.Path
	}))
	defer server.Close()

	client := clients.NewHTTPCartClient(server.URL)
	assert.NoError(t, client.ClearCart(42))
	assert.Equal(t, http.MethodDelete, gotMethod)
	assert.Equal(t, "/cart/clear/42", gotPath)
}

func TestUserClientGetUserByID(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/auth/user/42", r.URL.Path)
		json.NewEncoder(w).Encode(models.User{ID: 42, Email: "jane@example.com", FirstName: "Jane", LastName: "Roe"})
	}))
	defer server.Close()

	client := clients.NewHTTPUserClient(server.URL)
	user, err := client.GetUserByID(42)

	assert.NoError(t, err)
	assert.Equal(t, "jane@example.com", user.Email)
}

func TestUserClientServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "directory unavailable", http.StatusServiceUnavailable)
	}))
	defer server.Close()

	client := clients.NewHTTPUserClient(server.URL)
	_, err := client.GetUserByID(42)

	assert.Error(t, err)
	assert.Contains(t, err.Error(), "503")
}

func TestNotificationClientSendOrderConfirmation(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, http.MethodPost, r.Method)
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
	}))
	defer server.Close()

	client := clients.NewHTTPNotificationClient(server.URL)
	assert.NoError(t, client.SendOrderConfirmation("jane@example.com", "1", "50.00"))
	assert.Equal(t, "/notifications/order-confirmation", gotPath)
	assert.Equal(t, []string{"jane@example.com"}, gotQuery["email"])
	assert.Equal(t, []string{"1"}, gotQuery["orderId"])
	assert.Equal(t, []string{"50.00"}, gotQuery["totalAmount"])
}

func TestNotificationClientSendStatusUpdateToAdmin(t *testing.T) {
	var gotPath string
	var gotQuery map[string][]string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.Query()
	}))
	defer server.Close()

	client := clients.NewHTTPNotificationClient(server.URL)
	assert.NoError(t, client.SendStatusUpdateToAdmin("admin@ecommerce.com", "1", "SHIPPED", "jane@example.com"))
	assert.Equal(t, "/notifications/admin/order-status-update", gotPath)
	assert.Equal(t, []string{"SHIPPED"}, gotQuery["status"])
}

func TestNotificationClientPropagatesFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "smtp down", http.StatusInternalServerError)
	}))
	defer server.Close()

	client := clients.NewHTTPNotificationClient(server.URL)
	err := client.SendOrderDelivered("jane@example.com", "1")
	assert.Error(t, err)
}
