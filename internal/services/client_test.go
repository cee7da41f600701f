package services

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCustomerList(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/customers", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":1,"name":"Amine","email":"amine@example.com","phone":"123","address":"Tunis"}]`))
	}))
	defer srv.Close()

	customers, err := NewCustomerClient(srv.URL).List(context.Background())
	require.NoError(t, err)
	require.Len(t, customers, 1)
	assert.Equal(t, "Amine", customers[0].Name)
	assert.Contains(t, customers[0].String(), "Customer #1")
}

func TestProductGet(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.Equal(t, "/api/products/7", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"id":7,"name":"Laptop","description":"13 inch","price":999.5,"quantity":4}`))
	}))
	defer srv.Close()

	product, err := NewProductClient(srv.URL).Get(context.Background(), 7)
	require.NoError(t, err)
	assert.Equal(t, "Laptop", product.Name)
	assert.Contains(t, product.String(), "4 in stock")
}

func TestGetNotFound(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer srv.Close()

	_, err := NewBillClient(srv.URL).Get(context.Background(), 42)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestServerErrorIsGeneric(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer srv.Close()

	_, err := NewBillClient(srv.URL).List(context.Background())
	require.Error(t, err)
	assert.NotErrorIs(t, err, ErrNotFound)
}

func TestServiceUnreachable(t *testing.T) {
	// A closed server simulates an unavailable service.
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	srv.Close()

	_, err := NewCustomerClient(srv.URL).List(context.Background())
	assert.Error(t, err)
}

func TestBillDateRendering(t *testing.T) {
	bill := Bill{ID: 3, CustomerID: 1, ProductID: 2, Quantity: 5, TotalAmount: 120.0, CreatedAt: "2025-04-02T10:30:00"}
	assert.Contains(t, bill.String(), "(2025-04-02)")
}
