package posapi

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFetchSalesAgainstEnvelopedPayload(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/sales/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"results":[
			{"id":"s-1","created_at":"2025-04-01T09:00:00Z","items":[
				{"product_id":"p-1","name":"Bread","quantity":2,"price":1.5}
			]}
		]}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "test-token")
	sales, err := client.FetchSales(context.Background())

	assert.NoError(t, err)
	assert.Len(t, sales, 1)
	assert.Equal(t, "s-1", sales[0].ID)
	assert.Len(t, sales[0].Items, 1)
	assert.InDelta(t, 2.0, sales[0].Items[0].Quantity, 1e-9)
}

func TestFetchSalesServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.Write([]byte(`{"detail":"boom"}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	_, err := client.FetchSales(context.Background())

	assert.Error(t, err)
	var apiErr *APIError
	assert.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusInternalServerError, apiErr.StatusCode)
}

func TestFetchProducts(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/products/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`[{"id":"p-1","name":"Bread","category":"bakery","selling_price":1.5,"cost_price":0.7}]`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	products, err := client.FetchProducts(context.Background())

	assert.NoError(t, err)
	assert.Len(t, products, 1)
	assert.Equal(t, "bakery", products[0].Category)
}

func TestFetchLicense(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		assert.Equal(t, "/license/", r.URL.Path)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"data":{"plan":"pro","status":"active","seats":3}}`))
	}))
	defer server.Close()

	client := NewClient(server.URL, "")
	license, err := client.FetchLicense(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, "pro", license.Plan)
	assert.Equal(t, 3, license.Seats)
}
