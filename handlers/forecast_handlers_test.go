package handlers

import (
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"

	"posinsights/posapi"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
)

// fakePOSBackend serves a minimal sales ledger and catalog.
func fakePOSBackend(t *testing.T) *httptest.Server {
	t.Helper()
	return httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		switch r.URL.Path {
		case "/sales/":
			w.Write([]byte(`{"data":{"results":[
				{"id":"s-1","created_at":"2025-01-10T09:00:00Z","items":[
					{"product_id":"p-rice","name":"Rice 5kg","category":"staples","quantity":120,"price":8},
					{"product_id":"p-milk","name":"Milk 1L","quantity":5,"price":1.5}
				]},
				{"id":"s-2","created_at":"2025-02-10T09:00:00Z","items":[
					{"product_id":"p-rice","name":"Rice 5kg","category":"staples","quantity":140,"price":8}
				]},
				{"id":"s-3","created_at":"2025-03-10T09:00:00Z","items":[
					{"product_id":"p-rice","name":"Rice 5kg","category":"staples","quantity":160,"price":8}
				]}
			]}}`))
		case "/products/":
			w.Write([]byte(`[{"id":"p-milk","name":"Milk 1L","category":"dairy"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
}

func TestHandleGetForecastReport(t *testing.T) {
	server := fakePOSBackend(t)
	defer server.Close()
	posapi.Init(server.URL, "")

	app := fiber.New()
	app.Get("/api/v1/insights/forecast", HandleGetForecastReport)

	req := httptest.NewRequest("GET", "/api/v1/insights/forecast?horizon=3&method=moving_average", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, 200, resp.StatusCode)

	var body struct {
		Success bool `json:"success"`
		Data    struct {
			Results []struct {
				ProductID        string  `json:"productId"`
				Category         string  `json:"category"`
				ForecastQuantity float64 `json:"forecastQuantity"`
				RecommendedStock int     `json:"recommendedStock"`
			} `json:"results"`
			Summary struct {
				TotalProducts int `json:"totalProducts"`
			} `json:"summary"`
		} `json:"data"`
	}
	raw, _ := io.ReadAll(resp.Body)
	assert.NoError(t, json.Unmarshal(raw, &body))

	assert.True(t, body.Success)
	assert.Equal(t, 2, body.Data.Summary.TotalProducts)
	assert.Len(t, body.Data.Results, 2)

	// Sorted descending: rice ahead of milk.
	assert.Equal(t, "p-rice", body.Data.Results[0].ProductID)
	assert.InDelta(t, 140.0, body.Data.Results[0].ForecastQuantity, 1e-9)

	// Category backfilled from the catalog.
	assert.Equal(t, "dairy", body.Data.Results[1].Category)

	for _, r := range body.Data.Results {
		assert.GreaterOrEqual(t, float64(r.RecommendedStock), r.ForecastQuantity)
	}
}

func TestHandleGetForecastReportRejectsUnknownMethod(t *testing.T) {
	server := fakePOSBackend(t)
	defer server.Close()
	posapi.Init(server.URL, "")

	app := fiber.New()
	app.Get("/api/v1/insights/forecast", HandleGetForecastReport)

	req := httptest.NewRequest("GET", "/api/v1/insights/forecast?method=movng_average", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetForecastReportRejectsBadHorizon(t *testing.T) {
	app := fiber.New()
	app.Get("/api/v1/insights/forecast", HandleGetForecastReport)

	req := httptest.NewRequest("GET", "/api/v1/insights/forecast?horizon=0", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadRequest, resp.StatusCode)
}

func TestHandleGetForecastReportUpstreamDown(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	}))
	defer server.Close()
	posapi.Init(server.URL, "")

	app := fiber.New()
	app.Get("/api/v1/insights/forecast", HandleGetForecastReport)

	req := httptest.NewRequest("GET", "/api/v1/insights/forecast", nil)
	resp, err := app.Test(req, -1)
	assert.NoError(t, err)
	assert.Equal(t, fiber.StatusBadGateway, resp.StatusCode)
}
