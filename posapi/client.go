package posapi

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"posinsights/models"

	"github.com/go-resty/resty/v2"
)

// APIError carries a non-2xx answer from the POS API.
type APIError struct {
	StatusCode int
	Status     string
	Body       string
}

func (e *APIError) Error() string {
	if e.Body == "" {
		return fmt.Sprintf("pos api error: %s", e.Status)
	}
	return fmt.Sprintf("pos api error: %s: %s", e.Status, e.Body)
}

// Client is a thin read client for the external POS backend. It does not
// retry on its own; the caller decides when to refresh.
type Client struct {
	http *resty.Client
}

// NewClient builds a client for the given base URL. The token is optional.
func NewClient(baseURL, token string) *Client {
	httpClient := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Accept", "application/json").
		SetTimeout(15 * time.Second)
	if token != "" {
		httpClient.SetAuthToken(token)
	}
	return &Client{http: httpClient}
}

// client is the process-wide instance, set up once in main.
var client *Client

// Init wires the shared client.
func Init(baseURL, token string) {
	client = NewClient(baseURL, token)
}

// GetClient returns the shared client.
func GetClient() *Client {
	return client
}

func (c *Client) get(ctx context.Context, path string) ([]byte, error) {
	resp, err := c.http.R().SetContext(ctx).Get(path)
	if err != nil {
		return nil, fmt.Errorf("pos api request failed: %w", err)
	}
	if resp.IsError() {
		return nil, &APIError{
			StatusCode: resp.StatusCode(),
			Status:     resp.Status(),
			Body:       string(resp.Body()),
		}
	}
	return resp.Body(), nil
}

// FetchSales returns the normalized sales ledger.
func (c *Client) FetchSales(ctx context.Context) ([]models.SaleRecord, error) {
	body, err := c.get(ctx, "/sales/")
	if err != nil {
		return nil, err
	}

	sales := make([]models.SaleRecord, 0)
	for _, raw := range unwrapList(body) {
		sales = append(sales, normalizeSale(raw))
	}
	return sales, nil
}

// FetchProducts returns the normalized product catalog.
func (c *Client) FetchProducts(ctx context.Context) ([]models.Product, error) {
	body, err := c.get(ctx, "/products/")
	if err != nil {
		return nil, err
	}

	products := make([]models.Product, 0)
	for _, raw := range unwrapList(body) {
		products = append(products, normalizeProduct(raw))
	}
	return products, nil
}

// FetchSuppliers returns suppliers with their current price lists.
func (c *Client) FetchSuppliers(ctx context.Context) ([]models.Supplier, error) {
	body, err := c.get(ctx, "/suppliers/")
	if err != nil {
		return nil, err
	}

	suppliers := make([]models.Supplier, 0)
	for _, raw := range unwrapList(body) {
		var s models.Supplier
		if err := json.Unmarshal(raw, &s); err != nil {
			continue
		}
		suppliers = append(suppliers, s)
	}
	return suppliers, nil
}

// FetchExchangeRates returns the published currency rates.
func (c *Client) FetchExchangeRates(ctx context.Context) ([]models.ExchangeRate, error) {
	body, err := c.get(ctx, "/exchange-rates/")
	if err != nil {
		return nil, err
	}

	rates := make([]models.ExchangeRate, 0)
	for _, raw := range unwrapList(body) {
		var r models.ExchangeRate
		if err := json.Unmarshal(raw, &r); err != nil {
			continue
		}
		rates = append(rates, r)
	}
	return rates, nil
}

// FetchStockTakes returns past counting sessions.
func (c *Client) FetchStockTakes(ctx context.Context) ([]models.StockTake, error) {
	body, err := c.get(ctx, "/stock-takes/")
	if err != nil {
		return nil, err
	}

	takes := make([]models.StockTake, 0)
	for _, raw := range unwrapList(body) {
		var st models.StockTake
		if err := json.Unmarshal(raw, &st); err != nil {
			continue
		}
		takes = append(takes, st)
	}
	return takes, nil
}

// FetchLicense returns the shop's subscription state.
func (c *Client) FetchLicense(ctx context.Context) (*models.LicenseStatus, error) {
	body, err := c.get(ctx, "/license/")
	if err != nil {
		return nil, err
	}

	var license models.LicenseStatus
	if err := json.Unmarshal(unwrapObject(body), &license); err != nil {
		return nil, fmt.Errorf("failed to decode license payload: %w", err)
	}
	return &license, nil
}
