package posapi

import (
	"encoding/json"
	"strconv"
	"strings"
	"time"

	"posinsights/models"
)

// The POS backend has grown several response shapes over time: a bare array,
// an envelope {"data": [...]}, {"data": {"results"|"sales": [...]}}, or the
// keyed object without the envelope ({"results"|"sales": [...]}).
// Everything funnels through unwrapList so the rest of the service only ever
// sees the strict models.

func unwrapList(body []byte) []json.RawMessage {
	var direct []json.RawMessage
	if err := json.Unmarshal(body, &direct); err == nil {
		return direct
	}

	var keyed map[string]json.RawMessage
	if err := json.Unmarshal(body, &keyed); err != nil {
		return nil
	}

	if data, ok := keyed["data"]; ok && len(data) > 0 {
		if err := json.Unmarshal(data, &direct); err == nil {
			return direct
		}
		var inner map[string]json.RawMessage
		if err := json.Unmarshal(data, &inner); err != nil {
			return nil
		}
		return listFromKeys(inner)
	}

	// Some deployments skip the data envelope entirely.
	return listFromKeys(keyed)
}

func listFromKeys(keyed map[string]json.RawMessage) []json.RawMessage {
	for _, key := range []string{"results", "sales"} {
		if raw, ok := keyed[key]; ok {
			var list []json.RawMessage
			if err := json.Unmarshal(raw, &list); err == nil {
				return list
			}
		}
	}
	return nil
}

// unwrapObject strips a {"data": {...}} envelope from single-object payloads.
func unwrapObject(body []byte) json.RawMessage {
	var envelope struct {
		Data json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(body, &envelope); err == nil && len(envelope.Data) > 0 {
		return envelope.Data
	}
	return body
}

type rawLineItem struct {
	ProductID   any    `json:"product_id"`
	ID          any    `json:"id"`
	Name        string `json:"name"`
	ProductName string `json:"product_name"`
	Category    string `json:"category"`
	Quantity    any    `json:"quantity"`
	Price       any    `json:"price"`
}

type rawSale struct {
	ID        any           `json:"id"`
	CreatedAt string        `json:"created_at"`
	SaleDate  string        `json:"sale_date"`
	Items     []rawLineItem `json:"items"`
}

// normalizeSale maps one loosely-typed upstream sale into the strict model.
// Field fallbacks and numeric coercion happen here, once, so the calculation
// code never has to guess at shapes.
func normalizeSale(raw json.RawMessage) models.SaleRecord {
	var rs rawSale
	_ = json.Unmarshal(raw, &rs)

	sale := models.SaleRecord{ID: asString(rs.ID)}

	dateStr := rs.CreatedAt
	if dateStr == "" {
		dateStr = rs.SaleDate
	}
	sale.SaleDate = parseDate(dateStr)

	for _, item := range rs.Items {
		productID := asString(item.ProductID)
		if productID == "" {
			productID = asString(item.ID)
		}
		name := item.Name
		if name == "" {
			name = item.ProductName
		}
		quantity := asFloat(item.Quantity)

		sale.Items = append(sale.Items, models.SaleLineItem{
			ProductID:   productID,
			ProductName: name,
			Category:    item.Category,
			Quantity:    quantity,
			UnitPrice:   asFloat(item.Price),
		})
	}
	return sale
}

type rawProduct struct {
	ID           any    `json:"id"`
	Name         string `json:"name"`
	Category     string `json:"category"`
	SellingPrice any    `json:"selling_price"`
	Price        any    `json:"price"`
	CostPrice    any    `json:"cost_price"`
}

func normalizeProduct(raw json.RawMessage) models.Product {
	var rp rawProduct
	_ = json.Unmarshal(raw, &rp)

	selling := asFloat(rp.SellingPrice)
	if selling == 0 {
		selling = asFloat(rp.Price)
	}

	return models.Product{
		ID:           asString(rp.ID),
		Name:         rp.Name,
		Category:     rp.Category,
		SellingPrice: selling,
		CostPrice:    asFloat(rp.CostPrice),
	}
}

// asFloat coerces whatever the backend sent into a float64, 0 on failure.
func asFloat(v any) float64 {
	switch value := v.(type) {
	case float64:
		return value
	case string:
		f, err := strconv.ParseFloat(strings.TrimSpace(value), 64)
		if err != nil {
			return 0
		}
		return f
	}
	return 0
}

// asString renders ids that may arrive as strings or numbers.
func asString(v any) string {
	switch value := v.(type) {
	case string:
		return value
	case float64:
		return strconv.FormatFloat(value, 'f', -1, 64)
	}
	return ""
}

// parseDate tries the formats the backend has been seen to emit. An
// unparseable date degrades to the zero time rather than failing the fetch.
func parseDate(dateStr string) time.Time {
	formats := []string{
		time.RFC3339,
		time.RFC3339Nano,
		"2006-01-02T15:04:05.999999",
		"2006-01-02T15:04:05",
		"2006-01-02",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t
		}
	}
	return time.Time{}
}
