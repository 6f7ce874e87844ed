package forecast

import (
	"sort"
	"time"

	"posinsights/models"
)

// Entry is a single historical sale of one product.
type Entry struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
	Revenue  float64   `json:"revenue"`
}

// ProductSeries is the per-product sales history one forecast run works on.
// It is built fresh for every run and discarded afterwards.
type ProductSeries struct {
	ProductID     string  `json:"product_id"`
	ProductName   string  `json:"product_name"`
	Category      string  `json:"category"`
	Entries       []Entry `json:"entries"`
	TotalQuantity float64 `json:"total_quantity"`
}

// MonthlyBucket aggregates a product's sales over one calendar month.
type MonthlyBucket struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
	Revenue  float64   `json:"revenue"`
}

// AggregateSales groups raw sale line items into per-product series.
// Products that never sold do not appear in the result; a sale without
// items contributes nothing.
func AggregateSales(sales []models.SaleRecord) map[string]*ProductSeries {
	series := make(map[string]*ProductSeries)

	for _, sale := range sales {
		for _, item := range sale.Items {
			if item.ProductID == "" {
				continue
			}
			name := item.ProductName
			if name == "" {
				name = "Unknown Product"
			}

			bucket, ok := series[item.ProductID]
			if !ok {
				bucket = &ProductSeries{
					ProductID:   item.ProductID,
					ProductName: name,
					Category:    item.Category,
				}
				series[item.ProductID] = bucket
			}

			bucket.Entries = append(bucket.Entries, Entry{
				Date:     sale.SaleDate,
				Quantity: item.Quantity,
				Revenue:  item.UnitPrice * item.Quantity,
			})
			bucket.TotalQuantity += item.Quantity
		}
	}

	for _, bucket := range series {
		sort.SliceStable(bucket.Entries, func(i, j int) bool {
			return bucket.Entries[i].Date.Before(bucket.Entries[j].Date)
		})
	}

	return series
}

// monthlyBuckets folds a series' entries into calendar months, ascending.
// Months with no sales are absent; the detectors and the calculator all
// work on this view to smooth intra-month noise.
func monthlyBuckets(entries []Entry) []MonthlyBucket {
	type key struct {
		year  int
		month time.Month
	}

	sums := make(map[key]*MonthlyBucket)
	keys := make([]key, 0)

	for _, e := range entries {
		k := key{e.Date.Year(), e.Date.Month()}
		b, ok := sums[k]
		if !ok {
			b = &MonthlyBucket{Date: time.Date(k.year, k.month, 1, 0, 0, 0, 0, time.UTC)}
			sums[k] = b
			keys = append(keys, k)
		}
		b.Quantity += e.Quantity
		b.Revenue += e.Revenue
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i].year != keys[j].year {
			return keys[i].year < keys[j].year
		}
		return keys[i].month < keys[j].month
	})

	buckets := make([]MonthlyBucket, 0, len(keys))
	for _, k := range keys {
		buckets = append(buckets, *sums[k])
	}
	return buckets
}

// monthlyQuantities extracts just the quantity column.
func monthlyQuantities(buckets []MonthlyBucket) []float64 {
	values := make([]float64, len(buckets))
	for i, b := range buckets {
		values[i] = b.Quantity
	}
	return values
}
