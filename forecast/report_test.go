package forecast

import (
	"math"
	"testing"
	"time"

	"posinsights/models"

	"github.com/stretchr/testify/assert"
)

func salesFixture() []models.SaleRecord {
	var sales []models.SaleRecord
	start := time.Date(2025, 1, 10, 0, 0, 0, 0, time.UTC)

	// Three products with different volumes so the sort is observable.
	for month := 0; month < 4; month++ {
		sales = append(sales, models.SaleRecord{
			ID:       "s-" + string(rune('a'+month)),
			SaleDate: start.AddDate(0, month, 0),
			Items: []models.SaleLineItem{
				{ProductID: "p-rice", ProductName: "Rice 5kg", Category: "staples", Quantity: 200, UnitPrice: 8},
				{ProductID: "p-milk", ProductName: "Milk 1L", Category: "dairy", Quantity: 40, UnitPrice: 1.5},
				{ProductID: "p-candle", ProductName: "Candle", Quantity: 1, UnitPrice: 0.5},
			},
		})
	}
	return sales
}

func TestAggregateSales(t *testing.T) {
	series := AggregateSales(salesFixture())

	assert.Len(t, series, 3)
	rice := series["p-rice"]
	assert.Equal(t, "Rice 5kg", rice.ProductName)
	assert.Equal(t, 800.0, rice.TotalQuantity)
	assert.Len(t, rice.Entries, 4)
	for i := 1; i < len(rice.Entries); i++ {
		assert.False(t, rice.Entries[i].Date.Before(rice.Entries[i-1].Date))
	}
}

func TestAggregateSalesSkipsEmptySales(t *testing.T) {
	series := AggregateSales([]models.SaleRecord{{ID: "s-1", SaleDate: time.Now()}})
	assert.Empty(t, series)
}

func TestAggregateSalesUnknownProductName(t *testing.T) {
	series := AggregateSales([]models.SaleRecord{{
		ID:       "s-1",
		SaleDate: time.Now(),
		Items:    []models.SaleLineItem{{ProductID: "p-1", Quantity: 2, UnitPrice: 3}},
	}})
	assert.Equal(t, "Unknown Product", series["p-1"].ProductName)
}

func TestMonthlyBuckets(t *testing.T) {
	entries := []Entry{
		{Date: time.Date(2025, 3, 5, 0, 0, 0, 0, time.UTC), Quantity: 2, Revenue: 4},
		{Date: time.Date(2025, 1, 20, 0, 0, 0, 0, time.UTC), Quantity: 1, Revenue: 2},
		{Date: time.Date(2025, 3, 28, 0, 0, 0, 0, time.UTC), Quantity: 3, Revenue: 6},
	}

	buckets := monthlyBuckets(entries)

	assert.Len(t, buckets, 2) // no gap filling for February
	assert.Equal(t, time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC), buckets[0].Date)
	assert.Equal(t, 1.0, buckets[0].Quantity)
	assert.Equal(t, time.Date(2025, 3, 1, 0, 0, 0, 0, time.UTC), buckets[1].Date)
	assert.Equal(t, 5.0, buckets[1].Quantity)
	assert.Equal(t, 10.0, buckets[1].Revenue)
}

func TestBuildReportSortedAndSummarized(t *testing.T) {
	report := BuildReport(salesFixture(), nil, 3, MovingAverage)

	assert.Len(t, report.Results, 3)
	for i := 0; i+1 < len(report.Results); i++ {
		assert.GreaterOrEqual(t,
			report.Results[i].ForecastQuantity,
			report.Results[i+1].ForecastQuantity)
	}

	summary := report.Summary
	assert.Equal(t, len(report.Results), summary.TotalProducts)

	high := 0
	low := 0
	for _, r := range report.Results {
		if r.ForecastQuantity > 100 {
			high++
		}
		if r.ForecastQuantity < 10 {
			low++
		}
	}
	assert.Equal(t, high, summary.HighDemandCount)
	assert.Equal(t, low, summary.LowDemandCount)
	assert.Equal(t, 1, summary.HighDemandCount) // rice at 200/month
	assert.Equal(t, 1, summary.LowDemandCount)  // candle at 1/month
}

func TestBuildReportRecommendedStock(t *testing.T) {
	report := BuildReport(salesFixture(), nil, 3, MovingAverage)

	for _, r := range report.Results {
		assert.GreaterOrEqual(t, float64(r.RecommendedStock), r.ForecastQuantity)
		assert.Equal(t, int(math.Ceil(r.ForecastQuantity*1.2)), r.RecommendedStock)
		assert.GreaterOrEqual(t, r.ForecastQuantity, 0.0)
	}
}

func TestBuildReportBackfillsFromCatalog(t *testing.T) {
	products := []models.Product{
		{ID: "p-candle", Name: "Tea Candle", Category: "household"},
	}
	report := BuildReport(salesFixture(), products, 3, MovingAverage)

	var candle *Result
	for i := range report.Results {
		if report.Results[i].ProductID == "p-candle" {
			candle = &report.Results[i]
		}
	}
	if assert.NotNil(t, candle) {
		assert.Equal(t, "household", candle.Category)
		// line items carried a name, so the catalog must not override it
		assert.Equal(t, "Candle", candle.ProductName)
	}
}

func TestBuildReportEmptyInput(t *testing.T) {
	report := BuildReport(nil, nil, 3, MovingAverage)

	assert.Empty(t, report.Results)
	assert.Equal(t, 0, report.Summary.TotalProducts)
	assert.Equal(t, 0.0, report.Summary.AverageGrowthRate)
}
