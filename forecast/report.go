package forecast

import (
	"math"
	"sort"
	"time"

	"posinsights/models"
)

// stockBuffer pads the recommended stock above the point forecast.
const stockBuffer = 1.2

// Demand thresholds used by the portfolio summary.
const (
	highDemandThreshold = 100
	lowDemandThreshold  = 10
)

// Result is the full forecast for one product.
type Result struct {
	ProductID          string           `json:"productId"`
	ProductName        string           `json:"productName"`
	Category           string           `json:"category"`
	HistoricalQuantity float64          `json:"historicalQuantity"`
	ForecastQuantity   float64          `json:"forecastQuantity"`
	ForecastRevenue    float64          `json:"forecastRevenue"`
	Confidence         float64          `json:"confidence"`
	Trend              Trend            `json:"trend"`
	Seasonal           bool             `json:"seasonal"`
	RiskLevel          string           `json:"riskLevel"`
	RecommendedStock   int              `json:"recommendedStock"`
	DataPoints         int              `json:"dataPoints"`
	History            []MonthlyBucket  `json:"history"`
	Projected          []ProjectedPoint `json:"projected"`
}

// Summary aggregates the whole report.
type Summary struct {
	TotalProducts     int     `json:"totalProducts"`
	HighDemandCount   int     `json:"highDemandProducts"`
	LowDemandCount    int     `json:"lowDemandProducts"`
	AverageGrowthRate float64 `json:"averageGrowthRate"`
	SeasonalCount     int     `json:"seasonalProducts"`
}

// Report is the final output of one forecast run.
type Report struct {
	Results     []Result  `json:"results"`
	Summary     Summary   `json:"summary"`
	Horizon     int       `json:"horizon"`
	Method      Method    `json:"method"`
	GeneratedAt time.Time `json:"generatedAt"`
}

// BuildReport runs the whole pipeline: aggregate sales per product, forecast
// each independently, then sort and summarize. The product catalog only
// backfills names and categories the ledger lines were missing.
func BuildReport(sales []models.SaleRecord, products []models.Product, horizon int, method Method) Report {
	return buildReportAt(sales, products, horizon, method, time.Now())
}

func buildReportAt(sales []models.SaleRecord, products []models.Product, horizon int, method Method, now time.Time) Report {
	catalog := make(map[string]models.Product, len(products))
	for _, p := range products {
		catalog[p.ID] = p
	}

	series := AggregateSales(sales)

	results := make([]Result, 0, len(series))
	for _, s := range series {
		if p, ok := catalog[s.ProductID]; ok {
			if s.Category == "" {
				s.Category = p.Category
			}
			if s.ProductName == "Unknown Product" && p.Name != "" {
				s.ProductName = p.Name
			}
		}

		pf := forecastAt(s, horizon, method, now)
		trend := DetectTrend(s)

		results = append(results, Result{
			ProductID:          s.ProductID,
			ProductName:        s.ProductName,
			Category:           s.Category,
			HistoricalQuantity: s.TotalQuantity,
			ForecastQuantity:   pf.Quantity,
			ForecastRevenue:    pf.Revenue,
			Confidence:         pf.Confidence,
			Trend:              trend,
			Seasonal:           IsSeasonal(s),
			RiskLevel:          AssessRisk(pf, trend, s.TotalQuantity),
			RecommendedStock:   int(math.Ceil(pf.Quantity * stockBuffer)),
			DataPoints:         len(s.Entries),
			History:            monthlyBuckets(s.Entries),
			Projected:          pf.Projected,
		})
	}

	sort.SliceStable(results, func(i, j int) bool {
		return results[i].ForecastQuantity > results[j].ForecastQuantity
	})

	return Report{
		Results:     results,
		Summary:     summarize(results),
		Horizon:     horizon,
		Method:      method,
		GeneratedAt: now,
	}
}

func summarize(results []Result) Summary {
	summary := Summary{TotalProducts: len(results)}

	var growthSum float64
	for _, r := range results {
		if r.ForecastQuantity > highDemandThreshold {
			summary.HighDemandCount++
		}
		if r.ForecastQuantity < lowDemandThreshold {
			summary.LowDemandCount++
		}
		if r.Seasonal {
			summary.SeasonalCount++
		}
		growthSum += r.Trend.GrowthRate
	}

	if len(results) > 0 {
		summary.AverageGrowthRate = growthSum / float64(len(results))
	}
	return summary
}
