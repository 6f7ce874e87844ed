package forecast

import (
	"fmt"
	"hash/fnv"
	"math"
	"math/rand"
	"time"
)

// Method selects the forecasting algorithm.
type Method string

const (
	MovingAverage        Method = "moving_average"
	ExponentialSmoothing Method = "exponential_smoothing"
	LinearRegression     Method = "linear_regression"
)

// smoothingFactor is the alpha used by exponential smoothing.
const smoothingFactor = 0.3

// fallbackConfidence is reported when the calculator is called with a
// method it does not recognize and falls back to a moving average.
const fallbackConfidence = 60

// defaultUnitPrice stands in when a series has no usable price history.
const defaultUnitPrice = 10

// ParseMethod validates a method name from the API boundary. Unknown names
// are rejected here so a typo never silently changes the algorithm.
func ParseMethod(s string) (Method, error) {
	switch Method(s) {
	case MovingAverage, ExponentialSmoothing, LinearRegression:
		return Method(s), nil
	case "":
		return MovingAverage, nil
	}
	return "", fmt.Errorf("unknown forecast method %q", s)
}

// ProjectedPoint is one future month of the projected series.
type ProjectedPoint struct {
	Date     time.Time `json:"date"`
	Quantity float64   `json:"quantity"`
}

// PointForecast is the calculator's output for one product.
type PointForecast struct {
	Quantity   float64          `json:"quantity"`
	Revenue    float64          `json:"revenue"`
	Confidence float64          `json:"confidence"`
	Projected  []ProjectedPoint `json:"projected"`
}

// Forecast produces a point forecast for the requested horizon (in months).
func Forecast(series *ProductSeries, horizon int, method Method) PointForecast {
	return forecastAt(series, horizon, method, time.Now())
}

func forecastAt(series *ProductSeries, horizon int, method Method, now time.Time) PointForecast {
	if series == nil || len(series.Entries) == 0 {
		return PointForecast{Projected: []ProjectedPoint{}}
	}

	buckets := monthlyBuckets(series.Entries)
	values := monthlyQuantities(buckets)
	n := float64(len(values))

	var quantity, confidence float64

	switch method {
	case MovingAverage:
		quantity = movingAverage(values)
		confidence = math.Min(95, 60+5*n)
	case ExponentialSmoothing:
		quantity = exponentialSmoothing(values)
		confidence = math.Min(90, 50+4*n)
	case LinearRegression:
		quantity = regressionForecast(values, horizon)
		confidence = math.Min(85, 40+3*n)
	default:
		quantity = movingAverage(values)
		confidence = fallbackConfidence
	}

	if quantity < 0 {
		quantity = 0
	}

	return PointForecast{
		Quantity:   quantity,
		Revenue:    quantity * averageUnitPrice(series.Entries),
		Confidence: confidence,
		Projected:  projectSeries(series.ProductID, quantity, horizon, now),
	}
}

// movingAverage averages the last three monthly values (fewer if the
// history is shorter).
func movingAverage(values []float64) float64 {
	window := 3
	if len(values) < window {
		window = len(values)
	}
	var sum float64
	for _, v := range values[len(values)-window:] {
		sum += v
	}
	return sum / float64(window)
}

// exponentialSmoothing blends each value into the running forecast with
// a fixed alpha, seeded with the first observation.
func exponentialSmoothing(values []float64) float64 {
	smoothed := values[0]
	for _, v := range values[1:] {
		smoothed = smoothingFactor*v + (1-smoothingFactor)*smoothed
	}
	return smoothed
}

// regressionForecast fits ordinary least squares against the 0-based month
// index and extrapolates to index N+horizon.
func regressionForecast(values []float64, horizon int) float64 {
	n := float64(len(values))
	if n == 1 {
		return values[0]
	}

	var sumX, sumY, sumXY, sumXX float64
	for i, v := range values {
		x := float64(i)
		sumX += x
		sumY += v
		sumXY += x * v
		sumXX += x * x
	}

	denom := n*sumXX - sumX*sumX
	if denom == 0 {
		return values[len(values)-1]
	}
	slope := (n*sumXY - sumX*sumY) / denom
	intercept := (sumY - slope*sumX) / n

	forecast := slope*(n+float64(horizon)) + intercept
	return math.Max(0, forecast)
}

// averageUnitPrice is the mean of revenue/quantity across the history,
// falling back to a nominal price when no entry yields a finite ratio.
func averageUnitPrice(entries []Entry) float64 {
	var sum float64
	var count int
	for _, e := range entries {
		if e.Quantity == 0 {
			continue
		}
		sum += e.Revenue / e.Quantity
		count++
	}
	if count == 0 {
		return defaultUnitPrice
	}
	mean := sum / float64(count)
	if math.IsNaN(mean) || math.IsInf(mean, 0) {
		return defaultUnitPrice
	}
	return mean
}

// projectSeries lays the point forecast over the next horizon months with a
// jitter in [0.8, 1.2). The jitter is seeded from the product id and the
// projected month, so repeated runs over the same data draw the same line.
func projectSeries(productID string, quantity float64, horizon int, now time.Time) []ProjectedPoint {
	points := make([]ProjectedPoint, 0, horizon)
	firstOfMonth := time.Date(now.Year(), now.Month(), 1, 0, 0, 0, 0, time.UTC)

	for i := 1; i <= horizon; i++ {
		month := firstOfMonth.AddDate(0, i, 0)
		rng := rand.New(rand.NewSource(projectionSeed(productID, month)))
		multiplier := 0.8 + rng.Float64()*0.4
		points = append(points, ProjectedPoint{
			Date:     month,
			Quantity: quantity * multiplier,
		})
	}
	return points
}

func projectionSeed(productID string, month time.Time) int64 {
	h := fnv.New64a()
	h.Write([]byte(productID))
	return int64(h.Sum64()) ^ month.Unix()
}
