package forecast

// Trend directions.
const (
	TrendIncreasing = "increasing"
	TrendDecreasing = "decreasing"
	TrendStable     = "stable"
)

// growthThreshold is the +/- percentage beyond which a trend stops being
// considered stable.
const growthThreshold = 10

// Trend classifies the direction of a product's monthly sales.
type Trend struct {
	Direction  string  `json:"direction"`
	GrowthRate float64 `json:"growth_rate"`
}

// DetectTrend compares the first and second half of the monthly series.
// Fewer than two months of history reads as stable.
func DetectTrend(series *ProductSeries) Trend {
	buckets := monthlyBuckets(series.Entries)
	if len(buckets) < 2 {
		return Trend{Direction: TrendStable}
	}

	values := monthlyQuantities(buckets)
	half := len(values) / 2
	firstMean := mean(values[:half])
	secondMean := mean(values[half:])

	var growth float64
	if firstMean != 0 {
		growth = (secondMean - firstMean) / firstMean * 100
	}

	direction := TrendStable
	if growth > growthThreshold {
		direction = TrendIncreasing
	} else if growth < -growthThreshold {
		direction = TrendDecreasing
	}

	return Trend{Direction: direction, GrowthRate: growth}
}

func mean(values []float64) float64 {
	if len(values) == 0 {
		return 0
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	return sum / float64(len(values))
}
