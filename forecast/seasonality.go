package forecast

import "math"

// seasonalCVThreshold is the coefficient-of-variation cutoff above which a
// product counts as seasonal.
const seasonalCVThreshold = 0.5

// minSeasonalHistory is the minimum history required before seasonality is
// considered at all.
const minSeasonalHistory = 6

// SeasonalityDetector flags products whose monthly sales swing widely.
//
// By default the history gate counts raw sale entries, matching the behavior
// the owner screens have always shown. Setting RequireMonthlyHistory counts
// distinct months instead, which is the stricter reading of "six months of
// history"; the product owner picks one.
type SeasonalityDetector struct {
	RequireMonthlyHistory bool
}

// IsSeasonal reports whether the series' monthly quantities vary enough
// (CV > 0.5) to call the product seasonal.
func (d SeasonalityDetector) IsSeasonal(series *ProductSeries) bool {
	if len(series.Entries) < minSeasonalHistory {
		return false
	}

	buckets := monthlyBuckets(series.Entries)
	if d.RequireMonthlyHistory && len(buckets) < minSeasonalHistory {
		return false
	}

	values := monthlyQuantities(buckets)
	m := mean(values)
	if m == 0 {
		return false
	}

	var variance float64
	for _, v := range values {
		variance += (v - m) * (v - m)
	}
	variance /= float64(len(values))

	return math.Sqrt(variance)/m > seasonalCVThreshold
}

// IsSeasonal applies the default detector.
func IsSeasonal(series *ProductSeries) bool {
	return SeasonalityDetector{}.IsSeasonal(series)
}
