package forecast

// Risk levels.
const (
	RiskLow    = "low"
	RiskMedium = "medium"
	RiskHigh   = "high"
)

// AssessRisk combines confidence, trend and historical volume into a coarse
// stocking risk. The confidence check runs first: a low-confidence,
// low-volume product reads as high risk, not medium.
func AssessRisk(pf PointForecast, trend Trend, historicalTotal float64) string {
	if pf.Confidence < 40 {
		return RiskHigh
	}
	if trend.Direction == TrendDecreasing && trend.GrowthRate < -20 {
		return RiskHigh
	}
	if historicalTotal < 10 {
		return RiskMedium
	}
	return RiskLow
}
