package forecast

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAssessRiskLowConfidence(t *testing.T) {
	risk := AssessRisk(PointForecast{Confidence: 39}, Trend{Direction: TrendStable}, 500)
	assert.Equal(t, RiskHigh, risk)
}

func TestAssessRiskSteepDecline(t *testing.T) {
	trend := Trend{Direction: TrendDecreasing, GrowthRate: -35}
	risk := AssessRisk(PointForecast{Confidence: 80}, trend, 500)
	assert.Equal(t, RiskHigh, risk)
}

func TestAssessRiskMildDeclineIsNotHigh(t *testing.T) {
	trend := Trend{Direction: TrendDecreasing, GrowthRate: -15}
	risk := AssessRisk(PointForecast{Confidence: 80}, trend, 500)
	assert.Equal(t, RiskLow, risk)
}

func TestAssessRiskLowVolume(t *testing.T) {
	risk := AssessRisk(PointForecast{Confidence: 80}, Trend{Direction: TrendStable}, 5)
	assert.Equal(t, RiskMedium, risk)
}

func TestAssessRiskConfidenceBeatsVolume(t *testing.T) {
	// Low confidence and low volume reads high, not medium.
	risk := AssessRisk(PointForecast{Confidence: 20}, Trend{Direction: TrendStable}, 5)
	assert.Equal(t, RiskHigh, risk)
}

func TestAssessRiskHealthyProduct(t *testing.T) {
	risk := AssessRisk(PointForecast{Confidence: 90}, Trend{Direction: TrendStable}, 500)
	assert.Equal(t, RiskLow, risk)
}
