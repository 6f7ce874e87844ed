package analysis

import (
	"math"

	"posinsights/models"
)

// LineVariance is one stock-take line with its computed variance.
type LineVariance struct {
	ProductID     string  `json:"productId"`
	ProductName   string  `json:"productName"`
	Expected      float64 `json:"expected"`
	Counted       float64 `json:"counted"`
	Variance      float64 `json:"variance"`
	VarianceValue float64 `json:"varianceValue"`
}

// StockTakeReport summarizes one counting session.
type StockTakeReport struct {
	Lines          []LineVariance `json:"lines"`
	LinesCounted   int            `json:"linesCounted"`
	LinesWithDiff  int            `json:"linesWithDiff"`
	ShrinkageValue float64        `json:"shrinkageValue"`
	OverageValue   float64        `json:"overageValue"`
	NetValue       float64        `json:"netValue"`
	AccuracyPct    float64        `json:"accuracyPct"`
}

// BuildStockTakeReport computes counted-vs-expected variance per line and
// the cost-weighted shrinkage/overage totals.
func BuildStockTakeReport(lines []models.StockTakeLine) StockTakeReport {
	report := StockTakeReport{
		Lines:        make([]LineVariance, 0, len(lines)),
		LinesCounted: len(lines),
	}

	for _, line := range lines {
		variance := line.Counted - line.Expected
		value := variance * line.UnitCost

		if variance != 0 {
			report.LinesWithDiff++
		}
		if value < 0 {
			report.ShrinkageValue += -value
		} else {
			report.OverageValue += value
		}
		report.NetValue += value

		report.Lines = append(report.Lines, LineVariance{
			ProductID:     line.ProductID,
			ProductName:   line.ProductName,
			Expected:      line.Expected,
			Counted:       line.Counted,
			Variance:      variance,
			VarianceValue: value,
		})
	}

	if report.LinesCounted > 0 {
		matched := report.LinesCounted - report.LinesWithDiff
		report.AccuracyPct = math.Round(float64(matched)/float64(report.LinesCounted)*10000) / 100
	}

	return report
}
