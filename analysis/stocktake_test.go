package analysis

import (
	"testing"

	"posinsights/models"

	"github.com/stretchr/testify/assert"
)

func TestBuildStockTakeReport(t *testing.T) {
	lines := []models.StockTakeLine{
		{ProductID: "p-1", ProductName: "Rice", Expected: 50, Counted: 47, UnitCost: 6},
		{ProductID: "p-2", ProductName: "Oil", Expected: 20, Counted: 22, UnitCost: 3},
		{ProductID: "p-3", ProductName: "Salt", Expected: 30, Counted: 30, UnitCost: 0.5},
	}

	report := BuildStockTakeReport(lines)

	assert.Equal(t, 3, report.LinesCounted)
	assert.Equal(t, 2, report.LinesWithDiff)
	assert.InDelta(t, 18.0, report.ShrinkageValue, 1e-9) // 3 missing rice at 6
	assert.InDelta(t, 6.0, report.OverageValue, 1e-9)    // 2 extra oil at 3
	assert.InDelta(t, -12.0, report.NetValue, 1e-9)
	assert.InDelta(t, 33.33, report.AccuracyPct, 0.01)

	assert.InDelta(t, -3.0, report.Lines[0].Variance, 1e-9)
	assert.InDelta(t, -18.0, report.Lines[0].VarianceValue, 1e-9)
}

func TestBuildStockTakeReportEmpty(t *testing.T) {
	report := BuildStockTakeReport(nil)
	assert.Equal(t, 0, report.LinesCounted)
	assert.Equal(t, 0.0, report.AccuracyPct)
}
