package forecast

import (
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/shopspring/decimal"
)

// TrendWindow is the number of trailing periods used to estimate a trend
const TrendWindow = 8

var (
	hundred = decimal.NewFromInt(100)
	// a per-period move smaller than 2% of the window's first balance is noise
	directionThreshold = decimal.RequireFromString("0.02")
)

// EstimateTrend derives the average per-period change, the annualized growth
// rate in percent and a coarse direction from the trailing window of history.
func EstimateTrend(history []decimal.Decimal, perYear int) models.Trend {
	window := history
	if len(window) > TrendWindow {
		window = window[len(window)-TrendWindow:]
	}
	if len(window) < 2 {
		return models.Trend{PeriodDelta: decimal.Zero, AnnualRate: decimal.Zero, Direction: models.TrendStable}
	}

	first, last := window[0], window[len(window)-1]
	steps := decimal.NewFromInt(int64(len(window) - 1))
	change := last.Sub(first)
	delta := change.Div(steps)

	rate := decimal.Zero
	if !first.IsZero() {
		rate = change.Div(first.Abs()).
			Mul(decimal.NewFromInt(int64(perYear))).
			Div(steps).
			Mul(hundred)
	}

	threshold := first.Abs().Mul(directionThreshold)
	direction := models.TrendStable
	switch {
	case delta.GreaterThan(threshold):
		direction = models.TrendUp
	case delta.LessThan(threshold.Neg()):
		direction = models.TrendDown
	}

	return models.Trend{
		PeriodDelta: delta.Round(2),
		AnnualRate:  rate.Round(2),
		Direction:   direction,
	}
}
