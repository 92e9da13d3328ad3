package series

import (
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/shopspring/decimal"
)

var hundred = decimal.NewFromInt(100)

// Column is one account's contribution to the period totals
type Column struct {
	Liability bool
	Values    []decimal.Decimal
}

// Aggregate sums columns per period into assets, liabilities and net worth.
// The first point never has a percent change.
func Aggregate(labels []string, columns []Column) []models.NetWorthPoint {
	points := make([]models.NetWorthPoint, len(labels))
	for i, label := range labels {
		assets, liabilities := decimal.Zero, decimal.Zero
		for _, c := range columns {
			if i >= len(c.Values) {
				continue
			}
			if c.Liability {
				liabilities = liabilities.Add(c.Values[i])
			} else {
				assets = assets.Add(c.Values[i])
			}
		}
		points[i] = models.NetWorthPoint{
			Period:      label,
			Assets:      assets,
			Liabilities: liabilities,
			NetWorth:    assets.Sub(liabilities),
		}
		if i > 0 {
			points[i].PercentChange = PercentChange(points[i-1].NetWorth, points[i].NetWorth)
		}
	}
	return points
}

// PercentChange returns (current - previous) / |previous| * 100 rounded to two
// places. It is null when previous is exactly zero.
func PercentChange(previous, current decimal.Decimal) decimal.NullDecimal {
	if previous.IsZero() {
		return decimal.NullDecimal{}
	}
	change := current.Sub(previous).Div(previous.Abs()).Mul(hundred).Round(2)
	return decimal.NewNullDecimal(change)
}
