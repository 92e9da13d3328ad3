package forecast

import (
	"fmt"
	"time"

	"github.com/Dan9191/networth-service/internal/assumptions"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/period"
	"github.com/shopspring/decimal"
)

const (
	powPrecision = 16
	// PayoffCapYears bounds how far out a payoff date is reported
	PayoffCapYears = 30
)

// fallback share of the remaining debt paid each period when no paydown is observed
var fallbackPayment = decimal.RequireFromString("0.03")

// ProjectionInput describes one account to project
type ProjectionInput struct {
	Category    models.Category
	Balance     decimal.Decimal
	PeriodDelta decimal.Decimal
	Periods     int // number of periods ahead to project
	PerYear     int
	Rates       assumptions.Rates
}

// Projector returns one projected balance per period ahead, 1..Periods
type Projector func(in ProjectionInput) []decimal.Decimal

var projectors = map[models.Category]Projector{
	models.CategoryInvestment:          growth(func(r assumptions.Rates) decimal.Decimal { return r.Investment }, false),
	models.CategoryRealEstate:          growth(func(r assumptions.Rates) decimal.Decimal { return r.RealEstate }, false),
	models.CategoryBanking:             growth(func(r assumptions.Rates) decimal.Decimal { return r.Banking }, true),
	models.CategoryBusiness:            growth(func(r assumptions.Rates) decimal.Decimal { return r.Business }, true),
	models.CategoryVehiclesAndProperty: depreciation,
	models.CategorySecuredDebt:         paydown,
	models.CategoryUnsecuredDebt:       paydown,
	models.CategoryOtherLiabilities:    paydown,
}

// ProjectorFor returns the model for a category. Unknown categories are held flat.
func ProjectorFor(c models.Category) Projector {
	if p, ok := projectors[c]; ok {
		return p
	}
	return flat
}

// Project runs the category's model
func Project(in ProjectionInput) []decimal.Decimal {
	if in.Periods <= 0 {
		return []decimal.Decimal{}
	}
	return ProjectorFor(in.Category)(in)
}

// years returns k periods expressed in years
func years(k, perYear int) decimal.Decimal {
	return decimal.NewFromInt(int64(k)).Div(decimal.NewFromInt(int64(perYear)))
}

// compound returns base^exp for a positive exp. A negative base means more
// than the whole value was lost and is treated as zero, so the power always
// exists.
func compound(base, exp decimal.Decimal) decimal.Decimal {
	base = decimal.Max(base, decimal.Zero)
	factor, err := base.PowWithPrecision(exp, powPrecision)
	if err != nil {
		panic(fmt.Sprintf("forecast: cannot raise %s to %s: %v", base, exp, err))
	}
	return factor
}

// growth compounds the balance at an annual rate: balance * (1+rate)^(k/perYear)
func growth(rate func(assumptions.Rates) decimal.Decimal, floorAtZero bool) Projector {
	return func(in ProjectionInput) []decimal.Decimal {
		base := decimal.NewFromInt(1).Add(rate(in.Rates))
		out := make([]decimal.Decimal, in.Periods)
		for k := 1; k <= in.Periods; k++ {
			v := in.Balance.Mul(compound(base, years(k, in.PerYear)))
			if floorAtZero && v.IsNegative() {
				v = decimal.Zero
			}
			out[k-1] = v.Round(2)
		}
		return out
	}
}

// depreciation decays the balance yearly but never below the residual floor
func depreciation(in ProjectionInput) []decimal.Decimal {
	base := decimal.NewFromInt(1).Sub(in.Rates.VehicleDepreciation)
	floor := in.Balance.Mul(in.Rates.VehicleFloor)
	out := make([]decimal.Decimal, in.Periods)
	for k := 1; k <= in.Periods; k++ {
		v := decimal.Max(floor, in.Balance.Mul(compound(base, years(k, in.PerYear))))
		out[k-1] = v.Round(2)
	}
	return out
}

// paydown simulates debt repayment period by period. An observed downward
// trend is used as the payment, otherwise 3% of the remaining balance is paid.
// The balance never goes below zero and stays there once paid off. An
// overpaid debt starts at zero.
func paydown(in ProjectionInput) []decimal.Decimal {
	balance := decimal.Max(in.Balance, decimal.Zero)
	out := make([]decimal.Decimal, in.Periods)
	for k := 0; k < in.Periods; k++ {
		if balance.IsPositive() {
			payment := balance.Mul(fallbackPayment)
			if in.PeriodDelta.IsNegative() {
				payment = in.PeriodDelta.Abs()
			}
			balance = balance.Sub(payment)
			if balance.IsNegative() {
				balance = decimal.Zero
			}
		}
		out[k] = balance.Round(2)
	}
	return out
}

func flat(in ProjectionInput) []decimal.Decimal {
	out := make([]decimal.Decimal, in.Periods)
	for k := range out {
		out[k] = in.Balance
	}
	return out
}

// PayoffDate returns the end of the period in which a liability with a
// downward trend is expected to reach zero. Nil when the account is not a
// liability, is not being paid down, or would take PayoffCapYears or longer.
func PayoffDate(c models.Category, balance, periodDelta decimal.Decimal, now time.Time, g period.Granularity) *time.Time {
	if !c.IsLiability() || !periodDelta.IsNegative() || !balance.IsPositive() {
		return nil
	}
	periods := balance.Div(periodDelta.Abs()).Ceil().IntPart()
	if periods <= 0 || periods >= int64(PayoffCapYears*g.PerYear()) {
		return nil
	}
	payoff := g.Add(now, int(periods))
	return &payoff
}
