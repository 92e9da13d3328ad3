// Package forecast reconstructs account history, estimates trends and projects
// future balances into a net-worth forecast. It performs no I/O: callers fetch
// accounts, observations and rates up front and pass them in.
package forecast

import (
	"time"

	"github.com/Dan9191/networth-service/internal/assumptions"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/period"
	"github.com/Dan9191/networth-service/internal/series"
	"github.com/shopspring/decimal"
)

// Input is everything a forecast needs for one user
type Input struct {
	Accounts     []models.Account
	Observations []models.BalanceObservation
	Rates        assumptions.Rates
	Now          time.Time
	Horizon      int // forecast periods
}

// Engine builds forecasts at a fixed period granularity
type Engine struct {
	granularity period.Granularity
}

// NewEngine initializes a new engine
func NewEngine(g period.Granularity) *Engine {
	return &Engine{granularity: g}
}

// Granularity returns the period length the engine works in
func (e *Engine) Granularity() period.Granularity {
	return e.granularity
}

// HorizonForYears converts a number of years into forecast periods
func (e *Engine) HorizonForYears(years int) int {
	return years * e.granularity.PerYear()
}

// Forecast builds the historical and projected series. It returns an empty
// result when there are no accounts or none of them has an observation.
func (e *Engine) Forecast(in Input) models.ForecastResult {
	result := emptyResult()
	if len(in.Accounts) == 0 {
		return result
	}

	byAccount := series.GroupByAccount(in.Observations)
	var scoped []models.BalanceObservation
	for _, a := range in.Accounts {
		scoped = append(scoped, byAccount[a.ID]...)
	}
	earliest, ok := series.Earliest(scoped)
	if !ok {
		return result
	}

	g := e.granularity
	historical := g.Generate(earliest, in.Now)
	future := g.Following(in.Now, in.Horizon)
	histLabels := g.Labels(historical)
	futureLabels := g.Labels(future)

	histColumns := make([]series.Column, 0, len(in.Accounts))
	futureColumns := make([]series.Column, 0, len(in.Accounts))
	for _, a := range in.Accounts {
		s := e.accountSeries(a, byAccount[a.ID], historical, len(future), in)
		result.Accounts = append(result.Accounts, s)
		histColumns = append(histColumns, series.Column{Liability: s.IsLiability, Values: s.Historical})
		futureColumns = append(futureColumns, series.Column{Liability: s.IsLiability, Values: s.Forecast})
	}

	result.Periods = append(histLabels, futureLabels...)
	result.HistoricalPeriods = len(histLabels)
	result.NetWorth.Historical = series.Aggregate(histLabels, histColumns)
	result.NetWorth.Forecast = series.Aggregate(futureLabels, futureColumns)
	result.Summary = summarize(in.Accounts, result.NetWorth.Forecast, future)
	return result
}

func (e *Engine) accountSeries(a models.Account, observations []models.BalanceObservation, historical []time.Time, horizon int, in Input) models.AccountSeries {
	g := e.granularity
	history := series.Bucketize(observations, historical)
	trend := EstimateTrend(history, g.PerYear())
	projected := Project(ProjectionInput{
		Category:    a.Category,
		Balance:     a.Balance,
		PeriodDelta: trend.PeriodDelta,
		Periods:     horizon,
		PerYear:     g.PerYear(),
		Rates:       in.Rates,
	})
	return models.AccountSeries{
		AccountID:   a.ID,
		Name:        a.Name,
		Category:    a.Category,
		IsLiability: a.IsLiability(),
		Balance:     a.Balance,
		Historical:  history,
		Forecast:    projected,
		Trend:       trend,
		PayoffDate:  PayoffDate(a.Category, a.Balance, trend.PeriodDelta, in.Now, g),
	}
}

// summarize compares the accounts' current balances with the last forecast period
func summarize(accounts []models.Account, forecast []models.NetWorthPoint, future []time.Time) models.ForecastSummary {
	var s models.ForecastSummary
	for _, a := range accounts {
		if a.IsLiability() {
			s.CurrentLiabilities = s.CurrentLiabilities.Add(a.Balance)
		} else {
			s.CurrentAssets = s.CurrentAssets.Add(a.Balance)
		}
	}
	s.CurrentNetWorth = s.CurrentAssets.Sub(s.CurrentLiabilities)

	s.ProjectedAssets, s.ProjectedLiabilities, s.ProjectedNetWorth = s.CurrentAssets, s.CurrentLiabilities, s.CurrentNetWorth
	if n := len(forecast); n > 0 {
		last := forecast[n-1]
		s.ProjectedAssets, s.ProjectedLiabilities, s.ProjectedNetWorth = last.Assets, last.Liabilities, last.NetWorth
		end := future[len(future)-1]
		s.ProjectionEnd = &end
	}
	s.Change = s.ProjectedNetWorth.Sub(s.CurrentNetWorth)
	s.PercentChange = series.PercentChange(s.CurrentNetWorth, s.ProjectedNetWorth)
	return s
}

func emptyResult() models.ForecastResult {
	return models.ForecastResult{
		Periods:  []string{},
		Accounts: []models.AccountSeries{},
		NetWorth: models.NetWorthSeries{
			Historical: []models.NetWorthPoint{},
			Forecast:   []models.NetWorthPoint{},
		},
		Summary: models.ForecastSummary{
			CurrentAssets:        decimal.Zero,
			CurrentLiabilities:   decimal.Zero,
			CurrentNetWorth:      decimal.Zero,
			ProjectedAssets:      decimal.Zero,
			ProjectedLiabilities: decimal.Zero,
			ProjectedNetWorth:    decimal.Zero,
			Change:               decimal.Zero,
		},
	}
}
