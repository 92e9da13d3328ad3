package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Trend directions
const (
	TrendUp     = "up"
	TrendDown   = "down"
	TrendStable = "stable"
)

// Trend is the recent per-period movement of an account balance
type Trend struct {
	PeriodDelta decimal.Decimal `json:"period_delta"`
	AnnualRate  decimal.Decimal `json:"annual_rate"` // percent per year
	Direction   string          `json:"direction"`
}

// NetWorthPoint represents totals for a single period
type NetWorthPoint struct {
	Period        string              `json:"period"`
	Assets        decimal.Decimal     `json:"assets"`
	Liabilities   decimal.Decimal     `json:"liabilities"`
	NetWorth      decimal.Decimal     `json:"net_worth"`
	PercentChange decimal.NullDecimal `json:"percent_change"`
}

// AccountSeries holds reconstructed and projected balances for one account
type AccountSeries struct {
	AccountID   int64             `json:"account_id"`
	Name        string            `json:"name"`
	Category    Category          `json:"category"`
	IsLiability bool              `json:"is_liability"`
	Balance     decimal.Decimal   `json:"balance"`
	Historical  []decimal.Decimal `json:"historical"`
	Forecast    []decimal.Decimal `json:"forecast"`
	Trend       Trend             `json:"trend"`
	PayoffDate  *time.Time        `json:"payoff_date,omitempty"`
}

// NetWorthSeries represents totals over the historical and forecast horizons
type NetWorthSeries struct {
	Historical []NetWorthPoint `json:"historical"`
	Forecast   []NetWorthPoint `json:"forecast"`
}

// ForecastSummary compares current totals with the end of the projection
type ForecastSummary struct {
	CurrentAssets        decimal.Decimal     `json:"current_assets"`
	CurrentLiabilities   decimal.Decimal     `json:"current_liabilities"`
	CurrentNetWorth      decimal.Decimal     `json:"current_net_worth"`
	ProjectedAssets      decimal.Decimal     `json:"projected_assets"`
	ProjectedLiabilities decimal.Decimal     `json:"projected_liabilities"`
	ProjectedNetWorth    decimal.Decimal     `json:"projected_net_worth"`
	Change               decimal.Decimal     `json:"change"`
	PercentChange        decimal.NullDecimal `json:"percent_change"`
	ProjectionEnd        *time.Time          `json:"projection_end,omitempty"`
}

// ForecastResult is the full historical and projected view of a user's accounts
type ForecastResult struct {
	Periods           []string        `json:"periods"`
	HistoricalPeriods int             `json:"historical_periods"`
	Accounts          []AccountSeries `json:"accounts"`
	NetWorth          NetWorthSeries  `json:"net_worth"`
	Summary           ForecastSummary `json:"summary"`
}

// ReportRow is one line of the historical balance report
type ReportRow struct {
	AccountID   int64             `json:"account_id,omitempty"`
	Name        string            `json:"name"`
	Category    Category          `json:"category,omitempty"`
	IsLiability bool              `json:"is_liability"`
	Balances    []decimal.Decimal `json:"balances"`
}

// HistoricalReport is the account-by-period balance table with totals
type HistoricalReport struct {
	Periods       []string              `json:"periods"`
	Accounts      []ReportRow           `json:"accounts"`
	NetWorth      []decimal.Decimal     `json:"net_worth"`
	PercentChange []decimal.NullDecimal `json:"percent_change"`
}
