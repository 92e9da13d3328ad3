// Package report builds the historical account-by-period balance table.
package report

import (
	"time"

	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/period"
	"github.com/Dan9191/networth-service/internal/series"
	"github.com/shopspring/decimal"
)

// Builder reconstructs historical balances without any projection
type Builder struct {
	granularity period.Granularity
}

// NewBuilder initializes a new report builder
func NewBuilder(g period.Granularity) *Builder {
	return &Builder{granularity: g}
}

// Build returns one balance per account and period from start through end.
// A zero start begins at the earliest observation. Observations before start
// still seed the forward fill.
func (b *Builder) Build(accounts []models.Account, observations []models.BalanceObservation, start, end time.Time) models.HistoricalReport {
	report := models.HistoricalReport{
		Periods:       []string{},
		Accounts:      []models.ReportRow{},
		NetWorth:      []decimal.Decimal{},
		PercentChange: []decimal.NullDecimal{},
	}
	if len(accounts) == 0 {
		return report
	}

	byAccount := series.GroupByAccount(observations)
	var scoped []models.BalanceObservation
	for _, a := range accounts {
		scoped = append(scoped, byAccount[a.ID]...)
	}
	earliest, ok := series.Earliest(scoped)
	if !ok {
		return report
	}
	if start.IsZero() {
		start = earliest
	}

	periods := b.granularity.Generate(start, end)
	labels := b.granularity.Labels(periods)
	columns := make([]series.Column, 0, len(accounts))
	for _, a := range accounts {
		balances := series.Bucketize(byAccount[a.ID], periods)
		report.Accounts = append(report.Accounts, models.ReportRow{
			AccountID:   a.ID,
			Name:        a.Name,
			Category:    a.Category,
			IsLiability: a.IsLiability(),
			Balances:    balances,
		})
		columns = append(columns, series.Column{Liability: a.IsLiability(), Values: balances})
	}

	report.Periods = labels
	for _, p := range series.Aggregate(labels, columns) {
		report.NetWorth = append(report.NetWorth, p.NetWorth)
		report.PercentChange = append(report.PercentChange, p.PercentChange)
	}
	return report
}
