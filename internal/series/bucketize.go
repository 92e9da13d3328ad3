// Package series reconstructs per-period balances from sparse observations and
// aggregates them into net-worth totals.
package series

import (
	"sort"
	"time"

	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/period"
	"github.com/shopspring/decimal"
)

// Bucketize returns one balance per period end using forward fill: each period
// takes the latest observation recorded on or before its last day, and keeps the
// previous period's balance when nothing new was recorded. Periods before the
// first observation are zero. Observations after the final period are ignored.
// periods must be in ascending order.
func Bucketize(observations []models.BalanceObservation, periods []time.Time) []decimal.Decimal {
	sorted := Sorted(observations)
	balances := make([]decimal.Decimal, len(periods))
	last := decimal.Zero
	next := 0
	for i, end := range periods {
		for next < len(sorted) && period.Includes(end, sorted[next].RecordedAt) {
			last = sorted[next].Balance
			next++
		}
		balances[i] = last
	}
	return balances
}

// Sorted returns a copy of observations ordered by time. Equal timestamps are
// ordered by ID so the most recently inserted row comes last and wins.
func Sorted(observations []models.BalanceObservation) []models.BalanceObservation {
	sorted := make([]models.BalanceObservation, len(observations))
	copy(sorted, observations)
	sort.SliceStable(sorted, func(i, j int) bool {
		if !sorted[i].RecordedAt.Equal(sorted[j].RecordedAt) {
			return sorted[i].RecordedAt.Before(sorted[j].RecordedAt)
		}
		return sorted[i].ID < sorted[j].ID
	})
	return sorted
}

// GroupByAccount splits observations by account id
func GroupByAccount(observations []models.BalanceObservation) map[int64][]models.BalanceObservation {
	grouped := make(map[int64][]models.BalanceObservation)
	for _, o := range observations {
		grouped[o.AccountID] = append(grouped[o.AccountID], o)
	}
	return grouped
}

// Earliest returns the earliest observation time, or false if there are none
func Earliest(observations []models.BalanceObservation) (time.Time, bool) {
	var earliest time.Time
	found := false
	for _, o := range observations {
		if !found || o.RecordedAt.Before(earliest) {
			earliest = o.RecordedAt
			found = true
		}
	}
	return earliest, found
}
