// Package period defines the calendar buckets used for balance reconstruction
// and projection. A period is identified by its end date: the last calendar day
// of the month or quarter, at midnight in the location of the input time.
package period

import (
	"fmt"
	"strings"
	"time"
)

// Granularity is the length of a period
type Granularity string

const (
	Quarter Granularity = "quarter"
	Month   Granularity = "month"
)

// ParseGranularity converts a config value into a Granularity
func ParseGranularity(s string) (Granularity, error) {
	switch Granularity(strings.ToLower(strings.TrimSpace(s))) {
	case Quarter, "":
		return Quarter, nil
	case Month:
		return Month, nil
	}
	return "", fmt.Errorf("unknown period granularity %q", s)
}

// MonthsPerPeriod returns 3 for quarters and 1 for months
func (g Granularity) MonthsPerPeriod() int {
	if g == Month {
		return 1
	}
	return 3
}

// PerYear returns the number of periods in a calendar year
func (g Granularity) PerYear() int {
	return 12 / g.MonthsPerPeriod()
}

// End returns the last day of the period containing t
func (g Granularity) End(t time.Time) time.Time {
	months := g.MonthsPerPeriod()
	endMonth := ((int(t.Month())-1)/months + 1) * months
	// day 0 of the following month is the last day of endMonth
	return time.Date(t.Year(), time.Month(endMonth+1), 0, 0, 0, 0, 0, t.Location())
}

// Add returns the end of the period n periods after the one containing t.
// Negative n moves backwards.
func (g Granularity) Add(t time.Time, n int) time.Time {
	first := time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, t.Location())
	return g.End(first.AddDate(0, n*g.MonthsPerPeriod(), 0))
}

// Generate lists period ends from the period containing start through the
// period containing end, inclusive and without gaps. Boundaries are built in
// end's location. When start is after end the single period covering end is
// returned.
func (g Granularity) Generate(start, end time.Time) []time.Time {
	start = start.In(end.Location())
	last := g.End(end)
	if start.After(end) {
		return []time.Time{last}
	}
	var periods []time.Time
	for p := g.End(start); !p.After(last); p = g.Add(p, 1) {
		periods = append(periods, p)
	}
	return periods
}

// Following lists the n period ends after the period containing t
func (g Granularity) Following(t time.Time, n int) []time.Time {
	if n <= 0 {
		return nil
	}
	periods := make([]time.Time, 0, n)
	for i := 1; i <= n; i++ {
		periods = append(periods, g.Add(t, i))
	}
	return periods
}

// Label formats a period end as 2024-Q1 or 2024-01
func (g Granularity) Label(end time.Time) string {
	if g == Month {
		return end.Format("2006-01")
	}
	return fmt.Sprintf("%d-Q%d", end.Year(), (int(end.Month())-1)/3+1)
}

// Labels formats every period end in order
func (g Granularity) Labels(ends []time.Time) []string {
	labels := make([]string, len(ends))
	for i, end := range ends {
		labels[i] = g.Label(end)
	}
	return labels
}

// Includes reports whether t falls on or before the last day of the period
// ending at end.
func Includes(end, t time.Time) bool {
	return t.Before(end.AddDate(0, 0, 1))
}
