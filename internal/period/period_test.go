package period

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func TestParseGranularity(t *testing.T) {
	g, err := ParseGranularity("Month")
	require.NoError(t, err)
	assert.Equal(t, Month, g)

	g, err = ParseGranularity("")
	require.NoError(t, err)
	assert.Equal(t, Quarter, g)

	_, err = ParseGranularity("fortnight")
	assert.Error(t, err)
}

func TestEnd(t *testing.T) {
	tests := []struct {
		name string
		g    Granularity
		in   time.Time
		want time.Time
	}{
		{"quarter start", Quarter, date(2024, 1, 1), date(2024, 3, 31)},
		{"quarter last day", Quarter, date(2024, 6, 30), date(2024, 6, 30)},
		{"quarter mid", Quarter, date(2024, 8, 15), date(2024, 9, 30)},
		{"quarter year end", Quarter, date(2023, 11, 2), date(2023, 12, 31)},
		{"month leap feb", Month, date(2024, 2, 10), date(2024, 2, 29)},
		{"month december", Month, date(2024, 12, 31), date(2024, 12, 31)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.g.End(tt.in))
		})
	}
}

func TestEndKeepsTimeOfDayOut(t *testing.T) {
	in := time.Date(2024, 5, 5, 23, 59, 0, 0, time.UTC)
	assert.Equal(t, date(2024, 6, 30), Quarter.End(in))
}

func TestAdd(t *testing.T) {
	assert.Equal(t, date(2025, 3, 31), Quarter.Add(date(2024, 12, 31), 1))
	assert.Equal(t, date(2024, 9, 30), Quarter.Add(date(2024, 12, 31), -1))
	assert.Equal(t, date(2024, 2, 29), Month.Add(date(2024, 1, 31), 1))
	assert.Equal(t, date(2027, 12, 31), Quarter.Add(date(2024, 11, 1), 12))
}

func TestGenerate(t *testing.T) {
	got := Quarter.Generate(date(2023, 11, 15), date(2024, 7, 1))
	assert.Equal(t, []time.Time{
		date(2023, 12, 31), date(2024, 3, 31), date(2024, 6, 30), date(2024, 9, 30),
	}, got)

	months := Month.Generate(date(2024, 1, 31), date(2024, 3, 1))
	assert.Equal(t, []time.Time{date(2024, 1, 31), date(2024, 2, 29), date(2024, 3, 31)}, months)
}

func TestGenerateStartAfterEnd(t *testing.T) {
	got := Quarter.Generate(date(2025, 1, 1), date(2024, 5, 1))
	assert.Equal(t, []time.Time{date(2024, 6, 30)}, got)
}

func TestGenerateIsContiguous(t *testing.T) {
	got := Month.Generate(date(2019, 3, 3), date(2024, 8, 8))
	require.Len(t, got, 66)
	for i := 1; i < len(got); i++ {
		assert.Equal(t, Month.Add(got[i-1], 1), got[i])
	}
}

func TestFollowing(t *testing.T) {
	assert.Nil(t, Quarter.Following(date(2024, 5, 1), 0))
	assert.Equal(t, []time.Time{date(2024, 9, 30), date(2024, 12, 31)}, Quarter.Following(date(2024, 5, 1), 2))
}

func TestLabel(t *testing.T) {
	assert.Equal(t, "2024-Q3", Quarter.Label(date(2024, 9, 30)))
	assert.Equal(t, "2024-09", Month.Label(date(2024, 9, 30)))
	assert.Equal(t, 4, Quarter.PerYear())
	assert.Equal(t, 12, Month.PerYear())
}

func TestIncludes(t *testing.T) {
	end := date(2024, 3, 31)
	assert.True(t, Includes(end, time.Date(2024, 3, 31, 23, 59, 59, 0, time.UTC)))
	assert.False(t, Includes(end, date(2024, 4, 1)))
}

func TestGenerateAcrossLocations(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	start := time.Date(2024, 1, 15, 0, 0, 0, 0, time.UTC)
	end := time.Date(2024, 2, 10, 12, 0, 0, 0, moscow)

	got := Quarter.Generate(start, end)
	assert.Equal(t, []time.Time{time.Date(2024, 3, 31, 0, 0, 0, 0, moscow)}, got)

	// late on the last UTC day of Q1 is already Q2 in Moscow
	start = time.Date(2024, 3, 31, 20, 30, 0, 0, time.UTC)
	end = time.Date(2024, 5, 1, 0, 0, 0, 0, moscow)
	got = Quarter.Generate(start, end)
	assert.Equal(t, []string{"2024-Q1", "2024-Q2"}, Quarter.Labels(got))
	assert.Equal(t, moscow, got[0].Location())
}
