package report

import (
	"testing"
	"time"

	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/period"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) time.Time {
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

func obs(id, accountID int64, at time.Time, balance string) models.BalanceObservation {
	return models.BalanceObservation{ID: id, AccountID: accountID, RecordedAt: at, Balance: decimal.RequireFromString(balance)}
}

func TestBuildEmpty(t *testing.T) {
	b := NewBuilder(period.Quarter)

	r := b.Build(nil, nil, time.Time{}, date(2024, 6, 1))
	assert.Empty(t, r.Periods)
	assert.Empty(t, r.Accounts)

	r = b.Build([]models.Account{{ID: 1, Category: models.CategoryBanking}}, nil, time.Time{}, date(2024, 6, 1))
	assert.Empty(t, r.Periods)
	assert.NotNil(t, r.NetWorth)
}

func TestBuildZeroBaseNetWorth(t *testing.T) {
	accounts := []models.Account{{ID: 1, Name: "Checking", Category: models.CategoryBanking}}
	observations := []models.BalanceObservation{
		obs(1, 1, date(2024, 1, 5), "0"),
		obs(2, 1, date(2024, 5, 5), "5000"),
	}

	r := NewBuilder(period.Quarter).Build(accounts, observations, time.Time{}, date(2024, 6, 30))

	assert.Equal(t, []string{"2024-Q1", "2024-Q2"}, r.Periods)
	require.Len(t, r.NetWorth, 2)
	assert.True(t, r.NetWorth[0].IsZero())
	assert.Equal(t, "5000", r.NetWorth[1].String())
	require.Len(t, r.PercentChange, 2)
	assert.False(t, r.PercentChange[0].Valid)
	assert.False(t, r.PercentChange[1].Valid)
}

func TestBuildSubtractsLiabilities(t *testing.T) {
	accounts := []models.Account{
		{ID: 1, Name: "Brokerage", Category: models.CategoryInvestment},
		{ID: 2, Name: "Mortgage", Category: models.CategorySecuredDebt},
	}
	observations := []models.BalanceObservation{
		obs(1, 1, date(2024, 1, 5), "10000"),
		obs(2, 2, date(2024, 2, 5), "4000"),
		obs(3, 1, date(2024, 4, 5), "12000"),
	}

	r := NewBuilder(period.Quarter).Build(accounts, observations, time.Time{}, date(2024, 6, 30))

	require.Len(t, r.Accounts, 2)
	assert.True(t, r.Accounts[1].IsLiability)
	assert.Equal(t, "6000", r.NetWorth[0].String())
	assert.Equal(t, "8000", r.NetWorth[1].String())
	assert.Equal(t, "33.33", r.PercentChange[1].Decimal.String())
}

func TestBuildStartAfterEarliestKeepsPriorBalance(t *testing.T) {
	accounts := []models.Account{{ID: 1, Name: "Savings", Category: models.CategoryBanking}}
	observations := []models.BalanceObservation{obs(1, 1, date(2022, 3, 1), "900")}

	r := NewBuilder(period.Month).Build(accounts, observations, date(2024, 1, 1), date(2024, 3, 1))

	assert.Equal(t, []string{"2024-01", "2024-02", "2024-03"}, r.Periods)
	for _, v := range r.Accounts[0].Balances {
		assert.Equal(t, "900", v.String())
	}
}

func TestBuildKeepsEndPeriodAcrossLocations(t *testing.T) {
	moscow := time.FixedZone("MSK", 3*60*60)
	accounts := []models.Account{{ID: 1, Name: "Checking", Category: models.CategoryBanking}}
	observations := []models.BalanceObservation{
		obs(1, 1, time.Date(2024, 3, 31, 20, 30, 0, 0, time.UTC), "400"),
	}

	r := NewBuilder(period.Quarter).Build(accounts, observations, time.Time{}, time.Date(2024, 5, 1, 0, 0, 0, 0, moscow))

	assert.Equal(t, []string{"2024-Q1", "2024-Q2"}, r.Periods)
	require.Len(t, r.Accounts, 1)
	assert.Equal(t, "400", r.Accounts[0].Balances[0].String())
	assert.Equal(t, "400", r.Accounts[0].Balances[1].String())
}
