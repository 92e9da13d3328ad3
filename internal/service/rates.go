package service

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// deposit rates typically trail the key rate by this many percentage points
var depositSpread = decimal.NewFromInt(2)

// SuggestedBankingRate derives an annual banking growth rate, as a fraction,
// from the central bank key rate
func (s *Service) SuggestedBankingRate() (decimal.Decimal, error) {
	keyRate, err := s.rates.GetKeyRate()
	if err != nil {
		return decimal.Zero, fmt.Errorf("failed to get key rate: %w", err)
	}
	rate := keyRate.Sub(depositSpread)
	if rate.IsNegative() {
		rate = decimal.Zero
	}
	return rate.Div(decimal.NewFromInt(100)).Round(4), nil
}
