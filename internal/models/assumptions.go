package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Assumptions holds a user's per-category rate overrides.
// Rates are annual fractions (0.07 means 7% per year). An invalid field means
// the system default applies.
type Assumptions struct {
	UserID                  int64               `json:"user_id"`
	InvestmentRate          decimal.NullDecimal `json:"investment_rate"`
	RealEstateRate          decimal.NullDecimal `json:"real_estate_rate"`
	BankingRate             decimal.NullDecimal `json:"banking_rate"`
	BusinessRate            decimal.NullDecimal `json:"business_rate"`
	VehicleDepreciationRate decimal.NullDecimal `json:"vehicle_depreciation_rate"`
	CreatedAt               time.Time           `json:"created_at"`
	UpdatedAt               time.Time           `json:"updated_at"`
}
