package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Category classifies an account and selects its projection model
type Category string

const (
	CategoryBanking             Category = "banking"
	CategoryInvestment          Category = "investment"
	CategoryRealEstate          Category = "real_estate"
	CategoryVehiclesAndProperty Category = "vehicles_and_property"
	CategoryBusiness            Category = "business"
	CategorySecuredDebt         Category = "secured_debt"
	CategoryUnsecuredDebt       Category = "unsecured_debt"
	CategoryOtherLiabilities    Category = "other_liabilities"
)

// IsLiability reports whether balances of this category are owed rather than owned
func (c Category) IsLiability() bool {
	switch c {
	case CategorySecuredDebt, CategoryUnsecuredDebt, CategoryOtherLiabilities:
		return true
	}
	return false
}

// Valid reports whether c is one of the known categories
func (c Category) Valid() bool {
	switch c {
	case CategoryBanking, CategoryInvestment, CategoryRealEstate, CategoryVehiclesAndProperty,
		CategoryBusiness, CategorySecuredDebt, CategoryUnsecuredDebt, CategoryOtherLiabilities:
		return true
	}
	return false
}

// Account represents a tracked asset or liability
type Account struct {
	ID        int64           `json:"id"`
	UserID    int64           `json:"user_id"`
	Name      string          `json:"name"`
	Category  Category        `json:"category"`
	Balance   decimal.Decimal `json:"balance"`
	Currency  string          `json:"currency"`
	Active    bool            `json:"active"`
	CreatedAt time.Time       `json:"created_at"`
	UpdatedAt time.Time       `json:"updated_at"`
}

// IsLiability is derived from the account category
func (a Account) IsLiability() bool {
	return a.Category.IsLiability()
}

// BalanceObservation is a balance recorded for an account at a point in time
type BalanceObservation struct {
	ID         int64           `json:"id"`
	AccountID  int64           `json:"account_id"`
	Balance    decimal.Decimal `json:"balance"`
	RecordedAt time.Time       `json:"recorded_at"`
	Note       string          `json:"note,omitempty"`
}
