// Package assumptions resolves the growth and depreciation rates used by the
// projection engine, preferring a user's overrides over system defaults.
package assumptions

import (
	"context"
	"errors"
	"fmt"

	"github.com/Dan9191/networth-service/internal/models"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

// ErrInvalidRate is returned when an override falls outside [0, 1]
var ErrInvalidRate = errors.New("rate must be between 0 and 1")

// Rates are fully resolved annual rates expressed as fractions
type Rates struct {
	Investment          decimal.Decimal
	RealEstate          decimal.Decimal
	Banking             decimal.Decimal
	Business            decimal.Decimal
	VehicleDepreciation decimal.Decimal
	VehicleFloor        decimal.Decimal // share of the current value a vehicle never drops below
}

// Defaults returns the system default rates
func Defaults() Rates {
	return Rates{
		Investment:          decimal.RequireFromString("0.07"),
		RealEstate:          decimal.RequireFromString("0.02"),
		Banking:             decimal.RequireFromString("0.005"),
		Business:            decimal.RequireFromString("0.03"),
		VehicleDepreciation: decimal.RequireFromString("0.15"),
		VehicleFloor:        decimal.RequireFromString("0.10"),
	}
}

// Resolve applies the set fields of a over the defaults. A nil a yields the defaults.
func Resolve(a *models.Assumptions) Rates {
	rates := Defaults()
	if a == nil {
		return rates
	}
	pick(&rates.Investment, a.InvestmentRate)
	pick(&rates.RealEstate, a.RealEstateRate)
	pick(&rates.Banking, a.BankingRate)
	pick(&rates.Business, a.BusinessRate)
	pick(&rates.VehicleDepreciation, a.VehicleDepreciationRate)
	return rates
}

func pick(dst *decimal.Decimal, override decimal.NullDecimal) {
	if override.Valid {
		*dst = override.Decimal
	}
}

// Store persists per-user assumptions
type Store interface {
	GetAssumptions(ctx context.Context, userID int64) (*models.Assumptions, error)
	GetOrCreateAssumptions(ctx context.Context, userID int64) (*models.Assumptions, error)
	SaveAssumptions(ctx context.Context, a *models.Assumptions) error
	ResetAssumptions(ctx context.Context, userID int64) error
}

// Overrides is a partial update; nil fields are left unchanged
type Overrides struct {
	InvestmentRate          *decimal.Decimal `json:"investment_rate"`
	RealEstateRate          *decimal.Decimal `json:"real_estate_rate"`
	BankingRate             *decimal.Decimal `json:"banking_rate"`
	BusinessRate            *decimal.Decimal `json:"business_rate"`
	VehicleDepreciationRate *decimal.Decimal `json:"vehicle_depreciation_rate"`
}

// Validate checks every provided rate
func (o Overrides) Validate() error {
	fields := map[string]*decimal.Decimal{
		"investment_rate":           o.InvestmentRate,
		"real_estate_rate":          o.RealEstateRate,
		"banking_rate":              o.BankingRate,
		"business_rate":             o.BusinessRate,
		"vehicle_depreciation_rate": o.VehicleDepreciationRate,
	}
	for name, v := range fields {
		if v != nil && (v.IsNegative() || v.GreaterThan(decimal.NewFromInt(1))) {
			return fmt.Errorf("%s: %w", name, ErrInvalidRate)
		}
	}
	return nil
}

func (o Overrides) apply(a *models.Assumptions) {
	set := func(dst *decimal.NullDecimal, v *decimal.Decimal) {
		if v != nil {
			*dst = decimal.NewNullDecimal(*v)
		}
	}
	set(&a.InvestmentRate, o.InvestmentRate)
	set(&a.RealEstateRate, o.RealEstateRate)
	set(&a.BankingRate, o.BankingRate)
	set(&a.BusinessRate, o.BusinessRate)
	set(&a.VehicleDepreciationRate, o.VehicleDepreciationRate)
}

// Provider resolves and maintains user assumptions
type Provider struct {
	store Store
	log   *logrus.Logger
}

// NewProvider initializes a new provider
func NewProvider(store Store, log *logrus.Logger) *Provider {
	return &Provider{store: store, log: log}
}

// Rates returns the resolved rates for a user. A user without a stored row gets the defaults.
func (p *Provider) Rates(ctx context.Context, userID int64) (Rates, error) {
	a, err := p.store.GetAssumptions(ctx, userID)
	if err != nil {
		return Rates{}, fmt.Errorf("failed to load assumptions: %w", err)
	}
	if a == nil {
		p.log.Debugf("No assumptions stored for user %d, using defaults", userID)
	}
	return Resolve(a), nil
}

// Get returns the user's assumptions, creating an empty row on first access
func (p *Provider) Get(ctx context.Context, userID int64) (*models.Assumptions, error) {
	a, err := p.store.GetOrCreateAssumptions(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to load assumptions: %w", err)
	}
	return a, nil
}

// Update applies overrides to the user's assumptions and saves them
func (p *Provider) Update(ctx context.Context, userID int64, o Overrides) (*models.Assumptions, error) {
	if err := o.Validate(); err != nil {
		return nil, err
	}
	a, err := p.Get(ctx, userID)
	if err != nil {
		return nil, err
	}
	o.apply(a)
	if err := p.store.SaveAssumptions(ctx, a); err != nil {
		return nil, fmt.Errorf("failed to save assumptions: %w", err)
	}
	p.log.Infof("Assumptions updated for user %d", userID)
	return a, nil
}

// Reset clears every override for the user
func (p *Provider) Reset(ctx context.Context, userID int64) error {
	if err := p.store.ResetAssumptions(ctx, userID); err != nil {
		return fmt.Errorf("failed to reset assumptions: %w", err)
	}
	p.log.Infof("Assumptions reset to defaults for user %d", userID)
	return nil
}
