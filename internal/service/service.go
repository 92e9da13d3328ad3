package service

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/Dan9191/networth-service/internal/assumptions"
	"github.com/Dan9191/networth-service/internal/config"
	"github.com/Dan9191/networth-service/internal/forecast"
	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/report"
	"github.com/shopspring/decimal"
	"github.com/sirupsen/logrus"
)

const maxHorizonYears = 30

var (
	// ErrInvalidInput is returned for requests the service cannot act on
	ErrInvalidInput = errors.New("invalid input")
	// ErrForbidden is returned when a user touches an account they do not own
	ErrForbidden = errors.New("account does not belong to user")
)

// Store is the persistence the service reads accounts and balance history from
type Store interface {
	GetActiveAccounts(ctx context.Context, userID int64) ([]models.Account, error)
	ListActiveAccounts(ctx context.Context) ([]models.Account, error)
	FindAccountByID(ctx context.Context, accountID int64) (*models.Account, error)
	GetObservations(ctx context.Context, accountID int64) ([]models.BalanceObservation, error)
	GetObservationsInRange(ctx context.Context, userID int64, start, end time.Time) ([]models.BalanceObservation, error)
	LatestObservation(ctx context.Context, accountID int64) (*models.BalanceObservation, error)
	CreateObservation(ctx context.Context, o *models.BalanceObservation) error
	ListUsersWithActiveAccounts(ctx context.Context) ([]models.User, error)
}

// RateSource provides the central bank key rate in percent
type RateSource interface {
	GetKeyRate() (decimal.Decimal, error)
}

// Notifier delivers the periodic net worth digest
type Notifier interface {
	SendNetWorthDigest(to, username string, summary models.ForecastSummary) error
}

// Service handles business logic
type Service struct {
	store        Store
	assumptions  *assumptions.Provider
	engine       *forecast.Engine
	reports      *report.Builder
	rates        RateSource
	notifier     Notifier
	horizonYears int
	log          *logrus.Logger
	now          func() time.Time
}

// NewService initializes a new service
func NewService(store Store, provider *assumptions.Provider, rates RateSource, notifier Notifier, cfg *config.Config, log *logrus.Logger) *Service {
	return &Service{
		store:        store,
		assumptions:  provider,
		engine:       forecast.NewEngine(cfg.Granularity),
		reports:      report.NewBuilder(cfg.Granularity),
		rates:        rates,
		notifier:     notifier,
		horizonYears: cfg.ForecastHorizonYears,
		log:          log,
		now:          time.Now,
	}
}

// Forecast builds the net worth forecast for a user. years <= 0 uses the configured horizon.
func (s *Service) Forecast(ctx context.Context, userID int64, years int) (*models.ForecastResult, error) {
	if years <= 0 {
		years = s.horizonYears
	}
	if years > maxHorizonYears {
		return nil, fmt.Errorf("%w: forecast horizon must be at most %d years", ErrInvalidInput, maxHorizonYears)
	}

	accounts, err := s.store.GetActiveAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	var observations []models.BalanceObservation
	for _, a := range accounts {
		history, err := s.store.GetObservations(ctx, a.ID)
		if err != nil {
			return nil, err
		}
		observations = append(observations, history...)
	}
	rates, err := s.assumptions.Rates(ctx, userID)
	if err != nil {
		return nil, err
	}

	result := s.engine.Forecast(forecast.Input{
		Accounts:     accounts,
		Observations: observations,
		Rates:        rates,
		Now:          s.now(),
		Horizon:      s.engine.HorizonForYears(years),
	})
	s.log.WithFields(logrus.Fields{
		"user_id":  userID,
		"accounts": len(result.Accounts),
		"periods":  len(result.Periods),
	}).Info("Forecast computed")
	return &result, nil
}

// Report builds the historical balance table between start and end.
// A zero start begins at the user's first observation; a zero end means now.
func (s *Service) Report(ctx context.Context, userID int64, start, end time.Time) (*models.HistoricalReport, error) {
	if end.IsZero() {
		end = s.now()
	}
	if !start.IsZero() && start.After(end) {
		return nil, fmt.Errorf("%w: start must not be after end", ErrInvalidInput)
	}

	accounts, err := s.store.GetActiveAccounts(ctx, userID)
	if err != nil {
		return nil, err
	}
	// history before start seeds the forward fill; read through the end of the last period
	through := s.engine.Granularity().End(end).AddDate(0, 0, 1).Add(-time.Nanosecond)
	observations, err := s.store.GetObservationsInRange(ctx, userID, time.Time{}, through)
	if err != nil {
		return nil, err
	}

	result := s.reports.Build(accounts, observations, start, end)
	s.log.WithFields(logrus.Fields{
		"user_id": userID,
		"periods": len(result.Periods),
	}).Info("Report built")
	return &result, nil
}

// RecordBalance stores a balance observation for one of the user's accounts.
// A zero recordedAt means now.
func (s *Service) RecordBalance(ctx context.Context, userID, accountID int64, balance decimal.Decimal, recordedAt time.Time, note string) (*models.BalanceObservation, error) {
	account, err := s.store.FindAccountByID(ctx, accountID)
	if err != nil {
		return nil, err
	}
	if account.UserID != userID {
		return nil, ErrForbidden
	}
	if recordedAt.IsZero() {
		recordedAt = s.now()
	}

	o := &models.BalanceObservation{
		AccountID:  accountID,
		Balance:    balance,
		RecordedAt: recordedAt,
		Note:       note,
	}
	if err := s.store.CreateObservation(ctx, o); err != nil {
		return nil, err
	}
	s.log.Infof("Balance recorded for account %d", accountID)
	return o, nil
}
