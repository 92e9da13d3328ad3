package service

import (
	"context"
	"errors"

	"github.com/Dan9191/networth-service/internal/models"
	"github.com/Dan9191/networth-service/internal/repository"
)

const snapshotNote = "scheduled snapshot"

// SnapshotBalances records the current balance of every active account whose
// latest observation differs from it. It returns the number of snapshots taken.
func (s *Service) SnapshotBalances(ctx context.Context) (int, error) {
	accounts, err := s.store.ListActiveAccounts(ctx)
	if err != nil {
		return 0, err
	}

	taken := 0
	for _, a := range accounts {
		latest, err := s.store.LatestObservation(ctx, a.ID)
		if err != nil && !errors.Is(err, repository.ErrNotFound) {
			return taken, err
		}
		if latest != nil && latest.Balance.Equal(a.Balance) {
			continue
		}
		o := &models.BalanceObservation{
			AccountID:  a.ID,
			Balance:    a.Balance,
			RecordedAt: s.now(),
			Note:       snapshotNote,
		}
		if err := s.store.CreateObservation(ctx, o); err != nil {
			return taken, err
		}
		taken++
	}
	s.log.Infof("Balance snapshots taken: %d of %d accounts", taken, len(accounts))
	return taken, nil
}

// SendDigests emails every user with active accounts their forecast summary.
// A failure for one user is logged and does not stop the others.
func (s *Service) SendDigests(ctx context.Context) (int, error) {
	users, err := s.store.ListUsersWithActiveAccounts(ctx)
	if err != nil {
		return 0, err
	}

	sent := 0
	for _, u := range users {
		result, err := s.Forecast(ctx, u.ID, 0)
		if err != nil {
			s.log.Errorf("Failed to compute digest forecast for user %d: %v", u.ID, err)
			continue
		}
		if len(result.Periods) == 0 {
			continue
		}
		if err := s.notifier.SendNetWorthDigest(u.Email, u.Username, result.Summary); err != nil {
			s.log.Errorf("Failed to send digest to user %d: %v", u.ID, err)
			continue
		}
		sent++
	}
	s.log.Infof("Net worth digests sent: %d of %d users", sent, len(users))
	return sent, nil
}
