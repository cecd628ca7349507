package services

import (
	"context"
	"errors"
	"sync"

	"golang.org/x/sync/singleflight"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/session"
)

// ErrLoggedOut signals that the stored token was rejected by the backend.
// The session has already been cleared; the caller routes to the landing view.
var ErrLoggedOut = errors.New("logged out")

const refreshKey = "refresh"

type AccountSyncInterface interface {
	Refresh(ctx context.Context) (*models.AccountSnapshot, error)
	Current() *models.AccountSnapshot
	Restore(snap *models.AccountSnapshot)
	Invalidate()
	Discard()
}

// AccountSyncService is the sole writer of the shared account snapshot.
// Concurrent Refresh calls are collapsed into one fetch; the snapshot is
// only ever replaced wholesale, never patched.
type AccountSyncService struct {
	api     providers.ApiClientInterface
	session session.StoreInterface
	logger  providers.Logger
	metrics providers.MetricsProviderInterface

	group singleflight.Group

	mu       sync.RWMutex
	snapshot *models.AccountSnapshot
}

func NewAccountSyncService(api providers.ApiClientInterface, store session.StoreInterface, logger providers.Logger, metrics providers.MetricsProviderInterface) AccountSyncInterface {
	return &AccountSyncService{
		api:     api,
		session: store,
		logger:  logger,
		metrics: metrics,
	}
}

func (s *AccountSyncService) Refresh(ctx context.Context) (*models.AccountSnapshot, error) {
	v, err, _ := s.group.Do(refreshKey, func() (interface{}, error) {
		return s.fetch(ctx)
	})
	if err != nil {
		return nil, err
	}
	return v.(*models.AccountSnapshot), nil
}

func (s *AccountSyncService) fetch(ctx context.Context) (*models.AccountSnapshot, error) {
	raw, err := s.api.GetRaw(ctx, "/api/me")
	if errors.Is(err, providers.ErrUnauthorized) {
		s.logger.Infof(providers.TypeSync, "Session rejected by backend, logging out")
		s.metrics.IncRefreshes("unauthorized")
		s.Discard()
		if clearErr := s.session.Clear(); clearErr != nil {
			s.logger.Errorf(providers.TypeSync, "Failed to clear session: %s", clearErr)
		}
		return nil, ErrLoggedOut
	}
	if err != nil {
		// transient: the previous snapshot stays in place
		s.metrics.IncRefreshes("error")
		return nil, err
	}

	snap, err := models.DecodeAccountSnapshot(raw)
	if err != nil {
		s.metrics.IncRefreshes("error")
		return nil, &providers.TransientError{Message: "account payload", Err: err}
	}

	s.mu.Lock()
	s.snapshot = snap
	s.mu.Unlock()

	s.metrics.IncRefreshes("ok")
	s.logger.Debugf(providers.TypeSync, "Snapshot replaced: balance=%d groups=%d", snap.Balance, len(snap.Groups))
	return snap, nil
}

func (s *AccountSyncService) Current() *models.AccountSnapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.snapshot
}

// Restore seeds the snapshot from the persisted cache before the first
// refresh. It never overwrites a fetched snapshot.
func (s *AccountSyncService) Restore(snap *models.AccountSnapshot) {
	if snap == nil {
		return
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.snapshot == nil {
		s.snapshot = snap
	}
}

// Invalidate forgets any in-flight refresh so the next Refresh call is
// guaranteed to observe writes submitted before it.
func (s *AccountSyncService) Invalidate() {
	s.group.Forget(refreshKey)
}

func (s *AccountSyncService) Discard() {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.snapshot = nil
}
