package snapshot

import (
	"context"
	"errors"
	"sync"

	"github.com/roylee0704/gron"

	"linguactl/internal/providers"
	"linguactl/internal/services"
	"linguactl/internal/snapshot/interfaces"
	"linguactl/internal/structures"
)

// Scheduler drives watch mode: a periodic refresh of the account snapshot
// followed by a persist, serialized against manual refreshes by the sync
// service itself.
type Scheduler struct {
	config      *structures.Config
	logger      providers.Logger
	sync        services.AccountSyncInterface
	fileManager *FileManager
	cron        *gron.Cron
	opsMu       sync.Mutex
}

func (s *Scheduler) Init() {
	s.cron = gron.New()
	if !s.config.Snapshot.Enabled {
		return
	}

	s.cron.AddFunc(gron.Every(s.config.Snapshot.Interval), func() {
		s.opsMu.Lock()
		defer s.opsMu.Unlock()

		ctx, cancel := context.WithTimeout(context.Background(), s.config.Api.Timeout)
		defer cancel()

		if _, err := s.sync.Refresh(ctx); err != nil {
			if errors.Is(err, services.ErrLoggedOut) {
				s.logger.Infof(providers.TypeSync, "Session ended, stopping periodic refresh")
				s.cron.Stop()
				return
			}
			s.logger.Warnf(providers.TypeSync, "Periodic refresh failed: %s", err)
			return
		}

		if err := s.fileManager.SaveToFile(s.config.Snapshot.FilePath); err != nil {
			s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		}
	})

	s.cron.Start()
}

func (s *Scheduler) Stop() {
	if s.cron != nil {
		s.cron.Stop()
	}
}

func (s *Scheduler) Restore() error {
	if !s.config.Snapshot.Enabled {
		return nil
	}
	return s.fileManager.LoadFromFile(s.config.Snapshot.FilePath)
}

func (s *Scheduler) Persist() error {
	if !s.config.Snapshot.Enabled {
		return nil
	}

	s.opsMu.Lock()
	defer s.opsMu.Unlock()

	err := s.fileManager.SaveToFile(s.config.Snapshot.FilePath)
	if err != nil {
		s.logger.Errorf(providers.TypeApp, "Error while persisting snapshot: %s", err)
		return err
	}
	return nil
}

func NewScheduler(config *structures.Config, logger providers.Logger, accountSync services.AccountSyncInterface, fileManager *FileManager) interfaces.SchedulerInterface {
	return &Scheduler{
		config:      config,
		logger:      logger,
		sync:        accountSync,
		fileManager: fileManager,
	}
}
