package session

import (
	"os"
	"strings"
	"sync"

	"linguactl/internal/providers"
	"linguactl/internal/structures"
)

// StoreInterface owns the lifecycle of the persisted session token. It does
// not validate the token; confirming it against the backend is the account
// sync's job.
type StoreInterface interface {
	Load() (string, bool)
	Set(token string) error
	Clear() error
}

// Store keeps the token in a single 0600 file, written atomically. When the
// file cannot be written (read-only home, restricted container) it degrades
// to in-memory persistence for the life of the process. Known limitation:
// a degraded session does not survive a restart.
//
// The store owns the full on-disk footprint of a login: Clear also removes
// the persisted snapshot cache, so cached account data can never outlive
// the session it belongs to.
type Store struct {
	path      string
	cachePath string
	logger    providers.Logger

	mu      sync.Mutex
	memOnly bool
	mem     string
}

func NewStore(conf *structures.Config, logger providers.Logger) StoreInterface {
	return &Store{
		path:      conf.Session.FilePath,
		cachePath: conf.Snapshot.FilePath,
		logger:    logger,
	}
}

func (s *Store) Load() (string, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memOnly {
		return s.mem, s.mem != ""
	}

	data, err := os.ReadFile(s.path)
	if err != nil {
		return "", false
	}
	token := strings.TrimSpace(string(data))
	return token, token != ""
}

func (s *Store) Set(token string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.memOnly {
		s.mem = token
		return nil
	}

	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, []byte(token), 0600); err != nil {
		s.degrade(token, err)
		return nil
	}
	if err := os.Rename(tmp, s.path); err != nil {
		os.Remove(tmp)
		s.degrade(token, err)
		return nil
	}
	return nil
}

func (s *Store) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.mem = ""

	if s.cachePath != "" {
		if err := os.Remove(s.cachePath); err != nil && !os.IsNotExist(err) {
			s.logger.Warnf(providers.TypeApp, "Failed to remove snapshot cache: %s", err)
		}
	}

	if s.memOnly {
		return nil
	}
	err := os.Remove(s.path)
	if err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}

func (s *Store) degrade(token string, cause error) {
	s.logger.Warnf(providers.TypeApp, "Session storage unavailable, keeping token in memory only: %s", cause)
	s.memOnly = true
	s.mem = token
}
