package testutil

import (
	"context"
	"net/http"
	"sync"
	"time"

	"linguactl/internal/models"
	"linguactl/internal/providers"
)

// MockLogger implements providers.Logger and records calls.
type MockLogger struct {
	mu   sync.Mutex
	Logs []LogEntry
}

type LogEntry struct {
	Level  string
	Type   providers.TypeEnum
	Format string
	Args   []interface{}
}

func (m *MockLogger) record(level string, t providers.TypeEnum, format string, args ...interface{}) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Logs = append(m.Logs, LogEntry{Level: level, Type: t, Format: format, Args: args})
}

func (m *MockLogger) Errorf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("error", t, format, args...)
}
func (m *MockLogger) Warnf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("warn", t, format, args...)
}
func (m *MockLogger) Debugf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("debug", t, format, args...)
}
func (m *MockLogger) Infof(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("info", t, format, args...)
}
func (m *MockLogger) Fatalf(t providers.TypeEnum, format string, args ...interface{}) {
	m.record("fatal", t, format, args...)
}
func (m *MockLogger) Close() {}

// MockApiClient implements providers.ApiClientInterface with injectable
// behavior and recorded calls.
type MockApiClient struct {
	mu       sync.Mutex
	GetFn    func(path string, out interface{}) error
	GetRawFn func(path string) ([]byte, error)
	PostFn   func(path string, body, out interface{}) error

	GetCalls  []string
	PostCalls []PostCall
}

type PostCall struct {
	Path string
	Body interface{}
}

func (m *MockApiClient) Get(_ context.Context, path string, out interface{}) error {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, path)
	m.mu.Unlock()
	if m.GetFn != nil {
		return m.GetFn(path, out)
	}
	return nil
}

func (m *MockApiClient) GetRaw(_ context.Context, path string) ([]byte, error) {
	m.mu.Lock()
	m.GetCalls = append(m.GetCalls, path)
	m.mu.Unlock()
	if m.GetRawFn != nil {
		return m.GetRawFn(path)
	}
	return nil, nil
}

func (m *MockApiClient) Post(_ context.Context, path string, body, out interface{}) error {
	m.mu.Lock()
	m.PostCalls = append(m.PostCalls, PostCall{Path: path, Body: body})
	m.mu.Unlock()
	if m.PostFn != nil {
		return m.PostFn(path, body, out)
	}
	return nil
}

// MockSessionStore implements session.StoreInterface in memory.
type MockSessionStore struct {
	mu    sync.Mutex
	Token string

	SetCalls   []string
	ClearCalls int
}

func (m *MockSessionStore) Load() (string, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Token, m.Token != ""
}

func (m *MockSessionStore) Set(token string) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Token = token
	m.SetCalls = append(m.SetCalls, token)
	return nil
}

func (m *MockSessionStore) Clear() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Token = ""
	m.ClearCalls++
	return nil
}

// MockAccountSync implements services.AccountSyncInterface around a plain
// snapshot field.
type MockAccountSync struct {
	mu           sync.Mutex
	Snapshot     *models.AccountSnapshot
	RefreshErr   error
	RefreshCalls int
}

func (m *MockAccountSync) Refresh(context.Context) (*models.AccountSnapshot, error) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.RefreshCalls++
	if m.RefreshErr != nil {
		return nil, m.RefreshErr
	}
	return m.Snapshot, nil
}

func (m *MockAccountSync) Current() *models.AccountSnapshot {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Snapshot
}

func (m *MockAccountSync) Restore(snap *models.AccountSnapshot) {
	m.mu.Lock()
	defer m.mu.Unlock()
	if m.Snapshot == nil {
		m.Snapshot = snap
	}
}

func (m *MockAccountSync) Invalidate() {}

func (m *MockAccountSync) Discard() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Snapshot = nil
}

// MockCache implements providers.CacheProviderInterface.
type MockCache struct {
	mu   sync.Mutex
	Data map[string][]byte
}

func NewMockCache() *MockCache {
	return &MockCache{Data: make(map[string][]byte)}
}

func (m *MockCache) Get(key string) ([]byte, bool) {
	m.mu.Lock()
	defer m.mu.Unlock()
	val, ok := m.Data[key]
	return val, ok
}

func (m *MockCache) Set(key string, value []byte) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Data[key] = value
}

// MockMetrics implements providers.MetricsProviderInterface and counts calls.
type MockMetrics struct {
	mu          sync.Mutex
	ApiRequests map[string]int
	CacheHits   int
	CacheMisses int
	Refreshes   map[string]int
}

func NewMockMetrics() *MockMetrics {
	return &MockMetrics{
		ApiRequests: make(map[string]int),
		Refreshes:   make(map[string]int),
	}
}

func (m *MockMetrics) IncApiRequests(endpoint string, _ int) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ApiRequests[endpoint]++
}

func (m *MockMetrics) ObserveApiDuration(_ string, _ time.Duration) {}

func (m *MockMetrics) IncCacheHits() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheHits++
}

func (m *MockMetrics) IncCacheMisses() {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.CacheMisses++
}

func (m *MockMetrics) IncRefreshes(outcome string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Refreshes[outcome]++
}

func (m *MockMetrics) Handler() http.Handler { return nil }
