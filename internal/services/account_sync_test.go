package services

import (
	"context"
	"os"
	"path/filepath"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/session"
	"linguactl/internal/structures"
	"linguactl/internal/testutil"
)

const mePayload = `{
	"user": {"id": "u1", "name": "Anna", "inviteCode": "ANNA42", "balance": 5200, "tokensUsed": 1800},
	"inviteStats": {"totalInvites": 3, "totalTokensEarned": 1500},
	"usageStats": {"totalMessages": 240, "totalTokens": 1800},
	"pricing": [{"id": "small", "label": "100k tokens", "priceLabel": "$5"}],
	"purchases": [{"amount": 5, "tokens": 100000, "date": "2026-08-01T10:00:00Z"}],
	"groups": [{"chatId": "-100", "name": "Team", "active": true, "inviteCode": "G1", "members": 12, "messages": 300, "hoursEarned": 2, "languagePairs": [{"from": "en", "to": "vi"}]}]
}`

func newSyncFixture(api *testutil.MockApiClient) (AccountSyncInterface, *testutil.MockSessionStore, *testutil.MockMetrics) {
	store := &testutil.MockSessionStore{Token: "tok"}
	metrics := testutil.NewMockMetrics()
	svc := NewAccountSyncService(api, store, &testutil.MockLogger{}, metrics)
	return svc, store, metrics
}

func decodeTestSnapshot(payload string) (*models.AccountSnapshot, error) {
	return models.DecodeAccountSnapshot([]byte(payload))
}

func TestAccountSync_RefreshReplacesSnapshot(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(mePayload), nil },
	}
	svc, _, metrics := newSyncFixture(api)

	snap, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, snap)
	assert.Equal(t, "Anna", snap.Profile.Name)
	assert.Equal(t, 5200, snap.Balance)
	assert.Equal(t, 1800, snap.TokensUsed)
	assert.Len(t, snap.Groups, 1)
	assert.Same(t, snap, svc.Current())
	assert.Equal(t, 1, metrics.Refreshes["ok"])
}

func TestAccountSync_UnauthorizedClearsSessionAndSnapshot(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(mePayload), nil },
	}
	svc, store, metrics := newSyncFixture(api)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)
	require.NotNil(t, svc.Current())

	api.GetRawFn = func(string) ([]byte, error) { return nil, providers.ErrUnauthorized }
	svc.Invalidate()

	_, err = svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrLoggedOut)
	assert.Nil(t, svc.Current())
	assert.Equal(t, 1, store.ClearCalls)
	assert.Equal(t, 1, metrics.Refreshes["unauthorized"])
}

func TestAccountSync_UnauthorizedWipesSnapshotCacheFile(t *testing.T) {
	dir := t.TempDir()
	conf := &structures.Config{
		Session:  structures.SessionConfig{FilePath: filepath.Join(dir, "session")},
		Snapshot: structures.SnapshotConfig{FilePath: filepath.Join(dir, "snapshot.zst")},
	}
	store := session.NewStore(conf, &testutil.MockLogger{})
	require.NoError(t, store.Set("tok-alice"))
	require.NoError(t, os.WriteFile(conf.Snapshot.FilePath, []byte("alice cached snapshot"), 0600))

	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return nil, providers.ErrUnauthorized },
	}
	svc := NewAccountSyncService(api, store, &testutil.MockLogger{}, testutil.NewMockMetrics())

	_, err := svc.Refresh(context.Background())
	assert.ErrorIs(t, err, ErrLoggedOut)

	// the next login on this machine must not be able to restore the
	// previous account's data
	_, ok := store.Load()
	assert.False(t, ok)
	_, statErr := os.Stat(conf.Snapshot.FilePath)
	assert.True(t, os.IsNotExist(statErr), "cached snapshot must be gone after the session was rejected")
}

func TestAccountSync_TransientKeepsPreviousSnapshot(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(mePayload), nil },
	}
	svc, store, metrics := newSyncFixture(api)

	first, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	api.GetRawFn = func(string) ([]byte, error) {
		return nil, &providers.TransientError{Message: "connection refused"}
	}
	svc.Invalidate()

	_, err = svc.Refresh(context.Background())
	assert.True(t, providers.IsTransient(err))
	assert.Same(t, first, svc.Current())
	assert.Zero(t, store.ClearCalls)
	assert.Equal(t, 1, metrics.Refreshes["error"])
}

func TestAccountSync_MalformedPayloadIsTransient(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(`{"user":`), nil },
	}
	svc, _, _ := newSyncFixture(api)

	_, err := svc.Refresh(context.Background())
	assert.True(t, providers.IsTransient(err))
	assert.Nil(t, svc.Current())
}

func TestAccountSync_ConcurrentRefreshesCollapse(t *testing.T) {
	var calls int64
	release := make(chan struct{})
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) {
			atomic.AddInt64(&calls, 1)
			<-release
			return []byte(mePayload), nil
		},
	}
	svc, _, _ := newSyncFixture(api)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := svc.Refresh(context.Background())
			assert.NoError(t, err)
		}()
	}
	time.Sleep(50 * time.Millisecond)
	close(release)
	wg.Wait()

	assert.Equal(t, int64(1), atomic.LoadInt64(&calls))
}

func TestAccountSync_RestoreDoesNotOverwriteFetched(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(mePayload), nil },
	}
	svc, _, _ := newSyncFixture(api)

	fetched, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	stale, err := decodeTestSnapshot(mePayload)
	require.NoError(t, err)
	stale.Balance = 1

	svc.Restore(stale)
	assert.Same(t, fetched, svc.Current())
}

func TestAccountSync_RestoreSeedsEmptyState(t *testing.T) {
	svc, _, _ := newSyncFixture(&testutil.MockApiClient{})

	seeded, err := decodeTestSnapshot(mePayload)
	require.NoError(t, err)

	svc.Restore(nil)
	assert.Nil(t, svc.Current())

	svc.Restore(seeded)
	assert.Same(t, seeded, svc.Current())
}

func TestAccountSync_DiscardDropsSnapshot(t *testing.T) {
	api := &testutil.MockApiClient{
		GetRawFn: func(string) ([]byte, error) { return []byte(mePayload), nil },
	}
	svc, _, _ := newSyncFixture(api)

	_, err := svc.Refresh(context.Background())
	require.NoError(t, err)

	svc.Discard()
	assert.Nil(t, svc.Current())
}
