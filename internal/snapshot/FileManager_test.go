package snapshot

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguactl/internal/models"
	"linguactl/internal/testutil"
)

// recordingSync implements services.AccountSyncInterface around a plain field.
type recordingSync struct {
	snapshot *models.AccountSnapshot
	restored []*models.AccountSnapshot
}

func (s *recordingSync) Refresh(context.Context) (*models.AccountSnapshot, error) {
	return s.snapshot, nil
}
func (s *recordingSync) Current() *models.AccountSnapshot { return s.snapshot }
func (s *recordingSync) Restore(snap *models.AccountSnapshot) {
	s.restored = append(s.restored, snap)
	if s.snapshot == nil {
		s.snapshot = snap
	}
}
func (s *recordingSync) Invalidate() {}
func (s *recordingSync) Discard()    { s.snapshot = nil }

func newFileManagerFixture(t *testing.T, sync *recordingSync) *FileManager {
	t.Helper()
	compressor, err := NewZstdCompressor()
	require.NoError(t, err)
	fm := NewFileManager(compressor, sync, &testutil.MockLogger{})
	t.Cleanup(fm.Close)
	return fm
}

func testSnapshot() *models.AccountSnapshot {
	return &models.AccountSnapshot{
		Profile:    models.Profile{Id: "u1", Name: "Anna", InviteCode: "ANNA42"},
		Balance:    5200,
		TokensUsed: 1800,
		Groups: []models.Group{
			{ChatId: "-100", Name: "Team", Active: true, LanguagePairs: []models.LanguagePair{{From: "en", To: "vi"}}},
		},
		PricingTiers:    []models.PricingTier{},
		PurchaseHistory: []models.Purchase{},
	}
}

func TestFileManager_SaveAndLoadRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")

	source := &recordingSync{snapshot: testSnapshot()}
	require.NoError(t, newFileManagerFixture(t, source).SaveToFile(path))

	target := &recordingSync{}
	require.NoError(t, newFileManagerFixture(t, target).LoadFromFile(path))

	require.Len(t, target.restored, 1)
	assert.Equal(t, source.snapshot, target.restored[0])
}

func TestFileManager_SaveSkipsEmptyState(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")

	fm := newFileManagerFixture(t, &recordingSync{})
	require.NoError(t, fm.SaveToFile(path))

	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err), "nothing to persist, no file expected")
}

func TestFileManager_LoadMissingFileIsFine(t *testing.T) {
	sync := &recordingSync{}
	fm := newFileManagerFixture(t, sync)

	require.NoError(t, fm.LoadFromFile(filepath.Join(t.TempDir(), "absent.zst")))
	assert.Empty(t, sync.restored)
}

func TestFileManager_LoadCorruptFileFails(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")
	require.NoError(t, os.WriteFile(path, []byte("not zstd"), 0600))

	sync := &recordingSync{}
	fm := newFileManagerFixture(t, sync)

	assert.Error(t, fm.LoadFromFile(path))
	assert.Empty(t, sync.restored)
}

func TestFileManager_SavedFilePermissions(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")

	fm := newFileManagerFixture(t, &recordingSync{snapshot: testSnapshot()})
	require.NoError(t, fm.SaveToFile(path))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

