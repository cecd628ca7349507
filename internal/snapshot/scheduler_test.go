package snapshot

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguactl/internal/structures"
	"linguactl/internal/testutil"
)

func newSchedulerFixture(t *testing.T, conf *structures.Config, sync *recordingSync) *Scheduler {
	t.Helper()
	fm := newFileManagerFixture(t, sync)
	s := NewScheduler(conf, &testutil.MockLogger{}, sync, fm).(*Scheduler)
	t.Cleanup(s.Stop)
	return s
}

func snapshotConf(path string, enabled bool) *structures.Config {
	return &structures.Config{
		Api: structures.ApiConfig{Timeout: time.Second},
		Snapshot: structures.SnapshotConfig{
			Enabled:  enabled,
			FilePath: path,
			Interval: time.Hour,
		},
	}
}

func TestScheduler_PersistWritesFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")
	s := newSchedulerFixture(t, snapshotConf(path, true), &recordingSync{snapshot: testSnapshot()})

	require.NoError(t, s.Persist())
	_, err := os.Stat(path)
	assert.NoError(t, err)
}

func TestScheduler_PersistDisabledIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")
	s := newSchedulerFixture(t, snapshotConf(path, false), &recordingSync{snapshot: testSnapshot()})

	require.NoError(t, s.Persist())
	_, err := os.Stat(path)
	assert.True(t, os.IsNotExist(err))
}

func TestScheduler_RestoreSeedsSync(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")

	writer := newSchedulerFixture(t, snapshotConf(path, true), &recordingSync{snapshot: testSnapshot()})
	require.NoError(t, writer.Persist())

	reader := &recordingSync{}
	s := newSchedulerFixture(t, snapshotConf(path, true), reader)
	require.NoError(t, s.Restore())
	require.Len(t, reader.restored, 1)
	assert.Equal(t, 5200, reader.restored[0].Balance)
}

func TestScheduler_RestoreDisabledIsNoop(t *testing.T) {
	path := filepath.Join(t.TempDir(), "snapshot.zst")

	writer := newSchedulerFixture(t, snapshotConf(path, true), &recordingSync{snapshot: testSnapshot()})
	require.NoError(t, writer.Persist())

	reader := &recordingSync{}
	s := newSchedulerFixture(t, snapshotConf(path, false), reader)
	require.NoError(t, s.Restore())
	assert.Empty(t, reader.restored)
}

func TestScheduler_StopBeforeInit(t *testing.T) {
	s := newSchedulerFixture(t, snapshotConf(filepath.Join(t.TempDir(), "s.zst"), true), &recordingSync{})
	s.Stop()
}

func TestScheduler_InitDisabledDoesNotSchedule(t *testing.T) {
	s := newSchedulerFixture(t, snapshotConf(filepath.Join(t.TempDir(), "s.zst"), false), &recordingSync{})
	s.Init()
	s.Stop()
}
