package services

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/testutil"
)

func newEditorFixture(api *testutil.MockApiClient, sync *stubSync) LanguagePairEditorInterface {
	return NewLanguagePairEditor(api, sync, &testutil.MockLogger{})
}

func testGroup(pairs ...models.LanguagePair) models.Group {
	return models.Group{ChatId: "-100", Name: "Team", LanguagePairs: pairs}
}

func TestEditor_OpenSeedsDraftFromGroup(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})

	e.Open(testGroup(models.LanguagePair{From: "ru", To: "en"}))
	assert.True(t, e.IsOpen())
	assert.Equal(t, []models.LanguagePair{{From: "ru", To: "en"}}, e.Pairs())
}

func TestEditor_OpenEmptyGroupGetsDefaultPair(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})

	e.Open(testGroup())
	assert.Equal(t, []models.LanguagePair{DefaultPair}, e.Pairs())
}

func TestEditor_DraftIsDetachedFromGroup(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})

	group := testGroup(models.LanguagePair{From: "en", To: "vi"})
	e.Open(group)
	e.UpdatePair(0, SideTo, "th")

	assert.Equal(t, "vi", group.LanguagePairs[0].To, "edits must not leak into the source group")

	// and the returned slice is a copy too
	pairs := e.Pairs()
	pairs[0].To = "zz"
	assert.Equal(t, "th", e.Pairs()[0].To)
}

func TestEditor_AddPairStopsAtTen(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})
	e.Open(testGroup())

	for i := 1; i < MaxLanguagePairs; i++ {
		assert.True(t, e.AddPair())
	}
	assert.Len(t, e.Pairs(), MaxLanguagePairs)
	assert.False(t, e.AddPair(), "eleventh pair must be refused")
	assert.Len(t, e.Pairs(), MaxLanguagePairs)
}

func TestEditor_RemovePairStopsAtOne(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})
	e.Open(testGroup(
		models.LanguagePair{From: "en", To: "vi"},
		models.LanguagePair{From: "ru", To: "en"},
	))

	assert.True(t, e.RemovePair(1))
	assert.False(t, e.RemovePair(0), "last pair must stay")
	assert.Len(t, e.Pairs(), 1)
}

func TestEditor_RemovePairOutOfRange(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})
	e.Open(testGroup(
		models.LanguagePair{From: "en", To: "vi"},
		models.LanguagePair{From: "ru", To: "en"},
	))

	assert.False(t, e.RemovePair(-1))
	assert.False(t, e.RemovePair(2))
	assert.Len(t, e.Pairs(), 2)
}

func TestEditor_UpdatePair(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})
	e.Open(testGroup(models.LanguagePair{From: "en", To: "vi"}))

	assert.True(t, e.UpdatePair(0, SideFrom, "de"))
	assert.True(t, e.UpdatePair(0, SideTo, "fr"))
	assert.Equal(t, []models.LanguagePair{{From: "de", To: "fr"}}, e.Pairs())

	assert.False(t, e.UpdatePair(5, SideFrom, "en"))
}

func TestEditor_OpsRefusedWhenClosed(t *testing.T) {
	e := newEditorFixture(&testutil.MockApiClient{}, &stubSync{})

	assert.False(t, e.AddPair())
	assert.False(t, e.RemovePair(0))
	assert.False(t, e.UpdatePair(0, SideFrom, "en"))
	assert.Error(t, e.Save(context.Background()))
}

func TestEditor_SaveSubmitsWholesaleAndRefreshes(t *testing.T) {
	api := &testutil.MockApiClient{}
	sync := &stubSync{}
	e := newEditorFixture(api, sync)

	e.Open(testGroup(models.LanguagePair{From: "en", To: "vi"}))
	e.AddPair()
	e.UpdatePair(1, SideTo, "th")

	require.NoError(t, e.Save(context.Background()))

	require.Len(t, api.PostCalls, 1)
	assert.Equal(t, "/api/groups/set-languages", api.PostCalls[0].Path)
	sent := api.PostCalls[0].Body.(*models.SetLanguagesRequest)
	assert.Equal(t, "-100", sent.ChatId)
	assert.Equal(t, []models.LanguagePair{{From: "en", To: "vi"}, {From: "en", To: "th"}}, sent.LanguagePairs)

	assert.Equal(t, 1, sync.refreshCalls)
	assert.False(t, e.IsOpen(), "draft discarded after a committed save")
}

func TestEditor_SaveFailureKeepsDraft(t *testing.T) {
	api := &testutil.MockApiClient{
		PostFn: func(string, interface{}, interface{}) error {
			return &providers.TransientError{Message: "timeout"}
		},
	}
	sync := &stubSync{}
	e := newEditorFixture(api, sync)

	e.Open(testGroup(models.LanguagePair{From: "en", To: "vi"}))
	e.AddPair()

	err := e.Save(context.Background())
	assert.True(t, providers.IsTransient(err))
	assert.True(t, e.IsOpen(), "draft survives for retry")
	assert.Len(t, e.Pairs(), 2)
	assert.Zero(t, sync.refreshCalls, "no refresh when nothing was committed")
}

func TestEditor_SaveSucceedsDespiteRefreshFailure(t *testing.T) {
	api := &testutil.MockApiClient{}
	sync := &stubSync{refreshErr: &providers.TransientError{Message: "timeout"}}
	e := newEditorFixture(api, sync)

	e.Open(testGroup(models.LanguagePair{From: "en", To: "vi"}))
	assert.NoError(t, e.Save(context.Background()))
	assert.False(t, e.IsOpen())
}
