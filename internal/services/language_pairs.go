package services

import (
	"context"
	"errors"
	"sync"

	"linguactl/internal/models"
	"linguactl/internal/providers"
)

const (
	MinLanguagePairs = 1
	MaxLanguagePairs = 10
)

// DefaultPair seeds a group that has no pairs configured yet.
var DefaultPair = models.LanguagePair{From: "en", To: "vi"}

type PairSide int

const (
	SideFrom PairSide = iota
	SideTo
)

type LanguagePairEditorInterface interface {
	Open(group models.Group)
	AddPair() bool
	RemovePair(index int) bool
	UpdatePair(index int, side PairSide, languageCode string) bool
	Pairs() []models.LanguagePair
	IsOpen() bool
	Save(ctx context.Context) error
	DiscardDraft()
}

// LanguagePairEditor holds the in-memory working copy of a group's
// translation directions. The draft never touches the shared snapshot;
// only an explicit Save submits it, as a wholesale replacement.
// Duplicate or same-language pairs are deliberately not rejected here;
// the backend is free to accept or refuse them.
type LanguagePairEditor struct {
	api    providers.ApiClientInterface
	sync   AccountSyncInterface
	logger providers.Logger

	mu     sync.Mutex
	open   bool
	chatId string
	draft  []models.LanguagePair
}

func NewLanguagePairEditor(api providers.ApiClientInterface, accountSync AccountSyncInterface, logger providers.Logger) LanguagePairEditorInterface {
	return &LanguagePairEditor{
		api:    api,
		sync:   accountSync,
		logger: logger,
	}
}

func (e *LanguagePairEditor) Open(group models.Group) {
	e.mu.Lock()
	defer e.mu.Unlock()

	e.open = true
	e.chatId = group.ChatId
	if len(group.LanguagePairs) == 0 {
		e.draft = []models.LanguagePair{DefaultPair}
		return
	}
	e.draft = make([]models.LanguagePair, len(group.LanguagePairs))
	copy(e.draft, group.LanguagePairs)
}

// AddPair appends a default pair. No-op at the ceiling of ten pairs; the
// UI disables the control instead of erroring.
func (e *LanguagePairEditor) AddPair() bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open || len(e.draft) >= MaxLanguagePairs {
		return false
	}
	e.draft = append(e.draft, DefaultPair)
	return true
}

// RemovePair drops the pair at index. No-op when only one pair remains:
// a group with no pairs would have undefined translation behavior.
func (e *LanguagePairEditor) RemovePair(index int) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open || len(e.draft) <= MinLanguagePairs {
		return false
	}
	if index < 0 || index >= len(e.draft) {
		return false
	}
	e.draft = append(e.draft[:index], e.draft[index+1:]...)
	return true
}

func (e *LanguagePairEditor) UpdatePair(index int, side PairSide, languageCode string) bool {
	e.mu.Lock()
	defer e.mu.Unlock()

	if !e.open || index < 0 || index >= len(e.draft) {
		return false
	}
	if side == SideFrom {
		e.draft[index].From = languageCode
	} else {
		e.draft[index].To = languageCode
	}
	return true
}

func (e *LanguagePairEditor) Pairs() []models.LanguagePair {
	e.mu.Lock()
	defer e.mu.Unlock()

	out := make([]models.LanguagePair, len(e.draft))
	copy(out, e.draft)
	return out
}

func (e *LanguagePairEditor) IsOpen() bool {
	e.mu.Lock()
	defer e.mu.Unlock()
	return e.open
}

// Save submits the draft as a wholesale replacement, then refreshes the
// snapshot and discards the draft so edited and synced state cannot drift.
// On failure the draft is kept for retry.
func (e *LanguagePairEditor) Save(ctx context.Context) error {
	e.mu.Lock()
	if !e.open {
		e.mu.Unlock()
		return errors.New("no group open in the editor")
	}
	req := models.SetLanguagesRequest{
		ChatId:        e.chatId,
		LanguagePairs: make([]models.LanguagePair, len(e.draft)),
	}
	copy(req.LanguagePairs, e.draft)
	e.mu.Unlock()

	if err := e.api.Post(ctx, "/api/groups/set-languages", &req, nil); err != nil {
		return err
	}

	e.DiscardDraft()

	// the write is committed; a refresh hiccup here only delays the re-read
	e.sync.Invalidate()
	if _, err := e.sync.Refresh(ctx); err != nil {
		e.logger.Warnf(providers.TypeSync, "Refresh after language save failed: %s", err)
	}
	return nil
}

func (e *LanguagePairEditor) DiscardDraft() {
	e.mu.Lock()
	defer e.mu.Unlock()
	e.open = false
	e.chatId = ""
	e.draft = nil
}
