package services

import (
	"context"
	"errors"
	"fmt"
	"sync"

	json "github.com/goccy/go-json"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/session"
)

type InviteFlowInterface interface {
	Discover(ctx context.Context, code string, authenticated bool) models.InviteFlowState
	State() models.InviteFlowState
	Target() *models.InviteTarget
	Joined() *models.InvitedGroup
	PendingCode() (string, bool)
	Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error)
	Confirm(ctx context.Context) (*models.InvitedGroup, error)
	Reset()
}

// InviteFlowService turns a discovered invite code into a linked account.
// State machine:
//
//	Idle -> Pending -> {InvalidInvite | AwaitingConfirmation | AwaitingSignup} -> Joined -> Idle
//
// The pending code is cleared the moment it is handed to a signup or join
// request, whatever the outcome, so a retry never redeems it twice.
type InviteFlowService struct {
	api     providers.ApiClientInterface
	cache   providers.CacheProviderInterface
	session session.StoreInterface
	sync    AccountSyncInterface
	logger  providers.Logger

	mu      sync.Mutex
	state   models.InviteFlowState
	pending string
	target  *models.InviteTarget
	joined  *models.InvitedGroup
}

func NewInviteFlowService(api providers.ApiClientInterface, cache providers.CacheProviderInterface, store session.StoreInterface, accountSync AccountSyncInterface, logger providers.Logger) InviteFlowInterface {
	return &InviteFlowService{
		api:     api,
		cache:   cache,
		session: store,
		sync:    accountSync,
		logger:  logger,
		state:   models.FlowIdle,
	}
}

// Discover ingests an invite code found in the launch URL. Only one pending
// invite is remembered at a time; a new code replaces the old one. For an
// authenticated visitor the target is looked up right away so the UI can ask
// for confirmation before anything mutates the account.
func (f *InviteFlowService) Discover(ctx context.Context, code string, authenticated bool) models.InviteFlowState {
	f.mu.Lock()
	f.pending = code
	f.joined = nil
	f.target = nil
	f.state = models.FlowPending
	f.mu.Unlock()

	f.logger.Infof(providers.TypeFlow, "Invite code discovered: %s (authenticated=%t)", code, authenticated)

	if !authenticated {
		f.setState(models.FlowAwaitingSignup)
		return models.FlowAwaitingSignup
	}

	target, err := f.lookup(ctx, code)
	if err != nil {
		if providers.IsValidation(err) {
			// code not found or expired: terminal, never retried
			f.mu.Lock()
			f.pending = ""
			f.state = models.FlowInvalidInvite
			f.mu.Unlock()
			return models.FlowInvalidInvite
		}
		// transient: stay pending, the UI may retry the lookup
		f.logger.Warnf(providers.TypeFlow, "Invite lookup failed: %s", err)
		return models.FlowPending
	}

	f.mu.Lock()
	f.target = target
	f.state = models.FlowAwaitingConfirmation
	f.mu.Unlock()
	return models.FlowAwaitingConfirmation
}

func (f *InviteFlowService) lookup(ctx context.Context, code string) (*models.InviteTarget, error) {
	cacheKey := "invite:" + code
	if data, ok := f.cache.Get(cacheKey); ok {
		var target models.InviteTarget
		if err := json.Unmarshal(data, &target); err == nil {
			return &target, nil
		}
	}

	var target models.InviteTarget
	if err := f.api.Get(ctx, "/api/groups/invite/"+code, &target); err != nil {
		return nil, err
	}

	if data, err := json.Marshal(&target); err == nil {
		f.cache.Set(cacheKey, data)
	}
	return &target, nil
}

// Signup creates the account, redeeming the pending invite if one exists.
// Also serves the plain signup path, in which case no code is attached.
func (f *InviteFlowService) Signup(ctx context.Context, req models.SignupRequest) (*models.AuthResponse, error) {
	if err := providers.ValidateStruct(&req); err != nil {
		return nil, &providers.ValidationError{Message: err.Error()}
	}

	f.mu.Lock()
	req.InviteCode = f.pending
	f.pending = ""
	f.mu.Unlock()

	var resp models.AuthResponse
	if err := f.api.Post(ctx, "/api/signup", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &providers.TransientError{Message: "signup response missing token"}
	}

	if err := f.session.Set(resp.Token); err != nil {
		f.logger.Errorf(providers.TypeFlow, "Failed to persist session after signup: %s", err)
	}

	f.sync.Invalidate()
	if _, err := f.sync.Refresh(ctx); err != nil {
		f.logger.Warnf(providers.TypeFlow, "Post-signup refresh failed: %s", err)
	}

	f.mu.Lock()
	if resp.InvitedGroup != nil {
		f.joined = resp.InvitedGroup
		f.state = models.FlowJoined
	} else {
		f.state = models.FlowIdle
	}
	f.mu.Unlock()

	return &resp, nil
}

// Confirm commits the pending invite for an already-authenticated visitor
// after they saw the lookup target.
func (f *InviteFlowService) Confirm(ctx context.Context) (*models.InvitedGroup, error) {
	f.mu.Lock()
	if f.state != models.FlowAwaitingConfirmation {
		f.mu.Unlock()
		return nil, fmt.Errorf("no invite awaiting confirmation")
	}
	code := f.pending
	target := f.target
	f.pending = ""
	f.mu.Unlock()

	if code == "" {
		return nil, errors.New("invite code already consumed")
	}

	if err := f.api.Post(ctx, "/api/groups/link", &models.LinkGroupRequest{Code: code}, nil); err != nil {
		return nil, err
	}

	joined := &models.InvitedGroup{}
	if target != nil {
		joined.Name = target.Name
		joined.TelegramLink = target.TelegramLink
	}

	f.mu.Lock()
	f.joined = joined
	f.state = models.FlowJoined
	f.mu.Unlock()

	f.sync.Invalidate()
	if _, err := f.sync.Refresh(ctx); err != nil {
		f.logger.Warnf(providers.TypeFlow, "Post-join refresh failed: %s", err)
	}

	return joined, nil
}

func (f *InviteFlowService) State() models.InviteFlowState {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.state
}

func (f *InviteFlowService) Target() *models.InviteTarget {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.target
}

func (f *InviteFlowService) Joined() *models.InvitedGroup {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.joined
}

func (f *InviteFlowService) PendingCode() (string, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.pending, f.pending != ""
}

// Reset returns the flow to Idle, discarding any pending code. Used when
// the visitor navigates away from the invite landing.
func (f *InviteFlowService) Reset() {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = models.FlowIdle
	f.pending = ""
	f.target = nil
	f.joined = nil
}

func (f *InviteFlowService) setState(s models.InviteFlowState) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.state = s
}
