package services

import (
	"context"
	"errors"
	"net/url"
	"strings"
	"sync"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/session"
)

// InvitePathPrefix is the reserved path namespace for invite deep links.
const InvitePathPrefix = "/join/"

var oneShotParams = []string{"token", "buy", "purchased", "cancelled"}

type BootstrapInterface interface {
	Resolve(rawURL string, hasSession bool) models.Resolution
	Run(ctx context.Context, rawURL string) (models.Resolution, error)
	TakePurchaseSuccess() bool
	TakeOpenPurchase() bool
}

// BootstrapService decides how a visitor arrives at the dashboard: magic
// token in the URL, invite code in the path, plain return visit or fresh
// landing. Resolve is a pure function; Run applies its side effects before
// any consumer reads the resulting state.
type BootstrapService struct {
	session session.StoreInterface
	sync    AccountSyncInterface
	invite  InviteFlowInterface
	logger  providers.Logger

	mu              sync.Mutex
	purchaseSuccess bool
	openPurchase    bool
}

func NewBootstrapService(store session.StoreInterface, accountSync AccountSyncInterface, invite InviteFlowInterface, logger providers.Logger) BootstrapInterface {
	return &BootstrapService{
		session: store,
		sync:    accountSync,
		invite:  invite,
		logger:  logger,
	}
}

// Resolve maps (launch URL, stored session) to a target view plus pending
// side effects. First matching rule wins for the target; one-shot flags are
// never raised for a visitor who ends up unauthenticated.
func (b *BootstrapService) Resolve(rawURL string, hasSession bool) models.Resolution {
	res := models.Resolution{Target: models.ViewLanding, CleanURL: "/"}

	u, err := url.Parse(rawURL)
	if err != nil {
		return res
	}

	q := u.Query()
	res.Token = q.Get("token")
	authed := hasSession || res.Token != ""

	if code := inviteCodeFromPath(u.Path); code != "" {
		res.InviteCode = code
		if authed {
			res.Target = models.ViewInviteLanding
		} else {
			res.Target = models.ViewSignup
		}
	} else if authed {
		res.Target = models.ViewDashboard
	}

	if authed {
		res.PurchaseSuccess = q.Get("purchased") != ""
		res.OpenPurchase = q.Get("buy") == "true"
	}

	res.CleanURL = stripOneShotParams(u)
	return res
}

// Run executes the resolver once per application start: persists a magic
// token, remembers a pending invite, raises one-shot flags and performs the
// authenticated bootstrap fetch. The returned resolution carries the final
// target after that fetch settled.
func (b *BootstrapService) Run(ctx context.Context, rawURL string) (models.Resolution, error) {
	_, hasSession := b.session.Load()
	res := b.Resolve(rawURL, hasSession)

	if res.Token != "" {
		// URL token wins over any previously stored one
		if err := b.session.Set(res.Token); err != nil {
			b.logger.Errorf(providers.TypeApp, "Failed to persist magic token: %s", err)
		}
	}

	b.mu.Lock()
	b.purchaseSuccess = res.PurchaseSuccess
	b.openPurchase = res.OpenPurchase
	b.mu.Unlock()

	authed := res.Target == models.ViewDashboard || res.Target == models.ViewInviteLanding

	if res.InviteCode != "" {
		b.invite.Discover(ctx, res.InviteCode, authed)
	}

	if !authed {
		return res, nil
	}

	if _, err := b.sync.Refresh(ctx); err != nil {
		if errors.Is(err, ErrLoggedOut) {
			b.logger.Infof(providers.TypeApp, "Stored session invalid, falling back to landing")
			b.mu.Lock()
			b.purchaseSuccess = false
			b.openPurchase = false
			b.mu.Unlock()
			res.Target = models.ViewLanding
			res.PurchaseSuccess = false
			res.OpenPurchase = false
			return res, nil
		}
		// transient failure: keep the target, surface the error
		return res, err
	}

	return res, nil
}

func (b *BootstrapService) TakePurchaseSuccess() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.purchaseSuccess
	b.purchaseSuccess = false
	return v
}

func (b *BootstrapService) TakeOpenPurchase() bool {
	b.mu.Lock()
	defer b.mu.Unlock()
	v := b.openPurchase
	b.openPurchase = false
	return v
}

func inviteCodeFromPath(path string) string {
	code, ok := strings.CutPrefix(path, InvitePathPrefix)
	if !ok {
		return ""
	}
	if i := strings.IndexByte(code, '/'); i >= 0 {
		code = code[:i]
	}
	return code
}

func stripOneShotParams(u *url.URL) string {
	q := u.Query()
	for _, p := range oneShotParams {
		q.Del(p)
	}
	clean := *u
	clean.RawQuery = q.Encode()
	if clean.Path == "" {
		clean.Path = "/"
	}
	return clean.String()
}
