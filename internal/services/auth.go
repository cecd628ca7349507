package services

import (
	"context"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/session"
)

type AuthInterface interface {
	Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error)
	Logout() error
}

type AuthService struct {
	api     providers.ApiClientInterface
	session session.StoreInterface
	sync    AccountSyncInterface
	logger  providers.Logger
}

func NewAuthService(api providers.ApiClientInterface, store session.StoreInterface, accountSync AccountSyncInterface, logger providers.Logger) AuthInterface {
	return &AuthService{
		api:     api,
		session: store,
		sync:    accountSync,
		logger:  logger,
	}
}

func (a *AuthService) Login(ctx context.Context, req models.LoginRequest) (*models.AuthResponse, error) {
	if err := providers.ValidateStruct(&req); err != nil {
		return nil, &providers.ValidationError{Message: err.Error()}
	}

	var resp models.AuthResponse
	if err := a.api.Post(ctx, "/api/login", &req, &resp); err != nil {
		return nil, err
	}
	if resp.Token == "" {
		return nil, &providers.TransientError{Message: "login response missing token"}
	}

	if err := a.session.Set(resp.Token); err != nil {
		a.logger.Errorf(providers.TypeApp, "Failed to persist session after login: %s", err)
	}

	a.sync.Invalidate()
	if _, err := a.sync.Refresh(ctx); err != nil {
		a.logger.Warnf(providers.TypeApp, "Post-login refresh failed: %s", err)
	}

	a.logger.Infof(providers.TypeApp, "Logged in as %s", resp.User.Name)
	return &resp, nil
}

func (a *AuthService) Logout() error {
	a.sync.Discard()
	if err := a.session.Clear(); err != nil {
		return err
	}
	a.logger.Infof(providers.TypeApp, "Logged out")
	return nil
}
