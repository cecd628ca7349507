package services

import (
	"context"

	"linguactl/internal/models"
	"linguactl/internal/providers"
)

type GroupsInterface interface {
	Toggle(ctx context.Context, chatId string, active bool) error
	Link(ctx context.Context, code string) error
}

// GroupsService covers the two group mutations outside the language editor:
// flipping a group on or off and linking a Telegram group by short code.
// Both re-fetch the snapshot afterwards instead of patching it locally.
type GroupsService struct {
	api    providers.ApiClientInterface
	sync   AccountSyncInterface
	logger providers.Logger
}

func NewGroupsService(api providers.ApiClientInterface, accountSync AccountSyncInterface, logger providers.Logger) GroupsInterface {
	return &GroupsService{
		api:    api,
		sync:   accountSync,
		logger: logger,
	}
}

func (g *GroupsService) Toggle(ctx context.Context, chatId string, active bool) error {
	req := models.ToggleGroupRequest{ChatId: chatId, Active: active}
	if err := g.api.Post(ctx, "/api/groups/toggle", &req, nil); err != nil {
		return err
	}
	return g.refetch(ctx)
}

func (g *GroupsService) Link(ctx context.Context, code string) error {
	req := models.LinkGroupRequest{Code: code}
	if err := providers.ValidateStruct(&req); err != nil {
		return &providers.ValidationError{Message: err.Error()}
	}
	if err := g.api.Post(ctx, "/api/groups/link", &req, nil); err != nil {
		return err
	}
	return g.refetch(ctx)
}

func (g *GroupsService) refetch(ctx context.Context) error {
	g.sync.Invalidate()
	if _, err := g.sync.Refresh(ctx); err != nil {
		g.logger.Warnf(providers.TypeSync, "Refresh after group mutation failed: %s", err)
	}
	return nil
}
