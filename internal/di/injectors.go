//go:build wireinject
// +build wireinject

package di

import (
	wire "github.com/google/wire"
	"linguactl/internal"
	"linguactl/internal/providers"
	"linguactl/internal/services"
	"linguactl/internal/session"
	"linguactl/internal/snapshot"
	"linguactl/internal/structures"
)

func InitApp(cfg *structures.CliFlags) (*internal.App, error) {

	wire.Build(
		providers.NewConfigProvider,
		providers.NewLogProvider,
		providers.NewMetricsProvider,
		providers.NewInstrumentedCacheProvider,
		providers.NewApiClientProvider,

		session.NewStore,
		wire.Bind(new(providers.TokenSource), new(session.StoreInterface)),

		services.NewAccountSyncService,
		services.NewInviteFlowService,
		services.NewBootstrapService,
		services.NewLanguagePairEditor,
		services.NewAuthService,
		services.NewGroupsService,
		services.NewPurchaseService,

		snapshot.NewZstdCompressor,
		snapshot.NewFileManager,
		snapshot.NewScheduler,

		internal.NewApp,
	)

	return nil, nil
}
