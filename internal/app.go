package internal

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"linguactl/internal/models"
	"linguactl/internal/providers"
	"linguactl/internal/services"
	"linguactl/internal/session"
	"linguactl/internal/snapshot"
	"linguactl/internal/snapshot/interfaces"
	"linguactl/internal/structures"
)

// App bundles the client engine behind one facade the CLI drives. The
// bootstrap side effects (token persistence, pending invite, one-shot
// flags) are applied inside Open before any state is handed back.
type App struct {
	Conf      *structures.Config
	Logger    providers.Logger
	Session   session.StoreInterface
	Bootstrap services.BootstrapInterface
	Sync      services.AccountSyncInterface
	Invite    services.InviteFlowInterface
	Editor    services.LanguagePairEditorInterface
	Auth      services.AuthInterface
	Groups    services.GroupsInterface
	Purchase  services.PurchaseInterface

	metrics     providers.MetricsProviderInterface
	scheduler   interfaces.SchedulerInterface
	fileManager *snapshot.FileManager
}

func NewApp(
	conf *structures.Config,
	logger providers.Logger,
	store session.StoreInterface,
	bootstrap services.BootstrapInterface,
	accountSync services.AccountSyncInterface,
	invite services.InviteFlowInterface,
	editor services.LanguagePairEditorInterface,
	auth services.AuthInterface,
	groups services.GroupsInterface,
	purchase services.PurchaseInterface,
	metrics providers.MetricsProviderInterface,
	scheduler interfaces.SchedulerInterface,
	fileManager *snapshot.FileManager,
) (*App, error) {
	logger.Infof(providers.TypeApp, "Starting %s", conf.AppName)

	app := &App{
		Conf:        conf,
		Logger:      logger,
		Session:     store,
		Bootstrap:   bootstrap,
		Sync:        accountSync,
		Invite:      invite,
		Editor:      editor,
		Auth:        auth,
		Groups:      groups,
		Purchase:    purchase,
		metrics:     metrics,
		scheduler:   scheduler,
		fileManager: fileManager,
	}

	// seed the last known snapshot only when a session exists; the cache
	// must never outlive a cleared login
	if _, ok := store.Load(); ok {
		if err := scheduler.Restore(); err != nil {
			logger.Errorf(providers.TypeApp, "Restore error: %s", err)
		}
	}

	return app, nil
}

// Open resolves a launch URL exactly the way the web dashboard does on
// page load and returns the settled resolution.
func (a *App) Open(ctx context.Context, rawURL string) (models.Resolution, error) {
	res, err := a.Bootstrap.Run(ctx, rawURL)
	if err == nil && res.Target == models.ViewDashboard {
		if pErr := a.scheduler.Persist(); pErr != nil {
			a.Logger.Warnf(providers.TypeApp, "Snapshot persist failed: %s", pErr)
		}
	}
	return res, err
}

// Logout ends the session; the store removes the token and the snapshot
// cache together.
func (a *App) Logout() error {
	return a.Auth.Logout()
}

// Watch runs the periodic refresh loop until the context ends or a
// shutdown signal arrives, then persists one last time. While watching,
// the collected metrics are served on metrics.addr.
func (a *App) Watch(ctx context.Context) error {
	a.scheduler.Init()
	defer a.scheduler.Stop()

	if srv := a.metricsServer(); srv != nil {
		go func() {
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				a.Logger.Errorf(providers.TypeApp, "Metrics server error: %s", err)
			}
		}()
		defer srv.Shutdown(context.Background())
		a.Logger.Infof(providers.TypeApp, "Metrics available at http://%s/metrics", a.Conf.Metrics.Addr)
	}

	stop := make(chan os.Signal, 1)
	signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)
	defer signal.Stop(stop)

	select {
	case <-stop:
		a.Logger.Infof(providers.TypeApp, "Shutdown signal received")
	case <-ctx.Done():
	}

	if err := a.scheduler.Persist(); err != nil {
		return err
	}
	a.Logger.Infof(providers.TypeApp, "gracefully stopped")
	return nil
}

func (a *App) metricsServer() *http.Server {
	handler := a.metrics.Handler()
	if handler == nil || a.Conf.Metrics.Addr == "" {
		return nil
	}
	mux := http.NewServeMux()
	mux.Handle("/metrics", handler)
	return &http.Server{Addr: a.Conf.Metrics.Addr, Handler: mux}
}

func (a *App) Close() {
	a.fileManager.Close()
	a.Logger.Close()
}
