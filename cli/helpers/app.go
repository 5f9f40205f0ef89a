package helpers

import (
	"context"
	"fmt"

	"github.com/spf13/afero"

	"github.com/mssd/mssd-console/internal/api"
	"github.com/mssd/mssd-console/internal/store"
	"github.com/mssd/mssd-console/pkg/config"
)

// App bundles the shared collaborators every command needs: configuration,
// the backend client and the process-wide stores.
type App struct {
	Config  *config.Config
	Client  *api.Client
	Prefs   *store.Prefs
	Session *store.Session
	Toasts  *store.Toasts
}

// NewApp wires the application from configuration.
func NewApp(cfg *config.Config) (*App, error) {
	client, err := api.NewClient(cfg)
	if err != nil {
		return nil, fmt.Errorf("failed to create API client: %w", err)
	}
	statePath := cfg.CLI.StateFile
	if statePath == "" {
		statePath = store.DefaultPrefsPath()
	}
	prefs, err := store.NewPrefs(afero.NewOsFs(), statePath)
	if err != nil {
		return nil, fmt.Errorf("failed to load preferences: %w", err)
	}
	return &App{
		Config:  cfg,
		Client:  client,
		Prefs:   prefs,
		Session: store.NewSession(),
		Toasts:  store.NewToasts(),
	}, nil
}

type appKey struct{}

// WithApp attaches the app to a context.
func WithApp(ctx context.Context, app *App) context.Context {
	return context.WithValue(ctx, appKey{}, app)
}

// AppFrom returns the app attached to ctx.
func AppFrom(ctx context.Context) (*App, error) {
	app, ok := ctx.Value(appKey{}).(*App)
	if !ok || app == nil {
		return nil, fmt.Errorf("application not initialized")
	}
	return app, nil
}
