package bootstrap

import (
	"context"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/go-arcade/phrasetrie/internal/phrasetrie/config"
	"github.com/go-arcade/phrasetrie/internal/phrasetrie/service"
	"github.com/go-arcade/phrasetrie/pkg/log"
	"github.com/go-arcade/phrasetrie/pkg/metrics"
	"github.com/go-arcade/phrasetrie/pkg/storage"
	"github.com/go-arcade/phrasetrie/pkg/trace"
)

// ErrNoInput is returned when neither flags nor config name an input.
var ErrNoInput = errors.New("no input files, use -f/--file")

type App struct {
	Ingester      *service.Ingester
	MetricsServer *metrics.Server
	Tracer        *trace.Provider
	Logger        *log.Logger
	AppConf       config.AppConfig
}

type InitAppFunc func(appConf config.AppConfig) (*App, func(), error)

func NewApp(
	ingester *service.Ingester,
	metricsServer *metrics.Server,
	tracer *trace.Provider,
	logger *log.Logger,
	appConf config.AppConfig,
) (*App, func(), error) {
	cleanup := func() {
		if metricsServer != nil {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			if err := metricsServer.Stop(shutdownCtx); err != nil {
				log.Errorw("failed to stop metrics server", "error", err)
			}
		}
	}

	app := &App{
		Ingester:      ingester,
		MetricsServer: metricsServer,
		Tracer:        tracer,
		Logger:        logger,
		AppConf:       appConf,
	}
	return app, cleanup, nil
}

// Bootstrap loads configuration and builds the App through initApp.
func Bootstrap(appConf config.AppConfig, initApp InitAppFunc) (*App, func(), error) {
	if len(appConf.Input.Files) == 0 {
		return nil, nil, ErrNoInput
	}
	return initApp(appConf)
}

// Render builds the trie from the configured inputs, writes it to w and
// exports metrics to the configured textfile or Pushgateway.
func (app *App) Render(ctx context.Context, w io.Writer) error {
	_, err := app.Ingester.Run(ctx, app.AppConf.Input.Files, w)
	if err != nil {
		return err
	}
	if err := app.MetricsServer.Export(ctx); err != nil {
		log.Warnw("metrics export failed", "error", err)
	}
	return nil
}

// Watch re-renders to w whenever an input file changes until ctx is done.
// Only local inputs can be watched.
func (app *App) Watch(ctx context.Context, w io.Writer) error {
	st := app.AppConf.Storage
	if st.Provider != storage.StorageLocal {
		return fmt.Errorf("watch requires the %q storage provider, got %q", storage.StorageLocal, st.Provider)
	}
	local := storage.NewLocal(&st)
	names := app.AppConf.Input.Files
	paths := make([]string, len(names))
	for i, name := range names {
		paths[i] = local.Path(name)
	}

	if err := app.MetricsServer.Start(); err != nil {
		return err
	}
	return app.Ingester.Watch(ctx, names, paths, w)
}
