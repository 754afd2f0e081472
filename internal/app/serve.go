package app

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/coreos/go-systemd/v22/daemon"

	"bootkit/internal/bootstrap"
	"bootkit/internal/events"
	"bootkit/internal/modularity"
	"bootkit/pkg/logging"
)

const shutdownTimeout = 5 * time.Second

// sdNotify is replaced in tests.
var sdNotify = daemon.SdNotify

// Serve hosts a bootstrapped process. It serves metrics and watches the
// module catalog when configured, tells systemd the process is ready, and
// blocks until ctx is cancelled or SIGINT/SIGTERM arrives.
func (a *Application) Serve(ctx context.Context, proc *bootstrap.Process) error {
	ctx, stop := signal.NotifyContext(ctx, os.Interrupt, syscall.SIGTERM)
	defer stop()

	errCh := make(chan error, 1)

	if a.settings.Metrics.Enabled {
		srv := a.metricsServer()
		go func() {
			logging.Info("App", "Serving metrics on %s", srv.Addr)
			if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
				errCh <- err
			}
		}()
		defer func() {
			shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
			defer cancel()
			if err := srv.Shutdown(shutdownCtx); err != nil {
				logging.Warn("App", "Metrics server shutdown: %v", err)
			}
		}()
	}

	if a.settings.WatchCatalog {
		w, err := a.watchCatalog(ctx, proc)
		if err != nil {
			return err
		}
		defer w.Stop()
	}

	notify(daemon.SdNotifyReady)
	logging.Info("App", "bootkit is running. Press Ctrl+C to stop.")

	var err error
	select {
	case <-ctx.Done():
	case err = <-errCh:
		logging.Error("App", err, "Metrics server failed")
	}

	notify(daemon.SdNotifyStopping)
	logging.Info("App", "Shutting down")
	return err
}

func (a *Application) metricsServer() *http.Server {
	mux := http.NewServeMux()
	mux.Handle("/metrics", a.metrics.Handler())
	return &http.Server{
		Addr:              a.settings.Metrics.Addr,
		Handler:           mux,
		ReadHeaderTimeout: 5 * time.Second,
	}
}

// watchCatalog reloads the catalog file on change and loads the modules it
// adds.
func (a *Application) watchCatalog(ctx context.Context, proc *bootstrap.Process) (*modularity.Watcher, error) {
	manager, err := proc.ModuleManager()
	if err != nil {
		return nil, err
	}
	agg, err := proc.Events()
	if err != nil {
		return nil, err
	}

	path := a.settings.CatalogPath
	w := modularity.NewWatcher(path, 0, func(reloaded *modularity.Catalog) {
		added, err := manager.Refresh(reloaded)
		if err != nil {
			logging.Error("App", err, "Failed to load modules from reloaded catalog %s", path)
		}
		agg.Publish(events.TopicCatalogReloaded, events.EventData{Name: path, Count: len(added)})
	})
	if err := w.Start(ctx); err != nil {
		return nil, err
	}
	logging.Info("App", "Watching module catalog %s", path)
	return w, nil
}

func notify(state string) {
	sent, err := sdNotify(false, state)
	if err != nil {
		logging.Warn("App", "systemd notification %q failed: %v", state, err)
		return
	}
	if sent {
		logging.Debug("App", "Notified systemd: %s", state)
	}
}
