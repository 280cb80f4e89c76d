// Application wiring for the teamup CLI: every component is constructed
// here, with its dependencies passed in explicitly, and torn down after the
// command runs.
package cli

import (
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"

	"github.com/christianbiango/team-up/internal/bus"
	"github.com/christianbiango/team-up/internal/connectivity"
	"github.com/christianbiango/team-up/internal/manager"
	"github.com/christianbiango/team-up/internal/notify"
	"github.com/christianbiango/team-up/internal/remote"
	"github.com/christianbiango/team-up/internal/sqlite"
	"github.com/christianbiango/team-up/internal/syncengine"
)

// app holds the wired components for one CLI invocation.
type app struct {
	config  appConfig
	log     zerolog.Logger
	store   *sqlite.Backend
	signal  *connectivity.Signal
	bus     *bus.Bus
	manager *manager.Manager
	engine  *syncengine.Engine
}

// newApp builds the component graph. The connectivity signal starts online
// when a remote URL is configured and the --offline flag is absent.
func newApp(cfg appConfig) (*app, error) {
	log := newLogger(cfg.logLevel)

	store := sqlite.NewBackend()
	if err := store.Open(cfg.storeConfig()); err != nil {
		return nil, fmt.Errorf("open store: %w", err)
	}

	online := cfg.remoteURL != "" && !flagOffline
	signal := connectivity.NewSignal(online)
	eventBus := bus.New()
	notifier := notify.NewLogger(log)

	var client remote.Client = remote.NewHTTPClient(cfg.remoteURL, cfg.remoteAPIKey, log)

	mgr := manager.New(store, client, signal, notifier, log)
	engine := syncengine.New(store, client, signal, eventBus, notifier, log, cfg.syncInterval)

	return &app{
		config:  cfg,
		log:     log,
		store:   store,
		signal:  signal,
		bus:     eventBus,
		manager: mgr,
		engine:  engine,
	}, nil
}

// close releases the store.
func (a *app) close() error {
	return a.store.Close()
}

// newLogger builds the console logger used by the CLI.
func newLogger(level string) zerolog.Logger {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil || lvl == zerolog.NoLevel {
		lvl = zerolog.InfoLevel
	}
	if flagVerbose {
		lvl = zerolog.DebugLevel
	}
	writer := zerolog.ConsoleWriter{Out: os.Stderr}
	return zerolog.New(writer).Level(lvl).With().Timestamp().Logger()
}
