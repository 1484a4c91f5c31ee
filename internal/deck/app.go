// Package deck assembles the promptdeck runtime: the host preset store, the
// organizer engine, persisted UI state, and the file watcher that keeps the
// deck in sync with the host application.
package deck

import (
	"fmt"

	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/config"
	"github.com/NemoVonNirgend/promptdeck/internal/core/kv"
	"github.com/NemoVonNirgend/promptdeck/internal/core/logging"
	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
	"github.com/NemoVonNirgend/promptdeck/internal/core/state"
	"github.com/NemoVonNirgend/promptdeck/internal/data/db"
	"github.com/NemoVonNirgend/promptdeck/internal/data/presetfile"
	"github.com/NemoVonNirgend/promptdeck/internal/data/stores"
)

// App owns every long-lived component of a promptdeck run.
type App struct {
	Config    *config.Config
	Prompts   *presetfile.Store
	State     *state.Store
	Organizer *organizer.Organizer
	Service   *Service
	Watcher   *PresetWatcher // nil when watching is disabled or unavailable

	db  *db.DB // nil when running on the in-memory store
	log zerolog.Logger
}

// NewApp wires the application together from configuration. A database that
// cannot be opened degrades to in-memory state rather than failing startup;
// favorites and open flags then last only for the session.
func NewApp(cfg *config.Config) (*App, error) {
	log := logging.Component("app")

	if cfg.Preset.Path == "" {
		return nil, fmt.Errorf("no preset path configured")
	}

	app := &App{
		Config:  cfg,
		Prompts: presetfile.New(cfg.Preset.Path),
		log:     log,
	}

	var store kv.KV
	database, err := db.Open(cfg.DatabaseDir(), db.OpenOptions{
		MaxOpenConns: cfg.Database.MaxOpenConns,
		MaxIdleConns: cfg.Database.MaxIdleConns,
		BusyTimeout:  cfg.Database.BusyTimeoutMS,
	})
	if err != nil {
		log.Warn().Err(err).Msg("state database unavailable, state will not persist")
		store = stores.NewMemStore()
	} else {
		app.db = database
		store = stores.NewKVStore(database)
	}

	persister := stores.NewStatePersister(store, logging.Component("state"))
	app.State = state.New(persister, logging.Component("state"))

	app.Organizer = organizer.New(
		app.Prompts,
		app.State,
		cfg.Organizer.DividerPatterns,
		logging.Component("organizer"),
	)

	app.Service = NewService(app.Prompts, app.State, cfg.ApplyItemDelay(), logging.Component("deck"))

	if cfg.WatchEnabled() {
		app.Watcher = NewPresetWatcher(
			cfg.Preset.Path,
			cfg.Watch.Ignore,
			cfg.DebounceInterval(),
			logging.Component("watcher"),
		)
	}

	return app, nil
}

// Close releases the watcher and database.
func (a *App) Close() error {
	if a.Watcher != nil {
		if err := a.Watcher.Close(); err != nil {
			a.log.Warn().Err(err).Msg("close watcher")
		}
	}
	if a.db != nil {
		return a.db.Close()
	}
	return nil
}
