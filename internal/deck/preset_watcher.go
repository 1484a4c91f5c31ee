package deck

import (
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/bmatcuk/doublestar/v4"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/fsnotify/fsnotify"
	"github.com/rs/zerolog"
)

// PresetChangedMsg is sent when the host application rewrites the preset file.
type PresetChangedMsg struct {
	Path string
}

// PresetWatcher watches the preset file for external rewrites and emits
// PresetChangedMsg via tea.Cmd. It watches the parent directory rather than
// the file itself because hosts typically replace the file with a rename,
// which would drop a direct file watch.
type PresetWatcher struct {
	watcher     *fsnotify.Watcher
	presetPath  string
	ignore      []string
	debounceDur time.Duration
	paused      atomic.Bool
	log         zerolog.Logger
}

// NewPresetWatcher creates a watcher for the preset file's directory.
// Returns nil if the directory cannot be watched; the deck then runs
// without live reload.
func NewPresetWatcher(presetPath string, ignore []string, debounce time.Duration, log zerolog.Logger) *PresetWatcher {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		log.Warn().Err(err).Msg("failed to create fsnotify watcher")
		return nil
	}

	w := &PresetWatcher{
		watcher:     watcher,
		presetPath:  presetPath,
		ignore:      ignore,
		debounceDur: debounce,
		log:         log.With().Str("component", "preset-watcher").Logger(),
	}

	if err := watcher.Add(filepath.Dir(presetPath)); err != nil {
		w.log.Warn().Err(err).Str("dir", filepath.Dir(presetPath)).Msg("cannot watch preset directory")
		_ = watcher.Close()
		return nil
	}

	return w
}

// Pause suppresses change notifications. Call before writing the preset file
// so the deck's own writes do not echo back as external changes.
func (w *PresetWatcher) Pause() {
	w.paused.Store(true)
}

// Resume re-enables change notifications. Events that arrived while paused
// are dropped, not replayed.
func (w *PresetWatcher) Resume() {
	w.paused.Store(false)
}

// Start returns a tea.Cmd that blocks until the preset file changes, then
// returns a PresetChangedMsg. The caller must re-invoke Start() after
// processing the message to continue watching.
func (w *PresetWatcher) Start() tea.Cmd {
	return func() tea.Msg {
		for {
			select {
			case event, ok := <-w.watcher.Events:
				if !ok {
					return nil
				}

				if w.shouldIgnore(event) {
					continue
				}

				w.log.Debug().
					Str("path", event.Name).
					Str("op", event.Op.String()).
					Msg("file system event")

				// Debounce: wait for changes to settle using a timer
				debounce := time.NewTimer(w.debounceDur)

			debounceLoop:
				for {
					select {
					case e := <-w.watcher.Events:
						if w.shouldIgnore(e) {
							continue
						}
						if !debounce.Stop() {
							<-debounce.C
						}
						debounce.Reset(w.debounceDur)
					case <-debounce.C:
						break debounceLoop
					}
				}

				// A burst that started before Pause may finish after it;
				// check again so self-writes never surface.
				if w.paused.Load() {
					continue
				}

				return PresetChangedMsg{Path: w.presetPath}

			case err, ok := <-w.watcher.Errors:
				if !ok {
					return nil
				}
				w.log.Error().Err(err).Msg("watcher error")
			}
		}
	}
}

// Close stops the watcher.
func (w *PresetWatcher) Close() error {
	return w.watcher.Close()
}

func (w *PresetWatcher) shouldIgnore(event fsnotify.Event) bool {
	if w.paused.Load() {
		return true
	}

	// Only the preset file itself matters; everything else in the
	// directory is noise.
	if filepath.Clean(event.Name) != filepath.Clean(w.presetPath) {
		return true
	}

	base := filepath.Base(event.Name)
	for _, pattern := range w.ignore {
		if ok, err := doublestar.Match(pattern, base); err == nil && ok {
			return true
		}
	}

	return false
}
