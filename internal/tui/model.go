// Package tui renders the promptdeck terminal interface: the section tree
// with enabled counts, move mode, snapshots, and live reload when the host
// application rewrites the preset file.
package tui

import (
	"context"
	"fmt"
	"path/filepath"
	"time"

	"github.com/charmbracelet/bubbles/list"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/huh"
	"github.com/rs/zerolog"

	"github.com/NemoVonNirgend/promptdeck/internal/core/logging"
	"github.com/NemoVonNirgend/promptdeck/internal/deck"
)

// mode is the model's interaction state.
type mode int

const (
	modeList mode = iota
	modeMove
	modePreview
	modeForm
)

const statusTTL = 4 * time.Second

// statusLevel selects the style of the status line.
type statusLevel int

const (
	statusInfo statusLevel = iota
	statusWarn
	statusError
)

type (
	// statusExpireMsg clears the status line after its TTL.
	statusExpireMsg struct{ id int }

	// presetReadyMsg reports the outcome of waiting for the preset file.
	presetReadyMsg struct{ err error }

	// previewMsg carries rendered prompt content for the preview overlay.
	previewMsg struct {
		title string
		body  string
		err   error
	}
)

// Model is the root bubbletea model for the deck.
type Model struct {
	app      *deck.App
	keys     keyMap
	styles   DeckStyles
	delegate *TreeDelegate
	list     list.Model

	mode      mode
	grabbedID string

	form       *huh.Form
	formAction func(m *Model) tea.Cmd

	preview      string
	previewTitle string

	status       string
	statusLevel  statusLevel
	statusSerial int

	width  int
	height int

	log zerolog.Logger
}

// New builds the deck model. The organizer is rebuilt once so the first frame
// already shows the tree.
func New(app *deck.App) *Model {
	delegate := NewTreeDelegate()

	l := list.New(nil, delegate, 0, 0)
	l.SetShowTitle(false)
	l.SetShowStatusBar(false)
	l.SetShowHelp(false)
	l.SetFilteringEnabled(true)

	m := &Model{
		app:      app,
		keys:     defaultKeyMap(),
		styles:   DefaultDeckStyles(),
		delegate: delegate,
		list:     l,
		log:      logging.Component("tui"),
	}

	app.Organizer.Rebuild(context.Background(), false)
	m.refreshRows()

	return m
}

// Init starts the file watcher and the preset wait.
func (m *Model) Init() tea.Cmd {
	cmds := []tea.Cmd{m.waitForPresetCmd()}
	if m.app.Watcher != nil {
		cmds = append(cmds, m.app.Watcher.Start())
	}
	return tea.Batch(cmds...)
}

// Update routes messages by interaction mode.
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width, m.height = msg.Width, msg.Height
		m.list.SetSize(msg.Width, msg.Height-3)
		return m, nil

	case deck.PresetChangedMsg:
		return m.onPresetChanged()

	case presetReadyMsg:
		if msg.err != nil {
			return m, m.setStatus(statusWarn, "preset file not found, starting empty")
		}
		m.app.Organizer.Rebuild(context.Background(), false)
		m.refreshRows()
		return m, nil

	case previewMsg:
		if msg.err != nil {
			return m, m.setStatus(statusError, fmt.Sprintf("preview: %v", msg.err))
		}
		m.mode = modePreview
		m.preview = msg.body
		m.previewTitle = msg.title
		return m, nil

	case statusExpireMsg:
		if msg.id == m.statusSerial {
			m.status = ""
		}
		return m, nil
	}

	switch m.mode {
	case modeForm:
		return m.updateForm(msg)
	case modePreview:
		return m.updatePreview(msg)
	case modeMove:
		return m.updateMove(msg)
	default:
		return m.updateList(msg)
	}
}

// onPresetChanged handles an external rewrite of the preset file.
func (m *Model) onPresetChanged() (tea.Model, tea.Cmd) {
	if m.app.Organizer.Mutating() {
		// The engine is mid-write; this event echoes our own mutation.
		return m, m.app.Watcher.Start()
	}

	m.log.Debug().Msg("preset changed externally, rebuilding")
	m.app.Organizer.Rebuild(context.Background(), false)
	m.refreshRows()

	return m, tea.Batch(
		m.app.Watcher.Start(),
		m.setStatus(statusInfo, "preset reloaded"),
	)
}

func (m *Model) updateList(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && !m.list.SettingFilter() {
		switch {
		case keyMatches(key, m.keys.Quit):
			return m, tea.Quit

		case keyMatches(key, m.keys.Toggle):
			return m, m.toggleSelected()

		case keyMatches(key, m.keys.Open):
			return m, m.toggleOpenSelected()

		case keyMatches(key, m.keys.Favorite):
			return m, m.favoriteSelected()

		case keyMatches(key, m.keys.Grab):
			return m, m.grabSelected()

		case keyMatches(key, m.keys.Preview):
			return m, m.previewSelected()

		case keyMatches(key, m.keys.PresetFav):
			return m, m.favoritePreset()

		case keyMatches(key, m.keys.Snapshot):
			return m, m.openSnapshotForm()

		case keyMatches(key, m.keys.Snapshots):
			return m, m.openApplyForm()

		case keyMatches(key, m.keys.Rebuild):
			m.app.Organizer.Rebuild(context.Background(), true)
			m.refreshRows()
			return m, m.setStatus(statusInfo, "rebuilt")
		}
	}

	var cmd tea.Cmd
	m.list, cmd = m.list.Update(msg)
	return m, cmd
}

func (m *Model) updateMove(msg tea.Msg) (tea.Model, tea.Cmd) {
	key, ok := msg.(tea.KeyMsg)
	if !ok {
		var cmd tea.Cmd
		m.list, cmd = m.list.Update(msg)
		return m, cmd
	}

	switch key.String() {
	case "up", "k":
		return m, m.moveGrabbed(-1)
	case "down", "j":
		return m, m.moveGrabbed(1)
	case "m", "enter", "esc":
		m.mode = modeList
		m.grabbedID = ""
		m.delegate.GrabbedID = ""
		return m, m.setStatus(statusInfo, "dropped")
	case "q", "ctrl+c":
		return m, tea.Quit
	}
	return m, nil
}

func (m *Model) updatePreview(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok {
		switch key.String() {
		case "esc", "q", "p", "enter":
			m.mode = modeList
			m.preview = ""
			return m, nil
		case "ctrl+c":
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m *Model) updateForm(msg tea.Msg) (tea.Model, tea.Cmd) {
	if key, ok := msg.(tea.KeyMsg); ok && key.String() == "esc" {
		m.mode = modeList
		m.form = nil
		return m, nil
	}

	form, cmd := m.form.Update(msg)
	if f, ok := form.(*huh.Form); ok {
		m.form = f
	}

	if m.form.State == huh.StateCompleted {
		action := m.formAction
		m.mode = modeList
		m.form = nil
		m.formAction = nil
		return m, action(m)
	}
	if m.form.State == huh.StateAborted {
		m.mode = modeList
		m.form = nil
		m.formAction = nil
		return m, nil
	}

	return m, cmd
}

// selectedRow returns the row under the cursor.
func (m *Model) selectedRow() (Row, bool) {
	row, ok := m.list.SelectedItem().(Row)
	return row, ok
}

// refreshRows rebuilds the visible list from the organizer tree, keeping the
// cursor on the same prompt when it still exists.
func (m *Model) refreshRows() {
	var keepID string
	if row, ok := m.selectedRow(); ok {
		keepID = row.ID()
	}

	items := BuildRows(m.app.Organizer.Roots(), m.app.Organizer)
	m.list.SetItems(items)

	if keepID != "" {
		if idx := IndexOf(items, keepID); idx >= 0 {
			m.list.Select(idx)
		}
	}
}

func (m *Model) toggleSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}
	if row.Node.IsHeader() {
		return m.toggleOpenSelected()
	}

	m.pauseWatcher()
	defer m.resumeWatcher()

	enabled, err := m.app.Organizer.ToggleEnabled(context.Background(), row.ID())
	if err != nil {
		return m.setStatus(statusError, fmt.Sprintf("toggle: %v", err))
	}
	m.refreshRows()

	verb := "disabled"
	if enabled {
		verb = "enabled"
	}
	return m.setStatus(statusInfo, fmt.Sprintf("%s %s", verb, row.Node.Item.Name))
}

func (m *Model) toggleOpenSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || !row.Node.IsHeader() {
		return nil
	}

	m.app.Organizer.ToggleSectionOpen(row.Node.Label)
	m.refreshRows()
	return nil
}

func (m *Model) favoriteSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || row.Node.IsHeader() {
		return nil
	}

	if m.app.Organizer.ToggleFavorite(row.ID()) {
		return m.setStatus(statusInfo, "favorited "+row.Node.Item.Name)
	}
	return m.setStatus(statusInfo, "unfavorited "+row.Node.Item.Name)
}

func (m *Model) favoritePreset() tea.Cmd {
	name, err := m.app.Prompts.Name()
	if err != nil || name == "" {
		name = filepath.Base(m.app.Prompts.Path())
	}

	if m.app.State.TogglePresetFavorite(name) {
		return m.setStatus(statusInfo, "favorited preset "+name)
	}
	return m.setStatus(statusInfo, "unfavorited preset "+name)
}

func (m *Model) grabSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok {
		return nil
	}

	m.mode = modeMove
	m.grabbedID = row.ID()
	m.delegate.GrabbedID = row.ID()
	return m.setStatus(statusInfo, "moving: j/k to shift, m to drop")
}

func (m *Model) moveGrabbed(delta int) tea.Cmd {
	m.pauseWatcher()
	defer m.resumeWatcher()

	err := m.app.Organizer.MoveStep(context.Background(), m.grabbedID, delta)
	if err != nil {
		return m.setStatus(statusWarn, fmt.Sprintf("move: %v", err))
	}

	m.refreshRows()
	if idx := IndexOf(m.list.Items(), m.grabbedID); idx >= 0 {
		m.list.Select(idx)
	}
	return nil
}

func (m *Model) previewSelected() tea.Cmd {
	row, ok := m.selectedRow()
	if !ok || row.Node.IsHeader() {
		return nil
	}

	id := row.ID()
	title := row.Node.Item.Name
	width := m.width
	return func() tea.Msg {
		content, err := m.app.Prompts.GetContent(context.Background(), id)
		if err != nil {
			return previewMsg{err: err}
		}
		body, err := renderMarkdown(content, width)
		if err != nil {
			return previewMsg{err: err}
		}
		return previewMsg{title: title, body: body}
	}
}

func (m *Model) openSnapshotForm() tea.Cmd {
	var name string
	form := huh.NewForm(huh.NewGroup(
		huh.NewInput().
			Title("Snapshot name").
			Value(&name).
			Validate(func(s string) error {
				if s == "" {
					return fmt.Errorf("name cannot be empty")
				}
				return nil
			}),
	))

	m.mode = modeForm
	m.form = form
	m.formAction = func(m *Model) tea.Cmd {
		if _, err := m.app.Service.CaptureSnapshot(context.Background(), name); err != nil {
			return m.setStatus(statusError, fmt.Sprintf("snapshot: %v", err))
		}
		return m.setStatus(statusInfo, "saved snapshot "+name)
	}
	return form.Init()
}

func (m *Model) openApplyForm() tea.Cmd {
	snaps := m.app.State.Snapshots()
	if len(snaps) == 0 {
		return m.setStatus(statusWarn, "no snapshots saved")
	}

	options := make([]huh.Option[string], 0, len(snaps))
	for _, snap := range snaps {
		label := fmt.Sprintf("%s (%d enabled, %s)", snap.Name, len(snap.Enabled), snap.CreatedAt.Format("2006-01-02 15:04"))
		options = append(options, huh.NewOption(label, snap.Name))
	}

	var chosen string
	form := huh.NewForm(huh.NewGroup(
		huh.NewSelect[string]().
			Title("Apply snapshot").
			Options(options...).
			Value(&chosen),
	))

	m.mode = modeForm
	m.form = form
	m.formAction = func(m *Model) tea.Cmd {
		m.pauseWatcher()
		defer m.resumeWatcher()

		result, err := m.app.Service.ApplySnapshot(context.Background(), chosen)
		if err != nil {
			return m.setStatus(statusError, fmt.Sprintf("apply: %v", err))
		}
		m.app.Organizer.Rebuild(context.Background(), true)
		m.refreshRows()

		msg := fmt.Sprintf("applied %s: %d changed", chosen, result.Applied)
		if len(result.Failed) > 0 {
			return m.setStatus(statusWarn, fmt.Sprintf("%s, %d failed", msg, len(result.Failed)))
		}
		return m.setStatus(statusInfo, msg)
	}
	return form.Init()
}

// waitForPresetCmd polls for the preset file in the background so the UI
// stays responsive while the host starts up.
func (m *Model) waitForPresetCmd() tea.Cmd {
	if m.app.Prompts.Exists() {
		return nil
	}
	return func() tea.Msg {
		err := m.app.Service.WaitForPreset(
			context.Background(),
			m.app.Prompts.Exists,
			m.app.Config.PresetWaitTimeout(),
		)
		return presetReadyMsg{err: err}
	}
}

func (m *Model) pauseWatcher() {
	if m.app.Watcher != nil {
		m.app.Watcher.Pause()
	}
}

func (m *Model) resumeWatcher() {
	if m.app.Watcher != nil {
		m.app.Watcher.Resume()
	}
}

// setStatus shows a transient status line message.
func (m *Model) setStatus(level statusLevel, text string) tea.Cmd {
	m.status = text
	m.statusLevel = level
	m.statusSerial++

	id := m.statusSerial
	return tea.Tick(statusTTL, func(time.Time) tea.Msg {
		return statusExpireMsg{id: id}
	})
}
