package tui

import (
	"fmt"
	"path/filepath"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"

	"github.com/NemoVonNirgend/promptdeck/internal/core/organizer"
)

// View renders the current frame.
func (m *Model) View() string {
	switch m.mode {
	case modeForm:
		if m.form != nil {
			return m.form.View()
		}
	case modePreview:
		return m.viewPreview()
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		m.viewTitle(),
		m.list.View(),
		m.viewStatus(),
	)
}

func (m *Model) viewTitle() string {
	title := m.styles.Title.Render("promptdeck")

	name, err := m.app.Prompts.Name()
	if err != nil || name == "" {
		name = filepath.Base(m.app.Prompts.Path())
	}
	if m.app.State.IsPresetFavorite(name) {
		name = markFavorite + " " + name
	}
	title += m.styles.Help.Render("  " + name)

	total, ok := m.app.Organizer.AggregateCounts(organizer.TopLevelContainer)
	if !ok {
		return title
	}
	badge := m.styles.Help.Render(fmt.Sprintf("  %d/%d enabled", total.Enabled, total.Total))
	return title + badge
}

func (m *Model) viewStatus() string {
	if m.status == "" {
		return m.styles.Help.Render(helpLine(m.keys))
	}

	style := m.styles.StatusInfo
	switch m.statusLevel {
	case statusWarn:
		style = m.styles.StatusWarn
	case statusError:
		style = m.styles.StatusError
	}
	return style.Render(m.status)
}

func (m *Model) viewPreview() string {
	header := m.styles.Title.Render(m.previewTitle)
	footer := m.styles.Help.Render("esc to close")
	return lipgloss.JoinVertical(lipgloss.Left, header, m.preview, footer)
}

// helpLine formats the short help as a single muted line.
func helpLine(keys keyMap) string {
	line := ""
	for i, b := range keys.ShortHelp() {
		if i > 0 {
			line += "  "
		}
		line += b.Help().Key + " " + b.Help().Desc
	}
	return line
}

// renderMarkdown renders prompt content for the preview overlay.
func renderMarkdown(content string, width int) (string, error) {
	if width <= 0 {
		width = 80
	}
	renderer, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithWordWrap(width-4),
	)
	if err != nil {
		return "", err
	}
	return renderer.Render(content)
}

func keyMatches(msg tea.KeyMsg, binding key.Binding) bool {
	return key.Matches(msg, binding)
}
