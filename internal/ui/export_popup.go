package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// ExportPopup asks for the file the current entry's content is written to.
type ExportPopup struct {
	entryID uint32
	input   textinput.Model
}

func newExportPopup(id uint32, defaultPath string) *ExportPopup {
	ti := textinput.New()
	ti.Placeholder = "path"
	ti.SetValue(defaultPath)
	ti.CursorEnd()
	ti.Focus()
	return &ExportPopup{entryID: id, input: ti}
}

func (p *ExportPopup) Kind() PopupKind { return PopupExport }

// Path returns the trimmed target path.
func (p *ExportPopup) Path() string { return strings.TrimSpace(p.input.Value()) }

func (p *ExportPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return outcomeCancel, nil
	case "enter":
		return outcomeSubmit, nil
	}
	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	return outcomeNone, cmd
}

func (p *ExportPopup) View(t Theme, width int) string {
	boxWidth := min(max(width*2/3, 40), width-4)
	p.input.Width = boxWidth - 8
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderStyle().Render("Export entry content"),
		"",
		p.input.View(),
		"",
		t.HelpStyle().Render("enter export • esc cancel"),
	)
	return t.PopupStyle(boxWidth).Render(body)
}
