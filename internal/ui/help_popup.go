package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// HelpPopup lists every key binding.
type HelpPopup struct {
	keys KeyMap
	help help.Model
}

func newHelpPopup(keys KeyMap) *HelpPopup {
	h := help.New()
	h.ShowAll = true
	return &HelpPopup{keys: keys, help: h}
}

func (p *HelpPopup) Kind() PopupKind { return PopupHelp }

func (p *HelpPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc", "q", "?", "enter":
		return outcomeCancel, nil
	}
	return outcomeNone, nil
}

func (p *HelpPopup) View(t Theme, width int) string {
	p.help.Styles.FullKey = t.AccentStyle()
	p.help.Styles.FullDesc = t.ViewPaneStyle()
	p.help.Styles.FullSeparator = t.HelpStyle()
	p.help.Width = width - 8
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderStyle().Render("Keys"),
		"",
		p.help.View(p.keys),
		"",
		t.HelpStyle().Render("esc close"),
	)
	return t.BorderStyle().Padding(1, 2).Render(body)
}
