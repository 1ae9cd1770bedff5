package ui

import (
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/app"
)

// FilterPopup edits the tag selection and search text of the entry filter.
type FilterPopup struct {
	text     textinput.Model
	tags     []string
	selected map[string]bool
	// cursor is -1 on the text input, otherwise an index into tags.
	cursor int
}

func newFilterPopup(allTags []string, current app.Filter) *FilterPopup {
	ti := textinput.New()
	ti.Placeholder = "search title and content"
	ti.SetValue(current.Text)
	ti.Focus()

	selected := make(map[string]bool, len(current.Tags))
	for _, tag := range current.Tags {
		selected[tag] = true
	}
	return &FilterPopup{text: ti, tags: allTags, selected: selected, cursor: -1}
}

func (p *FilterPopup) Kind() PopupKind { return PopupFilter }

// Filter returns the filter described by the popup.
func (p *FilterPopup) Filter() app.Filter {
	var tags []string
	for _, tag := range p.tags {
		if p.selected[tag] {
			tags = append(tags, tag)
		}
	}
	return app.Filter{Tags: tags, Text: strings.TrimSpace(p.text.Value())}
}

func (p *FilterPopup) move(delta int) {
	p.cursor = max(-1, min(p.cursor+delta, len(p.tags)-1))
	if p.cursor == -1 {
		p.text.Focus()
	} else {
		p.text.Blur()
	}
}

func (p *FilterPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return outcomeCancel, nil
	case "enter":
		return outcomeSubmit, nil
	case "down", "tab":
		p.move(1)
		return outcomeNone, nil
	case "up", "shift+tab":
		p.move(-1)
		return outcomeNone, nil
	case " ":
		if p.cursor >= 0 {
			tag := p.tags[p.cursor]
			p.selected[tag] = !p.selected[tag]
			return outcomeNone, nil
		}
	case "ctrl+r":
		clear(p.selected)
		p.text.SetValue("")
		return outcomeNone, nil
	}

	if p.cursor >= 0 {
		return outcomeNone, nil
	}
	var cmd tea.Cmd
	p.text, cmd = p.text.Update(msg)
	return outcomeNone, cmd
}

func (p *FilterPopup) View(t Theme, width int) string {
	boxWidth := min(max(width/2, 40), width-4)
	p.text.Width = boxWidth - 8

	rows := []string{t.HeaderStyle().Render("Filter"), "", p.text.View(), ""}
	if len(p.tags) == 0 {
		rows = append(rows, t.HelpStyle().Render("no tags"))
	}
	for i, tag := range p.tags {
		marker := "○"
		if p.selected[tag] {
			marker = "●"
		}
		line := marker + " " + tag
		if i == p.cursor {
			rows = append(rows, t.AccentStyle().Bold(true).Render(line))
		} else {
			rows = append(rows, t.ViewPaneStyle().Render(line))
		}
	}
	rows = append(rows, "", t.HelpStyle().Render("space toggle • ctrl+r clear • enter apply • esc cancel"))

	return t.PopupStyle(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}

