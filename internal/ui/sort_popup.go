package ui

import (
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/app"
)

var (
	sortKeys   = []app.SortKey{app.SortByDate, app.SortByTitle}
	sortOrders = []app.SortOrder{app.Ascending, app.Descending}
)

// SortPopup picks the sort key and order.
type SortPopup struct {
	key   int
	order int
	row   int // 0 key, 1 order
}

func newSortPopup(current app.Sorter) *SortPopup {
	p := &SortPopup{}
	for i, k := range sortKeys {
		if k == current.Key {
			p.key = i
		}
	}
	for i, o := range sortOrders {
		if o == current.Order {
			p.order = i
		}
	}
	return p
}

func (p *SortPopup) Kind() PopupKind { return PopupSort }

// Sorter returns the selected sorter.
func (p *SortPopup) Sorter() app.Sorter {
	return app.Sorter{Key: sortKeys[p.key], Order: sortOrders[p.order]}
}

func (p *SortPopup) cycle(delta int) {
	if p.row == 0 {
		p.key = (p.key + delta + len(sortKeys)) % len(sortKeys)
	} else {
		p.order = (p.order + delta + len(sortOrders)) % len(sortOrders)
	}
}

func (p *SortPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc", "q":
		return outcomeCancel, nil
	case "enter":
		return outcomeSubmit, nil
	case "up", "k", "down", "j", "tab", "shift+tab":
		p.row = 1 - p.row
	case "left", "h":
		p.cycle(-1)
	case "right", "l", " ":
		p.cycle(1)
	}
	return outcomeNone, nil
}

func (p *SortPopup) View(t Theme, width int) string {
	row := func(i int, label, value string) string {
		line := label + "  ‹ " + value + " ›"
		if i == p.row {
			return t.AccentStyle().Bold(true).Render(line)
		}
		return t.ViewPaneStyle().Render(line)
	}
	boxWidth := min(40, width-4)
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.HeaderStyle().Render("Sort entries"),
		"",
		row(0, "Sort by", string(sortKeys[p.key])),
		row(1, "Order  ", string(sortOrders[p.order])),
		"",
		t.HelpStyle().Render("←/→ change • enter apply • esc cancel"),
	)
	return t.PopupStyle(boxWidth).Render(body)
}
