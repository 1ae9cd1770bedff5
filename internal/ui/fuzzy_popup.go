package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/sahilm/fuzzy"
)

const fuzzyMaxRows = 10

// fuzzySource adapts entries to fuzzy.Source.
type fuzzySource []entry.Entry

func (s fuzzySource) String(i int) string { return s[i].Title }
func (s fuzzySource) Len() int            { return len(s) }

// FuzzyPopup jumps to an entry by fuzzy matching its title.
type FuzzyPopup struct {
	input   textinput.Model
	entries fuzzySource
	matches fuzzy.Matches
	cursor  int
}

func newFuzzyPopup(entries []entry.Entry) *FuzzyPopup {
	ti := textinput.New()
	ti.Placeholder = "find entry..."
	ti.Focus()
	p := &FuzzyPopup{input: ti, entries: entries}
	p.refresh()
	return p
}

func (p *FuzzyPopup) Kind() PopupKind { return PopupFuzzyFind }

// refresh recomputes matches. An empty query lists every entry in view order.
func (p *FuzzyPopup) refresh() {
	query := strings.TrimSpace(p.input.Value())
	if query == "" {
		p.matches = make(fuzzy.Matches, len(p.entries))
		for i, e := range p.entries {
			p.matches[i] = fuzzy.Match{Str: e.Title, Index: i}
		}
	} else {
		p.matches = fuzzy.FindFrom(query, p.entries)
	}
	p.cursor = min(p.cursor, max(len(p.matches)-1, 0))
}

// Selected returns the id under the cursor.
func (p *FuzzyPopup) Selected() (uint32, bool) {
	if len(p.matches) == 0 {
		return 0, false
	}
	return p.entries[p.matches[p.cursor].Index].ID, true
}

func (p *FuzzyPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return outcomeCancel, nil
	case "enter":
		return outcomeSubmit, nil
	case "up", "ctrl+p", "ctrl+k":
		p.cursor = max(p.cursor-1, 0)
		return outcomeNone, nil
	case "down", "ctrl+n", "ctrl+j":
		p.cursor = max(min(p.cursor+1, len(p.matches)-1), 0)
		return outcomeNone, nil
	}

	var cmd tea.Cmd
	p.input, cmd = p.input.Update(msg)
	p.refresh()
	return outcomeNone, cmd
}

func highlight(t Theme, m fuzzy.Match) string {
	matched := make(map[int]bool, len(m.MatchedIndexes))
	for _, i := range m.MatchedIndexes {
		matched[i] = true
	}
	var b strings.Builder
	for i, r := range m.Str {
		if matched[i] {
			b.WriteString(t.AccentStyle().Underline(true).Render(string(r)))
		} else {
			b.WriteString(t.ViewPaneStyle().Render(string(r)))
		}
	}
	return b.String()
}

func (p *FuzzyPopup) View(t Theme, width int) string {
	boxWidth := min(max(width*2/3, 40), width-4)
	p.input.Width = boxWidth - 8

	rows := []string{t.HeaderStyle().Render("Find entry"), "", p.input.View(), ""}
	start := max(0, p.cursor-fuzzyMaxRows+1)
	end := min(len(p.matches), start+fuzzyMaxRows)
	for i := start; i < end; i++ {
		prefix := "  "
		if i == p.cursor {
			prefix = t.AccentStyle().Render("> ")
		}
		rows = append(rows, prefix+highlight(t, p.matches[i]))
	}
	rows = append(rows, "", t.HelpStyle().Render(
		fmt.Sprintf("%d/%d • ↑/↓ move • enter jump • esc cancel", len(p.matches), len(p.entries))))

	return t.PopupStyle(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
