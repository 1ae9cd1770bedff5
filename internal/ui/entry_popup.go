package ui

import (
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/entry"
)

const (
	dateLayout         = "2006-01-02"
	maxTitleLength     = 200
	maxTagsInputLength = 500
)

const (
	fieldTitle = iota
	fieldDate
	fieldTags
	entryFieldCount
)

// EntryPopup edits the metadata of the edit buffer it was opened for.
type EntryPopup struct {
	buffer *EditBuffer
	inputs [entryFieldCount]textinput.Model
	focus  int
	err    string
}

func newEntryPopup(b *EditBuffer) *EntryPopup {
	p := &EntryPopup{buffer: b}

	title := textinput.New()
	title.Placeholder = "title"
	title.CharLimit = maxTitleLength
	title.SetValue(b.Draft.Title)

	date := textinput.New()
	date.Placeholder = dateLayout
	date.CharLimit = len(dateLayout)
	date.SetValue(b.Draft.Date.Local().Format(dateLayout))

	tags := textinput.New()
	tags.Placeholder = "tag1, tag2"
	tags.CharLimit = maxTagsInputLength
	tags.SetValue(strings.Join(b.Draft.Tags, ", "))

	p.inputs = [entryFieldCount]textinput.Model{title, date, tags}
	p.inputs[fieldTitle].Focus()
	return p
}

func (p *EntryPopup) Kind() PopupKind { return PopupEntry }

// IsNew reports whether the popup is creating an entry.
func (p *EntryPopup) IsNew() bool { return p.buffer.IsNew() }

func (p *EntryPopup) setFocus(i int) {
	p.inputs[p.focus].Blur()
	p.focus = (i + entryFieldCount) % entryFieldCount
	p.inputs[p.focus].Focus()
}

func (p *EntryPopup) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	switch msg.String() {
	case "esc":
		return outcomeCancel, nil
	case "enter":
		return outcomeSubmit, nil
	case "ctrl+e":
		return outcomeExternalEdit, nil
	case "tab", "down":
		p.setFocus(p.focus + 1)
		return outcomeNone, textinput.Blink
	case "shift+tab", "up":
		p.setFocus(p.focus - 1)
		return outcomeNone, textinput.Blink
	}

	var cmd tea.Cmd
	p.inputs[p.focus], cmd = p.inputs[p.focus].Update(msg)
	p.err = ""
	return outcomeNone, cmd
}

// apply copies the field values into the buffer. The title is not checked
// here; saving validates the whole draft.
func (p *EntryPopup) apply() error {
	raw := strings.TrimSpace(p.inputs[fieldDate].Value())
	date, err := time.ParseInLocation(dateLayout, raw, time.Local)
	if err != nil {
		p.err = fmt.Sprintf("date must be %s", dateLayout)
		return fmt.Errorf("invalid date %q: expected %s", raw, dateLayout)
	}

	d := &p.buffer.Draft
	// Keep the time of day when only the calendar date is unchanged.
	if d.Date.Local().Format(dateLayout) != raw {
		d.Date = date
	}
	d.Title = strings.TrimSpace(p.inputs[fieldTitle].Value())
	d.Tags = entry.ParseTags(p.inputs[fieldTags].Value())
	p.err = ""
	return nil
}

func (p *EntryPopup) View(t Theme, width int) string {
	heading := "Edit entry"
	if p.IsNew() {
		heading = "Create entry"
	}

	labels := [entryFieldCount]string{"Title", "Date", "Tags"}
	boxWidth := min(max(width*2/3, 40), width-4)
	rows := []string{t.HeaderStyle().Render(heading), ""}
	for i, in := range p.inputs {
		label := t.HelpStyle().Render(labels[i])
		if i == p.focus {
			label = t.AccentStyle().Bold(true).Render(labels[i])
		}
		in.Width = boxWidth - 8
		rows = append(rows, label, in.View(), "")
	}
	if p.err != "" {
		rows = append(rows, t.DangerStyle().Render(p.err))
	}
	rows = append(rows, t.HelpStyle().Render("tab next • ctrl+e edit content • enter save • esc cancel"))

	return t.PopupStyle(boxWidth).Render(lipgloss.JoinVertical(lipgloss.Left, rows...))
}
