package ui

import (
	"strings"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// MsgBoxResult is how a message box was closed.
type MsgBoxResult int

const (
	ResultOk MsgBoxResult = iota
	ResultCancel
	ResultYes
	ResultNo
)

func (r MsgBoxResult) String() string {
	switch r {
	case ResultOk:
		return "ok"
	case ResultCancel:
		return "cancel"
	case ResultYes:
		return "yes"
	case ResultNo:
		return "no"
	}
	return "unknown"
}

// MsgBoxActions selects the buttons offered.
type MsgBoxActions int

const (
	ActionsOk MsgBoxActions = iota
	ActionsYesNo
	ActionsYesNoCancel
)

// MsgBoxType selects the box styling.
type MsgBoxType int

const (
	MsgInfo MsgBoxType = iota
	MsgQuestion
	MsgWarning
	MsgError
)

// MsgBox is a message or confirmation dialog. Origin names the command
// waiting on the answer, or CmdNone.
type MsgBox struct {
	Type    MsgBoxType
	Title   string
	Text    string
	Actions MsgBoxActions
	Origin  Command

	focus  int
	result MsgBoxResult
}

func newMsgBox(typ MsgBoxType, title, text string, actions MsgBoxActions, origin Command) *MsgBox {
	return &MsgBox{Type: typ, Title: title, Text: text, Actions: actions, Origin: origin}
}

func (b *MsgBox) Kind() PopupKind { return PopupMsgBox }

// Result is valid once Update returned outcomeSubmit.
func (b *MsgBox) Result() MsgBoxResult { return b.result }

func (b *MsgBox) buttons() []MsgBoxResult {
	switch b.Actions {
	case ActionsYesNo:
		return []MsgBoxResult{ResultYes, ResultNo}
	case ActionsYesNoCancel:
		return []MsgBoxResult{ResultYes, ResultNo, ResultCancel}
	default:
		return []MsgBoxResult{ResultOk}
	}
}

func (b *MsgBox) offers(r MsgBoxResult) bool {
	for _, btn := range b.buttons() {
		if btn == r {
			return true
		}
	}
	return false
}

func (b *MsgBox) Update(msg tea.KeyMsg) (popupOutcome, tea.Cmd) {
	buttons := b.buttons()
	choose := func(r MsgBoxResult) (popupOutcome, tea.Cmd) {
		b.result = r
		return outcomeSubmit, nil
	}

	switch strings.ToLower(msg.String()) {
	case "y":
		if b.offers(ResultYes) {
			return choose(ResultYes)
		}
	case "n":
		if b.offers(ResultNo) {
			return choose(ResultNo)
		}
	case "c":
		if b.offers(ResultCancel) {
			return choose(ResultCancel)
		}
	case "o":
		if b.offers(ResultOk) {
			return choose(ResultOk)
		}
	case "esc", "q":
		switch {
		case b.offers(ResultCancel):
			return choose(ResultCancel)
		case b.offers(ResultNo):
			return choose(ResultNo)
		default:
			return choose(ResultOk)
		}
	case "left", "shift+tab", "h":
		b.focus = (b.focus + len(buttons) - 1) % len(buttons)
	case "right", "tab", "l":
		b.focus = (b.focus + 1) % len(buttons)
	case "enter", " ":
		return choose(buttons[b.focus])
	}
	return outcomeNone, nil
}

func (b *MsgBox) View(t Theme, width int) string {
	var btns []string
	for i, r := range b.buttons() {
		label := "[" + strings.ToUpper(r.String()[:1]) + "]" + r.String()[1:]
		btns = append(btns, t.ButtonStyle(i == b.focus).Render(label))
	}

	boxWidth := min(max(width/2, 30), width-4)
	body := lipgloss.JoinVertical(lipgloss.Left,
		t.TitleStyle(b.Type).Render(b.Title),
		"",
		t.ViewPaneStyle().Width(boxWidth-4).Render(b.Text),
		"",
		strings.Join(btns, t.HelpStyle().Render("  ")),
	)
	return t.PopupStyle(boxWidth).Render(body)
}
