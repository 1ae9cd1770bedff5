package ui

import (
	"fmt"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/journalctl/internal/entry"
)

// confirmModel hosts a single Yes/No message box outside the main screen.
type confirmModel struct {
	box   *MsgBox
	theme Theme
	width int
	done  bool
}

func (m confirmModel) Init() tea.Cmd {
	return nil
}

func (m confirmModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
	case tea.KeyMsg:
		if msg.String() == "ctrl+c" {
			m.box.result = ResultNo
			m.done = true
			return m, tea.Quit
		}
		if outcome, _ := m.box.Update(msg); outcome == outcomeSubmit {
			m.done = true
			return m, tea.Quit
		}
	}
	return m, nil
}

func (m confirmModel) View() string {
	if m.done {
		return ""
	}
	width := m.width
	if width <= 0 {
		width = 80
	}
	return m.box.View(m.theme, width) + "\n"
}

func (m confirmModel) confirmed() bool {
	return m.done && m.box.Result() == ResultYes
}

// Confirm shows an interactive Yes/No prompt and returns true if the user confirms.
func Confirm(title, prompt string, theme Theme) (bool, error) {
	m := confirmModel{
		box:   newMsgBox(MsgQuestion, title, prompt, ActionsYesNo, CmdNone),
		theme: theme,
	}
	p := tea.NewProgram(m)
	result, err := p.Run()
	if err != nil {
		return false, err
	}
	return result.(confirmModel).confirmed(), nil
}

// ConfirmDelete asks before removing e.
func ConfirmDelete(e entry.Entry, theme Theme) (bool, error) {
	return Confirm("Delete entry", fmt.Sprintf("Delete entry %d %q?", e.ID, e.Title), theme)
}
