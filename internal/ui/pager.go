package ui

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"golang.org/x/term"
)

type pagerModel struct {
	viewport viewport.Model
	content  string
	ready    bool
	maxWidth int // maximum viewport width (0 = no limit)
	width    int // terminal width
	height   int // terminal height
	theme    Theme
}

func (m pagerModel) Init() tea.Cmd {
	return nil
}

func (m pagerModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			return m, tea.Quit
		}
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		if !m.ready {
			m.viewport = viewport.New(m.contentWidth(), msg.Height-1)
			m.viewport.Style = m.theme.ViewPaneStyle()
			m.viewport.SetContent(m.content)
			m.ready = true
		} else {
			m.viewport.Width = m.contentWidth()
			m.viewport.Height = msg.Height - 1
			m.viewport.SetContent(m.content)
		}
	}

	var cmd tea.Cmd
	m.viewport, cmd = m.viewport.Update(msg)
	return m, cmd
}

// contentWidth returns the effective content width, respecting maxWidth configuration.
func (m *pagerModel) contentWidth() int {
	if m.maxWidth > 0 && m.width > m.maxWidth {
		return m.maxWidth
	}
	return m.width
}

func (m pagerModel) View() string {
	if !m.ready {
		return "Loading..."
	}
	footer := m.theme.HelpStyle().Render("↑/↓ scroll • q quit")
	return m.theme.PaintScreen(m.viewport.View()+"\n"+footer, m.width, m.height, m.contentWidth())
}

// PageOutput displays content through a Bubble Tea pager when running in a TTY
// and the content exceeds terminal height. Otherwise writes directly to stdout.
func PageOutput(content string, maxWidth int, theme Theme) error {
	// If not a TTY, write directly
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		fmt.Print(content)
		return nil
	}

	// Check if content fits in terminal
	_, height, err := term.GetSize(int(os.Stdout.Fd()))
	if err != nil {
		fmt.Print(content)
		return nil
	}

	lineCount := strings.Count(content, "\n") + 1
	if lineCount <= height-2 {
		fmt.Print(content)
		return nil
	}

	p := tea.NewProgram(pagerModel{content: content, maxWidth: maxWidth, theme: theme}, tea.WithAltScreen())
	_, err = p.Run()
	return err
}

// OutputOrPage writes content to the writer, using the pager if appropriate.
// When jsonOutput is true, always writes directly (no paging).
func OutputOrPage(w io.Writer, content string, jsonOutput bool, maxWidth int, theme Theme) error {
	if jsonOutput || w != os.Stdout {
		fmt.Fprint(w, content)
		return nil
	}
	return PageOutput(content, maxWidth, theme)
}
