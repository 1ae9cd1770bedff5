package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/list"
	"github.com/charmbracelet/bubbles/textarea"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/chris-regnier/journalctl/internal/entry"
)

// Focus states for the main screen
const (
	focusList = iota
	focusEditor
)

// entryItem implements list.Item for entry.Entry.
type entryItem struct {
	entry entry.Entry
}

func (e entryItem) Title() string { return e.entry.Title }

func (e entryItem) Description() string {
	desc := e.entry.Date.Local().Format("2006-01-02")
	if len(e.entry.Tags) > 0 {
		desc += "  #" + strings.Join(e.entry.Tags, " #")
	}
	return desc
}

func (e entryItem) FilterValue() string { return e.entry.Title }

// TUIConfig holds configuration needed by the TUI.
type TUIConfig struct {
	MaxWidth int   // maximum viewport width (0 = no limit)
	Theme    Theme // resolved theme
}

// tuiModel is the Bubble Tea model for the journal screen. All state
// changes go through the session; the model mirrors it into widgets.
type tuiModel struct {
	session *Session
	cfg     TUIConfig
	keys    KeyMap

	list   list.Model
	editor textarea.Model
	focus  int
	// shownID is the entry whose content the textarea holds.
	shownID uint32

	width  int
	height int
	ready  bool
}

func newTUIModel(s *Session, cfg TUIConfig) tuiModel {
	l := cfg.Theme.NewList(nil, 0, 0)
	l.Title = "Journals"
	l.SetShowHelp(false)
	l.SetFilteringEnabled(false)
	l.SetShowStatusBar(false)
	l.DisableQuitKeybindings()

	ta := textarea.New()
	ta.Placeholder = "entry content..."
	ta.ShowLineNumbers = false
	ta.CharLimit = 0
	ta.MaxHeight = 0

	m := tuiModel{session: s, cfg: cfg, keys: DefaultKeyMap(), list: l, editor: ta}
	m.sync()
	return m
}

func (m tuiModel) Init() tea.Cmd {
	return nil
}

func (m *tuiModel) contentWidth() int {
	if m.cfg.MaxWidth > 0 && m.width > m.cfg.MaxWidth {
		return m.cfg.MaxWidth
	}
	return m.width
}

// paneWidths splits the content width between list and editor.
func (m *tuiModel) paneWidths() (int, int) {
	cw := m.contentWidth()
	if m.session.App().FullScreen() {
		return 0, cw
	}
	left := max(cw/3, 20)
	return left, max(cw-left-1, 10)
}

func (m *tuiModel) layout() {
	left, right := m.paneWidths()
	h := max(m.height-2, 3)
	m.list.SetSize(left, h)
	m.editor.SetWidth(right - 2)
	m.editor.SetHeight(h - 2)
}

// currentContent is the text the editor pane shows for the selection: the
// buffer when it belongs to the current entry, otherwise stored content.
func (m *tuiModel) currentContent() (uint32, string, bool) {
	cur, ok := m.session.App().Current()
	if !ok {
		return 0, "", false
	}
	if b := m.session.Buffer(); b != nil && b.HasID && b.EntryID == cur.ID {
		return cur.ID, b.Draft.Content, true
	}
	return cur.ID, cur.Content, true
}

// sync mirrors session state into the list and textarea.
func (m *tuiModel) sync() {
	a := m.session.App()
	entries := a.ActiveEntries()
	items := make([]list.Item, len(entries))
	for i, e := range entries {
		items[i] = entryItem{entry: e}
	}
	m.list.SetItems(items)
	if idx := a.CurrentIndex(); idx >= 0 {
		m.list.Select(idx)
	}

	id, content, ok := m.currentContent()
	if !ok {
		m.shownID = 0
		m.editor.SetValue("")
		m.focus = focusList
		m.editor.Blur()
		return
	}
	if id != m.shownID || m.editor.Value() != content {
		m.editor.SetValue(content)
		m.shownID = id
	}
}

func (m tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.ready = true
		m.layout()
		return m, nil

	case editorFinishedMsg:
		cmd := m.session.Update(msg)
		m.sync()
		return m, cmd

	case tea.KeyMsg:
		// Popups intercept all keys
		if m.session.TopPopup() != nil {
			cmd := m.session.HandleKey(msg)
			m.sync()
			return m, cmd
		}
		if m.focus == focusEditor {
			return m.updateEditor(msg)
		}
		if key.Matches(msg, m.keys.FocusEditor) {
			if _, ok := m.session.App().Current(); !ok {
				return m, nil
			}
			m.focus = focusEditor
			return m, m.editor.Focus()
		}

		fullScreen := m.session.App().FullScreen()
		cmd := m.session.Exec(m.keys.listCommand(msg))
		if fullScreen != m.session.App().FullScreen() {
			m.layout()
		}
		m.sync()
		return m, cmd
	}

	if m.focus == focusEditor {
		var cmd tea.Cmd
		m.editor, cmd = m.editor.Update(msg)
		return m, cmd
	}
	return m, nil
}

func (m tuiModel) updateEditor(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.EditorBack):
		m.focus = focusList
		m.editor.Blur()
		return m, nil
	case key.Matches(msg, m.keys.EditorSave):
		m.session.Exec(CmdSaveEntryContent)
		m.sync()
		return m, nil
	case key.Matches(msg, m.keys.EditorRevert):
		m.session.Exec(CmdDiscardChanges)
		m.sync()
		return m, nil
	case msg.String() == "ctrl+c":
		cmd := m.session.Exec(CmdQuit)
		m.sync()
		return m, cmd
	}

	var cmd tea.Cmd
	m.editor, cmd = m.editor.Update(msg)
	m.session.SetBufferContent(m.editor.Value())
	return m, cmd
}

func (m tuiModel) statusLine() string {
	a := m.session.App()
	var parts []string
	if m.session.HasUnsaved() {
		parts = append(parts, m.cfg.Theme.DangerStyle().Render("● unsaved"))
	}
	parts = append(parts, fmt.Sprintf("%d entries", len(a.ActiveEntries())))
	if f := a.Filter(); !f.IsEmpty() {
		desc := "filter"
		if len(f.Tags) > 0 {
			desc += " #" + strings.Join(f.Tags, " #")
		}
		if f.Text != "" {
			desc += fmt.Sprintf(" %q", f.Text)
		}
		parts = append(parts, desc)
	}
	parts = append(parts, "sort: "+a.Sorter().String())
	hint := "? help • q quit"
	if m.focus == focusEditor {
		hint = "ctrl+s save • ctrl+r discard • esc back"
	}
	parts = append(parts, hint)
	return m.cfg.Theme.HelpStyle().Render(strings.Join(parts, "  "))
}

func (m tuiModel) contentPane(width int) string {
	pane := m.cfg.Theme.ViewPaneStyle().Width(width)
	if _, ok := m.session.App().Current(); !ok {
		return pane.Render(m.cfg.Theme.HelpStyle().Render("No entry selected.\n\n  n  create a new entry"))
	}
	if m.session.App().FullScreen() && m.focus != focusEditor {
		_, content, _ := m.currentContent()
		return pane.Render(RenderMarkdownWithStyle(content, width, m.cfg.Theme.MarkdownStyle))
	}
	border := m.cfg.Theme.BorderStyle()
	if m.focus == focusEditor {
		border = border.BorderForeground(m.cfg.Theme.Accent)
	}
	return border.Width(width - 2).Render(m.editor.View())
}

func (m tuiModel) View() string {
	if !m.ready {
		// No PaintScreen here: dimensions are unknown until the first WindowSizeMsg.
		return "Loading..."
	}

	if top := m.session.TopPopup(); top != nil {
		popup := top.View(m.cfg.Theme, m.contentWidth())
		placed := lipgloss.Place(m.width, m.height, lipgloss.Center, lipgloss.Center, popup,
			lipgloss.WithWhitespaceBackground(m.cfg.Theme.Background))
		return m.cfg.Theme.ClearLineEnds(placed)
	}

	left, right := m.paneWidths()
	var body string
	if left == 0 {
		body = m.contentPane(right)
	} else {
		body = lipgloss.JoinHorizontal(lipgloss.Top, m.list.View(), " ", m.contentPane(right))
	}
	result := body + "\n" + m.statusLine()
	return m.cfg.Theme.PaintScreen(result, m.width, m.height, m.contentWidth())
}

// RunTUI launches the interactive journal screen over s.
func RunTUI(s *Session, cfg TUIConfig) error {
	m := newTUIModel(s, cfg)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(s.ctx))
	if _, err := p.Run(); err != nil {
		return err
	}
	// A cancelled context ends the program without running the quit command.
	if !s.Quitting() {
		s.SaveUIState()
	}
	return nil
}
