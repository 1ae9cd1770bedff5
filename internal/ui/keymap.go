package ui

import (
	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
)

// KeyMap binds keys to commands in the entry list. Editor pane keys are
// separate because the textarea consumes printable input.
type KeyMap struct {
	Prev         key.Binding
	Next         key.Binding
	Top          key.Binding
	Bottom       key.Binding
	PageUp       key.Binding
	PageDown     key.Binding
	Create       key.Binding
	Edit         key.Binding
	Delete       key.Binding
	Export       key.Binding
	External     key.Binding
	Filter       key.Binding
	ResetFilter  key.Binding
	CycleTag     key.Binding
	FuzzyFind    key.Binding
	Sort         key.Binding
	FullScreen   key.Binding
	FocusEditor  key.Binding
	Help         key.Binding
	Quit         key.Binding
	EditorSave   key.Binding
	EditorRevert key.Binding
	EditorBack   key.Binding
}

// DefaultKeyMap returns the built-in bindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Prev:         key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("↑/k", "previous entry")),
		Next:         key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("↓/j", "next entry")),
		Top:          key.NewBinding(key.WithKeys("home", "g"), key.WithHelp("g/home", "first entry")),
		Bottom:       key.NewBinding(key.WithKeys("end", "G"), key.WithHelp("G/end", "last entry")),
		PageUp:       key.NewBinding(key.WithKeys("pgup"), key.WithHelp("pgup", "page up")),
		PageDown:     key.NewBinding(key.WithKeys("pgdown"), key.WithHelp("pgdn", "page down")),
		Create:       key.NewBinding(key.WithKeys("n"), key.WithHelp("n", "new entry")),
		Edit:         key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit title/date/tags")),
		Delete:       key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete entry")),
		Export:       key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "export content")),
		External:     key.NewBinding(key.WithKeys("o"), key.WithHelp("o", "open in $EDITOR")),
		Filter:       key.NewBinding(key.WithKeys("f"), key.WithHelp("f", "filter")),
		ResetFilter:  key.NewBinding(key.WithKeys("r"), key.WithHelp("r", "reset filter")),
		CycleTag:     key.NewBinding(key.WithKeys("t"), key.WithHelp("t", "cycle tag filter")),
		FuzzyFind:    key.NewBinding(key.WithKeys("/"), key.WithHelp("/", "fuzzy find")),
		Sort:         key.NewBinding(key.WithKeys("s"), key.WithHelp("s", "sort")),
		FullScreen:   key.NewBinding(key.WithKeys("z"), key.WithHelp("z", "full screen")),
		FocusEditor:  key.NewBinding(key.WithKeys("tab", "enter"), key.WithHelp("tab", "edit content")),
		Help:         key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),
		Quit:         key.NewBinding(key.WithKeys("q", "ctrl+c"), key.WithHelp("q", "quit")),
		EditorSave:   key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save content")),
		EditorRevert: key.NewBinding(key.WithKeys("ctrl+r"), key.WithHelp("ctrl+r", "discard changes")),
		EditorBack:   key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "back to list")),
	}
}

// ShortHelp implements help.KeyMap.
func (k KeyMap) ShortHelp() []key.Binding {
	return []key.Binding{k.Create, k.Edit, k.FocusEditor, k.Filter, k.Help, k.Quit}
}

// FullHelp implements help.KeyMap.
func (k KeyMap) FullHelp() [][]key.Binding {
	return [][]key.Binding{
		{k.Prev, k.Next, k.Top, k.Bottom, k.PageUp, k.PageDown, k.FuzzyFind},
		{k.Create, k.Edit, k.Delete, k.Export, k.External, k.FocusEditor},
		{k.Filter, k.ResetFilter, k.CycleTag, k.Sort, k.FullScreen},
		{k.EditorSave, k.EditorRevert, k.EditorBack, k.Help, k.Quit},
	}
}

// listCommand maps a key pressed in the entry list to a command.
func (k KeyMap) listCommand(msg tea.KeyMsg) Command {
	bindings := []struct {
		b   key.Binding
		cmd Command
	}{
		{k.Prev, CmdSelectPrevEntry},
		{k.Next, CmdSelectNextEntry},
		{k.Top, CmdGoToTop},
		{k.Bottom, CmdGoToBottom},
		{k.PageUp, CmdPageUp},
		{k.PageDown, CmdPageDown},
		{k.Create, CmdCreateEntry},
		{k.Edit, CmdEditCurrentEntry},
		{k.Delete, CmdDeleteCurrentEntry},
		{k.Export, CmdExportEntryContent},
		{k.External, CmdEditInExternalEditor},
		{k.Filter, CmdShowFilter},
		{k.ResetFilter, CmdResetFilter},
		{k.CycleTag, CmdCycleTagFilter},
		{k.FuzzyFind, CmdShowFuzzyFind},
		{k.Sort, CmdShowSortOptions},
		{k.FullScreen, CmdToggleFullScreen},
		{k.Help, CmdShowHelp},
		{k.Quit, CmdQuit},
		{k.EditorSave, CmdSaveEntryContent},
	}
	for _, kb := range bindings {
		if key.Matches(msg, kb.b) {
			return kb.cmd
		}
	}
	return CmdNone
}
