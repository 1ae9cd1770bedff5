package ui

// Command is a user action the session can execute.
type Command int

const (
	CmdNone Command = iota
	CmdSelectPrevEntry
	CmdSelectNextEntry
	CmdGoToTop
	CmdGoToBottom
	CmdPageUp
	CmdPageDown
	CmdCreateEntry
	CmdEditCurrentEntry
	CmdDeleteCurrentEntry
	CmdExportEntryContent
	CmdEditInExternalEditor
	CmdShowFilter
	CmdResetFilter
	CmdCycleTagFilter
	CmdShowFuzzyFind
	CmdShowSortOptions
	CmdToggleFullScreen
	CmdSaveEntryContent
	CmdDiscardChanges
	CmdShowHelp
	CmdQuit
)

var commandNames = map[Command]string{
	CmdNone:                 "none",
	CmdSelectPrevEntry:      "select-prev-entry",
	CmdSelectNextEntry:      "select-next-entry",
	CmdGoToTop:              "go-to-top",
	CmdGoToBottom:           "go-to-bottom",
	CmdPageUp:               "page-up",
	CmdPageDown:             "page-down",
	CmdCreateEntry:          "create-entry",
	CmdEditCurrentEntry:     "edit-current-entry",
	CmdDeleteCurrentEntry:   "delete-current-entry",
	CmdExportEntryContent:   "export-entry-content",
	CmdEditInExternalEditor: "edit-in-external-editor",
	CmdShowFilter:           "show-filter",
	CmdResetFilter:          "reset-filter",
	CmdCycleTagFilter:       "cycle-tag-filter",
	CmdShowFuzzyFind:        "show-fuzzy-find",
	CmdShowSortOptions:      "show-sort-options",
	CmdToggleFullScreen:     "toggle-full-screen",
	CmdSaveEntryContent:     "save-entry-content",
	CmdDiscardChanges:       "discard-changes",
	CmdShowHelp:             "show-help",
	CmdQuit:                 "quit",
}

func (c Command) String() string {
	if name, ok := commandNames[c]; ok {
		return name
	}
	return "unknown"
}

// guardedCommands may discard the edit buffer and therefore ask first.
// Every command that changes the selection is included so a buffer never
// outlives the entry it was opened for.
var guardedCommands = map[Command]bool{
	CmdSelectPrevEntry:      true,
	CmdSelectNextEntry:      true,
	CmdGoToTop:              true,
	CmdGoToBottom:           true,
	CmdPageUp:               true,
	CmdPageDown:             true,
	CmdCreateEntry:          true,
	CmdEditCurrentEntry:     true,
	CmdExportEntryContent:   true,
	CmdEditInExternalEditor: true,
	CmdShowFilter:           true,
	CmdCycleTagFilter:       true,
	CmdShowFuzzyFind:        true,
	CmdShowSortOptions:      true,
	CmdQuit:                 true,
}

// Guarded reports whether c is gated on the unsaved-changes check.
func (c Command) Guarded() bool {
	return guardedCommands[c]
}
