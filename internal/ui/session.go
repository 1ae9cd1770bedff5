package ui

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"
	"regexp"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/editor"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
)

// Settings is the read-mostly configuration the session needs.
type Settings struct {
	Editor            string // resolved editor command
	AutoSave          bool
	TempFileExtension string
	ScrollPerPage     int
	ExportDir         string
}

// EditorRunner runs a prepared external editor session and reports its exit
// through done. The default hands the process to bubbletea.
type EditorRunner func(sess *editor.Session, done func(error) tea.Msg) tea.Cmd

func execEditor(sess *editor.Session, done func(error) tea.Msg) tea.Cmd {
	return tea.ExecProcess(sess.Cmd, done)
}

// effect is the deferred body of a command.
type effect func(s *Session) tea.Cmd

type confirmPolicy int

const (
	// policyUnsaved: Yes saves then runs, No discards then runs.
	policyUnsaved confirmPolicy = iota
	// policyDestructive: only Yes runs.
	policyDestructive
)

type pendingAction struct {
	origin Command
	policy confirmPolicy
	run    effect
}

// EngineState describes whether a confirmation is outstanding.
type EngineState struct {
	Awaiting bool
	Origin   Command
}

// editTarget says where external editor output lands.
type editTarget int

const (
	targetCurrentEntry editTarget = iota
	targetDraft
)

type editorFinishedMsg struct {
	target  editTarget
	entryID uint32
	content string
	ok      bool // false when the editor removed the file
	err     error
}

// Session drives every user command. It owns the edit buffer, the popup
// stack and the single pending confirmation slot.
type Session struct {
	ctx      context.Context
	app      *app.App
	settings Settings
	log      logging.Logger
	states   *app.StateStore

	buffer  *EditBuffer
	popups  popupStack
	pending *pendingAction

	runEditor EditorRunner
	quitting  bool
}

// NewSession creates a session over a loaded App. states may be nil, in
// which case UI state is not persisted.
func NewSession(ctx context.Context, a *app.App, settings Settings, log logging.Logger, states *app.StateStore) *Session {
	if settings.ScrollPerPage <= 0 {
		settings.ScrollPerPage = 5
	}
	return &Session{
		ctx:       ctx,
		app:       a,
		settings:  settings,
		log:       log,
		states:    states,
		runEditor: execEditor,
	}
}

// App exposes the application state.
func (s *Session) App() *app.App { return s.app }

// Buffer returns the live edit buffer, or nil.
func (s *Session) Buffer() *EditBuffer { return s.buffer }

// HasUnsaved reports whether an edit buffer exists.
func (s *Session) HasUnsaved() bool { return s.buffer != nil }

// State reports the engine state.
func (s *Session) State() EngineState {
	if s.pending == nil {
		return EngineState{}
	}
	return EngineState{Awaiting: true, Origin: s.pending.origin}
}

// TopPopup returns the popup receiving input, or nil.
func (s *Session) TopPopup() Popup { return s.popups.top() }

// Popups returns the stack bottom to top.
func (s *Session) Popups() []Popup { return s.popups.items }

// Quitting reports whether the quit effect ran.
func (s *Session) Quitting() bool { return s.quitting }

var commandEffects = map[Command]effect{
	CmdSelectPrevEntry: func(s *Session) tea.Cmd {
		s.app.SelectPrev(1)
		return nil
	},
	CmdSelectNextEntry: func(s *Session) tea.Cmd {
		s.app.SelectNext(1)
		return nil
	},
	CmdGoToTop: func(s *Session) tea.Cmd {
		s.app.SelectFirst()
		return nil
	},
	CmdGoToBottom: func(s *Session) tea.Cmd {
		s.app.SelectLast()
		return nil
	},
	CmdPageUp: func(s *Session) tea.Cmd {
		s.app.SelectPrev(s.settings.ScrollPerPage)
		return nil
	},
	CmdPageDown: func(s *Session) tea.Cmd {
		s.app.SelectNext(s.settings.ScrollPerPage)
		return nil
	},
	CmdCreateEntry:          (*Session).createEntry,
	CmdEditCurrentEntry:     (*Session).editCurrentEntry,
	CmdExportEntryContent:   (*Session).exportEntryContent,
	CmdEditInExternalEditor: (*Session).editCurrentInExternalEditor,
	CmdShowFilter: func(s *Session) tea.Cmd {
		s.popups.push(newFilterPopup(s.app.AllTags(), s.app.Filter()))
		return nil
	},
	CmdResetFilter: func(s *Session) tea.Cmd {
		s.app.ResetFilter()
		return nil
	},
	CmdCycleTagFilter: func(s *Session) tea.Cmd {
		s.app.CycleTagFilter()
		return nil
	},
	CmdShowFuzzyFind: func(s *Session) tea.Cmd {
		s.popups.push(newFuzzyPopup(s.app.ActiveEntries()))
		return nil
	},
	CmdShowSortOptions: func(s *Session) tea.Cmd {
		s.popups.push(newSortPopup(s.app.Sorter()))
		return nil
	},
	CmdToggleFullScreen: func(s *Session) tea.Cmd {
		s.app.ToggleFullScreen()
		return nil
	},
	CmdShowHelp: func(s *Session) tea.Cmd {
		s.popups.push(newHelpPopup(DefaultKeyMap()))
		return nil
	},
	CmdQuit: (*Session).quit,
}

// Exec runs cmd. Guarded commands are parked behind a Yes/No/Cancel box
// when the edit buffer is live. Commands are ignored while a popup is open.
func (s *Session) Exec(cmd Command) tea.Cmd {
	if s.popups.len() > 0 {
		return nil
	}

	switch cmd {
	case CmdSaveEntryContent:
		s.SaveBuffer()
		return nil
	case CmdDiscardChanges:
		s.DiscardBuffer()
		return nil
	case CmdDeleteCurrentEntry:
		if _, ok := s.app.CurrentID(); !ok {
			return nil
		}
		return s.confirm(cmd, "Delete entry", "Do you want to remove the current journal entry?", (*Session).deleteCurrentEntry)
	}

	run, ok := commandEffects[cmd]
	if !ok {
		return nil
	}
	if cmd.Guarded() {
		return s.guard(cmd, run)
	}
	return run(s)
}

// guard runs fn now when nothing is unsaved; otherwise it stores fn as the
// pending continuation and asks the user.
func (s *Session) guard(origin Command, fn effect) tea.Cmd {
	if !s.HasUnsaved() {
		return fn(s)
	}
	s.pending = &pendingAction{origin: origin, policy: policyUnsaved, run: fn}
	s.popups.push(newMsgBox(MsgQuestion, "Unsaved changes",
		"Do you want to save the changes to the current entry?", ActionsYesNoCancel, origin))
	return nil
}

// confirm asks a Yes/No question and runs fn only on Yes.
func (s *Session) confirm(origin Command, title, text string, fn effect) tea.Cmd {
	s.pending = &pendingAction{origin: origin, policy: policyDestructive, run: fn}
	s.popups.push(newMsgBox(MsgQuestion, title, text, ActionsYesNo, origin))
	return nil
}

// resolve resumes the pending continuation with the user's answer. The
// engine is idle again afterwards whatever the outcome.
func (s *Session) resolve(result MsgBoxResult) tea.Cmd {
	p := s.pending
	s.pending = nil
	if p == nil {
		return nil
	}
	s.log.Debug(s.ctx, "confirmation resolved", "origin", p.origin.String(), "result", result.String())

	if p.policy == policyDestructive {
		if result == ResultYes {
			return p.run(s)
		}
		return nil
	}

	switch result {
	case ResultYes:
		if err := s.SaveBuffer(); err != nil {
			return nil
		}
		return p.run(s)
	case ResultNo:
		s.DiscardBuffer()
		return p.run(s)
	default:
		return nil
	}
}

// SaveBuffer writes the edit buffer through the add or update path. On
// failure the buffer is kept and an error box is shown.
func (s *Session) SaveBuffer() error {
	b := s.buffer
	if b == nil {
		return nil
	}

	var saved entry.Entry
	var err error
	if b.IsNew() {
		saved, err = s.app.AddEntry(s.ctx, b.Draft)
	} else {
		saved, err = s.app.UpdateEntry(s.ctx, b.Draft.WithID(b.EntryID))
	}
	if err != nil {
		s.showError(err)
		return err
	}

	s.buffer = nil
	s.popups.remove(PopupEntry)
	s.app.SetCurrent(saved.ID)
	return nil
}

// DiscardBuffer drops the edit buffer and any entry popup editing it.
func (s *Session) DiscardBuffer() {
	s.buffer = nil
	s.popups.remove(PopupEntry)
}

// SetBufferContent records editor pane content for the current entry,
// opening a buffer on the first change.
func (s *Session) SetBufferContent(content string) {
	if s.buffer == nil {
		cur, ok := s.app.Current()
		if !ok || cur.Content == content {
			return
		}
		s.buffer = bufferForEntry(cur)
	}
	s.buffer.Draft.Content = content
}

func (s *Session) showError(err error) {
	title := "Error"
	switch {
	case storage.IsValidation(err):
		title = "Invalid entry"
	case errors.Is(err, storage.ErrStorage):
		title = "Storage error"
		s.log.Error(s.ctx, "storage failure", "error", err)
	default:
		s.log.Error(s.ctx, "command failed", "error", err)
	}
	s.popups.push(newMsgBox(MsgError, title, err.Error(), ActionsOk, CmdNone))
}

func (s *Session) showInfo(title, text string) {
	s.popups.push(newMsgBox(MsgInfo, title, text, ActionsOk, CmdNone))
}

func (s *Session) createEntry() tea.Cmd {
	s.buffer = bufferForDraft(entry.NewDraft(time.Now(), "", nil))
	s.popups.push(newEntryPopup(s.buffer))
	return nil
}

func (s *Session) editCurrentEntry() tea.Cmd {
	cur, ok := s.app.Current()
	if !ok {
		return nil
	}
	s.buffer = bufferForEntry(cur)
	s.popups.push(newEntryPopup(s.buffer))
	return nil
}

func (s *Session) deleteCurrentEntry() tea.Cmd {
	id, ok := s.app.CurrentID()
	if !ok {
		return nil
	}
	if err := s.app.DeleteEntry(s.ctx, id); err != nil {
		s.showError(err)
		return nil
	}
	if s.buffer != nil && s.buffer.HasID && s.buffer.EntryID == id {
		s.buffer = nil
	}
	return nil
}

var unsafeFileChars = regexp.MustCompile(`[^A-Za-z0-9._-]+`)

func exportFileName(e entry.Entry) string {
	name := strings.Trim(unsafeFileChars.ReplaceAllString(e.Title, "_"), "_")
	if name == "" {
		name = fmt.Sprintf("entry-%d", e.ID)
	}
	return name + ".txt"
}

func (s *Session) exportEntryContent() tea.Cmd {
	cur, ok := s.app.Current()
	if !ok {
		return nil
	}
	path := filepath.Join(s.settings.ExportDir, exportFileName(cur))
	s.popups.push(newExportPopup(cur.ID, path))
	return nil
}

func (s *Session) editCurrentInExternalEditor() tea.Cmd {
	cur, ok := s.app.Current()
	if !ok {
		return nil
	}
	return s.openExternalEditor(targetCurrentEntry, cur.ID, cur.Content)
}

// openExternalEditor writes content to the temp file and hands the editor
// to the runner. The temp file is removed when the editor exits, whether it
// succeeded or not.
func (s *Session) openExternalEditor(target editTarget, id uint32, content string) tea.Cmd {
	sess, err := editor.Prepare(s.settings.Editor, content, s.settings.TempFileExtension)
	if err != nil {
		s.showError(fmt.Errorf("preparing external editor: %w", err))
		return nil
	}

	return s.runEditor(sess, func(err error) tea.Msg {
		defer sess.Cleanup()
		msg := editorFinishedMsg{target: target, entryID: id}
		if err != nil {
			msg.err = err
			return msg
		}
		msg.content, msg.ok, msg.err = sess.Read()
		return msg
	})
}

func (s *Session) handleEditorFinished(msg editorFinishedMsg) tea.Cmd {
	if msg.err != nil {
		s.showError(fmt.Errorf("external editor: %w", msg.err))
		return nil
	}
	if !msg.ok {
		return nil
	}

	switch msg.target {
	case targetCurrentEntry:
		if s.buffer == nil {
			cur, ok := s.app.Get(msg.entryID)
			if !ok || cur.Content == msg.content {
				return nil
			}
			s.buffer = bufferForEntry(cur)
		}
		s.buffer.Draft.Content = msg.content
	case targetDraft:
		if s.buffer == nil {
			return nil
		}
		s.buffer.Draft.Content = msg.content
	}

	if s.settings.AutoSave {
		s.SaveBuffer()
	}
	return nil
}

func (s *Session) quit() tea.Cmd {
	s.quitting = true
	s.SaveUIState()
	return tea.Quit
}

// SaveUIState persists sort and full-screen settings. Failures are logged.
func (s *Session) SaveUIState() {
	if s.states == nil {
		return
	}
	if err := s.states.Save(s.app.UIState()); err != nil {
		s.log.Error(s.ctx, "saving UI state", "error", err)
	}
}

// Update handles messages produced by session commands.
func (s *Session) Update(msg tea.Msg) tea.Cmd {
	switch msg := msg.(type) {
	case editorFinishedMsg:
		return s.handleEditorFinished(msg)
	case tea.KeyMsg:
		return s.HandleKey(msg)
	}
	return nil
}

// HandleKey routes a key to the top popup and acts on the outcome. It
// returns nil without effect when no popup is open.
func (s *Session) HandleKey(msg tea.KeyMsg) tea.Cmd {
	top := s.popups.top()
	if top == nil {
		return nil
	}

	outcome, cmd := top.Update(msg)
	switch outcome {
	case outcomeNone:
		return cmd
	case outcomeCancel:
		s.popups.pop()
		if top.Kind() == PopupEntry {
			s.buffer = nil
		}
		return cmd
	case outcomeExternalEdit:
		return s.draftExternalEdit(top)
	}

	switch p := top.(type) {
	case *MsgBox:
		s.popups.pop()
		if p.Origin != CmdNone && s.pending != nil && s.pending.origin == p.Origin {
			return s.resolve(p.Result())
		}
	case *EntryPopup:
		if err := p.apply(); err != nil {
			s.showError(storage.Validation(err))
			return nil
		}
		s.SaveBuffer()
	case *FilterPopup:
		s.popups.pop()
		s.app.SetFilter(p.Filter())
	case *SortPopup:
		s.popups.pop()
		s.app.SetSorter(p.Sorter())
	case *FuzzyPopup:
		s.popups.pop()
		if id, ok := p.Selected(); ok {
			s.app.SetCurrent(id)
		}
	case *ExportPopup:
		path := p.Path()
		if path == "" {
			return nil
		}
		if err := s.app.ExportEntryContent(s.ctx, p.entryID, path); err != nil {
			s.showError(err)
			return nil
		}
		s.popups.pop()
		s.showInfo("Export", "Entry content exported to "+path)
	default:
		s.popups.pop()
	}
	return cmd
}

// draftExternalEdit opens the entry popup's draft in the external editor.
// It is not guarded: it edits the live buffer.
func (s *Session) draftExternalEdit(top Popup) tea.Cmd {
	p, ok := top.(*EntryPopup)
	if !ok || s.buffer == nil {
		return nil
	}
	if err := p.apply(); err != nil {
		s.showError(storage.Validation(err))
		return nil
	}
	return s.openExternalEditor(targetDraft, s.buffer.EntryID, s.buffer.Draft.Content)
}
