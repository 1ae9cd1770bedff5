package ui

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/chris-regnier/journalctl/internal/app"
	"github.com/chris-regnier/journalctl/internal/editor"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/storage/memory"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// spyProvider counts writes and can fail them on demand.
type spyProvider struct {
	storage.Provider
	adds, updates, removes int
	failWrites             error
}

func (p *spyProvider) AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	p.adds++
	if p.failWrites != nil {
		return entry.Entry{}, p.failWrites
	}
	return p.Provider.AddEntry(ctx, d)
}

func (p *spyProvider) UpdateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	p.updates++
	if p.failWrites != nil {
		return entry.Entry{}, p.failWrites
	}
	return p.Provider.UpdateEntry(ctx, e)
}

func (p *spyProvider) RemoveEntry(ctx context.Context, id uint32) error {
	p.removes++
	if p.failWrites != nil {
		return p.failWrites
	}
	return p.Provider.RemoveEntry(ctx, id)
}

func (p *spyProvider) writes() int { return p.adds + p.updates + p.removes }

func day(d int) time.Time {
	return time.Date(2024, time.March, d, 9, 0, 0, 0, time.UTC)
}

// seedEntries returns ids 1..6 dated on consecutive days, so the default
// newest-first view is 6,5,4,3,2,1.
func seedEntries() []entry.Entry {
	out := make([]entry.Entry, 0, 6)
	for i := 1; i <= 6; i++ {
		out = append(out, entry.Entry{
			ID:      uint32(i),
			Date:    day(i),
			Title:   fmt.Sprintf("Entry %d", i),
			Content: fmt.Sprintf("content %d", i),
			Tags:    []string{},
		})
	}
	out[1].Tags = []string{"work"}
	out[3].Tags = []string{"home", "work"}
	return out
}

type fakeEditor struct {
	write   string
	remove  bool
	prepped []string
}

func (f *fakeEditor) run(sess *editor.Session, done func(error) tea.Msg) tea.Cmd {
	f.prepped = append(f.prepped, sess.Path)
	return func() tea.Msg {
		if f.remove {
			os.Remove(sess.Path)
		} else {
			os.WriteFile(sess.Path, []byte(f.write), 0600)
		}
		return done(nil)
	}
}

func newTestSession(t *testing.T, settings Settings, seed ...entry.Entry) (*Session, *spyProvider, *fakeEditor) {
	t.Helper()
	t.Setenv("TMPDIR", t.TempDir())

	spy := &spyProvider{Provider: memory.NewStore(seed...)}
	a := app.New(spy, logging.Discard(), app.DefaultUIState())
	require.NoError(t, a.Load(context.Background()))

	if settings.Editor == "" {
		settings.Editor = "true"
	}
	if settings.ExportDir == "" {
		settings.ExportDir = t.TempDir()
	}
	if settings.ScrollPerPage == 0 {
		settings.ScrollPerPage = 2
	}
	s := NewSession(context.Background(), a, settings, logging.Discard(), nil)
	fe := &fakeEditor{write: "from editor"}
	s.runEditor = fe.run
	return s, spy, fe
}

func runes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

var (
	keyEnter = tea.KeyMsg{Type: tea.KeyEnter}
	keyEsc   = tea.KeyMsg{Type: tea.KeyEsc}
	keyCtrlE = tea.KeyMsg{Type: tea.KeyCtrlE}
	keyDown  = tea.KeyMsg{Type: tea.KeyDown}
	keySpace = tea.KeyMsg{Type: tea.KeySpace, Runes: []rune{' '}}
)

func currentID(t *testing.T, s *Session) uint32 {
	t.Helper()
	id, ok := s.App().CurrentID()
	require.True(t, ok, "expected a current entry")
	return id
}

func storedEntry(t *testing.T, p storage.Provider, id uint32) (entry.Entry, bool) {
	t.Helper()
	entries, err := p.LoadAllEntries(context.Background())
	require.NoError(t, err)
	for _, e := range entries {
		if e.ID == id {
			return e, true
		}
	}
	return entry.Entry{}, false
}

func topMsgBox(t *testing.T, s *Session) *MsgBox {
	t.Helper()
	box, ok := s.TopPopup().(*MsgBox)
	require.True(t, ok, "expected a message box on top, got %T", s.TopPopup())
	return box
}

// finish runs the command returned by the session and feeds its message back.
func finish(s *Session, cmd tea.Cmd) tea.Cmd {
	if cmd == nil {
		return nil
	}
	return s.Update(cmd())
}

func allGuarded() []Command {
	var out []Command
	for c := range commandNames {
		if c.Guarded() {
			out = append(out, c)
		}
	}
	return out
}

func TestGuardedCommandsRunWithoutPromptWhenClean(t *testing.T) {
	for _, cmd := range allGuarded() {
		t.Run(cmd.String(), func(t *testing.T) {
			s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

			s.Exec(cmd)

			assert.False(t, s.State().Awaiting)
			for _, p := range s.Popups() {
				assert.NotEqual(t, PopupMsgBox, p.Kind(), "no confirmation expected")
			}
			assert.Zero(t, spy.writes())
		})
	}
}

// guardedEffects checks, per guarded command, that the command itself ran
// once the confirmation resolved. The session starts on entry 4 of the
// newest-first view 6,5,4,3,2,1 with a page size of 2.
var guardedEffects = map[Command]func(t *testing.T, s *Session, fe *fakeEditor, ret tea.Cmd){
	CmdSelectPrevEntry: expectCurrent(5),
	CmdSelectNextEntry: expectCurrent(3),
	CmdGoToTop:         expectCurrent(6),
	CmdGoToBottom:      expectCurrent(1),
	CmdPageUp:          expectCurrent(6),
	CmdPageDown:        expectCurrent(2),
	CmdCreateEntry: func(t *testing.T, s *Session, _ *fakeEditor, _ tea.Cmd) {
		expectTop(PopupEntry)(t, s, nil, nil)
		require.NotNil(t, s.Buffer())
		assert.False(t, s.Buffer().HasID, "buffer holds a new draft")
	},
	CmdEditCurrentEntry: func(t *testing.T, s *Session, _ *fakeEditor, _ tea.Cmd) {
		expectTop(PopupEntry)(t, s, nil, nil)
		require.NotNil(t, s.Buffer())
		assert.Equal(t, uint32(4), s.Buffer().EntryID)
	},
	CmdExportEntryContent: expectTop(PopupExport),
	CmdEditInExternalEditor: func(t *testing.T, s *Session, fe *fakeEditor, ret tea.Cmd) {
		assert.NotNil(t, ret, "editor command returned")
		assert.Len(t, fe.prepped, 1)
	},
	CmdShowFilter:      expectTop(PopupFilter),
	CmdShowFuzzyFind:   expectTop(PopupFuzzyFind),
	CmdShowSortOptions: expectTop(PopupSort),
	CmdCycleTagFilter: func(t *testing.T, s *Session, _ *fakeEditor, _ tea.Cmd) {
		assert.Equal(t, []string{"home"}, s.App().Filter().Tags)
	},
	CmdQuit: func(t *testing.T, s *Session, _ *fakeEditor, ret tea.Cmd) {
		assert.True(t, s.Quitting())
		assert.NotNil(t, ret)
	},
}

func expectCurrent(id uint32) func(*testing.T, *Session, *fakeEditor, tea.Cmd) {
	return func(t *testing.T, s *Session, _ *fakeEditor, _ tea.Cmd) {
		t.Helper()
		assert.Equal(t, id, currentID(t, s))
	}
}

func expectTop(kind PopupKind) func(*testing.T, *Session, *fakeEditor, tea.Cmd) {
	return func(t *testing.T, s *Session, _ *fakeEditor, _ tea.Cmd) {
		t.Helper()
		top := s.TopPopup()
		require.NotNil(t, top, "expected a popup")
		assert.Equal(t, kind, top.Kind())
	}
}

func TestEveryGuardedCommandHasAnEffectCheck(t *testing.T) {
	for _, cmd := range allGuarded() {
		assert.Contains(t, guardedEffects, cmd, cmd.String())
	}
}

func TestGuardedCommandsWithUnsavedChanges(t *testing.T) {
	answers := []struct {
		key    string
		result MsgBoxResult
	}{
		{"y", ResultYes},
		{"n", ResultNo},
		{"c", ResultCancel},
	}

	for _, cmd := range allGuarded() {
		for _, ans := range answers {
			t.Run(cmd.String()+"/"+ans.result.String(), func(t *testing.T) {
				s, spy, fe := newTestSession(t, Settings{}, seedEntries()...)
				require.True(t, s.App().SetCurrent(4))
				s.SetBufferContent("changed")
				require.True(t, s.HasUnsaved())

				assert.Nil(t, s.Exec(cmd))
				assert.Equal(t, EngineState{Awaiting: true, Origin: cmd}, s.State())
				box := topMsgBox(t, s)
				assert.Equal(t, ActionsYesNoCancel, box.Actions)
				assert.Equal(t, cmd, box.Origin)

				ret := s.HandleKey(runes(ans.key))

				assert.False(t, s.State().Awaiting, "engine returns to idle")
				stored, ok := storedEntry(t, spy.Provider, 4)
				require.True(t, ok)

				switch ans.result {
				case ResultYes:
					assert.Equal(t, 1, spy.updates)
					assert.Equal(t, "changed", stored.Content)
					guardedEffects[cmd](t, s, fe, ret)
				case ResultNo:
					assert.Zero(t, spy.writes())
					assert.Equal(t, "content 4", stored.Content)
					guardedEffects[cmd](t, s, fe, ret)
				case ResultCancel:
					assert.Nil(t, ret)
					assert.Zero(t, spy.writes())
					assert.Equal(t, "content 4", stored.Content)
					require.NotNil(t, s.Buffer())
					assert.Equal(t, "changed", s.Buffer().Draft.Content)
					assert.Equal(t, uint32(4), currentID(t, s))
					assert.Empty(t, s.Popups())
					assert.False(t, s.Quitting())
					assert.Empty(t, fe.prepped)
				}
			})
		}
	}
}

func TestNextEntryDiscardsWithoutWriting(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)
	require.True(t, s.App().SetCurrent(5))
	s.SetBufferContent("draft text")

	s.Exec(CmdSelectNextEntry)
	s.HandleKey(runes("n"))

	assert.Zero(t, spy.writes())
	assert.False(t, s.HasUnsaved())
	assert.Equal(t, uint32(4), currentID(t, s))
	stored, _ := storedEntry(t, spy.Provider, 5)
	assert.Equal(t, "content 5", stored.Content)
}

func TestNextEntrySavesOnYes(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)
	require.True(t, s.App().SetCurrent(5))
	s.SetBufferContent("draft text")

	s.Exec(CmdSelectNextEntry)
	s.HandleKey(runes("y"))

	assert.Equal(t, 1, spy.updates)
	assert.Equal(t, uint32(4), currentID(t, s))
	stored, _ := storedEntry(t, spy.Provider, 5)
	assert.Equal(t, "draft text", stored.Content)
}

func TestSaveFailureKeepsBufferAndAbandonsCommand(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)
	s.SetBufferContent("changed")
	spy.failWrites = fmt.Errorf("%w: disk full", storage.ErrStorage)

	s.Exec(CmdSelectNextEntry)
	s.HandleKey(runes("y"))

	assert.Equal(t, 1, spy.updates)
	assert.False(t, s.State().Awaiting)
	require.NotNil(t, s.Buffer())
	assert.Equal(t, "changed", s.Buffer().Draft.Content)
	assert.Equal(t, uint32(6), currentID(t, s), "selection must not move")

	box := topMsgBox(t, s)
	assert.Equal(t, MsgError, box.Type)
	assert.Equal(t, ActionsOk, box.Actions)

	s.HandleKey(keyEnter)
	assert.Empty(t, s.Popups())
	assert.True(t, s.HasUnsaved())
}

func TestSaveAndDiscardCommands(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdSaveEntryContent)
	assert.Zero(t, spy.writes(), "nothing to save")

	s.SetBufferContent("changed")
	s.Exec(CmdDiscardChanges)
	assert.False(t, s.HasUnsaved())
	assert.Zero(t, spy.writes())

	s.SetBufferContent("changed again")
	s.Exec(CmdSaveEntryContent)
	assert.False(t, s.HasUnsaved())
	assert.Equal(t, 1, spy.updates)
	e, _ := s.App().Get(6)
	assert.Equal(t, "changed again", e.Content)
}

func TestSetBufferContentIgnoresUnchangedText(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)
	s.SetBufferContent("content 6")
	assert.False(t, s.HasUnsaved())
}

func TestDeleteAsksAndRemovesOnYes(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdDeleteCurrentEntry)
	box := topMsgBox(t, s)
	assert.Equal(t, ActionsYesNo, box.Actions)
	s.HandleKey(runes("n"))
	assert.Zero(t, spy.removes)
	assert.Len(t, s.App().Entries(), 6)

	s.Exec(CmdDeleteCurrentEntry)
	s.HandleKey(runes("y"))
	assert.Equal(t, 1, spy.removes)
	_, ok := s.App().Get(6)
	assert.False(t, ok)
	assert.Equal(t, uint32(5), currentID(t, s))
}

func TestDeleteDropsBufferOfDeletedEntry(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)
	s.SetBufferContent("changed")

	s.Exec(CmdDeleteCurrentEntry)
	s.HandleKey(runes("y"))

	assert.False(t, s.HasUnsaved())
}

func TestDeleteWithoutCurrentEntryDoesNothing(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{})
	s.Exec(CmdDeleteCurrentEntry)
	assert.Empty(t, s.Popups())
	assert.False(t, s.State().Awaiting)
}

func TestCreateEntryThroughPopup(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdCreateEntry)
	p, ok := s.TopPopup().(*EntryPopup)
	require.True(t, ok)
	assert.True(t, p.IsNew())
	assert.True(t, s.HasUnsaved())

	s.HandleKey(runes("Holiday"))
	s.HandleKey(keyDown)
	s.HandleKey(keyDown)
	s.HandleKey(runes("travel, family"))
	s.HandleKey(keyEnter)

	assert.Equal(t, 1, spy.adds)
	assert.False(t, s.HasUnsaved())
	assert.Empty(t, s.Popups())
	cur, ok := s.App().Current()
	require.True(t, ok)
	assert.Equal(t, "Holiday", cur.Title)
	assert.Equal(t, []string{"travel", "family"}, cur.Tags)
}

func TestCreateEntryEmptyTitleShowsValidationError(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdCreateEntry)
	s.HandleKey(keyEnter)

	assert.Equal(t, 1, spy.adds)
	box := topMsgBox(t, s)
	assert.Equal(t, "Invalid entry", box.Title)
	assert.True(t, s.HasUnsaved(), "draft survives the failed save")

	s.HandleKey(keyEnter)
	_, ok := s.TopPopup().(*EntryPopup)
	assert.True(t, ok, "entry popup stays open for correction")
}

func TestCreateEntryInvalidDate(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdCreateEntry)
	s.HandleKey(runes("Title"))
	s.HandleKey(keyDown)
	s.HandleKey(tea.KeyMsg{Type: tea.KeyBackspace})
	s.HandleKey(keyEnter)

	assert.Zero(t, spy.adds)
	box := topMsgBox(t, s)
	assert.Equal(t, MsgError, box.Type)
}

func TestCancelEntryPopupDiscardsDraft(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdCreateEntry)
	s.HandleKey(runes("Never saved"))
	s.HandleKey(keyEsc)

	assert.False(t, s.HasUnsaved())
	assert.Empty(t, s.Popups())
	assert.Zero(t, spy.writes())
}

func TestEditCurrentEntryUpdatesMetadata(t *testing.T) {
	s, spy, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdEditCurrentEntry)
	p, ok := s.TopPopup().(*EntryPopup)
	require.True(t, ok)
	assert.False(t, p.IsNew())

	s.HandleKey(runes(" revised"))
	s.HandleKey(keyEnter)

	assert.Equal(t, 1, spy.updates)
	e, _ := s.App().Get(6)
	assert.Equal(t, "Entry 6 revised", e.Title)
	assert.Equal(t, day(6), e.Date, "unchanged date keeps its time of day")
	assert.Equal(t, "content 6", e.Content)
}

func TestDraftExternalEditWithAutoSave(t *testing.T) {
	s, spy, fe := newTestSession(t, Settings{AutoSave: true}, seedEntries()...)
	fe.write = "written in editor"

	s.Exec(CmdCreateEntry)
	s.HandleKey(runes("From editor"))
	cmd := s.HandleKey(keyCtrlE)
	require.NotNil(t, cmd)
	assert.Zero(t, spy.adds, "nothing saved before the editor returns")

	finish(s, cmd)

	assert.Equal(t, 1, spy.adds)
	assert.False(t, s.HasUnsaved())
	assert.Empty(t, s.Popups())
	cur, ok := s.App().Current()
	require.True(t, ok)
	assert.Equal(t, "From editor", cur.Title)
	assert.Equal(t, "written in editor", cur.Content)

	require.Len(t, fe.prepped, 1)
	_, err := os.Stat(fe.prepped[0])
	assert.True(t, errors.Is(err, os.ErrNotExist), "temp file removed after the editor exits")
}

func TestDraftExternalEditWithoutAutoSave(t *testing.T) {
	s, spy, fe := newTestSession(t, Settings{}, seedEntries()...)
	fe.write = "body"

	s.Exec(CmdCreateEntry)
	s.HandleKey(runes("Manual"))
	finish(s, s.HandleKey(keyCtrlE))

	assert.Zero(t, spy.adds)
	require.NotNil(t, s.Buffer())
	assert.Equal(t, "body", s.Buffer().Draft.Content)
	_, ok := s.TopPopup().(*EntryPopup)
	require.True(t, ok)

	s.HandleKey(keyEnter)
	assert.Equal(t, 1, spy.adds)
	cur, _ := s.App().Current()
	assert.Equal(t, "body", cur.Content)
}

func TestExternalEditorOnCurrentEntry(t *testing.T) {
	t.Run("changed content opens buffer", func(t *testing.T) {
		s, spy, fe := newTestSession(t, Settings{}, seedEntries()...)
		fe.write = "rewritten"

		finish(s, s.Exec(CmdEditInExternalEditor))

		require.NotNil(t, s.Buffer())
		assert.Equal(t, uint32(6), s.Buffer().EntryID)
		assert.Equal(t, "rewritten", s.Buffer().Draft.Content)
		assert.Zero(t, spy.writes())
	})

	t.Run("auto save writes immediately", func(t *testing.T) {
		s, spy, fe := newTestSession(t, Settings{AutoSave: true}, seedEntries()...)
		fe.write = "rewritten"

		finish(s, s.Exec(CmdEditInExternalEditor))

		assert.Equal(t, 1, spy.updates)
		assert.False(t, s.HasUnsaved())
		e, _ := s.App().Get(6)
		assert.Equal(t, "rewritten", e.Content)
	})

	t.Run("unchanged content leaves no buffer", func(t *testing.T) {
		s, _, fe := newTestSession(t, Settings{}, seedEntries()...)
		fe.write = "content 6"

		finish(s, s.Exec(CmdEditInExternalEditor))
		assert.False(t, s.HasUnsaved())
	})

	t.Run("removed file is ignored", func(t *testing.T) {
		s, _, fe := newTestSession(t, Settings{AutoSave: true}, seedEntries()...)
		fe.remove = true

		finish(s, s.Exec(CmdEditInExternalEditor))
		assert.False(t, s.HasUnsaved())
		assert.Empty(t, s.Popups())
	})

	t.Run("temp file uses configured extension", func(t *testing.T) {
		s, _, fe := newTestSession(t, Settings{TempFileExtension: "md"}, seedEntries()...)
		finish(s, s.Exec(CmdEditInExternalEditor))
		require.Len(t, fe.prepped, 1)
		assert.Equal(t, editor.TempFileBase+".md", filepath.Base(fe.prepped[0]))
	})
}

func TestEditorFailureShowsError(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)
	s.Update(editorFinishedMsg{target: targetCurrentEntry, entryID: 6, err: errors.New("exit status 1")})

	box := topMsgBox(t, s)
	assert.Equal(t, MsgError, box.Type)
	assert.False(t, s.HasUnsaved())
}

func TestNavigationCommands(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{ScrollPerPage: 2}, seedEntries()...)
	assert.Equal(t, uint32(6), currentID(t, s))

	s.Exec(CmdPageDown)
	assert.Equal(t, uint32(4), currentID(t, s))
	s.Exec(CmdGoToBottom)
	assert.Equal(t, uint32(1), currentID(t, s))
	s.Exec(CmdSelectNextEntry)
	assert.Equal(t, uint32(1), currentID(t, s), "stays on the last entry")
	s.Exec(CmdPageUp)
	assert.Equal(t, uint32(3), currentID(t, s))
	s.Exec(CmdSelectPrevEntry)
	assert.Equal(t, uint32(4), currentID(t, s))
	s.Exec(CmdGoToTop)
	assert.Equal(t, uint32(6), currentID(t, s))
	s.Exec(CmdSelectPrevEntry)
	assert.Equal(t, uint32(6), currentID(t, s), "stays on the first entry")
}

func TestFilterPopupAppliesSelection(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdShowFilter)
	p, ok := s.TopPopup().(*FilterPopup)
	require.True(t, ok)
	assert.Equal(t, []string{"home", "work"}, p.tags)

	s.HandleKey(keyDown)
	s.HandleKey(keyDown) // "work"
	s.HandleKey(keySpace)
	s.HandleKey(keyEnter)

	assert.Equal(t, []string{"work"}, s.App().Filter().Tags)
	assert.Len(t, s.App().ActiveEntries(), 2)
	assert.Equal(t, uint32(4), currentID(t, s))

	s.Exec(CmdResetFilter)
	assert.True(t, s.App().Filter().IsEmpty())
	assert.Len(t, s.App().ActiveEntries(), 6)
}

func TestFilterPopupText(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdShowFilter)
	s.HandleKey(runes("content 3"))
	s.HandleKey(keyEnter)

	assert.Equal(t, "content 3", s.App().Filter().Text)
	require.Len(t, s.App().ActiveEntries(), 1)
	assert.Equal(t, uint32(3), currentID(t, s))
}

func TestCycleTagFilter(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdCycleTagFilter)
	assert.Equal(t, []string{"home"}, s.App().Filter().Tags)
	s.Exec(CmdCycleTagFilter)
	assert.Equal(t, []string{"work"}, s.App().Filter().Tags)
}

func TestSortPopup(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdShowSortOptions)
	_, ok := s.TopPopup().(*SortPopup)
	require.True(t, ok)

	s.HandleKey(runes("l")) // date -> title
	s.HandleKey(keyDown)
	s.HandleKey(runes("l")) // descending -> ascending
	s.HandleKey(keyEnter)

	assert.Equal(t, app.Sorter{Key: app.SortByTitle, Order: app.Ascending}, s.App().Sorter())
	assert.Equal(t, uint32(1), s.App().ActiveEntries()[0].ID)
}

func TestFuzzyFindJumpsToEntry(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdShowFuzzyFind)
	s.HandleKey(runes("ent2"))
	p, ok := s.TopPopup().(*FuzzyPopup)
	require.True(t, ok)
	id, ok := p.Selected()
	require.True(t, ok)
	assert.Equal(t, uint32(2), id)

	s.HandleKey(keyEnter)
	assert.Empty(t, s.Popups())
	assert.Equal(t, uint32(2), currentID(t, s))
}

func TestExportPopupWritesContent(t *testing.T) {
	dir := t.TempDir()
	s, _, _ := newTestSession(t, Settings{ExportDir: dir}, seedEntries()...)

	s.Exec(CmdExportEntryContent)
	p, ok := s.TopPopup().(*ExportPopup)
	require.True(t, ok)
	want := filepath.Join(dir, "Entry_6.txt")
	assert.Equal(t, want, p.Path())

	s.HandleKey(keyEnter)

	data, err := os.ReadFile(want)
	require.NoError(t, err)
	assert.Equal(t, "content 6", string(data))
	box := topMsgBox(t, s)
	assert.Equal(t, MsgInfo, box.Type)
}

func TestCommandsIgnoredWhilePopupOpen(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)

	s.Exec(CmdShowHelp)
	s.Exec(CmdSelectNextEntry)
	assert.Equal(t, uint32(6), currentID(t, s))

	s.HandleKey(keyEsc)
	assert.Empty(t, s.Popups())
}

func TestToggleFullScreen(t *testing.T) {
	s, _, _ := newTestSession(t, Settings{}, seedEntries()...)
	s.Exec(CmdToggleFullScreen)
	assert.True(t, s.App().FullScreen())
	s.Exec(CmdToggleFullScreen)
	assert.False(t, s.App().FullScreen())
}

func TestQuitPersistsUIState(t *testing.T) {
	t.Setenv("TMPDIR", t.TempDir())
	states := app.NewStateStore(t.TempDir(), logging.Discard())
	a := app.New(memory.NewStore(seedEntries()...), logging.Discard(), app.DefaultUIState())
	require.NoError(t, a.Load(context.Background()))
	s := NewSession(context.Background(), a, Settings{Editor: "true"}, logging.Discard(), states)

	s.App().SetSorter(app.Sorter{Key: app.SortByTitle, Order: app.Ascending})
	s.App().ToggleFullScreen()

	cmd := s.Exec(CmdQuit)
	require.NotNil(t, cmd)
	assert.True(t, s.Quitting())

	got := states.Load(context.Background())
	assert.Equal(t, app.UIState{Sorter: app.Sorter{Key: app.SortByTitle, Order: app.Ascending}, FullScreen: true}, got)
}

func TestExportFileName(t *testing.T) {
	cases := map[string]string{
		"Trip to Oslo":  "Trip_to_Oslo.txt",
		"a/b\\c":        "a_b_c.txt",
		"":              "entry-7.txt",
		"  ***  ":       "entry-7.txt",
		"notes-2024.v1": "notes-2024.v1.txt",
	}
	for title, want := range cases {
		assert.Equal(t, want, exportFileName(entry.Entry{ID: 7, Title: title}), title)
	}
}
