// Package app holds the application state shared by the TUI and the CLI:
// the entry store, the active filter and sorter, the current selection, and
// the persisted UI state.
package app

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"slices"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
)

// App owns the in-memory working set of entries. Storage is written through
// on every mutation; the slice here is the authoritative copy for the UI.
type App struct {
	provider storage.Provider
	log      logging.Logger

	entries    []entry.Entry
	filter     Filter
	state      UIState
	currentID  uint32
	hasCurrent bool
}

// New creates an App over provider with the given restored UI state.
func New(provider storage.Provider, log logging.Logger, state UIState) *App {
	if !state.Sorter.Valid() {
		state.Sorter = DefaultSorter()
	}
	return &App{provider: provider, log: log, state: state}
}

// Load replaces the working set with the provider's entries and selects the
// first active entry.
func (a *App) Load(ctx context.Context) error {
	entries, err := a.provider.LoadAllEntries(ctx)
	if err != nil {
		a.log.Error(ctx, "loading entries", "error", err)
		return err
	}
	a.entries = entries
	a.hasCurrent = false
	a.SelectFirst()
	return nil
}

// Provider exposes the backing storage provider.
func (a *App) Provider() storage.Provider {
	return a.provider
}

// Entries returns every loaded entry regardless of filter.
func (a *App) Entries() []entry.Entry {
	return a.entries
}

// ActiveEntries is the filtered, sorted view. It is recomputed on every call.
func (a *App) ActiveEntries() []entry.Entry {
	out := make([]entry.Entry, 0, len(a.entries))
	for _, e := range a.entries {
		if a.filter.Matches(e) {
			out = append(out, e)
		}
	}
	slices.SortFunc(out, a.state.Sorter.Compare)
	return out
}

// Get looks up an entry by id in the working set.
func (a *App) Get(id uint32) (entry.Entry, bool) {
	i := slices.IndexFunc(a.entries, func(e entry.Entry) bool { return e.ID == id })
	if i < 0 {
		return entry.Entry{}, false
	}
	return a.entries[i], true
}

// CurrentID returns the selected entry id, if any.
func (a *App) CurrentID() (uint32, bool) {
	return a.currentID, a.hasCurrent
}

// Current returns the selected entry, if any.
func (a *App) Current() (entry.Entry, bool) {
	if !a.hasCurrent {
		return entry.Entry{}, false
	}
	return a.Get(a.currentID)
}

// CurrentIndex is the position of the selection in the active view, or -1.
func (a *App) CurrentIndex() int {
	if !a.hasCurrent {
		return -1
	}
	return indexOf(a.ActiveEntries(), a.currentID)
}

func indexOf(view []entry.Entry, id uint32) int {
	return slices.IndexFunc(view, func(e entry.Entry) bool { return e.ID == id })
}

// SetCurrent selects id if it is part of the active view.
func (a *App) SetCurrent(id uint32) bool {
	if indexOf(a.ActiveEntries(), id) < 0 {
		return false
	}
	a.currentID, a.hasCurrent = id, true
	return true
}

// ClearCurrent drops the selection.
func (a *App) ClearCurrent() {
	a.currentID, a.hasCurrent = 0, false
}

func (a *App) selectIndex(view []entry.Entry, i int) {
	if len(view) == 0 {
		a.ClearCurrent()
		return
	}
	i = max(0, min(i, len(view)-1))
	a.currentID, a.hasCurrent = view[i].ID, true
}

// SelectNext moves the selection step entries down, stopping at the last one.
func (a *App) SelectNext(step int) {
	view := a.ActiveEntries()
	i := indexOf(view, a.currentID)
	if !a.hasCurrent || i < 0 {
		a.selectIndex(view, 0)
		return
	}
	a.selectIndex(view, i+step)
}

// SelectPrev moves the selection step entries up, stopping at the first one.
func (a *App) SelectPrev(step int) {
	view := a.ActiveEntries()
	i := indexOf(view, a.currentID)
	if !a.hasCurrent || i < 0 {
		a.selectIndex(view, 0)
		return
	}
	a.selectIndex(view, max(0, i-step))
}

// SelectFirst selects the first active entry.
func (a *App) SelectFirst() {
	a.selectIndex(a.ActiveEntries(), 0)
}

// SelectLast selects the last active entry.
func (a *App) SelectLast() {
	view := a.ActiveEntries()
	a.selectIndex(view, len(view)-1)
}

// changeView runs fn, which may change the active view, and then re-points a
// selection that fell out of the view at its nearest surviving neighbor.
func (a *App) changeView(fn func()) {
	before := a.ActiveEntries()
	prevIdx := indexOf(before, a.currentID)
	hadCurrent := a.hasCurrent

	fn()

	after := a.ActiveEntries()
	if a.hasCurrent && indexOf(after, a.currentID) >= 0 {
		return
	}
	if !hadCurrent || prevIdx < 0 {
		a.selectIndex(after, 0)
		return
	}
	a.selectIndex(after, prevIdx)
}

// Filter returns the active filter.
func (a *App) Filter() Filter {
	return a.filter
}

// SetFilter replaces the active filter.
func (a *App) SetFilter(f Filter) {
	a.changeView(func() {
		f.Tags = slices.Clone(f.Tags)
		a.filter = f
	})
}

// ResetFilter clears every filter criterion.
func (a *App) ResetFilter() {
	a.SetFilter(Filter{})
}

// AllTags returns every tag used by any loaded entry, sorted.
func (a *App) AllTags() []string {
	var tags []string
	for _, e := range a.entries {
		for _, t := range e.Tags {
			if !slices.Contains(tags, t) {
				tags = append(tags, t)
			}
		}
	}
	slices.Sort(tags)
	return tags
}

// CycleTagFilter narrows the filter to a single tag, advancing through the
// sorted tag list on each call and wrapping at the end. The text criterion
// is kept.
func (a *App) CycleTagFilter() {
	tags := a.AllTags()
	if len(tags) == 0 {
		return
	}

	next := tags[0]
	if len(a.filter.Tags) == 1 {
		if i := slices.Index(tags, a.filter.Tags[0]); i >= 0 {
			next = tags[(i+1)%len(tags)]
		}
	}
	a.SetFilter(Filter{Tags: []string{next}, Text: a.filter.Text})
}

// Sorter returns the active sorter.
func (a *App) Sorter() Sorter {
	return a.state.Sorter
}

// SetSorter changes the ordering of the active view.
func (a *App) SetSorter(s Sorter) {
	if !s.Valid() {
		return
	}
	a.state.Sorter = s
}

// FullScreen reports whether the entry pane fills the window.
func (a *App) FullScreen() bool {
	return a.state.FullScreen
}

// ToggleFullScreen flips the full-screen flag.
func (a *App) ToggleFullScreen() {
	a.state.FullScreen = !a.state.FullScreen
}

// UIState returns the state to persist.
func (a *App) UIState() UIState {
	return a.state
}

// AddEntry stores a draft and selects the new entry when it is visible.
func (a *App) AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	e, err := a.provider.AddEntry(ctx, d)
	if err != nil {
		a.logFailure(ctx, "adding entry", err)
		return entry.Entry{}, err
	}
	a.changeView(func() {
		a.entries = append(a.entries, e)
		a.currentID, a.hasCurrent = e.ID, true
	})
	a.log.Debug(ctx, "entry added", "entry_id", e.ID)
	return e, nil
}

// UpdateEntry replaces an entry in storage and in the working set.
func (a *App) UpdateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	updated, err := a.provider.UpdateEntry(ctx, e)
	if err != nil {
		a.logFailure(ctx, "updating entry", err, "entry_id", e.ID)
		return entry.Entry{}, err
	}
	a.changeView(func() {
		if i := slices.IndexFunc(a.entries, func(x entry.Entry) bool { return x.ID == updated.ID }); i >= 0 {
			a.entries[i] = updated
		} else {
			a.entries = append(a.entries, updated)
		}
	})
	a.log.Debug(ctx, "entry updated", "entry_id", updated.ID)
	return updated, nil
}

// DeleteEntry removes an entry from storage and the working set.
func (a *App) DeleteEntry(ctx context.Context, id uint32) error {
	if err := a.provider.RemoveEntry(ctx, id); err != nil {
		a.logFailure(ctx, "removing entry", err, "entry_id", id)
		return err
	}
	a.changeView(func() {
		a.entries = slices.DeleteFunc(a.entries, func(e entry.Entry) bool { return e.ID == id })
	})
	a.log.Debug(ctx, "entry removed", "entry_id", id)
	return nil
}

// ExportEntryContent writes the content of entry id to path.
func (a *App) ExportEntryContent(ctx context.Context, id uint32, path string) error {
	e, ok := a.Get(id)
	if !ok {
		return storage.NotFound(id)
	}
	if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
		return fmt.Errorf("creating export directory: %w", err)
	}
	if err := os.WriteFile(path, []byte(e.Content), 0644); err != nil {
		return fmt.Errorf("writing export file: %w", err)
	}
	a.log.Info(ctx, "entry content exported", "entry_id", id, "path", path)
	return nil
}

func (a *App) logFailure(ctx context.Context, msg string, err error, args ...any) {
	args = append(args, "error", err)
	if storage.IsValidation(err) {
		a.log.Debug(ctx, msg, args...)
		return
	}
	a.log.Error(ctx, msg, args...)
}
