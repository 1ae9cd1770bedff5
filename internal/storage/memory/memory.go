package memory

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
)

// Store is an in-memory provider. Nothing survives the process; it backs
// `storage = "memory"` sessions and tests.
type Store struct {
	mu      sync.RWMutex
	entries []entry.Entry
	nextID  uint32
}

var _ storage.Provider = (*Store)(nil)

// NewStore returns a store seeded with entries. Seeded ids are kept as-is.
func NewStore(seed ...entry.Entry) *Store {
	s := &Store{nextID: 1}
	for _, e := range seed {
		s.entries = append(s.entries, clone(e))
		s.nextID = max(s.nextID, e.ID+1)
	}
	return s
}

func clone(e entry.Entry) entry.Entry {
	e.Tags = slices.Clone(e.Tags)
	if e.Tags == nil {
		e.Tags = []string{}
	}
	return e
}

func (s *Store) indexOf(id uint32) int {
	return slices.IndexFunc(s.entries, func(e entry.Entry) bool { return e.ID == id })
}

// Close is a no-op.
func (s *Store) Close() error {
	return nil
}

// LoadAllEntries returns copies of every entry, ordered by id.
func (s *Store) LoadAllEntries(_ context.Context) ([]entry.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]entry.Entry, 0, len(s.entries))
	for _, e := range s.entries {
		out = append(out, clone(e))
	}
	slices.SortFunc(out, func(a, b entry.Entry) int { return cmp.Compare(a.ID, b.ID) })
	return out, nil
}

func (s *Store) AddEntry(_ context.Context, d entry.Draft) (entry.Entry, error) {
	if err := d.Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	d.Tags = entry.NormalizeTags(d.Tags)
	d.Date = storage.StoredDate(d.Date)
	e := d.WithID(s.nextID)
	s.nextID++
	s.entries = append(s.entries, e)
	return clone(e), nil
}

func (s *Store) UpdateEntry(_ context.Context, e entry.Entry) (entry.Entry, error) {
	if err := entry.FromEntry(e).Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(e.ID)
	if i < 0 {
		return entry.Entry{}, storage.NotFound(e.ID)
	}
	e.Tags = entry.NormalizeTags(e.Tags)
	e.Date = storage.StoredDate(e.Date)
	s.entries[i] = clone(e)
	return clone(e), nil
}

func (s *Store) RemoveEntry(_ context.Context, id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.indexOf(id)
	if i < 0 {
		return storage.NotFound(id)
	}
	s.entries = slices.Delete(s.entries, i, i+1)
	return nil
}

func (s *Store) GetExportObject(ctx context.Context, ids []uint32) (entry.EntriesDTO, error) {
	entries, err := s.LoadAllEntries(ctx)
	if err != nil {
		return entry.EntriesDTO{}, err
	}
	return storage.BuildExportObject(entries, ids), nil
}

// ImportEntries validates every draft up front, then adds them all, so a
// failed import changes nothing.
func (s *Store) ImportEntries(ctx context.Context, dto entry.EntriesDTO) error {
	if err := storage.CheckVersion(dto); err != nil {
		return err
	}
	for i, d := range dto.Entries {
		if err := d.Validate(); err != nil {
			return storage.Validation(fmt.Errorf("entry %d of %d (%q): %v", i+1, len(dto.Entries), d.Title, err))
		}
	}
	_, err := storage.ImportSequential(ctx, s, dto)
	return err
}
