package storage

import (
	"context"
	"errors"
	"fmt"
	"testing"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
)

type recordingAdder struct {
	failAt int
	added  []entry.Draft
}

func (r *recordingAdder) AddEntry(_ context.Context, d entry.Draft) (entry.Entry, error) {
	if r.failAt > 0 && len(r.added)+1 == r.failAt {
		return entry.Entry{}, fmt.Errorf("%w: disk full", ErrStorage)
	}
	r.added = append(r.added, d)
	return d.WithID(uint32(len(r.added))), nil
}

func drafts(titles ...string) []entry.Draft {
	out := make([]entry.Draft, 0, len(titles))
	for _, title := range titles {
		out = append(out, entry.NewDraft(time.Date(2024, 1, 1, 0, 0, 0, 0, time.UTC), title, nil))
	}
	return out
}

func TestImportSequentialVersionMismatch(t *testing.T) {
	a := &recordingAdder{}
	dto := entry.EntriesDTO{Version: entry.TransferDataVersion + 1, Entries: drafts("a", "b")}

	_, err := ImportSequential(context.Background(), a, dto)
	if !errors.Is(err, ErrVersionMismatch) {
		t.Fatalf("expected ErrVersionMismatch, got %v", err)
	}
	if len(a.added) != 0 {
		t.Errorf("added %d entries before version check", len(a.added))
	}
}

func TestImportSequentialFailFast(t *testing.T) {
	a := &recordingAdder{failAt: 2}
	dto := entry.EntriesDTO{Version: entry.TransferDataVersion, Entries: drafts("a", "b", "c")}

	added, err := ImportSequential(context.Background(), a, dto)
	if !errors.Is(err, ErrStorage) {
		t.Fatalf("expected ErrStorage, got %v", err)
	}
	if len(added) != 1 || added[0].Title != "a" {
		t.Errorf("added = %+v, want only \"a\"", added)
	}
	if len(a.added) != 1 {
		t.Errorf("adder called past first failure: %d entries", len(a.added))
	}
}

func TestBuildExportObject(t *testing.T) {
	date := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	entries := []entry.Entry{
		{ID: 3, Date: date, Title: "c"},
		{ID: 1, Date: date, Title: "a"},
		{ID: 2, Date: date, Title: "b"},
	}

	all := BuildExportObject(entries, nil)
	if all.Version != entry.TransferDataVersion {
		t.Errorf("version = %d", all.Version)
	}
	if len(all.Entries) != 3 || all.Entries[0].Title != "a" || all.Entries[2].Title != "c" {
		t.Errorf("all = %+v", all.Entries)
	}

	some := BuildExportObject(entries, []uint32{3, 9})
	if len(some.Entries) != 1 || some.Entries[0].Title != "c" {
		t.Errorf("some = %+v", some.Entries)
	}
}

func TestNotFoundIsStorageError(t *testing.T) {
	err := NotFound(7)
	if !errors.Is(err, ErrStorage) || !errors.Is(err, ErrNotFound) {
		t.Errorf("NotFound(7) = %v, want both ErrStorage and ErrNotFound", err)
	}
	if IsValidation(err) {
		t.Error("NotFound reported as validation error")
	}
}
