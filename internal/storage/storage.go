package storage

import (
	"cmp"
	"context"
	"errors"
	"fmt"
	"slices"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
)

// Sentinel errors for storage operations.
//
// ErrValidation marks caller-correctable input. ErrStorage marks a failure in
// the storage layer itself; absence of an entry is reported as ErrStorage
// wrapping ErrNotFound.
var (
	ErrNotFound        = errors.New("entry not found")
	ErrStorage         = errors.New("storage error")
	ErrValidation      = errors.New("validation error")
	ErrVersionMismatch = errors.New("transfer data version mismatch")
)

// Provider defines the interface for journal entry persistence.
type Provider interface {
	LoadAllEntries(ctx context.Context) ([]entry.Entry, error)
	AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error)
	UpdateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error)
	RemoveEntry(ctx context.Context, id uint32) error
	GetExportObject(ctx context.Context, ids []uint32) (entry.EntriesDTO, error)
	ImportEntries(ctx context.Context, dto entry.EntriesDTO) error
	Close() error
}

// Adder is the subset of Provider used by the sequential importer.
type Adder interface {
	AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error)
}

// NotFound returns the error reported when id does not exist.
func NotFound(id uint32) error {
	return fmt.Errorf("%w: %w: id %d", ErrStorage, ErrNotFound, id)
}

// Validation wraps a draft validation failure.
func Validation(err error) error {
	return fmt.Errorf("%w: %v", ErrValidation, err)
}

// IsValidation reports whether err is caller-correctable.
func IsValidation(err error) bool {
	return errors.Is(err, ErrValidation)
}

// CheckVersion rejects envelopes stamped with a different schema version.
func CheckVersion(dto entry.EntriesDTO) error {
	if dto.Version != entry.TransferDataVersion {
		return fmt.Errorf("%w: got %d, want %d", ErrVersionMismatch, dto.Version, entry.TransferDataVersion)
	}
	return nil
}

// StoredDate is the form in which providers persist an entry date: UTC with
// whole seconds.
func StoredDate(t time.Time) time.Time {
	return t.UTC().Truncate(time.Second)
}

// BuildExportObject projects the entries whose ids are listed (all entries
// when ids is empty) into a transfer envelope, ordered by id.
func BuildExportObject(entries []entry.Entry, ids []uint32) entry.EntriesDTO {
	selected := make([]entry.Entry, 0, len(entries))
	for _, e := range entries {
		if len(ids) == 0 || slices.Contains(ids, e.ID) {
			selected = append(selected, e)
		}
	}
	slices.SortFunc(selected, func(a, b entry.Entry) int {
		return cmp.Compare(a.ID, b.ID)
	})

	dto := entry.EntriesDTO{
		Version: entry.TransferDataVersion,
		Entries: make([]entry.Draft, 0, len(selected)),
	}
	for _, e := range selected {
		dto.Entries = append(dto.Entries, entry.FromEntry(e))
	}
	return dto
}

// ImportSequential adds every draft in dto as a new entry, in order,
// stopping at the first failure. It returns the entries added before the
// failure so callers can roll them back.
func ImportSequential(ctx context.Context, a Adder, dto entry.EntriesDTO) ([]entry.Entry, error) {
	if err := CheckVersion(dto); err != nil {
		return nil, err
	}

	added := make([]entry.Entry, 0, len(dto.Entries))
	for i, d := range dto.Entries {
		if err := ctx.Err(); err != nil {
			return added, fmt.Errorf("%w: import interrupted after %d of %d entries: %v", ErrStorage, i, len(dto.Entries), err)
		}
		e, err := a.AddEntry(ctx, d)
		if err != nil {
			return added, fmt.Errorf("importing entry %d of %d (%q): %w", i+1, len(dto.Entries), d.Title, err)
		}
		added = append(added, e)
	}
	return added, nil
}
