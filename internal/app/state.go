package app

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/peterbourgon/diskv/v3"
)

const stateKey = "state.json"

// UIState is the part of the session that survives restarts.
type UIState struct {
	Sorter     Sorter `json:"sorter"`
	FullScreen bool   `json:"full_screen"`
}

// DefaultUIState is used when no state file exists.
func DefaultUIState() UIState {
	return UIState{Sorter: DefaultSorter()}
}

// StateStore persists UIState as a single JSON file in the state directory.
type StateStore struct {
	d   *diskv.Diskv
	dir string
	log logging.Logger
}

// NewStateStore opens the store in dir.
func NewStateStore(dir string, log logging.Logger) *StateStore {
	d := diskv.New(diskv.Options{
		BasePath:     dir,
		Transform:    func(string) []string { return []string{} },
		TempDir:      filepath.Join(dir, ".tmp"),
		CacheSizeMax: 64 * 1024,
	})
	return &StateStore{d: d, dir: dir, log: log}
}

// Path is the location of the state file.
func (s *StateStore) Path() string {
	return filepath.Join(s.dir, stateKey)
}

// MigrateLegacy moves a state file left in legacyDir by older versions into
// the store. Failures are logged and otherwise ignored.
func (s *StateStore) MigrateLegacy(ctx context.Context, legacyDir string) {
	legacy := filepath.Join(legacyDir, stateKey)
	if legacyDir == "" || legacy == s.Path() {
		return
	}
	if _, err := os.Stat(legacy); err != nil {
		return
	}
	if s.d.Has(stateKey) {
		s.log.Info(ctx, "legacy state file ignored, state already present", "legacy", legacy)
		return
	}

	if err := s.moveFile(legacy); err != nil {
		s.log.Error(ctx, "migrating legacy state file", "from", legacy, "to", s.Path(), "error", err)
		return
	}
	s.log.Info(ctx, "migrated legacy state file", "from", legacy, "to", s.Path())
}

func (s *StateStore) moveFile(legacy string) error {
	if err := os.MkdirAll(s.dir, 0755); err != nil {
		return err
	}
	if err := os.Rename(legacy, s.Path()); err == nil {
		return nil
	}

	// Rename fails across filesystems; fall back to copy and remove.
	f, err := os.Open(legacy)
	if err != nil {
		return err
	}
	defer f.Close()
	if err := s.d.WriteStream(stateKey, f, true); err != nil {
		return err
	}
	return os.Remove(legacy)
}

// Load returns the saved state, or defaults when none exists or the file
// cannot be decoded.
func (s *StateStore) Load(ctx context.Context) UIState {
	state := DefaultUIState()
	if !s.d.Has(stateKey) {
		return state
	}

	data, err := s.d.Read(stateKey)
	if err != nil {
		s.log.Error(ctx, "reading state file", "path", s.Path(), "error", err)
		return state
	}
	if err := json.Unmarshal(data, &state); err != nil {
		s.log.Error(ctx, "decoding state file", "path", s.Path(), "error", err)
		return DefaultUIState()
	}
	if !state.Sorter.Valid() {
		state.Sorter = DefaultSorter()
	}
	return state
}

// Save overwrites the state file.
func (s *StateStore) Save(state UIState) error {
	data, err := json.MarshalIndent(state, "", "  ")
	if err != nil {
		return fmt.Errorf("encoding state: %w", err)
	}
	if err := s.d.Write(stateKey, data); err != nil {
		return fmt.Errorf("writing state file: %w", err)
	}
	return nil
}
