package markdown

import (
	"context"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
	"sync"
	"syscall"
	"time"

	"github.com/adrg/frontmatter"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
)

// Store implements storage.Provider using Markdown files with YAML front-matter.
// Entries live under entries/YYYY/MM/<id>.md keyed by the entry date.
type Store struct {
	baseDir string // e.g. ~/.journalctl/entries/

	mu sync.Mutex
}

var _ storage.Provider = (*Store)(nil)

// New creates a new Markdown file storage backend.
func New(dataDir string) (*Store, error) {
	entriesDir := filepath.Join(dataDir, "entries")
	if err := os.MkdirAll(entriesDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating entries directory: %v", storage.ErrStorage, err)
	}
	return &Store{baseDir: entriesDir}, nil
}

// Close is a no-op for the Markdown backend.
func (s *Store) Close() error {
	return nil
}

func (s *Store) entryPath(e entry.Entry) string {
	t := e.Date.UTC()
	return filepath.Join(s.baseDir, t.Format("2006"), t.Format("01"), fmt.Sprintf("%d.md", e.ID))
}

func (s *Store) marshal(e entry.Entry) []byte {
	var b strings.Builder
	b.WriteString("---\n")
	fmt.Fprintf(&b, "id: %d\n", e.ID)
	fmt.Fprintf(&b, "date: %s\n", e.Date.UTC().Format(time.RFC3339))
	fmt.Fprintf(&b, "title: %s\n", strconv.Quote(e.Title))
	if len(e.Tags) > 0 {
		b.WriteString("tags:\n")
		for _, tag := range e.Tags {
			fmt.Fprintf(&b, "  - %s\n", strconv.Quote(tag))
		}
	}
	b.WriteString("---\n\n")
	b.WriteString(e.Content)
	return []byte(b.String())
}

type frontMatter struct {
	ID    uint32   `yaml:"id"`
	Date  string   `yaml:"date"`
	Title string   `yaml:"title"`
	Tags  []string `yaml:"tags"`
}

func (s *Store) unmarshal(data []byte) (entry.Entry, error) {
	var fm frontMatter
	content, err := frontmatter.Parse(strings.NewReader(string(data)), &fm)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing front-matter: %v", storage.ErrStorage, err)
	}

	date, err := time.Parse(time.RFC3339, fm.Date)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: parsing date: %v", storage.ErrStorage, err)
	}

	tags := fm.Tags
	if tags == nil {
		tags = []string{}
	}

	return entry.Entry{
		ID:      fm.ID,
		Date:    date,
		Title:   fm.Title,
		Content: strings.TrimPrefix(string(content), "\n"),
		Tags:    tags,
	}, nil
}

// atomicWrite writes data to a temp file then renames it to the target path.
func (s *Store) atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("%w: creating directory: %v", storage.ErrStorage, err)
	}

	tmp, err := os.CreateTemp(dir, ".tmp-*")
	if err != nil {
		return fmt.Errorf("%w: creating temp file: %v", storage.ErrStorage, err)
	}
	tmpName := tmp.Name()

	// Lock the temp file during write
	if err := syscall.Flock(int(tmp.Fd()), syscall.LOCK_EX); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: acquiring lock: %v", storage.ErrStorage, err)
	}

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return fmt.Errorf("%w: writing temp file: %v", storage.ErrStorage, err)
	}

	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: closing temp file: %v", storage.ErrStorage, err)
	}

	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("%w: renaming file: %v", storage.ErrStorage, err)
	}

	return nil
}

// walkEntries calls fn for every parseable entry file. Unreadable or
// malformed files are skipped.
func (s *Store) walkEntries(fn func(path string, e entry.Entry) error) error {
	return filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil
		}
		if d.IsDir() || !strings.HasSuffix(d.Name(), ".md") {
			return nil
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil
		}

		e, err := s.unmarshal(data)
		if err != nil {
			return nil
		}
		return fn(path, e)
	})
}

// findEntryPath locates the file for a given entry ID.
func (s *Store) findEntryPath(id uint32) (string, error) {
	name := fmt.Sprintf("%d.md", id)
	var found string
	err := filepath.WalkDir(s.baseDir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return nil // skip errors
		}
		if d.IsDir() {
			return nil
		}
		if d.Name() == name {
			found = path
			return filepath.SkipAll
		}
		return nil
	})
	if err != nil {
		return "", fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	if found == "" {
		return "", storage.NotFound(id)
	}
	return found, nil
}

// nextID returns one past the highest id on disk. Caller holds s.mu.
func (s *Store) nextID() (uint32, error) {
	var maxID uint32
	err := s.walkEntries(func(_ string, e entry.Entry) error {
		maxID = max(maxID, e.ID)
		return nil
	})
	if err != nil {
		return 0, fmt.Errorf("%w: scanning entries: %v", storage.ErrStorage, err)
	}
	return maxID + 1, nil
}

// LoadAllEntries reads every entry file, ordered by id.
func (s *Store) LoadAllEntries(ctx context.Context) ([]entry.Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries := []entry.Entry{}
	err := s.walkEntries(func(_ string, e entry.Entry) error {
		if err := ctx.Err(); err != nil {
			return err
		}
		entries = append(entries, e)
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("%w: loading entries: %v", storage.ErrStorage, err)
	}

	sort.Slice(entries, func(i, j int) bool {
		return entries[i].ID < entries[j].ID
	})
	return entries, nil
}

// AddEntry assigns the next free id and writes the draft to disk.
func (s *Store) AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	if err := d.Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	id, err := s.nextID()
	if err != nil {
		return entry.Entry{}, err
	}

	d.Tags = entry.NormalizeTags(d.Tags)
	d.Date = storage.StoredDate(d.Date)
	e := d.WithID(id)
	if err := s.atomicWrite(s.entryPath(e), s.marshal(e)); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

// UpdateEntry replaces every field of an existing entry. The file moves when
// the date lands in a different month.
func (s *Store) UpdateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if err := entry.FromEntry(e).Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	oldPath, err := s.findEntryPath(e.ID)
	if err != nil {
		return entry.Entry{}, err
	}

	e.Tags = entry.NormalizeTags(e.Tags)
	e.Date = storage.StoredDate(e.Date)
	newPath := s.entryPath(e)
	if err := s.atomicWrite(newPath, s.marshal(e)); err != nil {
		return entry.Entry{}, err
	}
	if oldPath != newPath {
		if err := os.Remove(oldPath); err != nil && !os.IsNotExist(err) {
			return entry.Entry{}, fmt.Errorf("%w: removing moved file: %v", storage.ErrStorage, err)
		}
	}
	return e, nil
}

// RemoveEntry deletes an entry permanently.
func (s *Store) RemoveEntry(ctx context.Context, id uint32) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	path, err := s.findEntryPath(id)
	if err != nil {
		return err
	}

	if err := os.Remove(path); err != nil {
		return fmt.Errorf("%w: deleting file: %v", storage.ErrStorage, err)
	}

	return nil
}

// GetExportObject builds the transfer envelope for ids (all when empty).
func (s *Store) GetExportObject(ctx context.Context, ids []uint32) (entry.EntriesDTO, error) {
	entries, err := s.LoadAllEntries(ctx)
	if err != nil {
		return entry.EntriesDTO{}, err
	}
	return storage.BuildExportObject(entries, ids), nil
}

// ImportEntries adds every draft sequentially. On failure the files written
// by this import are removed again.
func (s *Store) ImportEntries(ctx context.Context, dto entry.EntriesDTO) error {
	added, err := storage.ImportSequential(ctx, s, dto)
	if err == nil {
		return nil
	}

	for _, e := range added {
		// Rollback runs even if ctx was cancelled mid-import.
		_ = s.RemoveEntry(context.WithoutCancel(ctx), e.ID)
	}
	return err
}
