package sqlite

import (
	"context"
	"database/sql"
	"embed"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/pressly/goose/v3"
	_ "modernc.org/sqlite"
)

// Driver names accepted by New.
const (
	DriverLibSQL = "libsql"
	DriverSQLite = "sqlite"
)

//go:embed migrations/*.sql
var migrations embed.FS

// Store implements storage.Provider using SQLite via Turso/libSQL or the
// pure-Go modernc driver.
type Store struct {
	db *sql.DB
}

var _ storage.Provider = (*Store)(nil)

// New opens (creating if needed) journalctl.db in dataDir and migrates it.
func New(ctx context.Context, dataDir, driver string) (*Store, error) {
	if err := os.MkdirAll(dataDir, 0755); err != nil {
		return nil, fmt.Errorf("%w: creating data directory: %v", storage.ErrStorage, err)
	}

	dbPath := filepath.Join(dataDir, "journalctl.db")
	var dsn string
	switch driver {
	case "", DriverLibSQL:
		driver, dsn = DriverLibSQL, "file:"+dbPath
	case DriverSQLite:
		dsn = dbPath
	default:
		return nil, fmt.Errorf("%w: unknown sqlite driver %q", storage.ErrStorage, driver)
	}

	db, err := sql.Open(driver, dsn)
	if err != nil {
		return nil, fmt.Errorf("%w: opening database: %v", storage.ErrStorage, err)
	}
	db.SetMaxOpenConns(1)

	// Enable WAL mode
	if _, err := db.ExecContext(ctx, "PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: enabling WAL mode: %v", storage.ErrStorage, err)
	}

	if err := migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}

	return &Store{db: db}, nil
}

// NewWithDB wraps an already-migrated database handle.
func NewWithDB(db *sql.DB) *Store {
	return &Store{db: db}
}

func migrate(ctx context.Context, db *sql.DB) error {
	goose.SetBaseFS(migrations)
	goose.SetLogger(goose.NopLogger())
	if err := goose.SetDialect("sqlite3"); err != nil {
		return fmt.Errorf("%w: setting migration dialect: %v", storage.ErrStorage, err)
	}
	if err := goose.UpContext(ctx, db, "migrations"); err != nil {
		return fmt.Errorf("%w: running migrations: %v", storage.ErrStorage, err)
	}
	return nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func formatDate(t time.Time) string {
	return t.UTC().Format(time.RFC3339)
}

// LoadAllEntries returns every entry with its tags, ordered by id.
func (s *Store) LoadAllEntries(ctx context.Context) ([]entry.Entry, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT id, title, date, content FROM entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("%w: listing entries: %v", storage.ErrStorage, err)
	}
	defer rows.Close()

	entries := []entry.Entry{}
	index := map[uint32]int{}
	for rows.Next() {
		var e entry.Entry
		var dateStr string
		if err := rows.Scan(&e.ID, &e.Title, &dateStr, &e.Content); err != nil {
			return nil, fmt.Errorf("%w: scanning row: %v", storage.ErrStorage, err)
		}
		e.Date, err = time.Parse(time.RFC3339, dateStr)
		if err != nil {
			return nil, fmt.Errorf("%w: parsing date of entry %d: %v", storage.ErrStorage, e.ID, err)
		}
		e.Tags = []string{}
		index[e.ID] = len(entries)
		entries = append(entries, e)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating entries: %v", storage.ErrStorage, err)
	}

	tagRows, err := s.db.QueryContext(ctx, "SELECT entry_id, tag FROM entry_tags ORDER BY entry_id, position")
	if err != nil {
		return nil, fmt.Errorf("%w: listing tags: %v", storage.ErrStorage, err)
	}
	defer tagRows.Close()

	for tagRows.Next() {
		var id uint32
		var tag string
		if err := tagRows.Scan(&id, &tag); err != nil {
			return nil, fmt.Errorf("%w: scanning tag: %v", storage.ErrStorage, err)
		}
		if i, ok := index[id]; ok {
			entries[i].Tags = append(entries[i].Tags, tag)
		}
	}
	if err := tagRows.Err(); err != nil {
		return nil, fmt.Errorf("%w: iterating tags: %v", storage.ErrStorage, err)
	}

	return entries, nil
}

// insertDraft writes a draft and its tags inside tx.
func insertDraft(ctx context.Context, tx *sql.Tx, d entry.Draft) (entry.Entry, error) {
	d.Date = storage.StoredDate(d.Date)
	var id uint32
	err := tx.QueryRowContext(ctx,
		"INSERT INTO entries (title, date, content) VALUES (?, ?, ?) RETURNING id",
		d.Title, formatDate(d.Date), d.Content,
	).Scan(&id)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: inserting entry: %v", storage.ErrStorage, err)
	}

	e := d.WithID(id)
	if err := insertTags(ctx, tx, e); err != nil {
		return entry.Entry{}, err
	}
	return e, nil
}

func insertTags(ctx context.Context, tx *sql.Tx, e entry.Entry) error {
	for i, tag := range e.Tags {
		if _, err := tx.ExecContext(ctx,
			"INSERT INTO entry_tags (entry_id, position, tag) VALUES (?, ?, ?)",
			e.ID, i, tag,
		); err != nil {
			return fmt.Errorf("%w: inserting tag %q: %v", storage.ErrStorage, tag, err)
		}
	}
	return nil
}

// AddEntry persists a draft and returns it with the assigned id.
func (s *Store) AddEntry(ctx context.Context, d entry.Draft) (entry.Entry, error) {
	if err := d.Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}
	d.Tags = entry.NormalizeTags(d.Tags)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	e, err := insertDraft(ctx, tx, d)
	if err != nil {
		return entry.Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// UpdateEntry replaces every field of an existing entry.
func (s *Store) UpdateEntry(ctx context.Context, e entry.Entry) (entry.Entry, error) {
	if err := entry.FromEntry(e).Validate(); err != nil {
		return entry.Entry{}, storage.Validation(err)
	}
	e.Tags = entry.NormalizeTags(e.Tags)
	e.Date = storage.StoredDate(e.Date)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	result, err := tx.ExecContext(ctx,
		"UPDATE entries SET title = ?, date = ?, content = ? WHERE id = ?",
		e.Title, formatDate(e.Date), e.Content, e.ID,
	)
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: updating entry: %v", storage.ErrStorage, err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return entry.Entry{}, fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return entry.Entry{}, storage.NotFound(e.ID)
	}

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = ?", e.ID); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: clearing tags: %v", storage.ErrStorage, err)
	}
	if err := insertTags(ctx, tx, e); err != nil {
		return entry.Entry{}, err
	}

	if err := tx.Commit(); err != nil {
		return entry.Entry{}, fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
	}
	return e, nil
}

// RemoveEntry deletes an entry permanently.
func (s *Store) RemoveEntry(ctx context.Context, id uint32) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	if _, err := tx.ExecContext(ctx, "DELETE FROM entry_tags WHERE entry_id = ?", id); err != nil {
		return fmt.Errorf("%w: deleting tags: %v", storage.ErrStorage, err)
	}

	result, err := tx.ExecContext(ctx, "DELETE FROM entries WHERE id = ?", id)
	if err != nil {
		return fmt.Errorf("%w: deleting entry: %v", storage.ErrStorage, err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("%w: checking rows affected: %v", storage.ErrStorage, err)
	}
	if rows == 0 {
		return storage.NotFound(id)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing: %v", storage.ErrStorage, err)
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

// ImportEntries adds every draft inside a single transaction, so a failure
// leaves the database untouched.
func (s *Store) ImportEntries(ctx context.Context, dto entry.EntriesDTO) error {
	if err := storage.CheckVersion(dto); err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("%w: beginning transaction: %v", storage.ErrStorage, err)
	}
	defer tx.Rollback()

	for i, d := range dto.Entries {
		if err := d.Validate(); err != nil {
			return fmt.Errorf("importing entry %d of %d (%q): %w", i+1, len(dto.Entries), d.Title, storage.Validation(err))
		}
		d.Tags = entry.NormalizeTags(d.Tags)
		if _, err := insertDraft(ctx, tx, d); err != nil {
			return fmt.Errorf("importing entry %d of %d (%q): %w", i+1, len(dto.Entries), d.Title, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("%w: committing import: %v", storage.ErrStorage, err)
	}
	return nil
}
