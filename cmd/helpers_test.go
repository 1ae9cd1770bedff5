package cmd

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/logging"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/storage/markdown"
	"github.com/chris-regnier/journalctl/internal/storage/memory"
)

func testEntry(id uint32, day int, title string, tags ...string) entry.Entry {
	return entry.Entry{
		ID:      id,
		Date:    time.Date(2024, 3, day, 9, 0, 0, 0, time.Local),
		Title:   title,
		Content: fmt.Sprintf("content of %s", title),
		Tags:    tags,
	}
}

// seedEntries returns three entries; ids and days match.
func seedEntries() []entry.Entry {
	return []entry.Entry{
		testEntry(1, 1, "Alpha", "work"),
		testEntry(2, 2, "Charlie", "home"),
		testEntry(3, 3, "Bravo", "work", "travel"),
	}
}

func setupTestStore(t *testing.T, seed ...entry.Entry) *memory.Store {
	t.Helper()
	s := memory.NewStore(seed...)
	t.Cleanup(func() { s.Close() })
	return s
}

func setupMarkdownStore(t *testing.T) *markdown.Store {
	t.Helper()
	dir := t.TempDir()
	s, err := markdown.New(dir)
	if err != nil {
		t.Fatalf("creating test storage: %v", err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func setupTestEnv(t *testing.T, seed ...entry.Entry) {
	t.Helper()
	store = setupTestStore(t, seed...)
	appConfig = &config.Config{Storage: "memory", DataDir: t.TempDir()}
	jsonOutput = false
	logger = logging.Discard()
	t.Cleanup(func() {
		store = nil
		appConfig = nil
	})
}

func mustFind(t *testing.T, p storage.Provider, id uint32) entry.Entry {
	t.Helper()
	e, err := findEntry(context.Background(), p, id)
	if err != nil {
		t.Fatalf("findEntry(%d): %v", id, err)
	}
	return e
}
