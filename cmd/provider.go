package cmd

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/chris-regnier/journalctl/internal/config"
	"github.com/chris-regnier/journalctl/internal/entry"
	"github.com/chris-regnier/journalctl/internal/storage"
	"github.com/chris-regnier/journalctl/internal/storage/markdown"
	"github.com/chris-regnier/journalctl/internal/storage/memory"
	"github.com/chris-regnier/journalctl/internal/storage/sqlite"
)

func openProvider(ctx context.Context, cfg *config.Config) (storage.Provider, error) {
	switch cfg.Storage {
	case "markdown":
		s, err := markdown.New(cfg.DataDir)
		if err != nil {
			return nil, fmt.Errorf("initializing markdown storage: %w", err)
		}
		return s, nil
	case "sqlite":
		s, err := sqlite.New(ctx, cfg.DataDir, cfg.SQLite.Driver)
		if err != nil {
			return nil, fmt.Errorf("initializing sqlite storage: %w", err)
		}
		return s, nil
	case "memory":
		return memory.NewStore(), nil
	default:
		return nil, fmt.Errorf("unknown storage backend: %s", cfg.Storage)
	}
}

func parseID(s string) (uint32, error) {
	id, err := strconv.ParseUint(s, 10, 32)
	if err != nil {
		return 0, fmt.Errorf("invalid entry id %q", s)
	}
	return uint32(id), nil
}

func parseIDs(args []string) ([]uint32, error) {
	ids := make([]uint32, 0, len(args))
	for _, a := range args {
		id, err := parseID(a)
		if err != nil {
			return nil, err
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// findEntry loads the store and returns the entry with the given id.
func findEntry(ctx context.Context, p storage.Provider, id uint32) (entry.Entry, error) {
	entries, err := p.LoadAllEntries(ctx)
	if err != nil {
		return entry.Entry{}, err
	}
	for _, e := range entries {
		if e.ID == id {
			return e, nil
		}
	}
	return entry.Entry{}, storage.NotFound(id)
}

func isNotFound(err error) bool {
	return errors.Is(err, storage.ErrNotFound)
}
