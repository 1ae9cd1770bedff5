package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/journalctl/internal/entry"
)

func TestShowFull(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, store, 3, false, false); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"Entry: 3", "Title: Bravo", "Date: 2024-03-03", "work, travel", "content"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestShowContentOnly(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, store, 2, true, false); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	if buf.String() != "content of Charlie\n" {
		t.Errorf("content = %q", buf.String())
	}
}

func TestShowJSON(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	if err := showRun(context.Background(), &buf, store, 1, false, true); err != nil {
		t.Fatalf("showRun: %v", err)
	}
	var got entry.Entry
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("JSON unmarshal: %v", err)
	}
	if got.ID != 1 || got.Title != "Alpha" {
		t.Errorf("got %+v", got)
	}
}

func TestShowNotFound(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	err := showRun(context.Background(), &bytes.Buffer{}, store, 42, false, false)
	if err == nil || err.Error() != "entry 42 not found" {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestParseID(t *testing.T) {
	if id, err := parseID("17"); err != nil || id != 17 {
		t.Errorf("parseID(17) = %d, %v", id, err)
	}
	for _, bad := range []string{"", "abc", "-1", "4294967296"} {
		if _, err := parseID(bad); err == nil {
			t.Errorf("parseID(%q) should fail", bad)
		}
	}
	ids, err := parseIDs([]string{"3", "1"})
	if err != nil || len(ids) != 2 || ids[0] != 3 || ids[1] != 1 {
		t.Errorf("parseIDs = %v, %v", ids, err)
	}
}
