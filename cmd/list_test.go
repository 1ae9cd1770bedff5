package cmd

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"testing"

	"github.com/chris-regnier/journalctl/internal/ui"
)

func listIDs(t *testing.T, opts listOptions) string {
	t.Helper()
	var buf bytes.Buffer
	opts.idOnly = true
	if err := listRun(context.Background(), &buf, store, opts); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	return strings.Join(strings.Fields(buf.String()), ",")
}

func TestListOrdering(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	tests := []struct {
		name  string
		key   string
		order string
		want  string
	}{
		{"newest first", "date", "descending", "3,2,1"},
		{"oldest first", "date", "asc", "1,2,3"},
		{"title ascending", "title", "ascending", "1,3,2"},
		{"title descending", "title", "desc", "2,3,1"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := listIDs(t, listOptions{sortKey: tt.key, order: tt.order})
			if got != tt.want {
				t.Errorf("ids = %s, want %s", got, tt.want)
			}
		})
	}
}

func TestListFilters(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	if got := listIDs(t, listOptions{sortKey: "date", order: "asc", tags: []string{"work"}}); got != "1,3" {
		t.Errorf("tag filter ids = %s, want 1,3", got)
	}
	if got := listIDs(t, listOptions{sortKey: "date", order: "asc", tags: []string{"home", "travel"}}); got != "2,3" {
		t.Errorf("any-of tag filter ids = %s, want 2,3", got)
	}
	if got := listIDs(t, listOptions{sortKey: "date", order: "asc", text: "BRAVO"}); got != "3" {
		t.Errorf("text filter ids = %s, want 3", got)
	}
	if got := listIDs(t, listOptions{sortKey: "date", order: "asc", text: "nothing like this"}); got != "" {
		t.Errorf("unmatched text filter ids = %s, want none", got)
	}
}

func TestListInvalidSort(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	err := listRun(context.Background(), &buf, store, listOptions{sortKey: "mood", order: "asc"})
	if err == nil || !strings.Contains(err.Error(), "invalid sort key") {
		t.Errorf("expected invalid sort key error, got %v", err)
	}
}

func TestListTable(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, store, listOptions{sortKey: "date", order: "desc"}); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	out := buf.String()
	for _, want := range []string{"ID", "TITLE", "Alpha", "Bravo", "Charlie", "2024-03-03"} {
		if !strings.Contains(out, want) {
			t.Errorf("table output missing %q:\n%s", want, out)
		}
	}
	if strings.Index(out, "Bravo") > strings.Index(out, "Alpha") {
		t.Errorf("expected newest entry first:\n%s", out)
	}
}

func TestListEmpty(t *testing.T) {
	setupTestEnv(t)

	var buf bytes.Buffer
	if err := listRun(context.Background(), &buf, store, listOptions{sortKey: "date", order: "desc"}); err != nil {
		t.Fatalf("listRun: %v", err)
	}
	if !strings.Contains(buf.String(), "No journal entries found.") {
		t.Errorf("unexpected output: %q", buf.String())
	}
}

func TestListJSON(t *testing.T) {
	setupTestEnv(t, seedEntries()...)

	var buf bytes.Buffer
	opts := listOptions{sortKey: "title", order: "asc", json: true, tags: []string{"work"}}
	if err := listRun(context.Background(), &buf, store, opts); err != nil {
		t.Fatalf("listRun: %v", err)
	}

	var got []ui.EntrySummary
	if err := json.Unmarshal(buf.Bytes(), &got); err != nil {
		t.Fatalf("JSON unmarshal: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 summaries, got %d", len(got))
	}
	if got[0].Title != "Alpha" || got[1].Title != "Bravo" {
		t.Errorf("titles = %q, %q", got[0].Title, got[1].Title)
	}
	if got[0].Preview != "content of Alpha" {
		t.Errorf("preview = %q", got[0].Preview)
	}
}
