package main

import (
	"path/filepath"
	"testing"

	"github.com/zygboom-max/tv-rename-tool/internal/history"
	"github.com/zygboom-max/tv-rename-tool/internal/logging"
	"github.com/zygboom-max/tv-rename-tool/internal/planner"
	"github.com/zygboom-max/tv-rename-tool/internal/storage"
)

func TestMaskToken(t *testing.T) {
	tests := []struct {
		token string
		want  string
	}{
		{"", "(not set)"},
		{"short", "****"},
		{"12345678", "****"},
		{"alist-0123456789abcdef", "alis...cdef"},
	}
	for _, tt := range tests {
		if got := maskToken(tt.token); got != tt.want {
			t.Errorf("maskToken(%q) = %q, want %q", tt.token, got, tt.want)
		}
	}
}

func TestJournalExecutedRecordsOnlyExecuted(t *testing.T) {
	db, err := history.OpenPath(filepath.Join(t.TempDir(), "history.db"))
	if err != nil {
		t.Fatalf("OpenPath() error = %v", err)
	}
	defer db.Close()

	plan := &planner.Plan{
		Dir: "/tv/show",
		Items: []planner.Item{
			{Source: storage.FileEntry{Name: "a.mkv"}, Target: "S01E01.mkv", Status: planner.StatusExecuted},
			{Source: storage.FileEntry{Name: "b.mkv"}, Target: "S01E02.mkv", Status: planner.StatusFailed},
			{Source: storage.FileEntry{Name: "c.mkv"}, Target: "S01E03.mkv", Status: planner.StatusMatched},
		},
	}

	journalExecuted(db, "local", plan, logging.Nop())

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() error = %v", err)
	}
	if len(entries) != 1 {
		t.Fatalf("Recent() returned %d entries, want 1", len(entries))
	}
	e := entries[0]
	if e.Backend != "local" || e.Directory != "/tv/show" || e.OldName != "a.mkv" || e.NewName != "S01E01.mkv" {
		t.Errorf("recorded entry = %+v, want local /tv/show a.mkv to S01E01.mkv", e)
	}
}
