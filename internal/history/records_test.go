package history

import (
	"path/filepath"
	"testing"
)

// setupTestDB creates a temporary journal for testing
func setupTestDB(t *testing.T) *DB {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	t.Cleanup(func() { db.Close() })

	return db
}

func TestRecordAndRecent(t *testing.T) {
	db := setupTestDB(t)

	renames := []struct {
		backend, dir, oldName, newName string
	}{
		{"local", "/tv/show", "Show.1x01.mkv", "S01E01.mkv"},
		{"local", "/tv/show", "Show.1x02.mkv", "S01E02.mkv"},
		{"alist", "/anime", "第03集.mp4", "S01E03.mp4"},
	}
	for _, r := range renames {
		if err := db.Record(r.backend, r.dir, r.oldName, r.newName); err != nil {
			t.Fatalf("Record(%q, %q) failed: %v", r.dir, r.oldName, err)
		}
	}

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 3 {
		t.Fatalf("Recent() returned %d entries, want 3", len(entries))
	}

	// Newest first
	if entries[0].OldName != "第03集.mp4" || entries[0].NewName != "S01E03.mp4" {
		t.Errorf("entries[0] = %q -> %q, want newest rename first", entries[0].OldName, entries[0].NewName)
	}
	if entries[2].OldName != "Show.1x01.mkv" {
		t.Errorf("entries[2].OldName = %q, want %q", entries[2].OldName, "Show.1x01.mkv")
	}
	if entries[0].Backend != "alist" || entries[0].Directory != "/anime" {
		t.Errorf("entries[0] backend/directory = %q/%q, want alist//anime", entries[0].Backend, entries[0].Directory)
	}
	if entries[0].ExecutedAt.IsZero() {
		t.Error("entries[0].ExecutedAt is zero, want a timestamp")
	}
}

func TestRecentLimit(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 5; i++ {
		if err := db.Record("local", "/tv", "old.mkv", "new.mkv"); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}

	entries, err := db.Recent(2)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 2 {
		t.Errorf("Recent(2) returned %d entries, want 2", len(entries))
	}
}

func TestRecentEmpty(t *testing.T) {
	db := setupTestDB(t)

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 0 {
		t.Errorf("Recent() on empty journal returned %d entries, want 0", len(entries))
	}
}

func TestCountByBackend(t *testing.T) {
	db := setupTestDB(t)

	for i := 0; i < 3; i++ {
		if err := db.Record("local", "/tv", "a.mkv", "b.mkv"); err != nil {
			t.Fatalf("Record() failed: %v", err)
		}
	}
	if err := db.Record("baidu", "/tv", "c.mkv", "d.mkv"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}

	counts, err := db.CountByBackend()
	if err != nil {
		t.Fatalf("CountByBackend() failed: %v", err)
	}
	if counts["local"] != 3 || counts["baidu"] != 1 {
		t.Errorf("counts = %v, want local 3, baidu 1", counts)
	}
}

func TestOpenPathTwice(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "history.db")

	db, err := OpenPath(dbPath)
	if err != nil {
		t.Fatalf("first OpenPath() failed: %v", err)
	}
	if err := db.Record("local", "/tv", "a.mkv", "b.mkv"); err != nil {
		t.Fatalf("Record() failed: %v", err)
	}
	db.Close()

	// Reopening must not rerun migrations or lose data
	db, err = OpenPath(dbPath)
	if err != nil {
		t.Fatalf("second OpenPath() failed: %v", err)
	}
	defer db.Close()

	entries, err := db.Recent(10)
	if err != nil {
		t.Fatalf("Recent() failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("journal holds %d entries after reopen, want 1", len(entries))
	}
}
