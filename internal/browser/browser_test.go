package browser

import (
	"context"
	"testing"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/zygboom-max/tv-rename-tool/internal/storage"
)

type stubBackend struct {
	root    string
	entries map[string][]storage.FileEntry
}

func (s *stubBackend) Name() string     { return "stub" }
func (s *stubBackend) RootPath() string { return s.root }

func (s *stubBackend) List(ctx context.Context, dir string) ([]storage.FileEntry, error) {
	return s.entries[dir], nil
}

func (s *stubBackend) Rename(ctx context.Context, dir, oldName, newName string) error { return nil }
func (s *stubBackend) TestConnection(ctx context.Context) error                       { return nil }

func keyMsg(s string) tea.KeyMsg {
	switch s {
	case "enter":
		return tea.KeyMsg{Type: tea.KeyEnter}
	case "backspace":
		return tea.KeyMsg{Type: tea.KeyBackspace}
	default:
		return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
	}
}

func loaded(t *testing.T, m Model, path string, entries []storage.FileEntry) Model {
	t.Helper()
	next, _ := m.Update(listLoadedMsg{path: path, entries: entries})
	nm, ok := next.(Model)
	if !ok {
		t.Fatalf("Update returned %T, want Model", next)
	}
	return nm
}

func TestListLoadedSortsAndCounts(t *testing.T) {
	b := &stubBackend{root: "/tv"}
	m := New(context.Background(), b)

	m = loaded(t, m, "/tv", []storage.FileEntry{
		{Name: "zeta", IsDir: true},
		{Name: "Alpha", IsDir: true},
		{Name: "S01E01.mkv", Size: 100},
		{Name: "cover.jpg", Size: 5},
	})

	if m.loading {
		t.Error("loading still true after listLoadedMsg")
	}
	if len(m.folders) != 2 || m.folders[0].Name != "Alpha" || m.folders[1].Name != "zeta" {
		t.Errorf("folders = %+v, want Alpha then zeta", m.folders)
	}
	if len(m.files) != 2 {
		t.Errorf("len(files) = %d, want 2", len(m.files))
	}
	if m.videos != 1 {
		t.Errorf("videos = %d, want 1", m.videos)
	}
}

func TestListLoadedIgnoresStalePath(t *testing.T) {
	b := &stubBackend{root: "/tv"}
	m := New(context.Background(), b)

	m = loaded(t, m, "/somewhere-else", []storage.FileEntry{{Name: "x", IsDir: true}})

	if !m.loading {
		t.Error("stale listing cleared the loading state")
	}
	if len(m.folders) != 0 {
		t.Errorf("stale listing populated folders: %+v", m.folders)
	}
}

func TestDescendAndAscend(t *testing.T) {
	b := &stubBackend{root: "/tv"}
	m := New(context.Background(), b)
	m = loaded(t, m, "/tv", []storage.FileEntry{{Name: "ShowA", IsDir: true}})

	// Cursor row 0 is the parent link, row 1 the folder
	next, _ := m.Update(keyMsg("j"))
	m = next.(Model)
	next, cmd := m.Update(keyMsg("enter"))
	m = next.(Model)

	if m.path != "/tv/ShowA" {
		t.Errorf("path = %q, want %q", m.path, "/tv/ShowA")
	}
	if !m.loading {
		t.Error("descend did not start loading")
	}
	if cmd == nil {
		t.Error("descend returned no load command")
	}

	m = loaded(t, m, "/tv/ShowA", nil)
	next, _ = m.Update(keyMsg("backspace"))
	m = next.(Model)
	if m.path != "/tv" {
		t.Errorf("path after ascend = %q, want %q", m.path, "/tv")
	}
}

func TestAscendStopsAtRoot(t *testing.T) {
	b := &stubBackend{root: "/"}
	m := New(context.Background(), b)
	m = loaded(t, m, "/", nil)

	next, cmd := m.Update(keyMsg("backspace"))
	m = next.(Model)
	if m.path != "/" {
		t.Errorf("path = %q, want to stay at root", m.path)
	}
	if cmd != nil {
		t.Error("ascend at root issued a command")
	}
}

func TestConfirmSelectsCurrentDir(t *testing.T) {
	b := &stubBackend{root: "/tv"}
	m := New(context.Background(), b)
	m = loaded(t, m, "/tv", nil)

	next, cmd := m.Update(keyMsg("c"))
	m = next.(Model)
	if m.selected != "/tv" {
		t.Errorf("selected = %q, want %q", m.selected, "/tv")
	}
	if cmd == nil {
		t.Fatal("confirm returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("confirm did not quit the program")
	}
}

func TestQuitAborts(t *testing.T) {
	b := &stubBackend{root: "/tv"}
	m := New(context.Background(), b)
	m = loaded(t, m, "/tv", nil)

	next, cmd := m.Update(keyMsg("q"))
	m = next.(Model)
	if !m.aborted {
		t.Error("q did not abort")
	}
	if cmd == nil {
		t.Fatal("quit returned no command")
	}
	if _, ok := cmd().(tea.QuitMsg); !ok {
		t.Error("q did not quit the program")
	}
}
