package paths

import (
	"os"
	"os/user"
	"path/filepath"
	"testing"
)

func TestUserHomeDirNoSudo(t *testing.T) {
	t.Setenv("SUDO_USER", "")

	got, err := UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	want, _ := os.UserHomeDir()
	if got != want {
		t.Errorf("UserHomeDir() = %q, want %q", got, want)
	}
}

func TestUserHomeDirWithSudoUser(t *testing.T) {
	current, err := user.Current()
	if err != nil {
		t.Skip("cannot get current user")
	}

	t.Setenv("SUDO_USER", current.Username)

	got, err := UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}
	if got != current.HomeDir {
		t.Errorf("UserHomeDir() = %q, want %q", got, current.HomeDir)
	}
}

func TestUserHomeDirIgnoresRoot(t *testing.T) {
	t.Setenv("SUDO_USER", "root")

	got, err := UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	want, _ := os.UserHomeDir()
	if got != want {
		t.Errorf("UserHomeDir() = %q, want %q", got, want)
	}
}

func TestUserHomeDirNonexistentSudoUser(t *testing.T) {
	t.Setenv("SUDO_USER", "no_such_user_83021")

	got, err := UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}

	want, _ := os.UserHomeDir()
	if got != want {
		t.Errorf("UserHomeDir() = %q, want %q", got, want)
	}
}

func TestFilePaths(t *testing.T) {
	t.Setenv("SUDO_USER", "")

	home, err := UserHomeDir()
	if err != nil {
		t.Fatalf("UserHomeDir() error = %v", err)
	}
	base := filepath.Join(home, ".config", "tvrename")

	tests := []struct {
		name string
		fn   func() (string, error)
		want string
	}{
		{"Dir", Dir, base},
		{"ConfigPath", ConfigPath, filepath.Join(base, "config.toml")},
		{"HistoryPath", HistoryPath, filepath.Join(base, "history.db")},
		{"LogPath", LogPath, filepath.Join(base, "tvrename.log")},
	}

	for _, tt := range tests {
		got, err := tt.fn()
		if err != nil {
			t.Fatalf("%s() error = %v", tt.name, err)
		}
		if got != tt.want {
			t.Errorf("%s() = %q, want %q", tt.name, got, tt.want)
		}
	}
}
