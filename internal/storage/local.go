package storage

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// Local renames files on the machine's own filesystem. It exists for dry
// runs against downloaded folders and for people who sync to the cloud with
// another tool.
type Local struct {
	root string
}

func NewLocal(root string) *Local {
	return &Local{root: cleanRoot(root)}
}

func (l *Local) Name() string { return "local" }

func (l *Local) RootPath() string { return l.root }

func (l *Local) List(ctx context.Context, dir string) ([]FileEntry, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entries, err := os.ReadDir(filepath.FromSlash(dir))
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", ErrNotFound, dir)
		}
		return nil, fmt.Errorf("list %s: %w", dir, err)
	}

	out := make([]FileEntry, 0, len(entries))
	for _, e := range entries {
		fe := FileEntry{Name: e.Name(), IsDir: e.IsDir()}
		if info, err := e.Info(); err == nil {
			fe.Size = info.Size()
		}
		out = append(out, fe)
	}
	return out, nil
}

func (l *Local) Rename(ctx context.Context, dir, oldName, newName string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	osDir := filepath.FromSlash(dir)
	oldPath := filepath.Join(osDir, oldName)
	newPath := filepath.Join(osDir, newName)

	if _, err := os.Lstat(oldPath); err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: %s", ErrNotFound, oldPath)
		}
		return err
	}
	if err := os.Rename(oldPath, newPath); err != nil {
		return fmt.Errorf("rename %s: %w", oldName, err)
	}
	return nil
}

func (l *Local) TestConnection(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	info, err := os.Stat(filepath.FromSlash(l.root))
	if err != nil {
		if os.IsNotExist(err) {
			return fmt.Errorf("%w: root %s", ErrNotFound, l.root)
		}
		return err
	}
	if !info.IsDir() {
		return fmt.Errorf("root %s is not a directory", l.root)
	}
	return nil
}
