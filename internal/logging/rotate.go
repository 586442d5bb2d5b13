package logging

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strconv"
	"strings"
)

// Rotated logs sit next to the live file as name.1.ext, name.2.ext, ...
// with index 1 the newest. Rotation shifts every index up by one, drops
// anything past maxBackups, then moves the live file to index 1.

func rotateFiles(path string, maxBackups int) error {
	indexes, err := backupIndexes(path)
	if err != nil {
		return err
	}

	sort.Sort(sort.Reverse(sort.IntSlice(indexes)))
	for _, i := range indexes {
		if i >= maxBackups {
			os.Remove(backupPath(path, i))
			continue
		}
		if err := os.Rename(backupPath(path, i), backupPath(path, i+1)); err != nil {
			return fmt.Errorf("shifting log backup %d: %w", i, err)
		}
	}

	if _, err := os.Stat(path); err == nil {
		if err := os.Rename(path, backupPath(path, 1)); err != nil {
			return fmt.Errorf("rotating live log: %w", err)
		}
	}
	return nil
}

// backupPath builds the rotated name for index i: dir/name.i.ext.
func backupPath(path string, i int) string {
	ext := filepath.Ext(path)
	return fmt.Sprintf("%s.%d%s", strings.TrimSuffix(path, ext), i, ext)
}

// backupIndexes lists the indexes of the rotated files that exist for path.
func backupIndexes(path string) ([]int, error) {
	dir := filepath.Dir(path)
	base := filepath.Base(path)
	ext := filepath.Ext(base)
	stem := strings.TrimSuffix(base, ext)

	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}

	var indexes []int
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		mid, ok := strings.CutPrefix(entry.Name(), stem+".")
		if !ok {
			continue
		}
		mid, ok = strings.CutSuffix(mid, ext)
		if !ok {
			continue
		}
		i, err := strconv.Atoi(mid)
		if err != nil || i < 1 {
			continue
		}
		indexes = append(indexes, i)
	}
	return indexes, nil
}
