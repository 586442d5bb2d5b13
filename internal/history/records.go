package history

import (
	"time"
)

// Entry is one recorded rename.
type Entry struct {
	ID         int64
	Backend    string
	Directory  string
	OldName    string
	NewName    string
	ExecutedAt time.Time
}

// Record appends one executed rename to the journal.
func (h *DB) Record(backend, directory, oldName, newName string) error {
	h.mu.Lock()
	defer h.mu.Unlock()

	_, err := h.db.Exec(`
		INSERT INTO renames (backend, directory, old_name, new_name)
		VALUES (?, ?, ?, ?)
	`, backend, directory, oldName, newName)

	return err
}

// Recent returns the most recent renames, newest first.
func (h *DB) Recent(limit int) ([]Entry, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(`
		SELECT id, backend, directory, old_name, new_name, executed_at
		FROM renames
		ORDER BY executed_at DESC, id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var entries []Entry
	for rows.Next() {
		var e Entry
		if err := rows.Scan(&e.ID, &e.Backend, &e.Directory, &e.OldName, &e.NewName, &e.ExecutedAt); err != nil {
			return nil, err
		}
		entries = append(entries, e)
	}

	return entries, rows.Err()
}

// CountByBackend returns how many renames each backend has recorded.
func (h *DB) CountByBackend() (map[string]int, error) {
	h.mu.RLock()
	defer h.mu.RUnlock()

	rows, err := h.db.Query(`
		SELECT backend, COUNT(*) FROM renames GROUP BY backend
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int)
	for rows.Next() {
		var backend string
		var count int
		if err := rows.Scan(&backend, &count); err != nil {
			return nil, err
		}
		counts[backend] = count
	}

	return counts, rows.Err()
}
