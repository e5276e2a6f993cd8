// Package library persists canonical entries in a local SQLite database
// so CLI invocations can accumulate and query a reference collection.
package library

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/reflib/refconv/internal/entry"
)

// Library is a SQLite-backed entry store. Entries are kept as JSON
// beside indexed id, type, and doi columns.
type Library struct {
	db *sql.DB
}

// Open opens (creating if needed) the library database at path.
func Open(path string) (*Library, error) {
	if dir := filepath.Dir(path); dir != "." {
		if err := os.MkdirAll(dir, 0755); err != nil {
			return nil, fmt.Errorf("creating library directory: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening library: %w", err)
	}
	// SQLite doesn't support concurrent writes
	db.SetMaxOpenConns(1)

	lib := &Library{db: db}
	if err := lib.ensureSchema(); err != nil {
		db.Close()
		return nil, err
	}
	return lib, nil
}

func (l *Library) ensureSchema() error {
	schema := `
		CREATE TABLE IF NOT EXISTS entries (
			id TEXT PRIMARY KEY,
			type TEXT NOT NULL,
			doi TEXT,
			data TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_entries_type ON entries(type);
		CREATE INDEX IF NOT EXISTS idx_entries_doi ON entries(doi);
	`
	if _, err := l.db.Exec(schema); err != nil {
		return fmt.Errorf("creating library schema: %w", err)
	}
	return nil
}

// Save upserts entries by id. Returns the number of entries written.
func (l *Library) Save(entries []entry.Entry) (int, error) {
	tx, err := l.db.Begin()
	if err != nil {
		return 0, fmt.Errorf("beginning save: %w", err)
	}
	defer tx.Rollback()

	stmt, err := tx.Prepare(`
		INSERT OR REPLACE INTO entries (id, type, doi, data)
		VALUES (?, ?, ?, ?)
	`)
	if err != nil {
		return 0, fmt.Errorf("preparing insert: %w", err)
	}
	defer stmt.Close()

	count := 0
	for _, e := range entries {
		data, err := json.Marshal(e)
		if err != nil {
			return count, fmt.Errorf("marshaling entry %s: %w", e.ID, err)
		}
		if _, err := stmt.Exec(e.ID, e.Type, entry.NormalizeDOI(e.DOI), string(data)); err != nil {
			return count, fmt.Errorf("inserting entry %s: %w", e.ID, err)
		}
		count++
	}

	if err := tx.Commit(); err != nil {
		return count, fmt.Errorf("committing save: %w", err)
	}
	return count, nil
}

// List returns every stored entry ordered by id.
func (l *Library) List() ([]entry.Entry, error) {
	rows, err := l.db.Query("SELECT data FROM entries ORDER BY id")
	if err != nil {
		return nil, fmt.Errorf("listing entries: %w", err)
	}
	defer rows.Close()

	var entries []entry.Entry
	for rows.Next() {
		var data string
		if err := rows.Scan(&data); err != nil {
			return nil, err
		}
		var e entry.Entry
		if err := json.Unmarshal([]byte(data), &e); err != nil {
			return nil, fmt.Errorf("unmarshaling stored entry: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Get returns one entry by id. Found is false when absent.
func (l *Library) Get(id string) (entry.Entry, bool, error) {
	var data string
	err := l.db.QueryRow("SELECT data FROM entries WHERE id = ?", id).Scan(&data)
	if err == sql.ErrNoRows {
		return entry.Entry{}, false, nil
	}
	if err != nil {
		return entry.Entry{}, false, err
	}

	var e entry.Entry
	if err := json.Unmarshal([]byte(data), &e); err != nil {
		return entry.Entry{}, false, fmt.Errorf("unmarshaling stored entry: %w", err)
	}
	return e, true, nil
}

// FindByDOI returns the id of the entry with the given DOI, if any.
func (l *Library) FindByDOI(doi string) (string, bool, error) {
	normalized := entry.NormalizeDOI(doi)
	if normalized == "" {
		return "", false, nil
	}

	var id string
	err := l.db.QueryRow("SELECT id FROM entries WHERE doi = ?", normalized).Scan(&id)
	if err == sql.ErrNoRows {
		return "", false, nil
	}
	if err != nil {
		return "", false, err
	}
	return id, true, nil
}

// Remove deletes entries by id. Returns how many were removed.
func (l *Library) Remove(ids []string) (int, error) {
	removed := 0
	for _, id := range ids {
		res, err := l.db.Exec("DELETE FROM entries WHERE id = ?", id)
		if err != nil {
			return removed, fmt.Errorf("deleting entry %s: %w", id, err)
		}
		if n, err := res.RowsAffected(); err == nil {
			removed += int(n)
		}
	}
	return removed, nil
}

// Count returns the number of stored entries.
func (l *Library) Count() (int, error) {
	var n int
	err := l.db.QueryRow("SELECT COUNT(*) FROM entries").Scan(&n)
	return n, err
}

// Close closes the underlying database.
func (l *Library) Close() error {
	return l.db.Close()
}
