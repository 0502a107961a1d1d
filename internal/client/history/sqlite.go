// Copyright (c) 2026 Papyr. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package history

import (
	"context"
	"database/sql"
	"fmt"

	// Pure-Go SQLite driver; registers the "sqlite" scheme.
	_ "modernc.org/sqlite"
)

const schema = `
	CREATE TABLE IF NOT EXISTS search_history (
		term   TEXT PRIMARY KEY,
		usedat INTEGER NOT NULL
	)`

// SQLiteStore persists search history in a local SQLite database, surviving
// process restarts.
type SQLiteStore struct {
	db *sql.DB
}

// OpenSQLite opens (or creates) the history database at path and ensures the
// schema exists. Use "file:papyr?mode=memory&cache=shared" for tests.
func OpenSQLite(context context.Context, path string) (*SQLiteStore, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("history: open %s: %w", path, err)
	}

	if _, err := db.ExecContext(context, schema); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("history: ensure schema: %w", err)
	}

	return &SQLiteStore{db: db}, nil
}

// Close releases the underlying database handle.
func (store *SQLiteStore) Close() error {
	return store.db.Close()
}

func (store *SQLiteStore) Record(context context.Context, term string) error {
	if term == "" {
		return nil
	}

	// usedat is a monotonic sequence, not wall time: rapid consecutive
	// searches must still order deterministically.
	_, err := store.db.ExecContext(context, `
		INSERT INTO search_history (term, usedat)
		VALUES (?, COALESCE((SELECT MAX(usedat) FROM search_history), 0) + 1)
		ON CONFLICT(term) DO UPDATE SET usedat = excluded.usedat
	`, term)
	if err != nil {
		return fmt.Errorf("history: record %q: %w", term, err)
	}

	// Trim to the newest MaxEntries rows.
	_, err = store.db.ExecContext(context, `
		DELETE FROM search_history
		WHERE term NOT IN (
			SELECT term FROM search_history ORDER BY usedat DESC LIMIT ?
		)
	`, MaxEntries)
	if err != nil {
		return fmt.Errorf("history: trim: %w", err)
	}

	return nil
}

func (store *SQLiteStore) List(context context.Context) ([]string, error) {
	rows, err := store.db.QueryContext(context, `
		SELECT term FROM search_history ORDER BY usedat DESC LIMIT ?
	`, MaxEntries)
	if err != nil {
		return nil, fmt.Errorf("history: list: %w", err)
	}
	defer rows.Close()

	var terms []string
	for rows.Next() {
		var term string
		if err := rows.Scan(&term); err != nil {
			return nil, fmt.Errorf("history: scan: %w", err)
		}
		terms = append(terms, term)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("history: iterate: %w", err)
	}

	return terms, nil
}

func (store *SQLiteStore) Clear(context context.Context) error {
	if _, err := store.db.ExecContext(context, `DELETE FROM search_history`); err != nil {
		return fmt.Errorf("history: clear: %w", err)
	}
	return nil
}
