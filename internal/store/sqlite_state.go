package store

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	_ "modernc.org/sqlite"

	"horizon-cli/internal/model"
)

const stateFileName = "state.sqlite"

// Store persists DB snapshots to a workspace SQLite file. The in-memory DB
// stays authoritative; this is the external snapshot copy. The live-channel
// set is transient by design and never persisted.
type Store struct {
	Dir string
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) statePath() string {
	return filepath.Join(s.Dir, stateFileName)
}

func (s Store) openSQLite(ctx context.Context) (*sql.DB, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	// modernc.org/sqlite driver name is "sqlite".
	db, err := sql.Open("sqlite", s.statePath())
	if err != nil {
		return nil, err
	}
	// WAL enables one writer + many readers; busy_timeout avoids
	// "database is locked" flakiness when a CLI and a server overlap.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	if err := migrateSQLiteState(ctx, db); err != nil {
		_ = db.Close()
		return nil, err
	}
	return db, nil
}

func migrateSQLiteState(ctx context.Context, db *sql.DB) error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS state_meta (
			k TEXT PRIMARY KEY,
			v TEXT NOT NULL
		);`,
		`CREATE TABLE IF NOT EXISTS entries (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			status TEXT NOT NULL,
			timescale TEXT NOT NULL,
			due_ts INTEGER,
			is_completed INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_status ON entries(status);`,
		`CREATE INDEX IF NOT EXISTS idx_entries_due ON entries(due_ts);`,
		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY,
			title TEXT NOT NULL,
			pinned INTEGER NOT NULL,
			json TEXT NOT NULL,
			updated_at_unixms INTEGER NOT NULL
		);`,
	}
	for _, st := range stmts {
		if _, err := db.ExecContext(ctx, st); err != nil {
			return err
		}
	}
	return nil
}

// Load reads the snapshot. A missing or empty state file yields a fresh DB
// with both counters at 1.
func (s Store) Load(ctx context.Context) (*DB, error) {
	db, err := s.openSQLite(ctx)
	if err != nil {
		return nil, err
	}
	defer db.Close()

	out := NewDB()

	readMeta := func(k string) string {
		var v string
		_ = db.QueryRowContext(ctx, `SELECT v FROM state_meta WHERE k = ?`, k).Scan(&v)
		return strings.TrimSpace(v)
	}
	if v := readMeta("version"); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			out.Version = n
		}
	}
	if v := readMeta("next_entry_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			out.NextEntryID = n
		}
	}
	if v := readMeta("next_note_id"); v != "" {
		if n, err := strconv.ParseUint(v, 10, 64); err == nil && n > 0 {
			out.NextNoteID = n
		}
	}

	// Rows are stored as JSON blobs; the extra columns exist only for ad-hoc
	// inspection and indexing. Insertion order == id order for both kinds.
	entries, err := readJSONRows[model.Entry](ctx, db, `SELECT json FROM entries ORDER BY id`)
	if err != nil {
		return nil, err
	}
	notes, err := readJSONRows[model.Note](ctx, db, `SELECT json FROM notes ORDER BY id`)
	if err != nil {
		return nil, err
	}
	if entries != nil {
		out.Entries = entries
	}
	if notes != nil {
		out.Notes = notes
	}

	// Counters must stay ahead of existing ids even if meta was lost.
	for _, e := range out.Entries {
		if e.ID >= out.NextEntryID {
			out.NextEntryID = e.ID + 1
		}
	}
	for _, n := range out.Notes {
		if n.ID >= out.NextNoteID {
			out.NextNoteID = n.ID + 1
		}
	}

	return out, nil
}

// Save writes the full snapshot transactionally (replace-all strategy:
// simple and safe at this scale).
func (s Store) Save(ctx context.Context, st *DB) error {
	if st == nil {
		return errors.New("nil db")
	}
	db, err := s.openSQLite(ctx)
	if err != nil {
		return err
	}
	defer db.Close()

	tx, err := db.BeginTx(ctx, &sql.TxOptions{})
	if err != nil {
		return err
	}
	defer func() { _ = tx.Rollback() }()

	meta := map[string]string{
		"version":       strconv.Itoa(st.Version),
		"next_entry_id": strconv.FormatUint(st.NextEntryID, 10),
		"next_note_id":  strconv.FormatUint(st.NextNoteID, 10),
	}
	for k, v := range meta {
		if _, err := tx.ExecContext(ctx, `INSERT OR REPLACE INTO state_meta(k, v) VALUES(?, ?)`, k, v); err != nil {
			return err
		}
	}

	for _, t := range []string{"entries", "notes"} {
		if _, err := tx.ExecContext(ctx, `DELETE FROM `+t); err != nil {
			return err
		}
	}

	nowMs := time.Now().UTC().UnixMilli()

	for _, e := range st.Entries {
		raw, _ := json.Marshal(e)
		var due any
		if e.DueTS != nil {
			due = *e.DueTS
		}
		if _, err := tx.ExecContext(ctx, `INSERT INTO entries(id, title, status, timescale, due_ts, is_completed, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?, ?, ?, ?)`,
			e.ID, e.Title, string(e.Status), string(e.Timescale), due, boolToInt(e.IsCompleted), string(raw), nowMs); err != nil {
			return err
		}
	}
	for _, n := range st.Notes {
		raw, _ := json.Marshal(n)
		if _, err := tx.ExecContext(ctx, `INSERT INTO notes(id, title, pinned, json, updated_at_unixms) VALUES(?, ?, ?, ?, ?)`,
			n.ID, n.Title, boolToInt(n.Pinned), string(raw), nowMs); err != nil {
			return err
		}
	}

	return tx.Commit()
}

func readJSONRows[T any](ctx context.Context, db *sql.DB, query string) ([]T, error) {
	rows, err := db.QueryContext(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []T
	for rows.Next() {
		var js string
		if err := rows.Scan(&js); err != nil {
			return nil, err
		}
		var v T
		if err := json.Unmarshal([]byte(js), &v); err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

func boolToInt(b bool) int {
	if b {
		return 1
	}
	return 0
}
