// Package archive persists exported messages to a local SQLite file.
package archive

import (
	"database/sql"
	"encoding/json"
	"fmt"

	_ "modernc.org/sqlite"
)

// DB wraps the archive database connection.
type DB struct {
	db *sql.DB
}

// Open opens or creates an archive database at the given path.
func Open(path string) (*DB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("opening archive: %w", err)
	}

	db.SetMaxOpenConns(1) // SQLite doesn't support concurrent writes

	if err := createSchema(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating archive schema: %w", err)
	}

	return &DB{db: db}, nil
}

// Close closes the database connection.
func (d *DB) Close() error {
	return d.db.Close()
}

func createSchema(db *sql.DB) error {
	schema := `
		CREATE TABLE IF NOT EXISTS messages (
			seq INTEGER PRIMARY KEY AUTOINCREMENT,
			channel TEXT NOT NULL,
			ts TEXT,
			body TEXT NOT NULL
		);

		CREATE INDEX IF NOT EXISTS idx_messages_ts ON messages(ts) WHERE ts IS NOT NULL;
	`

	_, err := db.Exec(schema)
	return err
}

// Count returns the number of archived messages.
func (d *DB) Count() (int, error) {
	var count int
	err := d.db.QueryRow("SELECT COUNT(*) FROM messages").Scan(&count)
	return count, err
}

// Source yields messages one at a time in bufio.Scanner style.
type Source interface {
	Next() bool
	Message() json.RawMessage
	Err() error
}

// Recorder wraps a Source and copies every message that passes through it
// into the archive. All inserts happen in one transaction; nothing is
// visible in the file until Commit.
type Recorder struct {
	src     Source
	tx      *sql.Tx
	stmt    *sql.Stmt
	channel string
	count   int
	err     error
}

// Record starts recording messages from src for the given channel ID.
func (d *DB) Record(src Source, channel string) (*Recorder, error) {
	tx, err := d.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("starting archive transaction: %w", err)
	}

	stmt, err := tx.Prepare("INSERT INTO messages (channel, ts, body) VALUES (?, ?, ?)")
	if err != nil {
		tx.Rollback()
		return nil, fmt.Errorf("preparing archive insert: %w", err)
	}

	return &Recorder{src: src, tx: tx, stmt: stmt, channel: channel}, nil
}

// Next advances the underlying source and archives the new message. A
// failed insert stops iteration; the error surfaces through Err.
func (r *Recorder) Next() bool {
	if r.err != nil {
		return false
	}
	if !r.src.Next() {
		return false
	}

	msg := r.src.Message()
	if _, err := r.stmt.Exec(r.channel, nullableTS(msg), string(msg)); err != nil {
		r.err = fmt.Errorf("archiving message: %w", err)
		return false
	}
	r.count++
	return true
}

// Message returns the current message, unchanged.
func (r *Recorder) Message() json.RawMessage {
	return r.src.Message()
}

// Err returns the error that stopped iteration, if any.
func (r *Recorder) Err() error {
	if err := r.src.Err(); err != nil {
		return err
	}
	return r.err
}

// Count returns the number of messages archived so far.
func (r *Recorder) Count() int {
	return r.count
}

// Commit finalizes the archive transaction. It must be called after the
// source is exhausted; if iteration ended in an error it rolls back
// instead, leaving the archive untouched.
func (r *Recorder) Commit() error {
	r.stmt.Close()
	if err := r.Err(); err != nil {
		r.tx.Rollback()
		return err
	}
	if err := r.tx.Commit(); err != nil {
		return fmt.Errorf("committing archive: %w", err)
	}
	return nil
}

// nullableTS extracts the Slack ts field for indexing. Messages stay
// opaque: a missing or unreadable ts is stored as NULL, never an error.
func nullableTS(msg json.RawMessage) sql.NullString {
	var probe struct {
		TS string `json:"ts"`
	}
	if err := json.Unmarshal(msg, &probe); err != nil || probe.TS == "" {
		return sql.NullString{}
	}
	return sql.NullString{String: probe.TS, Valid: true}
}
