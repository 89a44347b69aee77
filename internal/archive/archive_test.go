package archive

import (
	"database/sql"
	"encoding/json"
	"errors"
	"path/filepath"
	"testing"
)

// sliceSource yields a fixed set of messages.
type sliceSource struct {
	msgs []string
	pos  int
	cur  string
	err  error
}

func (s *sliceSource) Next() bool {
	if s.err != nil || s.pos >= len(s.msgs) {
		return false
	}
	s.cur = s.msgs[s.pos]
	s.pos++
	return true
}

func (s *sliceSource) Message() json.RawMessage {
	return json.RawMessage(s.cur)
}

func (s *sliceSource) Err() error {
	return s.err
}

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "archive.db"))
	if err != nil {
		t.Fatalf("opening archive: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func drain(t *testing.T, rec *Recorder) []string {
	t.Helper()
	var msgs []string
	for rec.Next() {
		msgs = append(msgs, string(rec.Message()))
	}
	if err := rec.Err(); err != nil {
		t.Fatalf("unexpected recorder error: %v", err)
	}
	return msgs
}

func TestRecord_RoundTrip(t *testing.T) {
	db := openTestDB(t)

	src := &sliceSource{msgs: []string{
		`{"ts":"1737990123.000100","text":"m1"}`,
		`{"ts":"1737990124.000200","text":"m2"}`,
		`{"text":"no ts here"}`,
	}}

	rec, err := db.Record(src, "C0123456789")
	if err != nil {
		t.Fatalf("starting recorder: %v", err)
	}

	msgs := drain(t, rec)
	if len(msgs) != 3 {
		t.Fatalf("expected 3 messages through recorder, got %d", len(msgs))
	}
	// Messages pass through unchanged.
	if msgs[0] != `{"ts":"1737990123.000100","text":"m1"}` {
		t.Errorf("message 0 altered: %s", msgs[0])
	}

	if err := rec.Commit(); err != nil {
		t.Fatalf("committing: %v", err)
	}
	if rec.Count() != 3 {
		t.Errorf("Count() = %d, want 3", rec.Count())
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 3 {
		t.Errorf("archived %d messages, want 3", count)
	}
}

func TestRecord_ExtractsTS(t *testing.T) {
	db := openTestDB(t)

	src := &sliceSource{msgs: []string{
		`{"ts":"1737990123.000100","text":"m1"}`,
		`{"text":"no ts"}`,
	}}

	rec, err := db.Record(src, "C0123456789")
	if err != nil {
		t.Fatalf("starting recorder: %v", err)
	}
	drain(t, rec)
	if err := rec.Commit(); err != nil {
		t.Fatalf("committing: %v", err)
	}

	var ts sql.NullString
	if err := db.db.QueryRow("SELECT ts FROM messages WHERE seq = 1").Scan(&ts); err != nil {
		t.Fatalf("querying ts: %v", err)
	}
	if !ts.Valid || ts.String != "1737990123.000100" {
		t.Errorf("ts = %+v, want extracted timestamp", ts)
	}

	if err := db.db.QueryRow("SELECT ts FROM messages WHERE seq = 2").Scan(&ts); err != nil {
		t.Fatalf("querying ts: %v", err)
	}
	if ts.Valid {
		t.Errorf("ts = %q, want NULL for message without ts", ts.String)
	}
}

func TestRecord_SourceErrorRollsBack(t *testing.T) {
	db := openTestDB(t)

	src := &sliceSource{msgs: []string{`{"text":"m1"}`}}
	rec, err := db.Record(src, "C0123456789")
	if err != nil {
		t.Fatalf("starting recorder: %v", err)
	}

	rec.Next()
	src.err = errors.New("history fetch failed")
	if rec.Next() {
		t.Fatal("expected recorder to stop on source error")
	}
	if rec.Err() == nil {
		t.Fatal("expected error from recorder")
	}

	// Commit after a failed run rolls back instead.
	if err := rec.Commit(); err == nil {
		t.Fatal("expected Commit to fail after source error")
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 0 {
		t.Errorf("archive holds %d messages after failed run, want 0", count)
	}
}

func TestRecord_EmptyHistory(t *testing.T) {
	db := openTestDB(t)

	rec, err := db.Record(&sliceSource{}, "C0123456789")
	if err != nil {
		t.Fatalf("starting recorder: %v", err)
	}
	if msgs := drain(t, rec); len(msgs) != 0 {
		t.Errorf("expected no messages, got %v", msgs)
	}
	if err := rec.Commit(); err != nil {
		t.Fatalf("committing: %v", err)
	}

	count, err := db.Count()
	if err != nil {
		t.Fatalf("counting: %v", err)
	}
	if count != 0 {
		t.Errorf("archive holds %d messages, want 0", count)
	}
}
