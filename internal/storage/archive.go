package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"time"

	_ "modernc.org/sqlite"

	"ais_relay/internal/ais"
)

// ArchiveDB is a single-file SQLite archive of received sentences and
// their decoded form, for offline analysis without a database server.
type ArchiveDB struct {
	db *sql.DB
}

// OpenArchive opens or creates a SQLite archive at the given path.
// Use ":memory:" for a throwaway in-memory archive.
func OpenArchive(path string) (*ArchiveDB, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open archive: %w", err)
	}

	// WAL mode for better concurrent access.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("enable WAL: %w", err)
	}

	if err := createArchiveSchema(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("create schema: %w", err)
	}

	return &ArchiveDB{db: db}, nil
}

// Close closes the archive.
func (d *ArchiveDB) Close() error {
	return d.db.Close()
}

func createArchiveSchema(db *sql.DB) error {
	schema := `
	CREATE TABLE IF NOT EXISTS sentences (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		received_at TEXT NOT NULL,
		channel TEXT,
		message_type INTEGER NOT NULL,
		mmsi INTEGER NOT NULL,
		raw TEXT NOT NULL,
		decoded_json TEXT NOT NULL
	);

	CREATE INDEX IF NOT EXISTS idx_sentences_mmsi ON sentences(mmsi);
	CREATE INDEX IF NOT EXISTS idx_sentences_type ON sentences(message_type);
	CREATE INDEX IF NOT EXISTS idx_sentences_received ON sentences(received_at);
	`
	_, err := db.Exec(schema)
	return err
}

// ArchivedSentence is one stored sentence with its decoded form.
type ArchivedSentence struct {
	ID          int64
	ReceivedAt  time.Time
	Channel     string
	MessageType uint8
	MMSI        uint32
	Raw         string
	DecodedJSON string
}

// Insert stores one sentence and its decoded message.
func (d *ArchiveDB) Insert(raw, channel string, msg ais.Message, at time.Time) (int64, error) {
	decoded, err := json.Marshal(msg)
	if err != nil {
		return 0, fmt.Errorf("marshal message: %w", err)
	}

	res, err := d.db.Exec(`
		INSERT INTO sentences (received_at, channel, message_type, mmsi, raw, decoded_json)
		VALUES (?, ?, ?, ?, ?, ?)`,
		at.UTC().Format(time.RFC3339Nano), channel, msg.Type(), msg.Source(), raw, string(decoded))
	if err != nil {
		return 0, fmt.Errorf("insert sentence: %w", err)
	}
	return res.LastInsertId()
}

// Count returns the number of archived sentences.
func (d *ArchiveDB) Count() (int64, error) {
	var count int64
	err := d.db.QueryRow("SELECT COUNT(*) FROM sentences").Scan(&count)
	return count, err
}

// ByMMSI returns archived sentences for one vessel, newest first.
func (d *ArchiveDB) ByMMSI(mmsi uint32, limit int) ([]ArchivedSentence, error) {
	if limit <= 0 {
		limit = 100
	}
	rows, err := d.db.Query(`
		SELECT id, received_at, channel, message_type, mmsi, raw, decoded_json
		FROM sentences WHERE mmsi = ? ORDER BY id DESC LIMIT ?`, mmsi, limit)
	if err != nil {
		return nil, fmt.Errorf("query sentences: %w", err)
	}
	defer rows.Close()

	var out []ArchivedSentence
	for rows.Next() {
		var s ArchivedSentence
		var ts string
		if err := rows.Scan(&s.ID, &ts, &s.Channel, &s.MessageType, &s.MMSI, &s.Raw, &s.DecodedJSON); err != nil {
			return nil, fmt.Errorf("scan row: %w", err)
		}
		if s.ReceivedAt, err = time.Parse(time.RFC3339Nano, ts); err != nil {
			return nil, fmt.Errorf("parse timestamp %q: %w", ts, err)
		}
		out = append(out, s)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate rows: %w", err)
	}
	return out, nil
}
