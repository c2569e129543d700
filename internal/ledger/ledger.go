// Package ledger remembers the out-of-band parameters of embedding runs so a
// later extraction can find them by stego file.
package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/yyyoichi/audiomark/key"
)

var ErrNotFound = errors.New("session not found")

// Session is one recorded embedding run.
type Session struct {
	ID            string
	StegoPath     string
	Key           key.Key
	BitsPerChar   int
	MessageLen    int
	SamplesPerBit int
	ECC           string
	ECCSeed       int64
	CreatedAt     time.Time
}

type DB struct {
	db  *sql.DB
	now func() time.Time
}

// Open opens or creates the SQLite database
func Open(dbPath string) (*DB, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to enable WAL mode: %w", err)
	}

	if _, err := db.Exec(schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to create tables: %w", err)
	}

	return &DB{db: db, now: time.Now}, nil
}

// Close closes the database connection
func (d *DB) Close() error {
	return d.db.Close()
}

// Record stores s. A missing ID or creation time is filled in.
func (d *DB) Record(ctx context.Context, s *Session) error {
	if s.ID == "" {
		s.ID = uuid.NewString()
	}
	if s.CreatedAt.IsZero() {
		s.CreatedAt = d.now()
	}
	_, err := d.db.ExecContext(ctx,
		`INSERT INTO sessions
		(id, stego_path, key, bits_per_char, message_len, samples_per_bit, ecc, ecc_seed, created_at)
		VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?)`,
		s.ID, s.StegoPath, key.Format(s.Key), s.BitsPerChar, s.MessageLen, s.SamplesPerBit,
		s.ECC, s.ECCSeed, s.CreatedAt.UnixNano(),
	)
	if err != nil {
		return fmt.Errorf("failed to insert session: %w", err)
	}
	return nil
}

// Latest returns the most recent session written to stegoPath.
func (d *DB) Latest(ctx context.Context, stegoPath string) (*Session, error) {
	var (
		s       Session
		keyText string
		created int64
	)
	err := d.db.QueryRowContext(ctx,
		`SELECT id, stego_path, key, bits_per_char, message_len, samples_per_bit, ecc, ecc_seed, created_at
		FROM sessions WHERE stego_path = ?
		ORDER BY created_at DESC, rowid DESC LIMIT 1`,
		stegoPath,
	).Scan(&s.ID, &s.StegoPath, &keyText, &s.BitsPerChar, &s.MessageLen, &s.SamplesPerBit,
		&s.ECC, &s.ECCSeed, &created)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, fmt.Errorf("%w: %s", ErrNotFound, stegoPath)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to query session: %w", err)
	}

	s.Key, err = key.Parse(keyText)
	if err != nil {
		return nil, fmt.Errorf("session %s: %w", s.ID, err)
	}
	s.CreatedAt = time.Unix(0, created)
	return &s, nil
}
