// Package pinstore persists pinned slots in SQLite.
package pinstore

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/rs/zerolog"
	_ "modernc.org/sqlite" // SQLite driver

	"github.com/mj1618/slotjump/internal/model"
)

const saveDebounce = 500 * time.Millisecond

// Store loads and saves the full slot list.
type Store interface {
	Load() ([]model.PinSlot, error)
	Save(slots []model.PinSlot) error
}

// SQLite is a Store backed by a single table keyed by position.
type SQLite struct {
	db  *sql.DB
	log zerolog.Logger

	saveDelay time.Duration
	saveMu    sync.Mutex
	saveTimer *time.Timer
	pending   []model.PinSlot
	hasPend   bool
	closed    bool
	flushing  sync.WaitGroup
}

// Open opens (creating if needed) the database at path. Deferred saves that
// fail are reported to log.
func Open(path string, log zerolog.Logger) (*SQLite, error) {
	if path != ":memory:" {
		if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
			return nil, err
		}
	}
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	// One connection: ":memory:" databases are per-connection and the
	// daemon never writes concurrently.
	db.SetMaxOpenConns(1)
	if err := initSchema(db); err != nil {
		db.Close()
		return nil, err
	}
	return &SQLite{
		db:        db,
		log:       log.With().Str("component", "pinstore").Logger(),
		saveDelay: saveDebounce,
	}, nil
}

func initSchema(db *sql.DB) error {
	_, err := db.Exec(`
		CREATE TABLE IF NOT EXISTS pins (
			position       INTEGER PRIMARY KEY,
			id             TEXT NOT NULL,
			stable_id      INTEGER NOT NULL DEFAULT 0,
			owner_app_id   TEXT NOT NULL,
			owner_app_name TEXT NOT NULL DEFAULT '',
			title          TEXT NOT NULL DEFAULT '',
			pid            INTEGER NOT NULL DEFAULT 0,
			last_accessed  INTEGER
		)
	`)
	if err != nil {
		return fmt.Errorf("init pins schema: %w", err)
	}
	return nil
}

// Close flushes a deferred save and closes the database. A deferred save
// already in progress is waited for.
func (s *SQLite) Close() error {
	s.saveMu.Lock()
	if s.closed {
		s.saveMu.Unlock()
		return nil
	}
	s.closed = true
	if s.saveTimer != nil && s.saveTimer.Stop() {
		s.flushing.Done()
	}
	s.saveTimer = nil
	s.saveMu.Unlock()
	s.flushing.Wait()

	s.saveMu.Lock()
	pending, has := s.pending, s.hasPend
	s.pending, s.hasPend = nil, false
	s.saveMu.Unlock()

	var flushErr error
	if has {
		flushErr = s.Save(pending)
	}
	if err := s.db.Close(); err != nil {
		return err
	}
	return flushErr
}

// Load returns every stored slot ordered by position.
func (s *SQLite) Load() ([]model.PinSlot, error) {
	rows, err := s.db.Query(`
		SELECT position, id, stable_id, owner_app_id, owner_app_name, title, pid, last_accessed
		FROM pins ORDER BY position
	`)
	if err != nil {
		return nil, fmt.Errorf("load pins: %w", err)
	}
	defer rows.Close()

	var slots []model.PinSlot
	for rows.Next() {
		var (
			slot     model.PinSlot
			stableID int64
			accessed sql.NullInt64
		)
		if err := rows.Scan(&slot.Position, &slot.ID, &stableID,
			&slot.Window.OwnerAppID, &slot.Window.OwnerAppName, &slot.Window.Title,
			&slot.Window.PID, &accessed); err != nil {
			return nil, fmt.Errorf("scan pin: %w", err)
		}
		slot.Window.StableID = model.WindowID(stableID)
		if accessed.Valid {
			t := time.Unix(0, accessed.Int64).UTC()
			slot.LastAccessed = &t
		}
		slots = append(slots, slot)
	}
	return slots, rows.Err()
}

// Save replaces the stored slots in one transaction.
func (s *SQLite) Save(slots []model.PinSlot) error {
	return withTx(s.db, func(tx *sql.Tx) error {
		if _, err := tx.Exec(`DELETE FROM pins`); err != nil {
			return err
		}
		stmt, err := tx.Prepare(`
			INSERT INTO pins (position, id, stable_id, owner_app_id, owner_app_name, title, pid, last_accessed)
			VALUES (?, ?, ?, ?, ?, ?, ?, ?)
		`)
		if err != nil {
			return err
		}
		defer stmt.Close()
		for _, slot := range slots {
			var accessed sql.NullInt64
			if slot.LastAccessed != nil {
				accessed = sql.NullInt64{Int64: slot.LastAccessed.UnixNano(), Valid: true}
			}
			if _, err := stmt.Exec(slot.Position, slot.ID, int64(slot.Window.StableID),
				slot.Window.OwnerAppID, slot.Window.OwnerAppName, slot.Window.Title,
				slot.Window.PID, accessed); err != nil {
				return fmt.Errorf("save pin %d: %w", slot.Position, err)
			}
		}
		return nil
	})
}

// SaveDeferred coalesces rapid saves (every jump stamps an access time)
// into one write after a short delay. Close flushes. Failures are logged.
func (s *SQLite) SaveDeferred(slots []model.PinSlot) {
	s.saveMu.Lock()
	defer s.saveMu.Unlock()
	if s.closed {
		s.log.Warn().Int("slots", len(slots)).Msg("save after close dropped")
		return
	}

	s.pending = append([]model.PinSlot(nil), slots...)
	s.hasPend = true

	if s.saveTimer != nil && s.saveTimer.Stop() {
		s.flushing.Done()
	}
	s.flushing.Add(1)
	s.saveTimer = time.AfterFunc(s.saveDelay, s.flush)
}

func (s *SQLite) flush() {
	defer s.flushing.Done()

	s.saveMu.Lock()
	pending, has := s.pending, s.hasPend
	s.pending, s.hasPend = nil, false
	s.saveMu.Unlock()

	if !has {
		return
	}
	if err := s.Save(pending); err != nil {
		s.log.Error().Err(err).Int("slots", len(pending)).Msg("deferred save failed")
	}
}

// withTx runs fn in a transaction, rolling back on error.
func withTx(db *sql.DB, fn func(tx *sql.Tx) error) error {
	tx, err := db.Begin()
	if err != nil {
		return err
	}
	defer tx.Rollback() //nolint:errcheck // rollback after commit is a no-op

	if err := fn(tx); err != nil {
		return err
	}
	return tx.Commit()
}
