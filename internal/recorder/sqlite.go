package recorder

import (
	"database/sql"
	"fmt"
	"log"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// SQLiteRecorder persists update history to a SQLite database.
type SQLiteRecorder struct {
	db *sql.DB
	mu sync.Mutex
}

// NewSQLiteRecorder opens (or creates) the SQLite database and runs migrations.
func NewSQLiteRecorder(dbPath string) (*SQLiteRecorder, error) {
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return nil, fmt.Errorf("open sqlite: %w", err)
	}

	// WAL mode so readers can inspect history while the watcher writes.
	if _, err := db.Exec("PRAGMA journal_mode=WAL"); err != nil {
		db.Close()
		return nil, fmt.Errorf("set WAL mode: %w", err)
	}

	r := &SQLiteRecorder{db: db}
	if err := r.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	log.Printf("[INFO] sqlite recorder opened: %s", dbPath)
	return r, nil
}

func (r *SQLiteRecorder) migrate() error {
	stmts := []string{
		`CREATE TABLE IF NOT EXISTS update_history (
			id         INTEGER PRIMARY KEY AUTOINCREMENT,
			timestamp  INTEGER NOT NULL,
			symbol     TEXT NOT NULL,
			interval   TEXT NOT NULL,
			source     TEXT,
			rows_held  INTEGER,
			rows_added INTEGER,
			earliest   TEXT,
			latest     TEXT
		)`,
		`CREATE INDEX IF NOT EXISTS idx_update_ts ON update_history(timestamp)`,
		`CREATE INDEX IF NOT EXISTS idx_update_symbol ON update_history(symbol, timestamp)`,
	}

	for _, s := range stmts {
		if _, err := r.db.Exec(s); err != nil {
			return fmt.Errorf("exec %q: %w", s[:40], err)
		}
	}
	return nil
}

func (r *SQLiteRecorder) RecordUpdate(evt *UpdateEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	var earliest, latest string
	if !evt.Earliest.IsZero() {
		earliest = evt.Earliest.Format("2006-01-02")
	}
	if !evt.Latest.IsZero() {
		latest = evt.Latest.Format("2006-01-02")
	}

	_, err := r.db.Exec(`INSERT INTO update_history
		(timestamp, symbol, interval, source, rows_held, rows_added, earliest, latest)
		VALUES (?,?,?,?,?,?,?,?)`,
		time.Now().Unix(), evt.Symbol, evt.Interval, evt.Source,
		evt.RowsHeld, evt.RowsAdded, earliest, latest,
	)
	return err
}

func (r *SQLiteRecorder) Close() error {
	return r.db.Close()
}
