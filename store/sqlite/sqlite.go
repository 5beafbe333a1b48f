/*
Package sqlite provides a SQLite-backed implementation of ledger.Storage.

PURPOSE:
  Durable single-file persistence for the four ledger slots. Each slot holds
  the full JSON-serialized collection; every save overwrites the slot in
  place. There are no per-entity rows and no delta writes - the contract is
  load-or-default at startup and full overwrite on each change.

KEY TABLE:
  slots:
    name       TEXT PRIMARY KEY   slot name (accounts, transactions, ...)
    data       TEXT NOT NULL      JSON array of entity records
    updated_at TEXT NOT NULL      RFC 3339 timestamp of the last overwrite

WAL MODE:
  SQLite is opened with WAL (Write-Ahead Logging):
  - Multiple readers don't block
  - Single writer at a time
  - Better crash recovery

CONCURRENCY:
  Uses sync.RWMutex for thread-safety. The engine serializes mutations, but
  slot reads can come from multiple handler goroutines.

USAGE:
  store, err := sqlite.New("./data/finance.db")
  if err != nil {
      log.Fatal(err)
  }
  defer store.Close()

  engine := ledger.NewEngine(store)
  engine.Load(ctx)

SEE ALSO:
  - ledger/storage.go: Interface and slot contract
  - ledger/store/memory.go: In-memory implementation for testing
*/
package sqlite

import (
	"context"
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "github.com/mattn/go-sqlite3"

	"github.com/warp/finance-ledger/ledger"
)

// Store implements ledger.Storage using SQLite.
type Store struct {
	db *sql.DB
	mu sync.RWMutex
}

// New creates a new SQLite store with the given database path.
// Use ":memory:" for an in-memory database.
func New(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to migrate database: %w", err)
	}

	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS slots (
		name TEXT PRIMARY KEY,
		data TEXT NOT NULL,
		updated_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// =============================================================================
// STORAGE (ledger.Storage interface)
// =============================================================================

// LoadSlot reads a slot into v. Returns ledger.ErrSlotNotFound for slots
// that were never written.
func (s *Store) LoadSlot(ctx context.Context, slot string, v any) error {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var data string
	err := s.db.QueryRowContext(ctx,
		"SELECT data FROM slots WHERE name = ?", slot,
	).Scan(&data)

	if err == sql.ErrNoRows {
		return ledger.ErrSlotNotFound
	}
	if err != nil {
		return fmt.Errorf("failed to load slot %s: %w", slot, err)
	}

	return json.Unmarshal([]byte(data), v)
}

// SaveSlot serializes v and overwrites the slot.
func (s *Store) SaveSlot(ctx context.Context, slot string, v any) error {
	data, err := json.Marshal(v)
	if err != nil {
		return fmt.Errorf("failed to serialize slot %s: %w", slot, err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	query := `
		INSERT INTO slots (name, data, updated_at)
		VALUES (?, ?, ?)
		ON CONFLICT(name) DO UPDATE SET
			data = excluded.data,
			updated_at = excluded.updated_at
	`
	_, err = s.db.ExecContext(ctx, query,
		slot, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("failed to save slot %s: %w", slot, err)
	}
	return nil
}

// =============================================================================
// UTILITIES
// =============================================================================

// Reset clears all slots (for testing/demo).
func (s *Store) Reset(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.ExecContext(ctx, "DELETE FROM slots")
	return err
}
