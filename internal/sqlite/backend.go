// Package sqlite implements the durable local store on SQLite. It owns the
// three record tables (events, participations, profiles) and the sync queue,
// and is the single source of truth for what the application reads while
// offline.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"
	"sync"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"

	"github.com/christianbiango/team-up/pkg/types"
)

// dbFileName is the SQLite database file created under DataDir.
const dbFileName = "teamup.db"

// Compile-time interface check: Backend must implement Store.
var _ types.Store = (*Backend)(nil)

// Backend implements the Store interface using SQLite. The database file
// lives under DataDir and survives process restart.
type Backend struct {
	mu     sync.RWMutex
	open   bool
	config types.Config
	db     *sql.DB

	events         *eventsTable
	participations *participationsTable
	profiles       *profilesTable
	queue          *queueTable
}

// NewBackend creates a new SQLite backend instance. The backend is not
// usable until Open is called with a Config.
func NewBackend() *Backend {
	b := &Backend{}
	b.events = &eventsTable{backend: b}
	b.participations = &participationsTable{backend: b}
	b.profiles = &profilesTable{backend: b}
	b.queue = &queueTable{backend: b}
	return b
}

// Open initializes the backend with the given configuration. Creates
// DataDir if it does not exist and applies the schema. Existing data is
// preserved; the schema uses IF NOT EXISTS throughout.
// Returns ErrAlreadyOpen if already open.
func (b *Backend) Open(config types.Config) error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if b.open {
		return types.ErrAlreadyOpen
	}

	if err := config.Validate(); err != nil {
		return err
	}

	if err := os.MkdirAll(config.DataDir, 0o755); err != nil {
		return fmt.Errorf("creating data dir: %w", err)
	}

	dbPath := filepath.Join(config.DataDir, dbFileName)
	db, err := sql.Open("sqlite", dbPath)
	if err != nil {
		return fmt.Errorf("opening database: %w", err)
	}

	if _, err := db.Exec(schemaSQL); err != nil {
		db.Close()
		return fmt.Errorf("applying schema: %w", err)
	}

	b.db = db
	b.config = config
	b.open = true
	return nil
}

// Close releases the SQLite connection. After Close, table operations
// return ErrStoreClosed. Close is idempotent.
func (b *Backend) Close() error {
	b.mu.Lock()
	defer b.mu.Unlock()

	if !b.open {
		return nil // idempotent
	}

	if b.db != nil {
		if err := b.db.Close(); err != nil {
			return err
		}
		b.db = nil
	}

	b.open = false
	return nil
}

// Events returns the events table accessor.
func (b *Backend) Events() types.EventTable { return b.events }

// Participations returns the participations table accessor.
func (b *Backend) Participations() types.ParticipationTable { return b.participations }

// Profiles returns the profiles table accessor.
func (b *Backend) Profiles() types.ProfileTable { return b.profiles }

// Queue returns the sync queue accessor.
func (b *Backend) Queue() types.QueueTable { return b.queue }

// ClearAll removes every row from all four tables. Used on sign-out.
func (b *Backend) ClearAll() error {
	db, err := b.handle()
	if err != nil {
		return err
	}

	tx, err := db.Begin()
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback()

	for _, table := range []string{"events", "participations", "profiles", "sync_queue"} {
		if _, err := tx.Exec("DELETE FROM " + table); err != nil {
			return fmt.Errorf("clearing %s: %w", table, err)
		}
	}

	return tx.Commit()
}

// handle returns the live database handle, or ErrStoreClosed.
func (b *Backend) handle() (*sql.DB, error) {
	b.mu.RLock()
	defer b.mu.RUnlock()
	if !b.open {
		return nil, types.ErrStoreClosed
	}
	return b.db, nil
}

// NewRecordID generates a client-side unique record ID. IDs are generated
// the same way online and offline so no re-keying is needed on sync.
func NewRecordID() string {
	id, err := uuid.NewV7()
	if err != nil {
		// Fallback to UUID v4 if v7 generation fails
		return uuid.New().String()
	}
	return id.String()
}
