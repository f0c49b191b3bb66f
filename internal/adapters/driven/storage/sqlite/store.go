package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	_ "modernc.org/sqlite"

	"github.com/custodia-labs/kmzmerge/internal/core/ports/driven"
)

// DatabaseFile is the history database inside the data directory.
const DatabaseFile = "history.db"

// Store owns the history database connection.
type Store struct {
	db   *sql.DB
	path string
}

// NewStore opens or creates dataDir/history.db and brings its schema up to
// date. An empty dataDir means ~/.kmzmerge/data.
func NewStore(dataDir string) (*Store, error) {
	if dataDir == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("resolving home directory: %w", err)
		}
		dataDir = filepath.Join(home, ".kmzmerge", "data")
	}
	if err := os.MkdirAll(dataDir, 0o700); err != nil {
		return nil, fmt.Errorf("creating data directory: %w", err)
	}

	dbPath := filepath.Join(dataDir, DatabaseFile)
	db, err := sql.Open("sqlite", dbPath+"?_pragma=journal_mode(WAL)&_pragma=busy_timeout(5000)")
	if err != nil {
		return nil, fmt.Errorf("opening %s: %w", dbPath, err)
	}

	if err := migrateUp(db); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrating %s: %w", dbPath, err)
	}

	return &Store{db: db, path: dbPath}, nil
}

func (s *Store) Close() error { return s.db.Close() }

// Path returns the database file path.
func (s *Store) Path() string { return s.path }

// RunStore returns the run history backed by this database.
func (s *Store) RunStore() driven.RunStore {
	return &runStore{store: s}
}

// SchemaVersion returns the highest applied migration version.
func (s *Store) SchemaVersion() (int, error) {
	return schemaVersion(s.db)
}
