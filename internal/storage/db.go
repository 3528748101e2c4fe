// ABOUTME: SQLite store for daily records and its connection lifecycle.
// ABOUTME: Uses modernc.org/sqlite (pure Go, no CGO required); one connection per operation.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"
	_ "modernc.org/sqlite"
)

// DefaultDBPath is the storage location used when nothing is configured.
const DefaultDBPath = "./data/fildeclair.sq3"

// Store persists records in the CA table of a SQLite file.
// It holds no open handle: each operation acquires a connection and
// releases it before returning.
type Store struct {
	dbPath string
	logger *zap.Logger
}

// Option configures a Store.
type Option func(*Store)

// WithLogger sets the logger used for diagnostic output.
func WithLogger(logger *zap.Logger) Option {
	return func(s *Store) {
		if logger != nil {
			s.logger = logger
		}
	}
}

// Compile-time check that Store implements Repository.
var _ Repository = (*Store)(nil)

// New prepares a store at dbPath, creating the parent directory and the
// CA table if they do not exist yet.
func New(dbPath string, opts ...Option) (*Store, error) {
	if dbPath == "" {
		return nil, &StorageError{Op: "open store", Err: errors.New("empty database path")}
	}

	dir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dir, 0750); err != nil {
		return nil, &StorageError{Op: "create data directory", Err: err}
	}

	s := &Store{dbPath: dbPath, logger: zap.NewNop()}
	for _, opt := range opts {
		opt(s)
	}

	if err := s.withConn("initialize schema", initSchema); err != nil {
		return nil, err
	}

	// Set file permissions
	if err := os.Chmod(dbPath, 0600); err != nil && !os.IsNotExist(err) {
		return nil, &StorageError{Op: "set database permissions", Err: err}
	}

	s.logger.Debug("store ready", zap.String("path", dbPath))
	return s, nil
}

// Path returns the database file location.
func (s *Store) Path() string {
	return s.dbPath
}

// withConn opens the database, runs fn and always closes the handle.
// Errors other than ErrNotFound and ErrConflict are wrapped in a StorageError.
func (s *Store) withConn(op string, fn func(db *sql.DB) error) (err error) {
	db, err := sql.Open("sqlite", s.dbPath)
	if err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("open database: %w", err)}
	}
	defer func() {
		if cerr := db.Close(); cerr != nil && err == nil {
			err = &StorageError{Op: op, Err: fmt.Errorf("close database: %w", cerr)}
		}
	}()
	db.SetMaxOpenConns(1)

	if _, err := db.Exec("PRAGMA busy_timeout = 5000"); err != nil {
		return &StorageError{Op: op, Err: fmt.Errorf("configure connection: %w", err)}
	}

	if err := fn(db); err != nil {
		if errors.Is(err, ErrNotFound) || errors.Is(err, ErrConflict) {
			return err
		}
		s.logger.Warn("storage operation failed", zap.String("op", op), zap.Error(err))
		return &StorageError{Op: op, Err: err}
	}
	return nil
}
