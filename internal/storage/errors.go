// ABOUTME: Error taxonomy surfaced by the storage layer.
// ABOUTME: NotFound and Conflict are sentinels; everything else is a StorageError.
package storage

import (
	"errors"
	"fmt"

	"modernc.org/sqlite"
	sqlite3 "modernc.org/sqlite/lib"
)

var (
	// ErrNotFound is returned when no record exists for the requested date.
	ErrNotFound = errors.New("not found")
	// ErrConflict is returned when inserting a date that already exists.
	ErrConflict = errors.New("conflict")
)

// StorageError reports an I/O or query failure of the embedded database.
type StorageError struct {
	Op  string
	Err error
}

func (e *StorageError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *StorageError) Unwrap() error {
	return e.Err
}

// IsStorageError reports whether err is (or wraps) a StorageError.
func IsStorageError(err error) bool {
	var se *StorageError
	return errors.As(err, &se)
}

// isConstraintViolation reports whether err comes from a violated SQLite constraint.
func isConstraintViolation(err error) bool {
	var sqliteErr *sqlite.Error
	if errors.As(err, &sqliteErr) {
		return sqliteErr.Code()&0xff == sqlite3.SQLITE_CONSTRAINT
	}
	return false
}
