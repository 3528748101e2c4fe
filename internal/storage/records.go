// ABOUTME: Single-day record operations for SQLite storage.
// ABOUTME: Implements exists, get, lookup-or-create, add, update and delete on the CA table.
package storage

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fde/internal/models"
	"go.uber.org/zap"
)

const selectColumns = `SELECT date, ca, hours, hsup, comment FROM CA`

// Exists reports whether a record is stored for day.
func (s *Store) Exists(day time.Time) (bool, error) {
	var count int
	err := s.withConn("exists", func(db *sql.DB) error {
		return db.QueryRow("SELECT COUNT(*) FROM CA WHERE date = ?", models.DateKey(day)).Scan(&count)
	})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

// Get retrieves the record stored for day.
// It returns ErrNotFound when no row matches.
func (s *Store) Get(day time.Time) (*models.Record, error) {
	var r *models.Record
	err := s.withConn("get", func(db *sql.DB) error {
		var err error
		r, err = scanRecord(db.QueryRow(selectColumns+" WHERE date = ?", models.DateKey(day)))
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("%w: %s", ErrNotFound, models.DateKey(day))
		}
		return err
	})
	if err != nil {
		return nil, err
	}
	return r, nil
}

// LookupOrCreate returns the record for day, inserting the zero-valued
// template record first when the day is not stored yet. The boolean
// reports whether a row was created.
func (s *Store) LookupOrCreate(day time.Time) (*models.Record, bool, error) {
	exists, err := s.Exists(day)
	if err != nil {
		return nil, false, err
	}
	if exists {
		r, err := s.Get(day)
		if err != nil {
			return nil, false, err
		}
		return r, false, nil
	}

	r := models.NewRecord(day)
	if err := s.Add(r); err != nil {
		return nil, false, err
	}
	return r, true, nil
}

// Add inserts a new record. It returns ErrConflict when the date is taken.
func (s *Store) Add(r *models.Record) error {
	err := s.withConn("add", func(db *sql.DB) error {
		_, err := db.Exec(`
			INSERT INTO CA (date, ca, hours, hsup, comment)
			VALUES (?, ?, ?, ?, ?)`,
			r.Date, r.Revenue, r.Hours, r.Overtime, r.Comment)
		if err != nil && isConstraintViolation(err) {
			return fmt.Errorf("%w: %s already exists", ErrConflict, r.Date)
		}
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Debug("record added", zap.String("date", r.Date))
	return nil
}

// Update overwrites the figures and comment of the record with r.Date.
// It returns ErrNotFound when no row has that date.
func (s *Store) Update(r *models.Record) error {
	err := s.withConn("update", func(db *sql.DB) error {
		result, err := db.Exec(`
			UPDATE CA SET ca = ?, hours = ?, hsup = ?, comment = ?
			WHERE date = ?`,
			r.Revenue, r.Hours, r.Overtime, r.Comment, r.Date)
		if err != nil {
			return err
		}

		affected, err := result.RowsAffected()
		if err != nil {
			return err
		}
		if affected == 0 {
			return fmt.Errorf("%w: %s", ErrNotFound, r.Date)
		}
		return nil
	})
	if err != nil {
		return err
	}
	s.logger.Debug("record updated", zap.String("date", r.Date))
	return nil
}

// Delete removes the record for day. Deleting a missing day is a no-op.
func (s *Store) Delete(day time.Time) error {
	var affected int64
	err := s.withConn("delete", func(db *sql.DB) error {
		result, err := db.Exec("DELETE FROM CA WHERE date = ?", models.DateKey(day))
		if err != nil {
			return err
		}
		affected, err = result.RowsAffected()
		return err
	})
	if err != nil {
		return err
	}
	s.logger.Debug("record deleted", zap.String("date", models.DateKey(day)), zap.Int64("rows", affected))
	return nil
}

// ListRecords returns every stored record, oldest first.
func (s *Store) ListRecords() ([]*models.Record, error) {
	var records []*models.Record
	err := s.withConn("list records", func(db *sql.DB) error {
		rows, err := db.Query(selectColumns + " ORDER BY date ASC")
		if err != nil {
			return err
		}
		defer rows.Close()

		records, err = scanRecords(rows)
		return err
	})
	if err != nil {
		return nil, err
	}
	return records, nil
}

// scanRecord scans a single row into a Record.
func scanRecord(row *sql.Row) (*models.Record, error) {
	var r models.Record
	var comment sql.NullString

	if err := row.Scan(&r.Date, &r.Revenue, &r.Hours, &r.Overtime, &comment); err != nil {
		return nil, err
	}
	if comment.Valid {
		r.Comment = &comment.String
	}
	return &r, nil
}

// scanRecords scans multiple rows into a slice of Records.
func scanRecords(rows *sql.Rows) ([]*models.Record, error) {
	records := []*models.Record{}

	for rows.Next() {
		var r models.Record
		var comment sql.NullString

		if err := rows.Scan(&r.Date, &r.Revenue, &r.Hours, &r.Overtime, &comment); err != nil {
			return nil, fmt.Errorf("scan record: %w", err)
		}
		if comment.Valid {
			r.Comment = &comment.String
		}
		records = append(records, &r)
	}

	return records, rows.Err()
}
