// ABOUTME: Month-level aggregate queries over the CA table.
// ABOUTME: Sums revenue, hours and overtime and lists the days of a month.
package storage

import (
	"database/sql"
	"time"

	"github.com/harperreed/fde/internal/models"
)

// MonthlyRevenue returns the sum of revenue for the given month, 0 when empty.
func (s *Store) MonthlyRevenue(year int, month time.Month) (float64, error) {
	return s.monthlySum("monthly revenue", "ca", year, month)
}

// MonthlyHours returns the sum of hours worked for the given month.
func (s *Store) MonthlyHours(year int, month time.Month) (float64, error) {
	return s.monthlySum("monthly hours", "hours", year, month)
}

// MonthlyOvertime returns the sum of overtime hours for the given month.
func (s *Store) MonthlyOvertime(year int, month time.Month) (float64, error) {
	return s.monthlySum("monthly overtime", "hsup", year, month)
}

// RecordsForMonth returns the records of the given month in ascending date order.
func (s *Store) RecordsForMonth(year int, month time.Month) ([]*models.Record, error) {
	var records []*models.Record
	err := s.withConn("records for month", func(db *sql.DB) error {
		rows, err := db.Query(selectColumns+" WHERE date LIKE ? ORDER BY date ASC", monthPattern(year, month))
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

// monthlySum sums column over the rows of one month. column is never user input.
func (s *Store) monthlySum(op, column string, year int, month time.Month) (float64, error) {
	var sum float64
	err := s.withConn(op, func(db *sql.DB) error {
		query := "SELECT COALESCE(SUM(" + column + "), 0.0) FROM CA WHERE date LIKE ?"
		return db.QueryRow(query, monthPattern(year, month)).Scan(&sum)
	})
	if err != nil {
		return 0, err
	}
	return sum, nil
}

// monthPattern returns the LIKE pattern matching every date of a month.
func monthPattern(year int, month time.Month) string {
	return models.MonthPrefix(year, month) + "-%"
}
