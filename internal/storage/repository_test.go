// ABOUTME: Tests for the SQLite Store.
// ABOUTME: Verifies single-day CRUD, lookup-or-create and the error taxonomy.
package storage

import (
	"database/sql"
	"errors"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/harperreed/fde/internal/models"
)

func setupTestStore(t *testing.T) *Store {
	t.Helper()

	dbPath := filepath.Join(t.TempDir(), "data", "fde.sq3")
	s, err := New(dbPath)
	if err != nil {
		t.Fatalf("Failed to open store: %v", err)
	}
	return s
}

func day(year int, month time.Month, d int) time.Time {
	return time.Date(year, month, d, 0, 0, 0, 0, time.UTC)
}

func countRows(t *testing.T, s *Store, date string) int {
	t.Helper()

	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	defer db.Close()

	var n int
	if err := db.QueryRow("SELECT COUNT(*) FROM CA WHERE date = ?", date).Scan(&n); err != nil {
		t.Fatalf("count rows: %v", err)
	}
	return n
}

func TestNewCreatesDirectoryAndTable(t *testing.T) {
	s := setupTestStore(t)

	if _, err := os.Stat(s.Path()); err != nil {
		t.Fatalf("expected database file to exist: %v", err)
	}

	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	defer db.Close()

	var count int
	err = db.QueryRow("SELECT COUNT(*) FROM sqlite_master WHERE type='table' AND name='CA'").Scan(&count)
	if err != nil {
		t.Fatalf("query sqlite_master: %v", err)
	}
	if count != 1 {
		t.Error("table CA does not exist")
	}
}

func TestNewIsIdempotent(t *testing.T) {
	s := setupTestStore(t)
	if err := s.Add(models.NewRecord(day(2023, time.April, 1))); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	reopened, err := New(s.Path())
	if err != nil {
		t.Fatalf("reopen failed: %v", err)
	}
	exists, err := reopened.Exists(day(2023, time.April, 1))
	if err != nil || !exists {
		t.Errorf("expected record to survive reopening, exists=%v err=%v", exists, err)
	}
}

func TestNewEmptyPath(t *testing.T) {
	_, err := New("")
	if !IsStorageError(err) {
		t.Errorf("expected StorageError, got %v", err)
	}
}

func TestAddAndGet(t *testing.T) {
	s := setupTestStore(t)

	r := &models.Record{Date: "2023-04-01", Revenue: 100, Hours: 8, Overtime: 0.5}
	r.WithComment("inventory day")
	if err := s.Add(r); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	got, err := s.Get(day(2023, time.April, 1))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Date != "2023-04-01" || got.Revenue != 100 || got.Hours != 8 || got.Overtime != 0.5 {
		t.Errorf("Get returned %v", got)
	}
	if got.Comment == nil || *got.Comment != "inventory day" {
		t.Errorf("Comment mismatch: got %v", got.Comment)
	}
}

func TestGetNotFound(t *testing.T) {
	s := setupTestStore(t)

	_, err := s.Get(day(2023, time.April, 1))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if IsStorageError(err) {
		t.Error("ErrNotFound should not be reported as a StorageError")
	}
}

func TestAddConflict(t *testing.T) {
	s := setupTestStore(t)

	r := models.NewRecord(day(2023, time.April, 1))
	if err := s.Add(r); err != nil {
		t.Fatalf("first Add failed: %v", err)
	}

	dup := &models.Record{Date: r.Date, Revenue: 999}
	err := s.Add(dup)
	if !errors.Is(err, ErrConflict) {
		t.Fatalf("expected ErrConflict, got %v", err)
	}

	if n := countRows(t, s, r.Date); n != 1 {
		t.Errorf("expected exactly one row, got %d", n)
	}
	got, err := s.Get(day(2023, time.April, 1))
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Revenue != 0 {
		t.Errorf("duplicate insert changed the row: revenue = %v", got.Revenue)
	}
}

func TestLookupOrCreateMissingDay(t *testing.T) {
	s := setupTestStore(t)
	d := day(2023, time.May, 3)

	r, created, err := s.LookupOrCreate(d)
	if err != nil {
		t.Fatalf("LookupOrCreate failed: %v", err)
	}
	if !created {
		t.Error("expected a row to be created")
	}
	if r.Date != "2023-05-03" {
		t.Errorf("Date = %s, want 2023-05-03", r.Date)
	}

	exists, err := s.Exists(d)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if !exists {
		t.Fatal("expected template row to be persisted")
	}

	got, err := s.Get(d)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Revenue != 0.0 || got.Hours != 0.0 || got.Overtime != 0.0 {
		t.Errorf("expected zero figures, got %v", got)
	}
	if got.Comment != nil {
		t.Errorf("expected absent comment, got %q", *got.Comment)
	}
}

func TestLookupOrCreateExistingDay(t *testing.T) {
	s := setupTestStore(t)
	d := day(2023, time.May, 3)

	stored := &models.Record{Date: "2023-05-03", Revenue: 321.5, Hours: 6, Overtime: 2}
	stored.WithComment("busy")
	if err := s.Add(stored); err != nil {
		t.Fatalf("Add failed: %v", err)
	}

	r, created, err := s.LookupOrCreate(d)
	if err != nil {
		t.Fatalf("LookupOrCreate failed: %v", err)
	}
	if created {
		t.Error("expected no write for an existing day")
	}
	if r.Revenue != 321.5 || r.Hours != 6 || r.Overtime != 2 || r.Comment == nil || *r.Comment != "busy" {
		t.Errorf("LookupOrCreate returned %v, want stored record", r)
	}
	if n := countRows(t, s, "2023-05-03"); n != 1 {
		t.Errorf("expected one row, got %d", n)
	}
}

func TestUpdate(t *testing.T) {
	s := setupTestStore(t)
	d := day(2023, time.June, 10)

	r, _, err := s.LookupOrCreate(d)
	if err != nil {
		t.Fatalf("LookupOrCreate failed: %v", err)
	}

	r.Revenue = 450.75
	r.Hours = 9
	r.Overtime = 1.5
	r.WithComment("late closing")
	if err := s.Update(r); err != nil {
		t.Fatalf("Update failed: %v", err)
	}

	got, err := s.Get(d)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if got.Revenue != 450.75 || got.Hours != 9 || got.Overtime != 1.5 {
		t.Errorf("Update not applied: %v", got)
	}
	if got.Comment == nil || *got.Comment != "late closing" {
		t.Errorf("Comment mismatch: %v", got.Comment)
	}

	// Clearing the comment stores NULL again
	got.Comment = nil
	if err := s.Update(got); err != nil {
		t.Fatalf("Update failed: %v", err)
	}
	again, err := s.Get(d)
	if err != nil {
		t.Fatalf("Get failed: %v", err)
	}
	if again.Comment != nil {
		t.Errorf("expected comment to be cleared, got %q", *again.Comment)
	}
}

func TestUpdateMissingDay(t *testing.T) {
	s := setupTestStore(t)

	err := s.Update(&models.Record{Date: "2023-06-11", Revenue: 10})
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	exists, err := s.Exists(day(2023, time.June, 11))
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("Update must not create a row")
	}
}

func TestDelete(t *testing.T) {
	s := setupTestStore(t)
	d := day(2023, time.July, 14)

	if err := s.Add(models.NewRecord(d)); err != nil {
		t.Fatalf("Add failed: %v", err)
	}
	if err := s.Delete(d); err != nil {
		t.Fatalf("Delete failed: %v", err)
	}

	exists, err := s.Exists(d)
	if err != nil {
		t.Fatalf("Exists failed: %v", err)
	}
	if exists {
		t.Error("expected record to be deleted")
	}

	// Second delete is a no-op
	if err := s.Delete(d); err != nil {
		t.Errorf("second Delete failed: %v", err)
	}
}

func TestStorageErrorOnBrokenTable(t *testing.T) {
	s := setupTestStore(t)

	db, err := sql.Open("sqlite", s.Path())
	if err != nil {
		t.Fatalf("open raw database: %v", err)
	}
	if _, err := db.Exec("DROP TABLE CA"); err != nil {
		t.Fatalf("drop table: %v", err)
	}
	db.Close()

	d := day(2023, time.April, 1)

	_, err = s.Exists(d)
	if !IsStorageError(err) {
		t.Errorf("Exists: expected StorageError, got %v", err)
	}
	_, err = s.Get(d)
	if !IsStorageError(err) {
		t.Errorf("Get: expected StorageError, got %v", err)
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("Get: query failure must not look like ErrNotFound")
	}
	_, _, err = s.LookupOrCreate(d)
	if !IsStorageError(err) {
		t.Errorf("LookupOrCreate: expected StorageError, got %v", err)
	}
	if err := s.Add(models.NewRecord(d)); !IsStorageError(err) {
		t.Errorf("Add: expected StorageError, got %v", err)
	}
	if _, err := s.MonthlyRevenue(2023, time.April); !IsStorageError(err) {
		t.Errorf("MonthlyRevenue: expected StorageError, got %v", err)
	}

	var se *StorageError
	if errors.As(err, &se) && se.Op == "" {
		t.Error("expected StorageError to name the failing operation")
	}
}

func TestListRecordsSorted(t *testing.T) {
	s := setupTestStore(t)

	for _, d := range []time.Time{day(2023, time.May, 2), day(2022, time.December, 31), day(2023, time.January, 15)} {
		if err := s.Add(models.NewRecord(d)); err != nil {
			t.Fatalf("Add failed: %v", err)
		}
	}

	records, err := s.ListRecords()
	if err != nil {
		t.Fatalf("ListRecords failed: %v", err)
	}
	want := []string{"2022-12-31", "2023-01-15", "2023-05-02"}
	if len(records) != len(want) {
		t.Fatalf("expected %d records, got %d", len(want), len(records))
	}
	for i, r := range records {
		if r.Date != want[i] {
			t.Errorf("records[%d] = %s, want %s", i, r.Date, want[i])
		}
	}
}
