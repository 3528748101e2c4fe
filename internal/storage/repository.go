// ABOUTME: Repository interface for daily record storage.
// ABOUTME: Defines the contract consumed by the CLI, the MCP server and BuildMonth.
package storage

import (
	"time"

	"github.com/harperreed/fde/internal/models"
)

// Repository defines the storage interface for daily records.
// This interface allows swapping implementations (e.g., for testing).
type Repository interface {
	// Single day operations
	Exists(day time.Time) (bool, error)
	Get(day time.Time) (*models.Record, error)
	LookupOrCreate(day time.Time) (*models.Record, bool, error)
	Add(r *models.Record) error
	Update(r *models.Record) error
	Delete(day time.Time) error

	// Month aggregates
	MonthlyRevenue(year int, month time.Month) (float64, error)
	MonthlyHours(year int, month time.Month) (float64, error)
	MonthlyOvertime(year int, month time.Month) (float64, error)
	RecordsForMonth(year int, month time.Month) ([]*models.Record, error)

	// Export/Import
	ListRecords() ([]*models.Record, error)
}
