// ABOUTME: Builds the monthly aggregate from repository queries.
// ABOUTME: Either every query succeeds or no aggregate is returned.
package storage

import (
	"fmt"
	"time"

	"github.com/harperreed/fde/internal/models"
)

// BuildMonth assembles totals and daily records for the month containing anchor.
// Only the year and month of anchor are significant. The result is computed
// on every call and never cached.
func BuildMonth(repo Repository, anchor time.Time) (*models.Month, error) {
	year, month := anchor.Year(), anchor.Month()

	revenue, err := repo.MonthlyRevenue(year, month)
	if err != nil {
		return nil, fmt.Errorf("build month revenue: %w", err)
	}

	hours, err := repo.MonthlyHours(year, month)
	if err != nil {
		return nil, fmt.Errorf("build month hours: %w", err)
	}

	overtime, err := repo.MonthlyOvertime(year, month)
	if err != nil {
		return nil, fmt.Errorf("build month overtime: %w", err)
	}

	records, err := repo.RecordsForMonth(year, month)
	if err != nil {
		return nil, fmt.Errorf("build month records: %w", err)
	}

	m := models.NewMonth(anchor)
	m.Revenue = revenue
	m.Hours = hours
	m.Overtime = overtime
	m.Records = append(m.Records, records...)
	return m, nil
}
