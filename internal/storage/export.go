// ABOUTME: Export and import functionality for daily records.
// ABOUTME: Supports JSON, YAML, and Markdown export formats; imports JSON.
package storage

import (
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"github.com/harperreed/fde/internal/models"
	"gopkg.in/yaml.v3"
)

// ExportData represents the full export format for daily records.
type ExportData struct {
	Version    string           `json:"version" yaml:"version"`
	ExportedAt time.Time        `json:"exported_at" yaml:"exported_at"`
	Tool       string           `json:"tool" yaml:"tool"`
	Records    []*models.Record `json:"records" yaml:"records"`
}

// ImportSummary holds counts of imported records.
type ImportSummary struct {
	Records int
}

// GetAllData retrieves all records for export.
func GetAllData(repo Repository) (*ExportData, error) {
	records, err := repo.ListRecords()
	if err != nil {
		return nil, fmt.Errorf("list records: %w", err)
	}

	return &ExportData{
		Version:    "1.0",
		ExportedAt: time.Now(),
		Tool:       "fde",
		Records:    records,
	}, nil
}

// ImportData inserts every record of data, one at a time.
// It stops at the first failure; records inserted before it stay stored.
func ImportData(repo Repository, data *ExportData) (*ImportSummary, error) {
	summary := &ImportSummary{}
	for _, r := range data.Records {
		if _, err := time.Parse(models.DateLayout, r.Date); err != nil {
			return summary, fmt.Errorf("import record %q: invalid date", r.Date)
		}
		if err := repo.Add(r); err != nil {
			return summary, fmt.Errorf("import record %s: %w", r.Date, err)
		}
		summary.Records++
	}
	return summary, nil
}

// ExportJSON exports all records as JSON.
func ExportJSON(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}
	return json.MarshalIndent(data, "", "  ")
}

// ExportYAML exports all records as YAML, grouped by month.
func ExportYAML(repo Repository) ([]byte, error) {
	data, err := GetAllData(repo)
	if err != nil {
		return nil, err
	}

	yamlData := struct {
		Version    string                  `yaml:"version"`
		ExportedAt string                  `yaml:"exported_at"`
		Tool       string                  `yaml:"tool"`
		Months     map[string][]yamlRecord `yaml:"months"`
	}{
		Version:    data.Version,
		ExportedAt: data.ExportedAt.Format(time.RFC3339),
		Tool:       data.Tool,
		Months:     make(map[string][]yamlRecord),
	}

	// Records come back sorted, so each month list stays in date order
	for _, r := range data.Records {
		month := r.Date
		if len(month) >= 7 {
			month = month[:7]
		}
		yr := yamlRecord{
			Date:     r.Date,
			Revenue:  r.Revenue,
			Hours:    r.Hours,
			Overtime: r.Overtime,
		}
		if r.Comment != nil {
			yr.Comment = *r.Comment
		}
		yamlData.Months[month] = append(yamlData.Months[month], yr)
	}

	return yaml.Marshal(yamlData)
}

type yamlRecord struct {
	Date     string  `yaml:"date"`
	Revenue  float64 `yaml:"revenue"`
	Hours    float64 `yaml:"hours"`
	Overtime float64 `yaml:"overtime_hours"`
	Comment  string  `yaml:"comment,omitempty"`
}

// ExportMarkdown exports a month report as Markdown. When anchor is nil,
// every stored month is exported.
func ExportMarkdown(repo Repository, anchor *time.Time) (string, error) {
	var months []*models.Month

	if anchor != nil {
		m, err := BuildMonth(repo, *anchor)
		if err != nil {
			return "", err
		}
		months = append(months, m)
	} else {
		records, err := repo.ListRecords()
		if err != nil {
			return "", fmt.Errorf("list records: %w", err)
		}
		seen := make(map[string]bool)
		for _, r := range records {
			day, err := r.Day()
			if err != nil {
				return "", fmt.Errorf("parse record date %q: %w", r.Date, err)
			}
			key := models.MonthPrefix(day.Year(), day.Month())
			if seen[key] {
				continue
			}
			seen[key] = true
			m, err := BuildMonth(repo, day)
			if err != nil {
				return "", err
			}
			months = append(months, m)
		}
	}

	var sb strings.Builder
	now := time.Now()

	sb.WriteString(fmt.Sprintf("# Revenue Export - %s\n\n", now.Format("2006-01-02")))
	sb.WriteString(fmt.Sprintf("Generated: %s\n\n", now.Format(time.RFC3339)))

	for _, m := range months {
		sb.WriteString(fmt.Sprintf("## %s\n\n", m.Label()))
		sb.WriteString(fmt.Sprintf("- Revenue: %.2f\n", m.Revenue))
		sb.WriteString(fmt.Sprintf("- Hours: %s\n", models.FormatNumber(m.Hours)))
		sb.WriteString(fmt.Sprintf("- Overtime: %s\n", models.FormatNumber(m.Overtime)))
		sb.WriteString(fmt.Sprintf("- Delta: %.2f\n", m.Delta()))
		sb.WriteString(fmt.Sprintf("- Bonus: %.2f\n\n", m.Bonus()))
		sb.WriteString("| Date | Revenue | Hours | Overtime | Comment |\n")
		sb.WriteString("|------|---------|-------|----------|---------|\n")
		for _, r := range m.Records {
			comment := ""
			if r.Comment != nil {
				comment = *r.Comment
			}
			sb.WriteString(fmt.Sprintf("| %s | %.2f | %s | %s | %s |\n",
				r.Date, r.Revenue, models.FormatNumber(r.Hours), models.FormatNumber(r.Overtime), comment))
		}
		sb.WriteString("\n")
	}

	return sb.String(), nil
}

// ImportJSON imports records from JSON bytes.
func ImportJSON(repo Repository, data []byte) (*ImportSummary, error) {
	var exportData ExportData
	if err := json.Unmarshal(data, &exportData); err != nil {
		return nil, fmt.Errorf("unmarshal JSON: %w", err)
	}
	return ImportData(repo, &exportData)
}
