// ABOUTME: MCP tool implementations for daily revenue records.
// ABOUTME: Provides day lookup, save, delete and the month report.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/harperreed/fde/internal/models"
	"github.com/harperreed/fde/internal/storage"
	"github.com/modelcontextprotocol/go-sdk/mcp"
	"go.uber.org/zap"
)

func (s *Server) registerTools() {
	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_day",
		Description: "Get the record for one day, creating an empty one if missing",
	}, s.handleGetDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "save_day",
		Description: "Save revenue, hours, overtime and comment for one day",
	}, s.handleSaveDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "delete_day",
		Description: "Delete the record for one day",
	}, s.handleDeleteDay)

	mcp.AddTool(s.mcpServer, &mcp.Tool{
		Name:        "get_month",
		Description: "Get totals, delta, bonus and daily records for a month",
	}, s.handleGetMonth)
}

// Tool input/output types

type dayInput struct {
	Date string `json:"date" jsonschema:"Day as DD/MM/YYYY or YYYY-MM-DD"`
}

type saveDayInput struct {
	Date     string  `json:"date" jsonschema:"Day as DD/MM/YYYY or YYYY-MM-DD"`
	Revenue  float64 `json:"revenue" jsonschema:"Revenue earned that day"`
	Hours    float64 `json:"hours,omitempty" jsonschema:"Hours worked"`
	Overtime float64 `json:"overtime_hours,omitempty" jsonschema:"Overtime hours worked"`
	Comment  string  `json:"comment,omitempty" jsonschema:"Optional comment, empty clears it"`
}

type monthInput struct {
	Date string `json:"date,omitempty" jsonschema:"Any day of the month, defaults to today"`
}

type dayOutput struct {
	Record  *models.Record `json:"record"`
	Created bool           `json:"created"`
	Message string         `json:"message"`
}

type simpleOutput struct {
	Message string `json:"message"`
}

type monthOutput struct {
	Label    string           `json:"label"`
	Revenue  float64          `json:"total_revenue"`
	Hours    float64          `json:"total_hours"`
	Overtime float64          `json:"total_overtime_hours"`
	Delta    float64          `json:"delta"`
	Bonus    float64          `json:"bonus"`
	Records  []*models.Record `json:"daily_records"`
}

// parseDate accepts the command line form first, then the stored form.
func parseDate(s string) (time.Time, error) {
	if day, err := models.ParseDay(s); err == nil {
		return day, nil
	}
	day, err := time.Parse(models.DateLayout, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a DD/MM/YYYY or YYYY-MM-DD date", models.ErrParse, s)
	}
	return day, nil
}

// Tool handlers

func (s *Server) handleGetDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, dayOutput, error) {
	day, err := parseDate(input.Date)
	if err != nil {
		return nil, dayOutput{}, err
	}

	r, created, err := s.repo.LookupOrCreate(day)
	if err != nil {
		return nil, dayOutput{}, fmt.Errorf("failed to look up day: %w", err)
	}

	msg := fmt.Sprintf("Found %s", r.Date)
	if created {
		msg = fmt.Sprintf("Created empty record for %s", r.Date)
	}
	return nil, dayOutput{Record: r, Created: created, Message: msg}, nil
}

func (s *Server) handleSaveDay(ctx context.Context, req *mcp.CallToolRequest, input saveDayInput) (*mcp.CallToolResult, dayOutput, error) {
	day, err := parseDate(input.Date)
	if err != nil {
		return nil, dayOutput{}, err
	}

	r := models.NewRecord(day)
	r.Revenue = input.Revenue
	r.Hours = input.Hours
	r.Overtime = input.Overtime
	if input.Comment != "" {
		r.WithComment(input.Comment)
	}

	created := false
	err = s.repo.Update(r)
	if errors.Is(err, storage.ErrNotFound) {
		err = s.repo.Add(r)
		created = true
	}
	if err != nil {
		return nil, dayOutput{}, fmt.Errorf("failed to save day: %w", err)
	}

	s.logger.Info("day saved", zap.String("date", r.Date), zap.Bool("created", created))
	return nil, dayOutput{
		Record:  r,
		Created: created,
		Message: fmt.Sprintf("Saved %s", r),
	}, nil
}

func (s *Server) handleDeleteDay(ctx context.Context, req *mcp.CallToolRequest, input dayInput) (*mcp.CallToolResult, simpleOutput, error) {
	day, err := parseDate(input.Date)
	if err != nil {
		return nil, simpleOutput{}, err
	}

	if err := s.repo.Delete(day); err != nil {
		return nil, simpleOutput{}, fmt.Errorf("failed to delete day: %w", err)
	}

	s.logger.Info("day deleted", zap.String("date", models.DateKey(day)))
	return nil, simpleOutput{
		Message: fmt.Sprintf("Deleted %s", models.DateKey(day)),
	}, nil
}

func (s *Server) handleGetMonth(ctx context.Context, req *mcp.CallToolRequest, input monthInput) (*mcp.CallToolResult, monthOutput, error) {
	anchor := s.now()
	if input.Date != "" {
		day, err := parseDate(input.Date)
		if err != nil {
			return nil, monthOutput{}, err
		}
		anchor = day
	}

	m, err := storage.BuildMonth(s.repo, anchor)
	if err != nil {
		return nil, monthOutput{}, fmt.Errorf("failed to build month: %w", err)
	}

	return nil, newMonthOutput(m), nil
}

func newMonthOutput(m *models.Month) monthOutput {
	return monthOutput{
		Label:    m.Label(),
		Revenue:  m.Revenue,
		Hours:    m.Hours,
		Overtime: m.Overtime,
		Delta:    m.Delta(),
		Bonus:    m.Bonus(),
		Records:  m.Records,
	}
}
