// ABOUTME: Record model for one calendar day of revenue, hours and overtime.
// ABOUTME: Also holds the date helpers shared by storage and the CLI.
package models

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// DateLayout is the storage form of a record date.
const DateLayout = "2006-01-02"

// InputLayout is the DD/MM/YYYY form accepted on the command line.
const InputLayout = "02/01/2006"

// ErrParse is returned when a date typed by the user cannot be parsed.
var ErrParse = errors.New("parse error")

// Record is one row of the CA table: the figures for a single day.
// Date is the identity of the record and never changes once created.
type Record struct {
	Date     string  `json:"date" yaml:"date"`
	Revenue  float64 `json:"revenue" yaml:"revenue"`
	Hours    float64 `json:"hours" yaml:"hours"`
	Overtime float64 `json:"overtime_hours" yaml:"overtime_hours"`
	Comment  *string `json:"comment,omitempty" yaml:"comment,omitempty"`
}

// NewRecord creates the template record for a day: zero figures, no comment.
func NewRecord(day time.Time) *Record {
	return &Record{Date: DateKey(day)}
}

// WithComment sets the comment on the record.
func (r *Record) WithComment(comment string) *Record {
	r.Comment = &comment
	return r
}

// Day returns the record date as a time.Time at midnight UTC.
func (r *Record) Day() (time.Time, error) {
	return time.Parse(DateLayout, r.Date)
}

// String renders the record as "(date : revenue [hours/overtime 'comment'])".
func (r *Record) String() string {
	comment := "None"
	if r.Comment != nil {
		comment = fmt.Sprintf("Some(%q)", *r.Comment)
	}
	return fmt.Sprintf("(%s : %s [%s/%s '%s'])",
		r.Date, FormatNumber(r.Revenue), FormatNumber(r.Hours), FormatNumber(r.Overtime), comment)
}

// FormatNumber prints a float with the shortest exact representation.
func FormatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// DateKey formats a day the way it is stored in the CA table.
func DateKey(day time.Time) string {
	return day.Format(DateLayout)
}

// MonthPrefix returns the YYYY-MM prefix shared by every date of a month.
func MonthPrefix(year int, month time.Month) string {
	return fmt.Sprintf("%04d-%02d", year, int(month))
}

// ParseDay parses a DD/MM/YYYY date typed on the command line.
func ParseDay(s string) (time.Time, error) {
	t, err := time.Parse(InputLayout, strings.TrimSpace(s))
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: %q is not a DD/MM/YYYY date", ErrParse, s)
	}
	return t, nil
}
