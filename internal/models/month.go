// ABOUTME: Month aggregate model and the bonus rules computed from its revenue.
// ABOUTME: Delta and Bonus use decimal arithmetic so boundary values are exact.
package models

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	// Threshold is the monthly revenue above which a bonus is paid.
	Threshold = 3421.15
	// BonusRate is the share of the monthly revenue paid as bonus.
	BonusRate = 0.02
)

// Month is the derived view of one calendar month. It is never persisted.
type Month struct {
	Anchor   time.Time `json:"-" yaml:"-"`
	Year     int       `json:"year" yaml:"year"`
	Month    int       `json:"month" yaml:"month"`
	Revenue  float64   `json:"total_revenue" yaml:"total_revenue"`
	Hours    float64   `json:"total_hours" yaml:"total_hours"`
	Overtime float64   `json:"total_overtime_hours" yaml:"total_overtime_hours"`
	Records  []*Record `json:"daily_records" yaml:"daily_records"`
}

// NewMonth creates an empty aggregate for the month containing anchor.
func NewMonth(anchor time.Time) *Month {
	return &Month{
		Anchor:  anchor,
		Year:    anchor.Year(),
		Month:   int(anchor.Month()),
		Records: []*Record{},
	}
}

// Label returns the month as MM-YYYY.
func (m *Month) Label() string {
	return m.Anchor.Format("01-2006")
}

// Delta returns the monthly revenue minus the bonus threshold.
func (m *Month) Delta() float64 {
	return Delta(m.Revenue)
}

// Bonus returns the bonus earned for the month.
func (m *Month) Bonus() float64 {
	return Bonus(m.Revenue)
}

// Delta returns total - Threshold.
func Delta(total float64) float64 {
	d, _ := decimal.NewFromFloat(total).Sub(decimal.NewFromFloat(Threshold)).Float64()
	return d
}

// Bonus returns total * BonusRate when total is strictly above Threshold, else 0.
func Bonus(total float64) float64 {
	t := decimal.NewFromFloat(total)
	if !t.GreaterThan(decimal.NewFromFloat(Threshold)) {
		return 0.0
	}
	b, _ := t.Mul(decimal.NewFromFloat(BonusRate)).Float64()
	return b
}
