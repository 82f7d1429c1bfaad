package types

import (
	"time"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
)

// BillingMonth identifies one calendar month
type BillingMonth struct {
	Year  int `json:"year"`
	Month int `json:"month"`
}

// NewBillingMonth validates and builds a BillingMonth
func NewBillingMonth(year, month int) (BillingMonth, error) {
	m := BillingMonth{Year: year, Month: month}
	if err := m.Validate(); err != nil {
		return BillingMonth{}, err
	}
	return m, nil
}

func (m BillingMonth) Validate() error {
	if m.Month < 1 || m.Month > 12 {
		return ierr.NewError("month out of range").
			WithHint("Month must be between 1 and 12").
			WithReportableDetails(map[string]any{
				"month": m.Month,
			}).
			Mark(ierr.ErrValidation)
	}
	if m.Year < 1 {
		return ierr.NewError("year out of range").
			WithHint("Year must be a positive number").
			WithReportableDetails(map[string]any{
				"year": m.Year,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Previous returns the month before m, rolling over to December of the prior year
func (m BillingMonth) Previous() BillingMonth {
	if m.Month == 1 {
		return BillingMonth{Year: m.Year - 1, Month: 12}
	}
	return BillingMonth{Year: m.Year, Month: m.Month - 1}
}

// FirstDay returns midnight UTC on the first of the month
func (m BillingMonth) FirstDay() time.Time {
	return time.Date(m.Year, time.Month(m.Month), 1, 0, 0, 0, 0, time.UTC)
}

// LastDay returns midnight UTC on the last calendar day of the month
func (m BillingMonth) LastDay() time.Time {
	return m.FirstDay().AddDate(0, 1, -1)
}

// DaysInMonth returns the number of calendar days in the month
func (m BillingMonth) DaysInMonth() int {
	return m.LastDay().Day()
}

// Contains reports whether t falls on a calendar day within the month (in t's location)
func (m BillingMonth) Contains(t time.Time) bool {
	return t.Year() == m.Year && int(t.Month()) == m.Month
}

func (m BillingMonth) String() string {
	return m.FirstDay().Format("January 2006")
}
