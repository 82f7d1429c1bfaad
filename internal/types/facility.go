package types

import (
	"slices"
	"strings"
	"time"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/samber/lo"
)

// FacilityStatus is the lifecycle state of a serviced location
type FacilityStatus string

const (
	FacilityStatusActive          FacilityStatus = "ACTIVE"
	FacilityStatusPaused          FacilityStatus = "PAUSED"
	FacilityStatusSeasonalPaused  FacilityStatus = "SEASONAL_PAUSED"
	FacilityStatusPendingApproval FacilityStatus = "PENDING_APPROVAL"
	FacilityStatusClosed          FacilityStatus = "CLOSED"
)

func (s FacilityStatus) String() string {
	return string(s)
}

func (s FacilityStatus) Validate() error {
	allowedValues := []FacilityStatus{
		FacilityStatusActive,
		FacilityStatusPaused,
		FacilityStatusSeasonalPaused,
		FacilityStatusPendingApproval,
		FacilityStatusClosed,
	}
	if !slices.Contains(allowedValues, s) {
		return ierr.NewError("invalid facility status").
			WithHintf("Facility status must be one of %v", allowedValues).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// IsBillable reports whether a facility in this status accrues recurring charges
func (s FacilityStatus) IsBillable() bool {
	return s == FacilityStatusActive
}

// TaxBehavior decides whether and how tax is computed for a line
type TaxBehavior string

const (
	TaxBehaviorTaxable       TaxBehavior = "TAXABLE"
	TaxBehaviorTaxIncluded   TaxBehavior = "TAX_INCLUDED"
	TaxBehaviorExempt        TaxBehavior = "EXEMPT"
	TaxBehaviorInheritClient TaxBehavior = "INHERIT_CLIENT"
)

func (t TaxBehavior) String() string {
	return string(t)
}

func (t TaxBehavior) Validate() error {
	allowedValues := []TaxBehavior{
		TaxBehaviorTaxable,
		TaxBehaviorTaxIncluded,
		TaxBehaviorExempt,
		TaxBehaviorInheritClient,
	}
	if !slices.Contains(allowedValues, t) {
		return ierr.NewError("invalid tax behavior").
			WithHintf("Tax behavior must be one of %v", allowedValues).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// Weekday is a day-of-week code as stored on facility schedules
type Weekday string

const (
	WeekdayMonday    Weekday = "MON"
	WeekdayTuesday   Weekday = "TUE"
	WeekdayWednesday Weekday = "WED"
	WeekdayThursday  Weekday = "THU"
	WeekdayFriday    Weekday = "FRI"
	WeekdaySaturday  Weekday = "SAT"
	WeekdaySunday    Weekday = "SUN"
)

// WeekOrder lists weekdays starting Monday; frequency defaults take a prefix of it
var WeekOrder = []Weekday{
	WeekdayMonday,
	WeekdayTuesday,
	WeekdayWednesday,
	WeekdayThursday,
	WeekdayFriday,
	WeekdaySaturday,
	WeekdaySunday,
}

var weekdayToTime = map[Weekday]time.Weekday{
	WeekdayMonday:    time.Monday,
	WeekdayTuesday:   time.Tuesday,
	WeekdayWednesday: time.Wednesday,
	WeekdayThursday:  time.Thursday,
	WeekdayFriday:    time.Friday,
	WeekdaySaturday:  time.Saturday,
	WeekdaySunday:    time.Sunday,
}

func (w Weekday) Validate() error {
	if _, ok := weekdayToTime[w]; !ok {
		return ierr.NewError("invalid weekday").
			WithHintf("Weekday must be one of %v", WeekOrder).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// TimeWeekday converts the code to a time.Weekday
func (w Weekday) TimeWeekday() (time.Weekday, bool) {
	d, ok := weekdayToTime[w]
	return d, ok
}

// DaysOfWeek is a set of weekdays
type DaysOfWeek []Weekday

// Contains reports whether the set includes the given calendar weekday
func (d DaysOfWeek) Contains(day time.Weekday) bool {
	return lo.ContainsBy(d, func(w Weekday) bool {
		tw, ok := w.TimeWeekday()
		return ok && tw == day
	})
}

// Normalize de-duplicates and orders the set Monday first
func (d DaysOfWeek) Normalize() DaysOfWeek {
	if d == nil {
		return nil
	}
	return lo.Filter(WeekOrder, func(w Weekday, _ int) bool {
		return slices.Contains(d, w)
	})
}

func (d DaysOfWeek) Validate() error {
	for _, w := range d {
		if err := w.Validate(); err != nil {
			return err
		}
	}
	return nil
}

func (d DaysOfWeek) String() string {
	return strings.Join(lo.Map(d.Normalize(), func(w Weekday, _ int) string {
		return string(w)
	}), " ")
}

// DefaultDaysForFrequency returns the first n weekdays starting Monday
func DefaultDaysForFrequency(n int) DaysOfWeek {
	if n <= 0 {
		return DaysOfWeek{}
	}
	if n > len(WeekOrder) {
		n = len(WeekOrder)
	}
	return slices.Clone(WeekOrder[:n])
}
