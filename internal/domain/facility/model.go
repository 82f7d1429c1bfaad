package facility

import (
	"slices"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FacilityProfile is one serviced location under a client. Exactly one profile
// exists per (client, location).
type FacilityProfile struct {
	ID           string `json:"id"`
	ClientID     string `json:"client_id"`
	LocationName string `json:"location_name"`
	Category     string `json:"category"`

	Status      types.FacilityStatus `json:"status"`
	Frequency   int                  `json:"frequency"`
	DaysOfWeek  types.DaysOfWeek     `json:"days_of_week"`
	MonthlyRate decimal.Decimal      `json:"monthly_rate"`
	TaxBehavior types.TaxBehavior    `json:"tax_behavior"`

	// SeasonalRules are kept in creation order
	SeasonalRules    []*SeasonalRule    `json:"seasonal_rules,omitempty"`
	MonthlyOverrides []*MonthlyOverride `json:"monthly_overrides,omitempty"`

	types.BaseModel
}

// OverrideFor returns the override for the exact (year, month), or nil.
// Storage guarantees uniqueness; if duplicates slip through the most recently
// updated one wins so the result stays deterministic.
func (f *FacilityProfile) OverrideFor(year, month int) *MonthlyOverride {
	var found *MonthlyOverride
	for _, o := range f.MonthlyOverrides {
		if o == nil || o.Year != year || o.Month != month {
			continue
		}
		if found == nil ||
			o.UpdatedAt.After(found.UpdatedAt) ||
			(o.UpdatedAt.Equal(found.UpdatedAt) && o.ID > found.ID) {
			found = o
		}
	}
	return found
}

// OrderedSeasonalRules returns the rules sorted by creation time, then ID
func (f *FacilityProfile) OrderedSeasonalRules() []*SeasonalRule {
	rules := lo.Filter(f.SeasonalRules, func(r *SeasonalRule, _ int) bool { return r != nil })
	slices.SortStableFunc(rules, func(a, b *SeasonalRule) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}
		switch {
		case a.ID < b.ID:
			return -1
		case a.ID > b.ID:
			return 1
		}
		return 0
	})
	return rules
}

// SeasonalRule is a recurring annual rule. Active and paused months may overlap;
// the resolver prefers active.
type SeasonalRule struct {
	ID                string  `json:"id"`
	FacilityProfileID string  `json:"facility_profile_id"`
	ActiveMonths      []int   `json:"active_months"`
	PausedMonths      []int   `json:"paused_months"`
	EffectiveYearFrom *int    `json:"effective_year_start,omitempty"`
	EffectiveYearTo   *int    `json:"effective_year_end,omitempty"`
	IsActive          bool    `json:"is_active"`
	Notes             *string `json:"notes,omitempty"`

	types.BaseModel
}

// AppliesTo reports whether the rule is enabled and within its year bounds
func (r *SeasonalRule) AppliesTo(year int) bool {
	if !r.IsActive {
		return false
	}
	if r.EffectiveYearFrom != nil && year < *r.EffectiveYearFrom {
		return false
	}
	if r.EffectiveYearTo != nil && year > *r.EffectiveYearTo {
		return false
	}
	return true
}

func (r *SeasonalRule) ActivatesMonth(month int) bool {
	return slices.Contains(r.ActiveMonths, month)
}

func (r *SeasonalRule) PausesMonth(month int) bool {
	return slices.Contains(r.PausedMonths, month)
}

func (r *SeasonalRule) Validate() error {
	for _, m := range append(slices.Clone(r.ActiveMonths), r.PausedMonths...) {
		if m < 1 || m > 12 {
			return ierr.NewError("seasonal rule month out of range").
				WithHint("Seasonal rule months must be between 1 and 12").
				WithReportableDetails(map[string]any{
					"month": m,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	if r.EffectiveYearFrom != nil && r.EffectiveYearTo != nil && *r.EffectiveYearFrom > *r.EffectiveYearTo {
		return ierr.NewError("seasonal rule year bounds inverted").
			WithHint("Effective year start must not be after effective year end").
			WithReportableDetails(map[string]any{
				"effective_year_start": *r.EffectiveYearFrom,
				"effective_year_end":   *r.EffectiveYearTo,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

// MonthlyOverride is a sparse patch for one (year, month). A nil field inherits
// from the layer below.
type MonthlyOverride struct {
	ID                string `json:"id"`
	FacilityProfileID string `json:"facility_profile_id"`
	Year              int    `json:"year"`
	Month             int    `json:"month"`

	Status      *types.FacilityStatus `json:"status,omitempty"`
	Frequency   *int                  `json:"frequency,omitempty"`
	DaysOfWeek  types.DaysOfWeek      `json:"days_of_week,omitempty"`
	MonthlyRate *decimal.Decimal      `json:"monthly_rate,omitempty"`
	Notes       *string               `json:"notes,omitempty"`

	PauseStartDay *int `json:"pause_start_day,omitempty"`
	PauseEndDay   *int `json:"pause_end_day,omitempty"`

	types.BaseModel
}

// HasPauseWindow reports whether either pause bound is set
func (o *MonthlyOverride) HasPauseWindow() bool {
	return o.PauseStartDay != nil || o.PauseEndDay != nil
}

// PauseWindow resolves the inclusive suspended day range, completing a missing
// bound with the first or last day of the month and clamping to the month.
// A window starting after the last day of the month suspends nothing and
// resolves to nil.
func (o *MonthlyOverride) PauseWindow() (*PauseWindow, error) {
	if !o.HasPauseWindow() {
		return nil, nil
	}
	if err := o.validatePauseBounds(); err != nil {
		return nil, err
	}

	lastDay := types.BillingMonth{Year: o.Year, Month: o.Month}.DaysInMonth()
	start := lo.FromPtrOr(o.PauseStartDay, 1)
	if start > lastDay {
		return nil, nil
	}
	end := lo.FromPtrOr(o.PauseEndDay, lastDay)
	return &PauseWindow{
		StartDay: start,
		EndDay:   min(end, lastDay),
	}, nil
}

func (o *MonthlyOverride) validatePauseBounds() error {
	for _, d := range []*int{o.PauseStartDay, o.PauseEndDay} {
		if d != nil && (*d < 1 || *d > 31) {
			return ierr.NewError("pause day out of range").
				WithHint("Pause days must be between 1 and 31").
				WithReportableDetails(map[string]any{
					"facility_profile_id": o.FacilityProfileID,
					"pause_start_day":     o.PauseStartDay,
					"pause_end_day":       o.PauseEndDay,
				}).
				Mark(ierr.ErrValidation)
		}
	}
	if o.PauseStartDay != nil && o.PauseEndDay != nil && *o.PauseStartDay > *o.PauseEndDay {
		return ierr.NewError("pause window inverted").
			WithHint("Pause start day must not be after pause end day").
			WithReportableDetails(map[string]any{
				"facility_profile_id": o.FacilityProfileID,
				"pause_start_day":     *o.PauseStartDay,
				"pause_end_day":       *o.PauseEndDay,
			}).
			Mark(ierr.ErrValidation)
	}
	return nil
}

func (o *MonthlyOverride) Validate() error {
	if err := (types.BillingMonth{Year: o.Year, Month: o.Month}).Validate(); err != nil {
		return err
	}
	if o.Status != nil {
		if err := o.Status.Validate(); err != nil {
			return err
		}
	}
	if o.Frequency != nil && *o.Frequency < 0 {
		return ierr.NewError("negative frequency").
			WithHint("Frequency must not be negative").
			Mark(ierr.ErrValidation)
	}
	if o.MonthlyRate != nil && o.MonthlyRate.IsNegative() {
		return ierr.NewError("negative rate").
			WithHint("Monthly rate must not be negative").
			Mark(ierr.ErrValidation)
	}
	if err := o.DaysOfWeek.Validate(); err != nil {
		return err
	}
	return o.validatePauseBounds()
}

// PauseWindow is an inclusive [StartDay, EndDay] range within one month
type PauseWindow struct {
	StartDay int `json:"start_day"`
	EndDay   int `json:"end_day"`
}

// Contains reports whether the day of month falls in the window
func (w *PauseWindow) Contains(day int) bool {
	return w != nil && day >= w.StartDay && day <= w.EndDay
}
