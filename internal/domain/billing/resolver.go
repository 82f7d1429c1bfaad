package billing

import (
	"slices"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// EffectiveState is the merged billing state of one facility for one month.
// It is built by applying sparse patches over the base profile: seasonal
// rule first, then the monthly override.
type EffectiveState struct {
	Status      types.FacilityStatus `json:"status"`
	Frequency   int                  `json:"frequency"`
	DaysOfWeek  types.DaysOfWeek     `json:"days_of_week"`
	MonthlyRate decimal.Decimal      `json:"monthly_rate"`
	TaxBehavior types.TaxBehavior    `json:"tax_behavior"`

	PauseWindow *facility.PauseWindow `json:"pause_window,omitempty"`

	IsOverridden   bool    `json:"is_overridden"`
	OverrideNotes  *string `json:"override_notes,omitempty"`
	SeasonalRuleID *string `json:"seasonal_rule_id,omitempty"`
}

// statePatch holds the fields a layer may replace. A nil field (or nil slice
// for days of week) falls through to the layer below.
type statePatch struct {
	Status      *types.FacilityStatus
	Frequency   *int
	DaysOfWeek  types.DaysOfWeek
	MonthlyRate *decimal.Decimal
}

func (s EffectiveState) merge(p statePatch) EffectiveState {
	if p.Status != nil {
		s.Status = *p.Status
	}
	if p.Frequency != nil {
		s.Frequency = *p.Frequency
	}
	if p.DaysOfWeek != nil {
		s.DaysOfWeek = slices.Clone(p.DaysOfWeek)
	}
	if p.MonthlyRate != nil {
		s.MonthlyRate = *p.MonthlyRate
	}
	return s
}

func baseState(f *facility.FacilityProfile) EffectiveState {
	return EffectiveState{
		Status:      f.Status,
		Frequency:   f.Frequency,
		DaysOfWeek:  slices.Clone(f.DaysOfWeek),
		MonthlyRate: f.MonthlyRate,
		TaxBehavior: f.TaxBehavior,
	}
}

// seasonalPatch picks the status contributed by the seasonal rules for the
// month. Active membership in any applicable rule beats paused membership.
func seasonalPatch(f *facility.FacilityProfile, current types.FacilityStatus, month types.BillingMonth) (statePatch, *string) {
	if current != types.FacilityStatusActive && current != types.FacilityStatusSeasonalPaused {
		return statePatch{}, nil
	}

	var activeRule, pausedRule *facility.SeasonalRule
	for _, rule := range f.OrderedSeasonalRules() {
		if !rule.AppliesTo(month.Year) {
			continue
		}
		if activeRule == nil && rule.ActivatesMonth(month.Month) {
			activeRule = rule
		}
		if pausedRule == nil && rule.PausesMonth(month.Month) {
			pausedRule = rule
		}
	}

	switch {
	case activeRule != nil:
		status := types.FacilityStatusActive
		return statePatch{Status: &status}, &activeRule.ID
	case pausedRule != nil:
		status := types.FacilityStatusSeasonalPaused
		return statePatch{Status: &status}, &pausedRule.ID
	}
	return statePatch{}, nil
}

func overridePatch(o *facility.MonthlyOverride) statePatch {
	return statePatch{
		Status:      o.Status,
		Frequency:   o.Frequency,
		DaysOfWeek:  o.DaysOfWeek,
		MonthlyRate: o.MonthlyRate,
	}
}

// daysForFrequency re-derives the service days when only the frequency is
// overridden: the first n inherited days in week order, or the first n weekdays
// when fewer than n days were inherited.
func daysForFrequency(inherited types.DaysOfWeek, n int) types.DaysOfWeek {
	days := inherited.Normalize()
	if n <= len(days) {
		return slices.Clone(days[:max(n, 0)])
	}
	return types.DefaultDaysForFrequency(n)
}

// Resolve merges base profile, seasonal rules and the monthly override of a
// facility into its effective state for the month.
func Resolve(f *facility.FacilityProfile, month types.BillingMonth) (*EffectiveState, error) {
	if f == nil {
		return nil, ierr.NewError("facility not found").
			WithHint("Facility not found").
			Mark(ierr.ErrNotFound)
	}
	if err := month.Validate(); err != nil {
		return nil, err
	}

	state := baseState(f)

	patch, ruleID := seasonalPatch(f, state.Status, month)
	state = state.merge(patch)
	state.SeasonalRuleID = ruleID

	if o := f.OverrideFor(month.Year, month.Month); o != nil {
		window, err := o.PauseWindow()
		if err != nil {
			return nil, err
		}
		inherited := state.DaysOfWeek
		state = state.merge(overridePatch(o))
		if o.Frequency != nil && len(o.DaysOfWeek) == 0 {
			state.DaysOfWeek = daysForFrequency(inherited, *o.Frequency)
		}
		state.PauseWindow = window
		state.IsOverridden = true
		state.OverrideNotes = o.Notes
	}

	if len(state.DaysOfWeek) == 0 {
		state.DaysOfWeek = types.DefaultDaysForFrequency(state.Frequency)
	}
	state.DaysOfWeek = state.DaysOfWeek.Normalize()
	if state.TaxBehavior == "" {
		state.TaxBehavior = types.TaxBehaviorInheritClient
	}

	return &state, nil
}
