package billing

import (
	"testing"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCalculateSchedule(t *testing.T) {
	weekdays := types.DefaultDaysForFrequency(5)

	tests := []struct {
		name              string
		status            types.FacilityStatus
		days              types.DaysOfWeek
		month             types.BillingMonth
		override          *facility.MonthlyOverride
		expectedScheduled int
		expectedActive    int
	}{
		{
			name:              "april_2024_has_22_weekdays",
			status:            types.FacilityStatusActive,
			days:              weekdays,
			month:             month(2024, 4),
			expectedScheduled: 22,
			expectedActive:    22,
		},
		{
			name:              "february_2023_has_20_weekdays",
			status:            types.FacilityStatusActive,
			days:              weekdays,
			month:             month(2023, 2),
			expectedScheduled: 20,
			expectedActive:    20,
		},
		{
			name:              "every_day_in_leap_february",
			status:            types.FacilityStatusActive,
			days:              types.DefaultDaysForFrequency(7),
			month:             month(2024, 2),
			expectedScheduled: 29,
			expectedActive:    29,
		},
		{
			name:   "pause_window_10_to_20",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2024, 4),
			override: &facility.MonthlyOverride{
				Year: 2024, Month: 4,
				PauseStartDay: lo.ToPtr(10),
				PauseEndDay:   lo.ToPtr(20),
			},
			expectedScheduled: 22,
			expectedActive:    14,
		},
		{
			name:   "pause_start_only_runs_to_month_end",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2024, 4),
			override: &facility.MonthlyOverride{
				Year: 2024, Month: 4,
				PauseStartDay: lo.ToPtr(25),
			},
			expectedScheduled: 22,
			expectedActive:    18,
		},
		{
			name:   "pause_end_clamped_to_month",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2024, 4),
			override: &facility.MonthlyOverride{
				Year: 2024, Month: 4,
				PauseStartDay: lo.ToPtr(29),
				PauseEndDay:   lo.ToPtr(31),
			},
			expectedScheduled: 22,
			expectedActive:    20,
		},
		{
			name:   "pause_window_after_february_ends",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2025, 2),
			override: &facility.MonthlyOverride{
				Year: 2025, Month: 2,
				PauseStartDay: lo.ToPtr(30),
				PauseEndDay:   lo.ToPtr(31),
			},
			expectedScheduled: 20,
			expectedActive:    20,
		},
		{
			name:   "pause_day_31_in_april",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2024, 4),
			override: &facility.MonthlyOverride{
				Year: 2024, Month: 4,
				PauseStartDay: lo.ToPtr(31),
			},
			expectedScheduled: 22,
			expectedActive:    22,
		},
		{
			name:   "pause_from_last_day_of_february",
			status: types.FacilityStatusActive,
			days:   weekdays,
			month:  month(2025, 2),
			override: &facility.MonthlyOverride{
				Year: 2025, Month: 2,
				PauseStartDay: lo.ToPtr(28),
				PauseEndDay:   lo.ToPtr(31),
			},
			expectedScheduled: 20,
			expectedActive:    19,
		},
		{
			name:              "closed_reports_scheduled_but_no_active",
			status:            types.FacilityStatusClosed,
			days:              weekdays,
			month:             month(2024, 4),
			expectedScheduled: 22,
			expectedActive:    0,
		},
		{
			name:              "no_days",
			status:            types.FacilityStatusActive,
			days:              types.DaysOfWeek{},
			month:             month(2024, 4),
			expectedScheduled: 0,
			expectedActive:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			state := &EffectiveState{Status: tt.status, DaysOfWeek: tt.days}
			if tt.override != nil {
				window, err := tt.override.PauseWindow()
				require.NoError(t, err)
				state.PauseWindow = window
			}

			s := CalculateSchedule(state, tt.month)
			assert.Equal(t, tt.expectedScheduled, s.ScheduledDays)
			assert.Equal(t, tt.expectedActive, s.ActiveDays)
		})
	}
}

func TestProRate(t *testing.T) {
	tests := []struct {
		name           string
		rate           string
		scheduled      int
		active         int
		expected       string
		expectedProRat bool
	}{
		{name: "full_month_unchanged", rate: "1000", scheduled: 22, active: 22, expected: "1000", expectedProRat: false},
		{name: "unrounded_rate_kept_when_full", rate: "999.999", scheduled: 10, active: 10, expected: "999.999", expectedProRat: false},
		{name: "zero_scheduled", rate: "1000", scheduled: 0, active: 0, expected: "0", expectedProRat: false},
		{name: "partial_rounds_half_up", rate: "1000", scheduled: 22, active: 14, expected: "636.36", expectedProRat: true},
		{name: "half_cent_rounds_up", rate: "0.25", scheduled: 2, active: 1, expected: "0.13", expectedProRat: true},
		{name: "no_active_days", rate: "1000", scheduled: 22, active: 0, expected: "0", expectedProRat: true},
		{name: "zero_rate", rate: "0", scheduled: 20, active: 5, expected: "0", expectedProRat: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			amount, isProRated := ProRate(decimal.RequireFromString(tt.rate), tt.scheduled, tt.active)
			assertDecimal(t, tt.expected, amount)
			assert.Equal(t, tt.expectedProRat, isProRated)
		})
	}
}

func TestCalculateTax(t *testing.T) {
	rate := decimal.RequireFromString("0.0825")

	tests := []struct {
		name          string
		amount        string
		behavior      types.TaxBehavior
		exempt        bool
		expectedTax   string
		expectedTotal string
		expectedNet   string
	}{
		{name: "taxable", amount: "1000", behavior: types.TaxBehaviorTaxable, expectedTax: "82.50", expectedTotal: "1082.50", expectedNet: "1000"},
		{name: "taxable_rounds_half_up", amount: "636.36", behavior: types.TaxBehaviorTaxable, expectedTax: "52.50", expectedTotal: "688.86", expectedNet: "636.36"},
		{name: "inherit_client_not_exempt", amount: "200", behavior: types.TaxBehaviorInheritClient, expectedTax: "16.50", expectedTotal: "216.50", expectedNet: "200"},
		{name: "inherit_client_exempt", amount: "200", behavior: types.TaxBehaviorInheritClient, exempt: true, expectedTax: "0", expectedTotal: "200", expectedNet: "200"},
		{name: "exempt", amount: "200", behavior: types.TaxBehaviorExempt, expectedTax: "0", expectedTotal: "200", expectedNet: "200"},
		{name: "exempt_client_wins_over_taxable", amount: "500", behavior: types.TaxBehaviorTaxable, exempt: true, expectedTax: "0", expectedTotal: "500", expectedNet: "500"},
		{name: "tax_included_exact", amount: "108.25", behavior: types.TaxBehaviorTaxIncluded, expectedTax: "8.25", expectedTotal: "108.25", expectedNet: "100"},
		{name: "tax_included_rounded", amount: "100", behavior: types.TaxBehaviorTaxIncluded, expectedTax: "7.62", expectedTotal: "100", expectedNet: "92.38"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := CalculateTax(decimal.RequireFromString(tt.amount), tt.behavior, tt.exempt, rate)
			assertDecimal(t, tt.expectedTax, res.Tax)
			assertDecimal(t, tt.expectedTotal, res.Total)
			assertDecimal(t, tt.expectedNet, res.Net)
		})
	}
}

func TestCalculateTax_IncludedRoundTrip(t *testing.T) {
	rates := []string{"0", "0.05", "0.0825", "0.1", "0.19"}
	amounts := []string{"0.01", "1", "19.99", "333.33", "1000", "12345.67"}

	for _, r := range rates {
		for _, a := range amounts {
			amount := decimal.RequireFromString(a)
			res := CalculateTax(amount, types.TaxBehaviorTaxIncluded, false, decimal.RequireFromString(r))
			assert.True(t, res.Tax.Add(res.Net).Equal(amount), "rate %s amount %s", r, a)
			assert.True(t, res.Total.Equal(amount), "rate %s amount %s", r, a)
			assert.True(t, res.Tax.Round(2).Equal(res.Tax), "tax %s has more than two decimals", res.Tax)
		}
	}
}
