package facility

import (
	"testing"

	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMonthlyOverride_PauseWindow(t *testing.T) {
	tests := []struct {
		name          string
		year, month   int
		start, end    *int
		expected      *PauseWindow
		expectedError bool
	}{
		{name: "no_window", year: 2024, month: 4},
		{name: "both_bounds", year: 2024, month: 4, start: lo.ToPtr(10), end: lo.ToPtr(20), expected: &PauseWindow{StartDay: 10, EndDay: 20}},
		{name: "start_only", year: 2024, month: 4, start: lo.ToPtr(25), expected: &PauseWindow{StartDay: 25, EndDay: 30}},
		{name: "end_only", year: 2024, month: 4, end: lo.ToPtr(5), expected: &PauseWindow{StartDay: 1, EndDay: 5}},
		{name: "clamped_to_february", year: 2023, month: 2, start: lo.ToPtr(27), end: lo.ToPtr(31), expected: &PauseWindow{StartDay: 27, EndDay: 28}},
		{name: "single_day", year: 2024, month: 4, start: lo.ToPtr(7), end: lo.ToPtr(7), expected: &PauseWindow{StartDay: 7, EndDay: 7}},
		{name: "starts_after_february_ends", year: 2025, month: 2, start: lo.ToPtr(30), end: lo.ToPtr(31), expected: nil},
		{name: "day_31_in_30_day_month", year: 2024, month: 4, start: lo.ToPtr(31), expected: nil},
		{name: "starts_on_last_day", year: 2025, month: 2, start: lo.ToPtr(28), end: lo.ToPtr(31), expected: &PauseWindow{StartDay: 28, EndDay: 28}},
		{name: "inverted", year: 2024, month: 4, start: lo.ToPtr(20), end: lo.ToPtr(10), expectedError: true},
		{name: "zero_day", year: 2024, month: 4, start: lo.ToPtr(0), expectedError: true},
		{name: "day_32", year: 2024, month: 4, end: lo.ToPtr(32), expectedError: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			o := &MonthlyOverride{Year: tt.year, Month: tt.month, PauseStartDay: tt.start, PauseEndDay: tt.end}
			window, err := o.PauseWindow()
			if tt.expectedError {
				require.Error(t, err)
				assert.True(t, ierr.IsValidation(err))
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.expected, window)
		})
	}
}

func TestMonthlyOverride_Validate(t *testing.T) {
	assert.NoError(t, (&MonthlyOverride{Year: 2024, Month: 12}).Validate())
	assert.True(t, ierr.IsValidation((&MonthlyOverride{Year: 2024, Month: 13}).Validate()))
	assert.True(t, ierr.IsValidation((&MonthlyOverride{Year: 2024, Month: 1, Frequency: lo.ToPtr(-1)}).Validate()))
	assert.True(t, ierr.IsValidation((&MonthlyOverride{Year: 2024, Month: 1, DaysOfWeek: []types.Weekday{"FUNDAY"}}).Validate()))
}

func TestSeasonalRule_Validate(t *testing.T) {
	assert.NoError(t, (&SeasonalRule{ActiveMonths: []int{5, 6, 7}, PausedMonths: []int{12, 1}}).Validate())
	assert.True(t, ierr.IsValidation((&SeasonalRule{ActiveMonths: []int{0}}).Validate()))
	assert.True(t, ierr.IsValidation((&SeasonalRule{PausedMonths: []int{13}}).Validate()))
	assert.True(t, ierr.IsValidation((&SeasonalRule{
		EffectiveYearFrom: lo.ToPtr(2025),
		EffectiveYearTo:   lo.ToPtr(2024),
	}).Validate()))
}

func TestSeasonalRule_AppliesTo(t *testing.T) {
	r := &SeasonalRule{IsActive: true, EffectiveYearFrom: lo.ToPtr(2023), EffectiveYearTo: lo.ToPtr(2024)}
	assert.False(t, r.AppliesTo(2022))
	assert.True(t, r.AppliesTo(2023))
	assert.True(t, r.AppliesTo(2024))
	assert.False(t, r.AppliesTo(2025))

	r.IsActive = false
	assert.False(t, r.AppliesTo(2023))
}
