package billing

import (
	"testing"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func assertDecimal(t *testing.T, expected string, actual decimal.Decimal, msgAndArgs ...any) {
	t.Helper()
	assert.True(t, decimal.RequireFromString(expected).Equal(actual),
		append([]any{"expected %s, got %s", expected, actual.String()}, msgAndArgs...)...)
}

func newTestFacility(id, location string) *facility.FacilityProfile {
	return &facility.FacilityProfile{
		ID:           id,
		ClientID:     "client_1",
		LocationName: location,
		Category:     "Janitorial",
		Status:       types.FacilityStatusActive,
		Frequency:    5,
		DaysOfWeek:   types.DaysOfWeek{types.WeekdayMonday, types.WeekdayTuesday, types.WeekdayWednesday, types.WeekdayThursday, types.WeekdayFriday},
		MonthlyRate:  decimal.NewFromInt(1000),
		TaxBehavior:  types.TaxBehaviorTaxable,
		BaseModel: types.BaseModel{
			CreatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
			UpdatedAt: time.Date(2023, 1, 1, 0, 0, 0, 0, time.UTC),
		},
	}
}

func newSeasonalRule(id string, created time.Time, active, paused []int) *facility.SeasonalRule {
	return &facility.SeasonalRule{
		ID:           id,
		ActiveMonths: active,
		PausedMonths: paused,
		IsActive:     true,
		BaseModel:    types.BaseModel{CreatedAt: created, UpdatedAt: created},
	}
}

func month(year, m int) types.BillingMonth {
	return types.BillingMonth{Year: year, Month: m}
}
