package dto

import (
	"context"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/validator"
	"github.com/shopspring/decimal"
)

// FacilityResponse is a facility profile with its rules and overrides
type FacilityResponse struct {
	*facility.FacilityProfile
}

// UpsertMonthlyOverrideRequest is a sparse patch for one month. Omitted fields
// inherit from the seasonal rule or base profile.
type UpsertMonthlyOverrideRequest struct {
	Status      *types.FacilityStatus `json:"status,omitempty"`
	Frequency   *int                  `json:"frequency,omitempty" validate:"omitempty,min=0,max=7"`
	DaysOfWeek  types.DaysOfWeek      `json:"days_of_week,omitempty" validate:"omitempty,dive,weekday"`
	MonthlyRate *decimal.Decimal      `json:"monthly_rate,omitempty"`
	Notes       *string               `json:"notes,omitempty" validate:"omitempty,max=1000"`

	// pause_start_day and pause_end_day bound an inclusive window of suspended service
	PauseStartDay *int `json:"pause_start_day,omitempty" validate:"omitempty,min=1,max=31"`
	PauseEndDay   *int `json:"pause_end_day,omitempty" validate:"omitempty,min=1,max=31"`
}

func (r *UpsertMonthlyOverrideRequest) Validate() error {
	if err := validator.ValidateRequest(r); err != nil {
		return err
	}
	if r.Status != nil {
		return r.Status.Validate()
	}
	return nil
}

// ToMonthlyOverride builds a new override; the repository keeps the existing ID on conflict
func (r *UpsertMonthlyOverrideRequest) ToMonthlyOverride(ctx context.Context, facilityID string, year, month int) *facility.MonthlyOverride {
	return &facility.MonthlyOverride{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_MONTHLY_OVERRIDE),
		FacilityProfileID: facilityID,
		Year:              year,
		Month:             month,
		Status:            r.Status,
		Frequency:         r.Frequency,
		DaysOfWeek:        r.DaysOfWeek.Normalize(),
		MonthlyRate:       r.MonthlyRate,
		Notes:             r.Notes,
		PauseStartDay:     r.PauseStartDay,
		PauseEndDay:       r.PauseEndDay,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
}

// CreateSeasonalRuleRequest describes a recurring yearly pattern
type CreateSeasonalRuleRequest struct {
	ActiveMonths       []int   `json:"active_months" validate:"dive,calendar_month"`
	PausedMonths       []int   `json:"paused_months" validate:"dive,calendar_month"`
	EffectiveYearStart *int    `json:"effective_year_start,omitempty"`
	EffectiveYearEnd   *int    `json:"effective_year_end,omitempty"`
	IsActive           *bool   `json:"is_active,omitempty"`
	Notes              *string `json:"notes,omitempty"`
}

func (r *CreateSeasonalRuleRequest) Validate() error {
	return validator.ValidateRequest(r)
}

// ToSeasonalRule builds the rule; rules are active unless is_active is false
func (r *CreateSeasonalRuleRequest) ToSeasonalRule(ctx context.Context, facilityID string) *facility.SeasonalRule {
	isActive := true
	if r.IsActive != nil {
		isActive = *r.IsActive
	}
	return &facility.SeasonalRule{
		ID:                types.GenerateUUIDWithPrefix(types.UUID_PREFIX_SEASONAL_RULE),
		FacilityProfileID: facilityID,
		ActiveMonths:      r.ActiveMonths,
		PausedMonths:      r.PausedMonths,
		EffectiveYearFrom: r.EffectiveYearStart,
		EffectiveYearTo:   r.EffectiveYearEnd,
		IsActive:          isActive,
		Notes:             r.Notes,
		BaseModel:         types.GetDefaultBaseModel(ctx),
	}
}
