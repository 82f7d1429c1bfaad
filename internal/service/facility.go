package service

import (
	"context"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/dto"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
)

type FacilityService interface {
	GetFacility(ctx context.Context, facilityID string) (*dto.FacilityResponse, error)
	UpsertMonthlyOverride(ctx context.Context, facilityID string, year, month int, req dto.UpsertMonthlyOverrideRequest) (*facility.MonthlyOverride, error)
	DeleteMonthlyOverride(ctx context.Context, facilityID string, year, month int) error
	CreateSeasonalRule(ctx context.Context, facilityID string, req dto.CreateSeasonalRuleRequest) (*facility.SeasonalRule, error)
}

type facilityService struct {
	ServiceParams
}

func NewFacilityService(params ServiceParams) FacilityService {
	return &facilityService{
		ServiceParams: params,
	}
}

func (s *facilityService) GetFacility(ctx context.Context, facilityID string) (*dto.FacilityResponse, error) {
	f, err := s.getScopedFacility(ctx, facilityID)
	if err != nil {
		return nil, err
	}
	return &dto.FacilityResponse{FacilityProfile: f}, nil
}

func (s *facilityService) UpsertMonthlyOverride(ctx context.Context, facilityID string, year, month int, req dto.UpsertMonthlyOverrideRequest) (*facility.MonthlyOverride, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.getScopedFacility(ctx, facilityID); err != nil {
		return nil, err
	}

	override := req.ToMonthlyOverride(ctx, facilityID, year, month)
	if err := override.Validate(); err != nil {
		return nil, err
	}

	saved, err := s.FacilityRepo.UpsertMonthlyOverride(ctx, override)
	if err != nil {
		return nil, err
	}

	s.Logger.Infow("upserted monthly override",
		"facility_profile_id", facilityID,
		"override_id", saved.ID,
		"year", year,
		"month", month,
	)
	return saved, nil
}

func (s *facilityService) DeleteMonthlyOverride(ctx context.Context, facilityID string, year, month int) error {
	if _, err := types.NewBillingMonth(year, month); err != nil {
		return err
	}

	if _, err := s.getScopedFacility(ctx, facilityID); err != nil {
		return err
	}

	if err := s.FacilityRepo.DeleteMonthlyOverride(ctx, facilityID, year, month); err != nil {
		return err
	}

	s.Logger.Infow("deleted monthly override",
		"facility_profile_id", facilityID,
		"year", year,
		"month", month,
	)
	return nil
}

func (s *facilityService) CreateSeasonalRule(ctx context.Context, facilityID string, req dto.CreateSeasonalRuleRequest) (*facility.SeasonalRule, error) {
	if err := req.Validate(); err != nil {
		return nil, err
	}

	if _, err := s.getScopedFacility(ctx, facilityID); err != nil {
		return nil, err
	}

	rule := req.ToSeasonalRule(ctx, facilityID)
	if err := rule.Validate(); err != nil {
		return nil, err
	}

	if err := s.FacilityRepo.CreateSeasonalRule(ctx, rule); err != nil {
		return nil, err
	}

	s.Logger.Infow("created seasonal rule",
		"facility_profile_id", facilityID,
		"seasonal_rule_id", rule.ID,
		"active_months", rule.ActiveMonths,
		"paused_months", rule.PausedMonths,
	)
	return rule, nil
}

// getScopedFacility loads the facility and checks that its client belongs to
// the company in ctx
func (s *facilityService) getScopedFacility(ctx context.Context, facilityID string) (*facility.FacilityProfile, error) {
	if err := types.ValidateCompanyContext(ctx); err != nil {
		return nil, err
	}

	f, err := s.FacilityRepo.Get(ctx, facilityID)
	if err != nil {
		return nil, err
	}

	notFound := ierr.NewNotFound("facility outside company scope", "Facility", map[string]any{
		"facility_profile_id": facilityID,
		"client_id":           f.ClientID,
	})

	c, err := s.ClientRepo.Get(ctx, f.ClientID)
	if err != nil {
		if ierr.IsNotFound(err) {
			return nil, notFound
		}
		return nil, err
	}
	if c.CompanyID != types.GetCompanyID(ctx) {
		return nil, notFound
	}
	return f, nil
}
