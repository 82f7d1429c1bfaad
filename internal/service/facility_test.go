package service

import (
	"testing"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/api/dto"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/testutil"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type FacilityServiceSuite struct {
	testutil.BaseServiceTestSuite
	service FacilityService
}

func TestFacilityService(t *testing.T) {
	suite.Run(t, new(FacilityServiceSuite))
}

func (s *FacilityServiceSuite) SetupTest() {
	s.BaseServiceTestSuite.SetupTest()

	stores := s.GetStores()
	s.service = NewFacilityService(ServiceParams{
		Logger:              s.GetLogger(),
		Config:              s.GetConfig(),
		CompanyRepo:         stores.CompanyRepo,
		ClientRepo:          stores.ClientRepo,
		FacilityRepo:        stores.FacilityRepo,
		ServiceLineItemRepo: stores.ServiceLineItemRepo,
	})

	ctx := s.GetContext()
	clients := stores.ClientRepo.(*testutil.InMemoryClientStore)
	s.NoError(clients.Create(ctx, &client.Client{ID: "client_1", CompanyID: testutil.TestCompanyID, Name: "Acme Corp"}))
	s.NoError(clients.Create(ctx, &client.Client{ID: "client_other", CompanyID: "comp_other", Name: "Elsewhere"}))

	facilities := stores.FacilityRepo.(*testutil.InMemoryFacilityStore)
	for id, clientID := range map[string]string{"fac_1": "client_1", "fac_other": "client_other"} {
		s.NoError(facilities.Create(ctx, &facility.FacilityProfile{
			ID:           id,
			ClientID:     clientID,
			LocationName: "Lobby",
			Status:       types.FacilityStatusActive,
			Frequency:    5,
			MonthlyRate:  decimal.NewFromInt(1000),
			TaxBehavior:  types.TaxBehaviorTaxable,
			BaseModel:    types.GetDefaultBaseModel(ctx),
		}))
	}
}

func (s *FacilityServiceSuite) TestGetFacility() {
	resp, err := s.service.GetFacility(s.GetContext(), "fac_1")
	s.NoError(err)
	s.Equal("fac_1", resp.ID)

	_, err = s.service.GetFacility(s.GetContext(), "fac_missing")
	s.True(ierr.IsNotFound(err))

	_, err = s.service.GetFacility(s.GetContext(), "fac_other")
	s.True(ierr.IsNotFound(err))
	s.Equal("Facility not found", ierr.GetHint(err))
}

func (s *FacilityServiceSuite) TestUpsertMonthlyOverride_ReplacesExisting() {
	ctx := s.GetContext()

	first, err := s.service.UpsertMonthlyOverride(ctx, "fac_1", 2024, 4, dto.UpsertMonthlyOverrideRequest{
		PauseStartDay: lo.ToPtr(10),
		PauseEndDay:   lo.ToPtr(20),
		Notes:         lo.ToPtr("Renovation"),
	})
	s.NoError(err)

	second, err := s.service.UpsertMonthlyOverride(ctx, "fac_1", 2024, 4, dto.UpsertMonthlyOverrideRequest{
		MonthlyRate: lo.ToPtr(decimal.NewFromInt(800)),
	})
	s.NoError(err)
	s.Equal(first.ID, second.ID)

	f, err := s.service.GetFacility(ctx, "fac_1")
	s.NoError(err)
	s.Require().Len(f.MonthlyOverrides, 1)

	override := f.OverrideFor(2024, 4)
	s.Require().NotNil(override)
	s.Nil(override.PauseStartDay, "a replaced override does not keep old fields")
	s.True(decimal.NewFromInt(800).Equal(*override.MonthlyRate))
}

func (s *FacilityServiceSuite) TestUpsertMonthlyOverride_Validation() {
	tests := []struct {
		name  string
		month int
		req   dto.UpsertMonthlyOverrideRequest
	}{
		{"month out of range", 13, dto.UpsertMonthlyOverrideRequest{}},
		{"inverted pause window", 4, dto.UpsertMonthlyOverrideRequest{PauseStartDay: lo.ToPtr(20), PauseEndDay: lo.ToPtr(10)}},
		{"pause day out of range", 4, dto.UpsertMonthlyOverrideRequest{PauseStartDay: lo.ToPtr(32)}},
		{"negative rate", 4, dto.UpsertMonthlyOverrideRequest{MonthlyRate: lo.ToPtr(decimal.NewFromInt(-1))}},
		{"unknown status", 4, dto.UpsertMonthlyOverrideRequest{Status: lo.ToPtr(types.FacilityStatus("DORMANT"))}},
		{"unknown weekday", 4, dto.UpsertMonthlyOverrideRequest{DaysOfWeek: types.DaysOfWeek{"FUNDAY"}}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.UpsertMonthlyOverride(s.GetContext(), "fac_1", 2024, tt.month, tt.req)
			s.Error(err)
			s.True(ierr.IsValidation(err), "expected validation error, got %v", err)
		})
	}
}

func (s *FacilityServiceSuite) TestUpsertMonthlyOverride_OtherCompany() {
	_, err := s.service.UpsertMonthlyOverride(s.GetContext(), "fac_other", 2024, 4, dto.UpsertMonthlyOverrideRequest{})
	s.True(ierr.IsNotFound(err))
}

func (s *FacilityServiceSuite) TestDeleteMonthlyOverride() {
	ctx := s.GetContext()

	err := s.service.DeleteMonthlyOverride(ctx, "fac_1", 2024, 4)
	s.True(ierr.IsNotFound(err), "nothing to delete yet")

	_, err = s.service.UpsertMonthlyOverride(ctx, "fac_1", 2024, 4, dto.UpsertMonthlyOverrideRequest{
		Status: lo.ToPtr(types.FacilityStatusPaused),
	})
	s.NoError(err)

	s.NoError(s.service.DeleteMonthlyOverride(ctx, "fac_1", 2024, 4))

	f, err := s.service.GetFacility(ctx, "fac_1")
	s.NoError(err)
	s.Nil(f.OverrideFor(2024, 4))

	err = s.service.DeleteMonthlyOverride(ctx, "fac_1", 2024, 0)
	s.True(ierr.IsValidation(err))
}

func (s *FacilityServiceSuite) TestCreateSeasonalRule() {
	ctx := s.GetContext()

	rule, err := s.service.CreateSeasonalRule(ctx, "fac_1", dto.CreateSeasonalRuleRequest{
		ActiveMonths:       []int{6, 7, 8},
		PausedMonths:       []int{12, 1},
		EffectiveYearStart: lo.ToPtr(2024),
	})
	s.NoError(err)
	s.True(rule.IsActive)
	s.Equal("fac_1", rule.FacilityProfileID)

	f, err := s.service.GetFacility(ctx, "fac_1")
	s.NoError(err)
	s.Require().Len(f.SeasonalRules, 1)
	s.Equal(rule.ID, f.SeasonalRules[0].ID)
}

func (s *FacilityServiceSuite) TestCreateSeasonalRule_Validation() {
	tests := []struct {
		name string
		req  dto.CreateSeasonalRuleRequest
	}{
		{"month out of range", dto.CreateSeasonalRuleRequest{ActiveMonths: []int{13}}},
		{"inverted years", dto.CreateSeasonalRuleRequest{
			ActiveMonths:       []int{6},
			EffectiveYearStart: lo.ToPtr(2025),
			EffectiveYearEnd:   lo.ToPtr(2024),
		}},
	}

	for _, tt := range tests {
		s.Run(tt.name, func() {
			_, err := s.service.CreateSeasonalRule(s.GetContext(), "fac_1", tt.req)
			s.True(ierr.IsValidation(err), "expected validation error, got %v", err)
		})
	}

	_, err := s.service.CreateSeasonalRule(s.GetContext(), "fac_missing", dto.CreateSeasonalRuleRequest{ActiveMonths: []int{6}})
	s.True(ierr.IsNotFound(err))
}
