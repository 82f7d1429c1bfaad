package testutil

import (
	"context"
	"fmt"
	"slices"
	"sync"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/samber/lo"
)

// InMemoryFacilityStore implements facility.Repository. Rules and overrides
// live in their own stores and are attached on read.
type InMemoryFacilityStore struct {
	*InMemoryStore[*facility.FacilityProfile]
	rules     *InMemoryStore[*facility.SeasonalRule]
	overrides *InMemoryStore[*facility.MonthlyOverride]

	mu        sync.Mutex
	listCalls int
	failAfter int
	failErr   error
}

func NewInMemoryFacilityStore() *InMemoryFacilityStore {
	return &InMemoryFacilityStore{
		InMemoryStore: NewInMemoryStore[*facility.FacilityProfile](),
		rules:         NewInMemoryStore[*facility.SeasonalRule](),
		overrides:     NewInMemoryStore[*facility.MonthlyOverride](),
		failAfter:     -1,
	}
}

func overrideKey(facilityProfileID string, year, month int) string {
	return fmt.Sprintf("%s:%04d-%02d", facilityProfileID, year, month)
}

func copyOverride(o *facility.MonthlyOverride) *facility.MonthlyOverride {
	cp := *o
	cp.DaysOfWeek = slices.Clone(o.DaysOfWeek)
	return &cp
}

func copySeasonalRule(r *facility.SeasonalRule) *facility.SeasonalRule {
	cp := *r
	cp.ActiveMonths = slices.Clone(r.ActiveMonths)
	cp.PausedMonths = slices.Clone(r.PausedMonths)
	return &cp
}

// Create stores the profile along with any nested rules and overrides
func (s *InMemoryFacilityStore) Create(ctx context.Context, f *facility.FacilityProfile) error {
	cp := *f
	cp.DaysOfWeek = slices.Clone(f.DaysOfWeek)
	cp.SeasonalRules = nil
	cp.MonthlyOverrides = nil
	if err := s.InMemoryStore.Create(ctx, f.ID, &cp); err != nil {
		return err
	}

	for _, r := range f.SeasonalRules {
		r.FacilityProfileID = f.ID
		if err := s.CreateSeasonalRule(ctx, r); err != nil {
			return err
		}
	}
	for _, o := range f.MonthlyOverrides {
		o.FacilityProfileID = f.ID
		s.overrides.Upsert(ctx, overrideKey(f.ID, o.Year, o.Month), copyOverride(o))
	}
	return nil
}

// FailListAfter lets n ListByClient calls succeed and fails the rest with err
func (s *InMemoryFacilityStore) FailListAfter(n int, err error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.listCalls = 0
	s.failAfter = n
	s.failErr = err
}

func (s *InMemoryFacilityStore) Get(ctx context.Context, id string) (*facility.FacilityProfile, error) {
	f, err := s.InMemoryStore.Get(ctx, id)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Facility not found").
			Mark(ierr.ErrNotFound)
	}
	return s.attach(ctx, f), nil
}

func (s *InMemoryFacilityStore) ListByClient(ctx context.Context, clientID string) ([]*facility.FacilityProfile, error) {
	s.mu.Lock()
	s.listCalls++
	failing := s.failAfter >= 0 && s.listCalls > s.failAfter
	failErr := s.failErr
	s.mu.Unlock()
	if failing {
		return nil, failErr
	}

	profiles := s.InMemoryStore.List(ctx, func(_ context.Context, f *facility.FacilityProfile) bool {
		return f.ClientID == clientID
	}, func(a, b *facility.FacilityProfile) bool {
		if a.LocationName != b.LocationName {
			return a.LocationName < b.LocationName
		}
		return a.ID < b.ID
	})

	return lo.Map(profiles, func(f *facility.FacilityProfile, _ int) *facility.FacilityProfile {
		return s.attach(ctx, f)
	}), nil
}

func (s *InMemoryFacilityStore) attach(ctx context.Context, f *facility.FacilityProfile) *facility.FacilityProfile {
	cp := *f
	cp.DaysOfWeek = slices.Clone(f.DaysOfWeek)
	cp.SeasonalRules = lo.Map(
		s.rules.List(ctx, func(_ context.Context, r *facility.SeasonalRule) bool {
			return r.FacilityProfileID == f.ID
		}, func(a, b *facility.SeasonalRule) bool {
			if !a.CreatedAt.Equal(b.CreatedAt) {
				return a.CreatedAt.Before(b.CreatedAt)
			}
			return a.ID < b.ID
		}),
		func(r *facility.SeasonalRule, _ int) *facility.SeasonalRule { return copySeasonalRule(r) },
	)
	cp.MonthlyOverrides = lo.Map(
		s.overrides.List(ctx, func(_ context.Context, o *facility.MonthlyOverride) bool {
			return o.FacilityProfileID == f.ID
		}, nil),
		func(o *facility.MonthlyOverride, _ int) *facility.MonthlyOverride { return copyOverride(o) },
	)
	return &cp
}

func (s *InMemoryFacilityStore) UpsertMonthlyOverride(ctx context.Context, o *facility.MonthlyOverride) (*facility.MonthlyOverride, error) {
	if _, err := s.Get(ctx, o.FacilityProfileID); err != nil {
		return nil, err
	}

	key := overrideKey(o.FacilityProfileID, o.Year, o.Month)
	stored := copyOverride(o)
	if existing, err := s.overrides.Get(ctx, key); err == nil {
		stored.ID = existing.ID
		stored.CreatedAt = existing.CreatedAt
		stored.CreatedBy = existing.CreatedBy
	}
	s.overrides.Upsert(ctx, key, stored)
	return copyOverride(stored), nil
}

func (s *InMemoryFacilityStore) DeleteMonthlyOverride(ctx context.Context, facilityProfileID string, year, month int) error {
	if err := s.overrides.Delete(ctx, overrideKey(facilityProfileID, year, month)); err != nil {
		return ierr.WithError(err).
			WithHint("Monthly override not found").
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (s *InMemoryFacilityStore) CreateSeasonalRule(ctx context.Context, rule *facility.SeasonalRule) error {
	if _, err := s.InMemoryStore.Get(ctx, rule.FacilityProfileID); err != nil {
		return ierr.WithError(err).
			WithHint("Facility not found").
			Mark(ierr.ErrNotFound)
	}
	return s.rules.Create(ctx, rule.ID, copySeasonalRule(rule))
}

// Clear removes profiles, rules, overrides and failure injection
func (s *InMemoryFacilityStore) Clear() {
	s.InMemoryStore.Clear()
	s.rules.Clear()
	s.overrides.Clear()
	s.FailListAfter(-1, nil)
}
