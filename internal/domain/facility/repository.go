package facility

import "context"

// Repository defines the interface for facility profile data access
type Repository interface {
	// Get returns a profile with its seasonal rules and monthly overrides
	Get(ctx context.Context, id string) (*FacilityProfile, error)

	// ListByClient returns every profile of the client, each with nested rules and overrides
	ListByClient(ctx context.Context, clientID string) ([]*FacilityProfile, error)

	// UpsertMonthlyOverride inserts the override or replaces the existing one for the same (facility, year, month)
	UpsertMonthlyOverride(ctx context.Context, override *MonthlyOverride) (*MonthlyOverride, error)

	DeleteMonthlyOverride(ctx context.Context, facilityProfileID string, year, month int) error

	CreateSeasonalRule(ctx context.Context, rule *SeasonalRule) error
}
