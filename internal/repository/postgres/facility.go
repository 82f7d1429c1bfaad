package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/lib/pq"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// foreign_key_violation
const pqForeignKeyViolation = "23503"

type facilityRow struct {
	ID           string          `db:"id"`
	ClientID     string          `db:"client_id"`
	LocationName string          `db:"location_name"`
	Category     string          `db:"category"`
	Status       string          `db:"status"`
	Frequency    int             `db:"frequency"`
	DaysOfWeek   pq.StringArray  `db:"days_of_week"`
	MonthlyRate  decimal.Decimal `db:"monthly_rate"`
	TaxBehavior  string          `db:"tax_behavior"`
	types.BaseModel
}

func (r facilityRow) toDomain() *facility.FacilityProfile {
	return &facility.FacilityProfile{
		ID:           r.ID,
		ClientID:     r.ClientID,
		LocationName: r.LocationName,
		Category:     r.Category,
		Status:       types.FacilityStatus(r.Status),
		Frequency:    r.Frequency,
		DaysOfWeek:   daysFromArray(r.DaysOfWeek),
		MonthlyRate:  r.MonthlyRate,
		TaxBehavior:  types.TaxBehavior(r.TaxBehavior),
		BaseModel:    r.BaseModel,
	}
}

type seasonalRuleRow struct {
	ID                 string         `db:"id"`
	FacilityProfileID  string         `db:"facility_profile_id"`
	ActiveMonths       pq.Int64Array  `db:"active_months"`
	PausedMonths       pq.Int64Array  `db:"paused_months"`
	EffectiveYearStart sql.NullInt64  `db:"effective_year_start"`
	EffectiveYearEnd   sql.NullInt64  `db:"effective_year_end"`
	IsActive           bool           `db:"is_active"`
	Notes              sql.NullString `db:"notes"`
	types.BaseModel
}

func (r seasonalRuleRow) toDomain() *facility.SeasonalRule {
	return &facility.SeasonalRule{
		ID:                r.ID,
		FacilityProfileID: r.FacilityProfileID,
		ActiveMonths:      monthsFromArray(r.ActiveMonths),
		PausedMonths:      monthsFromArray(r.PausedMonths),
		EffectiveYearFrom: nullIntPtr(r.EffectiveYearStart),
		EffectiveYearTo:   nullIntPtr(r.EffectiveYearEnd),
		IsActive:          r.IsActive,
		Notes:             nullStringPtr(r.Notes),
		BaseModel:         r.BaseModel,
	}
}

type monthlyOverrideRow struct {
	ID                string              `db:"id"`
	FacilityProfileID string              `db:"facility_profile_id"`
	Year              int                 `db:"year"`
	Month             int                 `db:"month"`
	Status            sql.NullString      `db:"status"`
	Frequency         sql.NullInt64       `db:"frequency"`
	DaysOfWeek        pq.StringArray      `db:"days_of_week"`
	MonthlyRate       decimal.NullDecimal `db:"monthly_rate"`
	Notes             sql.NullString      `db:"notes"`
	PauseStartDay     sql.NullInt64       `db:"pause_start_day"`
	PauseEndDay       sql.NullInt64       `db:"pause_end_day"`
	types.BaseModel
}

func (r monthlyOverrideRow) toDomain() *facility.MonthlyOverride {
	o := &facility.MonthlyOverride{
		ID:                r.ID,
		FacilityProfileID: r.FacilityProfileID,
		Year:              r.Year,
		Month:             r.Month,
		Frequency:         nullIntPtr(r.Frequency),
		DaysOfWeek:        daysFromArray(r.DaysOfWeek),
		Notes:             nullStringPtr(r.Notes),
		PauseStartDay:     nullIntPtr(r.PauseStartDay),
		PauseEndDay:       nullIntPtr(r.PauseEndDay),
		BaseModel:         r.BaseModel,
	}
	if r.Status.Valid {
		o.Status = lo.ToPtr(types.FacilityStatus(r.Status.String))
	}
	if r.MonthlyRate.Valid {
		o.MonthlyRate = &r.MonthlyRate.Decimal
	}
	return o
}

const (
	facilityColumns = `id, client_id, location_name, category, status, frequency, days_of_week,
		monthly_rate, tax_behavior, created_at, updated_at, created_by, updated_by`
	seasonalRuleColumns = `id, facility_profile_id, active_months, paused_months, effective_year_start,
		effective_year_end, is_active, notes, created_at, updated_at, created_by, updated_by`
	monthlyOverrideColumns = `id, facility_profile_id, year, month, status, frequency, days_of_week,
		monthly_rate, notes, pause_start_day, pause_end_day, created_at, updated_at, created_by, updated_by`
)

type facilityRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewFacilityRepository(db *postgres.DB, logger *logger.Logger) facility.Repository {
	return &facilityRepository{db: db, logger: logger}
}

func (r *facilityRepository) Get(ctx context.Context, id string) (*facility.FacilityProfile, error) {
	finish := r.db.StartSpan(ctx, "facility", "get", map[string]interface{}{"facility_profile_id": id})
	defer finish()

	var row facilityRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row,
		"SELECT "+facilityColumns+" FROM facility_profiles WHERE id = $1", id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, facilityNotFound(err, id)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get facility").
			Mark(ierr.ErrDatabase)
	}

	profiles := []*facility.FacilityProfile{row.toDomain()}
	if err := r.loadRules(ctx, profiles); err != nil {
		return nil, err
	}
	return profiles[0], nil
}

func (r *facilityRepository) ListByClient(ctx context.Context, clientID string) ([]*facility.FacilityProfile, error) {
	finish := r.db.StartSpan(ctx, "facility", "list_by_client", map[string]interface{}{"client_id": clientID})
	defer finish()

	var rows []facilityRow
	err := r.db.GetQuerier(ctx).SelectContext(ctx, &rows,
		"SELECT "+facilityColumns+" FROM facility_profiles WHERE client_id = $1 ORDER BY location_name, id",
		clientID)
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list facilities").
			Mark(ierr.ErrDatabase)
	}

	profiles := lo.Map(rows, func(row facilityRow, _ int) *facility.FacilityProfile {
		return row.toDomain()
	})
	if err := r.loadRules(ctx, profiles); err != nil {
		return nil, err
	}

	r.logger.Debugw("listed facilities", "client_id", clientID, "count", len(profiles))
	return profiles, nil
}

// loadRules attaches seasonal rules and monthly overrides with one query each
func (r *facilityRepository) loadRules(ctx context.Context, profiles []*facility.FacilityProfile) error {
	if len(profiles) == 0 {
		return nil
	}
	ids := pq.Array(lo.Map(profiles, func(p *facility.FacilityProfile, _ int) string { return p.ID }))
	q := r.db.GetQuerier(ctx)

	var ruleRows []seasonalRuleRow
	err := q.SelectContext(ctx, &ruleRows,
		"SELECT "+seasonalRuleColumns+" FROM seasonal_rules WHERE facility_profile_id = ANY($1) ORDER BY created_at, id",
		ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to load seasonal rules").
			Mark(ierr.ErrDatabase)
	}

	var overrideRows []monthlyOverrideRow
	err = q.SelectContext(ctx, &overrideRows,
		"SELECT "+monthlyOverrideColumns+" FROM monthly_overrides WHERE facility_profile_id = ANY($1) ORDER BY year, month",
		ids)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to load monthly overrides").
			Mark(ierr.ErrDatabase)
	}

	rules := lo.GroupBy(ruleRows, func(row seasonalRuleRow) string { return row.FacilityProfileID })
	overrides := lo.GroupBy(overrideRows, func(row monthlyOverrideRow) string { return row.FacilityProfileID })
	for _, p := range profiles {
		p.SeasonalRules = lo.Map(rules[p.ID], func(row seasonalRuleRow, _ int) *facility.SeasonalRule {
			return row.toDomain()
		})
		p.MonthlyOverrides = lo.Map(overrides[p.ID], func(row monthlyOverrideRow, _ int) *facility.MonthlyOverride {
			return row.toDomain()
		})
	}
	return nil
}

func (r *facilityRepository) UpsertMonthlyOverride(ctx context.Context, o *facility.MonthlyOverride) (*facility.MonthlyOverride, error) {
	finish := r.db.StartSpan(ctx, "facility", "upsert_monthly_override", map[string]interface{}{
		"facility_profile_id": o.FacilityProfileID,
		"year":                o.Year,
		"month":               o.Month,
	})
	defer finish()

	var rate decimal.NullDecimal
	if o.MonthlyRate != nil {
		rate = decimal.NewNullDecimal(*o.MonthlyRate)
	}
	var status sql.NullString
	if o.Status != nil {
		status = sql.NullString{String: string(*o.Status), Valid: true}
	}

	var row monthlyOverrideRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row, `
		INSERT INTO monthly_overrides (
			id, facility_profile_id, year, month, status, frequency, days_of_week, monthly_rate,
			notes, pause_start_day, pause_end_day, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15)
		ON CONFLICT (facility_profile_id, year, month) DO UPDATE SET
			status = EXCLUDED.status,
			frequency = EXCLUDED.frequency,
			days_of_week = EXCLUDED.days_of_week,
			monthly_rate = EXCLUDED.monthly_rate,
			notes = EXCLUDED.notes,
			pause_start_day = EXCLUDED.pause_start_day,
			pause_end_day = EXCLUDED.pause_end_day,
			updated_at = EXCLUDED.updated_at,
			updated_by = EXCLUDED.updated_by
		RETURNING `+monthlyOverrideColumns,
		o.ID, o.FacilityProfileID, o.Year, o.Month, status, toNullInt(o.Frequency),
		daysToArray(o.DaysOfWeek), rate, toNullString(o.Notes),
		toNullInt(o.PauseStartDay), toNullInt(o.PauseEndDay),
		o.CreatedAt, o.UpdatedAt, o.CreatedBy, o.UpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return nil, facilityNotFound(err, o.FacilityProfileID)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to save monthly override").
			Mark(ierr.ErrDatabase)
	}
	return row.toDomain(), nil
}

func (r *facilityRepository) DeleteMonthlyOverride(ctx context.Context, facilityProfileID string, year, month int) error {
	finish := r.db.StartSpan(ctx, "facility", "delete_monthly_override", map[string]interface{}{
		"facility_profile_id": facilityProfileID,
		"year":                year,
		"month":               month,
	})
	defer finish()

	result, err := r.db.GetQuerier(ctx).ExecContext(ctx,
		"DELETE FROM monthly_overrides WHERE facility_profile_id = $1 AND year = $2 AND month = $3",
		facilityProfileID, year, month)
	if err != nil {
		return ierr.WithError(err).
			WithHint("Failed to delete monthly override").
			Mark(ierr.ErrDatabase)
	}

	affected, err := result.RowsAffected()
	if err != nil {
		return ierr.WithError(err).Mark(ierr.ErrDatabase)
	}
	if affected == 0 {
		return ierr.NewError("monthly override not found").
			WithHint("Monthly override not found").
			WithReportableDetails(map[string]any{
				"facility_profile_id": facilityProfileID,
				"year":                year,
				"month":               month,
			}).
			Mark(ierr.ErrNotFound)
	}
	return nil
}

func (r *facilityRepository) CreateSeasonalRule(ctx context.Context, rule *facility.SeasonalRule) error {
	finish := r.db.StartSpan(ctx, "facility", "create_seasonal_rule", map[string]interface{}{
		"facility_profile_id": rule.FacilityProfileID,
	})
	defer finish()

	_, err := r.db.GetQuerier(ctx).ExecContext(ctx, `
		INSERT INTO seasonal_rules (
			id, facility_profile_id, active_months, paused_months, effective_year_start,
			effective_year_end, is_active, notes, created_at, updated_at, created_by, updated_by
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12)`,
		rule.ID, rule.FacilityProfileID, monthsToArray(rule.ActiveMonths), monthsToArray(rule.PausedMonths),
		toNullInt(rule.EffectiveYearFrom), toNullInt(rule.EffectiveYearTo), rule.IsActive,
		toNullString(rule.Notes), rule.CreatedAt, rule.UpdatedAt, rule.CreatedBy, rule.UpdatedBy,
	)
	if err != nil {
		if isForeignKeyViolation(err) {
			return facilityNotFound(err, rule.FacilityProfileID)
		}
		return ierr.WithError(err).
			WithHint("Failed to create seasonal rule").
			Mark(ierr.ErrDatabase)
	}
	return nil
}

func facilityNotFound(err error, id string) error {
	return ierr.WithError(err).
		WithHint("Facility not found").
		WithReportableDetails(map[string]any{"facility_profile_id": id}).
		Mark(ierr.ErrNotFound)
}

func isForeignKeyViolation(err error) bool {
	var pqErr *pq.Error
	return errors.As(err, &pqErr) && pqErr.Code == pqForeignKeyViolation
}
