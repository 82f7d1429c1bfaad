package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/cache"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/config"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

type companyRow struct {
	ID      string              `db:"id"`
	Name    string              `db:"name"`
	TaxRate decimal.NullDecimal `db:"tax_rate"`
	types.BaseModel
}

func (r companyRow) toDomain() *company.Company {
	c := &company.Company{ID: r.ID, Name: r.Name, BaseModel: r.BaseModel}
	if r.TaxRate.Valid {
		c.TaxRate = &r.TaxRate.Decimal
	}
	return c
}

type companyRepository struct {
	db     *postgres.DB
	logger *logger.Logger
	cache  cache.Cache
	cfg    *config.Configuration
}

// NewCompanyRepository returns a repository whose reads go through the
// in-memory cache
func NewCompanyRepository(db *postgres.DB, logger *logger.Logger, c cache.Cache, cfg *config.Configuration) company.Repository {
	return &companyRepository{db: db, logger: logger, cache: c, cfg: cfg}
}

func (r *companyRepository) Get(ctx context.Context, id string) (*company.Company, error) {
	key := cache.GenerateKey(cache.PrefixCompany, id)
	if cached, ok := r.cache.Get(ctx, key); ok {
		if c, ok := cached.(*company.Company); ok {
			return c, nil
		}
	}

	finish := r.db.StartSpan(ctx, "company", "get", map[string]interface{}{"company_id": id})
	defer finish()

	var row companyRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row,
		`SELECT id, name, tax_rate, created_at, updated_at, created_by, updated_by
		FROM companies WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Company not found").
				WithReportableDetails(map[string]any{"company_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get company").
			Mark(ierr.ErrDatabase)
	}

	c := row.toDomain()
	r.cache.Set(ctx, key, c, r.cfg.Cache.CompanyTTL())
	return c, nil
}
