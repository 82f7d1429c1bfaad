package postgres

import (
	"context"
	"database/sql"
	"errors"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

type clientRow struct {
	ID             string              `db:"id"`
	CompanyID      string              `db:"company_id"`
	Name           string              `db:"name"`
	TaxExempt      bool                `db:"tax_exempt"`
	DefaultTaxRate decimal.NullDecimal `db:"default_tax_rate"`
	PaymentTerms   string              `db:"payment_terms"`
	types.BaseModel
}

type clientRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewClientRepository(db *postgres.DB, logger *logger.Logger) client.Repository {
	return &clientRepository{db: db, logger: logger}
}

func (r *clientRepository) Get(ctx context.Context, id string) (*client.Client, error) {
	finish := r.db.StartSpan(ctx, "client", "get", map[string]interface{}{"client_id": id})
	defer finish()

	var row clientRow
	err := r.db.GetQuerier(ctx).GetContext(ctx, &row,
		`SELECT id, company_id, name, tax_exempt, default_tax_rate, payment_terms,
			created_at, updated_at, created_by, updated_by
		FROM clients WHERE id = $1`, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, ierr.WithError(err).
				WithHint("Client not found").
				WithReportableDetails(map[string]any{"client_id": id}).
				Mark(ierr.ErrNotFound)
		}
		return nil, ierr.WithError(err).
			WithHint("Failed to get client").
			Mark(ierr.ErrDatabase)
	}

	c := &client.Client{
		ID:           row.ID,
		CompanyID:    row.CompanyID,
		Name:         row.Name,
		TaxExempt:    row.TaxExempt,
		PaymentTerms: row.PaymentTerms,
		BaseModel:    row.BaseModel,
	}
	if row.DefaultTaxRate.Valid {
		c.DefaultTaxRate = &row.DefaultTaxRate.Decimal
	}
	return c, nil
}
