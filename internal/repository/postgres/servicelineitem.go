package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/logger"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/postgres"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

type serviceLineItemRow struct {
	ID                string          `db:"id"`
	ClientID          string          `db:"client_id"`
	FacilityProfileID sql.NullString  `db:"facility_profile_id"`
	Description       string          `db:"description"`
	Quantity          decimal.Decimal `db:"quantity"`
	UnitRate          decimal.Decimal `db:"unit_rate"`
	TaxBehavior       string          `db:"tax_behavior"`
	PerformedDate     time.Time       `db:"performed_date"`
	Status            string          `db:"status"`
	types.BaseModel
}

type serviceLineItemRepository struct {
	db     *postgres.DB
	logger *logger.Logger
}

func NewServiceLineItemRepository(db *postgres.DB, logger *logger.Logger) servicelineitem.Repository {
	return &serviceLineItemRepository{db: db, logger: logger}
}

func (r *serviceLineItemRepository) ListByClientAndMonth(ctx context.Context, clientID string, year, month int) ([]*servicelineitem.ServiceLineItem, error) {
	period, err := types.NewBillingMonth(year, month)
	if err != nil {
		return nil, err
	}

	finish := r.db.StartSpan(ctx, "service_line_item", "list_by_client_and_month", map[string]interface{}{
		"client_id": clientID,
		"year":      year,
		"month":     month,
	})
	defer finish()

	var rows []serviceLineItemRow
	err = r.db.GetQuerier(ctx).SelectContext(ctx, &rows,
		`SELECT id, client_id, facility_profile_id, description, quantity, unit_rate, tax_behavior,
			performed_date, status, created_at, updated_at, created_by, updated_by
		FROM service_line_items
		WHERE client_id = $1 AND performed_date >= $2 AND performed_date < $3
		ORDER BY performed_date, id`,
		clientID, period.FirstDay(), period.FirstDay().AddDate(0, 1, 0))
	if err != nil {
		return nil, ierr.WithError(err).
			WithHint("Failed to list service line items").
			Mark(ierr.ErrDatabase)
	}

	items := make([]*servicelineitem.ServiceLineItem, 0, len(rows))
	for _, row := range rows {
		items = append(items, &servicelineitem.ServiceLineItem{
			ID:                row.ID,
			ClientID:          row.ClientID,
			FacilityProfileID: nullStringPtr(row.FacilityProfileID),
			Description:       row.Description,
			Quantity:          row.Quantity,
			UnitRate:          row.UnitRate,
			TaxBehavior:       types.TaxBehavior(row.TaxBehavior),
			PerformedDate:     row.PerformedDate.UTC(),
			Status:            types.ServiceLineItemStatus(row.Status),
			BaseModel:         row.BaseModel,
		})
	}
	return items, nil
}
