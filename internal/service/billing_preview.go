package service

import (
	"context"
	"fmt"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/billing"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/export"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/sentry"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// previousMonthDepth is how many months back a preview compares against
const previousMonthDepth = 1

type BillingPreviewService interface {
	// ComputePreview returns the bill of one client for one month, with the
	// change against the month before it
	ComputePreview(ctx context.Context, clientID, companyID string, year, month int) (*billing.BillingPreview, error)

	// ExportCSV renders the preview as a generic spreadsheet
	ExportCSV(ctx context.Context, clientID, companyID string, year, month int) (*export.File, error)

	// ExportQuickBooksCSV renders the preview as a QuickBooks invoice import
	ExportQuickBooksCSV(ctx context.Context, clientID, companyID string, year, month int) (*export.File, error)
}

type billingPreviewService struct {
	ServiceParams
}

func NewBillingPreviewService(params ServiceParams) BillingPreviewService {
	return &billingPreviewService{
		ServiceParams: params,
	}
}

func (s *billingPreviewService) ComputePreview(ctx context.Context, clientID, companyID string, year, month int) (*billing.BillingPreview, error) {
	m, err := types.NewBillingMonth(year, month)
	if err != nil {
		return nil, err
	}

	span, ctx := s.Sentry.StartComputationSpan(ctx, "compute_preview", map[string]interface{}{
		"client_id":  clientID,
		"company_id": companyID,
		"year":       year,
		"month":      month,
	})
	defer sentry.FinishSpan(span)

	preview, err := s.computePreview(ctx, clientID, companyID, m, previousMonthDepth)
	if err != nil {
		return nil, err
	}

	s.Logger.Debugw("computed billing preview",
		"client_id", clientID,
		"company_id", companyID,
		"year", year,
		"month", month,
		"line_items", len(preview.LineItems),
		"total", preview.Total.String(),
	)
	return preview, nil
}

// computePreview builds the month and, while depth is positive, the months
// before it. A failure below the top level degrades the delta only.
func (s *billingPreviewService) computePreview(ctx context.Context, clientID, companyID string, month types.BillingMonth, depth int) (*billing.BillingPreview, error) {
	c, err := s.getClient(ctx, clientID, companyID)
	if err != nil {
		return nil, err
	}

	taxRate, err := s.resolveTaxRate(ctx, c, companyID)
	if err != nil {
		return nil, err
	}

	facilities, err := s.FacilityRepo.ListByClient(ctx, clientID)
	if err != nil {
		return nil, err
	}

	items, err := s.ServiceLineItemRepo.ListByClientAndMonth(ctx, clientID, month.Year, month.Month)
	if err != nil {
		return nil, err
	}

	preview, err := billing.BuildPreview(billing.PreviewInput{
		Client:           c,
		CompanyID:        companyID,
		Month:            month,
		TaxRate:          taxRate,
		Currency:         s.Config.Billing.Currency,
		Facilities:       facilities,
		ServiceLineItems: items,
	})
	if err != nil {
		return nil, err
	}

	if depth <= 0 {
		return preview, nil
	}

	previous, err := s.computePreview(ctx, clientID, companyID, month.Previous(), depth-1)
	if err != nil {
		if ctx.Err() != nil {
			return nil, ctx.Err()
		}
		s.degrade(ctx, preview, err)
		return preview, nil
	}

	billing.ApplyDelta(preview, previous)
	return preview, nil
}

func (s *billingPreviewService) degrade(ctx context.Context, preview *billing.BillingPreview, cause error) {
	prev := preview.BillingMonth().Previous()
	reason := fmt.Sprintf("%s could not be computed", prev.String())
	if hint := ierr.GetHint(cause); hint != "" {
		reason = fmt.Sprintf("%s: %s", reason, hint)
	}
	billing.ApplyDegradedDelta(preview, reason)

	degraded := ierr.WithError(cause).
		WithHint("Previous month total is unavailable").
		WithReportableDetails(map[string]any{
			"client_id": preview.ClientID,
			"year":      prev.Year,
			"month":     prev.Month,
		}).
		Mark(ierr.ErrComputationDegraded)

	s.Logger.Warnw("previous month unavailable, delta left empty",
		"client_id", preview.ClientID,
		"company_id", preview.CompanyID,
		"year", preview.Year,
		"month", preview.Month,
		"error", cause,
	)
	s.Sentry.CaptureWithTags(ctx, degraded, map[string]string{
		"client_id":   preview.ClientID,
		"company_id":  preview.CompanyID,
		"computation": "previous_month",
	})
}

// getClient hides clients of other companies behind the same not found error
func (s *billingPreviewService) getClient(ctx context.Context, clientID, companyID string) (*client.Client, error) {
	c, err := s.ClientRepo.Get(ctx, clientID)
	if err != nil {
		return nil, err
	}
	if c.CompanyID != companyID {
		return nil, ierr.NewNotFound("client belongs to another company", "Client", map[string]any{
			"client_id":  clientID,
			"company_id": companyID,
		})
	}
	return c, nil
}

func (s *billingPreviewService) resolveTaxRate(ctx context.Context, c *client.Client, companyID string) (decimal.Decimal, error) {
	fallback, err := s.Config.Billing.GetDefaultTaxRate()
	if err != nil {
		return decimal.Zero, ierr.WithError(err).
			WithHint("Default tax rate is misconfigured").
			Mark(ierr.ErrSystem)
	}

	// The company is only needed when the client has no rate of its own
	if c.DefaultTaxRate != nil {
		return billing.ResolveTaxRate(c, nil, fallback), nil
	}

	comp, err := s.CompanyRepo.Get(ctx, companyID)
	if err != nil {
		return decimal.Zero, err
	}
	return billing.ResolveTaxRate(c, comp, fallback), nil
}

func (s *billingPreviewService) ExportCSV(ctx context.Context, clientID, companyID string, year, month int) (*export.File, error) {
	preview, err := s.ComputePreview(ctx, clientID, companyID, year, month)
	if err != nil {
		return nil, err
	}
	return export.GenericCSV(preview)
}

func (s *billingPreviewService) ExportQuickBooksCSV(ctx context.Context, clientID, companyID string, year, month int) (*export.File, error) {
	preview, err := s.ComputePreview(ctx, clientID, companyID, year, month)
	if err != nil {
		return nil, err
	}
	return export.QuickBooksCSV(preview, export.QuickBooksOptions{
		InvoicePrefix: s.Config.Billing.InvoicePrefix,
	})
}
