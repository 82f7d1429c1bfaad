package billing

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	ierr "github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/errors"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// AdHocLocationName labels service lines not tied to a facility
const AdHocLocationName = "Ad-hoc services"

// BillingPreview is the computed bill of one client for one month
type BillingPreview struct {
	ClientID   string `json:"client_id"`
	ClientName string `json:"client_name"`
	CompanyID  string `json:"company_id"`
	Year       int    `json:"year"`
	Month      int    `json:"month"`
	Currency   string `json:"currency"`

	LineItems []*BillingLineItem `json:"line_items"`

	Subtotal  decimal.Decimal `json:"subtotal"`
	TaxRate   decimal.Decimal `json:"tax_rate"`
	TaxAmount decimal.Decimal `json:"tax_amount"`
	Total     decimal.Decimal `json:"total"`

	PreviousMonthTotal *decimal.Decimal  `json:"previous_month_total"`
	DeltaAmount        *decimal.Decimal  `json:"delta_amount"`
	DeltaExplanation   *DeltaExplanation `json:"delta_explanation,omitempty"`
}

// BillingMonth returns the month the preview was computed for
func (p *BillingPreview) BillingMonth() types.BillingMonth {
	return types.BillingMonth{Year: p.Year, Month: p.Month}
}

// IncludedLines returns the lines that count toward the totals, in order
func (p *BillingPreview) IncludedLines() []*BillingLineItem {
	return lo.Filter(p.LineItems, func(l *BillingLineItem, _ int) bool {
		return l.IncludedInTotal
	})
}

// PreviewInput is everything needed to compute one month for one client
type PreviewInput struct {
	Client           *client.Client
	CompanyID        string
	Month            types.BillingMonth
	TaxRate          decimal.Decimal
	Currency         string
	Facilities       []*facility.FacilityProfile
	ServiceLineItems []*servicelineitem.ServiceLineItem
}

// BuildPreview assembles and totals the lines of one month. It does not look
// at other months; see ApplyDelta.
func BuildPreview(in PreviewInput) (*BillingPreview, error) {
	if in.Client == nil {
		return nil, ierr.NewError("client not found").
			WithHint("Client not found").
			Mark(ierr.ErrNotFound)
	}
	if err := in.Month.Validate(); err != nil {
		return nil, err
	}

	tax := TaxContext{ClientTaxExempt: in.Client.TaxExempt, Rate: in.TaxRate}
	facilities := lo.KeyBy(lo.Compact(in.Facilities), func(f *facility.FacilityProfile) string {
		return f.ID
	})

	lines := make([]*BillingLineItem, 0, len(in.Facilities)+len(in.ServiceLineItems))
	for _, f := range in.Facilities {
		line, err := AssembleFacilityLine(f, in.Month, tax)
		if err != nil {
			return nil, err
		}
		lines = append(lines, line)
	}

	for _, item := range in.ServiceLineItems {
		if item == nil || !item.Status.IsBillable() || !in.Month.Contains(item.PerformedDate) {
			continue
		}

		location := AdHocLocationName
		if item.FacilityProfileID != nil {
			f, ok := facilities[*item.FacilityProfileID]
			if !ok {
				return nil, ierr.NewNotFound("service line item references unknown facility", "Facility", map[string]any{
					"service_line_item_id": item.ID,
					"facility_profile_id":  *item.FacilityProfileID,
				})
			}
			location = f.LocationName
		}
		lines = append(lines, AssembleServiceLine(item, location, tax))
	}

	sortLineItems(lines)

	subtotal, taxAmount := Totals(lines)
	return &BillingPreview{
		ClientID:   in.Client.ID,
		ClientName: in.Client.Name,
		CompanyID:  in.CompanyID,
		Year:       in.Month.Year,
		Month:      in.Month.Month,
		Currency:   in.Currency,
		LineItems:  lines,
		Subtotal:   subtotal,
		TaxRate:    in.TaxRate,
		TaxAmount:  taxAmount,
		Total:      subtotal.Add(taxAmount),
	}, nil
}

// Totals sums net amounts and tax over included lines
func Totals(lines []*BillingLineItem) (subtotal, tax decimal.Decimal) {
	subtotal, tax = decimal.Zero, decimal.Zero
	for _, l := range lines {
		if !l.IncludedInTotal {
			continue
		}
		subtotal = subtotal.Add(l.NetAmount)
		tax = tax.Add(l.LineTax)
	}
	return subtotal, tax
}
