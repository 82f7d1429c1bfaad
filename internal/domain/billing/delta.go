package billing

import (
	"slices"

	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// DeltaDirection summarises the month-over-month movement of the total
type DeltaDirection string

const (
	DeltaDirectionIncrease  DeltaDirection = "INCREASE"
	DeltaDirectionDecrease  DeltaDirection = "DECREASE"
	DeltaDirectionUnchanged DeltaDirection = "UNCHANGED"
	DeltaDirectionUnknown   DeltaDirection = "UNKNOWN"
)

// DeltaReason names one cause of a line changing between months
type DeltaReason string

const (
	DeltaReasonRateChanged      DeltaReason = "RATE_CHANGED"
	DeltaReasonStatusChanged    DeltaReason = "STATUS_CHANGED"
	DeltaReasonProRationChanged DeltaReason = "PRORATION_CHANGED"
	DeltaReasonOverrideChanged  DeltaReason = "OVERRIDE_CHANGED"
	DeltaReasonTaxChanged       DeltaReason = "TAX_CHANGED"
	DeltaReasonLineAdded        DeltaReason = "LINE_ADDED"
	DeltaReasonLineRemoved      DeltaReason = "LINE_REMOVED"
	DeltaReasonAdHocCharges     DeltaReason = "AD_HOC_CHARGES_CHANGED"
)

// DeltaExplanation compares a preview with the month before it
type DeltaExplanation struct {
	PreviousYear  int `json:"previous_year"`
	PreviousMonth int `json:"previous_month"`

	PreviousMonthTotal *decimal.Decimal `json:"previous_month_total"`
	DeltaAmount        *decimal.Decimal `json:"delta_amount"`
	Direction          DeltaDirection   `json:"direction"`

	// Degraded is set when the previous month could not be computed
	Degraded       bool   `json:"degraded"`
	DegradedReason string `json:"degraded_reason,omitempty"`

	TaxRateChanged bool          `json:"tax_rate_changed"`
	Changes        []DeltaChange `json:"changes"`
}

// DeltaChange is the movement of one facility, or of the ad-hoc bucket
type DeltaChange struct {
	FacilityProfileID string          `json:"facility_profile_id,omitempty"`
	LocationName      string          `json:"location_name"`
	PreviousAmount    decimal.Decimal `json:"previous_amount"`
	CurrentAmount     decimal.Decimal `json:"current_amount"`
	Difference        decimal.Decimal `json:"difference"`
	Reasons           []DeltaReason   `json:"reasons"`
}

// ApplyDelta fills the previous-month fields of current from previous
func ApplyDelta(current, previous *BillingPreview) {
	prev := current.BillingMonth().Previous()
	prevTotal := previous.Total
	delta := current.Total.Sub(prevTotal)

	current.PreviousMonthTotal = &prevTotal
	current.DeltaAmount = &delta
	current.DeltaExplanation = &DeltaExplanation{
		PreviousYear:       prev.Year,
		PreviousMonth:      prev.Month,
		PreviousMonthTotal: &prevTotal,
		DeltaAmount:        &delta,
		Direction:          directionOf(delta),
		TaxRateChanged:     !current.TaxRate.Equal(previous.TaxRate),
		Changes:            explainChanges(current, previous),
	}
}

// ApplyDegradedDelta records that the previous month is unavailable. The
// current totals are left as computed.
func ApplyDegradedDelta(current *BillingPreview, reason string) {
	prev := current.BillingMonth().Previous()
	current.PreviousMonthTotal = nil
	current.DeltaAmount = nil
	current.DeltaExplanation = &DeltaExplanation{
		PreviousYear:   prev.Year,
		PreviousMonth:  prev.Month,
		Direction:      DeltaDirectionUnknown,
		Degraded:       true,
		DegradedReason: reason,
		Changes:        []DeltaChange{},
	}
}

func directionOf(delta decimal.Decimal) DeltaDirection {
	switch delta.Sign() {
	case 1:
		return DeltaDirectionIncrease
	case -1:
		return DeltaDirectionDecrease
	}
	return DeltaDirectionUnchanged
}

// billedTotal is what a line contributed to the invoice total
func billedTotal(l *BillingLineItem) decimal.Decimal {
	if l == nil || !l.IncludedInTotal {
		return decimal.Zero
	}
	return l.LineTotal
}

func facilityLines(p *BillingPreview) map[string]*BillingLineItem {
	return lo.SliceToMap(
		lo.Filter(p.LineItems, func(l *BillingLineItem, _ int) bool { return l.Kind == LineItemKindFacility }),
		func(l *BillingLineItem) (string, *BillingLineItem) { return l.FacilityProfileID, l },
	)
}

func adHocTotal(p *BillingPreview) decimal.Decimal {
	total := decimal.Zero
	for _, l := range p.LineItems {
		if l.Kind == LineItemKindService {
			total = total.Add(billedTotal(l))
		}
	}
	return total
}

func explainChanges(current, previous *BillingPreview) []DeltaChange {
	cur, prev := facilityLines(current), facilityLines(previous)
	changes := []DeltaChange{}

	// current order first, then facilities that only existed last month
	ids := lo.Uniq(append(
		lo.FilterMap(current.LineItems, func(l *BillingLineItem, _ int) (string, bool) {
			return l.FacilityProfileID, l.Kind == LineItemKindFacility
		}),
		lo.FilterMap(previous.LineItems, func(l *BillingLineItem, _ int) (string, bool) {
			return l.FacilityProfileID, l.Kind == LineItemKindFacility
		})...,
	))

	for _, id := range ids {
		c, p := cur[id], prev[id]
		reasons := lineReasons(c, p)
		before, after := billedTotal(p), billedTotal(c)
		if len(reasons) == 0 && before.Equal(after) {
			continue
		}
		name := lo.TernaryF(c != nil, func() string { return c.LocationName }, func() string { return p.LocationName })
		changes = append(changes, DeltaChange{
			FacilityProfileID: id,
			LocationName:      name,
			PreviousAmount:    before,
			CurrentAmount:     after,
			Difference:        after.Sub(before),
			Reasons:           reasons,
		})
	}

	before, after := adHocTotal(previous), adHocTotal(current)
	if !before.Equal(after) {
		changes = append(changes, DeltaChange{
			LocationName:   AdHocLocationName,
			PreviousAmount: before,
			CurrentAmount:  after,
			Difference:     after.Sub(before),
			Reasons:        []DeltaReason{DeltaReasonAdHocCharges},
		})
	}
	return changes
}

func lineReasons(cur, prev *BillingLineItem) []DeltaReason {
	switch {
	case prev == nil:
		return []DeltaReason{DeltaReasonLineAdded}
	case cur == nil:
		return []DeltaReason{DeltaReasonLineRemoved}
	}

	reasons := []DeltaReason{}
	if !cur.EffectiveRate.Equal(prev.EffectiveRate) {
		reasons = append(reasons, DeltaReasonRateChanged)
	}
	if cur.Status != prev.Status {
		reasons = append(reasons, DeltaReasonStatusChanged)
	}
	if cur.IsProRated != prev.IsProRated || (cur.IsProRated && !cur.Amount.Equal(prev.Amount)) {
		reasons = append(reasons, DeltaReasonProRationChanged)
	}
	if cur.IsOverridden != prev.IsOverridden ||
		(cur.IsOverridden && !billedTotal(cur).Equal(billedTotal(prev))) {
		reasons = append(reasons, DeltaReasonOverrideChanged)
	}
	if cur.TaxBehavior != prev.TaxBehavior || (!cur.LineTax.Equal(prev.LineTax) && cur.Amount.Equal(prev.Amount)) {
		reasons = append(reasons, DeltaReasonTaxChanged)
	}
	return slices.Clip(reasons)
}
