package billing

import (
	"slices"
	"strings"
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/facility"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/servicelineitem"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// LineItemKind tells recurring facility lines apart from ad-hoc service charges
type LineItemKind string

const (
	LineItemKindFacility LineItemKind = "FACILITY"
	LineItemKindService  LineItemKind = "SERVICE"
)

// BillingLineItem is one computed line of a preview. It is never persisted.
type BillingLineItem struct {
	Kind LineItemKind `json:"kind"`

	FacilityProfileID string `json:"facility_profile_id,omitempty"`
	ServiceLineItemID string `json:"service_line_item_id,omitempty"`
	LocationName      string `json:"location_name"`
	Category          string `json:"category"`
	Description       string `json:"description,omitempty"`

	Status      string            `json:"status"`
	Frequency   int               `json:"frequency"`
	DaysOfWeek  types.DaysOfWeek  `json:"days_of_week,omitempty"`
	TaxBehavior types.TaxBehavior `json:"tax_behavior"`

	// EffectiveRate is the resolved monthly rate, or the unit rate of a service line
	EffectiveRate decimal.Decimal `json:"effective_rate"`
	Quantity      decimal.Decimal `json:"quantity"`

	ScheduledDays int                   `json:"scheduled_days"`
	ActiveDays    int                   `json:"active_days"`
	PauseWindow   *facility.PauseWindow `json:"pause_window,omitempty"`

	// Amount is the billed amount before tax handling
	Amount    decimal.Decimal `json:"amount"`
	LineTax   decimal.Decimal `json:"line_tax"`
	LineTotal decimal.Decimal `json:"line_total"`
	NetAmount decimal.Decimal `json:"net_amount"`

	IncludedInTotal bool `json:"included_in_total"`
	IsOverridden    bool `json:"is_overridden"`
	IsProRated      bool `json:"is_pro_rated"`

	OverrideNotes  *string    `json:"override_notes,omitempty"`
	SeasonalRuleID *string    `json:"seasonal_rule_id,omitempty"`
	PerformedDate  *time.Time `json:"performed_date,omitempty"`
}

// TaxContext carries the client-level inputs of the tax calculation
type TaxContext struct {
	ClientTaxExempt bool
	Rate            decimal.Decimal
}

// AssembleFacilityLine resolves, schedules, pro-rates and taxes one facility.
// Lines with no billable activity are returned but not included in totals.
// A billable facility paused for every scheduled day is still pro-rated, to 0.
func AssembleFacilityLine(f *facility.FacilityProfile, month types.BillingMonth, tax TaxContext) (*BillingLineItem, error) {
	state, err := Resolve(f, month)
	if err != nil {
		return nil, err
	}

	schedule := CalculateSchedule(state, month)

	amount, isProRated := decimal.Zero, false
	if state.Status.IsBillable() {
		amount, isProRated = ProRate(state.MonthlyRate, schedule.ScheduledDays, schedule.ActiveDays)
	}
	included := state.Status.IsBillable() && schedule.ActiveDays > 0

	line := &BillingLineItem{
		Kind:              LineItemKindFacility,
		FacilityProfileID: f.ID,
		LocationName:      f.LocationName,
		Category:          f.Category,
		Status:            state.Status.String(),
		Frequency:         state.Frequency,
		DaysOfWeek:        state.DaysOfWeek,
		TaxBehavior:       state.TaxBehavior,
		EffectiveRate:     state.MonthlyRate,
		Quantity:          decimal.NewFromInt(1),
		ScheduledDays:     schedule.ScheduledDays,
		ActiveDays:        schedule.ActiveDays,
		PauseWindow:       state.PauseWindow,
		Amount:            amount,
		IncludedInTotal:   included,
		IsOverridden:      state.IsOverridden,
		IsProRated:        isProRated,
		OverrideNotes:     state.OverrideNotes,
		SeasonalRuleID:    state.SeasonalRuleID,
	}
	line.applyTax(tax)
	return line, nil
}

// AssembleServiceLine bills an ad-hoc charge at quantity times unit rate. It is
// always included.
func AssembleServiceLine(item *servicelineitem.ServiceLineItem, locationName string, tax TaxContext) *BillingLineItem {
	behavior := item.TaxBehavior
	if behavior == "" {
		behavior = types.TaxBehaviorInheritClient
	}
	performed := item.PerformedDate

	line := &BillingLineItem{
		Kind:              LineItemKindService,
		FacilityProfileID: lo.FromPtr(item.FacilityProfileID),
		ServiceLineItemID: item.ID,
		LocationName:      locationName,
		Category:          "Service",
		Description:       item.Description,
		Status:            item.Status.String(),
		TaxBehavior:       behavior,
		EffectiveRate:     item.UnitRate,
		Quantity:          item.Quantity,
		Amount:            item.Amount().Round(CurrencyPrecision),
		IncludedInTotal:   true,
		PerformedDate:     &performed,
	}
	line.applyTax(tax)
	return line
}

func (l *BillingLineItem) applyTax(tax TaxContext) {
	res := CalculateTax(l.Amount, l.TaxBehavior, tax.ClientTaxExempt, tax.Rate)
	l.LineTax = res.Tax
	l.LineTotal = res.Total
	l.NetAmount = res.Net
}

// sortLineItems orders facility lines by location then id, followed by service
// lines by performed date then id.
func sortLineItems(lines []*BillingLineItem) {
	slices.SortStableFunc(lines, func(a, b *BillingLineItem) int {
		if a.Kind != b.Kind {
			if a.Kind == LineItemKindFacility {
				return -1
			}
			return 1
		}
		if a.Kind == LineItemKindFacility {
			return lo.CoalesceOrEmpty(
				strings.Compare(a.LocationName, b.LocationName),
				strings.Compare(a.FacilityProfileID, b.FacilityProfileID),
			)
		}
		return lo.CoalesceOrEmpty(
			a.PerformedDate.Compare(*b.PerformedDate),
			strings.Compare(a.ServiceLineItemID, b.ServiceLineItemID),
		)
	})
}
