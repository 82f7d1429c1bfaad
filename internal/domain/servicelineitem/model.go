package servicelineitem

import (
	"time"

	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// ServiceLineItem is an ad-hoc, non-recurring charge billed at face value
type ServiceLineItem struct {
	ID       string `json:"id"`
	ClientID string `json:"client_id"`

	// FacilityProfileID optionally ties the charge to one of the client's locations
	FacilityProfileID *string `json:"facility_profile_id,omitempty"`

	Description   string                      `json:"description"`
	Quantity      decimal.Decimal             `json:"quantity"`
	UnitRate      decimal.Decimal             `json:"unit_rate"`
	TaxBehavior   types.TaxBehavior           `json:"tax_behavior"`
	PerformedDate time.Time                   `json:"performed_date"`
	Status        types.ServiceLineItemStatus `json:"status"`

	types.BaseModel
}

// Amount is quantity times unit rate, before tax
func (s *ServiceLineItem) Amount() decimal.Decimal {
	return s.Quantity.Mul(s.UnitRate)
}
