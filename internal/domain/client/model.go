package client

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// Client is a billable account under a company
type Client struct {
	ID        string `json:"id"`
	CompanyID string `json:"company_id"`
	Name      string `json:"name"`

	TaxExempt bool `json:"tax_exempt"`

	// DefaultTaxRate overrides the company rate for this client when set
	DefaultTaxRate *decimal.Decimal `json:"default_tax_rate,omitempty"`

	// PaymentTerms is free text such as NET_30
	PaymentTerms string `json:"payment_terms"`

	types.BaseModel
}
