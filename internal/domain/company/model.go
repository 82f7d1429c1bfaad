package company

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// Company is the tenant that owns clients and sets the sales tax rate
type Company struct {
	ID   string `json:"id"`
	Name string `json:"name"`

	// TaxRate is a decimal fraction (0.0825 for 8.25%); nil when the company has not configured one
	TaxRate *decimal.Decimal `json:"tax_rate,omitempty"`

	types.BaseModel
}
