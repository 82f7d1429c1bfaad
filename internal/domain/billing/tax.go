package billing

import (
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/client"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/domain/company"
	"github.com/AlexVazquezATX/Urban-Simple-2.0-sub005/internal/types"
	"github.com/shopspring/decimal"
)

// TaxResult is the tax split of one line
type TaxResult struct {
	Tax decimal.Decimal
	// Total is what the customer pays for the line
	Total decimal.Decimal
	// Net is Total without tax
	Net decimal.Decimal
}

// CalculateTax applies the tax behavior to a line amount. A tax-exempt client
// pays no tax on any line.
func CalculateTax(amount decimal.Decimal, behavior types.TaxBehavior, clientTaxExempt bool, rate decimal.Decimal) TaxResult {
	if clientTaxExempt || behavior == types.TaxBehaviorExempt {
		return TaxResult{Tax: decimal.Zero, Total: amount, Net: amount}
	}

	if behavior == types.TaxBehaviorTaxIncluded {
		// amount - amount/(1+rate) computed exactly before rounding
		tax := amount.Mul(rate).DivRound(decimal.NewFromInt(1).Add(rate), CurrencyPrecision)
		return TaxResult{Tax: tax, Total: amount, Net: amount.Sub(tax)}
	}

	tax := amount.Mul(rate).Round(CurrencyPrecision)
	return TaxResult{Tax: tax, Total: amount.Add(tax), Net: amount}
}

// ResolveTaxRate picks the rate for a client: its own default, then the
// company rate, then the configured fallback.
func ResolveTaxRate(c *client.Client, comp *company.Company, fallback decimal.Decimal) decimal.Decimal {
	if c != nil && c.DefaultTaxRate != nil {
		return *c.DefaultTaxRate
	}
	if comp != nil && comp.TaxRate != nil {
		return *comp.TaxRate
	}
	return fallback
}
