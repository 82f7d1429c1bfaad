package billing

import (
	"github.com/shopspring/decimal"
)

// CurrencyPrecision is the number of minor-unit digits money is rounded to
const CurrencyPrecision int32 = 2

// ProRate scales a monthly rate by active/scheduled days. The rate is returned
// untouched when nothing was suspended and is zero when nothing was scheduled.
// Rounding is half-up to the currency minor unit.
func ProRate(rate decimal.Decimal, scheduledDays, activeDays int) (amount decimal.Decimal, isProRated bool) {
	if scheduledDays <= 0 {
		return decimal.Zero, false
	}
	if activeDays == scheduledDays {
		return rate, false
	}
	amount = rate.Mul(decimal.NewFromInt(int64(activeDays))).
		DivRound(decimal.NewFromInt(int64(scheduledDays)), CurrencyPrecision)
	return amount, true
}
