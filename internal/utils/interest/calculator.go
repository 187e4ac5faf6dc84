package interest

import (
	"strings"

	"github.com/shopspring/decimal"
)

// Compounding period names accepted by Calculate. Anything unrecognized
// falls back to the 365-day basis.
const (
	CompoundingDaily    = "daily"
	CompoundingMonthly  = "monthly"
	CompoundingAnnually = "annually"
)

var (
	hundred  = decimal.NewFromInt(100)
	basis30  = decimal.NewFromInt(30)
	basis365 = decimal.NewFromInt(365)
)

// Calculate prorates simple interest for a principal over a number of days.
// The annual rate is given in percent. The day-count basis is 30 for the
// "monthly" compounding period and 365 otherwise; interest is linear in
// days, not exponential. Both results are rounded to 2 decimal places.
//
// Calculate has no side effects and never touches storage, so it serves both
// as a standalone quote and inside the interest-accrual operation.
func Calculate(principal, annualRatePercent decimal.Decimal, days int64, compounding string) (interest, total decimal.Decimal) {
	rate := annualRatePercent.Div(hundred)

	basis := basis365
	if strings.ToLower(compounding) == CompoundingMonthly {
		basis = basis30
	}

	interest = principal.
		Mul(rate).
		Mul(decimal.NewFromInt(days)).
		Div(basis).
		Round(2)
	total = principal.Add(interest).Round(2)
	return interest, total
}
