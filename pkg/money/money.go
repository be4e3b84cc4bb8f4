package money

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// FreeLabel is rendered in place of a zero price at display boundaries.
// The underlying amount stays zero so totals remain exact.
const FreeLabel = "Free"

// Format renders an amount with two decimal places and a currency symbol.
func Format(amount decimal.Decimal) string {
	return fmt.Sprintf("$%s", amount.StringFixed(2))
}

// FormatOrFree renders zero amounts as FreeLabel and everything else as Format does.
func FormatOrFree(amount decimal.Decimal) string {
	if amount.IsZero() {
		return FreeLabel
	}
	return Format(amount)
}

// Sum adds the provided amounts without intermediate rounding.
func Sum(amounts ...decimal.Decimal) decimal.Decimal {
	total := decimal.Zero
	for _, amount := range amounts {
		total = total.Add(amount)
	}
	return total
}
