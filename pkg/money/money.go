package money

import (
	"github.com/shopspring/decimal"
)

// Amount renders a decimal amount with exactly two fraction digits,
// rounding half up at the two-decimal boundary
func Amount(amount decimal.Decimal) string {
	return amount.StringFixed(2)
}

// Format renders an amount prefixed with its 3-letter currency code,
// e.g. "USD 5.99"
func Format(amount decimal.Decimal, currencyCode string) string {
	return currencyCode + " " + Amount(amount)
}
