package money

import "github.com/shopspring/decimal"

// All price arithmetic goes through decimal so discounts land on exact cents.
// float64 only appears at the storage edge.

// Discounted applies a percentage discount to a unit price and rounds to
// cents. 100 at 10% yields exactly 90.00.
func Discounted(price, discountPercent float64) decimal.Decimal {
	p := decimal.NewFromFloat(price)
	if discountPercent <= 0 {
		return p.Round(2)
	}
	factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(discountPercent)).Div(decimal.NewFromInt(100))
	return p.Mul(factor).Round(2)
}

// LineTotal is the discounted unit price times quantity (seats).
func LineTotal(price, discountPercent float64, quantity int) decimal.Decimal {
	return Discounted(price, discountPercent).Mul(decimal.NewFromInt(int64(quantity)))
}

// Cents converts an amount to the smallest currency unit for Stripe.
func Cents(d decimal.Decimal) int64 {
	return d.Mul(decimal.NewFromInt(100)).Round(0).IntPart()
}
