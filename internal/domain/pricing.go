package domain

import "strconv"

// DiscountedUnitPrice applies the product's percentage discount to its
// list price. A zero discount returns the price bit-for-bit unchanged.
func (p Product) DiscountedUnitPrice() float64 {
	if p.DiscountPercent == 0 {
		return p.Price
	}
	return p.Price * (1 - float64(p.DiscountPercent)/100)
}

// FormatPrice renders a price with two decimals. Rounding happens here,
// at presentation time only; stored and derived values stay unrounded.
func FormatPrice(v float64) string {
	return strconv.FormatFloat(v, 'f', 2, 64)
}
