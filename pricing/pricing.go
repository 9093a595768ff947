// Package pricing computes discounted prices for cart lines and order
// snapshots. Both merchandise and vehicles go through the same functions so
// totals stay additive and reproducible.
package pricing

import "errors"

var ErrDiscountOutOfRange = errors.New("discount percentage must be between 0 and 100")

// DiscountedPrice returns base reduced by the given percentage. A nil or
// non-positive discount leaves the base unchanged. No rounding is applied;
// callers format for display.
func DiscountedPrice(base float64, discount *float64) float64 {
	if discount == nil || *discount <= 0 {
		return base
	}
	return base * (1 - *discount/100)
}

// LineTotal is the discounted unit price multiplied by quantity.
func LineTotal(base float64, discount *float64, quantity int) float64 {
	return DiscountedPrice(base, discount) * float64(quantity)
}

// ValidateDiscount rejects discounts outside [0, 100]. The engine itself does
// not range-check; this is the data-entry boundary used by the catalog
// handlers.
func ValidateDiscount(discount *float64) error {
	if discount == nil {
		return nil
	}
	if *discount < 0 || *discount > 100 {
		return ErrDiscountOutOfRange
	}
	return nil
}
