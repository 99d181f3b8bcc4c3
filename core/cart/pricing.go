package cart

import (
	"math"
	"strings"
)

const (
	// DiscountCode unlocks the storefront's anniversary discount.
	DiscountCode = "PMS50AGNOS"

	// DiscountRate is applied to the subtotal once the code is active.
	DiscountRate = 0.10
)

type Summary struct {
	Subtotal        int  `json:"subtotal"`
	Discount        int  `json:"descuento"`
	Total           int  `json:"total"`
	DiscountApplied bool `json:"descuentoAplicado"`
}

// ValidCode compares the input against the discount code, ignoring
// case and surrounding whitespace.
func ValidCode(input string) bool {
	return strings.EqualFold(strings.TrimSpace(input), DiscountCode)
}

// ComputeTotals derives pricing from the given lines. The discount is
// rounded half away from zero to the nearest peso, so the total stays
// within [0, subtotal].
func ComputeTotals(items []Item, discountApplied bool) Summary {
	subtotal := 0
	for _, it := range items {
		subtotal += it.UnitPrice * it.Quantity
	}

	discount := 0
	if discountApplied {
		discount = int(math.Round(float64(subtotal) * DiscountRate))
	}

	return Summary{
		Subtotal:        subtotal,
		Discount:        discount,
		Total:           subtotal - discount,
		DiscountApplied: discountApplied,
	}
}
