package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestValidCode(t *testing.T) {
	valid := []string{"PMS50AGNOS", "pms50agnos", "Pms50Agnos", "  PMS50AGNOS  "}
	for _, code := range valid {
		if !ValidCode(code) {
			t.Errorf("ValidCode(%q) = false, want true", code)
		}
	}

	invalid := []string{"", "PMS50", "PMS50AGNOS1", "descuento"}
	for _, code := range invalid {
		if ValidCode(code) {
			t.Errorf("ValidCode(%q) = true, want false", code)
		}
	}
}

func TestComputeTotals(t *testing.T) {
	items := []Item{
		{ProductID: "p1", UnitPrice: 10000, Quantity: 1},
		{ProductID: "p2", UnitPrice: 5000, Quantity: 2},
	}

	got := ComputeTotals(items, false)
	want := Summary{Subtotal: 20000, Discount: 0, Total: 20000}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals without discount: %s", diff)
	}

	got = ComputeTotals(items, true)
	want = Summary{Subtotal: 20000, Discount: 2000, Total: 18000, DiscountApplied: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("totals with discount: %s", diff)
	}
}

func TestComputeTotalsEmpty(t *testing.T) {
	got := ComputeTotals(nil, true)
	if got.Subtotal != 0 || got.Discount != 0 || got.Total != 0 {
		t.Fatalf("empty cart must total zero, got %+v", got)
	}
}

func TestComputeTotalsRounding(t *testing.T) {
	// 10% of 15 is 1.5; rounds away from zero to 2.
	items := []Item{{ProductID: "p1", UnitPrice: 15, Quantity: 1}}

	got := ComputeTotals(items, true)
	if got.Discount != 2 {
		t.Fatalf("expected discount 2, got %d", got.Discount)
	}
	if got.Total != 13 {
		t.Fatalf("expected total 13, got %d", got.Total)
	}
}

func TestComputeTotalsBounds(t *testing.T) {
	items := []Item{
		{ProductID: "p1", UnitPrice: 990, Quantity: 3},
		{ProductID: "p2", UnitPrice: 12345, Quantity: 1},
		{ProductID: "p3", UnitPrice: 1, Quantity: 7},
	}

	for _, applied := range []bool{false, true} {
		got := ComputeTotals(items, applied)
		if got.Total < 0 {
			t.Fatalf("negative total: %+v", got)
		}
		if got.Total > got.Subtotal {
			t.Fatalf("total exceeds subtotal: %+v", got)
		}
		if got.Subtotal-got.Discount != got.Total {
			t.Fatalf("subtotal - discount != total: %+v", got)
		}
	}
}
