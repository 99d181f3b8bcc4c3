package cart

import (
	"testing"

	"github.com/google/go-cmp/cmp"
)

func mustItem(t *testing.T, productID, variantID string, price int) Item {
	t.Helper()
	it, err := NewItem(productID, variantID, "Torta de prueba", price, "12 personas")
	if err != nil {
		t.Fatalf("building item: %v", err)
	}
	return it
}

func TestAddMergesSameIdentity(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	it := mustItem(t, "p1", "v1", 10000)
	s.Add(it)
	s.Add(it)
	s.Add(it)

	items := s.Items()
	if len(items) != 1 {
		t.Fatalf("expected 1 line, got %d", len(items))
	}
	if items[0].Quantity != 3 {
		t.Fatalf("expected quantity 3, got %d", items[0].Quantity)
	}
}

func TestAddKeepsCapturedPrice(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	s.Add(mustItem(t, "p1", "v1", 10000))

	// A later add of the same identity carries a different catalog
	// price; the line must keep the price captured at first add.
	repriced := mustItem(t, "p1", "v1", 12000)
	s.Add(repriced)

	items := s.Items()
	if items[0].UnitPrice != 10000 {
		t.Fatalf("expected captured price 10000, got %d", items[0].UnitPrice)
	}
	if items[0].Quantity != 2 {
		t.Fatalf("expected quantity 2, got %d", items[0].Quantity)
	}
}

func TestAddDistinguishesVariants(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	s.Add(mustItem(t, "p1", "v1", 10000))
	s.Add(mustItem(t, "p1", "v2", 15000))
	s.Add(mustItem(t, "p1", "", 8000))

	items := s.Items()
	if len(items) != 3 {
		t.Fatalf("expected 3 lines, got %d", len(items))
	}
	for i, it := range items {
		if it.Quantity != 1 {
			t.Fatalf("line %d: expected quantity 1, got %d", i, it.Quantity)
		}
	}
}

func TestAddPreservesInsertionOrder(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	s.Add(mustItem(t, "p1", "v1", 10000))
	s.Add(mustItem(t, "p2", "", 5000))
	s.Add(mustItem(t, "p1", "v1", 10000))

	items := s.Items()
	if items[0].ProductID != "p1" || items[1].ProductID != "p2" {
		t.Fatalf("merge must not reorder lines: got %s, %s", items[0].ProductID, items[1].ProductID)
	}
}

func TestRemoveDeletesWholeLine(t *testing.T) {
	s := NewStore(NewMemoryStorage())

	it := mustItem(t, "p1", "v1", 10000)
	s.Add(it)
	s.Add(it)
	s.Add(mustItem(t, "p2", "", 5000))

	s.Remove("p1", "v1")

	items := s.Items()
	if len(items) != 1 || items[0].ProductID != "p2" {
		t.Fatalf("expected only p2 to remain, got %+v", items)
	}
}

func TestRemoveIsIdempotent(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore(storage)

	s.Add(mustItem(t, "p1", "v1", 10000))
	s.Remove("p1", "v1")

	after := s.Items()
	s.Remove("p1", "v1")

	if diff := cmp.Diff(after, s.Items()); diff != "" {
		t.Fatalf("second removal changed the snapshot: %s", diff)
	}
}

func TestPersistenceRoundTrip(t *testing.T) {
	storage := NewMemoryStorage()

	s := NewStore(storage)
	s.Add(mustItem(t, "p1", "v1", 10000))
	s.Add(mustItem(t, "p2", "", 5000))
	s.Add(mustItem(t, "p2", "", 5000))

	fresh := NewStore(storage)
	if diff := cmp.Diff(s.Items(), fresh.Items()); diff != "" {
		t.Fatalf("rehydrated snapshot differs: %s", diff)
	}
}

func TestPersistenceRoundTripEmpty(t *testing.T) {
	storage := NewMemoryStorage()

	NewStore(storage).persist()

	fresh := NewStore(storage)
	if !fresh.Empty() {
		t.Fatalf("expected empty cart, got %d lines", len(fresh.Items()))
	}
}

func TestCorruptStorageYieldsEmptyCart(t *testing.T) {
	tests := []struct {
		name string
		raw  string
	}{
		{"garbage", "{not json"},
		{"wrong shape", `{"foo": 1}`},
		{"zero quantity entry", `[{"productoId":"p1","precio":100,"cantidad":0}]`},
		{"missing product id", `[{"precio":100,"cantidad":1}]`},
		{"negative price", `[{"productoId":"p1","precio":-5,"cantidad":1}]`},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			storage := NewMemoryStorage()
			storage.Write(itemsKey, tc.raw)

			s := NewStore(storage)
			if !s.Empty() {
				t.Fatalf("expected empty cart, got %+v", s.Items())
			}
		})
	}
}

func TestClearRemovesEveryTrace(t *testing.T) {
	storage := NewMemoryStorage()

	s := NewStore(storage)
	s.Add(mustItem(t, "p1", "v1", 10000))
	s.Apply(DiscountCode)

	s.Clear()

	if _, ok := storage.Read(itemsKey); ok {
		t.Fatal("items key still present after clear")
	}
	if _, ok := storage.Read(discountKey); ok {
		t.Fatal("discount key still present after clear")
	}

	fresh := NewStore(storage)
	if !fresh.Empty() {
		t.Fatalf("fresh store sees %d lines after clear", len(fresh.Items()))
	}
	if fresh.DiscountApplied() {
		t.Fatal("fresh store sees discount applied after clear")
	}
}

func TestDiscountFlagSurvivesCartEdits(t *testing.T) {
	storage := NewMemoryStorage()
	s := NewStore(storage)

	s.Add(mustItem(t, "p1", "v1", 10000))
	if !s.Apply("pms50agnos ") {
		t.Fatal("code should be accepted regardless of case and spacing")
	}

	s.Add(mustItem(t, "p2", "", 5000))
	s.Remove("p1", "v1")

	if !s.Totals().DiscountApplied {
		t.Fatal("discount flag lost across cart edits")
	}

	fresh := NewStore(storage)
	if !fresh.DiscountApplied() {
		t.Fatal("discount flag not persisted")
	}

	if fresh.Apply("CODIGO-FALSO") {
		t.Fatal("invalid code accepted")
	}
	if fresh.DiscountApplied() {
		t.Fatal("invalid code must reset the flag")
	}
}
