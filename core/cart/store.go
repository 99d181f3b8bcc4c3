package cart

import "encoding/json"

const (
	itemsKey    = "carrito"
	discountKey = "carritoDescuento"
)

// Store holds the canonical cart state for one session and persists a
// snapshot to its Storage after every mutation.
type Store struct {
	storage         Storage
	items           []Item
	discountApplied bool
}

// NewStore hydrates a store from storage. Corrupt persisted state is
// discarded: the store comes up empty rather than failing or keeping a
// partial snapshot.
func NewStore(storage Storage) *Store {
	s := &Store{storage: storage}

	raw, ok := storage.Read(itemsKey)
	if ok {
		var items []Item
		if err := json.Unmarshal([]byte(raw), &items); err == nil && allValid(items) {
			s.items = items
		}
	}

	if _, ok := storage.Read(discountKey); ok {
		s.discountApplied = true
	}

	return s
}

func allValid(items []Item) bool {
	for _, it := range items {
		if !it.valid() {
			return false
		}
	}
	return true
}

// Add merges the item into an existing line with the same identity,
// keeping the originally captured price and name, or appends a new line
// with quantity 1.
func (s *Store) Add(it Item) {
	for i := range s.items {
		if s.items[i].ProductID == it.ProductID && s.items[i].VariantID == it.VariantID {
			s.items[i].Quantity++
			s.persist()
			return
		}
	}

	it.Quantity = 1
	s.items = append(s.items, it)
	s.persist()
}

// Remove deletes the whole line matching the identity, regardless of
// quantity. Removing an absent line is a no-op.
func (s *Store) Remove(productID, variantID string) {
	for i := range s.items {
		if s.items[i].ProductID == productID && s.items[i].VariantID == variantID {
			s.items = append(s.items[:i], s.items[i+1:]...)
			s.persist()
			return
		}
	}
}

// Clear empties the cart and deletes the persisted keys, so a fresh
// store sees no residue.
func (s *Store) Clear() {
	s.items = nil
	s.discountApplied = false
	s.storage.Remove(itemsKey)
	s.storage.Remove(discountKey)
}

// Items returns the lines in insertion order.
func (s *Store) Items() []Item {
	items := make([]Item, len(s.items))
	copy(items, s.items)
	return items
}

func (s *Store) Empty() bool {
	return len(s.items) == 0
}

// Apply evaluates the promo code. A valid code turns the discount on
// until the cart is cleared; an invalid one turns it off.
func (s *Store) Apply(code string) bool {
	if ValidCode(code) {
		s.discountApplied = true
		s.storage.Write(discountKey, "1")
		return true
	}

	s.discountApplied = false
	s.storage.Remove(discountKey)
	return false
}

func (s *Store) DiscountApplied() bool {
	return s.discountApplied
}

func (s *Store) Totals() Summary {
	return ComputeTotals(s.items, s.discountApplied)
}

func (s *Store) persist() {
	raw, err := json.Marshal(s.items)
	if err != nil {
		return
	}
	s.storage.Write(itemsKey, string(raw))
}
