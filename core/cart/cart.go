package cart

import "errors"

// DefaultVariantLabel labels items of products sold in a single size.
const DefaultVariantLabel = "Tamaño único"

// Item is one cart line. Its identity is (ProductID, VariantID); an
// empty VariantID stands for the product's single implicit variant.
// UnitPrice and Name are captured when the item first enters the cart
// and are not refreshed by later catalog changes.
type Item struct {
	ProductID    string `json:"productoId"`
	VariantID    string `json:"varianteId"`
	Name         string `json:"nombre"`
	UnitPrice    int    `json:"precio"`
	Quantity     int    `json:"cantidad"`
	VariantLabel string `json:"tamano"`
}

func NewItem(productID, variantID, name string, unitPrice int, variantLabel string) (Item, error) {
	if productID == "" {
		return Item{}, errors.New("product id is required")
	}
	if unitPrice < 0 {
		return Item{}, errors.New("unit price must not be negative")
	}
	if variantLabel == "" {
		variantLabel = DefaultVariantLabel
	}

	it := Item{
		ProductID:    productID,
		VariantID:    variantID,
		Name:         name,
		UnitPrice:    unitPrice,
		Quantity:     1,
		VariantLabel: variantLabel,
	}
	return it, nil
}

func (it Item) valid() bool {
	return it.ProductID != "" && it.UnitPrice >= 0 && it.Quantity >= 1
}
