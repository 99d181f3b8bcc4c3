package order

import "time"

type Status string

// Orders are recorded at checkout time, once the stock decrement has
// already succeeded, so they are born completed.
const Completed Status = "COMPLETADA"

type Order struct {
	ID        string    `json:"id" db:"order_id"`
	UserID    string    `json:"usuarioId" db:"user_id"`
	Status    Status    `json:"estado" db:"status"`
	Total     int       `json:"total" db:"total"`
	CreatedAt time.Time `json:"fecha" db:"created_at"`
	UpdatedAt time.Time `json:"-" db:"updated_at"`
	Items     []Item    `json:"items,omitempty" db:"-"`
}

// Item denormalizes the product name, variant label and unit price the
// buyer saw, so receipts survive later catalog edits.
type Item struct {
	OrderID      string    `json:"-" db:"order_id"`
	ProductID    string    `json:"productoId" db:"product_id"`
	VariantID    string    `json:"varianteId" db:"variant_id"`
	ProductName  string    `json:"nombreProducto" db:"product_name"`
	VariantLabel string    `json:"tamano" db:"variant_label"`
	UnitPrice    int       `json:"precioUnitario" db:"unit_price"`
	Quantity     int       `json:"cantidad" db:"quantity"`
	Subtotal     int       `json:"subtotal" db:"subtotal"`
	CreatedAt    time.Time `json:"-" db:"created_at"`
}
