package product

import "time"

type Product struct {
	ID          string    `json:"id" db:"product_id"`
	CategoryID  *string   `json:"categoriaId" db:"category_id"`
	Name        string    `json:"nombre" db:"name"`
	Description string    `json:"descripcion" db:"description"`
	ImageURL    string    `json:"imagen" db:"image_url"`
	BasePrice   int       `json:"precioBase" db:"base_price"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
	Version     int       `json:"-" db:"version"`
	Variants    []Variant `json:"variantes" db:"-"`
	Images      []Image   `json:"imagenes" db:"-"`
}

type Variant struct {
	ID            string    `json:"id" db:"variant_id"`
	ProductID     string    `json:"-" db:"product_id"`
	Name          string    `json:"nombre" db:"name"`
	Price         int       `json:"precio" db:"price"`
	Stock         int       `json:"stock" db:"stock"`
	NutritionInfo string    `json:"infoNutricional" db:"nutrition_info"`
	CreatedAt     time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt     time.Time `json:"updatedAt" db:"updated_at"`
}

type Image struct {
	ID        string    `json:"id" db:"image_id"`
	ProductID string    `json:"-" db:"product_id"`
	URL       string    `json:"url" db:"url"`
	Position  int       `json:"posicion" db:"position"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
}

type ProductNew struct {
	CategoryID  *string      `json:"categoriaId" validate:"omitempty,uuid"`
	Name        string       `json:"nombre" validate:"required"`
	Description string       `json:"descripcion"`
	ImageURL    string       `json:"imagen" validate:"omitempty,url"`
	BasePrice   int          `json:"precioBase" validate:"gte=0"`
	Variants    []VariantNew `json:"variantes" validate:"dive"`
	Images      []ImageNew   `json:"imagenes" validate:"dive"`
}

type VariantNew struct {
	Name          string `json:"nombre" validate:"required"`
	Price         int    `json:"precio" validate:"gte=0"`
	Stock         int    `json:"stock" validate:"gte=0"`
	NutritionInfo string `json:"infoNutricional"`
}

type ImageNew struct {
	URL      string `json:"url" validate:"required,url"`
	Position int    `json:"posicion" validate:"gte=0"`
}

type ProductUp struct {
	CategoryID  *string `json:"categoriaId" validate:"omitempty,uuid"`
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	ImageURL    *string `json:"imagen" validate:"omitempty,url"`
	BasePrice   *int    `json:"precioBase" validate:"omitempty,gte=0"`
}

type VariantUp struct {
	Name          *string `json:"nombre"`
	Price         *int    `json:"precio" validate:"omitempty,gte=0"`
	Stock         *int    `json:"stock" validate:"omitempty,gte=0"`
	NutritionInfo *string `json:"infoNutricional"`
}
