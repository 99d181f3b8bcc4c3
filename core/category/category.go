package category

import "time"

type Category struct {
	ID          string    `json:"id" db:"category_id"`
	Name        string    `json:"nombre" db:"name"`
	Description string    `json:"descripcion" db:"description"`
	ImageURL    string    `json:"imagen" db:"image_url"`
	CreatedAt   time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt   time.Time `json:"updatedAt" db:"updated_at"`
}

type CategoryNew struct {
	Name        string `json:"nombre" validate:"required"`
	Description string `json:"descripcion"`
	ImageURL    string `json:"imagen" validate:"omitempty,url"`
}

type CategoryUp struct {
	Name        *string `json:"nombre"`
	Description *string `json:"descripcion"`
	ImageURL    *string `json:"imagen" validate:"omitempty,url"`
}
