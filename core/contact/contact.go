package contact

import "time"

type Contact struct {
	ID        string    `json:"id" db:"contact_id"`
	Name      string    `json:"nombre" db:"name"`
	Email     string    `json:"email" db:"email"`
	Phone     string    `json:"telefono" db:"phone"`
	Message   string    `json:"mensaje" db:"message"`
	Read      bool      `json:"leido" db:"read"`
	CreatedAt time.Time `json:"fechaEnvio" db:"created_at"`
}

type ContactNew struct {
	Name    string `json:"nombre" validate:"required,max=200"`
	Email   string `json:"email" validate:"required,email"`
	Phone   string `json:"telefono" validate:"max=20"`
	Message string `json:"mensaje" validate:"required,max=2000"`
}
