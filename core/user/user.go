package user

import "time"

type User struct {
	ID        string    `json:"id" db:"user_id"`
	RUT       string    `json:"rut" db:"rut"`
	FirstName string    `json:"nombre" db:"first_name"`
	LastName  string    `json:"apellido" db:"last_name"`
	Email     string    `json:"correo" db:"email"`
	Password  string    `json:"-" db:"password"`
	Address   string    `json:"direccion" db:"address"`
	Region    string    `json:"region" db:"region"`
	Commune   string    `json:"comuna" db:"commune"`
	Role      string    `json:"rol" db:"role"`
	CreatedAt time.Time `json:"createdAt" db:"created_at"`
	UpdatedAt time.Time `json:"updatedAt" db:"updated_at"`
}

type UserSignup struct {
	RUT       string `json:"rut" validate:"required,rut"`
	FirstName string `json:"nombre" validate:"required"`
	LastName  string `json:"apellido" validate:"required"`
	Email     string `json:"correo" validate:"required,email"`
	Password  string `json:"password" validate:"required,min=6"`
	Address   string `json:"direccion"`
	Region    string `json:"region"`
	Commune   string `json:"comuna"`
}

type UserUp struct {
	FirstName *string `json:"nombre"`
	LastName  *string `json:"apellido"`
	Password  *string `json:"password" validate:"omitempty,min=6"`
	Address   *string `json:"direccion"`
	Region    *string `json:"region"`
	Commune   *string `json:"comuna"`
}
