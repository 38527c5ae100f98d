package shelters

import "time"

// Shelter es el registro de la organización, 1:1 con la identidad dueña
// (user_id único). Si una cuenta con rol shelter no tiene fila acá, su
// onboarding está incompleto.
type Shelter struct {
	ID      string
	UserID  string
	Name    string
	Address string
	City    string
	State   string
	Phone   string
	Email   string
	Website *string // nil = sin sitio web

	CreatedAt time.Time
	UpdatedAt time.Time
}
