package profiles

import (
	"strings"
	"time"
)

// Role es el tipo de cuenta elegido al registrarse.
// @Enum adopter, foster, shelter
type Role string

const (
	RoleAdopter Role = "adopter"
	RoleFoster  Role = "foster"
	RoleShelter Role = "shelter"
)

func ParseRole(s string) (Role, bool) {
	switch r := Role(strings.TrimSpace(s)); r {
	case RoleAdopter, RoleFoster, RoleShelter:
		return r, true
	default:
		return "", false
	}
}

// Profile extiende la identidad externa con nombre y rol.
// Se crea una sola vez, en el registro, y el rol no cambia después.
type Profile struct {
	ID        string // mismo id que la identidad
	Name      string
	Role      Role
	CreatedAt time.Time
}
