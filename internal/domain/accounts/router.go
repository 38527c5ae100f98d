package accounts

import "pet-adoption/internal/domain/profiles"

// State es el estado post-autenticación que gobierna los redirects.
type State string

const (
	StateUnauthenticated State = "unauthenticated"
	StateAwaitingShelter State = "awaiting_shelter_onboarding"
	StateActiveShelter   State = "active_shelter"
	StateActiveAdopter   State = "active_adopter"
)

// Decide es la única función de ruteo post-login. El callback de
// confirmación y la ruta raíz la llaman tal cual: no hay dos copias de
// esta lógica que puedan divergir.
//
// Una identidad confirmada sin fila de profile (registro que falló a
// mitad de camino) cae en la rama adopter y aterriza en /home.
func Decide(authenticated bool, role profiles.Role, hasShelter bool) State {
	if !authenticated {
		return StateUnauthenticated
	}
	if role == profiles.RoleShelter {
		if hasShelter {
			return StateActiveShelter
		}
		return StateAwaitingShelter
	}
	return StateActiveAdopter
}

// Path traduce el estado al destino del redirect.
func (s State) Path() string {
	switch s {
	case StateAwaitingShelter:
		return "/shelter-setup"
	case StateActiveShelter, StateActiveAdopter:
		return "/home"
	default:
		return "/login"
	}
}
