package accounts

import (
	"testing"

	"pet-adoption/internal/domain/profiles"
)

func TestDecide_Table(t *testing.T) {
	cases := []struct {
		name          string
		authenticated bool
		role          profiles.Role
		hasShelter    bool
		want          State
	}{
		{"sin sesion", false, profiles.RoleShelter, true, StateUnauthenticated},
		{"shelter sin fila", true, profiles.RoleShelter, false, StateAwaitingShelter},
		{"shelter con fila", true, profiles.RoleShelter, true, StateActiveShelter},
		{"adopter", true, profiles.RoleAdopter, false, StateActiveAdopter},
		{"foster", true, profiles.RoleFoster, false, StateActiveAdopter},
		// identidad confirmada sin profile: cae en la rama adopter
		{"sin profile", true, "", false, StateActiveAdopter},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := Decide(tc.authenticated, tc.role, tc.hasShelter)
			if got != tc.want {
				t.Fatalf("Decide(%v, %q, %v) = %s, want %s",
					tc.authenticated, tc.role, tc.hasShelter, got, tc.want)
			}
		})
	}
}

func TestState_Path(t *testing.T) {
	cases := map[State]string{
		StateUnauthenticated: "/login",
		StateAwaitingShelter: "/shelter-setup",
		StateActiveShelter:   "/home",
		StateActiveAdopter:   "/home",
	}
	for state, want := range cases {
		if got := state.Path(); got != want {
			t.Fatalf("%s.Path() = %s, want %s", state, got, want)
		}
	}
}
