package home

import (
	"context"
	"errors"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/domain/shelters"
)

var (
	ErrNoProfile = errors.New("profile not found")
	ErrNoShelter = errors.New("shelter onboarding incomplete")
)

// Dashboard es la respuesta del home, ya resuelta por rol.
type Dashboard struct {
	Variant string // "shelter" o "adopter"
	Profile profiles.Profile

	// Variante shelter: inventario propio completo (todos los status).
	Shelter *shelters.Shelter
	Pets    []pets.Pet

	// Variante adopter/foster: catálogo público filtrado + especies del
	// catálogo completo para la botonera.
	Catalog []pets.WithShelter
	Species []string
}

type Service struct {
	profiles *profiles.Service
	shelters *shelters.Service
	pets     *pets.Service
}

func NewService(profilesSvc *profiles.Service, sheltersSvc *shelters.Service, petsSvc *pets.Service) *Service {
	return &Service{
		profiles: profilesSvc,
		shelters: sheltersSvc,
		pets:     petsSvc,
	}
}

// Load decide la variante por rol en el servidor, antes de renderizar nada.
func (s *Service) Load(ctx context.Context, userID, q, speciesFilter string) (Dashboard, error) {
	prof, err := s.profiles.GetByID(ctx, userID)
	if err != nil {
		return Dashboard{}, ErrNoProfile
	}

	if prof.Role == profiles.RoleShelter {
		sh, err := s.shelters.GetByUserID(ctx, userID)
		if err != nil {
			return Dashboard{}, ErrNoShelter
		}

		// Solo el inventario propio, nunca el de otro shelter.
		items, err := s.pets.ListByShelter(ctx, sh.ID)
		if err != nil {
			return Dashboard{}, err
		}

		return Dashboard{
			Variant: "shelter",
			Profile: prof,
			Shelter: &sh,
			Pets:    items,
		}, nil
	}

	// Adopter o foster: catálogo de disponibles.
	catalog, err := s.pets.ListAvailable(ctx)
	if err != nil {
		return Dashboard{}, err
	}

	return Dashboard{
		Variant: "adopter",
		Profile: prof,
		Catalog: Filter(catalog, q, speciesFilter),
		Species: SpeciesList(catalog),
	}, nil
}
