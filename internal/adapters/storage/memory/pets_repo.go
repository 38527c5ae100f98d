package memory

import (
	"context"
	"errors"
	"sort"
	"strings"
	"sync"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/shelters"
)

type petRepo struct {
	mu   sync.RWMutex
	byID map[string]pets.Pet

	// Para la denormalización del catálogo (nombre/ciudad del shelter).
	shelters shelters.Repository
}

func NewPetRepo(sheltersRepo shelters.Repository) pets.Repository {
	return &petRepo{
		byID:     make(map[string]pets.Pet),
		shelters: sheltersRepo,
	}
}

func (r *petRepo) Create(ctx context.Context, p pets.Pet) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("pet id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("pet already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *petRepo) FindByShelterAndName(ctx context.Context, shelterID, name string) (pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, p := range r.byID {
		if p.ShelterID == shelterID && p.Name == name {
			return p, nil
		}
	}
	return pets.Pet{}, ErrNotFound
}

func (r *petRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.ShelterID == shelterID {
			out = append(out, p)
		}
	}
	sortNewestFirst(out)
	return out, nil
}

func (r *petRepo) ListAvailable(ctx context.Context) ([]pets.WithShelter, error) {
	r.mu.RLock()
	available := make([]pets.Pet, 0)
	for _, p := range r.byID {
		if p.Status == pets.StatusAvailable {
			available = append(available, p)
		}
	}
	r.mu.RUnlock()

	sortNewestFirst(available)

	out := make([]pets.WithShelter, 0, len(available))
	for _, p := range available {
		row := pets.WithShelter{Pet: p}
		if r.shelters != nil {
			if sh, err := r.shelters.GetByID(ctx, p.ShelterID); err == nil {
				row.ShelterName = sh.Name
				row.ShelterCity = sh.City
				row.ShelterState = sh.State
			}
		}
		out = append(out, row)
	}
	return out, nil
}

// sortNewestFirst ordena por created_at desc, con el id como desempate
// para que el orden sea estable en tests.
func sortNewestFirst(items []pets.Pet) {
	sort.Slice(items, func(i, j int) bool {
		if items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].ID > items[j].ID
		}
		return items[i].CreatedAt.After(items[j].CreatedAt)
	})
}
