package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/shelters"
)

type shelterRepo struct {
	mu       sync.RWMutex
	byID     map[string]shelters.Shelter
	byUserID map[string]string // user_id => shelter id
}

func NewShelterRepo() shelters.Repository {
	return &shelterRepo{
		byID:     make(map[string]shelters.Shelter),
		byUserID: make(map[string]string),
	}
}

// Upsert replica el ON CONFLICT (user_id) de postgres: una sola fila por
// user_id, conservando id y created_at de la original.
func (r *shelterRepo) Upsert(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(s.UserID) == "" {
		return shelters.Shelter{}, errors.New("shelter user_id required")
	}

	if existingID, ok := r.byUserID[s.UserID]; ok {
		prev := r.byID[existingID]
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
	} else if strings.TrimSpace(s.ID) == "" {
		return shelters.Shelter{}, errors.New("shelter id required")
	}

	r.byID[s.ID] = s
	r.byUserID[s.UserID] = s.ID
	return s, nil
}

func (r *shelterRepo) GetByUserID(ctx context.Context, userID string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	id, ok := r.byUserID[userID]
	if !ok {
		return shelters.Shelter{}, ErrNotFound
	}
	return r.byID[id], nil
}

func (r *shelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	s, ok := r.byID[id]
	if !ok {
		return shelters.Shelter{}, ErrNotFound
	}
	return s, nil
}
