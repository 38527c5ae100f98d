package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/profiles"
)

var (
	ErrNotFound = errors.New("not found")
)

type profileRepo struct {
	mu   sync.RWMutex
	byID map[string]profiles.Profile
}

func NewProfileRepo() profiles.Repository {
	return &profileRepo{
		byID: make(map[string]profiles.Profile),
	}
}

func (r *profileRepo) Create(ctx context.Context, p profiles.Profile) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.ID) == "" {
		return errors.New("profile id required")
	}
	if _, exists := r.byID[p.ID]; exists {
		return errors.New("profile already exists")
	}
	r.byID[p.ID] = p
	return nil
}

func (r *profileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, ErrNotFound
	}
	return p, nil
}
