package memory

import (
	"context"
	"errors"
	"strings"
	"sync"

	"pet-adoption/internal/domain/preferences"
)

type preferenceRepo struct {
	mu       sync.RWMutex
	byUserID map[string]preferences.Preference
}

func NewPreferenceRepo() preferences.Repository {
	return &preferenceRepo{
		byUserID: make(map[string]preferences.Preference),
	}
}

func (r *preferenceRepo) Upsert(ctx context.Context, p preferences.Preference) (preferences.Preference, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	if strings.TrimSpace(p.UserID) == "" {
		return preferences.Preference{}, errors.New("preference user_id required")
	}

	if prev, ok := r.byUserID[p.UserID]; ok {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
	} else if strings.TrimSpace(p.ID) == "" {
		return preferences.Preference{}, errors.New("preference id required")
	}

	r.byUserID[p.UserID] = p
	return p, nil
}

func (r *preferenceRepo) GetByUserID(ctx context.Context, userID string) (preferences.Preference, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.byUserID[userID]
	if !ok {
		return preferences.Preference{}, ErrNotFound
	}
	return p, nil
}
