package profiles

import (
	"context"
	"errors"
	"strings"
	"time"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("profile not found")
)

type Service struct {
	repo Repository
	now  func() time.Time
}

func NewService(repo Repository) *Service {
	return &Service{
		repo: repo,
		now:  time.Now,
	}
}

// Create inserta el perfil con el id de la identidad recién creada.
func (s *Service) Create(ctx context.Context, id, name string, role Role) (Profile, error) {
	id = strings.TrimSpace(id)
	name = strings.TrimSpace(name)
	if id == "" || name == "" {
		return Profile{}, ErrInvalidInput
	}
	if _, ok := ParseRole(string(role)); !ok {
		return Profile{}, ErrInvalidInput
	}

	p := Profile{
		ID:        id,
		Name:      name,
		Role:      role,
		CreatedAt: s.now(),
	}
	if err := s.repo.Create(ctx, p); err != nil {
		return Profile{}, err
	}
	return p, nil
}

func (s *Service) GetByID(ctx context.Context, id string) (Profile, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Profile{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}
