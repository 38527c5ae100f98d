package pets

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// DuplicateNameError indica que el shelter ya tiene un pet con ese nombre.
type DuplicateNameError struct {
	Name string
}

func (e *DuplicateNameError) Error() string {
	return fmt.Sprintf("a pet named %q already exists in your shelter", e.Name)
}

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

type RegisterInput struct {
	Name           string
	Species        string
	Breed          string
	Age            *int
	Sex            string
	Description    string
	Behavior       string
	MedicalHistory string
	IsVaccinated   bool
	IsNeutered     bool
}

// Register crea el listado con status available. El chequeo de nombre
// duplicado es read-then-insert sin constraint en el store: best-effort.
func (s *Service) Register(ctx context.Context, shelterID string, in RegisterInput) (Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return Pet{}, ErrInvalidInput
	}

	name := strings.TrimSpace(in.Name)
	species := strings.TrimSpace(in.Species)
	if name == "" || species == "" {
		return Pet{}, ErrInvalidInput
	}

	sex, ok := ParseSex(in.Sex)
	if !ok {
		return Pet{}, ErrInvalidInput
	}
	if in.Age != nil && *in.Age < 0 {
		return Pet{}, ErrInvalidInput
	}

	if existing, err := s.repo.FindByShelterAndName(ctx, shelterID, name); err == nil && existing.ID != "" {
		return Pet{}, &DuplicateNameError{Name: name}
	}

	p := Pet{
		ID:             uuid.NewString(),
		ShelterID:      shelterID,
		Name:           name,
		Species:        species,
		Breed:          optional(in.Breed),
		Age:            in.Age,
		Sex:            sex,
		Description:    optional(in.Description),
		Behavior:       optional(in.Behavior),
		MedicalHistory: optional(in.MedicalHistory),
		IsVaccinated:   in.IsVaccinated,
		IsNeutered:     in.IsNeutered,
		Status:         StatusAvailable,
		CreatedAt:      s.now(),
	}

	if err := s.repo.Create(ctx, p); err != nil {
		return Pet{}, err
	}
	return p, nil
}

func (s *Service) ListByShelter(ctx context.Context, shelterID string) ([]Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, ErrInvalidInput
	}
	return s.repo.ListByShelter(ctx, shelterID)
}

func (s *Service) ListAvailable(ctx context.Context) ([]WithShelter, error) {
	return s.repo.ListAvailable(ctx)
}

// optional normaliza los campos de texto opcionales: vacío => ausente.
func optional(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
