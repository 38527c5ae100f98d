package preferences

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("preferences not found")
)

// FieldError es un error de validación atado a un campo del formulario.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

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

type SaveInput struct {
	PreferredSpecies []string
	PreferredAgeMin  *int
	PreferredAgeMax  *int
	HasChildren      bool
	HasOtherPets     bool
	LivingSituation  string
	Yard             bool
	ExperienceLevel  string
	Notes            string
}

// Save es el mismo create-or-update que shelters, contra preferences:
// una sola fila por usuario vía upsert atómico del repo.
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preference{}, ErrInvalidInput
	}

	species := normalizeSpecies(in.PreferredSpecies)
	if len(species) == 0 {
		return Preference{}, &FieldError{Field: "preferred_species", Message: "Select at least one species"}
	}

	// Los límites de edad son opcionales e independientes entre sí.
	if in.PreferredAgeMin != nil && *in.PreferredAgeMin < 0 {
		return Preference{}, &FieldError{Field: "preferred_age_min", Message: "Age must be a positive number"}
	}
	if in.PreferredAgeMax != nil && *in.PreferredAgeMax < 0 {
		return Preference{}, &FieldError{Field: "preferred_age_max", Message: "Age must be a positive number"}
	}

	living, ok := ParseLivingSituation(in.LivingSituation)
	if !ok {
		return Preference{}, &FieldError{Field: "living_situation", Message: "Invalid living situation"}
	}
	experience, ok := ParseExperienceLevel(in.ExperienceLevel)
	if !ok {
		return Preference{}, &FieldError{Field: "experience_level", Message: "Invalid experience level"}
	}

	now := s.now()
	row := Preference{
		ID:               uuid.NewString(), // se descarta si el usuario ya tenía fila
		UserID:           userID,
		PreferredSpecies: species,
		PreferredAgeMin:  in.PreferredAgeMin,
		PreferredAgeMax:  in.PreferredAgeMax,
		HasChildren:      in.HasChildren,
		HasOtherPets:     in.HasOtherPets,
		LivingSituation:  living,
		Yard:             in.Yard,
		ExperienceLevel:  experience,
		Notes:            optionalNotes(in.Notes),
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	return s.repo.Upsert(ctx, row)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Preference{}, ErrNotFound
	}
	return s.repo.GetByUserID(ctx, userID)
}

// normalizeSpecies recorta, descarta vacíos y deduplica preservando orden.
func normalizeSpecies(in []string) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0, len(in))
	for _, raw := range in {
		sp := strings.TrimSpace(raw)
		if sp == "" {
			continue
		}
		key := strings.ToLower(sp)
		if _, ok := seen[key]; ok {
			continue
		}
		seen[key] = struct{}{}
		out = append(out, sp)
	}
	return out
}

func optionalNotes(s string) *string {
	s = strings.TrimSpace(s)
	if s == "" {
		return nil
	}
	return &s
}
