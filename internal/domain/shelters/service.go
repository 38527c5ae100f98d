package shelters

import (
	"context"
	"errors"
	"net/mail"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrInvalidInput = errors.New("invalid input")
	ErrNotFound     = errors.New("shelter not found")
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
	Name    string
	Address string
	City    string
	State   string
	Phone   string
	Email   string
	Website string // URL válida o vacío
}

// Save es el create-or-update del shelter del usuario: una sola fila por
// user_id, garantizada por el upsert atómico del repo (no hay ventana
// check-then-insert).
func (s *Service) Save(ctx context.Context, userID string, in SaveInput) (Shelter, error) {
	if strings.TrimSpace(userID) == "" {
		return Shelter{}, ErrInvalidInput
	}
	if err := validate(&in); err != nil {
		return Shelter{}, err
	}

	now := s.now()
	row := Shelter{
		ID:        uuid.NewString(), // se descarta si ya existía fila para el user
		UserID:    strings.TrimSpace(userID),
		Name:      in.Name,
		Address:   in.Address,
		City:      in.City,
		State:     in.State,
		Phone:     in.Phone,
		Email:     in.Email,
		Website:   optional(in.Website),
		CreatedAt: now,
		UpdatedAt: now,
	}

	return s.repo.Upsert(ctx, row)
}

func (s *Service) GetByUserID(ctx context.Context, userID string) (Shelter, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByUserID(ctx, userID)
}

func (s *Service) GetByID(ctx context.Context, id string) (Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return Shelter{}, ErrNotFound
	}
	return s.repo.GetByID(ctx, id)
}

// validate aplica las reglas del formulario y normaliza espacios.
func validate(in *SaveInput) error {
	in.Name = strings.TrimSpace(in.Name)
	in.Address = strings.TrimSpace(in.Address)
	in.City = strings.TrimSpace(in.City)
	in.State = strings.TrimSpace(in.State)
	in.Phone = strings.TrimSpace(in.Phone)
	in.Email = strings.TrimSpace(in.Email)
	in.Website = strings.TrimSpace(in.Website)

	if len(in.Name) < 2 {
		return &FieldError{Field: "name", Message: "Shelter name must be at least 2 characters"}
	}
	if len(in.Address) < 5 {
		return &FieldError{Field: "address", Message: "Please enter a valid address"}
	}
	if len(in.City) < 2 {
		return &FieldError{Field: "city", Message: "City is required"}
	}
	if len(in.State) < 2 {
		return &FieldError{Field: "state", Message: "State is required"}
	}
	// El teléfono solo valida largo, no estructura.
	if len(in.Phone) < 10 {
		return &FieldError{Field: "phone", Message: "Please enter a valid phone number"}
	}
	if _, err := mail.ParseAddress(in.Email); err != nil {
		return &FieldError{Field: "email", Message: "Please enter a valid email"}
	}
	if in.Website != "" {
		u, err := url.Parse(in.Website)
		if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
			return &FieldError{Field: "website", Message: "Please enter a valid URL"}
		}
	}
	return nil
}

func optional(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
