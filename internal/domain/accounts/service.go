package accounts

import (
	"context"
	"errors"
	"net/mail"
	"strings"

	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/ports/identity"
)

var (
	ErrInvalidInput = errors.New("invalid input")
)

// FieldError es un error de validación atado a un campo del formulario.
type FieldError struct {
	Field   string
	Message string
}

func (e *FieldError) Error() string { return e.Message }

type Service struct {
	identity identity.Provider
	profiles *profiles.Service
	shelters *shelters.Service

	// baseURL arma el redirect del link de confirmación (<base>/auth/callback).
	baseURL string
}

func NewService(provider identity.Provider, profilesSvc *profiles.Service, sheltersSvc *shelters.Service, baseURL string) *Service {
	return &Service{
		identity: provider,
		profiles: profilesSvc,
		shelters: sheltersSvc,
		baseURL:  strings.TrimRight(strings.TrimSpace(baseURL), "/"),
	}
}

type RegisterInput struct {
	Name            string
	Email           string
	Password        string
	ConfirmPassword string
	Role            string
}

// Register valida el formulario y recién ahí toca la red: primero el alta
// en el servicio de identidad (con name/role como metadata y el redirect de
// confirmación), después la fila de profile. Los dos pasos no son
// transaccionales: si el insert del profile falla, la identidad ya quedó
// creada y no se compensa.
func (s *Service) Register(ctx context.Context, in RegisterInput) (profiles.Profile, error) {
	name := strings.TrimSpace(in.Name)
	email := strings.TrimSpace(in.Email)

	if len(name) < 2 {
		return profiles.Profile{}, &FieldError{Field: "name", Message: "Name must be at least 2 characters"}
	}
	if _, err := mail.ParseAddress(email); err != nil {
		return profiles.Profile{}, &FieldError{Field: "email", Message: "Invalid email address"}
	}
	if len(in.Password) < 8 {
		return profiles.Profile{}, &FieldError{Field: "password", Message: "Password must be at least 8 characters"}
	}
	if in.Password != in.ConfirmPassword {
		return profiles.Profile{}, &FieldError{Field: "confirm_password", Message: "Passwords don't match"}
	}
	role, ok := profiles.ParseRole(in.Role)
	if !ok || strings.TrimSpace(in.Role) == "" {
		return profiles.Profile{}, &FieldError{Field: "role", Message: "Please select an account type"}
	}

	user, err := s.identity.SignUp(ctx, identity.SignUpInput{
		Email:    email,
		Password: in.Password,
		Metadata: map[string]string{
			"name": name,
			"role": string(role),
		},
		RedirectTo: s.baseURL + "/auth/callback",
	})
	if err != nil {
		return profiles.Profile{}, err
	}

	return s.profiles.Create(ctx, user.ID, name, role)
}

// Landing resuelve el destino para un access token (posiblemente vacío),
// aplicando Decide sobre profile y existencia de shelter.
func (s *Service) Landing(ctx context.Context, accessToken string) State {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return StateUnauthenticated
	}

	user, err := s.identity.GetUser(ctx, accessToken)
	if err != nil {
		return StateUnauthenticated
	}

	var role profiles.Role
	if prof, err := s.profiles.GetByID(ctx, user.ID); err == nil {
		role = prof.Role
	}

	hasShelter := false
	if role == profiles.RoleShelter {
		if _, err := s.shelters.GetByUserID(ctx, user.ID); err == nil {
			hasShelter = true
		}
	}

	return Decide(true, role, hasShelter)
}

// Callback canjea el código del link de confirmación (si vino) y resuelve
// el destino con la misma Landing que usa la ruta raíz.
func (s *Service) Callback(ctx context.Context, code string) (*identity.Session, State) {
	code = strings.TrimSpace(code)
	if code == "" {
		return nil, StateUnauthenticated
	}

	sess, err := s.identity.ExchangeCode(ctx, code)
	if err != nil {
		return nil, StateUnauthenticated
	}

	return &sess, s.Landing(ctx, sess.AccessToken)
}

// Login hace el password grant y devuelve sesión + destino.
func (s *Service) Login(ctx context.Context, email, password string) (identity.Session, State, error) {
	email = strings.TrimSpace(email)
	if email == "" || password == "" {
		return identity.Session{}, StateUnauthenticated, ErrInvalidInput
	}

	sess, err := s.identity.SignInWithPassword(ctx, email, password)
	if err != nil {
		return identity.Session{}, StateUnauthenticated, err
	}

	return sess, s.Landing(ctx, sess.AccessToken), nil
}

func (s *Service) SignOut(ctx context.Context, accessToken string) error {
	accessToken = strings.TrimSpace(accessToken)
	if accessToken == "" {
		return nil
	}
	return s.identity.SignOut(ctx, accessToken)
}
