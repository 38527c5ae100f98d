package identity

import (
	"context"
	"errors"
)

var (
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrEmailNotConfirmed  = errors.New("email not confirmed")
	ErrInvalidCode        = errors.New("invalid or expired code")
	ErrNoSession          = errors.New("no session")
)

// Provider es el contrato contra el servicio de identidad gestionado.
// El backend real es opaco: cuentas, credenciales, confirmación por email
// y sesiones viven allá; acá solo consumimos estas llamadas.
type Provider interface {
	SignUp(ctx context.Context, in SignUpInput) (User, error)
	SignInWithPassword(ctx context.Context, email, password string) (Session, error)

	// ExchangeCode canjea el código del link de confirmación por una sesión.
	ExchangeCode(ctx context.Context, code string) (Session, error)

	GetUser(ctx context.Context, accessToken string) (User, error)
	SignOut(ctx context.Context, accessToken string) error
}
