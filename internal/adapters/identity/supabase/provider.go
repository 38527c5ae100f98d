package supabase

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"pet-adoption/internal/platform/httpclient"
	"pet-adoption/internal/ports/identity"
)

var (
	ErrNotConfigured = errors.New("supabase client not configured")
	ErrUpstream      = errors.New("supabase upstream error")
)

// Config del cliente de auth de Supabase (GoTrue).
// BaseURL y APIKey normalmente vendrán de env vars en el servicio que lo instancie.
type Config struct {
	BaseURL string
	APIKey  string
	Timeout time.Duration
}

type Provider struct {
	http   *httpclient.Client
	apiKey string
}

func New(cfg Config) (*Provider, error) {
	base := strings.TrimRight(strings.TrimSpace(cfg.BaseURL), "/")
	key := strings.TrimSpace(cfg.APIKey)
	if base == "" || key == "" {
		return nil, ErrNotConfigured
	}

	c, err := httpclient.NewWithBaseURL(base, cfg.Timeout)
	if err != nil {
		return nil, err
	}
	return &Provider{http: c, apiKey: key}, nil
}

type userPayload struct {
	ID               string         `json:"id"`
	Email            string         `json:"email"`
	EmailConfirmedAt string         `json:"email_confirmed_at"`
	ConfirmedAt      string         `json:"confirmed_at"`
	UserMetadata     map[string]any `json:"user_metadata"`
}

type sessionPayload struct {
	AccessToken  string       `json:"access_token"`
	RefreshToken string       `json:"refresh_token"`
	User         *userPayload `json:"user"`
}

func (p *Provider) SignUp(ctx context.Context, in identity.SignUpInput) (identity.User, error) {
	path := "/auth/v1/signup"
	if redirect := strings.TrimSpace(in.RedirectTo); redirect != "" {
		path += "?redirect_to=" + url.QueryEscape(redirect)
	}

	meta := make(map[string]any, len(in.Metadata))
	for k, v := range in.Metadata {
		meta[k] = v
	}

	// Respuesta sin sesión cuando la confirmación por email está activa:
	// viene el user pelado.
	var out userPayload
	err := p.http.DoJSON(ctx, http.MethodPost, path, p.headers(""), map[string]any{
		"email":    in.Email,
		"password": in.Password,
		"data":     meta,
	}, &out)
	if err != nil {
		return identity.User{}, p.mapError(err, identity.ErrEmailTaken)
	}

	return toUser(out), nil
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (identity.Session, error) {
	var out sessionPayload
	err := p.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=password", p.headers(""), map[string]string{
		"email":    email,
		"password": password,
	}, &out)
	if err != nil {
		return identity.Session{}, p.mapError(err, identity.ErrInvalidCredentials)
	}
	return toSession(out)
}

func (p *Provider) ExchangeCode(ctx context.Context, code string) (identity.Session, error) {
	var out sessionPayload
	err := p.http.DoJSON(ctx, http.MethodPost, "/auth/v1/token?grant_type=pkce", p.headers(""), map[string]string{
		"auth_code": code,
	}, &out)
	if err != nil {
		return identity.Session{}, p.mapError(err, identity.ErrInvalidCode)
	}
	return toSession(out)
}

func (p *Provider) GetUser(ctx context.Context, accessToken string) (identity.User, error) {
	var out userPayload
	err := p.http.DoJSON(ctx, http.MethodGet, "/auth/v1/user", p.headers(accessToken), nil, &out)
	if err != nil {
		return identity.User{}, p.mapError(err, identity.ErrNoSession)
	}
	return toUser(out), nil
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	err := p.http.DoJSON(ctx, http.MethodPost, "/auth/v1/logout", p.headers(accessToken), nil, nil)
	if err != nil {
		return p.mapError(err, identity.ErrNoSession)
	}
	return nil
}

func (p *Provider) headers(accessToken string) map[string]string {
	h := map[string]string{"apikey": p.apiKey}
	if accessToken != "" {
		h["Authorization"] = "Bearer " + accessToken
	}
	return h
}

// mapError traduce los status de GoTrue a los errores del port; los 5xx y
// errores de red quedan como upstream.
func (p *Provider) mapError(err error, badRequest error) error {
	var httpErr *httpclient.HTTPError
	if !errors.As(err, &httpErr) {
		return fmt.Errorf("%w: %v", ErrUpstream, err)
	}

	switch {
	case httpErr.StatusCode == http.StatusBadRequest || httpErr.StatusCode == http.StatusUnprocessableEntity:
		if strings.Contains(strings.ToLower(httpErr.Body), "not confirmed") {
			return identity.ErrEmailNotConfirmed
		}
		return badRequest
	case httpErr.StatusCode == http.StatusUnauthorized || httpErr.StatusCode == http.StatusForbidden:
		return identity.ErrNoSession
	default:
		return fmt.Errorf("%w: status=%d", ErrUpstream, httpErr.StatusCode)
	}
}

func toUser(u userPayload) identity.User {
	meta := make(map[string]string, len(u.UserMetadata))
	for k, v := range u.UserMetadata {
		if s, ok := v.(string); ok {
			meta[k] = s
		}
	}
	return identity.User{
		ID:        strings.TrimSpace(u.ID),
		Email:     strings.TrimSpace(u.Email),
		Confirmed: u.EmailConfirmedAt != "" || u.ConfirmedAt != "",
		Metadata:  meta,
	}
}

func toSession(s sessionPayload) (identity.Session, error) {
	if strings.TrimSpace(s.AccessToken) == "" || s.User == nil {
		return identity.Session{}, fmt.Errorf("%w: incomplete session payload", ErrUpstream)
	}
	return identity.Session{
		AccessToken:  s.AccessToken,
		RefreshToken: s.RefreshToken,
		User:         toUser(*s.User),
	}, nil
}
