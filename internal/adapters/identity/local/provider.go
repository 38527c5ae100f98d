package local

import (
	"context"
	"strings"
	"sync"

	"github.com/google/uuid"

	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/identity"
	"pet-adoption/internal/ports/mail"
)

// Provider es un proveedor de identidad en memoria para dev y tests.
// Replica el flujo de confirmación por email: SignUp deja la cuenta sin
// confirmar y manda (o loguea) un link con un code canjeable una sola vez.
type Provider struct {
	mu       sync.Mutex
	byEmail  map[string]*account
	byCode   map[string]string // code => email
	sessions map[string]string // access token => email

	mailer mail.Sender
	log    logger.Logger
}

type account struct {
	id        string
	email     string
	password  string
	metadata  map[string]string
	confirmed bool
}

type Options struct {
	// Mailer entrega los links de confirmación. Si es nil, solo se loguean.
	Mailer mail.Sender
	Logger logger.Logger
}

func New(opts Options) *Provider {
	l := opts.Logger
	if l == nil {
		l = logger.New(logger.Options{Level: logger.Warn})
	}
	return &Provider{
		byEmail:  make(map[string]*account),
		byCode:   make(map[string]string),
		sessions: make(map[string]string),
		mailer:   opts.Mailer,
		log:      l.With(map[string]any{"component": "identity.local"}),
	}
}

func (p *Provider) SignUp(ctx context.Context, in identity.SignUpInput) (identity.User, error) {
	email := normalizeEmail(in.Email)
	if email == "" || in.Password == "" {
		return identity.User{}, identity.ErrInvalidCredentials
	}

	p.mu.Lock()
	defer p.mu.Unlock()

	if _, exists := p.byEmail[email]; exists {
		return identity.User{}, identity.ErrEmailTaken
	}

	meta := make(map[string]string, len(in.Metadata))
	for k, v := range in.Metadata {
		meta[k] = v
	}

	acc := &account{
		id:       uuid.NewString(),
		email:    email,
		password: in.Password,
		metadata: meta,
	}
	p.byEmail[email] = acc

	code := uuid.NewString()
	p.byCode[code] = email

	link := strings.TrimSpace(in.RedirectTo)
	if link != "" {
		link += "?code=" + code
	}
	p.deliver(ctx, email, link, code)

	return toUser(acc), nil
}

// deliver manda el link de confirmación; sin mailer queda en el log, que
// alcanza para dev.
func (p *Provider) deliver(ctx context.Context, email, link, code string) {
	if p.mailer == nil {
		p.log.Info("confirmation link issued", map[string]any{
			"email": email,
			"link":  link,
			"code":  code,
		})
		return
	}

	body := "Confirm your account: " + link
	if err := p.mailer.Send(ctx, email, "Confirm your account", body); err != nil {
		p.log.Error("send confirmation mail failed", map[string]any{
			"email": email,
			"error": err.Error(),
		})
	}
}

func (p *Provider) ExchangeCode(ctx context.Context, code string) (identity.Session, error) {
	code = strings.TrimSpace(code)

	p.mu.Lock()
	defer p.mu.Unlock()

	email, ok := p.byCode[code]
	if !ok {
		return identity.Session{}, identity.ErrInvalidCode
	}
	delete(p.byCode, code) // un solo canje por code

	acc := p.byEmail[email]
	acc.confirmed = true

	return p.newSessionLocked(acc), nil
}

func (p *Provider) SignInWithPassword(ctx context.Context, email, password string) (identity.Session, error) {
	email = normalizeEmail(email)

	p.mu.Lock()
	defer p.mu.Unlock()

	acc, ok := p.byEmail[email]
	if !ok || acc.password != password {
		return identity.Session{}, identity.ErrInvalidCredentials
	}
	if !acc.confirmed {
		return identity.Session{}, identity.ErrEmailNotConfirmed
	}

	return p.newSessionLocked(acc), nil
}

func (p *Provider) GetUser(ctx context.Context, accessToken string) (identity.User, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	email, ok := p.sessions[strings.TrimSpace(accessToken)]
	if !ok {
		return identity.User{}, identity.ErrNoSession
	}
	return toUser(p.byEmail[email]), nil
}

func (p *Provider) SignOut(ctx context.Context, accessToken string) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	delete(p.sessions, strings.TrimSpace(accessToken))
	return nil
}

func (p *Provider) newSessionLocked(acc *account) identity.Session {
	token := uuid.NewString()
	p.sessions[token] = acc.email
	return identity.Session{
		AccessToken:  token,
		RefreshToken: uuid.NewString(),
		User:         toUser(acc),
	}
}

func toUser(acc *account) identity.User {
	meta := make(map[string]string, len(acc.metadata))
	for k, v := range acc.metadata {
		meta[k] = v
	}
	return identity.User{
		ID:        acc.id,
		Email:     acc.email,
		Confirmed: acc.confirmed,
		Metadata:  meta,
	}
}

func normalizeEmail(s string) string {
	return strings.ToLower(strings.TrimSpace(s))
}
