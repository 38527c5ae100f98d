package local

import (
	"context"
	"errors"
	"strings"
	"testing"

	"pet-adoption/internal/ports/identity"
)

// recordingMailer captura los mails para sacar el link de confirmación.
type recordingMailer struct {
	to     []string
	bodies []string
}

func (m *recordingMailer) Send(ctx context.Context, to, subject, body string) error {
	m.to = append(m.to, to)
	m.bodies = append(m.bodies, body)
	return nil
}

func (m *recordingMailer) lastCode(t *testing.T) string {
	t.Helper()
	if len(m.bodies) == 0 {
		t.Fatalf("no mail delivered")
	}
	body := m.bodies[len(m.bodies)-1]
	i := strings.Index(body, "?code=")
	if i < 0 {
		t.Fatalf("no code in mail body: %s", body)
	}
	return body[i+len("?code="):]
}

func signUpInput() identity.SignUpInput {
	return identity.SignUpInput{
		Email:      "ana@example.com",
		Password:   "supersecret",
		Metadata:   map[string]string{"name": "Ana", "role": "shelter"},
		RedirectTo: "http://app.test/auth/callback",
	}
}

func TestProvider_ConfirmationFlow(t *testing.T) {
	mailer := &recordingMailer{}
	p := New(Options{Mailer: mailer})
	ctx := context.Background()

	user, err := p.SignUp(ctx, signUpInput())
	if err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if user.Confirmed {
		t.Fatalf("expected unconfirmed account after sign-up")
	}
	if user.Metadata["role"] != "shelter" {
		t.Fatalf("expected metadata to round-trip, got %#v", user.Metadata)
	}

	// Login antes de confirmar: rechazado.
	if _, err := p.SignInWithPassword(ctx, "ana@example.com", "supersecret"); !errors.Is(err, identity.ErrEmailNotConfirmed) {
		t.Fatalf("expected ErrEmailNotConfirmed, got %v", err)
	}

	code := mailer.lastCode(t)
	sess, err := p.ExchangeCode(ctx, code)
	if err != nil {
		t.Fatalf("ExchangeCode error: %v", err)
	}
	if !sess.User.Confirmed {
		t.Fatalf("expected confirmed user after exchange")
	}

	got, err := p.GetUser(ctx, sess.AccessToken)
	if err != nil {
		t.Fatalf("GetUser error: %v", err)
	}
	if got.ID != user.ID {
		t.Fatalf("expected same user id, got %s vs %s", got.ID, user.ID)
	}

	// El code es de un solo uso.
	if _, err := p.ExchangeCode(ctx, code); !errors.Is(err, identity.ErrInvalidCode) {
		t.Fatalf("expected ErrInvalidCode on reuse, got %v", err)
	}

	// Confirmado: el password grant ya anda.
	if _, err := p.SignInWithPassword(ctx, "ana@example.com", "supersecret"); err != nil {
		t.Fatalf("SignInWithPassword after confirm: %v", err)
	}
}

func TestProvider_SignUp_EmailTaken(t *testing.T) {
	p := New(Options{})
	ctx := context.Background()

	if _, err := p.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp #1 error: %v", err)
	}
	if _, err := p.SignUp(ctx, signUpInput()); !errors.Is(err, identity.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken, got %v", err)
	}

	// Email case-insensitive
	in := signUpInput()
	in.Email = "ANA@example.com"
	if _, err := p.SignUp(ctx, in); !errors.Is(err, identity.ErrEmailTaken) {
		t.Fatalf("expected ErrEmailTaken for different case, got %v", err)
	}
}

func TestProvider_SignIn_WrongPassword(t *testing.T) {
	mailer := &recordingMailer{}
	p := New(Options{Mailer: mailer})
	ctx := context.Background()

	if _, err := p.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	if _, err := p.ExchangeCode(ctx, mailer.lastCode(t)); err != nil {
		t.Fatalf("ExchangeCode error: %v", err)
	}

	if _, err := p.SignInWithPassword(ctx, "ana@example.com", "wrong"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials, got %v", err)
	}
	if _, err := p.SignInWithPassword(ctx, "nobody@example.com", "supersecret"); !errors.Is(err, identity.ErrInvalidCredentials) {
		t.Fatalf("expected ErrInvalidCredentials for unknown email, got %v", err)
	}
}

func TestProvider_SignOut_InvalidatesSession(t *testing.T) {
	mailer := &recordingMailer{}
	p := New(Options{Mailer: mailer})
	ctx := context.Background()

	if _, err := p.SignUp(ctx, signUpInput()); err != nil {
		t.Fatalf("SignUp error: %v", err)
	}
	sess, err := p.ExchangeCode(ctx, mailer.lastCode(t))
	if err != nil {
		t.Fatalf("ExchangeCode error: %v", err)
	}

	if err := p.SignOut(ctx, sess.AccessToken); err != nil {
		t.Fatalf("SignOut error: %v", err)
	}
	if _, err := p.GetUser(ctx, sess.AccessToken); !errors.Is(err, identity.ErrNoSession) {
		t.Fatalf("expected ErrNoSession after sign-out, got %v", err)
	}
}
