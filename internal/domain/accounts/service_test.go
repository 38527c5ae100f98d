package accounts

import (
	"context"
	"errors"
	"testing"

	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/ports/identity"
)

// -------------------------
// Fakes
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type fakeProvider struct {
	signUpCalls int
	lastSignUp  identity.SignUpInput

	users map[string]identity.User // access token => user
}

func newFakeProvider() *fakeProvider {
	return &fakeProvider{users: map[string]identity.User{}}
}

func (p *fakeProvider) SignUp(ctx context.Context, in identity.SignUpInput) (identity.User, error) {
	p.signUpCalls++
	p.lastSignUp = in
	return identity.User{ID: "user-1", Email: in.Email, Metadata: in.Metadata}, nil
}

func (p *fakeProvider) SignInWithPassword(ctx context.Context, email, password string) (identity.Session, error) {
	return identity.Session{}, identity.ErrInvalidCredentials
}

func (p *fakeProvider) ExchangeCode(ctx context.Context, code string) (identity.Session, error) {
	return identity.Session{}, identity.ErrInvalidCode
}

func (p *fakeProvider) GetUser(ctx context.Context, accessToken string) (identity.User, error) {
	u, ok := p.users[accessToken]
	if !ok {
		return identity.User{}, identity.ErrNoSession
	}
	return u, nil
}

func (p *fakeProvider) SignOut(ctx context.Context, accessToken string) error { return nil }

type testProfileRepo struct {
	byID      map[string]profiles.Profile
	createErr error
}

func newTestProfileRepo() *testProfileRepo {
	return &testProfileRepo{byID: map[string]profiles.Profile{}}
}

func (r *testProfileRepo) Create(ctx context.Context, p profiles.Profile) error {
	if r.createErr != nil {
		return r.createErr
	}
	r.byID[p.ID] = p
	return nil
}

func (r *testProfileRepo) GetByID(ctx context.Context, id string) (profiles.Profile, error) {
	p, ok := r.byID[id]
	if !ok {
		return profiles.Profile{}, errRepoNotFound
	}
	return p, nil
}

type testShelterRepo struct {
	byUserID map[string]shelters.Shelter
}

func newTestShelterRepo() *testShelterRepo {
	return &testShelterRepo{byUserID: map[string]shelters.Shelter{}}
}

func (r *testShelterRepo) Upsert(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	if prev, ok := r.byUserID[s.UserID]; ok {
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
	}
	r.byUserID[s.UserID] = s
	return s, nil
}

func (r *testShelterRepo) GetByUserID(ctx context.Context, userID string) (shelters.Shelter, error) {
	s, ok := r.byUserID[userID]
	if !ok {
		return shelters.Shelter{}, errRepoNotFound
	}
	return s, nil
}

func (r *testShelterRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	for _, s := range r.byUserID {
		if s.ID == id {
			return s, nil
		}
	}
	return shelters.Shelter{}, errRepoNotFound
}

func newTestService(provider *fakeProvider, profileRepo *testProfileRepo, shelterRepo *testShelterRepo) *Service {
	return NewService(
		provider,
		profiles.NewService(profileRepo),
		shelters.NewService(shelterRepo),
		"http://app.test",
	)
}

func validRegisterInput() RegisterInput {
	return RegisterInput{
		Name:            "Ana",
		Email:           "ana@example.com",
		Password:        "supersecret",
		ConfirmPassword: "supersecret",
		Role:            "shelter",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Register_MissingRole_NoNetworkCall(t *testing.T) {
	provider := newFakeProvider()
	svc := newTestService(provider, newTestProfileRepo(), newTestShelterRepo())

	in := validRegisterInput()
	in.Role = ""

	_, err := svc.Register(context.Background(), in)

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "role" {
		t.Fatalf("expected FieldError on role, got %v", err)
	}
	if provider.signUpCalls != 0 {
		t.Fatalf("expected no sign-up call on validation error, got %d", provider.signUpCalls)
	}
}

func TestService_Register_PasswordMismatch(t *testing.T) {
	provider := newFakeProvider()
	svc := newTestService(provider, newTestProfileRepo(), newTestShelterRepo())

	in := validRegisterInput()
	in.ConfirmPassword = "otherpassword"

	_, err := svc.Register(context.Background(), in)

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "confirm_password" {
		t.Fatalf("expected FieldError on confirm_password, got %v", err)
	}
	if provider.signUpCalls != 0 {
		t.Fatalf("expected no sign-up call, got %d", provider.signUpCalls)
	}
}

func TestService_Register_HappyPath(t *testing.T) {
	provider := newFakeProvider()
	profileRepo := newTestProfileRepo()
	svc := newTestService(provider, profileRepo, newTestShelterRepo())

	prof, err := svc.Register(context.Background(), validRegisterInput())
	if err != nil {
		t.Fatalf("Register error: %v", err)
	}

	if prof.ID != "user-1" || prof.Role != profiles.RoleShelter || prof.Name != "Ana" {
		t.Fatalf("unexpected profile: %#v", prof)
	}
	if _, ok := profileRepo.byID["user-1"]; !ok {
		t.Fatalf("expected profile row for user-1")
	}

	got := provider.lastSignUp
	if got.Metadata["name"] != "Ana" || got.Metadata["role"] != "shelter" {
		t.Fatalf("unexpected sign-up metadata: %#v", got.Metadata)
	}
	if got.RedirectTo != "http://app.test/auth/callback" {
		t.Fatalf("unexpected redirect: %s", got.RedirectTo)
	}
}

func TestService_Register_ProfileInsertFails_IdentityStays(t *testing.T) {
	// Los dos pasos no son transaccionales: si el profile falla, la
	// identidad ya quedó creada y no se compensa.
	provider := newFakeProvider()
	profileRepo := newTestProfileRepo()
	profileRepo.createErr = errors.New("db down")
	svc := newTestService(provider, profileRepo, newTestShelterRepo())

	_, err := svc.Register(context.Background(), validRegisterInput())
	if err == nil {
		t.Fatalf("expected error")
	}
	if provider.signUpCalls != 1 {
		t.Fatalf("expected identity sign-up to have happened, got %d calls", provider.signUpCalls)
	}
}

func TestService_Landing_Table(t *testing.T) {
	provider := newFakeProvider()
	profileRepo := newTestProfileRepo()
	shelterRepo := newTestShelterRepo()
	svc := newTestService(provider, profileRepo, shelterRepo)

	provider.users["tok-shelter"] = identity.User{ID: "u-shelter"}
	provider.users["tok-adopter"] = identity.User{ID: "u-adopter"}
	provider.users["tok-orphan"] = identity.User{ID: "u-orphan"}

	profileRepo.byID["u-shelter"] = profiles.Profile{ID: "u-shelter", Name: "S", Role: profiles.RoleShelter}
	profileRepo.byID["u-adopter"] = profiles.Profile{ID: "u-adopter", Name: "A", Role: profiles.RoleAdopter}

	ctx := context.Background()

	if got := svc.Landing(ctx, ""); got != StateUnauthenticated {
		t.Fatalf("empty token: got %s", got)
	}
	if got := svc.Landing(ctx, "tok-unknown"); got != StateUnauthenticated {
		t.Fatalf("unknown token: got %s", got)
	}
	if got := svc.Landing(ctx, "tok-shelter"); got != StateAwaitingShelter {
		t.Fatalf("shelter without row: got %s", got)
	}

	shelterRepo.byUserID["u-shelter"] = shelters.Shelter{ID: "sh-1", UserID: "u-shelter"}
	if got := svc.Landing(ctx, "tok-shelter"); got != StateActiveShelter {
		t.Fatalf("shelter with row: got %s", got)
	}

	if got := svc.Landing(ctx, "tok-adopter"); got != StateActiveAdopter {
		t.Fatalf("adopter: got %s", got)
	}
	// identidad sin profile: rama adopter
	if got := svc.Landing(ctx, "tok-orphan"); got != StateActiveAdopter {
		t.Fatalf("orphan identity: got %s", got)
	}
}

func TestService_Callback_InvalidCode(t *testing.T) {
	svc := newTestService(newFakeProvider(), newTestProfileRepo(), newTestShelterRepo())

	sess, state := svc.Callback(context.Background(), "nope")
	if sess != nil {
		t.Fatalf("expected nil session")
	}
	if state != StateUnauthenticated {
		t.Fatalf("expected unauthenticated, got %s", state)
	}
}
