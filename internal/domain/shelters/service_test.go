package shelters

import (
	"context"
	"errors"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byUserID map[string]Shelter
	upserts  int
}

func newTestRepo() *testRepo {
	return &testRepo{byUserID: map[string]Shelter{}}
}

func (r *testRepo) Upsert(ctx context.Context, s Shelter) (Shelter, error) {
	r.upserts++
	if prev, ok := r.byUserID[s.UserID]; ok {
		s.ID = prev.ID
		s.CreatedAt = prev.CreatedAt
	}
	r.byUserID[s.UserID] = s
	return s, nil
}

func (r *testRepo) GetByUserID(ctx context.Context, userID string) (Shelter, error) {
	s, ok := r.byUserID[userID]
	if !ok {
		return Shelter{}, errRepoNotFound
	}
	return s, nil
}

func (r *testRepo) GetByID(ctx context.Context, id string) (Shelter, error) {
	for _, s := range r.byUserID {
		if s.ID == id {
			return s, nil
		}
	}
	return Shelter{}, errRepoNotFound
}

func validInput() SaveInput {
	return SaveInput{
		Name:    "Happy Paws",
		Address: "123 Main Street",
		City:    "Austin",
		State:   "TX",
		Phone:   "5125550100",
		Email:   "contact@happypaws.org",
		Website: "https://happypaws.org",
	}
}

// -------------------------
// Tests
// -------------------------

func TestService_Save_Validations(t *testing.T) {
	svc := NewService(newTestRepo())

	cases := []struct {
		field  string
		mutate func(*SaveInput)
	}{
		{"name", func(in *SaveInput) { in.Name = "A" }},
		{"address", func(in *SaveInput) { in.Address = "123" }},
		{"city", func(in *SaveInput) { in.City = "X" }},
		{"state", func(in *SaveInput) { in.State = "T" }},
		{"phone", func(in *SaveInput) { in.Phone = "12345" }},
		{"email", func(in *SaveInput) { in.Email = "not-an-email" }},
		{"website", func(in *SaveInput) { in.Website = "ftp://nope" }},
	}

	for _, tc := range cases {
		t.Run(tc.field, func(t *testing.T) {
			in := validInput()
			tc.mutate(&in)

			_, err := svc.Save(context.Background(), "user-1", in)

			var fe *FieldError
			if !errors.As(err, &fe) {
				t.Fatalf("expected FieldError, got %v", err)
			}
			if fe.Field != tc.field {
				t.Fatalf("expected field %s, got %s (%s)", tc.field, fe.Field, fe.Message)
			}
		})
	}
}

func TestService_Save_WebsiteOptional(t *testing.T) {
	svc := NewService(newTestRepo())

	in := validInput()
	in.Website = ""

	s, err := svc.Save(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}
	if s.Website != nil {
		t.Fatalf("expected nil website, got %q", *s.Website)
	}
}

func TestService_Save_Twice_OneRow_SecondPayloadWins(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(24 * time.Hour)

	svc.now = func() time.Time { return now1 }
	first, err := svc.Save(context.Background(), "user-1", validInput())
	if err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}

	in := validInput()
	in.Name = "Happy Paws Rescue"
	in.City = "Dallas"

	svc.now = func() time.Time { return now2 }
	second, err := svc.Save(context.Background(), "user-1", in)
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}

	if len(repo.byUserID) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(repo.byUserID))
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id across saves, got %s vs %s", first.ID, second.ID)
	}
	if second.CreatedAt != now1 {
		t.Fatalf("expected CreatedAt preserved from first save")
	}
	if second.UpdatedAt != now2 {
		t.Fatalf("expected UpdatedAt from second save")
	}
	if second.Name != "Happy Paws Rescue" || second.City != "Dallas" {
		t.Fatalf("expected second payload to win, got %#v", second)
	}
}

func TestService_GetByUserID_EmptyID(t *testing.T) {
	svc := NewService(newTestRepo())

	if _, err := svc.GetByUserID(context.Background(), "  "); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}
