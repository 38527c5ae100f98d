package preferences

import (
	"context"
	"errors"
	"reflect"
	"testing"
	"time"
)

// -------------------------
// Test repo (in-memory)
// -------------------------

var errRepoNotFound = errors.New("repo: not found")

type testRepo struct {
	byUserID map[string]Preference
}

func newTestRepo() *testRepo {
	return &testRepo{byUserID: map[string]Preference{}}
}

func (r *testRepo) Upsert(ctx context.Context, p Preference) (Preference, error) {
	if prev, ok := r.byUserID[p.UserID]; ok {
		p.ID = prev.ID
		p.CreatedAt = prev.CreatedAt
	}
	r.byUserID[p.UserID] = p
	return p, nil
}

func (r *testRepo) GetByUserID(ctx context.Context, userID string) (Preference, error) {
	p, ok := r.byUserID[userID]
	if !ok {
		return Preference{}, errRepoNotFound
	}
	return p, nil
}

// -------------------------
// Tests
// -------------------------

func TestService_Save_RequiresAtLeastOneSpecies(t *testing.T) {
	svc := NewService(newTestRepo())

	_, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"  ", ""},
	})

	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "preferred_species" {
		t.Fatalf("expected FieldError on preferred_species, got %v", err)
	}
}

func TestService_Save_DedupesSpecies_PreservingOrder(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Dog", " dog ", "Cat", "DOG"},
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	want := []string{"Dog", "Cat"}
	if !reflect.DeepEqual(p.PreferredSpecies, want) {
		t.Fatalf("expected %v, got %v", want, p.PreferredSpecies)
	}
}

func TestService_Save_Defaults(t *testing.T) {
	svc := NewService(newTestRepo())

	p, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Dog"},
	})
	if err != nil {
		t.Fatalf("Save error: %v", err)
	}

	if p.LivingSituation != LivingHouse {
		t.Fatalf("expected default living house, got %s", p.LivingSituation)
	}
	if p.ExperienceLevel != ExperienceFirstTime {
		t.Fatalf("expected default experience first_time, got %s", p.ExperienceLevel)
	}
	if p.Notes != nil {
		t.Fatalf("expected nil notes, got %q", *p.Notes)
	}
}

func TestService_Save_NegativeAgeBounds(t *testing.T) {
	svc := NewService(newTestRepo())

	neg := -1
	_, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Dog"},
		PreferredAgeMin:  &neg,
	})
	var fe *FieldError
	if !errors.As(err, &fe) || fe.Field != "preferred_age_min" {
		t.Fatalf("expected FieldError on preferred_age_min, got %v", err)
	}

	_, err = svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Dog"},
		PreferredAgeMax:  &neg,
	})
	if !errors.As(err, &fe) || fe.Field != "preferred_age_max" {
		t.Fatalf("expected FieldError on preferred_age_max, got %v", err)
	}
}

func TestService_Save_Twice_OneRow(t *testing.T) {
	repo := newTestRepo()
	svc := NewService(repo)

	now1 := time.Date(2026, 8, 1, 10, 0, 0, 0, time.UTC)
	now2 := now1.Add(time.Hour)

	svc.now = func() time.Time { return now1 }
	first, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Dog"},
	})
	if err != nil {
		t.Fatalf("Save #1 error: %v", err)
	}

	svc.now = func() time.Time { return now2 }
	second, err := svc.Save(context.Background(), "user-1", SaveInput{
		PreferredSpecies: []string{"Cat"},
		Yard:             true,
	})
	if err != nil {
		t.Fatalf("Save #2 error: %v", err)
	}

	if len(repo.byUserID) != 1 {
		t.Fatalf("expected exactly 1 row, got %d", len(repo.byUserID))
	}
	if second.ID != first.ID {
		t.Fatalf("expected same id across saves")
	}
	if second.CreatedAt != now1 || second.UpdatedAt != now2 {
		t.Fatalf("expected created_at preserved and updated_at bumped")
	}
	if !reflect.DeepEqual(second.PreferredSpecies, []string{"Cat"}) || !second.Yard {
		t.Fatalf("expected second payload to win, got %#v", second)
	}
}
