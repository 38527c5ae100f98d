package postgres

import (
	"context"
	"database/sql"
	"encoding/json"
	"strings"

	"pet-adoption/internal/domain/preferences"
)

type PreferencesRepo struct {
	db *sql.DB
}

func NewPreferencesRepo(db *sql.DB) *PreferencesRepo {
	return &PreferencesRepo{db: db}
}

const preferenceColumns = `
	id, user_id, preferred_species, preferred_age_min, preferred_age_max,
	has_children, has_other_pets, living_situation, yard,
	experience_level, notes, created_at, updated_at
`

// Upsert: ON CONFLICT sobre user_id, igual que shelters. preferred_species
// viaja como jsonb.
func (r *PreferencesRepo) Upsert(ctx context.Context, p preferences.Preference) (preferences.Preference, error) {
	species, err := json.Marshal(p.PreferredSpecies)
	if err != nil {
		return preferences.Preference{}, err
	}

	row := r.db.QueryRowContext(ctx, `
		INSERT INTO preferences (
			id, user_id, preferred_species, preferred_age_min, preferred_age_max,
			has_children, has_other_pets, living_situation, yard,
			experience_level, notes, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13)
		ON CONFLICT (user_id) DO UPDATE SET
			preferred_species = EXCLUDED.preferred_species,
			preferred_age_min = EXCLUDED.preferred_age_min,
			preferred_age_max = EXCLUDED.preferred_age_max,
			has_children      = EXCLUDED.has_children,
			has_other_pets    = EXCLUDED.has_other_pets,
			living_situation  = EXCLUDED.living_situation,
			yard              = EXCLUDED.yard,
			experience_level  = EXCLUDED.experience_level,
			notes             = EXCLUDED.notes,
			updated_at        = EXCLUDED.updated_at
		RETURNING `+preferenceColumns,
		p.ID,
		p.UserID,
		species,
		p.PreferredAgeMin,
		p.PreferredAgeMax,
		p.HasChildren,
		p.HasOtherPets,
		string(p.LivingSituation),
		p.Yard,
		string(p.ExperienceLevel),
		p.Notes,
		p.CreatedAt,
		p.UpdatedAt,
	)
	return scanPreference(row)
}

func (r *PreferencesRepo) GetByUserID(ctx context.Context, userID string) (preferences.Preference, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return preferences.Preference{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+preferenceColumns+`
		FROM preferences
		WHERE user_id = $1
	`, userID)
	return scanPreference(row)
}

func scanPreference(row *sql.Row) (preferences.Preference, error) {
	var p preferences.Preference
	var species []byte
	var living, experience string
	if err := row.Scan(
		&p.ID,
		&p.UserID,
		&species,
		&p.PreferredAgeMin,
		&p.PreferredAgeMax,
		&p.HasChildren,
		&p.HasOtherPets,
		&living,
		&p.Yard,
		&experience,
		&p.Notes,
		&p.CreatedAt,
		&p.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return preferences.Preference{}, ErrNotFound
		}
		return preferences.Preference{}, err
	}

	if err := json.Unmarshal(species, &p.PreferredSpecies); err != nil {
		return preferences.Preference{}, err
	}
	p.LivingSituation = preferences.LivingSituation(living)
	p.ExperienceLevel = preferences.ExperienceLevel(experience)

	return p, nil
}
