package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/shelters"
)

type SheltersRepo struct {
	db *sql.DB
}

func NewSheltersRepo(db *sql.DB) *SheltersRepo {
	return &SheltersRepo{db: db}
}

const shelterColumns = `
	id, user_id, name, address, city, state,
	phone, email, website, created_at, updated_at
`

// Upsert: ON CONFLICT sobre user_id, una sola sentencia. La fila existente
// conserva id y created_at; RETURNING devuelve lo que quedó.
func (r *SheltersRepo) Upsert(ctx context.Context, s shelters.Shelter) (shelters.Shelter, error) {
	row := r.db.QueryRowContext(ctx, `
		INSERT INTO shelters (
			id, user_id, name, address, city, state,
			phone, email, website, created_at, updated_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11)
		ON CONFLICT (user_id) DO UPDATE SET
			name       = EXCLUDED.name,
			address    = EXCLUDED.address,
			city       = EXCLUDED.city,
			state      = EXCLUDED.state,
			phone      = EXCLUDED.phone,
			email      = EXCLUDED.email,
			website    = EXCLUDED.website,
			updated_at = EXCLUDED.updated_at
		RETURNING `+shelterColumns,
		s.ID,
		s.UserID,
		s.Name,
		s.Address,
		s.City,
		s.State,
		s.Phone,
		s.Email,
		s.Website,
		s.CreatedAt,
		s.UpdatedAt,
	)
	return scanShelter(row)
}

func (r *SheltersRepo) GetByUserID(ctx context.Context, userID string) (shelters.Shelter, error) {
	userID = strings.TrimSpace(userID)
	if userID == "" {
		return shelters.Shelter{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		WHERE user_id = $1
	`, userID)
	return scanShelter(row)
}

func (r *SheltersRepo) GetByID(ctx context.Context, id string) (shelters.Shelter, error) {
	id = strings.TrimSpace(id)
	if id == "" {
		return shelters.Shelter{}, ErrNotFound
	}

	row := r.db.QueryRowContext(ctx, `
		SELECT `+shelterColumns+`
		FROM shelters
		WHERE id = $1
	`, id)
	return scanShelter(row)
}

func scanShelter(row *sql.Row) (shelters.Shelter, error) {
	var s shelters.Shelter
	if err := row.Scan(
		&s.ID,
		&s.UserID,
		&s.Name,
		&s.Address,
		&s.City,
		&s.State,
		&s.Phone,
		&s.Email,
		&s.Website,
		&s.CreatedAt,
		&s.UpdatedAt,
	); err != nil {
		if err == sql.ErrNoRows {
			return shelters.Shelter{}, ErrNotFound
		}
		return shelters.Shelter{}, err
	}
	return s, nil
}
