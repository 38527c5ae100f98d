package postgres

import (
	"context"
	"database/sql"
	"strings"

	"pet-adoption/internal/domain/pets"
)

type PetsRepo struct {
	db *sql.DB
}

func NewPetsRepo(db *sql.DB) *PetsRepo {
	return &PetsRepo{db: db}
}

const petColumns = `
	id, shelter_id, name, species, breed, age, sex,
	description, behavior, medical_history,
	is_vaccinated, is_neutered, status, created_at
`

func (r *PetsRepo) Create(ctx context.Context, p pets.Pet) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO pets (
			id, shelter_id, name, species, breed, age, sex,
			description, behavior, medical_history,
			is_vaccinated, is_neutered, status, created_at
		) VALUES ($1,$2,$3,$4,$5,$6,$7,$8,$9,$10,$11,$12,$13,$14)
	`,
		p.ID,
		p.ShelterID,
		p.Name,
		p.Species,
		p.Breed,
		p.Age,
		string(p.Sex),
		p.Description,
		p.Behavior,
		p.MedicalHistory,
		p.IsVaccinated,
		p.IsNeutered,
		string(p.Status),
		p.CreatedAt,
	)
	return err
}

func (r *PetsRepo) FindByShelterAndName(ctx context.Context, shelterID, name string) (pets.Pet, error) {
	row := r.db.QueryRowContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE shelter_id = $1 AND name = $2
		LIMIT 1
	`, shelterID, name)

	p, err := scanPet(row.Scan)
	if err != nil {
		if err == sql.ErrNoRows {
			return pets.Pet{}, ErrNotFound
		}
		return pets.Pet{}, err
	}
	return p, nil
}

func (r *PetsRepo) ListByShelter(ctx context.Context, shelterID string) ([]pets.Pet, error) {
	shelterID = strings.TrimSpace(shelterID)
	if shelterID == "" {
		return nil, nil
	}

	rows, err := r.db.QueryContext(ctx, `
		SELECT `+petColumns+`
		FROM pets
		WHERE shelter_id = $1
		ORDER BY created_at DESC, id DESC
	`, shelterID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.Pet, 0)
	for rows.Next() {
		p, err := scanPet(rows.Scan)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}

	return out, rows.Err()
}

func (r *PetsRepo) ListAvailable(ctx context.Context) ([]pets.WithShelter, error) {
	rows, err := r.db.QueryContext(ctx, `
		SELECT
			p.id, p.shelter_id, p.name, p.species, p.breed, p.age, p.sex,
			p.description, p.behavior, p.medical_history,
			p.is_vaccinated, p.is_neutered, p.status, p.created_at,
			s.name, s.city, s.state
		FROM pets p
		JOIN shelters s ON s.id = p.shelter_id
		WHERE p.status = 'available'
		ORDER BY p.created_at DESC, p.id DESC
	`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make([]pets.WithShelter, 0)
	for rows.Next() {
		var row pets.WithShelter
		var sex, status string
		if err := rows.Scan(
			&row.ID,
			&row.ShelterID,
			&row.Name,
			&row.Species,
			&row.Breed,
			&row.Age,
			&sex,
			&row.Description,
			&row.Behavior,
			&row.MedicalHistory,
			&row.IsVaccinated,
			&row.IsNeutered,
			&status,
			&row.CreatedAt,
			&row.ShelterName,
			&row.ShelterCity,
			&row.ShelterState,
		); err != nil {
			return nil, err
		}
		row.Sex = pets.Sex(sex)
		row.Status = pets.Status(status)
		out = append(out, row)
	}

	return out, rows.Err()
}

func scanPet(scan func(dest ...any) error) (pets.Pet, error) {
	var p pets.Pet
	var sex, status string
	if err := scan(
		&p.ID,
		&p.ShelterID,
		&p.Name,
		&p.Species,
		&p.Breed,
		&p.Age,
		&sex,
		&p.Description,
		&p.Behavior,
		&p.MedicalHistory,
		&p.IsVaccinated,
		&p.IsNeutered,
		&status,
		&p.CreatedAt,
	); err != nil {
		return pets.Pet{}, err
	}
	p.Sex = pets.Sex(sex)
	p.Status = pets.Status(status)
	return p, nil
}
