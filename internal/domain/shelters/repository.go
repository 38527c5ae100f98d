package shelters

import "context"

type Repository interface {
	// Upsert inserta o actualiza de forma atómica la fila del user_id.
	// Si ya existía, conserva id y created_at y devuelve la fila final.
	Upsert(ctx context.Context, s Shelter) (Shelter, error)

	GetByUserID(ctx context.Context, userID string) (Shelter, error)
	GetByID(ctx context.Context, id string) (Shelter, error)
}
