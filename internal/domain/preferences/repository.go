package preferences

import "context"

type Repository interface {
	// Upsert inserta o actualiza de forma atómica la fila del user_id,
	// conservando id y created_at si ya existía.
	Upsert(ctx context.Context, p Preference) (Preference, error)

	GetByUserID(ctx context.Context, userID string) (Preference, error)
}
