package pets

import "context"

type Repository interface {
	Create(ctx context.Context, p Pet) error

	// FindByShelterAndName devuelve el pet con ese nombre exacto dentro del
	// shelter, o error not-found del adapter si no hay.
	FindByShelterAndName(ctx context.Context, shelterID, name string) (Pet, error)

	// ListByShelter devuelve el inventario completo del shelter, más nuevo primero.
	ListByShelter(ctx context.Context, shelterID string) ([]Pet, error)

	// ListAvailable devuelve el catálogo público (status=available), más nuevo
	// primero, con los datos mínimos del shelter.
	ListAvailable(ctx context.Context) ([]WithShelter, error)
}
