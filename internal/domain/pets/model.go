package pets

import (
	"strings"
	"time"
)

// Sex define el sexo de la mascota.
// @Enum male, female, unknown
type Sex string

const (
	SexMale    Sex = "male"
	SexFemale  Sex = "female"
	SexUnknown Sex = "unknown"
)

func ParseSex(s string) (Sex, bool) {
	switch v := Sex(strings.TrimSpace(s)); v {
	case SexMale, SexFemale, SexUnknown:
		return v, true
	case "":
		// default del formulario
		return SexUnknown, true
	default:
		return "", false
	}
}

// Status es el ciclo de adopción del listado.
// @Enum available, pending, adopted, fostered
type Status string

const (
	StatusAvailable Status = "available"
	StatusPending   Status = "pending"
	StatusAdopted   Status = "adopted"
	StatusFostered  Status = "fostered"
)

// Pet es un listado publicado por un shelter. El nombre es único dentro
// del shelter (chequeo best-effort al registrar). Los campos opcionales
// se guardan como ausentes, nunca como string vacío.
type Pet struct {
	ID        string
	ShelterID string

	Name    string
	Species string
	Breed   *string
	Age     *int
	Sex     Sex

	Description    *string
	Behavior       *string
	MedicalHistory *string

	IsVaccinated bool
	IsNeutered   bool

	Status    Status
	CreatedAt time.Time
}

// WithShelter es la fila del catálogo público: el pet más la identidad
// mínima del shelter (nombre y ubicación).
type WithShelter struct {
	Pet
	ShelterName  string
	ShelterCity  string
	ShelterState string
}
