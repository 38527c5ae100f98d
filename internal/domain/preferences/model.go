package preferences

import (
	"strings"
	"time"
)

// LivingSituation describe la vivienda del adoptante.
// @Enum house, apartment, condo, other
type LivingSituation string

const (
	LivingHouse     LivingSituation = "house"
	LivingApartment LivingSituation = "apartment"
	LivingCondo     LivingSituation = "condo"
	LivingOther     LivingSituation = "other"
)

func ParseLivingSituation(s string) (LivingSituation, bool) {
	switch v := LivingSituation(strings.TrimSpace(s)); v {
	case LivingHouse, LivingApartment, LivingCondo, LivingOther:
		return v, true
	case "":
		return LivingHouse, true
	default:
		return "", false
	}
}

// ExperienceLevel describe la experiencia previa con mascotas.
// @Enum first_time, some_experience, experienced
type ExperienceLevel string

const (
	ExperienceFirstTime ExperienceLevel = "first_time"
	ExperienceSome      ExperienceLevel = "some_experience"
	ExperienceExpert    ExperienceLevel = "experienced"
)

func ParseExperienceLevel(s string) (ExperienceLevel, bool) {
	switch v := ExperienceLevel(strings.TrimSpace(s)); v {
	case ExperienceFirstTime, ExperienceSome, ExperienceExpert:
		return v, true
	case "":
		return ExperienceFirstTime, true
	default:
		return "", false
	}
}

// Preference son los criterios de matching de un adopter/foster.
// A lo sumo una fila por usuario (upsert por user_id).
type Preference struct {
	ID     string
	UserID string

	PreferredSpecies []string // al menos una
	PreferredAgeMin  *int
	PreferredAgeMax  *int

	HasChildren     bool
	HasOtherPets    bool
	LivingSituation LivingSituation
	Yard            bool
	ExperienceLevel ExperienceLevel
	Notes           *string

	CreatedAt time.Time
	UpdatedAt time.Time
}
