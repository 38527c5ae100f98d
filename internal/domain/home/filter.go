package home

import (
	"strings"

	"pet-adoption/internal/domain/pets"
)

// Filter aplica la búsqueda de texto y el filtro de especie sobre el
// catálogo, en conjunción. q matchea por substring (case-insensitive)
// contra nombre, especie y raza; species es match exacto de especie.
// Vacío = sin filtro.
func Filter(items []pets.WithShelter, q, species string) []pets.WithShelter {
	q = strings.ToLower(strings.TrimSpace(q))
	species = strings.TrimSpace(species)

	out := make([]pets.WithShelter, 0, len(items))
	for _, it := range items {
		if !matchesSearch(it, q) {
			continue
		}
		if species != "" && !strings.EqualFold(it.Species, species) {
			continue
		}
		out = append(out, it)
	}
	return out
}

func matchesSearch(it pets.WithShelter, q string) bool {
	if q == "" {
		return true
	}
	if strings.Contains(strings.ToLower(it.Name), q) {
		return true
	}
	if strings.Contains(strings.ToLower(it.Species), q) {
		return true
	}
	if it.Breed != nil && strings.Contains(strings.ToLower(*it.Breed), q) {
		return true
	}
	return false
}

// SpeciesList devuelve las especies distintas del catálogo completo
// (pre-filtro), en orden de aparición; alimenta la botonera de filtros.
func SpeciesList(items []pets.WithShelter) []string {
	seen := map[string]struct{}{}
	out := make([]string, 0)
	for _, it := range items {
		if _, ok := seen[it.Species]; ok {
			continue
		}
		seen[it.Species] = struct{}{}
		out = append(out, it.Species)
	}
	return out
}
