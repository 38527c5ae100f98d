package home

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Get("/home", dashboardHandler(svc))
}

type profileSummary struct {
	Name string `json:"name"`
	Role string `json:"role"`
}

type shelterSummary struct {
	ID    string `json:"id"`
	Name  string `json:"name"`
	City  string `json:"city"`
	State string `json:"state"`
}

type catalogItem struct {
	pets.PetResponse
	Shelter shelterSummary `json:"shelter"`
}

type dashboardResponse struct {
	Variant string         `json:"variant"`
	Profile profileSummary `json:"profile"`

	Shelter *shelterSummary    `json:"shelter,omitempty"`
	Pets    []pets.PetResponse `json:"pets,omitempty"`

	Catalog []catalogItem `json:"catalog,omitempty"`
	Species []string      `json:"species,omitempty"`

	Links map[string]string `json:"links"`
}

// dashboardHandler godoc
// @Summary Home por rol
// @Description Shelter: inventario propio con status, más nuevo primero. Adopter/foster: catálogo de disponibles con búsqueda (q) y filtro de especie (species), conjuntivos. Sin sesión redirige a /login.
// @Tags home
// @Produce json
// @Param q query string false "Búsqueda por substring en nombre, especie y raza (solo variante adopter)"
// @Param species query string false "Filtro exacto de especie (solo variante adopter)"
// @Success 200 {object} dashboardResponse
// @Failure 302 {string} string "redirige a /login o /shelter-setup"
// @Router /home [get]
func dashboardHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Redirect(w, r, "/login", http.StatusFound)
			return
		}

		q := r.URL.Query().Get("q")
		speciesFilter := r.URL.Query().Get("species")

		d, err := svc.Load(r.Context(), claims.UserID, q, speciesFilter)
		if err != nil {
			switch {
			case errors.Is(err, ErrNoProfile):
				http.Redirect(w, r, "/login", http.StatusFound)
			case errors.Is(err, ErrNoShelter):
				http.Redirect(w, r, "/shelter-setup", http.StatusFound)
			default:
				http.Error(w, "internal error", http.StatusInternalServerError)
			}
			return
		}

		writeJSON(w, http.StatusOK, toDashboardResponse(d))
	}
}

func toDashboardResponse(d Dashboard) dashboardResponse {
	resp := dashboardResponse{
		Variant: d.Variant,
		Profile: profileSummary{
			Name: d.Profile.Name,
			Role: string(d.Profile.Role),
		},
	}

	if d.Variant == "shelter" {
		if d.Shelter != nil {
			resp.Shelter = &shelterSummary{
				ID:    d.Shelter.ID,
				Name:  d.Shelter.Name,
				City:  d.Shelter.City,
				State: d.Shelter.State,
			}
		}
		resp.Pets = make([]pets.PetResponse, 0, len(d.Pets))
		for _, p := range d.Pets {
			resp.Pets = append(resp.Pets, pets.ToPetResponse(p))
		}
		resp.Links = map[string]string{
			"edit_shelter": "/shelter-setup",
			"register_pet": "/pet-register",
		}
		return resp
	}

	resp.Catalog = make([]catalogItem, 0, len(d.Catalog))
	for _, it := range d.Catalog {
		resp.Catalog = append(resp.Catalog, catalogItem{
			PetResponse: pets.ToPetResponse(it.Pet),
			Shelter: shelterSummary{
				Name:  it.ShelterName,
				City:  it.ShelterCity,
				State: it.ShelterState,
			},
		})
	}
	resp.Species = d.Species
	resp.Links = map[string]string{
		"edit_preferences": "/preferences",
	}
	return resp
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
