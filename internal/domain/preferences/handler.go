package preferences

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	r.Route("/preferences", func(pr chi.Router) {
		pr.Put("/me", savePreferencesHandler(svc))
		pr.Get("/me", getPreferencesHandler(svc))
	})
}

type savePreferencesRequest struct {
	PreferredSpecies []string `json:"preferred_species"`
	PreferredAgeMin  *int     `json:"preferred_age_min"`
	PreferredAgeMax  *int     `json:"preferred_age_max"`
	HasChildren      bool     `json:"has_children"`
	HasOtherPets     bool     `json:"has_other_pets"`
	LivingSituation  string   `json:"living_situation"`
	Yard             bool     `json:"yard"`
	ExperienceLevel  string   `json:"experience_level"`
	Notes            string   `json:"notes"`
}

type preferenceResponse struct {
	ID               string    `json:"id"`
	UserID           string    `json:"user_id"`
	PreferredSpecies []string  `json:"preferred_species"`
	PreferredAgeMin  *int      `json:"preferred_age_min,omitempty"`
	PreferredAgeMax  *int      `json:"preferred_age_max,omitempty"`
	HasChildren      bool      `json:"has_children"`
	HasOtherPets     bool      `json:"has_other_pets"`
	LivingSituation  string    `json:"living_situation"`
	Yard             bool      `json:"yard"`
	ExperienceLevel  string    `json:"experience_level"`
	Notes            *string   `json:"notes,omitempty"`
	CreatedAt        time.Time `json:"created_at"`
	UpdatedAt        time.Time `json:"updated_at"`
}

func savePreferencesHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req savePreferencesRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		pref, err := svc.Save(r.Context(), claims.UserID, SaveInput{
			PreferredSpecies: req.PreferredSpecies,
			PreferredAgeMin:  req.PreferredAgeMin,
			PreferredAgeMax:  req.PreferredAgeMax,
			HasChildren:      req.HasChildren,
			HasOtherPets:     req.HasOtherPets,
			LivingSituation:  req.LivingSituation,
			Yard:             req.Yard,
			ExperienceLevel:  req.ExperienceLevel,
			Notes:            req.Notes,
		})
		if err != nil {
			var fe *FieldError
			if errors.As(err, &fe) {
				writeJSON(w, http.StatusBadRequest, map[string]string{
					"error": fe.Message,
					"field": fe.Field,
				})
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusOK, toPreferenceResponse(pref))
	}
}

func getPreferencesHandler(svc *Service) http.HandlerFunc {
	// Para precargar el formulario de edición.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		pref, err := svc.GetByUserID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "preferences not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toPreferenceResponse(pref))
	}
}

func toPreferenceResponse(p Preference) preferenceResponse {
	return preferenceResponse{
		ID:               p.ID,
		UserID:           p.UserID,
		PreferredSpecies: p.PreferredSpecies,
		PreferredAgeMin:  p.PreferredAgeMin,
		PreferredAgeMax:  p.PreferredAgeMax,
		HasChildren:      p.HasChildren,
		HasOtherPets:     p.HasOtherPets,
		LivingSituation:  string(p.LivingSituation),
		Yard:             p.Yard,
		ExperienceLevel:  string(p.ExperienceLevel),
		Notes:            p.Notes,
		CreatedAt:        p.CreatedAt,
		UpdatedAt:        p.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
