package pets

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service, sheltersSvc *shelters.Service) {
	r.Post("/pets", registerPetHandler(svc, sheltersSvc))
}

type registerPetRequest struct {
	Name           string `json:"name"`
	Species        string `json:"species"`
	Breed          string `json:"breed"`
	Age            *int   `json:"age"`
	Sex            string `json:"sex"`
	Description    string `json:"description"`
	Behavior       string `json:"behavior"`
	MedicalHistory string `json:"medical_history"`
	IsVaccinated   bool   `json:"is_vaccinated"`
	IsNeutered     bool   `json:"is_neutered"`
}

type PetResponse struct {
	ID             string    `json:"id"`
	ShelterID      string    `json:"shelter_id"`
	Name           string    `json:"name"`
	Species        string    `json:"species"`
	Breed          *string   `json:"breed,omitempty"`
	Age            *int      `json:"age,omitempty"`
	Sex            string    `json:"sex"`
	Description    *string   `json:"description,omitempty"`
	Behavior       *string   `json:"behavior,omitempty"`
	MedicalHistory *string   `json:"medical_history,omitempty"`
	IsVaccinated   bool      `json:"is_vaccinated"`
	IsNeutered     bool      `json:"is_neutered"`
	Status         string    `json:"status"`
	CreatedAt      time.Time `json:"created_at"`
}

type registerPetResponse struct {
	Pet  PetResponse `json:"pet"`
	Next string      `json:"next"`
}

// registerPetHandler godoc
// @Summary Registrar una mascota del shelter del usuario autenticado
// @Description Precondiciones en orden: autenticado, shelter existente (si falta, el payload trae next=/shelter-setup), nombre no repetido dentro del shelter. Inserta con status available.
// @Tags pets
// @Accept json
// @Produce json
// @Param payload body registerPetRequest true "Datos de la mascota; solo name y species son obligatorios"
// @Success 201 {object} registerPetResponse
// @Failure 400 {string} string "invalid json / invalid input"
// @Failure 401 {string} string "unauthorized"
// @Failure 409 {object} map[string]string "shelter incompleto o nombre duplicado"
// @Router /pets [post]
func registerPetHandler(svc *Service, sheltersSvc *shelters.Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		// Precondición: el shelter del caller tiene que existir.
		sh, err := sheltersSvc.GetByUserID(r.Context(), claims.UserID)
		if err != nil {
			writeJSON(w, http.StatusConflict, map[string]string{
				"error": "Please complete your shelter profile first",
				"next":  "/shelter-setup",
			})
			return
		}

		var req registerPetRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		p, err := svc.Register(r.Context(), sh.ID, RegisterInput{
			Name:           req.Name,
			Species:        req.Species,
			Breed:          req.Breed,
			Age:            req.Age,
			Sex:            req.Sex,
			Description:    req.Description,
			Behavior:       req.Behavior,
			MedicalHistory: req.MedicalHistory,
			IsVaccinated:   req.IsVaccinated,
			IsNeutered:     req.IsNeutered,
		})
		if err != nil {
			var dup *DuplicateNameError
			if errors.As(err, &dup) {
				writeJSON(w, http.StatusConflict, map[string]string{
					"error": dup.Error(),
				})
				return
			}
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}

		writeJSON(w, http.StatusCreated, registerPetResponse{
			Pet:  ToPetResponse(p),
			Next: "/home",
		})
	}
}

// ToPetResponse lo usan también las variantes del home.
func ToPetResponse(p Pet) PetResponse {
	return PetResponse{
		ID:             p.ID,
		ShelterID:      p.ShelterID,
		Name:           p.Name,
		Species:        p.Species,
		Breed:          p.Breed,
		Age:            p.Age,
		Sex:            string(p.Sex),
		Description:    p.Description,
		Behavior:       p.Behavior,
		MedicalHistory: p.MedicalHistory,
		IsVaccinated:   p.IsVaccinated,
		IsNeutered:     p.IsNeutered,
		Status:         string(p.Status),
		CreatedAt:      p.CreatedAt,
	}
}

// writeJSON está duplicado a propósito en los handlers de cada módulo;
// si se repite en más lugares, recién ahí conviene extraer un helper común.
func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
