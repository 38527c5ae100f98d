package shelters

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
	r.Route("/shelters", func(sr chi.Router) {
		sr.Put("/me", saveShelterHandler(svc))
		sr.Get("/me", getShelterHandler(svc))
	})
}

type saveShelterRequest struct {
	Name    string `json:"name"`
	Address string `json:"address"`
	City    string `json:"city"`
	State   string `json:"state"`
	Phone   string `json:"phone"`
	Email   string `json:"email"`
	Website string `json:"website"`
}

type shelterResponse struct {
	ID        string    `json:"id"`
	UserID    string    `json:"user_id"`
	Name      string    `json:"name"`
	Address   string    `json:"address"`
	City      string    `json:"city"`
	State     string    `json:"state"`
	Phone     string    `json:"phone"`
	Email     string    `json:"email"`
	Website   *string   `json:"website,omitempty"`
	CreatedAt time.Time `json:"created_at"`
	UpdatedAt time.Time `json:"updated_at"`
}

type saveShelterResponse struct {
	Shelter shelterResponse `json:"shelter"`
	Next    string          `json:"next"`
}

// saveShelterHandler godoc
// @Summary Crear o actualizar el shelter del usuario autenticado
// @Description Upsert por user_id: una sola fila por dueño. Al guardar, el siguiente paso es registrar mascotas.
// @Tags shelters
// @Accept json
// @Produce json
// @Success 200 {object} saveShelterResponse
// @Failure 400 {object} map[string]string "error de validación (incluye field)"
// @Failure 401 {string} string "unauthorized"
// @Router /shelters/me [put]
func saveShelterHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		var req saveShelterRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sh, err := svc.Save(r.Context(), claims.UserID, SaveInput{
			Name:    req.Name,
			Address: req.Address,
			City:    req.City,
			State:   req.State,
			Phone:   req.Phone,
			Email:   req.Email,
			Website: req.Website,
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

		writeJSON(w, http.StatusOK, saveShelterResponse{
			Shelter: toShelterResponse(sh),
			Next:    "/pet-register",
		})
	}
}

func getShelterHandler(svc *Service) http.HandlerFunc {
	// Para precargar el formulario de edición.
	return func(w http.ResponseWriter, r *http.Request) {
		claims, ok := middleware.GetClaims(r.Context())
		if !ok || strings.TrimSpace(claims.UserID) == "" {
			http.Error(w, "unauthorized", http.StatusUnauthorized)
			return
		}

		sh, err := svc.GetByUserID(r.Context(), claims.UserID)
		if err != nil {
			http.Error(w, "shelter not found", http.StatusNotFound)
			return
		}

		writeJSON(w, http.StatusOK, toShelterResponse(sh))
	}
}

func toShelterResponse(s Shelter) shelterResponse {
	return shelterResponse{
		ID:        s.ID,
		UserID:    s.UserID,
		Name:      s.Name,
		Address:   s.Address,
		City:      s.City,
		State:     s.State,
		Phone:     s.Phone,
		Email:     s.Email,
		Website:   s.Website,
		CreatedAt: s.CreatedAt,
		UpdatedAt: s.UpdatedAt,
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
