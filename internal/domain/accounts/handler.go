package accounts

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"

	"pet-adoption/internal/middleware"
)

func RegisterRoutes(r chi.Router, svc *Service) {
	// Los dos puntos de entrada por redirect usan la misma Landing.
	r.Get("/", rootHandler(svc))
	r.Get("/auth/callback", callbackHandler(svc))

	r.Post("/auth/register", registerHandler(svc))
	r.Post("/auth/login", loginHandler(svc))
	r.Post("/auth/logout", logoutHandler(svc))
}

type registerRequest struct {
	Name            string `json:"name"`
	Email           string `json:"email"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
	Role            string `json:"role"`
}

type registerResponse struct {
	Status  string `json:"status"`
	Message string `json:"message"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type loginResponse struct {
	AccessToken string `json:"access_token"`
	Next        string `json:"next"`
}

// registerHandler godoc
// @Summary Crear cuenta con rol
// @Description Valida el formulario (sin rol no hay llamada de red), da de alta la identidad con metadata {name, role} y el redirect de confirmación, e inserta el profile. La cuenta no sirve para login hasta confirmar el email.
// @Tags auth
// @Accept json
// @Produce json
// @Param payload body registerRequest true "Datos de registro; role es adopter, foster o shelter"
// @Success 201 {object} registerResponse
// @Failure 400 {object} map[string]string "error de validación (incluye field) o error del servicio externo"
// @Router /auth/register [post]
func registerHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req registerRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		_, err := svc.Register(r.Context(), RegisterInput{
			Name:            req.Name,
			Email:           req.Email,
			Password:        req.Password,
			ConfirmPassword: req.ConfirmPassword,
			Role:            req.Role,
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
			// Errores del servicio externo: se muestran tal cual y el
			// formulario queda editable (sin retry).
			writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
			return
		}

		writeJSON(w, http.StatusCreated, registerResponse{
			Status:  "awaiting_confirmation",
			Message: "Check your email to confirm your account!",
		})
	}
}

func loginHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req loginRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			http.Error(w, "invalid json", http.StatusBadRequest)
			return
		}

		sess, state, err := svc.Login(r.Context(), req.Email, req.Password)
		if err != nil {
			writeJSON(w, http.StatusUnauthorized, map[string]string{"error": err.Error()})
			return
		}

		middleware.SetSessionCookie(w, sess.AccessToken)
		writeJSON(w, http.StatusOK, loginResponse{
			AccessToken: sess.AccessToken,
			Next:        state.Path(),
		})
	}
}

func logoutHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		_ = svc.SignOut(r.Context(), middleware.TokenFromRequest(r))
		middleware.ClearSessionCookie(w)
		writeJSON(w, http.StatusOK, map[string]string{"next": "/login"})
	}
}

// callbackHandler godoc
// @Summary Callback de confirmación de email
// @Description Canjea el code por una sesión (si vino), relee el usuario y redirige según la misma decisión que la ruta raíz: /login, /shelter-setup o /home.
// @Tags auth
// @Param code query string false "Código de canje del link de confirmación"
// @Success 302 {string} string "redirect"
// @Router /auth/callback [get]
func callbackHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		code := r.URL.Query().Get("code")

		sess, state := svc.Callback(r.Context(), code)
		if sess != nil {
			middleware.SetSessionCookie(w, sess.AccessToken)
		}

		// Sin code o canje fallido: puede haber sesión previa en el request.
		if state == StateUnauthenticated {
			if tok := middleware.TokenFromRequest(r); tok != "" {
				state = svc.Landing(r.Context(), tok)
			}
		}

		http.Redirect(w, r, state.Path(), http.StatusFound)
	}
}

func rootHandler(svc *Service) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		state := svc.Landing(r.Context(), middleware.TokenFromRequest(r))
		http.Redirect(w, r, state.Path(), http.StatusFound)
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
