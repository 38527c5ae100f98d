package router

import (
	"database/sql"
	"net/http"
	"os"
	"strings"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"
	httpSwagger "github.com/swaggo/http-swagger"

	"pet-adoption/internal/adapters/identity/local"
	mem "pet-adoption/internal/adapters/storage/memory"
	pg "pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/domain/accounts"
	"pet-adoption/internal/domain/home"
	"pet-adoption/internal/domain/pets"
	"pet-adoption/internal/domain/preferences"
	"pet-adoption/internal/domain/profiles"
	"pet-adoption/internal/domain/shelters"
	"pet-adoption/internal/middleware"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/ports/identity"
	"pet-adoption/internal/ports/mail"
)

type Options struct {
	// Identity puede ser nil: se cae al proveedor local en memoria (dev).
	Identity identity.Provider

	// Mailer entrega los links de confirmación del proveedor local.
	Mailer mail.Sender

	// Opcional: si viene, usa Postgres. Si no, in-memory.
	DB *sql.DB

	// BaseURL arma el link de confirmación (<base>/auth/callback).
	BaseURL string

	// AllowDebugAuth habilita el header X-Debug-User-ID (solo dev).
	AllowDebugAuth bool

	Logger logger.Logger
}

func NewRouter(opts Options) http.Handler {
	r := chi.NewRouter()

	log := opts.Logger
	if log == nil {
		log = logger.NewFromEnv()
	}

	provider := opts.Identity
	if provider == nil {
		provider = local.New(local.Options{Mailer: opts.Mailer, Logger: log})
	}

	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(chimw.Recoverer)

	r.Use(middleware.AuthContext(provider, opts.AllowDebugAuth))

	r.Get("/health", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/swagger/*", httpSwagger.WrapHandler)

	var (
		profileRepo    profiles.Repository
		shelterRepo    shelters.Repository
		petRepo        pets.Repository
		preferenceRepo preferences.Repository
	)

	// Si no te pasan DB explícita, intenta por env (para dev/handoff)
	db := opts.DB
	if db == nil {
		if dsn := os.Getenv("DB_DSN"); dsn != "" {
			opened, err := pg.Open(dsn)
			if err == nil {
				db = opened
			} else {
				log.Warn("db open failed, falling back to memory", map[string]any{"error": err.Error()})
			}
		}
	}

	if db != nil {
		profileRepo = pg.NewProfilesRepo(db)
		shelterRepo = pg.NewSheltersRepo(db)
		petRepo = pg.NewPetsRepo(db)
		preferenceRepo = pg.NewPreferencesRepo(db)
	} else {
		profileRepo = mem.NewProfileRepo()
		shelterRepo = mem.NewShelterRepo()
		petRepo = mem.NewPetRepo(shelterRepo)
		preferenceRepo = mem.NewPreferenceRepo()
	}

	// Services por módulo
	profilesSvc := profiles.NewService(profileRepo)
	sheltersSvc := shelters.NewService(shelterRepo)
	petsSvc := pets.NewService(petRepo)
	preferencesSvc := preferences.NewService(preferenceRepo)

	baseURL := strings.TrimSpace(opts.BaseURL)
	if baseURL == "" {
		baseURL = "http://localhost:8080"
	}
	accountsSvc := accounts.NewService(provider, profilesSvc, sheltersSvc, baseURL)
	homeSvc := home.NewService(profilesSvc, sheltersSvc, petsSvc)

	// Rutas por módulo
	accounts.RegisterRoutes(r, accountsSvc)
	shelters.RegisterRoutes(r, sheltersSvc)
	pets.RegisterRoutes(r, petsSvc, sheltersSvc)
	preferences.RegisterRoutes(r, preferencesSvc)
	home.RegisterRoutes(r, homeSvc)

	return r
}
