package main

import (
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"

	"pet-adoption/internal/adapters/identity/supabase"
	smtpmail "pet-adoption/internal/adapters/mail/smtp"
	"pet-adoption/internal/adapters/storage/postgres"
	"pet-adoption/internal/platform/logger"
	"pet-adoption/internal/platform/migrate"
	"pet-adoption/internal/ports/identity"
	"pet-adoption/internal/ports/mail"
	"pet-adoption/internal/router"
)

// @title Pet Adoption API
// @version 0.1
// @description Registro de cuentas, onboarding de shelters, listados de mascotas y preferencias de adopción.
// @BasePath /
func main() {
	// .env es opcional; en prod las vars vienen del entorno.
	_ = godotenv.Load()

	log := logger.NewFromEnv()

	addr := ":8080"
	if v := os.Getenv("PORT"); v != "" {
		addr = ":" + v
	}

	opts := router.Options{
		BaseURL:        os.Getenv("BASE_URL"),
		AllowDebugAuth: strings.EqualFold(os.Getenv("ALLOW_DEBUG_AUTH"), "true"),
		Logger:         log,
	}

	if dsn := os.Getenv("DB_DSN"); dsn != "" {
		db, err := postgres.Open(dsn)
		if err != nil {
			log.Error("db open failed", map[string]any{"error": err.Error()})
			os.Exit(1)
		}
		if dir := os.Getenv("MIGRATIONS_DIR"); dir != "" {
			if err := migrate.Up(db, dir); err != nil {
				log.Error("migrations failed", map[string]any{"error": err.Error()})
				os.Exit(1)
			}
		}
		opts.DB = db
	}

	opts.Identity = buildIdentity(log)
	opts.Mailer = buildMailer(log)

	srv := &http.Server{
		Addr:         addr,
		Handler:      router.NewRouter(opts),
		ReadTimeout:  5 * time.Second,
		WriteTimeout: 10 * time.Second,
	}

	log.Info("starting server", map[string]any{"addr": addr})
	if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		log.Error("server error", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
}

// buildIdentity usa Supabase si está configurado; si no, nil y el router
// cae al proveedor local en memoria (modo dev).
func buildIdentity(log logger.Logger) identity.Provider {
	url := os.Getenv("SUPABASE_URL")
	if strings.TrimSpace(url) == "" {
		log.Warn("SUPABASE_URL not set, using local identity provider", nil)
		return nil
	}

	p, err := supabase.New(supabase.Config{
		BaseURL: url,
		APIKey:  os.Getenv("SUPABASE_ANON_KEY"),
	})
	if err != nil {
		log.Error("supabase provider init failed", map[string]any{"error": err.Error()})
		os.Exit(1)
	}
	return p
}

func buildMailer(log logger.Logger) mail.Sender {
	s, err := smtpmail.NewFromEnv()
	if err != nil {
		// Sin SMTP los links de confirmación del proveedor local van al log.
		log.Warn("smtp not configured, confirmation links go to logs", nil)
		return nil
	}
	return s
}
