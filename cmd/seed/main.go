// cmd/seed: crea/actualiza el usuario SUPER inicial y datos de ejemplo.
// Uso: go run ./cmd/seed
// Variables: SEED_EMAIL, SEED_PASSWORD (además de la configuración normal).
package main

import (
	"context"
	"os"

	"investigacion/internal/config"
	"investigacion/internal/infra"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

var (
	lineasEjemplo   = []string{"Inteligencia Artificial", "Ingeniería de Software", "Redes y Telecomunicaciones"}
	periodosEjemplo = []string{"2024-1", "2024-2", "2025-1"}
)

func main() {
	log.Logger = log.Output(zerolog.ConsoleWriter{Out: os.Stderr})

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load config")
	}
	db, err := infra.NewDatabase(cfg.DatabaseURL)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to postgres")
	}
	if err := infra.RunMigrations(db); err != nil {
		log.Fatal().Err(err).Msg("migrations failed")
	}

	email := envOr("SEED_EMAIL", "admin@investigacion.local")
	password := envOr("SEED_PASSWORD", "admin12345")

	hash, err := bcrypt.GenerateFromPassword([]byte(password), 12)
	if err != nil {
		log.Fatal().Err(err).Msg("bcrypt error")
	}

	ctx := context.Background()
	err = db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		var usuarioID uint
		if err := tx.Raw(`
			INSERT INTO usuarios (name, last_name, email, password, cedula, role, estado)
			VALUES (?, ?, ?, ?, ?, 'SUPER', true)
			ON CONFLICT (email) DO UPDATE
			SET password = EXCLUDED.password,
			    role = 'SUPER',
			    estado = true,
			    updated_at = NOW()
			RETURNING id
		`, "Admin", "Investigación", email, string(hash), "0000000000").Scan(&usuarioID).Error; err != nil {
			return err
		}

		for _, nombre := range lineasEjemplo {
			if err := tx.Exec(`
				INSERT INTO lineas_de_investigacion (nombre, estado, usuario_id)
				VALUES (?, true, ?) ON CONFLICT (nombre) DO NOTHING
			`, nombre, usuarioID).Error; err != nil {
				return err
			}
		}
		for _, periodo := range periodosEjemplo {
			if err := tx.Exec(`
				INSERT INTO periodos_academicos (periodo) VALUES (?) ON CONFLICT (periodo) DO NOTHING
			`, periodo).Error; err != nil {
				return err
			}
		}
		return nil
	})
	if err != nil {
		log.Fatal().Err(err).Msg("seed failed")
	}
	log.Info().Str("email", email).Int("lineas", len(lineasEjemplo)).Int("periodos", len(periodosEjemplo)).Msg("seed completed")
}

func envOr(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
