package config

import (
	"os"

	"github.com/rs/zerolog/log"
)

type Config struct {
	HTTPPort            string
	DatabaseDSN         string
	JWTSecret           string
	CORSOrigins         string
	AuthEmailDomain     string // synthetic email domain for usernames without "@"
	AuthPasswordEnabled bool   // when false, /auth/login answers 403 like a disabled provider
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:            getEnv("HTTP_PORT", "8080"),
		DatabaseDSN:         getEnv("DATABASE_DSN", "host=localhost user=postgres password=postgres dbname=gymcore port=5432 sslmode=disable"),
		JWTSecret:           getEnv("JWT_SECRET", ""),
		CORSOrigins:         getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
		AuthEmailDomain:     getEnv("AUTH_EMAIL_DOMAIN", "gymcore.com"),
		AuthPasswordEnabled: getEnv("AUTH_PASSWORD_ENABLED", "true") != "false",
	}

	if cfg.JWTSecret == "" {
		log.Fatal().Msg("JWT_SECRET is not set; it is required")
	}
	if len(cfg.JWTSecret) < 32 {
		log.Fatal().Msg("JWT_SECRET must be at least 32 characters")
	}
	if cfg.CORSOrigins == "http://localhost:5173" {
		log.Warn().Msg("CORS_ALLOWED_ORIGINS is using the development default")
	}

	return cfg
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}
