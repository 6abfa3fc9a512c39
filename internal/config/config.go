package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultTokenExpiryMinutes = 30

// Local frontend dev servers (Vite, CRA and a generic proxy port).
var defaultOrigins = []string{
	"http://localhost:5173",
	"http://localhost:3000",
	"http://localhost:8080",
}

type Config struct {
	Port           string
	DatabaseURL    string
	DBDriver       string
	JWTSecret      string
	TokenExpiry    time.Duration
	AllowedOrigins []string
}

// Load reads configuration from the environment. JWT_SECRET and DATABASE_URL
// have no sane defaults and are required.
func Load() (Config, error) {
	cfg := Config{
		Port:        os.Getenv("PORT"),
		DatabaseURL: os.Getenv("DATABASE_URL"),
		DBDriver:    os.Getenv("DB_DRIVER"),
		JWTSecret:   os.Getenv("JWT_SECRET"),
	}

	if cfg.Port == "" {
		cfg.Port = "3000"
		log.Println("PORT not set, defaulting to 3000")
	}

	if cfg.DBDriver == "" {
		cfg.DBDriver = "postgres"
	}

	if cfg.DatabaseURL == "" {
		return cfg, fmt.Errorf("DATABASE_URL environment variable is not set")
	}

	if cfg.JWTSecret == "" {
		return cfg, fmt.Errorf("JWT_SECRET environment variable is not set")
	}

	minutes := defaultTokenExpiryMinutes

	if raw := os.Getenv("ACCESS_TOKEN_EXPIRE_MINUTES"); raw != "" {
		parsed, err := strconv.Atoi(raw)

		if err != nil || parsed <= 0 {
			return cfg, fmt.Errorf("invalid ACCESS_TOKEN_EXPIRE_MINUTES: %q", raw)
		}

		minutes = parsed
	}

	cfg.TokenExpiry = time.Duration(minutes) * time.Minute
	cfg.AllowedOrigins = allowedOrigins()

	return cfg, nil
}

// allowedOrigins builds the CORS allowlist: the local dev defaults, plus the
// deployed frontend from CLIENT_URL, plus any extras from the comma-separated
// ALLOWED_ORIGINS.
func allowedOrigins() []string {
	origins := append([]string{}, defaultOrigins...)

	if clientURL := os.Getenv("CLIENT_URL"); clientURL != "" {
		origins = append(origins, clientURL)
	}

	if extra := os.Getenv("ALLOWED_ORIGINS"); extra != "" {
		for _, origin := range strings.Split(extra, ",") {
			if origin = strings.TrimSpace(origin); origin != "" {
				origins = append(origins, origin)
			}
		}
	}

	return origins
}
