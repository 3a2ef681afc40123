package config

import (
	"os"
	"strconv"
	"strings"
)

type Config struct {
	Port                 string
	DataFile             string   // Path of the single JSON database file
	UploadDir            string   // Directory uploaded images are written to
	AllowedOrigins       []string // CORS: from ALLOWED_ORIGINS or FRONTEND_URL(s)
	Host                 string   // Raw HOST env (e.g. https://backend.driftchat.app)
	AllowedHost          string   // Hostname only for strict host check (production only)
	Environment          string   // ENV: production, development, etc.
	SweepIntervalSeconds int      // How often the background expiry sweep runs
}

func Load() *Config {
	env := strings.ToLower(strings.TrimSpace(getEnv("ENV", "development")))
	host := getEnv("HOST", "http://localhost:8080")

	// AllowedHost is only set in production; host check is skipped in development
	var allowedHost string
	if env == "production" {
		allowedHost = host
		allowedHost = strings.TrimPrefix(allowedHost, "https://")
		allowedHost = strings.TrimPrefix(allowedHost, "http://")
		if idx := strings.Index(allowedHost, "/"); idx != -1 {
			allowedHost = allowedHost[:idx]
		}
		if idx := strings.Index(allowedHost, ":"); idx != -1 {
			allowedHost = allowedHost[:idx]
		}
		allowedHost = strings.TrimSpace(allowedHost)
	}

	allowedOrigins := parseOrigins(getEnv("ALLOWED_ORIGINS", ""))
	if len(allowedOrigins) == 0 {
		for _, u := range []string{getEnv("FRONTEND_URL", "http://localhost:3000"), getEnv("FRONTEND_URL_2", "")} {
			u = strings.TrimSpace(u)
			if u != "" {
				allowedOrigins = append(allowedOrigins, u)
			}
		}
	}
	if len(allowedOrigins) == 0 {
		allowedOrigins = []string{"http://localhost:3000"}
	}

	return &Config{
		Port:                 getEnv("PORT", "8080"),
		DataFile:             getEnv("DATA_FILE", "database.json"),
		UploadDir:            getEnv("UPLOAD_DIR", "public/uploads"),
		AllowedOrigins:       allowedOrigins,
		Host:                 host,
		AllowedHost:          allowedHost,
		Environment:          env,
		SweepIntervalSeconds: getEnvInt("SWEEP_INTERVAL_SECONDS", 60),
	}
}

func parseOrigins(s string) []string {
	if s == "" {
		return nil
	}
	var out []string
	for _, part := range strings.Split(s, ",") {
		part = strings.TrimSpace(part)
		if part != "" {
			out = append(out, part)
		}
	}
	return out
}

// IsProduction returns true when ENV is set to "production".
func (c *Config) IsProduction() bool {
	return strings.ToLower(strings.TrimSpace(c.Environment)) == "production"
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil && n > 0 {
			return n
		}
	}
	return defaultValue
}
