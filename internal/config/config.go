package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	// DataDir holds posts.json, users.json, the secret key file, and backups.
	DataDir string
	// UploadsDir holds hero image blobs referenced by posts.
	UploadsDir string

	// Env is "dev" (default) or "prod".
	Env string

	// SessionExpireHours is the login token lifetime in hours (default 24). Set via SESSION_EXPIRE_HOURS.
	SessionExpireHours int

	// MaxUploadBytes caps multipart request bodies, image included (default 10 MiB).
	MaxUploadBytes int64

	// BackupSchedule is a cron expression for periodic data-dir snapshots.
	// Empty (the default) disables backups.
	BackupSchedule string

	// TLSCertFile and TLSKeyFile enable HTTPS when both are set.
	// When empty, the API listens with plain HTTP.
	TLSCertFile string
	TLSKeyFile  string

	// LogFormat is "text" (default) or "json" for structured logging.
	LogFormat string

	// CORSAllowedOrigins is a list of origins allowed for CORS.
	// Set via CORS_ALLOWED_ORIGINS (comma-separated). When empty, no CORS headers are sent (same-origin only).
	CORSAllowedOrigins []string
}

func Load() Config {
	// A missing .env is fine; environment variables still apply.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8001"),

		DataDir:    getEnv("DATA_DIR", "data"),
		UploadsDir: getEnv("UPLOADS_DIR", "uploads"),

		Env: getEnv("ENV", "dev"),

		SessionExpireHours: getEnvInt("SESSION_EXPIRE_HOURS", 24),

		MaxUploadBytes: int64(getEnvInt("MAX_UPLOAD_BYTES", 10<<20)),

		BackupSchedule: getEnv("BACKUP_SCHEDULE", ""),

		TLSCertFile: getEnv("TLS_CERT_FILE", ""),
		TLSKeyFile:  getEnv("TLS_KEY_FILE", ""),

		LogFormat: getEnv("LOG_FORMAT", "text"),

		CORSAllowedOrigins: parseCORSOrigins(getEnv("CORS_ALLOWED_ORIGINS", "")),
	}
}

// parseCORSOrigins splits a comma-separated list of origins and trims spaces. Empty strings are omitted.
func parseCORSOrigins(s string) []string {
	if s == "" {
		return nil
	}
	parts := strings.Split(s, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if o := strings.TrimSpace(p); o != "" {
			out = append(out, o)
		}
	}
	return out
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			return n
		}
	}
	return fallback
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
