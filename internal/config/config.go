package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port     string
	Env      string
	LogLevel string

	// Storage
	DataDir    string
	DBFile     string
	BackupFile string

	// Admin credential (shared)
	AdminUser         string
	AdminPassword     string
	AdminPasswordHash string // bcrypt hash; takes precedence over AdminPassword

	// Rate limiting
	RateLimitMax    int
	RateLimitWindow time.Duration
	RedisURL        string // optional: switches to the Redis-backed limiter

	// Backup
	BackupInterval time.Duration

	// Maintenance
	ProtectedTables []string

	// CORS
	CORSAllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env if present
	_ = godotenv.Load()

	env := getEnv("ENV", "development")

	// Production keeps its data on the mounted volume, development next to
	// the binary.
	dataDir := getEnv("DATA_DIR", "")
	if dataDir == "" {
		if env == "production" {
			dataDir = "/var/lib/maze-leaderboard"
		} else {
			dataDir = "./data"
		}
	}

	cfg := &Config{
		Port:     getEnv("PORT", "3000"),
		Env:      env,
		LogLevel: getEnv("LOG_LEVEL", "info"),

		DataDir:    dataDir,
		DBFile:     getEnv("DB_FILE", filepath.Join(dataDir, "game_progress.db")),
		BackupFile: getEnv("BACKUP_FILE", filepath.Join(dataDir, "game_progress_backup.db")),

		AdminUser:         getEnv("ADMIN_USER", "admin"),
		AdminPassword:     getEnv("ADMIN_PASSWORD", ""),
		AdminPasswordHash: getEnv("ADMIN_PASSWORD_HASH", ""),

		RateLimitMax:    getEnvInt("RATE_LIMIT_MAX", 1),
		RateLimitWindow: parseDuration(getEnv("RATE_LIMIT_WINDOW", "20s"), 20*time.Second),
		RedisURL:        getEnv("REDIS_URL", ""),

		BackupInterval: parseDuration(getEnv("BACKUP_INTERVAL", "5m"), 5*time.Minute),

		ProtectedTables: splitList(getEnv("PROTECTED_TABLES", "sqlite_sequence")),

		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
	}

	return cfg, nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return defaultValue
}

func parseDuration(s string, defaultValue time.Duration) time.Duration {
	d, err := time.ParseDuration(s)
	if err != nil {
		return defaultValue
	}
	return d
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			out = append(out, trimmed)
		}
	}
	return out
}
