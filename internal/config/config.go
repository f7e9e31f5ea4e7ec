package config

import (
	"os"
	"strconv"
)

// Config holds application level configuration loaded from environment variables.
type Config struct {
	ServerPort string

	// DBDriver selects the storage engine: "mysql" or "sqlite".
	DBDriver   string
	MySQLDSN   string
	SQLitePath string

	RedisAddr string
	RedisDB   int
	RedisPass string

	// JWTSecret signs session tokens. The default is a known weakness;
	// production deployments must override it.
	JWTSecret string

	UploadDir string

	// Bootstrap admin seeded through the regular create path on startup.
	AdminUsername string
	AdminEmail    string
	AdminPassword string
}

// Load builds Config from environment with sensible defaults.
func Load() *Config {
	return &Config{
		ServerPort:    getEnv("SERVER_PORT", "3000"),
		DBDriver:      getEnv("DB_DRIVER", "sqlite"),
		MySQLDSN:      getEnv("MYSQL_DSN", "user:password@tcp(localhost:3306)/learnhub?charset=utf8mb4&parseTime=True&loc=Local"),
		SQLitePath:    getEnv("SQLITE_PATH", "learnhub.db"),
		RedisAddr:     getEnv("REDIS_ADDR", "localhost:6379"),
		RedisDB:       getEnvInt("REDIS_DB", 0),
		RedisPass:     os.Getenv("REDIS_PASSWORD"),
		JWTSecret:     getEnv("JWT_SECRET", "your-secret-key"),
		UploadDir:     getEnv("UPLOAD_DIR", "uploads"),
		AdminUsername: getEnv("ADMIN_USERNAME", "admin"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@learnhub.local"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "change-me-on-first-run"),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	if v := os.Getenv(key); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil {
			return parsed
		}
	}
	return def
}
