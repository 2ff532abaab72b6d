package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	FrontendURL string

	// Snapshot persistence. The file backend is the default; setting
	// DATABASE_URL switches to the single-row Postgres backend.
	DataDir    string
	StorageKey string
	DBUrl      string

	// Embedded key-value slot server (the public mirror endpoint).
	RedisURL      string
	RedisPassword string

	// Cloud mirror. SyncBaseURL points at any key-value HTTP service,
	// typically another instance's /v1/kv. SyncRoom, when set, joins the
	// room at startup.
	SyncBaseURL  string
	SyncRoom     string
	SyncInterval time.Duration

	// Movement simulation tick.
	MoveInterval time.Duration

	// Demo auth. Passwords are fixed demo values per product decision; they
	// are still stored bcrypt-hashed.
	JWTSecret     string
	DemoPassword  string
	AdminEmail    string
	AdminPassword string
}

func LoadConfig() (*Config, error) {
	// Only effective locally; ignored in production when the file is absent.
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),

		DataDir:    getEnv("DATA_DIR", "./data"),
		StorageKey: getEnv("STORAGE_KEY", "meup_v1"),
		DBUrl:      getEnv("DATABASE_URL", ""),

		RedisURL:      getEnv("REDIS_URL", ""),
		RedisPassword: getEnv("REDIS_PASSWORD", ""),

		SyncBaseURL:  strings.TrimRight(getEnv("SYNC_BASE_URL", ""), "/"),
		SyncRoom:     getEnv("SYNC_ROOM", ""),
		SyncInterval: time.Duration(getEnvInt("SYNC_INTERVAL_MS", 2000)) * time.Millisecond,

		MoveInterval: time.Duration(getEnvInt("MOVE_INTERVAL_MS", 2000)) * time.Millisecond,

		JWTSecret:     getEnv("JWT_SECRET", "meup-demo-secret"),
		DemoPassword:  getEnv("DEMO_PASSWORD", "demo"),
		AdminEmail:    getEnv("ADMIN_EMAIL", "admin@meup.demo"),
		AdminPassword: getEnv("ADMIN_PASSWORD", "Meup@123456"),
	}

	if cfg.JWTSecret == "meup-demo-secret" {
		log.Println("WARNING: JWT_SECRET not set, using the demo default.")
	}
	if cfg.RedisURL == "" {
		log.Println("WARNING: REDIS_URL not configured. KV slots will use the in-memory fallback.")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
