package config

import (
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"
)

const defaultJWTSecret = "dev-secret-change-in-production"

// Store backends selectable with STORE_BACKEND.
const (
	BackendMySQL  = "mysql"
	BackendMemory = "memory"
)

type Config struct {
	Port         string
	Env          string
	StoreBackend string
	DatabaseDSN  string
	AutoMigrate  bool
	JWTSecret    string
	JWTExpiry    time.Duration

	S3Endpoint      string
	S3Region        string
	S3AccessKey     string
	S3SecretKey     string
	S3Bucket        string
	S3PublicBaseURL string

	CORSOrigins             []string
	EnforceProfileOwnership bool
	RateLimitRPS            float64
	RateLimitBurst          int
}

func Load() Config {
	cfg := Config{
		Port:         getEnv("PORT", "3001"),
		Env:          getEnv("ENV", "development"),
		StoreBackend: getEnv("STORE_BACKEND", BackendMySQL),
		DatabaseDSN:  getEnv("DATABASE_DSN", "root:password@tcp(127.0.0.1:3306)/teamfolio?parseTime=true"),
		AutoMigrate:  getBool("DB_AUTO_MIGRATE", true),
		JWTSecret:    getEnv("JWT_SECRET", defaultJWTSecret),
		JWTExpiry:    getDuration("JWT_EXPIRY", 24*time.Hour),

		S3Endpoint:      getEnv("S3_ENDPOINT", "http://127.0.0.1:9000"),
		S3Region:        getEnv("S3_REGION", "us-east-1"),
		S3AccessKey:     getEnv("S3_ACCESS_KEY", "minioadmin"),
		S3SecretKey:     getEnv("S3_SECRET_KEY", "minioadmin"),
		S3Bucket:        getEnv("S3_BUCKET", "User_image"),
		S3PublicBaseURL: getEnv("S3_PUBLIC_BASE_URL", ""),

		CORSOrigins:             getList("CORS_ORIGINS", []string{"*"}),
		EnforceProfileOwnership: getBool("ENFORCE_PROFILE_OWNERSHIP", false),
		RateLimitRPS:            getFloat("RATE_LIMIT_RPS", 5),
		RateLimitBurst:          getInt("RATE_LIMIT_BURST", 10),
	}

	if cfg.StoreBackend != BackendMySQL && cfg.StoreBackend != BackendMemory {
		slog.Warn("unknown STORE_BACKEND, using mysql", "value", cfg.StoreBackend)
		cfg.StoreBackend = BackendMySQL
	}

	if cfg.Env == "production" && cfg.JWTSecret == defaultJWTSecret {
		slog.Error("JWT_SECRET must be set in production environment")
		os.Exit(1)
	}

	return cfg
}

// PublicBaseURL is the prefix under which uploaded objects are reachable.
// Falls back to path-style addressing on the S3 endpoint.
func (c Config) PublicBaseURL() string {
	if c.S3PublicBaseURL != "" {
		return strings.TrimRight(c.S3PublicBaseURL, "/")
	}
	return strings.TrimRight(c.S3Endpoint, "/") + "/" + c.S3Bucket
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getBool(key string, fallback bool) bool {
	v, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getInt(key string, fallback int) int {
	v, err := strconv.Atoi(os.Getenv(key))
	if err != nil {
		return fallback
	}
	return v
}

func getFloat(key string, fallback float64) float64 {
	v, err := strconv.ParseFloat(os.Getenv(key), 64)
	if err != nil {
		return fallback
	}
	return v
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v, err := time.ParseDuration(os.Getenv(key))
	if err != nil || v <= 0 {
		return fallback
	}
	return v
}

func getList(key string, fallback []string) []string {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return fallback
	}
	return out
}
