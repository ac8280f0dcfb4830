package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	AppEnv   string
	LogLevel string

	GRPCPort int
	HTTPPort int

	// CartPersist turns on ambient persistence of the storefront cart.
	CartPersist bool

	StorageDriver string
	SQLitePath    string
	DatabaseURL   string
	TabTTL        time.Duration

	CatalogFile string
	PageOrigin  string
	CORSOrigins []string
}

const (
	DriverSQLite   = "sqlite"
	DriverPostgres = "postgres"
	DriverMemory   = "memory"
)

// Load reads the environment. Outside production a .env file in the working
// directory is loaded first; variables already set win.
func Load() Config {
	if os.Getenv("APP_ENV") != "production" {
		_ = godotenv.Load()
	}

	return Config{
		AppEnv:        getEnv("APP_ENV", "dev"),
		LogLevel:      getEnv("LOG_LEVEL", "info"),
		HTTPPort:      getEnvInt("HTTP_PORT", 8080),
		GRPCPort:      getEnvInt("GRPC_PORT", 8081),
		CartPersist:   getEnvBool("CART_PERSIST", false),
		StorageDriver: strings.ToLower(getEnv("STORAGE_DRIVER", DriverSQLite)),
		SQLitePath:    getEnv("SQLITE_PATH", "data/storefront.db"),
		DatabaseURL:   getEnv("DATABASE_URL", ""),
		TabTTL:        getEnvDuration("TAB_TTL", 12*time.Hour),
		CatalogFile:   getEnv("CATALOG_FILE", ""),
		PageOrigin:    getEnv("PAGE_ORIGIN", "http://localhost:8080"),
		CORSOrigins:   getEnvList("CORS_ORIGINS", []string{"http://localhost:8080"}),
	}
}

func getEnv(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

func getEnvInt(key string, def int) int {
	v := os.Getenv(key)

	if v == "" {
		return def
	}

	n, err := strconv.Atoi(v)
	if err != nil {
		return def
	}

	return n
}

func getEnvBool(key string, def bool) bool {
	b, err := strconv.ParseBool(os.Getenv(key))
	if err != nil {
		return def
	}
	return b
}

func getEnvDuration(key string, def time.Duration) time.Duration {
	d, err := time.ParseDuration(os.Getenv(key))
	if err != nil || d < 0 {
		return def
	}
	return d
}

func getEnvList(key string, def []string) []string {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	var out []string
	for _, p := range strings.Split(v, ",") {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	if len(out) == 0 {
		return def
	}
	return out
}
