package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	chdir(t, t.TempDir())
	for _, k := range []string{"APP_ENV", "LOG_LEVEL", "HTTP_PORT", "GRPC_PORT", "CART_PERSIST",
		"STORAGE_DRIVER", "SQLITE_PATH", "DATABASE_URL", "TAB_TTL", "CATALOG_FILE", "PAGE_ORIGIN", "CORS_ORIGINS"} {
		t.Setenv(k, "")
	}

	cfg := Load()
	assert.Equal(t, "dev", cfg.AppEnv)
	assert.Equal(t, 8080, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.False(t, cfg.CartPersist)
	assert.Equal(t, DriverSQLite, cfg.StorageDriver)
	assert.Equal(t, 12*time.Hour, cfg.TabTTL)
	assert.Equal(t, []string{"http://localhost:8080"}, cfg.CORSOrigins)
}

func TestLoadOverrides(t *testing.T) {
	chdir(t, t.TempDir())
	t.Setenv("HTTP_PORT", "9000")
	t.Setenv("GRPC_PORT", "not-a-number")
	t.Setenv("CART_PERSIST", "true")
	t.Setenv("STORAGE_DRIVER", "Postgres")
	t.Setenv("TAB_TTL", "30m")
	t.Setenv("CORS_ORIGINS", " http://a.test , ,http://b.test")

	cfg := Load()
	assert.Equal(t, 9000, cfg.HTTPPort)
	assert.Equal(t, 8081, cfg.GRPCPort)
	assert.True(t, cfg.CartPersist)
	assert.Equal(t, DriverPostgres, cfg.StorageDriver)
	assert.Equal(t, 30*time.Minute, cfg.TabTTL)
	assert.Equal(t, []string{"http://a.test", "http://b.test"}, cfg.CORSOrigins)
}

func TestLoadDotEnv(t *testing.T) {
	dir := t.TempDir()
	if err := os.WriteFile(filepath.Join(dir, ".env"), []byte("CATALOG_FILE=products.yaml\nLOG_LEVEL=debug\n"), 0o644); err != nil {
		t.Fatal(err)
	}
	chdir(t, dir)
	t.Setenv("APP_ENV", "dev")
	t.Setenv("LOG_LEVEL", "warn")
	t.Setenv("CATALOG_FILE", "")
	os.Unsetenv("CATALOG_FILE")

	cfg := Load()
	assert.Equal(t, "products.yaml", cfg.CatalogFile)
	assert.Equal(t, "warn", cfg.LogLevel, "the environment wins over .env")
}

// chdir changes the working directory for the duration of the test
// (equivalent of testing.T.Chdir, which requires Go 1.24).
func chdir(t *testing.T, dir string) {
	t.Helper()
	old, err := os.Getwd()
	if err != nil {
		t.Fatal(err)
	}
	if err := os.Chdir(dir); err != nil {
		t.Fatal(err)
	}
	t.Cleanup(func() {
		if err := os.Chdir(old); err != nil {
			t.Fatal(err)
		}
	})
}
