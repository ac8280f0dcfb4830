package logger

import (
	"bytes"
	"encoding/json"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseLevel(t *testing.T) {
	for in, want := range map[string]slog.Level{
		"debug":   slog.LevelDebug,
		" WARN ":  slog.LevelWarn,
		"warning": slog.LevelWarn,
		"error":   slog.LevelError,
		"":        slog.LevelInfo,
		"verbose": slog.LevelInfo,
	} {
		assert.Equal(t, want, parseLevel(in), in)
	}
}

func TestStatusLevel(t *testing.T) {
	for status, want := range map[int]slog.Level{
		http.StatusOK:                  slog.LevelInfo,
		http.StatusSeeOther:            slog.LevelInfo,
		http.StatusNotFound:            slog.LevelWarn,
		http.StatusUnprocessableEntity: slog.LevelWarn,
		http.StatusInternalServerError: slog.LevelError,
		http.StatusServiceUnavailable:  slog.LevelError,
	} {
		if got := StatusLevel(status); got != want {
			t.Fatalf("StatusLevel(%d) = %v, want %v", status, got, want)
		}
	}
}

func TestNew(t *testing.T) {
	prev := slog.Default()
	t.Cleanup(func() { slog.SetDefault(prev) })

	var buf bytes.Buffer
	log := New(Options{Service: "storefront", Env: "test", Level: "info", Writer: &buf})
	log.Debug("hidden")
	log.Info("hello", slog.Int("n", 1))

	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	require.Len(t, lines, 1)

	var rec map[string]any
	require.NoError(t, json.Unmarshal([]byte(lines[0]), &rec))
	assert.Equal(t, "hello", rec["msg"])
	assert.Equal(t, "storefront", rec["service"])
	assert.Equal(t, "test", rec["env"])
	assert.Equal(t, float64(1), rec["n"])
}

func TestGin(t *testing.T) {
	gin.SetMode(gin.TestMode)
	var buf bytes.Buffer
	log := slog.New(slog.NewJSONHandler(&buf, nil))

	r := gin.New()
	r.Use(Gin(log))
	r.GET("/items/:id", func(c *gin.Context) { c.Status(http.StatusNotFound) })

	w := httptest.NewRecorder()
	r.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/items/7", nil))

	var rec map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &rec))
	assert.Equal(t, "WARN", rec["level"])
	assert.Equal(t, "/items/:id", rec["path"])
	assert.Equal(t, float64(404), rec["status"])
}
