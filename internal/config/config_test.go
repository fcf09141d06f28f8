package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 8080, cfg.Port)
	assert.Equal(t, 640, cfg.CanvasWidth)
	assert.Equal(t, 480, cfg.CanvasHeight)
	assert.Equal(t, 8.0, cfg.HitTolerance)
	assert.Equal(t, 1.0, cfg.CanvasScale)
	assert.Equal(t, "github", cfg.CodeStyle)
	assert.Empty(t, cfg.ManifestPath)
}

func TestLoadFromEnv(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("CODE_STYLE", "monokai")
	t.Setenv("HIT_TOLERANCE", "12.5")
	t.Setenv("CANVAS_SCALE", "0.5")
	t.Setenv("MANIFEST_PATH", "/tmp/page.yaml")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 9000, cfg.Port)
	assert.Equal(t, "monokai", cfg.CodeStyle)
	assert.Equal(t, 12.5, cfg.HitTolerance)
	assert.Equal(t, 0.5, cfg.CanvasScale)
	assert.Equal(t, "/tmp/page.yaml", cfg.ManifestPath)
}

func TestLoadInvalid(t *testing.T) {
	t.Setenv("CANVAS_WIDTH", "wide")
	_, err := Load()
	assert.Error(t, err)
}

func TestOrigins(t *testing.T) {
	cfg := &Config{AllowedOrigins: " https://guide.example.com, ,http://localhost:3000"}
	assert.Equal(t, []string{"https://guide.example.com", "http://localhost:3000"}, cfg.Origins())
	assert.Equal(t, []string{"guide.example.com", "localhost:3000"}, cfg.OriginPatterns())
}
