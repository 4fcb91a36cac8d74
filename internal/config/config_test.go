package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDefaultIsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())

	assert.Equal(t, ":8080", cfg.Server.Port)
	assert.Equal(t, 10.0, cfg.Cleaning.PriceMin)
	assert.Len(t, cfg.Analysis.Segments, 4)
	assert.Equal(t, "Budget", cfg.Analysis.Segments[0].Label)
}

func TestLoadFromFile(t *testing.T) {
	settings := `server:
  port: ":9090"
cleaning:
  price_min: 20
  price_max: 800
analysis:
  top_hosts: 5
`
	path := filepath.Join(t.TempDir(), "settings.yaml")
	require.NoError(t, os.WriteFile(path, []byte(settings), 0o644))
	t.Setenv("SETTINGS_PATH", path)
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, 20.0, cfg.Cleaning.PriceMin)
	assert.Equal(t, 800.0, cfg.Cleaning.PriceMax)
	assert.Equal(t, 5, cfg.Analysis.TopHosts)
	// Unset keys keep their defaults
	assert.Equal(t, 1, cfg.Cleaning.MinReviews)
}

func TestLoadMissingFileFallsBackToDefaults(t *testing.T) {
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", "")
	t.Setenv("DB_PATH", "")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, Default().Cleaning, cfg.Cleaning)
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("SETTINGS_PATH", filepath.Join(t.TempDir(), "absent.yaml"))
	t.Setenv("PORT", ":7000")
	t.Setenv("DB_PATH", "/tmp/other.db")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, ":7000", cfg.Server.Port)
	assert.Equal(t, "/tmp/other.db", cfg.Server.DBPath)
}

func TestValidateRejectsInvertedPriceBounds(t *testing.T) {
	cfg := Default()
	cfg.Cleaning.PriceMin = 500
	cfg.Cleaning.PriceMax = 10
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsInvertedSegment(t *testing.T) {
	cfg := Default()
	cfg.Analysis.Segments[1].Min = 300
	cfg.Analysis.Segments[1].Max = 100
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsBadSeasonMonth(t *testing.T) {
	cfg := Default()
	cfg.Analysis.HighSeasonMonths = []int{6, 13}
	assert.Error(t, cfg.Validate())
}
