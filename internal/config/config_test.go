package config

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("LIQUIDITY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, api.DefaultBaseURL, cfg.API.BaseURL)
	require.Equal(t, "light", cfg.UI.Theme)
	require.Empty(t, cfg.UI.CookieConsent)
}

func TestLoadEnvOverride(t *testing.T) {
	t.Setenv("LIQUIDITY_CONFIG", filepath.Join(t.TempDir(), "missing.toml"))
	t.Setenv("LIQUIDITY_API_BASE_URL", "http://localhost:8000")
	t.Setenv("LIQUIDITY_UI_THEME", "dark")

	cfg, err := Load()
	require.NoError(t, err)
	require.Equal(t, "http://localhost:8000", cfg.API.BaseURL)
	require.Equal(t, "dark", cfg.UI.Theme)
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")
	t.Setenv("LIQUIDITY_CONFIG", path)

	cfg := Config{
		API: APIConfig{BaseURL: "http://localhost:9000"},
		UI:  UIConfig{Theme: "dark", CookieConsent: "accepted"},
	}
	require.NoError(t, Save(cfg))

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	require.Contains(t, string(data), "localhost:9000")

	loaded, err := Load()
	require.NoError(t, err)
	require.Equal(t, cfg, loaded)
}

func TestThemeNormalization(t *testing.T) {
	require.Equal(t, "dark", normalizeTheme(" DARK "))
	require.Equal(t, "light", normalizeTheme("light"))
	require.Equal(t, "light", normalizeTheme("solarized"))
	require.Equal(t, "light", normalizeTheme(""))
}
