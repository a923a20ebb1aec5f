package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/viper"

	"github.com/liquidity-ai/liquidity-tui/internal/api"
)

// Config holds application configuration, loaded once at startup and saved
// explicitly whenever a preference changes.
type Config struct {
	API APIConfig
	UI  UIConfig
}

// APIConfig holds backend settings.
type APIConfig struct {
	BaseURL string `mapstructure:"base_url"`
}

// UIConfig holds presentation preferences.
type UIConfig struct {
	Theme         string `mapstructure:"theme"`          // "dark" or "light"
	CookieConsent string `mapstructure:"cookie_consent"` // "accepted", "declined", or "" when unanswered
}

// Load reads configuration from file and env. Env var overrides use prefix
// LIQUIDITY_ (e.g. LIQUIDITY_API_BASE_URL).
func Load() (Config, error) {
	v := viper.New()

	// default values
	v.SetDefault("api.base_url", api.DefaultBaseURL)
	v.SetDefault("ui.theme", "light")
	v.SetDefault("ui.cookie_consent", "")

	v.SetConfigType("toml")

	cfgPath := os.Getenv("LIQUIDITY_CONFIG")
	if cfgPath != "" {
		v.SetConfigFile(cfgPath)
	} else {
		v.AddConfigPath(filepath.Join(os.Getenv("HOME"), ".config", "liquidity"))
		v.SetConfigName("config")
	}

	v.SetEnvPrefix("LIQUIDITY")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// read config file if present
	_ = v.ReadInConfig()

	var c Config
	if err := v.Unmarshal(&c); err != nil {
		return Config{}, fmt.Errorf("unmarshal config: %w", err)
	}
	c.UI.Theme = normalizeTheme(c.UI.Theme)
	return c, nil
}

// Save writes the provided config to disk, creating the config directory if
// needed. Called whenever a preference changes (theme toggle, cookie choice).
func Save(cfg Config) error {
	path := os.Getenv("LIQUIDITY_CONFIG")
	if path == "" {
		path = filepath.Join(os.Getenv("HOME"), ".config", "liquidity", "config.toml")
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("mkdir config dir: %w", err)
	}

	v := viper.New()
	v.SetConfigType("toml")
	v.Set("api.base_url", cfg.API.BaseURL)
	v.Set("ui.theme", normalizeTheme(cfg.UI.Theme))
	v.Set("ui.cookie_consent", cfg.UI.CookieConsent)

	if err := v.WriteConfigAs(path); err != nil {
		return fmt.Errorf("write config: %w", err)
	}
	return nil
}

func normalizeTheme(theme string) string {
	if strings.EqualFold(strings.TrimSpace(theme), "dark") {
		return "dark"
	}
	return "light"
}
