package config

import (
	"errors"
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"

	"github.com/s0up4200/pokedex/pokeapi"
)

// EnvPrefix prefixes environment overrides, e.g. POKEDEX_STORE_PAGE_SIZE
const EnvPrefix = "POKEDEX"

// Load loads the configuration. An explicit configPath must exist; when it
// is empty the standard locations are searched and a missing file falls
// back to defaults.
func Load(configPath string) (*Config, error) {
	v := viper.New()

	// Set default values
	setDefaults(v)

	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if configPath != "" {
		v.SetConfigFile(configPath)
	} else {
		v.SetConfigName("config")
		v.SetConfigType("yaml")

		v.AddConfigPath(".")
		if home, err := os.UserHomeDir(); err == nil {
			v.AddConfigPath(filepath.Join(home, ".pokedex"))
		}
		v.AddConfigPath("/etc/pokedex/")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if configPath != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("error reading config: %w", err)
		}
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	cfg.Source = v.ConfigFileUsed()

	// Validate configuration
	if err := validate(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// PokéAPI defaults
	v.SetDefault("pokeapi.base_url", pokeapi.DefaultBaseURL)
	v.SetDefault("pokeapi.timeout", 30*time.Second)
	v.SetDefault("pokeapi.search_limit", pokeapi.DefaultSearchLimit)
	v.SetDefault("pokeapi.rate_limit", 0)
	v.SetDefault("pokeapi.rate_burst", 1)
	v.SetDefault("pokeapi.user_agent", "pokedex")

	v.SetDefault("store.page_size", 20)

	// UI defaults
	v.SetDefault("ui.debounce", 500*time.Millisecond)
	v.SetDefault("ui.sprite", pokeapi.SpriteFrontDefault.String())

	v.SetDefault("queries", map[string]string{})

	// Logging defaults
	v.SetDefault("logging.level", "info")
	v.SetDefault("logging.format", "console")
	v.SetDefault("logging.color", true)
	v.SetDefault("logging.file", "")
}

// validate checks if the configuration is valid
func validate(cfg *Config) error {
	if cfg.PokeAPI.BaseURL == "" {
		return fmt.Errorf("pokeapi.base_url is required")
	}
	if u, err := url.Parse(cfg.PokeAPI.BaseURL); err != nil || u.Scheme == "" || u.Host == "" {
		return fmt.Errorf("pokeapi.base_url must be an absolute URL: %s", cfg.PokeAPI.BaseURL)
	}

	if cfg.PokeAPI.Timeout < 0 {
		return fmt.Errorf("pokeapi.timeout must not be negative")
	}
	if cfg.PokeAPI.SearchLimit <= 0 {
		return fmt.Errorf("pokeapi.search_limit must be positive, got %d", cfg.PokeAPI.SearchLimit)
	}
	if cfg.PokeAPI.RateLimit < 0 {
		return fmt.Errorf("pokeapi.rate_limit must not be negative")
	}
	if cfg.PokeAPI.RateBurst < 0 {
		return fmt.Errorf("pokeapi.rate_burst must not be negative")
	}

	if cfg.Store.PageSize <= 0 {
		return fmt.Errorf("store.page_size must be positive, got %d", cfg.Store.PageSize)
	}

	if cfg.UI.Debounce <= 0 {
		return fmt.Errorf("ui.debounce must be positive")
	}
	if _, err := pokeapi.ParseSpriteKind(cfg.UI.Sprite); err != nil {
		return fmt.Errorf("invalid ui.sprite: %w", err)
	}

	for name, expression := range cfg.Queries {
		if strings.TrimSpace(expression) == "" {
			return fmt.Errorf("query %q has an empty expression", name)
		}
	}

	// Validate logging level
	validLevels := map[string]bool{
		"debug": true,
		"info":  true,
		"warn":  true,
		"error": true,
	}
	if !validLevels[cfg.Logging.Level] {
		return fmt.Errorf("invalid logging level: %s", cfg.Logging.Level)
	}

	// Validate logging format
	validFormats := map[string]bool{
		"console": true,
		"json":    true,
	}
	if !validFormats[cfg.Logging.Format] {
		return fmt.Errorf("invalid logging format: %s", cfg.Logging.Format)
	}

	return nil
}
