package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/s0up4200/pokedex/pokeapi"
)

// isolate keeps Load away from config files on the host
func isolate(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	t.Chdir(dir)
	t.Setenv("HOME", dir)
	return dir
}

func writeConfig(t *testing.T, dir, content string) string {
	t.Helper()
	path := filepath.Join(dir, "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoad_Defaults(t *testing.T) {
	isolate(t)

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, pokeapi.DefaultBaseURL, cfg.PokeAPI.BaseURL)
	assert.Equal(t, 30*time.Second, cfg.PokeAPI.Timeout)
	assert.Equal(t, 2000, cfg.PokeAPI.SearchLimit)
	assert.Zero(t, cfg.PokeAPI.RateLimit)
	assert.Equal(t, "pokedex", cfg.PokeAPI.UserAgent)
	assert.Equal(t, 20, cfg.Store.PageSize)
	assert.Equal(t, 500*time.Millisecond, cfg.UI.Debounce)
	assert.Equal(t, "front_default", cfg.UI.Sprite)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "console", cfg.Logging.Format)
	assert.True(t, cfg.Logging.Color)
	assert.Empty(t, cfg.Source)
}

func TestLoad_File(t *testing.T) {
	dir := isolate(t)
	writeConfig(t, dir, `
pokeapi:
  base_url: http://localhost:8080/api/v2/
  timeout: 5s
  search_limit: 1500
  rate_limit: 10
  rate_burst: 5
store:
  page_size: 40
ui:
  debounce: 250ms
  sprite: front_shiny
queries:
  kanto: "ID <= 151"
logging:
  level: debug
  format: json
  file: /tmp/pokedex.log
`)

	// Found through the search path
	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, "http://localhost:8080/api/v2/", cfg.PokeAPI.BaseURL)
	assert.Equal(t, 5*time.Second, cfg.PokeAPI.Timeout)
	assert.Equal(t, 1500, cfg.PokeAPI.SearchLimit)
	assert.Equal(t, 10.0, cfg.PokeAPI.RateLimit)
	assert.Equal(t, 5, cfg.PokeAPI.RateBurst)
	assert.Equal(t, 40, cfg.Store.PageSize)
	assert.Equal(t, 250*time.Millisecond, cfg.UI.Debounce)
	assert.Equal(t, "front_shiny", cfg.UI.Sprite)
	assert.Equal(t, QueryConfig{"kanto": "ID <= 151"}, cfg.Queries)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "json", cfg.Logging.Format)
	assert.Equal(t, "/tmp/pokedex.log", cfg.Logging.File)
	assert.Contains(t, cfg.Source, "config.yaml")
}

func TestLoad_ExplicitPathMustExist(t *testing.T) {
	dir := isolate(t)

	_, err := Load(filepath.Join(dir, "missing.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "error reading config")
}

func TestLoad_EnvOverrides(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "store:\n  page_size: 40\n")

	t.Setenv("POKEDEX_STORE_PAGE_SIZE", "50")
	t.Setenv("POKEDEX_LOGGING_LEVEL", "warn")

	cfg, err := Load(path)
	require.NoError(t, err)
	assert.Equal(t, 50, cfg.Store.PageSize)
	assert.Equal(t, "warn", cfg.Logging.Level)
}

func TestLoad_Invalid(t *testing.T) {
	dir := isolate(t)
	path := writeConfig(t, dir, "store:\n  page_size: 0\n")

	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
	assert.Contains(t, err.Error(), "store.page_size")
}

func validConfig() *Config {
	return &Config{
		PokeAPI: PokeAPIConfig{
			BaseURL:     pokeapi.DefaultBaseURL,
			Timeout:     30 * time.Second,
			SearchLimit: 2000,
			RateBurst:   1,
		},
		Store: StoreConfig{PageSize: 20},
		UI: UIConfig{
			Debounce: 500 * time.Millisecond,
			Sprite:   "front_default",
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr string
	}{
		{
			name:   "valid",
			mutate: func(cfg *Config) {},
		},
		{
			name:    "missing base URL",
			mutate:  func(cfg *Config) { cfg.PokeAPI.BaseURL = "" },
			wantErr: "pokeapi.base_url is required",
		},
		{
			name:    "relative base URL",
			mutate:  func(cfg *Config) { cfg.PokeAPI.BaseURL = "pokeapi.co/api/v2" },
			wantErr: "pokeapi.base_url must be an absolute URL",
		},
		{
			name:    "negative timeout",
			mutate:  func(cfg *Config) { cfg.PokeAPI.Timeout = -time.Second },
			wantErr: "pokeapi.timeout",
		},
		{
			name:    "zero search limit",
			mutate:  func(cfg *Config) { cfg.PokeAPI.SearchLimit = 0 },
			wantErr: "pokeapi.search_limit",
		},
		{
			name:    "negative rate limit",
			mutate:  func(cfg *Config) { cfg.PokeAPI.RateLimit = -1 },
			wantErr: "pokeapi.rate_limit",
		},
		{
			name:    "negative burst",
			mutate:  func(cfg *Config) { cfg.PokeAPI.RateBurst = -1 },
			wantErr: "pokeapi.rate_burst",
		},
		{
			name:    "zero page size",
			mutate:  func(cfg *Config) { cfg.Store.PageSize = 0 },
			wantErr: "store.page_size",
		},
		{
			name:    "zero debounce",
			mutate:  func(cfg *Config) { cfg.UI.Debounce = 0 },
			wantErr: "ui.debounce",
		},
		{
			name:    "unknown sprite",
			mutate:  func(cfg *Config) { cfg.UI.Sprite = "sideways" },
			wantErr: "invalid ui.sprite",
		},
		{
			name:    "empty saved query",
			mutate:  func(cfg *Config) { cfg.Queries = QueryConfig{"kanto": " "} },
			wantErr: `query "kanto" has an empty expression`,
		},
		{
			name:    "invalid logging level",
			mutate:  func(cfg *Config) { cfg.Logging.Level = "trace" },
			wantErr: "invalid logging level: trace",
		},
		{
			name:    "invalid logging format",
			mutate:  func(cfg *Config) { cfg.Logging.Format = "xml" },
			wantErr: "invalid logging format: xml",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := validConfig()
			tt.mutate(cfg)

			err := validate(cfg)
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}
