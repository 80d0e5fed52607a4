package config

import "time"

// Config represents the complete configuration structure
type Config struct {
	PokeAPI PokeAPIConfig `mapstructure:"pokeapi"`
	Store   StoreConfig   `mapstructure:"store"`
	UI      UIConfig      `mapstructure:"ui"`
	Queries QueryConfig   `mapstructure:"queries"`
	Logging LoggingConfig `mapstructure:"logging"`

	// Source is the config file that was read, empty when running on defaults
	Source string `mapstructure:"-"`
}

// PokeAPIConfig holds PokéAPI connection details
type PokeAPIConfig struct {
	BaseURL     string        `mapstructure:"base_url"`
	Timeout     time.Duration `mapstructure:"timeout"`
	SearchLimit int           `mapstructure:"search_limit"`
	RateLimit   float64       `mapstructure:"rate_limit"`
	RateBurst   int           `mapstructure:"rate_burst"`
	UserAgent   string        `mapstructure:"user_agent"`
}

// StoreConfig contains list store settings
type StoreConfig struct {
	PageSize int `mapstructure:"page_size"`
}

// UIConfig contains terminal UI settings
type UIConfig struct {
	Debounce time.Duration `mapstructure:"debounce"`
	Sprite   string        `mapstructure:"sprite"`
}

// QueryConfig maps names to saved query expressions
type QueryConfig map[string]string

// LoggingConfig contains logging configuration
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Color  bool   `mapstructure:"color"`
	File   string `mapstructure:"file"`
}
