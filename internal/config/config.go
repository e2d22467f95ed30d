// Package config loads cinematch settings from built-in defaults, an
// optional YAML file and CINEMATCH_* environment variables.
package config

import (
	"time"

	"github.com/abhisek/cinematch/internal/catalog"
)

// Config is the top-level application configuration.
type Config struct {
	TMDB    TMDBConfig    `koanf:"tmdb"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
	Quiz    QuizConfig    `koanf:"quiz"`
	Store   StoreConfig   `koanf:"store"`
}

// TMDBConfig configures the movie catalog client.
type TMDBConfig struct {
	APIKey       string        `koanf:"api_key"`
	AccessToken  string        `koanf:"access_token"`
	BaseURL      string        `koanf:"base_url" validate:"required,url"`
	ImageBaseURL string        `koanf:"image_base_url" validate:"omitempty,url"`
	Language     string        `koanf:"language" validate:"required"`
	Timeout      time.Duration `koanf:"timeout" validate:"min=1s,max=2m"`
	Limit        int           `koanf:"limit" validate:"min=1,max=20"`
}

// ServerConfig configures `cinematch serve`.
type ServerConfig struct {
	Addr              string        `koanf:"addr" validate:"required,hostname_port"`
	RateLimitRequests int           `koanf:"rate_limit_requests" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window" validate:"min=0"`
	CORSOrigins       []string      `koanf:"cors_origins"`
}

// LoggingConfig configures zerolog output.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"oneof=trace debug info warn warning error disabled off"`
	Format string `koanf:"format" validate:"oneof=console json"`
	File   string `koanf:"file"`
}

// QuizConfig points at an optional replacement quiz table.
type QuizConfig struct {
	Path string `koanf:"path" validate:"omitempty,file"`
}

// StoreConfig points at the optional request event database.
type StoreConfig struct {
	Path string `koanf:"path"`
}

// Configured reports whether any TMDB credential is set.
func (c TMDBConfig) Configured() bool {
	return c.APIKey != "" || c.AccessToken != ""
}

// Client converts the settings into a catalog client configuration.
func (c TMDBConfig) Client() catalog.TMDBConfig {
	return catalog.TMDBConfig{
		APIKey:       c.APIKey,
		AccessToken:  c.AccessToken,
		BaseURL:      c.BaseURL,
		ImageBaseURL: c.ImageBaseURL,
		Language:     c.Language,
		Timeout:      c.Timeout,
	}
}

// RateLimited reports whether the per-IP limiter should be installed.
func (c ServerConfig) RateLimited() bool {
	return c.RateLimitRequests > 0 && c.RateLimitWindow > 0
}

func defaultConfig() *Config {
	return &Config{
		TMDB: TMDBConfig{
			BaseURL:      catalog.DefaultBaseURL,
			ImageBaseURL: catalog.DefaultImageBaseURL,
			Language:     catalog.DefaultLanguage,
			Timeout:      catalog.DefaultTimeout,
			Limit:        5,
		},
		Server: ServerConfig{
			Addr:              "127.0.0.1:8080",
			RateLimitRequests: 60,
			RateLimitWindow:   time.Minute,
			CORSOrigins:       []string{"*"},
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

// Default returns the built-in configuration without reading files or env.
func Default() *Config {
	return defaultConfig()
}
