package llm

import (
	"fmt"
	"os"
	"strings"
	"time"
)

// Provider names accepted in CINEMATCH_LLM_PROVIDER.
const (
	ProviderAnthropic  = "anthropic"
	ProviderOpenAI     = "openai"
	ProviderGemini     = "gemini"
	ProviderOpenRouter = "openrouter"
	ProviderMock       = "mock"
)

// Credentials configures one provider.
type Credentials struct {
	APIKey  string
	Model   string
	BaseURL string
}

// Config holds all LLM provider configuration. An empty Provider disables
// generation.
type Config struct {
	Provider string

	Anthropic  Credentials
	OpenAI     Credentials
	Gemini     Credentials
	OpenRouter Credentials
	Retry      RetryConfig

	// Timeout bounds a single Generate call including retries.
	Timeout time.Duration
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int
	InitialWait time.Duration
	MaxWait     time.Duration
	Multiplier  float64
}

// DefaultConfig returns a disabled Config with per-provider default models.
func DefaultConfig() Config {
	return Config{
		Anthropic:  Credentials{Model: "claude-haiku"},
		OpenAI:     Credentials{Model: "gpt-4o-mini"},
		Gemini:     Credentials{Model: "gemini-flash"},
		OpenRouter: Credentials{Model: "google/gemini-2.0-flash-exp", BaseURL: defaultOpenRouterBaseURL},
		Retry: RetryConfig{
			MaxAttempts: 2,
			InitialWait: 500 * time.Millisecond,
			MaxWait:     4 * time.Second,
			Multiplier:  2.0,
		},
		Timeout: 20 * time.Second,
	}
}

// Enabled reports whether a provider is selected.
func (c Config) Enabled() bool {
	return c.Provider != ""
}

// credentials returns the block for name.
func (c *Config) credentials(name string) *Credentials {
	switch name {
	case ProviderAnthropic:
		return &c.Anthropic
	case ProviderOpenAI:
		return &c.OpenAI
	case ProviderGemini:
		return &c.Gemini
	case ProviderOpenRouter:
		return &c.OpenRouter
	default:
		return nil
	}
}

var envProviders = []string{ProviderAnthropic, ProviderOpenAI, ProviderGemini, ProviderOpenRouter}

// ConfigFromEnv reads CINEMATCH_LLM_PROVIDER and the per-provider
// CINEMATCH_<PROVIDER>_{API_KEY,MODEL,BASE_URL} variables.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()
	cfg.Provider = strings.ToLower(os.Getenv("CINEMATCH_LLM_PROVIDER"))

	for _, name := range envProviders {
		creds := cfg.credentials(name)
		prefix := "CINEMATCH_" + strings.ToUpper(name) + "_"
		if k := os.Getenv(prefix + "API_KEY"); k != "" {
			creds.APIKey = k
		}
		if m := os.Getenv(prefix + "MODEL"); m != "" {
			creds.Model = m
		}
		if u := os.Getenv(prefix + "BASE_URL"); u != "" {
			creds.BaseURL = u
		}
	}
	return cfg
}

// discoveryOrder lists the standard key variables probed by DiscoverConfig.
var discoveryOrder = []struct {
	env      string
	provider string
}{
	{"GEMINI_API_KEY", ProviderGemini},
	{"OPENAI_API_KEY", ProviderOpenAI},
	{"ANTHROPIC_API_KEY", ProviderAnthropic},
	{"OPENROUTER_API_KEY", ProviderOpenRouter},
}

// DiscoverConfig picks the first provider whose standard API key variable
// is set. Returns (Config{}, false) if none is.
func DiscoverConfig() (Config, bool) {
	for _, d := range discoveryOrder {
		k := os.Getenv(d.env)
		if k == "" {
			continue
		}
		cfg := DefaultConfig()
		cfg.Provider = d.provider
		cfg.credentials(d.provider).APIKey = k
		return cfg, true
	}
	return Config{}, false
}

// ResolveConfig prefers explicit CINEMATCH_* settings, then discovery, and
// otherwise returns a disabled config.
func ResolveConfig() Config {
	cfg := ConfigFromEnv()
	if cfg.Enabled() {
		return cfg
	}
	if discovered, ok := DiscoverConfig(); ok {
		return discovered
	}
	return DefaultConfig()
}

// Validate checks that the selected provider has its API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "", ProviderMock:
		return nil
	}
	creds := c.credentials(c.Provider)
	if creds == nil {
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	if creds.APIKey == "" {
		return fmt.Errorf("CINEMATCH_%s_API_KEY is required for the %s provider",
			strings.ToUpper(c.Provider), c.Provider)
	}
	return nil
}
