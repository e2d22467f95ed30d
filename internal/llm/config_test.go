package llm

import (
	"context"
	"strings"
	"testing"
)

func clearLLMEnv(t *testing.T) {
	t.Helper()
	for _, k := range []string{
		"CINEMATCH_LLM_PROVIDER",
		"GEMINI_API_KEY", "OPENAI_API_KEY", "ANTHROPIC_API_KEY", "OPENROUTER_API_KEY",
	} {
		t.Setenv(k, "")
	}
	for _, p := range envProviders {
		prefix := "CINEMATCH_" + strings.ToUpper(p) + "_"
		t.Setenv(prefix+"API_KEY", "")
		t.Setenv(prefix+"MODEL", "")
		t.Setenv(prefix+"BASE_URL", "")
	}
}

func TestConfigFromEnv(t *testing.T) {
	clearLLMEnv(t)
	t.Setenv("CINEMATCH_LLM_PROVIDER", "OpenAI")
	t.Setenv("CINEMATCH_OPENAI_API_KEY", "sk-test")
	t.Setenv("CINEMATCH_OPENAI_MODEL", "gpt-4o")

	cfg := ConfigFromEnv()
	if cfg.Provider != ProviderOpenAI {
		t.Fatalf("provider = %q", cfg.Provider)
	}
	if cfg.OpenAI.APIKey != "sk-test" || cfg.OpenAI.Model != "gpt-4o" {
		t.Fatalf("openai creds = %+v", cfg.OpenAI)
	}
	if cfg.Anthropic.Model != "claude-haiku" {
		t.Fatalf("anthropic default model lost: %+v", cfg.Anthropic)
	}
	if err := cfg.Validate(); err != nil {
		t.Fatalf("validate: %v", err)
	}
}

func TestDiscoverConfig_Order(t *testing.T) {
	clearLLMEnv(t)
	if _, ok := DiscoverConfig(); ok {
		t.Fatal("expected no discovery with a clean environment")
	}

	t.Setenv("ANTHROPIC_API_KEY", "a")
	t.Setenv("OPENAI_API_KEY", "o")
	cfg, ok := DiscoverConfig()
	if !ok || cfg.Provider != ProviderOpenAI || cfg.OpenAI.APIKey != "o" {
		t.Fatalf("discovered %+v, %v", cfg, ok)
	}
}

func TestResolveConfig(t *testing.T) {
	clearLLMEnv(t)
	if ResolveConfig().Enabled() {
		t.Fatal("expected disabled config")
	}

	t.Setenv("GEMINI_API_KEY", "g")
	if got := ResolveConfig().Provider; got != ProviderGemini {
		t.Fatalf("provider = %q", got)
	}

	t.Setenv("CINEMATCH_LLM_PROVIDER", "mock")
	if got := ResolveConfig().Provider; got != ProviderMock {
		t.Fatalf("explicit provider ignored: %q", got)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		cfg     Config
		wantErr string
	}{
		{"disabled", Config{}, ""},
		{"mock", Config{Provider: ProviderMock}, ""},
		{"missing key", Config{Provider: ProviderGemini}, "CINEMATCH_GEMINI_API_KEY"},
		{"unknown", Config{Provider: "llama"}, "unknown LLM provider"},
		{"ok", Config{Provider: ProviderAnthropic, Anthropic: Credentials{APIKey: "k"}}, ""},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.cfg.Validate()
			if tt.wantErr == "" {
				if err != nil {
					t.Fatalf("unexpected error: %v", err)
				}
				return
			}
			if err == nil || !strings.Contains(err.Error(), tt.wantErr) {
				t.Fatalf("err = %v, want %q", err, tt.wantErr)
			}
		})
	}
}

func TestNewProvider(t *testing.T) {
	p, err := NewProvider(context.Background(), Config{Provider: ProviderMock}, nil)
	if err != nil || p.ModelID() != "mock" {
		t.Fatalf("mock provider: %v %v", p, err)
	}

	if _, err := NewProvider(context.Background(), Config{}, nil); err == nil {
		t.Fatal("expected error for disabled config")
	}

	cfg := DefaultConfig()
	cfg.Provider = ProviderOpenRouter
	cfg.OpenRouter.APIKey = "sk-or"
	p, err = NewProvider(context.Background(), cfg, nil)
	if err != nil {
		t.Fatalf("openrouter provider: %v", err)
	}
	if p.ModelID() != "google/gemini-2.0-flash-exp" {
		t.Fatalf("model = %q", p.ModelID())
	}
}
