package llm

import (
	"fmt"
	"os"
	"time"
)

// Config holds all model provider configuration.
type Config struct {
	// Provider selects which backend to use.
	// Values: "gemini", "openai", "anthropic", "mock", "" (disabled).
	Provider string

	Gemini    GeminiConfig
	OpenAI    OpenAIConfig
	Anthropic AnthropicConfig
	Retry     RetryConfig
}

// GeminiConfig holds Gemini-specific configuration.
type GeminiConfig struct {
	APIKey string
	Model  string // Default: "gemini-flash"
}

// OpenAIConfig holds OpenAI-specific configuration.
type OpenAIConfig struct {
	APIKey  string
	Model   string // Default: "gpt-4o-mini"
	BaseURL string // Optional. Override for OpenAI-compatible APIs.
}

// AnthropicConfig holds Anthropic-specific configuration.
type AnthropicConfig struct {
	APIKey string
	Model  string // Default: "claude-haiku"
}

// RetryConfig configures retry behavior for transient failures.
type RetryConfig struct {
	MaxAttempts int           // total attempts, including the first
	InitialWait time.Duration // backoff base
	MaxWait     time.Duration // backoff ceiling
	MaxJitter   time.Duration // additive, uniform in [0, MaxJitter)
}

// DefaultConfig returns a Config with sensible defaults. The provider
// is left unset: with no API key the engine runs entirely on the
// deterministic fallback.
func DefaultConfig() Config {
	return Config{
		Gemini: GeminiConfig{
			Model: "gemini-flash",
		},
		OpenAI: OpenAIConfig{
			Model: "gpt-4o-mini",
		},
		Anthropic: AnthropicConfig{
			Model: "claude-haiku",
		},
		Retry: RetryConfig{
			MaxAttempts: 5,
			InitialWait: 1 * time.Second,
			MaxWait:     60 * time.Second,
			MaxJitter:   300 * time.Millisecond,
		},
	}
}

// ConfigFromEnv builds a Config from environment variables, falling back
// to defaults for unset values. When INTERVUE_LLM_PROVIDER is unset, the
// standard API key variables are checked in priority order.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if p := os.Getenv("INTERVUE_LLM_PROVIDER"); p != "" {
		cfg.Provider = p
	}

	if k := os.Getenv("INTERVUE_GEMINI_API_KEY"); k != "" {
		cfg.Gemini.APIKey = k
	}
	if m := os.Getenv("INTERVUE_GEMINI_MODEL"); m != "" {
		cfg.Gemini.Model = m
	}

	if k := os.Getenv("INTERVUE_OPENAI_API_KEY"); k != "" {
		cfg.OpenAI.APIKey = k
	}
	if m := os.Getenv("INTERVUE_OPENAI_MODEL"); m != "" {
		cfg.OpenAI.Model = m
	}
	if u := os.Getenv("INTERVUE_OPENAI_BASE_URL"); u != "" {
		cfg.OpenAI.BaseURL = u
	}

	if k := os.Getenv("INTERVUE_ANTHROPIC_API_KEY"); k != "" {
		cfg.Anthropic.APIKey = k
	}
	if m := os.Getenv("INTERVUE_ANTHROPIC_MODEL"); m != "" {
		cfg.Anthropic.Model = m
	}

	if cfg.Provider == "" {
		discoverProvider(&cfg)
	}

	return cfg
}

// discoverProvider checks standard API key env vars in priority order
// (Gemini → OpenAI → Anthropic) and fills in the first one found.
func discoverProvider(cfg *Config) {
	if k := os.Getenv("GEMINI_API_KEY"); k != "" {
		cfg.Provider = "gemini"
		cfg.Gemini.APIKey = k
		return
	}
	if k := os.Getenv("OPENAI_API_KEY"); k != "" {
		cfg.Provider = "openai"
		cfg.OpenAI.APIKey = k
		return
	}
	if k := os.Getenv("ANTHROPIC_API_KEY"); k != "" {
		cfg.Provider = "anthropic"
		cfg.Anthropic.APIKey = k
	}
}

// Disabled reports whether no model backend is configured.
func (c Config) Disabled() bool {
	return c.Provider == "" || c.Provider == "mock"
}

// Validate checks that the selected provider has its required API key set.
func (c Config) Validate() error {
	switch c.Provider {
	case "gemini":
		if c.Gemini.APIKey == "" {
			return fmt.Errorf("INTERVUE_GEMINI_API_KEY is required for the gemini provider")
		}
	case "openai":
		if c.OpenAI.APIKey == "" {
			return fmt.Errorf("INTERVUE_OPENAI_API_KEY is required for the openai provider")
		}
	case "anthropic":
		if c.Anthropic.APIKey == "" {
			return fmt.Errorf("INTERVUE_ANTHROPIC_API_KEY is required for the anthropic provider")
		}
	case "mock", "":
		// No API key needed.
	default:
		return fmt.Errorf("unknown LLM provider: %q", c.Provider)
	}
	return nil
}
