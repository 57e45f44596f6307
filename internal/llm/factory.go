package llm

import (
	"context"
	"fmt"

	"github.com/rs/zerolog"
)

// NewProvider creates a Provider from configuration, wrapped with retry
// and logging middleware (caller → retry → logging → base).
//
// A disabled configuration yields (nil, nil): callers treat a nil
// Provider as "run on the deterministic fallback".
func NewProvider(ctx context.Context, cfg Config, events EventRecorder, log zerolog.Logger) (Provider, error) {
	if cfg.Disabled() {
		return nil, nil
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	var base Provider
	var err error

	switch cfg.Provider {
	case "gemini":
		base, err = NewGeminiProvider(ctx, cfg.Gemini)
	case "openai":
		base, err = NewOpenAIProvider(cfg.OpenAI)
	case "anthropic":
		base, err = NewAnthropicProvider(cfg.Anthropic)
	default:
		return nil, fmt.Errorf("unknown LLM provider: %q", cfg.Provider)
	}
	if err != nil {
		return nil, fmt.Errorf("initializing %s provider: %w", cfg.Provider, err)
	}

	logged := WithLogging(base, cfg.Provider, events, log)
	return WithRetry(logged, cfg.Retry), nil
}
