package llm

import "context"

// Provider is the fixed transport interface to a generative model.
// There is exactly one implementation per backend; selection happens
// once, at configuration time.
type Provider interface {
	// Generate sends a prompt to the model and returns its raw text
	// output. Callers are responsible for parsing; the transport makes
	// no assumptions about the shape of the response.
	Generate(ctx context.Context, req Request) (*Response, error)

	// ModelID returns the model identifier this provider is configured to use.
	ModelID() string
}

// Request describes a single generation call.
type Request struct {
	// Prompt is the full request text. Single-turn; intents that need
	// conversation context inline it into the prompt.
	Prompt string

	// Temperature controls randomness. Range: 0.0 - 1.0.
	// Default: 0.0 (deterministic) when not set.
	Temperature float64

	// MaxTokens is the maximum number of tokens in the response.
	MaxTokens int

	// JSONResponse asks the backend for a JSON-typed response where the
	// API supports it. The prompt must still spell out the expected
	// keys; this flag only reduces the odds of prose wrapping.
	JSONResponse bool
}

// Response holds the model's output.
type Response struct {
	// Text is the raw generated text, unparsed.
	Text string

	// Usage reports token consumption for this request.
	Usage Usage

	// Model is the actual model that served the request.
	Model string
}

// Usage tracks token consumption for a single request.
type Usage struct {
	InputTokens  int
	OutputTokens int
	TotalTokens  int
}
