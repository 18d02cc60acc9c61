package llm

import "context"

// Provider defines the interface for generative-text providers.
// Every call is cancellable and bounded by the provider's own timeout;
// failures surface as errors that callers must absorb at their boundary.
type Provider interface {
	// Name returns the provider name
	Name() string

	// Generate produces a text completion for the given request
	Generate(ctx context.Context, req GenerateRequest) (string, error)

	// IsAvailable checks if the provider is properly configured and accessible
	IsAvailable(ctx context.Context) bool
}

// GenerateRequest contains the input for text generation
type GenerateRequest struct {
	// Prompt is the user-level instruction
	Prompt string

	// System sets the assistant role (optional)
	System string

	// Temperature controls randomness. Zero means the provider default;
	// structured-output prompts should pass something low.
	Temperature float32

	// MaxTokens limits the response length (0 = provider default)
	MaxTokens int

	// Model overrides the configured model for this call (optional)
	Model string
}

// Config holds provider configuration
type Config struct {
	// Provider name: "openai", "anthropic", "ollama", ""
	Provider string

	// Model name (provider-specific)
	Model string

	// APIKey for OpenAI/Anthropic
	APIKey string

	// BaseURL for custom endpoints (e.g., Ollama)
	BaseURL string

	// Timeout for API requests, seconds
	Timeout int

	// MaxTokens default for response generation
	MaxTokens int
}

// DefaultConfig returns sensible defaults
func DefaultConfig() Config {
	return Config{
		Provider:  "", // Disabled by default
		Timeout:   30,
		MaxTokens: 1024,
	}
}
