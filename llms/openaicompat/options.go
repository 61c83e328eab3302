package openaicompat

import (
	"net/http"
	"os"

	"github.com/tmc/langchaingo/callbacks"
)

// DefaultModel is used when no model is configured on the client or the call.
const DefaultModel = "gpt-4o-mini"

type options struct {
	apiKey           string
	baseURL          string
	model            string
	httpClient       *http.Client
	callbacksHandler callbacks.Handler
}

// Option configures the client.
type Option func(*options)

// WithAPIKey sets the API key. Local backends such as Ollama accept any
// non-empty value here.
func WithAPIKey(apiKey string) Option {
	return func(o *options) {
		o.apiKey = apiKey
	}
}

// WithBaseURL points the client at an alternative OpenAI-compatible
// endpoint, e.g. "http://localhost:11434/v1" for Ollama.
func WithBaseURL(baseURL string) Option {
	return func(o *options) {
		o.baseURL = baseURL
	}
}

// WithModel sets the default model for calls that don't override it.
func WithModel(model string) Option {
	return func(o *options) {
		o.model = model
	}
}

// WithHTTPClient sets a custom HTTP client.
func WithHTTPClient(client *http.Client) Option {
	return func(o *options) {
		o.httpClient = client
	}
}

// WithCallbacksHandler sets the callbacks handler notified around each
// generation.
func WithCallbacksHandler(handler callbacks.Handler) Option {
	return func(o *options) {
		o.callbacksHandler = handler
	}
}

func getEnvOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
