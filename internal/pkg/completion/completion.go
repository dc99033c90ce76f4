package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mellowlog/core/internal/config"
)

// ErrTransient marks provider failures worth retrying (rate limits,
// server errors, network failures). Errors not wrapping it are
// considered permanent.
var ErrTransient = errors.New("transient completion error")

// ErrNoProvider is returned when no enabled provider is configured.
var ErrNoProvider = errors.New("no enabled completion provider")

// Request is a single prompt/response completion call.
type Request struct {
	System    string
	Prompt    string
	MaxTokens int64
}

// Client is a text completion backend. Implementations perform exactly
// one network call per Complete invocation; retries belong to callers.
type Client interface {
	Complete(ctx context.Context, req Request) (string, error)
	Model() string
}

// New builds a Client from the first enabled provider in cfg.
func New(cfg *config.AIConfig) (Client, error) {
	provider := cfg.FirstEnabledProvider()
	if provider == nil {
		return nil, ErrNoProvider
	}
	return NewForProvider(provider)
}

// NewForProvider builds a Client for one provider entry.
func NewForProvider(provider *config.AIProvider) (Client, error) {
	switch normalizeProviderType(provider.Type) {
	case "anthropic":
		return newAnthropicClient(provider), nil
	case "openai", "":
		return newOpenAIClient(provider), nil
	default:
		return nil, fmt.Errorf("unsupported provider type %q", provider.Type)
	}
}

func normalizeProviderType(raw string) string {
	t := strings.ToLower(strings.TrimSpace(raw))
	t = strings.ReplaceAll(t, "_", "-")
	t = strings.ReplaceAll(t, " ", "")
	return t
}

func transientStatus(code int) bool {
	return code == 429 || code >= 500
}
