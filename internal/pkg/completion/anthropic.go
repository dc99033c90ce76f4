package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	anthropicclient "github.com/anthropics/anthropic-sdk-go"
	anthropicoption "github.com/anthropics/anthropic-sdk-go/option"
	"github.com/mellowlog/core/internal/config"
)

const (
	defaultAnthropicModel     = "claude-haiku-4-5-20251001"
	defaultAnthropicMaxTokens = 1024
)

type anthropicClient struct {
	client anthropicclient.Client
	model  string
}

func newAnthropicClient(provider *config.AIProvider) *anthropicClient {
	model := strings.TrimSpace(provider.DefaultModel)
	if model == "" {
		model = defaultAnthropicModel
	}

	opts := []anthropicoption.RequestOption{
		anthropicoption.WithAPIKey(strings.TrimSpace(provider.APIKey)),
		anthropicoption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(provider.Endpoint); endpoint != "" {
		opts = append(opts, anthropicoption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	return &anthropicClient{
		client: anthropicclient.NewClient(opts...),
		model:  model,
	}
}

func (c *anthropicClient) Model() string { return c.model }

func (c *anthropicClient) Complete(ctx context.Context, req Request) (string, error) {
	maxTokens := req.MaxTokens
	if maxTokens <= 0 {
		maxTokens = defaultAnthropicMaxTokens
	}

	params := anthropicclient.MessageNewParams{
		Model:     anthropicclient.Model(c.model),
		MaxTokens: maxTokens,
		Messages: []anthropicclient.MessageParam{
			anthropicclient.NewUserMessage(anthropicclient.NewTextBlock(req.Prompt)),
		},
	}
	if strings.TrimSpace(req.System) != "" {
		params.System = []anthropicclient.TextBlockParam{{Text: req.System}}
	}

	resp, err := c.client.Messages.New(ctx, params)
	if err != nil {
		return "", classifyAnthropicError(err)
	}

	var full strings.Builder
	for _, block := range resp.Content {
		if block.Type == "text" {
			full.WriteString(block.Text)
		}
	}
	text := full.String()
	if strings.TrimSpace(text) == "" {
		return "", errors.New("empty response from completion provider")
	}
	return text, nil
}

func classifyAnthropicError(err error) error {
	var apiErr *anthropicclient.Error
	if errors.As(err, &apiErr) {
		if transientStatus(apiErr.StatusCode) {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return err
	}
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
