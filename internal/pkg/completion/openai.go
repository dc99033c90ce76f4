package completion

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/mellowlog/core/internal/config"
	openaiclient "github.com/openai/openai-go/v2"
	openaioption "github.com/openai/openai-go/v2/option"
)

const defaultOpenAIModel = "gpt-4o-mini"

type openAIClient struct {
	client openaiclient.Client
	model  string
}

func newOpenAIClient(provider *config.AIProvider) *openAIClient {
	model := strings.TrimSpace(provider.DefaultModel)
	if model == "" {
		model = defaultOpenAIModel
	}

	opts := []openaioption.RequestOption{
		openaioption.WithAPIKey(strings.TrimSpace(provider.APIKey)),
		openaioption.WithMaxRetries(0),
	}
	if endpoint := strings.TrimSpace(provider.Endpoint); endpoint != "" {
		opts = append(opts, openaioption.WithBaseURL(strings.TrimRight(endpoint, "/")))
	}

	return &openAIClient{
		client: openaiclient.NewClient(opts...),
		model:  model,
	}
}

func (c *openAIClient) Model() string { return c.model }

func (c *openAIClient) Complete(ctx context.Context, req Request) (string, error) {
	messages := make([]openaiclient.ChatCompletionMessageParamUnion, 0, 2)
	if strings.TrimSpace(req.System) != "" {
		messages = append(messages, openaiclient.SystemMessage(req.System))
	}
	messages = append(messages, openaiclient.UserMessage(req.Prompt))

	params := openaiclient.ChatCompletionNewParams{
		Model:    openaiclient.ChatModel(c.model),
		Messages: messages,
	}
	if req.MaxTokens > 0 {
		params.MaxTokens = openaiclient.Int(req.MaxTokens)
	}

	resp, err := c.client.Chat.Completions.New(ctx, params)
	if err != nil {
		return "", classifyOpenAIError(err)
	}
	if len(resp.Choices) == 0 {
		return "", errors.New("empty response from completion provider")
	}
	return resp.Choices[0].Message.Content, nil
}

func classifyOpenAIError(err error) error {
	var apiErr *openaiclient.Error
	if errors.As(err, &apiErr) {
		if transientStatus(apiErr.StatusCode) {
			return fmt.Errorf("%w: %v", ErrTransient, err)
		}
		return err
	}
	// No API response at all (DNS, timeout, connection reset).
	return fmt.Errorf("%w: %v", ErrTransient, err)
}
