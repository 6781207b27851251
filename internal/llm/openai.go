package llm

import (
	"context"
	"errors"
	"fmt"

	"github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// openAIClient implements Gateway using the OpenAI chat completions API.
type openAIClient struct {
	runner
	model  string
	client openai.Client
}

// NewOpenAIClient creates a Gateway backed by OpenAI (or any compatible
// endpoint set through cfg.Endpoint).
func NewOpenAIClient(cfg LLMConfig, observer Observer) (Gateway, error) {
	if cfg.APIKey == "" {
		return nil, fmt.Errorf("%w: openai", ErrMissingAPIKey)
	}
	cfg.Provider = ProviderOpenAI

	// Retries are handled by the runner.
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
	}
	if cfg.Endpoint != "" {
		opts = append(opts, option.WithBaseURL(cfg.Endpoint))
	}

	return &openAIClient{
		runner: newRunner(cfg, observer),
		model:  cfg.ResolvedModel(),
		client: openai.NewClient(opts...),
	}, nil
}

func (c *openAIClient) Generate(ctx context.Context, req GenerateRequest) (*GenerateResponse, error) {
	model := c.model
	if req.Model != "" {
		model = req.Model
	}

	var messages []openai.ChatCompletionMessageParamUnion
	if req.SystemPrompt != "" {
		messages = append(messages, openai.SystemMessage(req.SystemPrompt))
	}
	messages = append(messages, openai.UserMessage(req.UserPrompt))

	params := openai.ChatCompletionNewParams{
		Model:    openai.ChatModel(model),
		Messages: messages,
	}

	return c.run(ctx, model, func(ctx context.Context) (string, string, error) {
		completion, err := c.client.Chat.Completions.New(ctx, params)
		if err != nil {
			var apiErr *openai.Error
			if errors.As(err, &apiErr) {
				return "", "", &APIError{StatusCode: apiErr.StatusCode, Message: apiErr.Message}
			}
			return "", "", err
		}
		if len(completion.Choices) == 0 {
			return "", completion.Model, nil
		}
		return completion.Choices[0].Message.Content, completion.Model, nil
	})
}
