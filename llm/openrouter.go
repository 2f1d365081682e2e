package llm

import (
	"context"
	"errors"
	"fmt"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

// OpenRouter implements Client against OpenRouter's OpenAI-compatible chat
// completions endpoint using the official openai-go SDK. Single user message,
// no history, no streaming, no retry: a failure is the caller's problem.
type OpenRouter struct {
	model string
	opts  []option.RequestOption
}

// NewOpenRouter builds a client from settings. OpenRouter wants the referer
// and title headers alongside the bearer key.
func NewOpenRouter(cfg Settings) (*OpenRouter, error) {
	if cfg.APIKey == "" {
		return nil, errors.New("openrouter api key missing")
	}
	if cfg.Model == "" {
		return nil, errors.New("llm model is required")
	}
	opts := []option.RequestOption{
		option.WithAPIKey(cfg.APIKey),
		option.WithMaxRetries(0),
		option.WithHeader("HTTP-Referer", "http://localhost:3000"),
		option.WithHeader("X-Title", "Tasks Generator App"),
	}
	if cfg.BaseURL != "" {
		opts = append(opts, option.WithBaseURL(cfg.BaseURL))
	}
	return &OpenRouter{model: cfg.Model, opts: opts}, nil
}

func (o *OpenRouter) Complete(ctx context.Context, prompt string) (string, error) {
	client := openai.NewClient(o.opts...)

	resp, err := client.Chat.Completions.New(ctx, openai.ChatCompletionNewParams{
		Model: openai.ChatModel(o.model),
		Messages: []openai.ChatCompletionMessageParamUnion{
			openai.UserMessage(prompt),
		},
	})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrUpstream, err)
	}
	if len(resp.Choices) == 0 {
		return "", fmt.Errorf("%w: empty choices", ErrUpstream)
	}
	return resp.Choices[0].Message.Content, nil
}
