package openai

import (
	"context"
	"errors"
	"fmt"

	"buddyai-be/pkg/llm"

	openai "github.com/openai/openai-go"
	"github.com/openai/openai-go/option"
)

type OpenAIProvider struct {
	client    openai.Client
	modelName string
}

var _ llm.LLMProvider = &OpenAIProvider{}

// NewOpenAIProvider builds a client with SDK retries disabled. An empty baseURL keeps the SDK default.
func NewOpenAIProvider(baseURL, apiKey, modelName string) *OpenAIProvider {
	opts := []option.RequestOption{
		option.WithAPIKey(apiKey),
		option.WithMaxRetries(0),
	}
	if baseURL != "" {
		opts = append(opts, option.WithBaseURL(baseURL))
	}
	return &OpenAIProvider{
		client:    openai.NewClient(opts...),
		modelName: modelName,
	}
}

func (o *OpenAIProvider) Name() string {
	return "openai"
}

func (o *OpenAIProvider) Chat(ctx context.Context, history []llm.Message, message string, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	messages := make([]openai.ChatCompletionMessageParamUnion, 0, len(history)+1)
	for _, msg := range history {
		if msg.Role == llm.RoleModel {
			messages = append(messages, openai.AssistantMessage(msg.Content))
		} else {
			messages = append(messages, openai.UserMessage(msg.Content))
		}
	}
	messages = append(messages, openai.UserMessage(message))

	model := o.modelName
	if options.Model != "" {
		model = options.Model
	}

	chatReq := openai.ChatCompletionNewParams{
		Model:    model,
		Messages: messages,
	}
	if options.Temperature != nil {
		chatReq.Temperature = openai.Float(*options.Temperature)
	}
	if options.MaxTokens > 0 {
		chatReq.MaxCompletionTokens = openai.Int(int64(options.MaxTokens))
	}

	res, err := o.client.Chat.Completions.New(ctx, chatReq)
	if err != nil {
		return "", fmt.Errorf("openai generation failed: %w", err)
	}
	if len(res.Choices) == 0 {
		return "", errors.New("openai returned no choices")
	}
	return res.Choices[0].Message.Content, nil
}

func (o *OpenAIProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return o.Chat(ctx, nil, prompt, opts...)
}
