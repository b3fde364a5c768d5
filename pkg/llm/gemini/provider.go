package gemini

import (
	"context"
	"errors"
	"fmt"

	"buddyai-be/pkg/llm"

	"github.com/go-resty/resty/v2"
)

const DefaultBaseURL = "https://generativelanguage.googleapis.com"

type GeminiProvider struct {
	client    *resty.Client
	apiKey    string
	modelName string
}

var _ llm.LLMProvider = &GeminiProvider{}

func NewGeminiProvider(baseURL, apiKey, modelName string) *GeminiProvider {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &GeminiProvider{
		client:    resty.New().SetBaseURL(baseURL),
		apiKey:    apiKey,
		modelName: modelName,
	}
}

type geminiPart struct {
	Text string `json:"text"`
}

type geminiContent struct {
	Parts []geminiPart `json:"parts"`
	Role  string       `json:"role"`
}

type geminiGenerationConfig struct {
	Temperature     *float64 `json:"temperature,omitempty"`
	MaxOutputTokens int      `json:"maxOutputTokens,omitempty"`
}

type geminiChatRequest struct {
	Contents         []geminiContent         `json:"contents"`
	GenerationConfig *geminiGenerationConfig `json:"generationConfig,omitempty"`
}

type geminiCandidate struct {
	Content geminiContent `json:"content"`
}

type geminiChatResponse struct {
	Candidates []geminiCandidate `json:"candidates"`
}

func (g *GeminiProvider) Name() string {
	return "gemini"
}

// Gemini speaks the same user/model vocabulary as the stored history.
func toGeminiRole(role string) string {
	if role == llm.RoleModel {
		return "model"
	}
	return "user"
}

func (g *GeminiProvider) Chat(ctx context.Context, history []llm.Message, message string, opts ...llm.Option) (string, error) {
	options := llm.ApplyOptions(opts...)

	contents := make([]geminiContent, 0, len(history)+1)
	for _, msg := range history {
		contents = append(contents, geminiContent{
			Parts: []geminiPart{{Text: msg.Content}},
			Role:  toGeminiRole(msg.Role),
		})
	}
	contents = append(contents, geminiContent{
		Parts: []geminiPart{{Text: message}},
		Role:  "user",
	})

	payload := geminiChatRequest{Contents: contents}
	if options.Temperature != nil || options.MaxTokens > 0 {
		payload.GenerationConfig = &geminiGenerationConfig{
			Temperature:     options.Temperature,
			MaxOutputTokens: options.MaxTokens,
		}
	}

	model := g.modelName
	if options.Model != "" {
		model = options.Model
	}

	var result geminiChatResponse
	res, err := g.client.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetHeader("x-goog-api-key", g.apiKey).
		SetBody(payload).
		SetResult(&result).
		Post(fmt.Sprintf("/v1beta/models/%s:generateContent", model))
	if err != nil {
		return "", fmt.Errorf("gemini request failed: %w", err)
	}
	if !res.IsSuccess() {
		return "", fmt.Errorf("gemini error: status %d, body: %s", res.StatusCode(), res.String())
	}

	if len(result.Candidates) == 0 || len(result.Candidates[0].Content.Parts) == 0 {
		return "", errors.New("gemini returned no candidates")
	}
	return result.Candidates[0].Content.Parts[0].Text, nil
}

func (g *GeminiProvider) Generate(ctx context.Context, prompt string, opts ...llm.Option) (string, error) {
	return g.Chat(ctx, nil, prompt, opts...)
}
