// Package ai contains the completion provider adapters.
package ai

import (
	"context"
	"errors"
	"net/url"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

const openaiSystemPrompt = "You are an aggressive and direct AI assistant that provides accurate and practical information with confidence and authority."

// OpenAIProvider is the primary completion client.
type OpenAIProvider struct {
	client *openai.Client
	model  string
	apiKey string
}

// NewOpenAIProvider wires the official chat-completions API with the fixed
// sampling parameters this tool uses.
func NewOpenAIProvider(cfg domain.Config) *OpenAIProvider {
	clientCfg := openai.DefaultConfig(cfg.OpenAIAPIKey)
	if cfg.OpenAIBaseURL != "" {
		clientCfg.BaseURL = cfg.OpenAIBaseURL
	}
	model := cfg.OpenAIModel
	if model == "" {
		model = openai.GPT3Dot5Turbo
	}
	return &OpenAIProvider{
		client: openai.NewClientWithConfig(clientCfg),
		model:  model,
		apiKey: cfg.OpenAIAPIKey,
	}
}

func (p *OpenAIProvider) Name() string {
	return "openai"
}

// Generate implements ports.CompletionProvider.
func (p *OpenAIProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.apiKey == "" {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionAuth,
			Message:  "API key is not configured",
		}
	}

	resp, err := p.client.CreateChatCompletion(ctx, openai.ChatCompletionRequest{
		Model: p.model,
		Messages: []openai.ChatCompletionMessage{
			{Role: openai.ChatMessageRoleSystem, Content: openaiSystemPrompt},
			{Role: openai.ChatMessageRoleUser, Content: prompt},
		},
		Temperature:      0.8,
		MaxTokens:        1000,
		TopP:             0.95,
		FrequencyPenalty: 0.2,
		PresencePenalty:  0.1,
	})
	if err != nil {
		return "", p.classify(err)
	}

	if len(resp.Choices) == 0 {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionUnknown,
			Message:  "no choices in response",
		}
	}
	return resp.Choices[0].Message.Content, nil
}

// classify maps the SDK's error shapes onto the closed failure taxonomy.
func (p *OpenAIProvider) classify(err error) error {
	var apiErr *openai.APIError
	if errors.As(err, &apiErr) {
		return &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.ClassifyStatus(apiErr.HTTPStatusCode),
			Status:   apiErr.HTTPStatusCode,
			Message:  apiErr.Message,
		}
	}
	var reqErr *openai.RequestError
	if errors.As(err, &reqErr) {
		return &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.ClassifyStatus(reqErr.HTTPStatusCode),
			Status:   reqErr.HTTPStatusCode,
			Message:  reqErr.Error(),
		}
	}
	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionNetwork,
			Message:  urlErr.Error(),
		}
	}
	return &domain.CompletionError{
		Provider: p.Name(),
		Kind:     domain.CompletionUnknown,
		Message:  err.Error(),
	}
}

var _ ports.CompletionProvider = (*OpenAIProvider)(nil)
