package ai

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

const (
	defaultReplicateEndpoint = "https://api.replicate.com/v1/predictions"

	// DefaultLlamaModelVersion pins the hosted Llama 2 chat model.
	DefaultLlamaModelVersion = "replicate/llama-2-70b-chat:2c1608e18606fad2812020dc541930f2d0495ce32eee50074220b87300bc16e1"

	llamaSystemPrompt = "You are a helpful AI assistant. Provide accurate and concise responses."
)

// ReplicateProvider is the fallback completion client, calling a Llama model
// hosted on Replicate's prediction API.
type ReplicateProvider struct {
	apiToken     string
	endpoint     string
	modelVersion string
	httpClient   *http.Client
}

// NewReplicateProvider builds the fallback client.
func NewReplicateProvider(cfg domain.Config, httpClient *http.Client) *ReplicateProvider {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	version := cfg.LlamaModelVersion
	if version == "" {
		version = DefaultLlamaModelVersion
	}
	return &ReplicateProvider{
		apiToken:     cfg.ReplicateAPIToken,
		endpoint:     defaultReplicateEndpoint,
		modelVersion: version,
		httpClient:   httpClient,
	}
}

// NewReplicateProviderWithEndpoint overrides the endpoint, used in tests.
func NewReplicateProviderWithEndpoint(cfg domain.Config, endpoint string, httpClient *http.Client) *ReplicateProvider {
	p := NewReplicateProvider(cfg, httpClient)
	p.endpoint = endpoint
	return p
}

func (p *ReplicateProvider) Name() string {
	return "llama"
}

type predictionRequest struct {
	Version string          `json:"version"`
	Input   predictionInput `json:"input"`
}

type predictionInput struct {
	Prompt            string  `json:"prompt"`
	MaxNewTokens      int     `json:"max_new_tokens"`
	Temperature       float64 `json:"temperature"`
	TopP              float64 `json:"top_p"`
	RepetitionPenalty float64 `json:"repetition_penalty"`
	SystemPrompt      string  `json:"system_prompt"`
}

type predictionResponse struct {
	Status string          `json:"status"`
	Output json.RawMessage `json:"output"`
	Error  string          `json:"error"`
}

// Generate implements ports.CompletionProvider. The prediction is created
// with a blocking "wait" preference so a single round trip carries the
// completed output.
func (p *ReplicateProvider) Generate(ctx context.Context, prompt string) (string, error) {
	if p.apiToken == "" {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionAuth,
			Message:  "API token is not configured",
		}
	}

	payload, err := json.Marshal(predictionRequest{
		Version: versionHash(p.modelVersion),
		Input: predictionInput{
			Prompt:            fmt.Sprintf("[INST] %s [/INST]", prompt),
			MaxNewTokens:      500,
			Temperature:       0.7,
			TopP:              0.9,
			RepetitionPenalty: 1.1,
			SystemPrompt:      llamaSystemPrompt,
		},
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, p.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("authorization", "Token "+p.apiToken)
	req.Header.Set("content-type", "application/json")
	req.Header.Set("prefer", "wait")

	resp, err := p.httpClient.Do(req)
	if err != nil {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionNetwork,
			Message:  err.Error(),
		}
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.ClassifyStatus(resp.StatusCode),
			Status:   resp.StatusCode,
			Message:  upstreamMessage(resp.Body),
		}
	}

	var decoded predictionResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionUnknown,
			Message:  fmt.Sprintf("decode response: %v", err),
		}
	}

	if decoded.Status != "" && decoded.Status != "succeeded" && decoded.Status != "processing" {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionRemote,
			Status:   resp.StatusCode,
			Message:  fmt.Sprintf("prediction %s: %s", decoded.Status, decoded.Error),
		}
	}

	output, err := joinOutput(decoded.Output)
	if err != nil {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionUnknown,
			Message:  err.Error(),
		}
	}
	if output == "" {
		return "", &domain.CompletionError{
			Provider: p.Name(),
			Kind:     domain.CompletionUnknown,
			Message:  "no output in prediction",
		}
	}
	return output, nil
}

// joinOutput accepts either a single string or an array of string chunks.
func joinOutput(raw json.RawMessage) (string, error) {
	if len(raw) == 0 || string(raw) == "null" {
		return "", nil
	}
	var single string
	if err := json.Unmarshal(raw, &single); err == nil {
		return single, nil
	}
	var chunks []string
	if err := json.Unmarshal(raw, &chunks); err != nil {
		return "", fmt.Errorf("unexpected output shape: %s", truncate(string(raw), 80))
	}
	return strings.Join(chunks, ""), nil
}

// versionHash strips the owner/name prefix from a pinned model identifier.
func versionHash(modelVersion string) string {
	if idx := strings.LastIndex(modelVersion, ":"); idx >= 0 {
		return modelVersion[idx+1:]
	}
	return modelVersion
}

func upstreamMessage(body io.Reader) string {
	data, _ := io.ReadAll(io.LimitReader(body, 1024))
	var detail struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(data, &detail); err == nil && detail.Detail != "" {
		return detail.Detail
	}
	return strings.TrimSpace(string(data))
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n] + "..."
}

var _ ports.CompletionProvider = (*ReplicateProvider)(nil)
