package ai

import (
	"context"
	"errors"
	"net/http"
	"testing"

	openai "github.com/sashabaranov/go-openai"

	"github.com/doeshing/smartai-go/internal/domain"
)

func TestOpenAIClassifyAPIError(t *testing.T) {
	provider := NewOpenAIProvider(domain.Config{OpenAIAPIKey: "test-key"})

	tests := []struct {
		name   string
		status int
		want   domain.CompletionKind
	}{
		{"auth", http.StatusUnauthorized, domain.CompletionAuth},
		{"rate limited", http.StatusTooManyRequests, domain.CompletionRateLimited},
		{"remote", http.StatusBadGateway, domain.CompletionRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := provider.classify(&openai.APIError{
				HTTPStatusCode: tt.status,
				Message:        "upstream message",
			})
			var compErr *domain.CompletionError
			if !errors.As(err, &compErr) {
				t.Fatalf("expected *domain.CompletionError, got %v", err)
			}
			if compErr.Kind != tt.want {
				t.Errorf("Kind = %s, want %s", compErr.Kind, tt.want)
			}
			if compErr.Status != tt.status {
				t.Errorf("Status = %d, want %d", compErr.Status, tt.status)
			}
		})
	}
}

func TestOpenAIClassifyUnknown(t *testing.T) {
	provider := NewOpenAIProvider(domain.Config{OpenAIAPIKey: "test-key"})
	err := provider.classify(errors.New("boom"))

	var compErr *domain.CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *domain.CompletionError, got %v", err)
	}
	if compErr.Kind != domain.CompletionUnknown {
		t.Errorf("Kind = %s, want %s", compErr.Kind, domain.CompletionUnknown)
	}
}

func TestOpenAIGenerateMissingKey(t *testing.T) {
	provider := NewOpenAIProvider(domain.Config{})
	_, err := provider.Generate(context.Background(), "hello")

	var compErr *domain.CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *domain.CompletionError, got %v", err)
	}
	if compErr.Kind != domain.CompletionAuth {
		t.Errorf("Kind = %s, want %s", compErr.Kind, domain.CompletionAuth)
	}
}
