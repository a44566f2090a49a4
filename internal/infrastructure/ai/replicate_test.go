package ai

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/doeshing/smartai-go/internal/domain"
)

func newTestReplicate(t *testing.T, handler http.HandlerFunc) *ReplicateProvider {
	t.Helper()
	server := httptest.NewServer(handler)
	t.Cleanup(server.Close)
	cfg := domain.Config{ReplicateAPIToken: "test-token"}
	return NewReplicateProviderWithEndpoint(cfg, server.URL, server.Client())
}

func TestReplicateGenerateStringOutput(t *testing.T) {
	provider := newTestReplicate(t, func(w http.ResponseWriter, r *http.Request) {
		if got := r.Header.Get("Authorization"); got != "Token test-token" {
			t.Errorf("Authorization = %q", got)
		}
		var req predictionRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		if req.Version != versionHash(DefaultLlamaModelVersion) {
			t.Errorf("version = %q", req.Version)
		}
		if req.Input.Prompt != "[INST] hello [/INST]" {
			t.Errorf("prompt = %q", req.Input.Prompt)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "succeeded",
			"output": "AI is a field of computer science.",
		})
	})

	got, err := provider.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "AI is a field of computer science." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestReplicateGenerateChunkedOutput(t *testing.T) {
	provider := newTestReplicate(t, func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"status": "succeeded",
			"output": []string{"AI ", "stands for ", "Artificial Intelligence."},
		})
	})

	got, err := provider.Generate(context.Background(), "hello")
	if err != nil {
		t.Fatalf("Generate() error = %v", err)
	}
	if got != "AI stands for Artificial Intelligence." {
		t.Errorf("Generate() = %q", got)
	}
}

func TestReplicateGenerateErrorKinds(t *testing.T) {
	tests := []struct {
		name   string
		status int
		want   domain.CompletionKind
	}{
		{"auth", http.StatusUnauthorized, domain.CompletionAuth},
		{"rate limited", http.StatusTooManyRequests, domain.CompletionRateLimited},
		{"invalid input", http.StatusUnprocessableEntity, domain.CompletionInvalidInput},
		{"remote", http.StatusInternalServerError, domain.CompletionRemote},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			provider := newTestReplicate(t, func(w http.ResponseWriter, r *http.Request) {
				w.WriteHeader(tt.status)
				_ = json.NewEncoder(w).Encode(map[string]string{"detail": "upstream says no"})
			})

			_, err := provider.Generate(context.Background(), "hello")
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
			if compErr.Message != "upstream says no" {
				t.Errorf("Message = %q", compErr.Message)
			}
		})
	}
}

func TestReplicateGenerateNetworkError(t *testing.T) {
	cfg := domain.Config{ReplicateAPIToken: "test-token"}
	provider := NewReplicateProviderWithEndpoint(cfg, "http://127.0.0.1:1", nil)

	_, err := provider.Generate(context.Background(), "hello")
	var compErr *domain.CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *domain.CompletionError, got %v", err)
	}
	if compErr.Kind != domain.CompletionNetwork {
		t.Errorf("Kind = %s, want %s", compErr.Kind, domain.CompletionNetwork)
	}
}

func TestReplicateGenerateMissingToken(t *testing.T) {
	provider := NewReplicateProvider(domain.Config{}, nil)
	_, err := provider.Generate(context.Background(), "hello")
	var compErr *domain.CompletionError
	if !errors.As(err, &compErr) {
		t.Fatalf("expected *domain.CompletionError, got %v", err)
	}
	if compErr.Kind != domain.CompletionAuth {
		t.Errorf("Kind = %s, want %s", compErr.Kind, domain.CompletionAuth)
	}
}

func TestVersionHash(t *testing.T) {
	if got := versionHash("owner/model:abc123"); got != "abc123" {
		t.Errorf("versionHash = %q", got)
	}
	if got := versionHash("abc123"); got != "abc123" {
		t.Errorf("versionHash without prefix = %q", got)
	}
}
