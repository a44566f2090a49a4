package search

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/doeshing/smartai-go/internal/domain"
)

func TestSearchFormatsPayload(t *testing.T) {
	var gotBody searchRequest
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Header.Get("X-API-KEY") != "test-key" {
			t.Errorf("missing API key header, got %q", r.Header.Get("X-API-KEY"))
		}
		if err := json.NewDecoder(r.Body).Decode(&gotBody); err != nil {
			t.Fatalf("decode request: %v", err)
		}
		_ = json.NewEncoder(w).Encode(map[string]interface{}{
			"knowledgeGraph": map[string]interface{}{
				"title":       "Artificial intelligence",
				"description": "Intelligence of machines",
				"attributes":  map[string]string{"Field": "Computer science"},
			},
			"organic": []map[string]interface{}{
				{"title": "What is AI?", "snippet": "Artificial intelligence is...", "link": "https://example.com/ai", "rating": 4.0},
				{"title": "AI overview", "snippet": "A broad field.", "link": "https://example.com/overview"},
			},
			"relatedSearches": []map[string]string{
				{"query": "machine learning"},
			},
		})
	}))
	defer server.Close()

	client := NewSerperClientWithEndpoint("test-key", server.URL, server.Client())
	text, err := client.Search(context.Background(), "What is AI?")
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotBody.Q != "What is AI?" || gotBody.Num != domain.DefaultSearchResultCount {
		t.Errorf("unexpected request body: %+v", gotBody)
	}
	for _, want := range []string{
		"Knowledge Graph:",
		"Artificial intelligence: Intelligence of machines",
		"- Field: Computer science",
		"1. WHAT IS AI?",
		"   Artificial intelligence is...",
		"   Rating: ****",
		"   URL: https://example.com/ai",
		"2. AI OVERVIEW",
		"Related Searches:",
		"- machine learning",
	} {
		if !strings.Contains(text, want) {
			t.Errorf("formatted output missing %q:\n%s", want, text)
		}
	}
}

func TestSearchNonSuccessStatus(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "forbidden", http.StatusForbidden)
	}))
	defer server.Close()

	client := NewSerperClientWithEndpoint("test-key", server.URL, server.Client())
	_, err := client.Search(context.Background(), "anything")

	var searchErr *domain.SearchError
	if !errors.As(err, &searchErr) {
		t.Fatalf("expected *domain.SearchError, got %v", err)
	}
	if searchErr.Status != http.StatusForbidden {
		t.Errorf("Status = %d, want %d", searchErr.Status, http.StatusForbidden)
	}
}

func TestSearchMissingKey(t *testing.T) {
	client := NewSerperClient("", nil)
	if _, err := client.Search(context.Background(), "anything"); err == nil {
		t.Fatal("expected error for missing API key")
	}
}

func TestFormatResultsEmptyPayload(t *testing.T) {
	if got := formatResults(searchResponse{}); got != "" {
		t.Errorf("formatResults(empty) = %q, want empty", got)
	}
}
