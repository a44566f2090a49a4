// Package search wraps the Serper web search API.
package search

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"sort"
	"strings"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

const defaultEndpoint = "https://google.serper.dev/search"

// SerperClient issues one POST per query and formats the JSON payload into a
// human-readable text block. The formatting is write-only; nothing parses it
// back.
type SerperClient struct {
	apiKey     string
	endpoint   string
	httpClient *http.Client
}

// NewSerperClient builds a client against the production endpoint.
func NewSerperClient(apiKey string, httpClient *http.Client) *SerperClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: domain.DefaultHTTPClientTimeout}
	}
	return &SerperClient{
		apiKey:     apiKey,
		endpoint:   defaultEndpoint,
		httpClient: httpClient,
	}
}

// NewSerperClientWithEndpoint overrides the endpoint, used in tests.
func NewSerperClientWithEndpoint(apiKey, endpoint string, httpClient *http.Client) *SerperClient {
	c := NewSerperClient(apiKey, httpClient)
	c.endpoint = endpoint
	return c
}

type searchRequest struct {
	Q   string `json:"q"`
	Num int    `json:"num"`
	GL  string `json:"gl"`
	HL  string `json:"hl"`
}

type searchResponse struct {
	KnowledgeGraph  *knowledgeGraph `json:"knowledgeGraph"`
	Organic         []organicResult `json:"organic"`
	RelatedSearches []relatedSearch `json:"relatedSearches"`
}

type knowledgeGraph struct {
	Title       string            `json:"title"`
	Description string            `json:"description"`
	Attributes  map[string]string `json:"attributes"`
}

type organicResult struct {
	Title   string  `json:"title"`
	Snippet string  `json:"snippet"`
	Link    string  `json:"link"`
	Rating  float64 `json:"rating"`
}

type relatedSearch struct {
	Query string `json:"query"`
}

// Search implements ports.SearchClient. A non-success HTTP status surfaces as
// *domain.SearchError; there is no retry.
func (c *SerperClient) Search(ctx context.Context, query string) (string, error) {
	if c.apiKey == "" {
		return "", fmt.Errorf("serper: API key is not configured")
	}

	payload, err := json.Marshal(searchRequest{
		Q:   query,
		Num: domain.DefaultSearchResultCount,
		GL:  domain.DefaultSearchRegion,
		HL:  domain.DefaultSearchLanguage,
	})
	if err != nil {
		return "", err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(payload))
	if err != nil {
		return "", err
	}
	req.Header.Set("X-API-KEY", c.apiKey)
	req.Header.Set("content-type", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("serper: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		body, _ := io.ReadAll(io.LimitReader(resp.Body, 512))
		return "", &domain.SearchError{Status: resp.StatusCode, Message: strings.TrimSpace(string(body))}
	}

	var decoded searchResponse
	if err := json.NewDecoder(resp.Body).Decode(&decoded); err != nil {
		return "", fmt.Errorf("serper: decode response: %w", err)
	}

	return formatResults(decoded), nil
}

// formatResults renders the knowledge graph, ranked organic results and
// related searches in a stable order.
func formatResults(data searchResponse) string {
	var lines []string

	if kg := data.KnowledgeGraph; kg != nil {
		lines = append(lines, "Knowledge Graph:")
		lines = append(lines, fmt.Sprintf("%s: %s", kg.Title, kg.Description))
		for _, key := range sortedKeys(kg.Attributes) {
			lines = append(lines, fmt.Sprintf("- %s: %s", key, kg.Attributes[key]))
		}
		lines = append(lines, "")
	}

	if len(data.Organic) > 0 {
		lines = append(lines, "Search Results:")
		for i, result := range data.Organic {
			lines = append(lines, "")
			lines = append(lines, fmt.Sprintf("%d. %s", i+1, strings.ToUpper(result.Title)))
			lines = append(lines, "   "+result.Snippet)
			if result.Rating > 0 {
				stars := int(result.Rating + 0.5)
				lines = append(lines, "   Rating: "+strings.Repeat("*", stars))
			}
			lines = append(lines, "   URL: "+result.Link)
		}
	}

	if len(data.RelatedSearches) > 0 {
		lines = append(lines, "")
		lines = append(lines, "Related Searches:")
		related := data.RelatedSearches
		if len(related) > domain.MaxRelatedSearches {
			related = related[:domain.MaxRelatedSearches]
		}
		for _, search := range related {
			lines = append(lines, "- "+search.Query)
		}
	}

	return strings.Join(lines, "\n")
}

func sortedKeys(attributes map[string]string) []string {
	keys := make([]string, 0, len(attributes))
	for key := range attributes {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

var _ ports.SearchClient = (*SerperClient)(nil)
