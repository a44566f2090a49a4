// Package suggest generates prompt improvements and follow-up hints.
package suggest

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Service asks the completion providers for query enhancements. Every failure
// degrades to a safe default; suggestions are never load-bearing.
type Service struct {
	Primary  ports.CompletionProvider
	Fallback ports.CompletionProvider
	Logger   ports.Logger
}

// EnhancePrompt asks the primary provider to improve the query. On any
// failure the original query is returned unchanged.
func (s *Service) EnhancePrompt(ctx context.Context, query string) string {
	improved, err := s.Primary.Generate(ctx,
		"Enhance this CLI command or query for better results. Reply with the improved query only: "+query)
	if err != nil {
		s.Logger.Debug("prompt enhancement failed", map[string]interface{}{"error": err.Error()})
		return query
	}
	improved = strings.TrimSpace(improved)
	if improved == "" {
		return query
	}
	return improved
}

// Suggestions asks the fallback provider for structured follow-up hints.
func (s *Service) Suggestions(ctx context.Context, query string) domain.Suggestions {
	raw, err := s.Fallback.Generate(ctx, suggestionsPrompt(query))
	if err != nil {
		s.Logger.Debug("suggestions generation failed", map[string]interface{}{"error": err.Error()})
		return defaultSuggestions(query)
	}

	parsed, err := parseSuggestions(raw)
	if err != nil {
		s.Logger.Debug("suggestions parse failed", map[string]interface{}{"error": err.Error()})
		return defaultSuggestions(query)
	}
	return fillDefaults(parsed, query)
}

func suggestionsPrompt(query string) string {
	return fmt.Sprintf(`Given the CLI command or query %q, suggest:
1. Three related commands or questions
2. Three power options or flags to enhance the command
3. Three different approaches to achieve the same goal
Format the response as JSON with keys: relatedQuestions, powerOptions, approaches`, query)
}

// parseSuggestions is strict: malformed JSON is an error, and the caller
// applies the default-value policy instead of guessing at partial content.
func parseSuggestions(text string) (domain.Suggestions, error) {
	text = stripCodeFence(text)
	var parsed domain.Suggestions
	if err := json.Unmarshal([]byte(text), &parsed); err != nil {
		return domain.Suggestions{}, fmt.Errorf("parse suggestions: %w", err)
	}
	return parsed, nil
}

// fillDefaults tops up any key the model omitted.
func fillDefaults(parsed domain.Suggestions, query string) domain.Suggestions {
	defaults := defaultSuggestions(query)
	if len(parsed.RelatedQuestions) == 0 {
		parsed.RelatedQuestions = defaults.RelatedQuestions
	}
	if len(parsed.PowerOptions) == 0 {
		parsed.PowerOptions = defaults.PowerOptions
	}
	if len(parsed.Approaches) == 0 {
		parsed.Approaches = defaults.Approaches
	}
	return parsed
}

func defaultSuggestions(query string) domain.Suggestions {
	return domain.Suggestions{
		RelatedQuestions: []string{
			"Tell me more about " + query,
			fmt.Sprintf("What are the latest developments in %s?", query),
			fmt.Sprintf("What are the historical aspects of %s?", query),
		},
		PowerOptions: []string{
			"Use --detailed for comprehensive analysis",
			"Try --quick for faster responses",
		},
		Approaches: []string{
			"Break down the question into smaller parts",
			"Specify a particular aspect to focus on",
		},
	}
}

// stripCodeFence unwraps a ```json fenced block when the model adds one.
func stripCodeFence(text string) string {
	text = strings.TrimSpace(text)
	if !strings.HasPrefix(text, "```") {
		return text
	}
	text = strings.TrimPrefix(text, "```json")
	text = strings.TrimPrefix(text, "```")
	if idx := strings.LastIndex(text, "```"); idx >= 0 {
		text = text[:idx]
	}
	return strings.TrimSpace(text)
}
