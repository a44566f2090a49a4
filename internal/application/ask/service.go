// Package ask orchestrates search, completion fallback and persistence for
// one question.
package ask

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// Service coordinates the answer pipeline end-to-end: cache check, search,
// primary completion, fallback completion, response assembly, persistence.
type Service struct {
	Search   ports.SearchClient
	Primary  ports.CompletionProvider
	Fallback ports.CompletionProvider
	History  ports.HistoryRepository
	Cache    ports.CacheRepository
	Logger   ports.Logger
}

// Run processes a single question. Only a search failure propagates to the
// caller; completion failures degrade the answer and persistence failures
// are logged and swallowed.
func (s *Service) Run(req domain.AskRequest) (domain.AskResponse, error) {
	if s.Search == nil || s.Primary == nil || s.Fallback == nil ||
		s.History == nil || s.Cache == nil || s.Logger == nil {
		return domain.AskResponse{}, errors.New("ask.Service dependencies not satisfied")
	}

	ctx := req.Context
	if ctx == nil {
		ctx = context.Background()
	}

	fields := map[string]interface{}{"query_id": uuid.NewString(), "quick": req.Quick}

	// Quick mode means "try cache first", nothing more: a miss falls
	// through to the full pipeline including completion enhancement.
	if req.Quick {
		if entry, ok, err := s.Cache.Cached(req.Question); err == nil && ok {
			s.Logger.Debug("cache hit", fields)
			return domain.AskResponse{
				Response: entry.Response,
				Source:   domain.SourceCache,
				CachedAt: entry.Timestamp,
			}, nil
		} else if err != nil {
			s.Logger.Warn("cache lookup failed", map[string]interface{}{"error": err.Error()})
		}
	}

	searchText, err := s.Search.Search(ctx, req.Question)
	if err != nil {
		return domain.AskResponse{}, fmt.Errorf("search: %w", err)
	}

	prompt := buildPrompt(req.Question, searchText, req.Detailed)

	aiResponse, modelUsed := s.generate(ctx, prompt, fields)

	response := assembleResponse(aiResponse, searchText, req.Question)

	source := domain.SourceSearch
	if modelUsed != "" {
		source = domain.Source(modelUsed)
	}

	s.persist(req.Question, response)

	return domain.AskResponse{
		Response:      response,
		Source:        source,
		SearchResults: searchText,
		ModelUsed:     modelUsed,
	}, nil
}

// generate tries the primary provider, then the fallback. Both failing is
// not an error; the caller degrades to search-derived output.
func (s *Service) generate(ctx context.Context, prompt string, fields map[string]interface{}) (string, string) {
	response, err := s.Primary.Generate(ctx, prompt)
	if err == nil {
		return response, s.Primary.Name()
	}
	s.Logger.Warn("primary completion failed, trying fallback", errFields(fields, err))

	response, err = s.Fallback.Generate(ctx, prompt)
	if err == nil {
		return response, s.Fallback.Name()
	}
	s.Logger.Warn("fallback completion failed, degrading to search results", errFields(fields, err))
	return "", ""
}

func (s *Service) persist(question, answer string) {
	if err := s.Cache.CacheResponse(question, answer); err != nil {
		s.Logger.Error("cache write failed", err, nil)
	}
	entry := domain.HistoryEntry{
		Timestamp: time.Now().UTC(),
		Question:  question,
		Answer:    answer,
	}
	if err := s.History.Append(entry); err != nil {
		s.Logger.Error("history append failed", err, nil)
	}
}

// buildPrompt combines the raw query and search text with a detail-level
// instruction branch.
func buildPrompt(question, searchText string, detailed bool) string {
	level := "concise"
	requirement := "- Keep it concise"
	if detailed {
		level = "detailed"
		requirement = "- Provide a detailed explanation with examples"
	}
	return fmt.Sprintf(`Based on the following search results and the user's query %q, please provide a %s answer:

Search Results:
%s

Additional requirements:
%s
- Include relevant facts and figures
- Cite sources when possible
- Focus on practical, actionable information`, question, level, searchText, requirement)
}

// assembleResponse uses the AI text verbatim when present; otherwise it
// derives a best-effort answer from the formatted search text.
func assembleResponse(aiResponse, searchText, question string) string {
	if aiResponse != "" {
		return aiResponse
	}

	lines := nonEmptyLines(searchText)
	if len(lines) == 0 {
		return "No results found for: " + question
	}

	main := findMainLine(lines, question)
	if main == "" {
		return "Based on the search results, here's what I found:\n\n" + lines[0]
	}

	response := main
	if support := findSupportLine(lines, main); support != "" {
		response += "\n\n" + support
	}
	return response
}

func nonEmptyLines(text string) []string {
	var lines []string
	for _, line := range strings.Split(text, "\n") {
		if trimmed := strings.TrimSpace(line); trimmed != "" {
			lines = append(lines, trimmed)
		}
	}
	return lines
}

// findMainLine picks the first line containing the query text, or failing
// that the first ranked result line that is not a URL.
func findMainLine(lines []string, question string) string {
	needle := strings.ToLower(question)
	for _, line := range lines {
		lower := strings.ToLower(line)
		if strings.Contains(lower, needle) {
			return line
		}
		if isResultLine(line) && !isURLLine(lower) {
			return line
		}
	}
	return ""
}

func findSupportLine(lines []string, main string) string {
	for _, line := range lines {
		if line == main || strings.Contains(main, line) {
			continue
		}
		if isURLLine(strings.ToLower(line)) {
			continue
		}
		return line
	}
	return ""
}

// isResultLine matches the "N. TITLE" shape emitted by the search formatter.
func isResultLine(line string) bool {
	dot := strings.Index(line, ".")
	if dot <= 0 || dot >= len(line)-1 {
		return false
	}
	for _, r := range line[:dot] {
		if r < '0' || r > '9' {
			return false
		}
	}
	return line[dot+1] == ' '
}

func isURLLine(lower string) bool {
	return strings.Contains(lower, "url:") ||
		strings.Contains(lower, "http://") ||
		strings.Contains(lower, "https://")
}

func errFields(fields map[string]interface{}, err error) map[string]interface{} {
	merged := make(map[string]interface{}, len(fields)+1)
	for k, v := range fields {
		merged[k] = v
	}
	merged["error"] = err.Error()
	return merged
}

var _ domain.AskService = (*Service)(nil)
