package ask

import (
	"context"
	"errors"
	"strings"
	"testing"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/infrastructure/history"
	"github.com/doeshing/smartai-go/internal/pkg/logger"
)

const searchText = `Knowledge Graph:
Artificial intelligence: Intelligence of machines

Search Results:

1. WHAT IS AI? ARTIFICIAL INTELLIGENCE EXPLAINED
   Artificial intelligence is the simulation of human intelligence.
   URL: https://example.com/ai

2. AI OVERVIEW
   A broad field of computer science.
   URL: https://example.com/overview`

func newService(search *stubSearch, primary, fallback *stubProvider) (*Service, *history.MemoryStore) {
	store := history.NewMemoryStore()
	return &Service{
		Search:   search,
		Primary:  primary,
		Fallback: fallback,
		History:  store,
		Cache:    store,
		Logger:   logger.New(false),
	}, store
}

func TestRunQuickModeCacheHitMakesNoNetworkCalls(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", response: "unused"}
	fallback := &stubProvider{name: "llama", response: "unused"}
	svc, store := newService(search, primary, fallback)

	if err := store.CacheResponse("What is AI?", "cached answer"); err != nil {
		t.Fatal(err)
	}
	cached, _, _ := store.Cached("What is AI?")

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?", Quick: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Source != domain.SourceCache {
		t.Errorf("Source = %s, want cache", resp.Source)
	}
	if resp.Response != "cached answer" {
		t.Errorf("Response = %q", resp.Response)
	}
	if !resp.CachedAt.Equal(cached.Timestamp) {
		t.Errorf("CachedAt = %v, want stored timestamp %v", resp.CachedAt, cached.Timestamp)
	}
	if search.calls != 0 || primary.calls != 0 || fallback.calls != 0 {
		t.Errorf("network calls made on cache hit: search=%d primary=%d fallback=%d",
			search.calls, primary.calls, fallback.calls)
	}
}

func TestRunQuickModeCacheMissFallsThrough(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", response: "AI stands for Artificial Intelligence."}
	svc, _ := newService(search, primary, &stubProvider{name: "llama"})

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?", Quick: true})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if search.calls != 1 || primary.calls != 1 {
		t.Errorf("expected full pipeline on cache miss: search=%d primary=%d", search.calls, primary.calls)
	}
	if resp.Source != domain.SourceOpenAI {
		t.Errorf("Source = %s, want openai", resp.Source)
	}
}

func TestRunPrimarySuccessSkipsFallback(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", response: "AI stands for Artificial Intelligence."}
	fallback := &stubProvider{name: "llama", response: "should not be used"}
	svc, store := newService(search, primary, fallback)

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Response != "AI stands for Artificial Intelligence." {
		t.Errorf("Response = %q", resp.Response)
	}
	if resp.Source != domain.SourceOpenAI || resp.ModelUsed != "openai" {
		t.Errorf("Source = %s, ModelUsed = %s", resp.Source, resp.ModelUsed)
	}
	if fallback.calls != 0 {
		t.Errorf("fallback invoked %d times despite primary success", fallback.calls)
	}

	// Exactly one cache entry and one history entry were created.
	if entry, ok, _ := store.Cached("What is AI?"); !ok || entry.Response != resp.Response {
		t.Errorf("cache entry = %+v, %v", entry, ok)
	}
	entries, _ := store.Entries()
	if len(entries) != 1 || entries[0].Question != "What is AI?" || entries[0].Answer != resp.Response {
		t.Errorf("history entries = %+v", entries)
	}
}

func TestRunPrimaryFailureUsesFallbackVerbatim(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", err: &domain.CompletionError{
		Provider: "openai", Kind: domain.CompletionAuth, Status: 401, Message: "bad key",
	}}
	fallback := &stubProvider{name: "llama", response: "AI is a field of computer science."}
	svc, _ := newService(search, primary, fallback)

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Response != "AI is a field of computer science." {
		t.Errorf("Response = %q, want fallback text verbatim", resp.Response)
	}
	if resp.Source != domain.SourceLlama || resp.ModelUsed != "llama" {
		t.Errorf("Source = %s, ModelUsed = %s", resp.Source, resp.ModelUsed)
	}
}

func TestRunBothCompletionsFailDerivesFromSearch(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", err: &domain.CompletionError{Kind: domain.CompletionRateLimited}}
	fallback := &stubProvider{name: "llama", err: &domain.CompletionError{Kind: domain.CompletionNetwork}}
	svc, _ := newService(search, primary, fallback)

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?"})
	if err != nil {
		t.Fatalf("Run() error = %v", err)
	}
	if resp.Source != domain.SourceSearch {
		t.Errorf("Source = %s, want search", resp.Source)
	}
	if resp.Response == "" {
		t.Fatal("degraded response must not be empty")
	}
	if !strings.HasPrefix(resp.Response, "1. WHAT IS AI?") {
		t.Errorf("Response should start with first matching line, got %q", resp.Response)
	}
	if strings.Contains(resp.Response, "{") || strings.Contains(resp.Response, "URL:") {
		t.Errorf("degraded response leaked raw data: %q", resp.Response)
	}
}

func TestRunSearchFailureIsFatal(t *testing.T) {
	search := &stubSearch{err: &domain.SearchError{Status: 503}}
	svc, store := newService(search, &stubProvider{name: "openai"}, &stubProvider{name: "llama"})

	_, err := svc.Run(domain.AskRequest{Question: "What is AI?"})
	if err == nil {
		t.Fatal("expected search failure to propagate")
	}
	entries, _ := store.Entries()
	if len(entries) != 0 {
		t.Errorf("no history should be written on fatal failure, got %+v", entries)
	}
}

func TestRunPersistenceFailureIsSwallowed(t *testing.T) {
	search := &stubSearch{text: searchText}
	primary := &stubProvider{name: "openai", response: "answer"}
	svc, _ := newService(search, primary, &stubProvider{name: "llama"})
	svc.History = failingHistory{}
	svc.Cache = failingCache{}

	resp, err := svc.Run(domain.AskRequest{Question: "What is AI?"})
	if err != nil {
		t.Fatalf("Run() error = %v, persistence failures must not surface", err)
	}
	if resp.Response != "answer" {
		t.Errorf("Response = %q", resp.Response)
	}
}

func TestBuildPromptDetailBranch(t *testing.T) {
	concise := buildPrompt("q", "results", false)
	detailed := buildPrompt("q", "results", true)
	if !strings.Contains(concise, "concise answer") || !strings.Contains(concise, "- Keep it concise") {
		t.Errorf("concise prompt = %q", concise)
	}
	if !strings.Contains(detailed, "detailed answer") || !strings.Contains(detailed, "detailed explanation with examples") {
		t.Errorf("detailed prompt = %q", detailed)
	}
}

func TestAssembleResponseNoMatchingLine(t *testing.T) {
	text := "Totally unrelated line\nAnother line"
	got := assembleResponse("", text, "quantum gravity")
	want := "Based on the search results, here's what I found:\n\nTotally unrelated line"
	if got != want {
		t.Errorf("assembleResponse() = %q, want %q", got, want)
	}
}

type stubSearch struct {
	text  string
	err   error
	calls int
}

func (s *stubSearch) Search(context.Context, string) (string, error) {
	s.calls++
	return s.text, s.err
}

type stubProvider struct {
	name     string
	response string
	err      error
	calls    int
}

func (p *stubProvider) Name() string { return p.name }

func (p *stubProvider) Generate(context.Context, string) (string, error) {
	p.calls++
	return p.response, p.err
}

type failingHistory struct{}

func (failingHistory) Append(domain.HistoryEntry) error             { return errFailed }
func (failingHistory) Entries() ([]domain.HistoryEntry, error)      { return nil, errFailed }
func (failingHistory) Recent(int) ([]domain.HistoryEntry, error)    { return nil, errFailed }
func (failingHistory) Search(string) ([]domain.HistoryEntry, error) { return nil, errFailed }
func (failingHistory) Clear() error                                 { return errFailed }

type failingCache struct{}

func (failingCache) Cached(string) (domain.CacheEntry, bool, error) {
	return domain.CacheEntry{}, false, errFailed
}
func (failingCache) CacheResponse(string, string) error { return errFailed }
func (failingCache) ClearCache() error                  { return errFailed }

var errFailed = errors.New("store unavailable")
