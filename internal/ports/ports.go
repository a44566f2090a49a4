// Package ports defines the interfaces (ports) for the hexagonal architecture.
//
// This package establishes the contract between the application core and external
// adapters (infrastructure). Following the Ports and Adapters (Hexagonal) pattern,
// these interfaces allow the application to remain independent of specific
// implementations like HTTP clients, file stores, or CLI frameworks.
package ports

import (
	"context"

	"github.com/doeshing/smartai-go/internal/domain"
)

// ConfigProvider loads the latest configuration from the environment and the
// .env file under the data directory.
type ConfigProvider interface {
	Load(context.Context) (domain.Config, error)
}

// SearchClient performs one web search and returns a formatted text block.
// A non-success status surfaces as *domain.SearchError.
type SearchClient interface {
	Search(ctx context.Context, query string) (string, error)
}

// CompletionProvider wraps one hosted language model. Failures surface as
// *domain.CompletionError with a closed kind set; callers never inspect
// transport details themselves.
type CompletionProvider interface {
	Name() string
	Generate(ctx context.Context, prompt string) (string, error)
}

// HistoryRepository owns the ordered question/answer log.
type HistoryRepository interface {
	Append(entry domain.HistoryEntry) error
	Entries() ([]domain.HistoryEntry, error)
	Recent(n int) ([]domain.HistoryEntry, error)
	Search(query string) ([]domain.HistoryEntry, error)
	Clear() error
}

// CacheRepository owns the question-to-response cache. Keys are the exact
// literal question text; entries never expire and the mapping only grows.
type CacheRepository interface {
	Cached(question string) (domain.CacheEntry, bool, error)
	CacheResponse(question, response string) error
	ClearCache() error
}

// Logger provides structured logging abstraction for the application layer.
type Logger interface {
	Debug(msg string, fields map[string]interface{})
	Info(msg string, fields map[string]interface{})
	Warn(msg string, fields map[string]interface{})
	Error(msg string, err error, fields map[string]interface{})
}
