// Package history persists the question/answer log and the response cache.
package history

import (
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

const (
	historyFileName = "history.json"
	cacheFileName   = "cache.json"
)

// FileStore owns two JSON documents: an ordered history array and a
// question-to-response cache stored as [question, entry] pairs. Both are
// loaded fully at construction and rewritten in full on every mutation.
// The mutex covers in-process callers only; concurrent CLI invocations
// racing on the files are out of scope.
type FileStore struct {
	historyPath string
	cachePath   string

	mu      sync.Mutex
	history []domain.HistoryEntry
	cache   map[string]domain.CacheEntry
	// order preserves cache key insertion order so rewrites are stable.
	order []string
}

// NewFileStore loads both documents from dir, creating it when absent.
// Unreadable or malformed documents start empty rather than failing the CLI.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, domain.DirectoryPermissions); err != nil {
		return nil, err
	}
	s := &FileStore{
		historyPath: filepath.Join(dir, historyFileName),
		cachePath:   filepath.Join(dir, cacheFileName),
		cache:       make(map[string]domain.CacheEntry),
	}
	s.loadHistory()
	s.loadCache()
	return s, nil
}

func (s *FileStore) loadHistory() {
	data, err := os.ReadFile(s.historyPath)
	if err != nil {
		return
	}
	var entries []domain.HistoryEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		return
	}
	s.history = entries
}

func (s *FileStore) loadCache() {
	data, err := os.ReadFile(s.cachePath)
	if err != nil {
		return
	}
	var pairs [][2]json.RawMessage
	if err := json.Unmarshal(data, &pairs); err != nil {
		return
	}
	for _, pair := range pairs {
		var question string
		var entry domain.CacheEntry
		if err := json.Unmarshal(pair[0], &question); err != nil {
			continue
		}
		if err := json.Unmarshal(pair[1], &entry); err != nil {
			continue
		}
		if _, exists := s.cache[question]; !exists {
			s.order = append(s.order, question)
		}
		s.cache[question] = entry
	}
}

// Append implements ports.HistoryRepository.
func (s *FileStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
	return s.saveHistory()
}

// Entries returns the full ordered history.
func (s *FileStore) Entries() ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out, nil
}

// Recent returns the last n entries in chronological order.
func (s *FileStore) Recent(n int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]domain.HistoryEntry, n)
	copy(out, s.history[len(s.history)-n:])
	return out, nil
}

// Search filters entries by case-insensitive substring over question and answer.
func (s *FileStore) Search(query string) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	needle := strings.ToLower(query)
	var out []domain.HistoryEntry
	for _, entry := range s.history {
		if strings.Contains(strings.ToLower(entry.Question), needle) ||
			strings.Contains(strings.ToLower(entry.Answer), needle) {
			out = append(out, entry)
		}
	}
	return out, nil
}

// Clear removes all history entries.
func (s *FileStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return s.saveHistory()
}

// Cached implements ports.CacheRepository. Keys are the exact literal
// question text; no normalization, no expiry.
func (s *FileStore) Cached(question string) (domain.CacheEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[question]
	return entry, ok, nil
}

// CacheResponse stores or overwrites the entry for question.
func (s *FileStore) CacheResponse(question, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, exists := s.cache[question]; !exists {
		s.order = append(s.order, question)
	}
	s.cache[question] = domain.CacheEntry{
		Response:  response,
		Timestamp: time.Now().UTC(),
	}
	return s.saveCache()
}

// ClearCache removes all cached responses.
func (s *FileStore) ClearCache() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]domain.CacheEntry)
	s.order = nil
	return s.saveCache()
}

func (s *FileStore) saveHistory() error {
	entries := s.history
	if entries == nil {
		entries = []domain.HistoryEntry{}
	}
	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.historyPath, data, domain.DataFilePermissions)
}

func (s *FileStore) saveCache() error {
	pairs := make([][2]interface{}, 0, len(s.order))
	for _, question := range s.order {
		pairs = append(pairs, [2]interface{}{question, s.cache[question]})
	}
	data, err := json.MarshalIndent(pairs, "", "  ")
	if err != nil {
		return err
	}
	return os.WriteFile(s.cachePath, data, domain.DataFilePermissions)
}

// HistoryPath returns the backing history file path.
func (s *FileStore) HistoryPath() string {
	return s.historyPath
}

// CachePath returns the backing cache file path.
func (s *FileStore) CachePath() string {
	return s.cachePath
}

var _ ports.HistoryRepository = (*FileStore)(nil)
var _ ports.CacheRepository = (*FileStore)(nil)
