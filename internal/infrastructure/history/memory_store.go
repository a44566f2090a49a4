package history

import (
	"strings"
	"sync"
	"time"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// MemoryStore is the in-memory persistence backend, used by tests and
// anywhere disk writes are undesirable. Semantics match FileStore.
type MemoryStore struct {
	mu      sync.Mutex
	history []domain.HistoryEntry
	cache   map[string]domain.CacheEntry
}

// NewMemoryStore builds an empty store.
func NewMemoryStore() *MemoryStore {
	return &MemoryStore{cache: make(map[string]domain.CacheEntry)}
}

func (s *MemoryStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = append(s.history, entry)
	return nil
}

func (s *MemoryStore) Entries() ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := make([]domain.HistoryEntry, len(s.history))
	copy(out, s.history)
	return out, nil
}

func (s *MemoryStore) Recent(n int) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if n <= 0 || n > len(s.history) {
		n = len(s.history)
	}
	out := make([]domain.HistoryEntry, n)
	copy(out, s.history[len(s.history)-n:])
	return out, nil
}

func (s *MemoryStore) Search(query string) ([]domain.HistoryEntry, error) {
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

func (s *MemoryStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.history = nil
	return nil
}

func (s *MemoryStore) Cached(question string) (domain.CacheEntry, bool, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	entry, ok := s.cache[question]
	return entry, ok, nil
}

func (s *MemoryStore) CacheResponse(question, response string) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache[question] = domain.CacheEntry{
		Response:  response,
		Timestamp: time.Now().UTC(),
	}
	return nil
}

func (s *MemoryStore) ClearCache() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.cache = make(map[string]domain.CacheEntry)
	return nil
}

var _ ports.HistoryRepository = (*MemoryStore)(nil)
var _ ports.CacheRepository = (*MemoryStore)(nil)
