package history

import (
	"database/sql"
	"path/filepath"
	"sync"
	"time"

	_ "modernc.org/sqlite"

	"github.com/doeshing/smartai-go/internal/domain"
	"github.com/doeshing/smartai-go/internal/ports"
)

// SQLiteStore keeps the question/answer log in a SQLite database. It is an
// optional backend for large histories where LIKE-based search beats scanning
// a JSON array; the response cache stays file-backed either way.
type SQLiteStore struct {
	db   *sql.DB
	path string
	mu   sync.Mutex
}

// NewSQLiteStore creates (or opens) history.db under dir.
func NewSQLiteStore(dir string) (*SQLiteStore, error) {
	path := filepath.Join(dir, "history.db")
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, err
	}
	store := &SQLiteStore{db: db, path: path}
	if err := store.init(); err != nil {
		db.Close()
		return nil, err
	}
	return store, nil
}

func (s *SQLiteStore) init() error {
	_, err := s.db.Exec(`CREATE TABLE IF NOT EXISTS history (
		id INTEGER PRIMARY KEY AUTOINCREMENT,
		timestamp TEXT,
		question TEXT,
		answer TEXT
	);`)
	return err
}

// Append inserts a new entry.
func (s *SQLiteStore) Append(entry domain.HistoryEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`INSERT INTO history (timestamp, question, answer) VALUES (?, ?, ?)`,
		entry.Timestamp.Format(domain.TimestampFormat),
		entry.Question,
		entry.Answer,
	)
	return err
}

// Entries returns all entries in insertion order.
func (s *SQLiteStore) Entries() ([]domain.HistoryEntry, error) {
	return s.query(`SELECT timestamp, question, answer FROM history ORDER BY id`)
}

// Recent returns the last n entries in chronological order.
func (s *SQLiteStore) Recent(n int) ([]domain.HistoryEntry, error) {
	if n <= 0 {
		return s.Entries()
	}
	entries, err := s.query(
		`SELECT timestamp, question, answer FROM history ORDER BY id DESC LIMIT ?`, n)
	if err != nil {
		return nil, err
	}
	for i, j := 0, len(entries)-1; i < j; i, j = i+1, j-1 {
		entries[i], entries[j] = entries[j], entries[i]
	}
	return entries, nil
}

// Search filters by case-insensitive substring over question and answer.
func (s *SQLiteStore) Search(query string) ([]domain.HistoryEntry, error) {
	pattern := "%" + query + "%"
	return s.query(
		`SELECT timestamp, question, answer FROM history
		 WHERE question LIKE ? OR answer LIKE ? ORDER BY id`, pattern, pattern)
}

// Clear drops all entries.
func (s *SQLiteStore) Clear() error {
	s.mu.Lock()
	defer s.mu.Unlock()
	_, err := s.db.Exec(`DELETE FROM history`)
	return err
}

// Close releases the database handle.
func (s *SQLiteStore) Close() error {
	return s.db.Close()
}

func (s *SQLiteStore) query(stmt string, args ...interface{}) ([]domain.HistoryEntry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	rows, err := s.db.Query(stmt, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	var entries []domain.HistoryEntry
	for rows.Next() {
		var entry domain.HistoryEntry
		var ts string
		if err := rows.Scan(&ts, &entry.Question, &entry.Answer); err != nil {
			return nil, err
		}
		if t, err := time.Parse(domain.TimestampFormat, ts); err == nil {
			entry.Timestamp = t
		}
		entries = append(entries, entry)
	}
	return entries, rows.Err()
}

var _ ports.HistoryRepository = (*SQLiteStore)(nil)
