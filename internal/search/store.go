package search

import (
	"database/sql"
	"fmt"
	"sync"

	_ "github.com/mattn/go-sqlite3"

	"sceneforge/internal/logging"
)

// Store persists documentation chunks in a sqlite database.
type Store struct {
	db     *sql.DB
	dbPath string
	mu     sync.RWMutex
}

// NewStore creates or opens the chunk database at dbPath.
func NewStore(dbPath string) (*Store, error) {
	db, err := sql.Open("sqlite3", dbPath+"?_journal_mode=WAL&_busy_timeout=5000")
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	// sqlite handles one writer at a time; a single connection avoids
	// SQLITE_BUSY churn under concurrent indexing.
	db.SetMaxOpenConns(1)

	s := &Store{db: db, dbPath: dbPath}
	if err := s.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to initialize schema: %w", err)
	}
	return s, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

// Path returns the database file path.
func (s *Store) Path() string {
	return s.dbPath
}

func (s *Store) initSchema() error {
	schema := `
	CREATE TABLE IF NOT EXISTS chunks (
		id TEXT PRIMARY KEY,
		path TEXT NOT NULL,
		heading TEXT,
		content TEXT NOT NULL,
		tokens INTEGER NOT NULL,
		indexed_at DATETIME NOT NULL
	);
	CREATE INDEX IF NOT EXISTS idx_chunks_path ON chunks(path);
	`
	_, err := s.db.Exec(schema)
	return err
}

// ReplaceFile swaps the stored chunks for one file inside a transaction,
// so a reindex never leaves a file half-present.
func (s *Store) ReplaceFile(path string, chunks []Chunk) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return fmt.Errorf("failed to begin transaction: %w", err)
	}
	defer tx.Rollback()

	if _, err := tx.Exec(`DELETE FROM chunks WHERE path = ?`, path); err != nil {
		return fmt.Errorf("failed to clear chunks for %s: %w", path, err)
	}
	for _, c := range chunks {
		_, err := tx.Exec(
			`INSERT INTO chunks (id, path, heading, content, tokens, indexed_at)
			 VALUES (?, ?, ?, ?, ?, datetime('now'))`,
			c.ID, c.Path, c.Heading, c.Content, c.Tokens)
		if err != nil {
			return fmt.Errorf("failed to insert chunk: %w", err)
		}
	}
	if err := tx.Commit(); err != nil {
		return fmt.Errorf("failed to commit: %w", err)
	}
	logging.Store("replaced %d chunks for %s", len(chunks), path)
	return nil
}

// AllChunks returns every stored chunk. The scorer ranks in memory, which
// stays cheap at documentation scale.
func (s *Store) AllChunks() ([]Chunk, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`SELECT id, path, heading, content, tokens FROM chunks`)
	if err != nil {
		return nil, fmt.Errorf("failed to query chunks: %w", err)
	}
	defer rows.Close()

	var chunks []Chunk
	for rows.Next() {
		var c Chunk
		if err := rows.Scan(&c.ID, &c.Path, &c.Heading, &c.Content, &c.Tokens); err != nil {
			return nil, fmt.Errorf("failed to scan chunk: %w", err)
		}
		chunks = append(chunks, c)
	}
	return chunks, rows.Err()
}

// Stats reports the indexed file and chunk counts.
func (s *Store) Stats() (files, chunks int, err error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	row := s.db.QueryRow(`SELECT COUNT(DISTINCT path), COUNT(*) FROM chunks`)
	if err := row.Scan(&files, &chunks); err != nil {
		return 0, 0, fmt.Errorf("failed to read stats: %w", err)
	}
	return files, chunks, nil
}
