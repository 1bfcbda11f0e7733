// Package database provides the SQLite vocabulary store for wotd.
//
// A CSV dataset can be imported once with "wotdctl import" and the panels
// then read the table from the database instead of re-parsing the CSV on
// every start. DBService implements vocab.Source.
package database

import (
	"database/sql"
	"embed"
	"fmt"
	"sync"
	"time"

	"github.com/Mr-Dark-debug/wotd/internal/vocab"

	_ "github.com/mattn/go-sqlite3"
)

//go:embed schema.sql
var schemaFS embed.FS

// Store defines the interface for vocabulary persistence.
type Store interface {
	vocab.Source

	// ReplaceVocabulary swaps the whole table for entries in one
	// transaction and records the import.
	ReplaceVocabulary(source string, entries []vocab.Entry) (*Import, error)
	// Count returns the number of stored entries.
	Count() (int, error)
	// Lookup returns the positions and entries whose word or kana equals term.
	Lookup(term string) ([]Row, error)
	// Imports returns the most recent imports, newest first.
	Imports(limit int) ([]Import, error)

	// Close gracefully shuts down the database connection.
	Close() error
}

// Import records one dataset import.
type Import struct {
	ImportID   int64  `json:"import_id"`
	Source     string `json:"source"`
	RowCount   int    `json:"row_count"`
	ImportedAt int64  `json:"imported_at"` // Unix seconds
}

// Row is a stored entry together with its table position.
type Row struct {
	Position int         `json:"position"`
	Entry    vocab.Entry `json:"entry"`
}

// DBService implements Store using SQLite.
type DBService struct {
	db   *sql.DB
	mu   sync.RWMutex
	path string

	stmtInsertEntry  *sql.Stmt
	stmtInsertImport *sql.Stmt
}

// NewDBService opens (or creates) the database at path and initializes
// the schema. Use ":memory:" for tests.
func NewDBService(path string) (*DBService, error) {
	dsn := fmt.Sprintf("%s?_journal_mode=WAL&_synchronous=NORMAL&_foreign_keys=ON", path)

	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("opening database at %s: %w", path, err)
	}

	// One connection keeps ":memory:" databases alive between calls.
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)

	svc := &DBService{
		db:   db,
		path: path,
	}

	if err := svc.initSchema(); err != nil {
		db.Close()
		return nil, fmt.Errorf("initializing schema: %w", err)
	}

	if err := svc.prepareStatements(); err != nil {
		db.Close()
		return nil, fmt.Errorf("preparing statements: %w", err)
	}

	return svc, nil
}

func (s *DBService) initSchema() error {
	schema, err := schemaFS.ReadFile("schema.sql")
	if err != nil {
		return fmt.Errorf("reading embedded schema: %w", err)
	}

	if _, err := s.db.Exec(string(schema)); err != nil {
		return fmt.Errorf("executing schema: %w", err)
	}

	return nil
}

func (s *DBService) prepareStatements() error {
	var err error

	s.stmtInsertEntry, err = s.db.Prepare(`
		INSERT INTO vocabulary (position, word, kana, romaji, english, audio_ref, import_id)
		VALUES (?, ?, ?, ?, ?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertEntry: %w", err)
	}

	s.stmtInsertImport, err = s.db.Prepare(`
		INSERT INTO imports (source, row_count, imported_at) VALUES (?, ?, ?)
	`)
	if err != nil {
		return fmt.Errorf("preparing InsertImport: %w", err)
	}

	return nil
}

// Describe implements vocab.Source.
func (s *DBService) Describe() string { return s.path }

// Entries implements vocab.Source. Rows come back in position order.
func (s *DBService) Entries() ([]vocab.Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT word, kana, romaji, english, audio_ref
		FROM vocabulary
		ORDER BY position ASC
	`)
	if err != nil {
		return nil, fmt.Errorf("querying vocabulary: %w", err)
	}
	defer rows.Close()

	var entries []vocab.Entry
	for rows.Next() {
		var e vocab.Entry
		if err := rows.Scan(&e.Word, &e.Kana, &e.Romaji, &e.English, &e.AudioRef); err != nil {
			return nil, fmt.Errorf("scanning vocabulary row: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// ReplaceVocabulary deletes every stored entry and inserts entries at
// positions 0..len-1 within a single transaction.
func (s *DBService) ReplaceVocabulary(source string, entries []vocab.Entry) (*Import, error) {
	if len(entries) == 0 {
		return nil, fmt.Errorf("refusing to import an empty vocabulary from %s", source)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	tx, err := s.db.Begin()
	if err != nil {
		return nil, fmt.Errorf("beginning import transaction: %w", err)
	}
	defer tx.Rollback() // No-op if committed

	if _, err := tx.Exec(`DELETE FROM vocabulary`); err != nil {
		return nil, fmt.Errorf("clearing vocabulary: %w", err)
	}

	imp := &Import{
		Source:     source,
		RowCount:   len(entries),
		ImportedAt: time.Now().Unix(),
	}
	res, err := tx.Stmt(s.stmtInsertImport).Exec(imp.Source, imp.RowCount, imp.ImportedAt)
	if err != nil {
		return nil, fmt.Errorf("recording import of %s: %w", source, err)
	}
	if imp.ImportID, err = res.LastInsertId(); err != nil {
		return nil, fmt.Errorf("reading import id: %w", err)
	}

	stmt := tx.Stmt(s.stmtInsertEntry)
	for i, e := range entries {
		if _, err := stmt.Exec(i, e.Word, e.Kana, e.Romaji, e.English, e.AudioRef, imp.ImportID); err != nil {
			return nil, fmt.Errorf("inserting entry %d (%s): %w", i, e.Word, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("committing import transaction: %w", err)
	}
	return imp, nil
}

// Count returns the number of stored entries.
func (s *DBService) Count() (int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	var n int
	if err := s.db.QueryRow(`SELECT COUNT(*) FROM vocabulary`).Scan(&n); err != nil {
		return 0, fmt.Errorf("counting vocabulary: %w", err)
	}
	return n, nil
}

// Lookup returns stored entries whose word or kana equals term.
func (s *DBService) Lookup(term string) ([]Row, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	rows, err := s.db.Query(`
		SELECT position, word, kana, romaji, english, audio_ref
		FROM vocabulary
		WHERE word = ? OR kana = ?
		ORDER BY position ASC
	`, term, term)
	if err != nil {
		return nil, fmt.Errorf("looking up %q: %w", term, err)
	}
	defer rows.Close()

	var out []Row
	for rows.Next() {
		var r Row
		if err := rows.Scan(&r.Position, &r.Entry.Word, &r.Entry.Kana, &r.Entry.Romaji,
			&r.Entry.English, &r.Entry.AudioRef); err != nil {
			return nil, fmt.Errorf("scanning lookup row: %w", err)
		}
		out = append(out, r)
	}
	return out, rows.Err()
}

// Imports returns the most recent imports, newest first.
func (s *DBService) Imports(limit int) ([]Import, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.Query(`
		SELECT import_id, source, row_count, imported_at
		FROM imports
		ORDER BY import_id DESC
		LIMIT ?
	`, limit)
	if err != nil {
		return nil, fmt.Errorf("querying imports: %w", err)
	}
	defer rows.Close()

	var out []Import
	for rows.Next() {
		var imp Import
		if err := rows.Scan(&imp.ImportID, &imp.Source, &imp.RowCount, &imp.ImportedAt); err != nil {
			return nil, fmt.Errorf("scanning import row: %w", err)
		}
		out = append(out, imp)
	}
	return out, rows.Err()
}

// Close closes prepared statements and the connection pool.
func (s *DBService) Close() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, stmt := range []*sql.Stmt{s.stmtInsertEntry, s.stmtInsertImport} {
		if stmt != nil {
			stmt.Close()
		}
	}

	return s.db.Close()
}
