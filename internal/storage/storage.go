// Package storage provides the SQLite-backed store for money transactions
// and the grade-module document.
package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"sync"
	"time"

	_ "modernc.org/sqlite"
)

// Transaction is one money-tracker record.
type Transaction struct {
	ID      int64
	Title   string
	Amount  float64
	Details string
	Date    time.Time
}

// Grade is a single assessed piece of work within a module.
type Grade struct {
	Name       string  `json:"name"`
	Percentage float64 `json:"percentage"`
	Weight     float64 `json:"weight"`
}

// Module is a named collection of grades.
type Module struct {
	Name   string  `json:"name"`
	Grades []Grade `json:"grades"`
}

// Store owns the database handle. All access is serialized through one
// mutex: queued UI tasks must never race on the connection.
type Store struct {
	mu sync.Mutex
	db *sql.DB
}

// Open opens (creating if needed) the SQLite database at path. Use
// ":memory:" for tests.
func Open(path string) (*Store, error) {
	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database %s: %w", path, err)
	}
	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("ping database %s: %w", path, err)
	}
	return &Store{db: db}, nil
}

// Close releases the database handle.
func (s *Store) Close() error {
	return s.db.Close()
}

// Migrate applies the schema. It is idempotent and runs once at startup;
// a failure here is fatal to the application.
func (s *Store) Migrate() error {
	s.mu.Lock()
	defer s.mu.Unlock()

	stmts := []string{
		`CREATE TABLE IF NOT EXISTS transactions (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			title TEXT NOT NULL,
			amount REAL NOT NULL,
			details TEXT NOT NULL DEFAULT '',
			date TEXT NOT NULL
		)`,
		`CREATE INDEX IF NOT EXISTS idx_transactions_date ON transactions (date)`,
		`CREATE TABLE IF NOT EXISTS documents (
			name TEXT PRIMARY KEY,
			body TEXT NOT NULL
		)`,
		`CREATE TABLE IF NOT EXISTS todos (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			description TEXT NOT NULL
		)`,
	}
	for _, stmt := range stmts {
		if _, err := s.db.Exec(stmt); err != nil {
			return fmt.Errorf("apply migration: %w", err)
		}
	}
	return nil
}

// Dates are stored as RFC 3339 UTC strings so lexicographic order matches
// chronological order.
const dateFormat = time.RFC3339

// Transactions returns every transaction, newest first.
func (s *Store) Transactions() ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, title, amount, details, date FROM transactions ORDER BY date DESC`)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// QueryTransactions returns transactions whose title contains keyword and
// whose amount lies in [min, max], newest first, windowed by limit/offset.
func (s *Store) QueryTransactions(keyword string, min, max float64, limit, offset int) ([]Transaction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`
		SELECT id, title, amount, details, date
		FROM transactions
		WHERE title LIKE '%' || ? || '%' AND amount >= ? AND amount <= ?
		ORDER BY date DESC
		LIMIT ? OFFSET ?`,
		keyword, min, max, limit, offset)
	if err != nil {
		return nil, fmt.Errorf("query transactions: %w", err)
	}
	defer rows.Close()
	return scanTransactions(rows)
}

// CountMatching returns how many transactions match the filter.
func (s *Store) CountMatching(keyword string, min, max float64) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var count int
	err := s.db.QueryRow(`
		SELECT COUNT(*)
		FROM transactions
		WHERE title LIKE '%' || ? || '%' AND amount >= ? AND amount <= ?`,
		keyword, min, max).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count transactions: %w", err)
	}
	return count, nil
}

// CountListLines returns the number of rendered list lines the filter
// produces: one per matching transaction plus one per distinct calendar day
// (the date headings). The money tracker uses this for page math.
func (s *Store) CountListLines(keyword string, min, max float64) (int, error) {
	count, err := s.CountMatching(keyword, min, max)
	if err != nil {
		return 0, err
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	var days int
	err = s.db.QueryRow(`
		SELECT COUNT(DISTINCT substr(date, 1, 10))
		FROM transactions
		WHERE title LIKE '%' || ? || '%' AND amount >= ? AND amount <= ?`,
		keyword, min, max).Scan(&days)
	if err != nil {
		return 0, fmt.Errorf("count transaction days: %w", err)
	}
	return count + days, nil
}

// AddTransaction inserts a new transaction.
func (s *Store) AddTransaction(t Transaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	_, err := s.db.Exec(`INSERT INTO transactions (title, amount, details, date) VALUES (?, ?, ?, ?)`,
		t.Title, t.Amount, t.Details, t.Date.UTC().Format(dateFormat))
	if err != nil {
		return fmt.Errorf("insert transaction: %w", err)
	}
	return nil
}

func scanTransactions(rows *sql.Rows) ([]Transaction, error) {
	var out []Transaction
	for rows.Next() {
		var t Transaction
		var date string
		if err := rows.Scan(&t.ID, &t.Title, &t.Amount, &t.Details, &date); err != nil {
			return nil, fmt.Errorf("scan transaction: %w", err)
		}
		parsed, err := time.Parse(dateFormat, date)
		if err != nil {
			// malformed row: keep the record, zero the date
			parsed = time.Time{}
		}
		t.Date = parsed
		out = append(out, t)
	}
	return out, rows.Err()
}

// Todo is one entry on the dashboard todo list.
type Todo struct {
	ID          int64
	Description string
}

// Todos returns every todo in insertion order.
func (s *Store) Todos() ([]Todo, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	rows, err := s.db.Query(`SELECT id, description FROM todos ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("query todos: %w", err)
	}
	defer rows.Close()

	var out []Todo
	for rows.Next() {
		var t Todo
		if err := rows.Scan(&t.ID, &t.Description); err != nil {
			return nil, fmt.Errorf("scan todo: %w", err)
		}
		out = append(out, t)
	}
	return out, rows.Err()
}

// AddTodo appends a todo to the list.
func (s *Store) AddTodo(description string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, err := s.db.Exec(`INSERT INTO todos (description) VALUES (?)`, description); err != nil {
		return fmt.Errorf("insert todo: %w", err)
	}
	return nil
}

const modulesDoc = "grades"

// Modules loads the grade-module document. A missing or malformed document
// yields an empty list, not an error.
func (s *Store) Modules() ([]Module, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var body string
	err := s.db.QueryRow(`SELECT body FROM documents WHERE name = ?`, modulesDoc).Scan(&body)
	if err == sql.ErrNoRows {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("load modules: %w", err)
	}

	var mods []Module
	if err := json.Unmarshal([]byte(body), &mods); err != nil {
		return nil, nil
	}
	return mods, nil
}

// SaveModules replaces the grade-module document with the given list.
func (s *Store) SaveModules(mods []Module) error {
	body, err := json.Marshal(mods)
	if err != nil {
		return fmt.Errorf("serialize modules: %w", err)
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	_, err = s.db.Exec(`
		INSERT INTO documents (name, body) VALUES (?, ?)
		ON CONFLICT (name) DO UPDATE SET body = excluded.body`,
		modulesDoc, string(body))
	if err != nil {
		return fmt.Errorf("save modules: %w", err)
	}
	return nil
}
