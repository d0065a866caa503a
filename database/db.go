package database

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"
)

// MemoryName selects an ephemeral in-memory database that lives as long as its handle stays open
const MemoryName = ":memory:"

// Options describes where a handle keeps its database
type Options struct {
	// Name is the logical database name, a path ending in .db, or MemoryName
	Name string
	// Dir holds named databases; defaults to the working directory
	Dir    string
	Logger *slog.Logger
}

// Handle owns the single connection to one logical database.
// The connection is opened and migrated on first use.
type Handle struct {
	name   string
	path   string
	logger *slog.Logger

	mu sync.Mutex
	db *sqlx.DB
}

// Open prepares a handle without touching the disk
func Open(opts Options) *Handle {
	logger := opts.Logger
	if logger == nil {
		logger = slog.Default()
	}
	return &Handle{
		name:   opts.Name,
		path:   resolvePath(opts.Name, opts.Dir),
		logger: logger,
	}
}

func resolvePath(name, dir string) string {
	if name == MemoryName {
		return MemoryName
	}
	if strings.HasSuffix(name, ".db") || strings.ContainsRune(name, filepath.Separator) {
		return name
	}
	return filepath.Join(dir, name+".db")
}

// Name returns the logical database name
func (h *Handle) Name() string {
	return h.name
}

// DB returns a ready connection, opening it and creating the schema if needed.
// A failed attempt leaves the handle closed so the next call retries.
func (h *Handle) DB() (*sqlx.DB, error) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db != nil {
		return h.db, nil
	}

	db, err := connect(h.path)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrConnection, err)
	}

	if err := migrate(db); err != nil {
		db.Close()
		return nil, fmt.Errorf("%w: migration failed: %w", ErrConnection, err)
	}

	h.logger.Debug("database opened", "name", h.name, "path", h.path)
	h.db = db
	return db, nil
}

func connect(path string) (*sqlx.DB, error) {
	dsn := path + "?_foreign_keys=on"
	if path != MemoryName {
		if err := os.MkdirAll(filepath.Dir(path), 0755); err != nil {
			return nil, fmt.Errorf("failed to create database directory: %w", err)
		}
		dsn += "&_journal_mode=WAL&_busy_timeout=5000"
	}

	db, err := sqlx.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One connection: a single writer, and the only way an in-memory
	// database is seen by every query
	db.SetMaxOpenConns(1)
	db.SetMaxIdleConns(1)
	db.SetConnMaxLifetime(0)
	db.SetConnMaxIdleTime(0)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to connect to database: %w", err)
	}

	return db, nil
}

func migrate(db *sqlx.DB) error {
	queries := []string{
		`CREATE TABLE IF NOT EXISTS contacts (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			nativeID TEXT UNIQUE NOT NULL,
			firstName TEXT NOT NULL,
			lastName TEXT NOT NULL,
			category TEXT CHECK(category IN ('ALL', 'FRIEND', 'WORK', 'FAMILY')) NOT NULL DEFAULT 'ALL',
			createdAt TEXT NOT NULL,
			updatedAt TEXT NOT NULL
		)`,

		`CREATE TABLE IF NOT EXISTS notes (
			id INTEGER PRIMARY KEY AUTOINCREMENT,
			userId INTEGER NOT NULL,
			category TEXT CHECK(category IN ('MUSIC', 'PERSONAL', 'GIFT', 'HOBBIES', 'NEWS', 'OTHERS', 'WORK')) NOT NULL,
			content TEXT NOT NULL,
			createdAt TEXT NOT NULL,
			updatedAt TEXT NOT NULL,
			FOREIGN KEY (userId) REFERENCES contacts(id) ON DELETE CASCADE
		)`,

		`CREATE INDEX IF NOT EXISTS idx_notes_user_created ON notes(userId, createdAt)`,
	}

	for _, query := range queries {
		if _, err := db.Exec(query); err != nil {
			return err
		}
	}

	return nil
}

// Close releases the connection. The next DB call opens a fresh one.
// An in-memory database is discarded.
func (h *Handle) Close() error {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.db == nil {
		return nil
	}

	err := h.db.Close()
	h.db = nil
	h.logger.Debug("database closed", "name", h.name)
	return err
}

var clearableTables = map[string]bool{
	"contacts": true,
	"notes":    true,
}

// Clear deletes every row of a table, keeping the schema. Test setup only.
func (h *Handle) Clear(table string) error {
	if !clearableTables[table] {
		return fmt.Errorf("%w: %q", ErrUnknownTable, table)
	}

	db, err := h.DB()
	if err != nil {
		return err
	}

	if _, err := db.Exec("DELETE FROM " + table); err != nil {
		return fmt.Errorf("failed to clear %s: %w", table, err)
	}
	return nil
}

// Pool hands out one shared handle per database name
type Pool struct {
	dir    string
	logger *slog.Logger

	mu      sync.Mutex
	handles map[string]*Handle
}

func NewPool(dir string, logger *slog.Logger) *Pool {
	return &Pool{
		dir:     dir,
		logger:  logger,
		handles: make(map[string]*Handle),
	}
}

// Get returns the handle for name, creating it on first request
func (p *Pool) Get(name string) *Handle {
	p.mu.Lock()
	defer p.mu.Unlock()

	if h, ok := p.handles[name]; ok {
		return h
	}

	h := Open(Options{Name: name, Dir: p.dir, Logger: p.logger})
	p.handles[name] = h
	return h
}

// Close closes every handle the pool created. Handles stay usable and reopen on demand.
func (p *Pool) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()

	var errs []error
	for _, h := range p.handles {
		if err := h.Close(); err != nil {
			errs = append(errs, fmt.Errorf("close %s: %w", h.name, err))
		}
	}
	return errors.Join(errs...)
}
