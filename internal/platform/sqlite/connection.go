// Package sqlite provides the relational store of the ledger.
package sqlite

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	_ "github.com/mattn/go-sqlite3" // SQLite driver
)

const maxOpenConns = 8

// Connection manages a SQLite database connection pool.
type Connection struct {
	db     *sql.DB
	dbPath string
	logger *slog.Logger
}

// Open opens the database at dbPath, creating its directory if needed.
//
// Every transaction begins with BEGIN IMMEDIATE, so writers are serialized
// and a transaction that reads a row before updating it cannot lose an
// update. Waiting writers block for up to the busy timeout.
func Open(dbPath string, logger *slog.Logger) (*Connection, error) {
	dbDir := filepath.Dir(dbPath)
	if err := os.MkdirAll(dbDir, 0755); err != nil {
		return nil, fmt.Errorf("failed to create database directory: %w", err)
	}

	connStr := fmt.Sprintf("file:%s?_foreign_keys=on&_journal_mode=WAL&_busy_timeout=10000&_txlock=immediate", dbPath)
	db, err := sql.Open("sqlite3", connStr)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	db.SetMaxOpenConns(maxOpenConns)

	if err := db.Ping(); err != nil {
		db.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return &Connection{
		db:     db,
		dbPath: dbPath,
		logger: logger,
	}, nil
}

// Close closes the database connection.
func (c *Connection) Close() error {
	if c.db != nil {
		return c.db.Close()
	}
	return nil
}

// Path returns the database file path.
func (c *Connection) Path() string {
	return c.dbPath
}

// Migrate creates every table and index that does not exist yet.
func (c *Connection) Migrate(ctx context.Context) error {
	if _, err := c.db.ExecContext(ctx, Schema); err != nil {
		return fmt.Errorf("failed to initialize schema: %w", err)
	}
	c.logger.Debug("schema migrated", "path", c.dbPath)
	return nil
}
