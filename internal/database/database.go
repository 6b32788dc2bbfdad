package database

import (
	"context"
	"database/sql"
	"fmt"
	"log"
	"os"
	"time"

	"github.com/jmoiron/sqlx"
	_ "github.com/mattn/go-sqlite3"

	"miniblog/internal/config"
)

// Querier is the subset of sqlx that repositories use. Both the pool
// (*sqlx.DB) and a request-scoped connection (*sqlx.Conn) satisfy it.
type Querier interface {
	GetContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	SelectContext(ctx context.Context, dest interface{}, query string, args ...interface{}) error
	ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error)
}

type DB struct {
	*sqlx.DB
}

func Open(cfg *config.Config) (*DB, error) {
	dsn := fmt.Sprintf("file:%s?_foreign_keys=on&_busy_timeout=5000", cfg.DatabasePath)

	db, err := sqlx.Connect("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database %s: %w", cfg.DatabasePath, err)
	}

	db.SetMaxOpenConns(10)
	db.SetMaxIdleConns(5)
	db.SetConnMaxLifetime(30 * time.Minute)

	log.Printf("Connected to database: %s", cfg.DatabasePath)
	return &DB{db}, nil
}

func (db *DB) CloseDB() error {
	return db.DB.Close()
}

func (db *DB) HealthCheck() error {
	if db == nil {
		return fmt.Errorf("database connection is not initialized")
	}
	return db.Ping()
}

// InitSchema runs the schema script. The script drops and recreates the
// tables, so this must only be reached from the explicit init-db command.
func (db *DB) InitSchema(schemaFilePath string) error {
	if _, err := os.Stat(schemaFilePath); os.IsNotExist(err) {
		return fmt.Errorf("schema file not found: %s", schemaFilePath)
	}

	schemaSQL, err := os.ReadFile(schemaFilePath)
	if err != nil {
		return fmt.Errorf("failed to read schema file: %w", err)
	}

	_, err = db.Exec(string(schemaSQL))
	if err != nil {
		return fmt.Errorf("failed to execute schema script: %w", err)
	}

	return nil
}

// Querier resolves the handle a repository should run its statements on.
// Inside a request it is the request's memoized connection; outside (tests,
// the init-db command) it is the pool itself.
func (db *DB) Querier(ctx context.Context) (Querier, error) {
	if rc := requestConnFrom(ctx); rc != nil {
		return rc.Acquire(ctx)
	}
	return db.DB, nil
}
