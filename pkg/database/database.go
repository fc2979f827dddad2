package database

import (
	"context"
	"database/sql"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"

	_ "modernc.org/sqlite"

	"github.com/benni94/mazeChromeBE/pkg/logger"
)

// DB wraps a single-file SQLite handle. All regular statements run under a
// read lock; Snapshot and Restore take the write lock because they copy the
// database file and (for Restore) close and reopen the handle underneath
// every other caller.
type DB struct {
	mu   sync.RWMutex
	conn *sql.DB
	path string
}

// Open opens (and if necessary creates) the database file at path.
func Open(path string) (*DB, error) {
	if path == "" {
		return nil, fmt.Errorf("database path is empty")
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("failed to create data directory: %w", err)
	}

	conn, err := open(path)
	if err != nil {
		return nil, err
	}

	logger.Info("Database opened", "path", path)

	return &DB{conn: conn, path: path}, nil
}

func open(path string) (*sql.DB, error) {
	// journal_mode=DELETE keeps the whole database in one file, which the
	// snapshot/restore byte-copy depends on.
	dsn := fmt.Sprintf("file:%s?_pragma=journal_mode(DELETE)&_pragma=busy_timeout(5000)", path)

	conn, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// One writer connection, matching SQLite's locking model.
	conn.SetMaxOpenConns(1)
	conn.SetMaxIdleConns(1)

	if err := conn.Ping(); err != nil {
		_ = conn.Close()
		return nil, fmt.Errorf("failed to ping database: %w", err)
	}

	return conn, nil
}

// Path returns the location of the live database file.
func (db *DB) Path() string {
	return db.path
}

// Close closes the underlying handle.
func (db *DB) Close() error {
	db.mu.Lock()
	defer db.mu.Unlock()
	return db.conn.Close()
}

func (db *DB) ExecContext(ctx context.Context, query string, args ...interface{}) (sql.Result, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.ExecContext(ctx, query, args...)
}

func (db *DB) QueryContext(ctx context.Context, query string, args ...interface{}) (*sql.Rows, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.QueryContext(ctx, query, args...)
}

func (db *DB) QueryRowContext(ctx context.Context, query string, args ...interface{}) *sql.Row {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.QueryRowContext(ctx, query, args...)
}

func (db *DB) BeginTx(ctx context.Context, opts *sql.TxOptions) (*sql.Tx, error) {
	db.mu.RLock()
	defer db.mu.RUnlock()
	return db.conn.BeginTx(ctx, opts)
}

// Snapshot copies the live database file to dst, overwriting any previous
// snapshot. The write lock excludes statements for the duration of the copy
// so the file is never copied mid-write.
func (db *DB) Snapshot(dst string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := copyFile(db.path, dst); err != nil {
		return fmt.Errorf("failed to snapshot database: %w", err)
	}

	return nil
}

// Restore replaces the live database file with the contents of src:
// close handle, copy bytes, reopen. If the copy fails the original file is
// reopened so the service is not left without a usable handle. If reopening
// after a successful copy fails, the on-disk state is already the snapshot
// and the error is reported to the caller.
func (db *DB) Restore(src string) error {
	db.mu.Lock()
	defer db.mu.Unlock()

	if err := db.conn.Close(); err != nil {
		return fmt.Errorf("failed to close database before restore: %w", err)
	}

	copyErr := copyFile(src, db.path)

	conn, openErr := open(db.path)
	if openErr != nil {
		if copyErr != nil {
			return fmt.Errorf("failed to copy snapshot (%v) and to reopen database: %w", copyErr, openErr)
		}
		return fmt.Errorf("snapshot copied but failed to reopen database: %w", openErr)
	}
	db.conn = conn

	if copyErr != nil {
		return fmt.Errorf("failed to copy snapshot: %w", copyErr)
	}

	logger.Info("Database restored from snapshot", "snapshot", src)

	return nil
}

func copyFile(src, dst string) error {
	in, err := os.Open(src)
	if err != nil {
		return err
	}
	defer in.Close()

	out, err := os.Create(dst)
	if err != nil {
		return err
	}

	if _, err := io.Copy(out, in); err != nil {
		_ = out.Close()
		return err
	}

	return out.Close()
}
