// Copyright 2026 The luadense Authors
// SPDX-License-Identifier: MIT

// Package densecache is a content-addressed cache of formatted Lua text,
// backed by SQLite through sqlitemigration.Pool, the same pooled-and-
// migrated connection pattern backend.Server uses for zb's store
// database.
package densecache

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"zombiezen.com/go/sqlite"
	"zombiezen.com/go/sqlite/sqlitemigration"
	"zombiezen.com/go/sqlite/sqlitex"
)

var schema = sqlitemigration.Schema{
	Migrations: []string{
		`CREATE TABLE formatted (
			key TEXT PRIMARY KEY,
			text TEXT NOT NULL,
			created_at INTEGER NOT NULL DEFAULT (unixepoch())
		);`,
	},
}

// Cache is a pooled connection to the densecache database. The zero value
// is not usable; construct one with [Open].
type Cache struct {
	pool *sqlitemigration.Pool
}

// Open opens (creating if necessary) the cache database at path.
// Callers are responsible for calling [Cache.Close].
func Open(path string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, fmt.Errorf("open densecache: %w", err)
	}
	pool := sqlitemigration.NewPool(path, schema, sqlitemigration.Options{
		Flags: sqlite.OpenCreate | sqlite.OpenReadWrite,
	})
	return &Cache{pool: pool}, nil
}

// Close releases the cache's connection pool.
func (c *Cache) Close() error {
	return c.pool.Close()
}

// Key computes the content-addressed cache key for a JSON-encoded AST
// formatted at the given column budget: the hex SHA-256 of the AST bytes
// followed by the budget, so the same AST formatted at two different
// widths never collides.
func Key(astJSON []byte, columnBudget int) string {
	h := sha256.New()
	h.Write(astJSON)
	h.Write([]byte{0})
	h.Write([]byte(strconv.Itoa(columnBudget)))
	return hex.EncodeToString(h.Sum(nil))
}

// Get returns the cached formatted text for key, if present.
func (c *Cache) Get(ctx context.Context, key string) (text string, ok bool, err error) {
	conn, err := c.pool.Get(ctx)
	if err != nil {
		return "", false, fmt.Errorf("densecache: get %s: %w", key, err)
	}
	defer c.pool.Put(conn)

	err = sqlitex.Execute(conn, `SELECT text FROM formatted WHERE key = ?;`, &sqlitex.ExecOptions{
		Args: []any{key},
		ResultFunc: func(stmt *sqlite.Stmt) error {
			text = stmt.ColumnText(0)
			ok = true
			return nil
		},
	})
	if err != nil {
		return "", false, fmt.Errorf("densecache: get %s: %w", key, err)
	}
	return text, ok, nil
}

// Put stores text under key, replacing any prior entry.
func (c *Cache) Put(ctx context.Context, key, text string) error {
	conn, err := c.pool.Get(ctx)
	if err != nil {
		return fmt.Errorf("densecache: put %s: %w", key, err)
	}
	defer c.pool.Put(conn)

	err = sqlitex.Execute(conn, `INSERT INTO formatted (key, text) VALUES (?, ?)
		ON CONFLICT (key) DO UPDATE SET text = excluded.text, created_at = unixepoch();`, &sqlitex.ExecOptions{
		Args: []any{key, text},
	})
	if err != nil {
		return fmt.Errorf("densecache: put %s: %w", key, err)
	}
	return nil
}
