// Package cache keeps built artifacts in a project-local directory,
// indexed by an sqlite database, so unchanged programs are not rebuilt.
package cache

import (
	"context"
	"crypto/sha256"
	"database/sql"
	"encoding/hex"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"time"

	"github.com/google/uuid"
	_ "modernc.org/sqlite"
)

// codegenVersion is bumped when the generated code format changes.
// This ensures stale cached artifacts are rebuilt.
const codegenVersion = "v1"

const schema = `
CREATE TABLE IF NOT EXISTS artifacts (
	key        TEXT PRIMARY KEY,
	build_id   TEXT NOT NULL,
	target     TEXT NOT NULL,
	size       INTEGER NOT NULL,
	created_at INTEGER NOT NULL
)`

// Entry describes one cached artifact.
type Entry struct {
	Key       string
	BuildID   string
	Target    string
	Size      int64
	CreatedAt time.Time
}

// Cache manages the artifact cache in a directory such as .lolc/.
type Cache struct {
	dir string
	db  *sql.DB
}

// Open opens (creating if needed) the cache rooted at dir.
func Open(ctx context.Context, dir string) (*Cache, error) {
	if err := os.MkdirAll(filepath.Join(dir, "artifacts"), 0o755); err != nil {
		return nil, fmt.Errorf("creating cache dir: %w", err)
	}
	db, err := sql.Open("sqlite", filepath.Join(dir, "cache.db"))
	if err != nil {
		return nil, fmt.Errorf("opening cache index: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.ExecContext(ctx, schema); err != nil {
		db.Close()
		return nil, fmt.Errorf("creating cache schema: %w", err)
	}
	return &Cache{dir: dir, db: db}, nil
}

// Dir returns the cache root.
func (c *Cache) Dir() string { return c.dir }

func (c *Cache) Close() error { return c.db.Close() }

func (c *Cache) artifactPath(key string) string {
	return filepath.Join(c.dir, "artifacts", key)
}

// Key derives a deterministic cache key from the rendered code and
// everything that influences how it is built.
func Key(code, target, compiler string, flags []string) string {
	h := sha256.New()
	h.Write([]byte(code))
	h.Write([]byte("\x00"))
	h.Write([]byte(target))
	h.Write([]byte("\x00"))
	h.Write([]byte(compiler))
	for _, f := range flags {
		h.Write([]byte("\x00"))
		h.Write([]byte(f))
	}
	h.Write([]byte("\x00"))
	h.Write([]byte(codegenVersion))
	return hex.EncodeToString(h.Sum(nil))[:16]
}

// Lookup finds the entry for key. An index row whose file has gone
// missing is dropped and reported as a miss.
func (c *Cache) Lookup(ctx context.Context, key string) (*Entry, bool, error) {
	row := c.db.QueryRowContext(ctx,
		`SELECT key, build_id, target, size, created_at FROM artifacts WHERE key = ?`, key)
	e, err := scanEntry(row)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("cache lookup: %w", err)
	}

	info, err := os.Stat(c.artifactPath(key))
	if err != nil || info.Size() != e.Size {
		if _, err := c.db.ExecContext(ctx, `DELETE FROM artifacts WHERE key = ?`, key); err != nil {
			return nil, false, fmt.Errorf("cache evict: %w", err)
		}
		return nil, false, nil
	}
	return e, true, nil
}

// Store copies the artifact at path into the cache under key.
func (c *Cache) Store(ctx context.Context, key, target, path string) (*Entry, error) {
	size, err := copyFile(path, c.artifactPath(key))
	if err != nil {
		return nil, fmt.Errorf("cache store: %w", err)
	}
	e := &Entry{
		Key:       key,
		BuildID:   uuid.NewString(),
		Target:    target,
		Size:      size,
		CreatedAt: time.Now(),
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO artifacts (key, build_id, target, size, created_at) VALUES (?, ?, ?, ?, ?)`,
		e.Key, e.BuildID, e.Target, e.Size, e.CreatedAt.UnixNano())
	if err != nil {
		return nil, fmt.Errorf("cache index: %w", err)
	}
	return e, nil
}

// Restore copies a cached artifact to output.
func (c *Cache) Restore(e *Entry, output string) error {
	if _, err := copyFile(c.artifactPath(e.Key), output); err != nil {
		return fmt.Errorf("cache restore: %w", err)
	}
	return nil
}

// Entries lists every cached artifact, newest first.
func (c *Cache) Entries(ctx context.Context) ([]*Entry, error) {
	rows, err := c.db.QueryContext(ctx,
		`SELECT key, build_id, target, size, created_at FROM artifacts ORDER BY created_at DESC`)
	if err != nil {
		return nil, fmt.Errorf("cache list: %w", err)
	}
	defer rows.Close()

	var entries []*Entry
	for rows.Next() {
		e, err := scanEntry(rows)
		if err != nil {
			return nil, fmt.Errorf("cache list: %w", err)
		}
		entries = append(entries, e)
	}
	return entries, rows.Err()
}

// Clean closes the cache and removes its directory.
func (c *Cache) Clean() error {
	if err := c.db.Close(); err != nil {
		return err
	}
	return os.RemoveAll(c.dir)
}

type scanner interface {
	Scan(dest ...interface{}) error
}

func scanEntry(s scanner) (*Entry, error) {
	var e Entry
	var created int64
	if err := s.Scan(&e.Key, &e.BuildID, &e.Target, &e.Size, &created); err != nil {
		return nil, err
	}
	e.CreatedAt = time.Unix(0, created)
	return &e, nil
}

// copyFile copies src to dst keeping the executable bit.
func copyFile(src, dst string) (int64, error) {
	in, err := os.Open(src)
	if err != nil {
		return 0, err
	}
	defer in.Close()

	info, err := in.Stat()
	if err != nil {
		return 0, err
	}
	out, err := os.OpenFile(dst, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, info.Mode().Perm()|0o200)
	if err != nil {
		return 0, err
	}
	n, err := io.Copy(out, in)
	if cerr := out.Close(); err == nil {
		err = cerr
	}
	return n, err
}
