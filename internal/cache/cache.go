// Package cache persists resolution results in a SQLite database so
// repeated invocations over an unchanged manifest skip the resolve step.
// The cache is an optimization only: resolution is deterministic with or
// without it.
package cache

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/cespare/xxhash/v2"
	_ "modernc.org/sqlite" // SQLite driver (pure Go, no CGO)

	"github.com/OrbitalStation/rokoko/internal/lock"
	"github.com/OrbitalStation/rokoko/internal/toolchain"
)

// Store is a SQLite-backed resolution cache.
type Store struct {
	db *sql.DB
}

// Open initializes the cache database at dbPath and runs migrations.
// The busy_timeout pragma avoids "database locked" errors when two
// invocations race; modernc's driver applies pragmas via _pragma params.
func Open(dbPath string) (*Store, error) {
	dsn := fmt.Sprintf("file:%s?_pragma=busy_timeout(5000)&_pragma=journal_mode(WAL)", dbPath)

	db, err := sql.Open("sqlite", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache database: %w", err)
	}
	if err := db.Ping(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("ping cache database: %w", err)
	}

	store := &Store{db: db}
	if err := store.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("run cache migrations: %w", err)
	}
	return store, nil
}

// Close closes the database connection.
func (s *Store) Close() error {
	return s.db.Close()
}

func (s *Store) migrate() error {
	schema := `
	CREATE TABLE IF NOT EXISTS resolutions (
		cache_key TEXT PRIMARY KEY,
		lock_json TEXT NOT NULL,
		created_at TEXT NOT NULL
	);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Key derives the cache key for one resolution input: the manifest bytes,
// the requested feature set, and the active channel. Feature order does
// not affect the key.
func Key(manifest []byte, features []string, noDefaults bool, channel toolchain.Channel) string {
	sorted := append([]string(nil), features...)
	sort.Strings(sorted)

	h := xxhash.New()
	_, _ = h.Write(manifest)
	_, _ = h.Write([]byte{0})
	_, _ = h.Write([]byte(strings.Join(sorted, ",")))
	_, _ = h.Write([]byte{0})
	if noDefaults {
		_, _ = h.Write([]byte{1})
	}
	_, _ = h.Write([]byte(channel))
	return fmt.Sprintf("%016x", h.Sum64())
}

// Get returns the cached lock for the key, or (nil, nil) on a miss.
func (s *Store) Get(ctx context.Context, key string) (*lock.Lock, error) {
	var lockJSON string
	err := s.db.QueryRowContext(ctx,
		`SELECT lock_json FROM resolutions WHERE cache_key = ?`, key,
	).Scan(&lockJSON)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("query cache: %w", err)
	}

	var l lock.Lock
	if err := json.Unmarshal([]byte(lockJSON), &l); err != nil {
		// A corrupt entry behaves like a miss; the caller re-resolves and
		// overwrites it.
		return nil, nil
	}
	return &l, nil
}

// Put stores the lock under the key, replacing any previous entry.
func (s *Store) Put(ctx context.Context, key string, l *lock.Lock) error {
	l.Normalize()
	data, err := json.Marshal(l)
	if err != nil {
		return fmt.Errorf("encode lock for cache: %w", err)
	}

	_, err = s.db.ExecContext(ctx, `
	INSERT INTO resolutions (cache_key, lock_json, created_at)
	VALUES (?, ?, ?)
	ON CONFLICT(cache_key) DO UPDATE SET
		lock_json = excluded.lock_json,
		created_at = excluded.created_at
	`, key, string(data), time.Now().UTC().Format(time.RFC3339))
	if err != nil {
		return fmt.Errorf("store cache entry: %w", err)
	}
	return nil
}
