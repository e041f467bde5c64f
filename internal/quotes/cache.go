package quotes

import (
	"context"
	"database/sql"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	// Register sqlite3 driver
	_ "github.com/mattn/go-sqlite3"

	"github.com/tonhe/pricescope/internal/chart"
)

// Cache stores fetched series in a sqlite database keyed by provider,
// symbol and range.
type Cache struct {
	db *sql.DB
}

// OpenCache opens (creating if needed) the cache database at path. Use
// ":memory:" for a throwaway cache.
func OpenCache(path string) (*Cache, error) {
	dsn := "file:" + path + "?_busy_timeout=5000"
	db, err := sql.Open("sqlite3", dsn)
	if err != nil {
		return nil, fmt.Errorf("open cache: %w", err)
	}
	db.SetMaxOpenConns(1)
	if _, err := db.Exec(`CREATE TABLE IF NOT EXISTS series(
		provider TEXT NOT NULL,
		symbol TEXT NOT NULL,
		range_key TEXT NOT NULL,
		fetched_at INTEGER NOT NULL,
		payload TEXT NOT NULL,
		PRIMARY KEY(provider, symbol, range_key)
	)`); err != nil {
		db.Close()
		return nil, fmt.Errorf("init cache schema: %w", err)
	}
	return &Cache{db: db}, nil
}

// Close closes the underlying database.
func (c *Cache) Close() error { return c.db.Close() }

// Get returns the cached series and when it was fetched. ok is false when
// nothing is cached for the key.
func (c *Cache) Get(ctx context.Context, provider, symbol, rangeKey string) (s *chart.Series, fetchedAt time.Time, ok bool, err error) {
	var ts int64
	var payload string
	err = c.db.QueryRowContext(ctx,
		`SELECT fetched_at, payload FROM series WHERE provider=? AND symbol=? AND range_key=?`,
		provider, symbol, rangeKey).Scan(&ts, &payload)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, time.Time{}, false, nil
	}
	if err != nil {
		return nil, time.Time{}, false, err
	}
	var samples []chart.Sample
	if err := json.Unmarshal([]byte(payload), &samples); err != nil {
		return nil, time.Time{}, false, fmt.Errorf("decode cached series: %w", err)
	}
	return chart.NewSeries(samples), time.Unix(ts, 0), true, nil
}

// Put replaces the cached series for the key.
func (c *Cache) Put(ctx context.Context, provider, symbol, rangeKey string, s *chart.Series, fetchedAt time.Time) error {
	payload, err := json.Marshal(s.Samples())
	if err != nil {
		return err
	}
	_, err = c.db.ExecContext(ctx,
		`INSERT OR REPLACE INTO series(provider,symbol,range_key,fetched_at,payload) VALUES(?,?,?,?,?)`,
		provider, symbol, rangeKey, fetchedAt.Unix(), string(payload))
	return err
}

// Cached decorates a Provider with a Cache. Entries younger than TTL are
// served without a network call; when the upstream fetch fails a stale
// entry is returned instead of the error.
type Cached struct {
	Upstream Provider
	Cache    *Cache
	TTL      time.Duration
	Now      func() time.Time
	Logger   *slog.Logger
}

// NewCached wraps upstream with cache.
func NewCached(upstream Provider, cache *Cache, ttl time.Duration, logger *slog.Logger) *Cached {
	if logger == nil {
		logger = slog.Default()
	}
	return &Cached{Upstream: upstream, Cache: cache, TTL: ttl, Now: time.Now, Logger: logger}
}

func (c *Cached) Name() string { return c.Upstream.Name() }

// Fetch implements Provider.
func (c *Cached) Fetch(ctx context.Context, symbol string, r chart.NamedRange) (*chart.Series, error) {
	symbol = NormalizeSymbol(symbol)
	name := c.Upstream.Name()
	cached, at, ok, err := c.Cache.Get(ctx, name, symbol, r.Key)
	if err != nil {
		c.Logger.Warn("cache read failed", "provider", name, "symbol", symbol, "range", r.Key, "err", err)
	}
	if ok && c.Now().Sub(at) < c.TTL {
		c.Logger.Debug("cache hit", "provider", name, "symbol", symbol, "range", r.Key, "age", c.Now().Sub(at))
		return cached, nil
	}

	fresh, err := c.Upstream.Fetch(ctx, symbol, r)
	if err != nil {
		if ok && !errors.Is(err, context.Canceled) {
			c.Logger.Warn("serving stale series", "provider", name, "symbol", symbol, "range", r.Key, "err", err)
			return cached, nil
		}
		return nil, err
	}
	if err := c.Cache.Put(ctx, name, symbol, r.Key, fresh, c.Now()); err != nil {
		c.Logger.Warn("cache write failed", "provider", name, "symbol", symbol, "range", r.Key, "err", err)
	}
	return fresh, nil
}
