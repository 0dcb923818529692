// Package cache implements the fingerprint-keyed offer cache with a two-tier
// freshness policy: entries live in the backing store for the full TTL, but
// only substitute for a live fetch while younger than the freshness
// threshold. A stale-but-present entry forces a re-fetch.
package cache

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// ErrNotFound is returned by a Store when the key is absent or expired.
var ErrNotFound = errors.New("cache: key not found")

// Store is the key-value backing store: opaque byte payloads with expiry,
// keyed by fingerprint.
type Store interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Entry is one cached offer set. Entries are owned by the cache layer; every
// Lookup returns an independently unmarshalled copy.
type Entry struct {
	Fingerprint string         `json:"fingerprint"`
	CachedAt    time.Time      `json:"cached_at"`
	Offers      []models.Offer `json:"offers"`
}

type OfferCache struct {
	store    Store
	ttl      time.Duration
	freshFor time.Duration
	now      func() time.Time
	logger   *slog.Logger
}

// New builds an OfferCache. The freshness threshold is clamped to the storage
// TTL: an entry can never be trusted longer than it exists.
func New(store Store, ttl, freshFor time.Duration) *OfferCache {
	if freshFor > ttl {
		freshFor = ttl
	}
	return &OfferCache{
		store:    store,
		ttl:      ttl,
		freshFor: freshFor,
		now:      time.Now,
		logger:   slog.Default().With("component", "offer-cache"),
	}
}

// Lookup is a plain existence test against the store's TTL. Store errors
// degrade to a miss; they never fail the search.
func (c *OfferCache) Lookup(ctx context.Context, fingerprint string) (*Entry, bool) {
	data, err := c.store.Get(ctx, fingerprint)
	if err != nil {
		if !errors.Is(err, ErrNotFound) {
			c.logger.Warn("cache get failed, treating as miss", "fingerprint", fingerprint, "error", err)
		}
		return nil, false
	}

	var entry Entry
	if err := json.Unmarshal(data, &entry); err != nil {
		c.logger.Warn("cache entry corrupt, treating as miss", "fingerprint", fingerprint, "error", err)
		return nil, false
	}
	return &entry, true
}

// IsFresh reports whether the entry is young enough to substitute for a live
// fetch.
func (c *OfferCache) IsFresh(entry *Entry) bool {
	return c.now().Sub(entry.CachedAt) < c.freshFor
}

// Age returns how long ago the entry was captured.
func (c *OfferCache) Age(entry *Entry) time.Duration {
	return c.now().Sub(entry.CachedAt)
}

// Store stamps the current time and replaces any prior entry for the
// fingerprint. Identity merging happens earlier, at canonicalization; this
// layer overwrites wholesale.
func (c *OfferCache) Store(ctx context.Context, fingerprint string, offers []models.Offer) error {
	entry := Entry{
		Fingerprint: fingerprint,
		CachedAt:    c.now(),
		Offers:      offers,
	}
	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	if err := c.store.Set(ctx, fingerprint, data, c.ttl); err != nil {
		c.logger.Warn("cache set failed", "fingerprint", fingerprint, "error", err)
		return err
	}
	return nil
}
