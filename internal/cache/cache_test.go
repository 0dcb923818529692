package cache

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// memStore is an in-memory Store for tests. TTL handling is delegated to the
// cache's freshness logic; entries never expire here.
type memStore struct {
	data map[string][]byte
	sets int
}

func newMemStore() *memStore {
	return &memStore{data: make(map[string][]byte)}
}

func (m *memStore) Get(_ context.Context, key string) ([]byte, error) {
	data, ok := m.data[key]
	if !ok {
		return nil, ErrNotFound
	}
	return data, nil
}

func (m *memStore) Set(_ context.Context, key string, value []byte, _ time.Duration) error {
	m.data[key] = value
	m.sets++
	return nil
}

type failingStore struct{ err error }

func (f *failingStore) Get(context.Context, string) ([]byte, error) { return nil, f.err }
func (f *failingStore) Set(context.Context, string, []byte, time.Duration) error {
	return f.err
}

func sampleOffers() []models.Offer {
	return []models.Offer{{
		ID:     "duffel_abc",
		Source: "duffel",
		Type:   models.OfferCash,
		Cabin:  models.CabinEconomy,
		Cash:   &models.CashPrice{Currency: "BRL", AmountCents: 45000},
	}}
}

func TestStoreAndLookup(t *testing.T) {
	backing := newMemStore()
	c := New(backing, 30*time.Minute, 30*time.Minute)

	require.NoError(t, c.Store(context.Background(), "search:abc", sampleOffers()))

	entry, found := c.Lookup(context.Background(), "search:abc")
	require.True(t, found)
	assert.Equal(t, "search:abc", entry.Fingerprint)
	require.Len(t, entry.Offers, 1)
	assert.Equal(t, "duffel_abc", entry.Offers[0].ID)
}

func TestLookup_Miss(t *testing.T) {
	c := New(newMemStore(), 30*time.Minute, 30*time.Minute)

	entry, found := c.Lookup(context.Background(), "search:missing")
	assert.False(t, found)
	assert.Nil(t, entry)
}

func TestLookup_StoreErrorDegradesToMiss(t *testing.T) {
	c := New(&failingStore{err: errors.New("connection refused")}, 30*time.Minute, 30*time.Minute)

	_, found := c.Lookup(context.Background(), "search:abc")
	assert.False(t, found)
}

func TestLookup_CorruptEntryDegradesToMiss(t *testing.T) {
	backing := newMemStore()
	backing.data["search:abc"] = []byte("{not json")
	c := New(backing, 30*time.Minute, 30*time.Minute)

	_, found := c.Lookup(context.Background(), "search:abc")
	assert.False(t, found)
}

func TestIsFresh_AgeBoundaries(t *testing.T) {
	base := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 30*time.Minute, 30*time.Minute)

	cases := []struct {
		name  string
		age   time.Duration
		fresh bool
	}{
		{"just written", 0, true},
		{"ten minutes", 10 * time.Minute, true},
		{"just under threshold", 30*time.Minute - time.Second, true},
		{"exactly at threshold", 30 * time.Minute, false},
		{"past threshold", 45 * time.Minute, false},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			c.now = func() time.Time { return base.Add(tc.age) }
			entry := &Entry{CachedAt: base}
			assert.Equal(t, tc.fresh, c.IsFresh(entry))
		})
	}
}

func TestFreshnessMonotonic(t *testing.T) {
	base := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 30*time.Minute, 15*time.Minute)
	entry := &Entry{CachedAt: base}

	wasFresh := true
	for age := time.Duration(0); age <= 40*time.Minute; age += time.Minute {
		c.now = func() time.Time { return base.Add(age) }
		fresh := c.IsFresh(entry)
		if !wasFresh {
			assert.False(t, fresh, "an entry must never become fresh again at age %v", age)
		}
		wasFresh = fresh
	}
	assert.False(t, wasFresh)
}

func TestNew_ClampsFreshnessToTTL(t *testing.T) {
	base := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 10*time.Minute, time.Hour)
	entry := &Entry{CachedAt: base}

	c.now = func() time.Time { return base.Add(20 * time.Minute) }
	assert.False(t, c.IsFresh(entry),
		"an entry cannot be trusted beyond its storage lifetime")
}

func TestAge(t *testing.T) {
	base := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 30*time.Minute, 30*time.Minute)
	c.now = func() time.Time { return base.Add(10 * time.Minute) }

	assert.Equal(t, 10*time.Minute, c.Age(&Entry{CachedAt: base}))
}

func TestStore_ReplacesPriorEntry(t *testing.T) {
	backing := newMemStore()
	c := New(backing, 30*time.Minute, 30*time.Minute)
	ctx := context.Background()

	require.NoError(t, c.Store(ctx, "search:abc", sampleOffers()))

	refreshed := sampleOffers()
	refreshed[0].Cash.AmountCents = 43000
	require.NoError(t, c.Store(ctx, "search:abc", refreshed))

	entry, found := c.Lookup(ctx, "search:abc")
	require.True(t, found)
	require.Len(t, entry.Offers, 1)
	assert.Equal(t, int64(43000), entry.Offers[0].Cash.AmountCents)
	assert.Equal(t, 2, backing.sets)
}

func TestStore_StampsCaptureTime(t *testing.T) {
	base := time.Date(2025, 11, 12, 10, 0, 0, 0, time.UTC)
	c := New(newMemStore(), 30*time.Minute, 30*time.Minute)
	c.now = func() time.Time { return base }

	require.NoError(t, c.Store(context.Background(), "search:abc", sampleOffers()))

	entry, found := c.Lookup(context.Background(), "search:abc")
	require.True(t, found)
	assert.True(t, entry.CachedAt.Equal(base))
}

func TestStore_BackingFailureSurfaces(t *testing.T) {
	c := New(&failingStore{err: errors.New("connection refused")}, 30*time.Minute, 30*time.Minute)
	assert.Error(t, c.Store(context.Background(), "search:abc", sampleOffers()))
}
