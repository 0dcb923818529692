// Package store persists finalized, deduplicated offers keyed by canonical
// hash, and resolves a previously seen offer for a later booking step. An
// expired offer is reported as not found.
package store

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

var ErrOfferNotFound = errors.New("store: offer not found")

type OfferStore interface {
	Save(ctx context.Context, offers []models.Offer) error
	GetByHash(ctx context.Context, hash string) (*models.Offer, error)
}

// PostgresStore is the pgx-backed offer store. Writes are upserts on the
// canonical hash: a re-observed itinerary refreshes its mutable fields
// (price, taxes, expiry) without minting a new identity.
type PostgresStore struct {
	pool   *pgxpool.Pool
	logger *slog.Logger
}

func NewPostgresStore(ctx context.Context, dsn string) (*PostgresStore, error) {
	pool, err := pgxpool.New(ctx, dsn)
	if err != nil {
		return nil, fmt.Errorf("store: connecting to postgres: %w", err)
	}

	pingCtx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	if err := pool.Ping(pingCtx); err != nil {
		pool.Close()
		return nil, fmt.Errorf("store: postgres ping failed: %w", err)
	}

	return &PostgresStore{
		pool:   pool,
		logger: slog.Default().With("component", "offer-store"),
	}, nil
}

func (s *PostgresStore) Close() {
	s.pool.Close()
}

const upsertOffer = `
INSERT INTO offers (
	hash, id, source, offer_type, cabin,
	currency, price_cents, miles_program, miles_points, taxes_cents,
	baggage_included, segments, out_date, ret_date,
	origin, destination, total_duration_minutes, stops_count,
	created_at, expires_at
) VALUES (
	$1, $2, $3, $4, $5,
	$6, $7, $8, $9, $10,
	$11, $12, $13, $14,
	$15, $16, $17, $18,
	$19, $20
)
ON CONFLICT (hash) DO UPDATE SET
	price_cents = EXCLUDED.price_cents,
	taxes_cents = EXCLUDED.taxes_cents,
	expires_at  = EXCLUDED.expires_at`

func (s *PostgresStore) Save(ctx context.Context, offers []models.Offer) error {
	for _, o := range offers {
		segments, err := json.Marshal(o.Segments)
		if err != nil {
			return fmt.Errorf("store: encoding segments for %s: %w", o.Hash, err)
		}

		var currency *string
		var priceCents *int64
		var milesProgram *string
		var milesPoints *int
		var taxesCents *int64

		if o.Cash != nil {
			currency = &o.Cash.Currency
			priceCents = &o.Cash.AmountCents
		}
		if o.Miles != nil {
			program := string(o.Miles.Program)
			milesProgram = &program
			milesPoints = &o.Miles.Points
			taxesCents = &o.Miles.TaxesCents
		}

		origin, destination := "", ""
		if len(o.Segments) > 0 {
			origin = o.Segments[0].Origin
			destination = o.Segments[len(o.Segments)-1].Destination
		}

		_, err = s.pool.Exec(ctx, upsertOffer,
			o.Hash, o.ID, o.Source, o.Type, o.Cabin,
			currency, priceCents, milesProgram, milesPoints, taxesCents,
			o.BaggageIncluded, segments, o.OutDate, o.RetDate,
			origin, destination, o.TotalDurationMinutes, o.Stops,
			o.CreatedAt, o.ExpiresAt,
		)
		if err != nil {
			return fmt.Errorf("store: upserting offer %s: %w", o.Hash, err)
		}
	}
	return nil
}

const selectOfferByHash = `
SELECT hash, id, source, offer_type, cabin,
	currency, price_cents, miles_program, miles_points, taxes_cents,
	baggage_included, segments, out_date, ret_date,
	total_duration_minutes, stops_count, created_at, expires_at
FROM offers
WHERE hash = $1 AND expires_at > NOW()`

func (s *PostgresStore) GetByHash(ctx context.Context, hash string) (*models.Offer, error) {
	row := s.pool.QueryRow(ctx, selectOfferByHash, hash)

	var o models.Offer
	var currency *string
	var priceCents *int64
	var milesProgram *string
	var milesPoints *int
	var taxesCents *int64
	var segments []byte

	err := row.Scan(
		&o.Hash, &o.ID, &o.Source, &o.Type, &o.Cabin,
		&currency, &priceCents, &milesProgram, &milesPoints, &taxesCents,
		&o.BaggageIncluded, &segments, &o.OutDate, &o.RetDate,
		&o.TotalDurationMinutes, &o.Stops, &o.CreatedAt, &o.ExpiresAt,
	)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, ErrOfferNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("store: fetching offer %s: %w", hash, err)
	}

	if err := json.Unmarshal(segments, &o.Segments); err != nil {
		return nil, fmt.Errorf("store: decoding segments for %s: %w", hash, err)
	}

	switch {
	case o.Type == models.OfferCash && currency != nil && priceCents != nil:
		o.Cash = &models.CashPrice{Currency: *currency, AmountCents: *priceCents}
	case o.Type == models.OfferMiles && milesProgram != nil && milesPoints != nil:
		var taxes int64
		if taxesCents != nil {
			taxes = *taxesCents
		}
		o.Miles = &models.MilesPrice{
			Program:    models.MilesProgram(*milesProgram),
			Points:     *milesPoints,
			TaxesCents: taxes,
		}
	}

	return &o, nil
}

// DisabledStore is used when no database is configured: saves are dropped
// and lookups always miss.
type DisabledStore struct{}

func NewDisabledStore() *DisabledStore {
	return &DisabledStore{}
}

func (s *DisabledStore) Save(ctx context.Context, offers []models.Offer) error {
	return nil
}

func (s *DisabledStore) GetByHash(ctx context.Context, hash string) (*models.Offer, error) {
	return nil, ErrOfferNotFound
}
