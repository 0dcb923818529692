package providers

import (
	"context"
	"errors"
	"math/rand"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

var ErrDuffelTemporaryFailure = errors.New("duffel: temporary service unavailable")

// DuffelSource is a stub for the Duffel NDC aggregator. It synthesizes cash
// offers for the requested route instead of calling the live API.
type DuffelSource struct {
	apiKey string
}

func NewDuffelSource(apiKey string) *DuffelSource {
	return &DuffelSource{apiKey: apiKey}
}

func (s *DuffelSource) Name() string {
	return "duffel"
}

func (s *DuffelSource) IsAvailable() bool {
	return s.apiKey != ""
}

func (s *DuffelSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 50*time.Millisecond, 100*time.Millisecond); err != nil {
		return nil, err
	}

	if rand.Float64() < 0.05 {
		return nil, ErrDuffelTemporaryFailure
	}

	now := time.Now()
	var offers []models.Offer

	// Direct option.
	segments, total, err := buildItinerary(q, "G3", "1402", "Y", "737", 8, 15, 0)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	amount := int64(45000)
	if q.RetDate != nil {
		amount *= 2
	}
	offers = append(offers, models.Offer{
		ID:                   newOfferID(s.Name()),
		Source:               s.Name(),
		Type:                 models.OfferCash,
		Cabin:                q.Cabin,
		Cash:                 &models.CashPrice{Currency: "BRL", AmountCents: amount},
		BaggageIncluded:      true,
		Segments:             segments,
		OutDate:              q.OutDate,
		RetDate:              q.RetDate,
		Stops:                stopsPerDirection(segments, q.RetDate != nil),
		TotalDurationMinutes: total,
		CreatedAt:            now,
		ExpiresAt:            now.Add(4 * time.Hour),
	})

	// Cheaper one-stop option without baggage.
	segments, total, err = buildItinerary(q, "AD", "4077", "Q", "E195", 6, 40, 1)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}
	amount = int64(31900)
	if q.RetDate != nil {
		amount *= 2
	}
	offers = append(offers, models.Offer{
		ID:                   newOfferID(s.Name()),
		Source:               s.Name(),
		Type:                 models.OfferCash,
		Cabin:                q.Cabin,
		Cash:                 &models.CashPrice{Currency: "BRL", AmountCents: amount},
		BaggageIncluded:      false,
		Segments:             segments,
		OutDate:              q.OutDate,
		RetDate:              q.RetDate,
		Stops:                stopsPerDirection(segments, q.RetDate != nil),
		TotalDurationMinutes: total,
		CreatedAt:            now,
		ExpiresAt:            now.Add(4 * time.Hour),
	})

	return offers, nil
}
