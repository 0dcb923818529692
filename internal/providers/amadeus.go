package providers

import (
	"context"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// AmadeusSource is a stub for the Amadeus GDS. Available only when both
// credentials are configured.
type AmadeusSource struct {
	apiKey    string
	apiSecret string
}

func NewAmadeusSource(apiKey, apiSecret string) *AmadeusSource {
	return &AmadeusSource{apiKey: apiKey, apiSecret: apiSecret}
}

func (s *AmadeusSource) Name() string {
	return "amadeus"
}

func (s *AmadeusSource) IsAvailable() bool {
	return s.apiKey != "" && s.apiSecret != ""
}

func (s *AmadeusSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 100*time.Millisecond, 150*time.Millisecond); err != nil {
		return nil, err
	}

	segments, total, err := buildItinerary(q, "LA", "3350", "M", "A320", 11, 30, 0)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	amount := int64(51200)
	if q.RetDate != nil {
		amount *= 2
	}

	now := time.Now()
	return []models.Offer{{
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
	}}, nil
}
