package providers

import (
	"context"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// KiwiSource is a stub for the Kiwi/Tequila aggregator. Kiwi tends to surface
// cheap connecting fares with no baggage, which is what the stub returns.
type KiwiSource struct {
	apiKey string
}

func NewKiwiSource(apiKey string) *KiwiSource {
	return &KiwiSource{apiKey: apiKey}
}

func (s *KiwiSource) Name() string {
	return "kiwi"
}

func (s *KiwiSource) IsAvailable() bool {
	return s.apiKey != ""
}

func (s *KiwiSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 150*time.Millisecond, 200*time.Millisecond); err != nil {
		return nil, err
	}

	segments, total, err := buildItinerary(q, "AD", "2519", "P", "E190", 5, 55, 1)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	amount := int64(27800)
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
		BaggageIncluded:      false,
		Segments:             segments,
		OutDate:              q.OutDate,
		RetDate:              q.RetDate,
		Stops:                stopsPerDirection(segments, q.RetDate != nil),
		TotalDurationMinutes: total,
		CreatedAt:            now,
		ExpiresAt:            now.Add(2 * time.Hour),
	}}, nil
}
