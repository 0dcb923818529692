package providers

import (
	"context"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// LatamPassSource is a stub for the LATAM Pass loyalty program.
type LatamPassSource struct {
	enabled bool
}

func NewLatamPassSource(enabled bool) *LatamPassSource {
	return &LatamPassSource{enabled: enabled}
}

func (s *LatamPassSource) Name() string {
	return "latam_pass"
}

func (s *LatamPassSource) IsAvailable() bool {
	return s.enabled
}

func (s *LatamPassSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 250*time.Millisecond, 250*time.Millisecond); err != nil {
		return nil, err
	}

	segments, total, err := buildItinerary(q, "LA", "4510", "X", "A321", 14, 20, 0)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	points := 9000
	if q.RetDate != nil {
		points = 18000
	}

	now := time.Now()
	return []models.Offer{{
		ID:     newOfferID(s.Name()),
		Source: s.Name(),
		Type:   models.OfferMiles,
		Cabin:  q.Cabin,
		Miles: &models.MilesPrice{
			Program:    models.ProgramLatamPass,
			Points:     points,
			TaxesCents: 9900,
		},
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
