package providers

import (
	"context"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// SmilesSource is a stub for the Smiles (Gol) loyalty program. A real
// implementation would use the official API where available, or controlled
// automation within ToS limits; either way it sits behind this same adapter.
type SmilesSource struct {
	enabled bool
}

func NewSmilesSource(enabled bool) *SmilesSource {
	return &SmilesSource{enabled: enabled}
}

func (s *SmilesSource) Name() string {
	return "smiles"
}

func (s *SmilesSource) IsAvailable() bool {
	return s.enabled
}

func (s *SmilesSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 200*time.Millisecond, 200*time.Millisecond); err != nil {
		return nil, err
	}

	segments, total, err := buildItinerary(q, "G3", "1234", "S", "737", 10, 45, 0)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	points := 7500
	if q.RetDate != nil {
		points = 15000
	}

	now := time.Now()
	return []models.Offer{{
		ID:     newOfferID(s.Name()),
		Source: s.Name(),
		Type:   models.OfferMiles,
		Cabin:  q.Cabin,
		Miles: &models.MilesPrice{
			Program:    models.ProgramSmiles,
			Points:     points,
			TaxesCents: 12800,
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
