package providers

import (
	"context"
	"time"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// TudoAzulSource is a stub for the TudoAzul (Azul) loyalty program. Azul's
// network is connection-heavy, so the stub returns a one-stop award.
type TudoAzulSource struct {
	enabled bool
}

func NewTudoAzulSource(enabled bool) *TudoAzulSource {
	return &TudoAzulSource{enabled: enabled}
}

func (s *TudoAzulSource) Name() string {
	return "tudoazul"
}

func (s *TudoAzulSource) IsAvailable() bool {
	return s.enabled
}

func (s *TudoAzulSource) Search(ctx context.Context, q models.SearchQuery) ([]models.Offer, error) {
	if err := simulateLatency(ctx, 300*time.Millisecond, 200*time.Millisecond); err != nil {
		return nil, err
	}

	segments, total, err := buildItinerary(q, "AD", "2870", "U", "E195", 7, 10, 1)
	if err != nil {
		return nil, NewSourceError(s.Name(), err)
	}

	points := 8200
	if q.RetDate != nil {
		points = 16400
	}

	now := time.Now()
	return []models.Offer{{
		ID:     newOfferID(s.Name()),
		Source: s.Name(),
		Type:   models.OfferMiles,
		Cabin:  q.Cabin,
		Miles: &models.MilesPrice{
			Program:    models.ProgramTudoAzul,
			Points:     points,
			TaxesCents: 7400,
		},
		BaggageIncluded:      false,
		Segments:             segments,
		OutDate:              q.OutDate,
		RetDate:              q.RetDate,
		Stops:                stopsPerDirection(segments, q.RetDate != nil),
		TotalDurationMinutes: total,
		CreatedAt:            now,
		ExpiresAt:            now.Add(4 * time.Hour),
	}}, nil
}
