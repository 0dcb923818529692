package canonical

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

func cashOffer(id, source string, amountCents int64) models.Offer {
	depart := time.Date(2025, 11, 12, 8, 30, 0, 0, time.UTC)
	return models.Offer{
		ID:     id,
		Source: source,
		Type:   models.OfferCash,
		Cabin:  models.CabinEconomy,
		Cash:   &models.CashPrice{Currency: "BRL", AmountCents: amountCents},
		Segments: []models.Segment{{
			Carrier:         "G3",
			FlightNumber:    "1402",
			Origin:          "GRU",
			Destination:     "REC",
			Depart:          depart,
			Arrive:          depart.Add(3 * time.Hour),
			DurationMinutes: 180,
			FareClass:       "Y",
		}},
		OutDate:              "2025-11-12",
		Stops:                0,
		TotalDurationMinutes: 180,
		ExpiresAt:            depart.Add(-4 * time.Hour),
	}
}

func milesOffer(id string, points int, taxesCents int64) models.Offer {
	o := cashOffer(id, "smiles", 0)
	o.Type = models.OfferMiles
	o.Cash = nil
	o.Miles = &models.MilesPrice{Program: models.ProgramSmiles, Points: points, TaxesCents: taxesCents}
	return o
}

func TestHash_Idempotent(t *testing.T) {
	o := cashOffer("duffel_abc", "duffel", 45000)
	require.Equal(t, Hash(o), Hash(o))
}

func TestHash_IgnoresSourceAndVolatileFields(t *testing.T) {
	a := cashOffer("duffel_abc", "duffel", 45000)
	b := cashOffer("kiwi_def", "kiwi", 45000)
	b.ExpiresAt = b.ExpiresAt.Add(2 * time.Hour)
	b.CreatedAt = time.Now()

	assert.Equal(t, Hash(a), Hash(b),
		"the same itinerary at the same price is one offer regardless of source")
}

func TestHash_DistinguishesPrice(t *testing.T) {
	a := cashOffer("a", "duffel", 45000)
	b := cashOffer("b", "duffel", 44900)
	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestHash_DistinguishesMilesProgram(t *testing.T) {
	a := milesOffer("a", 7500, 12800)
	b := milesOffer("b", 7500, 12800)
	b.Miles.Program = models.ProgramLatamPass
	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestHash_MilesTaxesExcluded(t *testing.T) {
	a := milesOffer("a", 7500, 12800)
	b := milesOffer("b", 7500, 9900)
	assert.Equal(t, Hash(a), Hash(b),
		"taxes are mutable and must not change identity")
}

func TestHash_DistinguishesSegments(t *testing.T) {
	a := cashOffer("a", "duffel", 45000)
	b := cashOffer("b", "duffel", 45000)
	b.Segments[0].FlightNumber = "1403"
	assert.NotEqual(t, Hash(a), Hash(b))
}

func TestDedupe_CollapsesDuplicates(t *testing.T) {
	offers := []models.Offer{
		cashOffer("duffel_1", "duffel", 45000),
		cashOffer("kiwi_1", "kiwi", 45000),
		cashOffer("amadeus_1", "amadeus", 51200),
	}

	deduped := Dedupe(offers)
	require.Len(t, deduped, 2)
	assert.Equal(t, "duffel_1", deduped[0].ID, "first-seen record keeps its identity")
	assert.Equal(t, "amadeus_1", deduped[1].ID)
	for _, o := range deduped {
		assert.NotEmpty(t, o.Hash)
	}
}

func TestDedupe_MergeRefreshesMutableFields(t *testing.T) {
	older := milesOffer("smiles_1", 7500, 12800)
	newer := milesOffer("smiles_2", 7500, 9900)
	newer.ExpiresAt = older.ExpiresAt.Add(3 * time.Hour)

	deduped := Dedupe([]models.Offer{older, newer})
	require.Len(t, deduped, 1)

	kept := deduped[0]
	assert.Equal(t, "smiles_1", kept.ID)
	assert.Equal(t, int64(9900), kept.Miles.TaxesCents, "newer taxes win")
	assert.True(t, kept.ExpiresAt.Equal(newer.ExpiresAt), "later expiry wins")
}

func TestDedupe_MergeDoesNotRewindExpiry(t *testing.T) {
	first := cashOffer("a", "duffel", 45000)
	second := cashOffer("b", "kiwi", 45000)
	second.ExpiresAt = first.ExpiresAt.Add(-1 * time.Hour)

	deduped := Dedupe([]models.Offer{first, second})
	require.Len(t, deduped, 1)
	assert.True(t, deduped[0].ExpiresAt.Equal(first.ExpiresAt))
}

func TestDedupe_PreservesInputOrder(t *testing.T) {
	offers := []models.Offer{
		cashOffer("first", "duffel", 45000),
		milesOffer("second", 7500, 12800),
		cashOffer("third", "kiwi", 27800),
	}
	offers[2].Segments[0].FlightNumber = "4077"

	deduped := Dedupe(offers)
	require.Len(t, deduped, 3)
	assert.Equal(t, "first", deduped[0].ID)
	assert.Equal(t, "second", deduped[1].ID)
	assert.Equal(t, "third", deduped[2].ID)
}

func TestDedupe_Idempotent(t *testing.T) {
	offers := []models.Offer{
		cashOffer("a", "duffel", 45000),
		cashOffer("b", "kiwi", 45000),
		milesOffer("c", 7500, 12800),
	}

	once := Dedupe(offers)
	twice := Dedupe(once)
	assert.Equal(t, once, twice)
}
