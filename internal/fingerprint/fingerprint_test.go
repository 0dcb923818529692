package fingerprint

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

func baseQuery() models.SearchQuery {
	return models.SearchQuery{
		Origin:      "GRU",
		Destination: "REC",
		OutDate:     "2025-11-12",
		Pax:         models.Pax{Adults: 1},
		Cabin:       models.CabinEconomy,
	}
}

func TestGenerate_Deterministic(t *testing.T) {
	q := baseQuery()
	require.Equal(t, Generate(q), Generate(q))
}

func TestGenerate_IgnoresFilterFields(t *testing.T) {
	plain := baseQuery()

	filtered := baseQuery()
	filtered.DirectOnly = true
	filtered.BagIncluded = true
	maxPrice := int64(50000)
	filtered.MaxPriceCents = &maxPrice
	filtered.PreferredPrograms = []models.MilesProgram{models.ProgramSmiles}

	assert.Equal(t, Generate(plain), Generate(filtered),
		"differently-filtered requests for the same itinerary must share a cache entry")
}

func TestGenerate_DistinguishesResultAffectingFields(t *testing.T) {
	base := baseQuery()
	ret := "2025-11-20"

	variants := map[string]models.SearchQuery{}

	q := baseQuery()
	q.Origin = "GIG"
	variants["origin"] = q

	q = baseQuery()
	q.Destination = "SSA"
	variants["destination"] = q

	q = baseQuery()
	q.OutDate = "2025-11-13"
	variants["out_date"] = q

	q = baseQuery()
	q.RetDate = &ret
	variants["ret_date"] = q

	q = baseQuery()
	q.Pax.Adults = 2
	variants["adults"] = q

	q = baseQuery()
	q.Pax.Children = 1
	variants["children"] = q

	q = baseQuery()
	q.Pax = models.Pax{Adults: 1, Infants: 1}
	variants["infants"] = q

	q = baseQuery()
	q.Cabin = models.CabinBusiness
	variants["cabin"] = q

	seen := map[string]string{Generate(base): "base"}
	for field, v := range variants {
		fp := Generate(v)
		prev, dup := seen[fp]
		assert.False(t, dup, "fingerprint collision between %q and %q", field, prev)
		seen[fp] = field
	}
}

func TestGenerate_CaseInsensitiveLocations(t *testing.T) {
	lower := baseQuery()
	lower.Origin = "gru"
	lower.Destination = "rec"

	assert.Equal(t, Generate(baseQuery()), Generate(lower))
}
