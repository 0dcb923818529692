package timezone

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestByAirport(t *testing.T) {
	assert.Equal(t, "BRT", ByAirport("GRU"))
	assert.Equal(t, "BRT", ByAirport("rec"))
	assert.Equal(t, "AMT", ByAirport("MAO"))
	assert.Equal(t, "FNT", ByAirport("FEN"))
	assert.Equal(t, "BRT", ByAirport("XXX"), "unknown airports fall back to Brasília time")
}

func TestLocationByAirport_Offsets(t *testing.T) {
	ref := time.Date(2025, 11, 12, 12, 0, 0, 0, time.UTC)

	cases := map[string]int{
		"GRU": -3 * 3600,
		"MAO": -4 * 3600,
		"FEN": -2 * 3600,
	}
	for code, offset := range cases {
		_, got := ref.In(LocationByAirport(code)).Zone()
		assert.Equal(t, offset, got, code)
	}
}

func TestDepartureAt(t *testing.T) {
	dep, err := DepartureAt("2025-11-12", 8, 30, "GRU")
	require.NoError(t, err)

	assert.Equal(t, time.Date(2025, 11, 12, 11, 30, 0, 0, time.UTC).Unix(), dep.Unix(),
		"08:30 in São Paulo is 11:30 UTC")
}

func TestDepartureAt_BadDate(t *testing.T) {
	_, err := DepartureAt("12/11/2025", 8, 30, "GRU")
	assert.Error(t, err)
}
