package timezone

import (
	"strings"
	"time"
)

var (
	BRT *time.Location // UTC-3 - Brasília time (most of Brazil)
	AMT *time.Location // UTC-4 - Amazon time (Manaus, Cuiabá)
	FNT *time.Location // UTC-2 - Fernando de Noronha
)

func init() {
	BRT = time.FixedZone("BRT", -3*60*60)
	AMT = time.FixedZone("AMT", -4*60*60)
	FNT = time.FixedZone("FNT", -2*60*60)
}

var airportTimezones = map[string]string{
	// BRT (UTC-3)
	"GRU": "BRT", // São Paulo - Guarulhos
	"CGH": "BRT", // São Paulo - Congonhas
	"VCP": "BRT", // Campinas - Viracopos
	"GIG": "BRT", // Rio de Janeiro - Galeão
	"SDU": "BRT", // Rio de Janeiro - Santos Dumont
	"BSB": "BRT", // Brasília
	"CNF": "BRT", // Belo Horizonte - Confins
	"REC": "BRT", // Recife - Guararapes
	"SSA": "BRT", // Salvador
	"FOR": "BRT", // Fortaleza
	"POA": "BRT", // Porto Alegre
	"CWB": "BRT", // Curitiba
	"FLN": "BRT", // Florianópolis
	"NAT": "BRT", // Natal
	"MCZ": "BRT", // Maceió
	"BEL": "BRT", // Belém
	"VIX": "BRT", // Vitória
	"GYN": "BRT", // Goiânia

	// AMT (UTC-4)
	"MAO": "AMT", // Manaus
	"CGB": "AMT", // Cuiabá
	"PVH": "AMT", // Porto Velho
	"BVB": "AMT", // Boa Vista
	"CGR": "AMT", // Campo Grande

	// FNT (UTC-2)
	"FEN": "FNT", // Fernando de Noronha
}

func ByAirport(code string) string {
	code = strings.ToUpper(code)
	if tz, ok := airportTimezones[code]; ok {
		return tz
	}
	return "BRT"
}

func LocationByAirport(code string) *time.Location {
	switch ByAirport(code) {
	case "AMT":
		return AMT
	case "FNT":
		return FNT
	default:
		return BRT
	}
}

// DepartureAt builds a local departure timestamp for a date string
// (YYYY-MM-DD) and a time of day at the given airport.
func DepartureAt(date string, hour, minute int, airport string) (time.Time, error) {
	d, err := time.Parse("2006-01-02", date)
	if err != nil {
		return time.Time{}, err
	}
	loc := LocationByAirport(airport)
	return time.Date(d.Year(), d.Month(), d.Day(), hour, minute, 0, 0, loc), nil
}
