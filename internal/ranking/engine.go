// Package ranking scores offers on four normalized dimensions and orders
// them by a weighted composite. Cash and miles offers are compared on one
// scale through the effective price: points converted at a configurable
// rate plus cash taxes.
package ranking

import (
	"fmt"
	"math"
	"sort"
	"strings"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/pkg/currency"
)

// Reference bands for normalization, in BRL and minutes. Typical domestic
// ranges; values at or beyond a band edge are pinned to 1.0 or the floor.
const (
	minPriceBRL     = 200.0
	maxPriceBRL     = 2000.0
	minDurationMins = 60.0
	maxDurationMins = 600.0

	// scoreFloor keeps ranking stable: a dimension never reaches exactly 0
	// unless a hard filter fires.
	scoreFloor = 0.1

	DefaultRatePerPoint = 0.03
)

// Weights for the four scoring dimensions. Defaults sum to 1.0; caller
// overrides are used as supplied, never renormalized.
type Weights struct {
	Price     float64 `json:"price_weight"`
	Duration  float64 `json:"duration_weight"`
	Stops     float64 `json:"stops_weight"`
	Ancillary float64 `json:"ancillary_weight"`
}

func DefaultWeights() Weights {
	return Weights{Price: 0.4, Duration: 0.3, Stops: 0.2, Ancillary: 0.1}
}

type Config struct {
	Weights      Weights
	RatePerPoint float64 // BRL value of one loyalty point
}

type Engine struct {
	config Config
}

func NewEngine(cfg Config) *Engine {
	if cfg.RatePerPoint == 0 {
		cfg.RatePerPoint = DefaultRatePerPoint
	}
	if cfg.Weights == (Weights{}) {
		cfg.Weights = DefaultWeights()
	}
	return &Engine{config: cfg}
}

func (e *Engine) Config() Config {
	return e.config
}

// Rank scores every offer and returns a new slice sorted by composite score
// descending. The sort is stable, so equal scores keep input order. Offers
// hit by a hard filter stay in the output with score 0 and a rationale naming
// the filter; callers decide whether to display them.
func (e *Engine) Rank(offers []models.Offer, q *models.SearchQuery) []models.Offer {
	ranked := make([]models.Offer, len(offers))
	for i, o := range offers {
		ranked[i] = o
		score, explanation := e.score(o, q)
		ranked[i].Score = &score
		ranked[i].ScoreExplanation = explanation
	}

	sort.SliceStable(ranked, func(i, j int) bool {
		return *ranked[i].Score > *ranked[j].Score
	})
	return ranked
}

func (e *Engine) score(o models.Offer, q *models.SearchQuery) (float64, string) {
	effective := e.EffectivePrice(o)

	if q != nil {
		if q.DirectOnly && o.Stops > 0 {
			return 0, "excluded: itinerary has stops (direct-only filter)"
		}
		if q.MaxPriceCents != nil && effective > float64(*q.MaxPriceCents)/100 {
			return 0, fmt.Sprintf("excluded: effective price %s exceeds maximum %s",
				currency.FormatBRL(effective), currency.FormatBRLCents(*q.MaxPriceCents))
		}
		if q.BagIncluded && !o.BaggageIncluded {
			return 0, "excluded: baggage not included (baggage filter)"
		}
	}

	priceScore := normalize(effective, minPriceBRL, maxPriceBRL)
	durationScore := normalize(float64(o.TotalDurationMinutes), minDurationMins, maxDurationMins)
	stopsScore := stopsTier(o.Stops)
	ancillaryScore := 0.5
	if o.BaggageIncluded {
		ancillaryScore = 1.0
	}

	w := e.config.Weights
	composite := w.Price*priceScore +
		w.Duration*durationScore +
		w.Stops*stopsScore +
		w.Ancillary*ancillaryScore
	composite = math.Round(composite*10000) / 10000

	explanation := e.explain(o, effective, priceScore, durationScore, stopsScore)
	return composite, explanation
}

// EffectivePrice is the BRL-equivalent value of an offer: the cash amount,
// or points converted at the configured rate plus taxes for miles offers.
func (e *Engine) EffectivePrice(o models.Offer) float64 {
	switch {
	case o.Type == models.OfferCash && o.Cash != nil:
		return o.Cash.Amount()
	case o.Type == models.OfferMiles && o.Miles != nil:
		return float64(o.Miles.Points)*e.config.RatePerPoint + o.Miles.Taxes()
	}
	return math.Inf(1)
}

// normalize maps value onto [scoreFloor, 1.0] by inverted linear
// interpolation over [min, max]: at or below min scores 1.0, at or above max
// scores the floor.
func normalize(value, min, max float64) float64 {
	if value <= min {
		return 1.0
	}
	if value >= max {
		return scoreFloor
	}
	score := 1.0 - (value-min)/(max-min)
	if score < scoreFloor {
		return scoreFloor
	}
	return score
}

func stopsTier(stops int) float64 {
	switch {
	case stops == 0:
		return 1.0
	case stops == 1:
		return 0.5
	default:
		return 0.2
	}
}

func (e *Engine) explain(o models.Offer, effective, priceScore, durationScore, stopsScore float64) string {
	var reasons []string

	if o.Type == models.OfferMiles && o.Miles != nil {
		reasons = append(reasons, fmt.Sprintf("%d pts %s + %s taxes (~%s effective)",
			o.Miles.Points, o.Miles.Program, currency.FormatBRL(o.Miles.Taxes()), currency.FormatBRL(effective)))
	} else {
		reasons = append(reasons, fmt.Sprintf("price %s", currency.FormatBRL(effective)))
	}

	hours := o.TotalDurationMinutes / 60
	mins := o.TotalDurationMinutes % 60
	durationStr := fmt.Sprintf("%dh%02dm", hours, mins)
	if o.Stops == 0 {
		reasons = append(reasons, fmt.Sprintf("direct, %s", durationStr))
	} else {
		reasons = append(reasons, fmt.Sprintf("%d stop(s), total %s", o.Stops, durationStr))
	}

	if o.BaggageIncluded {
		reasons = append(reasons, "baggage included")
	} else {
		reasons = append(reasons, "baggage not included")
	}

	if stopsScore == 1.0 && durationScore > 0.7 {
		reasons = append([]string{"direct and fast"}, reasons...)
	}
	if priceScore > 0.8 {
		reasons = append([]string{"best price"}, reasons...)
	}

	return strings.Join(reasons, " | ")
}
