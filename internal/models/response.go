package models

// Assumptions records the scoring parameters a ranking was computed with, so
// callers can interpret the scores.
type Assumptions struct {
	RatePerPoint    float64 `json:"rate_per_point"`
	PriceWeight     float64 `json:"price_weight"`
	DurationWeight  float64 `json:"duration_weight"`
	StopsWeight     float64 `json:"stops_weight"`
	AncillaryWeight float64 `json:"ancillary_weight"`
}

// RankedResult is the final output of a search or compare: offers in score
// order with the cache provenance and scoring assumptions attached.
type RankedResult struct {
	Ranked          []Offer     `json:"ranked"`
	Assumptions     Assumptions `json:"assumptions"`
	Cached          bool        `json:"cached"`
	CacheAgeMinutes *int        `json:"cache_age_minutes,omitempty"`
}

type ErrorResponse struct {
	Error   string `json:"error"`
	Message string `json:"message"`
	Code    int    `json:"code"`
}
