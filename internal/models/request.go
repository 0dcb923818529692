package models

import (
	"fmt"
	"regexp"
	"strings"
	"time"
)

const DateLayout = "2006-01-02"

var locationCodeRe = regexp.MustCompile(`^[A-Z]{3}$`)

// Pax holds passenger counts for a search.
type Pax struct {
	Adults   int `json:"adults"`
	Children int `json:"children"`
	Infants  int `json:"infants"`
}

// SearchQuery is the validated search input. Filter fields affect ranking
// only, never which source results are fetched or how they are cached.
type SearchQuery struct {
	Origin      string     `json:"origin"`
	Destination string     `json:"destination"`
	OutDate     string     `json:"out_date"`
	RetDate     *string    `json:"ret_date,omitempty"`
	Pax         Pax        `json:"pax"`
	Cabin       CabinClass `json:"cabin"`

	BagIncluded       bool           `json:"bag_included"`
	DirectOnly        bool           `json:"direct_only"`
	MaxPriceCents     *int64         `json:"max_price_cents,omitempty"`
	PreferredPrograms []MilesProgram `json:"preferred_programs,omitempty"`
}

// ValidationError reports a malformed query field. It is an expected outcome,
// surfaced synchronously before any fetch.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Reason)
}

// Normalize uppercases location codes and applies defaults. Call before
// Validate.
func (q *SearchQuery) Normalize() {
	q.Origin = strings.ToUpper(strings.TrimSpace(q.Origin))
	q.Destination = strings.ToUpper(strings.TrimSpace(q.Destination))
	if q.Pax.Adults == 0 && q.Pax.Children == 0 && q.Pax.Infants == 0 {
		q.Pax.Adults = 1
	}
	if q.Cabin == "" {
		q.Cabin = CabinEconomy
	}
	if q.RetDate != nil && *q.RetDate == "" {
		q.RetDate = nil
	}
}

func (q *SearchQuery) Validate() error {
	if !locationCodeRe.MatchString(q.Origin) {
		return &ValidationError{Field: "origin", Reason: "must be a 3-letter location code"}
	}
	if !locationCodeRe.MatchString(q.Destination) {
		return &ValidationError{Field: "destination", Reason: "must be a 3-letter location code"}
	}
	out, err := time.Parse(DateLayout, q.OutDate)
	if err != nil {
		return &ValidationError{Field: "out_date", Reason: "must be YYYY-MM-DD"}
	}
	if q.RetDate != nil {
		ret, err := time.Parse(DateLayout, *q.RetDate)
		if err != nil {
			return &ValidationError{Field: "ret_date", Reason: "must be YYYY-MM-DD"}
		}
		if ret.Before(out) {
			return &ValidationError{Field: "ret_date", Reason: "must not be before out_date"}
		}
	}
	if q.Pax.Adults < 1 {
		return &ValidationError{Field: "pax.adults", Reason: "at least one adult is required"}
	}
	if q.Pax.Children < 0 {
		return &ValidationError{Field: "pax.children", Reason: "must not be negative"}
	}
	if q.Pax.Infants < 0 {
		return &ValidationError{Field: "pax.infants", Reason: "must not be negative"}
	}
	if q.Pax.Infants > q.Pax.Adults {
		return &ValidationError{Field: "pax.infants", Reason: "cannot exceed number of adults"}
	}
	if !q.Cabin.Valid() {
		return &ValidationError{Field: "cabin", Reason: "unknown cabin class"}
	}
	if q.MaxPriceCents != nil && *q.MaxPriceCents <= 0 {
		return &ValidationError{Field: "max_price_cents", Reason: "must be positive"}
	}
	return nil
}
