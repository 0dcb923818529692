package models

import "time"

type CabinClass string

const (
	CabinEconomy        CabinClass = "ECONOMY"
	CabinPremiumEconomy CabinClass = "PREMIUM_ECONOMY"
	CabinBusiness       CabinClass = "BUSINESS"
	CabinFirst          CabinClass = "FIRST"
)

func (c CabinClass) Valid() bool {
	switch c {
	case CabinEconomy, CabinPremiumEconomy, CabinBusiness, CabinFirst:
		return true
	}
	return false
}

type OfferType string

const (
	OfferCash  OfferType = "cash"
	OfferMiles OfferType = "miles"
)

type MilesProgram string

const (
	ProgramSmiles         MilesProgram = "smiles"
	ProgramLatamPass      MilesProgram = "latam_pass"
	ProgramTudoAzul       MilesProgram = "tudoazul"
	ProgramAzulFidelidade MilesProgram = "azul_fidelidade"
)

// Segment is one flight leg. Segment order is meaningful: outbound legs
// precede return legs.
type Segment struct {
	Carrier         string    `json:"carrier"`
	FlightNumber    string    `json:"flight_number"`
	Origin          string    `json:"origin"`
	Destination     string    `json:"destination"`
	Depart          time.Time `json:"depart"`
	Arrive          time.Time `json:"arrive"`
	DurationMinutes int       `json:"duration_minutes"`
	FareClass       string    `json:"fare_class"`
	Equipment       string    `json:"equipment,omitempty"`
}

// CashPrice is a monetary fare in integer cents.
type CashPrice struct {
	Currency    string `json:"currency"`
	AmountCents int64  `json:"amount_cents"`
}

func (p CashPrice) Amount() float64 {
	return float64(p.AmountCents) / 100
}

// MilesPrice is a loyalty-points fare plus cash taxes in integer cents.
type MilesPrice struct {
	Program    MilesProgram `json:"program"`
	Points     int          `json:"points"`
	TaxesCents int64        `json:"taxes_cents"`
}

func (p MilesPrice) Taxes() float64 {
	return float64(p.TaxesCents) / 100
}

// Offer is a single priced itinerary from one source. Exactly one of Cash or
// Miles is set, matching Type. Hash is the canonical identity assigned by the
// canonicalizer; Score and ScoreExplanation are populated only by the ranking
// engine.
type Offer struct {
	ID     string    `json:"id"`
	Hash   string    `json:"hash,omitempty"`
	Source string    `json:"source"`
	Type   OfferType `json:"offer_type"`

	Cabin CabinClass  `json:"cabin"`
	Cash  *CashPrice  `json:"cash,omitempty"`
	Miles *MilesPrice `json:"miles,omitempty"`

	BaggageIncluded      bool      `json:"baggage_included"`
	Segments             []Segment `json:"segments"`
	OutDate              string    `json:"out_date"`
	RetDate              *string   `json:"ret_date,omitempty"`
	Stops                int       `json:"stops_count"`
	TotalDurationMinutes int       `json:"total_duration_minutes"`

	CreatedAt time.Time `json:"created_at"`
	ExpiresAt time.Time `json:"expires_at"`

	Score            *float64 `json:"score,omitempty"`
	ScoreExplanation string   `json:"score_explanation,omitempty"`
}

// Expired reports whether the offer is past its expiry at the given instant.
func (o *Offer) Expired(now time.Time) bool {
	return !o.ExpiresAt.After(now)
}
