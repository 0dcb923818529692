// Package canonical computes stable offer identities and deduplicates offer
// sets across sources.
package canonical

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

// Hash returns the canonical identity of an offer: a digest of its ordered
// segment sequence plus a price-class tag. Taxes and expiry are excluded so
// that a refreshed observation of the same itinerary keeps its identity.
func Hash(o models.Offer) string {
	var b strings.Builder
	for _, s := range o.Segments {
		fmt.Fprintf(&b, "%s|%s|%s|%s|%d|%d|%d|%s;",
			s.Carrier,
			s.FlightNumber,
			s.Origin,
			s.Destination,
			s.Depart.UTC().Unix(),
			s.Arrive.UTC().Unix(),
			s.DurationMinutes,
			s.FareClass,
		)
	}
	b.WriteString(priceTag(o))
	sum := sha256.Sum256([]byte(b.String()))
	return hex.EncodeToString(sum[:])
}

func priceTag(o models.Offer) string {
	switch {
	case o.Type == models.OfferCash && o.Cash != nil:
		return fmt.Sprintf("cash:%d", o.Cash.AmountCents)
	case o.Type == models.OfferMiles && o.Miles != nil:
		return fmt.Sprintf("miles:%s:%d", o.Miles.Program, o.Miles.Points)
	}
	return "unknown"
}

// Dedupe collapses offers that share a canonical hash. The first-seen record
// keeps its identity and ID; mutable fields (price amount, taxes, expiry) are
// overwritten by each newer observation, so a refreshed price is never
// silently dropped. Input order is preserved.
func Dedupe(offers []models.Offer) []models.Offer {
	result := make([]models.Offer, 0, len(offers))
	index := make(map[string]int, len(offers))

	for _, o := range offers {
		o.Hash = Hash(o)
		i, seen := index[o.Hash]
		if !seen {
			index[o.Hash] = len(result)
			result = append(result, o)
			continue
		}
		merge(&result[i], o)
	}
	return result
}

// merge refreshes the kept record's mutable fields from a newer observation.
func merge(kept *models.Offer, next models.Offer) {
	if kept.Cash != nil && next.Cash != nil {
		kept.Cash.AmountCents = next.Cash.AmountCents
	}
	if kept.Miles != nil && next.Miles != nil {
		kept.Miles.TaxesCents = next.Miles.TaxesCents
	}
	if next.ExpiresAt.After(kept.ExpiresAt) {
		kept.ExpiresAt = next.ExpiresAt
	}
}
