// Package fingerprint derives deterministic cache keys from search queries.
package fingerprint

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"strings"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
)

const keyPrefix = "search:"

// Generate returns the cache key for a query. Only fields that change which
// offers the sources return are included: origin, destination, dates,
// passenger counts, and cabin. Filters and ranking preferences are excluded
// so that differently-filtered requests for the same itinerary share one
// cache entry.
func Generate(q models.SearchQuery) string {
	ret := ""
	if q.RetDate != nil {
		ret = *q.RetDate
	}
	raw := fmt.Sprintf("%s:%s:%s:%s:%d:%d:%d:%s",
		strings.ToUpper(q.Origin),
		strings.ToUpper(q.Destination),
		q.OutDate,
		ret,
		q.Pax.Adults,
		q.Pax.Children,
		q.Pax.Infants,
		q.Cabin,
	)
	sum := sha256.Sum256([]byte(raw))
	return keyPrefix + hex.EncodeToString(sum[:])
}
