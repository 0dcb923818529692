package providers

import (
	"context"
	"fmt"
	"math/rand"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/models"
	"github.com/Apariciolemes/IA-AGENT-TRAVEL/internal/timezone"
)

// Nonstop flight times in minutes for common domestic routes. Unknown routes
// fall back to a generic medium-haul duration.
var routeDurations = map[string]int{
	"GRU-REC": 180, "GRU-GIG": 65, "GRU-BSB": 105, "GRU-SSA": 145,
	"GRU-FOR": 200, "GRU-POA": 95, "GRU-CNF": 70, "GRU-MAO": 235,
	"GIG-BSB": 110, "GIG-REC": 165, "GIG-SSA": 120, "GIG-POA": 110,
	"BSB-REC": 135, "BSB-SSA": 110, "BSB-MAO": 160, "CNF-REC": 150,
	"POA-FLN": 55, "REC-NAT": 50, "REC-FOR": 75, "SSA-REC": 80,
}

const defaultRouteMinutes = 150

func routeMinutes(origin, destination string) int {
	key := strings.ToUpper(origin) + "-" + strings.ToUpper(destination)
	if d, ok := routeDurations[key]; ok {
		return d
	}
	rev := strings.ToUpper(destination) + "-" + strings.ToUpper(origin)
	if d, ok := routeDurations[rev]; ok {
		return d
	}
	return defaultRouteMinutes
}

// buildItinerary synthesizes the segment list for a query: one outbound leg
// (plus an optional connection) and the mirrored return legs when ret_date is
// set. Stop count and total duration are derived from the segments.
func buildItinerary(q models.SearchQuery, carrier, flightNumber, fareClass, equipment string, departHour, departMinute, stops int) ([]models.Segment, int, error) {
	legs, err := directionLegs(q.Origin, q.Destination, q.OutDate, carrier, flightNumber, fareClass, equipment, departHour, departMinute, stops)
	if err != nil {
		return nil, 0, err
	}
	if q.RetDate != nil {
		ret, err := directionLegs(q.Destination, q.Origin, *q.RetDate, carrier, flightNumber+"1", fareClass, equipment, departHour+4, departMinute, stops)
		if err != nil {
			return nil, 0, err
		}
		legs = append(legs, ret...)
	}
	total := 0
	for _, s := range legs {
		total += s.DurationMinutes
	}
	return legs, total, nil
}

func directionLegs(origin, destination, date, carrier, flightNumber, fareClass, equipment string, hour, minute, stops int) ([]models.Segment, error) {
	depart, err := timezone.DepartureAt(date, hour, minute, origin)
	if err != nil {
		return nil, err
	}

	if stops == 0 {
		dur := routeMinutes(origin, destination)
		return []models.Segment{newSegment(carrier, flightNumber, origin, destination, depart, dur, fareClass, equipment)}, nil
	}

	// One connection through a hub, split roughly in half with a layover.
	hub := connectionHub(origin, destination)
	half := routeMinutes(origin, destination)/2 + 25
	first := newSegment(carrier, flightNumber, origin, hub, depart, half, fareClass, equipment)
	connDepart := first.Arrive.Add(70 * time.Minute)
	second := newSegment(carrier, flightNumber+"2", hub, destination, connDepart, half, fareClass, equipment)
	return []models.Segment{first, second}, nil
}

func newSegment(carrier, flightNumber, origin, destination string, depart time.Time, durationMinutes int, fareClass, equipment string) models.Segment {
	return models.Segment{
		Carrier:         carrier,
		FlightNumber:    flightNumber,
		Origin:          strings.ToUpper(origin),
		Destination:     strings.ToUpper(destination),
		Depart:          depart,
		Arrive:          depart.Add(time.Duration(durationMinutes) * time.Minute),
		DurationMinutes: durationMinutes,
		FareClass:       fareClass,
		Equipment:       equipment,
	}
}

func connectionHub(origin, destination string) string {
	for _, hub := range []string{"BSB", "CNF", "GRU"} {
		if hub != strings.ToUpper(origin) && hub != strings.ToUpper(destination) {
			return hub
		}
	}
	return "BSB"
}

// stopsPerDirection derives the same-direction stop count from the segment
// list. Round-trip itineraries built here are symmetric.
func stopsPerDirection(segments []models.Segment, roundTrip bool) int {
	n := len(segments)
	if roundTrip {
		n /= 2
	}
	if n < 1 {
		return 0
	}
	return n - 1
}

func newOfferID(source string) string {
	return fmt.Sprintf("%s_%s", source, uuid.New().String()[:12])
}

// simulateLatency sleeps for a random duration in [base, base+jitter) or
// returns early if the context is cancelled.
func simulateLatency(ctx context.Context, base, jitter time.Duration) error {
	delay := base + time.Duration(rand.Int63n(int64(jitter)))
	select {
	case <-time.After(delay):
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}
