// Package seed loads a small demonstration graph: 8 flights, 7
// bookings, 12 passengers and the junction edges connecting them.
// Flight AY123 on 2024-01-15 ends up with 3 bookings and 7 passengers;
// passenger PAX001 holds a 4-leg multi-city itinerary.
package seed

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/repository"
)

// FlightWriter creates flight rows.
type FlightWriter interface {
	Create(ctx context.Context, input repository.FlightInput) (*repository.FlightRecord, error)
}

// BookingWriter creates booking rows. The booking id comes back in the
// record; the seeder never chooses it.
type BookingWriter interface {
	Create(ctx context.Context, input repository.BookingInput) (*repository.BookingRecord, error)
}

// PassengerWriter creates passenger rows.
type PassengerWriter interface {
	Create(ctx context.Context, input repository.PassengerInput) (*repository.PassengerRecord, error)
}

// JunctionWriter creates flight-booking edges.
type JunctionWriter interface {
	Create(ctx context.Context, flightID, bookingID string) (*repository.FlightBookingRecord, error)
}

// Summary reports what a seeding run wrote.
type Summary struct {
	RunID      string `json:"runId"`
	Flights    int    `json:"flights"`
	Bookings   int    `json:"bookings"`
	Passengers int    `json:"passengers"`
	Edges      int    `json:"edges"`
}

// Seeder writes the demonstration graph through the repositories.
type Seeder struct {
	flights    FlightWriter
	bookings   BookingWriter
	passengers PassengerWriter
	junctions  JunctionWriter
	log        *zap.SugaredLogger
}

// New creates a Seeder.
func New(flights FlightWriter, bookings BookingWriter, passengers PassengerWriter, junctions JunctionWriter, log *zap.SugaredLogger) *Seeder {
	return &Seeder{
		flights:    flights,
		bookings:   bookings,
		passengers: passengers,
		junctions:  junctions,
		log:        log,
	}
}

type flightSeed struct {
	number, from, to, departs, arrives string
}

type bookingSeed struct {
	// flight indexes into the flight list, in itinerary order.
	flights []int
	date    string
	// passenger indexes into the passenger list.
	passengers []int
}

type passengerSeed struct {
	id, first, last, email string
}

var flightSeeds = []flightSeed{
	{"AY123", "HEL", "LHR", "2024-01-15", "2024-01-15"},
	{"AY456", "LHR", "JFK", "2024-01-15", "2024-01-15"},
	{"AY789", "HEL", "CDG", "2024-01-15", "2024-01-15"},
	{"AY124", "LHR", "HEL", "2024-01-16", "2024-01-16"},
	{"AY457", "JFK", "LHR", "2024-01-16", "2024-01-16"},
	{"AY101", "HEL", "NRT", "2024-01-15", "2024-01-16"},
	{"AY102", "NRT", "HEL", "2024-01-17", "2024-01-17"},
	{"AY201", "HEL", "ARN", "2024-01-15", "2024-01-15"},
}

var passengerSeeds = []passengerSeed{
	{"PAX001", "Matti", "Virtanen", "matti.virtanen@example.com"},
	{"PAX002", "Anna", "Korhonen", "anna.korhonen@example.com"},
	{"PAX003", "Ville", "Korhonen", "ville.korhonen@example.com"},
	{"PAX004", "Aino", "Korhonen", "aino.korhonen@example.com"},
	{"PAX005", "Eero", "Korhonen", "eero.korhonen@example.com"},
	{"PAX006", "Liisa", "Jarvinen", "liisa.jarvinen@company.fi"},
	{"PAX007", "Jukka", "Makela", "jukka.makela@company.fi"},
	{"PAX008", "Sanna", "Virtanen", "sanna.virtanen@company.fi"},
	{"PAX009", "Hannu", "Laine", "hannu.laine@example.com"},
	{"PAX010", "Riitta", "Savolainen", "riitta.savolainen@example.com"},
	{"PAX011", "Timo", "Hakkarainen", "timo.hakkarainen@example.com"},
	{"PAX012", "Elina", "Nordstrom", "elina.nordstrom@example.com"},
}

var bookingSeeds = []bookingSeed{
	// Two solo travelers sharing a booking on AY123.
	{flights: []int{0}, date: "2024-01-01", passengers: []int{8, 11}},
	// Korhonen family round trip HEL-LHR-HEL.
	{flights: []int{0, 3}, date: "2024-01-02", passengers: []int{1, 2, 3, 4}},
	// Business multi-city: HEL-LHR-JFK-LHR-HEL.
	{flights: []int{0, 1, 4, 3}, date: "2024-01-03", passengers: []int{0}},
	// Corporate group to Paris.
	{flights: []int{2}, date: "2024-01-04", passengers: []int{5, 6, 7}},
	// Long-haul round trip to Tokyo.
	{flights: []int{5, 6}, date: "2024-01-05", passengers: []int{9}},
	// Same-day multi-city: Stockholm then Paris.
	{flights: []int{7, 2}, date: "2024-01-06", passengers: []int{10}},
	// Group hold on AY201, passengers not yet ticketed.
	{flights: []int{7}, date: "2024-01-07", passengers: nil},
}

// Run writes the whole graph. Flights first, then bookings (which
// assign ids), then passengers and junction edges referencing them.
// The first failed write aborts the run; seeding against live tables
// is rerunnable because flight and passenger writes are idempotent and
// bookings get fresh ids each run.
func (s *Seeder) Run(ctx context.Context) (*Summary, error) {
	runID := uuid.NewString()
	log := s.log.With("runId", runID)
	log.Infow("seeding demonstration data")

	flightIDs := make([]string, len(flightSeeds))
	for i, f := range flightSeeds {
		record, err := s.flights.Create(ctx, repository.FlightInput{
			FlightNumber:     f.number,
			DepartureAirport: f.from,
			ArrivalAirport:   f.to,
			DepartureDate:    f.departs,
			ArrivalDate:      f.arrives,
		})
		if err != nil {
			return nil, fmt.Errorf("seed flight %s: %w", f.number, err)
		}
		flightIDs[i] = record.FlightID
	}
	log.Infow("flights seeded", "count", len(flightIDs))

	summary := &Summary{RunID: runID, Flights: len(flightIDs)}

	for _, b := range bookingSeeds {
		ids := make([]string, len(b.flights))
		for i, fi := range b.flights {
			ids[i] = flightIDs[fi]
		}
		paxIDs := make([]string, len(b.passengers))
		for i, pi := range b.passengers {
			paxIDs[i] = passengerSeeds[pi].id
		}

		booking, err := s.bookings.Create(ctx, repository.BookingInput{
			PassengerIDs: paxIDs,
			FlightIDs:    ids,
			BookingDate:  b.date,
		})
		if err != nil {
			return nil, fmt.Errorf("seed booking for %s: %w", b.date, err)
		}
		summary.Bookings++

		for _, pi := range b.passengers {
			p := passengerSeeds[pi]
			if _, err := s.passengers.Create(ctx, repository.PassengerInput{
				PassengerID: p.id,
				FirstName:   p.first,
				LastName:    p.last,
				Email:       p.email,
				BookingID:   booking.BookingID,
			}); err != nil {
				return nil, fmt.Errorf("seed passenger %s: %w", p.id, err)
			}
			summary.Passengers++
		}

		for _, flightID := range ids {
			if _, err := s.junctions.Create(ctx, flightID, booking.BookingID); err != nil {
				return nil, fmt.Errorf("seed edge %s/%s: %w", flightID, booking.BookingID, err)
			}
			summary.Edges++
		}
	}

	log.Infow("seeding complete",
		"flights", summary.Flights,
		"bookings", summary.Bookings,
		"passengers", summary.Passengers,
		"edges", summary.Edges,
	)
	return summary, nil
}
