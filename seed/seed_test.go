package seed_test

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"go.uber.org/zap"

	"github.com/aerodex/manifest/repository"
	"github.com/aerodex/manifest/seed"
)

// recorder captures everything a seeding run writes.
type recorder struct {
	flights    []repository.FlightRecord
	bookings   []repository.BookingRecord
	passengers []repository.PassengerRecord
	edges      []repository.FlightBookingRecord

	failEdge string
}

func (r *recorder) Create(ctx context.Context, input repository.FlightInput) (*repository.FlightRecord, error) {
	record := repository.FlightRecord{
		FlightID:         repository.FlightID(input.FlightNumber, input.DepartureDate),
		FlightNumber:     input.FlightNumber,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureDate:    input.DepartureDate,
		ArrivalDate:      input.ArrivalDate,
	}
	r.flights = append(r.flights, record)
	return &record, nil
}

type bookingWriter struct{ *recorder }

func (w bookingWriter) Create(ctx context.Context, input repository.BookingInput) (*repository.BookingRecord, error) {
	record := repository.BookingRecord{
		BookingID:      fmt.Sprintf("BKG%03d", len(w.bookings)+1),
		PassengerIDs:   input.PassengerIDs,
		FlightIDs:      input.FlightIDs,
		PassengerCount: len(input.PassengerIDs),
		BookingDate:    input.BookingDate,
	}
	w.bookings = append(w.bookings, record)
	return &record, nil
}

type passengerWriter struct{ *recorder }

func (w passengerWriter) Create(ctx context.Context, input repository.PassengerInput) (*repository.PassengerRecord, error) {
	record := repository.PassengerRecord{
		PassengerID: input.PassengerID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		BookingID:   input.BookingID,
	}
	w.passengers = append(w.passengers, record)
	return &record, nil
}

type junctionWriter struct{ *recorder }

func (w junctionWriter) Create(ctx context.Context, flightID, bookingID string) (*repository.FlightBookingRecord, error) {
	if flightID == w.failEdge {
		return nil, errors.New("table missing")
	}
	record := repository.FlightBookingRecord{FlightID: flightID, BookingID: bookingID}
	w.edges = append(w.edges, record)
	return &record, nil
}

func newSeeder(r *recorder) *seed.Seeder {
	return seed.New(r, bookingWriter{r}, passengerWriter{r}, junctionWriter{r}, zap.NewNop().Sugar())
}

func TestRun_WritesWholeGraph(t *testing.T) {
	rec := &recorder{}
	summary, err := newSeeder(rec).Run(context.Background())
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if summary.Flights != 8 || len(rec.flights) != 8 {
		t.Errorf("expected 8 flights, got summary %d, written %d", summary.Flights, len(rec.flights))
	}
	if summary.Bookings != 7 || len(rec.bookings) != 7 {
		t.Errorf("expected 7 bookings, got summary %d, written %d", summary.Bookings, len(rec.bookings))
	}
	if summary.Passengers != 12 || len(rec.passengers) != 12 {
		t.Errorf("expected 12 passengers, got summary %d, written %d", summary.Passengers, len(rec.passengers))
	}
	if summary.Edges != 13 || len(rec.edges) != 13 {
		t.Errorf("expected 13 edges, got summary %d, written %d", summary.Edges, len(rec.edges))
	}
	if summary.RunID == "" {
		t.Error("expected a run id")
	}
}

func TestRun_AY123SpansThreeBookingsSevenPassengers(t *testing.T) {
	rec := &recorder{}
	if _, err := newSeeder(rec).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	bookings := map[string]bool{}
	for _, edge := range rec.edges {
		if edge.FlightID == "AY123-2024-01-15" {
			bookings[edge.BookingID] = true
		}
	}
	if len(bookings) != 3 {
		t.Fatalf("expected AY123 to span 3 bookings, got %d", len(bookings))
	}

	passengers := 0
	for _, p := range rec.passengers {
		if bookings[p.BookingID] {
			passengers++
		}
	}
	if passengers != 7 {
		t.Errorf("expected 7 passengers on AY123, got %d", passengers)
	}
}

func TestRun_PassengersReferenceAssignedBookings(t *testing.T) {
	rec := &recorder{}
	if _, err := newSeeder(rec).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	assigned := map[string]bool{}
	for _, b := range rec.bookings {
		assigned[b.BookingID] = true
	}
	for _, p := range rec.passengers {
		if !assigned[p.BookingID] {
			t.Errorf("passenger %s references unknown booking %q", p.PassengerID, p.BookingID)
		}
	}
}

func TestRun_PAX001HasFourLegItinerary(t *testing.T) {
	rec := &recorder{}
	if _, err := newSeeder(rec).Run(context.Background()); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	var bookingID string
	for _, p := range rec.passengers {
		if p.PassengerID == "PAX001" {
			bookingID = p.BookingID
		}
	}
	if bookingID == "" {
		t.Fatal("PAX001 not seeded")
	}

	legs := map[string]bool{}
	for _, edge := range rec.edges {
		if edge.BookingID == bookingID {
			legs[edge.FlightID] = true
		}
	}
	if len(legs) != 4 {
		t.Errorf("expected 4 legs for PAX001, got %v", legs)
	}
	if !legs["AY123-2024-01-15"] || !legs["AY124-2024-01-16"] {
		t.Errorf("expected itinerary to include AY123 and AY124, got %v", legs)
	}
}

func TestRun_AbortsOnFirstFailure(t *testing.T) {
	rec := &recorder{failEdge: "AY456-2024-01-15"}
	_, err := newSeeder(rec).Run(context.Background())
	if err == nil {
		t.Fatal("expected error when an edge write fails")
	}
	// Bookings 1 and 2 complete before booking 3 hits the failing edge.
	if len(rec.bookings) != 3 {
		t.Errorf("expected run to stop at booking 3, got %d bookings", len(rec.bookings))
	}
}
