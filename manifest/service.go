// Package manifest answers the two relationship queries over the
// flight/booking/passenger graph.
//
// DynamoDB holds no joins, so both queries are controlled multi-hop
// traversals across the junction table: flight -> bookings ->
// passengers in one direction, passenger -> booking -> flights in the
// other. Every query is a stateless, idempotent read; independent
// lookups within a query run as a concurrent all-or-fail fan-out.
package manifest

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aerodex/manifest/fault"
	"github.com/aerodex/manifest/repository"
	"github.com/aerodex/manifest/store"
	"github.com/aerodex/manifest/validate"
)

// FlightReader resolves flights by key or schedule.
type FlightReader interface {
	FindByID(ctx context.Context, flightID string) (*repository.FlightRecord, error)
	FindByNumberAndDate(ctx context.Context, flightNumber, departureDate string) (*repository.FlightRecord, error)
}

// JunctionReader traverses the flight-booking junction table.
type JunctionReader interface {
	BookingIDsForFlight(ctx context.Context, flightID string) ([]string, error)
	FlightsForBooking(ctx context.Context, bookingID string) ([]repository.FlightBookingRecord, error)
}

// PassengerReader resolves passengers by key or booking.
type PassengerReader interface {
	FindByID(ctx context.Context, passengerID string) (*repository.PassengerRecord, error)
	FindByBookingIDs(ctx context.Context, bookingIDs []string) ([]repository.PassengerRecord, error)
}

var (
	_ FlightReader    = (*repository.FlightRepository)(nil)
	_ JunctionReader  = (*repository.FlightBookingRepository)(nil)
	_ PassengerReader = (*repository.PassengerRepository)(nil)
)

// PassengerService is the query facade over the traversal engine.
type PassengerService struct {
	flights    FlightReader
	junctions  JunctionReader
	passengers PassengerReader
	log        *zap.SugaredLogger
}

// NewPassengerService creates a PassengerService.
func NewPassengerService(flights FlightReader, junctions JunctionReader, passengers PassengerReader, log *zap.SugaredLogger) *PassengerService {
	return &PassengerService{
		flights:    flights,
		junctions:  junctions,
		passengers: passengers,
		log:        log,
	}
}

// PassengersForFlight returns a summary of every passenger booked on
// the flight identified by (flightNumber, departureDate).
//
// With connectingOnly set, only bookings spanning more than one flight
// are considered: a booking with a single flight edge is a point-to-
// point itinerary, not a connection. The filter costs one extra index
// query per candidate booking, issued concurrently.
//
// An unknown flight is a NotFoundError. A known flight with no
// bookings is an empty result, never an error.
func (s *PassengerService) PassengersForFlight(ctx context.Context, flightNumber, departureDate string, connectingOnly bool) ([]PassengerSummary, error) {
	if err := validate.FlightNumber(flightNumber); err != nil {
		return nil, err
	}
	if err := validate.DepartureDate(departureDate); err != nil {
		return nil, err
	}

	flight, err := s.flights.FindByNumberAndDate(ctx, flightNumber, departureDate)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("Flight %s on %s not found", flightNumber, departureDate)
		}
		return nil, err
	}

	bookingIDs, err := s.junctions.BookingIDsForFlight(ctx, flight.FlightID)
	if err != nil {
		return nil, err
	}

	if connectingOnly {
		bookingIDs, err = s.filterConnecting(ctx, bookingIDs)
		if err != nil {
			return nil, err
		}
	}

	if len(bookingIDs) == 0 {
		s.log.Infow("no bookings found for flight", "flightId", flight.FlightID)
		return []PassengerSummary{}, nil
	}

	records, err := s.passengers.FindByBookingIDs(ctx, bookingIDs)
	if err != nil {
		return nil, err
	}

	summaries := make([]PassengerSummary, 0, len(records))
	for _, record := range records {
		summaries = append(summaries, PassengerSummary{
			PassengerID: record.PassengerID,
			FirstName:   record.FirstName,
			LastName:    record.LastName,
			BookingID:   record.BookingID,
		})
	}

	s.log.Infow("passengers resolved for flight",
		"flightId", flight.FlightID,
		"bookingCount", len(bookingIDs),
		"passengerCount", len(summaries),
	)
	return summaries, nil
}

// filterConnecting keeps only bookings whose edge count is strictly
// greater than one. One fan-out query per booking, all-or-fail.
func (s *PassengerService) filterConnecting(ctx context.Context, bookingIDs []string) ([]string, error) {
	connecting := make([]bool, len(bookingIDs))
	g, ctx := errgroup.WithContext(ctx)
	for i, bookingID := range bookingIDs {
		g.Go(func() error {
			edges, err := s.junctions.FlightsForBooking(ctx, bookingID)
			if err != nil {
				return err
			}
			connecting[i] = len(edges) > 1
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	filtered := make([]string, 0, len(bookingIDs))
	for i, bookingID := range bookingIDs {
		if connecting[i] {
			filtered = append(filtered, bookingID)
		}
	}
	return filtered, nil
}

// PassengerDetails returns a passenger with the flights reachable
// through their booking.
//
// Junction edges whose flight record is missing are dropped silently:
// edges are written without a cross-table transaction, so a gap is a
// tolerated data condition, not a query failure.
func (s *PassengerService) PassengerDetails(ctx context.Context, passengerID string) (*PassengerDetails, error) {
	if err := validate.PassengerID(passengerID); err != nil {
		return nil, err
	}

	passenger, err := s.passengers.FindByID(ctx, passengerID)
	if err != nil {
		if errors.Is(err, store.ErrNotFound) {
			return nil, fault.NotFound("Passenger with ID %s not found", passengerID)
		}
		return nil, err
	}

	edges, err := s.junctions.FlightsForBooking(ctx, passenger.BookingID)
	if err != nil {
		return nil, err
	}

	flights := make([]*repository.FlightRecord, len(edges))
	g, gctx := errgroup.WithContext(ctx)
	for i, edge := range edges {
		g.Go(func() error {
			flight, err := s.flights.FindByID(gctx, edge.FlightID)
			if errors.Is(err, store.ErrNotFound) {
				s.log.Warnw("dangling junction edge, flight missing",
					"flightId", edge.FlightID,
					"bookingId", edge.BookingID,
				)
				return nil
			}
			if err != nil {
				return err
			}
			flights[i] = flight
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	infos := make([]FlightInfo, 0, len(flights))
	for _, flight := range flights {
		if flight == nil {
			continue
		}
		infos = append(infos, FlightInfo{
			FlightNumber:     flight.FlightNumber,
			DepartureAirport: flight.DepartureAirport,
			ArrivalAirport:   flight.ArrivalAirport,
			DepartureDate:    flight.DepartureDate,
			ArrivalDate:      flight.ArrivalDate,
			Bookings:         []string{},
		})
	}

	return &PassengerDetails{
		PassengerID: passenger.PassengerID,
		FirstName:   passenger.FirstName,
		LastName:    passenger.LastName,
		Email:       passenger.Email,
		BookingID:   passenger.BookingID,
		Flights:     infos,
	}, nil
}
