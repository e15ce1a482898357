package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/store"
)

// FlightBookingRecord is an edge in the flight-booking junction table,
// keyed by (flightId, bookingId). Edges are created once and never
// updated or deleted; referential integrity is the writer's
// responsibility since no cross-table transaction guards the edge.
type FlightBookingRecord struct {
	FlightID  string `dynamodbav:"flightId" json:"flightId"`
	BookingID string `dynamodbav:"bookingId" json:"bookingId"`
	CreatedAt string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// FlightBookingRepository reads and writes the junction table.
type FlightBookingRepository struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewFlightBookingRepository creates a FlightBookingRepository.
func NewFlightBookingRepository(s *store.Store, log *zap.SugaredLogger) *FlightBookingRepository {
	return &FlightBookingRepository{store: s, log: log}
}

// Create writes a junction edge between a flight and a booking. The
// referenced flight and booking rows must already exist.
func (r *FlightBookingRepository) Create(ctx context.Context, flightID, bookingID string) (*FlightBookingRecord, error) {
	if flightID == "" || bookingID == "" {
		return nil, store.ErrEmptyKey
	}

	now := nowISO()
	record := &FlightBookingRecord{
		FlightID:  flightID,
		BookingID: bookingID,
		CreatedAt: now,
		UpdatedAt: now,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshal flight booking: %w", err)
	}
	if err := r.store.Put(ctx, r.store.Config().FlightBookingsTable, item); err != nil {
		return nil, err
	}

	r.log.Debugw("flight booking edge created",
		"flightId", flightID,
		"bookingId", bookingID,
	)
	return record, nil
}

// BookingIDsForFlight returns the booking ids linked to a flight,
// from the junction table's base key.
func (r *FlightBookingRepository) BookingIDsForFlight(ctx context.Context, flightID string) ([]string, error) {
	if flightID == "" {
		return nil, store.ErrEmptyKey
	}

	items, err := r.store.Query(ctx, store.Query{
		Table:        r.store.Config().FlightBookingsTable,
		KeyCondition: expression.Key("flightId").Equal(expression.Value(flightID)),
	})
	if err != nil {
		return nil, err
	}

	bookingIDs := make([]string, 0, len(items))
	for _, item := range items {
		record, err := decodeFlightBooking(item)
		if err != nil {
			return nil, err
		}
		bookingIDs = append(bookingIDs, record.BookingID)
	}
	return bookingIDs, nil
}

// FlightsForBooking returns the junction edges for a booking via the
// inverse BookingFlightIndex GSI.
func (r *FlightBookingRepository) FlightsForBooking(ctx context.Context, bookingID string) ([]FlightBookingRecord, error) {
	if bookingID == "" {
		return nil, store.ErrEmptyKey
	}

	items, err := r.store.Query(ctx, store.Query{
		Table:        r.store.Config().FlightBookingsTable,
		Index:        store.BookingFlightIndex,
		KeyCondition: expression.Key("bookingId").Equal(expression.Value(bookingID)),
	})
	if err != nil {
		return nil, err
	}

	records := make([]FlightBookingRecord, 0, len(items))
	for _, item := range items {
		record, err := decodeFlightBooking(item)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

func decodeFlightBooking(item store.Item) (*FlightBookingRecord, error) {
	var record FlightBookingRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("decode flight booking record: %w", err)
	}
	if record.FlightID == "" || record.BookingID == "" {
		return nil, fmt.Errorf("decode flight booking record: missing key attributes")
	}
	return &record, nil
}
