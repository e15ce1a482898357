package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/fault"
	"github.com/aerodex/manifest/internal/bookingid"
	"github.com/aerodex/manifest/store"
	"github.com/aerodex/manifest/validate"
)

// BookingRecord is a row in the bookings table.
type BookingRecord struct {
	BookingID      string   `dynamodbav:"bookingId" json:"bookingId"`
	PassengerIDs   []string `dynamodbav:"passengerIds" json:"passengerIds"`
	FlightIDs      []string `dynamodbav:"flightIds" json:"flightIds"`
	PassengerCount int      `dynamodbav:"passengerCount" json:"passengerCount"`
	BookingDate    string   `dynamodbav:"bookingDate" json:"bookingDate"`
	CreatedAt      string   `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt      string   `dynamodbav:"updatedAt" json:"updatedAt"`
}

// BookingInput describes a booking to create. The booking id is
// generated, never supplied.
type BookingInput struct {
	PassengerIDs []string
	FlightIDs    []string
	BookingDate  string
}

// Booking id generation retries: bounded, cheap, no coordination
// service. The time component of the id shrinks the collision space;
// the conditional put catches the rest.
const (
	maxIDAttempts = 5
	retryBackoff  = 10 * time.Millisecond
)

// BookingRepository reads and writes the bookings table.
type BookingRepository struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewBookingRepository creates a BookingRepository.
func NewBookingRepository(s *store.Store, log *zap.SugaredLogger) *BookingRepository {
	return &BookingRepository{store: s, log: log}
}

// FindByID retrieves a booking by its primary key.
// Returns store.ErrNotFound when absent.
func (r *BookingRepository) FindByID(ctx context.Context, bookingID string) (*BookingRecord, error) {
	if bookingID == "" {
		return nil, store.ErrEmptyKey
	}

	item, err := r.store.Get(ctx, r.store.Config().BookingsTable, store.Key{
		"bookingId": &types.AttributeValueMemberS{Value: bookingID},
	})
	if err != nil {
		return nil, err
	}

	var record BookingRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("decode booking record: %w", err)
	}
	if record.BookingID == "" {
		return nil, fmt.Errorf("decode booking record: missing bookingId")
	}
	return &record, nil
}

// Create writes a new booking under a freshly generated id.
//
// Uniqueness is optimistic: the conditional put fails on an id
// collision, in which case the id is regenerated after a linear
// backoff (10ms x attempt), up to 5 attempts. Exhausting the attempts
// is a system error; nothing further up the stack retries it.
func (r *BookingRepository) Create(ctx context.Context, input BookingInput) (*BookingRecord, error) {
	if err := validate.Date(input.BookingDate, "bookingDate"); err != nil {
		return nil, err
	}

	now := nowISO()
	for attempt := 1; attempt <= maxIDAttempts; attempt++ {
		record := &BookingRecord{
			BookingID:      bookingid.New(),
			PassengerIDs:   input.PassengerIDs,
			FlightIDs:      input.FlightIDs,
			PassengerCount: len(input.PassengerIDs),
			BookingDate:    input.BookingDate,
			CreatedAt:      now,
			UpdatedAt:      now,
		}

		item, err := attributevalue.MarshalMap(record)
		if err != nil {
			return nil, fmt.Errorf("marshal booking: %w", err)
		}

		err = r.store.PutIfAbsent(ctx, r.store.Config().BookingsTable, item, "bookingId")
		if err == nil {
			r.log.Infow("booking created",
				"bookingId", record.BookingID,
				"flightCount", len(record.FlightIDs),
			)
			return record, nil
		}
		if !errors.Is(err, store.ErrAlreadyExists) {
			return nil, err
		}

		r.log.Warnw("booking id collision, regenerating",
			"bookingId", record.BookingID,
			"attempt", attempt,
		)
		if attempt < maxIDAttempts {
			time.Sleep(time.Duration(attempt) * retryBackoff)
		}
	}

	return nil, fault.System(
		fmt.Sprintf("failed to generate unique booking ID after %d attempts", maxIDAttempts),
		store.ErrAlreadyExists,
	)
}
