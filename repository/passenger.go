package repository

import (
	"context"
	"fmt"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"github.com/aerodex/manifest/store"
	"github.com/aerodex/manifest/validate"
)

// PassengerRecord is a row in the passengers table. A passenger
// belongs to exactly one booking.
type PassengerRecord struct {
	PassengerID string `dynamodbav:"passengerId" json:"passengerId"`
	FirstName   string `dynamodbav:"firstName" json:"firstName"`
	LastName    string `dynamodbav:"lastName" json:"lastName"`
	Email       string `dynamodbav:"email" json:"email"`
	BookingID   string `dynamodbav:"bookingId" json:"bookingId"`
	CreatedAt   string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt   string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// PassengerInput describes a passenger to create. The id is assigned
// externally.
type PassengerInput struct {
	PassengerID string
	FirstName   string
	LastName    string
	Email       string
	BookingID   string
}

// PassengerRepository reads and writes the passengers table.
type PassengerRepository struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewPassengerRepository creates a PassengerRepository.
func NewPassengerRepository(s *store.Store, log *zap.SugaredLogger) *PassengerRepository {
	return &PassengerRepository{store: s, log: log}
}

// FindByID retrieves a passenger by its primary key.
// Returns store.ErrNotFound when absent.
func (r *PassengerRepository) FindByID(ctx context.Context, passengerID string) (*PassengerRecord, error) {
	if passengerID == "" {
		return nil, store.ErrEmptyKey
	}

	item, err := r.store.Get(ctx, r.store.Config().PassengersTable, store.Key{
		"passengerId": &types.AttributeValueMemberS{Value: passengerID},
	})
	if err != nil {
		return nil, err
	}
	return decodePassenger(item)
}

// Create writes a new passenger.
func (r *PassengerRepository) Create(ctx context.Context, input PassengerInput) (*PassengerRecord, error) {
	if err := validate.PassengerID(input.PassengerID); err != nil {
		return nil, err
	}
	if err := validate.Email(input.Email); err != nil {
		return nil, err
	}
	if err := validate.BookingID(input.BookingID); err != nil {
		return nil, err
	}

	now := nowISO()
	record := &PassengerRecord{
		PassengerID: input.PassengerID,
		FirstName:   input.FirstName,
		LastName:    input.LastName,
		Email:       input.Email,
		BookingID:   input.BookingID,
		CreatedAt:   now,
		UpdatedAt:   now,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshal passenger: %w", err)
	}
	if err := r.store.Put(ctx, r.store.Config().PassengersTable, item); err != nil {
		return nil, err
	}

	r.log.Infow("passenger created",
		"passengerId", record.PassengerID,
		"bookingId", record.BookingID,
	)
	return record, nil
}

// Delete removes a passenger by primary key.
func (r *PassengerRepository) Delete(ctx context.Context, passengerID string) error {
	if passengerID == "" {
		return store.ErrEmptyKey
	}
	return r.store.Delete(ctx, r.store.Config().PassengersTable, store.Key{
		"passengerId": &types.AttributeValueMemberS{Value: passengerID},
	})
}

// FindByBookingID returns every passenger in a booking via the
// BookingIndex GSI.
func (r *PassengerRepository) FindByBookingID(ctx context.Context, bookingID string) ([]PassengerRecord, error) {
	if bookingID == "" {
		return nil, store.ErrEmptyKey
	}

	items, err := r.store.Query(ctx, store.Query{
		Table:        r.store.Config().PassengersTable,
		Index:        store.BookingIndex,
		KeyCondition: expression.Key("bookingId").Equal(expression.Value(bookingID)),
	})
	if err != nil {
		return nil, err
	}

	records := make([]PassengerRecord, 0, len(items))
	for _, item := range items {
		record, err := decodePassenger(item)
		if err != nil {
			return nil, err
		}
		records = append(records, *record)
	}
	return records, nil
}

// FindByBookingIDs fans out one index query per booking and flattens
// the results in booking order. The join is all-or-fail: the first
// query error cancels the rest and no partial result is returned.
func (r *PassengerRepository) FindByBookingIDs(ctx context.Context, bookingIDs []string) ([]PassengerRecord, error) {
	if len(bookingIDs) == 0 {
		return []PassengerRecord{}, nil
	}

	results := make([][]PassengerRecord, len(bookingIDs))
	g, ctx := errgroup.WithContext(ctx)
	for i, bookingID := range bookingIDs {
		g.Go(func() error {
			records, err := r.FindByBookingID(ctx, bookingID)
			if err != nil {
				return err
			}
			results[i] = records
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	flattened := make([]PassengerRecord, 0, len(bookingIDs))
	for _, records := range results {
		flattened = append(flattened, records...)
	}
	return flattened, nil
}

func decodePassenger(item store.Item) (*PassengerRecord, error) {
	var record PassengerRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("decode passenger record: %w", err)
	}
	if record.PassengerID == "" {
		return nil, fmt.Errorf("decode passenger record: missing passengerId")
	}
	return &record, nil
}
