package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/attributevalue"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
	"go.uber.org/zap"

	"github.com/aerodex/manifest/store"
	"github.com/aerodex/manifest/validate"
)

// FlightRecord is a row in the flights table.
//
// FlightID is derived from (FlightNumber, DepartureDate), so it needs
// no allocation and is recomputable by anyone holding the pair.
type FlightRecord struct {
	FlightID         string `dynamodbav:"flightId" json:"flightId"`
	FlightNumber     string `dynamodbav:"flightNumber" json:"flightNumber"`
	DepartureAirport string `dynamodbav:"departureAirport" json:"departureAirport"`
	ArrivalAirport   string `dynamodbav:"arrivalAirport" json:"arrivalAirport"`
	DepartureDate    string `dynamodbav:"departureDate" json:"departureDate"`
	ArrivalDate      string `dynamodbav:"arrivalDate" json:"arrivalDate"`
	CreatedAt        string `dynamodbav:"createdAt" json:"createdAt"`
	UpdatedAt        string `dynamodbav:"updatedAt" json:"updatedAt"`
}

// FlightInput describes a flight to create.
type FlightInput struct {
	FlightNumber     string
	DepartureAirport string
	ArrivalAirport   string
	DepartureDate    string
	ArrivalDate      string
}

// FlightID derives the composite primary key for a flight.
func FlightID(flightNumber, departureDate string) string {
	return flightNumber + "-" + departureDate
}

// FlightRepository reads and writes the flights table.
type FlightRepository struct {
	store *store.Store
	log   *zap.SugaredLogger
}

// NewFlightRepository creates a FlightRepository.
func NewFlightRepository(s *store.Store, log *zap.SugaredLogger) *FlightRepository {
	return &FlightRepository{store: s, log: log}
}

// FindByID retrieves a flight by its primary key.
// Returns store.ErrNotFound when absent.
func (r *FlightRepository) FindByID(ctx context.Context, flightID string) (*FlightRecord, error) {
	if flightID == "" {
		return nil, store.ErrEmptyKey
	}

	item, err := r.store.Get(ctx, r.store.Config().FlightsTable, store.Key{
		"flightId": &types.AttributeValueMemberS{Value: flightID},
	})
	if err != nil {
		return nil, err
	}
	return decodeFlight(item)
}

// Create writes a new flight. The write is unconditional: the derived
// key makes re-creating the same flight an idempotent overwrite.
func (r *FlightRepository) Create(ctx context.Context, input FlightInput) (*FlightRecord, error) {
	if err := validate.FlightNumber(input.FlightNumber); err != nil {
		return nil, err
	}
	if err := validate.AirportCode(input.DepartureAirport); err != nil {
		return nil, err
	}
	if err := validate.AirportCode(input.ArrivalAirport); err != nil {
		return nil, err
	}
	if err := validate.DepartureDate(input.DepartureDate); err != nil {
		return nil, err
	}
	if err := validate.Date(input.ArrivalDate, "arrivalDate"); err != nil {
		return nil, err
	}

	now := nowISO()
	record := &FlightRecord{
		FlightID:         FlightID(input.FlightNumber, input.DepartureDate),
		FlightNumber:     input.FlightNumber,
		DepartureAirport: input.DepartureAirport,
		ArrivalAirport:   input.ArrivalAirport,
		DepartureDate:    input.DepartureDate,
		ArrivalDate:      input.ArrivalDate,
		CreatedAt:        now,
		UpdatedAt:        now,
	}

	item, err := attributevalue.MarshalMap(record)
	if err != nil {
		return nil, fmt.Errorf("marshal flight: %w", err)
	}
	if err := r.store.Put(ctx, r.store.Config().FlightsTable, item); err != nil {
		return nil, err
	}

	r.log.Infow("flight created", "flightId", record.FlightID)
	return record, nil
}

// Delete removes a flight by primary key.
func (r *FlightRepository) Delete(ctx context.Context, flightID string) error {
	if flightID == "" {
		return store.ErrEmptyKey
	}
	return r.store.Delete(ctx, r.store.Config().FlightsTable, store.Key{
		"flightId": &types.AttributeValueMemberS{Value: flightID},
	})
}

// FindByNumberAndDate looks a flight up by schedule via the composite
// GSI. The index is assumed to hold at most one flight per pair; if
// more exist the first match wins.
func (r *FlightRepository) FindByNumberAndDate(ctx context.Context, flightNumber, departureDate string) (*FlightRecord, error) {
	if flightNumber == "" || departureDate == "" {
		return nil, store.ErrEmptyKey
	}

	items, err := r.store.Query(ctx, store.Query{
		Table: r.store.Config().FlightsTable,
		Index: store.FlightNumberDateIndex,
		KeyCondition: expression.Key("flightNumber").Equal(expression.Value(flightNumber)).
			And(expression.Key("departureDate").Equal(expression.Value(departureDate))),
	})
	if err != nil {
		return nil, err
	}
	if len(items) == 0 {
		return nil, store.ErrNotFound
	}
	return decodeFlight(items[0])
}

func decodeFlight(item store.Item) (*FlightRecord, error) {
	var record FlightRecord
	if err := attributevalue.UnmarshalMap(item, &record); err != nil {
		return nil, fmt.Errorf("decode flight record: %w", err)
	}
	if record.FlightID == "" {
		return nil, fmt.Errorf("decode flight record: missing flightId")
	}
	return &record, nil
}

func nowISO() string {
	return time.Now().UTC().Format(time.RFC3339)
}
