package store_test

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"

	"github.com/aerodex/manifest/store"
	"github.com/aerodex/manifest/store/storemock"
)

func testConfig() store.Config {
	return store.Config{
		Region:              "eu-north-1",
		FlightsTable:        "flights",
		BookingsTable:       "bookings",
		PassengersTable:     "passengers",
		FlightBookingsTable: "flight-bookings",
	}
}

func newStore(t *testing.T, client store.DynamoDBAPI) *store.Store {
	t.Helper()
	s, err := store.New(client, testConfig())
	if err != nil {
		t.Fatalf("unexpected error constructing store: %v", err)
	}
	return s
}

func TestNew_IncompleteConfig(t *testing.T) {
	cfg := testConfig()
	cfg.PassengersTable = ""

	_, err := store.New(storemock.New(t), cfg)
	if err == nil {
		t.Fatal("expected error for incomplete config")
	}
}

func TestGet_Found(t *testing.T) {
	client := storemock.New(t)
	client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		if *params.TableName != "flights" {
			t.Errorf("expected table 'flights', got %q", *params.TableName)
		}
		return &dynamodb.GetItemOutput{
			Item: map[string]types.AttributeValue{
				"flightId": &types.AttributeValueMemberS{Value: "AY123-2024-01-15"},
			},
		}, nil
	}

	s := newStore(t, client)
	item, err := s.Get(context.Background(), "flights", store.Key{
		"flightId": &types.AttributeValueMemberS{Value: "AY123-2024-01-15"},
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if _, ok := item["flightId"]; !ok {
		t.Error("expected flightId attribute in result")
	}
}

func TestGet_Absent(t *testing.T) {
	client := storemock.New(t)
	client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{}, nil
	}

	s := newStore(t, client)
	_, err := s.Get(context.Background(), "passengers", store.Key{
		"passengerId": &types.AttributeValueMemberS{Value: "NOPE01"},
	})
	if !errors.Is(err, store.ErrNotFound) {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestGet_EmptyKey(t *testing.T) {
	s := newStore(t, storemock.New(t))

	if _, err := s.Get(context.Background(), "flights", store.Key{}); !errors.Is(err, store.ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey for empty key, got %v", err)
	}
	if _, err := s.Get(context.Background(), "", store.Key{
		"flightId": &types.AttributeValueMemberS{Value: "x"},
	}); !errors.Is(err, store.ErrEmptyKey) {
		t.Errorf("expected ErrEmptyKey for empty table, got %v", err)
	}
}

func TestPutIfAbsent_Conflict(t *testing.T) {
	client := storemock.New(t)
	client.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		if *params.ConditionExpression != "attribute_not_exists(#pk)" {
			t.Errorf("unexpected condition expression %q", *params.ConditionExpression)
		}
		if params.ExpressionAttributeNames["#pk"] != "bookingId" {
			t.Errorf("expected key attribute 'bookingId', got %q", params.ExpressionAttributeNames["#pk"])
		}
		return nil, &types.ConditionalCheckFailedException{}
	}

	s := newStore(t, client)
	err := s.PutIfAbsent(context.Background(), "bookings", store.Item{
		"bookingId": &types.AttributeValueMemberS{Value: "AB12CD"},
	}, "bookingId")
	if !errors.Is(err, store.ErrAlreadyExists) {
		t.Fatalf("expected ErrAlreadyExists, got %v", err)
	}
}

func TestPutIfAbsent_Success(t *testing.T) {
	client := storemock.New(t)
	client.PutFunc = func(ctx context.Context, params *dynamodb.PutItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
		return &dynamodb.PutItemOutput{}, nil
	}

	s := newStore(t, client)
	err := s.PutIfAbsent(context.Background(), "bookings", store.Item{
		"bookingId": &types.AttributeValueMemberS{Value: "AB12CD"},
	}, "bookingId")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
}

func TestQuery_DrainsAllPages(t *testing.T) {
	pages := 0
	client := storemock.New(t)
	client.QueryFunc = func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		if *params.IndexName != store.BookingFlightIndex {
			t.Errorf("expected index %q, got %q", store.BookingFlightIndex, *params.IndexName)
		}
		pages++
		if pages == 1 {
			return &dynamodb.QueryOutput{
				Items: []map[string]types.AttributeValue{
					{"flightId": &types.AttributeValueMemberS{Value: "AY123-2024-01-15"}},
				},
				LastEvaluatedKey: map[string]types.AttributeValue{
					"bookingId": &types.AttributeValueMemberS{Value: "AB12CD"},
				},
			}, nil
		}
		return &dynamodb.QueryOutput{
			Items: []map[string]types.AttributeValue{
				{"flightId": &types.AttributeValueMemberS{Value: "AY124-2024-01-16"}},
			},
		}, nil
	}

	s := newStore(t, client)
	items, err := s.Query(context.Background(), store.Query{
		Table:        "flight-bookings",
		Index:        store.BookingFlightIndex,
		KeyCondition: expression.Key("bookingId").Equal(expression.Value("AB12CD")),
	})
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if len(items) != 2 {
		t.Fatalf("expected 2 items across pages, got %d", len(items))
	}
	if pages != 2 {
		t.Errorf("expected 2 pages queried, got %d", pages)
	}
}

func TestQuery_PropagatesError(t *testing.T) {
	wantErr := errors.New("throttled")
	client := storemock.New(t)
	client.QueryFunc = func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		return nil, wantErr
	}

	s := newStore(t, client)
	_, err := s.Query(context.Background(), store.Query{
		Table:        "passengers",
		Index:        store.BookingIndex,
		KeyCondition: expression.Key("bookingId").Equal(expression.Value("AB12CD")),
	})
	if !errors.Is(err, wantErr) {
		t.Fatalf("expected query error to propagate, got %v", err)
	}
}
