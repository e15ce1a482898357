package storemock

import (
	"context"
	"errors"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/aerodex/manifest/store"
)

// Plain function literals must satisfy the Call fields and dispatch
// through the DynamoDBAPI interface.
func TestClient_DispatchesInstalledCalls(t *testing.T) {
	client := New(t)
	client.GetFunc = func(ctx context.Context, params *dynamodb.GetItemInput, _ ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
		return &dynamodb.GetItemOutput{}, nil
	}
	wantErr := errors.New("throttled")
	client.QueryFunc = func(ctx context.Context, params *dynamodb.QueryInput, _ ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
		return nil, wantErr
	}

	var api store.DynamoDBAPI = client
	if _, err := api.GetItem(context.Background(), &dynamodb.GetItemInput{}); err != nil {
		t.Errorf("unexpected GetItem error: %v", err)
	}
	if _, err := api.Query(context.Background(), &dynamodb.QueryInput{}); !errors.Is(err, wantErr) {
		t.Errorf("expected installed query error, got %v", err)
	}
}
