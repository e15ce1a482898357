// Package storemock provides a function-field mock of the DynamoDB
// client interface for unit tests. Tests set only the calls they
// expect; anything else fails the test.
package storemock

import (
	"context"
	"testing"

	"github.com/aws/aws-sdk-go-v2/service/dynamodb"

	"github.com/aerodex/manifest/store"
)

// Call is the common shape of a DynamoDB API call.
type Call[T, U any] func(context.Context, *T, ...func(*dynamodb.Options)) (*U, error)

// Client is an expectation-based mock for DynamoDB operations.
type Client struct {
	GetFunc    Call[dynamodb.GetItemInput, dynamodb.GetItemOutput]
	PutFunc    Call[dynamodb.PutItemInput, dynamodb.PutItemOutput]
	DeleteFunc Call[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput]
	QueryFunc  Call[dynamodb.QueryInput, dynamodb.QueryOutput]
}

var _ store.DynamoDBAPI = (*Client)(nil)

// New creates a mock client whose every call fails the test until an
// expectation is installed.
func New(t *testing.T) *Client {
	return &Client{
		GetFunc:    unexpected[dynamodb.GetItemInput, dynamodb.GetItemOutput](t),
		PutFunc:    unexpected[dynamodb.PutItemInput, dynamodb.PutItemOutput](t),
		DeleteFunc: unexpected[dynamodb.DeleteItemInput, dynamodb.DeleteItemOutput](t),
		QueryFunc:  unexpected[dynamodb.QueryInput, dynamodb.QueryOutput](t),
	}
}

func unexpected[T, U any](t *testing.T) Call[T, U] {
	return func(ctx context.Context, params *T, optFns ...func(*dynamodb.Options)) (*U, error) {
		t.Helper()
		t.Fatalf("unexpected %T call", params)
		return nil, nil
	}
}

func (c *Client) GetItem(ctx context.Context, params *dynamodb.GetItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.GetItemOutput, error) {
	return c.GetFunc(ctx, params, optFns...)
}

func (c *Client) PutItem(ctx context.Context, params *dynamodb.PutItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.PutItemOutput, error) {
	return c.PutFunc(ctx, params, optFns...)
}

func (c *Client) DeleteItem(ctx context.Context, params *dynamodb.DeleteItemInput, optFns ...func(*dynamodb.Options)) (*dynamodb.DeleteItemOutput, error) {
	return c.DeleteFunc(ctx, params, optFns...)
}

func (c *Client) Query(ctx context.Context, params *dynamodb.QueryInput, optFns ...func(*dynamodb.Options)) (*dynamodb.QueryOutput, error) {
	return c.QueryFunc(ctx, params, optFns...)
}
