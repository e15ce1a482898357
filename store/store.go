package store

import (
	"context"
	"errors"

	"github.com/aws/aws-sdk-go-v2/aws"
	"github.com/aws/aws-sdk-go-v2/feature/dynamodb/expression"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb"
	"github.com/aws/aws-sdk-go-v2/service/dynamodb/types"
)

// Key is a DynamoDB primary key.
type Key map[string]types.AttributeValue

// Item is a raw DynamoDB item. Callers decode it into a typed record
// at the repository boundary; nothing above this layer touches
// attribute values directly.
type Item map[string]types.AttributeValue

// Query describes an equality query against a table or one of its GSIs.
type Query struct {
	// Table is the DynamoDB table to query.
	Table string

	// Index is the optional GSI name. Empty queries the base table.
	Index string

	// KeyCondition is the equality (or equality+range) key condition.
	KeyCondition expression.KeyConditionBuilder

	// Limit caps the number of items returned (0 = no limit).
	Limit int32
}

// Store wraps a DynamoDB client with the manifest table bindings.
type Store struct {
	client DynamoDBAPI
	config Config
}

// New creates a Store. Config must already be validated; an incomplete
// config is a programming error at the call site, so it fails here.
func New(client DynamoDBAPI, config Config) (*Store, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	return &Store{client: client, config: config}, nil
}

// Config returns the table bindings.
func (s *Store) Config() Config {
	return s.config
}

// Get retrieves a single item by primary key.
// Returns ErrNotFound when no item exists at the key.
func (s *Store) Get(ctx context.Context, table string, key Key) (Item, error) {
	if table == "" || len(key) == 0 {
		return nil, ErrEmptyKey
	}

	result, err := s.client.GetItem(ctx, &dynamodb.GetItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	if err != nil {
		return nil, err
	}
	if result.Item == nil {
		return nil, ErrNotFound
	}
	return Item(result.Item), nil
}

// Put writes an item unconditionally.
func (s *Store) Put(ctx context.Context, table string, item Item) error {
	if table == "" {
		return ErrEmptyKey
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName: aws.String(table),
		Item:      item,
	})
	return err
}

// PutIfAbsent writes an item only if no item with the same value for
// keyAttr exists. Returns ErrAlreadyExists when the condition fails;
// this is the store's only uniqueness primitive and the booking-id
// write path depends on it.
func (s *Store) PutIfAbsent(ctx context.Context, table string, item Item, keyAttr string) error {
	if table == "" || keyAttr == "" {
		return ErrEmptyKey
	}

	_, err := s.client.PutItem(ctx, &dynamodb.PutItemInput{
		TableName:           aws.String(table),
		Item:                item,
		ConditionExpression: aws.String("attribute_not_exists(#pk)"),
		ExpressionAttributeNames: map[string]string{
			"#pk": keyAttr,
		},
	})
	if err != nil {
		var condErr *types.ConditionalCheckFailedException
		if errors.As(err, &condErr) {
			return ErrAlreadyExists
		}
		return err
	}
	return nil
}

// Delete removes an item by primary key. Deleting an absent item is
// not an error.
func (s *Store) Delete(ctx context.Context, table string, key Key) error {
	if table == "" || len(key) == 0 {
		return ErrEmptyKey
	}

	_, err := s.client.DeleteItem(ctx, &dynamodb.DeleteItemInput{
		TableName: aws.String(table),
		Key:       key,
	})
	return err
}

// Query runs an equality query and drains every result page.
// Result sets here are bounded by bookings-per-flight and
// passengers-per-booking, so full pagination is cheap.
func (s *Store) Query(ctx context.Context, q Query) ([]Item, error) {
	if q.Table == "" {
		return nil, ErrEmptyKey
	}

	expr, err := expression.NewBuilder().WithKeyCondition(q.KeyCondition).Build()
	if err != nil {
		return nil, err
	}

	input := &dynamodb.QueryInput{
		TableName:                 aws.String(q.Table),
		KeyConditionExpression:    expr.KeyCondition(),
		ExpressionAttributeNames:  expr.Names(),
		ExpressionAttributeValues: expr.Values(),
	}
	if q.Index != "" {
		input.IndexName = aws.String(q.Index)
	}
	if q.Limit > 0 {
		input.Limit = aws.Int32(q.Limit)
	}

	var items []Item
	paginator := dynamodb.NewQueryPaginator(s.client, input)
	for paginator.HasMorePages() {
		page, err := paginator.NextPage(ctx)
		if err != nil {
			return nil, err
		}
		for _, raw := range page.Items {
			items = append(items, Item(raw))
		}
	}

	return items, nil
}
