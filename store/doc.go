// Package store provides typed DynamoDB access for the passenger
// manifest tables.
//
// The service reads four independent collections: flights, bookings,
// passengers, and the flight-booking junction table. DynamoDB gives us
// primary-key lookups and GSI equality queries and nothing else; every
// relational question is answered above this layer by composing those
// two access patterns.
//
// # Operations
//
//   - [Store.Get] - primary-key lookup, [ErrNotFound] when absent
//   - [Store.Put] - unconditional single-item write
//   - [Store.PutIfAbsent] - conditional create, [ErrAlreadyExists] on conflict
//   - [Store.Delete] - primary-key delete
//   - [Store.Query] - GSI or base-table equality query, fully paginated
//
// Table names are supplied via [Config], resolved once from the process
// environment at startup. A missing table name is a configuration error
// surfaced at construction, never retried.
package store
