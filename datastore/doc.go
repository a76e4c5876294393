/*
Package datastore defines the persistence interface used by the demo service.

The main interface is DataStore[T], which provides generic CRUD operations for any entity type T:

	type DataStore[T any] interface {
	    GetOne(ctx context.Context, key string) (*T, error)
	    Put(ctx context.Context, entity T) error
	    List(ctx context.Context) ([]T, error)
	    Delete(ctx context.Context, key string) error
	}

Implementations:
  - ddb: DynamoDB implementation with macro-based single-table keys
  - mock: In-memory implementation, also the demo's default store

Missing entities are reported with errors.NotFoundError from every backend,
so callers can test with errors.IsNotFound regardless of the store in use.
*/
package datastore
