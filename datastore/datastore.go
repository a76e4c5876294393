/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package datastore

import (
	"context"
)

// DataStore persists entities of type T under string keys.
type DataStore[T any] interface {
	// GetOne returns the entity stored under key, or a NotFoundError.
	GetOne(ctx context.Context, key string) (*T, error)

	Put(ctx context.Context, entity T) error

	// List returns every stored entity, ordered by key.
	List(ctx context.Context) ([]T, error)

	Delete(ctx context.Context, key string) error
}
