/*
 * Copyright © 2025 Suparena Software Inc., All rights reserved.
 */

package demo

import (
	"context"
	"log/slog"

	"github.com/suparena/automapper/datastore"
	"github.com/suparena/automapper/datastore/ddb"
	"github.com/suparena/automapper/datastore/mock"
	"github.com/suparena/automapper/internal/config"
)

// UserKeys is the DynamoDB key layout for users.
var UserKeys = ddb.KeyTemplate{"PK": "USER#{Id}", "SK": "USER#{Id}"}

// NewStore opens the user store selected by cfg.Store.
func NewStore(ctx context.Context, cfg config.Config, logger *slog.Logger) (datastore.DataStore[User], error) {
	if cfg.Store == config.StoreDynamoDB {
		return ddb.NewDynamodbDataStore[User](ctx,
			cfg.AWS.AccessKey, cfg.AWS.SecretKey, cfg.AWS.Region, cfg.AWS.Table,
			UserKeys,
			ddb.WithLogger(logger),
		)
	}

	logger.Info("using in-memory user store")
	return NewMemoryStore(), nil
}

// NewMemoryStore returns an in-memory user store keyed by Id.
func NewMemoryStore() *mock.DataStore[User] {
	return mock.New[User]().WithGetKeyFunc(func(u User) string { return u.Id })
}
