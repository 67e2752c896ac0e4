package store

import (
	"context"

	"github.com/rescueops/admin-console/model"
)

// Store is the remote row store consumed by every screen: plain CRUD over
// named collections, no optimistic concurrency, no transactions. All
// operations are keyed by the collection name; mutations never return the
// affected row, callers re-fetch the whole collection instead.
type Store interface {
	SelectAll(ctx context.Context, collection string) ([]model.Row, error)
	Insert(ctx context.Context, collection string, fields model.Fields) error
	Update(ctx context.Context, collection string, fields model.Fields, id string) error
	Delete(ctx context.Context, collection string, id string) error
}
