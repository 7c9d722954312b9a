package goal

import "context"

// Repository is the persistence gateway surface for goals. InsertAll returns
// the created rows carrying their store-assigned ids.
type Repository interface {
	List(ctx context.Context) ([]Goal, error)
	UpsertAll(ctx context.Context, goals []Goal) error
	InsertAll(ctx context.Context, goals []Goal) ([]Goal, error)
	DeleteByIDs(ctx context.Context, ids []int64) error
}
