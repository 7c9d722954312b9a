package match

import "context"

// Repository is the persistence gateway surface for matches.
type Repository interface {
	List(ctx context.Context) ([]Match, error)
	UpsertAll(ctx context.Context, matches []Match) error
}
