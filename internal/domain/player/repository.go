package player

import "context"

// Repository exposes roster read operations.
type Repository interface {
	List(ctx context.Context) ([]Player, error)
}
