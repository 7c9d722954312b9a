package prediction

import "context"

// Repository is the persistence gateway surface for predictions. Insert
// returns the created row with its store-assigned id.
type Repository interface {
	List(ctx context.Context) ([]Prediction, error)
	Insert(ctx context.Context, p Prediction) (Prediction, error)
}
