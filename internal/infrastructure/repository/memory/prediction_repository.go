package memory

import (
	"context"
	"sync"

	"github.com/mirchoi/classcup/internal/domain/prediction"
)

type PredictionRepository struct {
	mu          sync.RWMutex
	predictions []prediction.Prediction
	nextID      int64
}

func NewPredictionRepository(predictions []prediction.Prediction) *PredictionRepository {
	var nextID int64
	for _, p := range predictions {
		if p.ID > nextID {
			nextID = p.ID
		}
	}

	rows := make([]prediction.Prediction, len(predictions))
	copy(rows, predictions)
	return &PredictionRepository{predictions: rows, nextID: nextID}
}

func (r *PredictionRepository) List(_ context.Context) ([]prediction.Prediction, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]prediction.Prediction, len(r.predictions))
	copy(out, r.predictions)
	return out, nil
}

func (r *PredictionRepository) Insert(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.nextID++
	p.ID = r.nextID
	// Newest first, mirroring the created_at descending load order.
	r.predictions = append([]prediction.Prediction{p}, r.predictions...)

	return p, nil
}
