package memory

import (
	"context"
	"sync"

	"github.com/mirchoi/classcup/internal/domain/match"
)

type MatchRepository struct {
	mu      sync.RWMutex
	matches []match.Match
}

func NewMatchRepository(matches []match.Match) *MatchRepository {
	return &MatchRepository{matches: match.CloneAll(matches)}
}

func (r *MatchRepository) List(_ context.Context) ([]match.Match, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return match.CloneAll(r.matches), nil
}

func (r *MatchRepository) UpsertAll(_ context.Context, matches []match.Match) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range matches {
		updated := false
		for idx := range r.matches {
			if r.matches[idx].ID == item.ID {
				r.matches[idx] = item.Clone()
				updated = true
				break
			}
		}
		if !updated {
			r.matches = append(r.matches, item.Clone())
		}
	}

	return nil
}
