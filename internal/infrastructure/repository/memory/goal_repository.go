package memory

import (
	"context"
	"sync"

	"github.com/mirchoi/classcup/internal/domain/goal"
)

type GoalRepository struct {
	mu     sync.RWMutex
	goals  []goal.Goal
	nextID int64
}

func NewGoalRepository(goals []goal.Goal) *GoalRepository {
	var nextID int64
	for _, g := range goals {
		if g.ID > nextID {
			nextID = g.ID
		}
	}

	return &GoalRepository{goals: goal.CloneAll(goals), nextID: nextID}
}

func (r *GoalRepository) List(_ context.Context) ([]goal.Goal, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return goal.CloneAll(r.goals), nil
}

func (r *GoalRepository) UpsertAll(_ context.Context, goals []goal.Goal) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	for _, item := range goals {
		updated := false
		for idx := range r.goals {
			if r.goals[idx].ID == item.ID {
				r.goals[idx] = item.Clone()
				updated = true
				break
			}
		}
		if !updated {
			r.goals = append(r.goals, item.Clone())
			if item.ID > r.nextID {
				r.nextID = item.ID
			}
		}
	}

	return nil
}

func (r *GoalRepository) InsertAll(_ context.Context, goals []goal.Goal) ([]goal.Goal, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	out := make([]goal.Goal, 0, len(goals))
	for _, item := range goals {
		row := item.Clone()
		r.nextID++
		row.ID = r.nextID
		row.LocalKey = ""
		r.goals = append(r.goals, row)
		out = append(out, row.Clone())
	}

	return out, nil
}

func (r *GoalRepository) DeleteByIDs(_ context.Context, ids []int64) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	drop := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		drop[id] = struct{}{}
	}

	kept := r.goals[:0]
	for _, g := range r.goals {
		if _, ok := drop[g.ID]; ok {
			continue
		}
		kept = append(kept, g)
	}
	r.goals = kept

	return nil
}
