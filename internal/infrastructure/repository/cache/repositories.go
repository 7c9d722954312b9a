package cache

import (
	"context"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
	basecache "github.com/mirchoi/classcup/internal/platform/cache"
)

// Read-through wrappers over the persistence gateway. Every write invalidates
// the table's list key so the next snapshot load reads fresh rows.

type MatchRepository struct {
	next  match.Repository
	cache *basecache.Store
}

func NewMatchRepository(next match.Repository, cache *basecache.Store) *MatchRepository {
	return &MatchRepository{next: next, cache: cache}
}

func (r *MatchRepository) List(ctx context.Context) ([]match.Match, error) {
	v, err := r.cache.GetOrLoad(ctx, "match:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return match.CloneAll(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]match.Match)
	return match.CloneAll(items), nil
}

func (r *MatchRepository) UpsertAll(ctx context.Context, matches []match.Match) error {
	if err := r.next.UpsertAll(ctx, matches); err != nil {
		return err
	}
	r.cache.Delete(ctx, "match:list")
	return nil
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) List(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type GoalRepository struct {
	next  goal.Repository
	cache *basecache.Store
}

func NewGoalRepository(next goal.Repository, cache *basecache.Store) *GoalRepository {
	return &GoalRepository{next: next, cache: cache}
}

func (r *GoalRepository) List(ctx context.Context) ([]goal.Goal, error) {
	v, err := r.cache.GetOrLoad(ctx, "goal:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return goal.CloneAll(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]goal.Goal)
	return goal.CloneAll(items), nil
}

func (r *GoalRepository) UpsertAll(ctx context.Context, goals []goal.Goal) error {
	if err := r.next.UpsertAll(ctx, goals); err != nil {
		return err
	}
	r.cache.Delete(ctx, "goal:list")
	return nil
}

func (r *GoalRepository) InsertAll(ctx context.Context, goals []goal.Goal) ([]goal.Goal, error) {
	rows, err := r.next.InsertAll(ctx, goals)
	if err != nil {
		return nil, err
	}
	r.cache.Delete(ctx, "goal:list")
	return rows, nil
}

func (r *GoalRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if err := r.next.DeleteByIDs(ctx, ids); err != nil {
		return err
	}
	r.cache.Delete(ctx, "goal:list")
	return nil
}

type PredictionRepository struct {
	next  prediction.Repository
	cache *basecache.Store
}

func NewPredictionRepository(next prediction.Repository, cache *basecache.Store) *PredictionRepository {
	return &PredictionRepository{next: next, cache: cache}
}

func (r *PredictionRepository) List(ctx context.Context) ([]prediction.Prediction, error) {
	v, err := r.cache.GetOrLoad(ctx, "prediction:list", func(ctx context.Context) (any, error) {
		items, err := r.next.List(ctx)
		if err != nil {
			return nil, err
		}
		return append([]prediction.Prediction(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]prediction.Prediction)
	return append([]prediction.Prediction(nil), items...), nil
}

func (r *PredictionRepository) Insert(ctx context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	saved, err := r.next.Insert(ctx, p)
	if err != nil {
		return prediction.Prediction{}, err
	}
	r.cache.Delete(ctx, "prediction:list")
	return saved, nil
}
