package usecase

import (
	"context"
	"sync"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

type stubMatchRepository struct {
	mu        sync.Mutex
	rows      []match.Match
	listErr   error
	upsertErr error
	upserted  [][]match.Match
	calls     *callLog
}

func (s *stubMatchRepository) List(_ context.Context) ([]match.Match, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return match.CloneAll(s.rows), nil
}

func (s *stubMatchRepository) UpsertAll(_ context.Context, matches []match.Match) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.record("matches.upsert")
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, match.CloneAll(matches))
	return nil
}

type stubGoalRepository struct {
	mu        sync.Mutex
	rows      []goal.Goal
	nextID    int64
	listErr   error
	deleteErr error
	upsertErr error
	insertErr error
	deleted   [][]int64
	upserted  [][]goal.Goal
	inserted  [][]goal.Goal
	calls     *callLog
}

func (s *stubGoalRepository) List(_ context.Context) ([]goal.Goal, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	return goal.CloneAll(s.rows), nil
}

func (s *stubGoalRepository) UpsertAll(_ context.Context, goals []goal.Goal) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.record("goals.upsert")
	if s.upsertErr != nil {
		return s.upsertErr
	}
	s.upserted = append(s.upserted, goal.CloneAll(goals))
	return nil
}

func (s *stubGoalRepository) InsertAll(_ context.Context, goals []goal.Goal) ([]goal.Goal, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.record("goals.insert")
	if s.insertErr != nil {
		return nil, s.insertErr
	}
	out := make([]goal.Goal, 0, len(goals))
	for _, g := range goals {
		row := g.Clone()
		s.nextID++
		row.ID = s.nextID
		row.LocalKey = ""
		out = append(out, row)
	}
	s.inserted = append(s.inserted, goal.CloneAll(out))
	return out, nil
}

func (s *stubGoalRepository) DeleteByIDs(_ context.Context, ids []int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.calls.record("goals.delete")
	if s.deleteErr != nil {
		return s.deleteErr
	}
	s.deleted = append(s.deleted, append([]int64(nil), ids...))
	return nil
}

type stubPlayerRepository struct {
	rows    []player.Player
	listErr error
}

func (s *stubPlayerRepository) List(_ context.Context) ([]player.Player, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]player.Player, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

type stubPredictionRepository struct {
	mu        sync.Mutex
	rows      []prediction.Prediction
	nextID    int64
	listErr   error
	insertErr error
	inserted  []prediction.Prediction
}

func (s *stubPredictionRepository) List(_ context.Context) ([]prediction.Prediction, error) {
	if s.listErr != nil {
		return nil, s.listErr
	}
	out := make([]prediction.Prediction, len(s.rows))
	copy(out, s.rows)
	return out, nil
}

func (s *stubPredictionRepository) Insert(_ context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.insertErr != nil {
		return prediction.Prediction{}, s.insertErr
	}
	s.nextID++
	p.ID = s.nextID
	s.inserted = append(s.inserted, p)
	return p, nil
}

// callLog records the order of gateway writes across repositories.
type callLog struct {
	mu    sync.Mutex
	steps []string
}

func (l *callLog) record(step string) {
	if l == nil {
		return
	}
	l.mu.Lock()
	l.steps = append(l.steps, step)
	l.mu.Unlock()
}

func (l *callLog) all() []string {
	if l == nil {
		return nil
	}
	l.mu.Lock()
	defer l.mu.Unlock()
	return append([]string(nil), l.steps...)
}

type staticKeys struct {
	mu   sync.Mutex
	next int
}

func (k *staticKeys) NewID() (string, error) {
	k.mu.Lock()
	defer k.mu.Unlock()
	k.next++
	return "draft-key-" + string(rune('a'+k.next-1)), nil
}

func intPtr(v int) *int { return &v }

func int64Ptr(v int64) *int64 { return &v }
