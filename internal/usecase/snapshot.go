package usecase

import (
	"sync"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

// Snapshot is the last-committed tournament state, loaded from the
// persistence layer and replaced wholesale on reload or after a commit.
// Consumers treat a snapshot as immutable once published.
type Snapshot struct {
	Matches     []match.Match
	Players     []player.Player
	Goals       []goal.Goal
	Predictions []prediction.Prediction
}

func (s *Snapshot) matchByID(id int64) (match.Match, bool) {
	for _, m := range s.Matches {
		if m.ID == id {
			return m, true
		}
	}
	return match.Match{}, false
}

// SnapshotStore publishes the current committed snapshot. Writers replace the
// whole snapshot; readers get the shared value and must not mutate it.
type SnapshotStore struct {
	mu      sync.RWMutex
	current *Snapshot
}

func NewSnapshotStore() *SnapshotStore {
	return &SnapshotStore{current: &Snapshot{}}
}

func (s *SnapshotStore) Get() *Snapshot {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.current
}

func (s *SnapshotStore) Replace(next *Snapshot) {
	if next == nil {
		next = &Snapshot{}
	}
	s.mu.Lock()
	s.current = next
	s.mu.Unlock()
}

// ApplyCommit swaps in the post-commit matches and goals while keeping the
// roster and predictions of the current snapshot.
func (s *SnapshotStore) ApplyCommit(matches []match.Match, goals []goal.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.current = &Snapshot{
		Matches:     matches,
		Players:     s.current.Players,
		Goals:       goals,
		Predictions: s.current.Predictions,
	}
}

// PrependPrediction publishes a snapshot with the new prediction first,
// matching the created_at descending load order.
func (s *SnapshotStore) PrependPrediction(p prediction.Prediction) {
	s.mu.Lock()
	defer s.mu.Unlock()

	predictions := make([]prediction.Prediction, 0, len(s.current.Predictions)+1)
	predictions = append(predictions, p)
	predictions = append(predictions, s.current.Predictions...)

	s.current = &Snapshot{
		Matches:     s.current.Matches,
		Players:     s.current.Players,
		Goals:       s.current.Goals,
		Predictions: predictions,
	}
}
