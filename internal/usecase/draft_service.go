package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	idgen "github.com/mirchoi/classcup/internal/platform/id"
)

// Draft is the admin's in-progress working copy of matches and goals, seeded
// from the committed snapshot and discarded on reset or replaced after a
// successful commit.
type Draft struct {
	Matches []match.Match
	Goals   []goal.Goal
}

// MatchPatch carries the fields an admin edit may change on a draft match.
// Nil pointers leave the field untouched. SetResult replaces all four score
// fields at once, with nil values clearing them.
type MatchPatch struct {
	Name      *string
	HomeTeam  *string
	AwayTeam  *string
	Datetime  *time.Time
	Location  *string
	Status    *string
	SetResult bool
	HomeScore *int
	AwayScore *int
	HomePK    *int
	AwayPK    *int
}

// DraftService owns the single admin editing session. The design assumes one
// admin at a time; a second session simply replaces the working copy.
type DraftService struct {
	mu     sync.Mutex
	store  *SnapshotStore
	keys   idgen.Generator
	logger *slog.Logger
	draft  *Draft
}

func NewDraftService(store *SnapshotStore, keys idgen.Generator, logger *slog.Logger) *DraftService {
	if logger == nil {
		logger = slog.Default()
	}

	return &DraftService{
		store:  store,
		keys:   keys,
		logger: logger,
	}
}

// Get returns a copy of the current draft, seeding it from the committed
// snapshot when no session is open yet.
func (s *DraftService) Get(ctx context.Context) Draft {
	_, span := startUsecaseSpan(ctx, "usecase.DraftService.Get")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked()
	return s.copyLocked()
}

// Reset discards the draft and reloads it from the committed snapshot.
func (s *DraftService) Reset(ctx context.Context) Draft {
	_, span := startUsecaseSpan(ctx, "usecase.DraftService.Reset")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.seedLocked()
	return s.copyLocked()
}

// UpdateMatch merges the patch into the draft match with that id.
func (s *DraftService) UpdateMatch(ctx context.Context, matchID int64, patch MatchPatch) (match.Match, error) {
	_, span := startUsecaseSpan(ctx, "usecase.DraftService.UpdateMatch")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked()
	for i := range s.draft.Matches {
		if s.draft.Matches[i].ID != matchID {
			continue
		}
		applyMatchPatch(&s.draft.Matches[i], patch)
		return s.draft.Matches[i].Clone(), nil
	}

	return match.Match{}, fmt.Errorf("%w: draft match=%d", ErrNotFound, matchID)
}

// UpsertGoal adds a new goal row to the front of the draft, or merges the
// input into the existing row with the same persisted id. New rows get a
// transient local key that survives until the reconciler persists them.
func (s *DraftService) UpsertGoal(ctx context.Context, g goal.Goal) (goal.Goal, error) {
	_, span := startUsecaseSpan(ctx, "usecase.DraftService.UpsertGoal")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked()

	if !g.IsPersisted() {
		if g.LocalKey == "" {
			key, err := s.keys.NewID()
			if err != nil {
				return goal.Goal{}, fmt.Errorf("new draft goal key: %w", err)
			}
			g.LocalKey = key
		}
		row := g.Clone()
		s.draft.Goals = append([]goal.Goal{row}, s.draft.Goals...)
		return row.Clone(), nil
	}

	for i := range s.draft.Goals {
		if s.draft.Goals[i].ID != g.ID {
			continue
		}
		merged := g.Clone()
		merged.LocalKey = ""
		s.draft.Goals[i] = merged
		return merged.Clone(), nil
	}

	return goal.Goal{}, fmt.Errorf("%w: draft goal=%d", ErrNotFound, g.ID)
}

// DeleteGoal removes the draft row whose persisted id or local key matches.
func (s *DraftService) DeleteGoal(ctx context.Context, key goal.Key) error {
	_, span := startUsecaseSpan(ctx, "usecase.DraftService.DeleteGoal")
	defer span.End()

	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked()
	for i := range s.draft.Goals {
		if s.draft.Goals[i].Key() != key {
			continue
		}
		s.draft.Goals = append(s.draft.Goals[:i], s.draft.Goals[i+1:]...)
		return nil
	}

	return fmt.Errorf("%w: draft goal=%s", ErrNotFound, key)
}

// workingCopy hands the reconciler a deep copy of the draft so the commit
// pipeline never mutates the session state before it succeeds.
func (s *DraftService) workingCopy() Draft {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.ensureLocked()
	return s.copyLocked()
}

// replace installs the post-commit state, so the draft and the committed
// snapshot are identical right after a successful commit.
func (s *DraftService) replace(matches []match.Match, goals []goal.Goal) {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.draft = &Draft{
		Matches: match.CloneAll(matches),
		Goals:   goal.CloneAll(goals),
	}
}

func (s *DraftService) ensureLocked() {
	if s.draft == nil {
		s.seedLocked()
	}
}

func (s *DraftService) seedLocked() {
	snapshot := s.store.Get()
	s.draft = &Draft{
		Matches: match.CloneAll(snapshot.Matches),
		Goals:   goal.CloneAll(snapshot.Goals),
	}
}

func (s *DraftService) copyLocked() Draft {
	return Draft{
		Matches: match.CloneAll(s.draft.Matches),
		Goals:   goal.CloneAll(s.draft.Goals),
	}
}

func applyMatchPatch(m *match.Match, patch MatchPatch) {
	if patch.Name != nil {
		m.Name = *patch.Name
	}
	if patch.HomeTeam != nil {
		m.HomeTeam = *patch.HomeTeam
	}
	if patch.AwayTeam != nil {
		m.AwayTeam = *patch.AwayTeam
	}
	if patch.Datetime != nil {
		m.Datetime = *patch.Datetime
	}
	if patch.Location != nil {
		m.Location = *patch.Location
	}
	if patch.Status != nil {
		m.Status = match.NormalizeStatus(*patch.Status)
	}
	if patch.SetResult {
		m.HomeScore = copyIntPtr(patch.HomeScore)
		m.AwayScore = copyIntPtr(patch.AwayScore)
		m.HomePK = copyIntPtr(patch.HomePK)
		m.AwayPK = copyIntPtr(patch.AwayPK)
	}
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
