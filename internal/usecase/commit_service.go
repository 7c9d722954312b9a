package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"

	"github.com/mirchoi/classcup/internal/domain/bracket"
	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
)

// WritePlan is the ordered set of gateway writes a commit will perform.
// Matches go first so no goal ever references a missing parent row, deletes
// precede the goal writes so freed ids cannot collide with upserts.
type WritePlan struct {
	Matches       []match.Match
	DeleteGoalIDs []int64
	UpsertGoals   []goal.Goal
	InsertGoals   []goal.Goal
}

// CommitResult is the authoritative state after a successful commit.
type CommitResult struct {
	Matches []match.Match
	Goals   []goal.Goal
}

// CommitService turns a validated, bracket-propagated draft into gateway
// writes and folds the authoritative response back into the snapshot and the
// draft. The write sequence is not transactional: a failing step aborts the
// rest, already applied steps stay applied.
type CommitService struct {
	store     *SnapshotStore
	drafts    *DraftService
	matchRepo match.Repository
	goalRepo  goal.Repository
	logger    *slog.Logger
}

func NewCommitService(
	store *SnapshotStore,
	drafts *DraftService,
	matchRepo match.Repository,
	goalRepo goal.Repository,
	logger *slog.Logger,
) *CommitService {
	if logger == nil {
		logger = slog.Default()
	}

	return &CommitService{
		store:     store,
		drafts:    drafts,
		matchRepo: matchRepo,
		goalRepo:  goalRepo,
		logger:    logger,
	}
}

// Commit validates the draft, re-runs bracket propagation, writes the diff
// against the committed snapshot and publishes the result. Nothing is written
// when validation fails.
func (s *CommitService) Commit(ctx context.Context) (CommitResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.CommitService.Commit")
	defer span.End()

	working := s.drafts.workingCopy()
	bracket.Propagate(working.Matches)

	if err := ValidateGoals(working.Goals); err != nil {
		return CommitResult{}, err
	}

	plan := BuildWritePlan(s.store.Get().Goals, working.Matches, working.Goals)

	finalGoals, err := s.apply(ctx, plan)
	if err != nil {
		return CommitResult{}, err
	}

	s.store.ApplyCommit(working.Matches, finalGoals)
	s.drafts.replace(working.Matches, finalGoals)

	s.logger.InfoContext(ctx, "draft committed",
		"matches", len(plan.Matches),
		"goals_deleted", len(plan.DeleteGoalIDs),
		"goals_upserted", len(plan.UpsertGoals),
		"goals_inserted", len(plan.InsertGoals),
	)

	return CommitResult{
		Matches: match.CloneAll(working.Matches),
		Goals:   goal.CloneAll(finalGoals),
	}, nil
}

// ValidateGoals checks every draft goal against the domain constraints. Any
// violation fails the whole commit with the offending field and value.
func ValidateGoals(goals []goal.Goal) error {
	for _, g := range goals {
		if !goal.IsValidTeam(g.Team) {
			return fmt.Errorf("%w: goal %s: team=%q", ErrValidation, g.Key(), g.Team)
		}
		if !goal.IsValidType(g.Type) {
			return fmt.Errorf("%w: goal %s: goal_type=%q", ErrValidation, g.Key(), g.Type)
		}
		if g.Count < 0 {
			return fmt.Errorf("%w: goal %s: goal_count=%d", ErrValidation, g.Key(), g.Count)
		}
	}
	return nil
}

// BuildWritePlan diffs the draft against the committed goals. Every draft
// match is rewritten wholesale; goals split into deletes (persisted ids gone
// from the draft), upserts (still-persisted rows) and inserts (draft-only
// rows, local keys stripped before they reach the gateway).
func BuildWritePlan(committedGoals []goal.Goal, draftMatches []match.Match, draftGoals []goal.Goal) WritePlan {
	draftIDs := make(map[int64]struct{}, len(draftGoals))
	for _, g := range draftGoals {
		if g.IsPersisted() {
			draftIDs[g.ID] = struct{}{}
		}
	}

	deleted := make([]int64, 0)
	for _, g := range committedGoals {
		if !g.IsPersisted() {
			continue
		}
		if _, ok := draftIDs[g.ID]; !ok {
			deleted = append(deleted, g.ID)
		}
	}
	sort.Slice(deleted, func(i, j int) bool { return deleted[i] < deleted[j] })

	upserts := make([]goal.Goal, 0)
	inserts := make([]goal.Goal, 0)
	for _, g := range draftGoals {
		row := g.Clone()
		if row.IsPersisted() {
			row.LocalKey = ""
			upserts = append(upserts, row)
		} else {
			row.LocalKey = ""
			inserts = append(inserts, row)
		}
	}

	return WritePlan{
		Matches:       match.CloneAll(draftMatches),
		DeleteGoalIDs: deleted,
		UpsertGoals:   upserts,
		InsertGoals:   inserts,
	}
}

// apply runs the plan's steps in order and returns the authoritative goal
// set: surviving upserts plus the inserted rows, sorted by store id.
func (s *CommitService) apply(ctx context.Context, plan WritePlan) ([]goal.Goal, error) {
	if err := s.matchRepo.UpsertAll(ctx, plan.Matches); err != nil {
		return nil, fmt.Errorf("upsert matches: %w", err)
	}

	if len(plan.DeleteGoalIDs) > 0 {
		if err := s.goalRepo.DeleteByIDs(ctx, plan.DeleteGoalIDs); err != nil {
			return nil, fmt.Errorf("delete goals: %w", err)
		}
	}

	if len(plan.UpsertGoals) > 0 {
		if err := s.goalRepo.UpsertAll(ctx, plan.UpsertGoals); err != nil {
			return nil, fmt.Errorf("upsert goals: %w", err)
		}
	}

	inserted := make([]goal.Goal, 0)
	if len(plan.InsertGoals) > 0 {
		rows, err := s.goalRepo.InsertAll(ctx, plan.InsertGoals)
		if err != nil {
			return nil, fmt.Errorf("insert goals: %w", err)
		}
		inserted = rows
	}

	final := make([]goal.Goal, 0, len(plan.UpsertGoals)+len(inserted))
	final = append(final, goal.CloneAll(plan.UpsertGoals)...)
	for _, g := range inserted {
		row := g.Clone()
		row.LocalKey = ""
		final = append(final, row)
	}
	sort.Slice(final, func(i, j int) bool { return final[i].ID < final[j].ID })

	return final, nil
}
