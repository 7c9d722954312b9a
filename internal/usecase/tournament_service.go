package usecase

import (
	"context"
	"fmt"
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/panjf2000/ants/v2"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

const snapshotLoadWorkers = 4

// TournamentService loads the committed snapshot from the persistence
// gateway and serves the read-only tournament views derived from it.
type TournamentService struct {
	matchRepo      match.Repository
	playerRepo     player.Repository
	goalRepo       goal.Repository
	predictionRepo prediction.Repository
	store          *SnapshotStore
	logger         *slog.Logger
	now            func() time.Time
}

func NewTournamentService(
	matchRepo match.Repository,
	playerRepo player.Repository,
	goalRepo goal.Repository,
	predictionRepo prediction.Repository,
	store *SnapshotStore,
	logger *slog.Logger,
) *TournamentService {
	if logger == nil {
		logger = slog.Default()
	}

	return &TournamentService{
		matchRepo:      matchRepo,
		playerRepo:     playerRepo,
		goalRepo:       goalRepo,
		predictionRepo: predictionRepo,
		store:          store,
		logger:         logger,
		now:            time.Now,
	}
}

// Load fetches all four tables through a small worker pool and publishes the
// result as the new snapshot. The existing snapshot stays in place when any
// table fails.
func (s *TournamentService) Load(ctx context.Context) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.TournamentService.Load")
	defer span.End()

	next := &Snapshot{}
	tasks := []struct {
		table string
		run   func() error
	}{
		{table: "matches", run: func() error {
			rows, err := s.matchRepo.List(ctx)
			next.Matches = rows
			return err
		}},
		{table: "players", run: func() error {
			rows, err := s.playerRepo.List(ctx)
			next.Players = rows
			return err
		}},
		{table: "goals", run: func() error {
			rows, err := s.goalRepo.List(ctx)
			next.Goals = rows
			return err
		}},
		{table: "predictions", run: func() error {
			rows, err := s.predictionRepo.List(ctx)
			next.Predictions = rows
			return err
		}},
	}

	pool, err := ants.NewPool(snapshotLoadWorkers)
	if err != nil {
		return fmt.Errorf("create snapshot load pool: %w", err)
	}
	defer pool.Release()

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		firstErr error
	)
	for _, task := range tasks {
		task := task
		wg.Add(1)
		if err := pool.Submit(func() {
			defer wg.Done()
			if runErr := task.run(); runErr != nil {
				mu.Lock()
				if firstErr == nil {
					firstErr = fmt.Errorf("load %s: %w", task.table, runErr)
				}
				mu.Unlock()
			}
		}); err != nil {
			wg.Done()
			return fmt.Errorf("submit snapshot load task: %w", err)
		}
	}
	wg.Wait()

	if firstErr != nil {
		return firstErr
	}

	s.store.Replace(next)
	s.logger.InfoContext(ctx, "snapshot loaded",
		"matches", len(next.Matches),
		"players", len(next.Players),
		"goals", len(next.Goals),
		"predictions", len(next.Predictions),
	)
	return nil
}

func (s *TournamentService) Matches(ctx context.Context) []match.Match {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.Matches")
	defer span.End()

	return match.CloneAll(s.store.Get().Matches)
}

func (s *TournamentService) Players(ctx context.Context) []player.Player {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.Players")
	defer span.End()

	snapshot := s.store.Get()
	out := make([]player.Player, len(snapshot.Players))
	copy(out, snapshot.Players)
	return out
}

func (s *TournamentService) Goals(ctx context.Context) []goal.Goal {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.Goals")
	defer span.End()

	return goal.CloneAll(s.store.Get().Goals)
}

func (s *TournamentService) Predictions(ctx context.Context) []prediction.Prediction {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.Predictions")
	defer span.End()

	snapshot := s.store.Get()
	out := make([]prediction.Prediction, len(snapshot.Predictions))
	copy(out, snapshot.Predictions)
	return out
}

// NextMatch returns the earliest non-finished match by kickoff time.
func (s *TournamentService) NextMatch(ctx context.Context) (match.Match, bool) {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.NextMatch")
	defer span.End()

	var (
		next  match.Match
		found bool
	)
	for _, m := range s.store.Get().Matches {
		if m.IsFinished() {
			continue
		}
		if !found || m.Datetime.Before(next.Datetime) {
			next = m
			found = true
		}
	}
	if !found {
		return match.Match{}, false
	}
	return next.Clone(), true
}

// RecentResults returns up to limit finished matches, latest kickoff first.
func (s *TournamentService) RecentResults(ctx context.Context, limit int) []match.Match {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.RecentResults")
	defer span.End()

	finished := make([]match.Match, 0)
	for _, m := range s.store.Get().Matches {
		if m.IsFinished() {
			finished = append(finished, m)
		}
	}
	sort.SliceStable(finished, func(i, j int) bool {
		return finished[i].Datetime.After(finished[j].Datetime)
	})
	if limit > 0 && len(finished) > limit {
		finished = finished[:limit]
	}
	return match.CloneAll(finished)
}

// ScorerSummary is one player's normal-goal tally within a single match.
type ScorerSummary struct {
	PlayerID *int64
	Name     string
	Goals    int
}

// TeamTotals is a team's cumulative record over finished matches.
type TeamTotals struct {
	Team         string
	GoalsFor     int
	GoalsAgainst int
	Played       int
}

// PredictionView pairs a prediction with its hit state for a known match.
type PredictionView struct {
	Prediction prediction.Prediction
	Hit        bool
}

// MatchDetail is everything the match page shows: the match itself, its goal
// log, per-side scorer summaries, cumulative team records and the ordered
// prediction list.
type MatchDetail struct {
	Match              match.Match
	Goals              []goal.Goal
	HomeScorers        []ScorerSummary
	AwayScorers        []ScorerSummary
	HomeTotals         TeamTotals
	AwayTotals         TeamTotals
	Predictions        []PredictionView
	AcceptsPredictions bool
}

func (s *TournamentService) MatchDetail(ctx context.Context, matchID int64) (MatchDetail, error) {
	_, span := startUsecaseSpan(ctx, "usecase.TournamentService.MatchDetail")
	defer span.End()

	snapshot := s.store.Get()
	m, ok := snapshot.matchByID(matchID)
	if !ok {
		return MatchDetail{}, fmt.Errorf("%w: match=%d", ErrNotFound, matchID)
	}

	matchGoals := make([]goal.Goal, 0)
	for _, g := range snapshot.Goals {
		if g.MatchID == matchID {
			matchGoals = append(matchGoals, g.Clone())
		}
	}

	playerNames := make(map[int64]string, len(snapshot.Players))
	for _, p := range snapshot.Players {
		playerNames[p.ID] = p.Name
	}

	detail := MatchDetail{
		Match:              m.Clone(),
		Goals:              matchGoals,
		HomeScorers:        summarizeScorers(matchGoals, goal.TeamHome, playerNames),
		AwayScorers:        summarizeScorers(matchGoals, goal.TeamAway, playerNames),
		HomeTotals:         teamTotals(snapshot.Matches, m.HomeTeam),
		AwayTotals:         teamTotals(snapshot.Matches, m.AwayTeam),
		Predictions:        orderedPredictions(snapshot.Predictions, m),
		AcceptsPredictions: s.now().Before(m.Datetime),
	}
	return detail, nil
}

// summarizeScorers groups one side's normal goals by player, most goals first
// and names ascending on a tie. Unattributed goals collapse into one row.
func summarizeScorers(goals []goal.Goal, side string, playerNames map[int64]string) []ScorerSummary {
	type bucket struct {
		playerID *int64
		name     string
		goals    int
	}

	buckets := make(map[string]*bucket)
	order := make([]string, 0)
	for _, g := range goals {
		if g.Team != side || g.Type != goal.TypeNormal || g.Count <= 0 {
			continue
		}

		key := "unknown"
		name := "unknown"
		var playerID *int64
		if g.PlayerID != nil {
			id := *g.PlayerID
			playerID = &id
			key = fmt.Sprintf("p:%d", id)
			if n, ok := playerNames[id]; ok {
				name = n
			}
		}

		b, ok := buckets[key]
		if !ok {
			b = &bucket{playerID: playerID, name: name}
			buckets[key] = b
			order = append(order, key)
		}
		b.goals += g.Count
	}

	out := make([]ScorerSummary, 0, len(order))
	for _, key := range order {
		b := buckets[key]
		out = append(out, ScorerSummary{PlayerID: b.playerID, Name: b.name, Goals: b.goals})
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		return out[i].Name < out[j].Name
	})
	return out
}

func teamTotals(matches []match.Match, team string) TeamTotals {
	totals := TeamTotals{Team: team}
	for _, m := range matches {
		if !m.IsFinished() || m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		switch team {
		case m.HomeTeam:
			totals.GoalsFor += *m.HomeScore
			totals.GoalsAgainst += *m.AwayScore
			totals.Played++
		case m.AwayTeam:
			totals.GoalsFor += *m.AwayScore
			totals.GoalsAgainst += *m.HomeScore
			totals.Played++
		}
	}
	return totals
}

// orderedPredictions lists a match's predictions for display. Once the match
// is finished, exact hits come first in submission order; everything else
// stays newest-first.
func orderedPredictions(predictions []prediction.Prediction, m match.Match) []PredictionView {
	hits := make([]PredictionView, 0)
	others := make([]PredictionView, 0)
	for _, p := range predictions {
		if p.MatchID != m.ID {
			continue
		}
		if m.IsFinished() && p.Hit(m) {
			hits = append(hits, PredictionView{Prediction: p, Hit: true})
		} else {
			others = append(others, PredictionView{Prediction: p})
		}
	}

	sort.SliceStable(hits, func(i, j int) bool {
		return hits[i].Prediction.CreatedAt.Before(hits[j].Prediction.CreatedAt)
	})
	sort.SliceStable(others, func(i, j int) bool {
		return others[i].Prediction.CreatedAt.After(others[j].Prediction.CreatedAt)
	})

	return append(hits, others...)
}
