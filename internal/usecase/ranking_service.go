package usecase

import (
	"context"
	"sort"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

// ScorerRankingRow is one entry of the individual top-scorer table.
type ScorerRankingRow struct {
	Player player.Player
	Goals  int
}

// TeamStandingRow is one team's accumulated record over finished matches.
// PK results never move these counters, they only decide bracket advancement.
type TeamStandingRow struct {
	Team         string
	Played       int
	Won          int
	Drawn        int
	Lost         int
	GoalsFor     int
	GoalsAgainst int
}

func (r TeamStandingRow) GoalDifference() int {
	return r.GoalsFor - r.GoalsAgainst
}

// PredictionRankingRow is one writer's tally over finished matches.
type PredictionRankingRow struct {
	WriterStudentNo string
	WriterName      string
	Hits            int
	Total           int
}

// RankingService derives the ranking views from the committed snapshot on
// every read. Nothing is cached or persisted.
type RankingService struct {
	store *SnapshotStore
}

func NewRankingService(store *SnapshotStore) *RankingService {
	return &RankingService{store: store}
}

func (s *RankingService) ScorerRanking(ctx context.Context) []ScorerRankingRow {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.ScorerRanking")
	defer span.End()

	snapshot := s.store.Get()
	return BuildScorerRanking(snapshot.Players, snapshot.Goals)
}

func (s *RankingService) TeamStandings(ctx context.Context) []TeamStandingRow {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.TeamStandings")
	defer span.End()

	return BuildTeamStandings(s.store.Get().Matches)
}

func (s *RankingService) PredictionRanking(ctx context.Context) []PredictionRankingRow {
	_, span := startUsecaseSpan(ctx, "usecase.RankingService.PredictionRanking")
	defer span.End()

	snapshot := s.store.Get()
	return BuildPredictionRanking(snapshot.Predictions, snapshot.Matches)
}

// BuildScorerRanking sums normal goals per player and drops zero totals.
// Order: goals descending, then class ascending, then jersey number ascending.
func BuildScorerRanking(players []player.Player, goals []goal.Goal) []ScorerRankingRow {
	totals := make(map[int64]int, len(players))
	for _, g := range goals {
		if g.Type != goal.TypeNormal || g.PlayerID == nil {
			continue
		}
		totals[*g.PlayerID] += g.Count
	}

	out := make([]ScorerRankingRow, 0, len(totals))
	for _, p := range players {
		if total := totals[p.ID]; total > 0 {
			out = append(out, ScorerRankingRow{Player: p, Goals: total})
		}
	}

	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Goals != out[j].Goals {
			return out[i].Goals > out[j].Goals
		}
		if out[i].Player.Class != out[j].Player.Class {
			return out[i].Player.Class < out[j].Player.Class
		}
		return out[i].Player.Number < out[j].Player.Number
	})
	return out
}

// BuildTeamStandings accumulates per-team records over finished matches.
// Order: goal difference descending, goals-for descending, team ascending.
func BuildTeamStandings(matches []match.Match) []TeamStandingRow {
	rows := make(map[string]*TeamStandingRow)
	order := make([]string, 0)
	ensure := func(team string) *TeamStandingRow {
		if row, ok := rows[team]; ok {
			return row
		}
		row := &TeamStandingRow{Team: team}
		rows[team] = row
		order = append(order, team)
		return row
	}

	for _, m := range matches {
		if !m.IsFinished() || m.HomeScore == nil || m.AwayScore == nil {
			continue
		}
		hs, as := *m.HomeScore, *m.AwayScore

		home := ensure(m.HomeTeam)
		away := ensure(m.AwayTeam)

		home.GoalsFor += hs
		home.GoalsAgainst += as
		home.Played++

		away.GoalsFor += as
		away.GoalsAgainst += hs
		away.Played++

		switch {
		case hs > as:
			home.Won++
			away.Lost++
		case hs < as:
			away.Won++
			home.Lost++
		default:
			home.Drawn++
			away.Drawn++
		}
	}

	out := make([]TeamStandingRow, 0, len(order))
	for _, team := range order {
		out = append(out, *rows[team])
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].GoalDifference() != out[j].GoalDifference() {
			return out[i].GoalDifference() > out[j].GoalDifference()
		}
		if out[i].GoalsFor != out[j].GoalsFor {
			return out[i].GoalsFor > out[j].GoalsFor
		}
		return out[i].Team < out[j].Team
	})
	return out
}

// BuildPredictionRanking groups predictions by writer, counting only those on
// finished matches. Writers without any settled prediction are dropped.
// Order: hits descending, total descending, student number ascending.
func BuildPredictionRanking(predictions []prediction.Prediction, matches []match.Match) []PredictionRankingRow {
	byID := make(map[int64]match.Match, len(matches))
	for _, m := range matches {
		byID[m.ID] = m
	}

	type writerKey struct {
		studentNo string
		name      string
	}
	rows := make(map[writerKey]*PredictionRankingRow)
	order := make([]writerKey, 0)

	for _, p := range predictions {
		key := writerKey{studentNo: p.WriterStudentNo, name: p.WriterName}
		row, ok := rows[key]
		if !ok {
			row = &PredictionRankingRow{WriterStudentNo: p.WriterStudentNo, WriterName: p.WriterName}
			rows[key] = row
			order = append(order, key)
		}

		m, known := byID[p.MatchID]
		if !known || !m.IsFinished() {
			continue
		}
		row.Total++
		if p.Hit(m) {
			row.Hits++
		}
	}

	out := make([]PredictionRankingRow, 0, len(order))
	for _, key := range order {
		if rows[key].Total > 0 {
			out = append(out, *rows[key])
		}
	}
	sort.SliceStable(out, func(i, j int) bool {
		if out[i].Hits != out[j].Hits {
			return out[i].Hits > out[j].Hits
		}
		if out[i].Total != out[j].Total {
			return out[i].Total > out[j].Total
		}
		return out[i].WriterStudentNo < out[j].WriterStudentNo
	})
	return out
}
