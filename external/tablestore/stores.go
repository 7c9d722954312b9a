package tablestore

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

const (
	preferUpsert = "resolution=merge-duplicates,return=minimal"
	preferInsert = "return=representation"
)

// MatchStore serves the match table over the hosted store's REST surface.
type MatchStore struct {
	client *Client
}

func NewMatchStore(client *Client) *MatchStore {
	return &MatchStore{client: client}
}

func (s *MatchStore) List(ctx context.Context) ([]match.Match, error) {
	var rows []matchRow
	if err := s.client.getJSON(ctx, "matches", "select=*&deleted_at=is.null&order=match_no.asc", &rows); err != nil {
		return nil, fmt.Errorf("list matches: %w", err)
	}

	out := make([]match.Match, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *MatchStore) UpsertAll(ctx context.Context, matches []match.Match) error {
	if len(matches) == 0 {
		return nil
	}

	payload := make([]matchRow, 0, len(matches))
	for _, m := range matches {
		payload = append(payload, matchToRow(m))
	}
	if err := s.client.writeJSON(ctx, "POST", "matches", "on_conflict=id", payload, preferUpsert, nil); err != nil {
		return fmt.Errorf("upsert matches: %w", err)
	}
	return nil
}

type PlayerStore struct {
	client *Client
}

func NewPlayerStore(client *Client) *PlayerStore {
	return &PlayerStore{client: client}
}

func (s *PlayerStore) List(ctx context.Context) ([]player.Player, error) {
	var rows []playerRow
	if err := s.client.getJSON(ctx, "players", "select=*&deleted_at=is.null&order=class.asc,number.asc", &rows); err != nil {
		return nil, fmt.Errorf("list players: %w", err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

type GoalStore struct {
	client *Client
}

func NewGoalStore(client *Client) *GoalStore {
	return &GoalStore{client: client}
}

func (s *GoalStore) List(ctx context.Context) ([]goal.Goal, error) {
	var rows []goalRow
	if err := s.client.getJSON(ctx, "goals", "select=*&deleted_at=is.null&order=id.asc", &rows); err != nil {
		return nil, fmt.Errorf("list goals: %w", err)
	}

	out := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *GoalStore) UpsertAll(ctx context.Context, goals []goal.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	payload := make([]goalRow, 0, len(goals))
	for _, g := range goals {
		payload = append(payload, goalToRow(g))
	}
	if err := s.client.writeJSON(ctx, "POST", "goals", "on_conflict=id", payload, preferUpsert, nil); err != nil {
		return fmt.Errorf("upsert goals: %w", err)
	}
	return nil
}

func (s *GoalStore) InsertAll(ctx context.Context, goals []goal.Goal) ([]goal.Goal, error) {
	if len(goals) == 0 {
		return nil, nil
	}

	payload := make([]goalInsertRow, 0, len(goals))
	for _, g := range goals {
		payload = append(payload, goalToInsertRow(g))
	}

	var rows []goalRow
	if err := s.client.writeJSON(ctx, "POST", "goals", "", payload, preferInsert, &rows); err != nil {
		return nil, fmt.Errorf("insert goals: %w", err)
	}
	if len(rows) != len(goals) {
		return nil, fmt.Errorf("insert goals: store returned %d rows for %d inserts", len(rows), len(goals))
	}

	out := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *GoalStore) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	values := make([]string, 0, len(ids))
	for _, id := range ids {
		values = append(values, strconv.FormatInt(id, 10))
	}
	query := "id=in.(" + strings.Join(values, ",") + ")"
	if err := s.client.writeJSON(ctx, "DELETE", "goals", query, nil, "", nil); err != nil {
		return fmt.Errorf("delete goals: %w", err)
	}
	return nil
}

type PredictionStore struct {
	client *Client
}

func NewPredictionStore(client *Client) *PredictionStore {
	return &PredictionStore{client: client}
}

func (s *PredictionStore) List(ctx context.Context) ([]prediction.Prediction, error) {
	var rows []predictionRow
	if err := s.client.getJSON(ctx, "predictions", "select=*&deleted_at=is.null&order=created_at.desc,id.desc", &rows); err != nil {
		return nil, fmt.Errorf("list predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}
	return out, nil
}

func (s *PredictionStore) Insert(ctx context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	payload := []predictionInsertRow{{
		MatchID:         p.MatchID,
		WriterStudentNo: p.WriterStudentNo,
		WriterName:      p.WriterName,
		HomeScore:       p.HomeScore,
		AwayScore:       p.AwayScore,
		Comment:         p.Comment,
		CreatedAt:       p.CreatedAt,
	}}

	var rows []predictionRow
	if err := s.client.writeJSON(ctx, "POST", "predictions", "", payload, preferInsert, &rows); err != nil {
		return prediction.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}
	if len(rows) != 1 {
		return prediction.Prediction{}, fmt.Errorf("insert prediction: store returned %d rows", len(rows))
	}
	return rows[0].toDomain(), nil
}
