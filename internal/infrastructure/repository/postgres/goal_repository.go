package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/mirchoi/classcup/internal/domain/goal"
	qb "github.com/mirchoi/classcup/internal/platform/querybuilder"
)

type GoalRepository struct {
	db *sqlx.DB
}

func NewGoalRepository(db *sqlx.DB) *GoalRepository {
	return &GoalRepository{db: db}
}

func (r *GoalRepository) List(ctx context.Context) ([]goal.Goal, error) {
	query, args, err := qb.Select("*").From("goals").
		Where(qb.IsNull("deleted_at")).
		OrderBy("id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select goals query: %w", err)
	}

	var rows []goalTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select goals: %w", err)
	}

	out := make([]goal.Goal, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *GoalRepository) UpsertAll(ctx context.Context, goals []goal.Goal) error {
	if len(goals) == 0 {
		return nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin upsert goals tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	for _, g := range goals {
		model := goalUpsertModel{
			ID:        g.ID,
			MatchID:   g.MatchID,
			Team:      g.Team,
			PlayerID:  int64PtrToNullInt64(g.PlayerID),
			Count:     g.Count,
			Type:      g.Type,
			UpdatedAt: now,
		}
		query, args, err := qb.InsertModel("goals", model, `ON CONFLICT (id) DO UPDATE SET
match_id = EXCLUDED.match_id,
team = EXCLUDED.team,
player_id = EXCLUDED.player_id,
count = EXCLUDED.count,
type = EXCLUDED.type,
updated_at = EXCLUDED.updated_at`)
		if err != nil {
			return fmt.Errorf("build upsert goal query: %w", err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("upsert goal %d: %w", g.ID, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit upsert goals tx: %w", err)
	}
	return nil
}

func (r *GoalRepository) InsertAll(ctx context.Context, goals []goal.Goal) ([]goal.Goal, error) {
	if len(goals) == 0 {
		return nil, nil
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return nil, fmt.Errorf("begin insert goals tx: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	now := time.Now().UTC()
	out := make([]goal.Goal, 0, len(goals))
	for _, g := range goals {
		model := goalInsertModel{
			MatchID:   g.MatchID,
			Team:      g.Team,
			PlayerID:  int64PtrToNullInt64(g.PlayerID),
			Count:     g.Count,
			Type:      g.Type,
			CreatedAt: now,
			UpdatedAt: now,
		}
		query, args, err := qb.InsertModel("goals", model, "RETURNING id")
		if err != nil {
			return nil, fmt.Errorf("build insert goal query: %w", err)
		}

		row := g.Clone()
		row.LocalKey = ""
		if err := tx.QueryRowContext(ctx, query, args...).Scan(&row.ID); err != nil {
			return nil, fmt.Errorf("insert goal: %w", err)
		}
		out = append(out, row)
	}

	if err := tx.Commit(); err != nil {
		return nil, fmt.Errorf("commit insert goals tx: %w", err)
	}
	return out, nil
}

func (r *GoalRepository) DeleteByIDs(ctx context.Context, ids []int64) error {
	if len(ids) == 0 {
		return nil
	}

	values := make([]any, 0, len(ids))
	for _, id := range ids {
		values = append(values, id)
	}

	query, args, err := qb.Update("goals").
		Set("deleted_at", time.Now().UTC()).
		Where(
			qb.In("id", values),
			qb.IsNull("deleted_at"),
		).
		ToSQL()
	if err != nil {
		return fmt.Errorf("build delete goals query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("delete goals: %w", err)
	}
	return nil
}
