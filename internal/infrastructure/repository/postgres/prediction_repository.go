package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/mirchoi/classcup/internal/domain/prediction"
	qb "github.com/mirchoi/classcup/internal/platform/querybuilder"
)

type PredictionRepository struct {
	db *sqlx.DB
}

func NewPredictionRepository(db *sqlx.DB) *PredictionRepository {
	return &PredictionRepository{db: db}
}

func (r *PredictionRepository) List(ctx context.Context) ([]prediction.Prediction, error) {
	query, args, err := qb.Select("*").From("predictions").
		Where(qb.IsNull("deleted_at")).
		OrderBy("created_at DESC", "id DESC").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build select predictions query: %w", err)
	}

	var rows []predictionTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("select predictions: %w", err)
	}

	out := make([]prediction.Prediction, 0, len(rows))
	for _, row := range rows {
		out = append(out, row.toDomain())
	}

	return out, nil
}

func (r *PredictionRepository) Insert(ctx context.Context, p prediction.Prediction) (prediction.Prediction, error) {
	model := predictionInsertModel{
		MatchID:         p.MatchID,
		WriterStudentNo: p.WriterStudentNo,
		WriterName:      p.WriterName,
		HomeScore:       p.HomeScore,
		AwayScore:       p.AwayScore,
		Comment:         p.Comment,
		CreatedAt:       p.CreatedAt,
	}
	query, args, err := qb.InsertModel("predictions", model, "RETURNING id")
	if err != nil {
		return prediction.Prediction{}, fmt.Errorf("build insert prediction query: %w", err)
	}

	saved := p
	if err := r.db.QueryRowContext(ctx, query, args...).Scan(&saved.ID); err != nil {
		return prediction.Prediction{}, fmt.Errorf("insert prediction: %w", err)
	}

	return saved, nil
}
