package postgres

import (
	"time"

	"github.com/mirchoi/classcup/internal/domain/prediction"
)

type predictionTableModel struct {
	ID              int64      `db:"id"`
	MatchID         int64      `db:"match_id"`
	WriterStudentNo string     `db:"writer_student_no"`
	WriterName      string     `db:"writer_name"`
	HomeScore       int        `db:"home_score"`
	AwayScore       int        `db:"away_score"`
	Comment         string     `db:"comment"`
	CreatedAt       time.Time  `db:"created_at"`
	DeletedAt       *time.Time `db:"deleted_at"`
}

type predictionInsertModel struct {
	MatchID         int64     `db:"match_id"`
	WriterStudentNo string    `db:"writer_student_no"`
	WriterName      string    `db:"writer_name"`
	HomeScore       int       `db:"home_score"`
	AwayScore       int       `db:"away_score"`
	Comment         string    `db:"comment"`
	CreatedAt       time.Time `db:"created_at"`
}

func (m predictionTableModel) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:              m.ID,
		MatchID:         m.MatchID,
		WriterStudentNo: m.WriterStudentNo,
		WriterName:      m.WriterName,
		HomeScore:       m.HomeScore,
		AwayScore:       m.AwayScore,
		Comment:         m.Comment,
		CreatedAt:       m.CreatedAt,
	}
}
