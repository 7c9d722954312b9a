package postgres

import (
	"database/sql"
	"time"

	"github.com/mirchoi/classcup/internal/domain/goal"
)

type goalTableModel struct {
	ID        int64         `db:"id"`
	MatchID   int64         `db:"match_id"`
	Team      string        `db:"team"`
	PlayerID  sql.NullInt64 `db:"player_id"`
	Count     int           `db:"count"`
	Type      string        `db:"type"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

type goalUpsertModel struct {
	ID        int64         `db:"id"`
	MatchID   int64         `db:"match_id"`
	Team      string        `db:"team"`
	PlayerID  sql.NullInt64 `db:"player_id"`
	Count     int           `db:"count"`
	Type      string        `db:"type"`
	UpdatedAt time.Time     `db:"updated_at"`
}

type goalInsertModel struct {
	MatchID   int64         `db:"match_id"`
	Team      string        `db:"team"`
	PlayerID  sql.NullInt64 `db:"player_id"`
	Count     int           `db:"count"`
	Type      string        `db:"type"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
}

func (m goalTableModel) toDomain() goal.Goal {
	return goal.Goal{
		ID:       m.ID,
		MatchID:  m.MatchID,
		Team:     m.Team,
		PlayerID: nullInt64ToInt64Ptr(m.PlayerID),
		Count:    m.Count,
		Type:     m.Type,
	}
}
