package postgres

import (
	"database/sql"
	"time"

	"github.com/mirchoi/classcup/internal/domain/match"
)

type matchTableModel struct {
	ID        int64         `db:"id"`
	MatchNo   int           `db:"match_no"`
	Name      string        `db:"name"`
	HomeTeam  string        `db:"home_team"`
	AwayTeam  string        `db:"away_team"`
	Datetime  time.Time     `db:"datetime"`
	Location  string        `db:"location"`
	Status    string        `db:"status"`
	HomeScore sql.NullInt64 `db:"home_score"`
	AwayScore sql.NullInt64 `db:"away_score"`
	HomePK    sql.NullInt64 `db:"home_pk"`
	AwayPK    sql.NullInt64 `db:"away_pk"`
	CreatedAt time.Time     `db:"created_at"`
	UpdatedAt time.Time     `db:"updated_at"`
	DeletedAt *time.Time    `db:"deleted_at"`
}

type matchUpsertModel struct {
	ID        int64         `db:"id"`
	MatchNo   int           `db:"match_no"`
	Name      string        `db:"name"`
	HomeTeam  string        `db:"home_team"`
	AwayTeam  string        `db:"away_team"`
	Datetime  time.Time     `db:"datetime"`
	Location  string        `db:"location"`
	Status    string        `db:"status"`
	HomeScore sql.NullInt64 `db:"home_score"`
	AwayScore sql.NullInt64 `db:"away_score"`
	HomePK    sql.NullInt64 `db:"home_pk"`
	AwayPK    sql.NullInt64 `db:"away_pk"`
	UpdatedAt time.Time     `db:"updated_at"`
}

func (m matchTableModel) toDomain() match.Match {
	return match.Match{
		ID:        m.ID,
		MatchNo:   m.MatchNo,
		Name:      m.Name,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		Datetime:  m.Datetime,
		Location:  m.Location,
		Status:    m.Status,
		HomeScore: nullInt64ToIntPtr(m.HomeScore),
		AwayScore: nullInt64ToIntPtr(m.AwayScore),
		HomePK:    nullInt64ToIntPtr(m.HomePK),
		AwayPK:    nullInt64ToIntPtr(m.AwayPK),
	}
}

func matchToUpsertModel(m match.Match, now time.Time) matchUpsertModel {
	return matchUpsertModel{
		ID:        m.ID,
		MatchNo:   m.MatchNo,
		Name:      m.Name,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		Datetime:  m.Datetime,
		Location:  m.Location,
		Status:    m.Status,
		HomeScore: intPtrToNullInt64(m.HomeScore),
		AwayScore: intPtrToNullInt64(m.AwayScore),
		HomePK:    intPtrToNullInt64(m.HomePK),
		AwayPK:    intPtrToNullInt64(m.AwayPK),
		UpdatedAt: now,
	}
}
