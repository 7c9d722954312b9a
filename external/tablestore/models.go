package tablestore

import (
	"time"

	"github.com/mirchoi/classcup/internal/domain/goal"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
	"github.com/mirchoi/classcup/internal/domain/prediction"
)

type matchRow struct {
	ID        int64     `json:"id"`
	MatchNo   int       `json:"match_no"`
	Name      string    `json:"name"`
	HomeTeam  string    `json:"home_team"`
	AwayTeam  string    `json:"away_team"`
	Datetime  time.Time `json:"datetime"`
	Location  string    `json:"location"`
	Status    string    `json:"status"`
	HomeScore *int      `json:"home_score"`
	AwayScore *int      `json:"away_score"`
	HomePK    *int      `json:"home_pk"`
	AwayPK    *int      `json:"away_pk"`
}

func (r matchRow) toDomain() match.Match {
	return match.Match{
		ID:        r.ID,
		MatchNo:   r.MatchNo,
		Name:      r.Name,
		HomeTeam:  r.HomeTeam,
		AwayTeam:  r.AwayTeam,
		Datetime:  r.Datetime,
		Location:  r.Location,
		Status:    r.Status,
		HomeScore: copyIntPtr(r.HomeScore),
		AwayScore: copyIntPtr(r.AwayScore),
		HomePK:    copyIntPtr(r.HomePK),
		AwayPK:    copyIntPtr(r.AwayPK),
	}
}

func matchToRow(m match.Match) matchRow {
	return matchRow{
		ID:        m.ID,
		MatchNo:   m.MatchNo,
		Name:      m.Name,
		HomeTeam:  m.HomeTeam,
		AwayTeam:  m.AwayTeam,
		Datetime:  m.Datetime,
		Location:  m.Location,
		Status:    m.Status,
		HomeScore: copyIntPtr(m.HomeScore),
		AwayScore: copyIntPtr(m.AwayScore),
		HomePK:    copyIntPtr(m.HomePK),
		AwayPK:    copyIntPtr(m.AwayPK),
	}
}

type playerRow struct {
	ID       int64  `json:"id"`
	Class    string `json:"class"`
	Number   int    `json:"number"`
	Name     string `json:"name"`
	Position string `json:"position"`
}

func (r playerRow) toDomain() player.Player {
	return player.Player{
		ID:       r.ID,
		Class:    r.Class,
		Number:   r.Number,
		Name:     r.Name,
		Position: r.Position,
	}
}

type goalRow struct {
	ID       int64  `json:"id"`
	MatchID  int64  `json:"match_id"`
	Team     string `json:"team"`
	PlayerID *int64 `json:"player_id"`
	Count    int    `json:"count"`
	Type     string `json:"type"`
}

func (r goalRow) toDomain() goal.Goal {
	return goal.Goal{
		ID:       r.ID,
		MatchID:  r.MatchID,
		Team:     r.Team,
		PlayerID: copyInt64Ptr(r.PlayerID),
		Count:    r.Count,
		Type:     r.Type,
	}
}

type goalInsertRow struct {
	MatchID  int64  `json:"match_id"`
	Team     string `json:"team"`
	PlayerID *int64 `json:"player_id"`
	Count    int    `json:"count"`
	Type     string `json:"type"`
}

func goalToRow(g goal.Goal) goalRow {
	return goalRow{
		ID:       g.ID,
		MatchID:  g.MatchID,
		Team:     g.Team,
		PlayerID: copyInt64Ptr(g.PlayerID),
		Count:    g.Count,
		Type:     g.Type,
	}
}

func goalToInsertRow(g goal.Goal) goalInsertRow {
	return goalInsertRow{
		MatchID:  g.MatchID,
		Team:     g.Team,
		PlayerID: copyInt64Ptr(g.PlayerID),
		Count:    g.Count,
		Type:     g.Type,
	}
}

type predictionRow struct {
	ID              int64     `json:"id"`
	MatchID         int64     `json:"match_id"`
	WriterStudentNo string    `json:"writer_student_no"`
	WriterName      string    `json:"writer_name"`
	HomeScore       int       `json:"home_score"`
	AwayScore       int       `json:"away_score"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

type predictionInsertRow struct {
	MatchID         int64     `json:"match_id"`
	WriterStudentNo string    `json:"writer_student_no"`
	WriterName      string    `json:"writer_name"`
	HomeScore       int       `json:"home_score"`
	AwayScore       int       `json:"away_score"`
	Comment         string    `json:"comment"`
	CreatedAt       time.Time `json:"created_at"`
}

func (r predictionRow) toDomain() prediction.Prediction {
	return prediction.Prediction{
		ID:              r.ID,
		MatchID:         r.MatchID,
		WriterStudentNo: r.WriterStudentNo,
		WriterName:      r.WriterName,
		HomeScore:       r.HomeScore,
		AwayScore:       r.AwayScore,
		Comment:         r.Comment,
		CreatedAt:       r.CreatedAt,
	}
}

func copyIntPtr(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}

func copyInt64Ptr(v *int64) *int64 {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
