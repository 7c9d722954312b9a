package match

import (
	"strings"
	"time"
)

const (
	StatusScheduled  = "scheduled"
	StatusInProgress = "in_progress"
	StatusFinished   = "finished"
)

// Match is one bracket fixture. HomeTeam/AwayTeam carry either a class name
// or a placeholder label ("quarterfinal-1 winner") until the feeding match
// resolves. Scores and PK tallies are nil until entered by the admin.
type Match struct {
	ID        int64
	MatchNo   int
	Name      string
	HomeTeam  string
	AwayTeam  string
	Datetime  time.Time
	Location  string
	Status    string
	HomeScore *int
	AwayScore *int
	HomePK    *int
	AwayPK    *int
}

func NormalizeStatus(value string) string {
	status := strings.ToLower(strings.TrimSpace(value))
	if status == "" {
		return StatusScheduled
	}
	return status
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusScheduled, StatusInProgress, StatusFinished:
		return true
	default:
		return false
	}
}

func (m Match) IsFinished() bool {
	return m.Status == StatusFinished
}

// Result reports the winning and losing team of a finished match. Both
// returns are empty when the match has no result yet: not finished, a score
// missing, or a score tie that the PK tallies do not break.
func (m Match) Result() (winner, loser string) {
	if !m.IsFinished() || m.HomeScore == nil || m.AwayScore == nil {
		return "", ""
	}

	if *m.HomeScore > *m.AwayScore {
		return m.HomeTeam, m.AwayTeam
	}
	if *m.HomeScore < *m.AwayScore {
		return m.AwayTeam, m.HomeTeam
	}

	if m.HomePK == nil || m.AwayPK == nil {
		return "", ""
	}
	if *m.HomePK > *m.AwayPK {
		return m.HomeTeam, m.AwayTeam
	}
	if *m.HomePK < *m.AwayPK {
		return m.AwayTeam, m.HomeTeam
	}

	return "", ""
}

// Clone returns a deep copy, detaching the optional score pointers.
func (m Match) Clone() Match {
	out := m
	out.HomeScore = cloneInt(m.HomeScore)
	out.AwayScore = cloneInt(m.AwayScore)
	out.HomePK = cloneInt(m.HomePK)
	out.AwayPK = cloneInt(m.AwayPK)
	return out
}

func CloneAll(matches []Match) []Match {
	out := make([]Match, 0, len(matches))
	for _, m := range matches {
		out = append(out, m.Clone())
	}
	return out
}

func cloneInt(v *int) *int {
	if v == nil {
		return nil
	}
	value := *v
	return &value
}
