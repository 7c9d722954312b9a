package prediction

import (
	"time"

	"github.com/mirchoi/classcup/internal/domain/match"
)

// Prediction is one fan score guess. Writers are identified by the composite
// (student number, name) pair; there is no account system behind it.
type Prediction struct {
	ID              int64
	MatchID         int64
	WriterStudentNo string
	WriterName      string
	HomeScore       int
	AwayScore       int
	Comment         string
	CreatedAt       time.Time
}

// Hit reports whether the prediction exactly matched a finished match's final
// score. PK results are never consulted here.
func (p Prediction) Hit(m match.Match) bool {
	if !m.IsFinished() || m.HomeScore == nil || m.AwayScore == nil {
		return false
	}
	return p.HomeScore == *m.HomeScore && p.AwayScore == *m.AwayScore
}
