package bracket

import (
	"fmt"

	"github.com/mirchoi/classcup/internal/domain/match"
)

// Slot numbers are the fixed bracket positions carried in Match.MatchNo.
const (
	QuarterFinal1 = 1
	QuarterFinal2 = 2
	QuarterFinal3 = 3
	QuarterFinal4 = 4
	SemiFinal1    = 5
	SemiFinal2    = 6
	Final         = 7
)

// feeds maps a downstream slot to the two matches whose winners fill its
// home and away sides.
var feeds = map[int][2]int{
	SemiFinal1: {QuarterFinal1, QuarterFinal2},
	SemiFinal2: {QuarterFinal3, QuarterFinal4},
	Final:      {SemiFinal1, SemiFinal2},
}

func roundLabel(slot int) string {
	switch slot {
	case QuarterFinal1, QuarterFinal2, QuarterFinal3, QuarterFinal4:
		return "quarterfinal"
	case SemiFinal1, SemiFinal2:
		return "semifinal"
	default:
		return "final"
	}
}

// Placeholder is the team label shown in a downstream slot while the feeding
// match is still unresolved.
func Placeholder(feederSlot int) string {
	n := feederSlot
	if feederSlot >= SemiFinal1 {
		n = feederSlot - QuarterFinal4
	}
	return fmt.Sprintf("%s-%d winner", roundLabel(feederSlot), n)
}

// Propagate rewrites the home/away team names of the semifinals and the final
// from upstream winners, keyed by MatchNo. Slots whose feeder has no result
// yet get a placeholder label. The pass is idempotent and touches nothing but
// HomeTeam/AwayTeam of downstream slots; semifinals are resolved after their
// own teams have been rewritten so a quarterfinal edit flows through to the
// final in one pass.
func Propagate(matches []match.Match) {
	bySlot := make(map[int]*match.Match, len(matches))
	for i := range matches {
		bySlot[matches[i].MatchNo] = &matches[i]
	}

	for _, slot := range []int{SemiFinal1, SemiFinal2, Final} {
		target, ok := bySlot[slot]
		if !ok {
			continue
		}

		pair := feeds[slot]
		target.HomeTeam = advancingTeam(bySlot, pair[0])
		target.AwayTeam = advancingTeam(bySlot, pair[1])
	}
}

func advancingTeam(bySlot map[int]*match.Match, feederSlot int) string {
	feeder, ok := bySlot[feederSlot]
	if !ok {
		return Placeholder(feederSlot)
	}
	winner, _ := feeder.Result()
	if winner == "" {
		return Placeholder(feederSlot)
	}
	return winner
}
