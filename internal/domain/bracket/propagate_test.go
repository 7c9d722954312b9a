package bracket

import (
	"testing"

	"github.com/mirchoi/classcup/internal/domain/match"
)

func intPtr(v int) *int { return &v }

func finished(no int, home, away string, hs, as int) match.Match {
	return match.Match{
		MatchNo:   no,
		HomeTeam:  home,
		AwayTeam:  away,
		Status:    match.StatusFinished,
		HomeScore: intPtr(hs),
		AwayScore: intPtr(as),
	}
}

func fullBracket() []match.Match {
	return []match.Match{
		finished(QuarterFinal1, "1-1", "1-2", 2, 0),
		finished(QuarterFinal2, "1-3", "1-4", 0, 1),
		finished(QuarterFinal3, "1-5", "1-6", 1, 1),
		finished(QuarterFinal4, "1-7", "1-8", 3, 2),
		{MatchNo: SemiFinal1, Status: match.StatusScheduled},
		{MatchNo: SemiFinal2, Status: match.StatusScheduled},
		{MatchNo: Final, Status: match.StatusScheduled},
	}
}

func teamsOf(matches []match.Match, no int) (string, string) {
	for _, m := range matches {
		if m.MatchNo == no {
			return m.HomeTeam, m.AwayTeam
		}
	}
	return "", ""
}

func TestPropagateFillsSemifinalsAndFinal(t *testing.T) {
	t.Parallel()

	matches := fullBracket()
	Propagate(matches)

	if home, away := teamsOf(matches, SemiFinal1); home != "1-1" || away != "1-4" {
		t.Fatalf("semifinal 1 = %q vs %q", home, away)
	}
	// QF3 is a score tie without PK tallies, so SF2 home stays a placeholder.
	if home, away := teamsOf(matches, SemiFinal2); home != "quarterfinal-3 winner" || away != "1-7" {
		t.Fatalf("semifinal 2 = %q vs %q", home, away)
	}
	if home, away := teamsOf(matches, Final); home != "semifinal-1 winner" || away != "semifinal-2 winner" {
		t.Fatalf("final = %q vs %q", home, away)
	}
}

func TestPropagateFlowsThroughFinishedSemifinal(t *testing.T) {
	t.Parallel()

	matches := fullBracket()
	for i := range matches {
		if matches[i].MatchNo == SemiFinal1 {
			matches[i] = finished(SemiFinal1, "stale-a", "stale-b", 1, 0)
		}
	}
	Propagate(matches)

	// The semifinal's teams are rewritten first, then its own result feeds
	// the final in the same pass.
	if home, away := teamsOf(matches, SemiFinal1); home != "1-1" || away != "1-4" {
		t.Fatalf("semifinal 1 = %q vs %q", home, away)
	}
	if home, _ := teamsOf(matches, Final); home != "1-1" {
		t.Fatalf("final home = %q, want 1-1", home)
	}
}

func TestPropagateIsIdempotent(t *testing.T) {
	t.Parallel()

	first := fullBracket()
	Propagate(first)

	second := match.CloneAll(first)
	Propagate(second)

	for i := range first {
		if first[i].HomeTeam != second[i].HomeTeam || first[i].AwayTeam != second[i].AwayTeam {
			t.Fatalf("slot %d changed on second pass: %q/%q vs %q/%q",
				first[i].MatchNo, first[i].HomeTeam, first[i].AwayTeam, second[i].HomeTeam, second[i].AwayTeam)
		}
	}
}

func TestPropagatePKTieBreakAdvancesHome(t *testing.T) {
	t.Parallel()

	matches := fullBracket()
	for i := range matches {
		if matches[i].MatchNo == QuarterFinal3 {
			matches[i].HomePK = intPtr(4)
			matches[i].AwayPK = intPtr(2)
		}
	}
	Propagate(matches)

	if home, _ := teamsOf(matches, SemiFinal2); home != "1-5" {
		t.Fatalf("semifinal 2 home = %q, want 1-5", home)
	}
}
