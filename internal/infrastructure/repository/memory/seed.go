package memory

import (
	"time"

	"github.com/mirchoi/classcup/internal/domain/bracket"
	"github.com/mirchoi/classcup/internal/domain/match"
	"github.com/mirchoi/classcup/internal/domain/player"
)

// SeedMatches lays out a fresh seven-match bracket: four quarterfinals with
// drawn classes, semifinals and a final holding feeder placeholders.
func SeedMatches() []match.Match {
	day1 := time.Date(2026, 5, 18, 9, 0, 0, 0, time.UTC)
	day2 := day1.AddDate(0, 0, 1)
	day3 := day1.AddDate(0, 0, 2)

	return []match.Match{
		{ID: 1, MatchNo: bracket.QuarterFinal1, Name: "Quarterfinal 1", HomeTeam: "1-2", AwayTeam: "2-3", Datetime: day1, Location: "Main Field", Status: match.StatusScheduled},
		{ID: 2, MatchNo: bracket.QuarterFinal2, Name: "Quarterfinal 2", HomeTeam: "3-1", AwayTeam: "1-4", Datetime: day1.Add(2 * time.Hour), Location: "Main Field", Status: match.StatusScheduled},
		{ID: 3, MatchNo: bracket.QuarterFinal3, Name: "Quarterfinal 3", HomeTeam: "2-1", AwayTeam: "3-3", Datetime: day1.Add(4 * time.Hour), Location: "Main Field", Status: match.StatusScheduled},
		{ID: 4, MatchNo: bracket.QuarterFinal4, Name: "Quarterfinal 4", HomeTeam: "1-1", AwayTeam: "2-4", Datetime: day1.Add(6 * time.Hour), Location: "Main Field", Status: match.StatusScheduled},
		{ID: 5, MatchNo: bracket.SemiFinal1, Name: "Semifinal 1", HomeTeam: bracket.Placeholder(bracket.QuarterFinal1), AwayTeam: bracket.Placeholder(bracket.QuarterFinal2), Datetime: day2, Location: "Main Field", Status: match.StatusScheduled},
		{ID: 6, MatchNo: bracket.SemiFinal2, Name: "Semifinal 2", HomeTeam: bracket.Placeholder(bracket.QuarterFinal3), AwayTeam: bracket.Placeholder(bracket.QuarterFinal4), Datetime: day2.Add(2 * time.Hour), Location: "Main Field", Status: match.StatusScheduled},
		{ID: 7, MatchNo: bracket.Final, Name: "Final", HomeTeam: bracket.Placeholder(bracket.SemiFinal1), AwayTeam: bracket.Placeholder(bracket.SemiFinal2), Datetime: day3, Location: "Main Field", Status: match.StatusScheduled},
	}
}

func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: 1, Class: "1-1", Number: 1, Name: "Kang Minjun", Position: "GK"},
		{ID: 2, Class: "1-1", Number: 7, Name: "Seo Jiho", Position: "FW"},
		{ID: 3, Class: "1-2", Number: 4, Name: "Park Hyunwoo", Position: "DF"},
		{ID: 4, Class: "1-2", Number: 10, Name: "Lee Dohyun", Position: "MF"},
		{ID: 5, Class: "1-4", Number: 9, Name: "Choi Yujin", Position: "FW"},
		{ID: 6, Class: "2-1", Number: 5, Name: "Kim Taeyang", Position: "DF"},
		{ID: 7, Class: "2-1", Number: 11, Name: "Jung Woojin", Position: "FW"},
		{ID: 8, Class: "2-3", Number: 8, Name: "Han Siwoo", Position: "MF"},
		{ID: 9, Class: "2-4", Number: 3, Name: "Yoon Jaemin", Position: "DF"},
		{ID: 10, Class: "3-1", Number: 10, Name: "Oh Seungmin", Position: "MF"},
		{ID: 11, Class: "3-1", Number: 9, Name: "Lim Hajun", Position: "FW"},
		{ID: 12, Class: "3-3", Number: 6, Name: "Shin Donghyuk", Position: "MF"},
	}
}
