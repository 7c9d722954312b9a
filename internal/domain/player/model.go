package player

// Player is one roster entry. Class is the team identifier and matches
// Match.HomeTeam/AwayTeam; Number is the jersey number, unique within a class.
type Player struct {
	ID       int64
	Class    string
	Number   int
	Name     string
	Position string
}
