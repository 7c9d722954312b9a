package goal

import "strconv"

const (
	TeamHome = "home"
	TeamAway = "away"
)

const (
	TypeNormal  = "normal"
	TypeOwnGoal = "own_goal"
	TypeEtc     = "etc"
)

// Goal is one scoring record. A single row may stand for several goals by the
// same player in the same match (Count > 1). PlayerID is nil when attribution
// is unknown or the goal is an own goal. Only TypeNormal rows count toward the
// individual scorer ranking.
type Goal struct {
	ID       int64  // store-assigned, 0 while the row only exists in a draft
	LocalKey string // transient draft key, cleared once the row is persisted
	MatchID  int64
	Team     string
	PlayerID *int64
	Count    int
	Type     string
}

func (g Goal) IsPersisted() bool {
	return g.ID != 0
}

func (g Goal) Key() Key {
	if g.IsPersisted() {
		return PersistedKey(g.ID)
	}
	return DraftKey(g.LocalKey)
}

func (g Goal) Clone() Goal {
	out := g
	if g.PlayerID != nil {
		id := *g.PlayerID
		out.PlayerID = &id
	}
	return out
}

func CloneAll(goals []Goal) []Goal {
	out := make([]Goal, 0, len(goals))
	for _, g := range goals {
		out = append(out, g.Clone())
	}
	return out
}

func IsValidTeam(team string) bool {
	return team == TeamHome || team == TeamAway
}

func IsValidType(goalType string) bool {
	switch goalType {
	case TypeNormal, TypeOwnGoal, TypeEtc:
		return true
	default:
		return false
	}
}

// Key identifies a goal row across the persisted/draft boundary: by store id
// once saved, by a locally generated draft key before that.
type Key struct {
	id    int64
	local string
}

func PersistedKey(id int64) Key {
	return Key{id: id}
}

func DraftKey(local string) Key {
	return Key{local: local}
}

// ParseKey reads a key in its string form: a decimal store id, or anything
// else as a draft key.
func ParseKey(raw string) Key {
	if id, err := strconv.ParseInt(raw, 10, 64); err == nil && id > 0 {
		return PersistedKey(id)
	}
	return DraftKey(raw)
}

func (k Key) Persisted() (int64, bool) {
	return k.id, k.id != 0
}

func (k Key) IsZero() bool {
	return k.id == 0 && k.local == ""
}

func (k Key) String() string {
	if k.id != 0 {
		return strconv.FormatInt(k.id, 10)
	}
	return k.local
}
