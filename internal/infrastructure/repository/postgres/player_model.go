package postgres

import (
	"time"

	"github.com/mirchoi/classcup/internal/domain/player"
)

type playerTableModel struct {
	ID        int64      `db:"id"`
	Class     string     `db:"class"`
	Number    int        `db:"number"`
	Name      string     `db:"name"`
	Position  string     `db:"position"`
	CreatedAt time.Time  `db:"created_at"`
	UpdatedAt time.Time  `db:"updated_at"`
	DeletedAt *time.Time `db:"deleted_at"`
}

func (m playerTableModel) toDomain() player.Player {
	return player.Player{
		ID:       m.ID,
		Class:    m.Class,
		Number:   m.Number,
		Name:     m.Name,
		Position: m.Position,
	}
}
