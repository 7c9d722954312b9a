package memory

import (
	"context"
	"sync"

	"github.com/mirchoi/classcup/internal/domain/player"
)

type PlayerRepository struct {
	mu      sync.RWMutex
	players []player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	rows := make([]player.Player, len(players))
	copy(rows, players)
	return &PlayerRepository{players: rows}
}

func (r *PlayerRepository) List(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, len(r.players))
	copy(out, r.players)
	return out, nil
}
