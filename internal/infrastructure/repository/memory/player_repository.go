package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

type PlayerRepository struct {
	mu    sync.RWMutex
	order []string
	index map[string]player.Player
}

func NewPlayerRepository(players []player.Player) *PlayerRepository {
	repo := &PlayerRepository{index: make(map[string]player.Player, len(players))}
	for _, p := range players {
		repo.put(p)
	}
	return repo
}

func (r *PlayerRepository) GetByID(_ context.Context, playerID string) (player.Player, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	p, ok := r.index[playerID]
	return p, ok, nil
}

func (r *PlayerRepository) ListActive(_ context.Context) ([]player.Player, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]player.Player, 0, len(r.order))
	for _, id := range r.order {
		if p := r.index[id]; p.Active {
			out = append(out, p)
		}
	}
	return out, nil
}

// Upsert is used by seeding and tests.
func (r *PlayerRepository) Upsert(_ context.Context, p player.Player) error {
	if err := p.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.put(p)
	return nil
}

func (r *PlayerRepository) put(p player.Player) {
	if _, ok := r.index[p.ID]; !ok {
		r.order = append(r.order, p.ID)
		sort.Strings(r.order)
	}
	r.index[p.ID] = p
}
