package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

// AvailabilityRepository also serves as the player pool for generation.
type AvailabilityRepository struct {
	mu      sync.RWMutex
	items   map[string]availability.Record
	players player.Repository
}

func NewAvailabilityRepository(players player.Repository) *AvailabilityRepository {
	return &AvailabilityRepository{
		items:   make(map[string]availability.Record),
		players: players,
	}
}

func (r *AvailabilityRepository) Upsert(_ context.Context, record availability.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}
	r.mu.Lock()
	defer r.mu.Unlock()

	r.items[availabilityKey(record.PlayerID, record.MatchDate)] = record
	return nil
}

func (r *AvailabilityRepository) Get(_ context.Context, playerID string, date matchday.Date) (availability.Record, bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	record, ok := r.items[availabilityKey(playerID, date)]
	return record, ok, nil
}

func (r *AvailabilityRepository) ListByMatchDate(_ context.Context, date matchday.Date) ([]availability.Record, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]availability.Record, 0)
	for _, record := range r.items {
		if record.MatchDate == date {
			out = append(out, record)
		}
	}
	sort.Slice(out, func(i, j int) bool { return out[i].PlayerID < out[j].PlayerID })
	return out, nil
}

// ListAvailable returns active players who answered yes for the date.
func (r *AvailabilityRepository) ListAvailable(ctx context.Context, date matchday.Date) ([]player.Player, error) {
	records, err := r.ListByMatchDate(ctx, date)
	if err != nil {
		return nil, err
	}

	out := make([]player.Player, 0, len(records))
	for _, record := range records {
		if !record.Available {
			continue
		}
		p, exists, err := r.players.GetByID(ctx, record.PlayerID)
		if err != nil {
			return nil, err
		}
		if !exists || !p.Active {
			continue
		}
		out = append(out, p)
	}
	return out, nil
}

func availabilityKey(playerID string, date matchday.Date) string {
	return playerID + "::" + date.String()
}
