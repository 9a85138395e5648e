package memory

import (
	"context"
	"maps"
	"sort"
	"sync"

	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
)

type JobDispatchRepository struct {
	mu    sync.RWMutex
	items map[string]jobscheduler.DispatchEvent
}

func NewJobDispatchRepository() *JobDispatchRepository {
	return &JobDispatchRepository{items: make(map[string]jobscheduler.DispatchEvent)}
}

// UpsertEvent keeps the latest state per dispatch id.
func (r *JobDispatchRepository) UpsertEvent(_ context.Context, event jobscheduler.DispatchEvent) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	event.Payload = maps.Clone(event.Payload)
	r.items[event.DispatchID] = event
	return nil
}

func (r *JobDispatchRepository) ListByMatchDate(_ context.Context, matchDate string) ([]jobscheduler.DispatchEvent, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]jobscheduler.DispatchEvent, 0)
	for _, event := range r.items {
		if event.MatchDate == matchDate {
			out = append(out, event)
		}
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].OccurredAt.Equal(out[j].OccurredAt) {
			return out[i].DispatchID < out[j].DispatchID
		}
		return out[i].OccurredAt.Before(out[j].OccurredAt)
	})
	return out, nil
}
