package memory

import (
	"context"
	"sync"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
)

type TeamSheetRepository struct {
	mu    sync.RWMutex
	items map[matchday.Date][]teamsheet.Team
}

func NewTeamSheetRepository() *TeamSheetRepository {
	return &TeamSheetRepository{items: make(map[matchday.Date][]teamsheet.Team)}
}

func (r *TeamSheetRepository) ReplaceAssignments(_ context.Context, date matchday.Date, teams []teamsheet.Team) error {
	if err := teamsheet.ValidateSet(date, teams); err != nil {
		return err
	}

	next := make([]teamsheet.Team, 0, len(teams))
	for _, item := range teams {
		copied := cloneTeam(item)
		copied.Published = false
		copied.PublishedAt = nil
		next = append(next, copied)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if len(next) == 0 {
		delete(r.items, date)
		return nil
	}
	r.items[date] = next
	return nil
}

func (r *TeamSheetRepository) AnyPublished(_ context.Context, date matchday.Date) (bool, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	for _, item := range r.items[date] {
		if item.Published {
			return true, nil
		}
	}
	return false, nil
}

func (r *TeamSheetRepository) Publish(_ context.Context, date matchday.Date, at time.Time) (int, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	teams := r.items[date]
	for i := range teams {
		if teams[i].Published {
			continue
		}
		publishedAt := at
		teams[i].Published = true
		teams[i].PublishedAt = &publishedAt
	}
	return len(teams), nil
}

func (r *TeamSheetRepository) ListByMatchDate(_ context.Context, date matchday.Date, publishedOnly bool) ([]teamsheet.Team, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]teamsheet.Team, 0, len(r.items[date]))
	for _, item := range r.items[date] {
		if publishedOnly && !item.Published {
			continue
		}
		out = append(out, cloneTeam(item))
	}
	return out, nil
}

func cloneTeam(item teamsheet.Team) teamsheet.Team {
	copied := item
	copied.Assignments = append([]teamsheet.Assignment(nil), item.Assignments...)
	if item.PublishedAt != nil {
		at := *item.PublishedAt
		copied.PublishedAt = &at
	}
	return copied
}
