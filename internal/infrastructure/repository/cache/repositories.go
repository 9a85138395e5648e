package cache

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	basecache "github.com/riskibarqy/matchday-teams/internal/platform/cache"
)

// TeamSheetRepository caches team reads per date. Every write drops the date's entries.
type TeamSheetRepository struct {
	next  teamsheet.Repository
	cache *basecache.Store
}

func NewTeamSheetRepository(next teamsheet.Repository, cache *basecache.Store) *TeamSheetRepository {
	return &TeamSheetRepository{next: next, cache: cache}
}

func (r *TeamSheetRepository) ReplaceAssignments(ctx context.Context, date matchday.Date, teams []teamsheet.Team) error {
	defer r.invalidate(ctx, date)
	return r.next.ReplaceAssignments(ctx, date, teams)
}

// AnyPublished always reads through; the generation pipeline decides on it.
func (r *TeamSheetRepository) AnyPublished(ctx context.Context, date matchday.Date) (bool, error) {
	return r.next.AnyPublished(ctx, date)
}

func (r *TeamSheetRepository) Publish(ctx context.Context, date matchday.Date, at time.Time) (int, error) {
	defer r.invalidate(ctx, date)
	return r.next.Publish(ctx, date, at)
}

func (r *TeamSheetRepository) ListByMatchDate(ctx context.Context, date matchday.Date, publishedOnly bool) ([]teamsheet.Team, error) {
	key := teamSheetKeyPrefix(date) + "all"
	if publishedOnly {
		key = teamSheetKeyPrefix(date) + "published"
	}

	v, err := r.cache.GetOrLoad(ctx, key, func(ctx context.Context) (any, error) {
		items, err := r.next.ListByMatchDate(ctx, date, publishedOnly)
		if err != nil {
			return nil, err
		}
		return cloneTeams(items), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]teamsheet.Team)
	return cloneTeams(items), nil
}

func (r *TeamSheetRepository) invalidate(ctx context.Context, date matchday.Date) {
	r.cache.DeletePrefix(ctx, teamSheetKeyPrefix(date))
}

func teamSheetKeyPrefix(date matchday.Date) string {
	return "teamsheet:" + date.String() + ":"
}

func cloneTeams(items []teamsheet.Team) []teamsheet.Team {
	out := make([]teamsheet.Team, 0, len(items))
	for _, item := range items {
		copied := item
		copied.Assignments = append([]teamsheet.Assignment(nil), item.Assignments...)
		if item.PublishedAt != nil {
			at := *item.PublishedAt
			copied.PublishedAt = &at
		}
		out = append(out, copied)
	}
	return out
}

type PlayerRepository struct {
	next  player.Repository
	cache *basecache.Store
}

func NewPlayerRepository(next player.Repository, cache *basecache.Store) *PlayerRepository {
	return &PlayerRepository{next: next, cache: cache}
}

func (r *PlayerRepository) GetByID(ctx context.Context, playerID string) (player.Player, bool, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:id:"+playerID, func(ctx context.Context) (any, error) {
		item, exists, err := r.next.GetByID(ctx, playerID)
		if err != nil {
			return nil, err
		}
		return cachedPlayerByID{value: item, exists: exists}, nil
	})
	if err != nil {
		return player.Player{}, false, err
	}

	cached, _ := v.(cachedPlayerByID)
	return cached.value, cached.exists, nil
}

func (r *PlayerRepository) ListActive(ctx context.Context) ([]player.Player, error) {
	v, err := r.cache.GetOrLoad(ctx, "player:active", func(ctx context.Context) (any, error) {
		items, err := r.next.ListActive(ctx)
		if err != nil {
			return nil, err
		}
		return append([]player.Player(nil), items...), nil
	})
	if err != nil {
		return nil, err
	}

	items, _ := v.([]player.Player)
	return append([]player.Player(nil), items...), nil
}

type cachedPlayerByID struct {
	value  player.Player
	exists bool
}
