package cache

import (
	"context"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/memory"
	basecache "github.com/riskibarqy/matchday-teams/internal/platform/cache"
)

type countingTeamSheetRepository struct {
	teamsheet.Repository
	lists int
}

func (r *countingTeamSheetRepository) ListByMatchDate(ctx context.Context, date matchday.Date, publishedOnly bool) ([]teamsheet.Team, error) {
	r.lists++
	return r.Repository.ListByMatchDate(ctx, date, publishedOnly)
}

func sampleTeams(date matchday.Date) []teamsheet.Team {
	return []teamsheet.Team{
		{
			ID: "team-1", MatchDate: date, Number: 1, Name: teamsheet.DefaultName(1),
			Assignments: []teamsheet.Assignment{{PlayerID: "pl-gk-01", AssignedPosition: player.PositionGoalkeeper}},
		},
		{
			ID: "team-2", MatchDate: date, Number: 2, Name: teamsheet.DefaultName(2),
			Assignments: []teamsheet.Assignment{{PlayerID: "pl-gk-02", AssignedPosition: player.PositionGoalkeeper}},
		},
	}
}

func TestTeamSheetRepository_CachesUntilWrite(t *testing.T) {
	ctx := t.Context()
	date := matchday.NewDate(2026, time.October, 20)
	inner := &countingTeamSheetRepository{Repository: memory.NewTeamSheetRepository()}
	repo := NewTeamSheetRepository(inner, basecache.NewStore(time.Minute))

	if err := repo.ReplaceAssignments(ctx, date, sampleTeams(date)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	published, err := repo.ListByMatchDate(ctx, date, true)
	if err != nil {
		t.Fatalf("list published: %v", err)
	}
	if len(published) != 0 {
		t.Fatalf("expected nothing published yet, got %d", len(published))
	}
	if _, err := repo.ListByMatchDate(ctx, date, true); err != nil {
		t.Fatalf("list published again: %v", err)
	}
	if inner.lists != 1 {
		t.Fatalf("expected cached second read, got %d loads", inner.lists)
	}

	if _, err := repo.Publish(ctx, date, time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC)); err != nil {
		t.Fatalf("publish: %v", err)
	}
	published, err = repo.ListByMatchDate(ctx, date, true)
	if err != nil {
		t.Fatalf("list after publish: %v", err)
	}
	if len(published) != 2 || !published[0].Published {
		t.Fatalf("expected publish to invalidate the cached empty list, got %+v", published)
	}
	if inner.lists != 2 {
		t.Fatalf("expected reload after publish, got %d loads", inner.lists)
	}
}

func TestTeamSheetRepository_ReturnsCopies(t *testing.T) {
	ctx := t.Context()
	date := matchday.NewDate(2026, time.October, 22)
	repo := NewTeamSheetRepository(memory.NewTeamSheetRepository(), basecache.NewStore(time.Minute))
	if err := repo.ReplaceAssignments(ctx, date, sampleTeams(date)); err != nil {
		t.Fatalf("replace: %v", err)
	}

	first, err := repo.ListByMatchDate(ctx, date, false)
	if err != nil {
		t.Fatalf("list: %v", err)
	}
	first[0].Assignments[0].PlayerID = "mutated"

	second, err := repo.ListByMatchDate(ctx, date, false)
	if err != nil {
		t.Fatalf("list again: %v", err)
	}
	if second[0].Assignments[0].PlayerID != "pl-gk-01" {
		t.Fatalf("cached value was mutated through a returned slice")
	}
}

func TestPlayerRepository_CachesMissingPlayer(t *testing.T) {
	ctx := t.Context()
	repo := NewPlayerRepository(memory.NewPlayerRepository(memory.SeedPlayers()), basecache.NewStore(time.Minute))

	item, exists, err := repo.GetByID(ctx, "pl-gk-01")
	if err != nil || !exists || item.Name == "" {
		t.Fatalf("expected seeded player, got %+v exists=%t err=%v", item, exists, err)
	}
	if _, exists, err := repo.GetByID(ctx, "nobody"); err != nil || exists {
		t.Fatalf("expected missing player, exists=%t err=%v", exists, err)
	}

	active, err := repo.ListActive(ctx)
	if err != nil {
		t.Fatalf("list active: %v", err)
	}
	if len(active) != 22 {
		t.Fatalf("expected 22 active seeded players, got %d", len(active))
	}
}
