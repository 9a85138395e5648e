package usecase

import (
	"errors"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/memory"
	availabilitymock "github.com/riskibarqy/matchday-teams/internal/mocks/domain/availability"
	playermock "github.com/riskibarqy/matchday-teams/internal/mocks/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/stretchr/testify/mock"
)

func newAvailabilityService(now time.Time) (*AvailabilityService, *memory.AvailabilityRepository) {
	players := memory.NewPlayerRepository(memory.SeedPlayers())
	repo := memory.NewAvailabilityRepository(players)
	service := NewAvailabilityService(matchday.DefaultCalendar(), repo, players, 2, logging.NewNop())
	service.now = func() time.Time { return now }
	return service, repo
}

func TestAvailabilityService_Window_FromFriday(t *testing.T) {
	friday := time.Date(2026, time.October, 16, 10, 0, 0, 0, time.UTC)
	service, repo := newAvailabilityService(friday)

	if err := repo.Upsert(t.Context(), availability.Record{PlayerID: "pl-gk-01", MatchDate: matchday.NewDate(2026, time.October, 22), Available: false}); err != nil {
		t.Fatalf("seed availability: %v", err)
	}

	entries, err := service.Window(t.Context(), "pl-gk-01")
	if err != nil {
		t.Fatalf("window: %v", err)
	}

	want := []string{"2026-10-20", "2026-10-22", "2026-10-27", "2026-10-29"}
	if len(entries) != len(want) {
		t.Fatalf("unexpected entry count: got=%d want=%d", len(entries), len(want))
	}
	for i, entry := range entries {
		if entry.Date.String() != want[i] {
			t.Fatalf("entry %d: got=%s want=%s", i, entry.Date, want[i])
		}
		if !entry.IsOpen || entry.IsPublished {
			t.Fatalf("entry %d should be open", i)
		}
	}
	if entries[0].Available != nil {
		t.Fatalf("expected no answer for first date")
	}
	if entries[1].Available == nil || *entries[1].Available {
		t.Fatalf("expected recorded 'no' for second date")
	}
	if entries[0].Weekday != "Tuesday" {
		t.Fatalf("unexpected weekday: %s", entries[0].Weekday)
	}
}

func TestAvailabilityService_Submit_LastWriteWins(t *testing.T) {
	service, repo := newAvailabilityService(beforeDeadlineAt)

	for _, available := range []bool{true, false, true} {
		if _, err := service.Submit(t.Context(), SubmitAvailabilityInput{
			PlayerID:  "pl-mid-01",
			MatchDate: "2026-10-20",
			Available: available,
		}); err != nil {
			t.Fatalf("submit: %v", err)
		}
	}

	record, exists, err := repo.Get(t.Context(), "pl-mid-01", tuesdayMatch)
	if err != nil || !exists {
		t.Fatalf("expected stored record, exists=%v err=%v", exists, err)
	}
	if !record.Available {
		t.Fatalf("expected last write to win")
	}
	if !record.UpdatedAt.Equal(beforeDeadlineAt) {
		t.Fatalf("unexpected updated_at: %s", record.UpdatedAt)
	}
}

func TestAvailabilityService_Submit_AfterDeadlineRejected(t *testing.T) {
	service, repo := newAvailabilityService(beforeDeadlineAt)
	if _, err := service.Submit(t.Context(), SubmitAvailabilityInput{PlayerID: "pl-fwd-01", MatchDate: "2026-10-20", Available: true}); err != nil {
		t.Fatalf("submit before deadline: %v", err)
	}

	service.now = func() time.Time { return time.Date(2026, time.October, 20, 12, 0, 0, 0, time.UTC) }
	_, err := service.Submit(t.Context(), SubmitAvailabilityInput{PlayerID: "pl-fwd-01", MatchDate: "2026-10-20", Available: false})
	if !errors.Is(err, ErrDeadlinePassed) {
		t.Fatalf("expected ErrDeadlinePassed, got %v", err)
	}

	record, _, err := repo.Get(t.Context(), "pl-fwd-01", tuesdayMatch)
	if err != nil {
		t.Fatalf("get record: %v", err)
	}
	if !record.Available {
		t.Fatalf("rejected write must leave the record unchanged")
	}
}

func TestAvailabilityService_Submit_Validation(t *testing.T) {
	service, _ := newAvailabilityService(beforeDeadlineAt)

	cases := []struct {
		name  string
		input SubmitAvailabilityInput
		want  error
	}{
		{name: "missing player", input: SubmitAvailabilityInput{MatchDate: "2026-10-20"}, want: ErrInvalidInput},
		{name: "malformed date", input: SubmitAvailabilityInput{PlayerID: "pl-def-01", MatchDate: "20-10-2026"}, want: ErrInvalidDate},
		{name: "not a match day", input: SubmitAvailabilityInput{PlayerID: "pl-def-01", MatchDate: "2026-10-21"}, want: ErrInvalidDate},
		{name: "unknown player", input: SubmitAvailabilityInput{PlayerID: "nobody", MatchDate: "2026-10-20"}, want: ErrNotFound},
		{name: "inactive player", input: SubmitAvailabilityInput{PlayerID: "pl-fwd-07", MatchDate: "2026-10-20"}, want: ErrNotFound},
	}
	for _, tc := range cases {
		if _, err := service.Submit(t.Context(), tc.input); !errors.Is(err, tc.want) {
			t.Fatalf("%s: expected %v, got %v", tc.name, tc.want, err)
		}
	}
}

func TestAvailabilityService_Submit_PlayerLookupErrorUsingMockery(t *testing.T) {
	t.Parallel()

	repo := availabilitymock.NewRepository(t)
	players := playermock.NewRepository(t)
	service := NewAvailabilityService(matchday.DefaultCalendar(), repo, players, 2, logging.NewNop())
	service.now = func() time.Time { return beforeDeadlineAt }

	players.On("GetByID", mock.Anything, "pl-1").Return(player.Player{}, false, errors.New("db down")).Once()

	if _, err := service.Submit(t.Context(), SubmitAvailabilityInput{PlayerID: "pl-1", MatchDate: "2026-10-20"}); err == nil {
		t.Fatalf("expected lookup error")
	}
	repo.AssertNotCalled(t, "Upsert", mock.Anything, mock.Anything)
}

func TestAvailabilityService_Submit_UpsertErrorUsingMockery(t *testing.T) {
	t.Parallel()

	repo := availabilitymock.NewRepository(t)
	players := playermock.NewRepository(t)
	service := NewAvailabilityService(matchday.DefaultCalendar(), repo, players, 2, logging.NewNop())
	service.now = func() time.Time { return beforeDeadlineAt }

	players.On("GetByID", mock.Anything, "pl-1").Return(player.Player{ID: "pl-1", Active: true}, true, nil).Once()
	repo.On("Upsert", mock.Anything, mock.MatchedBy(func(r availability.Record) bool {
		return r.PlayerID == "pl-1" && r.MatchDate == tuesdayMatch && r.Available
	})).Return(errors.New("deadlock")).Once()

	_, err := service.Submit(t.Context(), SubmitAvailabilityInput{PlayerID: "pl-1", MatchDate: "2026-10-20", Available: true})
	if !errors.Is(err, ErrPersistence) {
		t.Fatalf("expected ErrPersistence, got %v", err)
	}
}
