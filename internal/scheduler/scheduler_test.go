package scheduler

import (
	"context"
	"errors"
	"sort"
	"sync"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

type fakeRunner struct {
	mu        sync.Mutex
	scheduled []matchday.Date
	catchUp   []matchday.Date
	panicOn   matchday.Date
	failOn    matchday.Date
	published map[matchday.Date]bool
}

func (r *fakeRunner) RunScheduled(_ context.Context, date matchday.Date) (usecase.RunResult, error) {
	r.mu.Lock()
	r.scheduled = append(r.scheduled, date)
	r.mu.Unlock()
	return usecase.RunResult{Published: true}, nil
}

func (r *fakeRunner) RunCatchUp(_ context.Context, date matchday.Date) (usecase.RunResult, error) {
	r.mu.Lock()
	r.catchUp = append(r.catchUp, date)
	alreadyPublished := r.published[date]
	r.mu.Unlock()

	if date == r.panicOn {
		panic("allocator exploded")
	}
	if date == r.failOn {
		return usecase.RunResult{}, usecase.ErrInsufficientPlayers
	}
	if alreadyPublished {
		return usecase.RunResult{Skipped: true, Published: true}, nil
	}
	return usecase.RunResult{Published: true}, nil
}

func TestScheduler_StartRegistersDeadlineJobs(t *testing.T) {
	s, err := New(matchday.DefaultCalendar(), &fakeRunner{}, Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.StopAll() })

	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}

	jobs := s.Jobs()
	if len(jobs) != 2 {
		t.Fatalf("expected 2 jobs, got %d", len(jobs))
	}
	if jobs[0].Name != JobName(time.Thursday) || jobs[1].Name != JobName(time.Tuesday) {
		t.Fatalf("unexpected job names: %s, %s", jobs[0].Name, jobs[1].Name)
	}
	for _, job := range jobs {
		if job.NextRun.IsZero() {
			t.Fatalf("expected next run for %s", job.Name)
		}
		next := job.NextRun.In(time.UTC)
		if next.Hour() != matchday.DefaultDeadlineHour || next.Minute() != 0 {
			t.Fatalf("expected noon fire time for %s, got %s", job.Name, next)
		}
		if wd := next.Weekday(); wd != time.Tuesday && wd != time.Thursday {
			t.Fatalf("unexpected weekday for %s: %s", job.Name, wd)
		}
	}
}

func TestScheduler_StopByName(t *testing.T) {
	s, err := New(matchday.DefaultCalendar(), &fakeRunner{}, Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	if err := s.Start(t.Context()); err != nil {
		t.Fatalf("start: %v", err)
	}

	if err := s.Stop(JobName(time.Tuesday)); err != nil {
		t.Fatalf("stop tuesday: %v", err)
	}
	if got := s.Jobs(); len(got) != 1 || got[0].Name != JobName(time.Thursday) {
		t.Fatalf("expected only thursday job left, got %+v", got)
	}
	if err := s.Stop("missing"); !errors.Is(err, ErrJobNotFound) {
		t.Fatalf("expected ErrJobNotFound, got %v", err)
	}

	if err := s.StopAll(); err != nil {
		t.Fatalf("stop all: %v", err)
	}
	if len(s.Jobs()) != 0 {
		t.Fatalf("expected no jobs after StopAll")
	}
	if err := s.StopAll(); err != nil {
		t.Fatalf("second stop all should be a no-op: %v", err)
	}
	if err := s.Start(t.Context()); !errors.Is(err, ErrStopped) {
		t.Fatalf("expected ErrStopped on restart, got %v", err)
	}
}

func TestScheduler_CatchUpRunsMissedDates(t *testing.T) {
	runner := &fakeRunner{
		published: map[matchday.Date]bool{matchday.NewDate(2026, time.October, 13): true},
		failOn:    matchday.NewDate(2026, time.October, 15),
		panicOn:   matchday.NewDate(2026, time.October, 20),
	}
	s, err := New(matchday.DefaultCalendar(), runner, Config{CatchUpDays: 10, CatchUpConcurrency: 3}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.StopAll() })
	s.now = func() time.Time { return time.Date(2026, time.October, 22, 13, 0, 0, 0, time.UTC) }

	result := s.CatchUp(t.Context())

	if len(result.Dates) != 4 {
		t.Fatalf("expected 4 missed dates, got %v", result.Dates)
	}
	if result.Published != 1 || result.Skipped != 1 || result.Failed != 2 {
		t.Fatalf("unexpected catch-up counts: %+v", result)
	}

	runner.mu.Lock()
	defer runner.mu.Unlock()
	got := make([]string, 0, len(runner.catchUp))
	for _, date := range runner.catchUp {
		got = append(got, date.String())
	}
	sort.Strings(got)
	want := []string{"2026-10-13", "2026-10-15", "2026-10-20", "2026-10-22"}
	for i := range want {
		if got[i] != want[i] {
			t.Fatalf("unexpected catch-up dates: %v", got)
		}
	}
	if len(runner.scheduled) != 0 {
		t.Fatalf("catch-up must not use the scheduled entry point")
	}
}

func TestScheduler_CatchUpZeroDaysCoversToday(t *testing.T) {
	runner := &fakeRunner{}
	s, err := New(matchday.DefaultCalendar(), runner, Config{CatchUpDays: -1}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.StopAll() })
	s.now = func() time.Time { return time.Date(2026, time.October, 22, 13, 0, 0, 0, time.UTC) }

	result := s.CatchUp(t.Context())
	if len(result.Dates) != 1 || result.Dates[0] != matchday.NewDate(2026, time.October, 22) {
		t.Fatalf("expected only today's passed deadline, got %v", result.Dates)
	}
}

func TestScheduler_FireUsesToday(t *testing.T) {
	runner := &fakeRunner{}
	s, err := New(matchday.DefaultCalendar(), runner, Config{}, logging.NewNop())
	if err != nil {
		t.Fatalf("new scheduler: %v", err)
	}
	t.Cleanup(func() { _ = s.StopAll() })
	s.now = func() time.Time { return time.Date(2026, time.October, 20, 12, 0, 1, 0, time.UTC) }

	s.fire(time.Tuesday)
	s.fire(time.Thursday)

	runner.mu.Lock()
	defer runner.mu.Unlock()
	if len(runner.scheduled) != 1 || runner.scheduled[0] != matchday.NewDate(2026, time.October, 20) {
		t.Fatalf("expected a single run for today, got %v", runner.scheduled)
	}
}

func TestNew_RequiresRunner(t *testing.T) {
	if _, err := New(matchday.DefaultCalendar(), nil, Config{}, nil); err == nil {
		t.Fatalf("expected error without runner")
	}
}
