package scheduler

import (
	"context"
	"errors"
	"fmt"
	"runtime/debug"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"github.com/go-co-op/gocron/v2"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
	"github.com/sourcegraph/conc/pool"
)

var (
	ErrJobNotFound = errors.New("scheduled job not found")
	ErrStopped     = errors.New("scheduler stopped")
)

const (
	defaultCatchUpDays        = 7
	defaultCatchUpConcurrency = 2
)

// Runner executes the generation pipeline for one date.
type Runner interface {
	RunScheduled(ctx context.Context, date matchday.Date) (usecase.RunResult, error)
	RunCatchUp(ctx context.Context, date matchday.Date) (usecase.RunResult, error)
}

type Config struct {
	CatchUpDays        int
	CatchUpConcurrency int
}

type JobInfo struct {
	Name    string    `json:"name"`
	NextRun time.Time `json:"next_run"`
	LastRun time.Time `json:"last_run"`
}

type CatchUpResult struct {
	Dates     []matchday.Date
	Published int
	Skipped   int
	Failed    int
}

// Scheduler fires generation at every match-day deadline. It owns its jobs;
// there is no package level registry.
type Scheduler struct {
	calendar matchday.Calendar
	runner   Runner
	cfg      Config
	logger   *logging.Logger
	now      func() time.Time

	mu      sync.Mutex
	cron    gocron.Scheduler
	jobs    map[string]gocron.Job
	ctx     context.Context
	cancel  context.CancelFunc
	started bool
	closed  bool
}

func New(calendar matchday.Calendar, runner Runner, cfg Config, logger *logging.Logger) (*Scheduler, error) {
	if runner == nil {
		return nil, fmt.Errorf("scheduler runner is required")
	}
	if cfg.CatchUpDays < 0 {
		cfg.CatchUpDays = 0
	} else if cfg.CatchUpDays == 0 {
		cfg.CatchUpDays = defaultCatchUpDays
	}
	if cfg.CatchUpConcurrency <= 0 {
		cfg.CatchUpConcurrency = defaultCatchUpConcurrency
	}
	if logger == nil {
		logger = logging.Default()
	}

	cron, err := gocron.NewScheduler(gocron.WithLocation(calendar.Location()))
	if err != nil {
		return nil, fmt.Errorf("create gocron scheduler: %w", err)
	}

	return &Scheduler{
		calendar: calendar,
		runner:   runner,
		cfg:      cfg,
		logger:   logger.Named("scheduler"),
		now:      time.Now,
		cron:     cron,
		jobs:     make(map[string]gocron.Job),
	}, nil
}

// JobName is the registered name of the deadline job for a weekday.
func JobName(weekday time.Weekday) string {
	return "generate-teams-" + strings.ToLower(weekday.String())
}

// Start registers one weekly job per match weekday and starts the timer loop.
// ctx bounds every job run; cancelling it does not unregister jobs.
func (s *Scheduler) Start(ctx context.Context) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.closed {
		return ErrStopped
	}
	if s.started {
		return nil
	}
	s.ctx, s.cancel = context.WithCancel(ctx)

	hour := uint(s.calendar.DeadlineHour())
	for _, weekday := range s.calendar.Weekdays() {
		name := JobName(weekday)
		job, err := s.cron.NewJob(
			gocron.WeeklyJob(1, gocron.NewWeekdays(weekday), gocron.NewAtTimes(gocron.NewAtTime(hour, 0, 0))),
			gocron.NewTask(s.fire, weekday),
			gocron.WithName(name),
			gocron.WithSingletonMode(gocron.LimitModeReschedule),
		)
		if err != nil {
			s.cancel()
			return fmt.Errorf("register job %s: %w", name, err)
		}
		s.jobs[name] = job
	}

	s.cron.Start()
	s.started = true

	for _, info := range s.jobsLocked() {
		s.logger.Info("scheduled job registered", "job", info.Name, "next_run", info.NextRun)
	}
	return nil
}

// Stop removes a single job by name.
func (s *Scheduler) Stop(name string) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	job, ok := s.jobs[name]
	if !ok {
		return fmt.Errorf("%w: %s", ErrJobNotFound, name)
	}
	if err := s.cron.RemoveJob(job.ID()); err != nil {
		return fmt.Errorf("remove job %s: %w", name, err)
	}
	delete(s.jobs, name)
	return nil
}

// StopAll shuts the timer loop down and waits for running jobs. The
// scheduler cannot be started again afterwards.
func (s *Scheduler) StopAll() error {
	s.mu.Lock()
	if s.closed {
		s.mu.Unlock()
		return nil
	}
	if s.cancel != nil {
		s.cancel()
	}
	s.jobs = make(map[string]gocron.Job)
	s.started = false
	s.closed = true
	cron := s.cron
	s.mu.Unlock()

	// Shutdown waits for running jobs, which take s.mu in fire.
	if err := cron.Shutdown(); err != nil {
		return fmt.Errorf("shutdown gocron scheduler: %w", err)
	}
	return nil
}

func (s *Scheduler) Jobs() []JobInfo {
	s.mu.Lock()
	defer s.mu.Unlock()

	return s.jobsLocked()
}

func (s *Scheduler) jobsLocked() []JobInfo {
	out := make([]JobInfo, 0, len(s.jobs))
	for name, job := range s.jobs {
		info := JobInfo{Name: name}
		if next, err := job.NextRun(); err == nil {
			info.NextRun = next
		}
		if last, err := job.LastRun(); err == nil {
			info.LastRun = last
		}
		out = append(out, info)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Name < out[j].Name })
	return out
}

// CatchUp runs the pipeline for recent match dates whose deadline passed
// while nothing was scheduled. Distinct dates run in parallel.
func (s *Scheduler) CatchUp(ctx context.Context) CatchUpResult {
	dates := s.calendar.Recent(s.now(), s.cfg.CatchUpDays)
	result := CatchUpResult{Dates: dates}
	if len(dates) == 0 {
		return result
	}

	var published, skipped, failed atomic.Int32
	p := pool.New().WithMaxGoroutines(s.cfg.CatchUpConcurrency)
	for _, date := range dates {
		p.Go(func() {
			out, err := s.runDate(ctx, date, true)
			switch {
			case err != nil:
				failed.Add(1)
			case out.Skipped:
				skipped.Add(1)
			case out.Published:
				published.Add(1)
			}
		})
	}
	p.Wait()

	result.Published = int(published.Load())
	result.Skipped = int(skipped.Load())
	result.Failed = int(failed.Load())
	s.logger.InfoContext(ctx, "catch-up finished",
		"dates", len(dates),
		"published", result.Published,
		"skipped", result.Skipped,
		"failed", result.Failed,
	)
	return result
}

func (s *Scheduler) fire(weekday time.Weekday) {
	s.mu.Lock()
	ctx := s.ctx
	s.mu.Unlock()
	if ctx == nil {
		ctx = context.Background()
	}

	date := s.calendar.Today(s.now())
	if date.Weekday() != weekday {
		s.logger.WarnContext(ctx, "deadline job fired on unexpected day",
			"expected_weekday", weekday.String(),
			"match_date", date.String(),
		)
		return
	}
	_, _ = s.runDate(ctx, date, false)
}

// runDate never panics and never returns errors the caller must act on;
// the runner has already logged and recorded failures.
func (s *Scheduler) runDate(ctx context.Context, date matchday.Date, catchUp bool) (out usecase.RunResult, err error) {
	defer func() {
		if recovered := recover(); recovered != nil {
			err = fmt.Errorf("generation job panicked: %v", recovered)
			s.logger.ErrorContext(ctx, "generation job panicked",
				"match_date", date.String(),
				"panic", recovered,
				"stack", string(debug.Stack()),
			)
		}
	}()

	if catchUp {
		out, err = s.runner.RunCatchUp(ctx, date)
	} else {
		out, err = s.runner.RunScheduled(ctx, date)
	}
	if err != nil {
		s.logger.DebugContext(ctx, "generation job finished with error",
			"match_date", date.String(),
			"error_code", usecase.CodeOf(err),
		)
	}
	return out, err
}
