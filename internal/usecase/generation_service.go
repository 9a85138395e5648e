package usecase

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/allocation"
	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	"github.com/riskibarqy/matchday-teams/internal/platform/id"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"github.com/riskibarqy/matchday-teams/internal/platform/resilience"
	"go.opentelemetry.io/otel/attribute"
)

const defaultPersistenceTimeout = 5 * time.Second

type GenerationConfig struct {
	PersistenceTimeout time.Duration
}

type GenerateResult struct {
	MatchDate                matchday.Date    `json:"match_date"`
	Teams                    []teamsheet.Team `json:"teams"`
	Error                    ErrorCode        `json:"error,omitempty"`
	TotalPlayers             int              `json:"total_players"`
	ConfigurationDescription string           `json:"configuration_description"`
}

// RunResult describes one pass of the generate and publish pipeline.
type RunResult struct {
	GenerateResult
	Published bool `json:"published"`
	Skipped   bool `json:"skipped"`
}

type GenerationService struct {
	calendar     matchday.Calendar
	pool         availability.PoolProvider
	allocator    *allocation.Allocator
	teamRepo     teamsheet.Repository
	dispatchRepo jobscheduler.Repository
	notifier     NotificationSink
	audit        AuditSink
	idGen        id.Generator
	locks        *resilience.KeyedMutex
	cfg          GenerationConfig
	logger       *logging.Logger
	now          func() time.Time
}

func NewGenerationService(
	calendar matchday.Calendar,
	pool availability.PoolProvider,
	allocator *allocation.Allocator,
	teamRepo teamsheet.Repository,
	dispatchRepo jobscheduler.Repository,
	notifier NotificationSink,
	audit AuditSink,
	idGen id.Generator,
	cfg GenerationConfig,
	logger *logging.Logger,
) *GenerationService {
	if allocator == nil {
		allocator = allocation.NewAllocator(nil)
	}
	if notifier == nil {
		notifier = NewNoopNotificationSink()
	}
	if audit == nil {
		audit = NewNoopAuditSink()
	}
	if idGen == nil {
		idGen = id.NewUUIDGenerator()
	}
	if cfg.PersistenceTimeout <= 0 {
		cfg.PersistenceTimeout = defaultPersistenceTimeout
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &GenerationService{
		calendar:     calendar,
		pool:         pool,
		allocator:    allocator,
		teamRepo:     teamRepo,
		dispatchRepo: dispatchRepo,
		notifier:     notifier,
		audit:        audit,
		idGen:        idGen,
		locks:        resilience.NewKeyedMutex(),
		cfg:          cfg,
		logger:       logger,
		now:          time.Now,
	}
}

func (s *GenerationService) Calendar() matchday.Calendar {
	return s.calendar
}

// Generate allocates fresh teams for the date and replaces any previous,
// unpublished or not, with an unpublished set.
func (s *GenerationService) Generate(ctx context.Context, date matchday.Date) (GenerateResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.Generate")
	defer span.End()
	span.SetAttributes(attribute.String("match_date", date.String()))

	if err := validateMatchDate(s.calendar, date); err != nil {
		return GenerateResult{MatchDate: date, Error: CodeInvalidDate}, err
	}

	unlock, err := s.locks.Lock(ctx, date.String())
	if err != nil {
		return GenerateResult{MatchDate: date, Error: CodePersistenceError}, fmt.Errorf("%w: wait for generation lock date=%s: %w", ErrPersistence, date, err)
	}
	defer unlock()

	result, err := s.generateLocked(ctx, date)
	recordSpanError(span, err)
	if err == nil {
		s.audit.Record(ctx, AuditActionGenerate, date.String(), map[string]any{
			"teams":         len(result.Teams),
			"total_players": result.TotalPlayers,
		})
	}
	return result, err
}

// Publish opens the date's teams to every consumer.
func (s *GenerationService) Publish(ctx context.Context, date matchday.Date) error {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.Publish")
	defer span.End()
	span.SetAttributes(attribute.String("match_date", date.String()))

	if err := validateMatchDate(s.calendar, date); err != nil {
		return err
	}

	unlock, err := s.locks.Lock(ctx, date.String())
	if err != nil {
		return fmt.Errorf("%w: wait for generation lock date=%s: %w", ErrPersistence, date, err)
	}
	defer unlock()

	if _, err := s.publishLocked(ctx, date); err != nil {
		recordSpanError(span, err)
		return err
	}
	s.audit.Record(ctx, AuditActionPublish, date.String(), nil)
	return nil
}

// GetPublished returns nothing until the date has been published.
func (s *GenerationService) GetPublished(ctx context.Context, date matchday.Date) ([]teamsheet.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.GetPublished")
	defer span.End()

	return s.listTeams(ctx, date, true)
}

// GetAllForMatch bypasses the publication gate for admin previews.
func (s *GenerationService) GetAllForMatch(ctx context.Context, date matchday.Date) ([]teamsheet.Team, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.GetAllForMatch")
	defer span.End()

	return s.listTeams(ctx, date, false)
}

// Trigger regenerates the date on demand. Once the deadline has passed the
// new teams are published straight away.
func (s *GenerationService) Trigger(ctx context.Context, date matchday.Date) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService.Trigger")
	defer span.End()
	span.SetAttributes(attribute.String("match_date", date.String()))

	if err := validateMatchDate(s.calendar, date); err != nil {
		return RunResult{GenerateResult: GenerateResult{MatchDate: date, Error: CodeInvalidDate}}, err
	}

	dispatchID := s.dispatchID(jobscheduler.JobManualGeneration, date)
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    jobscheduler.JobManualGeneration,
		MatchDate:  date.String(),
		Status:     jobscheduler.StatusSent,
	})

	out, err := s.run(ctx, date, false)
	s.finishDispatch(ctx, dispatchID, jobscheduler.JobManualGeneration, out, err)
	recordSpanError(span, err)
	if err == nil {
		s.audit.Record(ctx, AuditActionTrigger, date.String(), map[string]any{
			"published": out.Published,
			"teams":     len(out.Teams),
		})
	}
	return out, err
}

// RunScheduled is the deadline job body. Already published dates are left alone.
// Failures are logged and recorded; the error is returned for callers that count them.
func (s *GenerationService) RunScheduled(ctx context.Context, date matchday.Date) (RunResult, error) {
	return s.runAutomated(ctx, date, jobscheduler.JobScheduledGeneration)
}

// RunCatchUp is RunScheduled for deadlines missed while the process was down.
func (s *GenerationService) RunCatchUp(ctx context.Context, date matchday.Date) (RunResult, error) {
	return s.runAutomated(ctx, date, jobscheduler.JobCatchUpGeneration)
}

func (s *GenerationService) runAutomated(ctx context.Context, date matchday.Date, jobName string) (RunResult, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.GenerationService."+jobName)
	defer span.End()
	span.SetAttributes(attribute.String("match_date", date.String()))

	if err := validateMatchDate(s.calendar, date); err != nil {
		s.logger.WarnContext(ctx, "automated generation rejected date",
			"job", jobName,
			"match_date", date.String(),
			"error_code", CodeInvalidDate,
			"error", err,
		)
		return RunResult{GenerateResult: GenerateResult{MatchDate: date, Error: CodeInvalidDate}}, err
	}

	dispatchID := s.dispatchID(jobName, date)
	s.recordDispatchEvent(ctx, jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    jobName,
		MatchDate:  date.String(),
		Status:     jobscheduler.StatusSent,
	})

	out, err := s.run(ctx, date, true)
	s.finishDispatch(ctx, dispatchID, jobName, out, err)
	if err != nil {
		recordSpanError(span, err)
		s.logger.WarnContext(ctx, "automated generation failed",
			"job", jobName,
			"match_date", date.String(),
			"error_code", CodeOf(err),
			"error", err,
		)
		return out, err
	}
	if out.Skipped {
		s.logger.InfoContext(ctx, "automated generation skipped, teams already published",
			"job", jobName,
			"match_date", date.String(),
		)
		return out, nil
	}

	s.logger.InfoContext(ctx, "automated generation published teams",
		"job", jobName,
		"match_date", date.String(),
		"teams", len(out.Teams),
		"total_players", out.TotalPlayers,
		"configuration", out.ConfigurationDescription,
	)
	return out, nil
}

// run holds the date lock for the whole fetch, allocate, persist, publish sequence.
func (s *GenerationService) run(ctx context.Context, date matchday.Date, skipPublished bool) (RunResult, error) {
	out := RunResult{GenerateResult: GenerateResult{MatchDate: date}}

	unlock, err := s.locks.Lock(ctx, date.String())
	if err != nil {
		out.Error = CodePersistenceError
		return out, fmt.Errorf("%w: wait for generation lock date=%s: %w", ErrPersistence, date, err)
	}
	defer unlock()

	if skipPublished {
		published, err := s.anyPublished(ctx, date)
		if err != nil {
			out.Error = CodePersistenceError
			return out, err
		}
		if published {
			out.Skipped = true
			out.Published = true
			return out, nil
		}
	}

	generated, err := s.generateLocked(ctx, date)
	out.GenerateResult = generated
	if err != nil {
		return out, err
	}

	if s.calendar.IsOpen(date, s.now()) {
		return out, nil
	}

	publishedAt, err := s.publishLocked(ctx, date)
	if err != nil {
		out.Error = CodeOf(err)
		return out, err
	}
	out.Published = true
	for i := range out.Teams {
		out.Teams[i].Published = true
		out.Teams[i].PublishedAt = &publishedAt
	}
	return out, nil
}

func (s *GenerationService) generateLocked(ctx context.Context, date matchday.Date) (GenerateResult, error) {
	result := GenerateResult{MatchDate: date}

	pool, err := s.fetchPool(ctx, date)
	if err != nil {
		result.Error = CodePersistenceError
		return result, err
	}

	allocated, err := s.allocator.Allocate(pool)
	result.TotalPlayers = allocated.TotalPlayers
	result.ConfigurationDescription = allocated.Configuration.Description()
	if err != nil {
		result.Error = CodeOf(err)
		return result, fmt.Errorf("allocate teams date=%s: %w", date, err)
	}

	teams, err := s.buildTeams(date, allocated)
	if err != nil {
		result.Error = CodePersistenceError
		return result, err
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
	defer cancel()
	if err := s.teamRepo.ReplaceAssignments(persistCtx, date, teams); err != nil {
		result.Error = CodePersistenceError
		return result, fmt.Errorf("%w: replace assignments date=%s: %w", ErrPersistence, date, err)
	}

	result.Teams = teams
	return result, nil
}

func (s *GenerationService) publishLocked(ctx context.Context, date matchday.Date) (time.Time, error) {
	at := s.now().UTC()

	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
	defer cancel()
	count, err := s.teamRepo.Publish(persistCtx, date, at)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: publish teams date=%s: %w", ErrPersistence, date, err)
	}
	if count == 0 {
		return time.Time{}, fmt.Errorf("%w: no teams generated for date=%s", ErrNotFound, date)
	}

	s.notifyPublished(ctx, date)
	return at, nil
}

// notifyPublished never fails the caller; publication is already durable.
func (s *GenerationService) notifyPublished(ctx context.Context, date matchday.Date) {
	err := s.notifier.OnTeamsPublished(context.WithoutCancel(ctx), date)
	if err == nil {
		return
	}
	s.logger.WarnContext(ctx, "notify teams published failed",
		"match_date", date.String(),
		"error", err,
	)
}

func (s *GenerationService) anyPublished(ctx context.Context, date matchday.Date) (bool, error) {
	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
	defer cancel()

	published, err := s.teamRepo.AnyPublished(persistCtx, date)
	if err != nil {
		return false, fmt.Errorf("%w: check published date=%s: %w", ErrPersistence, date, err)
	}
	return published, nil
}

func (s *GenerationService) fetchPool(ctx context.Context, date matchday.Date) ([]player.Player, error) {
	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
	defer cancel()

	pool, err := s.pool.ListAvailable(persistCtx, date)
	if err != nil {
		return nil, fmt.Errorf("%w: list available players date=%s: %w", ErrPersistence, date, err)
	}
	return dedupePlayers(pool), nil
}

func (s *GenerationService) listTeams(ctx context.Context, date matchday.Date, publishedOnly bool) ([]teamsheet.Team, error) {
	if err := validateMatchDate(s.calendar, date); err != nil {
		return nil, err
	}

	persistCtx, cancel := context.WithTimeout(ctx, s.cfg.PersistenceTimeout)
	defer cancel()

	teams, err := s.teamRepo.ListByMatchDate(persistCtx, date, publishedOnly)
	if err != nil {
		return nil, fmt.Errorf("%w: list teams date=%s: %w", ErrPersistence, date, err)
	}
	if teams == nil {
		teams = []teamsheet.Team{}
	}
	return teams, nil
}

func (s *GenerationService) buildTeams(date matchday.Date, result allocation.Result) ([]teamsheet.Team, error) {
	now := s.now().UTC()
	out := make([]teamsheet.Team, 0, len(result.Teams))
	for _, item := range result.Teams {
		teamID, err := s.idGen.NewID()
		if err != nil {
			return nil, fmt.Errorf("generate team id: %w", err)
		}

		assignments := make([]teamsheet.Assignment, 0, len(item.Members))
		for _, m := range item.Members {
			assignments = append(assignments, teamsheet.Assignment{
				PlayerID:              m.Player.ID,
				PlayerName:            m.Player.Name,
				AvatarURL:             m.Player.AvatarURL,
				IsSubstitute:          m.IsSubstitute,
				AssignedPosition:      m.AssignedPosition,
				SubstituteForPosition: m.SubstituteForPosition,
			})
		}

		out = append(out, teamsheet.Team{
			ID:          teamID,
			MatchDate:   date,
			Number:      item.Number,
			Name:        teamsheet.DefaultName(item.Number),
			CreatedAt:   now,
			Assignments: assignments,
		})
	}

	if err := teamsheet.ValidateSet(date, out); err != nil {
		return nil, fmt.Errorf("validate generated teams: %w", err)
	}
	return out, nil
}

func (s *GenerationService) dispatchID(jobName string, date matchday.Date) string {
	suffix, err := s.idGen.NewID()
	if err != nil {
		suffix = s.now().UTC().Format("20060102T150405.000000000Z")
	}
	return jobName + "-" + date.String() + "-" + suffix
}

func (s *GenerationService) finishDispatch(ctx context.Context, dispatchID, jobName string, out RunResult, err error) {
	event := jobscheduler.DispatchEvent{
		DispatchID: dispatchID,
		JobName:    jobName,
		MatchDate:  out.MatchDate.String(),
		Payload: map[string]any{
			"teams":         len(out.Teams),
			"total_players": out.TotalPlayers,
			"configuration": out.ConfigurationDescription,
			"published":     out.Published,
		},
	}
	switch {
	case err != nil:
		event.Status = jobscheduler.StatusFailed
		event.ErrorCode = string(CodeOf(err))
		event.ErrorMessage = err.Error()
	case out.Skipped:
		event.Status = jobscheduler.StatusSkipped
	default:
		event.Status = jobscheduler.StatusCompleted
	}
	s.recordDispatchEvent(ctx, event)
}

func (s *GenerationService) recordDispatchEvent(ctx context.Context, event jobscheduler.DispatchEvent) {
	if s.dispatchRepo == nil || strings.TrimSpace(event.DispatchID) == "" {
		return
	}
	traceID, spanID := traceMetaFromContext(ctx)
	event.TraceID = traceID
	event.SpanID = spanID
	if event.OccurredAt.IsZero() {
		event.OccurredAt = s.now().UTC()
	}
	if err := s.dispatchRepo.UpsertEvent(ctx, event); err != nil {
		s.logger.WarnContext(ctx, "record job dispatch event failed",
			"dispatch_id", event.DispatchID,
			"status", event.Status,
			"error", err,
		)
	}
}

func dedupePlayers(items []player.Player) []player.Player {
	seen := make(map[string]struct{}, len(items))
	out := make([]player.Player, 0, len(items))
	for _, item := range items {
		if _, ok := seen[item.ID]; ok {
			continue
		}
		seen[item.ID] = struct{}{}
		out = append(out, item)
	}
	return out
}

// validateMatchDate tags every calendar rejection with ErrInvalidDate.
func validateMatchDate(calendar matchday.Calendar, date matchday.Date) error {
	err := calendar.Validate(date)
	if err == nil || errors.Is(err, ErrInvalidDate) {
		return err
	}
	return fmt.Errorf("%w: %w", ErrInvalidDate, err)
}
