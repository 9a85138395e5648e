package usecase

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/platform/logging"
	"go.opentelemetry.io/otel/attribute"
)

type SubmitAvailabilityInput struct {
	PlayerID  string
	MatchDate string
	Available bool
}

// WindowEntry is one upcoming match date, annotated with the player's answer when known.
type WindowEntry struct {
	Date        matchday.Date `json:"date"`
	Weekday     string        `json:"weekday"`
	Deadline    time.Time     `json:"deadline"`
	IsOpen      bool          `json:"is_open"`
	IsPublished bool          `json:"is_published"`
	Available   *bool         `json:"available,omitempty"`
}

type AvailabilityService struct {
	calendar    matchday.Calendar
	repo        availability.Repository
	playerRepo  player.Repository
	windowWeeks int
	logger      *logging.Logger
	now         func() time.Time
}

func NewAvailabilityService(
	calendar matchday.Calendar,
	repo availability.Repository,
	playerRepo player.Repository,
	windowWeeks int,
	logger *logging.Logger,
) *AvailabilityService {
	if windowWeeks <= 0 {
		windowWeeks = matchday.DefaultWindowWeeks
	}
	if logger == nil {
		logger = logging.Default()
	}

	return &AvailabilityService{
		calendar:    calendar,
		repo:        repo,
		playerRepo:  playerRepo,
		windowWeeks: windowWeeks,
		logger:      logger,
		now:         time.Now,
	}
}

// Window lists the upcoming match dates. When playerID is set each entry
// carries that player's current answer.
func (s *AvailabilityService) Window(ctx context.Context, playerID string) ([]WindowEntry, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Window")
	defer span.End()

	slots := s.calendar.Window(s.now(), s.windowWeeks)
	out := make([]WindowEntry, 0, len(slots))
	playerID = strings.TrimSpace(playerID)
	for _, slot := range slots {
		entry := WindowEntry{
			Date:        slot.Date,
			Weekday:     slot.Date.Weekday().String(),
			Deadline:    slot.Deadline,
			IsOpen:      slot.IsOpen,
			IsPublished: slot.IsPublished,
		}
		if playerID != "" {
			record, exists, err := s.repo.Get(ctx, playerID, slot.Date)
			if err != nil {
				recordSpanError(span, err)
				return nil, fmt.Errorf("get availability player=%s date=%s: %w", playerID, slot.Date, err)
			}
			if exists {
				available := record.Available
				entry.Available = &available
			}
		}
		out = append(out, entry)
	}

	return out, nil
}

// Submit records a player's answer for a match date. Writes at or after the
// deadline are rejected.
func (s *AvailabilityService) Submit(ctx context.Context, input SubmitAvailabilityInput) (availability.Record, error) {
	ctx, span := startUsecaseSpan(ctx, "usecase.AvailabilityService.Submit")
	defer span.End()

	playerID := strings.TrimSpace(input.PlayerID)
	if playerID == "" {
		return availability.Record{}, fmt.Errorf("%w: player id is required", ErrInvalidInput)
	}
	span.SetAttributes(attribute.String("match_date", input.MatchDate))

	date, err := matchday.ParseDate(input.MatchDate)
	if err != nil {
		return availability.Record{}, err
	}
	if err := validateMatchDate(s.calendar, date); err != nil {
		return availability.Record{}, err
	}

	now := s.now()
	if !s.calendar.IsOpen(date, now) {
		return availability.Record{}, fmt.Errorf("%w: date=%s deadline=%s", ErrDeadlinePassed, date, s.calendar.Deadline(date).Format(time.RFC3339))
	}

	item, exists, err := s.playerRepo.GetByID(ctx, playerID)
	if err != nil {
		return availability.Record{}, fmt.Errorf("get player=%s: %w", playerID, err)
	}
	if !exists || !item.Active {
		return availability.Record{}, fmt.Errorf("%w: player=%s", ErrNotFound, playerID)
	}

	record := availability.Record{
		PlayerID:  playerID,
		MatchDate: date,
		Available: input.Available,
		UpdatedAt: now.UTC(),
	}
	if err := s.repo.Upsert(ctx, record); err != nil {
		recordSpanError(span, err)
		return availability.Record{}, fmt.Errorf("%w: upsert availability player=%s date=%s: %w", ErrPersistence, playerID, date, err)
	}

	s.logger.DebugContext(ctx, "availability submitted",
		"player_id", playerID,
		"match_date", date.String(),
		"available", input.Available,
	)
	return record, nil
}
