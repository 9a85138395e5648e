package teamsheet

import (
	"context"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
)

// Repository persists generated teams keyed by match date and team number.
type Repository interface {
	// ReplaceAssignments atomically swaps every team of the date for teams.
	// Replaced teams are always unpublished.
	ReplaceAssignments(ctx context.Context, date matchday.Date, teams []Team) error
	AnyPublished(ctx context.Context, date matchday.Date) (bool, error)
	Publish(ctx context.Context, date matchday.Date, at time.Time) (int, error)
	ListByMatchDate(ctx context.Context, date matchday.Date, publishedOnly bool) ([]Team, error)
}
