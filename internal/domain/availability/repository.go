package availability

import (
	"context"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

// Repository stores availability submissions.
type Repository interface {
	Upsert(ctx context.Context, record Record) error
	Get(ctx context.Context, playerID string, date matchday.Date) (Record, bool, error)
	ListByMatchDate(ctx context.Context, date matchday.Date) ([]Record, error)
}

// PoolProvider supplies the active players who marked themselves available for a date.
type PoolProvider interface {
	ListAvailable(ctx context.Context, date matchday.Date) ([]player.Player, error)
}
