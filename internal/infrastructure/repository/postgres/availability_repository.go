package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	qb "github.com/riskibarqy/matchday-teams/internal/platform/querybuilder"
)

// AvailabilityRepository also serves as the player pool for generation.
type AvailabilityRepository struct {
	db *sqlx.DB
}

var availabilitySelectColumns = []string{
	"player_public_id",
	"match_date",
	"available",
	"updated_at",
}

func NewAvailabilityRepository(db *sqlx.DB) *AvailabilityRepository {
	return &AvailabilityRepository{db: db}
}

// Upsert keeps the newest answer. An older write that arrives late is ignored.
func (r *AvailabilityRepository) Upsert(ctx context.Context, record availability.Record) error {
	if err := record.Validate(); err != nil {
		return err
	}

	query, args, err := qb.InsertModel("player_availability", availabilityInsertModel{
		PlayerID:  record.PlayerID,
		MatchDate: record.MatchDate.String(),
		Available: record.Available,
		UpdatedAt: record.UpdatedAt.UTC(),
	}, `ON CONFLICT (player_public_id, match_date)
DO UPDATE SET
    available = EXCLUDED.available,
    updated_at = EXCLUDED.updated_at
WHERE player_availability.updated_at <= EXCLUDED.updated_at`)
	if err != nil {
		return fmt.Errorf("build upsert availability query: %w", err)
	}

	if _, err := r.db.ExecContext(ctx, query, args...); err != nil {
		return fmt.Errorf("upsert availability player=%s date=%s: %w", record.PlayerID, record.MatchDate, err)
	}
	return nil
}

func (r *AvailabilityRepository) Get(ctx context.Context, playerID string, date matchday.Date) (availability.Record, bool, error) {
	query, args, err := qb.Select(availabilitySelectColumns...).From("player_availability").
		Where(
			qb.Eq("player_public_id", playerID),
			qb.Eq("match_date", date.String()),
		).
		ToSQL()
	if err != nil {
		return availability.Record{}, false, fmt.Errorf("build get availability query: %w", err)
	}

	var row availabilityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isBindParameterMismatch(err) || isUnnamedPreparedStatementMissing(err) {
			return r.getLiteral(ctx, playerID, date)
		}
		if isNotFound(err) {
			return availability.Record{}, false, nil
		}
		return availability.Record{}, false, fmt.Errorf("get availability: %w", err)
	}

	return availabilityFromRow(row), true, nil
}

// getLiteral retries without bind parameters for poolers that drop unnamed statements.
func (r *AvailabilityRepository) getLiteral(ctx context.Context, playerID string, date matchday.Date) (availability.Record, bool, error) {
	query, args, err := qb.Select(availabilitySelectColumns...).From("player_availability").
		Where(
			qb.EqLiteral("player_public_id", playerID),
			qb.EqLiteral("match_date", date.String()),
		).
		ToSQL()
	if err != nil {
		return availability.Record{}, false, fmt.Errorf("build get availability literal fallback query: %w", err)
	}

	var row availabilityTableModel
	if err := r.db.GetContext(ctx, &row, query, args...); err != nil {
		if isNotFound(err) {
			return availability.Record{}, false, nil
		}
		return availability.Record{}, false, fmt.Errorf("get availability literal fallback: %w", err)
	}

	return availabilityFromRow(row), true, nil
}

func (r *AvailabilityRepository) ListByMatchDate(ctx context.Context, date matchday.Date) ([]availability.Record, error) {
	query, args, err := qb.Select(availabilitySelectColumns...).From("player_availability").
		Where(qb.Eq("match_date", date.String())).
		OrderBy("player_public_id").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list availability query: %w", err)
	}

	var rows []availabilityTableModel
	if err := r.db.SelectContext(ctx, &rows, query, args...); err != nil {
		return nil, fmt.Errorf("list availability date=%s: %w", date, err)
	}

	out := make([]availability.Record, 0, len(rows))
	for _, row := range rows {
		out = append(out, availabilityFromRow(row))
	}
	return out, nil
}

// ListAvailable returns active players who answered yes for the date.
func (r *AvailabilityRepository) ListAvailable(ctx context.Context, date matchday.Date) ([]player.Player, error) {
	const query = `
SELECT p.id, p.public_id, p.name, p.position, p.avatar_url, p.is_active, p.created_at, p.updated_at, p.deleted_at
FROM player_availability pa
JOIN players p ON p.public_id = pa.player_public_id
WHERE pa.match_date = $1
  AND pa.available = TRUE
  AND p.is_active = TRUE
  AND p.deleted_at IS NULL
ORDER BY p.public_id`

	var rows []playerTableModel
	if err := r.db.SelectContext(ctx, &rows, query, date.String()); err != nil {
		return nil, fmt.Errorf("list available players date=%s: %w", date, err)
	}

	out := make([]player.Player, 0, len(rows))
	for _, row := range rows {
		out = append(out, playerFromRow(row))
	}
	return out, nil
}

func availabilityFromRow(row availabilityTableModel) availability.Record {
	return availability.Record{
		PlayerID:  row.PlayerID,
		MatchDate: dateFromColumn(row.MatchDate),
		Available: row.Available,
		UpdatedAt: row.UpdatedAt,
	}
}
