package postgres

import (
	"context"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/riskibarqy/matchday-teams/internal/infrastructure/repository/memory"
)

// BootstrapSeed loads the dev roster into an empty players table.
func BootstrapSeed(ctx context.Context, db *sqlx.DB) error {
	var count int
	if err := db.GetContext(ctx, &count, `SELECT COUNT(1) FROM players WHERE deleted_at IS NULL`); err != nil {
		return fmt.Errorf("count players for bootstrap seed: %w", err)
	}
	if count > 0 {
		return nil
	}

	repo := NewPlayerRepository(db)
	for _, item := range memory.SeedPlayers() {
		if err := repo.Upsert(ctx, item); err != nil {
			return fmt.Errorf("seed player %s: %w", item.ID, err)
		}
	}
	return nil
}
