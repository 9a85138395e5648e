package postgres

import (
	"context"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	qb "github.com/riskibarqy/matchday-teams/internal/platform/querybuilder"
)

type TeamSheetRepository struct {
	db *sqlx.DB
}

func NewTeamSheetRepository(db *sqlx.DB) *TeamSheetRepository {
	return &TeamSheetRepository{db: db}
}

// ReplaceAssignments deletes and rewrites every row of the date in one
// transaction. The unique indexes on (match_date, team_number) and
// (match_date, player_public_id) reject a concurrent writer.
func (r *TeamSheetRepository) ReplaceAssignments(ctx context.Context, date matchday.Date, teams []teamsheet.Team) error {
	if err := teamsheet.ValidateSet(date, teams); err != nil {
		return err
	}

	tx, err := r.db.BeginTxx(ctx, nil)
	if err != nil {
		return fmt.Errorf("begin tx for replace assignments: %w", err)
	}
	defer func() {
		_ = tx.Rollback()
	}()

	for _, table := range []string{"team_assignments", "generated_teams"} {
		query, args, err := qb.DeleteFrom(table).Where(qb.Eq("match_date", date.String())).ToSQL()
		if err != nil {
			return fmt.Errorf("build delete %s query: %w", table, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("delete %s date=%s: %w", table, date, err)
		}
	}

	for _, team := range teams {
		query, args, err := qb.InsertModel("generated_teams", generatedTeamInsertModel{
			PublicID:   team.ID,
			MatchDate:  date.String(),
			TeamNumber: team.Number,
			Name:       team.Name,
			CreatedAt:  team.CreatedAt.UTC(),
		}, "")
		if err != nil {
			return fmt.Errorf("build insert team %d query: %w", team.Number, err)
		}
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			return fmt.Errorf("insert team %d date=%s: %w", team.Number, date, err)
		}
	}

	if query, args, ok, err := assignmentsInsertQuery(date, teams); err != nil {
		return err
	} else if ok {
		if _, err := tx.ExecContext(ctx, query, args...); err != nil {
			if isUniqueViolation(err) {
				return fmt.Errorf("insert team assignments date=%s: concurrent generation: %w", date, err)
			}
			return fmt.Errorf("insert team assignments date=%s: %w", date, err)
		}
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("commit replace assignments tx: %w", err)
	}
	return nil
}

func assignmentsInsertQuery(date matchday.Date, teams []teamsheet.Team) (string, []any, bool, error) {
	builder := qb.InsertInto("team_assignments").Columns(teamAssignmentColumns...)
	rows := 0
	for _, team := range teams {
		for _, a := range team.Assignments {
			builder.Values(
				team.ID,
				date.String(),
				a.PlayerID,
				a.PlayerName,
				a.AvatarURL,
				a.IsSubstitute,
				string(a.AssignedPosition),
				string(a.SubstituteForPosition),
			)
			rows++
		}
	}
	if rows == 0 {
		return "", nil, false, nil
	}

	query, args, err := builder.ToSQL()
	if err != nil {
		return "", nil, false, fmt.Errorf("build insert team assignments query: %w", err)
	}
	return query, args, true, nil
}

func (r *TeamSheetRepository) AnyPublished(ctx context.Context, date matchday.Date) (bool, error) {
	const query = `
SELECT EXISTS (
    SELECT 1 FROM generated_teams
    WHERE match_date = $1
      AND is_published = TRUE
)`

	var published bool
	if err := r.db.GetContext(ctx, &published, query, date.String()); err != nil {
		return false, fmt.Errorf("check published teams date=%s: %w", date, err)
	}
	return published, nil
}

// Publish flips every team of the date. A repeated call keeps the first published_at.
func (r *TeamSheetRepository) Publish(ctx context.Context, date matchday.Date, at time.Time) (int, error) {
	query, args, err := qb.Update("generated_teams").
		Set("is_published", true).
		SetExpr("published_at", "COALESCE(published_at, ?)", at.UTC()).
		Where(qb.Eq("match_date", date.String())).
		ToSQL()
	if err != nil {
		return 0, fmt.Errorf("build publish teams query: %w", err)
	}

	res, err := r.db.ExecContext(ctx, query, args...)
	if err != nil {
		return 0, fmt.Errorf("publish teams date=%s: %w", date, err)
	}
	affected, err := res.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("publish teams rows affected: %w", err)
	}
	return int(affected), nil
}

func (r *TeamSheetRepository) ListByMatchDate(ctx context.Context, date matchday.Date, publishedOnly bool) ([]teamsheet.Team, error) {
	conditions := []qb.Condition{qb.Eq("match_date", date.String())}
	if publishedOnly {
		conditions = append(conditions, qb.Expr("is_published = ?", true))
	}
	query, args, err := qb.Select("public_id", "match_date", "team_number", "name", "is_published", "published_at", "created_at").
		From("generated_teams").
		Where(conditions...).
		OrderBy("team_number").
		ToSQL()
	if err != nil {
		return nil, fmt.Errorf("build list teams query: %w", err)
	}

	var teamRows []generatedTeamTableModel
	if err := r.db.SelectContext(ctx, &teamRows, query, args...); err != nil {
		return nil, fmt.Errorf("list teams date=%s: %w", date, err)
	}
	if len(teamRows) == 0 {
		return []teamsheet.Team{}, nil
	}

	teamIDs := make([]string, 0, len(teamRows))
	for _, row := range teamRows {
		teamIDs = append(teamIDs, row.PublicID)
	}

	const assignmentsQuery = `
SELECT team_public_id, player_public_id, player_name, avatar_url, is_substitute, assigned_position, substitute_for_position
FROM team_assignments
WHERE team_public_id = ANY($1)
ORDER BY team_public_id, is_substitute, id`

	var assignmentRows []teamAssignmentTableModel
	if err := r.db.SelectContext(ctx, &assignmentRows, assignmentsQuery, pq.Array(teamIDs)); err != nil {
		return nil, fmt.Errorf("list team assignments date=%s: %w", date, err)
	}

	byTeam := make(map[string][]teamsheet.Assignment, len(teamRows))
	for _, row := range assignmentRows {
		byTeam[row.TeamPublicID] = append(byTeam[row.TeamPublicID], teamsheet.Assignment{
			PlayerID:              row.PlayerPublicID,
			PlayerName:            row.PlayerName,
			AvatarURL:             row.AvatarURL,
			IsSubstitute:          row.IsSubstitute,
			AssignedPosition:      player.Position(row.AssignedPosition),
			SubstituteForPosition: player.Position(row.SubstituteForPosition),
		})
	}

	out := make([]teamsheet.Team, 0, len(teamRows))
	for _, row := range teamRows {
		out = append(out, teamsheet.Team{
			ID:          row.PublicID,
			MatchDate:   dateFromColumn(row.MatchDate),
			Number:      row.TeamNumber,
			Name:        row.Name,
			Published:   row.IsPublished,
			PublishedAt: row.PublishedAt,
			CreatedAt:   row.CreatedAt,
			Assignments: byTeam[row.PublicID],
		})
	}
	return out, nil
}
