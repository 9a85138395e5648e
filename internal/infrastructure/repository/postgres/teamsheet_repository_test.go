package postgres

import (
	"strings"
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
)

func TestAssignmentsInsertQuery(t *testing.T) {
	date := matchday.NewDate(2026, time.October, 20)
	teams := []teamsheet.Team{
		{
			ID: "team-1", MatchDate: date, Number: 1, Name: "Team 1",
			Assignments: []teamsheet.Assignment{
				{PlayerID: "pl-gk-01", PlayerName: "Andri", AssignedPosition: player.PositionGoalkeeper},
				{PlayerID: "pl-def-01", PlayerName: "Dimas", IsSubstitute: true, AssignedPosition: player.PositionDefender, SubstituteForPosition: player.PositionDefender},
			},
		},
		{
			ID: "team-2", MatchDate: date, Number: 2, Name: "Team 2",
			Assignments: []teamsheet.Assignment{
				{PlayerID: "pl-gk-02", PlayerName: "Bima", AssignedPosition: player.PositionGoalkeeper},
			},
		},
	}

	query, args, ok, err := assignmentsInsertQuery(date, teams)
	if err != nil {
		t.Fatalf("build assignments query: %v", err)
	}
	if !ok {
		t.Fatalf("expected a query for non-empty assignments")
	}
	if !strings.HasPrefix(query, "INSERT INTO team_assignments (team_public_id, match_date, player_public_id") {
		t.Fatalf("unexpected query: %s", query)
	}
	if strings.Count(query, "(") != 4 {
		t.Fatalf("expected 3 value rows, got query: %s", query)
	}
	if len(args) != 3*len(teamAssignmentColumns) {
		t.Fatalf("unexpected arg count: %d", len(args))
	}
	if args[len(teamAssignmentColumns)] != "team-1" || args[len(teamAssignmentColumns)+7] != "defender" {
		t.Fatalf("unexpected second row args: %v", args[len(teamAssignmentColumns):2*len(teamAssignmentColumns)])
	}
}

func TestAssignmentsInsertQuery_NoRows(t *testing.T) {
	_, _, ok, err := assignmentsInsertQuery(matchday.NewDate(2026, time.October, 20), nil)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if ok {
		t.Fatalf("expected no query without assignments")
	}
}
