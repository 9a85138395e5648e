package teamsheet

import (
	"testing"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

func TestValidateSet(t *testing.T) {
	date := matchday.NewDate(2026, time.October, 20)
	teams := []Team{
		{MatchDate: date, Number: 1, Name: DefaultName(1), Assignments: []Assignment{
			{PlayerID: "p1", AssignedPosition: player.PositionGoalkeeper},
			{PlayerID: "p2", AssignedPosition: player.PositionForward},
			{PlayerID: "p3", IsSubstitute: true, SubstituteForPosition: player.PositionGoalkeeper},
		}},
		{MatchDate: date, Number: 2, Name: DefaultName(2), Assignments: []Assignment{
			{PlayerID: "p4", AssignedPosition: player.PositionDefender},
		}},
	}
	if err := ValidateSet(date, teams); err != nil {
		t.Fatalf("expected valid set, got %v", err)
	}

	dup := append([]Team(nil), teams...)
	dup[1] = Team{MatchDate: date, Number: 2, Assignments: []Assignment{{PlayerID: "p2"}}}
	if err := ValidateSet(date, dup); err == nil {
		t.Fatalf("expected duplicate player error")
	}

	twoKeepers := []Team{{MatchDate: date, Number: 1, Assignments: []Assignment{
		{PlayerID: "a", AssignedPosition: player.PositionGoalkeeper},
		{PlayerID: "b", AssignedPosition: player.PositionGoalkeeper},
	}}}
	if err := ValidateSet(date, twoKeepers); err == nil {
		t.Fatalf("expected error for two primary goalkeepers")
	}

	if err := ValidateSet(date.AddDays(2), teams); err == nil {
		t.Fatalf("expected error for mismatched match date")
	}
}

func TestDefaultName(t *testing.T) {
	if got := DefaultName(3); got != "Team 3" {
		t.Fatalf("unexpected team name: %q", got)
	}
}
