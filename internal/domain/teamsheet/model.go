package teamsheet

import (
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

// Team is a generated team for one match date. Teams are replaced wholesale
// on every generation run until they are published.
type Team struct {
	ID          string
	MatchDate   matchday.Date
	Number      int
	Name        string
	Published   bool
	PublishedAt *time.Time
	CreatedAt   time.Time
	Assignments []Assignment
}

type Assignment struct {
	PlayerID              string
	PlayerName            string
	AvatarURL             string
	IsSubstitute          bool
	AssignedPosition      player.Position
	SubstituteForPosition player.Position
}

func DefaultName(number int) string {
	return fmt.Sprintf("Team %d", number)
}

func (t Team) Validate() error {
	if t.MatchDate.IsZero() {
		return fmt.Errorf("team match date is required")
	}
	if t.Number <= 0 {
		return fmt.Errorf("team number must be positive")
	}

	seen := make(map[string]struct{}, len(t.Assignments))
	keepers := 0
	for _, a := range t.Assignments {
		if a.PlayerID == "" {
			return fmt.Errorf("team %d has an assignment without player id", t.Number)
		}
		if _, ok := seen[a.PlayerID]; ok {
			return fmt.Errorf("team %d assigns player %s twice", t.Number, a.PlayerID)
		}
		seen[a.PlayerID] = struct{}{}
		if !a.IsSubstitute && a.AssignedPosition.IsGoalkeeper() {
			keepers++
		}
	}
	if keepers > 1 {
		return fmt.Errorf("team %d has %d primary goalkeepers", t.Number, keepers)
	}

	return nil
}

// ValidateSet checks a full set of teams for one date.
func ValidateSet(date matchday.Date, teams []Team) error {
	numbers := make(map[int]struct{}, len(teams))
	players := make(map[string]int, len(teams)*12)
	for _, team := range teams {
		if team.MatchDate != date {
			return fmt.Errorf("team %d belongs to %s, expected %s", team.Number, team.MatchDate, date)
		}
		if err := team.Validate(); err != nil {
			return err
		}
		if _, ok := numbers[team.Number]; ok {
			return fmt.Errorf("duplicate team number %d", team.Number)
		}
		numbers[team.Number] = struct{}{}
		for _, a := range team.Assignments {
			if other, ok := players[a.PlayerID]; ok {
				return fmt.Errorf("player %s assigned to teams %d and %d", a.PlayerID, other, team.Number)
			}
			players[a.PlayerID] = team.Number
		}
	}
	return nil
}
