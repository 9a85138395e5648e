package allocation

import (
	"errors"
	"fmt"
)

// MinPlayers is the smallest pool that can be split into two teams.
const MinPlayers = 18

var ErrInsufficientPlayers = errors.New("insufficient players")

type Kind int

const (
	KindInsufficient Kind = iota
	KindTwoTeamsNine
	KindTwoTeamsTen
	KindThreeTeams
)

func (k Kind) String() string {
	switch k {
	case KindInsufficient:
		return "insufficient"
	case KindTwoTeamsNine:
		return "two_teams_nine"
	case KindTwoTeamsTen:
		return "two_teams_ten"
	case KindThreeTeams:
		return "three_teams"
	default:
		return fmt.Sprintf("kind(%d)", int(k))
	}
}

// Configuration is derived from the pool size alone and never stored.
type Configuration struct {
	Kind           Kind
	TeamCount      int
	PlayersPerTeam int
	Available      int
}

// SelectConfiguration maps a pool size to the team layout for a match.
func SelectConfiguration(n int) Configuration {
	if n < 0 {
		n = 0
	}

	switch {
	case n < MinPlayers:
		return Configuration{Kind: KindInsufficient, Available: n}
	case n <= 19:
		return Configuration{Kind: KindTwoTeamsNine, TeamCount: 2, PlayersPerTeam: 9, Available: n}
	case n <= 24:
		return Configuration{Kind: KindTwoTeamsTen, TeamCount: 2, PlayersPerTeam: 10, Available: n}
	default:
		return Configuration{Kind: KindThreeTeams, TeamCount: 3, PlayersPerTeam: n / 3, Available: n}
	}
}

func (c Configuration) Valid() bool {
	return c.Kind != KindInsufficient && c.TeamCount > 0
}

// Substitutes is the overflow beyond the nominal roster sizes. Three-team
// layouts spread their overflow across the primary rosters instead.
func (c Configuration) Substitutes() int {
	if !c.Valid() || c.Kind == KindThreeTeams {
		return 0
	}
	extra := c.Available - c.TeamCount*c.PlayersPerTeam
	if extra < 0 {
		return 0
	}
	return extra
}

func (c Configuration) Description() string {
	if !c.Valid() {
		return fmt.Sprintf("need at least %d players, only %d available", MinPlayers, c.Available)
	}

	desc := fmt.Sprintf("%d teams of %d players", c.TeamCount, c.PlayersPerTeam)
	switch subs := c.Substitutes(); {
	case subs == 1:
		desc += ", 1 substitute"
	case subs > 1:
		desc += fmt.Sprintf(", %d substitutes", subs)
	}
	return desc
}
