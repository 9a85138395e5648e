package player

import (
	"fmt"
	"strings"
)

// Position is the preferred on-pitch role a player signs up with.
type Position string

const (
	PositionGoalkeeper Position = "goalkeeper"
	PositionDefender   Position = "defender"
	PositionMidfielder Position = "midfielder"
	PositionForward    Position = "forward"
)

var AllPositions = map[Position]struct{}{
	PositionGoalkeeper: {},
	PositionDefender:   {},
	PositionMidfielder: {},
	PositionForward:    {},
}

// ParsePosition accepts the canonical names plus the short codes used on team sheets.
func ParsePosition(raw string) (Position, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "goalkeeper", "gk", "keeper":
		return PositionGoalkeeper, nil
	case "defender", "def":
		return PositionDefender, nil
	case "midfielder", "mid":
		return PositionMidfielder, nil
	case "forward", "fwd", "striker":
		return PositionForward, nil
	default:
		return "", fmt.Errorf("invalid player position: %q", raw)
	}
}

func (p Position) IsGoalkeeper() bool {
	return p == PositionGoalkeeper
}

// Player is a club member who can be picked for a match.
type Player struct {
	ID        string
	Name      string
	Position  Position
	AvatarURL string
	Active    bool
}

func (p Player) Validate() error {
	if p.ID == "" {
		return fmt.Errorf("player id is required")
	}
	if p.Name == "" {
		return fmt.Errorf("player name is required")
	}
	if _, ok := AllPositions[p.Position]; !ok {
		return fmt.Errorf("invalid player position: %s", p.Position)
	}

	return nil
}
