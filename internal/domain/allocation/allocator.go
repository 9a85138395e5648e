package allocation

import (
	"fmt"

	"github.com/riskibarqy/matchday-teams/internal/domain/player"
)

// Member is one player's place on a generated team.
type Member struct {
	Player       player.Player
	IsSubstitute bool
	// AssignedPosition is set for primary roster members only.
	AssignedPosition player.Position
	// SubstituteForPosition keeps a substitute's preferred position for display.
	SubstituteForPosition player.Position
}

type Team struct {
	Number  int
	Members []Member
}

func (t Team) Name() string {
	return fmt.Sprintf("Team %d", t.Number)
}

func (t Team) Primary() []Member {
	out := make([]Member, 0, len(t.Members))
	for _, m := range t.Members {
		if !m.IsSubstitute {
			out = append(out, m)
		}
	}
	return out
}

func (t Team) Substitutes() []Member {
	out := make([]Member, 0)
	for _, m := range t.Members {
		if m.IsSubstitute {
			out = append(out, m)
		}
	}
	return out
}

// PrimaryGoalkeepers counts goalkeepers playing in goal, never more than one.
func (t Team) PrimaryGoalkeepers() int {
	count := 0
	for _, m := range t.Members {
		if !m.IsSubstitute && m.AssignedPosition.IsGoalkeeper() {
			count++
		}
	}
	return count
}

type Result struct {
	Configuration Configuration
	Teams         []Team
	TotalPlayers  int
}

type Allocator struct {
	rand RandomSource
}

func NewAllocator(src RandomSource) *Allocator {
	if src == nil {
		src = NewSource()
	}
	return &Allocator{rand: src}
}

// Allocate splits the pool into balanced teams. The pool is expected to be
// deduplicated by the caller and is never modified.
func (a *Allocator) Allocate(pool []player.Player) (Result, error) {
	cfg := SelectConfiguration(len(pool))
	if !cfg.Valid() {
		return Result{Configuration: cfg, TotalPlayers: len(pool)}, fmt.Errorf("%w: %s", ErrInsufficientPlayers, cfg.Description())
	}

	goalkeepers := make([]player.Player, 0, len(pool)/4)
	fieldPlayers := make([]player.Player, 0, len(pool))
	for _, p := range pool {
		if p.Position.IsGoalkeeper() {
			goalkeepers = append(goalkeepers, p)
			continue
		}
		fieldPlayers = append(fieldPlayers, p)
	}
	goalkeepers = shuffled(goalkeepers, a.rand)
	fieldPlayers = shuffled(fieldPlayers, a.rand)

	teams := make([]Team, cfg.TeamCount)
	for i := range teams {
		teams[i] = Team{Number: i + 1, Members: make([]Member, 0, cfg.PlayersPerTeam+2)}
	}

	keepersPlaced := min(len(goalkeepers), cfg.TeamCount)
	for i := 0; i < keepersPlaced; i++ {
		teams[i].Members = append(teams[i].Members, primary(goalkeepers[i]))
	}
	spareKeepers := goalkeepers[keepersPlaced:]

	var spareField []player.Player
	if cfg.TeamCount == 2 {
		spareField = fillTwoTeams(teams, fieldPlayers, cfg.PlayersPerTeam)
	} else {
		spareField = fillTeams(teams, fieldPlayers, cfg.PlayersPerTeam)
	}

	next := 0
	for _, group := range [][]player.Player{spareField, spareKeepers} {
		for _, p := range group {
			teams[next].Members = append(teams[next].Members, substitute(p))
			next = (next + 1) % len(teams)
		}
	}

	return Result{Configuration: cfg, Teams: teams, TotalPlayers: len(pool)}, nil
}

// fillTwoTeams brings both primary rosters to the same size, as close to
// target as the field players allow, and returns the rest. A team without a
// goalkeeper takes one more field player than a team with one.
func fillTwoTeams(teams []Team, field []player.Player, target int) []player.Player {
	size := 0
	for i := range teams {
		size = max(size, len(teams[i].Members))
	}
	for next := size + 1; next <= target; next++ {
		needed := 0
		for i := range teams {
			needed += max(next-len(teams[i].Members), 0)
		}
		if needed > len(field) {
			break
		}
		size = next
	}

	cursor := 0
	for i := range teams {
		take := max(size-len(teams[i].Members), 0)
		for _, p := range field[cursor : cursor+take] {
			teams[i].Members = append(teams[i].Members, primary(p))
		}
		cursor += take
	}
	return field[cursor:]
}

// fillTeams tops each team up to target in order, then spreads the remainder round-robin.
func fillTeams(teams []Team, field []player.Player, target int) []player.Player {
	cursor := 0
	for i := range teams {
		take := min(max(target-len(teams[i].Members), 0), len(field)-cursor)
		for _, p := range field[cursor : cursor+take] {
			teams[i].Members = append(teams[i].Members, primary(p))
		}
		cursor += take
	}

	for next := 0; cursor < len(field); cursor++ {
		teams[next].Members = append(teams[next].Members, primary(field[cursor]))
		next = (next + 1) % len(teams)
	}
	return nil
}

func primary(p player.Player) Member {
	return Member{Player: p, AssignedPosition: p.Position}
}

func substitute(p player.Player) Member {
	return Member{Player: p, IsSubstitute: true, SubstituteForPosition: p.Position}
}
