package allocation

import (
	"errors"
	"fmt"
	"slices"
	"testing"

	"github.com/riskibarqy/matchday-teams/internal/domain/player"
	"github.com/stretchr/testify/require"
)

func makePool(goalkeepers, field int) []player.Player {
	outfield := []player.Position{player.PositionDefender, player.PositionMidfielder, player.PositionForward}
	pool := make([]player.Player, 0, goalkeepers+field)
	for i := 0; i < goalkeepers; i++ {
		pool = append(pool, player.Player{ID: fmt.Sprintf("gk-%02d", i), Name: fmt.Sprintf("Keeper %d", i), Position: player.PositionGoalkeeper, Active: true})
	}
	for i := 0; i < field; i++ {
		pool = append(pool, player.Player{ID: fmt.Sprintf("fp-%02d", i), Name: fmt.Sprintf("Player %d", i), Position: outfield[i%len(outfield)], Active: true})
	}
	return pool
}

func fieldPrimaries(team Team) int {
	count := 0
	for _, m := range team.Primary() {
		if !m.Player.Position.IsGoalkeeper() {
			count++
		}
	}
	return count
}

func TestSelectConfiguration(t *testing.T) {
	cases := []struct {
		n       int
		kind    Kind
		teams   int
		perTeam int
	}{
		{n: -1, kind: KindInsufficient},
		{n: 0, kind: KindInsufficient},
		{n: 17, kind: KindInsufficient},
		{n: 18, kind: KindTwoTeamsNine, teams: 2, perTeam: 9},
		{n: 19, kind: KindTwoTeamsNine, teams: 2, perTeam: 9},
		{n: 20, kind: KindTwoTeamsTen, teams: 2, perTeam: 10},
		{n: 24, kind: KindTwoTeamsTen, teams: 2, perTeam: 10},
		{n: 25, kind: KindThreeTeams, teams: 3, perTeam: 8},
		{n: 30, kind: KindThreeTeams, teams: 3, perTeam: 10},
		{n: 31, kind: KindThreeTeams, teams: 3, perTeam: 10},
	}

	for _, tc := range cases {
		cfg := SelectConfiguration(tc.n)
		require.Equalf(t, tc.kind, cfg.Kind, "n=%d", tc.n)
		require.Equalf(t, tc.teams, cfg.TeamCount, "n=%d", tc.n)
		require.Equalf(t, tc.perTeam, cfg.PlayersPerTeam, "n=%d", tc.n)
	}
}

func TestConfiguration_Description(t *testing.T) {
	cases := map[int]string{
		15: "need at least 18 players, only 15 available",
		18: "2 teams of 9 players",
		19: "2 teams of 9 players, 1 substitute",
		22: "2 teams of 10 players, 2 substitutes",
		25: "3 teams of 8 players",
		26: "3 teams of 8 players",
	}
	for n, want := range cases {
		require.Equalf(t, want, SelectConfiguration(n).Description(), "n=%d", n)
	}
}

func TestAllocate_InsufficientPlayers(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(1, 2))

	result, err := alloc.Allocate(makePool(2, 13))
	if !errors.Is(err, ErrInsufficientPlayers) {
		t.Fatalf("expected ErrInsufficientPlayers, got %v", err)
	}
	if len(result.Teams) != 0 {
		t.Fatalf("expected no teams, got %d", len(result.Teams))
	}
	if result.TotalPlayers != 15 {
		t.Fatalf("expected total players 15, got %d", result.TotalPlayers)
	}
	if got := result.Configuration.Description(); got != "need at least 18 players, only 15 available" {
		t.Fatalf("unexpected description: %q", got)
	}
}

func TestAllocate_EighteenWithThreeKeepersKeepsParity(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(7, 11))

	result, err := alloc.Allocate(makePool(3, 15))
	require.NoError(t, err)
	require.Len(t, result.Teams, 2)

	totalSubs := 0
	keeperSubs := 0
	for _, team := range result.Teams {
		require.Equal(t, 1, team.PrimaryGoalkeepers())
		require.Len(t, team.Primary(), 8)
		require.Equal(t, 7, fieldPrimaries(team))
		for _, sub := range team.Substitutes() {
			totalSubs++
			if sub.SubstituteForPosition.IsGoalkeeper() {
				keeperSubs++
			}
			require.Empty(t, sub.AssignedPosition)
		}
	}
	require.Equal(t, 2, totalSubs)
	require.Equal(t, 1, keeperSubs)
}

func TestAllocate_TwentyTwoWithTwoKeepers(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(3, 5))

	result, err := alloc.Allocate(makePool(2, 20))
	require.NoError(t, err)
	require.Equal(t, KindTwoTeamsTen, result.Configuration.Kind)

	subs := 0
	for _, team := range result.Teams {
		require.Len(t, team.Primary(), 10)
		require.Equal(t, 1, team.PrimaryGoalkeepers())
		subs += len(team.Substitutes())
	}
	require.Equal(t, 2, subs)
	require.Len(t, result.Teams[0].Substitutes(), 1)
	require.Len(t, result.Teams[1].Substitutes(), 1)
}

func TestAllocate_SingleKeeperFillsBothRosters(t *testing.T) {
	cases := []struct {
		keepers, field int
		perTeam, subs  int
	}{
		{keepers: 1, field: 19, perTeam: 10, subs: 0},
		{keepers: 1, field: 21, perTeam: 10, subs: 2},
		{keepers: 1, field: 23, perTeam: 10, subs: 4},
		{keepers: 1, field: 18, perTeam: 9, subs: 1},
	}

	for _, tc := range cases {
		result, err := NewAllocator(NewSeededSource(12, 21)).Allocate(makePool(tc.keepers, tc.field))
		require.NoError(t, err)
		require.Len(t, result.Teams, 2)

		primaries, subs, keepers := 0, 0, 0
		for _, team := range result.Teams {
			require.Lenf(t, team.Primary(), tc.perTeam, "field=%d team=%d", tc.field, team.Number)
			primaries += len(team.Primary())
			subs += len(team.Substitutes())
			keepers += team.PrimaryGoalkeepers()
		}
		require.Equal(t, 2*tc.perTeam, primaries)
		require.Equalf(t, tc.subs, subs, "field=%d", tc.field)
		require.Equal(t, 1, keepers)
		require.Equal(t, result.Configuration.Substitutes(), subs)
	}

	result, err := NewAllocator(NewSeededSource(1, 1)).Allocate(makePool(1, 21))
	require.NoError(t, err)
	require.Equal(t, "2 teams of 10 players, 2 substitutes", result.Configuration.Description())
}

func TestAllocate_TwentyFiveSpreadsOverflowOntoRosters(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(9, 9))

	result, err := alloc.Allocate(makePool(3, 22))
	require.NoError(t, err)
	require.Len(t, result.Teams, 3)

	sizes := []int{}
	for _, team := range result.Teams {
		require.Equal(t, 1, team.PrimaryGoalkeepers())
		require.Empty(t, team.Substitutes())
		sizes = append(sizes, len(team.Primary()))
	}
	require.Equal(t, []int{9, 8, 8}, sizes)
}

func TestAllocate_NoGoalkeepers(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(1, 1))

	result, err := alloc.Allocate(makePool(0, 20))
	require.NoError(t, err)
	for _, team := range result.Teams {
		require.Zero(t, team.PrimaryGoalkeepers())
		require.Len(t, team.Primary(), 10)
	}
}

func TestAllocate_AllGoalkeepers(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(4, 2))

	result, err := alloc.Allocate(makePool(18, 0))
	require.NoError(t, err)
	for _, team := range result.Teams {
		require.Equal(t, 1, team.PrimaryGoalkeepers())
		require.Len(t, team.Primary(), 1)
		require.Len(t, team.Substitutes(), 8)
		for _, sub := range team.Substitutes() {
			require.Equal(t, player.PositionGoalkeeper, sub.SubstituteForPosition)
		}
	}
}

func TestAllocate_Invariants(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(42, 99))

	for n := MinPlayers; n <= 40; n++ {
		for keepers := 0; keepers <= 6 && keepers <= n; keepers++ {
			pool := makePool(keepers, n-keepers)
			result, err := alloc.Allocate(pool)
			require.NoErrorf(t, err, "n=%d keepers=%d", n, keepers)
			require.Len(t, result.Teams, result.Configuration.TeamCount)

			seen := make(map[string]int, n)
			for _, team := range result.Teams {
				require.LessOrEqualf(t, team.PrimaryGoalkeepers(), 1, "n=%d keepers=%d team=%d", n, keepers, team.Number)
				for _, m := range team.Members {
					seen[m.Player.ID]++
				}
			}
			require.Lenf(t, seen, n, "n=%d keepers=%d", n, keepers)
			for id, count := range seen {
				require.Equalf(t, 1, count, "player %s assigned %d times", id, count)
			}

			if result.Configuration.TeamCount == 2 {
				require.Equalf(t, len(result.Teams[0].Primary()), len(result.Teams[1].Primary()), "n=%d keepers=%d", n, keepers)
				if keepers != 1 {
					require.Equalf(t, fieldPrimaries(result.Teams[0]), fieldPrimaries(result.Teams[1]), "n=%d keepers=%d", n, keepers)
				}
			}
		}
	}
}

func TestAllocate_DoesNotMutatePool(t *testing.T) {
	pool := makePool(3, 19)
	before := slices.Clone(pool)

	if _, err := NewAllocator(NewSeededSource(5, 6)).Allocate(pool); err != nil {
		t.Fatalf("allocate: %v", err)
	}
	if !slices.Equal(before, pool) {
		t.Fatalf("expected pool order to be unchanged")
	}
}

func TestAllocate_GoalkeeperSelectionIsFair(t *testing.T) {
	alloc := NewAllocator(NewSeededSource(2024, 10))
	pool := makePool(3, 17)

	const runs = 3000
	primaryCount := map[string]int{}
	for i := 0; i < runs; i++ {
		result, err := alloc.Allocate(pool)
		require.NoError(t, err)
		for _, team := range result.Teams {
			for _, m := range team.Primary() {
				if m.Player.Position.IsGoalkeeper() {
					primaryCount[m.Player.ID]++
				}
			}
		}
	}

	// Two of three keepers start each run.
	for id, count := range primaryCount {
		share := float64(count) / runs
		require.InDeltaf(t, 2.0/3.0, share, 0.06, "keeper %s started %.3f of runs", id, share)
	}
	require.Len(t, primaryCount, 3)
}

func TestShuffled_UniformPermutations(t *testing.T) {
	src := NewSeededSource(77, 13)
	items := []string{"a", "b", "c"}

	const runs = 6000
	counts := map[string]int{}
	for i := 0; i < runs; i++ {
		out := shuffled(items, src)
		counts[out[0]+out[1]+out[2]]++
	}

	require.Len(t, counts, 6)
	for perm, count := range counts {
		require.InDeltaf(t, runs/6, count, 200, "permutation %s", perm)
	}
	require.Equal(t, []string{"a", "b", "c"}, items)
}

func TestAllocate_NilSourceUsesDefault(t *testing.T) {
	result, err := NewAllocator(nil).Allocate(makePool(2, 18))
	require.NoError(t, err)
	require.Len(t, result.Teams, 2)
	require.Equal(t, "Team 1", result.Teams[0].Name())
}
