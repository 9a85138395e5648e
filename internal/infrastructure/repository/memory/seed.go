package memory

import "github.com/riskibarqy/matchday-teams/internal/domain/player"

// SeedPlayers is the dev roster: enough for two full teams plus substitutes.
func SeedPlayers() []player.Player {
	return []player.Player{
		{ID: "pl-gk-01", Name: "Andri Saputra", Position: player.PositionGoalkeeper, Active: true},
		{ID: "pl-gk-02", Name: "Bima Pratama", Position: player.PositionGoalkeeper, Active: true},
		{ID: "pl-gk-03", Name: "Cahyo Wibowo", Position: player.PositionGoalkeeper, Active: true},
		{ID: "pl-def-01", Name: "Dimas Hidayat", Position: player.PositionDefender, Active: true},
		{ID: "pl-def-02", Name: "Eko Santoso", Position: player.PositionDefender, Active: true},
		{ID: "pl-def-03", Name: "Fajar Nugroho", Position: player.PositionDefender, Active: true},
		{ID: "pl-def-04", Name: "Gilang Ramadhan", Position: player.PositionDefender, Active: true},
		{ID: "pl-def-05", Name: "Hendra Kurniawan", Position: player.PositionDefender, Active: true},
		{ID: "pl-def-06", Name: "Irfan Maulana", Position: player.PositionDefender, Active: true},
		{ID: "pl-mid-01", Name: "Joko Susilo", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-02", Name: "Kevin Halim", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-03", Name: "Lukman Hakim", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-04", Name: "Made Wirawan", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-05", Name: "Nanda Putra", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-06", Name: "Oki Setiawan", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-mid-07", Name: "Putu Arsana", Position: player.PositionMidfielder, Active: true},
		{ID: "pl-fwd-01", Name: "Rizky Firmansyah", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-02", Name: "Sandi Gunawan", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-03", Name: "Taufik Akbar", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-04", Name: "Umar Said", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-05", Name: "Vino Aditya", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-06", Name: "Wahyu Lestari", Position: player.PositionForward, Active: true},
		{ID: "pl-fwd-07", Name: "Yoga Permana", Position: player.PositionForward, Active: false},
	}
}
