package postgres

import "time"

type availabilityTableModel struct {
	PlayerID  string    `db:"player_public_id"`
	MatchDate time.Time `db:"match_date"`
	Available bool      `db:"available"`
	UpdatedAt time.Time `db:"updated_at"`
}

type availabilityInsertModel struct {
	PlayerID  string    `db:"player_public_id"`
	MatchDate string    `db:"match_date"`
	Available bool      `db:"available"`
	UpdatedAt time.Time `db:"updated_at"`
}
