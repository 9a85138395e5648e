package postgres

import "time"

type generatedTeamTableModel struct {
	PublicID    string     `db:"public_id"`
	MatchDate   time.Time  `db:"match_date"`
	TeamNumber  int        `db:"team_number"`
	Name        string     `db:"name"`
	IsPublished bool       `db:"is_published"`
	PublishedAt *time.Time `db:"published_at"`
	CreatedAt   time.Time  `db:"created_at"`
}

type generatedTeamInsertModel struct {
	PublicID   string    `db:"public_id"`
	MatchDate  string    `db:"match_date"`
	TeamNumber int       `db:"team_number"`
	Name       string    `db:"name"`
	CreatedAt  time.Time `db:"created_at"`
}

type teamAssignmentTableModel struct {
	TeamPublicID          string `db:"team_public_id"`
	PlayerPublicID        string `db:"player_public_id"`
	PlayerName            string `db:"player_name"`
	AvatarURL             string `db:"avatar_url"`
	IsSubstitute          bool   `db:"is_substitute"`
	AssignedPosition      string `db:"assigned_position"`
	SubstituteForPosition string `db:"substitute_for_position"`
}

var teamAssignmentColumns = []string{
	"team_public_id",
	"match_date",
	"player_public_id",
	"player_name",
	"avatar_url",
	"is_substitute",
	"assigned_position",
	"substitute_for_position",
}
