package httpapi

import (
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/jobscheduler"
	"github.com/riskibarqy/matchday-teams/internal/domain/teamsheet"
	"github.com/riskibarqy/matchday-teams/internal/usecase"
)

type matchDateDTO struct {
	Date        string    `json:"date"`
	Weekday     string    `json:"weekday"`
	Deadline    time.Time `json:"deadline"`
	IsOpen      bool      `json:"isOpen"`
	IsPublished bool      `json:"isPublished"`
	Available   *bool     `json:"available,omitempty"`
}

type availabilityDTO struct {
	PlayerID  string    `json:"playerId"`
	MatchDate string    `json:"matchDate"`
	Available bool      `json:"available"`
	UpdatedAt time.Time `json:"updatedAt"`
}

type teamDTO struct {
	ID          string          `json:"id"`
	MatchDate   string          `json:"matchDate"`
	Number      int             `json:"number"`
	Name        string          `json:"name"`
	Published   bool            `json:"published"`
	PublishedAt *time.Time      `json:"publishedAt,omitempty"`
	Players     []assignmentDTO `json:"players"`
}

type assignmentDTO struct {
	PlayerID              string `json:"playerId"`
	PlayerName            string `json:"playerName"`
	AvatarURL             string `json:"avatarUrl,omitempty"`
	IsSubstitute          bool   `json:"isSubstitute"`
	AssignedPosition      string `json:"assignedPosition,omitempty"`
	SubstituteForPosition string `json:"substituteForPosition,omitempty"`
}

type runResultDTO struct {
	MatchDate                string    `json:"matchDate"`
	TotalPlayers             int       `json:"totalPlayers"`
	ConfigurationDescription string    `json:"configurationDescription"`
	Published                bool      `json:"published"`
	Skipped                  bool      `json:"skipped"`
	Error                    string    `json:"error,omitempty"`
	Teams                    []teamDTO `json:"teams"`
}

type publishDTO struct {
	MatchDate string    `json:"matchDate"`
	Published bool      `json:"published"`
	Teams     []teamDTO `json:"teams"`
}

type dispatchDTO struct {
	DispatchID   string                      `json:"dispatchId"`
	JobName      string                      `json:"jobName"`
	MatchDate    string                      `json:"matchDate"`
	Status       jobscheduler.DispatchStatus `json:"status"`
	ErrorCode    string                      `json:"errorCode,omitempty"`
	ErrorMessage string                      `json:"errorMessage,omitempty"`
	OccurredAt   time.Time                   `json:"occurredAt"`
	TraceID      string                      `json:"traceId,omitempty"`
}

func matchDateToDTO(entry usecase.WindowEntry) matchDateDTO {
	return matchDateDTO{
		Date:        entry.Date.String(),
		Weekday:     entry.Weekday,
		Deadline:    entry.Deadline,
		IsOpen:      entry.IsOpen,
		IsPublished: entry.IsPublished,
		Available:   entry.Available,
	}
}

func teamToDTO(team teamsheet.Team) teamDTO {
	players := make([]assignmentDTO, 0, len(team.Assignments))
	for _, a := range team.Assignments {
		players = append(players, assignmentDTO{
			PlayerID:              a.PlayerID,
			PlayerName:            a.PlayerName,
			AvatarURL:             a.AvatarURL,
			IsSubstitute:          a.IsSubstitute,
			AssignedPosition:      string(a.AssignedPosition),
			SubstituteForPosition: string(a.SubstituteForPosition),
		})
	}

	return teamDTO{
		ID:          team.ID,
		MatchDate:   team.MatchDate.String(),
		Number:      team.Number,
		Name:        team.Name,
		Published:   team.Published,
		PublishedAt: team.PublishedAt,
		Players:     players,
	}
}

func runResultToDTO(out usecase.RunResult) runResultDTO {
	return runResultDTO{
		MatchDate:                out.MatchDate.String(),
		TotalPlayers:             out.TotalPlayers,
		ConfigurationDescription: out.ConfigurationDescription,
		Published:                out.Published,
		Skipped:                  out.Skipped,
		Error:                    string(out.Error),
		Teams:                    teamsToDTO(out.Teams),
	}
}

func dispatchToDTO(event jobscheduler.DispatchEvent) dispatchDTO {
	return dispatchDTO{
		DispatchID:   event.DispatchID,
		JobName:      event.JobName,
		MatchDate:    event.MatchDate,
		Status:       event.Status,
		ErrorCode:    event.ErrorCode,
		ErrorMessage: event.ErrorMessage,
		OccurredAt:   event.OccurredAt,
		TraceID:      event.TraceID,
	}
}
