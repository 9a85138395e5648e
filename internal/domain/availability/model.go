package availability

import (
	"errors"
	"fmt"
	"time"

	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
)

var ErrDeadlinePassed = errors.New("availability deadline has passed")

// Record says whether a player can make a given match date. The latest write wins.
type Record struct {
	PlayerID  string
	MatchDate matchday.Date
	Available bool
	UpdatedAt time.Time
}

func (r Record) Validate() error {
	if r.PlayerID == "" {
		return fmt.Errorf("availability player id is required")
	}
	if r.MatchDate.IsZero() {
		return fmt.Errorf("availability match date is required")
	}

	return nil
}
