package usecase

import (
	"errors"

	"github.com/riskibarqy/matchday-teams/internal/domain/allocation"
	"github.com/riskibarqy/matchday-teams/internal/domain/availability"
	"github.com/riskibarqy/matchday-teams/internal/domain/matchday"
)

var (
	ErrInvalidInput          = errors.New("invalid input")
	ErrNotFound              = errors.New("resource not found")
	ErrUnauthorized          = errors.New("unauthorized")
	ErrDependencyUnavailable = errors.New("dependency unavailable")
	ErrPersistence           = errors.New("persistence failure")
	ErrInsufficientPlayers   = allocation.ErrInsufficientPlayers
	ErrInvalidDate           = matchday.ErrInvalidDate
	ErrDeadlinePassed        = availability.ErrDeadlinePassed
)

// ErrorCode is the closed set of codes returned to generation callers.
type ErrorCode string

const (
	CodeInsufficientPlayers ErrorCode = "INSUFFICIENT_PLAYERS"
	CodePersistenceError    ErrorCode = "PERSISTENCE_ERROR"
	CodeInvalidDate         ErrorCode = "INVALID_DATE"
)

// CodeOf maps an error to its generation error code. Unclassified errors
// are reported as persistence failures since the pipeline has no other I/O.
func CodeOf(err error) ErrorCode {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrInsufficientPlayers):
		return CodeInsufficientPlayers
	case errors.Is(err, ErrInvalidDate), errors.Is(err, matchday.ErrNotMatchDay):
		return CodeInvalidDate
	default:
		return CodePersistenceError
	}
}
