package logic

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidParameter is returned for bad metric names, non-positive limits and unknown
	// continent bases.
	ErrInvalidParameter = errors.New("invalid parameter")
	// ErrUnknownTeam is returned when a team name matches no row in the match table.
	ErrUnknownTeam = errors.New("unknown team")
)

// UnknownTeamError carries the name that failed the lookup.
type UnknownTeamError struct {
	Team string
}

func (e *UnknownTeamError) Error() string {
	return fmt.Sprintf("unknown team %q", e.Team)
}

func (e *UnknownTeamError) Unwrap() error {
	return ErrUnknownTeam
}

func invalidParameter(format string, args ...interface{}) error {
	return fmt.Errorf("%w: %s", ErrInvalidParameter, fmt.Sprintf(format, args...))
}
