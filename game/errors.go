package game

import (
	"errors"
	"fmt"
)

// ErrInvalidPosition is matched by every PositionError.
var ErrInvalidPosition = errors.New("invalid cell position")

// PositionError is returned when a position lies outside the grid. It is a
// caller bug, never a routine outcome of play.
type PositionError struct {
	Pos           Pos
	Width, Height int
}

func (e *PositionError) Error() string {
	return fmt.Sprintf("%s out of range - %s - grid (%d, %d)", ErrInvalidPosition, e.Pos, e.Width, e.Height)
}

func (e *PositionError) Unwrap() error {
	return ErrInvalidPosition
}
