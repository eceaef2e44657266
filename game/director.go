package game

import (
	"context"
	"time"
)

// Director plays a Game on somebody's behalf.
type Director interface {
	// Act performs a single move, reporting whether any cell changed
	Act() (bool, error)

	// ActContinuously acts once per interval until the game ends or ctx is
	// done
	ActContinuously(ctx context.Context, every time.Duration) error
}
