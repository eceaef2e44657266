package random

import (
	"context"
	"math/rand"
	"time"

	"github.com/they4kman/sweepcore/game"
)

var _ game.Director = (*Director)(nil)

// Director opens a random closed, unflagged cell on every move, flagging
// instead once nothing but mines can be left. It never looks at where the
// mines are.
type Director struct {
	game *game.Game
	rand *rand.Rand
}

func New(g *game.Game, seed int64) *Director {
	return &Director{
		game: g,
		rand: rand.New(rand.NewSource(seed)),
	}
}

func (director *Director) Act() (bool, error) {
	if director.game.IsGameEnd() {
		return false, nil
	}

	var closed []game.Pos
	for _, cell := range director.game.Cells() {
		if !cell.IsOpened() && !cell.IsFlagged() {
			closed = append(closed, cell.Pos())
		}
	}
	if len(closed) == 0 {
		return false, nil
	}
	pos := closed[director.rand.Intn(len(closed))]

	// Flags are only ever placed here, so they are all correct, and once the
	// closed cells number the unflagged mines they must all be mines
	if len(closed) == director.game.MineCount()-director.game.FlagCount() {
		return director.game.FlagCell(pos)
	}
	return director.game.OpenCell(pos)
}

func (director *Director) ActContinuously(ctx context.Context, every time.Duration) error {
	tick := time.NewTicker(every)
	defer tick.Stop()

	for !director.game.IsGameEnd() {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case <-tick.C:
			changed, err := director.Act()
			if err != nil {
				return err
			}
			if !changed {
				return nil
			}
		}
	}
	return nil
}
