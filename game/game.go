package game

import (
	"time"

	"github.com/google/uuid"
	"github.com/sirupsen/logrus"

	"github.com/they4kman/sweepcore/util/event"
)

type GameConfig struct {
	Grid GridConfig

	// Seed for the default RandomPlacer. Zero picks one from the current time.
	Seed int64
	// Placer overrides random mine placement, e.g. with a loaded layout
	Placer Placer
	// Scheduler drives the one-second clock; defaults to a TickerScheduler
	Scheduler Scheduler

	Logger logrus.FieldLogger
}

func NewGameConfig() GameConfig {
	return GameConfig{
		Grid: GridConfig{
			Width:     30,
			Height:    16,
			MineRatio: 0.21,
		},
		Scheduler: TickerScheduler{},
	}
}

// Game drives one Grid through NotStarted, InProgress and then Won or Lost,
// and keeps the elapsed time of the current round.
//
// Game expects a single caller; only Elapsed and the subscription methods
// may be used concurrently with play, as ticks arrive from the clock's own
// goroutine.
type Game struct {
	id   uuid.UUID
	seed int64
	log  *logrus.Entry

	grid    *Grid
	gridSub *event.Subscription
	state   State
	clock   *stopwatch

	stateChanges event.Topic[State]
	ticks        event.Topic[int]
}

func NewGame(config GameConfig) (*Game, error) {
	seed := config.Seed
	if seed == 0 {
		seed = time.Now().UnixNano()
	}

	placer := config.Placer
	if placer == nil {
		placer = NewRandomPlacer(seed)
	}

	grid, err := NewGrid(config.Grid, placer)
	if err != nil {
		return nil, err
	}

	scheduler := config.Scheduler
	if scheduler == nil {
		scheduler = TickerScheduler{}
	}

	logger := config.Logger
	if logger == nil {
		logger = logrus.StandardLogger()
	}

	game := &Game{
		id:    uuid.New(),
		seed:  seed,
		grid:  grid,
		state: NotStarted,
	}
	game.log = logger.WithField("game", game.id.String())
	game.clock = &stopwatch{
		scheduler: scheduler,
		onTick:    game.ticks.Publish,
	}

	return game, nil
}

func (game *Game) ID() uuid.UUID {
	return game.id
}

// Seed is the seed of the default placer, recorded even when a custom
// Placer is in use.
func (game *Game) Seed() int64 {
	return game.seed
}

func (game *Game) State() State {
	return game.state
}

func (game *Game) IsGameEnd() bool {
	return game.state.IsEnd()
}

// Elapsed is the number of whole seconds the current round has been played.
func (game *Game) Elapsed() int {
	return game.clock.seconds()
}

func (game *Game) Width() int {
	return game.grid.Width()
}

func (game *Game) Height() int {
	return game.grid.Height()
}

func (game *Game) CellCount() int {
	return game.grid.CellCount()
}

func (game *Game) MineCount() int {
	return game.grid.MineCount()
}

func (game *Game) MineRatio() float64 {
	return game.grid.MineRatio()
}

func (game *Game) FlagCount() int {
	return game.grid.FlagCount()
}

func (game *Game) OpenedCellCount() int {
	return game.grid.OpenedCellCount()
}

func (game *Game) Cell(pos Pos) (Cell, error) {
	return game.grid.Cell(pos)
}

func (game *Game) Cells() []Cell {
	return game.grid.Cells()
}

// Init lays the mines around start and starts the clock. It only has an
// effect on a game that has not started yet.
func (game *Game) Init(start Pos) error {
	if game.state != NotStarted {
		game.log.WithField("state", game.state).Warn("game already started")
		return nil
	}

	if err := game.grid.Init(start); err != nil {
		return err
	}

	game.clock.start()
	game.gridSub = game.grid.OnCellsChange(game.handleCellsChange)
	game.changeState(InProgress)
	return nil
}

// Reset stops the clock and clears the grid, ready for a new first move.
func (game *Game) Reset() {
	game.clock.reset()
	game.gridSub.Unsubscribe()
	game.gridSub = nil
	game.grid.Reset()
	game.changeState(NotStarted)
}

func (game *Game) OpenCell(pos Pos) (bool, error) {
	if ok, err := game.prepare(pos); !ok {
		return false, err
	}
	return game.grid.OpenCell(pos)
}

func (game *Game) FlagCell(pos Pos) (bool, error) {
	if ok, err := game.prepare(pos); !ok {
		return false, err
	}
	return game.grid.FlagCell(pos)
}

func (game *Game) RevealAdjacentCells(pos Pos) (bool, error) {
	if ok, err := game.prepare(pos); !ok {
		return false, err
	}
	return game.grid.RevealAdjacentCells(pos)
}

func (game *Game) PressPreview(pos Pos) ([]Pos, error) {
	return game.grid.PressPreview(pos)
}

func (game *Game) CheckAllMinesFlagged() bool {
	return game.grid.CheckAllMinesFlagged()
}

func (game *Game) OnStateChange(fn func(State)) *event.Subscription {
	return game.stateChanges.Subscribe(fn)
}

// OnTick subscribes to the elapsed seconds. Callbacks run on the clock's
// goroutine and must not play moves or Reset; ending or resetting the game
// waits for the tick in progress.
func (game *Game) OnTick(fn func(int)) *event.Subscription {
	return game.ticks.Subscribe(fn)
}

func (game *Game) OnCellsChange(fn func([]Cell)) *event.Subscription {
	return game.grid.OnCellsChange(fn)
}

func (game *Game) OnProgress(fn func(int)) *event.Subscription {
	return game.grid.OnProgress(fn)
}

func (game *Game) OnFailState(fn func(FailState)) *event.Subscription {
	return game.grid.OnFailState(fn)
}

// prepare starts the game on its first move and reports whether the move
// may be played at all.
func (game *Game) prepare(pos Pos) (bool, error) {
	if game.state == NotStarted {
		if err := game.Init(pos); err != nil {
			return false, err
		}
	}
	if game.state.IsEnd() {
		// Still report misuse, even though the board is frozen
		return false, game.grid.checkPosition(pos)
	}
	return true, nil
}

// handleCellsChange decides win and loss once per batch of changed cells.
func (game *Game) handleCellsChange(cells []Cell) {
	if game.state != InProgress {
		return
	}

	for _, cell := range cells {
		if cell.hasMine && cell.isOpened {
			game.end(Lost)
			return
		}
	}

	if game.checkWinCondition() {
		game.end(Won)
	}
}

func (game *Game) checkWinCondition() bool {
	grid := game.grid
	return grid.CellCount()-grid.MineCount() == grid.OpenedCellCount() &&
		grid.CheckAllMinesFlagged()
}

func (game *Game) end(state State) {
	game.clock.halt()
	game.changeState(state)

	game.log.WithFields(logrus.Fields{
		"elapsed": game.clock.seconds(),
		"opened":  game.grid.OpenedCellCount(),
		"flags":   game.grid.FlagCount(),
	}).Infof("game %s", state)
}

func (game *Game) changeState(state State) {
	game.log.WithFields(logrus.Fields{
		"from": game.state,
		"to":   state,
	}).Debug("game state changed")

	game.state = state
	game.stateChanges.Publish(state)
}
