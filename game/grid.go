package game

import (
	"fmt"
	"math"
	"sort"

	"github.com/they4kman/sweepcore/util/collections"
	"github.com/they4kman/sweepcore/util/event"
)

// GridConfig sizes a grid and its mine density.
type GridConfig struct {
	Width     int     `yaml:"width"`
	Height    int     `yaml:"height"`
	MineRatio float64 `yaml:"mineRatio"`

	// Mines, when positive, is an exact mine count used instead of MineRatio
	Mines int `yaml:"mines,omitempty"`
}

func (config GridConfig) NumCells() int {
	return config.Width * config.Height
}

// MineCount is floor(Width*Height*MineRatio), unless Mines is set.
func (config GridConfig) MineCount() int {
	if config.Mines > 0 {
		return config.Mines
	}
	return int(math.Floor(float64(config.NumCells()) * config.MineRatio))
}

func (config GridConfig) Validate() error {
	switch {
	case config.Width <= 0:
		return fmt.Errorf("cannot create a grid with width: %d", config.Width)
	case config.Height <= 0:
		return fmt.Errorf("cannot create a grid with height: %d", config.Height)
	case config.Mines < 0:
		return fmt.Errorf("cannot create a grid with negative amount of mines: %d", config.Mines)
	// Written so that NaN fails too
	case config.Mines == 0 && !(config.MineRatio > 0 && config.MineRatio < 1):
		return fmt.Errorf("mine ratio must be between 0 and 1 exclusive, got %v", config.MineRatio)
	case config.MineCount() < 0:
		return fmt.Errorf("cannot create a grid with negative amount of mines: %d", config.MineCount())
	case config.MineCount() >= config.NumCells():
		return fmt.Errorf("not enough space for %d mines in %d cells", config.MineCount(), config.NumCells())
	}
	return nil
}

// FailState describes a lost grid at the moment the mine was opened.
type FailState struct {
	// Triggered is the last mine opened by the losing move. When one move
	// opens several mines, which of them is last depends on flood order.
	Triggered Cell
	// Mines holds every mine cell, in row-major order
	Mines []Cell
	// WrongFlags holds every cell flagged without a mine when the first mine
	// of the move opened, in row-major order. Flags the same move's flood
	// sweeps away afterwards are still listed.
	WrongFlags []Cell
}

// Grid owns the cells of one board and every rule about opening and
// flagging them. A Grid is not safe for concurrent use.
type Grid struct {
	width, height int
	mineRatio     float64
	mineCount     int
	cells         []Cell

	placer      Placer
	initialized bool

	mines           collections.Set[Pos]
	flags           collections.Set[Pos]
	flagCount       int
	openedCellCount int

	cellsChanged event.Topic[[]Cell]
	progress     event.Topic[int]
	failed       event.Topic[FailState]
}

// NewGrid creates a grid of closed cells with no mines; Init places them. A
// nil placer means a RandomPlacer seeded with 1.
func NewGrid(config GridConfig, placer Placer) (*Grid, error) {
	if err := config.Validate(); err != nil {
		return nil, err
	}
	if placer == nil {
		placer = NewRandomPlacer(1)
	}

	ratio := config.MineRatio
	if config.Mines > 0 {
		ratio = float64(config.Mines) / float64(config.NumCells())
	}

	grid := &Grid{
		width:     config.Width,
		height:    config.Height,
		mineRatio: ratio,
		mineCount: config.MineCount(),
		cells:     make([]Cell, config.NumCells()),
		placer:    placer,
		mines:     make(collections.Set[Pos]),
		flags:     make(collections.Set[Pos]),
	}

	for y := 0; y < grid.height; y++ {
		for x := 0; x < grid.width; x++ {
			grid.cells[grid.index(Pos{x, y})].pos = Pos{x, y}
		}
	}

	return grid, nil
}

func (grid *Grid) Width() int {
	return grid.width
}

func (grid *Grid) Height() int {
	return grid.height
}

func (grid *Grid) CellCount() int {
	return len(grid.cells)
}

func (grid *Grid) MineCount() int {
	return grid.mineCount
}

func (grid *Grid) MineRatio() float64 {
	return grid.mineRatio
}

func (grid *Grid) FlagCount() int {
	return grid.flagCount
}

func (grid *Grid) OpenedCellCount() int {
	return grid.openedCellCount
}

// Initialized reports whether mines have been placed since the last reset.
func (grid *Grid) Initialized() bool {
	return grid.initialized
}

// Init lays the mines, never on start, and counts every cell's adjacent
// mines. It is a no-op once the grid is initialized.
func (grid *Grid) Init(start Pos) error {
	if err := grid.checkPosition(start); err != nil {
		return err
	}
	if grid.initialized {
		return nil
	}

	placed := grid.placer.Place(grid.width, grid.height, grid.mineCount, start)
	mines := collections.NewSet(placed...)
	if len(placed) != grid.mineCount || mines.Len() != grid.mineCount {
		return fmt.Errorf("placer produced %d distinct mines, want %d", mines.Len(), grid.mineCount)
	}
	for pos := range mines {
		if err := grid.checkPosition(pos); err != nil {
			return fmt.Errorf("placer produced mine %s outside the grid", pos)
		}
	}

	for pos := range mines {
		grid.mines.Add(pos)
		grid.cellAt(pos).hasMine = true

		for _, neighbor := range grid.neighbors(pos) {
			grid.cellAt(neighbor).adjacentMines++
		}
	}

	grid.initialized = true
	return nil
}

// Reset returns every cell to closed, unflagged and mine-free. The next Init
// lays a fresh set of mines.
func (grid *Grid) Reset() {
	for i := range grid.cells {
		grid.cells[i].clear()
	}
	grid.mines.Clear()
	grid.flags.Clear()
	grid.flagCount = 0
	grid.openedCellCount = 0
	grid.initialized = false
}

// Cell returns a copy of the cell at pos.
func (grid *Grid) Cell(pos Pos) (Cell, error) {
	if err := grid.checkPosition(pos); err != nil {
		return Cell{}, err
	}
	return *grid.cellAt(pos), nil
}

// Cells returns a copy of every cell, in row-major order.
func (grid *Grid) Cells() []Cell {
	cells := make([]Cell, len(grid.cells))
	copy(cells, grid.cells)
	return cells
}

// OpenCell reveals a closed cell, flooding outwards from empty cells. A
// flagged cell is left alone; an opened numbered cell is chorded instead.
// It reports whether any cell changed.
func (grid *Grid) OpenCell(pos Pos) (bool, error) {
	if err := grid.checkPosition(pos); err != nil {
		return false, err
	}

	cell := grid.cellAt(pos)
	switch {
	case cell.isFlagged:
		return false, nil
	case cell.isOpened && cell.adjacentMines > 0:
		return grid.RevealAdjacentCells(pos)
	case cell.isOpened:
		return false, nil
	}

	return grid.reveal([]Pos{pos}), nil
}

// FlagCell toggles the flag of a closed cell. Opened cells are ignored.
func (grid *Grid) FlagCell(pos Pos) (bool, error) {
	if err := grid.checkPosition(pos); err != nil {
		return false, err
	}

	cell := grid.cellAt(pos)
	if cell.isOpened {
		return false, nil
	}

	cell.isFlagged = !cell.isFlagged
	if cell.isFlagged {
		grid.flags.Add(pos)
		grid.flagCount++
	} else {
		grid.flags.Remove(pos)
		grid.flagCount--
	}

	grid.cellsChanged.Publish([]Cell{*cell})
	grid.progress.Publish(grid.flagCount)
	return true, nil
}

// RevealAdjacentCells chords an opened numbered cell: when exactly as many
// neighbors are flagged as it has adjacent mines, every other closed
// neighbor is opened. A closed cell is opened instead.
func (grid *Grid) RevealAdjacentCells(pos Pos) (bool, error) {
	if err := grid.checkPosition(pos); err != nil {
		return false, err
	}

	cell := grid.cellAt(pos)
	if !cell.isOpened {
		return grid.OpenCell(pos)
	}
	if cell.adjacentMines == 0 || grid.countFlaggedNeighbors(pos) != cell.adjacentMines {
		return false, nil
	}

	seeds := grid.closedNeighbors(pos)
	if len(seeds) == 0 {
		return false, nil
	}
	return grid.reveal(seeds), nil
}

// PressPreview lists the cells a press on pos would act on, without
// changing anything.
func (grid *Grid) PressPreview(pos Pos) ([]Pos, error) {
	if err := grid.checkPosition(pos); err != nil {
		return nil, err
	}

	cell := grid.cellAt(pos)
	switch {
	case !cell.isOpened:
		return []Pos{pos}, nil
	case cell.adjacentMines > 0:
		return grid.closedNeighbors(pos), nil
	default:
		return []Pos{}, nil
	}
}

// CheckAllMinesFlagged reports whether the flagged cells are exactly the
// mine cells.
func (grid *Grid) CheckAllMinesFlagged() bool {
	return grid.flags.Equal(grid.mines)
}

// OnCellsChange subscribes to batches of changed cells. The slice is shared
// between subscribers and must not be modified.
func (grid *Grid) OnCellsChange(fn func([]Cell)) *event.Subscription {
	return grid.cellsChanged.Subscribe(fn)
}

// OnProgress subscribes to the flag count after each flag toggle.
func (grid *Grid) OnProgress(fn func(int)) *event.Subscription {
	return grid.progress.Subscribe(fn)
}

// OnFailState subscribes to the board summary emitted when a mine is opened.
func (grid *Grid) OnFailState(fn func(FailState)) *event.Subscription {
	return grid.failed.Subscribe(fn)
}

// reveal floods from seeds and emits the outcome. It reports whether any
// cell was opened.
func (grid *Grid) reveal(seeds []Pos) bool {
	var changed []Cell
	var triggered *Cell
	var wrongFlags []Cell

	flood(
		seeds,
		func(pos Pos) bool {
			cell := grid.cellAt(pos)
			// Correctly flagged mines survive a cascading chord
			if cell.isOpened || (cell.hasMine && cell.isFlagged) {
				return false
			}

			cell.isOpened = true
			if cell.isFlagged {
				cell.isFlagged = false
				grid.flags.Remove(pos)
				grid.flagCount--
			}
			grid.openedCellCount++
			changed = append(changed, *cell)

			if cell.hasMine {
				if triggered == nil {
					wrongFlags = grid.sortedCells(grid.flags.Difference(grid.mines))
				}
				mine := *cell
				triggered = &mine
				return false
			}
			return cell.adjacentMines == 0
		},
		grid.neighbors,
	)

	if len(changed) == 0 {
		return false
	}

	grid.cellsChanged.Publish(changed)
	if triggered != nil {
		grid.failed.Publish(grid.failState(*triggered, wrongFlags))
	}
	return true
}

func (grid *Grid) failState(triggered Cell, wrongFlags []Cell) FailState {
	return FailState{
		Triggered:  triggered,
		Mines:      grid.sortedCells(grid.mines),
		WrongFlags: wrongFlags,
	}
}

func (grid *Grid) sortedCells(positions collections.Set[Pos]) []Cell {
	indexes := make([]int, 0, positions.Len())
	for pos := range positions {
		indexes = append(indexes, grid.index(pos))
	}
	sort.Ints(indexes)

	cells := make([]Cell, len(indexes))
	for i, idx := range indexes {
		cells[i] = grid.cells[idx]
	}
	return cells
}

func (grid *Grid) countFlaggedNeighbors(pos Pos) int {
	count := 0
	for _, neighbor := range grid.neighbors(pos) {
		if grid.cellAt(neighbor).isFlagged {
			count++
		}
	}
	return count
}

func (grid *Grid) closedNeighbors(pos Pos) []Pos {
	closed := make([]Pos, 0, 8)
	for _, neighbor := range grid.neighbors(pos) {
		cell := grid.cellAt(neighbor)
		if !cell.isOpened && !cell.isFlagged {
			closed = append(closed, neighbor)
		}
	}
	return closed
}

var neighborOffsets = [8]Pos{
	{-1, -1}, {0, -1}, {1, -1},
	{-1, 0}, {1, 0},
	{-1, 1}, {0, 1}, {1, 1},
}

// neighbors returns the in-bounds Moore neighborhood of pos.
func (grid *Grid) neighbors(pos Pos) []Pos {
	neighbors := make([]Pos, 0, len(neighborOffsets))
	for _, offset := range neighborOffsets {
		neighbor := Pos{pos.X + offset.X, pos.Y + offset.Y}
		if grid.inBounds(neighbor) {
			neighbors = append(neighbors, neighbor)
		}
	}
	return neighbors
}

func (grid *Grid) inBounds(pos Pos) bool {
	return pos.X >= 0 && pos.Y >= 0 && pos.X < grid.width && pos.Y < grid.height
}

func (grid *Grid) checkPosition(pos Pos) error {
	if !grid.inBounds(pos) {
		return &PositionError{Pos: pos, Width: grid.width, Height: grid.height}
	}
	return nil
}

func (grid *Grid) index(pos Pos) int {
	return pos.Y*grid.width + pos.X
}

func (grid *Grid) cellAt(pos Pos) *Cell {
	return &grid.cells[grid.index(pos)]
}
