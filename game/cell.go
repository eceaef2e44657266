package game

import "fmt"

// Pos identifies a cell by column (X) and row (Y), both zero-based.
type Pos struct {
	X, Y int
}

func (pos Pos) String() string {
	return fmt.Sprintf("(%d, %d)", pos.X, pos.Y)
}

// Cell is a copy of one grid cell. The Grid owns the real cells; values
// handed out by queries and events never alias them.
type Cell struct {
	pos           Pos
	adjacentMines int

	hasMine, isOpened, isFlagged bool
}

func (cell Cell) String() string {
	return fmt.Sprintf("Cell(%v, %v)", cell.pos.X, cell.pos.Y)
}

func (cell Cell) Pos() Pos {
	return cell.pos
}

func (cell Cell) HasMine() bool {
	return cell.hasMine
}

func (cell Cell) IsOpened() bool {
	return cell.isOpened
}

func (cell Cell) IsFlagged() bool {
	return cell.isFlagged
}

// AdjacentMines is the number of mines among the up to 8 surrounding cells.
func (cell Cell) AdjacentMines() int {
	return cell.adjacentMines
}

// State is the cell's appearance while the game is being played.
func (cell Cell) State() CellState {
	switch {
	case cell.isOpened && cell.hasMine:
		return MineLosing
	case cell.isOpened:
		return CellState(cell.adjacentMines)
	case cell.isFlagged:
		return Flag
	default:
		return Unrevealed
	}
}

// EndState is the cell's appearance once the game was lost: wrong flags and
// hidden mines are exposed.
func (cell Cell) EndState() CellState {
	switch {
	case cell.isFlagged && !cell.hasMine:
		return FlagWrong
	case cell.isFlagged:
		return Flag
	case cell.hasMine && !cell.isOpened:
		return MineUnrevealed
	default:
		return cell.State()
	}
}

func (cell *Cell) clear() {
	cell.hasMine = false
	cell.isOpened = false
	cell.isFlagged = false
	cell.adjacentMines = 0
}

func (cell Cell) serialize() string {
	switch {
	case cell.hasMine:
		switch {
		case cell.isOpened:
			return "*"
		case cell.isFlagged:
			return "F"
		default:
			return "O"
		}
	case cell.isFlagged:
		return "f"
	case cell.isOpened:
		return "."
	default:
		return "#"
	}
}
