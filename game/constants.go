package game

// CellState is how a presentation layer should draw a cell.
type CellState int

// State is the overall progress of a Game.
type State int

const (
	Unrevealed CellState = iota - 1
	Empty
	Number1
	Number2
	Number3
	Number4
	Number5
	Number6
	Number7
	Number8
	Flag
	FlagWrong
	Mine
	MineUnrevealed
	MineLosing
)

var CellStates = []CellState{
	Unrevealed,
	Empty,
	Number1,
	Number2,
	Number3,
	Number4,
	Number5,
	Number6,
	Number7,
	Number8,
	Flag,
	FlagWrong,
	Mine,
	MineUnrevealed,
	MineLosing,
}

const (
	NotStarted State = iota
	InProgress
	Won
	Lost
)

func (state State) String() string {
	switch state {
	case NotStarted:
		return "not started"
	case InProgress:
		return "in progress"
	case Won:
		return "won"
	case Lost:
		return "lost"
	default:
		return "unknown"
	}
}

// IsEnd reports whether the state is terminal until the next reset.
func (state State) IsEnd() bool {
	return state == Won || state == Lost
}
