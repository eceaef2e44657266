package game

import (
	"strings"

	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

// Snapshot is a textual picture of a board, one character per cell:
//
//	#  closed      .  opened      f  flagged without a mine
//	O  mine        F  flagged mine  *  opened mine
type Snapshot struct {
	Seed  int64  `yaml:"seed"`
	Board string `yaml:"board"`
}

// CellSource is anything exposing a board's cells, such as a Grid or Game.
type CellSource interface {
	Width() int
	Height() int
	Cells() []Cell
}

// TakeSnapshot pictures the current cells of source.
func TakeSnapshot(source CellSource, seed int64) *Snapshot {
	var board strings.Builder
	width := source.Width()

	for i, cell := range source.Cells() {
		if i > 0 && i%width == 0 {
			board.WriteString("\n")
		}
		board.WriteString(cell.serialize())
	}

	return &Snapshot{Seed: seed, Board: board.String()}
}

func (snapshot *Snapshot) Serialize() (string, error) {
	out, err := yaml.Marshal(snapshot)
	if err != nil {
		return "", errors.Wrap(err, "marshal snapshot")
	}
	return string(out), nil
}

func LoadSnapshot(in string) (*Snapshot, error) {
	var snapshot Snapshot
	if err := yaml.Unmarshal([]byte(in), &snapshot); err != nil {
		return nil, errors.Wrap(err, "unmarshal snapshot")
	}
	if _, err := snapshot.rows(); err != nil {
		return nil, err
	}
	return &snapshot, nil
}

// Mines lists the mine positions of the board, in row-major order.
func (snapshot *Snapshot) Mines() ([]Pos, error) {
	rows, err := snapshot.rows()
	if err != nil {
		return nil, err
	}

	var mines []Pos
	for y, row := range rows {
		for x, c := range row {
			switch c {
			case '*', 'F', 'O':
				mines = append(mines, Pos{X: x, Y: y})
			}
		}
	}
	return mines, nil
}

// GameConfig builds a config whose grid holds exactly the pictured mines.
// Only mine placement is taken from the picture; every cell starts closed.
func (snapshot *Snapshot) GameConfig() (GameConfig, error) {
	rows, err := snapshot.rows()
	if err != nil {
		return GameConfig{}, err
	}
	mines, err := snapshot.Mines()
	if err != nil {
		return GameConfig{}, err
	}
	if len(mines) == 0 {
		return GameConfig{}, errors.New("snapshot board has no mines")
	}

	config := NewGameConfig()
	config.Grid = GridConfig{
		Width:  len(rows[0]),
		Height: len(rows),
		Mines:  len(mines),
	}
	config.Seed = snapshot.Seed
	config.Placer = FixedPlacer(mines)
	return config, nil
}

func (snapshot *Snapshot) rows() ([]string, error) {
	board := strings.TrimSpace(snapshot.Board)
	if board == "" {
		return nil, errors.New("snapshot board is empty")
	}

	rows := strings.Split(board, "\n")
	for y, row := range rows {
		row = strings.TrimSpace(row)
		rows[y] = row

		if len(row) != len(rows[0]) {
			return nil, errors.Errorf("snapshot row %d has %d cells, want %d", y, len(row), len(rows[0]))
		}
		if i := strings.IndexFunc(row, func(c rune) bool { return !strings.ContainsRune("#.fOF*", c) }); i >= 0 {
			return nil, errors.Errorf("snapshot row %d has unknown cell %q", y, row[i])
		}
	}
	return rows, nil
}
