package cmd

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/faiface/pixel"

	"github.com/they4kman/sweepcore/game"
	"github.com/they4kman/sweepcore/viewport"
)

// cellWidth is the side of a cell, in pixels, for click coordinates
const cellWidth = 16

var cellGlyphs = map[game.CellState]byte{
	game.Unrevealed:     '#',
	game.Empty:          '.',
	game.Number1:        '1',
	game.Number2:        '2',
	game.Number3:        '3',
	game.Number4:        '4',
	game.Number5:        '5',
	game.Number6:        '6',
	game.Number7:        '7',
	game.Number8:        '8',
	game.Flag:           'F',
	game.FlagWrong:      'x',
	game.Mine:           '*',
	game.MineUnrevealed: 'o',
	game.MineLosing:     '@',
}

const sessionHelp = `commands:
  open X Y     (o)  open a cell, or chord an opened number
  flag X Y     (f)  toggle a flag
  chord X Y    (c)  open the neighbors of a satisfied number
  click PX PY [left|right|middle]
                    press at a pixel of a board drawn with 16px cells,
                    origin at the bottom-left corner
  preview X Y  (p)  list the cells a press would act on
  show         (s)  print the board
  snapshot          print the board as a YAML layout
  reset        (r)  start over
  quit         (q)
`

// session is a line-based presentation layer over a Game.
type session struct {
	game *game.Game
	view viewport.Viewport
	in   *bufio.Scanner
	out  io.Writer
}

func newSession(g *game.Game, in io.Reader, out io.Writer) *session {
	s := &session{
		game: g,
		view: viewport.Fit(pixel.ZV, cellWidth, g.Width(), g.Height()),
		in:   bufio.NewScanner(in),
		out:  out,
	}

	g.OnStateChange(func(state game.State) {
		switch state {
		case game.Won:
			fmt.Fprintf(s.out, "WIN! cleared in %ds\n", g.Elapsed())
		case game.Lost:
			fmt.Fprintf(s.out, "LOSE :( after %ds\n", g.Elapsed())
		}
	})
	g.OnFailState(func(fail game.FailState) {
		fmt.Fprintf(s.out, "mine at %s, %d mines in total, %d wrong flags\n",
			fail.Triggered.Pos(), len(fail.Mines), len(fail.WrongFlags))
	})

	return s
}

// Watch prints the board after every change, for unattended play.
func (s *session) Watch() {
	s.game.OnCellsChange(func([]game.Cell) {
		s.PrintBoard()
	})
}

func (s *session) Run() error {
	s.PrintBoard()
	fmt.Fprint(s.out, "> ")

	for s.in.Scan() {
		quit, err := s.handle(strings.Fields(s.in.Text()))
		if err != nil {
			fmt.Fprintln(s.out, err)
		}
		if quit {
			return nil
		}
		fmt.Fprint(s.out, "> ")
	}
	return s.in.Err()
}

func (s *session) handle(fields []string) (quit bool, err error) {
	if len(fields) == 0 {
		return false, nil
	}

	var move func(game.Pos) (bool, error)
	switch fields[0] {
	case "q", "quit":
		return true, nil
	case "s", "show":
		s.PrintBoard()
		return false, nil
	case "r", "reset":
		s.game.Reset()
		s.PrintBoard()
		return false, nil
	case "snapshot":
		out, err := game.TakeSnapshot(s.game, s.game.Seed()).Serialize()
		if err != nil {
			return false, err
		}
		fmt.Fprint(s.out, out)
		return false, nil
	case "p", "preview":
		pos, err := parsePos(fields[1:])
		if err != nil {
			return false, err
		}
		preview, err := s.game.PressPreview(pos)
		if err != nil {
			return false, err
		}
		fmt.Fprintln(s.out, preview)
		return false, nil
	case "o", "open":
		move = s.game.OpenCell
	case "f", "flag":
		move = s.game.FlagCell
	case "c", "chord":
		move = s.game.RevealAdjacentCells
	case "click":
		pos, move, err := s.click(fields[1:])
		if err != nil {
			return false, err
		}
		return false, s.play(move, pos)
	default:
		fmt.Fprint(s.out, sessionHelp)
		return false, nil
	}

	pos, err := parsePos(fields[1:])
	if err != nil {
		return false, err
	}
	return false, s.play(move, pos)
}

func (s *session) play(move func(game.Pos) (bool, error), pos game.Pos) error {
	changed, err := move(pos)
	if err != nil {
		return err
	}
	if changed {
		s.PrintBoard()
	}
	return nil
}

// click maps a pointer press to the cell under it and the move its button
// makes, like a mouse on the drawn board.
func (s *session) click(args []string) (game.Pos, func(game.Pos) (bool, error), error) {
	if len(args) != 2 && len(args) != 3 {
		return game.Pos{}, nil, fmt.Errorf("expected PX PY [left|right|middle]")
	}
	px, err := strconv.ParseFloat(args[0], 64)
	if err != nil {
		return game.Pos{}, nil, fmt.Errorf("invalid PX %q", args[0])
	}
	py, err := strconv.ParseFloat(args[1], 64)
	if err != nil {
		return game.Pos{}, nil, fmt.Errorf("invalid PY %q", args[1])
	}

	button := "left"
	if len(args) == 3 {
		button = args[2]
	}
	var move func(game.Pos) (bool, error)
	switch button {
	case "left":
		move = s.game.OpenCell
	case "right":
		move = s.game.FlagCell
	case "middle":
		move = s.game.RevealAdjacentCells
	default:
		return game.Pos{}, nil, fmt.Errorf("unknown button %q", button)
	}

	pos, ok := s.view.PosAt(pixel.V(px, py))
	if !ok {
		return game.Pos{}, nil, fmt.Errorf("point (%v, %v) is outside the board", px, py)
	}
	return pos, move, nil
}

func parsePos(args []string) (game.Pos, error) {
	if len(args) != 2 {
		return game.Pos{}, fmt.Errorf("expected X Y")
	}
	x, err := strconv.Atoi(args[0])
	if err != nil {
		return game.Pos{}, fmt.Errorf("invalid X %q", args[0])
	}
	y, err := strconv.Atoi(args[1])
	if err != nil {
		return game.Pos{}, fmt.Errorf("invalid Y %q", args[1])
	}
	return game.Pos{X: x, Y: y}, nil
}

func (s *session) PrintBoard() {
	fmt.Fprint(s.out, renderBoard(s.game))
}

func renderBoard(g *game.Game) string {
	var board strings.Builder
	fmt.Fprintf(&board, "%03d   %s   %03ds\n", g.MineCount()-g.FlagCount(), g.State(), g.Elapsed())

	lost := g.State() == game.Lost
	for i, cell := range g.Cells() {
		state := cell.State()
		if lost {
			state = cell.EndState()
		}
		board.WriteByte(cellGlyphs[state])

		if (i+1)%g.Width() == 0 {
			board.WriteByte('\n')
		}
	}
	return board.String()
}
