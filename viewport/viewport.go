// Package viewport maps between pixel-space points and grid positions for
// presentation layers drawing a board with square cells. Coordinates are
// y-up, as in pixel, with row 0 of the grid drawn at the top.
package viewport

import (
	"math"

	"github.com/faiface/pixel"

	"github.com/they4kman/sweepcore/game"
)

type Viewport struct {
	// Bounds is the area the board is drawn into
	Bounds pixel.Rect
	// CellWidth is the side of one square cell
	CellWidth float64

	Width, Height int // in number of cells
}

// Fit returns a Viewport for a width×height board whose bottom-left corner
// is at origin.
func Fit(origin pixel.Vec, cellWidth float64, width, height int) Viewport {
	size := pixel.V(cellWidth*float64(width), cellWidth*float64(height))
	return Viewport{
		Bounds:    pixel.R(origin.X, origin.Y, origin.X+size.X, origin.Y+size.Y),
		CellWidth: cellWidth,
		Width:     width,
		Height:    height,
	}
}

// PosAt returns the grid position under point, and false when point falls
// outside the board.
func (view Viewport) PosAt(point pixel.Vec) (game.Pos, bool) {
	if !view.Bounds.Contains(point) {
		return game.Pos{}, false
	}

	rel := point.Sub(view.Bounds.Min)
	x := int(math.Floor(rel.X / view.CellWidth))
	y := view.Height - int(math.Floor(rel.Y/view.CellWidth)) - 1

	// Contains includes the max edges
	if x >= view.Width || y < 0 {
		return game.Pos{}, false
	}
	return game.Pos{X: x, Y: y}, true
}

// CellRect is the area covered by the cell at pos.
func (view Viewport) CellRect(pos game.Pos) pixel.Rect {
	corner := view.Bounds.Min.Add(pixel.V(
		view.CellWidth*float64(pos.X),
		view.CellWidth*float64(view.Height-pos.Y-1),
	))
	return pixel.Rect{Min: corner, Max: corner.Add(pixel.V(view.CellWidth, view.CellWidth))}
}

// CellCenter is the midpoint of the cell at pos, where sprites are drawn.
func (view Viewport) CellCenter(pos game.Pos) pixel.Vec {
	return view.CellRect(pos).Center()
}
