package beam

import "github.com/specialistvlad/beamgrid/internal/grid"

var (
	up    = []grid.Direction{grid.Up}
	down  = []grid.Direction{grid.Down}
	left  = []grid.Direction{grid.Left}
	right = []grid.Direction{grid.Right}

	upDown    = []grid.Direction{grid.Up, grid.Down}
	leftRight = []grid.Direction{grid.Left, grid.Right}
)

// reflections is indexed by [symbol][incoming direction]. Columns follow the
// declaration order of grid.Direction: Up, Down, Left, Right.
var reflections = [grid.NumSymbols][grid.NumDirections][]grid.Direction{
	grid.Empty:              {up, down, left, right},
	grid.MirrorForward:      {right, left, down, up},
	grid.MirrorBackward:     {left, right, up, down},
	grid.SplitterVertical:   {up, down, upDown, upDown},
	grid.SplitterHorizontal: {leftRight, leftRight, left, right},
}

// Outgoing returns the directions a beam leaves a cell of the given symbol
// in when it arrives travelling in direction in. The returned slice is shared
// and must not be modified.
func Outgoing(sym grid.Symbol, in grid.Direction) []grid.Direction {
	if sym >= grid.NumSymbols || !in.Valid() {
		return nil
	}
	return reflections[sym][in]
}
