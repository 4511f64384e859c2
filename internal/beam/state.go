// Package beam propagates a beam of light through a grid and reports the
// cells it energizes.
//
// A run is a state-space traversal over (position, direction) pairs. Two
// beams in the same state behave identically forever after, so each state is
// processed at most once; this is what lets beams caught in mirror loops
// terminate. The state space is bounded by 4*width*height.
package beam

import (
	"fmt"

	"github.com/specialistvlad/beamgrid/internal/grid"
)

// State is a beam's position and heading. It fully determines the beam's
// future on a fixed grid.
type State struct {
	Pos grid.Point
	Dir grid.Direction
}

// NewState is shorthand for State{Pos: grid.Point{X: x, Y: y}, Dir: d}.
func NewState(x, y int, d grid.Direction) State {
	return State{Pos: grid.Point{X: x, Y: y}, Dir: d}
}

func (s State) String() string {
	return fmt.Sprintf("%d,%d:%s", s.Pos.X, s.Pos.Y, s.Dir)
}
