// Package entryid parses and formats the textual form of beam entry states
// used by the CLI and plan files.
//
// Two forms are accepted:
//
//	top[3]     boundary entry: the 4th cell of the top row, heading down
//	7,2:left   explicit state: cell (7,2), heading left
//
// Edge entries always face into the grid: top heads down, bottom heads up,
// left heads right and right heads left. Parsing is purely syntactic; an ID is
// checked against a concrete grid by Resolve.
package entryid

import (
	"fmt"

	"github.com/specialistvlad/beamgrid/internal/grid"
)

// Edge names a side of the grid.
type Edge uint8

const (
	// EdgeNone marks an explicit x,y:dir identifier.
	EdgeNone Edge = iota
	EdgeTop
	EdgeRight
	EdgeBottom
	EdgeLeft
)

var edgeNames = map[Edge]string{
	EdgeTop:    "top",
	EdgeRight:  "right",
	EdgeBottom: "bottom",
	EdgeLeft:   "left",
}

func (e Edge) String() string {
	if name, ok := edgeNames[e]; ok {
		return name
	}
	return "none"
}

// Inward returns the direction a beam entering through e travels in.
func (e Edge) Inward() grid.Direction {
	switch e {
	case EdgeTop:
		return grid.Down
	case EdgeBottom:
		return grid.Up
	case EdgeLeft:
		return grid.Right
	default:
		return grid.Left
	}
}

// Default is the entry used when none is given: the top-left cell heading
// right.
const Default = "left[0]"

// ID is the structured form of an entry identifier.
type ID struct {
	Edge  Edge
	Index int // position along Edge; -1 for explicit identifiers

	// Pos and Dir are only meaningful when Edge is EdgeNone.
	Pos grid.Point
	Dir grid.Direction
}

// HasEdge reports whether the identifier names a boundary entry.
func (id *ID) HasEdge() bool {
	return id.Edge != EdgeNone
}

func (id *ID) String() string {
	if id.HasEdge() {
		return fmt.Sprintf("%s[%d]", id.Edge, id.Index)
	}
	return fmt.Sprintf("%d,%d:%s", id.Pos.X, id.Pos.Y, id.Dir)
}
