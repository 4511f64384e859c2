package grid

import (
	"fmt"
	"strings"
)

// Direction is the heading of a beam.
type Direction uint8

const (
	Up Direction = iota
	Down
	Left
	Right
)

// NumDirections is the number of distinct Direction values.
const NumDirections = 4

// Directions lists every direction in declaration order.
var Directions = [NumDirections]Direction{Up, Down, Left, Right}

var directionNames = [NumDirections]string{"up", "down", "left", "right"}

// Valid reports whether d is one of the four declared directions.
func (d Direction) Valid() bool {
	return d < NumDirections
}

// Delta returns the unit step for d.
func (d Direction) Delta() (dx, dy int) {
	switch d {
	case Up:
		return 0, -1
	case Down:
		return 0, 1
	case Left:
		return -1, 0
	case Right:
		return 1, 0
	}
	return 0, 0
}

// Opposite returns the direction pointing the other way.
func (d Direction) Opposite() Direction {
	switch d {
	case Up:
		return Down
	case Down:
		return Up
	case Left:
		return Right
	default:
		return Left
	}
}

func (d Direction) String() string {
	if !d.Valid() {
		return fmt.Sprintf("direction(%d)", uint8(d))
	}
	return directionNames[d]
}

// ParseDirection is the inverse of Direction.String. Matching is
// case-insensitive.
func ParseDirection(s string) (Direction, error) {
	name := strings.ToLower(strings.TrimSpace(s))
	for i, n := range directionNames {
		if n == name {
			return Direction(i), nil
		}
	}
	return 0, fmt.Errorf("unknown direction %q", s)
}

// Point is a cell coordinate.
type Point struct {
	X, Y int
}

// Step returns the point one cell away in direction d. The result may lie
// outside any grid.
func (p Point) Step(d Direction) Point {
	dx, dy := d.Delta()
	return Point{X: p.X + dx, Y: p.Y + dy}
}

func (p Point) String() string {
	return fmt.Sprintf("(%d,%d)", p.X, p.Y)
}
