package beam

import "github.com/specialistvlad/beamgrid/internal/grid"

// Run holds the outcome of one propagation. Each Run owns its visited set and
// frontier; nothing is shared with other runs except the read-only grid.
type Run struct {
	width     int
	seen      []uint8 // per cell, one bit per incoming direction
	visited   int
	energized int
}

// Simulate propagates a beam entering at entry and returns the number of
// energized cells.
func Simulate(g *grid.Grid, entry State) (int, error) {
	r, err := Trace(g, entry)
	if err != nil {
		return 0, err
	}
	return r.energized, nil
}

// Trace is like Simulate but returns the whole run.
func Trace(g *grid.Grid, entry State) (*Run, error) {
	if err := ValidateEntry(g, entry); err != nil {
		return nil, err
	}
	r := &Run{
		width: g.Width(),
		seen:  make([]uint8, g.Size()),
	}
	r.propagate(g, entry)
	return r, nil
}

// propagate drains a LIFO frontier. A state already in the visited set has
// been fully explored and is dropped, which bounds the loop by 4*w*h.
func (r *Run) propagate(g *grid.Grid, entry State) {
	frontier := make([]State, 0, 64)
	frontier = append(frontier, entry)

	for len(frontier) > 0 {
		s := frontier[len(frontier)-1]
		frontier = frontier[:len(frontier)-1]

		idx := g.Index(s.Pos)
		bit := uint8(1) << s.Dir
		if r.seen[idx]&bit != 0 {
			continue
		}
		if r.seen[idx] == 0 {
			r.energized++
		}
		r.seen[idx] |= bit
		r.visited++

		for _, out := range Outgoing(g.SymbolAt(s.Pos.X, s.Pos.Y), s.Dir) {
			if next, ok := g.Neighbor(s.Pos, out); ok {
				frontier = append(frontier, State{Pos: next, Dir: out})
			}
		}
	}
}

// Energized returns the number of distinct cells touched by the beam.
func (r *Run) Energized() int {
	return r.energized
}

// StatesVisited returns the number of distinct (position, direction) states
// processed.
func (r *Run) StatesVisited() int {
	return r.visited
}

// IsEnergized reports whether p was touched. Points off the grid report false.
func (r *Run) IsEnergized(p grid.Point) bool {
	if p.X < 0 || p.X >= r.width || p.Y < 0 {
		return false
	}
	idx := p.Y*r.width + p.X
	return idx < len(r.seen) && r.seen[idx] != 0
}

// Visited reports whether state s was processed during the run.
func (r *Run) Visited(s State) bool {
	if !s.Dir.Valid() || !r.IsEnergized(s.Pos) {
		return false
	}
	return r.seen[s.Pos.Y*r.width+s.Pos.X]&(uint8(1)<<s.Dir) != 0
}

// EnergizedPoints lists the energized cells in row-major order.
func (r *Run) EnergizedPoints() []grid.Point {
	points := make([]grid.Point, 0, r.energized)
	for idx, mask := range r.seen {
		if mask != 0 {
			points = append(points, grid.Point{X: idx % r.width, Y: idx / r.width})
		}
	}
	return points
}
