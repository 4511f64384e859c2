package scanner

import (
	"github.com/specialistvlad/beamgrid/internal/beam"
	"github.com/specialistvlad/beamgrid/internal/grid"
)

// Entries enumerates every boundary entry of g, each with its single
// inward-facing direction. The walk is clockwise: the top row left to right
// (Down), the right column top to bottom (Left), the bottom row right to left
// (Up) and the left column bottom to top (Right). Corner cells appear once
// per incident edge, so the result always has 2*(width+height) entries.
func Entries(g *grid.Grid) []beam.State {
	w, h := g.Dimensions()
	entries := make([]beam.State, 0, 2*(w+h))
	for x := 0; x < w; x++ {
		entries = append(entries, beam.NewState(x, 0, grid.Down))
	}
	for y := 0; y < h; y++ {
		entries = append(entries, beam.NewState(w-1, y, grid.Left))
	}
	for x := w - 1; x >= 0; x-- {
		entries = append(entries, beam.NewState(x, h-1, grid.Up))
	}
	for y := h - 1; y >= 0; y-- {
		entries = append(entries, beam.NewState(0, y, grid.Right))
	}
	return entries
}

// IsBoundaryEntry reports whether s is one of the states produced by Entries.
func IsBoundaryEntry(g *grid.Grid, s beam.State) bool {
	w, h := g.Dimensions()
	if !g.InBounds(s.Pos.X, s.Pos.Y) {
		return false
	}
	switch s.Dir {
	case grid.Down:
		return s.Pos.Y == 0
	case grid.Up:
		return s.Pos.Y == h-1
	case grid.Right:
		return s.Pos.X == 0
	case grid.Left:
		return s.Pos.X == w-1
	}
	return false
}
