package entryid

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"

	"github.com/specialistvlad/beamgrid/internal/beam"
	"github.com/specialistvlad/beamgrid/internal/grid"
)

var (
	// edgeRegex matches `name[index]`.
	edgeRegex = regexp.MustCompile(`^([a-z]+)\[(\d+)\]$`)
	// explicitRegex matches `x,y:direction`.
	explicitRegex = regexp.MustCompile(`^(\d+)\s*,\s*(\d+)\s*:\s*([a-z]+)$`)
)

// Parse creates an ID from its textual form. Matching is case-insensitive.
func Parse(raw string) (*ID, error) {
	s := strings.ToLower(strings.TrimSpace(raw))
	if s == "" {
		return nil, fmt.Errorf("entry identifier cannot be empty")
	}

	if m := edgeRegex.FindStringSubmatch(s); m != nil {
		edge := EdgeNone
		for e, name := range edgeNames {
			if name == m[1] {
				edge = e
			}
		}
		if edge == EdgeNone {
			return nil, fmt.Errorf("unknown edge %q in entry %q", m[1], raw)
		}
		index, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid index in entry %q: %w", raw, err)
		}
		return &ID{Edge: edge, Index: index}, nil
	}

	if m := explicitRegex.FindStringSubmatch(s); m != nil {
		x, err := strconv.Atoi(m[1])
		if err != nil {
			return nil, fmt.Errorf("invalid x in entry %q: %w", raw, err)
		}
		y, err := strconv.Atoi(m[2])
		if err != nil {
			return nil, fmt.Errorf("invalid y in entry %q: %w", raw, err)
		}
		dir, err := grid.ParseDirection(m[3])
		if err != nil {
			return nil, fmt.Errorf("invalid entry %q: %w", raw, err)
		}
		return &ID{Edge: EdgeNone, Index: -1, Pos: grid.Point{X: x, Y: y}, Dir: dir}, nil
	}

	return nil, fmt.Errorf("invalid entry format %q: want edge[index] or x,y:direction", raw)
}

// State converts the identifier into a beam state on g without checking
// bounds.
func (id *ID) State(g *grid.Grid) beam.State {
	w, h := g.Dimensions()
	switch id.Edge {
	case EdgeTop:
		return beam.NewState(id.Index, 0, grid.Down)
	case EdgeBottom:
		return beam.NewState(id.Index, h-1, grid.Up)
	case EdgeLeft:
		return beam.NewState(0, id.Index, grid.Right)
	case EdgeRight:
		return beam.NewState(w-1, id.Index, grid.Left)
	}
	return beam.State{Pos: id.Pos, Dir: id.Dir}
}

// Resolve converts the identifier into a beam state on g. Positions off the
// grid yield a *beam.InvalidEntryStateError.
func (id *ID) Resolve(g *grid.Grid) (beam.State, error) {
	s := id.State(g)
	if err := beam.ValidateEntry(g, s); err != nil {
		return beam.State{}, fmt.Errorf("entry %s: %w", id, err)
	}
	return s, nil
}

// ParseAndResolve is Parse followed by Resolve.
func ParseAndResolve(raw string, g *grid.Grid) (beam.State, error) {
	id, err := Parse(raw)
	if err != nil {
		return beam.State{}, err
	}
	return id.Resolve(g)
}

// Format renders s in edge form when it enters from the boundary and in
// explicit form otherwise.
func Format(g *grid.Grid, s beam.State) string {
	w, h := g.Dimensions()
	switch {
	case s.Dir == grid.Down && s.Pos.Y == 0:
		return (&ID{Edge: EdgeTop, Index: s.Pos.X}).String()
	case s.Dir == grid.Up && s.Pos.Y == h-1:
		return (&ID{Edge: EdgeBottom, Index: s.Pos.X}).String()
	case s.Dir == grid.Right && s.Pos.X == 0:
		return (&ID{Edge: EdgeLeft, Index: s.Pos.Y}).String()
	case s.Dir == grid.Left && s.Pos.X == w-1:
		return (&ID{Edge: EdgeRight, Index: s.Pos.Y}).String()
	}
	return s.String()
}
