package grid

import (
	"bufio"
	"fmt"
	"io"
	"strings"
)

// Grid is a rectangular, read-only array of cell symbols.
type Grid struct {
	width  int
	height int
	cells  []Symbol // row-major, len == width*height
}

// New builds a Grid from equal-length rows of symbol characters.
func New(rows []string) (*Grid, error) {
	if len(rows) == 0 {
		return nil, &MalformedGridError{Row: -1, Col: -1, Reason: "no rows"}
	}
	width := len(rows[0])
	if width == 0 {
		return nil, &MalformedGridError{Row: 0, Col: -1, Reason: "empty row"}
	}

	cells := make([]Symbol, 0, width*len(rows))
	for y, row := range rows {
		if len(row) != width {
			return nil, &MalformedGridError{
				Row:    y,
				Col:    -1,
				Reason: fmt.Sprintf("length %d differs from first row length %d", len(row), width),
			}
		}
		for x := 0; x < width; x++ {
			sym, ok := SymbolFromByte(row[x])
			if !ok {
				return nil, &MalformedGridError{
					Row:    y,
					Col:    x,
					Reason: fmt.Sprintf("unrecognized symbol %q", row[x]),
				}
			}
			cells = append(cells, sym)
		}
	}

	return &Grid{width: width, height: len(rows), cells: cells}, nil
}

// Parse reads a grid from text, one row per line. Carriage returns and
// trailing blank lines are ignored.
func Parse(r io.Reader) (*Grid, error) {
	var rows []string
	sc := bufio.NewScanner(r)
	sc.Buffer(make([]byte, 0, 64*1024), 1024*1024)
	for sc.Scan() {
		rows = append(rows, strings.TrimRight(sc.Text(), "\r"))
	}
	if err := sc.Err(); err != nil {
		return nil, fmt.Errorf("failed to read grid: %w", err)
	}
	for len(rows) > 0 && rows[len(rows)-1] == "" {
		rows = rows[:len(rows)-1]
	}
	return New(rows)
}

// Dimensions returns the width and height of the grid.
func (g *Grid) Dimensions() (width, height int) {
	return g.width, g.height
}

func (g *Grid) Width() int  { return g.width }
func (g *Grid) Height() int { return g.height }

// Size returns the number of cells.
func (g *Grid) Size() int {
	return len(g.cells)
}

// InBounds reports whether (x, y) lies on the grid.
func (g *Grid) InBounds(x, y int) bool {
	return x >= 0 && x < g.width && y >= 0 && y < g.height
}

// SymbolAt returns the symbol at (x, y). The caller must ensure the
// coordinates are in bounds.
func (g *Grid) SymbolAt(x, y int) Symbol {
	return g.cells[y*g.width+x]
}

// Index returns the row-major index of an in-bounds point.
func (g *Grid) Index(p Point) int {
	return p.Y*g.width + p.X
}

// Neighbor steps once from p in direction d. The boolean is false when the
// step leaves the grid.
func (g *Grid) Neighbor(p Point, d Direction) (Point, bool) {
	n := p.Step(d)
	return n, g.InBounds(n.X, n.Y)
}

// Rows renders the grid back into its text rows.
func (g *Grid) Rows() []string {
	rows := make([]string, g.height)
	buf := make([]byte, g.width)
	for y := 0; y < g.height; y++ {
		for x := 0; x < g.width; x++ {
			buf[x] = g.SymbolAt(x, y).Byte()
		}
		rows[y] = string(buf)
	}
	return rows
}

func (g *Grid) String() string {
	return strings.Join(g.Rows(), "\n")
}
