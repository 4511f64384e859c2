package beam

import (
	"errors"
	"math/rand"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/beamgrid/internal/grid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const contraption = `.|...\....
|.-.\.....
.....|-...
........|.
..........
.........\
..../.\\..
.-.-/..|..
.|....-|.\
..//.|....`

func mustGrid(t *testing.T, text string) *grid.Grid {
	t.Helper()
	g, err := grid.Parse(strings.NewReader(text))
	require.NoError(t, err)
	return g
}

func TestSimulate_Contraption(t *testing.T) {
	g := mustGrid(t, contraption)

	count, err := Simulate(g, NewState(0, 0, grid.Right))
	require.NoError(t, err)
	assert.Equal(t, 46, count)
}

func TestTrace_ContraptionEnergizedMap(t *testing.T) {
	g := mustGrid(t, contraption)
	want := []string{
		"######....",
		".#...#....",
		".#...#####",
		".#...##...",
		".#...##...",
		".#...##...",
		".#..####..",
		"########..",
		".#######..",
		".#...#.#..",
	}

	run, err := Trace(g, NewState(0, 0, grid.Right))
	require.NoError(t, err)

	got := make([]string, g.Height())
	for y := range got {
		var sb strings.Builder
		for x := 0; x < g.Width(); x++ {
			if run.IsEnergized(grid.Point{X: x, Y: y}) {
				sb.WriteByte('#')
			} else {
				sb.WriteByte('.')
			}
		}
		got[y] = sb.String()
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("energized map mismatch (-want +got):\n%s", diff)
	}
	assert.Len(t, run.EnergizedPoints(), 46)
}

func TestSimulate_EmptyGridRow(t *testing.T) {
	for _, dims := range [][2]int{{1, 1}, {5, 1}, {7, 3}, {12, 9}} {
		w, h := dims[0], dims[1]
		rows := make([]string, h)
		for i := range rows {
			rows[i] = strings.Repeat(".", w)
		}
		g, err := grid.New(rows)
		require.NoError(t, err)

		count, err := Simulate(g, NewState(0, 0, grid.Right))
		require.NoError(t, err)
		assert.Equal(t, w, count, "grid %dx%d", w, h)
	}
}

func TestSimulate_ClosedLoopsTerminate(t *testing.T) {
	testCases := []struct {
		name          string
		rows          []string
		entry         State
		wantEnergized int
		wantStates    int
	}{
		{
			name:          "two by two mirror ring",
			rows:          []string{`/\`, `\/`},
			entry:         NewState(0, 0, grid.Up),
			wantEnergized: 4,
			wantStates:    4,
		},
		{
			name:          "splitter feeding a mirror ring",
			rows:          []string{`/-\`, `|.|`, `\-/`},
			entry:         NewState(1, 1, grid.Right),
			wantEnergized: 9,
		},
		{
			name:          "splitter on a single row drops both beams",
			rows:          []string{`.|.|.`},
			entry:         NewState(0, 0, grid.Right),
			wantEnergized: 2,
			wantStates:    2,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g, err := grid.New(tc.rows)
			require.NoError(t, err)

			run, err := Trace(g, tc.entry)
			require.NoError(t, err)
			assert.Equal(t, tc.wantEnergized, run.Energized())
			assert.LessOrEqual(t, run.StatesVisited(), 4*g.Size())
			if tc.wantStates > 0 {
				assert.Equal(t, tc.wantStates, run.StatesVisited())
			}
		})
	}
}

func TestTrace_SplitterProducesTwoBeams(t *testing.T) {
	g, err := grid.New([]string{"...", ".|.", "..."})
	require.NoError(t, err)

	run, err := Trace(g, NewState(0, 1, grid.Right))
	require.NoError(t, err)

	assert.True(t, run.Visited(NewState(1, 0, grid.Up)))
	assert.True(t, run.Visited(NewState(1, 2, grid.Down)))
	assert.False(t, run.Visited(NewState(2, 1, grid.Right)), "beam must not pass through a splitter hit on its flat side")
	assert.Equal(t, 4, run.Energized())
	assert.Equal(t, []grid.Point{{X: 1, Y: 0}, {X: 0, Y: 1}, {X: 1, Y: 1}, {X: 1, Y: 2}}, run.EnergizedPoints())
}

func TestSimulate_InvalidEntry(t *testing.T) {
	g := mustGrid(t, contraption)

	for _, entry := range []State{
		NewState(-1, 0, grid.Right),
		NewState(0, -1, grid.Down),
		NewState(10, 0, grid.Left),
		NewState(0, 10, grid.Up),
		NewState(0, 0, grid.Direction(9)),
	} {
		count, err := Simulate(g, entry)
		require.Error(t, err, entry.String())
		assert.Zero(t, count)
		assert.True(t, errors.Is(err, ErrInvalidEntryState))

		var invalid *InvalidEntryStateError
		require.True(t, errors.As(err, &invalid))
		assert.Equal(t, entry, invalid.Entry)
	}
}

// referenceCount is a deliberately naive FIFO traversal keyed by a map, used
// to check that traversal order does not change the result.
func referenceCount(g *grid.Grid, entry State) (energized, states int) {
	visited := map[State]bool{}
	cells := map[grid.Point]bool{}
	queue := []State{entry}
	for len(queue) > 0 {
		s := queue[0]
		queue = queue[1:]
		if visited[s] {
			continue
		}
		visited[s] = true
		cells[s.Pos] = true
		for _, d := range Outgoing(g.SymbolAt(s.Pos.X, s.Pos.Y), s.Dir) {
			if n, ok := g.Neighbor(s.Pos, d); ok {
				queue = append(queue, State{Pos: n, Dir: d})
			}
		}
	}
	return len(cells), len(visited)
}

func randomGrid(rng *rand.Rand, w, h int) *grid.Grid {
	const alphabet = `......./\|-`
	rows := make([]string, h)
	for y := range rows {
		b := make([]byte, w)
		for x := range b {
			b[x] = alphabet[rng.Intn(len(alphabet))]
		}
		rows[y] = string(b)
	}
	g, err := grid.New(rows)
	if err != nil {
		panic(err)
	}
	return g
}

func TestSimulate_RandomGridProperties(t *testing.T) {
	rng := rand.New(rand.NewSource(16))

	for i := 0; i < 200; i++ {
		w, h := 1+rng.Intn(14), 1+rng.Intn(14)
		g := randomGrid(rng, w, h)
		entry := NewState(rng.Intn(w), rng.Intn(h), grid.Directions[rng.Intn(grid.NumDirections)])

		run, err := Trace(g, entry)
		require.NoError(t, err)

		assert.LessOrEqual(t, run.Energized(), w*h)
		assert.LessOrEqual(t, run.StatesVisited(), 4*w*h)
		assert.GreaterOrEqual(t, run.Energized(), 1)

		again, err := Simulate(g, entry)
		require.NoError(t, err)
		assert.Equal(t, run.Energized(), again, "simulation must be idempotent")

		wantCells, wantStates := referenceCount(g, entry)
		assert.Equal(t, wantCells, run.Energized(), "grid:\n%s\nentry %s", g, entry)
		assert.Equal(t, wantStates, run.StatesVisited())
	}
}
