package beam

import (
	"testing"

	"github.com/specialistvlad/beamgrid/internal/grid"
	"github.com/stretchr/testify/assert"
)

func TestOutgoing(t *testing.T) {
	type dirs = []grid.Direction
	U, D, L, R := grid.Up, grid.Down, grid.Left, grid.Right

	testCases := []struct {
		sym  grid.Symbol
		in   grid.Direction
		want dirs
	}{
		{grid.Empty, U, dirs{U}},
		{grid.Empty, D, dirs{D}},
		{grid.Empty, L, dirs{L}},
		{grid.Empty, R, dirs{R}},

		{grid.MirrorForward, U, dirs{R}},
		{grid.MirrorForward, D, dirs{L}},
		{grid.MirrorForward, L, dirs{D}},
		{grid.MirrorForward, R, dirs{U}},

		{grid.MirrorBackward, U, dirs{L}},
		{grid.MirrorBackward, D, dirs{R}},
		{grid.MirrorBackward, L, dirs{U}},
		{grid.MirrorBackward, R, dirs{D}},

		{grid.SplitterVertical, U, dirs{U}},
		{grid.SplitterVertical, D, dirs{D}},
		{grid.SplitterVertical, L, dirs{U, D}},
		{grid.SplitterVertical, R, dirs{U, D}},

		{grid.SplitterHorizontal, U, dirs{L, R}},
		{grid.SplitterHorizontal, D, dirs{L, R}},
		{grid.SplitterHorizontal, L, dirs{L}},
		{grid.SplitterHorizontal, R, dirs{R}},
	}

	for _, tc := range testCases {
		t.Run(tc.sym.String()+"/"+tc.in.String(), func(t *testing.T) {
			assert.Equal(t, tc.want, Outgoing(tc.sym, tc.in))
		})
	}
}

func TestOutgoing_Unknown(t *testing.T) {
	assert.Nil(t, Outgoing(grid.Symbol(42), grid.Up))
	assert.Nil(t, Outgoing(grid.Empty, grid.Direction(42)))
}

func TestState_String(t *testing.T) {
	assert.Equal(t, "3,4:up", NewState(3, 4, grid.Up).String())
}
