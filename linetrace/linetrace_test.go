package linetrace_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/linetrace"
	"github.com/katalvlaran/tileroute/world"
)

// TestTrace_Connectivity checks length, endpoints and 4-adjacency for a
// spread of directions.
func TestTrace_Connectivity(t *testing.T) {
	a := world.T(5, 5)
	for _, b := range []world.Tile{
		world.T(5, 5), world.T(12, 5), world.T(5, 0), world.T(9, 7),
		world.T(0, 0), world.T(2, 11), world.T(11, 2), world.T(8, 8),
	} {
		line := linetrace.Trace(a, b)
		require.Len(t, line, a.Manhattan(b)+1, "%s→%s", a, b)
		assert.Equal(t, a, line[0])
		assert.Equal(t, b, line[len(line)-1])
		for i := 1; i < len(line); i++ {
			require.True(t, line[i-1].Adjacent(line[i]), "%s→%s gap at %d", a, b, i)
		}
		assert.Len(t, linetrace.Trace(b, a), len(line), "reverse length")
	}
}

// TestTrace_Deterministic yields the same staircase on every call.
func TestTrace_Deterministic(t *testing.T) {
	want := []world.Tile{world.T(0, 0), world.T(0, 1), world.T(1, 1), world.T(1, 2), world.T(2, 2)}
	assert.Equal(t, want, linetrace.Trace(world.T(0, 0), world.T(2, 2)))
	assert.Equal(t, want, linetrace.Trace(world.T(0, 0), world.T(2, 2)))
}

// TestDecompose_OpenWater returns one span equal to the traced line.
func TestDecompose_OpenWater(t *testing.T) {
	g, err := gridworld.FromASCII([]string{
		"~~~~~~~~~~~~~~~~~~~~~~",
		"~~~~~~~~~~~~~~~~~~~~~~",
		"~~~~~~~~~~~~~~~~~~~~~~",
	}, gridworld.DefaultOptions())
	require.NoError(t, err)
	for _, pair := range [][2]world.Tile{
		{world.T(0, 1), world.T(19, 1)},
		{world.T(0, 0), world.T(21, 2)},
		{world.T(21, 0), world.T(3, 2)},
	} {
		src, dst := world.Point{At: pair[0]}, world.Point{At: pair[1]}
		spans, err := linetrace.Decompose(g, src, dst, 100, 1)
		require.NoError(t, err)
		require.Len(t, spans, 1)
		assert.Equal(t, linetrace.Trace(pair[0], pair[1]), spans[0].Tiles)
		assert.Equal(t, 0, spans[0].Start)
	}
}

// TestDecompose_Spans splits at land and respects the parts budget.
func TestDecompose_Spans(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~~..~~~.~~"}, gridworld.DefaultOptions())
	src, dst := world.Point{At: world.T(0, 0)}, world.Point{At: world.T(9, 0)}

	spans, err := linetrace.Decompose(g, src, dst, 20, 3)
	require.NoError(t, err)
	require.Len(t, spans, 3)
	assert.Equal(t, []world.Tile{world.T(0, 0), world.T(1, 0)}, spans[0].Tiles)
	assert.Equal(t, 4, spans[1].Start)
	assert.Equal(t, world.T(4, 0), spans[1].First())
	assert.Equal(t, world.T(6, 0), spans[1].Last())
	assert.Equal(t, 2, spans[2].Len())

	_, err = linetrace.Decompose(g, src, dst, 20, 2)
	require.ErrorIs(t, err, linetrace.ErrTooManyParts)
	assert.ErrorIs(t, err, linetrace.ErrBudgetExceeded)
	assert.ErrorIs(t, err, linetrace.ErrInputInvalid)
}

// TestDecompose_Validation covers each rejection in order.
func TestDecompose_Validation(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~~~.~~~"}, gridworld.DefaultOptions())
	sea := world.Point{At: world.T(0, 0)}

	cases := []struct {
		name string
		src  world.Endpoint
		dst  world.Endpoint
		max  int
		err  error
	}{
		{"OffMap", world.Point{At: world.T(-1, 0)}, sea, 10, linetrace.ErrInvalidEndpoint},
		{"OnLand", sea, world.Point{At: world.T(3, 0)}, 10, linetrace.ErrInvalidEndpoint},
		{"Coincident", sea, world.Point{At: world.T(0, 0)}, 10, linetrace.ErrCoincident},
		{"TooLong", sea, world.Point{At: world.T(6, 0)}, 5, linetrace.ErrTooLong},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := linetrace.Decompose(g, tc.src, tc.dst, tc.max, 5)
			if !errors.Is(err, tc.err) {
				t.Fatalf("Decompose error = %v; want %v", err, tc.err)
			}
			assert.ErrorIs(t, err, linetrace.ErrInputInvalid)
		})
	}
}

// TestDecompose_BadBudget rejects zero and negative budgets instead of
// treating them as unlimited.
func TestDecompose_BadBudget(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~.~.~"}, gridworld.DefaultOptions())
	src, dst := world.Point{At: world.T(0, 0)}, world.Point{At: world.T(4, 0)}

	for _, parts := range []int{0, -1} {
		_, err := linetrace.Decompose(g, src, dst, 20, parts)
		require.ErrorIs(t, err, linetrace.ErrBadBudget, "maxParts %d", parts)
		assert.ErrorIs(t, err, linetrace.ErrInputInvalid)
	}
	_, err := linetrace.Decompose(g, src, dst, -1, 3)
	assert.ErrorIs(t, err, linetrace.ErrBadBudget)

	spans, err := linetrace.Decompose(g, src, dst, 20, 3)
	require.NoError(t, err)
	assert.Len(t, spans, 3)
}

// TestDecompose_OccupiedTiles treats dock tiles on the line as obstacles.
func TestDecompose_OccupiedTiles(t *testing.T) {
	g := gridworld.MustFromASCII([]string{
		"~~~~~~~~",
		"~~~~~~~~",
	}, gridworld.DefaultOptions())
	// the dock at (2,0) facing west occupies (2,0),(1,0) and fronts (0,0)
	dock := world.Dock{At: world.T(2, 0), Facing: world.West}
	dst := world.Point{At: world.T(7, 0)}

	spans, err := linetrace.Decompose(g, dock, dst, 20, 3)
	require.NoError(t, err)
	require.Len(t, spans, 2)
	assert.Equal(t, []world.Tile{world.T(0, 0)}, spans[0].Tiles)
	for _, s := range spans {
		for _, tile := range s.Tiles {
			assert.False(t, world.Occupied(dock, dst).Has(tile))
		}
	}
}
