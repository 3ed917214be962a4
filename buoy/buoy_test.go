package buoy_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/buoy"
	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

// straight returns a one-segment route along row 0 from x=0 to x=n-1.
func straight(n int) *route.Route {
	r := route.New(world.T(0, 0), world.T(n-1, 0))
	tiles := make([]world.Tile, n)
	for i := range tiles {
		tiles[i] = world.T(i, 0)
	}
	r.Append(tiles, false)
	return r
}

// TestPlan_Stride puts a waypoint every stride tiles but not on the last tile.
func TestPlan_Stride(t *testing.T) {
	g := gridworld.MustFromASCII([]string{strings.Repeat("~", 25)}, gridworld.DefaultOptions())

	got, err := buoy.New(g).Plan(straight(25))
	require.NoError(t, err)
	assert.Equal(t, []world.Tile{world.T(12, 0)}, got, "tile 24 is the destination")

	got, err = buoy.New(g, buoy.WithStride(5), buoy.WithRadius(0)).Plan(straight(25))
	require.NoError(t, err)
	assert.Equal(t, []world.Tile{world.T(5, 0), world.T(10, 0), world.T(15, 0), world.T(20, 0)}, got)
}

// TestPlan_ReuseAndSkip reuses nearby buoys and skips tiles that cannot carry one.
func TestPlan_ReuseAndSkip(t *testing.T) {
	g := gridworld.MustFromASCII([]string{
		"~~~~~~D~~~~~~~~~~~",
		"~~~~~~~~~~~B~~~~~~",
	}, gridworld.DefaultOptions())

	got, err := buoy.New(g, buoy.WithStride(6), buoy.WithRadius(1)).Plan(straight(18))
	require.NoError(t, err)
	assert.Equal(t, []world.Tile{world.T(12, 0)}, got, "the dock at 6 is skipped")

	got, err = buoy.New(g, buoy.WithStride(6), buoy.WithRadius(2)).Plan(straight(18))
	require.NoError(t, err)
	assert.Empty(t, got, "the buoy at 11,1 serves waypoint 12")
}

// TestPlan_PlannedBuoysServe counts buoys planned earlier in the same call.
func TestPlan_PlannedBuoysServe(t *testing.T) {
	g := gridworld.MustFromASCII([]string{strings.Repeat("~", 10)}, gridworld.DefaultOptions())
	got, err := buoy.New(g, buoy.WithStride(2), buoy.WithRadius(3)).Plan(straight(10))
	require.NoError(t, err)
	assert.Equal(t, []world.Tile{world.T(2, 0), world.T(6, 0)}, got)
}

// TestPlace builds once and reuses its own buoys afterwards.
func TestPlace(t *testing.T) {
	g := gridworld.MustFromASCII([]string{strings.Repeat("~", 25)}, gridworld.DefaultOptions())
	p := buoy.New(g)

	built, err := p.Place(g, straight(25))
	require.NoError(t, err)
	assert.Equal(t, []world.Tile{world.T(12, 0)}, built)
	assert.Equal(t, world.TerrainBuoy, g.Terrain(world.T(12, 0)))
	assert.Equal(t, 1, g.Builds())

	built, err = p.Place(g, straight(25))
	require.NoError(t, err)
	assert.Empty(t, built)
	assert.Equal(t, 1, g.Builds())
}

// TestErrors covers a nil route and rejected options.
func TestErrors(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"~~~"}, gridworld.DefaultOptions())
	_, err := buoy.New(g).Plan(nil)
	assert.ErrorIs(t, err, buoy.ErrNilRoute)
	_, err = buoy.New(g, buoy.WithStride(0)).Place(g, straight(3))
	assert.ErrorIs(t, err, buoy.ErrOptionViolation)
	_, err = buoy.New(g, buoy.WithRadius(-1)).Plan(straight(3))
	assert.ErrorIs(t, err, buoy.ErrOptionViolation)
}
