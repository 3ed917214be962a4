package world_test

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/world"
)

// TestDirection_OffsetAndOpposite checks every cardinal heading round-trips.
func TestDirection_OffsetAndOpposite(t *testing.T) {
	origin := world.T(5, 5)
	for _, d := range world.Cardinals {
		n := origin.Neighbor(d)
		assert.True(t, origin.Adjacent(n), "neighbor %s must be adjacent", d)
		assert.Equal(t, origin, n.Neighbor(d.Opposite()), "opposite of %s must step back", d)
		assert.Equal(t, d, origin.DirectionTo(n))
	}
	assert.Equal(t, world.East|world.South, (world.West | world.North).Opposite())
	assert.Equal(t, world.DirNone, world.DirNone.Opposite())
}

// TestTile_DirectionTo returns DirNone off-axis and for identical tiles.
func TestTile_DirectionTo(t *testing.T) {
	a := world.T(1, 1)
	assert.Equal(t, world.East, a.DirectionTo(world.T(9, 1)))
	assert.Equal(t, world.North, a.DirectionTo(world.T(1, -4)))
	assert.Equal(t, world.DirNone, a.DirectionTo(world.T(2, 2)))
	assert.Equal(t, world.DirNone, a.DirectionTo(a))
	assert.Equal(t, 7, a.Manhattan(world.T(4, 5)))
}

// TestDirection_Predicates covers axis helpers and mask rendering.
func TestDirection_Predicates(t *testing.T) {
	assert.True(t, world.East.Horizontal())
	assert.True(t, world.North.Vertical())
	assert.True(t, world.North.Perpendicular(world.West))
	assert.False(t, world.North.Perpendicular(world.South))
	mask := world.North | world.East
	assert.True(t, mask.Has(world.North))
	assert.False(t, mask.Has(world.South))
	assert.Equal(t, "NE", mask.String())
	assert.Equal(t, "-", world.DirNone.String())
}

// TestEndpoints verifies front tiles and exclusion zones of every endpoint kind.
func TestEndpoints(t *testing.T) {
	p := world.Point{At: world.T(3, 3)}
	assert.Equal(t, p.At, p.FrontTile())
	assert.Empty(t, p.OccupiedTiles())

	d := world.Dock{At: world.T(2, 4), Facing: world.East}
	assert.Equal(t, world.T(4, 4), d.FrontTile())
	assert.ElementsMatch(t, []world.Tile{world.T(2, 4), world.T(3, 4)}, d.OccupiedTiles())

	s := world.Station{At: world.T(5, 5), Facing: world.North, Width: 2, Length: 3}
	assert.Equal(t, world.T(5, 4), s.FrontTile())
	occ := s.OccupiedTiles()
	require.Len(t, occ, 6)
	assert.Contains(t, occ, world.T(6, 7))
	assert.NotContains(t, occ, s.FrontTile())

	set := world.Occupied(d, nil, s)
	assert.True(t, set.Has(world.T(3, 4)))
	assert.True(t, set.Has(world.T(5, 7)))
	assert.False(t, set.Has(d.FrontTile()))
}

// TestTerrain_Predicates pins the navigability table the models rely on.
func TestTerrain_Predicates(t *testing.T) {
	navigable := []world.Terrain{
		world.TerrainSea, world.TerrainRiver, world.TerrainCanal, world.TerrainLock,
		world.TerrainBuoy, world.TerrainDock, world.TerrainDepot, world.TerrainAqueduct,
	}
	for _, tr := range navigable {
		assert.True(t, tr.Navigable(), tr.String())
		assert.False(t, tr.Land(), tr.String())
	}
	assert.False(t, world.TerrainClear.Navigable())
	assert.True(t, world.TerrainTrees.Clearable())
	assert.False(t, world.TerrainIndustry.Clearable())
	assert.True(t, world.TerrainBuoy.Natural())
	assert.False(t, world.TerrainCanal.Natural())
	assert.Equal(t, "Sea", world.TerrainSea.String())
	assert.Equal(t, "Terrain(99)", world.Terrain(99).String())
	assert.True(t, world.SlopeInclinedX.Along(world.West))
	assert.False(t, world.SlopeInclinedX.Along(world.North))
	assert.False(t, world.SlopeSteep.Along(world.North))
}

// TestOwner distinguishes towns, nobody and companies.
func TestOwner(t *testing.T) {
	assert.False(t, world.OwnerNone.Company())
	assert.False(t, world.OwnerTown.Foreign(1))
	assert.True(t, world.Owner(2).Foreign(1))
	assert.False(t, world.Owner(1).Foreign(1))
}

// TestBuildError_Unwrap checks sentinel matching through the wrapper.
func TestBuildError_Unwrap(t *testing.T) {
	err := world.NewBuildError("canal", world.T(1, 2), world.ErrObstructed)
	assert.True(t, errors.Is(err, world.ErrObstructed))
	assert.Equal(t, "world: canal at 1,2: world: tile obstructed", err.Error())
	var be *world.BuildError
	require.True(t, errors.As(err, &be))
	assert.Equal(t, world.T(1, 2), be.Tile)
}

// TestParseDirection accepts letters and names in any case.
func TestParseDirection(t *testing.T) {
	for in, want := range map[string]world.Direction{
		"N": world.North, "east": world.East, " S ": world.South, "West": world.West, "": world.DirNone, "-": world.DirNone,
	} {
		got, err := world.ParseDirection(in)
		require.NoError(t, err, in)
		assert.Equal(t, want, got, in)
	}
	_, err := world.ParseDirection("NE")
	assert.ErrorIs(t, err, world.ErrBadDirection)
}
