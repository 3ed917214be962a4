package waterroute_test

import (
	"strings"
	"testing"

	"github.com/davecgh/go-spew/spew"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/katalvlaran/tileroute/gridworld"
	"github.com/katalvlaran/tileroute/infra"
	"github.com/katalvlaran/tileroute/linetrace"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/waterroute"
	"github.com/katalvlaran/tileroute/world"
)

// plainQuery hides the optional capabilities of the wrapped world.
type plainQuery struct{ world.Query }

func point(x, y int) world.Endpoint { return world.Point{At: world.T(x, y)} }

func req(src, dst world.Endpoint) waterroute.Request {
	return waterroute.Request{Source: src, Dest: dst, MaxLength: 30, MaxParts: 4}
}

func isthmus() *gridworld.Grid {
	return gridworld.MustFromASCII([]string{
		"~~~III~~~",
		"~~~...~~~",
		"~~~III~~~",
	}, gridworld.DefaultOptions())
}

// twoIslands has two single-tile islands on the straight line (0,1)→(7,1).
func twoIslands() *gridworld.Grid {
	return gridworld.MustFromASCII([]string{
		"~~~~~~~~",
		"~~.~~.~~",
		"~~~~~~~~",
	}, gridworld.DefaultOptions())
}

//----------------------------------------------------------------------------//
// Planning outcomes
//----------------------------------------------------------------------------//

// TestPlan_OpenWater returns the straight line when nothing is in the way.
func TestPlan_OpenWater(t *testing.T) {
	g := gridworld.MustFromASCII([]string{strings.Repeat("~", 20)}, gridworld.DefaultOptions())
	p := waterroute.NewPlanner(g)

	r, err := p.Plan(req(point(0, 0), point(19, 0)))
	require.NoError(t, err)
	require.NoError(t, route.Validate(g, r, nil))
	assert.Equal(t, 20, r.Len())
	assert.Len(t, r.Segments, 1)
	assert.False(t, r.HasCanal)
	assert.Empty(t, r.Items)
	for i, tile := range r.Tiles() {
		assert.Equal(t, world.T(i, 0), tile)
	}
}

// TestPlan_Isthmus digs through the land bridge with a lock on each side.
func TestPlan_Isthmus(t *testing.T) {
	g := isthmus()
	var kinds []waterroute.Kind
	p := waterroute.NewPlanner(g, waterroute.WithOnSubSearch(func(_ waterroute.Gap, k waterroute.Kind) {
		kinds = append(kinds, k)
	}))

	j, err := p.Start(req(point(0, 1), point(8, 1)))
	require.NoError(t, err)
	st, err := j.Step(1000)
	require.NoError(t, err)
	require.Equal(t, waterroute.JobSucceeded, st)
	r := j.Route()

	assert.True(t, r.HasCanal)
	require.Len(t, r.Segments, 3)
	assert.Equal(t, []world.Tile{world.T(3, 1), world.T(4, 1), world.T(5, 1)}, r.Segments[1].Tiles)
	assert.True(t, r.Segments[1].Canal)
	assert.Equal(t, []route.Item{
		route.Lock(world.T(3, 1), world.East),
		route.Lock(world.T(5, 1), world.East),
	}, r.Items)
	assert.Equal(t, []waterroute.Kind{waterroute.KindCanal}, kinds, "different basins skip the coast search")
	assert.Equal(t, 1, j.Stats().CanalSearches)
	assert.Equal(t, 0, j.Stats().CoastSearches)

	rep, err := infra.New(g).Commit(g, r)
	require.NoError(t, err)
	assert.Equal(t, 2, rep.Items)
	assert.Equal(t, "~~~LcL~~~", g.ASCII()[1])
}

// TestPlan_AqueductOnlyGap closes a gap with one new aqueduct between two
// canal ends, so the gap path has no interior tiles.
func TestPlan_AqueductOnlyGap(t *testing.T) {
	g := gridworld.MustFromASCII([]string{"cc0000cc"}, gridworld.DefaultOptions())
	p := waterroute.NewPlanner(g)

	r, err := p.Plan(req(point(0, 0), point(7, 0)))
	require.NoError(t, err, spew.Sdump(r))
	require.NoError(t, route.Validate(g, r, nil))
	assert.True(t, r.HasCanal)
	assert.Equal(t, []world.Tile{world.T(0, 0), world.T(1, 0), world.T(6, 0), world.T(7, 0)}, r.Tiles())
	require.Len(t, r.Segments, 3)
	assert.Equal(t, route.Segment{Tiles: []world.Tile{world.T(6, 0)}, Canal: true}, r.Segments[1])
	assert.Equal(t, []route.Item{route.Aqueduct(world.T(1, 0), world.T(6, 0))}, r.Items)

	rep, err := infra.New(g).Commit(g, r)
	require.NoError(t, err)
	assert.Equal(t, 1, rep.Items)
	assert.Zero(t, rep.Dug)
	assert.Equal(t, []string{"cA0000Ac"}, g.ASCII())
	other, ok := g.ConnectedPair(world.T(1, 0))
	require.True(t, ok)
	assert.Equal(t, world.T(6, 0), other)
}

// TestPlan_CoastThenCanal runs both searches when basins are unknown.
func TestPlan_CoastThenCanal(t *testing.T) {
	q := plainQuery{isthmus()}
	var kinds []waterroute.Kind
	p := waterroute.NewPlanner(q, waterroute.WithOnSubSearch(func(_ waterroute.Gap, k waterroute.Kind) {
		kinds = append(kinds, k)
	}))

	j, err := p.Start(req(point(0, 1), point(8, 1)))
	require.NoError(t, err)
	for st := waterroute.JobRunning; st == waterroute.JobRunning; {
		st, err = j.Step(1000)
		require.NoError(t, err)
	}
	assert.Equal(t, []waterroute.Kind{waterroute.KindCoast, waterroute.KindCanal}, kinds)
	assert.True(t, j.Route().HasCanal)

	// one gap, and at most one coast and one canal run per gap
	s := j.Stats()
	assert.Equal(t, 1, s.Gaps)
	assert.Equal(t, 2, s.CoastSearches+s.CanalSearches)
	assert.LessOrEqual(t, s.CoastSearches+s.CanalSearches, 2*s.Gaps)
}

// TestPlan_CoastDetour sails around two islands without building anything.
func TestPlan_CoastDetour(t *testing.T) {
	g := twoIslands()
	gaps := map[int]bool{}
	p := waterroute.NewPlanner(g, waterroute.WithOnSubSearch(func(gp waterroute.Gap, _ waterroute.Kind) {
		gaps[gp.Index] = true
	}))
	rq := req(point(0, 1), point(7, 1))
	rq.MaxParts = 3

	j, err := p.Start(rq)
	require.NoError(t, err)
	st, err := j.Step(1000)
	require.NoError(t, err)
	require.Equal(t, waterroute.JobSucceeded, st)

	r := j.Route()
	assert.False(t, r.HasCanal)
	assert.Equal(t, 12, r.Len())
	assert.Empty(t, r.Items)
	assert.LessOrEqual(t, len(gaps), rq.MaxParts+1)
	s := j.Stats()
	assert.Equal(t, 3, s.Spans)
	assert.Equal(t, 2, s.Gaps)
	assert.Equal(t, 2, s.CoastSearches)
	assert.Zero(t, s.CanalSearches)
	assert.LessOrEqual(t, s.Gaps, rq.MaxParts-1)
	assert.LessOrEqual(t, s.CoastSearches+s.CanalSearches, 2*s.Gaps)
	assert.Zero(t, g.Builds())
}

// TestPlan_TooManyParts fails before any search and builds nothing.
func TestPlan_TooManyParts(t *testing.T) {
	g := twoIslands()
	before := g.ASCII()
	calls := 0
	p := waterroute.NewPlanner(g, waterroute.WithOnSubSearch(func(waterroute.Gap, waterroute.Kind) { calls++ }))
	rq := req(point(0, 1), point(7, 1))
	rq.MaxParts = 1

	_, err := p.Plan(rq)
	require.ErrorIs(t, err, waterroute.ErrNoRoute)
	assert.ErrorIs(t, err, waterroute.ErrInputInvalid)
	assert.ErrorIs(t, err, linetrace.ErrTooManyParts)
	assert.Zero(t, calls)
	assert.Zero(t, g.Builds())
	assert.Equal(t, before, g.ASCII())
}

// TestPlan_AvoidsOccupiedTiles keeps the detour off the dock's own tiles.
func TestPlan_AvoidsOccupiedTiles(t *testing.T) {
	g := gridworld.MustFromASCII([]string{
		"D~~~~",
		"~~~~~",
		"~.~~~",
		"~~~~~",
	}, gridworld.DefaultOptions())
	dock := world.Dock{At: world.T(0, 0), Facing: world.South}
	p := waterroute.NewPlanner(g)

	r, err := p.Plan(req(dock, point(4, 2)))
	require.NoError(t, err)
	occupied := world.Occupied(dock)
	for _, tile := range r.Tiles() {
		assert.False(t, occupied.Has(tile), "route uses occupied tile %s", tile)
	}
	assert.Contains(t, r.Tiles(), world.T(1, 3))
	assert.Equal(t, 7, r.Len())
}

// TestPlan_Rejections covers disabled canals, the dig pre-check and bad input.
func TestPlan_Rejections(t *testing.T) {
	t.Run("CanalsDisabled", func(t *testing.T) {
		p := waterroute.NewPlanner(isthmus(), waterroute.WithCanals(false))
		_, err := p.Plan(req(point(0, 1), point(8, 1)))
		assert.ErrorIs(t, err, waterroute.ErrNoRoute)
	})
	t.Run("TooMuchDigging", func(t *testing.T) {
		calls := 0
		p := waterroute.NewPlanner(isthmus(),
			waterroute.WithMaxCanalTiles(2),
			waterroute.WithOnSubSearch(func(waterroute.Gap, waterroute.Kind) { calls++ }))
		_, err := p.Plan(req(point(0, 1), point(8, 1)))
		assert.ErrorIs(t, err, waterroute.ErrNoRoute)
		assert.Zero(t, calls)
	})
	t.Run("Coincident", func(t *testing.T) {
		p := waterroute.NewPlanner(isthmus())
		_, err := p.Start(req(point(0, 1), point(0, 1)))
		assert.ErrorIs(t, err, waterroute.ErrInputInvalid)
		assert.ErrorIs(t, err, linetrace.ErrCoincident)
	})
	t.Run("OnLand", func(t *testing.T) {
		p := waterroute.NewPlanner(isthmus())
		_, err := p.Start(req(point(4, 1), point(8, 1)))
		assert.ErrorIs(t, err, linetrace.ErrInvalidEndpoint)
	})
	t.Run("MissingEndpoint", func(t *testing.T) {
		p := waterroute.NewPlanner(isthmus())
		_, err := p.Start(waterroute.Request{Source: point(0, 1), MaxLength: 10, MaxParts: 2})
		assert.ErrorIs(t, err, waterroute.ErrInputInvalid)
	})
	t.Run("NegativeParts", func(t *testing.T) {
		rq := req(point(0, 1), point(7, 1))
		rq.MaxParts = -1
		_, err := waterroute.NewPlanner(twoIslands()).Start(rq)
		assert.ErrorIs(t, err, waterroute.ErrInputInvalid)
		assert.ErrorIs(t, err, linetrace.ErrBadBudget)
	})
	t.Run("BadOption", func(t *testing.T) {
		p := waterroute.NewPlanner(isthmus(), waterroute.WithMaxIterations(0))
		_, err := p.Start(req(point(0, 1), point(8, 1)))
		assert.ErrorIs(t, err, waterroute.ErrOptionViolation)
	})
}

//----------------------------------------------------------------------------//
// Time slicing
//----------------------------------------------------------------------------//

// TestStep_Slicing resumes a job in small slices and gets the same route.
func TestStep_Slicing(t *testing.T) {
	rq := req(point(0, 1), point(7, 1))
	whole, err := waterroute.NewPlanner(twoIslands()).Plan(rq)
	require.NoError(t, err)

	j, err := waterroute.NewPlanner(twoIslands()).Start(rq)
	require.NoError(t, err)
	calls := 0
	st := waterroute.JobRunning
	for st == waterroute.JobRunning {
		st, err = j.Step(1)
		require.NoError(t, err)
		calls++
		require.Less(t, calls, 1000, "job does not terminate: %s", spew.Sdump(j.Stats()))
	}
	require.Equal(t, waterroute.JobSucceeded, st)
	assert.Greater(t, calls, 5)
	assert.Equal(t, whole.Tiles(), j.Route().Tiles())

	// finished jobs keep reporting their outcome
	st, err = j.Step(10)
	assert.NoError(t, err)
	assert.Equal(t, waterroute.JobSucceeded, st)
}

// TestStep_Errors checks the iteration guard and the per-search cap.
func TestStep_Errors(t *testing.T) {
	j, err := waterroute.NewPlanner(twoIslands()).Start(req(point(0, 1), point(7, 1)))
	require.NoError(t, err)
	_, err = j.Step(0)
	assert.ErrorIs(t, err, waterroute.ErrBadIterations)
	assert.Nil(t, j.Route())

	p := waterroute.NewPlanner(twoIslands(), waterroute.WithMaxIterations(2))
	j, err = p.Start(req(point(0, 1), point(7, 1)))
	require.NoError(t, err)
	st, err := j.Step(100)
	require.ErrorIs(t, err, waterroute.ErrBudgetExceeded)
	assert.Equal(t, waterroute.JobFailed, st)
	assert.Equal(t, err, j.Err())
	assert.Nil(t, j.Route())
	assert.Nil(t, j.Engine())
}
