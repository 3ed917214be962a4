package costmodel

import (
	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/world"
)

// CanalConfig holds the weights of the Canal strategy.
type CanalConfig struct {
	// Company is the owner planning the canal; land of other companies is
	// never crossed.
	Company world.Owner
	// DigCost is charged for every land tile turned into water.
	DigCost int
	// ClearCost is charged on top of DigCost for trees and houses.
	ClearCost int
	// LockCost is charged for every new lock.
	LockCost int
	// AqueductCost is charged per tile an aqueduct jump covers; values
	// below 1 are raised to 1.
	AqueductCost int
	// MaxAqueductLength bounds the head-to-head distance of new aqueducts.
	// Values below 2 disable aqueducts.
	MaxAqueductLength int
	// AllowDemolish lets the search plan through trees and houses.
	AllowDemolish bool
}

// DefaultCanalConfig returns the weights used when none are given.
func DefaultCanalConfig() CanalConfig {
	return CanalConfig{
		Company:           1,
		DigCost:           4,
		ClearCost:         2,
		LockCost:          6,
		AqueductCost:      3,
		MaxAqueductLength: 6,
		AllowDemolish:     true,
	}
}

// Canal plans new waterways: it sails existing water at cost 1 and digs,
// locks and bridges its way across land.
//
// Locks sit on LockSite of each level change and must be passed straight.
// Aqueducts join two heads at equal height over strictly lower ground and
// are also entered and left straight.
type Canal struct {
	q   world.Query
	cfg CanalConfig
}

// NewCanal returns the canal strategy over q.
func NewCanal(q world.Query, cfg CanalConfig) *Canal {
	if cfg.AqueductCost < 1 {
		cfg.AqueductCost = 1
	}
	if cfg.DigCost < 1 {
		cfg.DigCost = 1
	}
	return &Canal{q: q, cfg: cfg}
}

var _ astar.Model = (*Canal)(nil)

// Config returns the effective weights.
func (c *Canal) Config() CanalConfig { return c.cfg }

// Cost implements astar.Model.
func (c *Canal) Cost(parent astar.Node, to world.Tile, dir world.Direction) int {
	from := parent.Tile()
	if !from.Adjacent(to) {
		return c.jumpCost(from, to)
	}
	if !c.q.InBounds(to) || c.q.Owner(to).Foreign(c.cfg.Company) {
		return Blocked
	}

	step := 1
	if !c.q.Terrain(to).Navigable() {
		dig, ok := c.dig(to)
		if !ok {
			return Blocked
		}
		step = dig
	}

	site, lock := world.Tile{}, false
	if c.q.Height(from) != c.q.Height(to) {
		var ok bool
		if site, ok = LockSite(c.q, from, to); !ok || !c.q.Slope(site).Along(dir) {
			return Blocked
		}
		lock = true
		if c.q.Terrain(site) != world.TerrainLock {
			step += c.cfg.LockCost
		}
	}
	// inclined land only takes a lock built along the slope
	if s := c.q.Slope(to); s == world.SlopeInclinedX || s == world.SlopeInclinedY {
		if !lock || site != to {
			return Blocked
		}
	}
	return step
}

// Estimate implements astar.Model.
func (c *Canal) Estimate(t world.Tile, goals []world.Tile) int { return manhattan(t, goals) }

// Neighbors implements astar.Model.
func (c *Canal) Neighbors(n astar.Node) []astar.Neighbor {
	cur, in := n.Tile(), n.Direction()
	straight := c.mustGoStraight(n)
	out := make([]astar.Neighbor, 0, 8)

	for _, d := range world.Cardinals {
		turning := in != world.DirNone && d != in
		if straight && turning {
			continue
		}
		t := cur.Neighbor(d)
		if !c.q.InBounds(t) || backtracks(n, t) {
			continue
		}
		// a lock on cur for the next step must be left straight as well
		if site, ok := LockSite(c.q, cur, t); ok && turning && site == cur {
			continue
		}
		if c.Cost(n, t, d) < 0 {
			continue
		}
		out = append(out, astar.Neighbor{Tile: t, Dir: d})
	}

	if far, ok := c.q.ConnectedPair(cur); ok && !backtracks(n, far) &&
		!c.q.Owner(far).Foreign(c.cfg.Company) {
		if d := cur.DirectionTo(far); in == world.DirNone || d == in {
			out = append(out, astar.Neighbor{Tile: far, Dir: d})
		}
	}

	if c.cfg.MaxAqueductLength >= 2 && c.head(cur) {
		for _, d := range world.Cardinals {
			if in != world.DirNone && d != in {
				continue
			}
			if far, ok := c.span(cur, d); ok && !backtracks(n, far) {
				out = append(out, astar.Neighbor{Tile: far, Dir: d})
			}
		}
	}
	return out
}

// DirectionValid implements astar.Model; canal tiles are expanded once.
func (c *Canal) DirectionValid(world.Tile, world.Direction, world.Direction) bool { return false }

// dig returns the cost of turning land tile t into water.
func (c *Canal) dig(t world.Tile) (int, bool) {
	if c.q.Slope(t) == world.SlopeSteep {
		return 0, false
	}
	switch c.q.Terrain(t) {
	case world.TerrainClear:
		return c.cfg.DigCost, true
	case world.TerrainTrees, world.TerrainHouse:
		if !c.cfg.AllowDemolish {
			return 0, false
		}
		return c.cfg.DigCost + c.cfg.ClearCost, true
	}
	return 0, false
}

// mustGoStraight reports whether n may only be left along its arrival heading:
// n is an existing lock, the lock site of the step that entered it, or the
// landing head of an aqueduct.
func (c *Canal) mustGoStraight(n astar.Node) bool {
	cur := n.Tile()
	if c.q.Terrain(cur) == world.TerrainLock {
		return true
	}
	p, ok := n.Parent()
	if !ok {
		return false
	}
	prev := p.Tile()
	if !prev.Adjacent(cur) {
		return true
	}
	site, ok := LockSite(c.q, prev, cur)
	return ok && site == cur
}

// head reports whether t may carry an aqueduct head: own canal or flat clear land.
func (c *Canal) head(t world.Tile) bool {
	if c.q.Owner(t).Foreign(c.cfg.Company) {
		return false
	}
	switch c.q.Terrain(t) {
	case world.TerrainCanal:
		return true
	case world.TerrainClear:
		return c.q.Slope(t) == world.SlopeFlat
	}
	return false
}

// span scans from cur along d for the far head of a new aqueduct: the first
// tile at cur's height at distance 2..MaxAqueductLength with only strictly
// lower tiles in between.
func (c *Canal) span(cur world.Tile, d world.Direction) (world.Tile, bool) {
	h := c.q.Height(cur)
	for k := 1; k <= c.cfg.MaxAqueductLength; k++ {
		t := cur.Add(d, k)
		if !c.q.InBounds(t) {
			return world.Tile{}, false
		}
		ht := c.q.Height(t)
		if k >= 2 && ht == h {
			return t, c.head(t)
		}
		if ht >= h {
			return world.Tile{}, false
		}
	}
	return world.Tile{}, false
}

// jumpCost prices a non-adjacent step: sailing an existing connected pair or
// building a new aqueduct.
func (c *Canal) jumpCost(from, to world.Tile) int {
	k := from.Manhattan(to)
	if far, ok := c.q.ConnectedPair(from); ok && far == to {
		return k
	}
	if from.DirectionTo(to) == world.DirNone {
		return Blocked
	}
	return c.cfg.AqueductCost * k
}
