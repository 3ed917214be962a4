package costmodel

import (
	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/world"
)

// RoadConfig holds the weights of the Road strategy.
type RoadConfig struct {
	Company   world.Owner
	BuildCost int // per new road tile on buildable land
	SlopeCost int // extra per level change
}

// DefaultRoadConfig returns the weights used when none are given.
func DefaultRoadConfig() RoadConfig {
	return RoadConfig{Company: 1, BuildCost: 3, SlopeCost: 2}
}

// Road reuses existing roads at cost 1 and builds over buildable land.
// Heights may change by at most one per step.
type Road struct {
	q   world.Query
	cfg RoadConfig
}

// NewRoad returns the road strategy over q.
func NewRoad(q world.Query, cfg RoadConfig) *Road {
	if cfg.BuildCost < 1 {
		cfg.BuildCost = 1
	}
	return &Road{q: q, cfg: cfg}
}

var _ astar.Model = (*Road)(nil)

// Cost implements astar.Model.
func (r *Road) Cost(parent astar.Node, to world.Tile, _ world.Direction) int {
	return landStep(r.q, r.cfg.Company, world.TerrainRoad, r.cfg.BuildCost, r.cfg.SlopeCost, parent.Tile(), to)
}

// Estimate implements astar.Model.
func (r *Road) Estimate(t world.Tile, goals []world.Tile) int { return manhattan(t, goals) }

// Neighbors implements astar.Model. Only reversal is forbidden.
func (r *Road) Neighbors(n astar.Node) []astar.Neighbor {
	cur := n.Tile()
	out := make([]astar.Neighbor, 0, 4)
	for _, d := range world.Cardinals {
		t := cur.Neighbor(d)
		if reverses(n, t) || r.Cost(n, t, d) < 0 {
			continue
		}
		out = append(out, astar.Neighbor{Tile: t, Dir: d})
	}
	return out
}

// DirectionValid implements astar.Model; road tiles are expanded once.
func (r *Road) DirectionValid(world.Tile, world.Direction, world.Direction) bool { return false }

// RailConfig holds the weights of the Rail strategy.
type RailConfig struct {
	Company   world.Owner
	BuildCost int // per new track tile on buildable land
	SlopeCost int // extra per level change
	TurnCost  int // extra per change of heading
}

// DefaultRailConfig returns the weights used when none are given.
func DefaultRailConfig() RailConfig {
	return RailConfig{Company: 1, BuildCost: 3, SlopeCost: 2, TurnCost: 2}
}

// Rail is Road with curve rules: a turn costs TurnCost, two turns need a
// straight tile between them, and a closed tile may be crossed again at a
// right angle.
type Rail struct {
	q   world.Query
	cfg RailConfig
}

// NewRail returns the rail strategy over q.
func NewRail(q world.Query, cfg RailConfig) *Rail {
	if cfg.BuildCost < 1 {
		cfg.BuildCost = 1
	}
	return &Rail{q: q, cfg: cfg}
}

var _ astar.Model = (*Rail)(nil)

// Cost implements astar.Model.
func (r *Rail) Cost(parent astar.Node, to world.Tile, dir world.Direction) int {
	step := landStep(r.q, r.cfg.Company, world.TerrainRail, r.cfg.BuildCost, r.cfg.SlopeCost, parent.Tile(), to)
	if step < 0 {
		return Blocked
	}
	if in := parent.Direction(); in != world.DirNone && in != dir {
		step += r.cfg.TurnCost
	}
	return step
}

// Estimate implements astar.Model.
func (r *Rail) Estimate(t world.Tile, goals []world.Tile) int { return manhattan(t, goals) }

// Neighbors implements astar.Model.
func (r *Rail) Neighbors(n astar.Node) []astar.Neighbor {
	cur, in := n.Tile(), n.Direction()
	justTurned := turned(n)
	out := make([]astar.Neighbor, 0, 4)
	for _, d := range world.Cardinals {
		if justTurned && d != in {
			continue
		}
		t := cur.Neighbor(d)
		if reverses(n, t) || r.Cost(n, t, d) < 0 {
			continue
		}
		out = append(out, astar.Neighbor{Tile: t, Dir: d})
	}
	return out
}

// DirectionValid implements astar.Model: a closed tile may be entered again
// only on an axis it was never entered on.
func (r *Rail) DirectionValid(_ world.Tile, closed, incoming world.Direction) bool {
	if incoming == world.DirNone {
		return false
	}
	return closed&(incoming|incoming.Opposite()) == 0
}

// landStep prices one step of a land mode: own is the terrain reused at cost
// 1, build the price of new track over buildable land.
func landStep(q world.Query, company world.Owner, own world.Terrain, build, slope int, from, to world.Tile) int {
	if !q.InBounds(to) || q.Owner(to).Foreign(company) {
		return Blocked
	}
	var step int
	switch {
	case q.Terrain(to) == own:
		step = 1
	case q.Buildable(to):
		step = build
	default:
		return Blocked
	}
	switch dh := abs(q.Height(from) - q.Height(to)); {
	case dh > 1:
		return Blocked
	case dh == 1:
		step += slope
	}
	return step
}
