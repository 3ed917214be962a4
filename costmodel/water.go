package costmodel

import (
	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/world"
)

// Water searches existing navigable water only. Each tile costs 1 and a jump
// over a connected pair costs its length. Adjacent tiles at different water
// levels connect only through an existing lock.
type Water struct {
	q world.Query
}

// NewWater returns the coast-following strategy over q.
func NewWater(q world.Query) *Water { return &Water{q: q} }

var _ astar.Model = (*Water)(nil)

// Cost implements astar.Model.
func (w *Water) Cost(parent astar.Node, to world.Tile, _ world.Direction) int {
	from := parent.Tile()
	if !world.Navigable(w.q, to) || (from.Adjacent(to) && !w.level(from, to)) {
		return Blocked
	}
	return from.Manhattan(to)
}

// Estimate implements astar.Model.
func (w *Water) Estimate(t world.Tile, goals []world.Tile) int { return manhattan(t, goals) }

// Neighbors implements astar.Model. Reversal to the parent and U-turns that
// touch the grandparent are never offered.
func (w *Water) Neighbors(n astar.Node) []astar.Neighbor {
	cur := n.Tile()
	out := make([]astar.Neighbor, 0, 5)
	for _, d := range world.Cardinals {
		t := cur.Neighbor(d)
		if backtracks(n, t) || !world.Navigable(w.q, t) || !w.level(cur, t) {
			continue
		}
		out = append(out, astar.Neighbor{Tile: t, Dir: d})
	}
	if far, ok := w.q.ConnectedPair(cur); ok && !backtracks(n, far) && world.Navigable(w.q, far) {
		out = append(out, astar.Neighbor{Tile: far, Dir: cur.DirectionTo(far)})
	}
	return out
}

// DirectionValid implements astar.Model; water tiles are expanded once.
func (w *Water) DirectionValid(world.Tile, world.Direction, world.Direction) bool { return false }

// level reports whether ships can pass between adjacent tiles a and b.
func (w *Water) level(a, b world.Tile) bool {
	return w.q.Height(a) == w.q.Height(b) ||
		w.q.Terrain(a) == world.TerrainLock ||
		w.q.Terrain(b) == world.TerrainLock
}
