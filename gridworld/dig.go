package gridworld

import (
	"container/list"

	"github.com/katalvlaran/tileroute/world"
)

// MinDig finds the fewest land conversions needed to join a and b by a
// 4-connected waterway, ignoring heights and aqueducts. Each diggable land
// cell costs 1, navigable cells cost 0, everything else is impassable.
// Diggable means clear, trees or house land not owned by another company and
// not steep. Endpoints are counted like any other cell.
//
// Behavior:
//  1. 0–1 BFS from a: cost-0 moves go to the deque front, cost-1 to the back.
//  2. Stop when b is popped.
//
// Complexity: O(W·H) time, Memory: O(W·H).
func (g *Grid) MinDig(a, b world.Tile) (int, bool) {
	if !g.InBounds(a) || !g.InBounds(b) {
		return 0, false
	}
	n := g.width * g.height
	const inf = int(^uint(0) >> 1)
	dist := make([]int, n)
	for i := range dist {
		dist[i] = inf
	}
	src := g.index(a.X, a.Y)
	dst := g.index(b.X, b.Y)
	weight := func(i int) (int, bool) {
		c := g.cells[i]
		switch {
		case c.Terrain.Navigable():
			return 0, true
		case c.Terrain == world.TerrainClear || c.Terrain.Clearable():
			if c.Owner.Foreign(g.opts.Company) || c.Slope == world.SlopeSteep {
				return 0, false
			}
			return 1, true
		}
		return 0, false
	}
	w0, ok := weight(src)
	if !ok {
		return 0, false
	}
	dist[src] = w0

	dq := list.New()
	dq.PushFront(src)
	for dq.Len() > 0 {
		e := dq.Front()
		dq.Remove(e)
		u := e.Value.(int)
		if u == dst {
			return dist[u], true
		}
		ut := g.Coordinate(u)
		for _, d := range world.Cardinals {
			vt := ut.Neighbor(d)
			if !g.InBounds(vt) {
				continue
			}
			v := g.index(vt.X, vt.Y)
			step, ok := weight(v)
			if !ok {
				continue
			}
			if nd := dist[u] + step; nd < dist[v] {
				dist[v] = nd
				if step == 0 {
					dq.PushFront(v)
				} else {
					dq.PushBack(v)
				}
			}
		}
	}
	return 0, false
}
