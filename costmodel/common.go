package costmodel

import (
	"github.com/katalvlaran/tileroute/astar"
	"github.com/katalvlaran/tileroute/world"
)

// Blocked is the step cost returned for impassable moves.
const Blocked = -1

// manhattan returns the smallest Manhattan distance from t to any goal.
func manhattan(t world.Tile, goals []world.Tile) int {
	best := -1
	for _, g := range goals {
		if d := t.Manhattan(g); best < 0 || d < best {
			best = d
		}
	}
	if best < 0 {
		return 0
	}
	return best
}

// reverses reports whether stepping from n onto to goes straight back to the
// parent.
func reverses(n astar.Node, to world.Tile) bool {
	p, ok := n.Parent()
	return ok && p.Tile() == to
}

// backtracks extends reverses with the U-turn that would touch the
// grandparent again.
func backtracks(n astar.Node, to world.Tile) bool {
	p, ok := n.Parent()
	if !ok {
		return false
	}
	if p.Tile() == to {
		return true
	}
	g, ok := p.Parent()
	return ok && g.Tile().Manhattan(to) == 1
}

// turned reports whether n was entered with a heading different from its parent's.
func turned(n astar.Node) bool {
	p, ok := n.Parent()
	if !ok {
		return false
	}
	pd := p.Direction()
	return pd != world.DirNone && n.Direction() != world.DirNone && pd != n.Direction()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

// LockSite returns the tile of the adjacent pair a, b that carries the lock
// for their level change. It reports false unless the heights differ by
// exactly one and at least one tile is not natural water.
//
// Rules, in order: an existing lock is reused; otherwise the non-natural
// tile is chosen; when both qualify the higher one wins.
func LockSite(q world.Query, a, b world.Tile) (world.Tile, bool) {
	ha, hb := q.Height(a), q.Height(b)
	if abs(ha-hb) != 1 {
		return world.Tile{}, false
	}
	ta, tb := q.Terrain(a), q.Terrain(b)
	switch {
	case ta == world.TerrainLock:
		return a, true
	case tb == world.TerrainLock:
		return b, true
	case ta.Natural() && tb.Natural():
		return world.Tile{}, false
	case ta.Natural():
		return b, true
	case tb.Natural():
		return a, true
	case ha > hb:
		return a, true
	}
	return b, true
}
