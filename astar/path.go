package astar

import "github.com/katalvlaran/tileroute/world"

// node is one arena slot. parent is an arena index, -1 for roots.
type node struct {
	tile   world.Tile
	cost   int
	parent int32
	depth  int32
	dir    world.Direction
}

// Node is a read-only handle on a search node, valid until the next Init.
type Node struct {
	e   *Engine
	idx int32
}

// Tile returns the node's tile.
func (n Node) Tile() world.Tile { return n.e.arena[n.idx].tile }

// Cost returns the accumulated cost from the source.
func (n Node) Cost() int { return n.e.arena[n.idx].cost }

// Direction returns the heading the node was entered with.
func (n Node) Direction() world.Direction { return n.e.arena[n.idx].dir }

// Depth returns the number of steps from the source.
func (n Node) Depth() int { return int(n.e.arena[n.idx].depth) }

// Parent returns the predecessor node, or false for a source.
func (n Node) Parent() (Node, bool) {
	p := n.e.arena[n.idx].parent
	if p < 0 {
		return Node{}, false
	}
	return Node{e: n.e, idx: p}, true
}

// Path is a reconstructed source-to-goal path.
type Path struct {
	tiles []world.Tile
	dirs  []world.Direction
	cost  int
}

// Tiles returns the path tiles from source to goal.
func (p *Path) Tiles() []world.Tile { return p.tiles }

// Directions returns the heading each tile was entered with; the source
// carries its initial direction.
func (p *Path) Directions() []world.Direction { return p.dirs }

// Cost returns the accumulated cost at the goal.
func (p *Path) Cost() int { return p.cost }

// Len returns the number of tiles.
func (p *Path) Len() int { return len(p.tiles) }

// reconstruct walks parent links from idx back to the root.
func (e *Engine) reconstruct(idx int32) *Path {
	goal := e.arena[idx]
	n := int(goal.depth) + 1
	p := &Path{
		tiles: make([]world.Tile, n),
		dirs:  make([]world.Direction, n),
		cost:  goal.cost,
	}
	for i := n - 1; idx >= 0; i-- {
		nd := e.arena[idx]
		p.tiles[i] = nd.tile
		p.dirs[i] = nd.dir
		idx = nd.parent
	}
	return p
}
