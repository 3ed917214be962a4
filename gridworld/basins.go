package gridworld

import "github.com/katalvlaran/tileroute/world"

// Basin returns the label of the connected body of navigable water holding t,
// or -1 when t is not navigable. Aqueduct heads join the bodies on both ends.
// Labels are stable until the next mutation.
// Complexity: O(W×H) after a mutation, O(1) otherwise.
func (g *Grid) Basin(t world.Tile) int {
	if !g.InBounds(t) {
		return -1
	}
	if !g.basinsValid {
		g.labelBasins()
	}
	return g.basins[g.index(t.X, t.Y)]
}

// Basins returns every water body as a slice of row-major cell indices,
// in label order.
func (g *Grid) Basins() [][]int {
	if !g.basinsValid {
		g.labelBasins()
	}
	var comps [][]int
	for i, b := range g.basins {
		if b < 0 {
			continue
		}
		for len(comps) <= b {
			comps = append(comps, nil)
		}
		comps[b] = append(comps[b], i)
	}
	return comps
}

// labelBasins finds all contiguous regions of navigable cells under 4-way
// connectivity, scanning in row-major order so labels are deterministic.
func (g *Grid) labelBasins() {
	total := g.width * g.height
	if len(g.basins) != total {
		g.basins = make([]int, total)
	}
	for i := range g.basins {
		g.basins[i] = -1
	}
	label := 0
	for i0 := 0; i0 < total; i0++ {
		if g.basins[i0] >= 0 || !g.cells[i0].Terrain.Navigable() {
			continue
		}
		// BFS to collect the body
		queue := []int{i0}
		g.basins[i0] = label
		for qi := 0; qi < len(queue); qi++ {
			u := queue[qi]
			ut := g.Coordinate(u)
			next := make([]world.Tile, 0, 5)
			for _, d := range world.Cardinals {
				next = append(next, ut.Neighbor(d))
			}
			if other, ok := g.ConnectedPair(ut); ok {
				next = append(next, other)
			}
			for _, vt := range next {
				if !g.InBounds(vt) {
					continue
				}
				v := g.index(vt.X, vt.Y)
				if g.basins[v] >= 0 || !g.cells[v].Terrain.Navigable() {
					continue
				}
				g.basins[v] = label
				queue = append(queue, v)
			}
		}
		label++
	}
	g.basinsValid = true
}
