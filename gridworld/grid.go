package gridworld

import (
	"fmt"
	"strings"

	"github.com/katalvlaran/tileroute/world"
)

// New constructs a width×height Grid of flat clear land at height 1.
// Returns ErrEmptyGrid if either dimension is not positive.
// Complexity: O(W×H) time and memory.
func New(width, height int, opts Options) (*Grid, error) {
	if width <= 0 || height <= 0 {
		return nil, ErrEmptyGrid
	}
	cells := make([]Cell, width*height)
	for i := range cells {
		cells[i] = Cell{Terrain: world.TerrainClear, Height: 1}
	}
	return newGrid(width, height, cells, opts), nil
}

// FromASCII builds a Grid from one string per row using the package legend.
// Returns ErrEmptyGrid, ErrNonRectangular or a wrapped ErrBadGlyph.
// Complexity: O(W×H).
func FromASCII(rows []string, opts Options) (*Grid, error) {
	if len(rows) == 0 || len(rows[0]) == 0 {
		return nil, ErrEmptyGrid
	}
	h, w := len(rows), len(rows[0])
	for _, row := range rows {
		if len(row) != w {
			return nil, ErrNonRectangular
		}
	}
	cells := make([]Cell, w*h)
	for y, row := range rows {
		for x := 0; x < w; x++ {
			c, err := parseGlyph(row[x], opts.Company)
			if err != nil {
				return nil, fmt.Errorf("%w: %q at %d,%d", err, row[x], x, y)
			}
			cells[y*w+x] = c
		}
	}
	return newGrid(w, h, cells, opts), nil
}

// MustFromASCII is FromASCII for fixed maps in tests and examples; it panics on error.
func MustFromASCII(rows []string, opts Options) *Grid {
	g, err := FromASCII(rows, opts)
	if err != nil {
		panic(err)
	}
	return g
}

func newGrid(w, h int, cells []Cell, opts Options) *Grid {
	if opts.Company == world.OwnerNone {
		opts.Company = 1
	}
	return &Grid{
		width:   w,
		height:  h,
		cells:   cells,
		opts:    opts,
		balance: opts.Balance,
	}
}

func parseGlyph(b byte, company world.Owner) (Cell, error) {
	switch {
	case b >= '0' && b <= '9':
		return Cell{Terrain: world.TerrainClear, Height: int(b - '0')}, nil
	}
	switch b {
	case '~':
		return Cell{Terrain: world.TerrainSea}, nil
	case 'r':
		return Cell{Terrain: world.TerrainRiver}, nil
	case '.':
		return Cell{Terrain: world.TerrainClear, Height: 1}, nil
	case '^':
		return Cell{Terrain: world.TerrainClear, Height: 1, Slope: world.SlopeSteep}, nil
	case 'T':
		return Cell{Terrain: world.TerrainTrees, Height: 1}, nil
	case 'H':
		return Cell{Terrain: world.TerrainHouse, Height: 1, Owner: world.OwnerTown}, nil
	case 'I':
		return Cell{Terrain: world.TerrainIndustry, Height: 1}, nil
	case 'X':
		return Cell{Terrain: world.TerrainClear, Height: 1, Owner: ForeignCompany}, nil
	case 'R':
		return Cell{Terrain: world.TerrainRoad, Height: 1}, nil
	case '=':
		return Cell{Terrain: world.TerrainRail, Height: 1}, nil
	case 'c':
		return Cell{Terrain: world.TerrainCanal, Height: 1, Owner: company}, nil
	case 'B':
		return Cell{Terrain: world.TerrainBuoy}, nil
	case 'D':
		return Cell{Terrain: world.TerrainDock, Owner: company}, nil
	case 'P':
		return Cell{Terrain: world.TerrainDepot, Owner: company}, nil
	}
	return Cell{}, ErrBadGlyph
}

// ASCII renders the grid with the FromASCII legend. Locks render as 'L',
// aqueduct heads as 'A', and own clear land as its height digit.
func (g *Grid) ASCII() []string {
	rows := make([]string, g.height)
	var sb strings.Builder
	for y := 0; y < g.height; y++ {
		sb.Reset()
		for x := 0; x < g.width; x++ {
			sb.WriteByte(glyph(g.cells[g.index(x, y)]))
		}
		rows[y] = sb.String()
	}
	return rows
}

func glyph(c Cell) byte {
	switch c.Terrain {
	case world.TerrainSea:
		return '~'
	case world.TerrainRiver:
		return 'r'
	case world.TerrainClear:
		switch {
		case c.Owner == ForeignCompany:
			return 'X'
		case c.Slope == world.SlopeSteep:
			return '^'
		case c.Height >= 0 && c.Height <= 9:
			return byte('0' + c.Height)
		}
		return '9'
	case world.TerrainTrees:
		return 'T'
	case world.TerrainHouse:
		return 'H'
	case world.TerrainIndustry:
		return 'I'
	case world.TerrainRoad:
		return 'R'
	case world.TerrainRail:
		return '='
	case world.TerrainCanal:
		return 'c'
	case world.TerrainLock:
		return 'L'
	case world.TerrainBuoy:
		return 'B'
	case world.TerrainDock:
		return 'D'
	case world.TerrainDepot:
		return 'P'
	case world.TerrainAqueduct:
		return 'A'
	}
	return '?'
}

// index maps (x,y) to a row-major index: y*Width + x.
// Complexity: O(1).
func (g *Grid) index(x, y int) int {
	return y*g.width + x
}

// Coordinate converts a row-major index back to a tile.
// Complexity: O(1).
func (g *Grid) Coordinate(idx int) world.Tile {
	return world.Tile{X: idx % g.width, Y: idx / g.width}
}

// Cell returns the stored cell of t and whether t is in bounds.
func (g *Grid) Cell(t world.Tile) (Cell, bool) {
	if !g.InBounds(t) {
		return Cell{}, false
	}
	return g.cells[g.index(t.X, t.Y)], true
}

// SetCell overwrites t. Out-of-bounds tiles are ignored.
func (g *Grid) SetCell(t world.Tile, c Cell) {
	if !g.InBounds(t) {
		return
	}
	g.cells[g.index(t.X, t.Y)] = c
	g.basinsValid = false
}

// Balance returns the money left for real builds.
func (g *Grid) Balance() world.Money { return g.balance }

// Builds returns how many real construction operations have succeeded.
func (g *Grid) Builds() int { return g.builds }

// Company returns the owner building through this grid.
func (g *Grid) Company() world.Owner { return g.opts.Company }

// Clone returns a deep copy with the same options, balance and build count.
func (g *Grid) Clone() *Grid {
	cells := make([]Cell, len(g.cells))
	copy(cells, g.cells)
	c := newGrid(g.width, g.height, cells, g.opts)
	c.balance = g.balance
	c.builds = g.builds
	return c
}

// Size implements world.Query.
func (g *Grid) Size() (int, int) { return g.width, g.height }

// InBounds reports whether t lies within the grid boundaries.
// Complexity: O(1).
func (g *Grid) InBounds(t world.Tile) bool {
	return t.X >= 0 && t.X < g.width && t.Y >= 0 && t.Y < g.height
}

// Terrain implements world.Query.
func (g *Grid) Terrain(t world.Tile) world.Terrain {
	c, ok := g.Cell(t)
	if !ok {
		return world.TerrainVoid
	}
	return c.Terrain
}

// Height implements world.Query.
func (g *Grid) Height(t world.Tile) int {
	c, _ := g.Cell(t)
	return c.Height
}

// Slope implements world.Query.
func (g *Grid) Slope(t world.Tile) world.Slope {
	c, _ := g.Cell(t)
	return c.Slope
}

// Owner implements world.Query.
func (g *Grid) Owner(t world.Tile) world.Owner {
	c, _ := g.Cell(t)
	return c.Owner
}

// Buildable implements world.Query: clear, not steep, and not owned by
// another company.
func (g *Grid) Buildable(t world.Tile) bool {
	c, ok := g.Cell(t)
	return ok && buildable(c, g.opts.Company)
}

func buildable(c Cell, company world.Owner) bool {
	return c.Terrain == world.TerrainClear &&
		c.Slope != world.SlopeSteep &&
		!c.Owner.Foreign(company)
}

// ConnectedPair implements world.Query for aqueduct heads.
func (g *Grid) ConnectedPair(t world.Tile) (world.Tile, bool) {
	c, ok := g.Cell(t)
	if !ok || c.Terrain != world.TerrainAqueduct || c.pair == 0 {
		return world.Tile{}, false
	}
	return g.Coordinate(c.pair - 1), true
}
