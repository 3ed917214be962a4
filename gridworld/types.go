package gridworld

import (
	"errors"

	"github.com/katalvlaran/tileroute/world"
)

// Sentinel errors for grid construction.
var (
	// ErrEmptyGrid indicates input has no rows or no columns.
	ErrEmptyGrid = errors.New("gridworld: input grid must have at least one row and one column")
	// ErrNonRectangular indicates rows of differing lengths.
	ErrNonRectangular = errors.New("gridworld: all rows must have the same length")
	// ErrBadGlyph indicates an unknown character in an ASCII map.
	ErrBadGlyph = errors.New("gridworld: unknown map glyph")
)

// ForeignCompany is the owner assigned to 'X' tiles by FromASCII.
const ForeignCompany world.Owner = 2

// Cell is the stored state of one tile.
type Cell struct {
	Terrain world.Terrain
	Height  int
	Slope   world.Slope
	Owner   world.Owner
	Axis    world.Direction // gate axis of a lock
	pair    int             // row-major index + 1 of the other aqueduct head
}

// Prices lists what each construction operation costs.
type Prices struct {
	Canal           world.Money
	Lock            world.Money
	AqueductPerTile world.Money
	Buoy            world.Money
	ClearTrees      world.Money
	ClearHouse      world.Money
}

// DefaultPrices returns the price table used by DefaultOptions.
func DefaultPrices() Prices {
	return Prices{
		Canal:           500,
		Lock:            1200,
		AqueductPerTile: 800,
		Buoy:            100,
		ClearTrees:      50,
		ClearHouse:      1000,
	}
}

// Options contains tunable parameters for a Grid.
type Options struct {
	// Company is the owner that builds through this grid.
	Company world.Owner
	// Balance is the money available to real (non dry-run) builds.
	Balance world.Money
	// Unlimited disables the Balance check.
	Unlimited bool
	// Prices is the construction price table.
	Prices Prices
}

// DefaultOptions returns Options with Company=1, unlimited money and DefaultPrices.
func DefaultOptions() Options {
	return Options{
		Company:   1,
		Unlimited: true,
		Prices:    DefaultPrices(),
	}
}

// Grid is an in-memory world. It is not safe for concurrent mutation;
// concurrent read-only use is fine.
type Grid struct {
	width, height int
	cells         []Cell
	opts          Options
	balance       world.Money
	builds        int

	basins      []int
	basinsValid bool
}

var (
	_ world.World        = (*Grid)(nil)
	_ world.BasinLabeler = (*Grid)(nil)
	_ world.DigEstimator = (*Grid)(nil)
)
