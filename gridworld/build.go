package gridworld

import (
	"github.com/katalvlaran/tileroute/world"
)

// ledger applies construction operations either straight to the grid or to a
// copy-on-write overlay when dry is set. Both paths run the same checks, so a
// dry run prices exactly what a real run would build.
type ledger struct {
	g       *Grid
	dry     bool
	overlay map[int]Cell
	spent   world.Money
}

func (l *ledger) cell(t world.Tile) (Cell, int, bool) {
	if !l.g.InBounds(t) {
		return Cell{}, 0, false
	}
	i := l.g.index(t.X, t.Y)
	if l.dry {
		if c, ok := l.overlay[i]; ok {
			return c, i, true
		}
	}
	return l.g.cells[i], i, true
}

// charge checks funds for real builds and records the spend.
func (l *ledger) charge(op string, t world.Tile, cost world.Money) error {
	if !l.dry && !l.g.opts.Unlimited && l.g.balance < cost {
		return world.NewBuildError(op, t, world.ErrInsufficientFunds)
	}
	l.spent += cost
	if !l.dry {
		l.g.balance -= cost
	}
	return nil
}

func (l *ledger) set(i int, c Cell) {
	if l.dry {
		l.overlay[i] = c
		return
	}
	l.g.cells[i] = c
	l.g.basinsValid = false
}

func (l *ledger) done() {
	if !l.dry {
		l.g.builds++
	}
}

func (l *ledger) BuildCanal(t world.Tile) (world.Money, error) {
	const op = "canal"
	c, i, ok := l.cell(t)
	if !ok {
		return 0, world.NewBuildError(op, t, world.ErrOutOfBounds)
	}
	if err := l.landCheck(op, t, c); err != nil {
		return 0, err
	}
	if c.Slope != world.SlopeFlat {
		return 0, world.NewBuildError(op, t, world.ErrBadSlope)
	}
	cost := l.g.opts.Prices.Canal
	if err := l.charge(op, t, cost); err != nil {
		return 0, err
	}
	c.Terrain = world.TerrainCanal
	c.Owner = l.g.opts.Company
	l.set(i, c)
	l.done()
	return cost, nil
}

func (l *ledger) BuildLock(t world.Tile, axis world.Direction) (world.Money, error) {
	const op = "lock"
	c, i, ok := l.cell(t)
	if !ok {
		return 0, world.NewBuildError(op, t, world.ErrOutOfBounds)
	}
	if c.Terrain == world.TerrainLock {
		return 0, world.NewBuildError(op, t, world.ErrAlreadyBuilt)
	}
	if c.Terrain != world.TerrainCanal {
		if err := l.landCheck(op, t, c); err != nil {
			return 0, err
		}
	} else if c.Owner.Foreign(l.g.opts.Company) {
		return 0, world.NewBuildError(op, t, world.ErrOwnedByOther)
	}
	if !cardinal(axis) || !c.Slope.Along(axis) {
		return 0, world.NewBuildError(op, t, world.ErrBadSlope)
	}
	cost := l.g.opts.Prices.Lock
	if err := l.charge(op, t, cost); err != nil {
		return 0, err
	}
	c.Terrain = world.TerrainLock
	c.Owner = l.g.opts.Company
	c.Axis = axis
	l.set(i, c)
	l.done()
	return cost, nil
}

func (l *ledger) BuildAqueduct(from, to world.Tile) (world.Money, error) {
	const op = "aqueduct"
	a, ia, okA := l.cell(from)
	b, ib, okB := l.cell(to)
	if !okA {
		return 0, world.NewBuildError(op, from, world.ErrOutOfBounds)
	}
	if !okB {
		return 0, world.NewBuildError(op, to, world.ErrOutOfBounds)
	}
	if a.Terrain == world.TerrainAqueduct && a.pair == ib+1 {
		return 0, world.NewBuildError(op, from, world.ErrAlreadyBuilt)
	}
	dir := from.DirectionTo(to)
	span := from.Manhattan(to)
	if dir == world.DirNone || span < 2 || a.Height != b.Height {
		return 0, world.NewBuildError(op, from, world.ErrNotBuildable)
	}
	for _, head := range []struct {
		t world.Tile
		c Cell
	}{{from, a}, {to, b}} {
		if head.c.Terrain == world.TerrainCanal && !head.c.Owner.Foreign(l.g.opts.Company) {
			continue
		}
		if err := l.landCheck(op, head.t, head.c); err != nil {
			return 0, err
		}
	}
	for k := 1; k < span; k++ {
		mid, _, _ := l.cell(from.Add(dir, k))
		if mid.Height >= a.Height {
			return 0, world.NewBuildError(op, from.Add(dir, k), world.ErrNotBuildable)
		}
	}
	cost := l.g.opts.Prices.AqueductPerTile * world.Money(span+1)
	if err := l.charge(op, from, cost); err != nil {
		return 0, err
	}
	a.Terrain, b.Terrain = world.TerrainAqueduct, world.TerrainAqueduct
	a.Owner, b.Owner = l.g.opts.Company, l.g.opts.Company
	a.pair, b.pair = ib+1, ia+1
	l.set(ia, a)
	l.set(ib, b)
	l.done()
	return cost, nil
}

func (l *ledger) BuildBuoy(t world.Tile) (world.Money, error) {
	const op = "buoy"
	c, i, ok := l.cell(t)
	if !ok {
		return 0, world.NewBuildError(op, t, world.ErrOutOfBounds)
	}
	if c.Terrain == world.TerrainBuoy {
		return 0, world.NewBuildError(op, t, world.ErrAlreadyBuilt)
	}
	if !c.Terrain.OpenWater() {
		return 0, world.NewBuildError(op, t, world.ErrNotBuildable)
	}
	cost := l.g.opts.Prices.Buoy
	if err := l.charge(op, t, cost); err != nil {
		return 0, err
	}
	c.Terrain = world.TerrainBuoy
	l.set(i, c)
	l.done()
	return cost, nil
}

func (l *ledger) Demolish(t world.Tile) (world.Money, error) {
	const op = "demolish"
	c, i, ok := l.cell(t)
	if !ok {
		return 0, world.NewBuildError(op, t, world.ErrOutOfBounds)
	}
	if c.Owner.Foreign(l.g.opts.Company) {
		return 0, world.NewBuildError(op, t, world.ErrOwnedByOther)
	}
	var cost world.Money
	switch c.Terrain {
	case world.TerrainClear:
		return 0, nil
	case world.TerrainTrees:
		cost = l.g.opts.Prices.ClearTrees
	case world.TerrainHouse:
		cost = l.g.opts.Prices.ClearHouse
	default:
		return 0, world.NewBuildError(op, t, world.ErrNotClearable)
	}
	if err := l.charge(op, t, cost); err != nil {
		return 0, err
	}
	c.Terrain = world.TerrainClear
	c.Owner = world.OwnerNone
	l.set(i, c)
	l.done()
	return cost, nil
}

// landCheck validates that c is land the company may build on.
func (l *ledger) landCheck(op string, t world.Tile, c Cell) error {
	switch {
	case c.Terrain.Navigable():
		return world.NewBuildError(op, t, world.ErrAlreadyBuilt)
	case c.Owner.Foreign(l.g.opts.Company):
		return world.NewBuildError(op, t, world.ErrOwnedByOther)
	case c.Terrain.Clearable():
		return world.NewBuildError(op, t, world.ErrObstructed)
	case c.Terrain != world.TerrainClear:
		return world.NewBuildError(op, t, world.ErrNotBuildable)
	case c.Slope == world.SlopeSteep:
		return world.NewBuildError(op, t, world.ErrBadSlope)
	}
	return nil
}

// BuildCanal implements world.Builder.
func (g *Grid) BuildCanal(t world.Tile) (world.Money, error) {
	return (&ledger{g: g}).BuildCanal(t)
}

// BuildLock implements world.Builder.
func (g *Grid) BuildLock(t world.Tile, axis world.Direction) (world.Money, error) {
	return (&ledger{g: g}).BuildLock(t, axis)
}

// BuildAqueduct implements world.Builder.
func (g *Grid) BuildAqueduct(from, to world.Tile) (world.Money, error) {
	return (&ledger{g: g}).BuildAqueduct(from, to)
}

// BuildBuoy implements world.Builder.
func (g *Grid) BuildBuoy(t world.Tile) (world.Money, error) {
	return (&ledger{g: g}).BuildBuoy(t)
}

// Demolish implements world.Builder.
func (g *Grid) Demolish(t world.Tile) (world.Money, error) {
	return (&ledger{g: g}).Demolish(t)
}

// DryRun implements world.Constructor. The grid is left untouched and the
// returned cost covers every operation fn performed before it returned.
func (g *Grid) DryRun(fn func(b world.Builder) error) (world.Money, error) {
	l := &ledger{g: g, dry: true, overlay: make(map[int]Cell)}
	err := fn(l)
	return l.spent, err
}

func cardinal(d world.Direction) bool {
	return d == world.North || d == world.East || d == world.South || d == world.West
}
