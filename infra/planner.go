package infra

import (
	"errors"
	"fmt"
	"strings"

	"github.com/katalvlaran/tileroute/costmodel"
	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

// Planner derives, prices and builds the infrastructure of routes on one world.
type Planner struct {
	q    world.Query
	opts Options
}

// New returns a Planner reading terrain from q.
func New(q world.Query, opts ...Option) *Planner {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Planner{q: q, opts: cfg}
}

// Plan returns the locks and aqueducts r still needs, in route order.
//
// Steps (for each consecutive pair a→b where a or b lies in a canal segment):
//  1. non-adjacent: an Aqueduct unless q already connects a and b;
//  2. adjacent with a level change: a Lock on costmodel.LockSite(a, b)
//     unless one is there already; ErrUnbuildable if no site exists;
//  3. reject any item touching the occupied tiles (route.ErrOccupied).
//
// Complexity: O(L) for a route of L tiles.
func (p *Planner) Plan(r *route.Route) ([]route.Item, error) {
	type key struct {
		kind route.ItemKind
		at   world.Tile
	}
	seen := make(map[key]bool)
	var items []route.Item
	add := func(it route.Item) error {
		k := key{it.Kind, it.At}
		if seen[k] || it.Exists(p.q) {
			return nil
		}
		for _, t := range it.Tiles() {
			if p.opts.Occupied.Has(t) {
				return fmt.Errorf("%w: %s", route.ErrOccupied, it)
			}
		}
		seen[k] = true
		items = append(items, it)
		return nil
	}

	var (
		prev      world.Tile
		prevCanal bool
		first     = true
	)
	for _, seg := range r.Segments {
		for _, t := range seg.Tiles {
			if first {
				prev, prevCanal, first = t, seg.Canal, false
				continue
			}
			if seg.Canal || prevCanal {
				if err := p.step(prev, t, add); err != nil {
					return nil, err
				}
			}
			prev, prevCanal = t, seg.Canal
		}
	}
	return items, nil
}

// step derives the item, if any, needed to travel a→b.
func (p *Planner) step(a, b world.Tile, add func(route.Item) error) error {
	if !a.Adjacent(b) {
		if far, ok := p.q.ConnectedPair(a); ok && far == b {
			return nil
		}
		return add(route.Aqueduct(a, b))
	}
	if p.q.Height(a) == p.q.Height(b) {
		return nil
	}
	site, ok := costmodel.LockSite(p.q, a, b)
	if !ok {
		return fmt.Errorf("%w: %s→%s", ErrUnbuildable, a, b)
	}
	return add(route.Lock(site, a.DirectionTo(b)))
}

// Estimate prices the full commit sequence of r without mutating the world.
// It returns the first construction error the dry run hit, if any.
func (p *Planner) Estimate(c world.Constructor, r *route.Route) (world.Money, error) {
	items, err := p.items(r)
	if err != nil {
		return 0, err
	}
	var rep Report
	return c.DryRun(func(b world.Builder) error {
		return p.construct(b, r, items, &rep)
	})
}

// Commit builds r's items, then digs its remaining canal land, through b.
// Already built work is skipped, so calling Commit again after a failure or
// a success is safe. Nothing is rolled back on failure.
func (p *Planner) Commit(b world.Builder, r *route.Route) (Report, error) {
	var rep Report
	items, err := p.items(r)
	if err != nil {
		return rep, err
	}
	err = p.construct(b, r, items, &rep)
	return rep, err
}

// items returns r.Items when set, else plans them.
func (p *Planner) items(r *route.Route) ([]route.Item, error) {
	if r.Items != nil {
		return r.Items, nil
	}
	return p.Plan(r)
}

// construct is the single build sequence shared by Estimate and Commit.
func (p *Planner) construct(b world.Builder, r *route.Route, items []route.Item, rep *Report) error {
	built := world.TileSet{}
	for _, it := range items {
		for _, t := range it.Tiles() {
			built.Add(t)
		}
		if it.Exists(p.q) {
			rep.Skipped++
			continue
		}
		op := strings.ToLower(it.Kind.String())
		done, err := p.attempt(b, op, it.At, rep, func() (world.Money, error) { return it.Build(b) })
		if err != nil {
			return err
		}
		if done {
			rep.Items++
		}
	}

	for _, t := range r.CanalTiles() {
		if built.Has(t) || p.q.Terrain(t).Navigable() {
			rep.Skipped++
			continue
		}
		built.Add(t)
		done, err := p.attempt(b, "canal", t, rep, func() (world.Money, error) { return b.BuildCanal(t) })
		if err != nil {
			return err
		}
		if done {
			rep.Dug++
		}
	}
	return nil
}

// attempt runs build once. On ErrObstructed it demolishes the obstructed
// tile and retries once. It reports false when the work was already done.
func (p *Planner) attempt(b world.Builder, op string, t world.Tile, rep *Report, build func() (world.Money, error)) (bool, error) {
	cost, err := build()
	if err == nil {
		p.spend(rep, op, t, cost)
		return true, nil
	}
	if errors.Is(err, world.ErrAlreadyBuilt) {
		rep.Skipped++
		return false, nil
	}
	if !errors.Is(err, world.ErrObstructed) {
		return false, &CommitError{Tile: t, Op: op, Cause: err}
	}

	target := t
	var be *world.BuildError
	if errors.As(err, &be) {
		target = be.Tile
	}
	cost, err = b.Demolish(target)
	if err != nil {
		return false, &CommitError{Tile: target, Op: "demolish", Cause: err}
	}
	rep.Demolished++
	p.spend(rep, "demolish", target, cost)

	if cost, err = build(); err != nil {
		return false, &CommitError{Tile: t, Op: op, Cause: err, Retried: true}
	}
	p.spend(rep, op, t, cost)
	return true, nil
}

func (p *Planner) spend(rep *Report, op string, t world.Tile, cost world.Money) {
	rep.Spent += cost
	p.opts.OnBuild(op, t, cost)
}
