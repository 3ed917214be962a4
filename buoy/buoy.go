// Package buoy places navigation buoys along a planned ship route.
//
// Ships in the host game lose their way on long stretches of open water, so
// a waypoint is wanted every Stride tiles. An existing buoy within Radius
// (Manhattan distance) of a waypoint serves it; otherwise a new buoy is
// built on the waypoint tile itself when that tile is plain sea, river or
// canal. Waypoints on other tiles are skipped.
package buoy

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/route"
	"github.com/katalvlaran/tileroute/world"
)

var (
	// ErrNilRoute indicates a nil route.
	ErrNilRoute = errors.New("buoy: route is nil")

	// ErrOptionViolation indicates an invalid Option was supplied.
	ErrOptionViolation = errors.New("buoy: invalid option supplied")
)

// Options configures a Placer.
type Options struct {
	Stride int // tiles between waypoints
	Radius int // reuse distance for existing buoys

	err error
}

// Option configures a Placer via functional arguments.
type Option func(*Options)

// DefaultOptions returns Stride 12 and Radius 3.
func DefaultOptions() Options {
	return Options{Stride: 12, Radius: 3}
}

// WithStride sets the waypoint spacing; n must be positive.
func WithStride(n int) Option {
	return func(o *Options) {
		if n <= 0 {
			o.err = fmt.Errorf("%w: WithStride(%d)", ErrOptionViolation, n)
			return
		}
		o.Stride = n
	}
}

// WithRadius sets the reuse distance; r must not be negative.
func WithRadius(r int) Option {
	return func(o *Options) {
		if r < 0 {
			o.err = fmt.Errorf("%w: WithRadius(%d)", ErrOptionViolation, r)
			return
		}
		o.Radius = r
	}
}

// Placer decides and builds buoy positions.
type Placer struct {
	q    world.Query
	opts Options
}

// New returns a Placer reading terrain from q.
func New(q world.Query, opts ...Option) *Placer {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	return &Placer{q: q, opts: cfg}
}

// Plan returns the tiles where new buoys would be built, in route order.
// Waypoints are the route tiles at positions Stride, 2·Stride, ... excluding
// the final tile. A buoy planned earlier in the same call counts as existing.
// Complexity: O(L/Stride · Radius²).
func (p *Placer) Plan(r *route.Route) ([]world.Tile, error) {
	if p.opts.err != nil {
		return nil, p.opts.err
	}
	if r == nil {
		return nil, ErrNilRoute
	}
	tiles := r.Tiles()
	planned := make(world.TileSet)
	var out []world.Tile
	for i := p.opts.Stride; i < len(tiles)-1; i += p.opts.Stride {
		t := tiles[i]
		if p.served(t, planned) || !p.q.Terrain(t).OpenWater() {
			continue
		}
		planned.Add(t)
		out = append(out, t)
	}
	return out, nil
}

// Place builds the buoys Plan returns and reports the tiles built. A tile
// that already carries a buoy is skipped; any other build failure stops
// placement and is returned with the tiles built so far.
func (p *Placer) Place(b world.Builder, r *route.Route) ([]world.Tile, error) {
	want, err := p.Plan(r)
	if err != nil {
		return nil, err
	}
	built := make([]world.Tile, 0, len(want))
	for _, t := range want {
		if _, err := b.BuildBuoy(t); err != nil {
			if errors.Is(err, world.ErrAlreadyBuilt) {
				continue
			}
			return built, err
		}
		built = append(built, t)
	}
	return built, nil
}

// served reports whether a buoy exists or is planned within Radius of t.
func (p *Placer) served(t world.Tile, planned world.TileSet) bool {
	rad := p.opts.Radius
	for dy := -rad; dy <= rad; dy++ {
		for dx := -rad; dx <= rad; dx++ {
			if abs(dx)+abs(dy) > rad {
				continue
			}
			c := world.T(t.X+dx, t.Y+dy)
			if planned.Has(c) || p.q.Terrain(c) == world.TerrainBuoy {
				return true
			}
		}
	}
	return false
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
