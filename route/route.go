package route

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/world"
)

// Sentinel errors returned by Validate.
var (
	// ErrEmpty indicates a route without tiles.
	ErrEmpty = errors.New("route: no tiles")

	// ErrEndpoints indicates the tiles do not start and end at the route's front tiles.
	ErrEndpoints = errors.New("route: does not join its endpoints")

	// ErrDiscontinuous indicates two consecutive tiles are not joined.
	ErrDiscontinuous = errors.New("route: tiles not contiguous")

	// ErrCanalFlag indicates HasCanal disagrees with the segment tags.
	ErrCanalFlag = errors.New("route: has_canal does not match segments")

	// ErrOccupied indicates a tile or item inside an endpoint's occupied tiles.
	ErrOccupied = errors.New("route: overlaps an endpoint")
)

// Segment is a run of route tiles. Canal marks runs that need construction.
type Segment struct {
	Tiles []world.Tile `json:"tiles"`
	Canal bool         `json:"canal"`
}

// Route is the ordered result of one planning call.
type Route struct {
	From     world.Tile `json:"from"`
	To       world.Tile `json:"to"`
	Segments []Segment  `json:"segments"`
	Items    []Item     `json:"items"`
	HasCanal bool       `json:"has_canal"`
}

// New returns an empty route between two front tiles.
func New(from, to world.Tile) *Route {
	return &Route{From: from, To: to}
}

// Append adds a non-empty segment and keeps HasCanal in step.
func (r *Route) Append(tiles []world.Tile, canal bool) {
	if len(tiles) == 0 {
		return
	}
	r.Segments = append(r.Segments, Segment{Tiles: append([]world.Tile(nil), tiles...), Canal: canal})
	r.HasCanal = r.HasCanal || canal
}

// Tiles returns the concatenated tiles of all segments.
func (r *Route) Tiles() []world.Tile {
	out := make([]world.Tile, 0, r.Len())
	for _, s := range r.Segments {
		out = append(out, s.Tiles...)
	}
	return out
}

// Len returns the total number of tiles.
func (r *Route) Len() int {
	n := 0
	for _, s := range r.Segments {
		n += len(s.Tiles)
	}
	return n
}

// CanalTiles returns the tiles of canal-tagged segments in route order.
func (r *Route) CanalTiles() []world.Tile {
	var out []world.Tile
	for _, s := range r.Segments {
		if s.Canal {
			out = append(out, s.Tiles...)
		}
	}
	return out
}

// step is one tile of the concatenated route with the tag of its segment.
type step struct {
	tile  world.Tile
	canal bool
}

// steps flattens the segments keeping each tile's canal tag.
func (r *Route) steps() []step {
	out := make([]step, 0, r.Len())
	for _, s := range r.Segments {
		for _, t := range s.Tiles {
			out = append(out, step{tile: t, canal: s.Canal})
		}
	}
	return out
}

// Validate checks the route invariants against q and the endpoints'
// occupied tiles:
//  1. at least one tile, first is From and last is To (ErrEmpty, ErrEndpoints);
//  2. each pair of consecutive tiles is adjacent, an existing connected pair,
//     or a straight jump touching a canal segment (ErrDiscontinuous);
//  3. HasCanal equals "some segment is canal" (ErrCanalFlag);
//  4. no tile of a canal segment or item lies in occupied (ErrOccupied).
func Validate(q world.Query, r *Route, occupied world.TileSet) error {
	st := r.steps()
	if len(st) == 0 {
		return ErrEmpty
	}
	if st[0].tile != r.From || st[len(st)-1].tile != r.To {
		return fmt.Errorf("%w: %s→%s", ErrEndpoints, st[0].tile, st[len(st)-1].tile)
	}
	for i := 1; i < len(st); i++ {
		a, b := st[i-1], st[i]
		if a.tile.Adjacent(b.tile) {
			continue
		}
		if far, ok := q.ConnectedPair(a.tile); ok && far == b.tile {
			continue
		}
		if a.tile.DirectionTo(b.tile) != world.DirNone && (a.canal || b.canal) {
			continue
		}
		return fmt.Errorf("%w: %s→%s", ErrDiscontinuous, a.tile, b.tile)
	}

	canal := false
	for _, s := range r.Segments {
		canal = canal || s.Canal
	}
	if canal != r.HasCanal {
		return ErrCanalFlag
	}

	for _, t := range r.CanalTiles() {
		if occupied.Has(t) {
			return fmt.Errorf("%w: canal tile %s", ErrOccupied, t)
		}
	}
	for _, it := range r.Items {
		for _, t := range it.Tiles() {
			if occupied.Has(t) {
				return fmt.Errorf("%w: %s", ErrOccupied, it)
			}
		}
	}
	return nil
}
