package linetrace

import (
	"errors"
	"fmt"

	"github.com/katalvlaran/tileroute/world"
)

// Error taxonomy.
var (
	// ErrInputInvalid is matched by every validation error of this package.
	ErrInputInvalid = errors.New("linetrace: invalid input")

	// ErrBudgetExceeded is matched when a caller-supplied budget is hit.
	ErrBudgetExceeded = errors.New("linetrace: budget exceeded")

	// ErrInvalidEndpoint indicates an unusable front tile.
	ErrInvalidEndpoint = fmt.Errorf("%w: endpoint front tile unusable", ErrInputInvalid)

	// ErrCoincident indicates both endpoints share a front tile.
	ErrCoincident = fmt.Errorf("%w: endpoints coincide", ErrInputInvalid)

	// ErrTooLong indicates the endpoints are farther apart than allowed.
	ErrTooLong = fmt.Errorf("%w: endpoints too far apart", ErrInputInvalid)

	// ErrBadBudget indicates a maxLength or maxParts below 1.
	ErrBadBudget = fmt.Errorf("%w: budgets must be positive", ErrInputInvalid)

	// ErrTooManyParts indicates the corridor breaks into too many spans.
	ErrTooManyParts = fmt.Errorf("%w: %w: too many spans", ErrInputInvalid, ErrBudgetExceeded)
)

// Span is a maximal run of consecutive passable tiles on the traced line.
type Span struct {
	// Start is the index of the first tile within the traced line.
	Start int
	Tiles []world.Tile
}

// First returns the first tile of the span.
func (s Span) First() world.Tile { return s.Tiles[0] }

// Last returns the last tile of the span.
func (s Span) Last() world.Tile { return s.Tiles[len(s.Tiles)-1] }

// Len returns the number of tiles.
func (s Span) Len() int { return len(s.Tiles) }

// Trace returns the 4-connected raster line from a to b, both included.
// Complexity: O(|dx|+|dy|).
func Trace(a, b world.Tile) []world.Tile {
	dx, dy := abs(b.X-a.X), abs(b.Y-a.Y)
	sx, sy := sign(b.X-a.X), sign(b.Y-a.Y)

	out := make([]world.Tile, 0, dx+dy+1)
	out = append(out, a)
	x, y := a.X, a.Y
	for ix, iy := 0, 0; ix < dx || iy < dy; {
		// step along X when its next boundary (ix+½)/dx comes before (iy+½)/dy
		if (1+2*ix)*dy < (1+2*iy)*dx {
			x += sx
			ix++
		} else {
			y += sy
			iy++
		}
		out = append(out, world.Tile{X: x, Y: y})
	}
	return out
}

// Decompose traces the line between the front tiles of src and dst and
// returns its passable spans in order. The first span starts at src's front
// tile and the last ends at dst's.
//
// Preconditions and validation (in order):
//  1. maxLength and maxParts at least 1 (ErrBadBudget).
//  2. both front tiles in bounds, navigable and unoccupied (ErrInvalidEndpoint).
//  3. distinct front tiles (ErrCoincident).
//  4. Manhattan distance ≤ maxLength (ErrTooLong).
//  5. at most maxParts spans (ErrTooManyParts), checked while scanning.
//
// Complexity: O(L) for a line of L tiles.
func Decompose(q world.Query, src, dst world.Endpoint, maxLength, maxParts int) ([]Span, error) {
	if maxLength < 1 || maxParts < 1 {
		return nil, fmt.Errorf("%w: maxLength %d, maxParts %d", ErrBadBudget, maxLength, maxParts)
	}
	a, b := src.FrontTile(), dst.FrontTile()
	occupied := world.Occupied(src, dst)
	for _, t := range []world.Tile{a, b} {
		if !world.Navigable(q, t) || occupied.Has(t) {
			return nil, fmt.Errorf("%w: %s", ErrInvalidEndpoint, t)
		}
	}
	if a == b {
		return nil, fmt.Errorf("%w: %s", ErrCoincident, a)
	}
	if d := a.Manhattan(b); d > maxLength {
		return nil, fmt.Errorf("%w: distance %d > %d", ErrTooLong, d, maxLength)
	}

	line := Trace(a, b)
	passable := func(t world.Tile) bool {
		if occupied.Has(t) {
			return false
		}
		return t == a || t == b || world.Navigable(q, t)
	}

	var spans []Span
	open := false
	for i, t := range line {
		if !passable(t) {
			open = false
			continue
		}
		if !open {
			if len(spans) >= maxParts {
				return nil, fmt.Errorf("%w: more than %d", ErrTooManyParts, maxParts)
			}
			spans = append(spans, Span{Start: i})
			open = true
		}
		last := &spans[len(spans)-1]
		last.Tiles = append(last.Tiles, t)
	}
	return spans, nil
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}

func sign(v int) int {
	switch {
	case v > 0:
		return 1
	case v < 0:
		return -1
	}
	return 0
}
